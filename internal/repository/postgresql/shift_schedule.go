package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rotalabs/shift-backend-go/internal/domain/shift"
	"github.com/rotalabs/shift-backend-go/internal/pkg/database"
)

type shiftScheduleRepositoryImpl struct {
	db *database.DB
}

const scheduleColumns = `
	id, company_id, employee_id, shift_type_id, repeat_on_days, frequency_weeks,
	enabled, create_shifts_after, shift_status, shift_location_id, created_at, updated_at`

func weekdaysToInts(days []time.Weekday) []int32 {
	out := make([]int32, 0, len(days))
	for _, d := range days {
		out = append(out, int32(d))
	}
	return out
}

func intsToWeekdays(ints []int32) []time.Weekday {
	out := make([]time.Weekday, 0, len(ints))
	for _, i := range ints {
		out = append(out, time.Weekday(i))
	}
	return out
}

func scanSchedule(row pgx.Row) (shift.ShiftSchedule, error) {
	var sc shift.ShiftSchedule
	var days []int32
	err := row.Scan(
		&sc.ID, &sc.CompanyID, &sc.EmployeeID, &sc.ShiftTypeID, &days, &sc.FrequencyWeeks,
		&sc.Enabled, &sc.CreateShiftsAfter, &sc.ShiftStatus, &sc.ShiftLocationID,
		&sc.CreatedAt, &sc.UpdatedAt,
	)
	if err != nil {
		return shift.ShiftSchedule{}, err
	}
	sc.RepeatOnDays = intsToWeekdays(days)
	return sc, nil
}

// Create implements shift.ShiftScheduleRepository.
func (r *shiftScheduleRepositoryImpl) Create(ctx context.Context, schedule shift.ShiftSchedule) (shift.ShiftSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_schedules (
			id, company_id, employee_id, shift_type_id, repeat_on_days, frequency_weeks,
			enabled, create_shifts_after, shift_status, shift_location_id
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		schedule.CompanyID,
		schedule.EmployeeID,
		schedule.ShiftTypeID,
		weekdaysToInts(schedule.RepeatOnDays),
		schedule.FrequencyWeeks,
		schedule.Enabled,
		schedule.CreateShiftsAfter,
		schedule.ShiftStatus,
		schedule.ShiftLocationID,
	).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)

	if err != nil {
		return shift.ShiftSchedule{}, fmt.Errorf("failed to create shift schedule: %w", err)
	}

	return schedule, nil
}

// GetByID implements shift.ShiftScheduleRepository.
func (r *shiftScheduleRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (shift.ShiftSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + scheduleColumns + `
		FROM shift_schedules
		WHERE id = $1 AND company_id = $2
	`

	sc, err := scanSchedule(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftSchedule{}, shift.ErrScheduleNotFound
		}
		return shift.ShiftSchedule{}, fmt.Errorf("failed to get shift schedule: %w", err)
	}
	return sc, nil
}

// List implements shift.ShiftScheduleRepository.
func (r *shiftScheduleRepositoryImpl) List(ctx context.Context, companyID string) ([]shift.ShiftSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + scheduleColumns + `
		FROM shift_schedules
		WHERE company_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift schedules: %w", err)
	}
	defer rows.Close()

	return collectSchedules(rows)
}

// ListDue implements shift.ShiftScheduleRepository.
func (r *shiftScheduleRepositoryImpl) ListDue(ctx context.Context, asOf time.Time) ([]shift.ShiftSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + scheduleColumns + `
		FROM shift_schedules
		WHERE enabled = TRUE AND create_shifts_after < $1
		ORDER BY create_shifts_after
	`

	rows, err := q.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query due shift schedules: %w", err)
	}
	defer rows.Close()

	return collectSchedules(rows)
}

func collectSchedules(rows pgx.Rows) ([]shift.ShiftSchedule, error) {
	var schedules []shift.ShiftSchedule
	for rows.Next() {
		sc, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift schedule: %w", err)
		}
		schedules = append(schedules, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift schedules: %w", err)
	}
	return schedules, nil
}

// SetCreateShiftsAfter implements shift.ShiftScheduleRepository.
func (r *shiftScheduleRepositoryImpl) SetCreateShiftsAfter(ctx context.Context, id string, after time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE shift_schedules SET create_shifts_after = $1, updated_at = NOW() WHERE id = $2`,
		after, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set create_shifts_after: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrScheduleNotFound
	}
	return nil
}

// Update implements shift.ShiftScheduleRepository.
func (r *shiftScheduleRepositoryImpl) Update(ctx context.Context, schedule shift.ShiftSchedule) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_schedules SET
			shift_type_id = $1, repeat_on_days = $2, frequency_weeks = $3,
			enabled = $4, shift_status = $5, shift_location_id = $6, updated_at = NOW()
		WHERE id = $7 AND company_id = $8
	`

	tag, err := q.Exec(ctx, query,
		schedule.ShiftTypeID,
		weekdaysToInts(schedule.RepeatOnDays),
		schedule.FrequencyWeeks,
		schedule.Enabled,
		schedule.ShiftStatus,
		schedule.ShiftLocationID,
		schedule.ID,
		schedule.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrScheduleNotFound
	}
	return nil
}

// Delete implements shift.ShiftScheduleRepository.
func (r *shiftScheduleRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM shift_schedules WHERE id = $1 AND company_id = $2`,
		id, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete shift schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrScheduleNotFound
	}
	return nil
}

func NewShiftScheduleRepository(db *database.DB) shift.ShiftScheduleRepository {
	return &shiftScheduleRepositoryImpl{db: db}
}
