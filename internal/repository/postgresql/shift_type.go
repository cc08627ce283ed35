package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rotalabs/shift-backend-go/internal/domain/shift"
	"github.com/rotalabs/shift-backend-go/internal/pkg/database"
)

type shiftTypeRepositoryImpl struct {
	db *database.DB
}

const shiftTypeColumns = `
	id, company_id, name, start_time, end_time,
	checkin_before_shift_minutes, checkout_after_shift_minutes,
	enable_auto_attendance, determination, working_hours_calculation, rounding_precision,
	half_day_threshold_hours, absent_threshold_hours,
	enable_late_entry_marking, late_entry_grace_minutes,
	enable_early_exit_marking, early_exit_grace_minutes,
	mark_absent_on_holidays, process_attendance_after, last_sync_of_checkins,
	holiday_list_id, created_at, updated_at`

// durationToPgTime converts a midnight offset to a TIME column value.
func durationToPgTime(d time.Duration) pgtype.Time {
	return pgtype.Time{Microseconds: d.Microseconds(), Valid: true}
}

func pgTimeToDuration(t pgtype.Time) time.Duration {
	return time.Duration(t.Microseconds) * time.Microsecond
}

func scanShiftType(row pgx.Row) (shift.ShiftType, error) {
	var st shift.ShiftType
	var startTime, endTime pgtype.Time
	var processAfter *time.Time
	err := row.Scan(
		&st.ID, &st.CompanyID, &st.Name, &startTime, &endTime,
		&st.CheckinBeforeMinutes, &st.CheckoutAfterMinutes,
		&st.EnableAutoAttendance, &st.Determination, &st.Calculation, &st.RoundingPrecision,
		&st.HalfDayThresholdHours, &st.AbsentThresholdHours,
		&st.EnableLateEntryMarking, &st.LateEntryGraceMinutes,
		&st.EnableEarlyExitMarking, &st.EarlyExitGraceMinutes,
		&st.MarkAbsentOnHolidays, &processAfter, &st.LastSyncOfCheckins,
		&st.HolidayListID, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return shift.ShiftType{}, err
	}
	st.StartTime = pgTimeToDuration(startTime)
	st.EndTime = pgTimeToDuration(endTime)
	if processAfter != nil {
		st.ProcessAttendanceAfter = *processAfter
	}
	return st, nil
}

// Create implements shift.ShiftTypeRepository.
func (r *shiftTypeRepositoryImpl) Create(ctx context.Context, shiftType shift.ShiftType) (shift.ShiftType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_types (
			id, company_id, name, start_time, end_time,
			checkin_before_shift_minutes, checkout_after_shift_minutes,
			enable_auto_attendance, determination, working_hours_calculation, rounding_precision,
			half_day_threshold_hours, absent_threshold_hours,
			enable_late_entry_marking, late_entry_grace_minutes,
			enable_early_exit_marking, early_exit_grace_minutes,
			mark_absent_on_holidays, process_attendance_after, holiday_list_id
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19
		) RETURNING id, created_at, updated_at
	`

	var processAfter *time.Time
	if !shiftType.ProcessAttendanceAfter.IsZero() {
		processAfter = &shiftType.ProcessAttendanceAfter
	}

	err := q.QueryRow(ctx, query,
		shiftType.CompanyID,
		shiftType.Name,
		durationToPgTime(shiftType.StartTime),
		durationToPgTime(shiftType.EndTime),
		shiftType.CheckinBeforeMinutes,
		shiftType.CheckoutAfterMinutes,
		shiftType.EnableAutoAttendance,
		shiftType.Determination,
		shiftType.Calculation,
		shiftType.RoundingPrecision,
		shiftType.HalfDayThresholdHours,
		shiftType.AbsentThresholdHours,
		shiftType.EnableLateEntryMarking,
		shiftType.LateEntryGraceMinutes,
		shiftType.EnableEarlyExitMarking,
		shiftType.EarlyExitGraceMinutes,
		shiftType.MarkAbsentOnHolidays,
		processAfter,
		shiftType.HolidayListID,
	).Scan(&shiftType.ID, &shiftType.CreatedAt, &shiftType.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shift.ShiftType{}, shift.ErrShiftTypeNameExists
		}
		return shift.ShiftType{}, fmt.Errorf("failed to create shift type: %w", err)
	}

	return shiftType, nil
}

// GetByID implements shift.ShiftTypeRepository.
func (r *shiftTypeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (shift.ShiftType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftTypeColumns + `
		FROM shift_types
		WHERE id = $1 AND company_id = $2
	`

	st, err := scanShiftType(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftType{}, shift.ErrShiftTypeNotFound
		}
		return shift.ShiftType{}, fmt.Errorf("failed to get shift type: %w", err)
	}
	return st, nil
}

// List implements shift.ShiftTypeRepository.
func (r *shiftTypeRepositoryImpl) List(ctx context.Context, filter shift.ShiftTypeFilter, companyID string) ([]shift.ShiftType, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Name != nil && *filter.Name != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.Name+"%")
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM shift_types WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shift types: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM shift_types
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, shiftTypeColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query shift types: %w", err)
	}
	defer rows.Close()

	var shiftTypes []shift.ShiftType
	for rows.Next() {
		st, err := scanShiftType(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shift type: %w", err)
		}
		shiftTypes = append(shiftTypes, st)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate shift types: %w", err)
	}

	return shiftTypes, total, nil
}

// Update implements shift.ShiftTypeRepository.
func (r *shiftTypeRepositoryImpl) Update(ctx context.Context, shiftType shift.ShiftType) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_types SET
			name = $1, start_time = $2, end_time = $3,
			checkin_before_shift_minutes = $4, checkout_after_shift_minutes = $5,
			enable_auto_attendance = $6, determination = $7, working_hours_calculation = $8,
			half_day_threshold_hours = $9, absent_threshold_hours = $10,
			enable_late_entry_marking = $11, late_entry_grace_minutes = $12,
			enable_early_exit_marking = $13, early_exit_grace_minutes = $14,
			mark_absent_on_holidays = $15, process_attendance_after = $16,
			holiday_list_id = $17, updated_at = NOW()
		WHERE id = $18 AND company_id = $19
	`

	var processAfter *time.Time
	if !shiftType.ProcessAttendanceAfter.IsZero() {
		processAfter = &shiftType.ProcessAttendanceAfter
	}

	tag, err := q.Exec(ctx, query,
		shiftType.Name,
		durationToPgTime(shiftType.StartTime),
		durationToPgTime(shiftType.EndTime),
		shiftType.CheckinBeforeMinutes,
		shiftType.CheckoutAfterMinutes,
		shiftType.EnableAutoAttendance,
		shiftType.Determination,
		shiftType.Calculation,
		shiftType.HalfDayThresholdHours,
		shiftType.AbsentThresholdHours,
		shiftType.EnableLateEntryMarking,
		shiftType.LateEntryGraceMinutes,
		shiftType.EnableEarlyExitMarking,
		shiftType.EarlyExitGraceMinutes,
		shiftType.MarkAbsentOnHolidays,
		processAfter,
		shiftType.HolidayListID,
		shiftType.ID,
		shiftType.CompanyID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shift.ErrShiftTypeNameExists
		}
		return fmt.Errorf("failed to update shift type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftTypeNotFound
	}
	return nil
}

// SetLastSyncOfCheckins implements shift.ShiftTypeRepository.
func (r *shiftTypeRepositoryImpl) SetLastSyncOfCheckins(ctx context.Context, id string, lastSync time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE shift_types SET last_sync_of_checkins = $1, updated_at = NOW() WHERE id = $2`,
		lastSync, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set last sync of checkins: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftTypeNotFound
	}
	return nil
}

// Delete implements shift.ShiftTypeRepository.
func (r *shiftTypeRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM shift_types WHERE id = $1 AND company_id = $2`,
		id, companyID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return shift.ErrShiftTypeInUse
		}
		return fmt.Errorf("failed to delete shift type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftTypeNotFound
	}
	return nil
}

// ListAutoAttendanceEnabled implements shift.ShiftTypeRepository.
func (r *shiftTypeRepositoryImpl) ListAutoAttendanceEnabled(ctx context.Context) ([]shift.ShiftType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftTypeColumns + `
		FROM shift_types
		WHERE enable_auto_attendance = TRUE
		ORDER BY company_id, name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query auto attendance shift types: %w", err)
	}
	defer rows.Close()

	var shiftTypes []shift.ShiftType
	for rows.Next() {
		st, err := scanShiftType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift type: %w", err)
		}
		shiftTypes = append(shiftTypes, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift types: %w", err)
	}

	return shiftTypes, nil
}

func NewShiftTypeRepository(db *database.DB) shift.ShiftTypeRepository {
	return &shiftTypeRepositoryImpl{db: db}
}
