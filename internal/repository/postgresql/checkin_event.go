package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rotalabs/shift-backend-go/internal/domain/checkin"
	"github.com/rotalabs/shift-backend-go/internal/pkg/database"
)

type checkinEventRepositoryImpl struct {
	db *database.DB
}

const eventColumns = `
	ce.id, ce.company_id, ce.employee_id, ce.time, ce.log_type, ce.device_id,
	ce.latitude, ce.longitude,
	ce.shift_type_id, ce.shift_start, ce.shift_end, ce.shift_actual_start, ce.shift_actual_end,
	ce.skip_auto_attendance, ce.attendance_id, ce.created_at`

func scanEvent(row pgx.Row, withName bool) (checkin.Event, error) {
	var e checkin.Event
	var direction *string
	dest := []interface{}{
		&e.ID, &e.CompanyID, &e.EmployeeID, &e.Time, &direction, &e.DeviceID,
		&e.Latitude, &e.Longitude,
		&e.ShiftTypeID, &e.ShiftStart, &e.ShiftEnd, &e.ShiftActualStart, &e.ShiftActualEnd,
		&e.SkipAutoAttendance, &e.AttendanceID, &e.CreatedAt,
	}
	if withName {
		dest = append(dest, &e.EmployeeName)
	}
	if err := row.Scan(dest...); err != nil {
		return checkin.Event{}, err
	}
	if direction != nil {
		e.Direction = checkin.LogDirection(*direction)
	}
	return e, nil
}

// Create implements checkin.EventRepository.
func (r *checkinEventRepositoryImpl) Create(ctx context.Context, event checkin.Event) (checkin.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO checkin_events (
			id, company_id, employee_id, time, log_type, device_id,
			latitude, longitude,
			shift_type_id, shift_start, shift_end, shift_actual_start, shift_actual_end,
			skip_auto_attendance
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		) RETURNING id, created_at
	`

	var direction *string
	if event.Direction != "" {
		d := string(event.Direction)
		direction = &d
	}

	err := q.QueryRow(ctx, query,
		event.CompanyID,
		event.EmployeeID,
		event.Time,
		direction,
		event.DeviceID,
		event.Latitude,
		event.Longitude,
		event.ShiftTypeID,
		event.ShiftStart,
		event.ShiftEnd,
		event.ShiftActualStart,
		event.ShiftActualEnd,
		event.SkipAutoAttendance,
	).Scan(&event.ID, &event.CreatedAt)

	if err != nil {
		return checkin.Event{}, fmt.Errorf("failed to create checkin event: %w", err)
	}

	return event, nil
}

// GetByID implements checkin.EventRepository.
func (r *checkinEventRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (checkin.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `, e.full_name
		FROM checkin_events ce
		JOIN employees e ON e.id = ce.employee_id
		WHERE ce.id = $1 AND ce.company_id = $2
	`

	event, err := scanEvent(q.QueryRow(ctx, query, id, companyID), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return checkin.Event{}, checkin.ErrEventNotFound
		}
		return checkin.Event{}, fmt.Errorf("failed to get checkin event: %w", err)
	}
	return event, nil
}

// ExistsAt implements checkin.EventRepository.
func (r *checkinEventRepositoryImpl) ExistsAt(ctx context.Context, employeeID string, t time.Time, direction checkin.LogDirection) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM checkin_events
			WHERE employee_id = $1
			  AND time = $2
			  AND log_type IS NOT DISTINCT FROM $3
		)
	`

	var dir *string
	if direction != "" {
		d := string(direction)
		dir = &d
	}

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, t, dir).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check duplicate checkin: %w", err)
	}
	return exists, nil
}

// List implements checkin.EventRepository.
func (r *checkinEventRepositoryImpl) List(ctx context.Context, filter checkin.EventFilter, companyID string) ([]checkin.Event, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "ce.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND ce.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.ShiftTypeID != nil && *filter.ShiftTypeID != "" {
		where += fmt.Sprintf(" AND ce.shift_type_id = $%d", argIdx)
		args = append(args, *filter.ShiftTypeID)
		argIdx++
	}
	if filter.StartTime != nil && *filter.StartTime != "" {
		where += fmt.Sprintf(" AND ce.time >= $%d", argIdx)
		args = append(args, *filter.StartTime)
		argIdx++
	}
	if filter.EndTime != nil && *filter.EndTime != "" {
		where += fmt.Sprintf(" AND ce.time <= $%d", argIdx)
		args = append(args, *filter.EndTime)
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM checkin_events ce WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count checkin events: %w", err)
	}

	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s, e.full_name
		FROM checkin_events ce
		JOIN employees e ON e.id = ce.employee_id
		WHERE %s
		ORDER BY ce.time %s
		LIMIT $%d OFFSET $%d
	`, eventColumns, where, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query checkin events: %w", err)
	}
	defer rows.Close()

	var events []checkin.Event
	for rows.Next() {
		e, err := scanEvent(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan checkin event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate checkin events: %w", err)
	}

	return events, total, nil
}

// ListUnprocessed implements checkin.EventRepository.
func (r *checkinEventRepositoryImpl) ListUnprocessed(ctx context.Context, shiftTypeID string, processAfter, cutoff time.Time) ([]checkin.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM checkin_events ce
		WHERE ce.shift_type_id = $1
		  AND ce.attendance_id IS NULL
		  AND ce.skip_auto_attendance = FALSE
		  AND ce.time > $2
		  AND ce.shift_actual_end < $3
		ORDER BY ce.shift_actual_start, ce.time
	`

	rows, err := q.Query(ctx, query, shiftTypeID, processAfter, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query unprocessed checkins: %w", err)
	}
	defer rows.Close()

	var events []checkin.Event
	for rows.Next() {
		e, err := scanEvent(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checkin event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate checkin events: %w", err)
	}

	return events, nil
}

// LinkAttendance implements checkin.EventRepository.
func (r *checkinEventRepositoryImpl) LinkAttendance(ctx context.Context, eventIDs []string, attendanceID string) error {
	if len(eventIDs) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE checkin_events SET attendance_id = $1 WHERE id = ANY($2)`,
		attendanceID, eventIDs,
	)
	if err != nil {
		return fmt.Errorf("failed to link checkins to attendance: %w", err)
	}
	return nil
}

// MarkSkipped implements checkin.EventRepository.
func (r *checkinEventRepositoryImpl) MarkSkipped(ctx context.Context, eventIDs []string) error {
	if len(eventIDs) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE checkin_events SET skip_auto_attendance = TRUE WHERE id = ANY($1)`,
		eventIDs,
	)
	if err != nil {
		return fmt.Errorf("failed to mark checkins skipped: %w", err)
	}
	return nil
}

func NewCheckinEventRepository(db *database.DB) checkin.EventRepository {
	return &checkinEventRepositoryImpl{db: db}
}
