package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rotalabs/shift-backend-go/internal/domain/attendance"
	"github.com/rotalabs/shift-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

const attendanceColumns = `
	a.id, a.company_id, a.employee_id, a.date, a.shift_type_id, a.status,
	a.working_hours, a.late_entry, a.early_exit, a.in_time, a.out_time, a.remarks,
	a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, withNames bool) (attendance.Attendance, error) {
	var a attendance.Attendance
	dest := []interface{}{
		&a.ID, &a.CompanyID, &a.EmployeeID, &a.Date, &a.ShiftTypeID, &a.Status,
		&a.WorkingHours, &a.LateEntry, &a.EarlyExit, &a.InTime, &a.OutTime, &a.Remarks,
		&a.CreatedAt, &a.UpdatedAt,
	}
	if withNames {
		dest = append(dest, &a.EmployeeName, &a.ShiftTypeName)
	}
	if err := row.Scan(dest...); err != nil {
		return attendance.Attendance{}, err
	}
	return a, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			id, company_id, employee_id, date, shift_type_id, status,
			working_hours, late_entry, early_exit, in_time, out_time, remarks
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.CompanyID,
		record.EmployeeID,
		record.Date,
		record.ShiftTypeID,
		record.Status,
		record.WorkingHours,
		record.LateEntry,
		record.EarlyExit,
		record.InTime,
		record.OutTime,
		record.Remarks,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrDuplicateAttendance
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, e.full_name, st.name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		LEFT JOIN shift_types st ON st.id = a.shift_type_id
		WHERE a.id = $1 AND a.company_id = $2
	`

	record, err := scanAttendance(q.QueryRow(ctx, query, id, companyID), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return record, nil
}

// GetForDate implements attendance.AttendanceRepository. A record with no
// shift type blocks marking for any shift on the same date.
func (r *attendanceRepositoryImpl) GetForDate(ctx context.Context, employeeID string, date time.Time, shiftTypeID *string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.date = $2
		  AND (a.shift_type_id IS NULL OR a.shift_type_id IS NOT DISTINCT FROM $3)
		LIMIT 1
	`

	record, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, shiftTypeID), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance for date: %w", err)
	}
	return &record, nil
}

// GetForOtherShiftOnDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetForOtherShiftOnDate(ctx context.Context, employeeID string, date time.Time, shiftTypeID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.date = $2
		  AND a.shift_type_id IS NOT NULL
		  AND a.shift_type_id <> $3
		LIMIT 1
	`

	record, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, shiftTypeID), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance for other shift: %w", err)
	}
	return &record, nil
}

// ListMarkedDatesBetween implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListMarkedDatesBetween(ctx context.Context, employeeID string, shiftTypeID string, from, to time.Time) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date
		FROM attendances
		WHERE employee_id = $1
		  AND (shift_type_id IS NULL OR shift_type_id = $2)
		  AND date BETWEEN $3 AND $4
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, shiftTypeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query marked dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan marked date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate marked dates: %w", err)
	}

	return dates, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "a.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.ShiftTypeID != nil && *filter.ShiftTypeID != "" {
		where += fmt.Sprintf(" AND a.shift_type_id = $%d", argIdx)
		args = append(args, *filter.ShiftTypeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		where += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		where += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendances a WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	orderByField := "a.date"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "e.full_name"
	case "status":
		orderByField = "a.status"
	case "working_hours":
		orderByField = "a.working_hours"
	}
	sortOrder := "ASC"
	if strings.ToLower(filter.SortOrder) == "desc" {
		sortOrder = "DESC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s, e.full_name, st.name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		LEFT JOIN shift_types st ON st.id = a.shift_type_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, where, orderByField, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		record, err := scanAttendance(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, total, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}
