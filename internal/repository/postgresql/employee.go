package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rotalabs/shift-backend-go/internal/domain/employee"
	"github.com/rotalabs/shift-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

const employeeColumns = `
	id, company_id, full_name, status, date_of_joining, relieving_date,
	default_shift_type_id, holiday_list_id, attendance_device_id, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.FullName, &e.Status, &e.DateOfJoining, &e.RelievingDate,
		&e.DefaultShiftTypeID, &e.HolidayListID, &e.AttendanceDeviceID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// GetByAttendanceDeviceID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByAttendanceDeviceID(ctx context.Context, deviceID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE attendance_device_id = $1
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, deviceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by device id: %w", err)
	}
	return e, nil
}

// ListDefaultShiftEmployeeIDs implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListDefaultShiftEmployeeIDs(ctx context.Context, shiftTypeID string, from time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id
		FROM employees e
		WHERE e.default_shift_type_id = $1
		  AND e.status = 'Active'
		  AND NOT EXISTS (
			SELECT 1 FROM shift_assignments sa
			WHERE sa.employee_id = e.id
			  AND sa.status = 'Active'
			  AND (sa.end_date IS NULL OR sa.end_date >= $2)
		  )
	`

	rows, err := q.Query(ctx, query, shiftTypeID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to query default-shift employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee ids: %w", err)
	}

	return ids, nil
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}
