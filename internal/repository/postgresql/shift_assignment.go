package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rotalabs/shift-backend-go/internal/domain/shift"
	"github.com/rotalabs/shift-backend-go/internal/pkg/database"
)

type shiftAssignmentRepositoryImpl struct {
	db *database.DB
}

const assignmentColumns = `
	sa.id, sa.company_id, sa.employee_id, sa.shift_type_id,
	sa.start_date, sa.end_date, sa.status, sa.shift_location_id, sa.schedule_id,
	sa.created_at, sa.updated_at`

func scanAssignment(row pgx.Row, withNames bool) (shift.ShiftAssignment, error) {
	var a shift.ShiftAssignment
	dest := []interface{}{
		&a.ID, &a.CompanyID, &a.EmployeeID, &a.ShiftTypeID,
		&a.StartDate, &a.EndDate, &a.Status, &a.ShiftLocationID, &a.ScheduleID,
		&a.CreatedAt, &a.UpdatedAt,
	}
	if withNames {
		dest = append(dest, &a.EmployeeName, &a.ShiftTypeName)
	}
	if err := row.Scan(dest...); err != nil {
		return shift.ShiftAssignment{}, err
	}
	return a, nil
}

// Create implements shift.ShiftAssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) Create(ctx context.Context, assignment shift.ShiftAssignment) (shift.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_assignments (
			id, company_id, employee_id, shift_type_id,
			start_date, end_date, status, shift_location_id, schedule_id
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		assignment.CompanyID,
		assignment.EmployeeID,
		assignment.ShiftTypeID,
		assignment.StartDate,
		assignment.EndDate,
		assignment.Status,
		assignment.ShiftLocationID,
		assignment.ScheduleID,
	).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)

	if err != nil {
		return shift.ShiftAssignment{}, fmt.Errorf("failed to create shift assignment: %w", err)
	}

	return assignment, nil
}

// GetByID implements shift.ShiftAssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (shift.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `, e.full_name, st.name
		FROM shift_assignments sa
		JOIN employees e ON e.id = sa.employee_id
		JOIN shift_types st ON st.id = sa.shift_type_id
		WHERE sa.id = $1 AND sa.company_id = $2
	`

	a, err := scanAssignment(q.QueryRow(ctx, query, id, companyID), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftAssignment{}, shift.ErrAssignmentNotFound
		}
		return shift.ShiftAssignment{}, fmt.Errorf("failed to get shift assignment: %w", err)
	}
	return a, nil
}

// List implements shift.ShiftAssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) List(ctx context.Context, filter shift.AssignmentFilter, companyID string) ([]shift.ShiftAssignment, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "sa.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND sa.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.ShiftTypeID != nil && *filter.ShiftTypeID != "" {
		where += fmt.Sprintf(" AND sa.shift_type_id = $%d", argIdx)
		args = append(args, *filter.ShiftTypeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND sa.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		where += fmt.Sprintf(" AND sa.start_date <= $%d AND (sa.end_date IS NULL OR sa.end_date >= $%d)", argIdx, argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM shift_assignments sa WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shift assignments: %w", err)
	}

	orderByField := "sa.start_date"
	switch filter.SortBy {
	case "end_date":
		orderByField = "sa.end_date"
	case "employee_name":
		orderByField = "e.full_name"
	}
	sortOrder := "ASC"
	if strings.ToLower(filter.SortOrder) == "desc" {
		sortOrder = "DESC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s, e.full_name, st.name
		FROM shift_assignments sa
		JOIN employees e ON e.id = sa.employee_id
		JOIN shift_types st ON st.id = sa.shift_type_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, assignmentColumns, where, orderByField, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []shift.ShiftAssignment
	for rows.Next() {
		a, err := scanAssignment(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate shift assignments: %w", err)
	}

	return assignments, total, nil
}

// ListActiveForEmployeeBetween implements shift.ShiftAssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) ListActiveForEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]shift.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `
		FROM shift_assignments sa
		WHERE sa.employee_id = $1
		  AND sa.status = 'Active'
		  AND sa.start_date <= $3
		  AND (sa.end_date IS NULL OR sa.end_date >= $2)
		ORDER BY sa.start_date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query active shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []shift.ShiftAssignment
	for rows.Next() {
		a, err := scanAssignment(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift assignments: %w", err)
	}

	return assignments, nil
}

// ListOverlappingDates implements shift.ShiftAssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) ListOverlappingDates(ctx context.Context, employeeID string, startDate time.Time, endDate *time.Time, excludeID string) ([]shift.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	// An open-ended range overlaps everything from its start onward.
	query := `
		SELECT ` + assignmentColumns + `
		FROM shift_assignments sa
		WHERE sa.employee_id = $1
		  AND sa.status = 'Active'
		  AND ($2::uuid IS NULL OR sa.id <> $2)
		  AND (sa.end_date IS NULL OR sa.end_date >= $3)
		  AND ($4::date IS NULL OR sa.start_date <= $4)
		ORDER BY sa.start_date
	`

	var exclude *string
	if excludeID != "" {
		exclude = &excludeID
	}

	rows, err := q.Query(ctx, query, employeeID, exclude, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []shift.ShiftAssignment
	for rows.Next() {
		a, err := scanAssignment(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift assignments: %w", err)
	}

	return assignments, nil
}

// ListAssignedEmployeeIDs implements shift.ShiftAssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) ListAssignedEmployeeIDs(ctx context.Context, shiftTypeID string, from time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT sa.employee_id
		FROM shift_assignments sa
		JOIN employees e ON e.id = sa.employee_id
		WHERE sa.shift_type_id = $1
		  AND sa.status = 'Active'
		  AND (sa.end_date IS NULL OR sa.end_date >= $2)
		  AND e.status = 'Active'
	`

	rows, err := q.Query(ctx, query, shiftTypeID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to query assigned employees: %w", err)
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

// Update implements shift.ShiftAssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) Update(ctx context.Context, assignment shift.ShiftAssignment) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_assignments SET
			shift_type_id = $1, start_date = $2, end_date = $3,
			status = $4, shift_location_id = $5, updated_at = NOW()
		WHERE id = $6 AND company_id = $7
	`

	tag, err := q.Exec(ctx, query,
		assignment.ShiftTypeID,
		assignment.StartDate,
		assignment.EndDate,
		assignment.Status,
		assignment.ShiftLocationID,
		assignment.ID,
		assignment.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrAssignmentNotFound
	}
	return nil
}

// Delete implements shift.ShiftAssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM shift_assignments WHERE id = $1 AND company_id = $2`,
		id, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete shift assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrAssignmentNotFound
	}
	return nil
}

func NewShiftAssignmentRepository(db *database.DB) shift.ShiftAssignmentRepository {
	return &shiftAssignmentRepositoryImpl{db: db}
}
