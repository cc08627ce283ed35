package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All company-scoped methods include companyID to prevent cross-company data access.
type AttendanceRepository interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// GetForDate retrieves the attendance record for the employee on date with
	// the given shift type, or with no shift type at all. Nil when none exists.
	// Used by the duplicate guard.
	GetForDate(ctx context.Context, employeeID string, date time.Time, shiftTypeID *string) (*Attendance, error)

	// GetForOtherShiftOnDate retrieves an attendance record for the employee on
	// date tagged with a different shift type than the given one. Nil when none
	// exists. Used by the overlapping-shift guard.
	GetForOtherShiftOnDate(ctx context.Context, employeeID string, date time.Time, shiftTypeID string) (*Attendance, error)

	// ListMarkedDatesBetween retrieves dates in [from, to] that already carry an
	// attendance record for the employee and shift type (or no shift type).
	ListMarkedDatesBetween(ctx context.Context, employeeID string, shiftTypeID string, from, to time.Time) ([]time.Time, error)

	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)
}
