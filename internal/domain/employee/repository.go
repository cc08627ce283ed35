package employee

import (
	"context"
	"time"
)

// EmployeeRepository is the read side of the employee directory. Employee
// lifecycle is managed elsewhere; shift and attendance flows only look
// employees up.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByAttendanceDeviceID resolves a punch-device badge identifier to an
	// employee.
	GetByAttendanceDeviceID(ctx context.Context, deviceID string) (Employee, error)

	// ListDefaultShiftEmployeeIDs retrieves IDs of active employees whose
	// default shift is the given shift type and who hold no active explicit
	// shift assignment ending on or after from.
	ListDefaultShiftEmployeeIDs(ctx context.Context, shiftTypeID string, from time.Time) ([]string, error)
}
