package shift

import (
	"context"
	"time"
)

// ShiftTypeRepository defines data access methods for shift types.
// All company-scoped methods include companyID to prevent cross-company data access.
type ShiftTypeRepository interface {
	Create(ctx context.Context, shiftType ShiftType) (ShiftType, error)

	GetByID(ctx context.Context, id string, companyID string) (ShiftType, error)

	List(ctx context.Context, filter ShiftTypeFilter, companyID string) ([]ShiftType, int64, error)

	Update(ctx context.Context, shiftType ShiftType) error

	// SetLastSyncOfCheckins advances the ingestion high-water mark.
	SetLastSyncOfCheckins(ctx context.Context, id string, lastSync time.Time) error

	Delete(ctx context.Context, id string, companyID string) error

	// ListAutoAttendanceEnabled is used by the processing job and is not
	// company scoped: it spans every tenant.
	ListAutoAttendanceEnabled(ctx context.Context) ([]ShiftType, error)
}

// ShiftAssignmentRepository defines data access methods for shift assignments.
type ShiftAssignmentRepository interface {
	Create(ctx context.Context, assignment ShiftAssignment) (ShiftAssignment, error)

	GetByID(ctx context.Context, id string, companyID string) (ShiftAssignment, error)

	List(ctx context.Context, filter AssignmentFilter, companyID string) ([]ShiftAssignment, int64, error)

	// ListActiveForEmployeeBetween retrieves active assignments whose date
	// range intersects [from, to]. Used by shift resolution, which must see
	// assignments of the surrounding days to handle overnight windows.
	ListActiveForEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]ShiftAssignment, error)

	// ListOverlappingDates retrieves active assignments for the employee whose
	// date range intersects [startDate, endDate] (endDate nil = open-ended),
	// excluding excludeID.
	ListOverlappingDates(ctx context.Context, employeeID string, startDate time.Time, endDate *time.Time, excludeID string) ([]ShiftAssignment, error)

	// ListAssignedEmployeeIDs retrieves IDs of active employees holding an
	// active assignment to the shift type ending on or after from (open-ended
	// assignments included).
	ListAssignedEmployeeIDs(ctx context.Context, shiftTypeID string, from time.Time) ([]string, error)

	Update(ctx context.Context, assignment ShiftAssignment) error

	Delete(ctx context.Context, id string, companyID string) error
}

// ShiftLocationRepository defines data access methods for geofenced shift locations.
type ShiftLocationRepository interface {
	Create(ctx context.Context, location ShiftLocation) (ShiftLocation, error)

	GetByID(ctx context.Context, id string, companyID string) (ShiftLocation, error)

	List(ctx context.Context, companyID string) ([]ShiftLocation, error)

	Update(ctx context.Context, location ShiftLocation) error

	Delete(ctx context.Context, id string, companyID string) error
}

// ShiftScheduleRepository defines data access methods for recurring shift schedules.
type ShiftScheduleRepository interface {
	Create(ctx context.Context, schedule ShiftSchedule) (ShiftSchedule, error)

	GetByID(ctx context.Context, id string, companyID string) (ShiftSchedule, error)

	List(ctx context.Context, companyID string) ([]ShiftSchedule, error)

	// ListDue retrieves enabled schedules whose CreateShiftsAfter is before
	// asOf. Spans every tenant; used by the materialization job.
	ListDue(ctx context.Context, asOf time.Time) ([]ShiftSchedule, error)

	SetCreateShiftsAfter(ctx context.Context, id string, after time.Time) error

	Update(ctx context.Context, schedule ShiftSchedule) error

	Delete(ctx context.Context, id string, companyID string) error
}
