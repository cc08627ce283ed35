package shift

import (
	"context"
	"time"
)

// Resolver maps a timestamp to the shift occurrence it belongs to.
// Returns nil when no shift window covers the timestamp. When
// considerDefault is true and no explicit assignment matches, the
// employee's default shift is tried as a fallback.
type Resolver interface {
	ResolveShiftForTimestamp(ctx context.Context, employeeID string, ts time.Time, considerDefault bool) (*ResolvedShift, error)
}

type ShiftService interface {
	// Shift Type
	CreateShiftType(ctx context.Context, req CreateShiftTypeRequest) (ShiftTypeResponse, error)
	GetShiftType(ctx context.Context, id string, companyID string) (ShiftTypeResponse, error)
	ListShiftTypes(ctx context.Context, filter ShiftTypeFilter, companyID string) (ListShiftTypeResponse, error)
	UpdateShiftType(ctx context.Context, req UpdateShiftTypeRequest) error
	DeleteShiftType(ctx context.Context, id string, companyID string) error

	// Shift Assignment
	CreateAssignment(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error)
	BulkCreateAssignments(ctx context.Context, req BulkCreateAssignmentsRequest) (BulkAssignmentResponse, error)
	GetAssignment(ctx context.Context, id string, companyID string) (AssignmentResponse, error)
	ListAssignments(ctx context.Context, filter AssignmentFilter, companyID string) (ListAssignmentResponse, error)
	EndAssignment(ctx context.Context, req EndAssignmentRequest) error
	DeleteAssignment(ctx context.Context, id string, companyID string) error

	// Shift Location
	CreateLocation(ctx context.Context, req CreateLocationRequest) (LocationResponse, error)
	GetLocation(ctx context.Context, id string, companyID string) (LocationResponse, error)
	ListLocations(ctx context.Context, companyID string) ([]LocationResponse, error)
	UpdateLocation(ctx context.Context, req UpdateLocationRequest) error
	DeleteLocation(ctx context.Context, id string, companyID string) error

	// Shift Schedule
	CreateSchedule(ctx context.Context, req CreateScheduleRequest) (ScheduleResponse, error)
	GetSchedule(ctx context.Context, id string, companyID string) (ScheduleResponse, error)
	ListSchedules(ctx context.Context, companyID string) ([]ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, id string, companyID string) error

	// MaterializeDueSchedules turns every due schedule into concrete shift
	// assignments up to the materialization horizon. Invoked by the cron job.
	MaterializeDueSchedules(ctx context.Context) error

	Resolver
}
