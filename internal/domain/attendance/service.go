package attendance

import "context"

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// MarkAttendance creates an attendance record manually, enforcing the
	// duplicate and overlapping-shift guards.
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)

	// GetAttendance retrieves a single attendance record by ID
	GetAttendance(ctx context.Context, id string, companyID string) (AttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters
	ListAttendance(ctx context.Context, filter AttendanceFilter, companyID string) (ListAttendanceResponse, error)

	// ProcessShiftType folds the shift type's unprocessed checkins into
	// attendance records and then sweeps for absences. Invoked by the cron
	// job and by the manual trigger endpoint.
	ProcessShiftType(ctx context.Context, shiftTypeID string, companyID string) error

	// ProcessAllShiftTypes runs ProcessShiftType for every shift type with
	// auto attendance enabled, across tenants. At most one pass runs at a
	// time; a pass that finds another still running returns immediately.
	ProcessAllShiftTypes(ctx context.Context) error
}
