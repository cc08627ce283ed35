package checkin

import (
	"context"
	"time"
)

// EventRepository defines data access methods for raw checkin logs.
type EventRepository interface {
	Create(ctx context.Context, event Event) (Event, error)

	GetByID(ctx context.Context, id string, companyID string) (Event, error)

	// ExistsAt reports whether the employee already has a log at exactly this
	// timestamp with the same direction.
	ExistsAt(ctx context.Context, employeeID string, t time.Time, direction LogDirection) (bool, error)

	List(ctx context.Context, filter EventFilter, companyID string) ([]Event, int64, error)

	// ListUnprocessed retrieves events tagged with the shift type that are not
	// linked to an attendance record, not marked skipped, timestamped after
	// processAfter, and whose occurrence's actual end is before cutoff.
	// Ordered by shift actual start, then time.
	ListUnprocessed(ctx context.Context, shiftTypeID string, processAfter, cutoff time.Time) ([]Event, error)

	// LinkAttendance stamps the attendance record the events were folded into.
	LinkAttendance(ctx context.Context, eventIDs []string, attendanceID string) error

	// MarkSkipped flags events as excluded from auto attendance.
	MarkSkipped(ctx context.Context, eventIDs []string) error
}
