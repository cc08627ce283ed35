package checkin

import "time"

// LogDirection is the direction a punch device reported, if any. Shift types
// with strict determination require it; alternating shift types ignore it.
type LogDirection string

const (
	DirectionIn  LogDirection = "IN"
	DirectionOut LogDirection = "OUT"
)

var LogDirectionValues = []string{
	string(DirectionIn),
	string(DirectionOut),
}

// Event is a single raw checkin log. Shift fields are the occurrence the
// event was resolved to at ingestion time; they stay nil when no shift window
// covered the timestamp.
type Event struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Time       time.Time
	Direction  LogDirection
	DeviceID   *string
	Latitude   *float64
	Longitude  *float64

	ShiftTypeID      *string
	ShiftStart       *time.Time
	ShiftEnd         *time.Time
	ShiftActualStart *time.Time
	ShiftActualEnd   *time.Time

	// SkipAutoAttendance excludes the event from attendance processing. It is
	// set on ingestion by request, or later by the processor when the event's
	// occurrence could not be marked (duplicate or overlapping attendance).
	SkipAutoAttendance bool
	AttendanceID       *string

	CreatedAt time.Time

	// DTO
	EmployeeName *string
}
