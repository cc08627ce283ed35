package shift

import "time"

// ShiftType is the reusable template for a daily work window. Start and End
// are offsets from midnight; End <= Start means the window crosses midnight
// and ends on the following day.
type ShiftType struct {
	ID        string
	CompanyID string
	Name      string

	StartTime time.Duration
	EndTime   time.Duration

	// Window padding. A checkin this many minutes before the start (or a
	// checkout this many minutes after the end) is still tagged with this
	// shift.
	CheckinBeforeMinutes int
	CheckoutAfterMinutes int

	// Auto attendance configuration.
	EnableAutoAttendance    bool
	Determination           CheckinDetermination
	Calculation             WorkingHoursCalculation
	RoundingPrecision       int32
	HalfDayThresholdHours   float64
	AbsentThresholdHours    float64
	EnableLateEntryMarking  bool
	LateEntryGraceMinutes   int
	EnableEarlyExitMarking  bool
	EarlyExitGraceMinutes   int
	MarkAbsentOnHolidays    bool
	ProcessAttendanceAfter  time.Time
	LastSyncOfCheckins      *time.Time
	HolidayListID           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CheckinDetermination controls how raw checkin events are paired.
type CheckinDetermination string

const (
	// DeterminationAlternating treats events as IN, OUT, IN, OUT in
	// chronological order regardless of the logged direction.
	DeterminationAlternating CheckinDetermination = "Alternating"
	// DeterminationStrict only pairs events whose logged direction matches.
	DeterminationStrict CheckinDetermination = "Strict"
)

var CheckinDeterminationValues = []string{
	string(DeterminationAlternating),
	string(DeterminationStrict),
}

// WorkingHoursCalculation selects which pairs contribute to the total.
type WorkingHoursCalculation string

const (
	CalculationFirstInLastOut WorkingHoursCalculation = "FirstInLastOut"
	CalculationEveryValidPair WorkingHoursCalculation = "EveryValidPair"
)

var WorkingHoursCalculationValues = []string{
	string(CalculationFirstInLastOut),
	string(CalculationEveryValidPair),
}

type AssignmentStatus string

const (
	AssignmentActive   AssignmentStatus = "Active"
	AssignmentInactive AssignmentStatus = "Inactive"
)

var AssignmentStatusValues = []string{
	string(AssignmentActive),
	string(AssignmentInactive),
}

// ShiftAssignment binds an employee to a shift type for a date range.
// A nil EndDate means the assignment is open-ended.
type ShiftAssignment struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	ShiftTypeID     string
	StartDate       time.Time
	EndDate         *time.Time
	Status          AssignmentStatus
	ShiftLocationID *string
	ScheduleID      *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeName  *string
	ShiftTypeName *string
}

// ShiftLocation is a geofenced site checkins can be restricted to.
type ShiftLocation struct {
	ID                  string
	CompanyID           string
	Name                string
	Latitude            float64
	Longitude           float64
	CheckinRadiusMeters int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ShiftSchedule generates recurring shift assignments for an employee:
// every FrequencyWeeks weeks, one assignment per contiguous run of
// RepeatOnDays. CreateShiftsAfter is the high-water mark of generation.
type ShiftSchedule struct {
	ID                string
	CompanyID         string
	EmployeeID        string
	ShiftTypeID       string
	RepeatOnDays      []time.Weekday
	FrequencyWeeks    int
	Enabled           bool
	CreateShiftsAfter time.Time
	ShiftStatus       AssignmentStatus
	ShiftLocationID   *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ShiftBounds is one concrete occurrence of a shift type on a calendar day.
// Start/End are the nominal window, ActualStart/ActualEnd include the
// checkin-before and checkout-after padding.
type ShiftBounds struct {
	ShiftType   ShiftType
	Start       time.Time
	End         time.Time
	ActualStart time.Time
	ActualEnd   time.Time
}

// ResolvedShift is the outcome of resolving a timestamp to a shift
// occurrence. Assignment is nil when the employee's default shift was used.
type ResolvedShift struct {
	ShiftBounds
	Assignment *ShiftAssignment
}
