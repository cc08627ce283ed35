package attendance

import "time"

type Attendance struct {
	ID           string
	CompanyID    string
	EmployeeID   string
	Date         time.Time
	ShiftTypeID  *string
	Status       Status
	WorkingHours float64
	LateEntry    bool
	EarlyExit    bool
	InTime       *time.Time
	OutTime      *time.Time
	Remarks      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	EmployeeName  *string
	ShiftTypeName *string
}

type Status string

const (
	StatusPresent  Status = "Present"
	StatusAbsent   Status = "Absent"
	StatusHalfDay  Status = "Half Day"
	StatusOnLeave  Status = "On Leave"
	StatusWFH      Status = "Work From Home"
)

var StatusValues = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusHalfDay),
	string(StatusOnLeave),
	string(StatusWFH),
}
