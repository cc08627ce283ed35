package employee

import "time"

type Employee struct {
	ID                 string
	CompanyID          string
	FullName           string
	Status             EmploymentStatus
	DateOfJoining      time.Time
	RelievingDate      *time.Time
	DefaultShiftTypeID *string
	HolidayListID      *string
	// AttendanceDeviceID is the badge/biometric identifier punch devices
	// report instead of the employee ID.
	AttendanceDeviceID *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "Active"
	EmploymentStatusInactive EmploymentStatus = "Inactive"
	EmploymentStatusLeft     EmploymentStatus = "Left"
)

// IsActive reports whether attendance may be recorded for the employee.
func (e Employee) IsActive() bool {
	return e.Status == EmploymentStatusActive
}
