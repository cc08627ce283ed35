package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")

	// Marking guards
	ErrDuplicateAttendance        = errors.New("attendance already marked for this employee and date")
	ErrOverlappingShiftAttendance = errors.New("attendance already marked for an overlapping shift on this date")

	// ErrProcessingInProgress is returned by the manual trigger when an auto
	// attendance pass is already running.
	ErrProcessingInProgress = errors.New("auto attendance processing already in progress")
)
