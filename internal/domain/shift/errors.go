package shift

import "errors"

// Shift domain errors
var (
	// Shift type errors
	ErrShiftTypeNotFound   = errors.New("shift type not found")
	ErrShiftTypeNameExists = errors.New("a shift type with this name already exists")
	ErrShiftTypeInUse      = errors.New("shift type has active assignments and cannot be deleted")

	// Shift assignment errors
	ErrAssignmentNotFound       = errors.New("shift assignment not found")
	ErrMultipleShiftAssignments = errors.New("employee already has an active shift assignment for some of these dates")
	ErrOverlappingShiftTimings  = errors.New("employee already has a shift with overlapping timings in this period")
	ErrAssignmentEndBeforeStart = errors.New("assignment end date cannot be before its start date")

	// Shift location errors
	ErrLocationNotFound = errors.New("shift location not found")

	// Shift schedule errors
	ErrScheduleNotFound = errors.New("shift schedule not found")
)
