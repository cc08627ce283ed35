package response

import (
	"errors"
	"net/http"

	"github.com/rotalabs/shift-backend-go/internal/domain/attendance"
	"github.com/rotalabs/shift-backend-go/internal/domain/checkin"
	"github.com/rotalabs/shift-backend-go/internal/domain/employee"
	"github.com/rotalabs/shift-backend-go/internal/domain/holiday"
	"github.com/rotalabs/shift-backend-go/internal/domain/shift"
	"github.com/rotalabs/shift-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Shift domain errors
	case errors.Is(err, shift.ErrShiftTypeNotFound):
		NotFound(w, "Shift type not found")
	case errors.Is(err, shift.ErrShiftTypeNameExists):
		Conflict(w, "A shift type with this name already exists")
	case errors.Is(err, shift.ErrShiftTypeInUse):
		Conflict(w, "Shift type has active assignments and cannot be deleted")
	case errors.Is(err, shift.ErrAssignmentNotFound):
		NotFound(w, "Shift assignment not found")
	case errors.Is(err, shift.ErrMultipleShiftAssignments):
		Conflict(w, err.Error())
	case errors.Is(err, shift.ErrOverlappingShiftTimings):
		Conflict(w, err.Error())
	case errors.Is(err, shift.ErrAssignmentEndBeforeStart):
		BadRequest(w, "Assignment end date cannot be before its start date", nil)
	case errors.Is(err, shift.ErrLocationNotFound):
		NotFound(w, "Shift location not found")
	case errors.Is(err, shift.ErrScheduleNotFound):
		NotFound(w, "Shift schedule not found")

	// Checkin domain errors
	case errors.Is(err, checkin.ErrEventNotFound):
		NotFound(w, "Checkin event not found")
	case errors.Is(err, checkin.ErrDuplicateLog):
		Conflict(w, "This checkin has already been recorded")
	case errors.Is(err, checkin.ErrDirectionRequired):
		BadRequest(w, "Log direction is required for this shift", nil)
	case errors.Is(err, checkin.ErrCoordinatesRequired):
		BadRequest(w, "Location coordinates are required for this shift", nil)
	case errors.Is(err, checkin.ErrCheckinRadiusExceeded):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, checkin.ErrEmployeeReferenceEmpty):
		BadRequest(w, "Either employee_id or device_id is required", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDuplicateAttendance):
		Conflict(w, "Attendance already marked for this employee and date")
	case errors.Is(err, attendance.ErrOverlappingShiftAttendance):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrProcessingInProgress):
		Conflict(w, "Auto attendance processing is already in progress")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInactiveEmployee):
		BadRequest(w, "Employee is not active", nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayListNotFound):
		NotFound(w, "Holiday list not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
