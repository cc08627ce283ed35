package checkin

import "errors"

// Checkin domain errors
var (
	ErrEventNotFound          = errors.New("checkin event not found")
	ErrDuplicateLog           = errors.New("this checkin has already been recorded")
	ErrDirectionRequired      = errors.New("log direction is required for this shift")
	ErrCoordinatesRequired    = errors.New("location coordinates are required for this shift")
	ErrCheckinRadiusExceeded  = errors.New("you are outside the allowed checkin radius")
	ErrEmployeeReferenceEmpty = errors.New("either employee_id or device_id is required")
)
