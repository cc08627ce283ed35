package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInactiveEmployee = errors.New("employee is not active")
)
