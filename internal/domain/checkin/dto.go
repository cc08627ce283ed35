package checkin

import (
	"strings"
	"time"

	"github.com/rotalabs/shift-backend-go/internal/pkg/validator"
)

// ========================================
// CHECKIN DTOs
// ========================================

// CreateEventRequest is the ingestion payload. Devices identify the employee
// either directly or by the badge identifier they know.
type CreateEventRequest struct {
	EmployeeID         string   `json:"employee_id"`
	DeviceID           *string  `json:"device_id,omitempty"`
	Time               string   `json:"time"` // RFC3339
	Direction          string   `json:"log_type,omitempty"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
	SkipAutoAttendance bool     `json:"skip_auto_attendance,omitempty"`

	ParsedTime time.Time `json:"-"`
}

func (r *CreateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) && (r.DeviceID == nil || validator.IsEmpty(*r.DeviceID)) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "either employee_id or device_id is required",
		})
	}

	if t, valid := validator.IsValidDateTime(r.Time); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be an RFC3339 timestamp",
		})
	} else {
		r.ParsedTime = t.UTC()
	}

	if r.Direction != "" {
		r.Direction = strings.ToUpper(r.Direction)
		if !validator.IsInSlice(r.Direction, LogDirectionValues) {
			errs = append(errs, validator.ValidationError{
				Field:   "log_type",
				Message: "log_type must be one of: IN, OUT",
			})
		}
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EventResponse struct {
	ID                 string   `json:"id"`
	EmployeeID         string   `json:"employee_id"`
	EmployeeName       *string  `json:"employee_name,omitempty"`
	Time               string   `json:"time"`
	Direction          string   `json:"log_type,omitempty"`
	DeviceID           *string  `json:"device_id,omitempty"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
	ShiftTypeID        *string  `json:"shift_type_id,omitempty"`
	ShiftStart         *string  `json:"shift_start,omitempty"`
	ShiftEnd           *string  `json:"shift_end,omitempty"`
	ShiftActualStart   *string  `json:"shift_actual_start,omitempty"`
	ShiftActualEnd     *string  `json:"shift_actual_end,omitempty"`
	SkipAutoAttendance bool     `json:"skip_auto_attendance"`
	AttendanceID       *string  `json:"attendance_id,omitempty"`
	CreatedAt          string   `json:"created_at"`
}

type EventFilter struct {
	EmployeeID  *string `json:"employee_id,omitempty"`
	ShiftTypeID *string `json:"shift_type_id,omitempty"`
	StartTime   *string `json:"start_time,omitempty"` // RFC3339
	EndTime     *string `json:"end_time,omitempty"`   // RFC3339

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortOrder string `json:"sort_order"` // asc, desc (by time)
}

func (f *EventFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.StartTime != nil && *f.StartTime != "" {
		if _, valid := validator.IsValidDateTime(*f.StartTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be an RFC3339 timestamp",
			})
		}
	}

	if f.EndTime != nil && *f.EndTime != "" {
		if _, valid := validator.IsValidDateTime(*f.EndTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be an RFC3339 timestamp",
			})
		}
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListEventResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Checkins   []EventResponse `json:"checkins"`
}
