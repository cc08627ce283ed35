package shift

import (
	"strings"
	"time"

	"github.com/rotalabs/shift-backend-go/internal/pkg/validator"
)

// ========================================
// SHIFT TYPE DTOs
// ========================================

type CreateShiftTypeRequest struct {
	CompanyID string `json:"-"`

	Name                 string `json:"name"`
	StartTime            string `json:"start_time"` // HH:MM:SS
	EndTime              string `json:"end_time"`   // HH:MM:SS
	CheckinBeforeMinutes int    `json:"checkin_before_shift_minutes"`
	CheckoutAfterMinutes int    `json:"checkout_after_shift_minutes"`

	EnableAutoAttendance   bool     `json:"enable_auto_attendance"`
	Determination          string   `json:"determination"`
	Calculation            string   `json:"working_hours_calculation"`
	HalfDayThresholdHours  float64  `json:"half_day_threshold_hours"`
	AbsentThresholdHours   float64  `json:"absent_threshold_hours"`
	EnableLateEntryMarking bool     `json:"enable_late_entry_marking"`
	LateEntryGraceMinutes  int      `json:"late_entry_grace_minutes"`
	EnableEarlyExitMarking bool     `json:"enable_early_exit_marking"`
	EarlyExitGraceMinutes  int      `json:"early_exit_grace_minutes"`
	MarkAbsentOnHolidays   bool     `json:"mark_absent_on_holidays"`
	ProcessAttendanceAfter string   `json:"process_attendance_after"` // YYYY-MM-DD
	HolidayListID          *string  `json:"holiday_list_id,omitempty"`

	// Parsed by Validate
	ParsedStartTime    time.Duration `json:"-"`
	ParsedEndTime      time.Duration `json:"-"`
	ParsedProcessAfter time.Time     `json:"-"`
}

func (r *CreateShiftTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if start, ok := validator.IsValidClockTime(r.StartTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM:SS format",
		})
	} else {
		r.ParsedStartTime = start
	}

	if end, ok := validator.IsValidClockTime(r.EndTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM:SS format",
		})
	} else {
		r.ParsedEndTime = end
	}

	if r.CheckinBeforeMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "checkin_before_shift_minutes",
			Message: "checkin_before_shift_minutes must not be negative",
		})
	}

	if r.CheckoutAfterMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "checkout_after_shift_minutes",
			Message: "checkout_after_shift_minutes must not be negative",
		})
	}

	if r.EnableAutoAttendance {
		if !validator.IsInSlice(r.Determination, CheckinDeterminationValues) {
			errs = append(errs, validator.ValidationError{
				Field:   "determination",
				Message: "determination must be one of: Alternating, Strict",
			})
		}

		if !validator.IsInSlice(r.Calculation, WorkingHoursCalculationValues) {
			errs = append(errs, validator.ValidationError{
				Field:   "working_hours_calculation",
				Message: "working_hours_calculation must be one of: FirstInLastOut, EveryValidPair",
			})
		}

		if r.HalfDayThresholdHours < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "half_day_threshold_hours",
				Message: "half_day_threshold_hours must not be negative",
			})
		}

		if r.AbsentThresholdHours < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "absent_threshold_hours",
				Message: "absent_threshold_hours must not be negative",
			})
		}

		if r.ProcessAttendanceAfter == "" {
			errs = append(errs, validator.ValidationError{
				Field:   "process_attendance_after",
				Message: "process_attendance_after is required when auto attendance is enabled",
			})
		} else if after, valid := validator.IsValidDate(r.ProcessAttendanceAfter); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "process_attendance_after",
				Message: "process_attendance_after must be in YYYY-MM-DD format",
			})
		} else {
			r.ParsedProcessAfter = after
		}
	}

	if r.EnableLateEntryMarking && r.LateEntryGraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_entry_grace_minutes",
			Message: "late_entry_grace_minutes must not be negative",
		})
	}

	if r.EnableEarlyExitMarking && r.EarlyExitGraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "early_exit_grace_minutes",
			Message: "early_exit_grace_minutes must not be negative",
		})
	}

	if r.HolidayListID != nil && !validator.IsValidUUID(*r.HolidayListID) {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_list_id",
			Message: "holiday_list_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateShiftTypeRequest struct {
	ID        string `json:"-"`
	CompanyID string `json:"-"`

	Name                   *string  `json:"name,omitempty"`
	StartTime              *string  `json:"start_time,omitempty"`
	EndTime                *string  `json:"end_time,omitempty"`
	CheckinBeforeMinutes   *int     `json:"checkin_before_shift_minutes,omitempty"`
	CheckoutAfterMinutes   *int     `json:"checkout_after_shift_minutes,omitempty"`
	EnableAutoAttendance   *bool    `json:"enable_auto_attendance,omitempty"`
	Determination          *string  `json:"determination,omitempty"`
	Calculation            *string  `json:"working_hours_calculation,omitempty"`
	HalfDayThresholdHours  *float64 `json:"half_day_threshold_hours,omitempty"`
	AbsentThresholdHours   *float64 `json:"absent_threshold_hours,omitempty"`
	EnableLateEntryMarking *bool    `json:"enable_late_entry_marking,omitempty"`
	LateEntryGraceMinutes  *int     `json:"late_entry_grace_minutes,omitempty"`
	EnableEarlyExitMarking *bool    `json:"enable_early_exit_marking,omitempty"`
	EarlyExitGraceMinutes  *int     `json:"early_exit_grace_minutes,omitempty"`
	MarkAbsentOnHolidays   *bool    `json:"mark_absent_on_holidays,omitempty"`
	ProcessAttendanceAfter *string  `json:"process_attendance_after,omitempty"`
	HolidayListID          *string  `json:"holiday_list_id,omitempty"`

	ParsedStartTime    *time.Duration `json:"-"`
	ParsedEndTime      *time.Duration `json:"-"`
	ParsedProcessAfter *time.Time     `json:"-"`
}

func (r *UpdateShiftTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.StartTime != nil {
		if start, ok := validator.IsValidClockTime(*r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be in HH:MM:SS format",
			})
		} else {
			r.ParsedStartTime = &start
		}
	}

	if r.EndTime != nil {
		if end, ok := validator.IsValidClockTime(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be in HH:MM:SS format",
			})
		} else {
			r.ParsedEndTime = &end
		}
	}

	if r.Determination != nil && !validator.IsInSlice(*r.Determination, CheckinDeterminationValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "determination",
			Message: "determination must be one of: Alternating, Strict",
		})
	}

	if r.Calculation != nil && !validator.IsInSlice(*r.Calculation, WorkingHoursCalculationValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "working_hours_calculation",
			Message: "working_hours_calculation must be one of: FirstInLastOut, EveryValidPair",
		})
	}

	if r.ProcessAttendanceAfter != nil {
		if after, valid := validator.IsValidDate(*r.ProcessAttendanceAfter); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "process_attendance_after",
				Message: "process_attendance_after must be in YYYY-MM-DD format",
			})
		} else {
			r.ParsedProcessAfter = &after
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftTypeResponse struct {
	ID                     string  `json:"id"`
	Name                   string  `json:"name"`
	StartTime              string  `json:"start_time"`
	EndTime                string  `json:"end_time"`
	CheckinBeforeMinutes   int     `json:"checkin_before_shift_minutes"`
	CheckoutAfterMinutes   int     `json:"checkout_after_shift_minutes"`
	EnableAutoAttendance   bool    `json:"enable_auto_attendance"`
	Determination          string  `json:"determination,omitempty"`
	Calculation            string  `json:"working_hours_calculation,omitempty"`
	HalfDayThresholdHours  float64 `json:"half_day_threshold_hours"`
	AbsentThresholdHours   float64 `json:"absent_threshold_hours"`
	EnableLateEntryMarking bool    `json:"enable_late_entry_marking"`
	LateEntryGraceMinutes  int     `json:"late_entry_grace_minutes"`
	EnableEarlyExitMarking bool    `json:"enable_early_exit_marking"`
	EarlyExitGraceMinutes  int     `json:"early_exit_grace_minutes"`
	MarkAbsentOnHolidays   bool    `json:"mark_absent_on_holidays"`
	ProcessAttendanceAfter string  `json:"process_attendance_after,omitempty"`
	LastSyncOfCheckins     *string `json:"last_sync_of_checkins,omitempty"`
	HolidayListID          *string `json:"holiday_list_id,omitempty"`
	CreatedAt              string  `json:"created_at"`
	UpdatedAt              string  `json:"updated_at"`
}

type ShiftTypeFilter struct {
	Name *string `json:"name,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ShiftTypeFilter) Validate() error {
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListShiftTypeResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	ShiftTypes []ShiftTypeResponse `json:"shift_types"`
}

// ========================================
// SHIFT ASSIGNMENT DTOs
// ========================================

type CreateAssignmentRequest struct {
	CompanyID string `json:"-"`

	EmployeeID      string  `json:"employee_id"`
	ShiftTypeID     string  `json:"shift_type_id"`
	StartDate       string  `json:"start_date"`         // YYYY-MM-DD
	EndDate         *string `json:"end_date,omitempty"` // YYYY-MM-DD
	Status          string  `json:"status"`
	ShiftLocationID *string `json:"shift_location_id,omitempty"`

	ParsedStartDate time.Time  `json:"-"`
	ParsedEndDate   *time.Time `json:"-"`
}

func (r *CreateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.ShiftTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_type_id",
			Message: "shift_type_id is required",
		})
	}

	if start, valid := validator.IsValidDate(r.StartDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	} else {
		r.ParsedStartDate = start
	}

	if r.EndDate != nil && *r.EndDate != "" {
		if end, valid := validator.IsValidDate(*r.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else {
			r.ParsedEndDate = &end
		}
	}

	if r.ParsedEndDate != nil && r.ParsedEndDate.Before(r.ParsedStartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if r.Status == "" {
		r.Status = string(AssignmentActive) // Default status
	} else if !validator.IsInSlice(r.Status, AssignmentStatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Active, Inactive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkCreateAssignmentsRequest struct {
	CompanyID string `json:"-"`

	EmployeeIDs     []string `json:"employee_ids"`
	ShiftTypeID     string   `json:"shift_type_id"`
	StartDate       string   `json:"start_date"`
	EndDate         *string  `json:"end_date,omitempty"`
	ShiftLocationID *string  `json:"shift_location_id,omitempty"`

	ParsedStartDate time.Time  `json:"-"`
	ParsedEndDate   *time.Time `json:"-"`
}

func (r *BulkCreateAssignmentsRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: "employee_ids must not be empty",
		})
	}

	if validator.IsEmpty(r.ShiftTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_type_id",
			Message: "shift_type_id is required",
		})
	}

	if start, valid := validator.IsValidDate(r.StartDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	} else {
		r.ParsedStartDate = start
	}

	if r.EndDate != nil && *r.EndDate != "" {
		if end, valid := validator.IsValidDate(*r.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else {
			r.ParsedEndDate = &end
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EndAssignmentRequest struct {
	ID        string `json:"-"`
	CompanyID string `json:"-"`

	EndDate string `json:"end_date"` // YYYY-MM-DD

	ParsedEndDate time.Time `json:"-"`
}

func (r *EndAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if end, valid := validator.IsValidDate(r.EndDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	} else {
		r.ParsedEndDate = end
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignmentResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	ShiftTypeID     string  `json:"shift_type_id"`
	ShiftTypeName   *string `json:"shift_type_name,omitempty"`
	StartDate       string  `json:"start_date"`
	EndDate         *string `json:"end_date,omitempty"`
	Status          string  `json:"status"`
	ShiftLocationID *string `json:"shift_location_id,omitempty"`
	ScheduleID      *string `json:"schedule_id,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type BulkAssignmentResponse struct {
	Created []AssignmentResponse `json:"created"`
	Failed  []BulkAssignmentFailure `json:"failed"`
}

type BulkAssignmentFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type AssignmentFilter struct {
	EmployeeID  *string `json:"employee_id,omitempty"`
	ShiftTypeID *string `json:"shift_type_id,omitempty"`
	Status      *string `json:"status,omitempty"`
	Date        *string `json:"date,omitempty"` // YYYY-MM-DD, assignments covering this date

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // start_date, end_date, employee_name
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AssignmentFilter) Validate() error {
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

	if f.Status != nil && !validator.IsInSlice(*f.Status, AssignmentStatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Active, Inactive",
		})
	}

	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"start_date", "end_date", "employee_name"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: start_date, end_date, employee_name",
			})
		}
	} else {
		f.SortBy = "start_date" // Default sort
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

type ListAssignmentResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Assignments []AssignmentResponse `json:"assignments"`
}

// ========================================
// SHIFT LOCATION DTOs
// ========================================

type CreateLocationRequest struct {
	CompanyID string `json:"-"`

	Name                string  `json:"name"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	CheckinRadiusMeters int     `json:"checkin_radius_meters"`
}

func (r *CreateLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.CheckinRadiusMeters < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "checkin_radius_meters",
			Message: "checkin_radius_meters must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLocationRequest struct {
	ID        string `json:"-"`
	CompanyID string `json:"-"`

	Name                *string  `json:"name,omitempty"`
	Latitude            *float64 `json:"latitude,omitempty"`
	Longitude           *float64 `json:"longitude,omitempty"`
	CheckinRadiusMeters *int     `json:"checkin_radius_meters,omitempty"`
}

func (r *UpdateLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
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

type LocationResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	CheckinRadiusMeters int     `json:"checkin_radius_meters"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

// ========================================
// SHIFT SCHEDULE DTOs
// ========================================

type CreateScheduleRequest struct {
	CompanyID string `json:"-"`

	EmployeeID      string   `json:"employee_id"`
	ShiftTypeID     string   `json:"shift_type_id"`
	RepeatOnDays    []string `json:"repeat_on_days"` // weekday names
	FrequencyWeeks  int      `json:"frequency_weeks"`
	Enabled         *bool    `json:"enabled,omitempty"`
	StartDate       string   `json:"start_date"` // YYYY-MM-DD, first date shifts are created from
	ShiftStatus     string   `json:"shift_status"`
	ShiftLocationID *string  `json:"shift_location_id,omitempty"`

	ParsedRepeatOnDays []time.Weekday `json:"-"`
	ParsedStartDate    time.Time      `json:"-"`
}

func (r *CreateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.ShiftTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_type_id",
			Message: "shift_type_id is required",
		})
	}

	if len(r.RepeatOnDays) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "repeat_on_days",
			Message: "repeat_on_days must not be empty",
		})
	}
	seen := map[time.Weekday]bool{}
	for _, dayStr := range r.RepeatOnDays {
		day, ok := validator.IsValidWeekday(dayStr)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "repeat_on_days",
				Message: "repeat_on_days must contain weekday names (Monday..Sunday)",
			})
			break
		}
		if !seen[day] {
			seen[day] = true
			r.ParsedRepeatOnDays = append(r.ParsedRepeatOnDays, day)
		}
	}

	if r.FrequencyWeeks < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "frequency_weeks",
			Message: "frequency_weeks must be at least 1",
		})
	}

	if start, valid := validator.IsValidDate(r.StartDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	} else {
		r.ParsedStartDate = start
	}

	if r.ShiftStatus == "" {
		r.ShiftStatus = string(AssignmentActive) // Default status
	} else if !validator.IsInSlice(r.ShiftStatus, AssignmentStatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_status",
			Message: "shift_status must be one of: Active, Inactive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ScheduleResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	ShiftTypeID       string   `json:"shift_type_id"`
	RepeatOnDays      []string `json:"repeat_on_days"`
	FrequencyWeeks    int      `json:"frequency_weeks"`
	Enabled           bool     `json:"enabled"`
	CreateShiftsAfter string   `json:"create_shifts_after"`
	ShiftStatus       string   `json:"shift_status"`
	ShiftLocationID   *string  `json:"shift_location_id,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}
