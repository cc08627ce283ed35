package shift

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/rotalabs/shift-backend-go/internal/domain/employee"
	"github.com/rotalabs/shift-backend-go/internal/domain/shift"
)

// materializeHorizonDays is how far ahead of today the recurrence job creates
// assignments.
const materializeHorizonDays = 30

type shiftServiceImpl struct {
	shiftTypeRepo  shift.ShiftTypeRepository
	assignmentRepo shift.ShiftAssignmentRepository
	locationRepo   shift.ShiftLocationRepository
	scheduleRepo   shift.ShiftScheduleRepository
	employeeRepo   employee.EmployeeRepository

	// allowMultipleAssignments permits assignments with overlapping date
	// ranges as long as their padded time windows do not intersect.
	allowMultipleAssignments bool
}

func NewShiftService(
	shiftTypeRepo shift.ShiftTypeRepository,
	assignmentRepo shift.ShiftAssignmentRepository,
	locationRepo shift.ShiftLocationRepository,
	scheduleRepo shift.ShiftScheduleRepository,
	employeeRepo employee.EmployeeRepository,
	allowMultipleAssignments bool,
) shift.ShiftService {
	return &shiftServiceImpl{
		shiftTypeRepo:            shiftTypeRepo,
		assignmentRepo:           assignmentRepo,
		locationRepo:             locationRepo,
		scheduleRepo:             scheduleRepo,
		employeeRepo:             employeeRepo,
		allowMultipleAssignments: allowMultipleAssignments,
	}
}

// ========================================
// SHIFT TYPE
// ========================================

// CreateShiftType implements shift.ShiftService.
func (s *shiftServiceImpl) CreateShiftType(ctx context.Context, req shift.CreateShiftTypeRequest) (shift.ShiftTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftTypeResponse{}, err
	}

	st := shift.ShiftType{
		CompanyID:              req.CompanyID,
		Name:                   req.Name,
		StartTime:              req.ParsedStartTime,
		EndTime:                req.ParsedEndTime,
		CheckinBeforeMinutes:   req.CheckinBeforeMinutes,
		CheckoutAfterMinutes:   req.CheckoutAfterMinutes,
		EnableAutoAttendance:   req.EnableAutoAttendance,
		Determination:          shift.CheckinDetermination(req.Determination),
		Calculation:            shift.WorkingHoursCalculation(req.Calculation),
		RoundingPrecision:      2,
		HalfDayThresholdHours:  req.HalfDayThresholdHours,
		AbsentThresholdHours:   req.AbsentThresholdHours,
		EnableLateEntryMarking: req.EnableLateEntryMarking,
		LateEntryGraceMinutes:  req.LateEntryGraceMinutes,
		EnableEarlyExitMarking: req.EnableEarlyExitMarking,
		EarlyExitGraceMinutes:  req.EarlyExitGraceMinutes,
		MarkAbsentOnHolidays:   req.MarkAbsentOnHolidays,
		ProcessAttendanceAfter: req.ParsedProcessAfter,
		HolidayListID:          req.HolidayListID,
	}

	created, err := s.shiftTypeRepo.Create(ctx, st)
	if err != nil {
		if errors.Is(err, shift.ErrShiftTypeNameExists) {
			return shift.ShiftTypeResponse{}, shift.ErrShiftTypeNameExists
		}
		return shift.ShiftTypeResponse{}, fmt.Errorf("failed to create shift type: %w", err)
	}

	return mapShiftTypeToResponse(created), nil
}

// GetShiftType implements shift.ShiftService.
func (s *shiftServiceImpl) GetShiftType(ctx context.Context, id string, companyID string) (shift.ShiftTypeResponse, error) {
	st, err := s.shiftTypeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftTypeNotFound) {
			return shift.ShiftTypeResponse{}, shift.ErrShiftTypeNotFound
		}
		return shift.ShiftTypeResponse{}, fmt.Errorf("failed to get shift type: %w", err)
	}
	return mapShiftTypeToResponse(st), nil
}

// ListShiftTypes implements shift.ShiftService.
func (s *shiftServiceImpl) ListShiftTypes(ctx context.Context, filter shift.ShiftTypeFilter, companyID string) (shift.ListShiftTypeResponse, error) {
	if err := filter.Validate(); err != nil {
		return shift.ListShiftTypeResponse{}, err
	}

	shiftTypes, total, err := s.shiftTypeRepo.List(ctx, filter, companyID)
	if err != nil {
		return shift.ListShiftTypeResponse{}, fmt.Errorf("failed to list shift types: %w", err)
	}

	responses := make([]shift.ShiftTypeResponse, 0, len(shiftTypes))
	for _, st := range shiftTypes {
		responses = append(responses, mapShiftTypeToResponse(st))
	}

	return shift.ListShiftTypeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		ShiftTypes: responses,
	}, nil
}

// UpdateShiftType implements shift.ShiftService.
func (s *shiftServiceImpl) UpdateShiftType(ctx context.Context, req shift.UpdateShiftTypeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	st, err := s.shiftTypeRepo.GetByID(ctx, req.ID, req.CompanyID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftTypeNotFound) {
			return shift.ErrShiftTypeNotFound
		}
		return fmt.Errorf("failed to get shift type: %w", err)
	}

	applyShiftTypeUpdate(&st, req)

	if err := s.shiftTypeRepo.Update(ctx, st); err != nil {
		if errors.Is(err, shift.ErrShiftTypeNameExists) {
			return shift.ErrShiftTypeNameExists
		}
		return fmt.Errorf("failed to update shift type: %w", err)
	}
	return nil
}

func applyShiftTypeUpdate(st *shift.ShiftType, req shift.UpdateShiftTypeRequest) {
	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.ParsedStartTime != nil {
		st.StartTime = *req.ParsedStartTime
	}
	if req.ParsedEndTime != nil {
		st.EndTime = *req.ParsedEndTime
	}
	if req.CheckinBeforeMinutes != nil {
		st.CheckinBeforeMinutes = *req.CheckinBeforeMinutes
	}
	if req.CheckoutAfterMinutes != nil {
		st.CheckoutAfterMinutes = *req.CheckoutAfterMinutes
	}
	if req.EnableAutoAttendance != nil {
		st.EnableAutoAttendance = *req.EnableAutoAttendance
	}
	if req.Determination != nil {
		st.Determination = shift.CheckinDetermination(*req.Determination)
	}
	if req.Calculation != nil {
		st.Calculation = shift.WorkingHoursCalculation(*req.Calculation)
	}
	if req.HalfDayThresholdHours != nil {
		st.HalfDayThresholdHours = *req.HalfDayThresholdHours
	}
	if req.AbsentThresholdHours != nil {
		st.AbsentThresholdHours = *req.AbsentThresholdHours
	}
	if req.EnableLateEntryMarking != nil {
		st.EnableLateEntryMarking = *req.EnableLateEntryMarking
	}
	if req.LateEntryGraceMinutes != nil {
		st.LateEntryGraceMinutes = *req.LateEntryGraceMinutes
	}
	if req.EnableEarlyExitMarking != nil {
		st.EnableEarlyExitMarking = *req.EnableEarlyExitMarking
	}
	if req.EarlyExitGraceMinutes != nil {
		st.EarlyExitGraceMinutes = *req.EarlyExitGraceMinutes
	}
	if req.MarkAbsentOnHolidays != nil {
		st.MarkAbsentOnHolidays = *req.MarkAbsentOnHolidays
	}
	if req.ParsedProcessAfter != nil {
		st.ProcessAttendanceAfter = *req.ParsedProcessAfter
	}
	if req.HolidayListID != nil {
		st.HolidayListID = req.HolidayListID
	}
}

// DeleteShiftType implements shift.ShiftService.
func (s *shiftServiceImpl) DeleteShiftType(ctx context.Context, id string, companyID string) error {
	if err := s.shiftTypeRepo.Delete(ctx, id, companyID); err != nil {
		if errors.Is(err, shift.ErrShiftTypeNotFound) || errors.Is(err, shift.ErrShiftTypeInUse) {
			return err
		}
		return fmt.Errorf("failed to delete shift type: %w", err)
	}
	return nil
}

// ========================================
// SHIFT ASSIGNMENT
// ========================================

// CreateAssignment implements shift.ShiftService.
func (s *shiftServiceImpl) CreateAssignment(ctx context.Context, req shift.CreateAssignmentRequest) (shift.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.AssignmentResponse{}, err
	}

	assignment := shift.ShiftAssignment{
		CompanyID:       req.CompanyID,
		EmployeeID:      req.EmployeeID,
		ShiftTypeID:     req.ShiftTypeID,
		StartDate:       req.ParsedStartDate,
		EndDate:         req.ParsedEndDate,
		Status:          shift.AssignmentStatus(req.Status),
		ShiftLocationID: req.ShiftLocationID,
	}

	created, err := s.createValidatedAssignment(ctx, assignment)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}
	return mapAssignmentToResponse(created), nil
}

// BulkCreateAssignments implements shift.ShiftService. Each employee is
// validated independently; failures are reported per employee instead of
// aborting the batch.
func (s *shiftServiceImpl) BulkCreateAssignments(ctx context.Context, req shift.BulkCreateAssignmentsRequest) (shift.BulkAssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.BulkAssignmentResponse{}, err
	}

	resp := shift.BulkAssignmentResponse{
		Created: []shift.AssignmentResponse{},
		Failed:  []shift.BulkAssignmentFailure{},
	}
	for _, employeeID := range req.EmployeeIDs {
		assignment := shift.ShiftAssignment{
			CompanyID:       req.CompanyID,
			EmployeeID:      employeeID,
			ShiftTypeID:     req.ShiftTypeID,
			StartDate:       req.ParsedStartDate,
			EndDate:         req.ParsedEndDate,
			Status:          shift.AssignmentActive,
			ShiftLocationID: req.ShiftLocationID,
		}
		created, err := s.createValidatedAssignment(ctx, assignment)
		if err != nil {
			resp.Failed = append(resp.Failed, shift.BulkAssignmentFailure{
				EmployeeID: employeeID,
				Reason:     err.Error(),
			})
			continue
		}
		resp.Created = append(resp.Created, mapAssignmentToResponse(created))
	}
	return resp, nil
}

func (s *shiftServiceImpl) createValidatedAssignment(ctx context.Context, assignment shift.ShiftAssignment) (shift.ShiftAssignment, error) {
	emp, err := s.employeeRepo.GetByID(ctx, assignment.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return shift.ShiftAssignment{}, employee.ErrEmployeeNotFound
		}
		return shift.ShiftAssignment{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive() {
		return shift.ShiftAssignment{}, employee.ErrInactiveEmployee
	}
	if emp.CompanyID != assignment.CompanyID {
		return shift.ShiftAssignment{}, employee.ErrEmployeeNotFound
	}

	if _, err := s.shiftTypeRepo.GetByID(ctx, assignment.ShiftTypeID, assignment.CompanyID); err != nil {
		if errors.Is(err, shift.ErrShiftTypeNotFound) {
			return shift.ShiftAssignment{}, shift.ErrShiftTypeNotFound
		}
		return shift.ShiftAssignment{}, fmt.Errorf("failed to get shift type: %w", err)
	}

	if assignment.Status == shift.AssignmentActive {
		if err := s.validateNoOverlap(ctx, assignment); err != nil {
			return shift.ShiftAssignment{}, err
		}
	}

	created, err := s.assignmentRepo.Create(ctx, assignment)
	if err != nil {
		return shift.ShiftAssignment{}, fmt.Errorf("failed to create shift assignment: %w", err)
	}
	return created, nil
}

// validateNoOverlap rejects an assignment whose date range intersects another
// active assignment of the employee. When multiple assignments are allowed,
// only a padded time-window intersection is a conflict.
func (s *shiftServiceImpl) validateNoOverlap(ctx context.Context, assignment shift.ShiftAssignment) error {
	overlapping, err := s.assignmentRepo.ListOverlappingDates(ctx, assignment.EmployeeID, assignment.StartDate, assignment.EndDate, assignment.ID)
	if err != nil {
		return fmt.Errorf("failed to list overlapping assignments: %w", err)
	}
	if len(overlapping) == 0 {
		return nil
	}

	if !s.allowMultipleAssignments {
		return fmt.Errorf("%w: conflicts with assignment %s", shift.ErrMultipleShiftAssignments, overlapping[0].ID)
	}

	newType, err := s.shiftTypeRepo.GetByID(ctx, assignment.ShiftTypeID, assignment.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to get shift type: %w", err)
	}
	for _, other := range overlapping {
		otherType, err := s.shiftTypeRepo.GetByID(ctx, other.ShiftTypeID, other.CompanyID)
		if err != nil {
			return fmt.Errorf("failed to get shift type of assignment %s: %w", other.ID, err)
		}
		if HasOverlappingTimings(newType, otherType) {
			return fmt.Errorf("%w: conflicts with assignment %s (%s)", shift.ErrOverlappingShiftTimings, other.ID, otherType.Name)
		}
	}
	return nil
}

// GetAssignment implements shift.ShiftService.
func (s *shiftServiceImpl) GetAssignment(ctx context.Context, id string, companyID string) (shift.AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, shift.ErrAssignmentNotFound) {
			return shift.AssignmentResponse{}, shift.ErrAssignmentNotFound
		}
		return shift.AssignmentResponse{}, fmt.Errorf("failed to get shift assignment: %w", err)
	}
	return mapAssignmentToResponse(assignment), nil
}

// ListAssignments implements shift.ShiftService.
func (s *shiftServiceImpl) ListAssignments(ctx context.Context, filter shift.AssignmentFilter, companyID string) (shift.ListAssignmentResponse, error) {
	if err := filter.Validate(); err != nil {
		return shift.ListAssignmentResponse{}, err
	}

	assignments, total, err := s.assignmentRepo.List(ctx, filter, companyID)
	if err != nil {
		return shift.ListAssignmentResponse{}, fmt.Errorf("failed to list shift assignments: %w", err)
	}

	responses := make([]shift.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, mapAssignmentToResponse(a))
	}

	return shift.ListAssignmentResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Assignments: responses,
	}, nil
}

// EndAssignment implements shift.ShiftService.
func (s *shiftServiceImpl) EndAssignment(ctx context.Context, req shift.EndAssignmentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, req.ID, req.CompanyID)
	if err != nil {
		if errors.Is(err, shift.ErrAssignmentNotFound) {
			return shift.ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to get shift assignment: %w", err)
	}

	if req.ParsedEndDate.Before(assignment.StartDate) {
		return shift.ErrAssignmentEndBeforeStart
	}

	assignment.EndDate = &req.ParsedEndDate
	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return fmt.Errorf("failed to end shift assignment: %w", err)
	}
	return nil
}

// DeleteAssignment implements shift.ShiftService.
func (s *shiftServiceImpl) DeleteAssignment(ctx context.Context, id string, companyID string) error {
	if err := s.assignmentRepo.Delete(ctx, id, companyID); err != nil {
		if errors.Is(err, shift.ErrAssignmentNotFound) {
			return shift.ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to delete shift assignment: %w", err)
	}
	return nil
}

// ========================================
// SHIFT RESOLUTION
// ========================================

// ResolveShiftForTimestamp implements shift.Resolver. Assignments of the
// surrounding days are considered so overnight occurrences and padded margins
// on either side of midnight resolve correctly.
func (s *shiftServiceImpl) ResolveShiftForTimestamp(ctx context.Context, employeeID string, ts time.Time, considerDefault bool) (*shift.ResolvedShift, error) {
	from := dateOnly(ts).AddDate(0, 0, -1)
	to := dateOnly(ts).AddDate(0, 0, 1)

	assignments, err := s.assignmentRepo.ListActiveForEmployeeBetween(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", err)
	}

	types := make(map[string]shift.ShiftType)
	assigned := make([]AssignedShift, 0, len(assignments))
	for _, a := range assignments {
		st, ok := types[a.ShiftTypeID]
		if !ok {
			st, err = s.shiftTypeRepo.GetByID(ctx, a.ShiftTypeID, a.CompanyID)
			if err != nil {
				return nil, fmt.Errorf("failed to get shift type %s: %w", a.ShiftTypeID, err)
			}
			types[a.ShiftTypeID] = st
		}
		assigned = append(assigned, AssignedShift{Assignment: a, ShiftType: st})
	}

	if resolved, ok := ShiftForTimestamp(assigned, ts); ok {
		return &resolved, nil
	}

	if !considerDefault {
		return nil, nil
	}
	return s.resolveDefaultShift(ctx, employeeID, ts)
}

// resolveDefaultShift falls back to the employee's default shift; it never
// applies when an explicit assignment matched.
func (s *shiftServiceImpl) resolveDefaultShift(ctx context.Context, employeeID string, ts time.Time) (*shift.ResolvedShift, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.DefaultShiftTypeID == nil {
		return nil, nil
	}

	st, err := s.shiftTypeRepo.GetByID(ctx, *emp.DefaultShiftTypeID, emp.CompanyID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftTypeNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get default shift type: %w", err)
	}

	bounds := BoundsForTimestamp(st, ts)
	if !WithinActualWindow(bounds, ts) {
		return nil, nil
	}
	return &shift.ResolvedShift{ShiftBounds: bounds}, nil
}

// ========================================
// SHIFT LOCATION
// ========================================

// CreateLocation implements shift.ShiftService.
func (s *shiftServiceImpl) CreateLocation(ctx context.Context, req shift.CreateLocationRequest) (shift.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.LocationResponse{}, err
	}

	created, err := s.locationRepo.Create(ctx, shift.ShiftLocation{
		CompanyID:           req.CompanyID,
		Name:                req.Name,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		CheckinRadiusMeters: req.CheckinRadiusMeters,
	})
	if err != nil {
		return shift.LocationResponse{}, fmt.Errorf("failed to create shift location: %w", err)
	}
	return mapLocationToResponse(created), nil
}

// GetLocation implements shift.ShiftService.
func (s *shiftServiceImpl) GetLocation(ctx context.Context, id string, companyID string) (shift.LocationResponse, error) {
	location, err := s.locationRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, shift.ErrLocationNotFound) {
			return shift.LocationResponse{}, shift.ErrLocationNotFound
		}
		return shift.LocationResponse{}, fmt.Errorf("failed to get shift location: %w", err)
	}
	return mapLocationToResponse(location), nil
}

// ListLocations implements shift.ShiftService.
func (s *shiftServiceImpl) ListLocations(ctx context.Context, companyID string) ([]shift.LocationResponse, error) {
	locations, err := s.locationRepo.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift locations: %w", err)
	}
	responses := make([]shift.LocationResponse, 0, len(locations))
	for _, l := range locations {
		responses = append(responses, mapLocationToResponse(l))
	}
	return responses, nil
}

// UpdateLocation implements shift.ShiftService.
func (s *shiftServiceImpl) UpdateLocation(ctx context.Context, req shift.UpdateLocationRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	location, err := s.locationRepo.GetByID(ctx, req.ID, req.CompanyID)
	if err != nil {
		if errors.Is(err, shift.ErrLocationNotFound) {
			return shift.ErrLocationNotFound
		}
		return fmt.Errorf("failed to get shift location: %w", err)
	}

	if req.Name != nil {
		location.Name = *req.Name
	}
	if req.Latitude != nil {
		location.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		location.Longitude = *req.Longitude
	}
	if req.CheckinRadiusMeters != nil {
		location.CheckinRadiusMeters = *req.CheckinRadiusMeters
	}

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return fmt.Errorf("failed to update shift location: %w", err)
	}
	return nil
}

// DeleteLocation implements shift.ShiftService.
func (s *shiftServiceImpl) DeleteLocation(ctx context.Context, id string, companyID string) error {
	if err := s.locationRepo.Delete(ctx, id, companyID); err != nil {
		if errors.Is(err, shift.ErrLocationNotFound) {
			return shift.ErrLocationNotFound
		}
		return fmt.Errorf("failed to delete shift location: %w", err)
	}
	return nil
}

// ========================================
// SHIFT SCHEDULE
// ========================================

// CreateSchedule implements shift.ShiftService.
func (s *shiftServiceImpl) CreateSchedule(ctx context.Context, req shift.CreateScheduleRequest) (shift.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ScheduleResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return shift.ScheduleResponse{}, employee.ErrEmployeeNotFound
		}
		return shift.ScheduleResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive() {
		return shift.ScheduleResponse{}, employee.ErrInactiveEmployee
	}

	if _, err := s.shiftTypeRepo.GetByID(ctx, req.ShiftTypeID, req.CompanyID); err != nil {
		if errors.Is(err, shift.ErrShiftTypeNotFound) {
			return shift.ScheduleResponse{}, shift.ErrShiftTypeNotFound
		}
		return shift.ScheduleResponse{}, fmt.Errorf("failed to get shift type: %w", err)
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	created, err := s.scheduleRepo.Create(ctx, shift.ShiftSchedule{
		CompanyID:      req.CompanyID,
		EmployeeID:     req.EmployeeID,
		ShiftTypeID:    req.ShiftTypeID,
		RepeatOnDays:   req.ParsedRepeatOnDays,
		FrequencyWeeks: req.FrequencyWeeks,
		Enabled:        enabled,
		// The walk starts the day after the high-water mark.
		CreateShiftsAfter: req.ParsedStartDate.AddDate(0, 0, -1),
		ShiftStatus:       shift.AssignmentStatus(req.ShiftStatus),
		ShiftLocationID:   req.ShiftLocationID,
	})
	if err != nil {
		return shift.ScheduleResponse{}, fmt.Errorf("failed to create shift schedule: %w", err)
	}
	return mapScheduleToResponse(created), nil
}

// GetSchedule implements shift.ShiftService.
func (s *shiftServiceImpl) GetSchedule(ctx context.Context, id string, companyID string) (shift.ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, shift.ErrScheduleNotFound) {
			return shift.ScheduleResponse{}, shift.ErrScheduleNotFound
		}
		return shift.ScheduleResponse{}, fmt.Errorf("failed to get shift schedule: %w", err)
	}
	return mapScheduleToResponse(schedule), nil
}

// ListSchedules implements shift.ShiftService.
func (s *shiftServiceImpl) ListSchedules(ctx context.Context, companyID string) ([]shift.ScheduleResponse, error) {
	schedules, err := s.scheduleRepo.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift schedules: %w", err)
	}
	responses := make([]shift.ScheduleResponse, 0, len(schedules))
	for _, sc := range schedules {
		responses = append(responses, mapScheduleToResponse(sc))
	}
	return responses, nil
}

// DeleteSchedule implements shift.ShiftService.
func (s *shiftServiceImpl) DeleteSchedule(ctx context.Context, id string, companyID string) error {
	if err := s.scheduleRepo.Delete(ctx, id, companyID); err != nil {
		if errors.Is(err, shift.ErrScheduleNotFound) {
			return shift.ErrScheduleNotFound
		}
		return fmt.Errorf("failed to delete shift schedule: %w", err)
	}
	return nil
}

// MaterializeDueSchedules implements shift.ShiftService. Failures are
// isolated per schedule so one broken recurrence cannot stall the rest.
func (s *shiftServiceImpl) MaterializeDueSchedules(ctx context.Context) error {
	horizon := dateOnly(time.Now().UTC()).AddDate(0, 0, materializeHorizonDays)

	due, err := s.scheduleRepo.ListDue(ctx, horizon)
	if err != nil {
		return fmt.Errorf("failed to list due shift schedules: %w", err)
	}

	for _, schedule := range due {
		if err := s.materializeSchedule(ctx, schedule, horizon); err != nil {
			slog.Error("failed to materialize shift schedule",
				"schedule_id", schedule.ID,
				"employee_id", schedule.EmployeeID,
				"error", err)
		}
	}
	return nil
}

func (s *shiftServiceImpl) materializeSchedule(ctx context.Context, schedule shift.ShiftSchedule, horizon time.Time) error {
	start := schedule.CreateShiftsAfter.AddDate(0, 0, 1)
	ranges := GenerateOccurrences(start, horizon, schedule.RepeatOnDays, schedule.FrequencyWeeks)

	for _, r := range ranges {
		endDate := r.End
		scheduleID := schedule.ID
		assignment := shift.ShiftAssignment{
			CompanyID:       schedule.CompanyID,
			EmployeeID:      schedule.EmployeeID,
			ShiftTypeID:     schedule.ShiftTypeID,
			StartDate:       r.Start,
			EndDate:         &endDate,
			Status:          schedule.ShiftStatus,
			ShiftLocationID: schedule.ShiftLocationID,
			ScheduleID:      &scheduleID,
		}
		if _, err := s.createValidatedAssignment(ctx, assignment); err != nil {
			// Overlaps with manually created assignments are expected; skip
			// the occurrence and keep walking.
			if errors.Is(err, shift.ErrMultipleShiftAssignments) || errors.Is(err, shift.ErrOverlappingShiftTimings) {
				slog.Warn("skipping overlapping schedule occurrence",
					"schedule_id", schedule.ID,
					"employee_id", schedule.EmployeeID,
					"start_date", r.Start.Format("2006-01-02"),
					"error", err)
				continue
			}
			return err
		}
	}

	return s.scheduleRepo.SetCreateShiftsAfter(ctx, schedule.ID, horizon)
}

// ========================================
// MAPPERS
// ========================================

const timestampFormat = "2006-01-02T15:04:05Z"

func formatClock(d time.Duration) string {
	d = clockOffset(d)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	sec := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

func mapShiftTypeToResponse(st shift.ShiftType) shift.ShiftTypeResponse {
	resp := shift.ShiftTypeResponse{
		ID:                     st.ID,
		Name:                   st.Name,
		StartTime:              formatClock(st.StartTime),
		EndTime:                formatClock(st.EndTime),
		CheckinBeforeMinutes:   st.CheckinBeforeMinutes,
		CheckoutAfterMinutes:   st.CheckoutAfterMinutes,
		EnableAutoAttendance:   st.EnableAutoAttendance,
		Determination:          string(st.Determination),
		Calculation:            string(st.Calculation),
		HalfDayThresholdHours:  st.HalfDayThresholdHours,
		AbsentThresholdHours:   st.AbsentThresholdHours,
		EnableLateEntryMarking: st.EnableLateEntryMarking,
		LateEntryGraceMinutes:  st.LateEntryGraceMinutes,
		EnableEarlyExitMarking: st.EnableEarlyExitMarking,
		EarlyExitGraceMinutes:  st.EarlyExitGraceMinutes,
		MarkAbsentOnHolidays:   st.MarkAbsentOnHolidays,
		HolidayListID:          st.HolidayListID,
		CreatedAt:              st.CreatedAt.Format(timestampFormat),
		UpdatedAt:              st.UpdatedAt.Format(timestampFormat),
	}
	if !st.ProcessAttendanceAfter.IsZero() {
		resp.ProcessAttendanceAfter = st.ProcessAttendanceAfter.Format("2006-01-02")
	}
	if st.LastSyncOfCheckins != nil {
		lastSync := st.LastSyncOfCheckins.Format(timestampFormat)
		resp.LastSyncOfCheckins = &lastSync
	}
	return resp
}

func mapAssignmentToResponse(a shift.ShiftAssignment) shift.AssignmentResponse {
	resp := shift.AssignmentResponse{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		EmployeeName:    a.EmployeeName,
		ShiftTypeID:     a.ShiftTypeID,
		ShiftTypeName:   a.ShiftTypeName,
		StartDate:       a.StartDate.Format("2006-01-02"),
		Status:          string(a.Status),
		ShiftLocationID: a.ShiftLocationID,
		ScheduleID:      a.ScheduleID,
		CreatedAt:       a.CreatedAt.Format(timestampFormat),
		UpdatedAt:       a.UpdatedAt.Format(timestampFormat),
	}
	if a.EndDate != nil {
		endDate := a.EndDate.Format("2006-01-02")
		resp.EndDate = &endDate
	}
	return resp
}

func mapLocationToResponse(l shift.ShiftLocation) shift.LocationResponse {
	return shift.LocationResponse{
		ID:                  l.ID,
		Name:                l.Name,
		Latitude:            l.Latitude,
		Longitude:           l.Longitude,
		CheckinRadiusMeters: l.CheckinRadiusMeters,
		CreatedAt:           l.CreatedAt.Format(timestampFormat),
		UpdatedAt:           l.UpdatedAt.Format(timestampFormat),
	}
}

func mapScheduleToResponse(sc shift.ShiftSchedule) shift.ScheduleResponse {
	days := make([]string, 0, len(sc.RepeatOnDays))
	for _, d := range sc.RepeatOnDays {
		days = append(days, d.String())
	}
	return shift.ScheduleResponse{
		ID:                sc.ID,
		EmployeeID:        sc.EmployeeID,
		ShiftTypeID:       sc.ShiftTypeID,
		RepeatOnDays:      days,
		FrequencyWeeks:    sc.FrequencyWeeks,
		Enabled:           sc.Enabled,
		CreateShiftsAfter: sc.CreateShiftsAfter.Format("2006-01-02"),
		ShiftStatus:       string(sc.ShiftStatus),
		ShiftLocationID:   sc.ShiftLocationID,
		CreatedAt:         sc.CreatedAt.Format(timestampFormat),
		UpdatedAt:         sc.UpdatedAt.Format(timestampFormat),
	}
}
