package checkin

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rotalabs/shift-backend-go/internal/domain/checkin"
	"github.com/rotalabs/shift-backend-go/internal/domain/employee"
	"github.com/rotalabs/shift-backend-go/internal/domain/shift"
	"github.com/rotalabs/shift-backend-go/internal/pkg/utils"
)

type checkinServiceImpl struct {
	eventRepo    checkin.EventRepository
	employeeRepo employee.EmployeeRepository
	locationRepo shift.ShiftLocationRepository
	resolver     shift.Resolver

	// geolocationTracking enables the geofence check for shifts assigned to a
	// location.
	geolocationTracking bool

	// Per-employee ingestion locks so concurrent punches for the same
	// employee serialize through the duplicate guard.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewCheckinService(
	eventRepo checkin.EventRepository,
	employeeRepo employee.EmployeeRepository,
	locationRepo shift.ShiftLocationRepository,
	resolver shift.Resolver,
	geolocationTracking bool,
) checkin.CheckinService {
	return &checkinServiceImpl{
		eventRepo:           eventRepo,
		employeeRepo:        employeeRepo,
		locationRepo:        locationRepo,
		resolver:            resolver,
		geolocationTracking: geolocationTracking,
		locks:               make(map[string]*sync.Mutex),
	}
}

func (s *checkinServiceImpl) employeeLock(employeeID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[employeeID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[employeeID] = lock
	}
	return lock
}

// IngestEvent implements checkin.CheckinService.
func (s *checkinServiceImpl) IngestEvent(ctx context.Context, req checkin.CreateEventRequest) (checkin.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return checkin.EventResponse{}, err
	}

	emp, err := s.lookupEmployee(ctx, req)
	if err != nil {
		return checkin.EventResponse{}, err
	}
	if !emp.IsActive() {
		return checkin.EventResponse{}, employee.ErrInactiveEmployee
	}

	lock := s.employeeLock(emp.ID)
	lock.Lock()
	defer lock.Unlock()

	direction := checkin.LogDirection(req.Direction)
	exists, err := s.eventRepo.ExistsAt(ctx, emp.ID, req.ParsedTime, direction)
	if err != nil {
		return checkin.EventResponse{}, fmt.Errorf("failed to check for duplicate log: %w", err)
	}
	if exists {
		return checkin.EventResponse{}, checkin.ErrDuplicateLog
	}

	resolved, err := s.resolver.ResolveShiftForTimestamp(ctx, emp.ID, req.ParsedTime, true)
	if err != nil {
		return checkin.EventResponse{}, fmt.Errorf("failed to resolve shift: %w", err)
	}

	if resolved != nil && !req.SkipAutoAttendance &&
		resolved.ShiftType.Determination == shift.DeterminationStrict && direction == "" {
		return checkin.EventResponse{}, checkin.ErrDirectionRequired
	}

	if err := s.enforceGeofence(ctx, resolved, req); err != nil {
		return checkin.EventResponse{}, err
	}

	event := checkin.Event{
		CompanyID:          emp.CompanyID,
		EmployeeID:         emp.ID,
		Time:               req.ParsedTime,
		Direction:          direction,
		DeviceID:           req.DeviceID,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		SkipAutoAttendance: req.SkipAutoAttendance,
	}
	if resolved != nil {
		event.ShiftTypeID = &resolved.ShiftType.ID
		event.ShiftStart = &resolved.Start
		event.ShiftEnd = &resolved.End
		event.ShiftActualStart = &resolved.ActualStart
		event.ShiftActualEnd = &resolved.ActualEnd
	}

	created, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return checkin.EventResponse{}, fmt.Errorf("failed to create checkin event: %w", err)
	}
	return mapEventToResponse(created), nil
}

func (s *checkinServiceImpl) lookupEmployee(ctx context.Context, req checkin.CreateEventRequest) (employee.Employee, error) {
	if req.EmployeeID != "" {
		emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.Employee{}, employee.ErrEmployeeNotFound
			}
			return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
		}
		return emp, nil
	}

	emp, err := s.employeeRepo.GetByAttendanceDeviceID(ctx, *req.DeviceID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by device id: %w", err)
	}
	return emp, nil
}

// enforceGeofence rejects the punch when the resolved assignment pins a
// location and the coordinates fall outside its radius.
func (s *checkinServiceImpl) enforceGeofence(ctx context.Context, resolved *shift.ResolvedShift, req checkin.CreateEventRequest) error {
	if !s.geolocationTracking || resolved == nil || resolved.Assignment == nil || resolved.Assignment.ShiftLocationID == nil {
		return nil
	}

	if req.Latitude == nil || req.Longitude == nil {
		return checkin.ErrCoordinatesRequired
	}

	location, err := s.locationRepo.GetByID(ctx, *resolved.Assignment.ShiftLocationID, resolved.Assignment.CompanyID)
	if err != nil {
		if errors.Is(err, shift.ErrLocationNotFound) {
			return shift.ErrLocationNotFound
		}
		return fmt.Errorf("failed to get shift location: %w", err)
	}

	distance := utils.CalculateHaversineDistance(*req.Latitude, *req.Longitude, location.Latitude, location.Longitude)
	if distance > float64(location.CheckinRadiusMeters) {
		return fmt.Errorf("%w: %.0fm from %s (allowed %dm)",
			checkin.ErrCheckinRadiusExceeded, distance, location.Name, location.CheckinRadiusMeters)
	}
	return nil
}

// GetEvent implements checkin.CheckinService.
func (s *checkinServiceImpl) GetEvent(ctx context.Context, id string, companyID string) (checkin.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, checkin.ErrEventNotFound) {
			return checkin.EventResponse{}, checkin.ErrEventNotFound
		}
		return checkin.EventResponse{}, fmt.Errorf("failed to get checkin event: %w", err)
	}
	return mapEventToResponse(event), nil
}

// ListEvents implements checkin.CheckinService.
func (s *checkinServiceImpl) ListEvents(ctx context.Context, filter checkin.EventFilter, companyID string) (checkin.ListEventResponse, error) {
	if err := filter.Validate(); err != nil {
		return checkin.ListEventResponse{}, err
	}

	events, total, err := s.eventRepo.List(ctx, filter, companyID)
	if err != nil {
		return checkin.ListEventResponse{}, fmt.Errorf("failed to list checkin events: %w", err)
	}

	responses := make([]checkin.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, mapEventToResponse(e))
	}

	return checkin.ListEventResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Checkins:   responses,
	}, nil
}

const timestampFormat = "2006-01-02T15:04:05Z"

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(timestampFormat)
	return &formatted
}

func mapEventToResponse(e checkin.Event) checkin.EventResponse {
	return checkin.EventResponse{
		ID:                 e.ID,
		EmployeeID:         e.EmployeeID,
		EmployeeName:       e.EmployeeName,
		Time:               e.Time.Format(timestampFormat),
		Direction:          string(e.Direction),
		DeviceID:           e.DeviceID,
		Latitude:           e.Latitude,
		Longitude:          e.Longitude,
		ShiftTypeID:        e.ShiftTypeID,
		ShiftStart:         formatTimePtr(e.ShiftStart),
		ShiftEnd:           formatTimePtr(e.ShiftEnd),
		ShiftActualStart:   formatTimePtr(e.ShiftActualStart),
		ShiftActualEnd:     formatTimePtr(e.ShiftActualEnd),
		SkipAutoAttendance: e.SkipAutoAttendance,
		AttendanceID:       e.AttendanceID,
		CreatedAt:          e.CreatedAt.Format(timestampFormat),
	}
}
