package checkin

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotalabs/shift-backend-go/internal/domain/checkin"
	"github.com/rotalabs/shift-backend-go/internal/domain/employee"
	"github.com/rotalabs/shift-backend-go/internal/domain/shift"
)

// ==================== FAKES ====================

type fakeEventRepo struct {
	events  []checkin.Event
	nextID  int
	skipped []string
}

func (f *fakeEventRepo) Create(ctx context.Context, event checkin.Event) (checkin.Event, error) {
	f.nextID++
	event.ID = "evt-" + strconv.Itoa(f.nextID)
	event.CreatedAt = time.Now().UTC()
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string, companyID string) (checkin.Event, error) {
	for _, e := range f.events {
		if e.ID == id && e.CompanyID == companyID {
			return e, nil
		}
	}
	return checkin.Event{}, checkin.ErrEventNotFound
}

func (f *fakeEventRepo) ExistsAt(ctx context.Context, employeeID string, t time.Time, direction checkin.LogDirection) (bool, error) {
	for _, e := range f.events {
		if e.EmployeeID == employeeID && e.Time.Equal(t) && e.Direction == direction {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter checkin.EventFilter, companyID string) ([]checkin.Event, int64, error) {
	var out []checkin.Event
	for _, e := range f.events {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeEventRepo) ListUnprocessed(ctx context.Context, shiftTypeID string, processAfter, cutoff time.Time) ([]checkin.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) LinkAttendance(ctx context.Context, eventIDs []string, attendanceID string) error {
	return nil
}

func (f *fakeEventRepo) MarkSkipped(ctx context.Context, eventIDs []string) error {
	f.skipped = append(f.skipped, eventIDs...)
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByAttendanceDeviceID(ctx context.Context, deviceID string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.AttendanceDeviceID != nil && *emp.AttendanceDeviceID == deviceID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListDefaultShiftEmployeeIDs(ctx context.Context, shiftTypeID string, from time.Time) ([]string, error) {
	return nil, nil
}

type fakeLocationRepo struct {
	locations map[string]shift.ShiftLocation
}

func (f *fakeLocationRepo) Create(ctx context.Context, location shift.ShiftLocation) (shift.ShiftLocation, error) {
	f.locations[location.ID] = location
	return location, nil
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id string, companyID string) (shift.ShiftLocation, error) {
	loc, ok := f.locations[id]
	if !ok {
		return shift.ShiftLocation{}, shift.ErrLocationNotFound
	}
	return loc, nil
}

func (f *fakeLocationRepo) List(ctx context.Context, companyID string) ([]shift.ShiftLocation, error) {
	return nil, nil
}

func (f *fakeLocationRepo) Update(ctx context.Context, location shift.ShiftLocation) error {
	return nil
}

func (f *fakeLocationRepo) Delete(ctx context.Context, id string, companyID string) error {
	return nil
}

type fakeResolver struct {
	resolved *shift.ResolvedShift
}

func (f *fakeResolver) ResolveShiftForTimestamp(ctx context.Context, employeeID string, ts time.Time, considerDefault bool) (*shift.ResolvedShift, error) {
	return f.resolved, nil
}

// ==================== FIXTURES ====================

func activeEmployee() employee.Employee {
	badge := "badge-42"
	return employee.Employee{
		ID:                 "emp-1",
		CompanyID:          "co-1",
		FullName:           "Ayu Lestari",
		Status:             employee.EmploymentStatusActive,
		AttendanceDeviceID: &badge,
	}
}

func dayOccurrence(det shift.CheckinDetermination) *shift.ResolvedShift {
	start := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 10, 17, 0, 0, 0, time.UTC)
	return &shift.ResolvedShift{
		ShiftBounds: shift.ShiftBounds{
			ShiftType: shift.ShiftType{
				ID:            "st-1",
				CompanyID:     "co-1",
				Name:          "Day",
				Determination: det,
			},
			Start:       start,
			End:         end,
			ActualStart: start.Add(-time.Hour),
			ActualEnd:   end.Add(time.Hour),
		},
	}
}

func newTestService(events *fakeEventRepo, resolver *fakeResolver, locations *fakeLocationRepo, tracking bool) checkin.CheckinService {
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{"emp-1": activeEmployee()}}
	if locations == nil {
		locations = &fakeLocationRepo{locations: map[string]shift.ShiftLocation{}}
	}
	return NewCheckinService(events, employees, locations, resolver, tracking)
}

// ==================== TESTS ====================

func TestIngestEvent_TagsResolvedShift(t *testing.T) {
	events := &fakeEventRepo{}
	svc := newTestService(events, &fakeResolver{resolved: dayOccurrence(shift.DeterminationAlternating)}, nil, false)

	resp, err := svc.IngestEvent(context.Background(), checkin.CreateEventRequest{
		EmployeeID: "emp-1",
		Time:       "2026-03-10T09:05:00Z",
	})

	require.NoError(t, err)
	require.NotNil(t, resp.ShiftTypeID)
	assert.Equal(t, "st-1", *resp.ShiftTypeID)
	require.Len(t, events.events, 1)
	assert.Equal(t, "co-1", events.events[0].CompanyID)
	require.NotNil(t, events.events[0].ShiftActualStart)
	assert.Equal(t, time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC), events.events[0].ShiftActualStart.UTC())
}

func TestIngestEvent_ResolvesEmployeeByDeviceID(t *testing.T) {
	events := &fakeEventRepo{}
	svc := newTestService(events, &fakeResolver{}, nil, false)

	badge := "badge-42"
	resp, err := svc.IngestEvent(context.Background(), checkin.CreateEventRequest{
		DeviceID: &badge,
		Time:     "2026-03-10T09:05:00Z",
	})

	require.NoError(t, err)
	assert.Equal(t, "emp-1", resp.EmployeeID)
}

func TestIngestEvent_NoCoveringShift(t *testing.T) {
	events := &fakeEventRepo{}
	svc := newTestService(events, &fakeResolver{resolved: nil}, nil, false)

	resp, err := svc.IngestEvent(context.Background(), checkin.CreateEventRequest{
		EmployeeID: "emp-1",
		Time:       "2026-03-10T03:00:00Z",
	})

	require.NoError(t, err)
	assert.Nil(t, resp.ShiftTypeID)
	assert.Nil(t, resp.ShiftStart)
}

func TestIngestEvent_DuplicateLog(t *testing.T) {
	events := &fakeEventRepo{}
	svc := newTestService(events, &fakeResolver{}, nil, false)

	req := checkin.CreateEventRequest{
		EmployeeID: "emp-1",
		Time:       "2026-03-10T09:05:00Z",
		Direction:  "in",
	}
	_, err := svc.IngestEvent(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.IngestEvent(context.Background(), req)
	assert.ErrorIs(t, err, checkin.ErrDuplicateLog)

	// Same instant with a different direction is a distinct log.
	req.Direction = "out"
	_, err = svc.IngestEvent(context.Background(), req)
	assert.NoError(t, err)
}

func TestIngestEvent_InactiveEmployee(t *testing.T) {
	emp := activeEmployee()
	emp.Status = employee.EmploymentStatusLeft
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{"emp-1": emp}}
	locations := &fakeLocationRepo{locations: map[string]shift.ShiftLocation{}}
	svc := NewCheckinService(&fakeEventRepo{}, employees, locations, &fakeResolver{}, false)

	_, err := svc.IngestEvent(context.Background(), checkin.CreateEventRequest{
		EmployeeID: "emp-1",
		Time:       "2026-03-10T09:05:00Z",
	})

	assert.ErrorIs(t, err, employee.ErrInactiveEmployee)
}

func TestIngestEvent_StrictShiftRequiresDirection(t *testing.T) {
	svc := newTestService(&fakeEventRepo{}, &fakeResolver{resolved: dayOccurrence(shift.DeterminationStrict)}, nil, false)

	_, err := svc.IngestEvent(context.Background(), checkin.CreateEventRequest{
		EmployeeID: "emp-1",
		Time:       "2026-03-10T09:05:00Z",
	})
	assert.ErrorIs(t, err, checkin.ErrDirectionRequired)

	_, err = svc.IngestEvent(context.Background(), checkin.CreateEventRequest{
		EmployeeID: "emp-1",
		Time:       "2026-03-10T09:06:00Z",
		Direction:  "IN",
	})
	assert.NoError(t, err)
}

func TestIngestEvent_Geofence(t *testing.T) {
	locID := "loc-1"
	resolved := dayOccurrence(shift.DeterminationAlternating)
	resolved.Assignment = &shift.ShiftAssignment{
		ID:              "sa-1",
		CompanyID:       "co-1",
		EmployeeID:      "emp-1",
		ShiftTypeID:     "st-1",
		ShiftLocationID: &locID,
	}
	locations := &fakeLocationRepo{locations: map[string]shift.ShiftLocation{
		"loc-1": {
			ID:                  "loc-1",
			CompanyID:           "co-1",
			Name:                "HQ",
			Latitude:            -6.2088,
			Longitude:           106.8456,
			CheckinRadiusMeters: 100,
		},
	}}
	svc := newTestService(&fakeEventRepo{}, &fakeResolver{resolved: resolved}, locations, true)

	// Missing coordinates
	_, err := svc.IngestEvent(context.Background(), checkin.CreateEventRequest{
		EmployeeID: "emp-1",
		Time:       "2026-03-10T09:05:00Z",
	})
	assert.ErrorIs(t, err, checkin.ErrCoordinatesRequired)

	// Roughly 1.1km north of the geofence center
	farLat, farLon := -6.1988, 106.8456
	_, err = svc.IngestEvent(context.Background(), checkin.CreateEventRequest{
		EmployeeID: "emp-1",
		Time:       "2026-03-10T09:05:00Z",
		Latitude:   &farLat,
		Longitude:  &farLon,
	})
	assert.ErrorIs(t, err, checkin.ErrCheckinRadiusExceeded)

	// Inside the radius
	nearLat, nearLon := -6.2089, 106.8457
	_, err = svc.IngestEvent(context.Background(), checkin.CreateEventRequest{
		EmployeeID: "emp-1",
		Time:       "2026-03-10T09:05:00Z",
		Latitude:   &nearLat,
		Longitude:  &nearLon,
	})
	assert.NoError(t, err)
}

func TestIngestEvent_GeofenceSkippedWhenTrackingDisabled(t *testing.T) {
	locID := "loc-1"
	resolved := dayOccurrence(shift.DeterminationAlternating)
	resolved.Assignment = &shift.ShiftAssignment{
		ID:              "sa-1",
		CompanyID:       "co-1",
		ShiftLocationID: &locID,
	}
	svc := newTestService(&fakeEventRepo{}, &fakeResolver{resolved: resolved}, nil, false)

	_, err := svc.IngestEvent(context.Background(), checkin.CreateEventRequest{
		EmployeeID: "emp-1",
		Time:       "2026-03-10T09:05:00Z",
	})
	assert.NoError(t, err)
}
