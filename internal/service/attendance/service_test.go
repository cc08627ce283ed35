package attendance

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotalabs/shift-backend-go/internal/domain/attendance"
	"github.com/rotalabs/shift-backend-go/internal/domain/checkin"
	"github.com/rotalabs/shift-backend-go/internal/domain/employee"
	"github.com/rotalabs/shift-backend-go/internal/domain/shift"
	shiftsvc "github.com/rotalabs/shift-backend-go/internal/service/shift"
)

// ==================== FAKES ====================

type fakeAttendanceRepo struct {
	records []attendance.Attendance
	nextID  int
}

func sameShiftTypeID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	for _, r := range f.records {
		if r.EmployeeID == a.EmployeeID && r.Date.Equal(a.Date) && sameShiftTypeID(r.ShiftTypeID, a.ShiftTypeID) {
			return attendance.Attendance{}, attendance.ErrDuplicateAttendance
		}
	}
	f.nextID++
	a.ID = "att-" + strconv.Itoa(f.nextID)
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	f.records = append(f.records, a)
	return a, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	for _, r := range f.records {
		if r.ID == id && r.CompanyID == companyID {
			return r, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetForDate(ctx context.Context, employeeID string, date time.Time, shiftTypeID *string) (*attendance.Attendance, error) {
	for i, r := range f.records {
		if r.EmployeeID != employeeID || !r.Date.Equal(date) {
			continue
		}
		if r.ShiftTypeID == nil || sameShiftTypeID(r.ShiftTypeID, shiftTypeID) {
			return &f.records[i], nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) GetForOtherShiftOnDate(ctx context.Context, employeeID string, date time.Time, shiftTypeID string) (*attendance.Attendance, error) {
	for i, r := range f.records {
		if r.EmployeeID == employeeID && r.Date.Equal(date) && r.ShiftTypeID != nil && *r.ShiftTypeID != shiftTypeID {
			return &f.records[i], nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) ListMarkedDatesBetween(ctx context.Context, employeeID string, shiftTypeID string, from, to time.Time) ([]time.Time, error) {
	var dates []time.Time
	for _, r := range f.records {
		if r.EmployeeID != employeeID || r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		if r.ShiftTypeID == nil || *r.ShiftTypeID == shiftTypeID {
			dates = append(dates, r.Date)
		}
	}
	return dates, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, r := range f.records {
		if r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) byDate(employeeID string, date time.Time) *attendance.Attendance {
	for i, r := range f.records {
		if r.EmployeeID == employeeID && r.Date.Equal(date) {
			return &f.records[i]
		}
	}
	return nil
}

type fakeEventRepo struct {
	events []checkin.Event
}

func (f *fakeEventRepo) Create(ctx context.Context, event checkin.Event) (checkin.Event, error) {
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string, companyID string) (checkin.Event, error) {
	return checkin.Event{}, checkin.ErrEventNotFound
}

func (f *fakeEventRepo) ExistsAt(ctx context.Context, employeeID string, t time.Time, direction checkin.LogDirection) (bool, error) {
	return false, nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter checkin.EventFilter, companyID string) ([]checkin.Event, int64, error) {
	return nil, 0, nil
}

func (f *fakeEventRepo) ListUnprocessed(ctx context.Context, shiftTypeID string, processAfter, cutoff time.Time) ([]checkin.Event, error) {
	var out []checkin.Event
	for _, e := range f.events {
		if e.ShiftTypeID == nil || *e.ShiftTypeID != shiftTypeID {
			continue
		}
		if e.AttendanceID != nil || e.SkipAutoAttendance {
			continue
		}
		if !e.Time.After(processAfter) || e.ShiftActualEnd == nil || !e.ShiftActualEnd.Before(cutoff) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) LinkAttendance(ctx context.Context, eventIDs []string, attendanceID string) error {
	ids := make(map[string]bool, len(eventIDs))
	for _, id := range eventIDs {
		ids[id] = true
	}
	for i := range f.events {
		if ids[f.events[i].ID] {
			f.events[i].AttendanceID = &attendanceID
		}
	}
	return nil
}

func (f *fakeEventRepo) MarkSkipped(ctx context.Context, eventIDs []string) error {
	ids := make(map[string]bool, len(eventIDs))
	for _, id := range eventIDs {
		ids[id] = true
	}
	for i := range f.events {
		if ids[f.events[i].ID] {
			f.events[i].SkipAutoAttendance = true
		}
	}
	return nil
}

type fakeShiftTypeRepo struct {
	shiftTypes map[string]shift.ShiftType
	lastSync   map[string]time.Time
}

func (f *fakeShiftTypeRepo) Create(ctx context.Context, st shift.ShiftType) (shift.ShiftType, error) {
	f.shiftTypes[st.ID] = st
	return st, nil
}

func (f *fakeShiftTypeRepo) GetByID(ctx context.Context, id string, companyID string) (shift.ShiftType, error) {
	st, ok := f.shiftTypes[id]
	if !ok || st.CompanyID != companyID {
		return shift.ShiftType{}, shift.ErrShiftTypeNotFound
	}
	return st, nil
}

func (f *fakeShiftTypeRepo) List(ctx context.Context, filter shift.ShiftTypeFilter, companyID string) ([]shift.ShiftType, int64, error) {
	return nil, 0, nil
}

func (f *fakeShiftTypeRepo) Update(ctx context.Context, st shift.ShiftType) error {
	return nil
}

func (f *fakeShiftTypeRepo) SetLastSyncOfCheckins(ctx context.Context, id string, lastSync time.Time) error {
	if f.lastSync == nil {
		f.lastSync = make(map[string]time.Time)
	}
	f.lastSync[id] = lastSync
	return nil
}

func (f *fakeShiftTypeRepo) Delete(ctx context.Context, id string, companyID string) error {
	return nil
}

func (f *fakeShiftTypeRepo) ListAutoAttendanceEnabled(ctx context.Context) ([]shift.ShiftType, error) {
	var out []shift.ShiftType
	for _, st := range f.shiftTypes {
		if st.EnableAutoAttendance {
			out = append(out, st)
		}
	}
	return out, nil
}

type fakeAssignmentRepo struct {
	assignedIDs []string
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, a shift.ShiftAssignment) (shift.ShiftAssignment, error) {
	return a, nil
}

func (f *fakeAssignmentRepo) GetByID(ctx context.Context, id string, companyID string) (shift.ShiftAssignment, error) {
	return shift.ShiftAssignment{}, shift.ErrAssignmentNotFound
}

func (f *fakeAssignmentRepo) List(ctx context.Context, filter shift.AssignmentFilter, companyID string) ([]shift.ShiftAssignment, int64, error) {
	return nil, 0, nil
}

func (f *fakeAssignmentRepo) ListActiveForEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]shift.ShiftAssignment, error) {
	return nil, nil
}

func (f *fakeAssignmentRepo) ListOverlappingDates(ctx context.Context, employeeID string, startDate time.Time, endDate *time.Time, excludeID string) ([]shift.ShiftAssignment, error) {
	return nil, nil
}

func (f *fakeAssignmentRepo) ListAssignedEmployeeIDs(ctx context.Context, shiftTypeID string, from time.Time) ([]string, error) {
	return f.assignedIDs, nil
}

func (f *fakeAssignmentRepo) Update(ctx context.Context, a shift.ShiftAssignment) error {
	return nil
}

func (f *fakeAssignmentRepo) Delete(ctx context.Context, id string, companyID string) error {
	return nil
}

type fakeEmployeeRepo struct {
	employees  map[string]employee.Employee
	defaultIDs []string
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByAttendanceDeviceID(ctx context.Context, deviceID string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListDefaultShiftEmployeeIDs(ctx context.Context, shiftTypeID string, from time.Time) ([]string, error) {
	return f.defaultIDs, nil
}

type fakeHolidayRepo struct {
	holidays map[string][]time.Time
}

func (f *fakeHolidayRepo) IsHoliday(ctx context.Context, holidayListID string, date time.Time) (bool, error) {
	for _, d := range f.holidays[holidayListID] {
		if d.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeHolidayRepo) ListDatesBetween(ctx context.Context, holidayListID string, from, to time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, d := range f.holidays[holidayListID] {
		if !d.Before(from) && !d.After(to) {
			out = append(out, d)
		}
	}
	return out, nil
}

// fakeResolver resolves every timestamp to the configured shift type's
// occurrence, like an open-ended assignment would.
type fakeResolver struct {
	st shift.ShiftType
}

func (f *fakeResolver) ResolveShiftForTimestamp(ctx context.Context, employeeID string, ts time.Time, considerDefault bool) (*shift.ResolvedShift, error) {
	bounds := shiftsvc.BoundsForTimestamp(f.st, ts)
	return &shift.ResolvedShift{ShiftBounds: bounds}, nil
}

// ==================== FIXTURES ====================

type fixture struct {
	attendanceRepo *fakeAttendanceRepo
	eventRepo      *fakeEventRepo
	shiftTypeRepo  *fakeShiftTypeRepo
	holidayRepo    *fakeHolidayRepo
	svc            attendance.AttendanceService
}

func day(daysAgo int) time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo)
}

func processShift(processAfterDaysAgo int) shift.ShiftType {
	return shift.ShiftType{
		ID:                     "st-1",
		CompanyID:              "co-1",
		Name:                   "Day",
		StartTime:              9 * time.Hour,
		EndTime:                17 * time.Hour,
		CheckinBeforeMinutes:   60,
		CheckoutAfterMinutes:   60,
		EnableAutoAttendance:   true,
		Determination:          shift.DeterminationAlternating,
		Calculation:            shift.CalculationFirstInLastOut,
		HalfDayThresholdHours:  4,
		AbsentThresholdHours:   2,
		ProcessAttendanceAfter: day(processAfterDaysAgo),
	}
}

func newFixture(st shift.ShiftType, emp employee.Employee, assigned []string) *fixture {
	f := &fixture{
		attendanceRepo: &fakeAttendanceRepo{},
		eventRepo:      &fakeEventRepo{},
		shiftTypeRepo:  &fakeShiftTypeRepo{shiftTypes: map[string]shift.ShiftType{st.ID: st}},
		holidayRepo:    &fakeHolidayRepo{holidays: map[string][]time.Time{}},
	}
	f.svc = NewAttendanceService(
		f.attendanceRepo,
		f.eventRepo,
		f.shiftTypeRepo,
		&fakeAssignmentRepo{assignedIDs: assigned},
		&fakeEmployeeRepo{employees: map[string]employee.Employee{emp.ID: emp}},
		f.holidayRepo,
		&fakeResolver{st: st},
	)
	return f
}

func activeEmployee() employee.Employee {
	return employee.Employee{
		ID:            "emp-1",
		CompanyID:     "co-1",
		FullName:      "Budi Santoso",
		Status:        employee.EmploymentStatusActive,
		DateOfJoining: day(365),
	}
}

// occurrenceEvents builds an in/out pair tagged with the shift occurrence of
// the given day.
func occurrenceEvents(st shift.ShiftType, daysAgo int) []checkin.Event {
	date := day(daysAgo)
	start := date.Add(st.StartTime)
	end := date.Add(st.EndTime)
	actualStart := start.Add(-time.Duration(st.CheckinBeforeMinutes) * time.Minute)
	actualEnd := end.Add(time.Duration(st.CheckoutAfterMinutes) * time.Minute)

	build := func(id string, t time.Time) checkin.Event {
		return checkin.Event{
			ID:               id,
			CompanyID:        "co-1",
			EmployeeID:       "emp-1",
			Time:             t,
			ShiftTypeID:      &st.ID,
			ShiftStart:       &start,
			ShiftEnd:         &end,
			ShiftActualStart: &actualStart,
			ShiftActualEnd:   &actualEnd,
		}
	}
	return []checkin.Event{
		build("evt-in", start),
		build("evt-out", end),
	}
}

// ==================== MANUAL MARKING ====================

func TestMarkAttendance_DuplicateGuard(t *testing.T) {
	st := processShift(5)
	f := newFixture(st, activeEmployee(), nil)

	req := attendance.MarkAttendanceRequest{
		CompanyID:  "co-1",
		EmployeeID: "emp-1",
		Date:       day(2).Format("2006-01-02"),
		Status:     string(attendance.StatusOnLeave),
	}
	_, err := f.svc.MarkAttendance(context.Background(), req)
	require.NoError(t, err)

	_, err = f.svc.MarkAttendance(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrDuplicateAttendance)
}

func TestMarkAttendance_ShiftlessRecordBlocksShiftMarking(t *testing.T) {
	st := processShift(5)
	f := newFixture(st, activeEmployee(), nil)

	_, err := f.svc.MarkAttendance(context.Background(), attendance.MarkAttendanceRequest{
		CompanyID:  "co-1",
		EmployeeID: "emp-1",
		Date:       day(2).Format("2006-01-02"),
		Status:     string(attendance.StatusOnLeave),
	})
	require.NoError(t, err)

	stID := st.ID
	_, err = f.svc.MarkAttendance(context.Background(), attendance.MarkAttendanceRequest{
		CompanyID:   "co-1",
		EmployeeID:  "emp-1",
		Date:        day(2).Format("2006-01-02"),
		Status:      string(attendance.StatusPresent),
		ShiftTypeID: &stID,
	})
	assert.ErrorIs(t, err, attendance.ErrDuplicateAttendance)
}

func TestMarkAttendance_OverlappingShiftGuard(t *testing.T) {
	morning := processShift(5)
	overlapping := shift.ShiftType{
		ID:        "st-2",
		CompanyID: "co-1",
		Name:      "Overlapping",
		StartTime: 13 * time.Hour,
		EndTime:   21 * time.Hour,
	}
	disjoint := shift.ShiftType{
		ID:        "st-3",
		CompanyID: "co-1",
		Name:      "Night",
		StartTime: 22 * time.Hour,
		EndTime:   6 * time.Hour,
	}

	f := newFixture(morning, activeEmployee(), nil)
	f.shiftTypeRepo.shiftTypes[overlapping.ID] = overlapping
	f.shiftTypeRepo.shiftTypes[disjoint.ID] = disjoint

	morningID := morning.ID
	_, err := f.svc.MarkAttendance(context.Background(), attendance.MarkAttendanceRequest{
		CompanyID:   "co-1",
		EmployeeID:  "emp-1",
		Date:        day(2).Format("2006-01-02"),
		Status:      string(attendance.StatusPresent),
		ShiftTypeID: &morningID,
	})
	require.NoError(t, err)

	overlappingID := overlapping.ID
	_, err = f.svc.MarkAttendance(context.Background(), attendance.MarkAttendanceRequest{
		CompanyID:   "co-1",
		EmployeeID:  "emp-1",
		Date:        day(2).Format("2006-01-02"),
		Status:      string(attendance.StatusPresent),
		ShiftTypeID: &overlappingID,
	})
	assert.ErrorIs(t, err, attendance.ErrOverlappingShiftAttendance)

	disjointID := disjoint.ID
	_, err = f.svc.MarkAttendance(context.Background(), attendance.MarkAttendanceRequest{
		CompanyID:   "co-1",
		EmployeeID:  "emp-1",
		Date:        day(2).Format("2006-01-02"),
		Status:      string(attendance.StatusPresent),
		ShiftTypeID: &disjointID,
	})
	assert.NoError(t, err)
}

// ==================== AUTO ATTENDANCE ====================

func TestProcessShiftType_MarksPresentAndLinksEvents(t *testing.T) {
	st := processShift(5)
	f := newFixture(st, activeEmployee(), nil)
	f.eventRepo.events = occurrenceEvents(st, 4)

	err := f.svc.ProcessShiftType(context.Background(), st.ID, "co-1")
	require.NoError(t, err)

	record := f.attendanceRepo.byDate("emp-1", day(4))
	require.NotNil(t, record)
	assert.Equal(t, attendance.StatusPresent, record.Status)
	assert.InDelta(t, 8.0, record.WorkingHours, 0.001)
	require.NotNil(t, record.ShiftTypeID)
	assert.Equal(t, st.ID, *record.ShiftTypeID)

	for _, e := range f.eventRepo.events {
		require.NotNil(t, e.AttendanceID)
		assert.Equal(t, record.ID, *e.AttendanceID)
	}

	// The sync point is recorded after a successful pass.
	assert.False(t, f.shiftTypeRepo.lastSync[st.ID].IsZero())
}

func TestProcessShiftType_ExcludesAlreadyMarkedOccurrence(t *testing.T) {
	st := processShift(5)
	f := newFixture(st, activeEmployee(), nil)
	f.eventRepo.events = occurrenceEvents(st, 4)

	// Manually marked before the pass ran.
	stID := st.ID
	_, err := f.attendanceRepo.Create(context.Background(), attendance.Attendance{
		CompanyID:   "co-1",
		EmployeeID:  "emp-1",
		Date:        day(4),
		ShiftTypeID: &stID,
		Status:      attendance.StatusOnLeave,
	})
	require.NoError(t, err)

	err = f.svc.ProcessShiftType(context.Background(), st.ID, "co-1")
	require.NoError(t, err)

	record := f.attendanceRepo.byDate("emp-1", day(4))
	require.NotNil(t, record)
	assert.Equal(t, attendance.StatusOnLeave, record.Status)

	for _, e := range f.eventRepo.events {
		assert.True(t, e.SkipAutoAttendance)
		assert.Nil(t, e.AttendanceID)
	}
}

func TestProcessShiftType_HolidayOccurrenceExcluded(t *testing.T) {
	st := processShift(5)
	listID := "hl-1"
	st.HolidayListID = &listID

	f := newFixture(st, activeEmployee(), nil)
	f.shiftTypeRepo.shiftTypes[st.ID] = st
	f.holidayRepo.holidays[listID] = []time.Time{day(4)}
	f.eventRepo.events = occurrenceEvents(st, 4)

	err := f.svc.ProcessShiftType(context.Background(), st.ID, "co-1")
	require.NoError(t, err)

	assert.Nil(t, f.attendanceRepo.byDate("emp-1", day(4)))
	for _, e := range f.eventRepo.events {
		assert.True(t, e.SkipAutoAttendance)
	}
}

func TestProcessShiftType_SkipsWithoutProcessAfter(t *testing.T) {
	st := processShift(5)
	st.ProcessAttendanceAfter = time.Time{}

	f := newFixture(st, activeEmployee(), []string{"emp-1"})
	f.eventRepo.events = occurrenceEvents(st, 4)

	err := f.svc.ProcessShiftType(context.Background(), st.ID, "co-1")
	require.NoError(t, err)

	assert.Empty(t, f.attendanceRepo.records)
	assert.True(t, f.shiftTypeRepo.lastSync[st.ID].IsZero())
}

func TestProcessShiftType_UnknownShiftType(t *testing.T) {
	f := newFixture(processShift(5), activeEmployee(), nil)

	err := f.svc.ProcessShiftType(context.Background(), "nope", "co-1")
	assert.ErrorIs(t, err, shift.ErrShiftTypeNotFound)
}

// ==================== ABSENCE SWEEP ====================

func TestProcessShiftType_SweepsAbsences(t *testing.T) {
	st := processShift(5)
	f := newFixture(st, activeEmployee(), []string{"emp-1"})
	f.eventRepo.events = occurrenceEvents(st, 4)

	err := f.svc.ProcessShiftType(context.Background(), st.ID, "co-1")
	require.NoError(t, err)

	// The attended day keeps its Present record; the surrounding settled
	// days are swept Absent.
	present := f.attendanceRepo.byDate("emp-1", day(4))
	require.NotNil(t, present)
	assert.Equal(t, attendance.StatusPresent, present.Status)

	for _, daysAgo := range []int{5, 3} {
		record := f.attendanceRepo.byDate("emp-1", day(daysAgo))
		require.NotNil(t, record, "expected a record for day -%d", daysAgo)
		assert.Equal(t, attendance.StatusAbsent, record.Status)
		assert.Zero(t, record.WorkingHours)
	}
}

func TestProcessShiftType_SweepSkipsHolidays(t *testing.T) {
	st := processShift(5)
	listID := "hl-1"
	st.HolidayListID = &listID

	f := newFixture(st, activeEmployee(), []string{"emp-1"})
	f.shiftTypeRepo.shiftTypes[st.ID] = st
	f.holidayRepo.holidays[listID] = []time.Time{day(5)}

	err := f.svc.ProcessShiftType(context.Background(), st.ID, "co-1")
	require.NoError(t, err)

	assert.Nil(t, f.attendanceRepo.byDate("emp-1", day(5)))
	record := f.attendanceRepo.byDate("emp-1", day(3))
	require.NotNil(t, record)
	assert.Equal(t, attendance.StatusAbsent, record.Status)
}

func TestProcessShiftType_SweepMarksHolidaysWhenConfigured(t *testing.T) {
	st := processShift(5)
	listID := "hl-1"
	st.HolidayListID = &listID
	st.MarkAbsentOnHolidays = true

	f := newFixture(st, activeEmployee(), []string{"emp-1"})
	f.shiftTypeRepo.shiftTypes[st.ID] = st
	f.holidayRepo.holidays[listID] = []time.Time{day(5)}

	err := f.svc.ProcessShiftType(context.Background(), st.ID, "co-1")
	require.NoError(t, err)

	record := f.attendanceRepo.byDate("emp-1", day(5))
	require.NotNil(t, record)
	assert.Equal(t, attendance.StatusAbsent, record.Status)
}

func TestProcessShiftType_SweepRespectsJoiningDate(t *testing.T) {
	st := processShift(8)
	emp := activeEmployee()
	emp.DateOfJoining = day(4)

	f := newFixture(st, emp, []string{"emp-1"})

	err := f.svc.ProcessShiftType(context.Background(), st.ID, "co-1")
	require.NoError(t, err)

	assert.Nil(t, f.attendanceRepo.byDate("emp-1", day(6)))
	assert.Nil(t, f.attendanceRepo.byDate("emp-1", day(5)))
	record := f.attendanceRepo.byDate("emp-1", day(4))
	require.NotNil(t, record)
	assert.Equal(t, attendance.StatusAbsent, record.Status)
}

func TestProcessShiftType_Idempotent(t *testing.T) {
	st := processShift(5)
	f := newFixture(st, activeEmployee(), []string{"emp-1"})
	f.eventRepo.events = occurrenceEvents(st, 4)

	require.NoError(t, f.svc.ProcessShiftType(context.Background(), st.ID, "co-1"))
	marked := len(f.attendanceRepo.records)
	require.NotZero(t, marked)

	require.NoError(t, f.svc.ProcessShiftType(context.Background(), st.ID, "co-1"))
	assert.Equal(t, marked, len(f.attendanceRepo.records))
}

func TestProcessAllShiftTypes_OnlyAutoEnabled(t *testing.T) {
	st := processShift(5)
	manual := processShift(5)
	manual.ID = "st-manual"
	manual.EnableAutoAttendance = false

	f := newFixture(st, activeEmployee(), nil)
	f.shiftTypeRepo.shiftTypes[manual.ID] = manual
	f.eventRepo.events = occurrenceEvents(st, 4)

	err := f.svc.ProcessAllShiftTypes(context.Background())
	require.NoError(t, err)

	require.NotNil(t, f.attendanceRepo.byDate("emp-1", day(4)))
	assert.True(t, f.shiftTypeRepo.lastSync[manual.ID].IsZero())
}
