package shift

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotalabs/shift-backend-go/internal/domain/employee"
	"github.com/rotalabs/shift-backend-go/internal/domain/shift"
)

// ==================== FAKES ====================

type fakeShiftTypeRepo struct {
	shiftTypes map[string]shift.ShiftType
}

func (f *fakeShiftTypeRepo) Create(ctx context.Context, st shift.ShiftType) (shift.ShiftType, error) {
	for _, existing := range f.shiftTypes {
		if existing.CompanyID == st.CompanyID && existing.Name == st.Name {
			return shift.ShiftType{}, shift.ErrShiftTypeNameExists
		}
	}
	st.ID = "st-" + strconv.Itoa(len(f.shiftTypes)+1)
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
	f.shiftTypes[st.ID] = st
	return nil
}

func (f *fakeShiftTypeRepo) SetLastSyncOfCheckins(ctx context.Context, id string, lastSync time.Time) error {
	return nil
}

func (f *fakeShiftTypeRepo) Delete(ctx context.Context, id string, companyID string) error {
	if _, ok := f.shiftTypes[id]; !ok {
		return shift.ErrShiftTypeNotFound
	}
	delete(f.shiftTypes, id)
	return nil
}

func (f *fakeShiftTypeRepo) ListAutoAttendanceEnabled(ctx context.Context) ([]shift.ShiftType, error) {
	return nil, nil
}

type fakeAssignmentRepo struct {
	assignments []shift.ShiftAssignment
	nextID      int
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, a shift.ShiftAssignment) (shift.ShiftAssignment, error) {
	f.nextID++
	a.ID = "asg-" + strconv.Itoa(f.nextID)
	f.assignments = append(f.assignments, a)
	return a, nil
}

func (f *fakeAssignmentRepo) GetByID(ctx context.Context, id string, companyID string) (shift.ShiftAssignment, error) {
	for _, a := range f.assignments {
		if a.ID == id && a.CompanyID == companyID {
			return a, nil
		}
	}
	return shift.ShiftAssignment{}, shift.ErrAssignmentNotFound
}

func (f *fakeAssignmentRepo) List(ctx context.Context, filter shift.AssignmentFilter, companyID string) ([]shift.ShiftAssignment, int64, error) {
	return nil, 0, nil
}

func datesIntersect(aStart time.Time, aEnd *time.Time, bStart time.Time, bEnd *time.Time) bool {
	if aEnd != nil && aEnd.Before(bStart) {
		return false
	}
	if bEnd != nil && bEnd.Before(aStart) {
		return false
	}
	return true
}

func (f *fakeAssignmentRepo) ListActiveForEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]shift.ShiftAssignment, error) {
	var out []shift.ShiftAssignment
	for _, a := range f.assignments {
		if a.EmployeeID == employeeID && a.Status == shift.AssignmentActive && datesIntersect(a.StartDate, a.EndDate, from, &to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) ListOverlappingDates(ctx context.Context, employeeID string, startDate time.Time, endDate *time.Time, excludeID string) ([]shift.ShiftAssignment, error) {
	var out []shift.ShiftAssignment
	for _, a := range f.assignments {
		if a.EmployeeID != employeeID || a.ID == excludeID || a.Status != shift.AssignmentActive {
			continue
		}
		if datesIntersect(a.StartDate, a.EndDate, startDate, endDate) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) ListAssignedEmployeeIDs(ctx context.Context, shiftTypeID string, from time.Time) ([]string, error) {
	return nil, nil
}

func (f *fakeAssignmentRepo) Update(ctx context.Context, a shift.ShiftAssignment) error {
	for i := range f.assignments {
		if f.assignments[i].ID == a.ID {
			f.assignments[i] = a
			return nil
		}
	}
	return shift.ErrAssignmentNotFound
}

func (f *fakeAssignmentRepo) Delete(ctx context.Context, id string, companyID string) error {
	for i := range f.assignments {
		if f.assignments[i].ID == id && f.assignments[i].CompanyID == companyID {
			f.assignments = append(f.assignments[:i], f.assignments[i+1:]...)
			return nil
		}
	}
	return shift.ErrAssignmentNotFound
}

func (f *fakeAssignmentRepo) forEmployee(employeeID string) []shift.ShiftAssignment {
	var out []shift.ShiftAssignment
	for _, a := range f.assignments {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out
}

type fakeLocationRepo struct {
	locations map[string]shift.ShiftLocation
}

func (f *fakeLocationRepo) Create(ctx context.Context, l shift.ShiftLocation) (shift.ShiftLocation, error) {
	l.ID = "loc-" + strconv.Itoa(len(f.locations)+1)
	f.locations[l.ID] = l
	return l, nil
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id string, companyID string) (shift.ShiftLocation, error) {
	l, ok := f.locations[id]
	if !ok || l.CompanyID != companyID {
		return shift.ShiftLocation{}, shift.ErrLocationNotFound
	}
	return l, nil
}

func (f *fakeLocationRepo) List(ctx context.Context, companyID string) ([]shift.ShiftLocation, error) {
	return nil, nil
}

func (f *fakeLocationRepo) Update(ctx context.Context, l shift.ShiftLocation) error {
	f.locations[l.ID] = l
	return nil
}

func (f *fakeLocationRepo) Delete(ctx context.Context, id string, companyID string) error {
	delete(f.locations, id)
	return nil
}

type fakeScheduleRepo struct {
	schedules map[string]shift.ShiftSchedule
	after     map[string]time.Time
}

func (f *fakeScheduleRepo) Create(ctx context.Context, sc shift.ShiftSchedule) (shift.ShiftSchedule, error) {
	sc.ID = "sch-" + strconv.Itoa(len(f.schedules)+1)
	f.schedules[sc.ID] = sc
	return sc, nil
}

func (f *fakeScheduleRepo) GetByID(ctx context.Context, id string, companyID string) (shift.ShiftSchedule, error) {
	sc, ok := f.schedules[id]
	if !ok || sc.CompanyID != companyID {
		return shift.ShiftSchedule{}, shift.ErrScheduleNotFound
	}
	return sc, nil
}

func (f *fakeScheduleRepo) List(ctx context.Context, companyID string) ([]shift.ShiftSchedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) ListDue(ctx context.Context, asOf time.Time) ([]shift.ShiftSchedule, error) {
	var out []shift.ShiftSchedule
	for _, sc := range f.schedules {
		if sc.Enabled && sc.CreateShiftsAfter.Before(asOf) {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) SetCreateShiftsAfter(ctx context.Context, id string, after time.Time) error {
	if f.after == nil {
		f.after = make(map[string]time.Time)
	}
	f.after[id] = after
	sc := f.schedules[id]
	sc.CreateShiftsAfter = after
	f.schedules[id] = sc
	return nil
}

func (f *fakeScheduleRepo) Update(ctx context.Context, sc shift.ShiftSchedule) error {
	f.schedules[sc.ID] = sc
	return nil
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, id string, companyID string) error {
	delete(f.schedules, id)
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
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListDefaultShiftEmployeeIDs(ctx context.Context, shiftTypeID string, from time.Time) ([]string, error) {
	return nil, nil
}

// ==================== FIXTURES ====================

type serviceFixture struct {
	shiftTypeRepo  *fakeShiftTypeRepo
	assignmentRepo *fakeAssignmentRepo
	scheduleRepo   *fakeScheduleRepo
	employeeRepo   *fakeEmployeeRepo
	svc            shift.ShiftService
}

func newServiceFixture(allowMultiple bool) *serviceFixture {
	morning := shift.ShiftType{ID: "st-morning", CompanyID: "co-1", Name: "Morning", StartTime: clock(9, 0), EndTime: clock(17, 0)}
	evening := shift.ShiftType{ID: "st-evening", CompanyID: "co-1", Name: "Evening", StartTime: clock(13, 0), EndTime: clock(21, 0)}
	night := shift.ShiftType{ID: "st-night", CompanyID: "co-1", Name: "Night", StartTime: clock(22, 0), EndTime: clock(6, 0)}

	f := &serviceFixture{
		shiftTypeRepo: &fakeShiftTypeRepo{shiftTypes: map[string]shift.ShiftType{
			morning.ID: morning,
			evening.ID: evening,
			night.ID:   night,
		}},
		assignmentRepo: &fakeAssignmentRepo{},
		scheduleRepo:   &fakeScheduleRepo{schedules: map[string]shift.ShiftSchedule{}},
		employeeRepo: &fakeEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": {ID: "emp-1", CompanyID: "co-1", FullName: "Dewi Anggraini", Status: employee.EmploymentStatusActive},
			"emp-2": {ID: "emp-2", CompanyID: "co-1", FullName: "Rizky Pratama", Status: employee.EmploymentStatusLeft},
		}},
	}
	f.svc = NewShiftService(
		f.shiftTypeRepo,
		f.assignmentRepo,
		&fakeLocationRepo{locations: map[string]shift.ShiftLocation{}},
		f.scheduleRepo,
		f.employeeRepo,
		allowMultiple,
	)
	return f
}

func (f *serviceFixture) seedAssignment(shiftTypeID string, startDay int, endDay *int) shift.ShiftAssignment {
	a := shift.ShiftAssignment{
		CompanyID:   "co-1",
		EmployeeID:  "emp-1",
		ShiftTypeID: shiftTypeID,
		StartDate:   date(startDay),
		Status:      shift.AssignmentActive,
	}
	if endDay != nil {
		end := date(*endDay)
		a.EndDate = &end
	}
	created, _ := f.assignmentRepo.Create(context.Background(), a)
	return created
}

func assignmentRequest(shiftTypeID, startDate string, endDate *string) shift.CreateAssignmentRequest {
	return shift.CreateAssignmentRequest{
		CompanyID:   "co-1",
		EmployeeID:  "emp-1",
		ShiftTypeID: shiftTypeID,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      string(shift.AssignmentActive),
	}
}

func strPtr(s string) *string { return &s }

// ==================== SHIFT TYPE ====================

func TestCreateShiftType_DuplicateName(t *testing.T) {
	f := newServiceFixture(false)

	req := shift.CreateShiftTypeRequest{
		CompanyID: "co-1",
		Name:      "General",
		StartTime: "09:00:00",
		EndTime:   "17:00:00",
	}
	created, err := f.svc.CreateShiftType(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", created.StartTime)
	assert.Equal(t, "17:00:00", created.EndTime)

	_, err = f.svc.CreateShiftType(context.Background(), req)
	assert.ErrorIs(t, err, shift.ErrShiftTypeNameExists)
}

func TestCreateShiftType_AutoAttendanceRequiresProcessAfter(t *testing.T) {
	f := newServiceFixture(false)

	_, err := f.svc.CreateShiftType(context.Background(), shift.CreateShiftTypeRequest{
		CompanyID:            "co-1",
		Name:                 "Auto",
		StartTime:            "09:00:00",
		EndTime:              "17:00:00",
		EnableAutoAttendance: true,
		Determination:        string(shift.DeterminationAlternating),
		Calculation:          string(shift.CalculationFirstInLastOut),
	})
	assert.Error(t, err)
}

// ==================== ASSIGNMENT ====================

func TestCreateAssignment_RejectsSecondAssignment(t *testing.T) {
	f := newServiceFixture(false)
	f.seedAssignment("st-morning", 1, nil)

	_, err := f.svc.CreateAssignment(context.Background(), assignmentRequest("st-night", "2026-03-10", nil))
	assert.ErrorIs(t, err, shift.ErrMultipleShiftAssignments)
}

func TestCreateAssignment_DisjointDatesAllowed(t *testing.T) {
	f := newServiceFixture(false)
	f.seedAssignment("st-morning", 1, intPtr(9))

	created, err := f.svc.CreateAssignment(context.Background(), assignmentRequest("st-night", "2026-03-10", nil))
	require.NoError(t, err)
	assert.Equal(t, "st-night", created.ShiftTypeID)
	assert.Equal(t, "2026-03-10", created.StartDate)
}

func TestCreateAssignment_MultipleModeChecksTimings(t *testing.T) {
	f := newServiceFixture(true)
	f.seedAssignment("st-morning", 1, nil)

	// 13:00-21:00 intersects the 09:00-17:00 window.
	_, err := f.svc.CreateAssignment(context.Background(), assignmentRequest("st-evening", "2026-03-10", nil))
	assert.ErrorIs(t, err, shift.ErrOverlappingShiftTimings)

	// The overnight 22:00-06:00 window is clear of it.
	_, err = f.svc.CreateAssignment(context.Background(), assignmentRequest("st-night", "2026-03-10", nil))
	assert.NoError(t, err)
}

func TestCreateAssignment_InactiveStatusSkipsOverlapCheck(t *testing.T) {
	f := newServiceFixture(false)
	f.seedAssignment("st-morning", 1, nil)

	req := assignmentRequest("st-night", "2026-03-10", nil)
	req.Status = string(shift.AssignmentInactive)
	created, err := f.svc.CreateAssignment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(shift.AssignmentInactive), created.Status)
}

func TestCreateAssignment_EmployeeGuards(t *testing.T) {
	f := newServiceFixture(false)

	req := assignmentRequest("st-morning", "2026-03-10", nil)
	req.EmployeeID = "emp-2"
	_, err := f.svc.CreateAssignment(context.Background(), req)
	assert.ErrorIs(t, err, employee.ErrInactiveEmployee)

	req.EmployeeID = "nope"
	_, err = f.svc.CreateAssignment(context.Background(), req)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	// An employee of another company must look nonexistent.
	req = assignmentRequest("st-morning", "2026-03-10", nil)
	req.CompanyID = "co-2"
	_, err = f.svc.CreateAssignment(context.Background(), req)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCreateAssignment_UnknownShiftType(t *testing.T) {
	f := newServiceFixture(false)

	_, err := f.svc.CreateAssignment(context.Background(), assignmentRequest("nope", "2026-03-10", nil))
	assert.ErrorIs(t, err, shift.ErrShiftTypeNotFound)
}

func TestBulkCreateAssignments_PartialFailure(t *testing.T) {
	f := newServiceFixture(false)

	resp, err := f.svc.BulkCreateAssignments(context.Background(), shift.BulkCreateAssignmentsRequest{
		CompanyID:   "co-1",
		EmployeeIDs: []string{"emp-1", "emp-2"},
		ShiftTypeID: "st-morning",
		StartDate:   "2026-03-10",
	})
	require.NoError(t, err)

	require.Len(t, resp.Created, 1)
	assert.Equal(t, "emp-1", resp.Created[0].EmployeeID)
	require.Len(t, resp.Failed, 1)
	assert.Equal(t, "emp-2", resp.Failed[0].EmployeeID)
	assert.NotEmpty(t, resp.Failed[0].Reason)
}

func TestEndAssignment(t *testing.T) {
	f := newServiceFixture(false)
	seeded := f.seedAssignment("st-morning", 10, nil)

	err := f.svc.EndAssignment(context.Background(), shift.EndAssignmentRequest{
		ID:        seeded.ID,
		CompanyID: "co-1",
		EndDate:   "2026-03-05",
	})
	assert.ErrorIs(t, err, shift.ErrAssignmentEndBeforeStart)

	err = f.svc.EndAssignment(context.Background(), shift.EndAssignmentRequest{
		ID:        seeded.ID,
		CompanyID: "co-1",
		EndDate:   "2026-03-15",
	})
	require.NoError(t, err)

	stored, err := f.assignmentRepo.GetByID(context.Background(), seeded.ID, "co-1")
	require.NoError(t, err)
	require.NotNil(t, stored.EndDate)
	assert.Equal(t, date(15), *stored.EndDate)
}

// ==================== RESOLUTION ====================

func TestResolveShiftForTimestamp_AssignmentMatch(t *testing.T) {
	f := newServiceFixture(false)
	f.seedAssignment("st-morning", 1, nil)

	resolved, err := f.svc.ResolveShiftForTimestamp(context.Background(), "emp-1", ts(10, 10, 0), true)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	require.NotNil(t, resolved.Assignment)
	assert.Equal(t, "st-morning", resolved.ShiftType.ID)
	assert.Equal(t, ts(10, 9, 0), resolved.Start)
	assert.Equal(t, ts(10, 17, 0), resolved.End)
}

func TestResolveShiftForTimestamp_DefaultShiftFallback(t *testing.T) {
	f := newServiceFixture(false)
	emp := f.employeeRepo.employees["emp-1"]
	emp.DefaultShiftTypeID = strPtr("st-morning")
	f.employeeRepo.employees["emp-1"] = emp

	resolved, err := f.svc.ResolveShiftForTimestamp(context.Background(), "emp-1", ts(10, 10, 0), true)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Nil(t, resolved.Assignment)
	assert.Equal(t, "st-morning", resolved.ShiftType.ID)

	// Outside the padded window the default does not apply.
	resolved, err = f.svc.ResolveShiftForTimestamp(context.Background(), "emp-1", ts(10, 3, 0), true)
	require.NoError(t, err)
	assert.Nil(t, resolved)

	// Nor when the caller opted out of the fallback.
	resolved, err = f.svc.ResolveShiftForTimestamp(context.Background(), "emp-1", ts(10, 10, 0), false)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestResolveShiftForTimestamp_NoCoverage(t *testing.T) {
	f := newServiceFixture(false)

	resolved, err := f.svc.ResolveShiftForTimestamp(context.Background(), "emp-1", ts(10, 10, 0), true)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

// ==================== SCHEDULE MATERIALIZATION ====================

func dailySchedule(f *serviceFixture, createAfterDaysAgo int) shift.ShiftSchedule {
	now := time.Now().UTC()
	created, _ := f.scheduleRepo.Create(context.Background(), shift.ShiftSchedule{
		CompanyID:   "co-1",
		EmployeeID:  "emp-1",
		ShiftTypeID: "st-morning",
		RepeatOnDays: []time.Weekday{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
		FrequencyWeeks:    1,
		Enabled:           true,
		CreateShiftsAfter: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -createAfterDaysAgo),
		ShiftStatus:       shift.AssignmentActive,
	})
	return created
}

func TestMaterializeDueSchedules_CreatesAssignments(t *testing.T) {
	f := newServiceFixture(false)
	schedule := dailySchedule(f, 7)
	horizon := dateOnly(time.Now().UTC()).AddDate(0, 0, materializeHorizonDays)

	err := f.svc.MaterializeDueSchedules(context.Background())
	require.NoError(t, err)

	// Every repeat day: one contiguous run from the day after the high-water
	// mark to the horizon.
	created := f.assignmentRepo.forEmployee("emp-1")
	require.Len(t, created, 1)
	assert.Equal(t, schedule.CreateShiftsAfter.AddDate(0, 0, 1), created[0].StartDate)
	require.NotNil(t, created[0].EndDate)
	assert.Equal(t, horizon, *created[0].EndDate)
	require.NotNil(t, created[0].ScheduleID)
	assert.Equal(t, schedule.ID, *created[0].ScheduleID)
	assert.Equal(t, shift.AssignmentActive, created[0].Status)

	assert.Equal(t, horizon, f.scheduleRepo.after[schedule.ID])
}

func TestMaterializeDueSchedules_SkipsOverlappingOccurrences(t *testing.T) {
	f := newServiceFixture(false)
	schedule := dailySchedule(f, 7)
	horizon := dateOnly(time.Now().UTC()).AddDate(0, 0, materializeHorizonDays)

	// A manual open-ended assignment blankets the whole walk; the occurrence
	// is skipped but the high-water mark still advances.
	f.seedAssignment("st-night", 1, nil)
	before := len(f.assignmentRepo.forEmployee("emp-1"))

	err := f.svc.MaterializeDueSchedules(context.Background())
	require.NoError(t, err)

	assert.Len(t, f.assignmentRepo.forEmployee("emp-1"), before)
	assert.Equal(t, horizon, f.scheduleRepo.after[schedule.ID])
}

func TestMaterializeDueSchedules_SecondRunIsNoOp(t *testing.T) {
	f := newServiceFixture(false)
	dailySchedule(f, 7)

	require.NoError(t, f.svc.MaterializeDueSchedules(context.Background()))
	created := len(f.assignmentRepo.forEmployee("emp-1"))
	require.NotZero(t, created)

	// The advanced CreateShiftsAfter leaves nothing due until the horizon
	// itself moves.
	require.NoError(t, f.svc.MaterializeDueSchedules(context.Background()))
	assert.Equal(t, created, len(f.assignmentRepo.forEmployee("emp-1")))
}