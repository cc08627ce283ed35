package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/rotalabs/shift-backend-go/internal/domain/attendance"
	"github.com/rotalabs/shift-backend-go/internal/domain/checkin"
	"github.com/rotalabs/shift-backend-go/internal/domain/employee"
	"github.com/rotalabs/shift-backend-go/internal/domain/holiday"
	"github.com/rotalabs/shift-backend-go/internal/domain/shift"
	shiftsvc "github.com/rotalabs/shift-backend-go/internal/service/shift"
)

type attendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	eventRepo      checkin.EventRepository
	shiftTypeRepo  shift.ShiftTypeRepository
	assignmentRepo shift.ShiftAssignmentRepository
	employeeRepo   employee.EmployeeRepository
	holidayRepo    holiday.HolidayRepository
	resolver       shift.Resolver

	// processing serializes auto attendance passes. The cron pass skips when
	// it cannot take the lock; the manual trigger reports the conflict.
	processing sync.Mutex
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	eventRepo checkin.EventRepository,
	shiftTypeRepo shift.ShiftTypeRepository,
	assignmentRepo shift.ShiftAssignmentRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	resolver shift.Resolver,
) attendance.AttendanceService {
	return &attendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		eventRepo:      eventRepo,
		shiftTypeRepo:  shiftTypeRepo,
		assignmentRepo: assignmentRepo,
		employeeRepo:   employeeRepo,
		holidayRepo:    holidayRepo,
		resolver:       resolver,
	}
}

// ========================================
// MANUAL MARKING
// ========================================

// MarkAttendance implements attendance.AttendanceService.
func (s *attendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.AttendanceResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.CompanyID != req.CompanyID {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeNotFound
	}

	var st *shift.ShiftType
	if req.ShiftTypeID != nil {
		loaded, err := s.shiftTypeRepo.GetByID(ctx, *req.ShiftTypeID, req.CompanyID)
		if err != nil {
			if errors.Is(err, shift.ErrShiftTypeNotFound) {
				return attendance.AttendanceResponse{}, shift.ErrShiftTypeNotFound
			}
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to get shift type: %w", err)
		}
		st = &loaded
	}

	if err := s.checkMarkingGuards(ctx, req.EmployeeID, req.ParsedDate, st); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		CompanyID:   req.CompanyID,
		EmployeeID:  req.EmployeeID,
		Date:        req.ParsedDate,
		ShiftTypeID: req.ShiftTypeID,
		Status:      attendance.Status(req.Status),
		Remarks:     req.Remarks,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateAttendance) {
			return attendance.AttendanceResponse{}, attendance.ErrDuplicateAttendance
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return mapAttendanceToResponse(created), nil
}

// checkMarkingGuards enforces the duplicate and overlapping-shift guards. A
// record for the same date with the same or no shift is a duplicate; a record
// for a different shift only conflicts when the two padded windows intersect.
func (s *attendanceServiceImpl) checkMarkingGuards(ctx context.Context, employeeID string, date time.Time, st *shift.ShiftType) error {
	var shiftTypeID *string
	if st != nil {
		shiftTypeID = &st.ID
	}

	existing, err := s.attendanceRepo.GetForDate(ctx, employeeID, date, shiftTypeID)
	if err != nil {
		return fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.ErrDuplicateAttendance
	}

	if st == nil {
		return nil
	}

	other, err := s.attendanceRepo.GetForOtherShiftOnDate(ctx, employeeID, date, st.ID)
	if err != nil {
		return fmt.Errorf("failed to check overlapping attendance: %w", err)
	}
	if other == nil || other.ShiftTypeID == nil {
		return nil
	}

	otherType, err := s.shiftTypeRepo.GetByID(ctx, *other.ShiftTypeID, other.CompanyID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftTypeNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get shift type %s: %w", *other.ShiftTypeID, err)
	}
	if shiftsvc.HasOverlappingTimings(*st, otherType) {
		return fmt.Errorf("%w: %s", attendance.ErrOverlappingShiftAttendance, otherType.Name)
	}
	return nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *attendanceServiceImpl) GetAttendance(ctx context.Context, id string, companyID string) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return mapAttendanceToResponse(record), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *attendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter, companyID string) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapAttendanceToResponse(record))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: responses,
	}, nil
}

// ========================================
// AUTO ATTENDANCE
// ========================================

// ProcessShiftType implements attendance.AttendanceService.
func (s *attendanceServiceImpl) ProcessShiftType(ctx context.Context, shiftTypeID string, companyID string) error {
	st, err := s.shiftTypeRepo.GetByID(ctx, shiftTypeID, companyID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftTypeNotFound) {
			return shift.ErrShiftTypeNotFound
		}
		return fmt.Errorf("failed to get shift type: %w", err)
	}

	if !s.processing.TryLock() {
		return attendance.ErrProcessingInProgress
	}
	defer s.processing.Unlock()

	return s.processShiftType(ctx, st)
}

// ProcessAllShiftTypes implements attendance.AttendanceService.
func (s *attendanceServiceImpl) ProcessAllShiftTypes(ctx context.Context) error {
	if !s.processing.TryLock() {
		slog.Info("auto attendance pass already running, skipping")
		return nil
	}
	defer s.processing.Unlock()

	shiftTypes, err := s.shiftTypeRepo.ListAutoAttendanceEnabled(ctx)
	if err != nil {
		return fmt.Errorf("failed to list auto attendance shift types: %w", err)
	}

	for _, st := range shiftTypes {
		if err := s.processShiftType(ctx, st); err != nil {
			slog.Error("failed to process auto attendance for shift type",
				"shift_type_id", st.ID,
				"shift_type", st.Name,
				"error", err)
		}
	}
	return nil
}

func (s *attendanceServiceImpl) processShiftType(ctx context.Context, st shift.ShiftType) error {
	if !st.EnableAutoAttendance {
		return nil
	}
	if st.ProcessAttendanceAfter.IsZero() {
		slog.Warn("shift type has no process_attendance_after date, skipping",
			"shift_type_id", st.ID, "shift_type", st.Name)
		return nil
	}

	// Occurrences whose padded window ends before the sync point are final;
	// later punches can no longer land in them.
	syncPoint := time.Now().UTC()

	events, err := s.eventRepo.ListUnprocessed(ctx, st.ID, st.ProcessAttendanceAfter, syncPoint)
	if err != nil {
		return fmt.Errorf("failed to list unprocessed checkins: %w", err)
	}

	for _, group := range groupByOccurrence(events) {
		if err := s.markOccurrence(ctx, st, group); err != nil {
			slog.Error("failed to mark attendance for occurrence",
				"shift_type_id", st.ID,
				"employee_id", group[0].EmployeeID,
				"shift_start", group[0].ShiftStart,
				"error", err)
		}
	}

	if err := s.sweepAbsences(ctx, st, syncPoint); err != nil {
		return fmt.Errorf("absence sweep failed: %w", err)
	}

	if err := s.shiftTypeRepo.SetLastSyncOfCheckins(ctx, st.ID, syncPoint); err != nil {
		return fmt.Errorf("failed to record sync point: %w", err)
	}
	return nil
}

// groupByOccurrence splits events (ordered by shift actual start, then time)
// into per-employee occurrence groups.
func groupByOccurrence(events []checkin.Event) [][]checkin.Event {
	type key struct {
		employeeID string
		start      time.Time
	}
	var groups [][]checkin.Event
	index := make(map[key]int)
	for _, e := range events {
		if e.ShiftActualStart == nil || e.ShiftStart == nil || e.ShiftEnd == nil {
			continue
		}
		k := key{employeeID: e.EmployeeID, start: e.ShiftActualStart.UTC()}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], e)
	}
	return groups
}

// markOccurrence folds one occurrence group into an attendance record. Groups
// blocked by a guard have their events excluded from future passes instead of
// overwriting what is already marked.
func (s *attendanceServiceImpl) markOccurrence(ctx context.Context, st shift.ShiftType, group []checkin.Event) error {
	first := group[0]
	date := dateOnly(*first.ShiftStart)
	eventIDs := make([]string, 0, len(group))
	for _, e := range group {
		eventIDs = append(eventIDs, e.ID)
	}

	emp, err := s.employeeRepo.GetByID(ctx, first.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to get employee: %w", err)
	}

	onHoliday, err := s.isHoliday(ctx, emp, st, date)
	if err != nil {
		return err
	}
	if onHoliday && !st.MarkAbsentOnHolidays {
		return s.excludeGroup(ctx, eventIDs, "holiday", first)
	}

	if err := s.checkMarkingGuards(ctx, first.EmployeeID, date, &st); err != nil {
		if errors.Is(err, attendance.ErrDuplicateAttendance) || errors.Is(err, attendance.ErrOverlappingShiftAttendance) {
			return s.excludeGroup(ctx, eventIDs, err.Error(), first)
		}
		return err
	}

	c := ClassifyOccurrence(group, st, *first.ShiftStart, *first.ShiftEnd)

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		CompanyID:    first.CompanyID,
		EmployeeID:   first.EmployeeID,
		Date:         date,
		ShiftTypeID:  &st.ID,
		Status:       c.Status,
		WorkingHours: c.WorkingHours,
		LateEntry:    c.LateEntry,
		EarlyExit:    c.EarlyExit,
		InTime:       c.InTime,
		OutTime:      c.OutTime,
	})
	if err != nil {
		// Lost a race against manual marking; exclude rather than conflict.
		if errors.Is(err, attendance.ErrDuplicateAttendance) {
			return s.excludeGroup(ctx, eventIDs, err.Error(), first)
		}
		return fmt.Errorf("failed to create attendance: %w", err)
	}

	if err := s.eventRepo.LinkAttendance(ctx, eventIDs, created.ID); err != nil {
		return fmt.Errorf("failed to link checkins to attendance %s: %w", created.ID, err)
	}
	return nil
}

func (s *attendanceServiceImpl) excludeGroup(ctx context.Context, eventIDs []string, reason string, first checkin.Event) error {
	slog.Info("excluding checkins from auto attendance",
		"employee_id", first.EmployeeID,
		"shift_start", first.ShiftStart,
		"reason", reason)
	if err := s.eventRepo.MarkSkipped(ctx, eventIDs); err != nil {
		return fmt.Errorf("failed to mark checkins skipped: %w", err)
	}
	return nil
}

func (s *attendanceServiceImpl) isHoliday(ctx context.Context, emp employee.Employee, st shift.ShiftType, date time.Time) (bool, error) {
	listID := holidayListFor(emp, st)
	if listID == nil {
		return false, nil
	}
	onHoliday, err := s.holidayRepo.IsHoliday(ctx, *listID, date)
	if err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}
	return onHoliday, nil
}

// holidayListFor prefers the employee's own holiday list over the shift
// type's.
func holidayListFor(emp employee.Employee, st shift.ShiftType) *string {
	if emp.HolidayListID != nil {
		return emp.HolidayListID
	}
	return st.HolidayListID
}

// ========================================
// ABSENCE SWEEP
// ========================================

// sweepAbsences marks Absent every unmarked working day of the shift's
// employees up to the last occurrence that fully ended before syncPoint.
// Re-running is harmless: already marked dates are skipped.
func (s *attendanceServiceImpl) sweepAbsences(ctx context.Context, st shift.ShiftType, syncPoint time.Time) error {
	// The occurrence covering syncPoint may still collect punches, so the
	// sweep stops the day before it.
	sweepEnd := dateOnly(shiftsvc.BoundsForTimestamp(st, syncPoint).ActualStart).AddDate(0, 0, -1)
	if sweepEnd.Before(st.ProcessAttendanceAfter) {
		return nil
	}

	employeeIDs, err := s.sweepEmployeeIDs(ctx, st)
	if err != nil {
		return err
	}

	for _, employeeID := range employeeIDs {
		if err := s.sweepEmployee(ctx, st, employeeID, sweepEnd); err != nil {
			slog.Error("absence sweep failed for employee",
				"shift_type_id", st.ID,
				"employee_id", employeeID,
				"error", err)
		}
	}
	return nil
}

func (s *attendanceServiceImpl) sweepEmployeeIDs(ctx context.Context, st shift.ShiftType) ([]string, error) {
	assigned, err := s.assignmentRepo.ListAssignedEmployeeIDs(ctx, st.ID, st.ProcessAttendanceAfter)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned employees: %w", err)
	}
	defaulted, err := s.employeeRepo.ListDefaultShiftEmployeeIDs(ctx, st.ID, st.ProcessAttendanceAfter)
	if err != nil {
		return nil, fmt.Errorf("failed to list default-shift employees: %w", err)
	}

	seen := make(map[string]bool, len(assigned)+len(defaulted))
	ids := make([]string, 0, len(assigned)+len(defaulted))
	for _, id := range append(assigned, defaulted...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *attendanceServiceImpl) sweepEmployee(ctx context.Context, st shift.ShiftType, employeeID string, sweepEnd time.Time) error {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to get employee: %w", err)
	}

	start := dateOnly(st.ProcessAttendanceAfter)
	if emp.DateOfJoining.After(start) {
		start = dateOnly(emp.DateOfJoining)
	}
	end := sweepEnd
	if emp.RelievingDate != nil && emp.RelievingDate.Before(end) {
		end = dateOnly(*emp.RelievingDate)
	}
	if end.Before(start) {
		return nil
	}

	skip, err := s.skippableDates(ctx, emp, st, start, end)
	if err != nil {
		return err
	}

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		if skip[dateKey(date)] {
			continue
		}

		// Confirm this shift actually applies on the date; the resolver also
		// keeps a default shift from overriding an explicit assignment.
		resolved, err := s.resolver.ResolveShiftForTimestamp(ctx, employeeID, date.Add(st.StartTime), true)
		if err != nil {
			return fmt.Errorf("failed to resolve shift on %s: %w", date.Format("2006-01-02"), err)
		}
		if resolved == nil || resolved.ShiftType.ID != st.ID {
			continue
		}

		_, err = s.attendanceRepo.Create(ctx, attendance.Attendance{
			CompanyID:   emp.CompanyID,
			EmployeeID:  employeeID,
			Date:        date,
			ShiftTypeID: &st.ID,
			Status:      attendance.StatusAbsent,
		})
		if err != nil && !errors.Is(err, attendance.ErrDuplicateAttendance) {
			return fmt.Errorf("failed to mark absent on %s: %w", date.Format("2006-01-02"), err)
		}
	}
	return nil
}

// skippableDates collects the holiday and already-marked dates of the range.
func (s *attendanceServiceImpl) skippableDates(ctx context.Context, emp employee.Employee, st shift.ShiftType, from, to time.Time) (map[string]bool, error) {
	skip := make(map[string]bool)

	if !st.MarkAbsentOnHolidays {
		if listID := holidayListFor(emp, st); listID != nil {
			holidays, err := s.holidayRepo.ListDatesBetween(ctx, *listID, from, to)
			if err != nil {
				return nil, fmt.Errorf("failed to list holidays: %w", err)
			}
			for _, d := range holidays {
				skip[dateKey(d)] = true
			}
		}
	}

	marked, err := s.attendanceRepo.ListMarkedDatesBetween(ctx, emp.ID, st.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list marked dates: %w", err)
	}
	for _, d := range marked {
		skip[dateKey(d)] = true
	}
	return skip, nil
}

// ========================================
// HELPERS
// ========================================

const timestampFormat = "2006-01-02T15:04:05Z"

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func mapAttendanceToResponse(a attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		EmployeeName:  a.EmployeeName,
		Date:          a.Date.Format("2006-01-02"),
		ShiftTypeID:   a.ShiftTypeID,
		ShiftTypeName: a.ShiftTypeName,
		Status:        string(a.Status),
		WorkingHours:  a.WorkingHours,
		LateEntry:     a.LateEntry,
		EarlyExit:     a.EarlyExit,
		Remarks:       a.Remarks,
		CreatedAt:     a.CreatedAt.Format(timestampFormat),
		UpdatedAt:     a.UpdatedAt.Format(timestampFormat),
	}
	if a.InTime != nil {
		in := a.InTime.Format(timestampFormat)
		resp.InTime = &in
	}
	if a.OutTime != nil {
		out := a.OutTime.Format(timestampFormat)
		resp.OutTime = &out
	}
	return resp
}
