package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/rotalabs/shift-backend-go/internal/domain/attendance"
	"github.com/rotalabs/shift-backend-go/internal/domain/shift"
)

// AttendanceJobs contains the background passes of the attendance pipeline.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	shiftService      shift.ShiftService
	processInterval   time.Duration
}

func NewAttendanceJobs(
	attendanceService attendance.AttendanceService,
	shiftService shift.ShiftService,
	processInterval time.Duration,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		shiftService:      shiftService,
		processInterval:   processInterval,
	}
}

// RegisterJobs registers the attendance pipeline jobs
func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("process_auto_attendance", j.processInterval, j.ProcessAutoAttendance)
	scheduler.AddJob("materialize_shift_schedules", 1*time.Hour, j.MaterializeShiftSchedules)
}

// ProcessAutoAttendance folds unprocessed checkins into attendance records
// for every shift type with auto attendance enabled.
func (j *AttendanceJobs) ProcessAutoAttendance(ctx context.Context) error {
	slog.Info("Cron: Starting auto attendance processing")

	if err := j.attendanceService.ProcessAllShiftTypes(ctx); err != nil {
		return err
	}

	slog.Info("Cron: Auto attendance processing finished")
	return nil
}

// MaterializeShiftSchedules extends recurring schedules into concrete shift
// assignments. The horizon only moves once a day, so skip all runs but the
// first after midnight UTC.
func (j *AttendanceJobs) MaterializeShiftSchedules(ctx context.Context) error {
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting shift schedule materialization")

	if err := j.shiftService.MaterializeDueSchedules(ctx); err != nil {
		return err
	}

	slog.Info("Cron: Shift schedule materialization finished")
	return nil
}
