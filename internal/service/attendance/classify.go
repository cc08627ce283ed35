package attendance

import (
	"time"

	"github.com/rotalabs/shift-backend-go/internal/domain/attendance"
	"github.com/rotalabs/shift-backend-go/internal/domain/checkin"
	"github.com/rotalabs/shift-backend-go/internal/domain/shift"
	checkinsvc "github.com/rotalabs/shift-backend-go/internal/service/checkin"
)

// Classification is the derived attendance outcome for one shift occurrence.
type Classification struct {
	Status       attendance.Status
	WorkingHours float64
	LateEntry    bool
	EarlyExit    bool
	InTime       *time.Time
	OutTime      *time.Time
}

// ClassifyOccurrence folds an occurrence's checkin events into a status using
// the shift type's thresholds. Absent is checked before Half Day, so with an
// absent threshold above the half-day threshold the harsher status wins.
// Late/early flags compare against the nominal window padded by the flag
// grace, and only when the respective marking is enabled.
func ClassifyOccurrence(events []checkin.Event, st shift.ShiftType, shiftStart, shiftEnd time.Time) Classification {
	hours, inTime, outTime := checkinsvc.CalculateWorkingHours(events, st.Determination, st.Calculation, st.RoundingPrecision)

	c := Classification{
		Status:       attendance.StatusPresent,
		WorkingHours: hours,
		InTime:       inTime,
		OutTime:      outTime,
	}

	switch {
	case st.AbsentThresholdHours > 0 && hours < st.AbsentThresholdHours:
		c.Status = attendance.StatusAbsent
	case st.HalfDayThresholdHours > 0 && hours < st.HalfDayThresholdHours:
		c.Status = attendance.StatusHalfDay
	}

	if st.EnableLateEntryMarking && inTime != nil {
		grace := time.Duration(st.LateEntryGraceMinutes) * time.Minute
		c.LateEntry = inTime.After(shiftStart.Add(grace))
	}
	if st.EnableEarlyExitMarking && outTime != nil {
		grace := time.Duration(st.EarlyExitGraceMinutes) * time.Minute
		c.EarlyExit = outTime.Before(shiftEnd.Add(-grace))
	}

	return c
}
