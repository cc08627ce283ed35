package shift

import (
	"sort"
	"time"

	"github.com/rotalabs/shift-backend-go/internal/domain/shift"
)

// AssignedShift pairs an assignment with its shift type for resolution.
type AssignedShift struct {
	Assignment shift.ShiftAssignment
	ShiftType  shift.ShiftType
}

type candidate struct {
	assignment shift.ShiftAssignment
	bounds     shift.ShiftBounds
}

// ShiftForTimestamp resolves ts to one shift occurrence among the employee's
// assignments. Candidate windows outside their assignment period are dropped,
// padded windows of consecutive occurrences are capped so they cannot
// overlap, and the timestamp is matched against what remains. At a boundary
// instant the occurrence starting there wins over the one ending there.
func ShiftForTimestamp(assigned []AssignedShift, ts time.Time) (shift.ResolvedShift, bool) {
	var valid []candidate
	for _, a := range assigned {
		b := BoundsForTimestamp(a.ShiftType, ts)
		if outsideAssignmentPeriod(b, a.Assignment) {
			continue
		}
		if WithinActualWindow(b, ts) {
			valid = append(valid, candidate{assignment: a.Assignment, bounds: b})
		}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].bounds.ActualStart.Before(valid[j].bounds.ActualStart)
	})
	adjustOverlappingWindows(valid)

	var boundary *candidate
	for i := range valid {
		c := &valid[i]
		if ts.Before(c.bounds.ActualStart) || ts.After(c.bounds.ActualEnd) {
			continue
		}
		if ts.Before(c.bounds.ActualEnd) {
			return resolvedFrom(c), true
		}
		// ts sits exactly on the capped actual end. Keep looking: a window
		// starting at this instant takes precedence.
		if boundary == nil {
			boundary = c
		}
	}
	if boundary != nil {
		return resolvedFrom(boundary), true
	}
	return shift.ResolvedShift{}, false
}

func resolvedFrom(c *candidate) shift.ResolvedShift {
	assignment := c.assignment
	return shift.ResolvedShift{
		ShiftBounds: c.bounds,
		Assignment:  &assignment,
	}
}

// adjustOverlappingWindows caps padded windows of consecutive occurrences so
// the padding of one shift never swallows the body of the next: the later
// window may not start before the earlier one's nominal end, and the earlier
// window may not run past the later one's (possibly floored) actual start.
// Expects candidates sorted by actual start.
func adjustOverlappingWindows(cands []candidate) {
	for i := 0; i+1 < len(cands); i++ {
		curr := &cands[i].bounds
		next := &cands[i+1].bounds
		if curr.ActualEnd.After(next.ActualStart) {
			next.ActualStart = maxTime(curr.End, next.ActualStart)
			curr.ActualEnd = minTime(next.ActualStart, curr.ActualEnd)
		}
	}
}

// outsideAssignmentPeriod reports whether the occurrence falls outside the
// assignment's date range. For overnight shifts the padded margins are
// allowed to poke one day past either edge of the range.
func outsideAssignmentPeriod(b shift.ShiftBounds, a shift.ShiftAssignment) bool {
	spansMidnight := timeOfDay(b.ActualStart) > timeOfDay(b.ActualEnd)
	if startsBeforeAssignment(b, a, spansMidnight) {
		return true
	}
	if a.EndDate != nil && endsAfterAssignment(b, a, spansMidnight) {
		return true
	}
	return false
}

func startsBeforeAssignment(b shift.ShiftBounds, a shift.ShiftAssignment, spansMidnight bool) bool {
	if !dateOnly(b.ActualStart).Before(dateOnly(a.StartDate)) {
		return false
	}
	if !spansMidnight {
		return true
	}
	// A padded overnight start may reach into the day before the assignment
	// begins, but only when the nominal start itself is on a later day.
	if sameDate(b.ActualStart, b.Start) {
		return true
	}
	return !sameDate(b.ActualStart, a.StartDate.AddDate(0, 0, -1))
}

func endsAfterAssignment(b shift.ShiftBounds, a shift.ShiftAssignment, spansMidnight bool) bool {
	endDate := dateOnly(*a.EndDate)
	if dateOnly(b.ActualStart).After(endDate) {
		return true
	}
	if !dateOnly(b.ActualEnd).After(endDate) {
		return false
	}
	if !spansMidnight {
		return true
	}
	// The padded end of the last occurrence may spill into the day after the
	// assignment ends, unless the spill is the nominal window itself.
	if sameDate(b.ActualEnd, b.End) && sameDate(b.Start, b.End) {
		return true
	}
	return !sameDate(b.ActualEnd, endDate.AddDate(0, 0, 1))
}

// HasOverlappingTimings reports whether two shift types' padded time-of-day
// windows intersect. Windows are normalized onto a 48-hour clock so overnight
// shifts compare correctly; each window is also tested against the other
// shifted by one day to catch wrap-around adjacency.
func HasOverlappingTimings(a, b shift.ShiftType) bool {
	aStart, aEnd := paddedWindow(a)
	bStart, bEnd := paddedWindow(b)
	for _, offset := range []time.Duration{-day, 0, day} {
		if aEnd > bStart+offset && aStart < bEnd+offset {
			return true
		}
	}
	return false
}

func paddedWindow(st shift.ShiftType) (time.Duration, time.Duration) {
	start := clockOffset(st.StartTime) - time.Duration(st.CheckinBeforeMinutes)*time.Minute
	end := clockOffset(st.EndTime) + time.Duration(st.CheckoutAfterMinutes)*time.Minute
	if end <= start {
		end += day
	}
	for start < 0 {
		start += day
		end += day
	}
	return start, end
}
