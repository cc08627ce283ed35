package shift

import (
	"time"

	"github.com/rotalabs/shift-backend-go/internal/domain/shift"
)

const day = 24 * time.Hour

// BoundsForTimestamp anchors the shift type's time-of-day window to absolute
// datetimes around ts, then applies the checkin-before/checkout-after padding.
// ts may fall anywhere inside the padded window, including the margin on the
// far side of midnight for overnight shifts.
func BoundsForTimestamp(st shift.ShiftType, ts time.Time) shift.ShiftBounds {
	startTime := clockOffset(st.StartTime)
	endTime := clockOffset(st.EndTime)
	checkinBefore := time.Duration(st.CheckinBeforeMinutes) * time.Minute
	checkoutAfter := time.Duration(st.CheckoutAfterMinutes) * time.Minute

	// Padded boundaries reduced to time-of-day; padding may wrap them across
	// midnight.
	actualStartTime := clockOffset(startTime - checkinBefore)
	actualEndTime := clockOffset(endTime + checkoutAfter)

	anchor := startOfDay(ts)
	tsTime := ts.Sub(anchor)

	var start, end time.Time
	switch {
	case startTime > endTime:
		// Overnight window. Anchor to ts's day when ts sits at or past the
		// padded start, otherwise the window began the previous day.
		if tsTime >= actualStartTime {
			start = anchor.Add(startTime)
			end = anchor.AddDate(0, 0, 1).Add(endTime)
		} else {
			start = anchor.AddDate(0, 0, -1).Add(startTime)
			end = anchor.Add(endTime)
		}
	case actualStartTime > actualEndTime && tsTime < actualStartTime && endTime > actualEndTime:
		// Checkout padding wrapped past midnight and ts is inside that margin:
		// the window belongs to the previous day.
		start = anchor.AddDate(0, 0, -1).Add(startTime)
		end = anchor.AddDate(0, 0, -1).Add(endTime)
	case actualStartTime > actualEndTime && tsTime > actualEndTime && startTime < actualStartTime:
		// Checkin padding wrapped back past midnight and ts is inside that
		// margin: the window belongs to the next day.
		start = anchor.AddDate(0, 0, 1).Add(startTime)
		end = anchor.AddDate(0, 0, 1).Add(endTime)
	default:
		start = anchor.Add(startTime)
		end = anchor.Add(endTime)
	}

	return shift.ShiftBounds{
		ShiftType:   st,
		Start:       start,
		End:         end,
		ActualStart: start.Add(-checkinBefore),
		ActualEnd:   end.Add(checkoutAfter),
	}
}

// WithinActualWindow reports whether ts falls inside the padded window,
// boundaries included.
func WithinActualWindow(b shift.ShiftBounds, ts time.Time) bool {
	return !ts.Before(b.ActualStart) && !ts.After(b.ActualEnd)
}

// clockOffset reduces d to a time-of-day offset in [0, 24h).
func clockOffset(d time.Duration) time.Duration {
	d %= day
	if d < 0 {
		d += day
	}
	return d
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dateOnly drops the time-of-day component, keeping the location.
func dateOnly(t time.Time) time.Time {
	return startOfDay(t)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func timeOfDay(t time.Time) time.Duration {
	return t.Sub(startOfDay(t))
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
