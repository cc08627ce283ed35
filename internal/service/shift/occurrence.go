package shift

import "time"

// DateRange is an inclusive run of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// GenerateOccurrences slices [start, end] into assignment date ranges for a
// recurring schedule: each range is a contiguous run of repeat days, and
// after each schedule week the walk skips gapWeeks-1 weeks ahead. The week is
// anchored so it ends the day before start's weekday.
func GenerateOccurrences(start, end time.Time, repeatOn []time.Weekday, gapWeeks int) []DateRange {
	if end.Before(start) || len(repeatOn) == 0 {
		return nil
	}

	repeat := make(map[time.Weekday]bool, len(repeatOn))
	for _, d := range repeatOn {
		repeat[d] = true
	}

	skipWeeks := gapWeeks - 1
	if skipWeeks < 0 {
		skipWeeks = 0
	}
	weekEndDay := start.AddDate(0, 0, -1).Weekday()

	var ranges []DateRange
	var runStart *time.Time

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		if repeat[date.Weekday()] {
			if runStart == nil {
				d := date
				runStart = &d
			}
			if sameDate(date, end) {
				ranges = append(ranges, DateRange{Start: *runStart, End: date})
				runStart = nil
			}
		} else if runStart != nil {
			ranges = append(ranges, DateRange{Start: *runStart, End: date.AddDate(0, 0, -1)})
			runStart = nil
		}

		if skipWeeks > 0 && date.Weekday() == weekEndDay {
			if runStart != nil {
				ranges = append(ranges, DateRange{Start: *runStart, End: date})
				runStart = nil
			}
			date = date.AddDate(0, 0, 7*skipWeeks)
		}
	}

	return ranges
}
