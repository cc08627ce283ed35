package holiday

import (
	"context"
	"time"
)

// HolidayRepository is the calendar read side used by attendance processing.
type HolidayRepository interface {
	// IsHoliday reports whether date falls on a holiday of the list.
	IsHoliday(ctx context.Context, holidayListID string, date time.Time) (bool, error)

	// ListDatesBetween retrieves holiday dates of the list within [from, to].
	ListDatesBetween(ctx context.Context, holidayListID string, from, to time.Time) ([]time.Time, error)
}
