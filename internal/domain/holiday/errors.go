package holiday

import "errors"

var (
	ErrHolidayListNotFound = errors.New("holiday list not found")
)
