package holiday

import "time"

type HolidayList struct {
	ID        string
	CompanyID string
	Name      string
	FromDate  time.Time
	ToDate    time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Holiday struct {
	ID            string
	HolidayListID string
	Date          time.Time
	Description   string
}
