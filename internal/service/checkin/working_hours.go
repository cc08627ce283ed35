package checkin

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rotalabs/shift-backend-go/internal/domain/checkin"
	"github.com/rotalabs/shift-backend-go/internal/domain/shift"
)

// CalculateWorkingHours folds one occurrence's checkin events into total
// working hours plus the effective first-in and last-out times. Events are
// sorted by timestamp first; ingestion order is not trusted. A single event
// yields zero hours with in/out both set to that event.
func CalculateWorkingHours(events []checkin.Event, determination shift.CheckinDetermination, calculation shift.WorkingHoursCalculation, precision int32) (float64, *time.Time, *time.Time) {
	if len(events) == 0 {
		return 0, nil, nil
	}

	logs := make([]checkin.Event, len(events))
	copy(logs, events)
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Time.Before(logs[j].Time)
	})

	if len(logs) == 1 {
		t := logs[0].Time
		return 0, &t, &t
	}

	if determination == shift.DeterminationStrict {
		return strictHours(logs, calculation, precision)
	}
	return alternatingHours(logs, calculation, precision)
}

// alternatingHours treats the sorted events as IN, OUT, IN, OUT regardless of
// the direction each device reported.
func alternatingHours(logs []checkin.Event, calculation shift.WorkingHoursCalculation, precision int32) (float64, *time.Time, *time.Time) {
	inTime := logs[0].Time
	outTime := logs[len(logs)-1].Time

	var total float64
	if calculation == shift.CalculationFirstInLastOut {
		total = roundedHours(inTime, outTime, precision)
	} else {
		for i := 0; i+1 < len(logs); i += 2 {
			total += roundedHours(logs[i].Time, logs[i+1].Time, precision)
		}
	}
	return total, &inTime, &outTime
}

// strictHours only pairs events whose logged direction matches: an OUT with
// no preceding IN and a trailing IN with no OUT contribute nothing.
func strictHours(logs []checkin.Event, calculation shift.WorkingHoursCalculation, precision int32) (float64, *time.Time, *time.Time) {
	var inTime, outTime *time.Time
	var total float64

	if calculation == shift.CalculationFirstInLastOut {
		for i := range logs {
			if logs[i].Direction == checkin.DirectionIn {
				inTime = &logs[i].Time
				break
			}
		}
		for i := len(logs) - 1; i >= 0; i-- {
			if logs[i].Direction == checkin.DirectionOut {
				outTime = &logs[i].Time
				break
			}
		}
		if inTime != nil && outTime != nil && outTime.After(*inTime) {
			total = roundedHours(*inTime, *outTime, precision)
		}
		return total, inTime, outTime
	}

	var pairIn, pairOut *time.Time
	flush := func() {
		if pairIn == nil || pairOut == nil {
			return
		}
		outTime = pairOut
		total += roundedHours(*pairIn, *pairOut, precision)
		pairIn, pairOut = nil, nil
	}

	for i := range logs {
		flush()
		switch {
		case pairIn == nil && logs[i].Direction == checkin.DirectionIn:
			pairIn = &logs[i].Time
			if inTime == nil {
				inTime = pairIn
			}
		case pairIn != nil && pairOut == nil && logs[i].Direction == checkin.DirectionOut:
			pairOut = &logs[i].Time
		}
	}
	flush()

	return total, inTime, outTime
}

var secondsPerHour = decimal.NewFromInt(3600)

// roundedHours converts the span between two instants to decimal hours at the
// configured precision, avoiding float accumulation drift across pairs.
func roundedHours(start, end time.Time, precision int32) float64 {
	if precision <= 0 {
		precision = 2
	}
	hours := decimal.NewFromFloat(end.Sub(start).Seconds()).Div(secondsPerHour)
	f, _ := hours.Round(precision).Float64()
	return f
}
