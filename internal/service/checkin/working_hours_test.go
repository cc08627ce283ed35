package checkin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotalabs/shift-backend-go/internal/domain/checkin"
	"github.com/rotalabs/shift-backend-go/internal/domain/shift"
)

func at(h, m int) time.Time {
	return time.Date(2026, time.March, 10, h, m, 0, 0, time.UTC)
}

func event(t time.Time, dir checkin.LogDirection) checkin.Event {
	return checkin.Event{EmployeeID: "emp-1", Time: t, Direction: dir}
}

func TestCalculateWorkingHours_AlternatingFirstInLastOut(t *testing.T) {
	events := []checkin.Event{
		event(at(8, 45), ""),
		event(at(12, 0), ""),
	}

	hours, in, out := CalculateWorkingHours(events, shift.DeterminationAlternating, shift.CalculationFirstInLastOut, 2)
	assert.Equal(t, 3.25, hours)
	require.NotNil(t, in)
	require.NotNil(t, out)
	assert.Equal(t, at(8, 45), *in)
	assert.Equal(t, at(12, 0), *out)
}

func TestCalculateWorkingHours_AlternatingEveryValidPair(t *testing.T) {
	// Break in the middle: two pairs, last event unpaired.
	events := []checkin.Event{
		event(at(9, 0), ""),
		event(at(12, 0), ""),
		event(at(13, 0), ""),
		event(at(17, 0), ""),
		event(at(18, 0), ""),
	}

	hours, in, out := CalculateWorkingHours(events, shift.DeterminationAlternating, shift.CalculationEveryValidPair, 2)
	assert.Equal(t, 7.0, hours)
	assert.Equal(t, at(9, 0), *in)
	assert.Equal(t, at(18, 0), *out)
}

func TestCalculateWorkingHours_StrictEveryValidPair(t *testing.T) {
	// Leading OUT has no preceding IN and the trailing IN stays unpaired:
	// only the 09:30-11:00 pair counts.
	events := []checkin.Event{
		event(at(9, 0), checkin.DirectionOut),
		event(at(9, 30), checkin.DirectionIn),
		event(at(11, 0), checkin.DirectionOut),
		event(at(14, 0), checkin.DirectionIn),
	}

	hours, in, out := CalculateWorkingHours(events, shift.DeterminationStrict, shift.CalculationEveryValidPair, 2)
	assert.Equal(t, 1.5, hours)
	require.NotNil(t, in)
	require.NotNil(t, out)
	assert.Equal(t, at(9, 30), *in)
	assert.Equal(t, at(11, 0), *out)
}

func TestCalculateWorkingHours_StrictFirstInLastOut(t *testing.T) {
	events := []checkin.Event{
		event(at(8, 0), checkin.DirectionOut), // stray from previous shift
		event(at(9, 0), checkin.DirectionIn),
		event(at(12, 0), checkin.DirectionOut),
		event(at(13, 0), checkin.DirectionIn),
		event(at(17, 30), checkin.DirectionOut),
	}

	hours, in, out := CalculateWorkingHours(events, shift.DeterminationStrict, shift.CalculationFirstInLastOut, 2)
	assert.Equal(t, 8.5, hours)
	assert.Equal(t, at(9, 0), *in)
	assert.Equal(t, at(17, 30), *out)
}

func TestCalculateWorkingHours_SingleEvent(t *testing.T) {
	events := []checkin.Event{event(at(9, 0), checkin.DirectionIn)}

	hours, in, out := CalculateWorkingHours(events, shift.DeterminationStrict, shift.CalculationEveryValidPair, 2)
	assert.Equal(t, 0.0, hours)
	require.NotNil(t, in)
	require.NotNil(t, out)
	assert.Equal(t, at(9, 0), *in)
	assert.Equal(t, at(9, 0), *out)
}

func TestCalculateWorkingHours_Empty(t *testing.T) {
	hours, in, out := CalculateWorkingHours(nil, shift.DeterminationAlternating, shift.CalculationFirstInLastOut, 2)
	assert.Equal(t, 0.0, hours)
	assert.Nil(t, in)
	assert.Nil(t, out)
}

func TestCalculateWorkingHours_SortsDefensively(t *testing.T) {
	events := []checkin.Event{
		event(at(12, 0), ""),
		event(at(8, 45), ""),
	}

	hours, in, out := CalculateWorkingHours(events, shift.DeterminationAlternating, shift.CalculationFirstInLastOut, 2)
	assert.Equal(t, 3.25, hours)
	assert.Equal(t, at(8, 45), *in)
	assert.Equal(t, at(12, 0), *out)
}

func TestCalculateWorkingHours_RoundsPerPair(t *testing.T) {
	// 50 minutes = 0.8333... rounds to 0.83 at precision 2.
	events := []checkin.Event{
		event(at(9, 0), ""),
		event(at(9, 50), ""),
	}

	hours, _, _ := CalculateWorkingHours(events, shift.DeterminationAlternating, shift.CalculationEveryValidPair, 2)
	assert.Equal(t, 0.83, hours)
}
