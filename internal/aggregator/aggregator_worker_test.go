package aggregator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTripConditions_PreservesOrder(t *testing.T) {
	f := newFixture()
	agg := f.aggregator(t, Options{Workers: 2})

	dates := []string{"2024-06-21", "2024-06-22", "2024-06-23", "2024-06-24", "2024-06-25"}
	got, err := agg.GetTripConditions(context.Background(), "Paris", dates)
	require.NoError(t, err)

	assert.Equal(t, "Paris", got.Location.Name)
	require.Len(t, got.Days, len(dates))
	for i, day := range got.Days {
		assert.Equal(t, dates[i], day.Date)
		require.NotNil(t, day.Weather)
		assert.Equal(t, dates[i], day.Weather.Date)
		assert.NotNil(t, day.SunTimes)
	}

	assert.Equal(t, int32(1), f.geocoder.calls.Load())
	assert.Equal(t, int32(len(dates)), f.weather.calls.Load())
	assert.ElementsMatch(t, dates, f.weather.dates)
}

func TestGetTripConditions_PartialDays(t *testing.T) {
	f := newFixture()
	f.weather.ok = false
	agg := f.aggregator(t, Options{})

	got, err := agg.GetTripConditions(context.Background(), "Paris", []string{"2024-06-21"})
	require.NoError(t, err)

	require.Len(t, got.Days, 1)
	assert.Nil(t, got.Days[0].Weather)
	assert.NotNil(t, got.Days[0].SunTimes)
}

func TestGetTripConditions_Errors(t *testing.T) {
	f := newFixture()
	agg := f.aggregator(t, Options{})
	ctx := context.Background()

	_, err := agg.GetTripConditions(ctx, "Paris", nil)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = agg.GetTripConditions(ctx, "Paris", []string{"2024-06-21", ""})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = agg.GetTripConditions(ctx, "Paris", []string{"2024/06/21"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	tooMany := make([]string, MaxTripDays+1)
	for i := range tooMany {
		tooMany[i] = "2024-06-21"
	}
	_, err = agg.GetTripConditions(ctx, "Paris", tooMany)
	assert.ErrorIs(t, err, ErrTooManyDays)

	assert.Equal(t, int32(0), f.geocoder.calls.Load())

	f.geocoder.ok = false
	_, err = agg.GetTripConditions(ctx, "Nowhereville123", []string{"2024-06-21"})
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestGetTripConditions_CancelledContext(t *testing.T) {
	f := newFixture()
	agg := f.aggregator(t, Options{Workers: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := agg.GetTripConditions(ctx, "Paris", []string{"2024-06-21", "2024-06-22"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDateRange(t *testing.T) {
	dates, err := DateRange("2024-02-27", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"}, dates)

	dates, err = DateRange("2024-06-21", "2024-06-21")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-21"}, dates)

	_, err = DateRange("2024-06-22", "2024-06-21")
	assert.Error(t, err)

	_, err = DateRange("2024-06-01", "2024-06-30")
	assert.ErrorIs(t, err, ErrTooManyDays)

	_, err = DateRange("bad", "2024-06-21")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
