package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSunTimes_Windows(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	sunrise := time.Date(2024, 1, 15, 12, 19, 30, 0, time.UTC)
	sunset := time.Date(2024, 1, 15, 21, 57, 10, 0, time.UTC)
	noon := time.Date(2024, 1, 15, 17, 8, 20, 0, time.UTC)

	got := DeriveSunTimes(sunrise, sunset, noon, 34660, loc, "America/New_York")

	assert.Equal(t, "07:19", got.Sunrise)
	assert.Equal(t, "16:57", got.Sunset)
	assert.Equal(t, "12:08", got.SolarNoon)
	assert.Equal(t, 34660, got.DayLength)
	assert.Equal(t, TimeWindow{"07:19", "08:19"}, got.GoldenHourMorning)
	assert.Equal(t, TimeWindow{"15:57", "16:57"}, got.GoldenHourEvening)
	assert.Equal(t, TimeWindow{"06:49", "07:19"}, got.BlueHourMorning)
	assert.Equal(t, TimeWindow{"16:57", "17:27"}, got.BlueHourEvening)
}

func TestDeriveSunTimes_WrapsMidnight(t *testing.T) {
	sunrise := time.Date(2024, 6, 21, 0, 10, 0, 0, time.UTC)
	sunset := time.Date(2024, 6, 21, 23, 50, 0, 0, time.UTC)

	got := DeriveSunTimes(sunrise, sunset, sunrise, 0, time.UTC, "UTC")

	assert.Equal(t, "23:40", got.BlueHourMorning.Start)
	assert.Equal(t, "00:20", got.BlueHourEvening.End)
}

func TestFormatClockZeroPads(t *testing.T) {
	assert.Equal(t, "05:03", formatClock(time.Date(2024, 1, 1, 5, 3, 59, 0, time.UTC)))
	assert.Equal(t, "00:00", formatClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}
