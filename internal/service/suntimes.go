package service

import "time"

const (
	clockLayout    = "15:04"
	goldenHourSpan = time.Hour
	blueHourSpan   = 30 * time.Minute
)

// DeriveSunTimes converts the solar instants into loc and derives the golden
// and blue hour windows around sunrise and sunset.
func DeriveSunTimes(sunrise, sunset, noon time.Time, dayLength int, loc *time.Location, zone string) SunTimes {
	sunrise = sunrise.In(loc)
	sunset = sunset.In(loc)
	noon = noon.In(loc)

	return SunTimes{
		Sunrise:   formatClock(sunrise),
		Sunset:    formatClock(sunset),
		SolarNoon: formatClock(noon),
		DayLength: dayLength,
		Timezone:  zone,
		GoldenHourMorning: TimeWindow{
			Start: formatClock(sunrise),
			End:   formatClock(sunrise.Add(goldenHourSpan)),
		},
		GoldenHourEvening: TimeWindow{
			Start: formatClock(sunset.Add(-goldenHourSpan)),
			End:   formatClock(sunset),
		},
		BlueHourMorning: TimeWindow{
			Start: formatClock(sunrise.Add(-blueHourSpan)),
			End:   formatClock(sunrise),
		},
		BlueHourEvening: TimeWindow{
			Start: formatClock(sunset),
			End:   formatClock(sunset.Add(blueHourSpan)),
		},
	}
}

func formatClock(t time.Time) string {
	return t.Format(clockLayout)
}
