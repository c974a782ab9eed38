package service

// Coordinates is a geocoded place.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
}

// WeatherSnapshot is one forecast day. Temperatures are in °C and the
// precipitation probability is a percentage.
type WeatherSnapshot struct {
	Date                     string  `json:"date"`
	TemperatureMax           float64 `json:"temperature_max"`
	TemperatureMin           float64 `json:"temperature_min"`
	WeatherCode              int     `json:"weather_code"`
	PrecipitationProbability int     `json:"precipitation_probability"`
	Timezone                 string  `json:"timezone"`
}

// TimeWindow is a local HH:MM interval.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SunTimes holds the solar events for one day in the local zone of the
// queried coordinates, plus the derived photography windows.
type SunTimes struct {
	Sunrise           string     `json:"sunrise"`
	Sunset            string     `json:"sunset"`
	SolarNoon         string     `json:"solar_noon"`
	DayLength         int        `json:"day_length"`
	Timezone          string     `json:"timezone"`
	GoldenHourMorning TimeWindow `json:"golden_hour_morning"`
	GoldenHourEvening TimeWindow `json:"golden_hour_evening"`
	BlueHourMorning   TimeWindow `json:"blue_hour_morning"`
	BlueHourEvening   TimeWindow `json:"blue_hour_evening"`
}
