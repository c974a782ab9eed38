package service

import (
	"context"
	"time"
)

// Geocoder resolves a free-text place name. ok is false for every failure mode.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (Coordinates, bool)
	Name() string
}

// WeatherService returns the forecast for date, or the first available day when date is empty.
type WeatherService interface {
	DailyForecast(ctx context.Context, lat, lon float64, date string) (WeatherSnapshot, bool)
	Name() string
}

// SunService returns sun times for date, or today when date is empty.
type SunService interface {
	SunTimes(ctx context.Context, lat, lon float64, date string) (SunTimes, bool)
	Name() string
}

// TimeZoneResolver maps coordinates to an IANA zone name.
type TimeZoneResolver interface {
	TimeZoneAt(lat, lon float64) (string, bool)
}

// ProviderRecorder receives the outcome of every outbound lookup.
type ProviderRecorder interface {
	RecordProviderCall(provider, outcome string, elapsed time.Duration)
}
