package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vzahanych/photo-app/internal/config"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SunriseSunset queries api.sunrise-sunset.org and converts the UTC answer
// into the zone of the queried coordinates.
type SunriseSunset struct {
	httpProvider
	zones TimeZoneResolver
}

type sunriseSunsetResponse struct {
	Status  string `json:"status"`
	Results struct {
		Sunrise   string `json:"sunrise"`
		Sunset    string `json:"sunset"`
		SolarNoon string `json:"solar_noon"`
		DayLength int    `json:"day_length"`
	} `json:"results"`
}

func NewSunriseSunset(cfg config.ProviderConfig, zones TimeZoneResolver, opts Options) *SunriseSunset {
	return &SunriseSunset{
		httpProvider: newHTTPProvider("sunrise-sunset", cfg.BaseURL, opts),
		zones:        zones,
	}
}

func (s *SunriseSunset) Name() string {
	return s.name
}

func (s *SunriseSunset) SunTimes(ctx context.Context, lat, lon float64, date string) (SunTimes, bool) {
	ctx, done := s.startSpan(ctx, "SunTimes",
		attribute.Float64("lat", lat),
		attribute.Float64("lon", lon),
		attribute.String("date", date))
	times, err := s.fetch(ctx, lat, lon, date)
	done(err)

	if err != nil {
		s.logger.Warn("Sun times unavailable",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.String("date", date),
			zap.Error(err))
		return SunTimes{}, false
	}
	return times, true
}

func (s *SunriseSunset) fetch(ctx context.Context, lat, lon float64, date string) (SunTimes, error) {
	loc, zone := resolveLocation(s.zones, lat, lon)
	if zone == "UTC" {
		s.logger.Debug("Using UTC for sun times", zap.Float64("lat", lat), zap.Float64("lon", lon))
	}

	u, err := s.endpoint("json")
	if err != nil {
		return SunTimes{}, err
	}

	q := u.Query()
	q.Set("lat", fmt.Sprintf("%.6f", lat))
	q.Set("lng", fmt.Sprintf("%.6f", lon))
	q.Set("formatted", "0")
	if date != "" {
		q.Set("date", date)
	}
	u.RawQuery = q.Encode()

	var body sunriseSunsetResponse
	if err := s.getJSON(ctx, u, &body); err != nil {
		return SunTimes{}, err
	}
	if body.Status != "OK" {
		return SunTimes{}, fmt.Errorf("API returned status %q", body.Status)
	}

	sunrise, err := time.Parse(time.RFC3339, body.Results.Sunrise)
	if err != nil {
		return SunTimes{}, fmt.Errorf("failed to parse sunrise: %w", err)
	}
	sunset, err := time.Parse(time.RFC3339, body.Results.Sunset)
	if err != nil {
		return SunTimes{}, fmt.Errorf("failed to parse sunset: %w", err)
	}
	noon, err := time.Parse(time.RFC3339, body.Results.SolarNoon)
	if err != nil {
		return SunTimes{}, fmt.Errorf("failed to parse solar noon: %w", err)
	}

	return DeriveSunTimes(sunrise, sunset, noon, body.Results.DayLength, loc, zone), nil
}
