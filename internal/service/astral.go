package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sj14/astral/pkg/astral"
	"github.com/vzahanych/photo-app/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// AstralSun computes sun times locally instead of calling a remote API.
type AstralSun struct {
	zones    TimeZoneResolver
	logger   *zap.Logger
	tele     *telemetry.Telemetry
	recorder ProviderRecorder
	now      func() time.Time
}

func NewAstralSun(zones TimeZoneResolver, opts Options) *AstralSun {
	opts = opts.withDefaults()
	return &AstralSun{
		zones:    zones,
		logger:   opts.Logger.With(zap.String("provider", "astral")),
		tele:     opts.Tele,
		recorder: opts.Recorder,
		now:      time.Now,
	}
}

func (s *AstralSun) Name() string {
	return "astral"
}

// SunTimes fails during polar day or night, when the sun does not cross the horizon.
func (s *AstralSun) SunTimes(ctx context.Context, lat, lon float64, date string) (SunTimes, bool) {
	start := time.Now()
	_, span := s.tele.StartSpan(ctx, "astral.SunTimes",
		attribute.Float64("lat", lat),
		attribute.Float64("lon", lon),
		attribute.String("date", date))
	defer span.End()

	times, err := s.compute(lat, lon, date)
	if err != nil {
		record(s.recorder, s.Name(), outcomeError, time.Since(start))
		s.logger.Warn("Sun times unavailable",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.String("date", date),
			zap.Error(err))
		return SunTimes{}, false
	}
	record(s.recorder, s.Name(), outcomeSuccess, time.Since(start))
	return times, true
}

func (s *AstralSun) compute(lat, lon float64, date string) (SunTimes, error) {
	loc, zone := resolveLocation(s.zones, lat, lon)

	day := s.now().In(loc)
	if date != "" {
		d, err := time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			return SunTimes{}, err
		}
		day = d
	}
	// noon avoids the calculation sliding to an adjacent UTC day
	day = time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, loc)

	observer := astral.Observer{Latitude: lat, Longitude: lon}

	sunrise, err := astral.Sunrise(observer, day)
	if err != nil {
		return SunTimes{}, fmt.Errorf("failed to calculate sunrise: %w", err)
	}
	sunset, err := astral.Sunset(observer, day)
	if err != nil {
		return SunTimes{}, fmt.Errorf("failed to calculate sunset: %w", err)
	}

	noon := sunrise.Add(sunset.Sub(sunrise) / 2)
	dayLength := int(sunset.Sub(sunrise).Seconds())

	return DeriveSunTimes(sunrise, sunset, noon, dayLength, loc, zone), nil
}
