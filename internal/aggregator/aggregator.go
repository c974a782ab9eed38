package aggregator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vzahanych/photo-app/internal/cache"
	"github.com/vzahanych/photo-app/internal/service"
	"github.com/vzahanych/photo-app/pkg/logger"
	"github.com/vzahanych/photo-app/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
	ErrSunTimesMissing  = errors.New("sun times unavailable")
)

type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Weather struct {
	Date                     string  `json:"date"`
	TemperatureMax           float64 `json:"temperature_max"`
	TemperatureMin           float64 `json:"temperature_min"`
	Description              string  `json:"description"`
	WeatherCode              int     `json:"weather_code"`
	PrecipitationProbability int     `json:"precipitation_probability"`
	Timezone                 string  `json:"timezone"`
}

// PhotographyConditions is the merged answer for one location and date. Weather
// and SunTimes are nil when their provider failed.
type PhotographyConditions struct {
	Location Location          `json:"location"`
	Weather  *Weather          `json:"weather,omitempty"`
	SunTimes *service.SunTimes `json:"sun_times,omitempty"`
}

// MetricsRecorder interface for recording metrics
type MetricsRecorder interface {
	RecordCacheHit(ctx context.Context, cacheType string)
	RecordCacheMiss(ctx context.Context, cacheType string)
}

// Options configures an Aggregator. Timeout bounds each provider call and
// Workers bounds the per-day fan-out of GetTripConditions.
type Options struct {
	Timeout  time.Duration
	Workers  int
	Cache    cache.Store
	CacheTTL time.Duration
	Logger   *zap.Logger
	Tele     *telemetry.Telemetry
	Metrics  MetricsRecorder
}

type Aggregator struct {
	geocoder service.Geocoder
	weather  service.WeatherService
	sun      service.SunService
	cache    cache.Store
	cacheTTL time.Duration
	timeout  time.Duration
	workers  int
	logger   *zap.Logger
	tele     *telemetry.Telemetry
	metrics  MetricsRecorder
}

func New(providers *service.Providers, opts Options) *Aggregator {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Aggregator{
		geocoder: providers.Geocoder,
		weather:  providers.Weather,
		sun:      providers.Sun,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		timeout:  opts.Timeout,
		workers:  opts.Workers,
		logger:   opts.Logger,
		tele:     opts.Tele,
		metrics:  opts.Metrics,
	}
}

// GetPhotographyConditions geocodes location and merges the weather forecast and
// sun times for date. date is empty or YYYY-MM-DD. Only a failed geocode is an
// error; missing weather or sun times leave their block nil.
func (a *Aggregator) GetPhotographyConditions(ctx context.Context, location, date string) (*PhotographyConditions, error) {
	ctx, span := a.tele.StartSpan(ctx, "aggregator.GetPhotographyConditions",
		attribute.String("location", location),
		attribute.String("date", date))
	defer span.End()

	reqLogger := logger.For(ctx, a.logger)

	if err := ValidateDate(date); err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	location = strings.TrimSpace(location)
	if location == "" {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, ErrLocationNotFound
	}

	cacheKey := a.cacheKey(location, date)
	if cached := a.getFromCache(ctx, reqLogger, cacheKey); cached != nil {
		reqLogger.Debug("Cache hit", zap.String("cache_key", cacheKey))
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return cached, nil
	}
	span.SetAttributes(attribute.Bool("cache_hit", false))

	geoCtx, cancel := context.WithTimeout(ctx, a.timeout)
	coords, ok := a.geocoder.Geocode(geoCtx, location)
	cancel()
	if !ok {
		span.SetAttributes(attribute.Bool("success", false))
		reqLogger.Info("Location not found", zap.String("location", location))
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, location)
	}

	result := a.fetchConditions(ctx, coords, date)

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Bool("weather", result.Weather != nil),
		attribute.Bool("sun_times", result.SunTimes != nil),
	)

	reqLogger.Info("Photography conditions assembled",
		zap.String("location", coords.Name),
		zap.String("date", date),
		zap.Bool("weather", result.Weather != nil),
		zap.Bool("sun_times", result.SunTimes != nil))

	// A missing block may be a transient provider failure; only complete
	// results are cached.
	if result.Weather != nil && result.SunTimes != nil {
		a.setCache(ctx, reqLogger, cacheKey, result)
	}
	return result, nil
}

// fetchConditions runs the weather and sun lookups concurrently, each under its
// own timeout, and waits for both.
func (a *Aggregator) fetchConditions(ctx context.Context, coords service.Coordinates, date string) *PhotographyConditions {
	ctx, span := a.tele.StartSpan(ctx, "aggregator.fetchConditions",
		attribute.Float64("lat", coords.Latitude),
		attribute.Float64("lon", coords.Longitude))
	defer span.End()

	result := &PhotographyConditions{
		Location: Location{
			Name:      coords.Name,
			Country:   coords.Country,
			Latitude:  coords.Latitude,
			Longitude: coords.Longitude,
		},
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		snap, ok := a.weather.DailyForecast(callCtx, coords.Latitude, coords.Longitude, date)
		if !ok {
			return
		}
		result.Weather = &Weather{
			Date:                     snap.Date,
			TemperatureMax:           snap.TemperatureMax,
			TemperatureMin:           snap.TemperatureMin,
			Description:              service.WeatherDescription(snap.WeatherCode),
			WeatherCode:              snap.WeatherCode,
			PrecipitationProbability: snap.PrecipitationProbability,
			Timezone:                 snap.Timezone,
		}
	}()

	go func() {
		defer wg.Done()
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		times, ok := a.sun.SunTimes(callCtx, coords.Latitude, coords.Longitude, date)
		if !ok {
			return
		}
		result.SunTimes = &times
	}()

	wg.Wait()
	return result
}

// GetSunTimes returns the sun times and photography windows at fixed
// coordinates, skipping the geocoder.
func (a *Aggregator) GetSunTimes(ctx context.Context, lat, lon float64, date string) (*service.SunTimes, error) {
	ctx, span := a.tele.StartSpan(ctx, "aggregator.GetSunTimes",
		attribute.Float64("lat", lat),
		attribute.Float64("lon", lon),
		attribute.String("date", date))
	defer span.End()

	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	times, ok := a.sun.SunTimes(callCtx, lat, lon, date)
	if !ok {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, ErrSunTimesMissing
	}
	span.SetAttributes(attribute.Bool("success", true))
	return &times, nil
}

// ValidateDate accepts an empty string or a calendar date in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

func (a *Aggregator) cacheKey(location, date string) string {
	return strings.ToLower(location) + "|" + date
}

func (a *Aggregator) cacheEnabled() bool {
	return a.cache != nil && a.cacheTTL > 0
}

func (a *Aggregator) getFromCache(ctx context.Context, log *zap.Logger, key string) *PhotographyConditions {
	if !a.cacheEnabled() {
		return nil
	}

	payload, found, err := a.cache.Get(ctx, key)
	if err != nil {
		log.Warn("Cache read failed", zap.String("cache_key", key), zap.Error(err))
	}
	if err != nil || !found {
		if a.metrics != nil {
			a.metrics.RecordCacheMiss(ctx, a.cache.Type())
		}
		return nil
	}

	var result PhotographyConditions
	if err := json.Unmarshal(payload, &result); err != nil {
		log.Warn("Discarding corrupt cache entry", zap.String("cache_key", key), zap.Error(err))
		if a.metrics != nil {
			a.metrics.RecordCacheMiss(ctx, a.cache.Type())
		}
		return nil
	}

	if a.metrics != nil {
		a.metrics.RecordCacheHit(ctx, a.cache.Type())
	}
	return &result
}

func (a *Aggregator) setCache(ctx context.Context, log *zap.Logger, key string, result *PhotographyConditions) {
	if !a.cacheEnabled() {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		log.Warn("Failed to encode cache entry", zap.Error(err))
		return
	}
	if err := a.cache.Set(ctx, key, payload, a.cacheTTL); err != nil {
		log.Warn("Cache write failed", zap.String("cache_key", key), zap.Error(err))
	}
}

func (a *Aggregator) ClearCache(ctx context.Context) error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Flush(ctx)
}

func (a *Aggregator) GetCacheStats() map[string]interface{} {
	stats := map[string]interface{}{
		"cache_enabled": a.cacheEnabled(),
		"cache_ttl":     a.cacheTTL.String(),
		"timeout":       a.timeout.String(),
		"workers":       a.workers,
		"providers": map[string]string{
			"geocoding": a.geocoder.Name(),
			"weather":   a.weather.Name(),
			"sun":       a.sun.Name(),
		},
	}
	if a.cache != nil {
		stats["cache_type"] = a.cache.Type()
	}
	return stats
}
