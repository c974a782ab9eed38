package service

import (
	"context"
	"fmt"
	"math"

	"github.com/vzahanych/photo-app/internal/config"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const defaultDailyFields = "temperature_2m_max,temperature_2m_min,weathercode,precipitation_probability_max"

type OpenMeteoForecast struct {
	httpProvider
	params map[string]string
}

type forecastResponse struct {
	Timezone string `json:"timezone"`
	Daily    struct {
		Time                        []string   `json:"time"`
		TemperatureMax              []float64  `json:"temperature_2m_max"`
		TemperatureMin              []float64  `json:"temperature_2m_min"`
		WeatherCode                 []int      `json:"weathercode"`
		PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
	} `json:"daily"`
}

func NewOpenMeteoForecast(cfg config.ProviderConfig, opts Options) *OpenMeteoForecast {
	return &OpenMeteoForecast{
		httpProvider: newHTTPProvider("open-meteo-forecast", cfg.BaseURL, opts),
		params:       cfg.Params,
	}
}

func (s *OpenMeteoForecast) Name() string {
	return s.name
}

// DailyForecast returns the first forecast day. With an empty date the
// provider is asked for a 7-day range; otherwise the range is pinned to date.
func (s *OpenMeteoForecast) DailyForecast(ctx context.Context, lat, lon float64, date string) (WeatherSnapshot, bool) {
	ctx, done := s.startSpan(ctx, "DailyForecast",
		attribute.Float64("lat", lat),
		attribute.Float64("lon", lon),
		attribute.String("date", date))
	snap, err := s.fetchDay(ctx, lat, lon, date)
	done(err)

	if err != nil {
		s.logger.Warn("Weather unavailable",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.String("date", date),
			zap.Error(err))
		return WeatherSnapshot{}, false
	}
	return snap, true
}

func (s *OpenMeteoForecast) fetchDay(ctx context.Context, lat, lon float64, date string) (WeatherSnapshot, error) {
	u, err := s.endpoint("forecast")
	if err != nil {
		return WeatherSnapshot{}, err
	}

	// Configured params go first so they cannot replace the fields the
	// response parser depends on.
	q := u.Query()
	for key, value := range s.params {
		q.Set(key, value)
	}
	q.Set("latitude", fmt.Sprintf("%.6f", lat))
	q.Set("longitude", fmt.Sprintf("%.6f", lon))
	q.Set("daily", defaultDailyFields)
	q.Set("timezone", "auto")
	if date != "" {
		q.Set("start_date", date)
		q.Set("end_date", date)
	} else {
		q.Set("forecast_days", "7")
	}

	u.RawQuery = q.Encode()

	var body forecastResponse
	if err := s.getJSON(ctx, u, &body); err != nil {
		return WeatherSnapshot{}, err
	}

	d := body.Daily
	if len(d.Time) == 0 || len(d.TemperatureMax) == 0 || len(d.TemperatureMin) == 0 || len(d.WeatherCode) == 0 {
		return WeatherSnapshot{}, errNoData
	}

	snap := WeatherSnapshot{
		Date:           d.Time[0],
		TemperatureMax: d.TemperatureMax[0],
		TemperatureMin: d.TemperatureMin[0],
		WeatherCode:    d.WeatherCode[0],
		Timezone:       body.Timezone,
	}
	if len(d.PrecipitationProbabilityMax) > 0 && d.PrecipitationProbabilityMax[0] != nil {
		snap.PrecipitationProbability = int(math.Round(*d.PrecipitationProbabilityMax[0]))
	}
	if snap.Timezone == "" {
		snap.Timezone = "UTC"
	}
	return snap, nil
}
