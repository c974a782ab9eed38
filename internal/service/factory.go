package service

import (
	"fmt"
	"time"

	"github.com/vzahanych/photo-app/internal/config"
	"go.uber.org/zap"
)

// Providers is the set of lookups the conditions aggregator depends on.
type Providers struct {
	Geocoder Geocoder
	Weather  WeatherService
	Sun      SunService
}

// NewProviders builds the providers named in cfg.
func NewProviders(cfg config.ProvidersConfig, zones TimeZoneResolver, opts Options) (*Providers, error) {
	opts.Timeout = time.Duration(cfg.Timeout) * time.Second
	opts = opts.withDefaults()

	geocoder, err := createGeocoder(cfg.Geocoding, opts)
	if err != nil {
		return nil, err
	}
	if cfg.GeocodeCacheTTL > 0 {
		geocoder = NewCachedGeocoder(geocoder, time.Duration(cfg.GeocodeCacheTTL)*time.Second)
	}

	weather, err := createWeatherService(cfg.Forecast, opts)
	if err != nil {
		return nil, err
	}

	sun, err := createSunService(cfg.Sun, zones, opts)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("Registered providers",
		zap.String("geocoder", geocoder.Name()),
		zap.String("weather", weather.Name()),
		zap.String("sun", sun.Name()))

	return &Providers{Geocoder: geocoder, Weather: weather, Sun: sun}, nil
}

func createGeocoder(cfg config.ProviderConfig, opts Options) (Geocoder, error) {
	switch cfg.Type {
	case "open-meteo":
		return NewOpenMeteoGeocoder(cfg, opts), nil
	default:
		return nil, fmt.Errorf("unknown geocoding provider type %q", cfg.Type)
	}
}

func createWeatherService(cfg config.ProviderConfig, opts Options) (WeatherService, error) {
	switch cfg.Type {
	case "open-meteo":
		return NewOpenMeteoForecast(cfg, opts), nil
	default:
		return nil, fmt.Errorf("unknown forecast provider type %q", cfg.Type)
	}
}

func createSunService(cfg config.ProviderConfig, zones TimeZoneResolver, opts Options) (SunService, error) {
	switch cfg.Type {
	case "sunrise-sunset":
		return NewSunriseSunset(cfg, zones, opts), nil
	case "astral":
		return NewAstralSun(zones, opts), nil
	default:
		return nil, fmt.Errorf("unknown sun provider type %q", cfg.Type)
	}
}
