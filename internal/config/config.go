package config

import (
	"errors"
	"fmt"
	"strings"
)

type Config struct {
	Version     string          `mapstructure:"version"`
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Providers   ProvidersConfig `mapstructure:"providers"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Storage     StorageConfig   `mapstructure:"storage"`
	Logging     LoggingConfig   `mapstructure:"logging"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	Host           string   `mapstructure:"host"`
	ReadTimeout    int      `mapstructure:"read_timeout"`
	WriteTimeout   int      `mapstructure:"write_timeout"`
	IdleTimeout    int      `mapstructure:"idle_timeout"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProvidersConfig configures the outbound lookups behind the conditions aggregator.
// Timeout is the per-call bound in seconds.
type ProvidersConfig struct {
	Timeout         int            `mapstructure:"timeout"`
	GeocodeCacheTTL int            `mapstructure:"geocode_cache_ttl"`
	Geocoding       ProviderConfig `mapstructure:"geocoding"`
	Forecast        ProviderConfig `mapstructure:"forecast"`
	Sun             ProviderConfig `mapstructure:"sun"`
}

type ProviderConfig struct {
	Type    string            `mapstructure:"type"`
	BaseURL string            `mapstructure:"base_url"`
	Params  map[string]string `mapstructure:"params"`
}

// CacheConfig selects the backend for aggregated conditions. A TTL of zero,
// the default, disables caching.
type CacheConfig struct {
	Type   string `mapstructure:"type"`
	TTL    int    `mapstructure:"ttl"`
	Addr   string `mapstructure:"addr"`
	Prefix string `mapstructure:"prefix"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type StorageConfig struct {
	Type            string `mapstructure:"type"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	PublicURL       string `mapstructure:"public_url"`
	MaxUploadSize   int64  `mapstructure:"max_upload_size"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// TelemetryConfig configures OTLP trace export. SampleRatio is the fraction of
// root spans kept; child spans follow their parent.
type TelemetryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Version:     "1.0.0",
		Environment: "development",
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://localhost:5174",
				"http://localhost:3000",
				"http://127.0.0.1:5173",
				"http://127.0.0.1:5174",
				"http://127.0.0.1:3000",
			},
		},
		Providers: ProvidersConfig{
			Timeout:         10,
			GeocodeCacheTTL: 0,
			Geocoding: ProviderConfig{
				Type:    "open-meteo",
				BaseURL: "https://geocoding-api.open-meteo.com/v1",
			},
			Forecast: ProviderConfig{
				Type:    "open-meteo",
				BaseURL: "https://api.open-meteo.com/v1",
				Params: map[string]string{
					"daily": "temperature_2m_max,temperature_2m_min,weathercode,precipitation_probability_max",
				},
			},
			Sun: ProviderConfig{
				Type:    "sunrise-sunset",
				BaseURL: "https://api.sunrise-sunset.org",
			},
		},
		Cache: CacheConfig{
			Type:   "memory",
			TTL:    0,
			Prefix: "conditions",
		},
		Database: DatabaseConfig{
			Driver:       "mysql",
			DSN:          "",
			MaxOpenConns: 10,
			MaxIdleConns: 5,
		},
		Storage: StorageConfig{
			Type:          "s3",
			Endpoint:      "",
			Region:        "us-west-1",
			MaxUploadSize: 10485760,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			Endpoint:    "tempo:4317",
			SampleRatio: 1,
		},
	}
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Providers.Timeout <= 0 {
		return errors.New("providers.timeout must be positive")
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl cannot be negative")
	}
	switch c.Cache.Type {
	case "memory":
	case "valkey":
		if strings.TrimSpace(c.Cache.Addr) == "" {
			return errors.New("cache.addr cannot be empty when cache.type is valkey")
		}
	default:
		return fmt.Errorf("unknown cache.type %q", c.Cache.Type)
	}
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	switch c.Storage.Type {
	case "s3", "memory":
	default:
		return fmt.Errorf("unknown storage.type %q", c.Storage.Type)
	}
	if c.Storage.MaxUploadSize <= 0 {
		return errors.New("storage.max_upload_size must be positive")
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry.sample_ratio must be within [0, 1]: %v", c.Telemetry.SampleRatio)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
