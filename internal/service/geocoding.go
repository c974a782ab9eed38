package service

import (
	"context"
	"strings"

	"github.com/vzahanych/photo-app/internal/config"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type OpenMeteoGeocoder struct {
	httpProvider
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Country   string  `json:"country"`
	} `json:"results"`
}

func NewOpenMeteoGeocoder(cfg config.ProviderConfig, opts Options) *OpenMeteoGeocoder {
	return &OpenMeteoGeocoder{httpProvider: newHTTPProvider("open-meteo-geocoding", cfg.BaseURL, opts)}
}

func (g *OpenMeteoGeocoder) Name() string {
	return g.name
}

// Geocode returns the best match for location. Blank input, transport failures,
// non-200 responses, bad JSON and empty result sets all report ok=false.
func (g *OpenMeteoGeocoder) Geocode(ctx context.Context, location string) (Coordinates, bool) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Coordinates{}, false
	}

	ctx, done := g.startSpan(ctx, "Geocode", attribute.String("query", location))
	coords, err := g.search(ctx, location)
	done(err)

	if err != nil {
		g.logger.Warn("Geocoding failed", zap.String("query", location), zap.Error(err))
		return Coordinates{}, false
	}

	g.logger.Debug("Geocoded location",
		zap.String("query", location),
		zap.Float64("lat", coords.Latitude),
		zap.Float64("lon", coords.Longitude))
	return coords, true
}

func (g *OpenMeteoGeocoder) search(ctx context.Context, location string) (Coordinates, error) {
	u, err := g.endpoint("search")
	if err != nil {
		return Coordinates{}, err
	}

	q := u.Query()
	q.Set("name", location)
	q.Set("count", "1")
	q.Set("language", "en")
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	var body geocodingResponse
	if err := g.getJSON(ctx, u, &body); err != nil {
		return Coordinates{}, err
	}
	if len(body.Results) == 0 {
		return Coordinates{}, errNoData
	}

	r := body.Results[0]
	name := r.Name
	if name == "" {
		name = location
	}
	return Coordinates{
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Name:      name,
		Country:   r.Country,
	}, nil
}
