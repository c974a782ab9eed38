package aggregator

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vzahanych/photo-app/internal/service"
	"go.uber.org/zap/zaptest"
)

var paris = service.Coordinates{Latitude: 48.85341, Longitude: 2.3488, Name: "Paris", Country: "France"}

type stubGeocoder struct {
	coords service.Coordinates
	ok     bool
	calls  atomic.Int32
}

func (g *stubGeocoder) Geocode(_ context.Context, _ string) (service.Coordinates, bool) {
	g.calls.Add(1)
	return g.coords, g.ok
}

func (g *stubGeocoder) Name() string { return "stub-geocoder" }

// stubWeather with block set waits for its context to expire.
type stubWeather struct {
	ok    bool
	block bool
	calls atomic.Int32
	wait  <-chan struct{}
	mu    sync.Mutex
	dates []string
}

func (w *stubWeather) DailyForecast(ctx context.Context, _, _ float64, date string) (service.WeatherSnapshot, bool) {
	w.calls.Add(1)
	w.mu.Lock()
	w.dates = append(w.dates, date)
	w.mu.Unlock()

	if w.block {
		<-ctx.Done()
		return service.WeatherSnapshot{}, false
	}
	if w.wait != nil {
		select {
		case <-w.wait:
		case <-ctx.Done():
			return service.WeatherSnapshot{}, false
		}
	}
	if !w.ok {
		return service.WeatherSnapshot{}, false
	}
	if date == "" {
		date = "2024-06-21"
	}
	return service.WeatherSnapshot{
		Date:                     date,
		TemperatureMax:           24.6,
		TemperatureMin:           14.2,
		WeatherCode:              2,
		PrecipitationProbability: 10,
		Timezone:                 "Europe/Paris",
	}, true
}

func (w *stubWeather) Name() string { return "stub-weather" }

type stubSun struct {
	ok      bool
	calls   atomic.Int32
	started chan<- struct{}
}

func (s *stubSun) SunTimes(_ context.Context, _, _ float64, _ string) (service.SunTimes, bool) {
	s.calls.Add(1)
	if s.started != nil {
		close(s.started)
	}
	if !s.ok {
		return service.SunTimes{}, false
	}
	return service.DeriveSunTimes(
		time.Date(2024, 6, 21, 3, 46, 48, 0, time.UTC),
		time.Date(2024, 6, 21, 19, 58, 5, 0, time.UTC),
		time.Date(2024, 6, 21, 11, 52, 26, 0, time.UTC),
		58277, time.FixedZone("CEST", 2*3600), "Europe/Paris"), true
}

func (s *stubSun) Name() string { return "stub-sun" }

type stubMetrics struct {
	hits, misses atomic.Int32
}

func (m *stubMetrics) RecordCacheHit(context.Context, string)  { m.hits.Add(1) }
func (m *stubMetrics) RecordCacheMiss(context.Context, string) { m.misses.Add(1) }

type fixture struct {
	geocoder *stubGeocoder
	weather  *stubWeather
	sun      *stubSun
}

func newFixture() *fixture {
	return &fixture{
		geocoder: &stubGeocoder{coords: paris, ok: true},
		weather:  &stubWeather{ok: true},
		sun:      &stubSun{ok: true},
	}
}

func (f *fixture) aggregator(t *testing.T, opts Options) *Aggregator {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = zaptest.NewLogger(t)
	}
	return New(&service.Providers{Geocoder: f.geocoder, Weather: f.weather, Sun: f.sun}, opts)
}
