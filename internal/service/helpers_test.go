package service

import (
	"sync"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/vzahanych/photo-app/internal/config"
	"go.uber.org/zap/zaptest"
)

const (
	geocodingURL = `=~^https://geocoding-api\.open-meteo\.com/v1/search`
	forecastURL  = `=~^https://api\.open-meteo\.com/v1/forecast`
	sunURL       = `=~^https://api\.sunrise-sunset\.org/json`
)

type recordedCall struct {
	provider string
	outcome  string
}

type stubRecorder struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (r *stubRecorder) RecordProviderCall(provider, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recordedCall{provider, outcome})
}

func (r *stubRecorder) last() recordedCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return recordedCall{}
	}
	return r.calls[len(r.calls)-1]
}

func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

func testOptions(t *testing.T) (Options, *stubRecorder) {
	t.Helper()
	rec := &stubRecorder{}
	return Options{
		Timeout:  2 * time.Second,
		Logger:   zaptest.NewLogger(t),
		Recorder: rec,
	}, rec
}

func defaultProviders() config.ProvidersConfig {
	return config.NewDefaultConfig().Providers
}

func registerString(method, url string, status int, body string) {
	httpmock.RegisterResponder(method, url, httpmock.NewStringResponder(status, body))
}
