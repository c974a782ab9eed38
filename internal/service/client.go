package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vzahanych/photo-app/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// Outcome labels passed to ProviderRecorder.
const (
	outcomeSuccess = "success"
	outcomeEmpty   = "empty"
	outcomeError   = "error"
)

// errNoData marks a well-formed response that carried nothing usable.
var errNoData = errors.New("no data in response")

// Options carries the dependencies shared by every provider client.
type Options struct {
	Timeout  time.Duration
	Logger   *zap.Logger
	Tele     *telemetry.Telemetry
	Recorder ProviderRecorder
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// httpProvider is the plumbing behind the HTTP-backed providers: a bounded
// client, tracing, logging and outcome recording.
type httpProvider struct {
	name     string
	baseURL  string
	client   *http.Client
	logger   *zap.Logger
	tele     *telemetry.Telemetry
	recorder ProviderRecorder
}

func newHTTPProvider(name, baseURL string, opts Options) httpProvider {
	opts = opts.withDefaults()
	return httpProvider{
		name:    name,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		logger:   opts.Logger.With(zap.String("provider", name)),
		tele:     opts.Tele,
		recorder: opts.Recorder,
	}
}

func (p *httpProvider) endpoint(path string) (*url.URL, error) {
	return url.Parse(fmt.Sprintf("%s/%s", p.baseURL, path))
}

// getJSON issues a GET bound to ctx and decodes a 200 response into out.
func (p *httpProvider) getJSON(ctx context.Context, u *url.URL, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (p *httpProvider) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(err error)) {
	start := time.Now()
	ctx, span := p.tele.StartSpan(ctx, p.name+"."+op, append(attrs, attribute.String("service", p.name))...)

	return ctx, func(err error) {
		outcome := outcomeSuccess
		switch {
		case errors.Is(err, errNoData):
			outcome = outcomeEmpty
		case err != nil:
			outcome = outcomeError
		}
		if err != nil {
			p.tele.RecordError(ctx, err, attribute.String("provider", p.name))
		}
		span.SetAttributes(attribute.Bool("success", err == nil))
		span.End()
		record(p.recorder, p.name, outcome, time.Since(start))
	}
}

func record(r ProviderRecorder, provider, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.RecordProviderCall(provider, outcome, elapsed)
}
