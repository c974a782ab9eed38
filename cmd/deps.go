package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/vzahanych/photo-app/internal/aggregator"
	"github.com/vzahanych/photo-app/internal/cache"
	"github.com/vzahanych/photo-app/internal/service"
	"github.com/vzahanych/photo-app/pkg/metrics"
	"go.uber.org/zap"
)

// newAggregator wires the providers and the optional results cache. The
// returned close func releases the cache backend.
func newAggregator(ctx context.Context, m *metrics.Metrics) (*aggregator.Aggregator, func(), error) {
	zones, err := service.NewTZFResolver()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load time zone data: %w", err)
	}

	opts := service.Options{
		Logger: log.Logger,
		Tele:   tele,
	}
	if m != nil {
		opts.Recorder = m
	}

	providers, err := service.NewProviders(cfg.Providers, zones, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create providers: %w", err)
	}

	results, err := newCache(ctx)
	if err != nil {
		return nil, nil, err
	}

	aggOpts := aggregator.Options{
		Timeout:  time.Duration(cfg.Providers.Timeout) * time.Second,
		Cache:    results,
		CacheTTL: time.Duration(cfg.Cache.TTL) * time.Second,
		Logger:   log.Logger,
		Tele:     tele,
	}
	if m != nil {
		aggOpts.Metrics = m
	}

	closeFn := func() {
		if results != nil {
			results.Close()
		}
	}
	return aggregator.New(providers, aggOpts), closeFn, nil
}

// newCache returns nil when cache.ttl is zero.
func newCache(ctx context.Context) (cache.Store, error) {
	if cfg.Cache.TTL <= 0 {
		return nil, nil
	}
	ttl := time.Duration(cfg.Cache.TTL) * time.Second

	switch cfg.Cache.Type {
	case "valkey":
		c, err := cache.Dial(ctx, cfg.Cache.Addr, cfg.Cache.Prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to valkey: %w", err)
		}
		log.Info("Using valkey conditions cache",
			zap.String("addr", cfg.Cache.Addr), zap.Duration("ttl", ttl))
		return c, nil
	default:
		log.Info("Using in-memory conditions cache", zap.Duration("ttl", ttl))
		return cache.NewMemory(ttl), nil
	}
}
