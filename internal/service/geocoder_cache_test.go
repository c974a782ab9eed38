package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingGeocoder struct {
	calls  int
	result Coordinates
	ok     bool
}

func (g *countingGeocoder) Geocode(context.Context, string) (Coordinates, bool) {
	g.calls++
	return g.result, g.ok
}

func (g *countingGeocoder) Name() string { return "counting" }

func TestCachedGeocoder_CachesHits(t *testing.T) {
	next := &countingGeocoder{result: Coordinates{Name: "Paris", Latitude: 48.85, Longitude: 2.35}, ok: true}
	g := NewCachedGeocoder(next, time.Minute)

	first, ok := g.Geocode(context.Background(), "Paris")
	assert.True(t, ok)
	second, ok := g.Geocode(context.Background(), "  paris ")
	assert.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 1, g.Len())
	assert.Equal(t, "counting", g.Name())
}

func TestCachedGeocoder_DoesNotCacheMisses(t *testing.T) {
	next := &countingGeocoder{ok: false}
	g := NewCachedGeocoder(next, time.Minute)

	_, ok := g.Geocode(context.Background(), "Nowhereville123")
	assert.False(t, ok)
	_, ok = g.Geocode(context.Background(), "Nowhereville123")
	assert.False(t, ok)

	assert.Equal(t, 2, next.calls)
	assert.Equal(t, 0, g.Len())
}

func TestCachedGeocoder_BlankInput(t *testing.T) {
	next := &countingGeocoder{ok: true}
	g := NewCachedGeocoder(next, time.Minute)

	_, ok := g.Geocode(context.Background(), " ")

	assert.False(t, ok)
	assert.Equal(t, 0, next.calls)
}
