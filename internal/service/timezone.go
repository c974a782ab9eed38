package service

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/ringsaturn/tzf"
)

// TZFResolver looks zones up in the tzf polygon dataset, offline.
type TZFResolver struct {
	finder tzf.F
}

func NewTZFResolver() (*TZFResolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone data: %w", err)
	}
	return &TZFResolver{finder: finder}, nil
}

func (r *TZFResolver) TimeZoneAt(lat, lon float64) (string, bool) {
	name := r.finder.GetTimezoneName(lon, lat)
	return name, name != ""
}

// FixedZone always answers with the same zone name. Useful where the zone is
// known up front.
type FixedZone string

func (z FixedZone) TimeZoneAt(float64, float64) (string, bool) {
	return string(z), z != ""
}

// resolveLocation returns the zone for the coordinates, or UTC when the
// resolver has no answer or the zone cannot be loaded.
func resolveLocation(r TimeZoneResolver, lat, lon float64) (*time.Location, string) {
	if r == nil {
		return time.UTC, "UTC"
	}
	name, ok := r.TimeZoneAt(lat, lon)
	if !ok {
		return time.UTC, "UTC"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, "UTC"
	}
	return loc, name
}
