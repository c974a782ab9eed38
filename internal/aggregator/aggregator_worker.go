package aggregator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vzahanych/photo-app/internal/service"
	"github.com/vzahanych/photo-app/pkg/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// MaxTripDays caps a multi-day request at the forecast horizon of the weather provider.
const MaxTripDays = 16

var ErrTooManyDays = fmt.Errorf("date range exceeds %d days", MaxTripDays)

type DayConditions struct {
	Date     string            `json:"date"`
	Weather  *Weather          `json:"weather,omitempty"`
	SunTimes *service.SunTimes `json:"sun_times,omitempty"`
}

type TripConditions struct {
	Location Location        `json:"location"`
	Days     []DayConditions `json:"days"`
}

type dayTask struct {
	index int
	date  string
}

type conditionsWorker struct {
	aggregator *Aggregator
	workerID   int
	coords     service.Coordinates
	logger     *zap.Logger
}

func newConditionsWorker(a *Aggregator, workerID int, coords service.Coordinates, log *zap.Logger) *conditionsWorker {
	return &conditionsWorker{
		aggregator: a,
		workerID:   workerID,
		coords:     coords,
		logger:     log.With(zap.Int("worker_id", workerID)),
	}
}

func (w *conditionsWorker) start(ctx context.Context, tasks <-chan dayTask, days []DayConditions, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case task, ok := <-tasks:
			if !ok {
				return
			}
			w.process(ctx, task, days)
		case <-ctx.Done():
			w.logger.Debug("Context cancelled, worker stopping")
			return
		}
	}
}

func (w *conditionsWorker) process(ctx context.Context, task dayTask, days []DayConditions) {
	ctx, span := w.aggregator.tele.StartSpan(ctx, "aggregator.processDay",
		attribute.String("date", task.date),
		attribute.Int("worker_id", w.workerID))
	defer span.End()

	result := w.aggregator.fetchConditions(ctx, w.coords, task.date)
	days[task.index] = DayConditions{
		Date:     task.date,
		Weather:  result.Weather,
		SunTimes: result.SunTimes,
	}

	w.logger.Debug("Day processed",
		zap.String("date", task.date),
		zap.Bool("weather", result.Weather != nil),
		zap.Bool("sun_times", result.SunTimes != nil))
}

// GetTripConditions geocodes location once and collects conditions for every
// date using a bounded pool of workers. Days come back in input order.
func (a *Aggregator) GetTripConditions(ctx context.Context, location string, dates []string) (*TripConditions, error) {
	ctx, span := a.tele.StartSpan(ctx, "aggregator.GetTripConditions",
		attribute.String("location", location),
		attribute.Int("days", len(dates)))
	defer span.End()

	reqLogger := logger.For(ctx, a.logger)

	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: no dates given", ErrInvalidDate)
	}
	if len(dates) > MaxTripDays {
		return nil, ErrTooManyDays
	}
	for _, d := range dates {
		if d == "" {
			return nil, fmt.Errorf("%w: empty date", ErrInvalidDate)
		}
		if err := ValidateDate(d); err != nil {
			return nil, err
		}
	}

	location = strings.TrimSpace(location)
	geoCtx, cancel := context.WithTimeout(ctx, a.timeout)
	coords, ok := a.geocoder.Geocode(geoCtx, location)
	cancel()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, location)
	}

	workers := a.workers
	if workers > len(dates) {
		workers = len(dates)
	}

	tasks := make(chan dayTask)
	days := make([]DayConditions, len(dates))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go newConditionsWorker(a, i+1, coords, reqLogger).start(ctx, tasks, days, &wg)
	}

dispatch:
	for i, d := range dates {
		select {
		case tasks <- dayTask{index: i, date: d}:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(tasks)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reqLogger.Info("Trip conditions assembled",
		zap.String("location", coords.Name),
		zap.Int("days", len(days)),
		zap.Int("workers", workers))

	return &TripConditions{
		Location: Location{
			Name:      coords.Name,
			Country:   coords.Country,
			Latitude:  coords.Latitude,
			Longitude: coords.Longitude,
		},
		Days: days,
	}, nil
}

// DateRange expands the inclusive range [start, end] into YYYY-MM-DD dates.
func DateRange(start, end string) ([]string, error) {
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, start)
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, end)
	}
	if to.Before(from) {
		return nil, errors.New("end date is before start date")
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if len(dates) == MaxTripDays {
			return nil, ErrTooManyDays
		}
		dates = append(dates, d.Format(dateLayout))
	}
	return dates, nil
}
