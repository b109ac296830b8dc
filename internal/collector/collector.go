package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"wwo-weather/internal/metrics"
	"wwo-weather/internal/storage"
	"wwo-weather/internal/weather"
)

type LocationStore interface {
	GetLocation(name string) (*storage.SavedLocation, error)
}

type Publisher interface {
	Publish(label string, record *weather.Record) error
}

// Collector runs one fetch: alias lookup, upstream request, metrics, publish.
type Collector struct {
	provider  weather.Provider
	locations LocationStore
	publisher Publisher
}

type CollectorConfig struct {
	Provider  weather.Provider
	Locations LocationStore
	Publisher Publisher
}

type Result struct {
	Query  weather.Query
	Record *weather.Record
	Label  string
}

func NewCollector(cfg CollectorConfig) *Collector {
	return &Collector{
		provider:  cfg.Provider,
		locations: cfg.Locations,
		publisher: cfg.Publisher,
	}
}

func (c *Collector) Collect(ctx context.Context, q weather.Query) (*Result, error) {
	requested := q.Location

	resolved, err := c.resolveAlias(q.Location)
	if err != nil {
		return nil, err
	}
	if resolved != q.Location {
		log.Printf("Resolved saved location %q to %q", q.Location, resolved)
		q.Location = resolved
	}

	start := time.Now()
	record, err := c.provider.Fetch(ctx, q)
	metrics.RecordFetch(time.Since(start), err)
	if err != nil {
		log.Printf("Fetch for %q failed (%s): %v", q.Location, weather.Kind(err), err)
		return nil, err
	}

	label := record.LocationLabel(requested)

	if c.publisher != nil {
		if err := c.publisher.Publish(label, record); err != nil {
			log.Printf("Error publishing to MQTT: %v", err)
		}
	}

	log.Printf("Collected: %s, %d forecast day(s)", label, len(record.Weather))

	return &Result{
		Query:  q,
		Record: record,
		Label:  label,
	}, nil
}

func (c *Collector) resolveAlias(name string) (string, error) {
	if c.locations == nil {
		return name, nil
	}
	loc, err := c.locations.GetLocation(name)
	if errors.Is(err, storage.ErrNotFound) {
		return name, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up saved location: %w", err)
	}
	return loc.Query, nil
}
