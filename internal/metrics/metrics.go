package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"wwo-weather/internal/weather"
)

var (
	// FetchesTotal counts upstream weather fetches by outcome
	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wwo_fetch_total",
			Help: "Total number of World Weather Online fetches",
		},
		[]string{"outcome"},
	)

	// FetchDuration tracks how long upstream fetches take
	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wwo_fetch_duration_seconds",
			Help:    "Duration of World Weather Online fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	AppStartTime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wwo_app_start_time_seconds",
			Help: "Unix timestamp of when the application started",
		},
	)
)

func init() {
	AppStartTime.SetToCurrentTime()
}

// RecordFetch records one fetch, labelled by the error variant it ended with.
func RecordFetch(duration time.Duration, err error) {
	FetchesTotal.WithLabelValues(weather.Kind(err)).Inc()
	FetchDuration.Observe(duration.Seconds())
}
