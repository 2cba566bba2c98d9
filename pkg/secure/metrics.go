package secure

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeAcquired = "acquired"
	outcomeTimeout  = "timeout"
)

var (
	scopeTotal       *prometheus.CounterVec
	scopeWaitSeconds prometheus.Histogram
	scopesLive       prometheus.Gauge

	// Registration guard
	metricsOnce       sync.Once
	metricsRegistered bool
)

// InitMetrics registers the lock-contention metrics with the default
// Prometheus registry. Call once at startup if metrics are wanted; the
// library records nothing until then.
func InitMetrics() {
	metricsOnce.Do(func() {
		scopeTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "securevalue_scope_total",
				Help: "Total number of lock scope acquisition attempts",
			},
			[]string{"outcome"},
		)

		scopeWaitSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "securevalue_scope_wait_seconds",
				Help:    "Time spent waiting to acquire all locks of a scope",
				Buckets: []float64{.000001, .00001, .0001, .001, .01, .1, 1},
			},
		)

		scopesLive = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "securevalue_scopes_live",
				Help: "Number of currently held lock scopes",
			},
		)

		metricsRegistered = true
	})
}

func observeScope(outcome string, wait time.Duration) {
	if !metricsRegistered {
		return
	}
	scopeTotal.WithLabelValues(outcome).Inc()
	scopeWaitSeconds.Observe(wait.Seconds())
}

func scopeOpened() {
	if !metricsRegistered {
		return
	}
	scopesLive.Inc()
}

func scopeClosed() {
	if !metricsRegistered {
		return
	}
	scopesLive.Dec()
}
