package metrics

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sync outcome labels
const (
	OutcomeSuccess       = "success"
	OutcomeCacheFallback = "cache_fallback"
	OutcomeError         = "error"
	OutcomeOffline       = "offline"
	OutcomeStale         = "stale"
	OutcomeCanceled      = "canceled"
)

var (
	// SyncCycleDuration tracks how long a fetch cycle takes
	// Cardinality: ~2 (list, detail)
	SyncCycleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "sync_cycle_duration_seconds",
			Help: "Time taken to complete a synchronization cycle",
		},
		[]string{"machine"},
	)

	// SyncCycleOutcomes counts finished cycles by outcome
	// Cardinality: ~12 (2 machines × 6 outcomes)
	SyncCycleOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "sync_cycles_total",
			Help: "Total number of synchronization cycles by outcome",
		},
		[]string{"machine", "outcome"},
	)
)

// RecordSyncCycle records the duration and outcome of one synchronization cycle
func RecordSyncCycle(machine, outcome string, start time.Time) {
	duration := time.Since(start)
	SyncCycleDuration.WithLabelValues(machine).Observe(duration.Seconds())
	SyncCycleOutcomes.WithLabelValues(machine, outcome).Inc()
	log.Printf("Metrics: %s sync cycle finished as %s in %.2fs", machine, outcome, duration.Seconds())
}
