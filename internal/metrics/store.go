package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katoyeung/data-node/internal/db"
)

// Store command Prometheus metrics.
var (
	StoreCommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "datanode",
			Name:      "store_commands_total",
			Help:      "Total number of commands sent to the store",
		},
		[]string{"command", "status"},
	)

	StoreCommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "datanode",
			Name:      "store_command_duration_seconds",
			Help:      "Store command round-trip duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"command"},
	)

	IngestedDocumentsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "datanode",
			Name:      "ingested_documents_total",
			Help:      "Documents written through /add",
		},
	)
)

var registerStoreOnce sync.Once

// RegisterStoreMetrics registers store metrics. Must be called once from main.
func RegisterStoreMetrics() {
	registerStoreOnce.Do(func() {
		prometheus.MustRegister(StoreCommandsTotal)
		prometheus.MustRegister(StoreCommandDuration)
		prometheus.MustRegister(IngestedDocumentsTotal)
	})
}

// ObserveCommand records one store round trip. It matches db.Observer.
func ObserveCommand(op string, d time.Duration, err error) {
	StoreCommandDuration.WithLabelValues(op).Observe(d.Seconds())
	StoreCommandsTotal.WithLabelValues(op, commandStatus(err)).Inc()
}

// ObserveIngested counts stored documents. It matches document.IngestObserver.
func ObserveIngested(n int) {
	IngestedDocumentsTotal.Add(float64(n))
}

func commandStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case db.IsIndexNotFound(err):
		return "not_found"
	default:
		return "error"
	}
}

var _ db.Observer = ObserveCommand
