package metrics

import (
	"errors"
	"time"

	"github.com/phrazzld/telecom-billing/internal/domain"
	"github.com/phrazzld/telecom-billing/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "telecom"

// Metrics holds the collectors shared by all store decorators.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New creates the store collectors and registers them with reg.
// It panics if the collectors are already registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Store operations by store, operation and outcome.",
		}, []string{"store", "operation", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Duration of store operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"store", "operation"}),
	}
}

// Outcome classifies err into the outcome label.
func Outcome(err error) string {
	if errors.Is(err, domain.ErrValidation) {
		return store.KindInvalid
	}
	return store.KindOf(err)
}

func (m *Metrics) observe(storeName, operation string, start time.Time, err error) {
	m.operations.WithLabelValues(storeName, operation, Outcome(err)).Inc()
	m.duration.WithLabelValues(storeName, operation).Observe(time.Since(start).Seconds())
}
