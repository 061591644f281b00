// Package metrics records query counts and latencies for fuzzy systems with
// Prometheus collectors.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cognicore/fuzzy/pkg/fuzzy/fuzzyerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/system"
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Collector implements system.Observer.
type Collector struct {
	queries  *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ system.Observer = (*Collector)(nil)

// NewCollector creates the collectors and registers them on reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fuzzy",
			Subsystem: "system",
			Name:      "queries_total",
			Help:      "Total number of inference queries",
		}, []string{"system", "outcome"}),

		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fuzzy",
			Subsystem: "system",
			Name:      "query_errors_total",
			Help:      "Total number of failed inference queries by error kind",
		}, []string{"system", "kind"}),

		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fuzzy",
			Subsystem: "system",
			Name:      "query_duration_seconds",
			Help:      "Inference query latency",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"system"}),
	}

	for _, col := range []prometheus.Collector{c.queries, c.errors, c.duration} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveQuery records one Run.
func (c *Collector) ObserveQuery(sys string, d time.Duration, err error) {
	c.duration.WithLabelValues(sys).Observe(d.Seconds())
	if err != nil {
		c.queries.WithLabelValues(sys, OutcomeError).Inc()
		c.errors.WithLabelValues(sys, errorKind(err)).Inc()
		return
	}
	c.queries.WithLabelValues(sys, OutcomeOK).Inc()
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, fuzzyerr.ErrMissingInput):
		return "missing_input"
	case errors.Is(err, fuzzyerr.ErrUnknownOperator):
		return "unknown_operator"
	case errors.Is(err, fuzzyerr.ErrUnknownSet):
		return "unknown_set"
	default:
		return "other"
	}
}
