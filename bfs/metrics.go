package bfs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports traversal diagnostics. Pass it to Run with WithMetrics.
type Metrics struct {
	traversals *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	rounds     prometheus.Histogram
	processed  *prometheus.CounterVec
	badWork    prometheus.Counter
	emptyWork  prometheus.Counter
}

// NewMetrics registers the traversal metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		traversals: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hopdist_traversals_total",
			Help: "Completed traversals by algorithm",
		}, []string{"algorithm"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hopdist_traversal_duration_seconds",
			Help:    "Traversal duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12), // 0.1ms to ~7min
		}, []string{"algorithm"}),
		rounds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "hopdist_synchronous_rounds",
			Help:    "Rounds per synchronous traversal",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		}),
		processed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hopdist_work_items_total",
			Help: "Work items processed by algorithm",
		}, []string{"algorithm"}),
		badWork: f.NewCounter(prometheus.CounterOpts{
			Name: "hopdist_bad_work_total",
			Help: "Relaxations that lowered an already finite label",
		}),
		emptyWork: f.NewCounter(prometheus.CounterOpts{
			Name: "hopdist_empty_work_total",
			Help: "Work items discarded as stale",
		}),
	}
}

func (m *Metrics) observe(r Report) {
	alg := r.Algorithm.String()
	m.traversals.WithLabelValues(alg).Inc()
	m.duration.WithLabelValues(alg).Observe(r.Elapsed.Seconds())
	m.processed.WithLabelValues(alg).Add(float64(r.Processed))
	if r.Algorithm == Synchronous || r.Algorithm == SynchronousTile {
		m.rounds.Observe(float64(r.Rounds))
	}
	m.badWork.Add(float64(r.BadWork))
	m.emptyWork.Add(float64(r.EmptyWork))
}
