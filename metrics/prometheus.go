// Package metrics exposes the table's operational counters to
// Prometheus. It is an external collaborator of crds: the core never
// imports it, so callers wire instrumentation in around the table's
// public methods.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every Prometheus collector the gossip node registers.
type Metrics struct {
	InsertsTotal   *prometheus.CounterVec
	BatchDiscarded prometheus.Counter

	TableSize  prometheus.Gauge
	Cursor     prometheus.Gauge
	PurgedSize prometheus.Gauge

	ShardOccupancy prometheus.Histogram

	BitmaskQueryDuration prometheus.Histogram
}

// NewMetrics creates and registers every collector against the default
// registry.
func NewMetrics() *Metrics {
	return &Metrics{
		InsertsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crds_inserts_total",
				Help: "Total number of CrdsTable insert attempts by outcome.",
			},
			[]string{"outcome"}, // ok, old_value, duplicate_value, resource_error
		),

		BatchDiscarded: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "crds_batch_discarded_total",
				Help: "Total number of incoming gossip values discarded for falling outside the wallclock window.",
			},
		),

		TableSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "crds_table_size",
				Help: "Current number of distinct labels stored in the table.",
			},
		),

		Cursor: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "crds_cursor",
				Help: "Current value of the table's insertion cursor.",
			},
		),

		PurgedSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "crds_purged_queue_size",
				Help: "Current number of entries in the purged-hash queue.",
			},
		),

		ShardOccupancy: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "crds_shard_occupancy",
				Help:    "Distribution of per-bucket occupancy across the 4096 shard buckets, sampled on demand.",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),

		BitmaskQueryDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "crds_bitmask_query_duration_seconds",
				Help:    "Duration of get_bitmask_matches calls.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordInsert tags one insert attempt with its outcome.
func (m *Metrics) RecordInsert(outcome string) {
	m.InsertsTotal.WithLabelValues(outcome).Inc()
}

// RecordBatchDiscard counts one incoming gossip value dropped by the
// wallclock window filter the gossip service applies before inserting.
func (m *Metrics) RecordBatchDiscard() {
	m.BatchDiscarded.Inc()
}

// SetTableSize updates the table-size gauge.
func (m *Metrics) SetTableSize(n int) {
	m.TableSize.Set(float64(n))
}

// SetCursor updates the cursor gauge.
func (m *Metrics) SetCursor(c uint64) {
	m.Cursor.Set(float64(c))
}

// SetPurgedSize updates the purged-queue-size gauge.
func (m *Metrics) SetPurgedSize(n int) {
	m.PurgedSize.Set(float64(n))
}

// ObserveShardOccupancy records one bucket's entry count into the shard
// occupancy histogram. Callers sample this periodically rather than on
// every insert, since it requires walking all 4096 buckets.
func (m *Metrics) ObserveShardOccupancy(count int) {
	m.ShardOccupancy.Observe(float64(count))
}
