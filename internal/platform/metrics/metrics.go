package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds process-wide collectors that belong to no single domain.
type Metrics struct {
	BuildInfo     *prometheus.GaugeVec
	DBOpenConns   prometheus.Gauge
	DBInUseConns  prometheus.Gauge
	DBIdleConns   prometheus.Gauge
	DBWaitCount   prometheus.Gauge
	DBWaitSeconds prometheus.Gauge
	SeededRecords *prometheus.CounterVec
}

// New creates and registers the collectors with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the collectors with reg; tests pass a fresh registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BuildInfo: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "festdraft_build_info",
			Help: "Constant 1, labelled with the running version and environment",
		}, []string{"version", "environment"}),
		DBOpenConns: factory.NewGauge(prometheus.GaugeOpts{
			Name: "festdraft_db_open_connections",
			Help: "Established database connections, in use and idle",
		}),
		DBInUseConns: factory.NewGauge(prometheus.GaugeOpts{
			Name: "festdraft_db_in_use_connections",
			Help: "Database connections currently in use",
		}),
		DBIdleConns: factory.NewGauge(prometheus.GaugeOpts{
			Name: "festdraft_db_idle_connections",
			Help: "Idle database connections",
		}),
		DBWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "festdraft_db_wait_count",
			Help: "Total connections waited for since the pool opened",
		}),
		DBWaitSeconds: factory.NewGauge(prometheus.GaugeOpts{
			Name: "festdraft_db_wait_seconds",
			Help: "Total time blocked waiting for a new connection",
		}),
		SeededRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "festdraft_seeded_records_total",
			Help: "Demo records created at startup",
		}, []string{"kind"}),
	}
}

func (m *Metrics) SetBuildInfo(version, environment string) {
	if m == nil {
		return
	}
	m.BuildInfo.WithLabelValues(version, environment).Set(1)
}

// RecordDBStats copies a pool snapshot into the gauges.
func (m *Metrics) RecordDBStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.DBOpenConns.Set(float64(stats.OpenConnections))
	m.DBInUseConns.Set(float64(stats.InUse))
	m.DBIdleConns.Set(float64(stats.Idle))
	m.DBWaitCount.Set(float64(stats.WaitCount))
	m.DBWaitSeconds.Set(stats.WaitDuration.Seconds())
}

func (m *Metrics) AddSeeded(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SeededRecords.WithLabelValues(kind).Add(float64(n))
}
