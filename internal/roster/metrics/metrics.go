package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for roster mutations.
type Metrics struct {
	Mutations          *prometheus.CounterVec
	BulkImported       prometheus.Counter
	BulkRejected       prometheus.Counter
	AuctionTransitions *prometheus.CounterVec
	AccessCodeChecks   *prometheus.CounterVec
}

// New registers roster collectors with the default registry. Call once per
// process.
func New() *Metrics {
	return &Metrics{
		Mutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "festdraft_roster_mutations_total",
			Help: "Roster writes by entity and operation",
		}, []string{"entity", "op"}),
		BulkImported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "festdraft_roster_bulk_imported_total",
			Help: "Participants created through bulk import",
		}),
		BulkRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "festdraft_roster_bulk_rejected_total",
			Help: "Bulk import rows rejected by validation",
		}),
		AuctionTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "festdraft_roster_auction_transitions_total",
			Help: "Auction lifecycle transitions by target status",
		}, []string{"status"}),
		AccessCodeChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "festdraft_roster_access_code_checks_total",
			Help: "Auction access code verifications by outcome (valid, invalid)",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncrementMutation(entity, op string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(entity, op).Inc()
}

func (m *Metrics) AddBulk(created, rejected int) {
	if m == nil {
		return
	}
	m.BulkImported.Add(float64(created))
	m.BulkRejected.Add(float64(rejected))
}

func (m *Metrics) IncrementTransition(status string) {
	if m == nil {
		return
	}
	m.AuctionTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) IncrementAccessCheck(valid bool) {
	if m == nil {
		return
	}
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	m.AccessCodeChecks.WithLabelValues(outcome).Inc()
}
