package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for auth operations.
type Metrics struct {
	LoginAttempts   *prometheus.CounterVec
	LoginDurationMs prometheus.Histogram
	Logouts         prometheus.Counter
	UsersCreated    prometheus.Counter
	RoleChanges     prometheus.Counter
	SessionsRevoked prometheus.Counter
	SessionsSwept   prometheus.Counter
}

// New registers auth collectors with the default registry. Call once per
// process.
func New() *Metrics {
	return &Metrics{
		LoginAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "festdraft_login_attempts_total",
			Help: "Login attempts by outcome (success, invalid_credentials, error)",
		}, []string{"outcome"}),
		LoginDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "festdraft_login_duration_ms",
			Help:    "Time spent verifying credentials and issuing a token",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		Logouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "festdraft_logouts_total",
			Help: "Sessions ended by explicit logout",
		}),
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "festdraft_users_created_total",
			Help: "Operator accounts created",
		}),
		RoleChanges: promauto.NewCounter(prometheus.CounterOpts{
			Name: "festdraft_role_changes_total",
			Help: "Role assignments changed by administrators",
		}),
		SessionsRevoked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "festdraft_sessions_revoked_total",
			Help: "Sessions revoked because of a role change",
		}),
		SessionsSwept: promauto.NewCounter(prometheus.CounterOpts{
			Name: "festdraft_sessions_swept_total",
			Help: "Expired sessions removed by the cleanup worker",
		}),
	}
}

func (m *Metrics) IncrementLogin(outcome string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveLoginDuration(ms float64) {
	if m == nil {
		return
	}
	m.LoginDurationMs.Observe(ms)
}

func (m *Metrics) IncrementLogout() {
	if m == nil {
		return
	}
	m.Logouts.Inc()
}

func (m *Metrics) IncrementUsersCreated() {
	if m == nil {
		return
	}
	m.UsersCreated.Inc()
}

func (m *Metrics) RecordRoleChange(revokedSessions int) {
	if m == nil {
		return
	}
	m.RoleChanges.Inc()
	m.SessionsRevoked.Add(float64(revokedSessions))
}

// RecordSessionsSwept satisfies the cleanup worker's Recorder.
func (m *Metrics) RecordSessionsSwept(n int) {
	if m == nil {
		return
	}
	m.SessionsSwept.Add(float64(n))
}
