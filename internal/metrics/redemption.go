package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PointsMetrics records ledger and redemption outcomes.
type PointsMetrics struct {
	pointsEarned  *prometheus.CounterVec
	pointsSpent   prometheus.Counter
	requests      *prometheus.CounterVec
	confirmations *prometheus.CounterVec
	expired       prometheus.Counter
}

// NewPointsMetrics registers the points metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewPointsMetrics(reg prometheus.Registerer) *PointsMetrics {
	if reg == nil {
		return &PointsMetrics{}
	}
	pointsEarned := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "points_earned_total",
		Help: "Points credited to member accounts.",
	}, []string{"source"})
	pointsSpent := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "points_spent_total",
		Help: "Points debited by confirmed redemptions.",
	})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "redemption_requests_total",
		Help: "Redemption request creation attempts by outcome.",
	}, []string{"outcome"})
	confirmations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "redemption_confirmations_total",
		Help: "Staff confirmation attempts by outcome.",
	}, []string{"outcome"})
	expired := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "redemption_expired_total",
		Help: "Pending redemption requests moved to expired by the sweeper.",
	})
	reg.MustRegister(pointsEarned, pointsSpent, requests, confirmations, expired)
	return &PointsMetrics{
		pointsEarned:  pointsEarned,
		pointsSpent:   pointsSpent,
		requests:      requests,
		confirmations: confirmations,
		expired:       expired,
	}
}

func (m *PointsMetrics) AddEarned(source string, amount int64) {
	if m == nil || m.pointsEarned == nil {
		return
	}
	m.pointsEarned.WithLabelValues(normalizeLabel(source)).Add(float64(amount))
}

func (m *PointsMetrics) AddSpent(amount int64) {
	if m == nil || m.pointsSpent == nil {
		return
	}
	m.pointsSpent.Add(float64(amount))
}

func (m *PointsMetrics) IncRequest(outcome string) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *PointsMetrics) IncConfirmation(outcome string) {
	if m == nil || m.confirmations == nil {
		return
	}
	m.confirmations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *PointsMetrics) AddExpired(n int) {
	if m == nil || m.expired == nil || n <= 0 {
		return
	}
	m.expired.Add(float64(n))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
