package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPointsMetrics(reg)

	m.AddEarned("attendance", 10)
	m.AddEarned("attendance", 5)
	m.AddSpent(500)
	m.IncConfirmation("success")
	m.IncConfirmation("")
	m.AddExpired(0)
	m.AddExpired(2)

	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			values[mf.GetName()+labelSuffix(metric)] = metric.GetCounter().GetValue()
		}
	}

	assert.Equal(t, float64(15), values["points_earned_total{attendance}"])
	assert.Equal(t, float64(500), values["points_spent_total"])
	assert.Equal(t, float64(1), values["redemption_confirmations_total{success}"])
	assert.Equal(t, float64(1), values["redemption_confirmations_total{unknown}"])
	assert.Equal(t, float64(2), values["redemption_expired_total"])
}

func TestPointsMetrics_NilRegisterer(t *testing.T) {
	m := NewPointsMetrics(nil)
	assert.NotPanics(t, func() {
		m.AddEarned("signup", 100)
		m.AddSpent(1)
		m.IncRequest("created")
		m.IncConfirmation("expired")
		m.AddExpired(3)
	})

	var nilMetrics *PointsMetrics
	assert.NotPanics(t, func() { nilMetrics.AddSpent(1) })
}

func labelSuffix(m *dto.Metric) string {
	if len(m.GetLabel()) == 0 {
		return ""
	}
	return "{" + m.GetLabel()[0].GetValue() + "}"
}
