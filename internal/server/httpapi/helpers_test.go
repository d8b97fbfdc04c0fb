package httpapi

import (
	"testing"

	"github.com/dmitrijs2005/passvault/internal/server/metrics"
	"github.com/stretchr/testify/require"
)

// testutilValue reads the auth outcome counter through the registry.
func testutilValue(t *testing.T, m *metrics.Metrics, op, outcome string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "passvault_auth_attempts_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range metric.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["operation"] == op && labels["outcome"] == outcome {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}
