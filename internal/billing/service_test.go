package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hema-02/intent-cloud-project/internal/provider"
)

func TestSummary(t *testing.T) {
	svc := NewService()

	summary, err := svc.Summary("aws")
	require.NoError(t, err)

	assert.InDelta(t, 2847.32, summary.CurrentCost, 0.001)
	assert.InDelta(t, summary.CurrentCost*12, summary.ProjectedAnnual, 0.001)
	assert.Len(t, summary.CostHistory, 12)
	assert.NotEmpty(t, summary.Services)
	assert.NotEmpty(t, summary.BudgetAlerts)
	assert.NotEmpty(t, summary.RecentTransactions)
}

func TestSummaryUnknownProvider(t *testing.T) {
	svc := NewService()

	_, err := svc.Summary("oracle")
	assert.ErrorIs(t, err, provider.ErrProviderNotFound)
}

func TestBreakdownTotalsMatch(t *testing.T) {
	svc := NewService()

	for _, name := range []string{"aws", "gcp", "azure", "ibm"} {
		breakdown, total, err := svc.Breakdown(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, breakdown, name)
		assert.Greater(t, total, 0.0, name)

		percent := 0
		for _, item := range breakdown {
			percent += item.Percentage
		}
		assert.Equal(t, 100, percent, name)
	}
}

func TestAlerts(t *testing.T) {
	svc := NewService()

	alerts, err := svc.Alerts("gcp")
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "warning", alerts[0].Type)

	_, err = svc.Alerts("oracle")
	assert.ErrorIs(t, err, provider.ErrProviderNotFound)
}
