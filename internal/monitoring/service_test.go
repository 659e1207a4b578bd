package monitoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hema-02/intent-cloud-project/internal/provider"
	"github.com/Hema-02/intent-cloud-project/internal/provider/static"
	"github.com/Hema-02/intent-cloud-project/internal/resources"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
)

func newService() *Service {
	registry := provider.NewRegistry()
	registry.Register(static.New("aws"))
	registry.Register(static.New("gcp"))
	return NewService(resources.NewService(registry, logger.NewNop()), logger.NewNop())
}

func TestOverview(t *testing.T) {
	svc := newService()

	overview, err := svc.Overview(context.Background(), "aws")
	require.NoError(t, err)

	assert.Len(t, overview.TimeSeries, 24)
	assert.NotNil(t, overview.CurrentMetrics)
	assert.Contains(t, []string{"healthy", "warning"}, overview.HealthStatus.Overall)
	for _, alert := range overview.Alerts {
		assert.Equal(t, "active", alert.Status, "overview carries only active alerts")
	}
}

func TestOverviewUnknownProvider(t *testing.T) {
	svc := newService()

	_, err := svc.Overview(context.Background(), "oracle")
	assert.ErrorIs(t, err, provider.ErrProviderNotFound)
}

func TestMetricSeries(t *testing.T) {
	svc := newService()

	points, summary, err := svc.Metric("aws", "network")
	require.NoError(t, err)
	require.Len(t, points, 24)
	assert.Equal(t, "GB/s", points[0].Unit)
	assert.Equal(t, points[len(points)-1].Value, summary.Current)
	assert.GreaterOrEqual(t, summary.Max, summary.Min)

	_, _, err = svc.Metric("aws", "latency")
	assert.ErrorIs(t, err, provider.ErrUnsupportedOperation)
}

func TestAlertFilters(t *testing.T) {
	svc := newService()

	active, err := svc.Alerts("gcp", "", "active")
	require.NoError(t, err)
	assert.Len(t, active, 2)

	high, err := svc.Alerts("gcp", "high", "active")
	require.NoError(t, err)
	require.Len(t, high, 1)
	assert.Equal(t, "high", high[0].Severity)

	resolved, err := svc.Alerts("gcp", "", "resolved")
	require.NoError(t, err)
	assert.Len(t, resolved, 1)
}
