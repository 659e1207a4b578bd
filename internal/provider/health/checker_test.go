package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hema-02/intent-cloud-project/internal/provider"
	"github.com/Hema-02/intent-cloud-project/internal/provider/static"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
)

// probeBackend fails its liveness probe while still implementing the full
// backend surface.
type probeBackend struct {
	*static.Backend
	probeErr error
}

func (b *probeBackend) HealthCheck(context.Context) error { return b.probeErr }

// DemoMode is shadowed so the checker actually probes.
func (b *probeBackend) DemoMode() bool { return false }

var _ provider.HealthChecker = (*probeBackend)(nil)

func TestDemoBackendsReportHealthy(t *testing.T) {
	registry := provider.NewRegistry()
	registry.Register(static.New("aws"))

	checker := NewChecker(registry, logger.NewNop())
	checker.CheckAll(context.Background())

	snapshot := checker.Snapshot()
	require.Contains(t, snapshot, "aws")
	assert.True(t, snapshot["aws"].Healthy)
	assert.True(t, snapshot["aws"].DemoMode)
	assert.Empty(t, snapshot["aws"].Error)
}

func TestFailedProbeRecorded(t *testing.T) {
	registry := provider.NewRegistry()
	registry.Register(&probeBackend{
		Backend:  static.New("gcp"),
		probeErr: errors.New("credentials expired"),
	})

	checker := NewChecker(registry, logger.NewNop())
	checker.CheckAll(context.Background())

	snapshot := checker.Snapshot()
	require.Contains(t, snapshot, "gcp")
	assert.False(t, snapshot["gcp"].Healthy)
	assert.Contains(t, snapshot["gcp"].Error, "credentials expired")
}

func TestSnapshotIsACopy(t *testing.T) {
	registry := provider.NewRegistry()
	registry.Register(static.New("azure"))

	checker := NewChecker(registry, logger.NewNop())
	checker.CheckAll(context.Background())

	snapshot := checker.Snapshot()
	snapshot["azure"] = Status{Provider: "azure", Healthy: false}

	assert.True(t, checker.Snapshot()["azure"].Healthy)
}
