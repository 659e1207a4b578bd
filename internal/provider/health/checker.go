// Package health runs periodic liveness probes against registered provider
// backends and tracks the last observed state.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Hema-02/intent-cloud-project/internal/provider"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
	"github.com/Hema-02/intent-cloud-project/pkg/metrics"
)

const probeTimeout = 15 * time.Second

// Status is the last probe result for one provider.
type Status struct {
	Provider  string    `json:"provider"`
	Healthy   bool      `json:"healthy"`
	DemoMode  bool      `json:"demoMode"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

type Checker struct {
	registry *provider.Registry
	cron     *cron.Cron
	logger   logger.Logger

	mu     sync.RWMutex
	status map[string]Status
}

func NewChecker(registry *provider.Registry, log logger.Logger) *Checker {
	return &Checker{
		registry: registry,
		cron:     cron.New(cron.WithLocation(time.UTC)),
		logger:   log,
		status:   make(map[string]Status),
	}
}

// Start probes all backends once immediately, then every minute until Stop.
func (c *Checker) Start() error {
	c.CheckAll(context.Background())

	if _, err := c.cron.AddFunc("@every 1m", func() {
		c.CheckAll(context.Background())
	}); err != nil {
		return err
	}
	c.cron.Start()
	return nil
}

func (c *Checker) Stop() {
	<-c.cron.Stop().Done()
}

func (c *Checker) CheckAll(ctx context.Context) {
	for _, name := range c.registry.Names() {
		backend, err := c.registry.Get(name)
		if err != nil {
			continue
		}
		c.check(ctx, backend)
	}
}

func (c *Checker) check(ctx context.Context, backend provider.Backend) {
	status := Status{
		Provider:  backend.Name(),
		Healthy:   true,
		CheckedAt: time.Now().UTC(),
	}

	if demo, ok := backend.(provider.Demo); ok && demo.DemoMode() {
		status.DemoMode = true
	} else if checker, ok := backend.(provider.HealthChecker); ok {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := checker.HealthCheck(probeCtx)
		cancel()
		if err != nil {
			status.Healthy = false
			status.Error = err.Error()
			c.logger.Warn("Provider health check failed",
				"provider", backend.Name(), "error", err)
		}
	}

	healthy := 0.0
	if status.Healthy {
		healthy = 1
	}
	metrics.ProviderHealthy.WithLabelValues(backend.Name()).Set(healthy)

	c.mu.Lock()
	c.status[backend.Name()] = status
	c.mu.Unlock()
}

// Snapshot returns the last probe result per provider.
func (c *Checker) Snapshot() map[string]Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]Status, len(c.status))
	for name, status := range c.status {
		out[name] = status
	}
	return out
}
