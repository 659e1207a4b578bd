// Package monitoring serves utilization dashboards per provider. Time series
// and alert feeds are synthesized: none of the accounts has a full telemetry
// pipeline wired, and the dashboard contract predates one.
package monitoring

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Hema-02/intent-cloud-project/internal/domain/resource"
	"github.com/Hema-02/intent-cloud-project/internal/provider"
	"github.com/Hema-02/intent-cloud-project/internal/resources"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
)

const seriesPoints = 24

var validMetrics = map[string]string{
	"cpu":     "%",
	"memory":  "%",
	"network": "GB/s",
	"disk":    "%",
}

type Point struct {
	Timestamp time.Time `json:"timestamp"`
	CPU       float64   `json:"cpu"`
	Memory    float64   `json:"memory"`
	Network   float64   `json:"network"`
	Disk      float64   `json:"disk"`
}

type Alert struct {
	ID        string    `json:"id"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Resource  string    `json:"resource"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

type HealthStatus struct {
	Overall  string         `json:"overall"`
	Services map[string]int `json:"services"`
}

type Overview struct {
	Provider       string                 `json:"provider"`
	CurrentMetrics *resource.MetricSample `json:"currentMetrics"`
	TimeSeries     []Point                `json:"timeSeries"`
	Alerts         []Alert                `json:"alerts"`
	HealthStatus   HealthStatus           `json:"healthStatus"`
}

type MetricPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
}

type MetricSummary struct {
	Current float64 `json:"current"`
	Average float64 `json:"average"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
}

type Service struct {
	resources *resources.Service
	logger    logger.Logger
}

func NewService(res *resources.Service, log logger.Logger) *Service {
	return &Service{resources: res, logger: log}
}

func (s *Service) validateProvider(name string) error {
	for _, p := range s.resources.Providers() {
		if p == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", provider.ErrProviderNotFound, name)
}

// Overview assembles the provider dashboard. The headline sample prefers a
// live reading from the first running instance; everything else is
// synthesized.
func (s *Service) Overview(ctx context.Context, providerName string) (*Overview, error) {
	if err := s.validateProvider(providerName); err != nil {
		return nil, err
	}

	current := s.currentSample(ctx, providerName)

	overall := "healthy"
	if current.CPU >= 80 || current.Memory >= 80 {
		overall = "warning"
	}

	return &Overview{
		Provider:       providerName,
		CurrentMetrics: current,
		TimeSeries:     series(),
		Alerts:         activeAlerts(providerName),
		HealthStatus: HealthStatus{
			Overall: overall,
			Services: map[string]int{
				"compute":  rand.Intn(30) + 20,
				"database": rand.Intn(10) + 5,
				"storage":  rand.Intn(20) + 10,
				"network":  rand.Intn(15) + 8,
			},
		},
	}, nil
}

func (s *Service) currentSample(ctx context.Context, providerName string) *resource.MetricSample {
	listing, err := s.resources.List(ctx, providerName, "instances")
	if err == nil {
		for _, inst := range listing.Groups["instances"] {
			if inst.Status != resource.StatusRunning {
				continue
			}
			sample, err := s.resources.Metrics(ctx, providerName, inst.ID)
			if err == nil {
				return sample
			}
		}
	}

	return &resource.MetricSample{
		CPU:       rand.Float64() * 100,
		Memory:    rand.Float64() * 100,
		Network:   rand.Float64() * 10,
		Disk:      rand.Float64() * 100,
		Synthetic: true,
	}
}

// Metric returns one named metric as a 24-point hourly series with a summary.
func (s *Service) Metric(providerName, metric string) ([]MetricPoint, *MetricSummary, error) {
	if err := s.validateProvider(providerName); err != nil {
		return nil, nil, err
	}
	unit, ok := validMetrics[metric]
	if !ok {
		return nil, nil, fmt.Errorf("%w: unknown metric %q", provider.ErrUnsupportedOperation, metric)
	}

	now := time.Now().UTC()
	points := make([]MetricPoint, seriesPoints)
	summary := &MetricSummary{Min: 100}
	for i := range points {
		value := rand.Float64() * 100
		points[i] = MetricPoint{
			Timestamp: now.Add(-time.Duration(seriesPoints-1-i) * time.Hour),
			Value:     value,
			Unit:      unit,
		}
		summary.Average += value
		if value > summary.Max {
			summary.Max = value
		}
		if value < summary.Min {
			summary.Min = value
		}
	}
	summary.Average /= seriesPoints
	summary.Current = points[len(points)-1].Value
	return points, summary, nil
}

// Alerts returns the alert feed, optionally filtered by severity and status.
func (s *Service) Alerts(providerName, severity, status string) ([]Alert, error) {
	if err := s.validateProvider(providerName); err != nil {
		return nil, err
	}

	filtered := make([]Alert, 0)
	for _, alert := range allAlerts(providerName) {
		if severity != "" && alert.Severity != severity {
			continue
		}
		if status != "" && alert.Status != status {
			continue
		}
		filtered = append(filtered, alert)
	}
	return filtered, nil
}

func series() []Point {
	now := time.Now().UTC()
	points := make([]Point, seriesPoints)
	for i := range points {
		points[i] = Point{
			Timestamp: now.Add(-time.Duration(seriesPoints-1-i) * time.Hour),
			CPU:       rand.Float64() * 100,
			Memory:    rand.Float64() * 100,
			Network:   rand.Float64() * 10,
			Disk:      rand.Float64() * 100,
		}
	}
	return points
}

func allAlerts(providerName string) []Alert {
	now := time.Now().UTC()
	return []Alert{
		{
			ID:        "alert-001",
			Severity:  "high",
			Message:   fmt.Sprintf("High CPU usage on %s instance", providerName),
			Resource:  providerName + "-instance-001",
			Timestamp: now.Add(-2 * time.Minute),
			Status:    "active",
		},
		{
			ID:        "alert-002",
			Severity:  "medium",
			Message:   "Memory usage approaching threshold",
			Resource:  providerName + "-db-001",
			Timestamp: now.Add(-15 * time.Minute),
			Status:    "active",
		},
		{
			ID:        "alert-003",
			Severity:  "low",
			Message:   "Disk space warning",
			Resource:  providerName + "-storage-001",
			Timestamp: now.Add(-time.Hour),
			Status:    "resolved",
		},
	}
}

func activeAlerts(providerName string) []Alert {
	active := make([]Alert, 0)
	for _, alert := range allAlerts(providerName) {
		if alert.Status == "active" {
			active = append(active, alert)
		}
	}
	return active
}
