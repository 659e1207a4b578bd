// Package billing serves per-provider cost summaries. The figures are a
// curated dataset: none of the accounts is connected to a billing export.
package billing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Hema-02/intent-cloud-project/internal/provider"
)

type ServiceCost struct {
	Name       string  `json:"name"`
	Cost       float64 `json:"cost"`
	Percentage int     `json:"percentage"`
}

type HistoryPoint struct {
	Month string    `json:"month"`
	Cost  float64   `json:"cost"`
	Date  time.Time `json:"date"`
}

type BudgetAlert struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	Current   float64    `json:"current,omitempty"`
	Limit     float64    `json:"limit,omitempty"`
	Threshold int        `json:"threshold,omitempty"`
	Savings   float64    `json:"savings,omitempty"`
	Severity  string     `json:"severity"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type Transaction struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Service     string    `json:"service"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
}

type Summary struct {
	CurrentCost        float64        `json:"currentCost"`
	LastMonth          float64        `json:"lastMonth"`
	Trend              float64        `json:"trend"`
	Services           []ServiceCost  `json:"services"`
	ProjectedAnnual    float64        `json:"projectedAnnual"`
	CostHistory        []HistoryPoint `json:"costHistory"`
	BudgetAlerts       []BudgetAlert  `json:"budgetAlerts"`
	RecentTransactions []Transaction  `json:"recentTransactions"`
}

type account struct {
	currentCost float64
	lastMonth   float64
	trend       float64
	services    []ServiceCost
}

var accounts = map[string]account{
	"aws": {
		currentCost: 2847.32,
		lastMonth:   2654.18,
		trend:       7.3,
		services: []ServiceCost{
			{Name: "EC2 Instances", Cost: 1245.67, Percentage: 44},
			{Name: "S3 Storage", Cost: 567.89, Percentage: 20},
			{Name: "RDS Databases", Cost: 423.12, Percentage: 15},
			{Name: "CloudFront", Cost: 234.56, Percentage: 8},
			{Name: "Other Services", Cost: 376.08, Percentage: 13},
		},
	},
	"gcp": {
		currentCost: 1923.45,
		lastMonth:   2156.78,
		trend:       -10.8,
		services: []ServiceCost{
			{Name: "Compute Engine", Cost: 856.34, Percentage: 45},
			{Name: "Cloud Storage", Cost: 423.67, Percentage: 22},
			{Name: "Cloud SQL", Cost: 345.23, Percentage: 18},
			{Name: "Cloud CDN", Cost: 156.78, Percentage: 8},
			{Name: "Other Services", Cost: 141.43, Percentage: 7},
		},
	},
	"azure": {
		currentCost: 3156.78,
		lastMonth:   2987.45,
		trend:       5.7,
		services: []ServiceCost{
			{Name: "Virtual Machines", Cost: 1423.45, Percentage: 45},
			{Name: "Blob Storage", Cost: 634.56, Percentage: 20},
			{Name: "Azure SQL", Cost: 567.89, Percentage: 18},
			{Name: "Azure CDN", Cost: 234.67, Percentage: 7},
			{Name: "Other Services", Cost: 296.21, Percentage: 10},
		},
	},
	"ibm": {
		currentCost: 1456.90,
		lastMonth:   1389.22,
		trend:       4.9,
		services: []ServiceCost{
			{Name: "Virtual Servers", Cost: 645.12, Percentage: 44},
			{Name: "Cloud Object Storage", Cost: 312.45, Percentage: 21},
			{Name: "Databases", Cost: 267.89, Percentage: 18},
			{Name: "Networking", Cost: 112.34, Percentage: 8},
			{Name: "Other Services", Cost: 119.10, Percentage: 9},
		},
	},
}

type Service struct{}

func NewService() *Service { return &Service{} }

// Summary assembles the full billing view for one provider.
func (s *Service) Summary(providerName string) (*Summary, error) {
	acct, ok := accounts[providerName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", provider.ErrProviderNotFound, providerName)
	}

	return &Summary{
		CurrentCost:        acct.currentCost,
		LastMonth:          acct.lastMonth,
		Trend:              acct.trend,
		Services:           acct.services,
		ProjectedAnnual:    acct.currentCost * 12,
		CostHistory:        costHistory(),
		BudgetAlerts:       summaryAlerts(acct.currentCost),
		RecentTransactions: recentTransactions(),
	}, nil
}

// Breakdown returns the per-service cost split.
func (s *Service) Breakdown(providerName string) ([]ServiceCost, float64, error) {
	acct, ok := accounts[providerName]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", provider.ErrProviderNotFound, providerName)
	}
	return acct.services, acct.currentCost, nil
}

// Alerts returns the standing budget alert feed.
func (s *Service) Alerts(providerName string) ([]BudgetAlert, error) {
	if _, ok := accounts[providerName]; !ok {
		return nil, fmt.Errorf("%w: %s", provider.ErrProviderNotFound, providerName)
	}

	now := time.Now().UTC()
	twoHoursAgo := now.Add(-2 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)
	return []BudgetAlert{
		{
			ID:        "budget-001",
			Type:      "warning",
			Message:   "85% of monthly budget used",
			Threshold: 85,
			Current:   85,
			Severity:  "medium",
			CreatedAt: &twoHoursAgo,
		},
		{
			ID:        "budget-002",
			Type:      "optimization",
			Message:   "Potential savings identified",
			Savings:   234,
			Severity:  "info",
			CreatedAt: &yesterday,
		},
	}, nil
}

func costHistory() []HistoryPoint {
	year := time.Now().UTC().Year()
	points := make([]HistoryPoint, 12)
	for i := range points {
		date := time.Date(year, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
		points[i] = HistoryPoint{
			Month: date.Format("Jan"),
			Cost:  rand.Float64()*1000 + 1500,
			Date:  date,
		}
	}
	return points
}

func summaryAlerts(currentCost float64) []BudgetAlert {
	return []BudgetAlert{
		{
			ID:       "budget-001",
			Type:     "warning",
			Message:  "85% of monthly budget used",
			Current:  currentCost * 0.85,
			Limit:    currentCost / 0.85,
			Severity: "medium",
		},
		{
			ID:       "budget-002",
			Type:     "info",
			Message:  "Storage costs within budget",
			Current:  567,
			Limit:    800,
			Severity: "low",
		},
		{
			ID:       "budget-003",
			Type:     "optimization",
			Message:  "Potential savings identified",
			Savings:  234,
			Severity: "info",
		},
	}
}

func recentTransactions() []Transaction {
	now := time.Now().UTC()
	return []Transaction{
		{
			ID:          "txn-001",
			Date:        now.Add(-24 * time.Hour),
			Service:     "EC2",
			Description: "Instance usage - i-1234567890abc",
			Amount:      45.67,
		},
		{
			ID:          "txn-002",
			Date:        now.Add(-48 * time.Hour),
			Service:     "S3",
			Description: "Storage and requests",
			Amount:      23.45,
		},
		{
			ID:          "txn-003",
			Date:        now.Add(-72 * time.Hour),
			Service:     "RDS",
			Description: "Database instance - db-prod-01",
			Amount:      78.90,
		},
	}
}
