// Package security serves the per-provider security posture view. The
// findings are a curated dataset pending integration with the providers'
// native security scanners.
package security

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/Hema-02/intent-cloud-project/internal/provider"
)

type Metric struct {
	Label  string `json:"label"`
	Value  int    `json:"value"`
	Status string `json:"status"`
}

type Vulnerability struct {
	ID          string  `json:"id"`
	Severity    string  `json:"severity"`
	Title       string  `json:"title"`
	Resource    string  `json:"resource"`
	Description string  `json:"description"`
	Remediation string  `json:"remediation"`
	CVSS        float64 `json:"cvss"`
}

type ComplianceStandard struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Score  int    `json:"score"`
}

type AccessEntry struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	LastAccess time.Time `json:"lastAccess"`
	Status     string    `json:"status"`
}

type Posture struct {
	Score            int                  `json:"score"`
	Metrics          []Metric             `json:"metrics"`
	Vulnerabilities  []Vulnerability      `json:"vulnerabilities"`
	Compliance       []ComplianceStandard `json:"compliance"`
	AccessManagement []AccessEntry        `json:"accessManagement"`
	LastScan         time.Time            `json:"lastScan"`
	NextScan         time.Time            `json:"nextScan"`
}

type ScanResult struct {
	ScanID               string `json:"scanId"`
	Status               string `json:"status"`
	VulnerabilitiesFound int    `json:"vulnerabilitiesFound"`
	NewIssues            int    `json:"newIssues"`
	ResolvedIssues       int    `json:"resolvedIssues"`
	ScanDuration         string `json:"scanDuration"`
}

type posture struct {
	score           int
	metrics         []Metric
	vulnerabilities []Vulnerability
	compliance      []ComplianceStandard
}

var postures = map[string]posture{
	"aws": {
		score: 85,
		metrics: []Metric{
			{Label: "Security Groups", Value: 28, Status: "good"},
			{Label: "IAM Policies", Value: 156, Status: "warning"},
			{Label: "Access Keys", Value: 12, Status: "good"},
			{Label: "Active Users", Value: 45, Status: "good"},
		},
		vulnerabilities: []Vulnerability{
			{
				ID:          "vuln-001",
				Severity:    "high",
				Title:       "Unrestricted SSH Access",
				Resource:    "sg-1234567890abc",
				Description: "Security group allows SSH (port 22) from 0.0.0.0/0",
				Remediation: "Restrict SSH access to specific IP ranges",
				CVSS:        7.5,
			},
			{
				ID:          "vuln-002",
				Severity:    "medium",
				Title:       "Unused Access Key",
				Resource:    "AKIA...XYZ123",
				Description: "Access key has not been used in 90+ days",
				Remediation: "Remove or rotate unused access keys",
				CVSS:        5.3,
			},
			{
				ID:          "vuln-003",
				Severity:    "low",
				Title:       "Weak Password Policy",
				Resource:    "IAM Policy",
				Description: "Password policy does not require special characters",
				Remediation: "Update password policy requirements",
				CVSS:        3.1,
			},
		},
		compliance: []ComplianceStandard{
			{Name: "SOC 2", Status: "compliant", Score: 98},
			{Name: "ISO 27001", Status: "compliant", Score: 95},
			{Name: "GDPR", Status: "warning", Score: 87},
			{Name: "HIPAA", Status: "non-compliant", Score: 72},
		},
	},
	"gcp": {
		score: 78,
		metrics: []Metric{
			{Label: "Firewall Rules", Value: 22, Status: "good"},
			{Label: "IAM Bindings", Value: 134, Status: "good"},
			{Label: "Service Accounts", Value: 18, Status: "warning"},
			{Label: "Active Users", Value: 32, Status: "good"},
		},
		vulnerabilities: []Vulnerability{
			{
				ID:          "vuln-004",
				Severity:    "high",
				Title:       "Public Storage Bucket",
				Resource:    "bucket-public-data",
				Description: "Storage bucket is publicly accessible",
				Remediation: "Configure proper access controls",
				CVSS:        8.2,
			},
		},
		compliance: []ComplianceStandard{
			{Name: "SOC 2", Status: "compliant", Score: 92},
			{Name: "ISO 27001", Status: "warning", Score: 84},
			{Name: "GDPR", Status: "compliant", Score: 91},
		},
	},
	"azure": {
		score: 82,
		metrics: []Metric{
			{Label: "Network Security Groups", Value: 31, Status: "good"},
			{Label: "Azure AD Policies", Value: 89, Status: "good"},
			{Label: "Key Vault Secrets", Value: 24, Status: "good"},
			{Label: "Active Users", Value: 38, Status: "good"},
		},
		vulnerabilities: []Vulnerability{
			{
				ID:          "vuln-005",
				Severity:    "medium",
				Title:       "Outdated VM Extensions",
				Resource:    "vm-web-server-01",
				Description: "Virtual machine has outdated security extensions",
				Remediation: "Update VM extensions to latest versions",
				CVSS:        6.1,
			},
		},
		compliance: []ComplianceStandard{
			{Name: "SOC 2", Status: "compliant", Score: 96},
			{Name: "ISO 27001", Status: "compliant", Score: 89},
			{Name: "GDPR", Status: "compliant", Score: 93},
		},
	},
	"ibm": {
		score: 80,
		metrics: []Metric{
			{Label: "Security Groups", Value: 17, Status: "good"},
			{Label: "IAM Policies", Value: 64, Status: "good"},
			{Label: "Service IDs", Value: 9, Status: "warning"},
			{Label: "Active Users", Value: 21, Status: "good"},
		},
		vulnerabilities: []Vulnerability{
			{
				ID:          "vuln-006",
				Severity:    "medium",
				Title:       "Overly Broad Service ID",
				Resource:    "ServiceId-app-deploy",
				Description: "Service ID carries Administrator on the whole account",
				Remediation: "Scope the service ID to the resource groups it deploys to",
				CVSS:        5.8,
			},
		},
		compliance: []ComplianceStandard{
			{Name: "SOC 2", Status: "compliant", Score: 94},
			{Name: "ISO 27001", Status: "compliant", Score: 90},
			{Name: "GDPR", Status: "compliant", Score: 92},
		},
	},
}

type Service struct{}

func NewService() *Service { return &Service{} }

// Overview assembles the provider security posture.
func (s *Service) Overview(providerName string) (*Posture, error) {
	p, ok := postures[providerName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", provider.ErrProviderNotFound, providerName)
	}

	now := time.Now().UTC()
	return &Posture{
		Score:            p.score,
		Metrics:          p.metrics,
		Vulnerabilities:  p.vulnerabilities,
		Compliance:       p.compliance,
		AccessManagement: accessManagement(),
		LastScan:         now.Add(-6 * time.Hour),
		NextScan:         now.Add(18 * time.Hour),
	}, nil
}

// Vulnerabilities returns findings, optionally filtered by severity, with a
// per-severity summary of the filtered set.
func (s *Service) Vulnerabilities(providerName, severity string) ([]Vulnerability, map[string]int, error) {
	p, ok := postures[providerName]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", provider.ErrProviderNotFound, providerName)
	}

	filtered := make([]Vulnerability, 0, len(p.vulnerabilities))
	summary := map[string]int{"high": 0, "medium": 0, "low": 0}
	for _, vuln := range p.vulnerabilities {
		if severity != "" && vuln.Severity != severity {
			continue
		}
		filtered = append(filtered, vuln)
		summary[vuln.Severity]++
	}
	return filtered, summary, nil
}

// Compliance returns the standards view with the averaged overall score.
func (s *Service) Compliance(providerName string) ([]ComplianceStandard, float64, error) {
	p, ok := postures[providerName]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", provider.ErrProviderNotFound, providerName)
	}

	total := 0
	for _, standard := range p.compliance {
		total += standard.Score
	}
	return p.compliance, float64(total) / float64(len(p.compliance)), nil
}

// Scan simulates an on-demand scan run.
func (s *Service) Scan(providerName, scanType string) (*ScanResult, error) {
	if _, ok := postures[providerName]; !ok {
		return nil, fmt.Errorf("%w: %s", provider.ErrProviderNotFound, providerName)
	}
	_ = scanType

	return &ScanResult{
		ScanID:               "scan-" + uuid.New().String()[:8],
		Status:               "completed",
		VulnerabilitiesFound: rand.Intn(10) + 1,
		NewIssues:            rand.Intn(3),
		ResolvedIssues:       rand.Intn(2),
		ScanDuration:         "2m 34s",
	}, nil
}

func accessManagement() []AccessEntry {
	now := time.Now().UTC()
	return []AccessEntry{
		{
			ID:         "user-001",
			Name:       "John Doe",
			Email:      "john@company.com",
			Role:       "Admin",
			LastAccess: now.Add(-2 * time.Hour),
			Status:     "active",
		},
		{
			ID:         "user-002",
			Name:       "Jane Smith",
			Email:      "jane@company.com",
			Role:       "Developer",
			LastAccess: now.Add(-24 * time.Hour),
			Status:     "active",
		},
		{
			ID:         "user-003",
			Name:       "Bob Wilson",
			Email:      "bob@company.com",
			Role:       "Viewer",
			LastAccess: now.Add(-7 * 24 * time.Hour),
			Status:     "inactive",
		},
	}
}
