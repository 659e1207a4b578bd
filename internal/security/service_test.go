package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hema-02/intent-cloud-project/internal/provider"
)

func TestOverview(t *testing.T) {
	svc := NewService()

	posture, err := svc.Overview("aws")
	require.NoError(t, err)

	assert.Equal(t, 85, posture.Score)
	assert.Len(t, posture.Metrics, 4)
	assert.NotEmpty(t, posture.Vulnerabilities)
	assert.NotEmpty(t, posture.AccessManagement)
	assert.True(t, posture.NextScan.After(posture.LastScan))

	_, err = svc.Overview("oracle")
	assert.ErrorIs(t, err, provider.ErrProviderNotFound)
}

func TestVulnerabilitySeverityFilter(t *testing.T) {
	svc := NewService()

	all, summary, err := svc.Vulnerabilities("aws", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 1, summary["high"])
	assert.Equal(t, 1, summary["medium"])
	assert.Equal(t, 1, summary["low"])

	high, summary, err := svc.Vulnerabilities("aws", "high")
	require.NoError(t, err)
	require.Len(t, high, 1)
	assert.Equal(t, "Unrestricted SSH Access", high[0].Title)
	assert.Equal(t, 0, summary["medium"], "summary reflects the filtered set")
}

func TestComplianceAverage(t *testing.T) {
	svc := NewService()

	standards, overall, err := svc.Compliance("aws")
	require.NoError(t, err)
	require.Len(t, standards, 4)
	assert.InDelta(t, 88.0, overall, 0.001) // (98+95+87+72)/4
}

func TestScan(t *testing.T) {
	svc := NewService()

	result, err := svc.Scan("azure", "full")
	require.NoError(t, err)
	assert.Equal(t, "completed", result.Status)
	assert.NotEmpty(t, result.ScanID)
	assert.GreaterOrEqual(t, result.VulnerabilitiesFound, 1)

	_, err = svc.Scan("oracle", "full")
	assert.ErrorIs(t, err, provider.ErrProviderNotFound)
}
