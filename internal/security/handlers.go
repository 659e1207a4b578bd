package security

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Hema-02/intent-cloud-project/internal/provider"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
)

type Handlers struct {
	service *Service
	logger  logger.Logger
}

func NewHandlers(svc *Service, log logger.Logger) *Handlers {
	return &Handlers{service: svc, logger: log}
}

func (h *Handlers) Overview(c *gin.Context) {
	providerName := c.Param("provider")

	posture, err := h.service.Overview(providerName)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider":  providerName,
		"security":  posture,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handlers) Vulnerabilities(c *gin.Context) {
	providerName := c.Param("provider")

	vulns, summary, err := h.service.Vulnerabilities(providerName, c.Query("severity"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider":        providerName,
		"vulnerabilities": vulns,
		"count":           len(vulns),
		"summary":         summary,
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handlers) Compliance(c *gin.Context) {
	providerName := c.Param("provider")

	compliance, overall, err := h.service.Compliance(providerName)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider":     providerName,
		"compliance":   compliance,
		"overallScore": overall,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}

type scanRequest struct {
	ScanType string `json:"scanType"`
}

func (h *Handlers) Scan(c *gin.Context) {
	providerName := c.Param("provider")

	var req scanRequest
	// Body is optional; a bare POST runs a full scan.
	_ = c.ShouldBindJSON(&req)
	if req.ScanType == "" {
		req.ScanType = "full"
	}

	result, err := h.service.Scan(providerName, req.ScanType)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider": providerName,
		"scanType": req.ScanType,
		"status":   result.Status,
		"scanId":   result.ScanID,
		"results": gin.H{
			"vulnerabilitiesFound": result.VulnerabilitiesFound,
			"newIssues":            result.NewIssues,
			"resolvedIssues":       result.ResolvedIssues,
			"scanDuration":         result.ScanDuration,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handlers) respondError(c *gin.Context, err error) {
	if errors.Is(err, provider.ErrProviderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		return
	}
	h.logger.Error("Security request failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch security data"})
}
