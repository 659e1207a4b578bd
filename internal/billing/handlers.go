package billing

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

func (h *Handlers) Summary(c *gin.Context) {
	providerName := c.Param("provider")

	summary, err := h.service.Summary(providerName)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider":  providerName,
		"period":    c.DefaultQuery("period", "current"),
		"billing":   summary,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handlers) Breakdown(c *gin.Context) {
	providerName := c.Param("provider")

	breakdown, total, err := h.service.Breakdown(providerName)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider":  providerName,
		"groupBy":   c.DefaultQuery("groupBy", "service"),
		"period":    c.DefaultQuery("period", "month"),
		"breakdown": breakdown,
		"total":     total,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handlers) Alerts(c *gin.Context) {
	providerName := c.Param("provider")

	alerts, err := h.service.Alerts(providerName)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider":  providerName,
		"alerts":    alerts,
		"count":     len(alerts),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handlers) respondError(c *gin.Context, err error) {
	if errors.Is(err, provider.ErrProviderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		return
	}
	h.logger.Error("Billing request failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch billing data"})
}
