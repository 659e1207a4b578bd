package monitoring

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
	timeRange := c.DefaultQuery("timeRange", "24h")

	overview, err := h.service.Overview(c.Request.Context(), c.Param("provider"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider":       overview.Provider,
		"currentMetrics": overview.CurrentMetrics,
		"timeSeries":     overview.TimeSeries,
		"alerts":         overview.Alerts,
		"healthStatus":   overview.HealthStatus,
		"timeRange":      timeRange,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handlers) Metric(c *gin.Context) {
	providerName := c.Param("provider")
	metric := c.Param("metric")

	points, summary, err := h.service.Metric(providerName, metric)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider":   providerName,
		"metric":     metric,
		"timeRange":  c.DefaultQuery("timeRange", "24h"),
		"interval":   c.DefaultQuery("interval", "1h"),
		"dataPoints": points,
		"summary":    summary,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handlers) Alerts(c *gin.Context) {
	providerName := c.Param("provider")

	alerts, err := h.service.Alerts(providerName, c.Query("severity"), c.DefaultQuery("status", "active"))
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
	switch {
	case errors.Is(err, provider.ErrProviderNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider"})
	case errors.Is(err, provider.ErrUnsupportedOperation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid metric"})
	default:
		h.logger.Error("Monitoring request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch monitoring data"})
	}
}
