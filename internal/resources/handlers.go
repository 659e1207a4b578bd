package resources

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Hema-02/intent-cloud-project/internal/domain/resource"
	"github.com/Hema-02/intent-cloud-project/internal/provider"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
	authmw "github.com/Hema-02/intent-cloud-project/pkg/middleware/auth"
)

const fallbackNote = "Live provider data unavailable; showing substitute data."

type Handlers struct {
	service *Service
	logger  logger.Logger
}

func NewHandlers(svc *Service, log logger.Logger) *Handlers {
	return &Handlers{service: svc, logger: log}
}

func (h *Handlers) List(c *gin.Context) {
	providerName := c.Param("provider")

	result, err := h.service.List(c.Request.Context(), providerName, c.Query("type"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	body := gin.H{
		"provider":  providerName,
		"resources": result.Groups,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if result.Fallback {
		body["note"] = fallbackNote
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handlers) Get(c *gin.Context) {
	providerName := c.Param("provider")

	res, fellBack, err := h.service.Get(c.Request.Context(), providerName, c.Param("type"), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	body := gin.H{
		"provider":  providerName,
		"type":      res.Type.GroupKey(),
		"resource":  res,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if fellBack {
		body["note"] = fallbackNote
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handlers) Create(c *gin.Context) {
	providerName := c.Param("provider")

	var spec resource.CreateSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), providerName, c.Param("type"), spec)
	if err != nil {
		h.respondError(c, err)
		return
	}

	principal, _ := authmw.Principal(c)
	created.CreatedBy = principal.ID

	h.logger.Info("Resource created",
		"provider", providerName, "resource", created.ID, "user", principal.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Resource created successfully",
		"resource":  created,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type updateRequest struct {
	State string `json:"state" binding:"required"`
}

func (h *Handlers) Update(c *gin.Context) {
	providerName := c.Param("provider")

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.UpdateState(c.Request.Context(), providerName, c.Param("type"), c.Param("id"), req.State); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Resource updated successfully",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handlers) Delete(c *gin.Context) {
	providerName := c.Param("provider")

	if err := h.service.Delete(c.Request.Context(), providerName, c.Param("type"), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Resource deleted successfully",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// respondError translates the provider error taxonomy into the API envelope.
func (h *Handlers) respondError(c *gin.Context, err error) {
	var upstream *provider.UpstreamError
	switch {
	case errors.Is(err, provider.ErrProviderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
	case errors.Is(err, provider.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, provider.ErrUnsupportedOperation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &upstream):
		h.logger.Error("Provider write failed",
			"provider", upstream.Provider, "op", upstream.Op, "error", upstream.Err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Provider request failed",
			"details": upstream.Err.Error(),
		})
	default:
		h.logger.Error("Unexpected error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
