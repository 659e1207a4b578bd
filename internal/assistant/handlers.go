package assistant

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Hema-02/intent-cloud-project/pkg/logger"
	authmw "github.com/Hema-02/intent-cloud-project/pkg/middleware/auth"
)

var suggestions = map[string][]string{
	"create": {
		"Create a new web server instance",
		"Launch a database for my application",
		"Set up a load balancer",
		"Create a storage bucket for backups",
	},
	"manage": {
		"Show me all my running instances",
		"List my databases and their status",
		"Display storage usage across regions",
		"Check which resources are costing the most",
	},
	"monitor": {
		"What is the current system health?",
		"Show me CPU usage for the last hour",
		"Are there any active alerts?",
		"How is my application performing?",
	},
	"optimize": {
		"How can I reduce my cloud costs?",
		"Which instances are underutilized?",
		"Suggest auto-scaling configurations",
		"Identify unused resources",
	},
}

// Stable iteration order for the flattened suggestion list.
var suggestionCategories = []string{"create", "manage", "monitor", "optimize"}

type Handlers struct {
	interpreter *Interpreter
	history     HistoryStore
	logger      logger.Logger
}

func NewHandlers(interpreter *Interpreter, history HistoryStore, log logger.Logger) *Handlers {
	return &Handlers{interpreter: interpreter, history: history, logger: log}
}

type processRequest struct {
	Input    string `json:"input"`
	Provider string `json:"provider"`
}

func (h *Handlers) Process(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Input == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Input text is required"})
		return
	}
	if req.Provider == "" {
		req.Provider = "aws"
	}

	response := h.interpreter.Interpret(c.Request.Context(), req.Input, req.Provider)

	principal, _ := authmw.Principal(c)
	cmd := Command{
		ID:        uuid.New().String(),
		UserID:    principal.ID,
		Input:     req.Input,
		Provider:  req.Provider,
		Action:    response.Action,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.history.Record(c.Request.Context(), cmd); err != nil {
		// History is best-effort; the interpretation still goes out.
		h.logger.Warn("Failed to record command", "user", principal.ID, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"input":     req.Input,
		"provider":  req.Provider,
		"response":  response,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"user":      principal.ID,
	})
}

func (h *Handlers) Suggestions(c *gin.Context) {
	category := c.Query("category")

	var out []string
	if list, ok := suggestions[category]; ok {
		out = list
	} else {
		category = "all"
		for _, key := range suggestionCategories {
			out = append(out, suggestions[key]...)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"provider":    c.DefaultQuery("provider", "aws"),
		"category":    category,
		"suggestions": out,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handlers) History(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	principal, _ := authmw.Principal(c)
	history, err := h.history.List(c.Request.Context(), principal.ID, limit)
	if err != nil {
		h.logger.Error("Failed to fetch command history", "user", principal.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch command history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history":   history,
		"total":     len(history),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
