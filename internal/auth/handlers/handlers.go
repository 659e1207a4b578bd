package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Hema-02/intent-cloud-project/internal/auth/repository"
	"github.com/Hema-02/intent-cloud-project/internal/auth/service"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
	authmw "github.com/Hema-02/intent-cloud-project/pkg/middleware/auth"
)

type AuthHandlers struct {
	service *service.AuthService
	logger  logger.Logger
}

func NewAuthHandlers(svc *service.AuthService, log logger.Logger) *AuthHandlers {
	return &AuthHandlers{service: svc, logger: log}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type DemoLoginRequest struct {
	Role string `json:"role"`
}

func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}
		h.logger.Error("Failed to register user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":      user,
		"message":   "Registration successful",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		h.logger.Error("Failed to login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"user":        user,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// DemoLogin hands out a token for the requested role without credentials.
// It exists so the dashboard is explorable with no identity backend.
func (h *AuthHandlers) DemoLogin(c *gin.Context) {
	var req DemoLoginRequest
	// Body is optional; an empty body means a guest demo session.
	_ = c.ShouldBindJSON(&req)

	token, user, err := h.service.DemoLogin(c.Request.Context(), req.Role)
	if err != nil {
		h.logger.Error("Failed to create demo session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create demo session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"user":        user,
		"demo":        true,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *AuthHandlers) Signout(c *gin.Context) {
	if err := h.service.Signout(c.Request.Context(), authmw.Token(c)); err != nil {
		h.logger.Error("Failed to sign out", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Signed out successfully",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *AuthHandlers) Me(c *gin.Context) {
	principal, ok := authmw.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required", "code": authmw.CodeTokenMissing})
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), principal.ID)
	if err != nil {
		// Demo principals have no stored record; answer from the claims.
		c.JSON(http.StatusOK, gin.H{
			"user":      principal,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
