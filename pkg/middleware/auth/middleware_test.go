package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hema-02/intent-cloud-project/internal/auth/jwt"
	"github.com/Hema-02/intent-cloud-project/internal/domain/identity"
	"github.com/Hema-02/intent-cloud-project/pkg/config"
)

func newTestRouter(t *testing.T, redisClient *redis.Client) (*gin.Engine, *jwt.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := jwt.NewManager(config.AuthConfig{
		JWTSecret: "test-secret",
		JWTExpiry: 3600,
		Issuer:    "test",
	})
	mw := New(manager, redisClient)

	router := gin.New()
	authed := router.Group("/", mw.Authenticate())
	authed.GET("/open", func(c *gin.Context) {
		p, _ := Principal(c)
		c.JSON(http.StatusOK, gin.H{"role": p.Role})
	})
	authed.GET("/admin", RequireRole(identity.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, manager
}

func doGet(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMissingToken(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := doGet(router, "/open", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Access token required", body["error"])
	assert.Equal(t, CodeTokenMissing, body["code"])
}

func TestInvalidToken(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := doGet(router, "/open", "garbage")
	assert.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, CodeTokenInvalid, body["code"])
}

func TestValidTokenPassesThrough(t *testing.T) {
	router, manager := newTestRouter(t, nil)

	token, err := manager.GenerateToken("u-1", "a@b.c", "user")
	require.NoError(t, err)

	w := doGet(router, "/open", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user")
}

func TestRoleEnforcement(t *testing.T) {
	router, manager := newTestRouter(t, nil)

	t.Run("UserDeniedAdminRoute", func(t *testing.T) {
		token, err := manager.GenerateToken("u-1", "a@b.c", "user")
		require.NoError(t, err)

		w := doGet(router, "/admin", token)
		assert.Equal(t, http.StatusForbidden, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, CodeInsufficient, body["code"])
		// Diagnosability: the message names both roles.
		assert.Contains(t, body["error"], "admin")
		assert.Contains(t, body["error"], "user")
	})

	t.Run("SuperadminAllowed", func(t *testing.T) {
		token, err := manager.GenerateToken("u-2", "s@b.c", "superadmin")
		require.NoError(t, err)

		w := doGet(router, "/admin", token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("UnknownRoleTreatedAsGuest", func(t *testing.T) {
		token, err := manager.GenerateToken("u-3", "x@b.c", "operator")
		require.NoError(t, err)

		w := doGet(router, "/admin", token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRevokedToken(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	router, manager := newTestRouter(t, redisClient)

	token, err := manager.GenerateToken("u-1", "a@b.c", "user")
	require.NoError(t, err)

	w := doGet(router, "/open", token)
	require.Equal(t, http.StatusOK, w.Code)

	mr.Set("blacklist:"+token, "1")
	mr.SetTTL("blacklist:"+token, time.Hour)

	w = doGet(router, "/open", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), CodeTokenInvalid)
}
