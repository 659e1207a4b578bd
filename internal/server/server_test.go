package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hema-02/intent-cloud-project/pkg/config"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
)

// newTestServer boots the full API in demo mode: no database, no redis, no
// provider credentials.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Auth: config.AuthConfig{
			JWTSecret:   "test-secret",
			JWTExpiry:   3600,
			Issuer:      "test",
			LoginWindow: 60,
			LoginLimit:  5,
		},
	}

	srv, err := New(cfg, logger.NewNop())
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	parsed := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed), "body: %s", w.Body.String())
	}
	return w, parsed
}

func demoToken(t *testing.T, srv *Server, role string) string {
	t.Helper()

	w, body := doJSON(t, srv, http.MethodPost, "/api/auth/demo-login", "", gin.H{"role": role})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := body["accessToken"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestDemoLoginRoute(t *testing.T) {
	srv := newTestServer(t)

	w, body := doJSON(t, srv, http.MethodPost, "/api/auth/demo-login", "", gin.H{"role": "admin"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body["accessToken"])
	assert.Equal(t, true, body["demo"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "admin", user["role"])
}

func TestListResourcesAsUser(t *testing.T) {
	srv := newTestServer(t)
	token := demoToken(t, srv, "user")

	w, body := doJSON(t, srv, http.MethodGet, "/api/resources/aws", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	groups, ok := body["resources"].(map[string]interface{})
	require.True(t, ok)
	instances, ok := groups["instances"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, instances)

	for _, raw := range instances {
		item := raw.(map[string]interface{})
		assert.NotEmpty(t, item["id"])
		assert.NotEmpty(t, item["name"])
		assert.NotEmpty(t, item["status"])
		assert.NotEmpty(t, item["region"])
	}
}

func TestListResourcesWithoutToken(t *testing.T) {
	srv := newTestServer(t)

	w, body := doJSON(t, srv, http.MethodGet, "/api/resources/aws", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access token required", body["error"])
	assert.Equal(t, "TOKEN_MISSING", body["code"])
}

func TestSecurityRequiresAdmin(t *testing.T) {
	srv := newTestServer(t)

	userToken := demoToken(t, srv, "user")
	w, body := doJSON(t, srv, http.MethodGet, "/api/security/aws", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	message, _ := body["error"].(string)
	assert.Contains(t, message, "admin")
	assert.Contains(t, message, "user")

	adminToken := demoToken(t, srv, "admin")
	w, body = doJSON(t, srv, http.MethodGet, "/api/security/aws", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "security")
}

func TestAssistantListInstances(t *testing.T) {
	srv := newTestServer(t)
	token := demoToken(t, srv, "user")

	w, body := doJSON(t, srv, http.MethodPost, "/api/nlp/process", token,
		gin.H{"input": "list my instances"})
	require.Equal(t, http.StatusOK, w.Code)

	response, ok := body["response"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "list_resources", response["action"])

	details, ok := response["details"].(map[string]interface{})
	require.True(t, ok)
	resources, ok := details["resources"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, resources, "instances")
}

func TestAssistantRejectsEmptyInput(t *testing.T) {
	srv := newTestServer(t)
	token := demoToken(t, srv, "user")

	w, body := doJSON(t, srv, http.MethodPost, "/api/nlp/process", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Input text is required", body["error"])
}

func TestCreateRequiresUserRole(t *testing.T) {
	srv := newTestServer(t)

	guestToken := demoToken(t, srv, "guest")
	w, _ := doJSON(t, srv, http.MethodPost, "/api/resources/aws/instances", guestToken,
		gin.H{"name": "guest-vm"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	userToken := demoToken(t, srv, "user")
	w, body := doJSON(t, srv, http.MethodPost, "/api/resources/aws/instances", userToken,
		gin.H{"name": "user-vm", "instanceType": "t3.small"})
	require.Equal(t, http.StatusCreated, w.Code)

	created, ok := body["resource"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "user-vm", created["name"])
	assert.Equal(t, "creating", created["status"])
	assert.Equal(t, "demo-user", created["createdBy"])
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)

	w, _ := doJSON(t, srv, http.MethodPost, "/api/auth/register", "",
		gin.H{"email": "dev@example.com", "password": "password123", "name": "Dev"})
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate registration conflicts.
	w, _ = doJSON(t, srv, http.MethodPost, "/api/auth/register", "",
		gin.H{"email": "dev@example.com", "password": "password123", "name": "Dev"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, body := doJSON(t, srv, http.MethodPost, "/api/auth/login", "",
		gin.H{"email": "dev@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := body["accessToken"].(string)
	require.NotEmpty(t, token)

	w, body = doJSON(t, srv, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "dev@example.com", user["email"])
	assert.Equal(t, "user", user["role"])
}

func TestLoginWithWrongPassword(t *testing.T) {
	srv := newTestServer(t)

	w, _ := doJSON(t, srv, http.MethodPost, "/api/auth/register", "",
		gin.H{"email": "dev@example.com", "password": "password123", "name": "Dev"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, body := doJSON(t, srv, http.MethodPost, "/api/auth/login", "",
		gin.H{"email": "dev@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", body["error"])
}

func TestUnknownProviderRoutes(t *testing.T) {
	srv := newTestServer(t)
	token := demoToken(t, srv, "admin")

	w, body := doJSON(t, srv, http.MethodGet, "/api/resources/oracle", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Provider not found", body["error"])

	w, body = doJSON(t, srv, http.MethodGet, "/api/billing/oracle", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Provider not found", body["error"])

	w, body = doJSON(t, srv, http.MethodGet, "/api/monitoring/oracle", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid provider", body["error"])
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	w, body := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])

	w, body = doJSON(t, srv, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", body["status"])
}
