package resources

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hema-02/intent-cloud-project/internal/provider"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
)

func newTestRouter(backends ...provider.Backend) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewHandlers(newService(backends...), logger.NewNop())
	r := gin.New()
	r.GET("/resources/:provider", h.List)
	r.GET("/resources/:provider/:type/:id", h.Get)
	r.POST("/resources/:provider/:type", h.Create)
	r.PUT("/resources/:provider/:type/:id", h.Update)
	r.DELETE("/resources/:provider/:type/:id", h.Delete)
	return r
}

func TestListResponseCarriesFallbackNote(t *testing.T) {
	router := newTestRouter(&flakyBackend{name: "aws", failAll: true})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resources/aws", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, fallbackNote, body["note"])
}

func TestCreateFailureSurfacesUpstreamDetails(t *testing.T) {
	router := newTestRouter(&flakyBackend{name: "aws", writeErr: errors.New("quota exceeded")})

	req := httptest.NewRequest(http.MethodPost, "/resources/aws/instances",
		bytes.NewReader([]byte(`{"name":"web-01"}`)))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Provider request failed", body["error"])
	assert.Contains(t, body["details"], "quota exceeded")
}

func TestUpdateRequiresStateField(t *testing.T) {
	router := newTestRouter(&flakyBackend{name: "aws"})

	req := httptest.NewRequest(http.MethodPut, "/resources/aws/instances/i-1",
		bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUnknownResource(t *testing.T) {
	router := newTestRouter(&flakyBackend{name: "aws", writeErr: provider.ErrResourceNotFound})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/resources/aws/instances/i-404", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Resource not found", body["error"])
}
