package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fursa_backend/internal/auth"
	"fursa_backend/internal/handlers"
	"fursa_backend/internal/metrics"
	"fursa_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(base, nil, tokens),
		ProviderHandler: handlers.NewProviderHandler(base, nil, tokens),
		TalentHandler:   handlers.NewTalentHandler(base, nil, tokens),
		SearchHandler:   handlers.NewSearchHandler(base, nil),
		UploadHandler:   handlers.NewUploadHandler(base, nil, tokens),
	}

	r := gin.New()
	RegisterRoutes(r, appHandlers, opts)
	return r
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	r := newRouter(Options{Version: "1.2.3"})

	w := serve(r, http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "1.2.3", body["version"])
	assert.NotEmpty(t, body["uptime"])
}

func TestNoRoute(t *testing.T) {
	r := newRouter(Options{})

	w := serve(r, http.MethodGet, "/api/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestOptionalRoutes(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		r := newRouter(Options{})

		assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/metrics").Code)
		assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/swagger/doc.json").Code)
	})

	t.Run("enabled", func(t *testing.T) {
		r := newRouter(Options{
			Metrics:    metrics.NewManager().Handler(),
			Swagger:    true,
			UploadsDir: t.TempDir(),
		})

		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/metrics").Code)

		w := serve(r, http.MethodGet, "/swagger/doc.json")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "FURSA API")
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newRouter(Options{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/upload"},
		{http.MethodPut, "/api/service-providers/p1"},
		{http.MethodDelete, "/api/talents/t1"},
	} {
		w := serve(r, tc.method, tc.path)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.method+" "+tc.path)
	}
}
