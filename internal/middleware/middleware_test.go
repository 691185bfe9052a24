package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"fursa_backend/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, headers map[string]string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	token, err := tokens.GenerateToken("p-1", "p@example.com", auth.RoleProvider, "P")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c)+"/"+GetClaims(c).Role)
	})

	w := perform(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + token}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p-1/provider", w.Body.String())

	w = perform(r, http.MethodGet, "/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)

	w = perform(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer garbage"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestRequireOwner(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	token, err := tokens.GenerateToken("t-1", "t@example.com", auth.RoleTalent, "T")
	require.NoError(t, err)
	headers := map[string]string{"Authorization": "Bearer " + token}

	r := gin.New()
	r.PUT("/talents/:id", AuthMiddleware(tokens), RequireOwner(auth.RoleTalent, "id"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.PUT("/providers/:id", AuthMiddleware(tokens), RequireOwner(auth.RoleProvider, "id"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodPut, "/talents/t-1", headers, "").Code)
	assert.Equal(t, http.StatusForbidden, perform(r, http.MethodPut, "/talents/t-2", headers, "").Code)
	// тот же id, но другая роль
	assert.Equal(t, http.StatusForbidden, perform(r, http.MethodPut, "/providers/t-1", headers, "").Code)
}

func TestRequireRolesAndPermission(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	token, _ := tokens.GenerateToken("t-1", "t@example.com", auth.RoleTalent, "T")
	headers := map[string]string{"Authorization": "Bearer " + token}

	r := gin.New()
	r.GET("/providers-only", AuthMiddleware(tokens), RequireRoles(auth.RoleProvider), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/stories", AuthMiddleware(tokens), RequirePermission(auth.PermStoriesWriteSelf), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/upload", AuthMiddleware(tokens), RequirePermission(auth.PermUploadsWrite), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusForbidden, perform(r, http.MethodGet, "/providers-only", headers, "").Code)
	assert.Equal(t, http.StatusForbidden, perform(r, http.MethodPost, "/stories", headers, "").Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodPost, "/upload", headers, "").Code)
}

func TestOptionalAuthNeverRejects(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	r := gin.New()
	r.POST("/logout", OptionalAuthMiddleware(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})

	w := perform(r, http.MethodPost, "/logout", map[string]string{"Authorization": "Bearer expired"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/", nil, "")
	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err)

	id := uuid.NewString()
	w = perform(r, http.MethodGet, "/", map[string]string{"X-Request-ID": id}, "")
	assert.Equal(t, id, w.Header().Get("X-Request-ID"))

	w = perform(r, http.MethodGet, "/", map[string]string{"X-Request-ID": "<script>"}, "")
	assert.NotEqual(t, "<script>", w.Header().Get("X-Request-ID"))
}

func TestCORSAndSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:8080/"}), SecurityHeadersMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodOptions, "/", map[string]string{"Origin": "http://localhost:8080"}, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:8080", w.Header().Get("Access-Control-Allow-Origin"))

	w = perform(r, http.MethodGet, "/", map[string]string{"Origin": "https://evil.example"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimitMiddleware(16, 1024))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodPost, "/", map[string]string{"Content-Type": "application/json"}, `{"name":"this body is too long"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = perform(r, http.MethodPost, "/", map[string]string{"Content-Type": "multipart/form-data; boundary=x"}, `{"name":"this body is too long"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(nil, 1, time.Minute, "rl", nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/", nil, "").Code)
	}

	down := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer down.Close()

	r = gin.New()
	r.Use(RateLimiter(down, 1, time.Minute, "rl", nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/", nil, "").Code)
	}
}

func TestRateLimitKeyIgnoresClaims(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "10.0.0.7:1234"
	setClaims(c, &auth.Claims{UserID: "p-1", Role: auth.RoleProvider})

	assert.Equal(t, "rl:ip:10.0.0.7", rateLimitKey(c, "rl"))
}

// Без TEST_REDIS_ADDR тест пропускается.
func TestRateLimiterWithRedis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	prefix := "rl-test-" + uuid.NewString()
	key := prefix + ":ip:192.0.2.1"
	defer rdb.Del(context.Background(), key)

	r := gin.New()
	r.Use(RateLimiter(rdb, 2, time.Minute, prefix, nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:5555"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusOK, call().Code)

	ttl, err := rdb.TTL(context.Background(), key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0), "window key must expire")

	assert.Equal(t, http.StatusOK, call().Code)
	w := call()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
