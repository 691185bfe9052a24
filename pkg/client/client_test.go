package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, srv *httptest.Server, opts Options) *Client {
	t.Helper()
	opts.BaseURL = srv.URL + "/api"
	c, err := New(opts)
	require.NoError(t, err)
	c.sleep = func(context.Context, time.Duration) error { return nil }
	return c
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// flakyTransport отдает сетевую ошибку первые failures раз
type flakyTransport struct {
	failures int32
	calls    int32
}

func (f *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	n := atomic.AddInt32(&f.calls, 1)
	if n <= f.failures {
		return nil, errors.New("connection refused")
	}
	return http.DefaultTransport.RoundTrip(req)
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestRetriesNetworkErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "talents": []interface{}{}, "total": 0})
	}))
	defer srv.Close()

	transport := &flakyTransport{failures: 2}
	c := newTestClient(t, srv, Options{HTTPClient: &http.Client{Transport: transport}})

	var delays []time.Duration
	c.sleep = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	_, err := c.Search(context.Background(), TalentFilter{Query: "bead"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, transport.calls)
	assert.Equal(t, []time.Duration{DefaultRetryDelay, DefaultRetryDelay}, delays)

	// три неудачи подряд - NetworkError
	transport = &flakyTransport{failures: 10}
	c = newTestClient(t, srv, Options{HTTPClient: &http.Client{Transport: transport}})
	_, err = c.Search(context.Background(), TalentFilter{})
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, DefaultRetries, netErr.Attempts)
	assert.EqualValues(t, 3, transport.calls)
}

func TestMutationsAreSentOnce(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		// запрос принят, но соединение рвется до ответа
		conn, _, err := w.(http.Hijacker).Hijack()
		if err == nil {
			conn.Close()
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{})
	c.sleep = func(context.Context, time.Duration) error { return nil }

	_, err := c.RateProvider(context.Background(), "p1", 5)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, 1, netErr.Attempts)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestDoesNotRetryHTTPErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"success": false, "error": "Provider not found", "code": "NOT_FOUND"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{})
	_, err := c.GetProvider(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "Provider not found", apiErr.Message)
	assert.EqualValues(t, 1, hits)
}

func TestAttemptTimeout(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{Timeout: 20 * time.Millisecond, Retries: 2})
	_, err := c.SearchFilters(context.Background())
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestGetCache(t *testing.T) {
	var gets, posts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			atomic.AddInt32(&gets, 1)
			assert.Equal(t, "plumber", r.URL.Query().Get("serviceType"))
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "providers": []interface{}{}, "pagination": map[string]int{"current": 1}})
		default:
			atomic.AddInt32(&posts, 1)
			writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "provider": map[string]string{"id": "p-1"}})
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{})
	now := time.Now()
	c.now = func() time.Time { return now }

	ctx := context.Background()
	filter := ProviderFilter{ServiceType: "plumber"}

	_, err := c.ListProviders(ctx, filter)
	require.NoError(t, err)
	_, err = c.ListProviders(ctx, filter)
	require.NoError(t, err)
	assert.EqualValues(t, 1, gets)

	// мутация сбрасывает кэш
	p, err := c.CreateProvider(ctx, ProviderInput{Name: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "p-1", p.ID)
	_, err = c.ListProviders(ctx, filter)
	require.NoError(t, err)
	assert.EqualValues(t, 2, gets)

	// истечение TTL
	now = now.Add(DefaultCacheTTL + time.Second)
	_, err = c.ListProviders(ctx, filter)
	require.NoError(t, err)
	assert.EqualValues(t, 3, gets)
	assert.EqualValues(t, 1, posts)
}

func TestSessionLifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "provider", body["userType"])
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"success": true, "token": "tok-1", "expiresIn": 86400,
				"user": map[string]string{"id": "p-1", "email": body["email"], "userType": "provider"},
			})
		case "/api/auth/me":
			// токен отозван на сервере
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"success": false, "error": "Invalid or expired token", "code": "INVALID_TOKEN"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	sessionFile := filepath.Join(t.TempDir(), "fursa", "session.json")
	c := newTestClient(t, srv, Options{SessionFile: sessionFile})
	ctx := context.Background()

	resp, err := c.Login(ctx, "jane@example.com", "supersecret", "provider")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", resp.Token)
	assert.True(t, c.IsAuthenticated())
	require.FileExists(t, sessionFile)

	// новая копия клиента подхватывает сессию с диска
	restored := newTestClient(t, srv, Options{SessionFile: sessionFile})
	require.NotNil(t, restored.Session())
	assert.Equal(t, "p-1", restored.Session().User.ID)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), restored.Session().ExpiresAt, time.Minute)

	// 401 очищает сессию
	_, err = restored.Me(ctx)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, restored.IsAuthenticated())
	assert.NoFileExists(t, sessionFile)
}

func TestExpiredSessionIsDiscarded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	raw, err := json.Marshal(Session{Token: "old", ExpiresAt: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	c, err := New(Options{BaseURL: "http://localhost/api", SessionFile: path})
	require.NoError(t, err)
	assert.Nil(t, c.Session())
	assert.NoFileExists(t, path)
}

func TestLogoutAlwaysClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false})
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{})
	require.NoError(t, c.SetSession("tok", User{ID: "t-1"}))
	c.Logout(context.Background())
	assert.False(t, c.IsAuthenticated())
}

func TestUploadSendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		var files []map[string]interface{}
		for _, fh := range r.MultipartForm.File["files"] {
			f, err := fh.Open()
			require.NoError(t, err)
			data, _ := io.ReadAll(f)
			f.Close()
			files = append(files, map[string]interface{}{
				"url":  "https://cdn.example.com/" + fh.Filename,
				"type": strings.Split(fh.Header.Get("Content-Type"), "/")[0],
				"size": len(data),
			})
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "files": files})
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{})
	require.NoError(t, c.SetSession("tok", User{ID: "p-1"}))

	files, err := c.Upload(context.Background(),
		File{Name: "a.png", ContentType: "image/png", Reader: strings.NewReader("PNG")},
		File{Name: "b.mp4", ContentType: "video/mp4", Reader: strings.NewReader("MP4DATA")},
	)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "image", files[0].Type)
	assert.Equal(t, "video", files[1].Type)
	assert.EqualValues(t, 7, files[1].Size)
}

func TestSuggestionsSkipsShortQueries(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "suggestions": map[string][]string{"skills": {"plumbing"}}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{})
	s, err := c.Suggestions(context.Background(), "p")
	require.NoError(t, err)
	assert.Empty(t, s.Skills)
	assert.EqualValues(t, 0, hits)

	s, err = c.Suggestions(context.Background(), "plu")
	require.NoError(t, err)
	assert.Equal(t, []string{"plumbing"}, s.Skills)
	assert.EqualValues(t, 1, hits)
}
