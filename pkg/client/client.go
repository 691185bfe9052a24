// Package client - Go-клиент FURSA API: токен, повтор запросов при сетевых сбоях,
// кэш GET-ответов и сохранение сессии на диск.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultTimeout    = 30 * time.Second
	DefaultRetries    = 3
	DefaultRetryDelay = time.Second
	DefaultCacheTTL   = 5 * time.Minute
	SessionTTL        = 24 * time.Hour
)

// Options - настройки клиента; нулевые значения заменяются значениями по умолчанию
type Options struct {
	BaseURL     string
	Timeout     time.Duration // на одну попытку
	Retries     int           // всего попыток
	RetryDelay  time.Duration
	CacheTTL    time.Duration // 0 - DefaultCacheTTL, <0 - кэш выключен
	SessionFile string        // пусто - сессия только в памяти
	HTTPClient  *http.Client
}

type cacheEntry struct {
	body    []byte
	expires time.Time
}

type Client struct {
	baseURL     string
	http        *http.Client
	timeout     time.Duration
	retries     int
	retryDelay  time.Duration
	cacheTTL    time.Duration
	sessionFile string

	mu      sync.RWMutex
	session *Session
	cache   map[string]cacheEntry
	group   singleflight.Group

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("client: base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("client: invalid base url: %w", err)
	}

	c := &Client{
		baseURL:     base,
		http:        opts.HTTPClient,
		timeout:     opts.Timeout,
		retries:     opts.Retries,
		retryDelay:  opts.RetryDelay,
		cacheTTL:    opts.CacheTTL,
		sessionFile: opts.SessionFile,
		cache:       make(map[string]cacheEntry),
		now:         time.Now,
		sleep:       sleepCtx,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.retries <= 0 {
		c.retries = DefaultRetries
	}
	if c.retryDelay <= 0 {
		c.retryDelay = DefaultRetryDelay
	}
	if c.cacheTTL == 0 {
		c.cacheTTL = DefaultCacheTTL
	}

	if c.sessionFile != "" {
		s, err := loadSession(c.sessionFile, c.now())
		if err != nil {
			return nil, err
		}
		c.session = s
	}
	return c, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ---- cache ----

func (c *Client) cached(key string) ([]byte, bool) {
	if c.cacheTTL < 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.cache[key]
	if !ok || !c.now().Before(e.expires) {
		return nil, false
	}
	return e.body, true
}

func (c *Client) store(key string, body []byte) {
	if c.cacheTTL < 0 {
		return
	}
	c.mu.Lock()
	c.cache[key] = cacheEntry{body: body, expires: c.now().Add(c.cacheTTL)}
	c.mu.Unlock()
}

// ClearCache сбрасывает все закэшированные GET-ответы
func (c *Client) ClearCache() {
	c.mu.Lock()
	c.cache = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// ---- transport ----

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return ""
	}
	return c.session.Token
}

// payload - тело запроса, которое можно отправить повторно
type payload struct {
	body        []byte
	contentType string
}

func jsonPayload(v interface{}) (*payload, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("client: encode request: %w", err)
	}
	return &payload{body: raw, contentType: "application/json"}, nil
}

// do выполняет запрос и декодирует JSON-ответ в out (если out != nil)
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in *payload, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	if method != http.MethodGet {
		// мутации не повторяются: сервер мог уже выполнить запрос
		body, err := c.send(ctx, method, endpoint, in, 1)
		if err != nil {
			return err
		}
		// любая мутация делает кэш устаревшим
		c.ClearCache()
		return decode(body, out)
	}

	key := c.token() + " " + endpoint
	if body, ok := c.cached(key); ok {
		return decode(body, out)
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		body, err := c.send(ctx, method, endpoint, nil, c.retries)
		if err != nil {
			return nil, err
		}
		c.store(key, body)
		return body, nil
	})
	if err != nil {
		return err
	}
	return decode(v.([]byte), out)
}

func decode(body []byte, out interface{}) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

// send делает до attempts попыток, повторяя только сетевые ошибки; HTTP-ошибки возвращаются сразу
func (c *Client) send(ctx context.Context, method, endpoint string, in *payload, attempts int) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		body, status, err := c.attempt(ctx, method, endpoint, in)
		if err == nil {
			if status >= 400 {
				return nil, c.httpError(status, body)
			}
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		lastErr = err
		if attempt < attempts {
			if err := c.sleep(ctx, c.retryDelay); err != nil {
				return nil, err
			}
		}
	}
	return nil, &NetworkError{Attempts: attempts, Err: lastErr}
}

func (c *Client) attempt(ctx context.Context, method, endpoint string, in *payload) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if in != nil {
		reader = bytes.NewReader(in.body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", in.contentType)
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

func (c *Client) httpError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}
	var resp struct {
		Error   string      `json:"error"`
		Code    string      `json:"code"`
		Details interface{} `json:"details"`
	}
	if json.Unmarshal(body, &resp) == nil {
		apiErr.Message, apiErr.Code, apiErr.Details = resp.Error, resp.Code, resp.Details
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}

	if status == http.StatusUnauthorized {
		c.ClearSession()
	}
	return apiErr
}
