package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Session - токен и пользователь; на диске хранится вместе с expiresAt
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// loadSession читает файл сессии; просроченная сессия удаляется
func loadSession(path string, now time.Time) (*Session, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("client: read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil || s.Token == "" || !now.Before(s.ExpiresAt) {
		_ = os.Remove(path)
		return nil, nil
	}
	return &s, nil
}

func saveSession(path string, s *Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("client: create session dir: %w", err)
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("client: write session: %w", err)
	}
	return os.Rename(tmp, path)
}

// Session возвращает копию текущей сессии (nil - не авторизован)
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

func (c *Client) IsAuthenticated() bool {
	return c.token() != ""
}

// SetSession запоминает токен и пользователя и сохраняет их на диск
func (c *Client) SetSession(token string, user User) error {
	s := &Session{Token: token, User: user, ExpiresAt: c.now().Add(SessionTTL)}

	c.mu.Lock()
	c.session = s
	c.cache = make(map[string]cacheEntry)
	c.mu.Unlock()

	if c.sessionFile == "" {
		return nil
	}
	return saveSession(c.sessionFile, s)
}

// ClearSession забывает токен, пользователя и удаляет файл сессии
func (c *Client) ClearSession() {
	c.mu.Lock()
	c.session = nil
	c.cache = make(map[string]cacheEntry)
	c.mu.Unlock()

	if c.sessionFile != "" {
		_ = os.Remove(c.sessionFile)
	}
}
