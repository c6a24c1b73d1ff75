// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

// Package session issues and validates signed cookie sessions.
package session

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/resumekit/resumekit/internal/config"
)

// Session is the payload carried by the session cookie.
type Session struct {
	UserID string
	Email  string
}

// Manager encodes sessions into signed (and optionally encrypted) cookies.
type Manager struct {
	sc         *securecookie.SecureCookie
	cookieName string
	maxAge     int
	secure     bool
}

// NewManager creates a session manager from config. Missing keys are
// generated at startup, which invalidates sessions across restarts; set
// them explicitly in production.
func NewManager(cfg *config.SessionConfig, secure bool) (*Manager, error) {
	hashKey, err := keyFromHex(cfg.HashKey)
	if err != nil {
		return nil, fmt.Errorf("session hash key: %w", err)
	}
	if hashKey == nil {
		slog.Warn("no session hash key configured, generating an ephemeral one")
		hashKey = securecookie.GenerateRandomKey(32)
	}

	var blockKey []byte
	if cfg.BlockKey != "" {
		blockKey, err = keyFromHex(cfg.BlockKey)
		if err != nil {
			return nil, fmt.Errorf("session block key: %w", err)
		}
	}

	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(cfg.MaxAge)

	return &Manager{
		sc:         sc,
		cookieName: cfg.CookieName,
		maxAge:     cfg.MaxAge,
		secure:     secure,
	}, nil
}

func keyFromHex(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("expected 32 bytes, got %d", len(key))
	}
	return key, nil
}

// Create builds a session cookie for the given user.
func (m *Manager) Create(userID, email string) (*http.Cookie, error) {
	encoded, err := m.sc.Encode(m.cookieName, &Session{UserID: userID, Email: email})
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   m.maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Read extracts and validates the session from a request.
func (m *Manager) Read(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := m.sc.Decode(m.cookieName, cookie.Value, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Clear returns a cookie that removes the session.
func (m *Manager) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
