// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

// Package middleware provides echo middleware shared across routes.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/resumekit/resumekit/internal/services/session"
)

// sessionKey is the echo context key the session is stored under.
const sessionKey = "session"

// RequireSession rejects requests without a valid session cookie and makes
// the session available to handlers via SessionFrom.
func RequireSession(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := sessions.Read(c.Request())
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the session attached by RequireSession, or nil.
func SessionFrom(c echo.Context) *session.Session {
	sess, _ := c.Get(sessionKey).(*session.Session)
	return sess
}
