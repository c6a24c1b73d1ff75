// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

// Package handlers contains the HTTP handlers for the JSON API.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/resumekit/resumekit/internal/repository"
	"github.com/resumekit/resumekit/internal/services/identity"
	"github.com/resumekit/resumekit/internal/services/otp"
	"github.com/resumekit/resumekit/internal/services/session"
	"github.com/resumekit/resumekit/internal/services/templates"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	repo     *repository.Repository
	throttle *otp.Service
	identity *identity.Service
	sessions *session.Manager
	catalog  *templates.Catalog
}

// New creates a new Handlers instance.
func New(repo *repository.Repository, throttle *otp.Service, id *identity.Service, sessions *session.Manager, catalog *templates.Catalog) *Handlers {
	return &Handlers{
		repo:     repo,
		throttle: throttle,
		identity: id,
		sessions: sessions,
		catalog:  catalog,
	}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
