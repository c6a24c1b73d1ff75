// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/resumekit/resumekit/internal/services/templates"
)

// Templates lists the catalog, or returns one template's LaTeX source
// when ?id= is given.
func (h *Handlers) Templates(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return c.JSON(http.StatusOK, h.catalog.List())
	}

	source, err := h.catalog.Source(id)
	if err != nil {
		var unknown *templates.ErrUnknownTemplate
		if errors.As(err, &unknown) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "template not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load template"})
	}
	return c.String(http.StatusOK, source)
}
