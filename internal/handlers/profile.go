// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/resumekit/resumekit/internal/middleware"
	"github.com/resumekit/resumekit/internal/repository"
)

// Profile returns the caller's display names.
func (h *Handlers) Profile(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	profile, err := h.repo.GetProfile(c.Request().Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "database error"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"email":      sess.Email,
		"first_name": profile.FirstName,
		"last_name":  profile.LastName,
	})
}
