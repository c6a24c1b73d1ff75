// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/resumekit/resumekit/internal/middleware"
	"github.com/resumekit/resumekit/internal/models"
	"github.com/resumekit/resumekit/internal/repository"
)

// ProjectRequest is the request body for creating or updating a project.
// Pointer fields distinguish "absent" from a zero value, so an update can
// set step back to 0 or clear a name.
type ProjectRequest struct {
	Name       *string         `json:"name"`
	TemplateID *string         `json:"template_id"`
	Data       json.RawMessage `json:"data"`
	Step       *int            `json:"step"`
}

// ListProjects returns the caller's projects, most recently updated first.
func (h *Handlers) ListProjects(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	projects, err := h.repo.ListProjects(c.Request().Context(), sess.UserID)
	if err != nil {
		slog.Error("failed to list projects", "user_id", sess.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "database error"})
	}
	return c.JSON(http.StatusOK, projects)
}

// GetProject returns one project by id.
func (h *Handlers) GetProject(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid project id"})
	}

	project, err := h.repo.GetProject(c.Request().Context(), id, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "database error"})
	}
	return c.JSON(http.StatusOK, project)
}

// CreateProject creates a new resume project.
func (h *Handlers) CreateProject(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	var req ProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	name := "Untitled Project"
	if req.Name != nil && *req.Name != "" {
		name = *req.Name
	}
	data := "{}"
	if len(req.Data) > 0 {
		data = string(req.Data)
	}
	step := 0
	if req.Step != nil {
		step = *req.Step
	}

	now := time.Now().UTC()
	project := &models.Project{
		UserID:     sess.UserID,
		Name:       name,
		TemplateID: req.TemplateID,
		Data:       data,
		Step:       step,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.repo.CreateProject(c.Request().Context(), project); err != nil {
		slog.Error("failed to create project", "user_id", sess.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "database error"})
	}
	return c.JSON(http.StatusOK, project)
}

// UpdateProject updates a project's mutable fields.
func (h *Handlers) UpdateProject(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid project id"})
	}

	var req ProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	ctx := c.Request().Context()

	project, err := h.repo.GetProject(ctx, id, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "database error"})
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.TemplateID != nil {
		project.TemplateID = req.TemplateID
	}
	if len(req.Data) > 0 {
		project.Data = string(req.Data)
	}
	if req.Step != nil {
		project.Step = *req.Step
	}

	if err := h.repo.UpdateProject(ctx, project, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "database error"})
	}
	return c.JSON(http.StatusOK, project)
}

// DeleteProject removes a project.
func (h *Handlers) DeleteProject(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid project id"})
	}

	if err := h.repo.DeleteProject(c.Request().Context(), id, sess.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "database error"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}
