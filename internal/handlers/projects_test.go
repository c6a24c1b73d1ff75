// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/resumekit/resumekit/internal/middleware"
	"github.com/resumekit/resumekit/internal/models"
	"github.com/resumekit/resumekit/internal/services/otp"
	"github.com/resumekit/resumekit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authedCall runs a handler behind the session middleware with a valid
// session cookie for the given user.
func (h *harness) authedCall(t *testing.T, fn echo.HandlerFunc, user *models.User, method, path, projectID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	c, rec := testutil.NewEchoContext(h.e, method, path, bytes.NewReader(payload))
	if projectID != "" {
		c.SetParamNames("id")
		c.SetParamValues(projectID)
	}

	cookie, err := h.sessions.Create(user.ID, user.Email)
	require.NoError(t, err)
	c.Request().AddCookie(cookie)

	require.NoError(t, middleware.RequireSession(h.sessions)(fn)(c))
	return rec
}

func TestProjects_RequireSession(t *testing.T) {
	h := newHarness(t, otp.DefaultLimits())

	c, rec := testutil.NewEchoContext(h.e, http.MethodGet, "/api/projects", nil)
	require.NoError(t, middleware.RequireSession(h.sessions)(h.h.ListProjects)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProjects_CRUD(t *testing.T) {
	h := newHarness(t, otp.DefaultLimits())
	user := testutil.NewTestUser(t, h.repo, "ana@example.com")

	rec := h.authedCall(t, h.h.CreateProject, user, http.MethodPost, "/api/projects", "", map[string]any{
		"name": "Backend Resume",
		"data": map[string]string{"headline": "Go developer"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var created models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	assert.Equal(t, "Backend Resume", created.Name)
	assert.Equal(t, user.ID, created.UserID)

	id := strconv.FormatInt(created.ID, 10)

	rec = h.authedCall(t, h.h.ListProjects, user, http.MethodGet, "/api/projects", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)

	rec = h.authedCall(t, h.h.UpdateProject, user, http.MethodPut, "/api/projects/"+id, id, map[string]any{
		"name": "Platform Resume",
		"step": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.authedCall(t, h.h.GetProject, user, http.MethodGet, "/api/projects/"+id, id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, "Platform Resume", fetched.Name)
	assert.Equal(t, 2, fetched.Step)

	rec = h.authedCall(t, h.h.DeleteProject, user, http.MethodDelete, "/api/projects/"+id, id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.authedCall(t, h.h.GetProject, user, http.MethodGet, "/api/projects/"+id, id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjects_UpdateResetsStepToZero(t *testing.T) {
	h := newHarness(t, otp.DefaultLimits())
	user := testutil.NewTestUser(t, h.repo, "ana@example.com")

	rec := h.authedCall(t, h.h.CreateProject, user, http.MethodPost, "/api/projects", "", map[string]any{
		"name": "Backend Resume",
		"step": 3,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var created models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, 3, created.Step)
	id := strconv.FormatInt(created.ID, 10)

	// A zero value in the body is an update, not an omission.
	rec = h.authedCall(t, h.h.UpdateProject, user, http.MethodPut, "/api/projects/"+id, id, map[string]any{
		"step": 0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.authedCall(t, h.h.GetProject, user, http.MethodGet, "/api/projects/"+id, id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, 0, fetched.Step)
	assert.Equal(t, "Backend Resume", fetched.Name)
}

func TestProjects_UpdateOmittedFieldsUnchanged(t *testing.T) {
	h := newHarness(t, otp.DefaultLimits())
	user := testutil.NewTestUser(t, h.repo, "ana@example.com")

	rec := h.authedCall(t, h.h.CreateProject, user, http.MethodPost, "/api/projects", "", map[string]any{
		"name": "Backend Resume",
		"step": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var created models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := strconv.FormatInt(created.ID, 10)

	rec = h.authedCall(t, h.h.UpdateProject, user, http.MethodPut, "/api/projects/"+id, id, map[string]any{
		"data": map[string]string{"headline": "Go developer"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.authedCall(t, h.h.GetProject, user, http.MethodGet, "/api/projects/"+id, id, nil)
	var fetched models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, "Backend Resume", fetched.Name)
	assert.Equal(t, 2, fetched.Step)
	assert.Contains(t, fetched.Data, "headline")
}

func TestProfile_ReturnsNames(t *testing.T) {
	h := newHarness(t, otp.DefaultLimits())
	user := testutil.NewTestUser(t, h.repo, "ana@example.com")
	require.NoError(t, h.repo.UpsertProfile(context.Background(), user.ID, "Ana", "Lovelace", time.Now().UTC()))

	rec := h.authedCall(t, h.h.Profile, user, http.MethodGet, "/api/profile", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Ana", body["first_name"])
	assert.Equal(t, "Lovelace", body["last_name"])
	assert.Equal(t, "ana@example.com", body["email"])
}

func TestProfile_NotFound(t *testing.T) {
	h := newHarness(t, otp.DefaultLimits())
	user := testutil.NewTestUser(t, h.repo, "ana@example.com")

	rec := h.authedCall(t, h.h.Profile, user, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjects_ScopedToOwner(t *testing.T) {
	h := newHarness(t, otp.DefaultLimits())
	owner := testutil.NewTestUser(t, h.repo, "ana@example.com")
	intruder := testutil.NewTestUser(t, h.repo, "eve@example.com")

	rec := h.authedCall(t, h.h.CreateProject, owner, http.MethodPost, "/api/projects", "", map[string]any{
		"name": "Private Resume",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var created models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := strconv.FormatInt(created.ID, 10)

	rec = h.authedCall(t, h.h.GetProject, intruder, http.MethodGet, "/api/projects/"+id, id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.authedCall(t, h.h.DeleteProject, intruder, http.MethodDelete, "/api/projects/"+id, id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjects_InvalidID(t *testing.T) {
	h := newHarness(t, otp.DefaultLimits())
	user := testutil.NewTestUser(t, h.repo, "ana@example.com")

	rec := h.authedCall(t, h.h.GetProject, user, http.MethodGet, "/api/projects/abc", "abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTemplates_List(t *testing.T) {
	h := newHarness(t, otp.DefaultLimits())

	c, rec := testutil.NewEchoContext(h.e, http.MethodGet, "/api/templates", nil)
	require.NoError(t, h.h.Templates(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.NotEmpty(t, listed)
	assert.Contains(t, listed[0], "id")
}

func TestTemplates_Source(t *testing.T) {
	h := newHarness(t, otp.DefaultLimits())

	c, rec := testutil.NewEchoContext(h.e, http.MethodGet, "/api/templates?id=modern", nil)
	require.NoError(t, h.h.Templates(c))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), `\documentclass`))
}

func TestTemplates_UnknownID(t *testing.T) {
	h := newHarness(t, otp.DefaultLimits())

	c, rec := testutil.NewEchoContext(h.e, http.MethodGet, "/api/templates?id=nope", nil)
	require.NoError(t, h.h.Templates(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
