// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/resumekit/resumekit/internal/models"
	"github.com/resumekit/resumekit/internal/repository"
	"github.com/resumekit/resumekit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProject(t *testing.T, repo *repository.Repository, userID, name string) *models.Project {
	t.Helper()
	now := time.Now().UTC()
	project := &models.Project{
		UserID:    userID,
		Name:      name,
		Data:      `{}`,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.CreateProject(context.Background(), project))
	return project
}

func TestCreateProject(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	user := testutil.NewTestUser(t, repo, "test@example.com")

	project := newProject(t, repo, user.ID, "My Resume")

	assert.NotZero(t, project.ID)

	got, err := repo.GetProject(context.Background(), project.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "My Resume", got.Name)
	assert.Equal(t, `{}`, got.Data)
}

func TestGetProject_WrongOwner(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	owner := testutil.NewTestUser(t, repo, "owner@example.com")
	other := testutil.NewTestUser(t, repo, "other@example.com")

	project := newProject(t, repo, owner.ID, "My Resume")

	_, err := repo.GetProject(context.Background(), project.ID, other.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListProjects_NewestFirst(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "test@example.com")

	first := newProject(t, repo, user.ID, "First")
	second := newProject(t, repo, user.ID, "Second")

	// Touch the first project so it becomes the most recently updated.
	first.Name = "First (edited)"
	require.NoError(t, repo.UpdateProject(ctx, first, time.Now().UTC().Add(time.Minute)))

	projects, err := repo.ListProjects(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, first.ID, projects[0].ID)
	assert.Equal(t, second.ID, projects[1].ID)
}

func TestListProjects_Empty(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	user := testutil.NewTestUser(t, repo, "test@example.com")

	projects, err := repo.ListProjects(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestUpdateProject(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "test@example.com")

	project := newProject(t, repo, user.ID, "My Resume")

	templateID := "modern"
	project.Name = "Renamed"
	project.TemplateID = &templateID
	project.Data = `{"sections":[]}`
	project.Step = 2

	err := repo.UpdateProject(ctx, project, time.Now().UTC())
	require.NoError(t, err)

	got, err := repo.GetProject(ctx, project.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	require.NotNil(t, got.TemplateID)
	assert.Equal(t, "modern", *got.TemplateID)
	assert.Equal(t, 2, got.Step)
}

func TestUpdateProject_WrongOwner(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	owner := testutil.NewTestUser(t, repo, "owner@example.com")
	other := testutil.NewTestUser(t, repo, "other@example.com")

	project := newProject(t, repo, owner.ID, "My Resume")
	project.UserID = other.ID

	err := repo.UpdateProject(context.Background(), project, time.Now().UTC())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteProject(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "test@example.com")

	project := newProject(t, repo, user.ID, "My Resume")

	require.NoError(t, repo.DeleteProject(ctx, project.ID, user.ID))

	_, err := repo.GetProject(ctx, project.ID, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.DeleteProject(ctx, project.ID, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
