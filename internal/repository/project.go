// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/resumekit/resumekit/internal/models"
)

// CreateProject inserts a new resume project and fills in its assigned ID.
func (r *Repository) CreateProject(ctx context.Context, project *models.Project) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (user_id, name, template_id, data, step, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		project.UserID, project.Name, project.TemplateID, project.Data, project.Step, project.CreatedAt, project.UpdatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	project.ID = id
	return nil
}

// GetProject retrieves a project by id, scoped to its owner.
func (r *Repository) GetProject(ctx context.Context, id int64, userID string) (*models.Project, error) {
	var project models.Project
	err := r.db.GetContext(ctx, &project, `SELECT * FROM projects WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &project, nil
}

// ListProjects returns a user's projects, most recently updated first.
func (r *Repository) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	projects := []models.Project{}
	err := r.db.SelectContext(ctx, &projects, `SELECT * FROM projects WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateProject updates the mutable fields of a project, scoped to its owner.
// Returns ErrNotFound when the project does not exist or is owned by someone else.
func (r *Repository) UpdateProject(ctx context.Context, project *models.Project, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, template_id = ?, data = ?, step = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		project.Name, project.TemplateID, project.Data, project.Step, now, project.ID, project.UserID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	project.UpdatedAt = now
	return nil
}

// DeleteProject removes a project, scoped to its owner.
func (r *Repository) DeleteProject(ctx context.Context, id int64, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
