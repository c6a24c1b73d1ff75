// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/resumekit/resumekit/internal/models"
)

// CreateUser inserts a new user row.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, email_verified, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.PasswordHash, user.EmailVerified, user.CreatedAt)
	return err
}

// GetUserByEmail retrieves a user by email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = ?`, email)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserIDByEmail resolves a user id from an email address.
func (r *Repository) GetUserIDByEmail(ctx context.Context, email string) (string, error) {
	var id string
	err := r.db.GetContext(ctx, &id, `SELECT id FROM users WHERE email = ?`, email)
	if err != nil {
		return "", wrapError(err)
	}
	return id, nil
}

// EmailExists reports whether a user with the given email exists.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT count(*) FROM users WHERE email = ?`, email)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkEmailVerified flags the user's email address as confirmed.
func (r *Repository) MarkEmailVerified(ctx context.Context, userID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET email_verified = 1, email_verified_at = ? WHERE id = ?`,
		at, userID)
	return err
}

// DeleteUserRow removes a user row directly. Dependent rows (profiles,
// projects) go with it via foreign keys. This is the purge coordinator's
// fallback tier when the provider-level deletion fails.
func (r *Repository) DeleteUserRow(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	return err
}
