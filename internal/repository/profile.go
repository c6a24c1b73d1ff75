// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/resumekit/resumekit/internal/models"
)

// UpsertPendingProfile stores the names collected at signup, keyed by email
// until the address is verified.
func (r *Repository) UpsertPendingProfile(ctx context.Context, email, firstName, lastName string, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO pending_profiles (email, first_name, last_name, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (email) DO UPDATE SET first_name = excluded.first_name, last_name = excluded.last_name`,
		email, firstName, lastName, now)
	return err
}

// GetPendingProfile retrieves the pending profile for an email.
func (r *Repository) GetPendingProfile(ctx context.Context, email string) (*models.PendingProfile, error) {
	var pending models.PendingProfile
	err := r.db.GetContext(ctx, &pending, `SELECT * FROM pending_profiles WHERE email = ?`, email)
	if err != nil {
		return nil, wrapError(err)
	}
	return &pending, nil
}

// DeletePendingProfile removes the pending profile for an email.
func (r *Repository) DeletePendingProfile(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pending_profiles WHERE email = ?`, email)
	return err
}

// UpsertProfile attaches display names to a verified account.
func (r *Repository) UpsertProfile(ctx context.Context, userID, firstName, lastName string, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, first_name, last_name, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET first_name = excluded.first_name, last_name = excluded.last_name`,
		userID, firstName, lastName, now)
	return err
}

// GetProfile retrieves the profile for a user.
func (r *Repository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.GetContext(ctx, &profile, `SELECT * FROM profiles WHERE user_id = ?`, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &profile, nil
}
