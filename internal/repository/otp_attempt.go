// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/resumekit/resumekit/internal/models"
)

// GetOTPAttempt retrieves the throttling ledger row for an email.
// Returns ErrNotFound when no row exists.
func (r *Repository) GetOTPAttempt(ctx context.Context, email string) (*models.OTPAttempt, error) {
	var attempt models.OTPAttempt
	err := r.db.GetContext(ctx, &attempt, `SELECT * FROM otp_attempts WHERE email = ?`, email)
	if err != nil {
		return nil, wrapError(err)
	}
	return &attempt, nil
}

// CreateFailedAttempt inserts a fresh ledger row recording the first
// verification failure for an email.
func (r *Repository) CreateFailedAttempt(ctx context.Context, email string, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO otp_attempts (email, failed_count, last_failed_at, created_at) VALUES (?, 1, ?, ?)`,
		email, now, now)
	return err
}

// UpdateFailedCount sets the failure counter and timestamp on an existing row.
func (r *Repository) UpdateFailedCount(ctx context.Context, email string, count int, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE otp_attempts SET failed_count = ?, last_failed_at = ? WHERE email = ?`,
		count, now, email)
	return err
}

// CreateResendAttempt inserts a fresh ledger row recording the first
// resend request for an email.
func (r *Repository) CreateResendAttempt(ctx context.Context, email string, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO otp_attempts (email, resend_count, last_resend_at, created_at) VALUES (?, 1, ?, ?)`,
		email, now, now)
	return err
}

// UpdateResendCount sets the resend counter and timestamp on an existing row.
func (r *Repository) UpdateResendCount(ctx context.Context, email string, count int, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE otp_attempts SET resend_count = ?, last_resend_at = ? WHERE email = ?`,
		count, now, email)
	return err
}

// LockOTPAttempt sets lock_until on an existing row. Both throttles write
// this same field; whichever wrote last wins.
func (r *Repository) LockOTPAttempt(ctx context.Context, email string, until time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE otp_attempts SET lock_until = ? WHERE email = ?`,
		until, email)
	return err
}

// LockOTPAttemptWithResend records the resend that crossed the limit and
// establishes the resend lock in one statement.
func (r *Repository) LockOTPAttemptWithResend(ctx context.Context, email string, count int, now, until time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE otp_attempts SET resend_count = ?, last_resend_at = ?, lock_until = ? WHERE email = ?`,
		count, now, until, email)
	return err
}

// DeleteOTPAttempt removes the ledger row for an email. Deleting a missing
// row is not an error.
func (r *Repository) DeleteOTPAttempt(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM otp_attempts WHERE email = ?`, email)
	return err
}
