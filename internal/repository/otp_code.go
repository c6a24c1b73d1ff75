// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/resumekit/resumekit/internal/models"
)

// UpsertOTPCode stores the hashed passcode for an email, replacing any
// previously issued one.
func (r *Repository) UpsertOTPCode(ctx context.Context, email, codeHash string, expiresAt, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO otp_codes (email, code_hash, expires_at, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (email) DO UPDATE SET code_hash = excluded.code_hash, expires_at = excluded.expires_at, created_at = excluded.created_at`,
		email, codeHash, expiresAt, now)
	return err
}

// GetOTPCode retrieves the outstanding passcode for an email.
func (r *Repository) GetOTPCode(ctx context.Context, email string) (*models.OTPCode, error) {
	var code models.OTPCode
	err := r.db.GetContext(ctx, &code, `SELECT * FROM otp_codes WHERE email = ?`, email)
	if err != nil {
		return nil, wrapError(err)
	}
	return &code, nil
}

// DeleteOTPCode removes the outstanding passcode for an email.
func (r *Repository) DeleteOTPCode(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM otp_codes WHERE email = ?`, email)
	return err
}

// DeleteExpiredOTPCodes removes passcodes that are past their expiry.
func (r *Repository) DeleteExpiredOTPCodes(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM otp_codes WHERE expires_at < ?`, now)
	return err
}
