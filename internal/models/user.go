// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package models

import "time"

// User is an account managed by the local identity provider.
type User struct { //nolint:govet // fieldalignment: readability over optimization
	ID              string     `db:"id" json:"id"` // UUID
	Email           string     `db:"email" json:"email"`
	PasswordHash    string     `db:"password_hash" json:"-"`
	EmailVerified   bool       `db:"email_verified" json:"email_verified"`
	EmailVerifiedAt *time.Time `db:"email_verified_at" json:"email_verified_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}
