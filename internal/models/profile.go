// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package models

import "time"

// Profile holds the display names attached to a verified account.
type Profile struct {
	UserID    string    `db:"user_id" json:"user_id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PendingProfile holds names collected at signup, keyed by email until the
// address is verified. Promotion into profiles is best-effort and
// independent of the throttling ledger.
type PendingProfile struct {
	Email     string    `db:"email"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	CreatedAt time.Time `db:"created_at"`
}
