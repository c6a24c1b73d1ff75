// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package models

import "time"

// OTPCode stores the hashed one-time passcode most recently issued for an
// email address. Only one outstanding code per email; a new dispatch
// replaces the previous one.
type OTPCode struct {
	Email     string    `db:"email"`
	CodeHash  string    `db:"code_hash"` // SHA256 hash
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

// Expired reports whether the code is no longer redeemable at the given time.
func (c *OTPCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
