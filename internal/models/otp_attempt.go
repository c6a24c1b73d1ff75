// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package models

import "time"

// OTPAttempt is the per-email throttling ledger row. A row exists only
// while there is outstanding risk state (unresolved failures or resends)
// or an active lock; successful verification deletes it.
type OTPAttempt struct {
	Email        string     `db:"email"`
	FailedCount  int        `db:"failed_count"`
	LastFailedAt *time.Time `db:"last_failed_at"`
	ResendCount  int        `db:"resend_count"`
	LastResendAt *time.Time `db:"last_resend_at"`
	LockUntil    *time.Time `db:"lock_until"`
	CreatedAt    time.Time  `db:"created_at"`
}

// Locked reports whether the row carries an active lock at the given time.
// An expired lock_until is equivalent to "unlocked"; it is never cleared
// proactively, so every check compares against now.
func (a *OTPAttempt) Locked(now time.Time) bool {
	return a.LockUntil != nil && now.Before(*a.LockUntil)
}

// LockRemaining returns how long the active lock still holds, rounded up
// to whole seconds. Zero when no lock is active.
func (a *OTPAttempt) LockRemaining(now time.Time) time.Duration {
	if !a.Locked(now) {
		return 0
	}
	remaining := a.LockUntil.Sub(now)
	if rem := remaining % time.Second; rem > 0 {
		remaining += time.Second - rem
	}
	return remaining
}
