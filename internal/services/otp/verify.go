// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package otp

import (
	"context"
	"log/slog"
)

// AttemptVerify runs one verification attempt through the lockout state
// machine. A nil return means the code was accepted and the ledger row
// cleared. Otherwise the error is one of:
//
//   - *ThrottledError: an active lock rejected the attempt, no counters moved
//   - *VerificationFailedError: code rejected, budget remains
//   - ErrPermanentlyBlocked: budget exhausted, account purged
//   - *UpstreamError: a ledger write could not be persisted
//
// Any provider verification error counts as a failed attempt (fail-closed):
// a transient backend fault must never let a code through unchecked.
func (s *Service) AttemptVerify(ctx context.Context, email, code string) error {
	email = NormalizeEmail(email)

	unlock := s.locks.lock(email)
	defer unlock()

	now := s.now().UTC()
	record := s.readLedger(ctx, email)

	if record != nil && record.Locked(now) {
		return &ThrottledError{RetryAfter: record.LockRemaining(now), AllowResend: true}
	}

	if verifyErr := s.verifyUpstream(ctx, email, code); verifyErr == nil {
		return s.onVerified(ctx, email)
	}

	// Record the failure. Failures older than the cooldown are irrelevant,
	// not cumulative: the counter restarts at 1.
	failedCount := 1
	switch {
	case record == nil:
		if err := s.writeLedger(ctx, "create failed attempt", func(ctx context.Context) error {
			return s.ledger.CreateFailedAttempt(ctx, email, now)
		}); err != nil {
			return err
		}

	case record.LastFailedAt == nil || now.Sub(*record.LastFailedAt) > s.limits.Cooldown:
		if err := s.writeLedger(ctx, "reset failed count", func(ctx context.Context) error {
			return s.ledger.UpdateFailedCount(ctx, email, 1, now)
		}); err != nil {
			return err
		}

	default:
		failedCount = record.FailedCount + 1
		if err := s.writeLedger(ctx, "update failed count", func(ctx context.Context) error {
			return s.ledger.UpdateFailedCount(ctx, email, failedCount, now)
		}); err != nil {
			return err
		}
	}

	// The temporary lock fires only on exactly the threshold count. The
	// counter is NOT reset by the lock, so a failure after the lock expires
	// lands on the purge threshold: the 30s cooldown is a final warning.
	if failedCount == s.limits.TempLockAfter {
		until := now.Add(s.limits.TempLock)
		if err := s.writeLedger(ctx, "establish temp lock", func(ctx context.Context) error {
			return s.ledger.LockOTPAttempt(ctx, email, until)
		}); err != nil {
			return err
		}
		return &ThrottledError{RetryAfter: s.limits.TempLock, AllowResend: true}
	}

	if failedCount >= s.limits.MaxFailed {
		s.purge(ctx, email)
		return ErrPermanentlyBlocked
	}

	remaining := s.limits.MaxFailed - failedCount
	return &VerificationFailedError{FailedCount: failedCount, Remaining: remaining}
}

// verifyUpstream submits the code to the identity provider. Not retried:
// a verification is the attempt itself, and replaying it would consume a
// consumed code.
func (s *Service) verifyUpstream(ctx context.Context, email, code string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return s.provider.VerifyOTP(ctx, email, code)
}

// onVerified clears the ledger row and runs the registered post-conditions.
func (s *Service) onVerified(ctx context.Context, email string) error {
	if err := s.writeLedger(ctx, "clear attempt record", func(ctx context.Context) error {
		return s.ledger.DeleteOTPAttempt(ctx, email)
	}); err != nil {
		// The verification itself succeeded; a stale row only means the
		// next failure starts from old counters.
		slog.Error("failed to clear attempt record after verification", "email", email, "error", err)
	}

	if s.afterVerified != nil {
		if err := s.afterVerified(ctx, email); err != nil {
			slog.Error("post-verification side effects failed", "email", email, "error", err)
		}
	}
	return nil
}
