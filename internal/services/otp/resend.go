// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package otp

import (
	"context"

	"github.com/sethvargo/go-retry"
)

// RequestResend decides whether a new passcode may be dispatched for the
// email and updates the resend counters. A nil return means the code was
// dispatched.
//
// The counters are incremented before the dispatch, so a failed dispatch
// still consumes budget. That trade-off is deliberate: abuse prevention
// over user convenience.
func (s *Service) RequestResend(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	unlock := s.locks.lock(email)
	defer unlock()

	now := s.now().UTC()
	record := s.readLedger(ctx, email)

	if record != nil && record.Locked(now) {
		return &ThrottledError{RetryAfter: record.LockRemaining(now)}
	}

	switch {
	case record == nil:
		if err := s.writeLedger(ctx, "create resend attempt", func(ctx context.Context) error {
			return s.ledger.CreateResendAttempt(ctx, email, now)
		}); err != nil {
			return err
		}

	default:
		next := record.ResendCount + 1
		if next >= s.limits.ResendLimit {
			// The request that crosses the limit establishes the lock and
			// is itself rejected: no dispatch on this call.
			until := now.Add(s.limits.ResendLock)
			if err := s.writeLedger(ctx, "establish resend lock", func(ctx context.Context) error {
				return s.ledger.LockOTPAttemptWithResend(ctx, email, next, now, until)
			}); err != nil {
				return err
			}
			return &ThrottledError{RetryAfter: s.limits.ResendLock}
		}

		if err := s.writeLedger(ctx, "update resend count", func(ctx context.Context) error {
			return s.ledger.UpdateResendCount(ctx, email, next, now)
		}); err != nil {
			return err
		}
	}

	return s.dispatch(ctx, email)
}

// dispatch asks the identity provider to send a passcode, retrying the
// call once on failure.
func (s *Service) dispatch(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err := retry.Do(ctx, retry.WithMaxRetries(1, retry.NewConstant(writeBackoff)), func(ctx context.Context) error {
		return retry.RetryableError(s.provider.SendOTP(ctx, email))
	})
	if err != nil {
		return &UpstreamError{Op: "send otp", Err: err}
	}
	return nil
}
