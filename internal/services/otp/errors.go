// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package otp

import (
	"errors"
	"fmt"
	"time"
)

// ErrPermanentlyBlocked is terminal: the attempt budget is exhausted and
// the account has been purged. A future signup starts clean.
var ErrPermanentlyBlocked = errors.New("too many failed attempts, account deleted")

// ThrottledError rejects a request while a lock is active.
type ThrottledError struct {
	RetryAfter time.Duration
	// AllowResend hints the client that requesting a new code is still an
	// option (set on verification locks).
	AllowResend bool
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("too many attempts, try again in %d seconds", e.LockSeconds())
}

// LockSeconds returns the remaining wait in whole seconds.
func (e *ThrottledError) LockSeconds() int {
	return int(e.RetryAfter / time.Second)
}

// VerificationFailedError reports a rejected code and the remaining
// attempt budget.
type VerificationFailedError struct {
	FailedCount int
	Remaining   int
}

func (e *VerificationFailedError) Error() string {
	return fmt.Sprintf("invalid code, %d attempts remaining", e.Remaining)
}

// UpstreamError wraps a transport failure talking to the ledger or the
// identity provider. Internals are logged, not shown to clients.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
