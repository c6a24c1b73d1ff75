// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

// Package otp implements the attempt-throttling core guarding account
// verification: per-email failure and resend counters, escalating lockouts,
// and the purge of accounts that exhaust their attempt budget.
package otp

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/resumekit/resumekit/internal/config"
	"github.com/resumekit/resumekit/internal/models"
	"github.com/resumekit/resumekit/internal/repository"
	"github.com/sethvargo/go-retry"
)

// IdentityProvider is the capability set the throttle needs from the
// identity backend. Absence on lookup is reported as repository.ErrNotFound.
type IdentityProvider interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) error
	LookupUserIDByEmail(ctx context.Context, email string) (string, error)
	DeleteUser(ctx context.Context, userID string) error
}

// UserRowDeleter is the optional second deletion tier: a direct removal of
// the underlying user row, used when the provider-level deletion errors.
type UserRowDeleter interface {
	DeleteUserRow(ctx context.Context, userID string) error
}

// Limits holds the throttling thresholds.
type Limits struct { //nolint:govet // fieldalignment: readability over optimization
	MaxFailed     int           // permanent purge at this many consecutive failures
	TempLockAfter int           // temporary lock exactly at this failure count
	TempLock      time.Duration // temporary lock duration
	Cooldown      time.Duration // failures older than this reset the counter
	ResendLimit   int           // resend count that triggers the resend lock
	ResendLock    time.Duration // resend lock duration
}

// DefaultLimits returns the product thresholds.
func DefaultLimits() Limits {
	return Limits{
		MaxFailed:     4,
		TempLockAfter: 3,
		TempLock:      30 * time.Second,
		Cooldown:      15 * time.Minute,
		ResendLimit:   3,
		ResendLock:    12 * time.Hour,
	}
}

// LimitsFromConfig converts the config section into Limits.
func LimitsFromConfig(cfg config.OTPConfig) Limits {
	return Limits{
		MaxFailed:     cfg.MaxFailed,
		TempLockAfter: cfg.TempLockAfter,
		TempLock:      cfg.TempLock(),
		Cooldown:      cfg.Cooldown(),
		ResendLimit:   cfg.ResendLimit,
		ResendLock:    cfg.ResendLock(),
	}
}

const (
	// opTimeout bounds every ledger and provider call; nothing here may
	// block indefinitely.
	opTimeout = 5 * time.Second
	// writeBackoff is the pause before the single retry of a failed
	// ledger write.
	writeBackoff = 100 * time.Millisecond
)

// Service is the throttling core. All mutations for one email are
// serialized through a per-key mutex, closing the read-modify-write race
// without changing any threshold semantics.
type Service struct {
	ledger   *repository.Repository
	provider IdentityProvider
	limits   Limits
	locks    keyedMutex

	// afterVerified runs the best-effort post-conditions of a successful
	// verification. Its failure is logged and never changes the result.
	afterVerified func(ctx context.Context, email string) error

	now func() time.Time
}

// NewService creates a new throttling service.
func NewService(ledger *repository.Repository, provider IdentityProvider, limits Limits) *Service {
	return &Service{
		ledger:   ledger,
		provider: provider,
		limits:   limits,
		now:      time.Now,
	}
}

// OnVerified registers the post-verification side effects.
func (s *Service) OnVerified(fn func(ctx context.Context, email string) error) {
	s.afterVerified = fn
}

// NormalizeEmail canonicalizes an email address for use as a ledger key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// readLedger fetches the ledger row. Absence and read failures both come
// back as a nil record: a broken read must not lock users out, so the
// caller proceeds optimistically (fail-open on ledger reads only).
func (s *Service) readLedger(ctx context.Context, email string) *models.OTPAttempt {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	attempt, err := s.ledger.GetOTPAttempt(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Warn("otp ledger read failed, proceeding without record", "email", email, "error", err)
		}
		return nil
	}
	return attempt
}

// writeLedger runs a ledger mutation with a single retry. Writes are
// fail-closed: losing one would weaken throttling, so failures surface.
func (s *Service) writeLedger(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err := retry.Do(ctx, retry.WithMaxRetries(1, retry.NewConstant(writeBackoff)), func(ctx context.Context) error {
		return retry.RetryableError(fn(ctx))
	})
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	return nil
}
