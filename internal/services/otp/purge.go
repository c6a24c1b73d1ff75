// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package otp

import (
	"context"
	"errors"
	"log/slog"

	"github.com/resumekit/resumekit/internal/repository"
)

// purge deletes the account behind an email after the attempt budget is
// exhausted. Deletion failures are logged, never surfaced: the caller
// reports the permanent block regardless, and the ledger row is always
// removed so a future signup starts clean.
func (s *Service) purge(ctx context.Context, email string) {
	s.deleteAccount(ctx, email)

	if err := s.writeLedger(ctx, "delete attempt record", func(ctx context.Context) error {
		return s.ledger.DeleteOTPAttempt(ctx, email)
	}); err != nil {
		slog.Error("failed to delete attempt record during purge", "email", email, "error", err)
	}
}

// deleteAccount resolves and removes the identity-provider account.
// Two tiers: the provider-level deletion first, then a direct removal of
// the user row if the provider call itself errors.
func (s *Service) deleteAccount(ctx context.Context, email string) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	userID, err := s.provider.LookupUserIDByEmail(ctx, email)
	if err != nil {
		// Absence is tolerated: there is nothing to delete.
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Error("user lookup failed during purge", "email", email, "error", err)
		}
		return
	}

	if err := s.provider.DeleteUser(ctx, userID); err != nil {
		slog.Error("provider account deletion failed, falling back to row delete", "email", email, "error", err)

		deleter, ok := s.provider.(UserRowDeleter)
		if !ok {
			return
		}
		if err := deleter.DeleteUserRow(ctx, userID); err != nil {
			slog.Error("fallback user row deletion failed", "email", email, "error", err)
		}
	}
}
