// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/resumekit/resumekit/internal/repository"
	"github.com/resumekit/resumekit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertOTPCode_ReplacesPrevious(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.UpsertOTPCode(ctx, "a@example.com", "hash-1", now.Add(10*time.Minute), now))
	require.NoError(t, repo.UpsertOTPCode(ctx, "a@example.com", "hash-2", now.Add(10*time.Minute), now))

	code, err := repo.GetOTPCode(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash-2", code.CodeHash)
}

func TestGetOTPCode_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetOTPCode(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteExpiredOTPCodes(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.UpsertOTPCode(ctx, "old@example.com", "hash", now.Add(-time.Minute), now))
	require.NoError(t, repo.UpsertOTPCode(ctx, "new@example.com", "hash", now.Add(10*time.Minute), now))

	require.NoError(t, repo.DeleteExpiredOTPCodes(ctx, now))

	_, err := repo.GetOTPCode(ctx, "old@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetOTPCode(ctx, "new@example.com")
	require.NoError(t, err)
}

func TestPendingProfileLifecycle(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.UpsertPendingProfile(ctx, "a@example.com", "Ada", "Lovelace", now))

	pending, err := repo.GetPendingProfile(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", pending.FirstName)

	require.NoError(t, repo.DeletePendingProfile(ctx, "a@example.com"))

	_, err = repo.GetPendingProfile(ctx, "a@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
