// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestResend_FirstTwoDispatch(t *testing.T) {
	provider := &fakeProvider{}
	svc, repo, _ := newTestService(t, provider)
	ctx := context.Background()

	require.NoError(t, svc.RequestResend(ctx, "b@x.com"))
	require.NoError(t, svc.RequestResend(ctx, "b@x.com"))

	assert.Equal(t, 2, provider.sendCalls)

	record, err := repo.GetOTPAttempt(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, 2, record.ResendCount)
	assert.Nil(t, record.LockUntil)
}

func TestRequestResend_ThirdLocksWithoutDispatch(t *testing.T) {
	provider := &fakeProvider{}
	svc, repo, clock := newTestService(t, provider)
	ctx := context.Background()

	require.NoError(t, svc.RequestResend(ctx, "b@x.com"))
	require.NoError(t, svc.RequestResend(ctx, "b@x.com"))

	err := svc.RequestResend(ctx, "b@x.com")

	var throttled *ThrottledError
	require.ErrorAs(t, err, &throttled)
	assert.Equal(t, 12*60*60, throttled.LockSeconds())
	assert.False(t, throttled.AllowResend)

	// The triggering request did not dispatch.
	assert.Equal(t, 2, provider.sendCalls)

	record, getErr := repo.GetOTPAttempt(ctx, "b@x.com")
	require.NoError(t, getErr)
	assert.Equal(t, 3, record.ResendCount)
	require.NotNil(t, record.LockUntil)
	assert.True(t, record.Locked(clock.Now()))
}

func TestRequestResend_WhileLocked(t *testing.T) {
	provider := &fakeProvider{}
	svc, repo, _ := newTestService(t, provider)
	ctx := context.Background()

	for range 3 {
		_ = svc.RequestResend(ctx, "b@x.com")
	}

	err := svc.RequestResend(ctx, "b@x.com")

	var throttled *ThrottledError
	require.ErrorAs(t, err, &throttled)
	assert.InDelta(t, 12*60*60, throttled.LockSeconds(), 1)

	// A rejected request mutates nothing.
	record, getErr := repo.GetOTPAttempt(ctx, "b@x.com")
	require.NoError(t, getErr)
	assert.Equal(t, 3, record.ResendCount)
	assert.Equal(t, 2, provider.sendCalls)
}

func TestRequestResend_AllowedAgainAfterLockExpiry(t *testing.T) {
	provider := &fakeProvider{}
	svc, _, clock := newTestService(t, provider)
	ctx := context.Background()

	for range 3 {
		_ = svc.RequestResend(ctx, "b@x.com")
	}

	clock.Advance(12*time.Hour + time.Second)

	// Expired lock is equivalent to unlocked; the counter is already past
	// the limit so the request re-locks instead of dispatching.
	err := svc.RequestResend(ctx, "b@x.com")
	var throttled *ThrottledError
	require.ErrorAs(t, err, &throttled)
	assert.Equal(t, 2, provider.sendCalls)
}

func TestRequestResend_DispatchFailureAfterCount(t *testing.T) {
	provider := &fakeProvider{sendErr: errors.New("smtp down")}
	svc, repo, _ := newTestService(t, provider)
	ctx := context.Background()

	err := svc.RequestResend(ctx, "b@x.com")

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)

	// The counter was incremented before the dispatch attempt.
	record, getErr := repo.GetOTPAttempt(ctx, "b@x.com")
	require.NoError(t, getErr)
	assert.Equal(t, 1, record.ResendCount)
}

func TestRequestResend_DispatchRetriedOnce(t *testing.T) {
	provider := &fakeProvider{sendFailures: 1}
	svc, _, _ := newTestService(t, provider)

	err := svc.RequestResend(context.Background(), "b@x.com")

	require.NoError(t, err)
	assert.Equal(t, 2, provider.sendCalls)
}

func TestRequestResend_NormalizesEmail(t *testing.T) {
	provider := &fakeProvider{}
	svc, repo, _ := newTestService(t, provider)
	ctx := context.Background()

	require.NoError(t, svc.RequestResend(ctx, "  B@X.Com "))
	require.NoError(t, svc.RequestResend(ctx, "b@x.com"))

	record, err := repo.GetOTPAttempt(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, 2, record.ResendCount)
}
