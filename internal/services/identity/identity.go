// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

// Package identity is the local identity provider: it owns accounts,
// passcode issuance and passcode validation. The throttling core talks to
// it only through the otp.IdentityProvider interface.
package identity

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/resumekit/resumekit/internal/models"
	"github.com/resumekit/resumekit/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// CodeLength is the number of digits in an issued passcode.
const CodeLength = 6

var (
	// ErrEmailTaken is returned when signing up an already registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrCodeInvalid is returned when the submitted passcode does not match.
	ErrCodeInvalid = errors.New("invalid passcode")
	// ErrCodeExpired is returned when the outstanding passcode has expired.
	ErrCodeExpired = errors.New("passcode expired")
	// ErrNoSuchUser is returned when a passcode is requested for an
	// unregistered address.
	ErrNoSuchUser = errors.New("no such user")
)

// Mailer dispatches passcodes to the user.
type Mailer interface {
	SendOTPCode(ctx context.Context, toEmail, code string) error
}

// Service implements the identity provider against the local database.
type Service struct {
	repo    *repository.Repository
	mailer  Mailer
	codeTTL time.Duration

	now func() time.Time
}

// NewService creates a new identity service.
func NewService(repo *repository.Repository, mailer Mailer, codeTTL time.Duration) *Service {
	return &Service{
		repo:    repo,
		mailer:  mailer,
		codeTTL: codeTTL,
		now:     time.Now,
	}
}

// CreateAccount registers a new, unverified user.
func (s *Service) CreateAccount(ctx context.Context, email, password string) (*models.User, error) {
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

// SendOTP issues a fresh passcode for a registered email and dispatches it.
// A new code replaces any outstanding one.
func (s *Service) SendOTP(ctx context.Context, email string) error {
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("checking email: %w", err)
	}
	if !exists {
		return ErrNoSuchUser
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generating passcode: %w", err)
	}

	now := s.now().UTC()
	if err := s.repo.UpsertOTPCode(ctx, email, HashCode(code), now.Add(s.codeTTL), now); err != nil {
		return fmt.Errorf("storing passcode: %w", err)
	}

	return s.mailer.SendOTPCode(ctx, email, code)
}

// VerifyOTP checks a submitted passcode. The code is consumed on success.
// Any non-nil return counts as a failed attempt for the caller.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) error {
	stored, err := s.repo.GetOTPCode(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCodeInvalid
		}
		return fmt.Errorf("loading passcode: %w", err)
	}

	if stored.Expired(s.now().UTC()) {
		return ErrCodeExpired
	}

	if subtle.ConstantTimeCompare([]byte(stored.CodeHash), []byte(HashCode(code))) != 1 {
		return ErrCodeInvalid
	}

	return s.repo.DeleteOTPCode(ctx, email)
}

// LookupUserIDByEmail resolves a user id. Returns repository.ErrNotFound
// when the address is unregistered.
func (s *Service) LookupUserIDByEmail(ctx context.Context, email string) (string, error) {
	return s.repo.GetUserIDByEmail(ctx, email)
}

// DeleteUser removes an account and everything hanging off it.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	return s.repo.DeleteUserRow(ctx, userID)
}

// DeleteUserRow is the low-level fallback used when the provider-level
// deletion errors out. For the local provider both tiers end at the same
// row, but the purge coordinator still walks them in order.
func (s *Service) DeleteUserRow(ctx context.Context, userID string) error {
	return s.repo.DeleteUserRow(ctx, userID)
}

// FinalizeVerification runs the post-verification side effects: flag the
// email as confirmed and promote the pending profile. Best-effort; the
// caller logs failures but never changes its result.
func (s *Service) FinalizeVerification(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}

	now := s.now().UTC()
	if err := s.repo.MarkEmailVerified(ctx, user.ID, now); err != nil {
		return fmt.Errorf("marking verified: %w", err)
	}

	pending, err := s.repo.GetPendingProfile(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("loading pending profile: %w", err)
	}

	if err := s.repo.UpsertProfile(ctx, user.ID, pending.FirstName, pending.LastName, now); err != nil {
		return fmt.Errorf("promoting profile: %w", err)
	}
	return s.repo.DeletePendingProfile(ctx, email)
}

// Authenticate checks an email/password pair and returns the account.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("password mismatch: %w", err)
	}
	return user, nil
}

// HashCode computes the SHA256 hash of a passcode for storage.
func HashCode(code string) string {
	hash := sha256.Sum256([]byte(code))
	return hex.EncodeToString(hash[:])
}

// generateCode produces a random numeric passcode.
func generateCode() (string, error) {
	max := big.NewInt(1)
	for range CodeLength {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", CodeLength, n), nil
}
