// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/resumekit/resumekit/internal/services/identity"
	"github.com/resumekit/resumekit/internal/services/otp"
)

// SignupRequest is the request body for creating an account.
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Signup creates an unverified account and dispatches the initial passcode.
func (h *Handlers) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	email := otp.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email and password required"})
	}

	ctx := c.Request().Context()

	user, err := h.identity.CreateAccount(ctx, email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "email already registered"})
		}
		slog.Error("failed to create account", "email", email, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create account"})
	}

	// Names are parked until the email is verified. Best-effort.
	if req.FirstName != "" || req.LastName != "" {
		if err := h.repo.UpsertPendingProfile(ctx, email, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName), user.CreatedAt); err != nil {
			slog.Warn("failed to store pending profile", "email", email, "error", err)
		}
	}

	if err := h.identity.SendOTP(ctx, email); err != nil {
		// The account exists; the client may use resend to retry.
		slog.Error("failed to dispatch signup passcode", "email", email, "error", err)
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"user":  user,
			"error": "failed to send verification code",
		})
	}

	return c.JSON(http.StatusCreated, map[string]any{"user": user})
}

// SigninRequest is the request body for password signin.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signin checks an email/password pair and issues a session cookie.
func (h *Handlers) Signin(c echo.Context) error {
	var req SigninRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	email := otp.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email and password required"})
	}

	user, err := h.identity.Authenticate(c.Request().Context(), email, req.Password)
	if err != nil {
		// Unknown email and wrong password answer identically.
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
	}
	if !user.EmailVerified {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "email_not_verified"})
	}

	cookie, err := h.sessions.Create(user.ID, user.Email)
	if err != nil {
		slog.Error("failed to create session on signin", "email", email, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// ResendRequest is the request body for requesting a new passcode.
type ResendRequest struct {
	Email string `json:"email"`
}

// Resend asks the throttle to dispatch a fresh passcode.
func (h *Handlers) Resend(c echo.Context) error {
	var req ResendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if otp.NormalizeEmail(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email required"})
	}

	err := h.throttle.RequestResend(c.Request().Context(), req.Email)
	if err == nil {
		return c.JSON(http.StatusOK, map[string]any{"dispatched": true})
	}

	var throttled *otp.ThrottledError
	if errors.As(err, &throttled) {
		return c.JSON(http.StatusTooManyRequests, map[string]any{
			"error":        fmt.Sprintf("Resend limit reached. Try again in %d seconds.", throttled.LockSeconds()),
			"locked":       true,
			"lock_seconds": throttled.LockSeconds(),
		})
	}

	slog.Error("resend failed", "error", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to send verification code"})
}

// VerifyRequest is the request body for submitting a passcode.
type VerifyRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// VerifyOTP runs a verification attempt through the lockout state machine.
func (h *Handlers) VerifyOTP(c echo.Context) error {
	var req VerifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	email := otp.NormalizeEmail(req.Email)
	token := strings.TrimSpace(req.Token)
	if email == "" || token == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email and token required"})
	}

	ctx := c.Request().Context()

	err := h.throttle.AttemptVerify(ctx, email, token)
	if err == nil {
		// Log the user in. Best-effort: verification stands even if the
		// cookie cannot be issued.
		if userID, lookupErr := h.identity.LookupUserIDByEmail(ctx, email); lookupErr == nil {
			if cookie, cookieErr := h.sessions.Create(userID, email); cookieErr == nil {
				c.SetCookie(cookie)
			} else {
				slog.Error("failed to create session after verification", "email", email, "error", cookieErr)
			}
		} else {
			slog.Error("failed to look up user after verification", "email", email, "error", lookupErr)
		}
		return c.JSON(http.StatusOK, map[string]any{"success": true})
	}

	var throttled *otp.ThrottledError
	if errors.As(err, &throttled) {
		return c.JSON(http.StatusLocked, map[string]any{
			"error":        fmt.Sprintf("Too many failed attempts. Try again in %d seconds.", throttled.LockSeconds()),
			"locked":       true,
			"lock_seconds": throttled.LockSeconds(),
			"allow_resend": true,
		})
	}

	var failed *otp.VerificationFailedError
	if errors.As(err, &failed) {
		return c.JSON(http.StatusUnauthorized, map[string]any{
			"error":        fmt.Sprintf("Invalid code. You have %d attempts remaining.", failed.Remaining),
			"failed_count": failed.FailedCount,
			"remaining":    failed.Remaining,
		})
	}

	if errors.Is(err, otp.ErrPermanentlyBlocked) {
		return c.JSON(http.StatusForbidden, map[string]any{
			"error":   "too_many_failed",
			"deleted": true,
		})
	}

	slog.Error("verification failed upstream", "error", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// Signout clears the session cookie.
func (h *Handlers) Signout(c echo.Context) error {
	c.SetCookie(h.sessions.Clear())
	return c.JSON(http.StatusOK, map[string]any{"success": true, "redirect": "/signin"})
}
