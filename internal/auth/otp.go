package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"auth-backend/internal/models"
	"auth-backend/internal/store"
)

const PurposeLogin = "login"

const otpDigits = 4

var otpMax = big.NewInt(10000)

// OTPEngine issues and validates single-use, time-boxed numeric codes.
type OTPEngine struct {
	otps store.OTPs
	ttl  time.Duration
	now  func() time.Time
}

func NewOTPEngine(otps store.OTPs, ttl time.Duration) *OTPEngine {
	return &OTPEngine{otps: otps, ttl: ttl, now: time.Now}
}

// Generate creates a new code for (userID, purpose) unless an unexpired one
// already exists. The caller is responsible for delivering the returned code.
func (e *OTPEngine) Generate(ctx context.Context, userID uuid.UUID, purpose string) (string, error) {
	latest, err := e.otps.FindLatest(ctx, userID, purpose)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", err
	}
	if latest != nil && e.now().Before(latest.ExpiresAt) {
		return "", ErrOTPAlreadyActive
	}

	code, err := randomCode()
	if err != nil {
		return "", err
	}

	otp := models.OTP{
		UserID:    userID,
		Code:      &code,
		Purpose:   purpose,
		ExpiresAt: e.now().Add(e.ttl),
		CreatedAt: e.now(),
	}
	if err := e.otps.Create(ctx, &otp); err != nil {
		return "", err
	}

	return code, nil
}

// Validate consumes the latest code for (userID, purpose). The record is
// invalidated both on success and on a correct-but-late submission, so a code
// can never be accepted twice. Mismatch is checked before expiry: a wrong
// code on an expired record reports ErrOTPMismatch.
func (e *OTPEngine) Validate(ctx context.Context, userID uuid.UUID, purpose string, submitted string) error {
	latest, err := e.otps.FindLatest(ctx, userID, purpose)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrOTPNotFound
		}
		return err
	}

	if latest.Code == nil {
		return ErrOTPNotFound
	}
	if subtle.ConstantTimeCompare([]byte(*latest.Code), []byte(submitted)) != 1 {
		return ErrOTPMismatch
	}

	if !e.now().Before(latest.ExpiresAt) {
		if err := e.otps.Invalidate(ctx, latest.ID); err != nil {
			return err
		}
		return ErrOTPExpired
	}

	if err := e.otps.Invalidate(ctx, latest.ID); err != nil {
		return err
	}
	return nil
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, otpMax)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}
