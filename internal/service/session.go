package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"auth-backend/internal/auth"
	"auth-backend/internal/email"
	"auth-backend/internal/models"
	"auth-backend/internal/store"
)

// SessionService implements the login, OTP and refresh flows. Every flow
// follows the same skeleton: required inputs, user lookup, verification
// check, flow-specific check, token issuance.
type SessionService struct {
	users  store.Users
	otp    *auth.OTPEngine
	tokens *auth.TokenIssuer
	sender email.Sender
}

func NewSessionService(users store.Users, otp *auth.OTPEngine, tokens *auth.TokenIssuer, sender email.Sender) *SessionService {
	return &SessionService{users: users, otp: otp, tokens: tokens, sender: sender}
}

func (s *SessionService) LoginWithPassword(ctx context.Context, emailAddr, password string) (*models.User, auth.TokenPair, error) {
	if emailAddr == "" || password == "" {
		return nil, auth.TokenPair{}, ErrBadRequest
	}

	user, err := s.verifiedUserByEmail(ctx, emailAddr)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, auth.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssueTokenPair(user.ID.String())
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return user, pair, nil
}

func (s *SessionService) LoginWithOTP(ctx context.Context, emailAddr, code string) (*models.User, auth.TokenPair, error) {
	if emailAddr == "" || code == "" {
		return nil, auth.TokenPair{}, ErrBadRequest
	}

	user, err := s.verifiedUserByEmail(ctx, emailAddr)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	if err := s.otp.Validate(ctx, user.ID, auth.PurposeLogin, code); err != nil {
		switch {
		case errors.Is(err, auth.ErrOTPNotFound), errors.Is(err, auth.ErrOTPMismatch):
			return nil, auth.TokenPair{}, ErrInvalidOTP
		case errors.Is(err, auth.ErrOTPExpired):
			return nil, auth.TokenPair{}, ErrOTPExpired
		default:
			return nil, auth.TokenPair{}, err
		}
	}

	pair, err := s.tokens.IssueTokenPair(user.ID.String())
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return user, pair, nil
}

// GenerateOTP issues a fresh login code and attempts delivery. The code is
// returned to the caller regardless of delivery outcome.
func (s *SessionService) GenerateOTP(ctx context.Context, emailAddr string) (string, error) {
	if emailAddr == "" {
		return "", ErrBadRequest
	}

	user, err := s.verifiedUserByEmail(ctx, emailAddr)
	if err != nil {
		return "", err
	}

	code, err := s.otp.Generate(ctx, user.ID, auth.PurposeLogin)
	if err != nil {
		if errors.Is(err, auth.ErrOTPAlreadyActive) {
			return "", ErrOTPAlreadyActive
		}
		return "", err
	}

	if err := s.sender.SendOTP(user.Email, code); err != nil {
		log.Printf("otp send error: %v", err)
	}

	return code, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrInvalidRefreshToken
	}

	subject, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}

	return s.tokens.IssueAccessToken(user.ID.String())
}

func (s *SessionService) verifiedUserByEmail(ctx context.Context, emailAddr string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// indistinguishable from a wrong password
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsVerified {
		return nil, ErrVerificationRequired
	}
	return user, nil
}

func normalizeEmail(emailAddr string) string {
	return strings.ToLower(strings.TrimSpace(emailAddr))
}
