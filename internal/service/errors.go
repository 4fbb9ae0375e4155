package service

import "errors"

// Domain failures surfaced by the orchestration layer. Handlers map these to
// HTTP statuses; anything else is an internal error. Credential-related
// values stay deliberately vague so responses cannot be used to probe which
// accounts or codes exist.
var (
	ErrBadRequest           = errors.New("missing required fields")
	ErrInvalidCredentials   = errors.New("invalid login credentials")
	ErrVerificationRequired = errors.New("email verification required")
	ErrInvalidOTP           = errors.New("invalid otp")
	ErrOTPExpired           = errors.New("otp has expired")
	ErrOTPAlreadyActive     = errors.New("otp already generated")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrEmailTaken           = errors.New("email already in use")
)
