package auth

import "errors"

// OTP errors are distinguished on purpose: the feedback goes only to the
// account owner's own login flow.
var (
	ErrOTPAlreadyActive = errors.New("otp already active")
	ErrOTPNotFound      = errors.New("otp not found")
	ErrOTPMismatch      = errors.New("otp mismatch")
	ErrOTPExpired       = errors.New("otp expired")
)

// Token errors collapse to one value: callers of Verify* cannot tell a
// tampered token from an expired or malformed one.
var ErrInvalidToken = errors.New("invalid token")
