package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"auth-backend/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Users is the read/write surface the auth flows need from user persistence.
type Users interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// OTPs persists one-time codes. FindLatest returns the most recently created
// record for the pair regardless of its expiry or consumed state.
type OTPs interface {
	Create(ctx context.Context, otp *models.OTP) error
	FindLatest(ctx context.Context, userID uuid.UUID, purpose string) (*models.OTP, error)
	Invalidate(ctx context.Context, otpID uint) error
}
