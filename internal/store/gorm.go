package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"auth-backend/internal/models"
)

type GormUsers struct {
	DB *gorm.DB
}

func NewGormUsers(db *gorm.DB) *GormUsers {
	return &GormUsers{DB: db}
}

func (s *GormUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormUsers) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormUsers) Create(ctx context.Context, user *models.User) error {
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

type GormOTPs struct {
	DB *gorm.DB
}

func NewGormOTPs(db *gorm.DB) *GormOTPs {
	return &GormOTPs{DB: db}
}

func (s *GormOTPs) Create(ctx context.Context, otp *models.OTP) error {
	return s.DB.WithContext(ctx).Create(otp).Error
}

func (s *GormOTPs) FindLatest(ctx context.Context, userID uuid.UUID, purpose string) (*models.OTP, error) {
	var otp models.OTP
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND purpose = ?", userID, purpose).
		Order("created_at desc").
		First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &otp, nil
}

func (s *GormOTPs) Invalidate(ctx context.Context, otpID uint) error {
	return s.DB.WithContext(ctx).
		Model(&models.OTP{}).
		Where("id = ?", otpID).
		Update("code", nil).Error
}
