package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"auth-backend/internal/models"
)

// MemoryUsers is an in-memory Users implementation used in tests. Error
// fields allow injecting store failures.
type MemoryUsers struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*models.User
	FindErr error
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{byID: make(map[uuid.UUID]*models.User)}
}

func (s *MemoryUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	for _, u := range s.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUsers) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *MemoryUsers) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	s.byID[user.ID] = &copied
	return nil
}

// SetVerified flips the verification flag directly, standing in for the
// out-of-scope email verification flow.
func (s *MemoryUsers) SetVerified(id uuid.UUID, verified bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.byID[id]; ok {
		u.IsVerified = verified
	}
}

// MemoryOTPs is an in-memory OTPs implementation used in tests.
type MemoryOTPs struct {
	mu     sync.Mutex
	nextID uint
	otps   []*models.OTP
}

func NewMemoryOTPs() *MemoryOTPs {
	return &MemoryOTPs{}
}

func (s *MemoryOTPs) Create(ctx context.Context, otp *models.OTP) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	otp.ID = s.nextID
	copied := *otp
	s.otps = append(s.otps, &copied)
	return nil
}

func (s *MemoryOTPs) FindLatest(ctx context.Context, userID uuid.UUID, purpose string) (*models.OTP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *models.OTP
	for _, o := range s.otps {
		if o.UserID != userID || o.Purpose != purpose {
			continue
		}
		if latest == nil || o.CreatedAt.After(latest.CreatedAt) || (o.CreatedAt.Equal(latest.CreatedAt) && o.ID > latest.ID) {
			latest = o
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (s *MemoryOTPs) Invalidate(ctx context.Context, otpID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.otps {
		if o.ID == otpID {
			o.Code = nil
			return nil
		}
	}
	return ErrNotFound
}
