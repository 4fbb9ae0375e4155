package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"auth-backend/internal/auth"
	"auth-backend/internal/models"
	"auth-backend/internal/store"
)

// UserService covers account creation and profile lookup.
type UserService struct {
	users  store.Users
	tokens *auth.TokenIssuer
}

func NewUserService(users store.Users, tokens *auth.TokenIssuer) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// Create registers an unverified account and logs it straight in.
func (s *UserService) Create(ctx context.Context, emailAddr, password string) (*models.User, auth.TokenPair, error) {
	if emailAddr == "" || password == "" {
		return nil, auth.TokenPair{}, ErrBadRequest
	}

	emailAddr = normalizeEmail(emailAddr)
	if _, err := s.users.FindByEmail(ctx, emailAddr); err == nil {
		return nil, auth.TokenPair{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, auth.TokenPair{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	user := &models.User{
		Email:        emailAddr,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, auth.TokenPair{}, ErrEmailTaken
		}
		return nil, auth.TokenPair{}, err
	}

	pair, err := s.tokens.IssueTokenPair(user.ID.String())
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return user, pair, nil
}

func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}
