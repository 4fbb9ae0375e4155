package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPair carries the two tokens issued on login. Neither is persisted.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenIssuer mints and verifies HS256 tokens. Access and refresh tokens are
// signed with separate secrets so their policies can rotate independently.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (t *TokenIssuer) IssueAccessToken(userID string) (string, error) {
	return t.sign(userID, t.accessSecret, t.accessTTL)
}

func (t *TokenIssuer) IssueRefreshToken(userID string) (string, error) {
	return t.sign(userID, t.refreshSecret, t.refreshTTL)
}

func (t *TokenIssuer) IssueTokenPair(userID string) (TokenPair, error) {
	access, err := t.IssueAccessToken(userID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := t.IssueRefreshToken(userID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccessToken returns the subject user id. Every failure mode maps to
// ErrInvalidToken.
func (t *TokenIssuer) VerifyAccessToken(token string) (string, error) {
	return t.verify(token, t.accessSecret)
}

func (t *TokenIssuer) VerifyRefreshToken(token string) (string, error) {
	return t.verify(token, t.refreshSecret)
}

func (t *TokenIssuer) sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(t.now()),
		ExpiresAt: jwt.NewNumericDate(t.now().Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (t *TokenIssuer) verify(tokenString string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
