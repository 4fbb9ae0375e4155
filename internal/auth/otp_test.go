package auth

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-backend/internal/models"
	"auth-backend/internal/store"
)

func newTestEngine(t *testing.T) (*OTPEngine, *store.MemoryOTPs, *time.Time) {
	t.Helper()
	otps := store.NewMemoryOTPs()
	engine := NewOTPEngine(otps, 60*time.Second)

	now := time.Now()
	engine.now = func() time.Time { return now }
	return engine, otps, &now
}

func newOTPRecord(userID uuid.UUID, code string, expiresAt, createdAt time.Time) *models.OTP {
	return &models.OTP{
		UserID:    userID,
		Code:      &code,
		Purpose:   PurposeLogin,
		ExpiresAt: expiresAt,
		CreatedAt: createdAt,
	}
}

func TestGenerate_ReturnsFourDigitCode(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	userID := uuid.New()

	code, err := engine.Generate(context.Background(), userID, PurposeLogin)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}$`), code)
}

func TestGenerate_FailsWhileCodeStillActive(t *testing.T) {
	engine, _, now := newTestEngine(t)
	userID := uuid.New()

	_, err := engine.Generate(context.Background(), userID, PurposeLogin)
	require.NoError(t, err)

	_, err = engine.Generate(context.Background(), userID, PurposeLogin)
	assert.ErrorIs(t, err, ErrOTPAlreadyActive)

	// after expiry a new code can be generated
	*now = now.Add(61 * time.Second)
	code, err := engine.Generate(context.Background(), userID, PurposeLogin)
	require.NoError(t, err)
	assert.NotEmpty(t, code)
}

func TestGenerate_IndependentUsers(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	_, err := engine.Generate(context.Background(), uuid.New(), PurposeLogin)
	require.NoError(t, err)
	_, err = engine.Generate(context.Background(), uuid.New(), PurposeLogin)
	require.NoError(t, err)
}

func TestValidate_NoRecord(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	err := engine.Validate(context.Background(), uuid.New(), PurposeLogin, "1234")
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestValidate_SingleUse(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	userID := uuid.New()

	code, err := engine.Generate(context.Background(), userID, PurposeLogin)
	require.NoError(t, err)

	require.NoError(t, engine.Validate(context.Background(), userID, PurposeLogin, code))

	// the record's code is nil now; the same submission must fail
	err = engine.Validate(context.Background(), userID, PurposeLogin, code)
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestValidate_Mismatch(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	userID := uuid.New()

	code, err := engine.Generate(context.Background(), userID, PurposeLogin)
	require.NoError(t, err)

	wrong := "0000"
	if code == wrong {
		wrong = "0001"
	}
	err = engine.Validate(context.Background(), userID, PurposeLogin, wrong)
	assert.ErrorIs(t, err, ErrOTPMismatch)

	// a mismatch does not consume the record
	require.NoError(t, engine.Validate(context.Background(), userID, PurposeLogin, code))
}

// The check order is mismatch first, then expiry: an expired record with the
// right code reports Expired (and is burned), an expired record with a wrong
// code reports Mismatch.
func TestValidate_ExpiredWithCorrectCode(t *testing.T) {
	engine, otps, now := newTestEngine(t)
	userID := uuid.New()

	code, err := engine.Generate(context.Background(), userID, PurposeLogin)
	require.NoError(t, err)

	*now = now.Add(60 * time.Second)
	err = engine.Validate(context.Background(), userID, PurposeLogin, code)
	assert.ErrorIs(t, err, ErrOTPExpired)

	// the late-but-correct submission invalidated the record
	latest, err := otps.FindLatest(context.Background(), userID, PurposeLogin)
	require.NoError(t, err)
	assert.Nil(t, latest.Code)

	err = engine.Validate(context.Background(), userID, PurposeLogin, code)
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestValidate_ExpiredWithWrongCode(t *testing.T) {
	engine, _, now := newTestEngine(t)
	userID := uuid.New()

	code, err := engine.Generate(context.Background(), userID, PurposeLogin)
	require.NoError(t, err)

	*now = now.Add(2 * time.Minute)
	wrong := "0000"
	if code == wrong {
		wrong = "0001"
	}
	err = engine.Validate(context.Background(), userID, PurposeLogin, wrong)
	assert.ErrorIs(t, err, ErrOTPMismatch)
}

func TestValidate_LatestRecordWins(t *testing.T) {
	engine, otps, now := newTestEngine(t)
	userID := uuid.New()

	stale := "1111"
	require.NoError(t, otps.Create(context.Background(), newOTPRecord(userID, stale, now.Add(-time.Second), now.Add(-2*time.Minute))))

	code, err := engine.Generate(context.Background(), userID, PurposeLogin)
	require.NoError(t, err)

	// the superseded record is dead even though it was never nulled
	if stale != code {
		err = engine.Validate(context.Background(), userID, PurposeLogin, stale)
		assert.ErrorIs(t, err, ErrOTPMismatch)
	}

	require.NoError(t, engine.Validate(context.Background(), userID, PurposeLogin, code))
}
