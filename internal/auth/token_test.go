package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/finance-tracker-be/internal/models"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", "finance-tracker", 0)
	token, err := tm.Generate(models.User{ID: 42, Username: "ann"})
	require.NoError(t, err)

	userID, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenManager_TokensAreUnique(t *testing.T) {
	tm := NewTokenManager("secret", "finance-tracker", 0)
	a, err := tm.Generate(models.User{ID: 1})
	require.NoError(t, err)
	b, err := tm.Generate(models.User{ID: 1})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestTokenManager_RejectsForeignSecretAndIssuer(t *testing.T) {
	token, err := NewTokenManager("other", "finance-tracker", 0).Generate(models.User{ID: 1})
	require.NoError(t, err)
	_, err = NewTokenManager("secret", "finance-tracker", 0).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	token, err = NewTokenManager("secret", "someone-else", 0).Generate(models.User{ID: 1})
	require.NoError(t, err)
	_, err = NewTokenManager("secret", "finance-tracker", 0).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Expiry(t *testing.T) {
	tm := NewTokenManager("secret", "finance-tracker", time.Minute)
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tm.now = func() time.Time { return issued }
	token, err := tm.Generate(models.User{ID: 9})
	require.NoError(t, err)

	tm.now = func() time.Time { return issued.Add(30 * time.Second) }
	_, err = tm.Parse(token)
	require.NoError(t, err)

	tm.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
