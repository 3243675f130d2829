package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_RoundTrip(t *testing.T) {
	tk, err := NewTokens("secret", time.Hour)
	require.NoError(t, err)

	id := uuid.New()
	raw, err := tk.Generate(id)
	require.NoError(t, err)

	got, err := tk.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokens_Verify(t *testing.T) {
	tk, _ := NewTokens("secret", time.Hour)
	other, _ := NewTokens("other", time.Hour)
	expired, _ := NewTokens("secret", -time.Minute)

	foreign, _ := other.Generate(uuid.New())
	stale, _ := expired.Generate(uuid.New())
	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: uuid.NewString()}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	badID, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "nope"}).SignedString([]byte("secret"))

	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", foreign},
		{"expired", stale},
		{"unsigned", none},
		{"malformed user id", badID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tk.Verify(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewTokens_RequiresSecret(t *testing.T) {
	_, err := NewTokens("", time.Hour)
	assert.Error(t, err)
}
