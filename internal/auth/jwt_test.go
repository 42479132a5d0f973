package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager("test-secret", time.Hour, 24*time.Hour)
	require.NoError(t, err)
	return m
}

func TestNewTokenManager_RejectsBadConfig(t *testing.T) {
	_, err := NewTokenManager("", time.Hour, time.Hour)
	assert.Error(t, err)

	_, err = NewTokenManager("secret", 0, time.Hour)
	assert.Error(t, err)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	m := newTestManager(t)

	token, err := m.GenerateAccessToken("user-1", "alice", RoleUser)
	require.NoError(t, err)

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, RoleUser, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.NotEmpty(t, claims.ID)
}

func TestParseAccessToken_Expired(t *testing.T) {
	m := newTestManager(t)
	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }

	token, err := m.GenerateAccessToken("user-1", "alice", RoleUser)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	m := newTestManager(t)
	other, err := NewTokenManager("another-secret", time.Hour, time.Hour)
	require.NoError(t, err)

	token, err := other.GenerateAccessToken("user-1", "alice", RoleUser)
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessToken_RejectsOtherAlgorithms(t *testing.T) {
	m := newTestManager(t)

	claims := &Claims{
		Type: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = m.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.ParseAccessToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessToken_RequiresExpiry(t *testing.T) {
	m := newTestManager(t)

	claims := &Claims{
		Type:             TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenTypes_AreNotInterchangeable(t *testing.T) {
	m := newTestManager(t)

	verification, tokenID, err := m.GenerateVerificationToken("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	_, err = m.ParseAccessToken(verification)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	access, err := m.GenerateAccessToken("user-1", "alice", RoleUser)
	require.NoError(t, err)
	_, err = m.ParseVerificationToken(access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestVerificationToken_CarriesTokenID(t *testing.T) {
	m := newTestManager(t)

	token, tokenID, err := m.GenerateVerificationToken("user-1")
	require.NoError(t, err)

	claims, err := m.ParseVerificationToken(token)
	require.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)
	assert.Equal(t, "user-1", claims.UserID())

	_, second, err := m.GenerateVerificationToken("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, tokenID, second)
}

func TestParseAccessToken_Garbage(t *testing.T) {
	m := newTestManager(t)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.ParseAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}
