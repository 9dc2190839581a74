package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", 0)

	tok, err := m.Generate("user-1")
	require.NoError(t, err)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Nil(t, claims.ExpiresAt, "zero TTL must not set exp")
	assert.NotEmpty(t, claims.ID)
}

func TestJWTManager_TokensAreUnique(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	a, err := m.Generate("u")
	require.NoError(t, err)
	b, err := m.Generate("u")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("secret", 0)

	other, err := NewJWTManager("other", 0).Generate("u")
	require.NoError(t, err)
	_, err = m.Parse(other)
	assert.Error(t, err, "foreign signature")

	_, err = m.Parse("not-a-jwt")
	assert.Error(t, err, "malformed")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "u",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	s, err := expired.SignedString(m.Secret)
	require.NoError(t, err)
	_, err = m.Parse(s)
	assert.Error(t, err, "expired")

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{})
	s, err = noUser.SignedString(m.Secret)
	require.NoError(t, err)
	_, err = m.Parse(s)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u"})
	s, err = none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Parse(s)
	assert.Error(t, err, "alg none")
}
