package application

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karanshah229/taskapp/pkg/helpers"
)

func TestTokens_RevokeOnlyOne(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "ann@example.com")

	t1, err := e.tokens.Issue(ctx, u)
	require.NoError(t, err)
	t2, err := e.tokens.Issue(ctx, u)
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)

	got, err := e.tokens.Resolve(ctx, t1)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	require.NoError(t, e.tokens.Revoke(ctx, u, t1))
	_, err = e.tokens.Resolve(ctx, t1)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = e.tokens.Resolve(ctx, t2)
	assert.NoError(t, err)
	assert.Equal(t, []string{t2}, u.Tokens)
}

func TestTokens_RevokeAll(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "ann@example.com")

	var issued []string
	for i := 0; i < 3; i++ {
		tok, err := e.tokens.Issue(ctx, u)
		require.NoError(t, err)
		issued = append(issued, tok)
	}
	require.NoError(t, e.tokens.RevokeAll(ctx, u))
	for _, tok := range issued {
		_, err := e.tokens.Resolve(ctx, tok)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	}
}

func TestResolve_RejectsForeignAndExpiredTokens(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "ann@example.com")

	_, err := e.tokens.Resolve(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	foreign, err := helpers.NewJWTManager("other-secret", 0).Generate(u.ID)
	require.NoError(t, err)
	_, err = e.tokens.Resolve(ctx, foreign)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// signed correctly but never stored on the user
	unlisted, err := e.tokens.JWT.Generate(u.ID)
	require.NoError(t, err)
	_, err = e.tokens.Resolve(ctx, unlisted)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	claims := &helpers.Claims{
		UserID: u.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	require.NoError(t, e.store.Users().AddToken(ctx, u.ID, expired))
	_, err = e.tokens.Resolve(ctx, expired)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolve_DeletedUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "ann@example.com")
	tok, err := e.tokens.Issue(ctx, u)
	require.NoError(t, err)

	require.NoError(t, e.users.DeleteUser(ctx, u))
	_, err = e.tokens.Resolve(ctx, tok)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
