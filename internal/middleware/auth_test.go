package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func invoke(middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler, ctx *fasthttp.RequestCtx) (called bool, userID string) {
	handler := middleware(func(ctx *fasthttp.RequestCtx) {
		called = true
		userID = string(ctx.Request.Header.Peek("X-User-ID"))
	})
	handler(ctx)
	return called, userID
}

func TestJWTAuthInjectsClaimIdentity(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "alice",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("Authorization", "Bearer "+token)

	called, userID := invoke(JWTAuth(testSecret, nil), ctx)
	assert.True(t, called)
	assert.Equal(t, "alice", userID)
}

func TestJWTAuthOverridesSpoofedHeader(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "alice",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("Authorization", "Bearer "+token)
	ctx.Request.Header.Set("X-User-ID", "mallory")

	called, userID := invoke(JWTAuth(testSecret, nil), ctx)
	assert.True(t, called)
	assert.Equal(t, "alice", userID)
}

func TestJWTAuthStripsSpoofedHeaderWhenTokenHasNoIdentity(t *testing.T) {
	// A valid token without a user_id claim must not let the caller
	// smuggle an identity in through the header.
	token := signToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("Authorization", "Bearer "+token)
	ctx.Request.Header.Set("X-User-ID", "mallory")

	called, userID := invoke(JWTAuth(testSecret, nil), ctx)
	assert.True(t, called)
	assert.Empty(t, userID)
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}

	called, _ := invoke(JWTAuth(testSecret, nil), ctx)
	assert.False(t, called)
	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestJWTAuthRejectsBadSignature(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "alice",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("Authorization", "Bearer "+signed)

	called, _ := invoke(JWTAuth(testSecret, nil), ctx)
	assert.False(t, called)
	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "alice",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("Authorization", "Bearer "+token)

	called, _ := invoke(JWTAuth(testSecret, nil), ctx)
	assert.False(t, called)
	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}
