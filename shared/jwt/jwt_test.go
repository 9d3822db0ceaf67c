package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestInspect(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := sign(t, jwt.MapClaims{"id": "users-1", "name": "John Doe", "exp": exp.Unix()})

	claims, err := Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, "users-1", claims.UserId)
	assert.True(t, exp.Equal(claims.ExpiresAt))
}

func TestInspect_Malformed(t *testing.T) {
	_, err := Inspect("not-a-jwt")
	assert.Error(t, err)
}

func TestExpired(t *testing.T) {
	now := time.Now()
	expired := sign(t, jwt.MapClaims{"id": "users-1", "exp": now.Add(-time.Minute).Unix()})
	valid := sign(t, jwt.MapClaims{"id": "users-1", "exp": now.Add(time.Minute).Unix()})
	noExp := sign(t, jwt.MapClaims{"id": "users-1", "iat": now.Unix()})

	assert.True(t, Expired(expired, now))
	assert.False(t, Expired(valid, now))
	assert.False(t, Expired(noExp, now))
	assert.False(t, Expired("opaque-token", now))
	assert.False(t, Expired("", now))
}
