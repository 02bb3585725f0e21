package session_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentiva/session"
)

func mintToken(t *testing.T, userID, username string, ttl time.Duration) string {
	t.Helper()
	claims := &session.Claims{
		Username: username,
		UserID:   userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestFromToken(t *testing.T) {
	token := mintToken(t, "user-42", "amira", time.Hour)

	sess, err := session.FromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", sess.UserID)
	assert.Equal(t, "amira", sess.Username)
	assert.True(t, sess.Valid())
}

func TestFromTokenEmpty(t *testing.T) {
	_, err := session.FromToken("")
	assert.Error(t, err)
}

func TestFromTokenGarbage(t *testing.T) {
	_, err := session.FromToken("not-a-jwt")
	assert.Error(t, err)
}

func TestExpiredSessionIsInvalid(t *testing.T) {
	token := mintToken(t, "user-42", "amira", -time.Minute)
	sess, err := session.FromToken(token)
	require.NoError(t, err)
	assert.False(t, sess.Valid())
}

func TestClear(t *testing.T) {
	token := mintToken(t, "user-42", "amira", time.Hour)
	sess, err := session.FromToken(token)
	require.NoError(t, err)

	sess.Clear()
	assert.False(t, sess.Valid())
	assert.Empty(t, sess.Token)
	assert.Empty(t, sess.UserID)
}

func TestNilSessionIsInvalid(t *testing.T) {
	var sess *session.Session
	assert.False(t, sess.Valid())
}
