package main

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyGamePassword(t *testing.T) {
	t.Run("mysql password() format", func(t *testing.T) {
		// SELECT PASSWORD('password')
		stored := "*2470C0C06DEE42FD1618BB99005ADCA2EC9D1E19"
		assert.True(t, verifyGamePassword("password", stored))
		assert.False(t, verifyGamePassword("Password", stored))
	})

	t.Run("mysql format matches case-insensitively on the hash", func(t *testing.T) {
		stored := "*2470c0c06dee42fd1618bb99005adca2ec9d1e19"
		assert.True(t, verifyGamePassword("password", stored))
	})

	t.Run("plain sha1 hex", func(t *testing.T) {
		stored := "5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8"
		assert.True(t, verifyGamePassword("password", stored))
		assert.False(t, verifyGamePassword("wrong", stored))
	})

	t.Run("md5 hex", func(t *testing.T) {
		stored := "5f4dcc3b5aa765d61d8327deb882cf99"
		assert.True(t, verifyGamePassword("password", stored))
		assert.False(t, verifyGamePassword("wrong", stored))
	})

	t.Run("plaintext fallback", func(t *testing.T) {
		assert.True(t, verifyGamePassword("hunter2", "hunter2"))
		assert.False(t, verifyGamePassword("hunter2", "hunter3"))
	})

	t.Run("40 chars of non-hex is treated as plaintext", func(t *testing.T) {
		stored := "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"
		assert.True(t, verifyGamePassword(stored, stored))
		assert.False(t, verifyGamePassword("password", stored))
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(nil, []byte("test-secret"))
	identity := &Identity{AccountID: 7, Login: "gandalf"}

	token, err := svc.issueToken(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := svc.parseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), parsed.AccountID)
	assert.Equal(t, "gandalf", parsed.Login)
}

func TestParseTokenRejections(t *testing.T) {
	svc := NewAuthService(nil, []byte("test-secret"))
	identity := &Identity{AccountID: 7, Login: "gandalf"}

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.parseToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthService(nil, []byte("different-secret"))
		token, err := other.issueToken(identity)
		require.NoError(t, err)

		_, err = svc.parseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing method", func(t *testing.T) {
		claims := panelClaims{
			Login: "gandalf",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "7",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.parseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		claims := panelClaims{
			Login: "gandalf",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "7",
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.parseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("non-numeric subject", func(t *testing.T) {
		claims := panelClaims{
			Login: "gandalf",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "gandalf",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.parseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
