package services

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, now *time.Time) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec("test-secret", time.Hour)
	require.NoError(t, err)
	return codec.WithClock(func() time.Time { return *now })
}

func TestNewTokenCodecRequiresSecret(t *testing.T) {
	_, err := NewTokenCodec("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestNewTokenCodecDefaultsTTL(t *testing.T) {
	codec, err := NewTokenCodec("s", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, codec.TTL())
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := newTestCodec(t, &now)

	token, err := codec.Issue("user-1", "a@x.com", "Ann")
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "Ann", claims.FullName)
	assert.True(t, claims.IssuedAt.Time.Equal(now))
	assert.True(t, claims.ExpiresAt.Time.Equal(now.Add(time.Hour)))
}

func TestTokenOmittedFullName(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := newTestCodec(t, &now)

	token, err := codec.Issue("user-1", "a@x.com", "")
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Empty(t, claims.FullName)
}

func TestTokenExpiry(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt
	codec := newTestCodec(t, &now)

	token, err := codec.Issue("user-1", "a@x.com", "Ann")
	require.NoError(t, err)

	now = issuedAt.Add(59 * time.Minute)
	_, err = codec.Verify(token)
	assert.NoError(t, err, "valid at T+59m")

	now = issuedAt.Add(61 * time.Minute)
	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired at T+61m")
}

func TestTokenRejectsTampering(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := newTestCodec(t, &now)

	token, err := codec.Issue("user-1", "a@x.com", "Ann")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	t.Run("modified payload", func(t *testing.T) {
		other, err := codec.Issue("user-2", "b@x.com", "Bob")
		require.NoError(t, err)
		forged := parts[0] + "." + strings.Split(other, ".")[1] + "." + parts[2]
		_, err = codec.Verify(forged)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		otherCodec, err := NewTokenCodec("other-secret", time.Hour)
		require.NoError(t, err)
		otherCodec.WithClock(func() time.Time { return now })
		_, err = otherCodec.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{
			UserID: "user-1",
			Email:  "a@x.com",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = codec.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other hmac algorithms", func(t *testing.T) {
		for _, method := range []jwt.SigningMethod{jwt.SigningMethodHS384, jwt.SigningMethodHS512} {
			other := jwt.NewWithClaims(method, SessionClaims{
				UserID: "user-1",
				Email:  "a@x.com",
				RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				},
			})
			raw, err := other.SignedString([]byte("test-secret"))
			require.NoError(t, err)
			_, err = codec.Verify(raw)
			assert.ErrorIs(t, err, ErrInvalidToken, method.Alg())
		}
	})

	t.Run("malformed", func(t *testing.T) {
		for _, raw := range []string{"", "not.a.jwt", "garbage"} {
			_, err := codec.Verify(raw)
			assert.ErrorIs(t, err, ErrInvalidToken, raw)
		}
	})

	t.Run("missing expiry", func(t *testing.T) {
		noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{UserID: "user-1", Email: "a@x.com"})
		raw, err := noExp.SignedString([]byte("test-secret"))
		require.NoError(t, err)
		_, err = codec.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
