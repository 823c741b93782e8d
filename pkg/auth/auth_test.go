package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret-pass"))
}

func TestGenerateTokenPairRoundTrip(t *testing.T) {
	pair, err := GenerateTokenPair("42f1c6d0-0000-0000-0000-000000000001", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "42f1c6d0-0000-0000-0000-000000000001", claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	refreshClaims, err := ValidateToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
}

func TestValidateAccessTokenRejectsRefresh(t *testing.T) {
	pair, err := GenerateTokenPair("u1", "bob")
	require.NoError(t, err)

	_, err = ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	now := time.Now()
	claims := Claims{
		UserID:    "u1",
		Username:  "carol",
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			Issuer:    "bookbank",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	require.NoError(t, err)

	_, err = ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestConfigureReplacesSigningSecret(t *testing.T) {
	original := jwtSecret
	defer func() { jwtSecret = original }()

	staleToken, err := GenerateTokenPair("u1", "dave")
	require.NoError(t, err)

	Configure("rotated-secret")

	// tokens signed under the old secret no longer validate
	_, err = ValidateToken(staleToken.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	pair, err := GenerateTokenPair("u1", "dave")
	require.NoError(t, err)
	claims, err := ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "dave", claims.Username)

	// an empty value keeps the current secret
	Configure("")
	_, err = ValidateAccessToken(pair.AccessToken)
	assert.NoError(t, err)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:    "u1",
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("another-secret"))
	require.NoError(t, err)

	_, err = ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
