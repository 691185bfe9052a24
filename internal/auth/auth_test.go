package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.GenerateToken("id-1", "a@b.co", RoleProvider, "Amina")
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "id-1", claims.UserID)
	assert.Equal(t, "a@b.co", claims.Email)
	assert.Equal(t, RoleProvider, claims.Role)
	assert.Equal(t, "Amina", claims.Name)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.GenerateToken("id-1", "a@b.co", RoleTalent, "Sarah")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("one", time.Hour).GenerateToken("id", "e", RoleTalent, "n")
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{UserID: "id", Role: RoleProvider, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswords(t *testing.T) {
	hash, err := hashWithCost("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("anything", ""))

	assert.ErrorIs(t, ValidatePassword("short"), ErrWeakPassword)
	assert.NoError(t, ValidatePassword("long enough"))
}

func TestPermissions(t *testing.T) {
	assert.True(t, HasPermission(RoleProvider, PermStoriesWriteSelf))
	assert.False(t, HasPermission(RoleTalent, PermStoriesWriteSelf))
	assert.True(t, HasPermission(RoleTalent, PermPortfolioWriteSelf))
	assert.False(t, HasPermission("admin", PermUploadsWrite))

	c := &Claims{UserID: "x", Role: RoleTalent}
	assert.True(t, IsOwner(c, RoleTalent, "x"))
	assert.False(t, IsOwner(c, RoleProvider, "x"))
	assert.False(t, IsOwner(c, RoleTalent, "y"))
	assert.Error(t, ValidateRole("admin"))
}
