package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"acharya-admissions-backend/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testUser() *domain.StaffUser {
	return &domain.StaffUser{
		ID:       9,
		Email:    "warden@schoola.in",
		Role:     domain.RoleWarden,
		SchoolID: 11,
		IsActive: true,
	}
}

func TestTokenManager_AccessToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute, 24*time.Hour)

	signed, err := tm.GenerateAccessToken(testUser())
	assert.NoError(t, err)

	claims, err := tm.ValidateToken(signed)
	assert.NoError(t, err)
	assert.Equal(t, int32(9), claims.UserID)
	assert.Equal(t, domain.RoleWarden, claims.Role)
	assert.Equal(t, int32(11), claims.SchoolID)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestTokenManager_RefreshToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute, 24*time.Hour)

	signed, jti, err := tm.GenerateRefreshToken(testUser())
	assert.NoError(t, err)
	assert.NotEmpty(t, jti)

	claims, err := tm.ValidateToken(signed)
	assert.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
	assert.Equal(t, jti, claims.ID)
}

func TestTokenManager_Validate(t *testing.T) {
	tm := NewTokenManager(testSecret, 15*time.Minute, 24*time.Hour)

	t.Run("Expired token", func(t *testing.T) {
		expired := NewTokenManager(testSecret, -time.Minute, 24*time.Hour)
		signed, err := expired.GenerateAccessToken(testUser())
		assert.NoError(t, err)

		_, err = tm.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other := NewTokenManager("ffffffffffffffffffffffffffffffff", 15*time.Minute, 24*time.Hour)
		signed, err := other.GenerateAccessToken(testUser())
		assert.NoError(t, err)

		_, err = tm.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := tm.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
