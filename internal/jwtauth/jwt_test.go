package jwtauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messhall/pkg/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("test-signing-key", "messhall")
	userID := domain.NewUserID()

	token, err := svc.GenerateToken(userID, domain.RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.Role.IsAdmin())
}

func TestValidateToken_Rejections(t *testing.T) {
	svc := NewService("test-signing-key", "messhall")
	userID := domain.NewUserID()

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewService("other-key", "messhall")
		token, err := other.GenerateToken(userID, domain.RoleSoldier, time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewService("test-signing-key", "someone-else")
		token, err := other.GenerateToken(userID, domain.RoleSoldier, time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, domain.RoleSoldier, -time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		require.Error(t, err)
	})
}
