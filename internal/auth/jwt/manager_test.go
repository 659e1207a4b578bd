package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hema-02/intent-cloud-project/pkg/config"
)

func TestManager(t *testing.T) {
	cfg := config.AuthConfig{
		JWTSecret: "test-secret-key",
		JWTExpiry: 3600,
		Issuer:    "test-issuer",
	}
	manager := NewManager(cfg)

	t.Run("GenerateAndValidateToken", func(t *testing.T) {
		token, err := manager.GenerateToken("user-123", "test@example.com", "admin")
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := manager.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID)
		assert.Equal(t, "test@example.com", claims.Email)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, "test-issuer", claims.Issuer)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		_, err := manager.ValidateToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		expired := NewManager(cfg)
		expired.expiry = -1 * time.Second

		token, err := expired.GenerateToken("user-123", "test@example.com", "user")
		require.NoError(t, err)

		_, err = expired.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewManager(config.AuthConfig{JWTSecret: "other-secret", JWTExpiry: 3600, Issuer: "test-issuer"})

		token, err := other.GenerateToken("user-123", "test@example.com", "user")
		require.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.Error(t, err)
	})
}
