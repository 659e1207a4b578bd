package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hema-02/intent-cloud-project/internal/auth/jwt"
	"github.com/Hema-02/intent-cloud-project/internal/auth/repository"
	"github.com/Hema-02/intent-cloud-project/pkg/config"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
)

func newTestService(t *testing.T, redisClient *redis.Client) *AuthService {
	t.Helper()
	manager := jwt.NewManager(config.AuthConfig{
		JWTSecret: "test-secret",
		JWTExpiry: 3600,
		Issuer:    "test",
	})
	return NewAuthService(repository.NewMemoryRepository(), manager, redisClient, logger.NewNop())
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, "dev@example.com", "password123", "Dev")
	require.NoError(t, err)
	assert.Equal(t, "user", user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash, "password is never stored in clear")

	token, loggedIn, err := svc.Login(ctx, "dev@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, _, err = svc.Login(ctx, "dev@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicate(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "dev@example.com", "password123", "Dev")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "dev@example.com", "password123", "Dev Again")
	assert.ErrorIs(t, err, repository.ErrUserExists)
}

func TestDemoLoginRoles(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	token, user, err := svc.DemoLogin(ctx, "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "demo-admin", user.ID)
	assert.Equal(t, "admin", user.Role)

	// Unknown roles degrade to guest rather than erroring.
	_, user, err = svc.DemoLogin(ctx, "operator")
	require.NoError(t, err)
	assert.Equal(t, "guest", user.Role)
}

func TestSignoutBlacklistsToken(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := newTestService(t, client)
	ctx := context.Background()

	token, _, err := svc.DemoLogin(ctx, "user")
	require.NoError(t, err)

	require.NoError(t, svc.Signout(ctx, token))
	assert.True(t, mr.Exists("blacklist:"+token))
}

func TestSignoutWithoutRedisIsNoop(t *testing.T) {
	svc := newTestService(t, nil)
	assert.NoError(t, svc.Signout(context.Background(), "whatever"))
}
