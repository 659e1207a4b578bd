package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/Hema-02/intent-cloud-project/internal/auth/jwt"
	"github.com/Hema-02/intent-cloud-project/internal/auth/repository"
	"github.com/Hema-02/intent-cloud-project/internal/domain/identity"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService issues, refreshes nothing, and revokes bearer tokens. Token
// lifecycle: issue at login, expire at TTL, revoke on signout.
type AuthService struct {
	repo       repository.UserRepository
	jwtManager *jwt.Manager
	redis      *redis.Client
	logger     logger.Logger
}

func NewAuthService(repo repository.UserRepository, jwtManager *jwt.Manager, redisClient *redis.Client, log logger.Logger) *AuthService {
	return &AuthService{
		repo:       repo,
		jwtManager: jwtManager,
		redis:      redisClient,
		logger:     log,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*repository.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &repository.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         string(identity.RoleUser),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", "userId", user.ID, "email", email)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *repository.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

// DemoLogin issues a token for a throwaway principal with the requested
// role, no password needed. Unknown role strings fall back to guest.
func (s *AuthService) DemoLogin(_ context.Context, role string) (string, *repository.User, error) {
	resolved := identity.ParseRole(role)
	user := &repository.User{
		ID:        "demo-" + string(resolved),
		Email:     fmt.Sprintf("demo-%s@intentcloud.local", resolved),
		Name:      "Demo " + string(resolved),
		Role:      string(resolved),
		CreatedAt: time.Now().UTC(),
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

// Signout blacklists the presented token until its natural expiry. Without
// redis the token simply rides out its TTL.
func (s *AuthService) Signout(ctx context.Context, token string) error {
	if s.redis == nil {
		return nil
	}
	if err := s.redis.Set(ctx, "blacklist:"+token, "1", s.jwtManager.Expiry()).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*repository.User, error) {
	return s.repo.GetByID(ctx, id)
}
