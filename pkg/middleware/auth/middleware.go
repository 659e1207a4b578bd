// Package auth is the access control gate: every protected route passes
// through Authenticate, then optionally RequireRole. Both are stateless
// predicates; the only side effect is attaching the principal to the
// request context.
package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Hema-02/intent-cloud-project/internal/auth/jwt"
	"github.com/Hema-02/intent-cloud-project/internal/domain/identity"
)

// Error codes surfaced in rejection envelopes.
const (
	CodeTokenMissing  = "TOKEN_MISSING"
	CodeTokenInvalid  = "TOKEN_INVALID"
	CodeInsufficient  = "INSUFFICIENT_PERMISSIONS"
	principalKey      = "principal"
	blacklistedPrefix = "blacklist:"
)

// Middleware validates bearer tokens and enforces role ranks.
type Middleware struct {
	jwtManager *jwt.Manager
	redis      *redis.Client
}

// New builds the gate. redis may be nil; without it signed-out tokens stay
// valid until they expire.
func New(jwtManager *jwt.Manager, redisClient *redis.Client) *Middleware {
	return &Middleware{jwtManager: jwtManager, redis: redisClient}
}

// Authenticate rejects requests without a valid bearer token and attaches
// the resolved principal to the context.
func (m *Middleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || token == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
				"code":  CodeTokenMissing,
			})
			return
		}

		if m.redis != nil {
			revoked, _ := m.redis.Exists(c.Request.Context(), blacklistedPrefix+token).Result()
			if revoked > 0 {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error": "Invalid or expired token",
					"code":  CodeTokenInvalid,
				})
				return
			}
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Invalid or expired token",
				"code":  CodeTokenInvalid,
			})
			return
		}

		c.Set(principalKey, identity.Principal{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  identity.ParseRole(claims.Role),
		})
		c.Set("token", token)

		c.Next()
	}
}

// RequireRole enforces the route's minimum role against the authenticated
// principal. A missing principal ranks as guest.
func RequireRole(required identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := Principal(c)
		if !identity.Allows(principal.Role, required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Access denied. Required role: " + string(required) + ", current role: " + string(principal.Role),
				"code":  CodeInsufficient,
			})
			return
		}
		c.Next()
	}
}

// Principal extracts the authenticated caller from the context. When absent
// (route without Authenticate) the zero principal with role guest is
// returned.
func Principal(c *gin.Context) (identity.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return identity.Principal{Role: identity.RoleGuest}, false
	}
	p, ok := v.(identity.Principal)
	if !ok {
		return identity.Principal{Role: identity.RoleGuest}, false
	}
	return p, true
}

// Token returns the raw bearer token attached by Authenticate.
func Token(c *gin.Context) string {
	return c.GetString("token")
}
