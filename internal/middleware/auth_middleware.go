package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/models"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/database/service"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/identity"
)

// Context keys set by the auth middleware
const (
	ContextUserKey        = "user"
	ContextUserCreatedKey = "userCreated"
)

// AuthMiddleware verifies bearer ID tokens and syncs the user record
type AuthMiddleware struct {
	verifier    identity.Verifier
	userService service.UserService
	logger      *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware instance
func NewAuthMiddleware(verifier identity.Verifier, userService service.UserService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:    verifier,
		userService: userService,
		logger:      logger,
	}
}

// RequireAuth validates the ID token, upserts the user record and sets the
// resolved user in the context. No downstream handler runs without it.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			m.logger.Warn("⚠️ [Middleware] Missing or malformed Authorization header")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - No token provided"})
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(tokenString)
		if err != nil {
			m.logger.Warn("⚠️ [Middleware] Invalid token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		user, created, err := m.userService.SyncFromClaims(claims)
		if err != nil {
			m.logger.Error("❌ [Middleware] Failed to sync user record", "email", claims.Email, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserCreatedKey, created)
		m.logger.Debug("✅ [Middleware] Session synced", "user_id", user.ID, "email", user.Email, "created", created)

		c.Next()
	}
}

// OptionalAuth resolves the user when a valid token is present but never
// aborts; public routes use it to apply viewer-specific visibility.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := m.verifier.Verify(tokenString)
		if err != nil {
			m.logger.Debug("🔎 [Middleware] Ignoring invalid token on public route", "error", err)
			c.Next()
			return
		}

		user, created, err := m.userService.SyncFromClaims(claims)
		if err != nil {
			m.logger.Warn("⚠️ [Middleware] Failed to sync user on public route", "email", claims.Email, "error", err)
			c.Next()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserCreatedKey, created)

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

// CurrentUser returns the session user resolved by the middleware
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil, false
	}
	return user, true
}

// UserWasCreated reports whether the session sync created the user record
// during this request
func UserWasCreated(c *gin.Context) bool {
	value, exists := c.Get(ContextUserCreatedKey)
	if !exists {
		return false
	}
	created, ok := value.(bool)
	return ok && created
}
