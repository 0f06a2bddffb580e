package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"garagesale.backend/internal/domain/entities"
	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/pkg/jwt"
	"garagesale.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID
	UserIDKey = "user_id"
	// UserEmailKey is the context key for user email
	UserEmailKey = "user_email"
	// UserRoleKey is the context key for user role
	UserRoleKey = "user_role"
)

// AuthMiddleware validates the bearer access token and stores the caller's
// identity in the request context.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			abortUnauthorized(c, domainerrors.CodeUnauthorized, "Authorization header is required")
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, domainerrors.CodeUnauthorized, "Invalid authorization format. Use: Bearer <token>")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			logger.Debug(c.Request.Context(), "token rejected",
				zap.String("path", c.Request.URL.Path))
			if err == jwt.ErrExpiredToken {
				abortUnauthorized(c, domainerrors.CodeTokenExpired, "Token has expired")
				return
			}
			abortUnauthorized(c, domainerrors.CodeUnauthorized, "Invalid token")
			return
		}

		// Refresh tokens are only good for the refresh endpoint.
		if claims.TokenType != "" && claims.TokenType != jwt.TokenTypeAccess {
			abortUnauthorized(c, domainerrors.CodeUnauthorized, "Invalid token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		// older tokens carry the role under userType
		c.Set(UserRoleKey, entities.RoleFromClaims(map[string]interface{}{
			"role":     claims.Role,
			"userType": claims.LegacyUserType,
		}))

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    code,
		"message": message,
	})
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserEmail gets the user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	e, ok := email.(string)
	return e, ok
}

// GetUserRole gets the normalized user role from context
func GetUserRole(c *gin.Context) (entities.UserRole, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	r, ok := role.(entities.UserRole)
	return r, ok
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := GetUserRole(c)
		if !exists {
			abortUnauthorized(c, domainerrors.CodeUnauthorized, "User role not found")
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"code":    domainerrors.CodeForbidden,
			"message": "Insufficient permissions",
		})
	}
}

// RequireAdmin creates a middleware that requires the admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entities.UserRoleAdmin)
}
