package middleware

import (
	"net/http"
	"strings"

	"github.com/beautique/beautique-backend/internal/errors"
	"github.com/beautique/beautique-backend/pkg/redis"
	"github.com/beautique/beautique-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

// Context keys for the authenticated admin
const (
	AdminIDKey       = "admin_id"
	AdminUsernameKey = "admin_username"
	AdminRoleKey     = "admin_role"
)

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// RequireAdmin validates the admin JWT and rejects blacklisted tokens.
// The token comes from the Authorization header, or from the token query
// parameter for websocket upgrades where headers cannot be set.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn("Invalid authorization header format", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authorization header format")
				c.Abort()
				return
			}
			token = parts[1]
		} else {
			token = c.Query("token")
			if token == "" {
				log.Warn("Missing authorization header", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				errors.Unauthorized(c, "Authentication required")
				c.Abort()
				return
			}
		}

		if redis.Available() {
			blacklisted, err := redis.IsTokenBlacklisted(c.Request.Context(), token)
			if err != nil {
				log.Warn("Token blacklist check failed", map[string]interface{}{
					"error": err.Error(),
				})
			} else if blacklisted {
				log.Warn("Rejected blacklisted token", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenRevoked, "Session has been logged out")
				c.Abort()
				return
			}
		}

		claims, err := util.ValidateAdminToken(token, m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Session has expired")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authentication token")
			}
			c.Abort()
			return
		}

		if claims.Role != "admin" {
			log.Warn("Non-admin token on admin route", map[string]interface{}{
				"path": c.Request.URL.Path,
				"role": claims.Role,
			})
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzAdminOnly, "Admin access required")
			c.Abort()
			return
		}

		c.Set(AdminIDKey, claims.AdminID)
		c.Set(AdminUsernameKey, claims.Username)
		c.Set(AdminRoleKey, claims.Role)

		log.Debug("Admin authenticated successfully", map[string]interface{}{
			"admin_id": claims.AdminID,
			"username": claims.Username,
		})

		c.Next()
	}
}

// GetAdminID extracts the authenticated admin ID from context
func GetAdminID(c *gin.Context) (uint, bool) {
	adminID, exists := c.Get(AdminIDKey)
	if !exists {
		return 0, false
	}
	return adminID.(uint), true
}

// GetAdminUsername extracts the authenticated admin username from context
func GetAdminUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(AdminUsernameKey)
	if !exists {
		return "", false
	}
	return username.(string), true
}

// BearerToken returns the raw token from the request, if any.
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.Query("token")
}
