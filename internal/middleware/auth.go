package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openvet/clinic-api/internal/model"
	"github.com/openvet/clinic-api/pkg/auth"
	"github.com/openvet/clinic-api/pkg/httputil"
)

// Context keys set by Authenticate.
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
	ContextToken     = "token"
)

type AuthMiddleware struct {
	jwt auth.JWTService
}

func NewAuthMiddleware(jwt auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// Authenticate verifies the bearer token and stores the caller's identity,
// including the raw token for forwarding to the directory services.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.AbortWithError(c, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.AbortWithError(c, http.StatusUnauthorized, "invalid authorization format")
			return
		}

		claims, err := m.jwt.ValidateToken(parts[1])
		if err != nil {
			httputil.AbortWithError(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextToken, parts[1])
		c.Next()
	}
}

// RequireStaff rejects requests from accounts with the client role.
func (m *AuthMiddleware) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := model.UserRole(c.GetString(ContextUserRole))
		if !role.IsStaff() {
			httputil.AbortWithError(c, http.StatusForbidden, "staff access required")
			return
		}
		c.Next()
	}
}

// RequireRoles rejects requests unless the caller holds one of the given
// roles.
func (m *AuthMiddleware) RequireRoles(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := model.UserRole(c.GetString(ContextUserRole))
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		httputil.AbortWithError(c, http.StatusForbidden, "insufficient role")
	}
}
