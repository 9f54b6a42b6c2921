// internal/middleware/auth_middleware.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	domauth "ims-service/internal/domain/auth"
	"ims-service/internal/pkg/response"
	"ims-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	authService *auth.AuthService
}

func NewAuthMiddleware(authService *auth.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Auth is the base authentication middleware that validates JWT tokens
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization token", nil)
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token", err)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("jti", claims.ID)
		c.Set("role", claims.Role)
		c.Set("portal", claims.Portal)
		c.Set("session_purpose", claims.SessionPurpose)

		c.Next()
	}
}

// RequireRole requires the user to hold one of the given roles. Selectors
// are alias-aware on both sides, so "CORPORATE" guards admit RECRUITER
// tokens. MUST be used after Auth().
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	required := make([]domauth.Role, 0, len(roles))
	for _, r := range roles {
		required = append(required, domauth.MustNormalize(r))
	}

	return func(c *gin.Context) {
		rawRole, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusForbidden, "no role found - authentication required", nil)
			return
		}

		roleStr, ok := rawRole.(string)
		if !ok {
			response.Error(c, http.StatusInternalServerError, "invalid role format", nil)
			return
		}

		userRole, ok := domauth.Normalize(roleStr)
		if !ok {
			response.Error(c, http.StatusForbidden, "unknown role", nil)
			return
		}

		for _, req := range required {
			if userRole == req {
				c.Next()
				return
			}
		}

		err := errors.New("user does not have required role")
		response.Error(c, http.StatusForbidden, "insufficient permissions", err, map[string]interface{}{
			"required_roles": required,
			"user_role":      userRole,
		})
	}
}

// Composed middleware chains for the common route groups.

// AdminOnly guards admin routes (Auth + RequireRole).
func (m *AuthMiddleware) AdminOnly() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.Auth(),
		m.RequireRole(string(domauth.RoleAdmin)),
	}
}

// StaffOnly guards faculty/placement/coordination routes.
func (m *AuthMiddleware) StaffOnly() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.Auth(),
		m.RequireRole(
			string(domauth.RoleFaculty),
			string(domauth.RoleHOD),
			string(domauth.RolePlacementOffice),
			string(domauth.RolePlacementHead),
			string(domauth.RoleProgrammeCoordinator),
			string(domauth.RoleAdmin),
		),
	}
}

// WithRoles guards a route group with an explicit role allow-list.
func (m *AuthMiddleware) WithRoles(roles ...string) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.Auth(),
		m.RequireRole(roles...),
	}
}

// OptionalAuth sets user context when a valid token is present but never
// aborts.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("jti", claims.ID)
		c.Set("role", claims.Role)
		c.Set("portal", claims.Portal)
		c.Set("authenticated", true)

		c.Next()
	}
}

// extractToken extracts Bearer token from Authorization header
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	// Fallback to query param, used by the websocket upgrade
	token := c.Query("token")
	if token != "" {
		return token
	}

	return ""
}

// GetUserID gets the authenticated user ID from context
func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}

	id, ok := userID.(int64)
	return id, ok
}

// GetJTI gets the session JTI from context
func GetJTI(c *gin.Context) (string, bool) {
	jti, exists := c.Get("jti")
	if !exists {
		return "", false
	}

	jtiStr, ok := jti.(string)
	return jtiStr, ok
}

// HasRole checks the authenticated role against a selector, alias-aware.
func HasRole(c *gin.Context, role string) bool {
	raw, exists := c.Get("role")
	if !exists {
		return false
	}
	roleStr, ok := raw.(string)
	if !ok {
		return false
	}

	userRole, ok := domauth.Normalize(roleStr)
	if !ok {
		return false
	}
	want, ok := domauth.Normalize(role)
	if !ok {
		return false
	}
	return userRole == want
}
