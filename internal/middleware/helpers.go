// internal/middleware/helpers.go
package middleware

import (
	"github.com/gin-gonic/gin"

	domauth "ims-service/internal/domain/auth"
)

// MustGetUserID gets the user ID from context or panics
func MustGetUserID(c *gin.Context) int64 {
	userID, exists := GetUserID(c)
	if !exists {
		panic("user_id not found in context")
	}
	return userID
}

// MustGetJTI gets JTI from context or panics
func MustGetJTI(c *gin.Context) string {
	jti, exists := GetJTI(c)
	if !exists {
		panic("jti not found in context")
	}
	return jti
}

// GetRole gets the canonical role from context
func GetRole(c *gin.Context) (domauth.Role, bool) {
	raw, exists := c.Get("role")
	if !exists {
		return "", false
	}
	roleStr, ok := raw.(string)
	if !ok {
		return "", false
	}
	return domauth.Normalize(roleStr)
}

// IsAuthenticated checks if request is authenticated
func IsAuthenticated(c *gin.Context) bool {
	_, exists := c.Get("user_id")
	return exists
}

// IsAdmin checks if the user is an admin
func IsAdmin(c *gin.Context) bool {
	return HasRole(c, string(domauth.RoleAdmin))
}

// IsStaff checks if the user holds any staff role
func IsStaff(c *gin.Context) bool {
	role, ok := GetRole(c)
	if !ok {
		return false
	}
	switch role {
	case domauth.RoleFaculty, domauth.RoleHOD, domauth.RolePlacementOffice,
		domauth.RolePlacementHead, domauth.RoleProgrammeCoordinator, domauth.RoleAdmin:
		return true
	}
	return false
}
