// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"
	"strings"

	"ims-service/internal/domain/auth"
	"ims-service/internal/middleware"
	"ims-service/internal/pkg/response"
	service "ims-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates against a portal. Accepts JSON and form bodies.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationError(c, "invalid login request", err)
		return
	}
	req.IPAddress = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "login failed")
		return
	}

	response.Success(c, http.StatusOK, "login successful", result)
}

// Register creates a recruiter account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid registration request", err)
		return
	}
	req.IPAddress = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "registration failed")
		return
	}

	response.Success(c, http.StatusCreated, "account created", result)
}

// RegisterStudent creates a student account.
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	var req auth.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid registration request", err)
		return
	}
	req.IPAddress = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	result, err := h.authService.RegisterStudent(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "registration failed")
		return
	}

	response.Success(c, http.StatusCreated, "account created", result)
}

// Restore rebuilds the authenticated user from the bearer token, the page
// refresh path. An invalid token is a 401.
func (h *AuthHandler) Restore(c *gin.Context) {
	token := extractBearer(c)
	if token == "" {
		response.Unauthorized(c, "missing authorization token")
		return
	}

	user, err := h.authService.Restore(c.Request.Context(), token)
	if err != nil {
		response.FromError(c, err, "session invalid")
		return
	}

	response.Success(c, http.StatusOK, "session restored", gin.H{"user": user})
}

// Logout kills the current session. Requires Auth middleware.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := extractBearer(c)
	claims, err := h.authService.ValidateToken(c.Request.Context(), token)
	if err != nil {
		// An already-dead session logs out successfully.
		response.Success(c, http.StatusOK, "logged out", nil)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		response.FromError(c, err, "logout failed")
		return
	}

	response.Success(c, http.StatusOK, "logged out", nil)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	token := extractBearer(c)
	user, err := h.authService.Restore(c.Request.Context(), token)
	if err != nil {
		response.FromError(c, err, "failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, "profile retrieved", gin.H{"user": user})
}

// UpdateProfile applies a partial profile update.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	var req auth.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid profile update", err)
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		response.FromError(c, err, "failed to update profile")
		return
	}

	response.Success(c, http.StatusOK, "profile updated", gin.H{"user": user})
}

// ChangePassword rotates the password and revokes other sessions.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	jti := middleware.MustGetJTI(c)

	var req auth.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid password change request", err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, jti, &req); err != nil {
		response.FromError(c, err, "failed to change password")
		return
	}

	response.Success(c, http.StatusOK, "password changed", nil)
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
