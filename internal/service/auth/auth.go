// internal/service/auth/auth.go
package auth

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ims-service/internal/domain/auth"
	xerrors "ims-service/internal/pkg/errors"
	"ims-service/internal/pkg/jwt"
	"ims-service/internal/pkg/session"
	ws "ims-service/internal/websocket"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo       auth.UserRepository
	jwtManager     *jwt.Manager
	sessionManager *session.Manager
	hub            *ws.Hub
	logger         *zap.Logger
}

func NewAuthService(
	userRepo auth.UserRepository,
	jwtManager *jwt.Manager,
	sessionManager *session.Manager,
	hub *ws.Hub,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		jwtManager:     jwtManager,
		sessionManager: sessionManager,
		hub:            hub,
		logger:         logger,
	}
}

// Login authenticates credentials and, when the portal admits the user's
// role, mints a token and persists the session. A portal/role mismatch is
// rejected before any session state is written.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, xerrors.ErrUnauthorized
	}

	if user.Status != auth.StatusActive {
		return nil, xerrors.ErrForbidden
	}

	var portal auth.Portal
	if req.Portal != "" {
		p, _, ok := auth.ParsePortal(req.Portal)
		if !ok {
			return nil, xerrors.ErrInvalidInput
		}
		if !p.Allows(user.Role) {
			s.logger.Warn("portal rejected login",
				zap.String("portal", string(p)),
				zap.String("role", string(user.Role)),
				zap.Int64("user_id", user.ID),
			)
			return nil, xerrors.RoleMismatch(string(p), string(user.Role))
		}
		portal = p
	}

	token, jti, err := s.jwtManager.Generator.GenerateAccessToken(user.ID, string(user.Role), string(portal))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.jwtManager.Generator.TTL)

	sess := &session.SessionData{
		JTI:            jti,
		UserID:         user.ID,
		Email:          user.Email,
		FullName:       user.FullName,
		Role:           string(user.Role),
		Portal:         string(portal),
		CompanyName:    user.CompanyName.String,
		HRName:         user.HRName.String,
		DepartmentID:   user.DepartmentID.Int64,
		IPAddress:      req.IPAddress,
		UserAgent:      req.UserAgent,
		LoginAt:        now,
		LastActivityAt: now,
		ExpiresAt:      expiresAt,
		IsActive:       true,
	}
	if err := s.sessionManager.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to record last login", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	s.logger.Info("user logged in",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.String("portal", string(portal)),
	)

	return &auth.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.jwtManager.Generator.TTL.Seconds()),
		ExpiresAt:   expiresAt,
		User:        userInfo(user),
	}, nil
}

// Register creates a recruiter account via the corporate portal. New
// recruiter accounts start active; the company profile they submit later
// goes through placement approval separately.
func (s *AuthService) Register(ctx context.Context, req *auth.RegisterRequest) (*auth.LoginResponse, error) {
	user := &auth.User{
		FullName:     req.FullName,
		Email:        req.Email,
		Role:         auth.RoleRecruiter,
		Status:       auth.StatusActive,
		CompanyName:  sql.NullString{String: req.CompanyName, Valid: req.CompanyName != ""},
		HRName:       sql.NullString{String: req.HRName, Valid: req.HRName != ""},
	}

	if err := s.createUser(ctx, user, req.Password); err != nil {
		return nil, err
	}

	return s.Login(ctx, &auth.LoginRequest{
		Email:     req.Email,
		Password:  req.Password,
		Portal:    string(auth.PortalCorporate),
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
	})
}

// RegisterStudent creates a student account via the student portal.
func (s *AuthService) RegisterStudent(ctx context.Context, req *auth.RegisterStudentRequest) (*auth.LoginResponse, error) {
	user := &auth.User{
		FullName:     req.FullName,
		Email:        req.Email,
		Role:         auth.RoleStudent,
		Status:       auth.StatusActive,
		DepartmentID: sql.NullInt64{Int64: req.DepartmentID, Valid: req.DepartmentID != 0},
	}

	if err := s.createUser(ctx, user, req.Password); err != nil {
		return nil, err
	}

	return s.Login(ctx, &auth.LoginRequest{
		Email:     req.Email,
		Password:  req.Password,
		Portal:    string(auth.PortalStudent),
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
	})
}

func (s *AuthService) createUser(ctx context.Context, user *auth.User, password string) error {
	exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return xerrors.ErrDuplicateEntry
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return nil
}

// Logout invalidates the session and blacklists the token. Idempotent:
// logging out an already-dead session succeeds.
func (s *AuthService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if err := s.sessionManager.InvalidateSession(ctx, claims.UserID, claims.ID); err != nil {
		return fmt.Errorf("failed to invalidate session: %w", err)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl > 0 {
		if err := s.sessionManager.BlacklistToken(ctx, claims.ID, ttl); err != nil {
			return fmt.Errorf("failed to blacklist token: %w", err)
		}
	}

	s.logger.Info("user logged out", zap.Int64("user_id", claims.UserID))
	return nil
}

// Restore rebuilds the authenticated user from a bearer token, the page
// refresh path. A token whose session has been invalidated or corrupted
// reads as logged out.
func (s *AuthService) Restore(ctx context.Context, token string) (*auth.UserInfo, error) {
	claims, err := s.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	info := userInfo(user)
	return &info, nil
}

// ValidateToken verifies signature, blacklist and live session.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.Verifier.VerifyAccessToken(token)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}

	blacklisted, err := s.sessionManager.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if blacklisted {
		return nil, xerrors.ErrUnauthorized
	}

	if _, err := s.sessionManager.GetSession(ctx, claims.UserID, claims.ID); err != nil {
		return nil, xerrors.ErrSessionExpired
	}

	return claims, nil
}

// ChangePassword verifies the current password, swaps the hash and kills
// every other session the user holds.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentJTI string, req *auth.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return xerrors.ErrUnauthorized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	sessions, err := s.sessionManager.GetUserActiveSessions(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to enumerate sessions after password change",
			zap.Int64("user_id", userID), zap.Error(err))
		return nil
	}
	for _, sess := range sessions {
		if sess.JTI == currentJTI {
			continue
		}
		if err := s.sessionManager.InvalidateSession(ctx, userID, sess.JTI); err != nil {
			s.logger.Warn("failed to invalidate session",
				zap.Int64("user_id", userID), zap.String("jti", sess.JTI), zap.Error(err))
			continue
		}
		s.hub.ForceLogout(userID, sess.JTI, "password changed")
	}

	return nil
}

// UpdateProfile applies a partial profile update and returns the fresh
// profile.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req *auth.UpdateProfileRequest) (*auth.UserInfo, error) {
	if err := s.userRepo.UpdateProfile(ctx, userID, req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}

	info := userInfo(user)
	return &info, nil
}

// EnsureAdminExists provisions the bootstrap admin account from config.
// No-op when unconfigured or already present.
func (s *AuthService) EnsureAdminExists(ctx context.Context, email, password, fullName string) error {
	if email == "" || password == "" {
		return nil
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if exists {
		return nil
	}

	admin := &auth.User{
		FullName: fullName,
		Email:    email,
		Role:     auth.RoleAdmin,
		Status:   auth.StatusActive,
	}
	if err := s.createUser(ctx, admin, password); err != nil {
		return err
	}

	s.logger.Info("bootstrap admin provisioned", zap.String("email", email))
	return nil
}

func userInfo(u *auth.User) auth.UserInfo {
	return auth.UserInfo{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		Role:         u.Role,
		CompanyName:  u.CompanyName.String,
		HRName:       u.HRName.String,
		DepartmentID: u.DepartmentID.Int64,
	}
}
