package service

import (
	"context"
	"errors"
	"time"

	"github.com/beautique/beautique-backend/internal/app/model"
	"github.com/beautique/beautique-backend/internal/app/repository"
	"github.com/beautique/beautique-backend/pkg/logger"
	"github.com/beautique/beautique-backend/pkg/redis"
	"github.com/beautique/beautique-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAdminInactive      = errors.New("admin account is deactivated")
	ErrAdminNotFound      = errors.New("admin user not found")
)

type AuthService interface {
	Login(username, password string) (string, *model.AdminUser, error)
	Logout(ctx context.Context, token string) error
	GetAdminByID(id uint) (*model.AdminUser, error)
	EnsureAdmin(username, email, password string) error
}

type authService struct {
	adminRepo   repository.AdminRepository
	jwtSecret   string
	tokenExpiry time.Duration
}

func NewAuthService(adminRepo repository.AdminRepository, jwtSecret string, tokenExpiry time.Duration) AuthService {
	return &authService{
		adminRepo:   adminRepo,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

func (s *authService) Login(username, password string) (string, *model.AdminUser, error) {
	admin, err := s.adminRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login attempt for unknown admin", map[string]interface{}{
				"username": username,
			})
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !admin.IsActive {
		logger.Warn("Login attempt for deactivated admin", map[string]interface{}{
			"username": username,
		})
		return "", nil, ErrAdminInactive
	}

	if !util.VerifyPassword(admin.PasswordHash, password) {
		logger.Warn("Login attempt with wrong password", map[string]interface{}{
			"username": username,
		})
		return "", nil, ErrInvalidCredentials
	}

	token, err := util.GenerateAdminToken(admin.ID, admin.Username, admin.Role, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to issue admin token", err, map[string]interface{}{
			"username": username,
		})
		return "", nil, err
	}

	if err := s.adminRepo.TouchLastLogin(admin.ID, time.Now()); err != nil {
		// Login still succeeds; last_login is informational
		logger.Warn("Failed to record last login", map[string]interface{}{
			"admin_id": admin.ID,
		})
	}

	logger.Info("Admin logged in", map[string]interface{}{
		"admin_id": admin.ID,
		"username": admin.Username,
	})

	return token, admin, nil
}

// Logout blacklists the token for its remaining lifetime. Without Redis the
// token simply expires on its own.
func (s *authService) Logout(ctx context.Context, token string) error {
	if !redis.Available() {
		logger.Debug("Redis unavailable, skipping token blacklist", nil)
		return nil
	}
	return redis.BlacklistToken(ctx, token, s.tokenExpiry)
}

func (s *authService) GetAdminByID(id uint) (*model.AdminUser, error) {
	admin, err := s.adminRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
func (s *authService) EnsureAdmin(username, email, password string) error {
	_, err := s.adminRepo.FindByUsername(username)
	if err == nil {
		logger.Debug("Admin account already exists", map[string]interface{}{
			"username": username,
		})
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := util.ValidatePassword(password); err != nil {
		return err
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &model.AdminUser{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         "admin",
		IsActive:     true,
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return err
	}

	logger.Info("Bootstrap admin account created", map[string]interface{}{
		"username": username,
	})
	return nil
}
