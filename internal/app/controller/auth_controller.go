package controller

import (
	"errors"
	"net/http"

	"github.com/beautique/beautique-backend/internal/app/service"
	apperrors "github.com/beautique/beautique-backend/internal/errors"
	"github.com/beautique/beautique-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an admin and issues a JWT
// POST /api/v1/admin/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ValidationInvalidInput, "Username and password are required")
		return
	}

	token, admin, err := ctrl.authService.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid username or password")
		case errors.Is(err, service.ErrAdminInactive):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzForbidden, "This account has been deactivated")
		default:
			log.Error("Login failed", err, map[string]interface{}{
				"username": req.Username,
			})
			apperrors.InternalError(c, "Failed to log in")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": admin,
	})
}

// Logout blacklists the current token
// POST /api/v1/admin/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token := middleware.BearerToken(c)
	if token == "" {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), token); err != nil {
		log.Error("Failed to blacklist token on logout", err, nil)
		apperrors.InternalError(c, "Failed to log out")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// Me returns the authenticated admin profile
// GET /api/v1/admin/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	adminID, ok := middleware.GetAdminID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	admin, err := ctrl.authService.GetAdminByID(adminID)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			apperrors.Unauthorized(c, "Account no longer exists")
			return
		}
		log.Error("Failed to load admin profile", err, map[string]interface{}{
			"admin_id": adminID,
		})
		apperrors.InternalError(c, "Failed to load profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin": admin,
	})
}
