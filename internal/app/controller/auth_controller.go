package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/dalil-mashhad/dalil-backend/config"
	"github.com/dalil-mashhad/dalil-backend/internal/app/service"
	apperrors "github.com/dalil-mashhad/dalil-backend/internal/errors"
	"github.com/dalil-mashhad/dalil-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
	session     config.SessionConfig
	tokenExpiry time.Duration
}

func NewAuthController(authService service.AuthService, session config.SessionConfig, tokenExpiry time.Duration) *AuthController {
	return &AuthController{
		authService: authService,
		session:     session,
		tokenExpiry: tokenExpiry,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required"`
}

func (ctrl *AuthController) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ctrl.session.CookieName, token, maxAge, "/", "", ctrl.session.Secure, true)
}

// Login handles back office sign-in
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "اسم المستخدم وكلمة المرور مطلوبان")
		return
	}

	user, token, err := ctrl.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrCredentialsMissing) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "اسم المستخدم أو كلمة المرور غير صحيحة")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"username": req.Username,
		})
		apperrors.InternalError(c, "")
		return
	}

	ctrl.setSessionCookie(c, token, int(ctrl.tokenExpiry.Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"token":      token,
		"expires_in": int(ctrl.tokenExpiry.Seconds()),
	})
}

// Logout revokes the current token when a blacklist is configured and clears the cookie
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if token, ok := middleware.ExtractToken(c, ctrl.session.CookieName); ok {
		if err := ctrl.authService.Logout(c.Request.Context(), token); err != nil {
			log.Error("Failed to revoke session", err)
			apperrors.InternalError(c, "")
			return
		}
	}

	ctrl.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "تم تسجيل الخروج"})
}

// Me returns the signed-in user
// GET /api/v1/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.Me(userID)
	if err != nil {
		respondServiceError(c, err, "get user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
