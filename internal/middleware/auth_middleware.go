package middleware

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/app/service"
	"github.com/dalil-mashhad/dalil-backend/internal/errors"
	"github.com/dalil-mashhad/dalil-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

// Context keys for the authenticated back office user.
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
	UserRoleKey = "user_role"
	TokenKey    = "session_token"
)

type AuthMiddleware struct {
	authService service.AuthService
	cookieName  string
}

func NewAuthMiddleware(authService service.AuthService, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		cookieName:  cookieName,
	}
}

// ExtractToken reads a Bearer header first, then the session cookie.
func ExtractToken(c *gin.Context, cookieName string) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || scheme != "Bearer" || strings.TrimSpace(token) == "" {
			return "", false
		}
		return strings.TrimSpace(token), true
	}
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

// Authenticate requires a valid session and loads the current user.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token, ok := ExtractToken(c, m.cookieName)
		if !ok {
			log.Warn("Missing or malformed session token", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := m.authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			log.Warn("Session validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			switch {
			case stderrors.Is(err, util.ErrExpiredToken):
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "انتهت صلاحية الجلسة، يرجى تسجيل الدخول مجدداً")
			case stderrors.Is(err, service.ErrTokenRevoked):
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenRevoked, "تم تسجيل الخروج، يرجى تسجيل الدخول مجدداً")
			case stderrors.Is(err, util.ErrInvalidToken), stderrors.Is(err, service.ErrUserNotFound):
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "جلسة غير صالحة")
			default:
				errors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UsernameKey, user.Username)
		c.Set(UserRoleKey, user.Role)
		c.Set(TokenKey, token)

		log.Debug("User authenticated", map[string]interface{}{
			"user_id": user.ID,
			"role":    user.Role,
		})
		c.Next()
	}
}

// RequireRole must run after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		role, exists := GetUserRole(c)
		if !exists {
			log.Warn("Role information not found in context", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzRoleNotFound, "تعذر تحديد صلاحيات المستخدم")
			c.Abort()
			return
		}

		if model.HasRole(role, roles) {
			c.Next()
			return
		}

		userID, _ := GetUserID(c)
		log.Warn("Insufficient permissions", map[string]interface{}{
			"user_id":        userID,
			"user_role":      role,
			"required_roles": roles,
			"path":           c.Request.URL.Path,
		})
		errors.Forbidden(c, "")
		c.Abort()
	}
}

func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUserRole returns the session role; public requests have none.
func GetUserRole(c *gin.Context) (model.UserRole, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	r, ok := role.(model.UserRole)
	return r, ok
}

func GetToken(c *gin.Context) string {
	return c.GetString(TokenKey)
}
