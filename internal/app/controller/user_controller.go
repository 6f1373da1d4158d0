package controller

import (
	"net/http"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/app/service"
	apperrors "github.com/dalil-mashhad/dalil-backend/internal/errors"
	"github.com/dalil-mashhad/dalil-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// UserController manages back office accounts. Mounted behind SUPER_ADMIN only.
type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

type CreateUserRequest struct {
	Username string         `json:"username" binding:"required,max=100"`
	Password string         `json:"password" binding:"required"`
	Name     string         `json:"name" binding:"required,max=150"`
	Role     model.UserRole `json:"role" binding:"required"`
}

// GET /api/v1/admin/users
func (ctrl *UserController) List(c *gin.Context) {
	users, err := ctrl.userService.List()
	if err != nil {
		respondServiceError(c, err, "list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users})
}

// POST /api/v1/admin/users
func (ctrl *UserController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid user request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "البيانات المدخلة غير صحيحة")
		return
	}

	user, err := ctrl.userService.Create(service.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		respondServiceError(c, err, "create user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// PATCH /api/v1/admin/users/:id/toggle
func (ctrl *UserController) ToggleActive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, _ := middleware.GetUserID(c)

	user, err := ctrl.userService.ToggleActive(actorID, id)
	if err != nil {
		respondServiceError(c, err, "update user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// DELETE /api/v1/admin/users/:id
func (ctrl *UserController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, _ := middleware.GetUserID(c)

	if err := ctrl.userService.Delete(actorID, id); err != nil {
		respondServiceError(c, err, "delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تم حذف المستخدم"})
}
