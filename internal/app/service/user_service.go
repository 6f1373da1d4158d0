package service

import (
	"errors"
	"strings"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/app/repository"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	"github.com/dalil-mashhad/dalil-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrSelfAction       = errors.New("cannot delete or disable your own account")
	ErrInvalidRole      = errors.New("invalid role")
	ErrUserFieldsNeeded = errors.New("username and name are required")
)

type CreateUserInput struct {
	Username string
	Password string
	Name     string
	Role     model.UserRole
}

// UserService manages back office accounts. Routes reach it only as SUPER_ADMIN.
type UserService interface {
	Create(input CreateUserInput) (*model.User, error)
	List() ([]model.User, error)
	ToggleActive(actorID, userID uint) (*model.User, error)
	Delete(actorID, userID uint) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(input CreateUserInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	name := strings.TrimSpace(input.Name)
	if username == "" || name == "" {
		return nil, ErrUserFieldsNeeded
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if err := util.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"username": username,
		})
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Role:         input.Role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("User created", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
	return user, nil
}

func (s *userService) List() ([]model.User, error) {
	return s.userRepo.FindAll()
}

func (s *userService) ToggleActive(actorID, userID uint) (*model.User, error) {
	if actorID == userID {
		return nil, ErrSelfAction
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := s.userRepo.SetActive(userID, !user.IsActive); err != nil {
		return nil, err
	}
	user.IsActive = !user.IsActive

	logger.Info("User active state toggled", map[string]interface{}{
		"actor_id":  actorID,
		"user_id":   userID,
		"is_active": user.IsActive,
	})
	return user, nil
}

func (s *userService) Delete(actorID, userID uint) error {
	if actorID == userID {
		logger.Warn("User tried to delete own account", map[string]interface{}{
			"user_id": userID,
		})
		return ErrSelfAction
	}

	if err := s.userRepo.Delete(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	logger.Info("User deleted", map[string]interface{}{
		"actor_id": actorID,
		"user_id":  userID,
	})
	return nil
}
