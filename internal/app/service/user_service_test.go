package service

import (
	"strings"
	"testing"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/app/repository"
	"github.com/dalil-mashhad/dalil-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Create(t *testing.T) {
	testDB := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(testDB))

	tests := []struct {
		name    string
		input   CreateUserInput
		wantErr error
	}{
		{"Valid editor", CreateUserInput{Username: " editor ", Password: "password123", Name: "Editor", Role: model.RoleEditor}, nil},
		{"Missing name", CreateUserInput{Username: "nameless", Password: "password123", Role: model.RoleViewer}, ErrUserFieldsNeeded},
		{"Unknown role", CreateUserInput{Username: "owner", Password: "password123", Name: "Owner", Role: "OWNER"}, ErrInvalidRole},
		{"Short password", CreateUserInput{Username: "short", Password: "pw", Name: "Short", Role: model.RoleViewer}, util.ErrPasswordTooShort},
		{"Long password", CreateUserInput{Username: "long", Password: strings.Repeat("x", 100), Name: "Long", Role: model.RoleViewer}, util.ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Create(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "editor", user.Username)
			assert.True(t, user.IsActive)
			assert.True(t, util.VerifyPassword(user.PasswordHash, tt.input.Password))
		})
	}

	_, err := svc.Create(CreateUserInput{Username: "editor", Password: "password123", Name: "Again", Role: model.RoleEditor})
	assert.Error(t, err, "usernames are unique")
}

func TestUserService_SelfActionRefused(t *testing.T) {
	testDB := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(testDB))
	root := createUser(t, testDB, "root", model.RoleSuperAdmin, true)

	_, err := svc.ToggleActive(root.ID, root.ID)
	assert.ErrorIs(t, err, ErrSelfAction)
	assert.ErrorIs(t, svc.Delete(root.ID, root.ID), ErrSelfAction)

	var reloaded model.User
	require.NoError(t, testDB.First(&reloaded, root.ID).Error)
	assert.True(t, reloaded.IsActive)
}

func TestUserService_ToggleAndDelete(t *testing.T) {
	testDB := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(testDB))
	root := createUser(t, testDB, "root", model.RoleSuperAdmin, true)
	editor := createUser(t, testDB, "editor", model.RoleEditor, true)

	toggled, err := svc.ToggleActive(root.ID, editor.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	toggled, err = svc.ToggleActive(root.ID, editor.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)

	require.NoError(t, svc.Delete(root.ID, editor.ID))
	assert.ErrorIs(t, svc.Delete(root.ID, editor.ID), ErrUserNotFound)

	_, err = svc.ToggleActive(root.ID, editor.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	users, err := svc.List()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "root", users[0].Username)
}
