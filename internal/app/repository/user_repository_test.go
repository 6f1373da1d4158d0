package repository

import (
	"testing"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserTest(t *testing.T) (*gorm.DB, UserRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewUserRepository(testDB)
	return testDB, repo
}

func TestUserRepository_Create(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	tests := []struct {
		name    string
		user    *model.User
		wantErr bool
	}{
		{
			name: "Valid user",
			user: &model.User{
				Username:     "editor1",
				PasswordHash: "hashedpassword",
				Name:         "محرر",
				Role:         model.RoleEditor,
			},
			wantErr: false,
		},
		{
			name: "Duplicate username",
			user: &model.User{
				Username:     "editor1",
				PasswordHash: "hashedpassword",
				Name:         "محرر آخر",
				Role:         model.RoleViewer,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(tt.user)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotZero(t, tt.user.ID)
				assert.True(t, tt.user.IsActive)
			}
		})
	}
}

func TestUserRepository_Find(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := &model.User{
		Username:     "admin",
		PasswordHash: "hashedpassword",
		Name:         "مدير",
		Role:         model.RoleAdmin,
	}
	require.NoError(t, repo.Create(user))

	t.Run("By ID", func(t *testing.T) {
		found, err := repo.FindByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "admin", found.Username)
		assert.Equal(t, model.RoleAdmin, found.Role)
	})

	t.Run("By username", func(t *testing.T) {
		found, err := repo.FindByUsername("admin")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := repo.FindByUsername("ghost")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("All", func(t *testing.T) {
		users, err := repo.FindAll()
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}

func TestUserRepository_SetActiveAndDelete(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	user := &model.User{Username: "viewer", PasswordHash: "x", Name: "مشاهد", Role: model.RoleViewer}
	require.NoError(t, repo.Create(user))

	require.NoError(t, repo.SetActive(user.ID, false))
	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)

	require.NoError(t, repo.Delete(user.ID))
	assert.ErrorIs(t, repo.Delete(user.ID), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.SetActive(user.ID, true), gorm.ErrRecordNotFound)
}
