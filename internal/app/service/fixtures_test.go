package service

import (
	"testing"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testDB
}

func createDoctor(t *testing.T, testDB *gorm.DB) *model.Doctor {
	t.Helper()
	category := &model.Category{NameAr: "العظام", Icon: "🦴", Slug: "ortho"}
	require.NoError(t, testDB.Create(category).Error)

	doctor := &model.Doctor{
		NameAr:     "د. محمد",
		TitleAr:    "أخصائي عظام",
		BioAr:      "سيرة",
		CategoryID: category.ID,
	}
	require.NoError(t, testDB.Create(doctor).Error)
	return doctor
}

func createAttraction(t *testing.T, testDB *gorm.DB) *model.Attraction {
	t.Helper()
	category := &model.AttractionCategory{NameAr: "حدائق", Icon: "🌳", Slug: "parks-fixture", IsActive: true}
	require.NoError(t, testDB.Create(category).Error)

	attraction := &model.Attraction{
		NameAr:        "حديقة ملت",
		DescriptionAr: "حديقة كبيرة",
		CategoryID:    category.ID,
		Address:       "شارع وكيل آباد",
		Images:        []string{},
		Slug:          "mellat-park",
	}
	require.NoError(t, testDB.Create(attraction).Error)
	return attraction
}

func reloadDoctor(t *testing.T, testDB *gorm.DB, id uint) model.Doctor {
	t.Helper()
	var doctor model.Doctor
	require.NoError(t, testDB.First(&doctor, id).Error)
	return doctor
}

func reloadAttraction(t *testing.T, testDB *gorm.DB, id uint) model.Attraction {
	t.Helper()
	var attraction model.Attraction
	require.NoError(t, testDB.First(&attraction, id).Error)
	return attraction
}
