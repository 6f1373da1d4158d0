package repository

import (
	"fmt"
	"testing"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestCategory(t *testing.T, db *gorm.DB, slug string) *model.Category {
	t.Helper()
	category := &model.Category{NameAr: "طب الأسنان", Icon: "🦷", Slug: slug}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createTestDoctor(t *testing.T, db *gorm.DB, categoryID uint, name string) *model.Doctor {
	t.Helper()
	doctor := &model.Doctor{
		NameAr:     name,
		TitleAr:    "أخصائي",
		BioAr:      "سيرة مختصرة",
		CategoryID: categoryID,
	}
	require.NoError(t, db.Create(doctor).Error)
	return doctor
}

func createTestAttractionCategory(t *testing.T, db *gorm.DB, slug string, active bool) *model.AttractionCategory {
	t.Helper()
	category := &model.AttractionCategory{NameAr: "حدائق", Icon: "🌳", Slug: slug, IsActive: active}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createTestAttraction(t *testing.T, db *gorm.DB, categoryID uint, name string) *model.Attraction {
	t.Helper()
	attraction := &model.Attraction{
		NameAr:        name,
		DescriptionAr: "وصف",
		CategoryID:    categoryID,
		Address:       "مشهد",
		Slug:          fmt.Sprintf("%s-%d", name, categoryID),
		Images:        []string{},
	}
	require.NoError(t, db.Create(attraction).Error)
	return attraction
}

func createTestReview(t *testing.T, db *gorm.DB, kind model.SubjectType, subjectID uint, rating int, approved bool) model.SubjectReview {
	t.Helper()
	record := kind.NewReview(subjectID, model.ReviewContent{
		UserName:   "زائر",
		Rating:     rating,
		IsApproved: approved,
	})
	require.NoError(t, db.Create(record).Error)
	return record.ToSubjectReview()
}
