package repository

import (
	"testing"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAttractionTest(t *testing.T) (*gorm.DB, AttractionRepository, AttractionCategoryRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return testDB, NewAttractionRepository(testDB), NewAttractionCategoryRepository(testDB)
}

func TestAttractionRepository_CreateAndFind(t *testing.T) {
	testDB, repo, _ := setupAttractionTest(t)
	category := createTestAttractionCategory(t, testDB, "tourist-sites-test", true)

	price := model.PriceModerate
	attraction := &model.Attraction{
		NameAr:        "حرم الإمام الرضا",
		DescriptionAr: "المرقد الشريف",
		CategoryID:    category.ID,
		Address:       "وسط المدينة",
		Images:        []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		PriceRange:    &price,
		Slug:          "imam-reza-shrine",
	}
	require.NoError(t, repo.Create(attraction))

	found, err := repo.FindBySlug("imam-reza-shrine")
	require.NoError(t, err)
	assert.Equal(t, attraction.ID, found.ID)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, []string(found.Images))
	require.NotNil(t, found.PriceRange)
	assert.Equal(t, model.PriceModerate, *found.PriceRange)
	require.NotNil(t, found.Category)
	assert.True(t, found.IsActive)

	duplicate := *attraction
	duplicate.ID = 0
	assert.Error(t, repo.Create(&duplicate), "slug is unique")
}

func TestAttractionRepository_FindWithFilter(t *testing.T) {
	testDB, repo, _ := setupAttractionTest(t)
	parks := createTestAttractionCategory(t, testDB, "parks-test", true)
	cafes := createTestAttractionCategory(t, testDB, "cafes-test", true)

	plain := createTestAttraction(t, testDB, parks.ID, "mellat")
	featured := createTestAttraction(t, testDB, parks.ID, "kooh-sangi")
	cafe := createTestAttraction(t, testDB, cafes.ID, "cafe")
	require.NoError(t, repo.SetFeatured(featured.ID, true))
	require.NoError(t, repo.SetActive(cafe.ID, false))

	luxury := model.PriceLuxury
	require.NoError(t, testDB.Model(plain).Update("price_range", luxury).Error)

	tests := []struct {
		name    string
		filter  AttractionFilter
		wantIDs []uint
	}{
		{name: "Featured first", filter: AttractionFilter{ActiveOnly: true}, wantIDs: []uint{featured.ID, plain.ID}},
		{name: "Category slug", filter: AttractionFilter{CategorySlug: "cafes-test"}, wantIDs: []uint{cafe.ID}},
		{name: "Category id active", filter: AttractionFilter{CategoryID: &cafes.ID, ActiveOnly: true}, wantIDs: []uint{}},
		{name: "Price range", filter: AttractionFilter{PriceRange: &luxury}, wantIDs: []uint{plain.ID}},
		{name: "Featured only", filter: AttractionFilter{FeaturedOnly: true}, wantIDs: []uint{featured.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attractions, total, err := repo.FindWithFilter(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.wantIDs)), total)

			ids := make([]uint, 0, len(attractions))
			for _, a := range attractions {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestAttractionCategoryRepository(t *testing.T) {
	testDB, attractions, repo := setupAttractionTest(t)

	active := createTestAttractionCategory(t, testDB, "active-test", true)
	inactive := createTestAttractionCategory(t, testDB, "inactive-test", false)
	createTestAttraction(t, testDB, active.ID, "one")
	hidden := createTestAttraction(t, testDB, active.ID, "two")
	require.NoError(t, attractions.SetActive(hidden.ID, false))

	t.Run("Inactive flag persisted on create", func(t *testing.T) {
		found, err := repo.FindByID(inactive.ID)
		require.NoError(t, err)
		assert.False(t, found.IsActive)
	})

	t.Run("Active only with counts", func(t *testing.T) {
		categories, err := repo.FindAll(true)
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, active.ID, categories[0].ID)
		assert.Equal(t, int64(1), categories[0].AttractionCount)
	})

	t.Run("All", func(t *testing.T) {
		categories, err := repo.FindAll(false)
		require.NoError(t, err)
		assert.Len(t, categories, 2)
	})

	t.Run("Count attractions includes inactive", func(t *testing.T) {
		count, err := repo.CountAttractions(active.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("Toggle and delete", func(t *testing.T) {
		require.NoError(t, repo.SetActive(inactive.ID, true))
		bySlug, err := repo.FindBySlug("inactive-test")
		require.NoError(t, err)
		assert.True(t, bySlug.IsActive)

		require.NoError(t, repo.Delete(inactive.ID))
		assert.ErrorIs(t, repo.Delete(inactive.ID), gorm.ErrRecordNotFound)
	})
}
