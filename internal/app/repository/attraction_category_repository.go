package repository

import (
	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	"gorm.io/gorm"
)

type AttractionCategoryRepository interface {
	Create(category *model.AttractionCategory) error
	// FindAll fills AttractionCount with the number of active attractions.
	FindAll(activeOnly bool) ([]model.AttractionCategory, error)
	FindByID(id uint) (*model.AttractionCategory, error)
	FindBySlug(slug string) (*model.AttractionCategory, error)
	Update(category *model.AttractionCategory) error
	SetActive(id uint, active bool) error
	Delete(id uint) error
	CountAttractions(id uint) (int64, error)
	Count() (int64, error)
}

type attractionCategoryRepository struct {
	db *gorm.DB
}

func NewAttractionCategoryRepository(db *gorm.DB) AttractionCategoryRepository {
	return &attractionCategoryRepository{db: db}
}

func (r *attractionCategoryRepository) Create(category *model.AttractionCategory) error {
	logger.Debug("Creating attraction category in database", map[string]interface{}{
		"slug": category.Slug,
	})
	return r.db.Create(category).Error
}

func (r *attractionCategoryRepository) FindAll(activeOnly bool) ([]model.AttractionCategory, error) {
	query := r.db.Model(&model.AttractionCategory{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var categories []model.AttractionCategory
	if err := query.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return categories, nil
	}

	type countRow struct {
		CategoryID uint
		Count      int64
	}
	var rows []countRow
	err := r.db.Model(&model.Attraction{}).
		Select("category_id, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}
	for i := range categories {
		categories[i].AttractionCount = counts[categories[i].ID]
	}
	return categories, nil
}

func (r *attractionCategoryRepository) FindByID(id uint) (*model.AttractionCategory, error) {
	var category model.AttractionCategory
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *attractionCategoryRepository) FindBySlug(slug string) (*model.AttractionCategory, error) {
	var category model.AttractionCategory
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *attractionCategoryRepository) Update(category *model.AttractionCategory) error {
	result := r.db.Model(&model.AttractionCategory{}).
		Where("id = ?", category.ID).
		Select("name_ar", "name_en", "icon", "slug", "is_active", "seo_title", "seo_description", "seo_keywords").
		Updates(category)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *attractionCategoryRepository) SetActive(id uint, active bool) error {
	result := r.db.Model(&model.AttractionCategory{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *attractionCategoryRepository) Delete(id uint) error {
	result := r.db.Delete(&model.AttractionCategory{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *attractionCategoryRepository) CountAttractions(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Attraction{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

func (r *attractionCategoryRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.AttractionCategory{}).Count(&count).Error
	return count, err
}
