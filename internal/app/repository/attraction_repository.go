package repository

import (
	"fmt"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttractionFilter struct {
	CategoryID   *uint
	CategorySlug string
	PriceRange   *model.PriceRange
	Search       string
	FeaturedOnly bool
	ActiveOnly   bool
	NewestFirst  bool // ignore featured and rating ordering
	Limit        int
	Offset       int
}

type AttractionRepository interface {
	Create(attraction *model.Attraction) error
	FindByID(id uint) (*model.Attraction, error)
	FindBySlug(slug string) (*model.Attraction, error)
	FindWithFilter(filter AttractionFilter) ([]model.Attraction, int64, error)
	Update(attraction *model.Attraction) error
	SetActive(id uint, active bool) error
	SetFeatured(id uint, featured bool) error
	Delete(id uint) error
	Count() (int64, error)
}

type attractionRepository struct {
	db *gorm.DB
}

func NewAttractionRepository(db *gorm.DB) AttractionRepository {
	return &attractionRepository{db: db}
}

func (r *attractionRepository) Create(attraction *model.Attraction) error {
	logger.Debug("Creating attraction in database", map[string]interface{}{
		"name":        attraction.NameAr,
		"slug":        attraction.Slug,
		"category_id": attraction.CategoryID,
	})

	if err := r.db.Omit(clause.Associations).Create(attraction).Error; err != nil {
		logger.Error("Failed to create attraction in database", err, map[string]interface{}{
			"slug": attraction.Slug,
		})
		return err
	}
	return nil
}

func (r *attractionRepository) FindByID(id uint) (*model.Attraction, error) {
	var attraction model.Attraction
	if err := r.db.Preload("Category").First(&attraction, id).Error; err != nil {
		return nil, err
	}
	return &attraction, nil
}

func (r *attractionRepository) FindBySlug(slug string) (*model.Attraction, error) {
	var attraction model.Attraction
	if err := r.db.Preload("Category").Where("slug = ?", slug).First(&attraction).Error; err != nil {
		return nil, err
	}
	return &attraction, nil
}

// FindWithFilter orders featured first, then by rating and recency, unless NewestFirst is set.
func (r *attractionRepository) FindWithFilter(filter AttractionFilter) ([]model.Attraction, int64, error) {
	logger.Debug("Finding attractions with filter", map[string]interface{}{
		"category_id":   filter.CategoryID,
		"category_slug": filter.CategorySlug,
		"price_range":   filter.PriceRange,
		"search":        filter.Search,
		"active_only":   filter.ActiveOnly,
	})

	query := r.db.Model(&model.Attraction{})
	if filter.ActiveOnly {
		query = query.Where("attractions.is_active = ?", true)
	}
	if filter.FeaturedOnly {
		query = query.Where("attractions.is_featured = ?", true)
	}
	if filter.CategoryID != nil {
		query = query.Where("attractions.category_id = ?", *filter.CategoryID)
	}
	if filter.CategorySlug != "" {
		query = query.Joins("JOIN attraction_categories ON attraction_categories.id = attractions.category_id").
			Where("attraction_categories.slug = ?", filter.CategorySlug)
	}
	if filter.PriceRange != nil {
		query = query.Where("attractions.price_range = ?", *filter.PriceRange)
	}
	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("attractions.name_ar LIKE ? OR attractions.description_ar LIKE ? OR attractions.address LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if !filter.NewestFirst {
		query = query.
			Order("attractions.is_featured DESC").
			Order("attractions.rating DESC")
	}
	query = query.Order("attractions.created_at DESC").Order("attractions.id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var attractions []model.Attraction
	if err := query.Preload("Category").Find(&attractions).Error; err != nil {
		logger.Error("Failed to find attractions with filter", err)
		return nil, 0, err
	}
	return attractions, total, nil
}

func (r *attractionRepository) Update(attraction *model.Attraction) error {
	logger.Debug("Updating attraction in database", map[string]interface{}{
		"attraction_id": attraction.ID,
	})

	result := r.db.Model(&model.Attraction{}).
		Where("id = ?", attraction.ID).
		Select(
			"name_ar", "name_en", "description_ar", "description_en", "category_id",
			"address", "phone", "whatsapp", "website", "map_link", "map_image_url",
			"images", "price_range", "opening_hours", "slug",
			"seo_title", "seo_description", "seo_keywords",
		).
		Updates(attraction)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *attractionRepository) SetActive(id uint, active bool) error {
	return r.setFlag(id, "is_active", active)
}

func (r *attractionRepository) SetFeatured(id uint, featured bool) error {
	return r.setFlag(id, "is_featured", featured)
}

func (r *attractionRepository) setFlag(id uint, column string, value bool) error {
	result := r.db.Model(&model.Attraction{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *attractionRepository) Delete(id uint) error {
	logger.Debug("Deleting attraction from database", map[string]interface{}{
		"attraction_id": id,
	})

	result := r.db.Delete(&model.Attraction{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *attractionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Attraction{}).Count(&count).Error
	return count, err
}
