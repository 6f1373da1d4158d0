package repository

import (
	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	"gorm.io/gorm"
)

// CategoryWithCount is a doctor specialty with the number of doctors listed under it.
type CategoryWithCount struct {
	model.Category
	DoctorCount int64 `json:"doctor_count"`
}

type CategoryRepository interface {
	Create(category *model.Category) error
	FindAll() ([]CategoryWithCount, error)
	FindByID(id uint) (*model.Category, error)
	FindBySlug(slug string) (*model.Category, error)
	Update(category *model.Category) error
	Delete(id uint) error
	CountDoctors(id uint) (int64, error)
	Count() (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	logger.Debug("Creating category in database", map[string]interface{}{
		"name": category.NameAr,
		"slug": category.Slug,
	})
	return r.db.Create(category).Error
}

func (r *categoryRepository) FindAll() ([]CategoryWithCount, error) {
	var categories []CategoryWithCount
	err := r.db.Model(&model.Category{}).
		Select("categories.*, COUNT(doctors.id) AS doctor_count").
		Joins("LEFT JOIN doctors ON doctors.category_id = categories.id AND doctors.is_active = ?", true).
		Group("categories.id").
		Order("categories.name_ar ASC").
		Scan(&categories).Error
	return categories, err
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindBySlug(slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Update(category *model.Category) error {
	result := r.db.Model(&model.Category{}).
		Where("id = ?", category.ID).
		Select("name_ar", "icon", "slug").
		Updates(category)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(id uint) error {
	logger.Debug("Deleting category from database", map[string]interface{}{
		"category_id": id,
	})

	result := r.db.Delete(&model.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *categoryRepository) CountDoctors(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Doctor{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

func (r *categoryRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Category{}).Count(&count).Error
	return count, err
}
