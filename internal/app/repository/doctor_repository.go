package repository

import (
	"fmt"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DoctorSort string

const (
	DoctorSortRating DoctorSort = "rating"
	DoctorSortViews  DoctorSort = "views"
	DoctorSortLikes  DoctorSort = "likes"
	DoctorSortNewest DoctorSort = "newest"
)

type DoctorFilter struct {
	CategoryID *uint
	Search     string
	ActiveOnly bool
	SortBy     DoctorSort
	Limit      int
	Offset     int
}

type DoctorRepository interface {
	Create(doctor *model.Doctor) error
	FindByID(id uint) (*model.Doctor, error)
	FindWithFilter(filter DoctorFilter) ([]model.Doctor, int64, error)
	Update(doctor *model.Doctor) error
	SetActive(id uint, active bool) error
	Delete(id uint) error
	Count() (int64, error)
}

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(doctor *model.Doctor) error {
	logger.Debug("Creating doctor in database", map[string]interface{}{
		"name":        doctor.NameAr,
		"category_id": doctor.CategoryID,
	})

	if err := r.db.Omit(clause.Associations).Create(doctor).Error; err != nil {
		logger.Error("Failed to create doctor in database", err, map[string]interface{}{
			"name":        doctor.NameAr,
			"category_id": doctor.CategoryID,
		})
		return err
	}

	logger.Debug("Doctor created in database", map[string]interface{}{
		"doctor_id": doctor.ID,
	})
	return nil
}

func (r *doctorRepository) FindByID(id uint) (*model.Doctor, error) {
	logger.Debug("Finding doctor by ID in database", map[string]interface{}{
		"doctor_id": id,
	})

	var doctor model.Doctor
	if err := r.db.Preload("Category").First(&doctor, id).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindWithFilter(filter DoctorFilter) ([]model.Doctor, int64, error) {
	logger.Debug("Finding doctors with filter", map[string]interface{}{
		"category_id": filter.CategoryID,
		"search":      filter.Search,
		"active_only": filter.ActiveOnly,
		"sort_by":     filter.SortBy,
		"limit":       filter.Limit,
		"offset":      filter.Offset,
	})

	query := r.db.Model(&model.Doctor{})
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("name_ar LIKE ? OR title_ar LIKE ? OR bio_ar LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.SortBy {
	case DoctorSortViews:
		query = query.Order("views_count DESC")
	case DoctorSortLikes:
		query = query.Order("likes_count DESC")
	case DoctorSortNewest:
		query = query.Order("created_at DESC")
	default:
		query = query.Order("rating DESC")
	}
	query = query.Order("id ASC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var doctors []model.Doctor
	if err := query.Preload("Category").Find(&doctors).Error; err != nil {
		logger.Error("Failed to find doctors with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, 0, err
	}

	logger.Debug("Doctors found with filter", map[string]interface{}{
		"count": len(doctors),
		"total": total,
	})
	return doctors, total, nil
}

// Update saves the editable columns. Caches and activity flags have their own writers.
func (r *doctorRepository) Update(doctor *model.Doctor) error {
	logger.Debug("Updating doctor in database", map[string]interface{}{
		"doctor_id": doctor.ID,
	})

	result := r.db.Model(&model.Doctor{}).
		Where("id = ?", doctor.ID).
		Select("name_ar", "title_ar", "bio_ar", "phone", "whatsapp", "experience", "location_ar", "image_url", "category_id").
		Updates(doctor)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *doctorRepository) SetActive(id uint, active bool) error {
	result := r.db.Model(&model.Doctor{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *doctorRepository) Delete(id uint) error {
	logger.Debug("Deleting doctor from database", map[string]interface{}{
		"doctor_id": id,
	})

	result := r.db.Delete(&model.Doctor{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *doctorRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Doctor{}).Count(&count).Error
	return count, err
}
