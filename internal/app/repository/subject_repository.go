package repository

import (
	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	"gorm.io/gorm"
)

// SubjectRepository maintains the denormalized caches shared by doctors and attractions.
type SubjectRepository interface {
	WithTx(tx *gorm.DB) SubjectRepository
	Exists(kind model.SubjectType, id uint) (bool, error)
	AdjustLikes(kind model.SubjectType, id uint, delta int) error
	SetLikes(kind model.SubjectType, id uint, likes int64) error
	SetRating(kind model.SubjectType, id uint, rating float64) error
	IncrementViews(kind model.SubjectType, id uint) error
	ListIDs(kind model.SubjectType) ([]uint, error)
}

type subjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) WithTx(tx *gorm.DB) SubjectRepository {
	return &subjectRepository{db: tx}
}

func (r *subjectRepository) Exists(kind model.SubjectType, id uint) (bool, error) {
	var count int64
	if err := r.db.Model(kind.SubjectModel()).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AdjustLikes adds delta to likes_count in a single statement.
// A missing subject yields gorm.ErrRecordNotFound.
func (r *subjectRepository) AdjustLikes(kind model.SubjectType, id uint, delta int) error {
	logger.Debug("Adjusting subject likes count", map[string]interface{}{
		"subject_type": kind,
		"subject_id":   id,
		"delta":        delta,
	})

	result := r.db.Model(kind.SubjectModel()).
		Where("id = ?", id).
		UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *subjectRepository) SetLikes(kind model.SubjectType, id uint, likes int64) error {
	return r.db.Model(kind.SubjectModel()).
		Where("id = ?", id).
		UpdateColumn("likes_count", likes).Error
}

// SetRating writes the cached average. Unchanged values report zero affected rows
// on MySQL, so callers check existence themselves.
func (r *subjectRepository) SetRating(kind model.SubjectType, id uint, rating float64) error {
	logger.Debug("Setting subject rating", map[string]interface{}{
		"subject_type": kind,
		"subject_id":   id,
		"rating":       rating,
	})

	return r.db.Model(kind.SubjectModel()).
		Where("id = ?", id).
		UpdateColumn("rating", rating).Error
}

func (r *subjectRepository) IncrementViews(kind model.SubjectType, id uint) error {
	return r.db.Model(kind.SubjectModel()).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
}

func (r *subjectRepository) ListIDs(kind model.SubjectType) ([]uint, error) {
	var ids []uint
	err := r.db.Model(kind.SubjectModel()).Order("id").Pluck("id", &ids).Error
	return ids, err
}
