package repository

import (
	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	"gorm.io/gorm"
)

// LikeRepository stores visitor likes for both subject kinds.
// A row's existence is the liked state.
type LikeRepository interface {
	WithTx(tx *gorm.DB) LikeRepository
	Exists(kind model.SubjectType, subjectID uint, visitor string) (bool, error)
	Create(kind model.SubjectType, subjectID uint, visitor string) error
	// Delete removes the pair and reports whether a row was there.
	Delete(kind model.SubjectType, subjectID uint, visitor string) (bool, error)
	CountForSubject(kind model.SubjectType, subjectID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) WithTx(tx *gorm.DB) LikeRepository {
	return &likeRepository{db: tx}
}

func (r *likeRepository) Exists(kind model.SubjectType, subjectID uint, visitor string) (bool, error) {
	var count int64
	err := r.db.Model(kind.LikeModel()).
		Where(kind.ForeignKey()+" = ? AND ip_address = ?", subjectID, visitor).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) Create(kind model.SubjectType, subjectID uint, visitor string) error {
	logger.Debug("Creating like in database", map[string]interface{}{
		"subject_type": kind,
		"subject_id":   subjectID,
		"visitor":      visitor,
	})

	return r.db.Create(kind.NewLike(subjectID, visitor)).Error
}

func (r *likeRepository) Delete(kind model.SubjectType, subjectID uint, visitor string) (bool, error) {
	result := r.db.
		Where(kind.ForeignKey()+" = ? AND ip_address = ?", subjectID, visitor).
		Delete(kind.LikeModel())
	if result.Error != nil {
		return false, result.Error
	}

	logger.Debug("Deleted like from database", map[string]interface{}{
		"subject_type":  kind,
		"subject_id":    subjectID,
		"visitor":       visitor,
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected > 0, nil
}

func (r *likeRepository) CountForSubject(kind model.SubjectType, subjectID uint) (int64, error) {
	var count int64
	err := r.db.Model(kind.LikeModel()).
		Where(kind.ForeignKey()+" = ?", subjectID).
		Count(&count).Error
	return count, err
}
