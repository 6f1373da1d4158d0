package repository

import (
	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewStatus string

const (
	ReviewStatusAll      ReviewStatus = ""
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
)

type ReviewFilter struct {
	Kind       model.SubjectType
	Status     ReviewStatus
	SubjectID  *uint
	// NewestOnly drops the pending-first grouping.
	NewestOnly bool
	Limit      int
	Offset     int
}

// RatingSummary is the aggregate over a subject's approved reviews.
type RatingSummary struct {
	Average float64
	Count   int64
}

type ReviewRepository interface {
	WithTx(tx *gorm.DB) ReviewRepository
	Create(review model.ReviewRecord) error
	FindByID(kind model.SubjectType, id uint) (*model.SubjectReview, error)
	SetApproved(kind model.SubjectType, id uint, approved bool) error
	Delete(kind model.SubjectType, id uint) error
	List(filter ReviewFilter) ([]model.SubjectReview, int64, error)
	ListApprovedForSubject(kind model.SubjectType, subjectID uint, limit int) ([]model.SubjectReview, error)
	SummarizeApproved(kind model.SubjectType, subjectID uint) (RatingSummary, error)
	CountByStatus(kind model.SubjectType, status ReviewStatus) (int64, error)
	CreateReply(reply *model.ReviewReply) error
	ListReplies(reviewID uint) ([]model.ReviewReply, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) WithTx(tx *gorm.DB) ReviewRepository {
	return &reviewRepository{db: tx}
}

// subjectReviewColumns exposes the kind's foreign key as subject_id.
func subjectReviewColumns(kind model.SubjectType) string {
	return "id, " + kind.ForeignKey() + " AS subject_id, user_name, user_email, rating, comment, is_approved, created_at"
}

func withSubjectType(kind model.SubjectType, reviews []model.SubjectReview) {
	for i := range reviews {
		reviews[i].SubjectType = kind
	}
}

func (r *reviewRepository) Create(review model.ReviewRecord) error {
	if err := r.db.Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err)
		return err
	}

	view := review.ToSubjectReview()
	logger.Debug("Review created in database", map[string]interface{}{
		"review_id":    view.ID,
		"subject_type": view.SubjectType,
		"subject_id":   view.SubjectID,
		"rating":       view.Rating,
	})
	return nil
}

func (r *reviewRepository) FindByID(kind model.SubjectType, id uint) (*model.SubjectReview, error) {
	var review model.SubjectReview
	err := r.db.Table(kind.ReviewTable()).
		Select(subjectReviewColumns(kind)).
		Where("id = ?", id).
		Take(&review).Error
	if err != nil {
		return nil, err
	}
	review.SubjectType = kind
	return &review, nil
}

func (r *reviewRepository) SetApproved(kind model.SubjectType, id uint, approved bool) error {
	logger.Debug("Updating review approval in database", map[string]interface{}{
		"subject_type": kind,
		"review_id":    id,
		"approved":     approved,
	})

	return r.db.Model(kind.ReviewModel()).
		Where("id = ?", id).
		UpdateColumn("is_approved", approved).Error
}

// Delete removes the review; a missing row yields gorm.ErrRecordNotFound.
func (r *reviewRepository) Delete(kind model.SubjectType, id uint) error {
	result := r.db.Where("id = ?", id).Delete(kind.ReviewModel())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Review deleted from database", map[string]interface{}{
		"subject_type": kind,
		"review_id":    id,
	})
	return nil
}

// List returns reviews of one kind, pending first and newest first within each group.
func (r *reviewRepository) List(filter ReviewFilter) ([]model.SubjectReview, int64, error) {
	query := applyReviewStatus(r.db.Table(filter.Kind.ReviewTable()), filter.Status)
	if filter.SubjectID != nil {
		query = query.Where(filter.Kind.ForeignKey()+" = ?", *filter.SubjectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Select(subjectReviewColumns(filter.Kind))
	if !filter.NewestOnly {
		query = query.Order("is_approved ASC")
	}
	query = query.Order("created_at DESC").Order("id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var reviews []model.SubjectReview
	if err := query.Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	withSubjectType(filter.Kind, reviews)

	logger.Debug("Reviews listed from database", map[string]interface{}{
		"subject_type": filter.Kind,
		"status":       filter.Status,
		"count":        len(reviews),
		"total":        total,
	})
	return reviews, total, nil
}

func (r *reviewRepository) ListApprovedForSubject(kind model.SubjectType, subjectID uint, limit int) ([]model.SubjectReview, error) {
	query := r.db.Table(kind.ReviewTable()).
		Select(subjectReviewColumns(kind)).
		Where(kind.ForeignKey()+" = ? AND is_approved = ?", subjectID, true).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var reviews []model.SubjectReview
	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	withSubjectType(kind, reviews)
	return reviews, nil
}

// SummarizeApproved computes the mean and count of approved ratings in one query.
// The mean is 0 when no approved review exists. The division happens here because
// MySQL's AVG over integers returns a DECIMAL rounded to four places.
func (r *reviewRepository) SummarizeApproved(kind model.SubjectType, subjectID uint) (RatingSummary, error) {
	var row struct {
		Total int64
		Count int64
	}
	err := r.db.Table(kind.ReviewTable()).
		Select("COALESCE(SUM(rating), 0) AS total, COUNT(*) AS count").
		Where(kind.ForeignKey()+" = ? AND is_approved = ?", subjectID, true).
		Scan(&row).Error
	if err != nil {
		return RatingSummary{}, err
	}
	summary := RatingSummary{Count: row.Count}
	if row.Count > 0 {
		summary.Average = float64(row.Total) / float64(row.Count)
	}
	return summary, nil
}

func (r *reviewRepository) CountByStatus(kind model.SubjectType, status ReviewStatus) (int64, error) {
	var count int64
	err := applyReviewStatus(r.db.Model(kind.ReviewModel()), status).Count(&count).Error
	return count, err
}

func applyReviewStatus(query *gorm.DB, status ReviewStatus) *gorm.DB {
	switch status {
	case ReviewStatusPending:
		return query.Where("is_approved = ?", false)
	case ReviewStatusApproved:
		return query.Where("is_approved = ?", true)
	}
	return query
}

func (r *reviewRepository) CreateReply(reply *model.ReviewReply) error {
	logger.Debug("Creating review reply in database", map[string]interface{}{
		"review_id": reply.ReviewID,
		"user_id":   reply.UserID,
	})
	return r.db.Create(reply).Error
}

func (r *reviewRepository) ListReplies(reviewID uint) ([]model.ReviewReply, error) {
	var replies []model.ReviewReply
	err := r.db.Preload("User").
		Where("review_id = ?", reviewID).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}
