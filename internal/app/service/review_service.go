package service

import (
	"errors"
	"strings"
	"time"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/app/repository"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrUnauthorized     = errors.New("insufficient role for this action")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrUserNameRequired = errors.New("reviewer name is required")
	ErrReplyRequired    = errors.New("reply message is required")
)

// SubmitReviewInput is a public review submission.
type SubmitReviewInput struct {
	SubjectID uint
	UserName  string
	Rating    int
	Comment   *string
	UserEmail *string
}

// RatingChange reports the subject rating written by a moderation action.
type RatingChange struct {
	ReviewID      uint              `json:"review_id"`
	SubjectType   model.SubjectType `json:"subject_type"`
	SubjectID     uint              `json:"subject_id"`
	Rating        float64           `json:"rating"`
	ApprovedCount int64             `json:"approved_count"`
}

// Review event types pushed to the staff moderation stream.
const (
	EventReviewSubmitted  = "review_submitted"
	EventReviewApproved   = "review_approved"
	EventReviewUnapproved = "review_unapproved"
	EventReviewDeleted    = "review_deleted"
)

// ReviewEvent is published after a review write has committed.
type ReviewEvent struct {
	Type   string               `json:"type"`
	Review *model.SubjectReview `json:"review,omitempty"`
	Change *RatingChange        `json:"change,omitempty"`
	At     time.Time            `json:"at"`
}

// ReviewEvents receives review events; delivery is best effort.
type ReviewEvents interface {
	Broadcast(message interface{}) error
}

// ReviewService moderates reviews and keeps each subject's rating equal to the
// mean of its approved reviews (0 with none). Moderation calls take the caller's
// role; an empty role means no session.
type ReviewService interface {
	Submit(kind model.SubjectType, input SubmitReviewInput) (*model.SubjectReview, error)
	Approve(role model.UserRole, kind model.SubjectType, reviewID uint) (*RatingChange, error)
	Unapprove(role model.UserRole, kind model.SubjectType, reviewID uint) (*RatingChange, error)
	Delete(role model.UserRole, kind model.SubjectType, reviewID uint) (*RatingChange, error)
	List(filter repository.ReviewFilter) ([]model.SubjectReview, int64, error)
	ListApproved(kind model.SubjectType, subjectID uint, limit int) ([]model.SubjectReview, error)
	Reply(role model.UserRole, userID, reviewID uint, message string) (*model.ReviewReply, error)
	ListReplies(reviewID uint) ([]model.ReviewReply, error)
}

type reviewService struct {
	db          *gorm.DB
	reviewRepo  repository.ReviewRepository
	subjectRepo repository.SubjectRepository
	analytics   AnalyticsService
	events      ReviewEvents
}

// NewReviewService accepts nil analytics and events.
func NewReviewService(
	db *gorm.DB,
	reviewRepo repository.ReviewRepository,
	subjectRepo repository.SubjectRepository,
	analytics AnalyticsService,
	events ReviewEvents,
) ReviewService {
	return &reviewService{
		db:          db,
		reviewRepo:  reviewRepo,
		subjectRepo: subjectRepo,
		analytics:   analytics,
		events:      events,
	}
}

func (s *reviewService) publish(event ReviewEvent) {
	if s.events == nil {
		return
	}
	event.At = time.Now()
	if err := s.events.Broadcast(event); err != nil {
		logger.Warn("Failed to publish review event", map[string]interface{}{
			"type":  event.Type,
			"error": err.Error(),
		})
	}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Submit stores an unapproved review. It never touches the subject rating.
func (s *reviewService) Submit(kind model.SubjectType, input SubmitReviewInput) (*model.SubjectReview, error) {
	if !kind.Valid() {
		return nil, ErrInvalidSubject
	}

	userName := strings.TrimSpace(input.UserName)
	if userName == "" {
		return nil, ErrUserNameRequired
	}
	if input.Rating < model.MinRating || input.Rating > model.MaxRating {
		logger.Warn("Review rejected: rating out of range", map[string]interface{}{
			"subject_type": kind,
			"subject_id":   input.SubjectID,
			"rating":       input.Rating,
		})
		return nil, ErrInvalidRating
	}

	exists, err := s.subjectRepo.Exists(kind, input.SubjectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}

	record := kind.NewReview(input.SubjectID, model.ReviewContent{
		UserName:  userName,
		UserEmail: trimOptional(input.UserEmail),
		Rating:    input.Rating,
		Comment:   trimOptional(input.Comment),
	})
	if err := s.reviewRepo.Create(record); err != nil {
		logger.Error("Failed to submit review", err, map[string]interface{}{
			"subject_type": kind,
			"subject_id":   input.SubjectID,
		})
		return nil, err
	}

	if s.analytics != nil {
		s.analytics.Track(model.MetricReviews)
	}

	review := record.ToSubjectReview()
	logger.Info("Review submitted", map[string]interface{}{
		"review_id":    review.ID,
		"subject_type": kind,
		"subject_id":   review.SubjectID,
		"rating":       review.Rating,
	})
	s.publish(ReviewEvent{Type: EventReviewSubmitted, Review: &review})
	return &review, nil
}

func (s *reviewService) Approve(role model.UserRole, kind model.SubjectType, reviewID uint) (*RatingChange, error) {
	return s.setApproval(role, kind, reviewID, true)
}

// Unapprove withdraws an approval; the review stays stored and leaves the average.
func (s *reviewService) Unapprove(role model.UserRole, kind model.SubjectType, reviewID uint) (*RatingChange, error) {
	return s.setApproval(role, kind, reviewID, false)
}

func (s *reviewService) setApproval(role model.UserRole, kind model.SubjectType, reviewID uint, approved bool) (*RatingChange, error) {
	if !model.HasRole(role, model.EditRoles) {
		logger.Warn("Review moderation denied", map[string]interface{}{
			"role":      role,
			"review_id": reviewID,
			"approved":  approved,
		})
		return nil, ErrUnauthorized
	}
	if !kind.Valid() {
		return nil, ErrInvalidSubject
	}

	var change *RatingChange
	err := s.db.Transaction(func(tx *gorm.DB) error {
		reviews := s.reviewRepo.WithTx(tx)

		review, err := reviews.FindByID(kind, reviewID)
		if err != nil {
			return err
		}
		if err := reviews.SetApproved(kind, reviewID, approved); err != nil {
			return err
		}

		change, err = s.recomputeRating(tx, kind, review.SubjectID)
		return err
	})
	if err != nil {
		logger.Error("Failed to change review approval", err, map[string]interface{}{
			"subject_type": kind,
			"review_id":    reviewID,
			"approved":     approved,
		})
		return nil, err
	}

	change.ReviewID = reviewID
	logger.Info("Review approval changed", map[string]interface{}{
		"subject_type": kind,
		"review_id":    reviewID,
		"approved":     approved,
		"subject_id":   change.SubjectID,
		"rating":       change.Rating,
	})
	eventType := EventReviewApproved
	if !approved {
		eventType = EventReviewUnapproved
	}
	s.publish(ReviewEvent{Type: eventType, Change: change})
	return change, nil
}

// Delete removes a review whatever its state and rewrites the subject rating.
func (s *reviewService) Delete(role model.UserRole, kind model.SubjectType, reviewID uint) (*RatingChange, error) {
	if !model.HasRole(role, model.DeleteRoles) {
		logger.Warn("Review deletion denied", map[string]interface{}{
			"role":      role,
			"review_id": reviewID,
		})
		return nil, ErrUnauthorized
	}
	if !kind.Valid() {
		return nil, ErrInvalidSubject
	}

	var change *RatingChange
	err := s.db.Transaction(func(tx *gorm.DB) error {
		reviews := s.reviewRepo.WithTx(tx)

		review, err := reviews.FindByID(kind, reviewID)
		if err != nil {
			return err
		}
		if err := reviews.Delete(kind, reviewID); err != nil {
			return err
		}

		change, err = s.recomputeRating(tx, kind, review.SubjectID)
		return err
	})
	if err != nil {
		logger.Error("Failed to delete review", err, map[string]interface{}{
			"subject_type": kind,
			"review_id":    reviewID,
		})
		return nil, err
	}

	change.ReviewID = reviewID
	logger.Info("Review deleted", map[string]interface{}{
		"subject_type": kind,
		"review_id":    reviewID,
		"subject_id":   change.SubjectID,
		"rating":       change.Rating,
	})
	s.publish(ReviewEvent{Type: EventReviewDeleted, Change: change})
	return change, nil
}

// recomputeRating must run inside the caller's transaction.
func (s *reviewService) recomputeRating(tx *gorm.DB, kind model.SubjectType, subjectID uint) (*RatingChange, error) {
	summary, err := s.reviewRepo.WithTx(tx).SummarizeApproved(kind, subjectID)
	if err != nil {
		return nil, err
	}
	if err := s.subjectRepo.WithTx(tx).SetRating(kind, subjectID, summary.Average); err != nil {
		return nil, err
	}
	return &RatingChange{
		SubjectType:   kind,
		SubjectID:     subjectID,
		Rating:        summary.Average,
		ApprovedCount: summary.Count,
	}, nil
}

func (s *reviewService) List(filter repository.ReviewFilter) ([]model.SubjectReview, int64, error) {
	if !filter.Kind.Valid() {
		return nil, 0, ErrInvalidSubject
	}
	return s.reviewRepo.List(filter)
}

func (s *reviewService) ListApproved(kind model.SubjectType, subjectID uint, limit int) ([]model.SubjectReview, error) {
	if !kind.Valid() {
		return nil, ErrInvalidSubject
	}
	return s.reviewRepo.ListApprovedForSubject(kind, subjectID, limit)
}

// Reply attaches a staff answer to a doctor review.
func (s *reviewService) Reply(role model.UserRole, userID, reviewID uint, message string) (*model.ReviewReply, error) {
	if !model.HasRole(role, model.EditRoles) {
		return nil, ErrUnauthorized
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrReplyRequired
	}

	if _, err := s.reviewRepo.FindByID(model.SubjectDoctor, reviewID); err != nil {
		return nil, err
	}

	reply := &model.ReviewReply{
		ReviewID: reviewID,
		UserID:   userID,
		Message:  message,
	}
	if err := s.reviewRepo.CreateReply(reply); err != nil {
		logger.Error("Failed to create review reply", err, map[string]interface{}{
			"review_id": reviewID,
			"user_id":   userID,
		})
		return nil, err
	}

	logger.Info("Review reply created", map[string]interface{}{
		"reply_id":  reply.ID,
		"review_id": reviewID,
		"user_id":   userID,
	})
	return reply, nil
}

func (s *reviewService) ListReplies(reviewID uint) ([]model.ReviewReply, error) {
	return s.reviewRepo.ListReplies(reviewID)
}
