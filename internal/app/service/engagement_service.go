package service

import (
	"errors"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/app/repository"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	"github.com/dalil-mashhad/dalil-backend/pkg/util"
	"gorm.io/gorm"
)

var ErrInvalidSubject = errors.New("invalid subject type")

// EngagementService flips visitor likes on doctors and attractions.
// visitor is an opaque key; the HTTP layer derives it with util.VisitorIdentity.
type EngagementService interface {
	Toggle(kind model.SubjectType, subjectID uint, visitor string) (liked bool, err error)
	IsLiked(kind model.SubjectType, subjectID uint, visitor string) (bool, error)
}

type engagementService struct {
	db          *gorm.DB
	likeRepo    repository.LikeRepository
	subjectRepo repository.SubjectRepository
}

func NewEngagementService(db *gorm.DB, likeRepo repository.LikeRepository, subjectRepo repository.SubjectRepository) EngagementService {
	return &engagementService{
		db:          db,
		likeRepo:    likeRepo,
		subjectRepo: subjectRepo,
	}
}

func normalizeVisitor(visitor string) string {
	if visitor == "" {
		return util.UnknownVisitor
	}
	return visitor
}

// Toggle removes the visitor's like if present, otherwise adds it, and moves
// likes_count by the same amount in the same transaction. Only the caller whose
// delete actually removed the row decrements, so concurrent unlikes cannot double count.
func (s *engagementService) Toggle(kind model.SubjectType, subjectID uint, visitor string) (bool, error) {
	if !kind.Valid() {
		return false, ErrInvalidSubject
	}
	visitor = normalizeVisitor(visitor)

	var liked bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		likes := s.likeRepo.WithTx(tx)
		subjects := s.subjectRepo.WithTx(tx)

		removed, err := likes.Delete(kind, subjectID, visitor)
		if err != nil {
			return err
		}
		if removed {
			liked = false
			return subjects.AdjustLikes(kind, subjectID, -1)
		}

		if err := likes.Create(kind, subjectID, visitor); err != nil {
			return err
		}
		liked = true
		return subjects.AdjustLikes(kind, subjectID, 1)
	})
	if err != nil {
		logger.Error("Failed to toggle like", err, map[string]interface{}{
			"subject_type": kind,
			"subject_id":   subjectID,
			"visitor":      visitor,
		})
		return false, err
	}

	logger.Info("Like toggled", map[string]interface{}{
		"subject_type": kind,
		"subject_id":   subjectID,
		"liked":        liked,
	})
	return liked, nil
}

func (s *engagementService) IsLiked(kind model.SubjectType, subjectID uint, visitor string) (bool, error) {
	if !kind.Valid() {
		return false, ErrInvalidSubject
	}
	return s.likeRepo.Exists(kind, subjectID, normalizeVisitor(visitor))
}
