package service

import (
	"errors"
	"time"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/app/repository"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	"gorm.io/gorm"
)

// ReconcileResult summarizes one cache rebuild run.
type ReconcileResult struct {
	Doctors     int           `json:"doctors"`
	Attractions int           `json:"attractions"`
	Failed      int           `json:"failed"`
	Duration    time.Duration `json:"duration"`
}

// ReconcileService rebuilds rating and likes_count from the review and like rows,
// repairing drift left by writes that bypassed the services.
type ReconcileService interface {
	ReconcileAll() (*ReconcileResult, error)
	ReconcileSubject(kind model.SubjectType, id uint) error
}

type reconcileService struct {
	db          *gorm.DB
	subjectRepo repository.SubjectRepository
	reviewRepo  repository.ReviewRepository
	likeRepo    repository.LikeRepository
}

func NewReconcileService(
	db *gorm.DB,
	subjectRepo repository.SubjectRepository,
	reviewRepo repository.ReviewRepository,
	likeRepo repository.LikeRepository,
) ReconcileService {
	return &reconcileService{
		db:          db,
		subjectRepo: subjectRepo,
		reviewRepo:  reviewRepo,
		likeRepo:    likeRepo,
	}
}

// ReconcileAll keeps going past individual failures and returns them joined.
func (s *reconcileService) ReconcileAll() (*ReconcileResult, error) {
	start := time.Now()
	result := &ReconcileResult{}
	var errs []error

	for _, kind := range []model.SubjectType{model.SubjectDoctor, model.SubjectAttraction} {
		ids, err := s.subjectRepo.ListIDs(kind)
		if err != nil {
			logger.Error("Failed to list subjects for reconcile", err, map[string]interface{}{
				"subject_type": kind,
			})
			errs = append(errs, err)
			continue
		}

		for _, id := range ids {
			if err := s.ReconcileSubject(kind, id); err != nil {
				result.Failed++
				errs = append(errs, err)
				continue
			}
			if kind == model.SubjectDoctor {
				result.Doctors++
			} else {
				result.Attractions++
			}
		}
	}

	result.Duration = time.Since(start)
	logger.Info("Subject caches reconciled", map[string]interface{}{
		"doctors":     result.Doctors,
		"attractions": result.Attractions,
		"failed":      result.Failed,
		"duration_ms": result.Duration.Milliseconds(),
	})
	return result, errors.Join(errs...)
}

func (s *reconcileService) ReconcileSubject(kind model.SubjectType, id uint) error {
	if !kind.Valid() {
		return ErrInvalidSubject
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		summary, err := s.reviewRepo.WithTx(tx).SummarizeApproved(kind, id)
		if err != nil {
			return err
		}
		likes, err := s.likeRepo.WithTx(tx).CountForSubject(kind, id)
		if err != nil {
			return err
		}

		subjects := s.subjectRepo.WithTx(tx)
		if err := subjects.SetRating(kind, id, summary.Average); err != nil {
			return err
		}
		return subjects.SetLikes(kind, id, likes)
	})
	if err != nil {
		logger.Error("Failed to reconcile subject", err, map[string]interface{}{
			"subject_type": kind,
			"subject_id":   id,
		})
	}
	return err
}
