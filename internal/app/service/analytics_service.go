package service

import (
	"errors"
	"time"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/app/repository"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	"gorm.io/gorm"
)

const (
	DefaultReportDays = 30
	reportTopLimit    = 10
)

// Dashboard holds the back office landing counters.
type Dashboard struct {
	Doctors                  int64 `json:"doctors"`
	Categories               int64 `json:"categories"`
	Reviews                  int64 `json:"reviews"`
	PendingReviews           int64 `json:"pending_reviews"`
	Attractions              int64 `json:"attractions"`
	AttractionCategories     int64 `json:"attraction_categories"`
	AttractionReviews        int64 `json:"attraction_reviews"`
	PendingAttractionReviews int64 `json:"pending_attraction_reviews"`
}

type AnalyticsReport struct {
	From          string                     `json:"from"`
	To            string                     `json:"to"`
	Totals        repository.AnalyticsTotals `json:"totals"`
	Today         model.Analytics            `json:"today"`
	Daily         []model.Analytics          `json:"daily"`
	TopViewed     []model.Doctor             `json:"top_viewed"`
	TopLiked      []model.Doctor             `json:"top_liked"`
	RecentReviews []model.SubjectReview      `json:"recent_reviews"`
}

type AnalyticsService interface {
	// Track bumps today's counter. Failures are logged, never returned.
	Track(metric model.AnalyticsMetric)
	Dashboard() (*Dashboard, error)
	Report(days int) (*AnalyticsReport, error)
}

type analyticsService struct {
	analyticsRepo          repository.AnalyticsRepository
	doctorRepo             repository.DoctorRepository
	categoryRepo           repository.CategoryRepository
	attractionRepo         repository.AttractionRepository
	attractionCategoryRepo repository.AttractionCategoryRepository
	reviewRepo             repository.ReviewRepository
	now                    func() time.Time
}

func NewAnalyticsService(
	analyticsRepo repository.AnalyticsRepository,
	doctorRepo repository.DoctorRepository,
	categoryRepo repository.CategoryRepository,
	attractionRepo repository.AttractionRepository,
	attractionCategoryRepo repository.AttractionCategoryRepository,
	reviewRepo repository.ReviewRepository,
) AnalyticsService {
	return &analyticsService{
		analyticsRepo:          analyticsRepo,
		doctorRepo:             doctorRepo,
		categoryRepo:           categoryRepo,
		attractionRepo:         attractionRepo,
		attractionCategoryRepo: attractionCategoryRepo,
		reviewRepo:             reviewRepo,
		now:                    time.Now,
	}
}

func (s *analyticsService) Track(metric model.AnalyticsMetric) {
	day := model.DayKey(s.now())
	if err := s.analyticsRepo.Increment(day, metric); err != nil {
		logger.Warn("Failed to track analytics metric", map[string]interface{}{
			"day":    day,
			"metric": metric,
			"error":  err.Error(),
		})
	}
}

func (s *analyticsService) Dashboard() (*Dashboard, error) {
	var (
		d   Dashboard
		err error
	)

	counters := []struct {
		dst *int64
		fn  func() (int64, error)
	}{
		{&d.Doctors, s.doctorRepo.Count},
		{&d.Categories, s.categoryRepo.Count},
		{&d.Attractions, s.attractionRepo.Count},
		{&d.AttractionCategories, s.attractionCategoryRepo.Count},
		{&d.Reviews, func() (int64, error) {
			return s.reviewRepo.CountByStatus(model.SubjectDoctor, repository.ReviewStatusAll)
		}},
		{&d.PendingReviews, func() (int64, error) {
			return s.reviewRepo.CountByStatus(model.SubjectDoctor, repository.ReviewStatusPending)
		}},
		{&d.AttractionReviews, func() (int64, error) {
			return s.reviewRepo.CountByStatus(model.SubjectAttraction, repository.ReviewStatusAll)
		}},
		{&d.PendingAttractionReviews, func() (int64, error) {
			return s.reviewRepo.CountByStatus(model.SubjectAttraction, repository.ReviewStatusPending)
		}},
	}
	for _, c := range counters {
		if *c.dst, err = c.fn(); err != nil {
			logger.Error("Failed to load dashboard counters", err)
			return nil, err
		}
	}
	return &d, nil
}

// Report covers the last days calendar days including today.
func (s *analyticsService) Report(days int) (*AnalyticsReport, error) {
	if days <= 0 {
		days = DefaultReportDays
	}
	now := s.now()
	report := &AnalyticsReport{
		From: model.DayKey(now.AddDate(0, 0, -(days - 1))),
		To:   model.DayKey(now),
	}

	var err error
	if report.Totals, err = s.analyticsRepo.Totals(report.From, report.To); err != nil {
		return nil, err
	}
	if report.Daily, err = s.analyticsRepo.Range(report.From, report.To); err != nil {
		return nil, err
	}

	today, err := s.analyticsRepo.FindByDay(report.To)
	switch {
	case err == nil:
		report.Today = *today
	case errors.Is(err, gorm.ErrRecordNotFound):
		report.Today = model.Analytics{Day: report.To}
	default:
		return nil, err
	}

	if report.TopViewed, _, err = s.doctorRepo.FindWithFilter(repository.DoctorFilter{
		SortBy: repository.DoctorSortViews,
		Limit:  reportTopLimit,
	}); err != nil {
		return nil, err
	}
	if report.TopLiked, _, err = s.doctorRepo.FindWithFilter(repository.DoctorFilter{
		SortBy: repository.DoctorSortLikes,
		Limit:  reportTopLimit,
	}); err != nil {
		return nil, err
	}
	if report.RecentReviews, _, err = s.reviewRepo.List(repository.ReviewFilter{
		Kind:       model.SubjectDoctor,
		NewestOnly: true,
		Limit:      reportTopLimit,
	}); err != nil {
		return nil, err
	}

	logger.Debug("Analytics report built", map[string]interface{}{
		"from":        report.From,
		"to":          report.To,
		"daily_count": len(report.Daily),
	})
	return report, nil
}
