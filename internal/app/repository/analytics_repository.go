package repository

import (
	"fmt"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnalyticsTotals sums the daily counters over a range.
type AnalyticsTotals struct {
	PageViews      int64 `json:"page_views"`
	UniqueVisitors int64 `json:"unique_visitors"`
	DoctorViews    int64 `json:"doctor_views"`
	Searches       int64 `json:"searches"`
	Reviews        int64 `json:"reviews"`
}

type AnalyticsRepository interface {
	WithTx(tx *gorm.DB) AnalyticsRepository
	Increment(day string, metric model.AnalyticsMetric) error
	FindByDay(day string) (*model.Analytics, error)
	// Range returns the rows with from <= day <= to, oldest first.
	Range(from, to string) ([]model.Analytics, error)
	Totals(from, to string) (AnalyticsTotals, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) WithTx(tx *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: tx}
}

// Increment bumps one counter of the day's row, creating the row on first use.
func (r *analyticsRepository) Increment(day string, metric model.AnalyticsMetric) error {
	row := model.Analytics{Day: day}
	switch metric {
	case model.MetricPageViews:
		row.PageViews = 1
	case model.MetricDoctorViews:
		row.DoctorViews = 1
	case model.MetricSearches:
		row.Searches = 1
	case model.MetricReviews:
		row.Reviews = 1
	default:
		return fmt.Errorf("unknown analytics metric %q", metric)
	}

	column := string(metric)
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column:       gorm.Expr(column + " + 1"),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&row).Error
	if err != nil {
		logger.Error("Failed to increment analytics counter", err, map[string]interface{}{
			"day":    day,
			"metric": metric,
		})
		return err
	}
	return nil
}

func (r *analyticsRepository) FindByDay(day string) (*model.Analytics, error) {
	var row model.Analytics
	if err := r.db.Where("day = ?", day).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *analyticsRepository) Range(from, to string) ([]model.Analytics, error) {
	var rows []model.Analytics
	err := r.db.Where("day >= ? AND day <= ?", from, to).Order("day ASC").Find(&rows).Error
	return rows, err
}

func (r *analyticsRepository) Totals(from, to string) (AnalyticsTotals, error) {
	var totals AnalyticsTotals
	err := r.db.Model(&model.Analytics{}).
		Select(
			"COALESCE(SUM(page_views), 0) AS page_views, "+
				"COALESCE(SUM(unique_visitors), 0) AS unique_visitors, "+
				"COALESCE(SUM(doctor_views), 0) AS doctor_views, "+
				"COALESCE(SUM(searches), 0) AS searches, "+
				"COALESCE(SUM(reviews), 0) AS reviews",
		).
		Where("day >= ? AND day <= ?", from, to).
		Scan(&totals).Error
	return totals, err
}
