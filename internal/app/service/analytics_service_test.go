package service

import (
	"testing"
	"time"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsService_Track(t *testing.T) {
	c := setupCatalog(t)
	clock := time.Date(2026, 3, 21, 9, 0, 0, 0, time.UTC)
	c.analytics.(*analyticsService).now = func() time.Time { return clock }

	c.analytics.Track(model.MetricPageViews)
	c.analytics.Track(model.MetricPageViews)
	c.analytics.Track(model.MetricReviews)
	c.analytics.Track(model.AnalyticsMetric("bounces"))

	var row model.Analytics
	require.NoError(t, c.db.Where("day = ?", "2026-03-21").First(&row).Error)
	assert.Equal(t, 2, row.PageViews)
	assert.Equal(t, 1, row.Reviews)
	assert.Zero(t, row.Searches)
}

func TestAnalyticsService_Report(t *testing.T) {
	c := setupCatalog(t)
	svc := c.analytics.(*analyticsService)
	today := time.Date(2026, 3, 21, 9, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return today.AddDate(0, 0, -40) }
	svc.Track(model.MetricSearches)
	svc.now = func() time.Time { return today.AddDate(0, 0, -2) }
	svc.Track(model.MetricSearches)
	svc.Track(model.MetricDoctorViews)
	svc.now = func() time.Time { return today }

	report, err := svc.Report(0)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-20", report.From)
	assert.Equal(t, "2026-03-21", report.To)
	assert.Len(t, report.Daily, 1, "rows older than the window are excluded")
	assert.Equal(t, int64(1), report.Totals.Searches)
	assert.Equal(t, int64(1), report.Totals.DoctorViews)
	assert.Equal(t, model.Analytics{Day: "2026-03-21"}, report.Today)

	svc.Track(model.MetricPageViews)
	report, err = svc.Report(7)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", report.From)
	assert.Len(t, report.Daily, 2)
	assert.Equal(t, 1, report.Today.PageViews)
}

func TestAnalyticsService_Dashboard(t *testing.T) {
	c := setupCatalog(t)
	doctor := createDoctor(t, c.db)
	attraction := createAttraction(t, c.db)

	for _, approved := range []bool{true, false, false} {
		require.NoError(t, c.db.Create(&model.Review{
			DoctorID:      doctor.ID,
			ReviewContent: model.ReviewContent{UserName: "زائر", Rating: 4, IsApproved: approved},
		}).Error)
	}
	require.NoError(t, c.db.Create(&model.AttractionReview{
		AttractionID:  attraction.ID,
		ReviewContent: model.ReviewContent{UserName: "زائر", Rating: 5},
	}).Error)

	dashboard, err := c.analytics.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, &Dashboard{
		Doctors:                  1,
		Categories:               1,
		Reviews:                  3,
		PendingReviews:           2,
		Attractions:              1,
		AttractionCategories:     1,
		AttractionReviews:        1,
		PendingAttractionReviews: 1,
	}, dashboard)
}
