package repository

import (
	"testing"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAnalyticsRepository_Increment(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	repo := NewAnalyticsRepository(testDB)

	require.NoError(t, repo.Increment("2026-10-01", model.MetricPageViews))
	require.NoError(t, repo.Increment("2026-10-01", model.MetricPageViews))
	require.NoError(t, repo.Increment("2026-10-01", model.MetricDoctorViews))
	require.NoError(t, repo.Increment("2026-10-02", model.MetricSearches))
	require.NoError(t, repo.Increment("2026-10-03", model.MetricReviews))

	assert.Error(t, repo.Increment("2026-10-01", model.AnalyticsMetric("clicks")))

	day, err := repo.FindByDay("2026-10-01")
	require.NoError(t, err)
	assert.Equal(t, 2, day.PageViews)
	assert.Equal(t, 1, day.DoctorViews)
	assert.Zero(t, day.Searches)

	_, err = repo.FindByDay("2026-09-30")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	rows, err := repo.Range("2026-10-01", "2026-10-02")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-10-01", rows[0].Day)
	assert.Equal(t, "2026-10-02", rows[1].Day)

	totals, err := repo.Totals("2026-10-01", "2026-10-31")
	require.NoError(t, err)
	assert.Equal(t, AnalyticsTotals{PageViews: 2, DoctorViews: 1, Searches: 1, Reviews: 1}, totals)

	empty, err := repo.Totals("2020-01-01", "2020-01-31")
	require.NoError(t, err)
	assert.Equal(t, AnalyticsTotals{}, empty)
}
