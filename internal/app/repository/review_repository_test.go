package repository

import (
	"errors"
	"testing"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewTest(t *testing.T) (*gorm.DB, ReviewRepository, *model.Doctor) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	category := createTestCategory(t, testDB, "cardiology")
	doctor := createTestDoctor(t, testDB, category.ID, "د. مريم")
	return testDB, NewReviewRepository(testDB), doctor
}

func TestReviewRepository_CreateAndFind(t *testing.T) {
	testDB, repo, doctor := setupReviewTest(t)
	attractionCategory := createTestAttractionCategory(t, testDB, "bazaars-test", true)
	attraction := createTestAttraction(t, testDB, attractionCategory.ID, "bazaar")

	comment := "ممتاز"
	tests := []struct {
		name      string
		kind      model.SubjectType
		subjectID uint
	}{
		{name: "Doctor review", kind: model.SubjectDoctor, subjectID: doctor.ID},
		{name: "Attraction review", kind: model.SubjectAttraction, subjectID: attraction.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := tt.kind.NewReview(tt.subjectID, model.ReviewContent{
				UserName: "علي",
				Rating:   4,
				Comment:  &comment,
			})
			require.NoError(t, repo.Create(record))

			created := record.ToSubjectReview()
			require.NotZero(t, created.ID)

			found, err := repo.FindByID(tt.kind, created.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, found.SubjectType)
			assert.Equal(t, tt.subjectID, found.SubjectID)
			assert.Equal(t, "علي", found.UserName)
			assert.Equal(t, 4, found.Rating)
			require.NotNil(t, found.Comment)
			assert.Equal(t, comment, *found.Comment)
			assert.False(t, found.IsApproved)
		})
	}
}

func TestReviewRepository_FindByID_NotFound(t *testing.T) {
	_, repo, _ := setupReviewTest(t)

	_, err := repo.FindByID(model.SubjectDoctor, 404)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestReviewRepository_SetApproved(t *testing.T) {
	testDB, repo, doctor := setupReviewTest(t)
	review := createTestReview(t, testDB, model.SubjectDoctor, doctor.ID, 5, false)

	require.NoError(t, repo.SetApproved(model.SubjectDoctor, review.ID, true))
	found, err := repo.FindByID(model.SubjectDoctor, review.ID)
	require.NoError(t, err)
	assert.True(t, found.IsApproved)

	require.NoError(t, repo.SetApproved(model.SubjectDoctor, review.ID, false))
	found, err = repo.FindByID(model.SubjectDoctor, review.ID)
	require.NoError(t, err)
	assert.False(t, found.IsApproved)
}

func TestReviewRepository_Delete(t *testing.T) {
	testDB, repo, doctor := setupReviewTest(t)
	review := createTestReview(t, testDB, model.SubjectDoctor, doctor.ID, 3, true)

	require.NoError(t, repo.Delete(model.SubjectDoctor, review.ID))

	err := repo.Delete(model.SubjectDoctor, review.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestReviewRepository_SummarizeApproved(t *testing.T) {
	testDB, repo, doctor := setupReviewTest(t)

	summary, err := repo.SummarizeApproved(model.SubjectDoctor, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, RatingSummary{Average: 0, Count: 0}, summary)

	createTestReview(t, testDB, model.SubjectDoctor, doctor.ID, 4, true)
	createTestReview(t, testDB, model.SubjectDoctor, doctor.ID, 2, true)
	createTestReview(t, testDB, model.SubjectDoctor, doctor.ID, 5, false)

	summary, err = repo.SummarizeApproved(model.SubjectDoctor, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Count)
	assert.InDelta(t, 3.0, summary.Average, 1e-9)
}

func TestReviewRepository_SummarizeApprovedIsUnrounded(t *testing.T) {
	testDB, repo, doctor := setupReviewTest(t)
	for _, rating := range []int{4, 5, 5} {
		createTestReview(t, testDB, model.SubjectDoctor, doctor.ID, rating, true)
	}

	summary, err := repo.SummarizeApproved(model.SubjectDoctor, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Count)
	assert.Equal(t, 14.0/3.0, summary.Average)
}

func TestReviewRepository_ListAndCount(t *testing.T) {
	testDB, repo, doctor := setupReviewTest(t)
	other := createTestDoctor(t, testDB, doctor.CategoryID, "د. حسن")

	createTestReview(t, testDB, model.SubjectDoctor, doctor.ID, 5, true)
	createTestReview(t, testDB, model.SubjectDoctor, doctor.ID, 1, false)
	createTestReview(t, testDB, model.SubjectDoctor, other.ID, 3, false)

	tests := []struct {
		name      string
		filter    ReviewFilter
		wantTotal int64
	}{
		{name: "All", filter: ReviewFilter{Kind: model.SubjectDoctor}, wantTotal: 3},
		{name: "Pending", filter: ReviewFilter{Kind: model.SubjectDoctor, Status: ReviewStatusPending}, wantTotal: 2},
		{name: "Approved", filter: ReviewFilter{Kind: model.SubjectDoctor, Status: ReviewStatusApproved}, wantTotal: 1},
		{name: "By subject", filter: ReviewFilter{Kind: model.SubjectDoctor, SubjectID: &other.ID}, wantTotal: 1},
		{name: "Other kind", filter: ReviewFilter{Kind: model.SubjectAttraction}, wantTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews, total, err := repo.List(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Len(t, reviews, int(tt.wantTotal))
			for _, r := range reviews {
				assert.Equal(t, tt.filter.Kind, r.SubjectType)
			}
		})
	}

	t.Run("Pending listed first", func(t *testing.T) {
		reviews, _, err := repo.List(ReviewFilter{Kind: model.SubjectDoctor, SubjectID: &doctor.ID})
		require.NoError(t, err)
		require.Len(t, reviews, 2)
		assert.False(t, reviews[0].IsApproved)
		assert.True(t, reviews[1].IsApproved)
	})

	t.Run("Limit", func(t *testing.T) {
		reviews, total, err := repo.List(ReviewFilter{Kind: model.SubjectDoctor, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, reviews, 1)
	})

	pending, err := repo.CountByStatus(model.SubjectDoctor, ReviewStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending)

	approved, err := repo.ListApprovedForSubject(model.SubjectDoctor, doctor.ID, 20)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, 5, approved[0].Rating)
}

func TestReviewRepository_Replies(t *testing.T) {
	testDB, repo, doctor := setupReviewTest(t)
	review := createTestReview(t, testDB, model.SubjectDoctor, doctor.ID, 4, true)
	user := &model.User{Username: "editor", PasswordHash: "x", Name: "محرر", Role: model.RoleEditor}
	require.NoError(t, testDB.Create(user).Error)

	require.NoError(t, repo.CreateReply(&model.ReviewReply{ReviewID: review.ID, UserID: user.ID, Message: "شكراً لك"}))

	replies, err := repo.ListReplies(review.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "شكراً لك", replies[0].Message)
	require.NotNil(t, replies[0].User)
	assert.Equal(t, "editor", replies[0].User.Username)

	// replies go with their review
	require.NoError(t, repo.Delete(model.SubjectDoctor, review.ID))
	replies, err = repo.ListReplies(review.ID)
	require.NoError(t, err)
	assert.Empty(t, replies)
}

func TestReviewRepository_WithTxRollback(t *testing.T) {
	testDB, repo, doctor := setupReviewTest(t)
	review := createTestReview(t, testDB, model.SubjectDoctor, doctor.ID, 4, false)

	sentinel := errors.New("rollback")
	err := testDB.Transaction(func(tx *gorm.DB) error {
		if err := repo.WithTx(tx).SetApproved(model.SubjectDoctor, review.ID, true); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	found, err := repo.FindByID(model.SubjectDoctor, review.ID)
	require.NoError(t, err)
	assert.False(t, found.IsApproved)
}
