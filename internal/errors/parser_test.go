package errors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		context  string
		wantCode string
	}{
		{
			name:     "Nil error",
			err:      nil,
			wantCode: InternalServerError,
		},
		{
			name:     "Record not found wrapped",
			err:      fmt.Errorf("find review: %w", gorm.ErrRecordNotFound),
			context:  "approve review",
			wantCode: ResourceNotFound,
		},
		{
			name:     "Postgres duplicate username",
			err:      errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_username" (SQLSTATE 23505)`),
			wantCode: AuthUsernameExists,
		},
		{
			name:     "MySQL duplicate slug",
			err:      errors.New("Error 1062 (23000): Duplicate entry 'x' for key 'attractions.idx_attractions_slug'"),
			wantCode: ResourceAlreadyExists,
		},
		{
			name:     "SQLite duplicate like",
			err:      errors.New("UNIQUE constraint failed: doctor_likes.doctor_id, doctor_likes.ip_address"),
			wantCode: ResourceConflict,
		},
		{
			name:     "Translated duplicate",
			err:      gorm.ErrDuplicatedKey,
			wantCode: ResourceAlreadyExists,
		},
		{
			name:     "Foreign key on delete",
			err:      errors.New("FOREIGN KEY constraint failed"),
			context:  "delete category",
			wantCode: ResourceConflict,
		},
		{
			name:     "Foreign key missing category",
			err:      errors.New(`insert or update on table "doctors" violates foreign key constraint "fk_doctors_category" category_id`),
			context:  "create doctor",
			wantCode: CategoryNotFound,
		},
		{
			name:     "Not null",
			err:      errors.New("NOT NULL constraint failed: reviews.user_name"),
			wantCode: ReviewNameRequired,
		},
		{
			name:     "Check rating",
			err:      errors.New("CHECK constraint failed: chk_reviews_rating"),
			wantCode: ReviewInvalidRating,
		},
		{
			name:     "Connection refused",
			err:      errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			wantCode: InternalExternalAPI,
		},
		{
			name:     "Unknown",
			err:      errors.New("boom"),
			context:  "update doctor",
			wantCode: InternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(tt.err, tt.context)
			assert.Equal(t, tt.wantCode, info.Code)
			assert.NotEmpty(t, info.Message)
		})
	}
}

func TestParseError_NotFoundMessageByContext(t *testing.T) {
	assert.Equal(t, "التقييم غير موجود", ParseError(gorm.ErrRecordNotFound, "delete review").Message)
	assert.Equal(t, "الطبيب غير موجود", ParseError(gorm.ErrRecordNotFound, "get doctor").Message)
	assert.Equal(t, "البيانات المطلوبة غير موجودة", ParseError(gorm.ErrRecordNotFound, "").Message)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(ResourceNotFound))
	assert.Equal(t, http.StatusNotFound, StatusFor(DoctorNotFound))
	assert.Equal(t, http.StatusConflict, StatusFor(AuthUsernameExists))
	assert.Equal(t, http.StatusBadRequest, StatusFor(ReviewInvalidRating))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(InternalServerError))
}

func TestRespondWithParsedError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithParsedError(c, errors.New("FOREIGN KEY constraint failed: doctor_id"), "toggle like")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), DoctorNotFound)
}
