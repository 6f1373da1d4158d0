package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dalil-mashhad/dalil-backend/internal/app/service"
	apperrors "github.com/dalil-mashhad/dalil-backend/internal/errors"
	"github.com/dalil-mashhad/dalil-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "المعرّف غير صالح")
		return 0, false
	}
	return uint(id), true
}

// pagination reads page and page_size, clamping page_size to maxPageSize.
func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

func optionalUintQuery(c *gin.Context, name string) *uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil || v == 0 {
		return nil
	}
	id := uint(v)
	return &id
}

// respondServiceError maps service sentinels onto response codes and
// falls back to the database error parser.
func respondServiceError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, service.ErrInvalidSubject):
		apperrors.BadRequest(c, apperrors.CatalogInvalidSubject, "نوع العنصر غير معروف")
	case errors.Is(err, service.ErrInvalidRating):
		apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "يجب أن يكون التقييم بين 1 و 5")
	case errors.Is(err, service.ErrUserNameRequired):
		apperrors.BadRequest(c, apperrors.ReviewNameRequired, "الاسم مطلوب")
	case errors.Is(err, service.ErrReplyRequired):
		apperrors.BadRequest(c, apperrors.ReviewReplyRequired, "نص الرد مطلوب")
	case errors.Is(err, service.ErrDoctorNotFound):
		apperrors.NotFound(c, apperrors.DoctorNotFound, "الطبيب غير موجود")
	case errors.Is(err, service.ErrAttractionNotFound):
		apperrors.NotFound(c, apperrors.AttractionNotFound, "المعلم السياحي غير موجود")
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.NotFound(c, apperrors.CategoryNotFound, "التصنيف غير موجود")
	case errors.Is(err, service.ErrUserNotFound):
		apperrors.NotFound(c, apperrors.UserNotFound, "المستخدم غير موجود")
	case errors.Is(err, service.ErrCategoryInUse):
		apperrors.Conflict(c, apperrors.CategoryInUse, "لا يمكن حذف التصنيف لوجود عناصر مرتبطة به")
	case errors.Is(err, service.ErrInvalidPriceRange):
		apperrors.BadRequest(c, apperrors.CatalogInvalidPriceRange, "فئة السعر غير صالحة")
	case errors.Is(err, service.ErrDoctorFieldsMissing),
		errors.Is(err, service.ErrAttractionFieldsMissing),
		errors.Is(err, service.ErrCategoryNameNeeded),
		errors.Is(err, service.ErrUserFieldsNeeded):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "بعض الحقول المطلوبة مفقودة")
	case errors.Is(err, service.ErrInvalidRole):
		apperrors.BadRequest(c, apperrors.UserInvalidRole, "الدور غير صالح")
	case errors.Is(err, service.ErrSelfAction):
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzSelfDeletion, "لا يمكنك تنفيذ هذا الإجراء على حسابك")
	case errors.Is(err, util.ErrPasswordTooShort):
		apperrors.BadRequest(c, apperrors.ValidationTooShort, "كلمة المرور قصيرة جداً")
	case errors.Is(err, util.ErrPasswordTooLong):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "كلمة المرور طويلة جداً")
	default:
		apperrors.RespondWithParsedError(c, err, context)
	}
}
