package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo is a code plus user-facing message derived from an internal error.
type ErrorInfo struct {
	Code    string // see codes.go
	Message string
}

// ParseError maps database and driver errors onto stable codes and Arabic messages
// without leaking SQL details. context names the failing operation ("delete doctor", ...).
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "حدث خطأ في الخادم",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// postgres "duplicate key", mysql "Duplicate entry", sqlite "UNIQUE constraint failed"
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(errStrLower, "duplicate key") ||
		strings.Contains(errStrLower, "duplicate entry") ||
		strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	if errors.Is(err, gorm.ErrForeignKeyViolated) ||
		strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStrLower, context)
	}

	if strings.Contains(errStrLower, "not-null constraint") ||
		strings.Contains(errStrLower, "not null constraint") ||
		strings.Contains(errStrLower, "cannot be null") {
		return parseNotNullError(errStrLower)
	}

	if errors.Is(err, gorm.ErrCheckConstraintViolated) || strings.Contains(errStrLower, "check constraint") {
		return parseCheckConstraintError(errStrLower)
	}

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "تعذر الاتصال بخدمة خارجية، يرجى المحاولة لاحقاً",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "username") {
		return ErrorInfo{
			Code:    AuthUsernameExists,
			Message: "اسم المستخدم مستخدم بالفعل",
		}
	}
	if strings.Contains(errLower, "slug") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "المعرّف مستخدم بالفعل",
		}
	}
	if strings.Contains(errLower, "ip_address") || strings.Contains(errLower, "_ip_like") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "تم تسجيل الإعجاب بالفعل",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "البيانات موجودة بالفعل",
	}
}

func parseForeignKeyError(errLower string, context string) ErrorInfo {
	if strings.Contains(errLower, "still referenced") || strings.Contains(strings.ToLower(context), "delete") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "لا يمكن الحذف لوجود بيانات مرتبطة",
		}
	}
	if strings.Contains(errLower, "category_id") {
		return ErrorInfo{Code: CategoryNotFound, Message: "التصنيف غير موجود"}
	}
	if strings.Contains(errLower, "doctor_id") {
		return ErrorInfo{Code: DoctorNotFound, Message: "الطبيب غير موجود"}
	}
	if strings.Contains(errLower, "attraction_id") {
		return ErrorInfo{Code: AttractionNotFound, Message: "المعلم السياحي غير موجود"}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "البيانات المرتبطة غير موجودة",
	}
}

func parseNotNullError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "user_name") {
		return ErrorInfo{Code: ReviewNameRequired, Message: "الاسم مطلوب"}
	}
	if strings.Contains(errLower, "name_ar") {
		return ErrorInfo{Code: ValidationRequired, Message: "الاسم بالعربية مطلوب"}
	}

	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "بعض الحقول المطلوبة مفقودة",
	}
}

func parseCheckConstraintError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "rating") {
		return ErrorInfo{
			Code:    ReviewInvalidRating,
			Message: "يجب أن يكون التقييم بين 1 و 5",
		}
	}

	return ErrorInfo{
		Code:    ValidationInvalidInput,
		Message: "البيانات المدخلة غير صحيحة",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "review"):
		return "التقييم غير موجود"
	case strings.Contains(contextLower, "doctor"):
		return "الطبيب غير موجود"
	case strings.Contains(contextLower, "attraction"):
		return "المعلم السياحي غير موجود"
	case strings.Contains(contextLower, "category"):
		return "التصنيف غير موجود"
	case strings.Contains(contextLower, "user"):
		return "المستخدم غير موجود"
	}

	return "البيانات المطلوبة غير موجودة"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"), strings.Contains(contextLower, "submit"):
		return "حدث خطأ أثناء الإضافة، يرجى المحاولة لاحقاً"
	case strings.Contains(contextLower, "update"), strings.Contains(contextLower, "approve"):
		return "حدث خطأ أثناء التعديل، يرجى المحاولة لاحقاً"
	case strings.Contains(contextLower, "delete"):
		return "حدث خطأ أثناء الحذف، يرجى المحاولة لاحقاً"
	}

	return "حدث خطأ في الخادم، يرجى المحاولة لاحقاً"
}

// ParseAndRespond parses err and writes it with statusCode.
func ParseAndRespond(c *gin.Context, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	RespondWithError(c, statusCode, errorInfo.Code, errorInfo.Message)
}

// StatusFor picks the HTTP status that matches a parsed error code.
func StatusFor(code string) int {
	switch code {
	case ResourceNotFound, DoctorNotFound, AttractionNotFound, CategoryNotFound, ReviewNotFound, UserNotFound:
		return http.StatusNotFound
	case ResourceAlreadyExists, ResourceConflict, AuthUsernameExists, CategoryInUse:
		return http.StatusConflict
	case ValidationRequired, ValidationInvalidInput, ReviewInvalidRating, ReviewNameRequired:
		return http.StatusBadRequest
	case InternalExternalAPI:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// RespondWithParsedError parses err and writes it with the status its code implies.
func RespondWithParsedError(c *gin.Context, err error, context string) {
	info := ParseError(err, context)
	RespondWithError(c, StatusFor(info.Code), info.Code, info.Message)
}
