package controller

import (
	"errors"
	"net/http"

	apperrors "github.com/dalil-mashhad/dalil-backend/internal/errors"
	"github.com/dalil-mashhad/dalil-backend/internal/middleware"
	"github.com/dalil-mashhad/dalil-backend/internal/storage"
	"github.com/gin-gonic/gin"
)

type UploadController struct {
	storage storage.ImageStorage
}

// NewUploadController accepts a nil storage when S3 is not configured.
func NewUploadController(storage storage.ImageStorage) *UploadController {
	return &UploadController{
		storage: storage,
	}
}

type PresignRequest struct {
	Filename    string `json:"filename" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder"` // doctors, attractions or maps
}

// GeneratePresignedURL returns a short-lived PUT URL for a doctor or attraction image
// POST /api/v1/admin/upload/presigned-url
func (ctrl *UploadController) GeneratePresignedURL(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if ctrl.storage == nil {
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.UploadNotConfigured, "رفع الصور غير مفعّل")
		return
	}

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid presigned URL request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "البيانات المدخلة غير صحيحة")
		return
	}

	folder := req.Folder
	if folder == "" {
		folder = storage.FolderDoctors
	}

	upload, err := ctrl.storage.PresignImageUpload(c.Request.Context(), folder, req.Filename, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrContentTypeNotAllowed):
			log.Warn("Invalid content type", map[string]interface{}{
				"content_type": req.ContentType,
			})
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "يسمح فقط بملفات الصور (JPEG, PNG, GIF, WEBP)")
		case errors.Is(err, storage.ErrFolderNotAllowed):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "مجلد الرفع غير صالح")
		default:
			log.Error("Failed to generate presigned URL", err, map[string]interface{}{
				"filename": req.Filename,
				"folder":   folder,
			})
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "تعذر تجهيز رابط الرفع")
		}
		return
	}

	log.Info("Presigned URL generated", map[string]interface{}{
		"folder": folder,
		"key":    upload.Key,
	})
	c.JSON(http.StatusOK, upload)
}
