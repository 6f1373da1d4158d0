package controller

import (
	"errors"
	"net/http"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/app/repository"
	"github.com/dalil-mashhad/dalil-backend/internal/app/service"
	apperrors "github.com/dalil-mashhad/dalil-backend/internal/errors"
	"github.com/dalil-mashhad/dalil-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

const publicReviewLimit = 50

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

type SubmitReviewRequest struct {
	UserName  string  `json:"user_name" binding:"max=100"`
	UserEmail *string `json:"user_email" binding:"omitempty,email,max=255"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment" binding:"omitempty,max=2000"`
}

type ReplyRequest struct {
	Message string `json:"message" binding:"required"`
}

// Submit stores a visitor review pending moderation
// POST /api/v1/doctors/:id/reviews, POST /api/v1/attractions/:id/reviews
func (ctrl *ReviewController) Submit(kind model.SubjectType) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := middleware.GetLoggerFromContext(c)

		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req SubmitReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Warn("Invalid review submission", map[string]interface{}{
				"error": err.Error(),
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "البيانات المدخلة غير صحيحة")
			return
		}

		review, err := ctrl.reviewService.Submit(kind, service.SubmitReviewInput{
			SubjectID: id,
			UserName:  req.UserName,
			Rating:    req.Rating,
			Comment:   req.Comment,
			UserEmail: req.UserEmail,
		})
		if err != nil {
			respondServiceError(c, err, "submit "+string(kind)+" review")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "تم إرسال تقييمك وسيظهر بعد المراجعة",
			"review":  review,
		})
	}
}

// ListApproved returns the subject's approved reviews, newest first
// GET /api/v1/doctors/:id/reviews, GET /api/v1/attractions/:id/reviews
func (ctrl *ReviewController) ListApproved(kind model.SubjectType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		reviews, err := ctrl.reviewService.ListApproved(kind, id, publicReviewLimit)
		if err != nil {
			respondServiceError(c, err, "list "+string(kind)+" reviews")
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": reviews})
	}
}

// List is the moderation queue: pending first unless sort=newest.
// GET /api/v1/admin/reviews/doctors?status=pending|approved&subject_id=&page=&page_size=
func (ctrl *ReviewController) List(kind model.SubjectType) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := pagination(c)

		status := repository.ReviewStatus(c.Query("status"))
		switch status {
		case repository.ReviewStatusAll, repository.ReviewStatusPending, repository.ReviewStatusApproved:
		default:
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "حالة التقييم غير صالحة")
			return
		}

		reviews, total, err := ctrl.reviewService.List(repository.ReviewFilter{
			Kind:       kind,
			Status:     status,
			SubjectID:  optionalUintQuery(c, "subject_id"),
			NewestOnly: c.Query("sort") == "newest",
			Limit:      pageSize,
			Offset:     (page - 1) * pageSize,
		})
		if err != nil {
			respondServiceError(c, err, "list "+string(kind)+" reviews")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data":      reviews,
			"total":     total,
			"page":      page,
			"page_size": pageSize,
		})
	}
}

// Approve counts the review in the subject rating
// POST /api/v1/admin/reviews/doctors/:id/approve
func (ctrl *ReviewController) Approve(kind model.SubjectType) gin.HandlerFunc {
	return ctrl.moderate(kind, "approve", ctrl.reviewService.Approve)
}

// Unapprove removes the review from the subject rating
// POST /api/v1/admin/reviews/doctors/:id/unapprove
func (ctrl *ReviewController) Unapprove(kind model.SubjectType) gin.HandlerFunc {
	return ctrl.moderate(kind, "unapprove", ctrl.reviewService.Unapprove)
}

// Delete removes the review and recomputes the subject rating
// DELETE /api/v1/admin/reviews/doctors/:id
func (ctrl *ReviewController) Delete(kind model.SubjectType) gin.HandlerFunc {
	return ctrl.moderate(kind, "delete", ctrl.reviewService.Delete)
}

type moderateFunc func(role model.UserRole, kind model.SubjectType, reviewID uint) (*service.RatingChange, error)

// moderate passes the session role through so the service makes the access decision.
func (ctrl *ReviewController) moderate(kind model.SubjectType, action string, fn moderateFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := middleware.GetLoggerFromContext(c)

		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		role, hasRole := middleware.GetUserRole(c)
		change, err := fn(role, kind, id)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				userID, _ := middleware.GetUserID(c)
				log.Warn("Review moderation refused", map[string]interface{}{
					"action":  action,
					"user_id": userID,
					"role":    role,
				})
				if !hasRole {
					apperrors.Unauthorized(c, "")
				} else {
					apperrors.Forbidden(c, "")
				}
				return
			}
			respondServiceError(c, err, action+" review")
			return
		}

		c.JSON(http.StatusOK, change)
	}
}

// Reply attaches a staff answer to a doctor review
// POST /api/v1/admin/reviews/doctors/:id/replies
func (ctrl *ReviewController) Reply(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ReviewReplyRequired, "نص الرد مطلوب")
		return
	}

	userID, _ := middleware.GetUserID(c)
	role, hasRole := middleware.GetUserRole(c)
	reply, err := ctrl.reviewService.Reply(role, userID, id, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			log.Warn("Review reply refused", map[string]interface{}{
				"user_id": userID,
				"role":    role,
			})
			if !hasRole {
				apperrors.Unauthorized(c, "")
			} else {
				apperrors.Forbidden(c, "")
			}
			return
		}
		respondServiceError(c, err, "reply review")
		return
	}

	c.JSON(http.StatusCreated, reply)
}

// ListReplies returns staff replies on a doctor review
// GET /api/v1/reviews/:id/replies
func (ctrl *ReviewController) ListReplies(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	replies, err := ctrl.reviewService.ListReplies(id)
	if err != nil {
		respondServiceError(c, err, "list review replies")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": replies})
}
