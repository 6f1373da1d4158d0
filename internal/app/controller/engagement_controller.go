package controller

import (
	"net/http"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/app/service"
	"github.com/dalil-mashhad/dalil-backend/internal/middleware"
	"github.com/dalil-mashhad/dalil-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

type EngagementController struct {
	engagementService service.EngagementService
}

func NewEngagementController(engagementService service.EngagementService) *EngagementController {
	return &EngagementController{
		engagementService: engagementService,
	}
}

// ToggleLike likes or unlikes a doctor or attraction for the calling visitor
// POST /api/v1/doctors/:id/like, POST /api/v1/attractions/:id/like
func (ctrl *EngagementController) ToggleLike(kind model.SubjectType) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := middleware.GetLoggerFromContext(c)

		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		liked, err := ctrl.engagementService.Toggle(kind, id, util.VisitorIdentity(c.Request.Header))
		if err != nil {
			log.Error("Failed to toggle like", err, map[string]interface{}{
				"subject_type": kind,
				"subject_id":   id,
			})
			respondServiceError(c, err, "toggle "+string(kind)+" like")
			return
		}

		c.JSON(http.StatusOK, gin.H{"liked": liked})
	}
}

// IsLiked reports whether the calling visitor currently likes the subject
// GET /api/v1/doctors/:id/like, GET /api/v1/attractions/:id/like
func (ctrl *EngagementController) IsLiked(kind model.SubjectType) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		liked, err := ctrl.engagementService.IsLiked(kind, id, util.VisitorIdentity(c.Request.Header))
		if err != nil {
			respondServiceError(c, err, "read "+string(kind)+" like")
			return
		}

		c.JSON(http.StatusOK, gin.H{"liked": liked})
	}
}
