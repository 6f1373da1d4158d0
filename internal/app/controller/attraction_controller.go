package controller

import (
	"net/http"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/app/repository"
	"github.com/dalil-mashhad/dalil-backend/internal/app/service"
	apperrors "github.com/dalil-mashhad/dalil-backend/internal/errors"
	"github.com/dalil-mashhad/dalil-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AttractionController struct {
	attractionService service.AttractionService
}

func NewAttractionController(attractionService service.AttractionService) *AttractionController {
	return &AttractionController{
		attractionService: attractionService,
	}
}

type AttractionRequest struct {
	NameAr         string            `json:"name_ar" binding:"required,max=191"`
	NameEn         *string           `json:"name_en" binding:"omitempty,max=191"`
	DescriptionAr  string            `json:"description_ar" binding:"required"`
	DescriptionEn  *string           `json:"description_en"`
	CategoryID     uint              `json:"category_id" binding:"required"`
	Address        string            `json:"address" binding:"required,max=255"`
	Phone          *string           `json:"phone" binding:"omitempty,max=30"`
	Whatsapp       *string           `json:"whatsapp" binding:"omitempty,max=30"`
	Website        *string           `json:"website" binding:"omitempty,max=500"`
	MapLink        *string           `json:"map_link" binding:"omitempty,max=1000"`
	MapImageURL    *string           `json:"map_image_url" binding:"omitempty,max=500"`
	Images         []string          `json:"images" binding:"max=20"`
	PriceRange     *model.PriceRange `json:"price_range"`
	OpeningHours   *string           `json:"opening_hours" binding:"omitempty,max=255"`
	IsFeatured     bool              `json:"is_featured"`
	IsActive       *bool             `json:"is_active"`
	SeoTitle       *string           `json:"seo_title" binding:"omitempty,max=255"`
	SeoDescription *string           `json:"seo_description"`
	SeoKeywords    *string           `json:"seo_keywords"`
}

func (r AttractionRequest) input() service.AttractionInput {
	return service.AttractionInput{
		NameAr:         r.NameAr,
		NameEn:         r.NameEn,
		DescriptionAr:  r.DescriptionAr,
		DescriptionEn:  r.DescriptionEn,
		CategoryID:     r.CategoryID,
		Address:        r.Address,
		Phone:          r.Phone,
		Whatsapp:       r.Whatsapp,
		Website:        r.Website,
		MapLink:        r.MapLink,
		MapImageURL:    r.MapImageURL,
		Images:         r.Images,
		PriceRange:     r.PriceRange,
		OpeningHours:   r.OpeningHours,
		IsFeatured:     r.IsFeatured,
		IsActive:       r.IsActive,
		SeoTitle:       r.SeoTitle,
		SeoDescription: r.SeoDescription,
		SeoKeywords:    r.SeoKeywords,
	}
}

func attractionFilter(c *gin.Context) (repository.AttractionFilter, int, int) {
	page, pageSize := pagination(c)
	filter := repository.AttractionFilter{
		CategoryID:   optionalUintQuery(c, "category_id"),
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
		FeaturedOnly: c.Query("featured") == "true",
		Limit:        pageSize,
		Offset:       (page - 1) * pageSize,
	}
	if pr := c.Query("price_range"); pr != "" {
		priceRange := model.PriceRange(pr)
		filter.PriceRange = &priceRange
	}
	return filter, page, pageSize
}

// ListPublic lists active attractions, featured first
// GET /api/v1/attractions?category=&category_id=&price_range=&featured=&search=
func (ctrl *AttractionController) ListPublic(c *gin.Context) {
	filter, page, pageSize := attractionFilter(c)

	attractions, total, err := ctrl.attractionService.ListPublic(filter)
	if err != nil {
		respondServiceError(c, err, "list attractions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      attractions,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetPublic accepts either the numeric id or the slug
// GET /api/v1/attractions/:id
func (ctrl *AttractionController) GetPublic(c *gin.Context) {
	detail, err := ctrl.attractionService.GetPublic(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "get attraction")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GET /api/v1/admin/attractions
func (ctrl *AttractionController) List(c *gin.Context) {
	filter, page, pageSize := attractionFilter(c)

	attractions, total, err := ctrl.attractionService.List(filter)
	if err != nil {
		respondServiceError(c, err, "list attractions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      attractions,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GET /api/v1/admin/attractions/:id
func (ctrl *AttractionController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	attraction, err := ctrl.attractionService.Get(id)
	if err != nil {
		respondServiceError(c, err, "get attraction")
		return
	}

	c.JSON(http.StatusOK, attraction)
}

// Create adds an attraction with a slug derived from its Arabic name
// POST /api/v1/admin/attractions
func (ctrl *AttractionController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AttractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid attraction request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "البيانات المدخلة غير صحيحة")
		return
	}

	attraction, err := ctrl.attractionService.Create(req.input())
	if err != nil {
		respondServiceError(c, err, "create attraction")
		return
	}

	c.JSON(http.StatusCreated, attraction)
}

// PUT /api/v1/admin/attractions/:id
func (ctrl *AttractionController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AttractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid attraction request", map[string]interface{}{
			"attraction_id": id,
			"error":         err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "البيانات المدخلة غير صحيحة")
		return
	}

	attraction, err := ctrl.attractionService.Update(id, req.input())
	if err != nil {
		respondServiceError(c, err, "update attraction")
		return
	}

	c.JSON(http.StatusOK, attraction)
}

// PATCH /api/v1/admin/attractions/:id/toggle
func (ctrl *AttractionController) ToggleActive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	attraction, err := ctrl.attractionService.ToggleActive(id)
	if err != nil {
		respondServiceError(c, err, "update attraction")
		return
	}

	c.JSON(http.StatusOK, attraction)
}

// PATCH /api/v1/admin/attractions/:id/featured
func (ctrl *AttractionController) ToggleFeatured(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	attraction, err := ctrl.attractionService.ToggleFeatured(id)
	if err != nil {
		respondServiceError(c, err, "update attraction")
		return
	}

	c.JSON(http.StatusOK, attraction)
}

// DELETE /api/v1/admin/attractions/:id
func (ctrl *AttractionController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.attractionService.Delete(id); err != nil {
		respondServiceError(c, err, "delete attraction")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تم حذف المعلم السياحي"})
}
