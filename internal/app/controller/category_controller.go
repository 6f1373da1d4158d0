package controller

import (
	"net/http"

	"github.com/dalil-mashhad/dalil-backend/internal/app/service"
	apperrors "github.com/dalil-mashhad/dalil-backend/internal/errors"
	"github.com/dalil-mashhad/dalil-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CategoryController serves doctor specialties and attraction categories.
type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

type CategoryRequest struct {
	NameAr string `json:"name_ar" binding:"required,max=150"`
	Icon   string `json:"icon" binding:"max=50"`
	Slug   string `json:"slug" binding:"max=191"`
}

type AttractionCategoryRequest struct {
	NameAr         string  `json:"name_ar" binding:"required,max=150"`
	NameEn         *string `json:"name_en" binding:"omitempty,max=150"`
	Icon           string  `json:"icon" binding:"max=50"`
	Slug           string  `json:"slug" binding:"max=191"`
	IsActive       *bool   `json:"is_active"`
	SeoTitle       *string `json:"seo_title" binding:"omitempty,max=255"`
	SeoDescription *string `json:"seo_description"`
	SeoKeywords    *string `json:"seo_keywords"`
}

func (r AttractionCategoryRequest) input() service.AttractionCategoryInput {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return service.AttractionCategoryInput{
		NameAr:         r.NameAr,
		NameEn:         r.NameEn,
		Icon:           r.Icon,
		Slug:           r.Slug,
		IsActive:       isActive,
		SeoTitle:       r.SeoTitle,
		SeoDescription: r.SeoDescription,
		SeoKeywords:    r.SeoKeywords,
	}
}

// ListCategories returns doctor specialties with their doctor counts
// GET /api/v1/categories
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	categories, err := ctrl.categoryService.ListCategories()
	if err != nil {
		respondServiceError(c, err, "list categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// POST /api/v1/admin/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid category request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "البيانات المدخلة غير صحيحة")
		return
	}

	category, err := ctrl.categoryService.CreateCategory(service.CategoryInput{
		NameAr: req.NameAr,
		Icon:   req.Icon,
		Slug:   req.Slug,
	})
	if err != nil {
		respondServiceError(c, err, "create category")
		return
	}

	c.JSON(http.StatusCreated, category)
}

// PUT /api/v1/admin/categories/:id
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "البيانات المدخلة غير صحيحة")
		return
	}

	category, err := ctrl.categoryService.UpdateCategory(id, service.CategoryInput{
		NameAr: req.NameAr,
		Icon:   req.Icon,
		Slug:   req.Slug,
	})
	if err != nil {
		respondServiceError(c, err, "update category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory is refused while doctors are listed under the category
// DELETE /api/v1/admin/categories/:id
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.categoryService.DeleteCategory(id); err != nil {
		respondServiceError(c, err, "delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تم حذف التصنيف"})
}

// ListAttractionCategories returns active attraction categories
// GET /api/v1/attraction-categories
func (ctrl *CategoryController) ListAttractionCategories(c *gin.Context) {
	categories, err := ctrl.categoryService.ListAttractionCategories(true)
	if err != nil {
		respondServiceError(c, err, "list attraction categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// GET /api/v1/attraction-categories/:slug
func (ctrl *CategoryController) GetAttractionCategory(c *gin.Context) {
	category, err := ctrl.categoryService.GetAttractionCategory(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err, "get attraction category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// GET /api/v1/admin/attraction-categories
func (ctrl *CategoryController) ListAllAttractionCategories(c *gin.Context) {
	categories, err := ctrl.categoryService.ListAttractionCategories(false)
	if err != nil {
		respondServiceError(c, err, "list attraction categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// POST /api/v1/admin/attraction-categories
func (ctrl *CategoryController) CreateAttractionCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AttractionCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid attraction category request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "البيانات المدخلة غير صحيحة")
		return
	}

	category, err := ctrl.categoryService.CreateAttractionCategory(req.input())
	if err != nil {
		respondServiceError(c, err, "create attraction category")
		return
	}

	c.JSON(http.StatusCreated, category)
}

// PUT /api/v1/admin/attraction-categories/:id
func (ctrl *CategoryController) UpdateAttractionCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AttractionCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "البيانات المدخلة غير صحيحة")
		return
	}

	category, err := ctrl.categoryService.UpdateAttractionCategory(id, req.input())
	if err != nil {
		respondServiceError(c, err, "update attraction category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// PATCH /api/v1/admin/attraction-categories/:id/toggle
func (ctrl *CategoryController) ToggleAttractionCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := ctrl.categoryService.ToggleAttractionCategory(id)
	if err != nil {
		respondServiceError(c, err, "update attraction category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// DELETE /api/v1/admin/attraction-categories/:id
func (ctrl *CategoryController) DeleteAttractionCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.categoryService.DeleteAttractionCategory(id); err != nil {
		respondServiceError(c, err, "delete attraction category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تم حذف التصنيف"})
}
