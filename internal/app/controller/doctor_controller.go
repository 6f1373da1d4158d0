package controller

import (
	"net/http"

	"github.com/dalil-mashhad/dalil-backend/internal/app/repository"
	"github.com/dalil-mashhad/dalil-backend/internal/app/service"
	apperrors "github.com/dalil-mashhad/dalil-backend/internal/errors"
	"github.com/dalil-mashhad/dalil-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type DoctorController struct {
	doctorService service.DoctorService
}

func NewDoctorController(doctorService service.DoctorService) *DoctorController {
	return &DoctorController{
		doctorService: doctorService,
	}
}

type DoctorRequest struct {
	NameAr     string  `json:"name_ar" binding:"required,max=150"`
	TitleAr    string  `json:"title_ar" binding:"required,max=255"`
	BioAr      string  `json:"bio_ar" binding:"required"`
	Phone      string  `json:"phone" binding:"max=30"`
	Whatsapp   string  `json:"whatsapp" binding:"max=30"`
	Experience int     `json:"experience" binding:"min=0"`
	LocationAr string  `json:"location_ar" binding:"max=255"`
	ImageURL   *string `json:"image_url" binding:"omitempty,max=500"`
	CategoryID uint    `json:"category_id" binding:"required"`
	IsActive   *bool   `json:"is_active"`
}

func (r DoctorRequest) input() service.DoctorInput {
	return service.DoctorInput{
		NameAr:     r.NameAr,
		TitleAr:    r.TitleAr,
		BioAr:      r.BioAr,
		Phone:      r.Phone,
		Whatsapp:   r.Whatsapp,
		Experience: r.Experience,
		LocationAr: r.LocationAr,
		ImageURL:   r.ImageURL,
		CategoryID: r.CategoryID,
		IsActive:   r.IsActive,
	}
}

func doctorFilter(c *gin.Context) (repository.DoctorFilter, int, int) {
	page, pageSize := pagination(c)
	return repository.DoctorFilter{
		CategoryID: optionalUintQuery(c, "category_id"),
		Search:     c.Query("search"),
		SortBy:     repository.DoctorSort(c.Query("sort")),
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	}, page, pageSize
}

// ListPublic lists active doctors
// GET /api/v1/doctors?category_id=&search=&sort=rating|views|likes|newest
func (ctrl *DoctorController) ListPublic(c *gin.Context) {
	filter, page, pageSize := doctorFilter(c)

	doctors, total, err := ctrl.doctorService.ListPublic(filter)
	if err != nil {
		respondServiceError(c, err, "list doctors")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      doctors,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetPublic returns an active doctor with approved reviews
// GET /api/v1/doctors/:id
func (ctrl *DoctorController) GetPublic(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := ctrl.doctorService.GetPublic(id)
	if err != nil {
		respondServiceError(c, err, "get doctor")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// List includes inactive doctors
// GET /api/v1/admin/doctors
func (ctrl *DoctorController) List(c *gin.Context) {
	filter, page, pageSize := doctorFilter(c)

	doctors, total, err := ctrl.doctorService.List(filter)
	if err != nil {
		respondServiceError(c, err, "list doctors")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      doctors,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GET /api/v1/admin/doctors/:id
func (ctrl *DoctorController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doctor, err := ctrl.doctorService.Get(id)
	if err != nil {
		respondServiceError(c, err, "get doctor")
		return
	}

	c.JSON(http.StatusOK, doctor)
}

// Create adds a doctor
// POST /api/v1/admin/doctors
func (ctrl *DoctorController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid doctor request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "البيانات المدخلة غير صحيحة")
		return
	}

	doctor, err := ctrl.doctorService.Create(req.input())
	if err != nil {
		respondServiceError(c, err, "create doctor")
		return
	}

	c.JSON(http.StatusCreated, doctor)
}

// Update replaces the editable doctor fields
// PUT /api/v1/admin/doctors/:id
func (ctrl *DoctorController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid doctor request", map[string]interface{}{
			"doctor_id": id,
			"error":     err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "البيانات المدخلة غير صحيحة")
		return
	}

	doctor, err := ctrl.doctorService.Update(id, req.input())
	if err != nil {
		respondServiceError(c, err, "update doctor")
		return
	}

	c.JSON(http.StatusOK, doctor)
}

// PATCH /api/v1/admin/doctors/:id/toggle
func (ctrl *DoctorController) ToggleActive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doctor, err := ctrl.doctorService.ToggleActive(id)
	if err != nil {
		respondServiceError(c, err, "update doctor")
		return
	}

	c.JSON(http.StatusOK, doctor)
}

// Delete removes a doctor with its reviews and likes
// DELETE /api/v1/admin/doctors/:id
func (ctrl *DoctorController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.doctorService.Delete(id); err != nil {
		respondServiceError(c, err, "delete doctor")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تم حذف الطبيب"})
}
