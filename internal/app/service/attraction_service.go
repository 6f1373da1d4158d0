package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/app/repository"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	"github.com/dalil-mashhad/dalil-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrAttractionNotFound      = errors.New("attraction not found")
	ErrAttractionFieldsMissing = errors.New("attraction name, description, address and category are required")
	ErrInvalidPriceRange       = errors.New("invalid price range")
)

// AttractionInput carries the editable attraction fields.
type AttractionInput struct {
	NameAr         string
	NameEn         *string
	DescriptionAr  string
	DescriptionEn  *string
	CategoryID     uint
	Address        string
	Phone          *string
	Whatsapp       *string
	Website        *string
	MapLink        *string
	MapImageURL    *string
	Images         []string
	PriceRange     *model.PriceRange
	OpeningHours   *string
	IsFeatured     bool
	IsActive       *bool
	SeoTitle       *string
	SeoDescription *string
	SeoKeywords    *string
}

type AttractionDetail struct {
	Attraction *model.Attraction     `json:"attraction"`
	Reviews    []model.SubjectReview `json:"reviews"`
}

type AttractionService interface {
	ListPublic(filter repository.AttractionFilter) ([]model.Attraction, int64, error)
	// GetPublic accepts a numeric id or a slug.
	GetPublic(key string) (*AttractionDetail, error)
	List(filter repository.AttractionFilter) ([]model.Attraction, int64, error)
	Get(id uint) (*model.Attraction, error)
	Create(input AttractionInput) (*model.Attraction, error)
	Update(id uint, input AttractionInput) (*model.Attraction, error)
	ToggleActive(id uint) (*model.Attraction, error)
	ToggleFeatured(id uint) (*model.Attraction, error)
	Delete(id uint) error
}

type attractionService struct {
	attractionRepo repository.AttractionRepository
	categoryRepo   repository.AttractionCategoryRepository
	subjectRepo    repository.SubjectRepository
	reviewRepo     repository.ReviewRepository
	analytics      AnalyticsService
	now            func() time.Time
}

func NewAttractionService(
	attractionRepo repository.AttractionRepository,
	categoryRepo repository.AttractionCategoryRepository,
	subjectRepo repository.SubjectRepository,
	reviewRepo repository.ReviewRepository,
	analytics AnalyticsService,
) AttractionService {
	return &attractionService{
		attractionRepo: attractionRepo,
		categoryRepo:   categoryRepo,
		subjectRepo:    subjectRepo,
		reviewRepo:     reviewRepo,
		analytics:      analytics,
		now:            time.Now,
	}
}

func (s *attractionService) ListPublic(filter repository.AttractionFilter) ([]model.Attraction, int64, error) {
	if filter.PriceRange != nil && !filter.PriceRange.Valid() {
		return nil, 0, ErrInvalidPriceRange
	}
	filter.ActiveOnly = true
	filter.Search = strings.TrimSpace(filter.Search)

	attractions, total, err := s.attractionRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list attractions", err)
		return nil, 0, err
	}
	if filter.Search != "" && s.analytics != nil {
		s.analytics.Track(model.MetricSearches)
	}
	return attractions, total, nil
}

func (s *attractionService) GetPublic(key string) (*AttractionDetail, error) {
	var (
		attraction *model.Attraction
		err        error
	)
	if id, convErr := strconv.ParseUint(key, 10, 64); convErr == nil {
		attraction, err = s.attractionRepo.FindByID(uint(id))
	} else {
		attraction, err = s.attractionRepo.FindBySlug(key)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttractionNotFound
		}
		return nil, err
	}
	if !attraction.IsActive {
		return nil, ErrAttractionNotFound
	}

	reviews, err := s.reviewRepo.ListApprovedForSubject(model.SubjectAttraction, attraction.ID, 0)
	if err != nil {
		return nil, err
	}

	if err := s.subjectRepo.IncrementViews(model.SubjectAttraction, attraction.ID); err != nil {
		logger.Warn("Failed to increment attraction views", map[string]interface{}{
			"attraction_id": attraction.ID,
			"error":         err.Error(),
		})
	} else {
		attraction.ViewsCount++
	}
	if s.analytics != nil {
		s.analytics.Track(model.MetricPageViews)
	}

	return &AttractionDetail{Attraction: attraction, Reviews: reviews}, nil
}

func (s *attractionService) List(filter repository.AttractionFilter) ([]model.Attraction, int64, error) {
	if filter.PriceRange != nil && !filter.PriceRange.Valid() {
		return nil, 0, ErrInvalidPriceRange
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return s.attractionRepo.FindWithFilter(filter)
}

func (s *attractionService) Get(id uint) (*model.Attraction, error) {
	attraction, err := s.attractionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttractionNotFound
		}
		return nil, err
	}
	return attraction, nil
}

func (s *attractionService) validate(input *AttractionInput) error {
	input.NameAr = strings.TrimSpace(input.NameAr)
	input.DescriptionAr = strings.TrimSpace(input.DescriptionAr)
	input.Address = strings.TrimSpace(input.Address)
	if input.NameAr == "" || input.DescriptionAr == "" || input.Address == "" || input.CategoryID == 0 {
		return ErrAttractionFieldsMissing
	}
	if input.PriceRange != nil && !input.PriceRange.Valid() {
		return ErrInvalidPriceRange
	}

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (input AttractionInput) apply(attraction *model.Attraction) {
	attraction.NameAr = input.NameAr
	attraction.NameEn = trimOptional(input.NameEn)
	attraction.DescriptionAr = input.DescriptionAr
	attraction.DescriptionEn = trimOptional(input.DescriptionEn)
	attraction.CategoryID = input.CategoryID
	attraction.Address = input.Address
	attraction.Phone = trimOptional(input.Phone)
	attraction.Whatsapp = trimOptional(input.Whatsapp)
	attraction.Website = trimOptional(input.Website)
	attraction.MapLink = trimOptional(input.MapLink)
	attraction.MapImageURL = trimOptional(input.MapImageURL)
	attraction.PriceRange = input.PriceRange
	attraction.OpeningHours = trimOptional(input.OpeningHours)
	attraction.SeoTitle = trimOptional(input.SeoTitle)
	attraction.SeoDescription = trimOptional(input.SeoDescription)
	attraction.SeoKeywords = trimOptional(input.SeoKeywords)

	images := make([]string, 0, len(input.Images))
	for _, img := range input.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	attraction.Images = images
}

func (s *attractionService) Create(input AttractionInput) (*model.Attraction, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	attraction := &model.Attraction{
		IsFeatured: input.IsFeatured,
		Slug:       util.UniqueSlug(input.NameAr, s.now()),
	}
	input.apply(attraction)
	if err := s.attractionRepo.Create(attraction); err != nil {
		logger.Error("Failed to create attraction", err, map[string]interface{}{
			"slug": attraction.Slug,
		})
		return nil, err
	}
	if input.IsActive != nil && !*input.IsActive {
		if err := s.attractionRepo.SetActive(attraction.ID, false); err != nil {
			return nil, err
		}
	}

	logger.Info("Attraction created", map[string]interface{}{
		"attraction_id": attraction.ID,
		"slug":          attraction.Slug,
	})
	return s.Get(attraction.ID)
}

// Update regenerates the slug only when the Arabic name changes.
func (s *attractionService) Update(id uint, input AttractionInput) (*model.Attraction, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}
	current, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	attraction := &model.Attraction{ID: id, Slug: current.Slug}
	if current.NameAr != input.NameAr {
		attraction.Slug = util.UniqueSlug(input.NameAr, s.now())
	}
	input.apply(attraction)
	if err := s.attractionRepo.Update(attraction); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttractionNotFound
		}
		logger.Error("Failed to update attraction", err, map[string]interface{}{
			"attraction_id": id,
		})
		return nil, err
	}
	if current.IsFeatured != input.IsFeatured {
		if err := s.attractionRepo.SetFeatured(id, input.IsFeatured); err != nil {
			return nil, err
		}
	}
	if input.IsActive != nil && *input.IsActive != current.IsActive {
		if err := s.attractionRepo.SetActive(id, *input.IsActive); err != nil {
			return nil, err
		}
	}

	logger.Info("Attraction updated", map[string]interface{}{
		"attraction_id": id,
		"slug":          attraction.Slug,
	})
	return s.Get(id)
}

func (s *attractionService) ToggleActive(id uint) (*model.Attraction, error) {
	attraction, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.attractionRepo.SetActive(id, !attraction.IsActive); err != nil {
		return nil, err
	}
	attraction.IsActive = !attraction.IsActive

	logger.Info("Attraction active state toggled", map[string]interface{}{
		"attraction_id": id,
		"is_active":     attraction.IsActive,
	})
	return attraction, nil
}

func (s *attractionService) ToggleFeatured(id uint) (*model.Attraction, error) {
	attraction, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.attractionRepo.SetFeatured(id, !attraction.IsFeatured); err != nil {
		return nil, err
	}
	attraction.IsFeatured = !attraction.IsFeatured

	logger.Info("Attraction featured state toggled", map[string]interface{}{
		"attraction_id": id,
		"is_featured":   attraction.IsFeatured,
	})
	return attraction, nil
}

func (s *attractionService) Delete(id uint) error {
	if err := s.attractionRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttractionNotFound
		}
		logger.Error("Failed to delete attraction", err, map[string]interface{}{
			"attraction_id": id,
		})
		return err
	}

	logger.Info("Attraction deleted", map[string]interface{}{
		"attraction_id": id,
	})
	return nil
}
