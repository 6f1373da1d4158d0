package service

import (
	"errors"
	"strings"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/app/repository"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	"github.com/dalil-mashhad/dalil-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrCategoryInUse      = errors.New("category still has listings")
	ErrCategoryNameNeeded = errors.New("category name is required")
)

type CategoryInput struct {
	NameAr string
	Icon   string
	Slug   string
}

type AttractionCategoryInput struct {
	NameAr         string
	NameEn         *string
	Icon           string
	Slug           string
	IsActive       bool
	SeoTitle       *string
	SeoDescription *string
	SeoKeywords    *string
}

// CategoryService manages doctor specialties and attraction categories.
// Neither kind can be deleted while listings still reference it.
type CategoryService interface {
	ListCategories() ([]repository.CategoryWithCount, error)
	CreateCategory(input CategoryInput) (*model.Category, error)
	UpdateCategory(id uint, input CategoryInput) (*model.Category, error)
	DeleteCategory(id uint) error

	ListAttractionCategories(activeOnly bool) ([]model.AttractionCategory, error)
	GetAttractionCategory(slug string) (*model.AttractionCategory, error)
	CreateAttractionCategory(input AttractionCategoryInput) (*model.AttractionCategory, error)
	UpdateAttractionCategory(id uint, input AttractionCategoryInput) (*model.AttractionCategory, error)
	ToggleAttractionCategory(id uint) (*model.AttractionCategory, error)
	DeleteAttractionCategory(id uint) error
}

type categoryService struct {
	categoryRepo           repository.CategoryRepository
	attractionCategoryRepo repository.AttractionCategoryRepository
}

func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	attractionCategoryRepo repository.AttractionCategoryRepository,
) CategoryService {
	return &categoryService{
		categoryRepo:           categoryRepo,
		attractionCategoryRepo: attractionCategoryRepo,
	}
}

// categorySlug prefers an explicit slug and falls back to the name.
func categorySlug(slug, name string) string {
	if s := util.Slugify(slug); s != "" {
		return s
	}
	return util.Slugify(name)
}

func notFoundAsCategory(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCategoryNotFound
	}
	return err
}

func (s *categoryService) ListCategories() ([]repository.CategoryWithCount, error) {
	return s.categoryRepo.FindAll()
}

func (s *categoryService) CreateCategory(input CategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.NameAr)
	if name == "" {
		return nil, ErrCategoryNameNeeded
	}

	category := &model.Category{
		NameAr: name,
		Icon:   strings.TrimSpace(input.Icon),
		Slug:   categorySlug(input.Slug, name),
	}
	if err := s.categoryRepo.Create(category); err != nil {
		logger.Error("Failed to create category", err, map[string]interface{}{
			"slug": category.Slug,
		})
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"slug":        category.Slug,
	})
	return category, nil
}

func (s *categoryService) UpdateCategory(id uint, input CategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.NameAr)
	if name == "" {
		return nil, ErrCategoryNameNeeded
	}

	category := &model.Category{
		ID:     id,
		NameAr: name,
		Icon:   strings.TrimSpace(input.Icon),
		Slug:   categorySlug(input.Slug, name),
	}
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, notFoundAsCategory(err)
	}

	logger.Info("Category updated", map[string]interface{}{
		"category_id": id,
	})
	updated, err := s.categoryRepo.FindByID(id)
	return updated, notFoundAsCategory(err)
}

func (s *categoryService) DeleteCategory(id uint) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return notFoundAsCategory(err)
	}

	count, err := s.categoryRepo.CountDoctors(id)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Warn("Category delete refused: doctors still assigned", map[string]interface{}{
			"category_id":  id,
			"doctor_count": count,
		})
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return notFoundAsCategory(err)
	}
	logger.Info("Category deleted", map[string]interface{}{
		"category_id": id,
	})
	return nil
}

func (s *categoryService) ListAttractionCategories(activeOnly bool) ([]model.AttractionCategory, error) {
	return s.attractionCategoryRepo.FindAll(activeOnly)
}

// GetAttractionCategory resolves a public category page; inactive categories are hidden.
func (s *categoryService) GetAttractionCategory(slug string) (*model.AttractionCategory, error) {
	category, err := s.attractionCategoryRepo.FindBySlug(slug)
	if err != nil {
		return nil, notFoundAsCategory(err)
	}
	if !category.IsActive {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (input AttractionCategoryInput) build(id uint) (*model.AttractionCategory, error) {
	name := strings.TrimSpace(input.NameAr)
	if name == "" {
		return nil, ErrCategoryNameNeeded
	}

	// English names make better slugs when present.
	slugSource := name
	if nameEn := trimOptional(input.NameEn); nameEn != nil {
		slugSource = *nameEn
	}

	return &model.AttractionCategory{
		ID:       id,
		NameAr:   name,
		NameEn:   trimOptional(input.NameEn),
		Icon:     strings.TrimSpace(input.Icon),
		Slug:     categorySlug(input.Slug, slugSource),
		IsActive: input.IsActive,
		SEO: model.SEO{
			SeoTitle:       trimOptional(input.SeoTitle),
			SeoDescription: trimOptional(input.SeoDescription),
			SeoKeywords:    trimOptional(input.SeoKeywords),
		},
	}, nil
}

func (s *categoryService) CreateAttractionCategory(input AttractionCategoryInput) (*model.AttractionCategory, error) {
	category, err := input.build(0)
	if err != nil {
		return nil, err
	}
	if err := s.attractionCategoryRepo.Create(category); err != nil {
		logger.Error("Failed to create attraction category", err, map[string]interface{}{
			"slug": category.Slug,
		})
		return nil, err
	}

	logger.Info("Attraction category created", map[string]interface{}{
		"category_id": category.ID,
		"slug":        category.Slug,
	})
	return category, nil
}

func (s *categoryService) UpdateAttractionCategory(id uint, input AttractionCategoryInput) (*model.AttractionCategory, error) {
	category, err := input.build(id)
	if err != nil {
		return nil, err
	}
	if err := s.attractionCategoryRepo.Update(category); err != nil {
		return nil, notFoundAsCategory(err)
	}

	logger.Info("Attraction category updated", map[string]interface{}{
		"category_id": id,
	})
	updated, err := s.attractionCategoryRepo.FindByID(id)
	return updated, notFoundAsCategory(err)
}

func (s *categoryService) ToggleAttractionCategory(id uint) (*model.AttractionCategory, error) {
	category, err := s.attractionCategoryRepo.FindByID(id)
	if err != nil {
		return nil, notFoundAsCategory(err)
	}
	if err := s.attractionCategoryRepo.SetActive(id, !category.IsActive); err != nil {
		return nil, notFoundAsCategory(err)
	}
	category.IsActive = !category.IsActive

	logger.Info("Attraction category toggled", map[string]interface{}{
		"category_id": id,
		"is_active":   category.IsActive,
	})
	return category, nil
}

func (s *categoryService) DeleteAttractionCategory(id uint) error {
	if _, err := s.attractionCategoryRepo.FindByID(id); err != nil {
		return notFoundAsCategory(err)
	}

	count, err := s.attractionCategoryRepo.CountAttractions(id)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Warn("Attraction category delete refused: attractions still assigned", map[string]interface{}{
			"category_id":      id,
			"attraction_count": count,
		})
		return ErrCategoryInUse
	}

	if err := s.attractionCategoryRepo.Delete(id); err != nil {
		return notFoundAsCategory(err)
	}
	logger.Info("Attraction category deleted", map[string]interface{}{
		"category_id": id,
	})
	return nil
}
