package service

import (
	"errors"
	"strings"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/app/repository"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	"gorm.io/gorm"
)

const doctorDetailReviewLimit = 20

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrDoctorFieldsMissing = errors.New("doctor name, title and bio are required")
)

// DoctorInput carries the editable doctor fields. A nil IsActive keeps the current state.
type DoctorInput struct {
	NameAr     string
	TitleAr    string
	BioAr      string
	Phone      string
	Whatsapp   string
	Experience int
	LocationAr string
	ImageURL   *string
	CategoryID uint
	IsActive   *bool
}

// DoctorDetail is the public doctor page payload.
type DoctorDetail struct {
	Doctor  *model.Doctor         `json:"doctor"`
	Reviews []model.SubjectReview `json:"reviews"`
}

type DoctorService interface {
	ListPublic(filter repository.DoctorFilter) ([]model.Doctor, int64, error)
	GetPublic(id uint) (*DoctorDetail, error)
	List(filter repository.DoctorFilter) ([]model.Doctor, int64, error)
	Get(id uint) (*model.Doctor, error)
	Create(input DoctorInput) (*model.Doctor, error)
	Update(id uint, input DoctorInput) (*model.Doctor, error)
	ToggleActive(id uint) (*model.Doctor, error)
	Delete(id uint) error
}

type doctorService struct {
	doctorRepo   repository.DoctorRepository
	categoryRepo repository.CategoryRepository
	subjectRepo  repository.SubjectRepository
	reviewRepo   repository.ReviewRepository
	analytics    AnalyticsService
}

func NewDoctorService(
	doctorRepo repository.DoctorRepository,
	categoryRepo repository.CategoryRepository,
	subjectRepo repository.SubjectRepository,
	reviewRepo repository.ReviewRepository,
	analytics AnalyticsService,
) DoctorService {
	return &doctorService{
		doctorRepo:   doctorRepo,
		categoryRepo: categoryRepo,
		subjectRepo:  subjectRepo,
		reviewRepo:   reviewRepo,
		analytics:    analytics,
	}
}

func (s *doctorService) track(metric model.AnalyticsMetric) {
	if s.analytics != nil {
		s.analytics.Track(metric)
	}
}

// ListPublic lists active doctors. A non-empty search counts toward the daily searches.
func (s *doctorService) ListPublic(filter repository.DoctorFilter) ([]model.Doctor, int64, error) {
	filter.ActiveOnly = true
	filter.Search = strings.TrimSpace(filter.Search)

	doctors, total, err := s.doctorRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list doctors", err)
		return nil, 0, err
	}
	if filter.Search != "" {
		s.track(model.MetricSearches)
	}
	return doctors, total, nil
}

// GetPublic loads an active doctor with its newest approved reviews and records the view.
func (s *doctorService) GetPublic(id uint) (*DoctorDetail, error) {
	doctor, err := s.findDoctor(id)
	if err != nil {
		return nil, err
	}
	if !doctor.IsActive {
		return nil, ErrDoctorNotFound
	}

	reviews, err := s.reviewRepo.ListApprovedForSubject(model.SubjectDoctor, id, doctorDetailReviewLimit)
	if err != nil {
		return nil, err
	}

	if err := s.subjectRepo.IncrementViews(model.SubjectDoctor, id); err != nil {
		logger.Warn("Failed to increment doctor views", map[string]interface{}{
			"doctor_id": id,
			"error":     err.Error(),
		})
	} else {
		doctor.ViewsCount++
	}
	s.track(model.MetricPageViews)
	s.track(model.MetricDoctorViews)

	return &DoctorDetail{Doctor: doctor, Reviews: reviews}, nil
}

func (s *doctorService) List(filter repository.DoctorFilter) ([]model.Doctor, int64, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.doctorRepo.FindWithFilter(filter)
}

func (s *doctorService) Get(id uint) (*model.Doctor, error) {
	return s.findDoctor(id)
}

func (s *doctorService) findDoctor(id uint) (*model.Doctor, error) {
	doctor, err := s.doctorRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		logger.Error("Failed to fetch doctor", err, map[string]interface{}{
			"doctor_id": id,
		})
		return nil, err
	}
	return doctor, nil
}

func (s *doctorService) validate(input *DoctorInput) error {
	input.NameAr = strings.TrimSpace(input.NameAr)
	input.TitleAr = strings.TrimSpace(input.TitleAr)
	input.BioAr = strings.TrimSpace(input.BioAr)
	if input.NameAr == "" || input.TitleAr == "" || input.BioAr == "" {
		return ErrDoctorFieldsMissing
	}
	if input.Experience < 0 {
		input.Experience = 0
	}

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (input DoctorInput) apply(doctor *model.Doctor) {
	doctor.NameAr = input.NameAr
	doctor.TitleAr = input.TitleAr
	doctor.BioAr = input.BioAr
	doctor.Phone = strings.TrimSpace(input.Phone)
	doctor.Whatsapp = strings.TrimSpace(input.Whatsapp)
	doctor.Experience = input.Experience
	doctor.LocationAr = strings.TrimSpace(input.LocationAr)
	doctor.ImageURL = trimOptional(input.ImageURL)
	doctor.CategoryID = input.CategoryID
}

func (s *doctorService) Create(input DoctorInput) (*model.Doctor, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	doctor := &model.Doctor{}
	input.apply(doctor)
	if err := s.doctorRepo.Create(doctor); err != nil {
		logger.Error("Failed to create doctor", err, map[string]interface{}{
			"name": input.NameAr,
		})
		return nil, err
	}

	// is_active has a database default of true, so an inactive create needs a second write.
	if input.IsActive != nil && !*input.IsActive {
		if err := s.doctorRepo.SetActive(doctor.ID, false); err != nil {
			return nil, err
		}
	}

	logger.Info("Doctor created", map[string]interface{}{
		"doctor_id":   doctor.ID,
		"category_id": doctor.CategoryID,
	})
	return s.findDoctor(doctor.ID)
}

func (s *doctorService) Update(id uint, input DoctorInput) (*model.Doctor, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	doctor := &model.Doctor{ID: id}
	input.apply(doctor)
	if err := s.doctorRepo.Update(doctor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		logger.Error("Failed to update doctor", err, map[string]interface{}{
			"doctor_id": id,
		})
		return nil, err
	}
	if input.IsActive != nil {
		if err := s.doctorRepo.SetActive(id, *input.IsActive); err != nil {
			return nil, err
		}
	}

	logger.Info("Doctor updated", map[string]interface{}{
		"doctor_id": id,
	})
	return s.findDoctor(id)
}

func (s *doctorService) ToggleActive(id uint) (*model.Doctor, error) {
	doctor, err := s.findDoctor(id)
	if err != nil {
		return nil, err
	}
	if err := s.doctorRepo.SetActive(id, !doctor.IsActive); err != nil {
		return nil, err
	}
	doctor.IsActive = !doctor.IsActive

	logger.Info("Doctor active state toggled", map[string]interface{}{
		"doctor_id": id,
		"is_active": doctor.IsActive,
	})
	return doctor, nil
}

// Delete removes the doctor together with its reviews and likes.
func (s *doctorService) Delete(id uint) error {
	if err := s.doctorRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDoctorNotFound
		}
		logger.Error("Failed to delete doctor", err, map[string]interface{}{
			"doctor_id": id,
		})
		return err
	}

	logger.Info("Doctor deleted", map[string]interface{}{
		"doctor_id": id,
	})
	return nil
}
