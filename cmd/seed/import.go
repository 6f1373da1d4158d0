package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/app/repository"
	"github.com/dalil-mashhad/dalil-backend/internal/app/service"
	"github.com/dalil-mashhad/dalil-backend/pkg/util"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Sheet layouts, first row is a header.
//
//	doctors:     name_ar | title_ar | bio_ar | category_slug | category_name_ar | phone | whatsapp | experience | location_ar | image_url
//	attractions: name_ar | name_en | description_ar | category_slug | address | phone | whatsapp | website | map_link | price_range | opening_hours | images | is_featured
const (
	doctorColumns     = 10
	attractionColumns = 13
)

type doctorRow struct {
	line         int
	categorySlug string
	categoryName string
	input        service.DoctorInput
}

type attractionRow struct {
	line         int
	categorySlug string
	input        service.AttractionInput
}

type importSummary struct {
	Rows     int
	Imported int
	Skipped  []string
}

func (s *importSummary) skip(line int, reason string) {
	s.Skipped = append(s.Skipped, fmt.Sprintf("row %d: %s", line, reason))
}

func readSheet(filePath string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("no sheets found in XLSX file")
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, errors.New("no data rows found in XLSX file")
	}
	return rows[1:], nil
}

// cell returns the trimmed value at i; GetRows drops trailing empty cells.
func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func optional(row []string, i int) *string {
	if v := cell(row, i); v != "" {
		return &v
	}
	return nil
}

func parseDoctorRows(rows [][]string, summary *importSummary) []doctorRow {
	var out []doctorRow
	for i, row := range rows {
		line := i + 2
		summary.Rows++
		if len(row) == 0 || cell(row, 0) == "" {
			summary.skip(line, "empty name")
			continue
		}
		if len(row) > doctorColumns {
			row = row[:doctorColumns]
		}

		experience := 0
		if v := cell(row, 7); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				summary.skip(line, "invalid experience "+strconv.Quote(v))
				continue
			}
			experience = n
		}

		out = append(out, doctorRow{
			line:         line,
			categorySlug: util.Slugify(cell(row, 3)),
			categoryName: cell(row, 4),
			input: service.DoctorInput{
				NameAr:     cell(row, 0),
				TitleAr:    cell(row, 1),
				BioAr:      cell(row, 2),
				Phone:      cell(row, 5),
				Whatsapp:   cell(row, 6),
				Experience: experience,
				LocationAr: cell(row, 8),
				ImageURL:   optional(row, 9),
			},
		})
	}
	return out
}

func parseAttractionRows(rows [][]string, summary *importSummary) []attractionRow {
	var out []attractionRow
	for i, row := range rows {
		line := i + 2
		summary.Rows++
		if len(row) == 0 || cell(row, 0) == "" {
			summary.skip(line, "empty name")
			continue
		}
		if len(row) > attractionColumns {
			row = row[:attractionColumns]
		}

		var priceRange *model.PriceRange
		if v := strings.ToUpper(cell(row, 9)); v != "" {
			pr := model.PriceRange(v)
			if !pr.Valid() {
				summary.skip(line, "invalid price range "+strconv.Quote(v))
				continue
			}
			priceRange = &pr
		}

		var images []string
		for _, img := range strings.Split(cell(row, 11), ",") {
			if img = strings.TrimSpace(img); img != "" {
				images = append(images, img)
			}
		}

		featured, _ := strconv.ParseBool(cell(row, 12))
		out = append(out, attractionRow{
			line:         line,
			categorySlug: util.Slugify(cell(row, 3)),
			input: service.AttractionInput{
				NameAr:        cell(row, 0),
				NameEn:        optional(row, 1),
				DescriptionAr: cell(row, 2),
				Address:       cell(row, 4),
				Phone:         optional(row, 5),
				Whatsapp:      optional(row, 6),
				Website:       optional(row, 7),
				MapLink:       optional(row, 8),
				PriceRange:    priceRange,
				OpeningHours:  optional(row, 10),
				Images:        images,
				IsFeatured:    featured,
			},
		})
	}
	return out
}

type importer struct {
	categoryRepo           repository.CategoryRepository
	attractionCategoryRepo repository.AttractionCategoryRepository
	categoryService        service.CategoryService
	doctorService          service.DoctorService
	attractionService      service.AttractionService
}

// doctorCategory resolves a specialty by slug and creates it when the sheet names a new one.
func (im *importer) doctorCategory(slug, name string, cache map[string]uint) (uint, error) {
	if slug == "" {
		return 0, errors.New("missing category slug")
	}
	if id, ok := cache[slug]; ok {
		return id, nil
	}
	category, err := im.categoryRepo.FindBySlug(slug)
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		if name == "" {
			return 0, fmt.Errorf("unknown category %q and no name to create it", slug)
		}
		category, err = im.categoryService.CreateCategory(service.CategoryInput{NameAr: name, Slug: slug})
		if err != nil {
			return 0, err
		}
	default:
		return 0, err
	}
	cache[slug] = category.ID
	return category.ID, nil
}

func (im *importer) importDoctors(rows []doctorRow, summary *importSummary) {
	categories := map[string]uint{}
	for _, r := range rows {
		categoryID, err := im.doctorCategory(r.categorySlug, r.categoryName, categories)
		if err != nil {
			summary.skip(r.line, err.Error())
			continue
		}
		r.input.CategoryID = categoryID
		if _, err := im.doctorService.Create(r.input); err != nil {
			summary.skip(r.line, err.Error())
			continue
		}
		summary.Imported++
	}
}

// importAttractions only uses existing categories; the defaults are seeded by migration.
func (im *importer) importAttractions(rows []attractionRow, summary *importSummary) {
	for _, r := range rows {
		category, err := im.attractionCategoryRepo.FindBySlug(r.categorySlug)
		if err != nil {
			summary.skip(r.line, fmt.Sprintf("unknown attraction category %q", r.categorySlug))
			continue
		}
		r.input.CategoryID = category.ID
		if _, err := im.attractionService.Create(r.input); err != nil {
			summary.skip(r.line, err.Error())
			continue
		}
		summary.Imported++
	}
}
