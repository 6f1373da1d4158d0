package db

import (
	"fmt"

	"github.com/dalil-mashhad/dalil-backend/config"
	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/pkg/logger"
	"github.com/dalil-mashhad/dalil-backend/pkg/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models lists every table, parents before children.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Category{},
		&model.Doctor{},
		&model.Review{},
		&model.ReviewReply{},
		&model.DoctorLike{},
		&model.AttractionCategory{},
		&model.Attraction{},
		&model.AttractionReview{},
		&model.AttractionLike{},
		&model.Analytics{},
	}
}

// Migrate runs database migrations and seeds reference data.
func Migrate(admin *config.AdminConfig) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := Seed(DB, admin); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds reference data. It is safe to run repeatedly.
func Seed(db *gorm.DB, admin *config.AdminConfig) error {
	logger.Info("Seeding initial data...")

	if err := seedAttractionCategories(db); err != nil {
		logger.Error("Failed to seed attraction categories", err)
		return err
	}

	if admin != nil {
		if err := seedSuperAdmin(db, admin); err != nil {
			logger.Error("Failed to seed super admin", err)
			return err
		}
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

type categorySeed struct {
	nameAr string
	nameEn string
	icon   string
	slug   string
}

var defaultAttractionCategories = []categorySeed{
	{"مطاعم", "Restaurants", "🍽️", "restaurants"},
	{"مقاهي", "Cafes", "☕", "cafes"},
	{"حدائق", "Parks", "🌳", "parks"},
	{"أسواق", "Bazaars", "🛍️", "bazaars"},
	{"معالم سياحية", "Tourist Sites", "🕌", "tourist-sites"},
	{"فنادق", "Hotels", "🏨", "hotels"},
	{"مراكز تسوق", "Shopping Malls", "🏬", "malls"},
	{"ملاهي وترفيه", "Entertainment", "🎡", "entertainment"},
}

// seedAttractionCategories inserts the default categories inactive; existing slugs are left untouched.
func seedAttractionCategories(db *gorm.DB) error {
	for _, seed := range defaultAttractionCategories {
		nameEn := seed.nameEn
		title := fmt.Sprintf("%s في مشهد", seed.nameAr)
		description := fmt.Sprintf("دليل شامل لأفضل %s في مدينة مشهد المقدسة", seed.nameAr)
		keywords := fmt.Sprintf("%s, مشهد, إيران, سياحة", seed.nameAr)

		category := model.AttractionCategory{
			NameAr:   seed.nameAr,
			NameEn:   &nameEn,
			Icon:     seed.icon,
			Slug:     seed.slug,
			IsActive: false,
			SEO: model.SEO{
				SeoTitle:       &title,
				SeoDescription: &description,
				SeoKeywords:    &keywords,
			},
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&category).Error; err != nil {
			return err
		}
	}

	logger.Debug("Attraction categories seeded", map[string]interface{}{
		"count": len(defaultAttractionCategories),
	})
	return nil
}

// seedSuperAdmin creates the first SUPER_ADMIN when the users table is empty.
func seedSuperAdmin(db *gorm.DB, admin *config.AdminConfig) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Users already exist, skipping super admin seed", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	if admin.Password == "" {
		logger.Warn("ADMIN_PASSWORD not set, skipping super admin seed", map[string]interface{}{
			"username": admin.Username,
		})
		return nil
	}

	hash, err := util.HashPassword(admin.Password)
	if err != nil {
		return err
	}

	user := model.User{
		Username:     admin.Username,
		PasswordHash: hash,
		Name:         admin.Name,
		Role:         model.RoleSuperAdmin,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	logger.Info("Super admin created", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return nil
}
