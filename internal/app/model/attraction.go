package model

import (
	"time"

	"gorm.io/datatypes"
)

type PriceRange string

const (
	PriceBudget    PriceRange = "BUDGET"
	PriceModerate  PriceRange = "MODERATE"
	PriceExpensive PriceRange = "EXPENSIVE"
	PriceLuxury    PriceRange = "LUXURY"
)

func (p PriceRange) Valid() bool {
	switch p {
	case PriceBudget, PriceModerate, PriceExpensive, PriceLuxury:
		return true
	}
	return false
}

// SEO holds optional metadata the page renderer uses for attraction pages.
type SEO struct {
	SeoTitle       *string `gorm:"type:varchar(255)" json:"seo_title,omitempty"`
	SeoDescription *string `gorm:"type:text" json:"seo_description,omitempty"`
	SeoKeywords    *string `gorm:"type:text" json:"seo_keywords,omitempty"`
}

type AttractionCategory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	NameAr   string  `gorm:"type:varchar(150);not null" json:"name_ar"`
	NameEn   *string `gorm:"type:varchar(150)" json:"name_en,omitempty"`
	Icon     string  `gorm:"type:varchar(50)" json:"icon"`
	Slug     string  `gorm:"type:varchar(191);uniqueIndex;not null" json:"slug"`
	IsActive bool    `gorm:"not null" json:"is_active"`

	SEO `gorm:"embedded"`

	AttractionCount int64 `gorm:"-" json:"attraction_count"`
}

func (AttractionCategory) TableName() string {
	return "attraction_categories"
}

type Attraction struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	NameAr        string  `gorm:"type:varchar(191);not null" json:"name_ar"`
	NameEn        *string `gorm:"type:varchar(191)" json:"name_en,omitempty"`
	DescriptionAr string  `gorm:"type:text;not null" json:"description_ar"`
	DescriptionEn *string `gorm:"type:text" json:"description_en,omitempty"`

	CategoryID uint                `gorm:"not null;index" json:"category_id"`
	Category   *AttractionCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	Address      string                      `gorm:"type:varchar(255);not null" json:"address"`
	Phone        *string                     `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Whatsapp     *string                     `gorm:"type:varchar(30)" json:"whatsapp,omitempty"`
	Website      *string                     `gorm:"type:varchar(500)" json:"website,omitempty"`
	MapLink      *string                     `gorm:"type:varchar(1000)" json:"map_link,omitempty"`
	MapImageURL  *string                     `gorm:"type:varchar(500)" json:"map_image_url,omitempty"`
	Images       datatypes.JSONSlice[string] `json:"images"`
	PriceRange   *PriceRange                 `gorm:"type:varchar(20);index" json:"price_range,omitempty"`
	OpeningHours *string                     `gorm:"type:varchar(255)" json:"opening_hours,omitempty"`

	IsFeatured bool   `gorm:"not null;default:false" json:"is_featured"`
	IsActive   bool   `gorm:"default:true;index" json:"is_active"`
	Slug       string `gorm:"type:varchar(191);uniqueIndex;not null" json:"slug"`

	SEO `gorm:"embedded"`

	Rating     float64 `gorm:"not null;default:0" json:"rating"`
	LikesCount int     `gorm:"not null;default:0" json:"likes_count"`
	ViewsCount int     `gorm:"not null;default:0" json:"views_count"`

	Reviews []AttractionReview `gorm:"foreignKey:AttractionID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

func (Attraction) TableName() string {
	return "attractions"
}
