package model

import "time"

// Category is a medical specialty doctors are listed under.
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	NameAr string `gorm:"type:varchar(150);not null" json:"name_ar"`
	Icon   string `gorm:"type:varchar(50)" json:"icon"`
	Slug   string `gorm:"type:varchar(191);uniqueIndex;not null" json:"slug"`

	Doctors []Doctor `gorm:"foreignKey:CategoryID" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

type Doctor struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	NameAr     string  `gorm:"type:varchar(150);not null" json:"name_ar"`
	TitleAr    string  `gorm:"type:varchar(255);not null" json:"title_ar"`
	BioAr      string  `gorm:"type:text;not null" json:"bio_ar"`
	Phone      string  `gorm:"type:varchar(30)" json:"phone"`
	Whatsapp   string  `gorm:"type:varchar(30)" json:"whatsapp"`
	Experience int     `gorm:"default:0" json:"experience"` // years
	LocationAr string  `gorm:"type:varchar(255)" json:"location_ar"`
	ImageURL   *string `gorm:"type:varchar(500)" json:"image_url,omitempty"`

	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	IsActive bool `gorm:"default:true;index" json:"is_active"`

	// Denormalized caches, maintained by the engagement and moderation services.
	Rating     float64 `gorm:"not null;default:0" json:"rating"`
	LikesCount int     `gorm:"not null;default:0" json:"likes_count"`
	ViewsCount int     `gorm:"not null;default:0" json:"views_count"`

	Reviews []Review `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
