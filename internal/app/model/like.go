package model

import "time"

// DoctorLike marks that a visitor identity likes a doctor. The row's existence is the liked state.
type DoctorLike struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	DoctorID  uint   `gorm:"not null;uniqueIndex:idx_doctor_ip_like" json:"doctor_id"`
	IPAddress string `gorm:"type:varchar(64);not null;uniqueIndex:idx_doctor_ip_like" json:"ip_address"`

	Doctor *Doctor `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (DoctorLike) TableName() string {
	return "doctor_likes"
}

// AttractionLike marks that a visitor identity likes an attraction.
type AttractionLike struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	AttractionID uint   `gorm:"not null;uniqueIndex:idx_attraction_ip_like" json:"attraction_id"`
	IPAddress    string `gorm:"type:varchar(64);not null;uniqueIndex:idx_attraction_ip_like" json:"ip_address"`

	Attraction *Attraction `gorm:"foreignKey:AttractionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AttractionLike) TableName() string {
	return "attraction_likes"
}
