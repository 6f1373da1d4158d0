package model

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// ReviewContent holds the columns shared by doctor and attraction reviews.
type ReviewContent struct {
	UserName   string  `gorm:"type:varchar(100);not null" json:"user_name"`   // reviewer display name
	UserEmail  *string `gorm:"type:varchar(255)" json:"user_email,omitempty"` // optional
	Rating     int     `gorm:"not null" json:"rating"`                        // 1-5
	Comment    *string `gorm:"type:text" json:"comment,omitempty"`
	IsApproved bool    `gorm:"not null;default:false;index" json:"is_approved"` // counted in the subject rating once true
}

// ReviewRecord is implemented by both review tables.
type ReviewRecord interface {
	ToSubjectReview() SubjectReview
}

// Review is a review of a doctor.
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	DoctorID uint    `gorm:"not null;index" json:"doctor_id"`
	Doctor   *Doctor `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"doctor,omitempty"`

	ReviewContent `gorm:"embedded"`

	Replies []ReviewReply `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"replies,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) ToSubjectReview() SubjectReview {
	return SubjectReview{
		ID:            r.ID,
		SubjectType:   SubjectDoctor,
		SubjectID:     r.DoctorID,
		ReviewContent: r.ReviewContent,
		CreatedAt:     r.CreatedAt,
	}
}

// AttractionReview is a review of an attraction.
type AttractionReview struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	AttractionID uint        `gorm:"not null;index" json:"attraction_id"`
	Attraction   *Attraction `gorm:"foreignKey:AttractionID;constraint:OnDelete:CASCADE" json:"attraction,omitempty"`

	ReviewContent `gorm:"embedded"`
}

func (AttractionReview) TableName() string {
	return "attraction_reviews"
}

func (r *AttractionReview) ToSubjectReview() SubjectReview {
	return SubjectReview{
		ID:            r.ID,
		SubjectType:   SubjectAttraction,
		SubjectID:     r.AttractionID,
		ReviewContent: r.ReviewContent,
		CreatedAt:     r.CreatedAt,
	}
}

// ReviewReply is a moderator's public answer to a doctor review.
type ReviewReply struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ReviewID uint   `gorm:"not null;index" json:"review_id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	Message  string `gorm:"type:text;not null" json:"message"`

	Review *Review `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"-"`
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ReviewReply) TableName() string {
	return "review_replies"
}

// SubjectReview is the kind-agnostic view of a review row used by moderation.
type SubjectReview struct {
	ID          uint        `json:"id"`
	SubjectType SubjectType `gorm:"-" json:"subject_type"`
	SubjectID   uint        `json:"subject_id"`

	ReviewContent `gorm:"embedded"`

	CreatedAt time.Time `json:"created_at"`
}
