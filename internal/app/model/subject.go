package model

// SubjectType identifies what a like or a review is attached to.
type SubjectType string

const (
	SubjectDoctor     SubjectType = "doctor"
	SubjectAttraction SubjectType = "attraction"
)

// ParseSubjectType accepts the singular and plural URL forms.
func ParseSubjectType(s string) (SubjectType, bool) {
	switch s {
	case "doctor", "doctors":
		return SubjectDoctor, true
	case "attraction", "attractions":
		return SubjectAttraction, true
	}
	return "", false
}

func (t SubjectType) Valid() bool {
	return t == SubjectDoctor || t == SubjectAttraction
}

// SubjectTable is the table holding the rating / likes_count caches.
func (t SubjectType) SubjectTable() string {
	if t == SubjectAttraction {
		return Attraction{}.TableName()
	}
	return Doctor{}.TableName()
}

func (t SubjectType) ReviewTable() string {
	if t == SubjectAttraction {
		return AttractionReview{}.TableName()
	}
	return Review{}.TableName()
}

func (t SubjectType) LikeTable() string {
	if t == SubjectAttraction {
		return AttractionLike{}.TableName()
	}
	return DoctorLike{}.TableName()
}

// ForeignKey is the column that references the subject from its review and like tables.
func (t SubjectType) ForeignKey() string {
	if t == SubjectAttraction {
		return "attraction_id"
	}
	return "doctor_id"
}

// NewLike builds the like row for the subject kind.
func (t SubjectType) NewLike(subjectID uint, ipAddress string) interface{} {
	if t == SubjectAttraction {
		return &AttractionLike{AttractionID: subjectID, IPAddress: ipAddress}
	}
	return &DoctorLike{DoctorID: subjectID, IPAddress: ipAddress}
}

// NewReview builds the review row for the subject kind.
func (t SubjectType) NewReview(subjectID uint, content ReviewContent) ReviewRecord {
	if t == SubjectAttraction {
		return &AttractionReview{AttractionID: subjectID, ReviewContent: content}
	}
	return &Review{DoctorID: subjectID, ReviewContent: content}
}

// SubjectModel returns an empty subject row, for use as a gorm model.
func (t SubjectType) SubjectModel() interface{} {
	if t == SubjectAttraction {
		return &Attraction{}
	}
	return &Doctor{}
}

func (t SubjectType) ReviewModel() interface{} {
	if t == SubjectAttraction {
		return &AttractionReview{}
	}
	return &Review{}
}

func (t SubjectType) LikeModel() interface{} {
	if t == SubjectAttraction {
		return &AttractionLike{}
	}
	return &DoctorLike{}
}
