package model

import "time"

// DayLayout is the key format of Analytics.Day.
const DayLayout = "2006-01-02"

// Analytics holds one row of site counters per calendar day.
type Analytics struct {
	ID  uint   `gorm:"primarykey" json:"-"`
	Day string `gorm:"type:varchar(10);uniqueIndex;not null" json:"day"`

	PageViews      int `gorm:"not null;default:0" json:"page_views"`
	UniqueVisitors int `gorm:"not null;default:0" json:"unique_visitors"`
	DoctorViews    int `gorm:"not null;default:0" json:"doctor_views"`
	Searches       int `gorm:"not null;default:0" json:"searches"`
	Reviews        int `gorm:"not null;default:0" json:"reviews"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (Analytics) TableName() string {
	return "analytics"
}

// AnalyticsMetric names a counter column of Analytics.
type AnalyticsMetric string

const (
	MetricPageViews   AnalyticsMetric = "page_views"
	MetricDoctorViews AnalyticsMetric = "doctor_views"
	MetricSearches    AnalyticsMetric = "searches"
	MetricReviews     AnalyticsMetric = "reviews"
)

// DayKey formats t as an Analytics day key in t's location.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}
