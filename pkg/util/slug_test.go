package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Arabic words", in: "طب الأسنان", want: "طب-الأسنان"},
		{name: "Latin mixed case", in: "Tourist Sites", want: "tourist-sites"},
		{name: "Punctuation collapsed", in: "  مطاعم & مقاهي!! ", want: "مطاعم-مقاهي"},
		{name: "Digits kept", in: "Hotel 5 Stars", want: "hotel-5-stars"},
		{name: "Only symbols", in: "***", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	assert.Equal(t, "حرم-الإمام-الرضا-1700000000123", UniqueSlug("حرم الإمام الرضا", now))
	assert.Equal(t, "1700000000123", UniqueSlug("؟؟", now))
}
