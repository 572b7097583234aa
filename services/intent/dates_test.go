package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2024, 5, 10, 15, 4, 0, 0, time.UTC)

func TestParseDateText(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"tomorrow", "2024-05-11", true},
		{"कल", "2024-05-11", true},
		{"today", "2024-05-10", true},
		{"आज शाम", "2024-05-10", true},
		{"day after tomorrow", "2024-05-12", true},
		{"परसों", "2024-05-12", true},
		{"15 june 2024", "2024-06-15", true},
		{"June 15th", "2024-06-15", true},
		{"15 जून", "2024-06-15", true},
		{"2 jan", "2025-01-02", true},
		{"2024-07-04", "2024-07-04", true},
		{"4/7/2024", "2024-07-04", true},
		{"25-12", "2024-12-25", true},
		{"the 20th", "2024-05-20", true},
		{"on the 3rd", "2024-06-03", true},
		{"31", "2024-05-31", true},
		{"whenever works", "", false},
		{"31 february", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDateText(tt.in, fixedNow)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got.Format(DateLayout))
			}
		})
	}
}

func TestResolveDateFallsBackToToday(t *testing.T) {
	got, ok := ResolveDate("sometime soon", fixedNow)
	assert.False(t, ok)
	assert.Equal(t, "2024-05-10", got)
}
