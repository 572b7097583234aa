package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumberText(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"twenty two guests", 22, true},
		{"twenty-two", 22, true},
		{"तीन", 3, true},
		{"हम पांच लोग हैं", 5, true},
		{"४ लोग", 4, true},
		{"table for 6 please", 6, true},
		{"one hundred", 100, true},
		{"सौ", 100, true},
		{"forty", 40, true},
		{"we are eleven", 11, true},
		{"ek", 1, true},
		{"", 0, false},
		{"just me and my friend", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNumberText(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseGuestsDefaultsToOne(t *testing.T) {
	n, ok := ParseGuests("")
	assert.False(t, ok)
	assert.Equal(t, 1, n)

	n, ok = ParseGuests("zero")
	assert.False(t, ok)
	assert.Equal(t, 1, n)

	n, ok = ParseGuests("two")
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}
