package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlternativesNearestChronological(t *testing.T) {
	available := []string{"12:00", "17:00", "18:00", "18:30", "19:30", "21:00"}
	assert.Equal(t, []string{"18:00", "18:30", "19:30"}, Alternatives(available, "19:00", 3))
	assert.Equal(t, []string{"12:00"}, Alternatives([]string{"12:00", "19:00"}, "19:00", 3))
	assert.Empty(t, Alternatives([]string{"19:00"}, "19:00", 3))
}

func TestMatchAlternative(t *testing.T) {
	offered := []string{"18:00", "18:30", "19:30"}
	cases := []struct {
		reply string
		want  string
		ok    bool
	}{
		{"18:30", "18:30", true},
		{"7:30 pm", "19:30", true},
		{"6:30", "18:30", true},
		{"the second one", "18:30", true},
		{"first", "18:00", true},
		{"the last one please", "19:30", true},
		{"तीसरा", "19:30", true},
		{"six thirty", "18:30", true},
		{"six", "18:00", true},
		{"seven", "19:30", true},
		{"nine", "", false},
		{"fourth", "", false},
		{"", "", false},
		{"whatever works", "", false},
	}
	for _, c := range cases {
		t.Run(c.reply, func(t *testing.T) {
			got, ok := MatchAlternative(c.reply, offered)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.want, got)
		})
	}
}
