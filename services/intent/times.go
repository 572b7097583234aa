package intent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultTime is used when no time of day can be parsed.
const DefaultTime = "19:00"

var (
	clockRe     = regexp.MustCompile(`\b(\d{1,2})[:.](\d{2})\s*(am|pm)?\b`)
	meridiemRe  = regexp.MustCompile(`\b(\d{1,2})\s*(am|pm)\b`)
	bareHourRe  = regexp.MustCompile(`^\d{1,2}$`)
	meridiemFix = strings.NewReplacer("a.m.", "am", "p.m.", "pm", "a. m.", "am", "p. m.", "pm")
)

type meridiem int

const (
	noMeridiem meridiem = iota
	ante
	post
)

// applyMeridiem converts h to 24h. With no period given, hours 1 to 11 are
// read as afternoon or evening, since that is when the restaurant seats.
func applyMeridiem(h int, m meridiem) int {
	switch m {
	case noMeridiem:
		if h >= 1 && h < 12 {
			return h + 12
		}
	case post:
		if h < 12 {
			return h + 12
		}
	case ante:
		if h == 12 {
			return 0
		}
	}
	return h
}

func meridiemFromWords(toks []string) meridiem {
	for _, lex := range lexicons {
		if containsAny(toks, lex.PM) {
			return post
		}
	}
	for _, lex := range lexicons {
		if containsAny(toks, lex.AM) {
			return ante
		}
	}
	// "am" alone is too common in English; only count it after a number.
	for i := 1; i < len(toks); i++ {
		if toks[i] != "am" {
			continue
		}
		if _, ok := ParseNumberText(toks[i-1]); ok {
			return ante
		}
	}
	return noMeridiem
}

func meridiemFromSuffix(s string) meridiem {
	switch s {
	case "pm":
		return post
	case "am":
		return ante
	}
	return noMeridiem
}

// withoutFillers drops words like "at" or "around" that often wrap an hour.
func withoutFillers(toks []string) []string {
	var out []string
	for _, t := range toks {
		filler := false
		for _, lex := range lexicons {
			if containsAny([]string{t}, lex.TimeFillers) {
				filler = true
				break
			}
		}
		if !filler {
			out = append(out, t)
		}
	}
	return out
}

func hasHourMarker(toks []string) bool {
	for _, lex := range lexicons {
		if containsAny(toks, lex.HourMarkers) {
			return true
		}
	}
	return false
}

func formatTime(h, m int) (string, bool) {
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", h, m), true
}

// ParseTimeText reads a time of day as 24h "HH:MM". It accepts "7:30",
// "7.30 pm", "7pm", "seven pm", "शाम 7 बजे" and a bare hour ("at 7").
// A time given without am or pm is placed in the afternoon or evening.
func ParseTimeText(s string) (string, bool) {
	text := meridiemFix.Replace(latinDigits(strings.ToLower(s)))
	toks := tokens(text)
	words := meridiemFromWords(toks)

	if m := clockRe.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		mer := meridiemFromSuffix(m[3])
		if mer == noMeridiem {
			mer = words
		}
		return formatTime(applyMeridiem(h, mer), minute)
	}
	if m := meridiemRe.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		return formatTime(applyMeridiem(h, meridiemFromSuffix(m[2])), 0)
	}

	// Word or digit hour with a period word or hour marker: "seven pm", "सात बजे".
	if words != noMeridiem || hasHourMarker(toks) {
		if h, ok := ParseNumberText(strings.Join(toks, " ")); ok && h >= 0 && h <= 23 {
			return formatTime(applyMeridiem(h, words), 0)
		}
	}

	// A lone hour, possibly wrapped in fillers: "7", "at seven".
	if rest := withoutFillers(toks); len(rest) == 1 {
		if bareHourRe.MatchString(rest[0]) {
			h, _ := strconv.Atoi(rest[0])
			return formatTime(applyMeridiem(h, noMeridiem), 0)
		}
		if h, ok := lookupNumber(rest[0]); ok && h <= 23 {
			return formatTime(applyMeridiem(h, noMeridiem), 0)
		}
	}
	return "", false
}

// ResolveTime returns the parsed time, falling back to DefaultTime.
func ResolveTime(s string) (string, bool) {
	if t, ok := ParseTimeText(s); ok {
		return t, true
	}
	return DefaultTime, false
}
