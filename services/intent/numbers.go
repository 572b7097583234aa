package intent

import (
	"regexp"
	"strconv"
	"strings"
)

var digitsRe = regexp.MustCompile(`\d+`)

// ParseNumberText extracts the first number in s. Latin digits win, then
// Devanagari digits, then number words from any lexicon ("twenty two",
// "तीन", "one hundred").
func ParseNumberText(s string) (int, bool) {
	if m := digitsRe.FindString(s); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n, true
		}
	}
	if converted := latinDigits(s); converted != s {
		if m := digitsRe.FindString(converted); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				return n, true
			}
		}
	}
	return parseNumberWords(tokens(strings.ReplaceAll(s, "-", " ")))
}

func lookupNumber(tok string) (int, bool) {
	for _, lex := range lexicons {
		if n, ok := lex.Numbers[tok]; ok {
			return n, true
		}
	}
	return 0, false
}

func isTens(tok string) bool {
	for _, lex := range lexicons {
		if _, ok := lex.Tens[tok]; ok {
			return true
		}
	}
	return false
}

func isHundred(tok string) bool {
	for _, lex := range lexicons {
		for _, h := range lex.Hundred {
			if tok == h {
				return true
			}
		}
	}
	return false
}

func parseNumberWords(toks []string) (int, bool) {
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if isHundred(tok) {
			return 100, true
		}
		n, ok := lookupNumber(tok)
		if !ok {
			continue
		}
		if i+1 < len(toks) {
			next := toks[i+1]
			if isHundred(next) {
				return n * 100, true
			}
			if isTens(tok) {
				if ones, ok := lookupNumber(next); ok && ones > 0 && ones < 10 {
					return n + ones, true
				}
			}
		}
		return n, true
	}
	return 0, false
}

// ParseGuests resolves a party size, defaulting to 1 when nothing usable is said.
func ParseGuests(s string) (int, bool) {
	n, ok := ParseNumberText(s)
	if !ok || n < 1 {
		return 1, false
	}
	return n, true
}
