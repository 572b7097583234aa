package intent

import (
	"strings"
	"unicode"
)

var devanagariDigits = strings.NewReplacer(
	"०", "0", "१", "1", "२", "2", "३", "3", "४", "4",
	"५", "5", "६", "6", "७", "7", "८", "8", "९", "9",
)

// latinDigits replaces Devanagari digits with their Latin equivalents.
func latinDigits(s string) string {
	return devanagariDigits.Replace(s)
}

// tokens lowercases s and splits it into words, dropping surrounding
// punctuation. Apostrophes inside words are kept ("o'clock", "don't").
func tokens(s string) []string {
	return rawTokens(strings.ToLower(s))
}

func rawTokens(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '!' || r == '?' || r == '।' || r == ';' || r == '"'
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) && r != '\'' && r != ':' && r != '.' && r != '/' && r != '-'
		})
		f = strings.Trim(f, ".'")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// containsPhrase reports whether the token sequence of phrase appears in toks.
func containsPhrase(toks []string, phrase string) bool {
	want := strings.Fields(strings.ToLower(phrase))
	if len(want) == 0 || len(want) > len(toks) {
		return false
	}
	for i := 0; i+len(want) <= len(toks); i++ {
		match := true
		for j := range want {
			if toks[i+j] != want[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func containsAny(toks []string, phrases []string) bool {
	for _, p := range phrases {
		if containsPhrase(toks, p) {
			return true
		}
	}
	return false
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
