package intent

import "strings"

// Polarity is the yes/no reading of a free-form reply.
type Polarity int

const (
	Ambiguous Polarity = iota
	Affirmative
	Negative
)

func (p Polarity) String() string {
	switch p {
	case Affirmative:
		return "affirmative"
	case Negative:
		return "negative"
	}
	return "ambiguous"
}

// Classify reads a reply as affirmative or negative using every lexicon.
// Unsure phrases, replies matching neither list and replies matching both
// are Ambiguous; the caller picks the default.
func Classify(s string) Polarity {
	toks := tokens(s)
	if len(toks) == 0 {
		return Ambiguous
	}
	for _, lex := range lexicons {
		if containsAny(toks, lex.Unsure) {
			return Ambiguous
		}
	}

	// Multi-word phrases claim their words first, so "no problem" is not
	// also read as a "no".
	yes, no := false, false
	rest := append([]string(nil), toks...)
	for _, lex := range lexicons {
		yes = claimPhrases(rest, lex.Affirmative) || yes
		no = claimPhrases(rest, lex.Negative) || no
	}
	for _, lex := range lexicons {
		yes = yes || containsAny(rest, lex.Affirmative)
		no = no || containsAny(rest, lex.Negative)
	}
	switch {
	case yes && !no:
		return Affirmative
	case no && !yes:
		return Negative
	}
	return Ambiguous
}

// claimPhrases blanks every occurrence of a multi-word phrase in toks and
// reports whether any matched.
func claimPhrases(toks []string, phrases []string) bool {
	matched := false
	for _, p := range phrases {
		want := strings.Fields(strings.ToLower(p))
		if len(want) < 2 {
			continue
		}
		for i := 0; i+len(want) <= len(toks); i++ {
			hit := true
			for j := range want {
				if toks[i+j] != want[j] {
					hit = false
					break
				}
			}
			if hit {
				for j := range want {
					toks[i+j] = ""
				}
				matched = true
			}
		}
	}
	return matched
}

// IsNone reports whether an entire reply means "nothing", e.g. "no thanks"
// or "कुछ नहीं" for an optional field.
func IsNone(s string) bool {
	toks := tokens(s)
	if len(toks) == 0 {
		return true
	}
	joined := ""
	for i, t := range toks {
		if i > 0 {
			joined += " "
		}
		joined += t
	}
	for _, lex := range lexicons {
		for _, phrase := range lex.None {
			if joined == phrase {
				return true
			}
		}
	}
	return false
}

// Ordinal returns the 1-based position named in s, or -1 for "last".
func Ordinal(s string) (int, bool) {
	toks := tokens(s)
	for _, tok := range toks {
		for _, lex := range lexicons {
			if n, ok := lex.Ordinals[tok]; ok {
				return n, true
			}
		}
	}
	return 0, false
}
