package intent

import "strings"

// ParseName strips lead-ins such as "my name is" or "मेरा नाम ... है" and
// returns the remaining words with their original casing.
func ParseName(s string) string {
	words := rawTokens(s)
	lower := make([]string, len(words))
	for i, w := range words {
		lower[i] = strings.ToLower(w)
	}

	start, end := 0, len(words)
	for _, lex := range lexicons {
		for _, p := range lex.NamePrefix {
			pw := strings.Fields(p)
			if len(pw) < end-start && hasPrefixTokens(lower[start:end], pw) {
				start += len(pw)
			}
		}
	}
	for _, lex := range lexicons {
		for _, suf := range lex.NameSuffix {
			if end-start > 1 && lower[end-1] == suf {
				end--
			}
		}
	}
	return strings.Join(words[start:end], " ")
}

func hasPrefixTokens(toks, prefix []string) bool {
	if len(prefix) > len(toks) {
		return false
	}
	for i := range prefix {
		if toks[i] != prefix[i] {
			return false
		}
	}
	return true
}
