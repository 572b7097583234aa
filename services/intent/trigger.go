package intent

// extractWordThreshold is the length above which a reply is worth sending
// to the NLP extractor regardless of content.
const extractWordThreshold = 4

// ShouldExtract decides whether a transcript goes to the external extractor:
// long replies, or any reply mentioning booking vocabulary. Short direct
// answers are parsed locally.
func ShouldExtract(s string) bool {
	if WordCount(s) > extractWordThreshold {
		return true
	}
	toks := tokens(s)
	for _, lex := range lexicons {
		if containsAny(toks, lex.Domain) {
			return true
		}
	}
	return false
}
