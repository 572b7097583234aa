package conversation

import (
	"fmt"
	"strings"

	"dinevoice/models"
)

type promptKey int

const (
	pGreeting promptKey = iota
	pReprompt
	pSeatOutdoor
	pSeatIndoor
	pSeatFallback
	pApproximate
	pSummary
	pSummaryName
	pSummaryCuisine
	pSummaryRequests
	pConfirmQuestion
	pConfirmed
	pFallbackNote
	pCancelled
	pStopped
)

var prompts = map[string]map[promptKey]string{
	"en": {
		pGreeting:        "Hello! I can book a table for you.",
		pReprompt:        "Sorry, I didn't catch that.",
		pSeatOutdoor:     "The weather looks great for %s. Would you like to sit outdoors?",
		pSeatIndoor:      "It might rain on %s. Shall I reserve a table indoors?",
		pSeatFallback:    "I couldn't get a forecast for %s, so I'd suggest sitting indoors. Is that okay?",
		pApproximate:     "This is based on the nearest available forecast.",
		pSummary:         "Let me confirm: a table for %d%s on %s at %s, %s",
		pSummaryName:     " under the name %s",
		pSummaryCuisine:  "Cuisine: %s.",
		pSummaryRequests: "Special requests: %s.",
		pConfirmQuestion: "Shall I book it?",
		pConfirmed:       "Your table is booked! Booking ID %s. You'll be seated %s.",
		pFallbackNote:    "We couldn't get a forecast, so indoor seating was chosen to be safe.",
		pCancelled:       "No problem, I've cancelled this booking. Nothing was reserved.",
		pStopped:         "Stopping here. Nothing was booked.",
	},
	"hi": {
		pGreeting:        "नमस्ते! मैं आपके लिए टेबल बुक कर सकती हूँ।",
		pReprompt:        "माफ़ कीजिए, मैं समझ नहीं पाई।",
		pSeatOutdoor:     "%s को मौसम बहुत अच्छा लग रहा है। क्या आप बाहर बैठना चाहेंगे?",
		pSeatIndoor:      "%s को बारिश हो सकती है। क्या मैं अंदर की टेबल बुक करूँ?",
		pSeatFallback:    "%s का मौसम पता नहीं चल पाया, इसलिए मेरा सुझाव अंदर बैठने का है। क्या यह ठीक है?",
		pApproximate:     "यह सबसे नज़दीकी उपलब्ध पूर्वानुमान पर आधारित है।",
		pSummary:         "पुष्टि कर लेती हूँ: %d लोगों के लिए टेबल%s, %s को %s बजे, %s",
		pSummaryName:     " %s के नाम पर",
		pSummaryCuisine:  "व्यंजन: %s।",
		pSummaryRequests: "विशेष अनुरोध: %s।",
		pConfirmQuestion: "क्या मैं इसे बुक कर दूँ?",
		pConfirmed:       "आपकी टेबल बुक हो गई है! बुकिंग आईडी %s। आपकी बैठने की जगह: %s।",
		pFallbackNote:    "मौसम की जानकारी नहीं मिली, इसलिए सुरक्षा के लिए अंदर की जगह चुनी गई।",
		pCancelled:       "कोई बात नहीं, यह बुकिंग रद्द कर दी गई है। कुछ भी बुक नहीं हुआ।",
		pStopped:         "यहीं रुकती हूँ। कुछ भी बुक नहीं हुआ।",
	},
}

var fieldPrompts = map[string]map[models.Field]string{
	"en": {
		models.FieldCustomerName: "May I have your name, please?",
		models.FieldGuests:       "How many guests will be joining?",
		models.FieldDate:         "For which date would you like the booking?",
		models.FieldTime:         "What time would you like to come in?",
		models.FieldCuisine:      "Do you have a cuisine preference?",
		models.FieldRequests:     "Any special requests?",
	},
	"hi": {
		models.FieldCustomerName: "कृपया अपना नाम बताइए।",
		models.FieldGuests:       "कितने लोग आएँगे?",
		models.FieldDate:         "आप किस तारीख़ के लिए बुकिंग चाहते हैं?",
		models.FieldTime:         "आप किस समय आना चाहेंगे?",
		models.FieldCuisine:      "क्या आपकी कोई पसंदीदा व्यंजन शैली है?",
		models.FieldRequests:     "कोई विशेष अनुरोध?",
	},
}

var seatingWords = map[string]map[models.Seating]string{
	"en": {
		models.SeatingIndoor:  "indoors",
		models.SeatingOutdoor: "outdoors",
		"":                    "with no seating preference",
	},
	"hi": {
		models.SeatingIndoor:  "अंदर",
		models.SeatingOutdoor: "बाहर",
		"":                    "बैठने की कोई ख़ास पसंद नहीं",
	},
}

func table[K comparable](tables map[string]map[K]string, lang string) map[K]string {
	if t, ok := tables[lang]; ok {
		return t
	}
	return tables["en"]
}

func phrase(lang string, k promptKey, args ...any) string {
	return fmt.Sprintf(table(prompts, lang)[k], args...)
}

func fieldPrompt(lang string, f models.Field) string {
	return table(fieldPrompts, lang)[f]
}

func seatingWord(lang string, s models.Seating) string {
	if !s.Valid() {
		s = ""
	}
	return table(seatingWords, lang)[s]
}

// summary reads the draft back before the final yes/no.
func summary(lang string, d *models.BookingDraft) string {
	name := ""
	if d.CustomerName != "" {
		name = phrase(lang, pSummaryName, d.CustomerName)
	}
	parts := []string{phrase(lang, pSummary, d.NumberOfGuests, name, d.BookingDate, d.BookingTime, seatingWord(lang, d.SeatingPreference)) + "."}
	if d.CuisinePreference != "" {
		parts = append(parts, phrase(lang, pSummaryCuisine, d.CuisinePreference))
	}
	if d.SpecialRequests != "" {
		parts = append(parts, phrase(lang, pSummaryRequests, d.SpecialRequests))
	}
	parts = append(parts, phrase(lang, pConfirmQuestion))
	return strings.Join(parts, " ")
}

// seatingQuestion frames the suggestion. English prompts lead with the
// provider's summary; the Hindi prompt leaves it out since it is English text.
func seatingQuestion(lang string, date string, s *models.WeatherSuggestion) string {
	var parts []string
	switch s.Recommendation {
	case models.SeatingOutdoor:
		parts = append(parts, phrase(lang, pSeatOutdoor, date))
	case models.SeatingIndoor:
		parts = append(parts, phrase(lang, pSeatIndoor, date))
	default:
		return phrase(lang, pSeatFallback, date)
	}
	if lang == "en" && s.SummaryText != "" {
		parts = append([]string{s.SummaryText}, parts...)
	}
	if s.IsApproximate {
		parts = append(parts, phrase(lang, pApproximate))
	}
	return strings.Join(parts, " ")
}

func confirmation(lang string, b *models.ConfirmedBooking) string {
	id := b.ID
	if len(id) > 8 {
		id = id[:8]
	}
	text := phrase(lang, pConfirmed, id, seatingWord(lang, b.SeatingPreference))
	if b.SeatingFallback && b.SeatingPreference == models.SeatingIndoor {
		text += " " + phrase(lang, pFallbackNote)
	}
	return text
}
