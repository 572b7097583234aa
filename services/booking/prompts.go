package booking

import (
	"fmt"
	"strings"
)

type message int

const (
	msgOffer message = iota
	msgNoAlternatives
	msgNoSelection
	msgExhausted
	msgFailedWith
	msgFailed
)

var messages = map[string]map[message]string{
	"en": {
		msgOffer:          "Sorry, %s at %s is already booked. I can offer %s. Which time would you like?",
		msgNoAlternatives: "Sorry, there are no other free tables on %s. Please try a different date.",
		msgNoSelection:    "I couldn't match that to one of the offered times. You can pick a free slot at %s.",
		msgExhausted:      "Sorry, %s was just taken as well. Please choose a free slot at %s.",
		msgFailedWith:     "Sorry, we couldn't complete your booking: %s",
		msgFailed:         "Sorry, something went wrong while booking. Please try again later.",
	},
	"hi": {
		msgOffer:          "माफ़ कीजिए, %s को %s बजे की टेबल पहले से बुक है। मैं %s दे सकती हूँ। आप कौन सा समय चाहेंगे?",
		msgNoAlternatives: "माफ़ कीजिए, %s को कोई और टेबल खाली नहीं है। कृपया कोई दूसरी तारीख़ चुनें।",
		msgNoSelection:    "मैं आपका चुना हुआ समय समझ नहीं पाई। आप %s पर खाली समय चुन सकते हैं।",
		msgExhausted:      "माफ़ कीजिए, %s भी अभी बुक हो गया। कृपया %s पर खाली समय चुनें।",
		msgFailedWith:     "माफ़ कीजिए, आपकी बुकिंग पूरी नहीं हो सकी: %s",
		msgFailed:         "माफ़ कीजिए, बुकिंग में कुछ गड़बड़ हो गई। कृपया बाद में फिर कोशिश करें।",
	},
}

var listJoin = map[string]string{"en": " or ", "hi": " या "}

func text(lang string, m message, args ...any) string {
	table, ok := messages[lang]
	if !ok {
		table = messages["en"]
	}
	return fmt.Sprintf(table[m], args...)
}

// spokenList renders "18:00, 18:30 or 19:30".
func spokenList(lang string, items []string) string {
	join, ok := listJoin[lang]
	if !ok {
		join = listJoin["en"]
	}
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + join + items[len(items)-1]
}
