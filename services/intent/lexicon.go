package intent

import "time"

// Lexicon is the per-language vocabulary the parsers match against. Parsers
// consult every registered lexicon so mixed-language answers still resolve.
type Lexicon struct {
	Tag         string
	Numbers     map[string]int
	Tens        map[string]int // words that may take a ones word after them
	Hundred     []string
	Months      map[string]time.Month
	Relative    map[string]int // phrase -> day offset from today
	Affirmative []string
	Negative    []string
	Unsure      []string // replies that are neither yes nor no, checked first
	Ordinals    map[string]int // 1-based; -1 means last
	Domain      []string
	None        []string // full answers meaning "nothing" for optional fields
	AM          []string
	PM          []string
	HourMarkers []string
	TimeFillers []string
	NamePrefix  []string
	NameSuffix  []string
}

var english = &Lexicon{
	Tag: "en",
	Numbers: map[string]int{
		"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6, "seven": 7,
		"eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
		"fourteen": 14, "fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
		"nineteen": 19, "twenty": 20, "thirty": 30, "forty": 40, "fifty": 50, "sixty": 60,
		"seventy": 70, "eighty": 80, "ninety": 90, "dozen": 12, "couple": 2, "single": 1,
	},
	Tens: map[string]int{
		"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
		"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
	},
	Hundred: []string{"hundred"},
	Months: map[string]time.Month{
		"january": time.January, "jan": time.January,
		"february": time.February, "feb": time.February,
		"march": time.March, "mar": time.March,
		"april": time.April, "apr": time.April,
		"may": time.May,
		"june": time.June, "jun": time.June,
		"july": time.July, "jul": time.July,
		"august": time.August, "aug": time.August,
		"september": time.September, "sep": time.September, "sept": time.September,
		"october": time.October, "oct": time.October,
		"november": time.November, "nov": time.November,
		"december": time.December, "dec": time.December,
	},
	Relative: map[string]int{
		"today": 0, "tonight": 0, "this evening": 0,
		"tomorrow": 1, "tmrw": 1, "tomorrow night": 1,
		"day after tomorrow": 2,
	},
	Affirmative: []string{
		"yes", "yeah", "yea", "yep", "yup", "yess", "yes please", "ya", "sure", "ok", "okay",
		"correct", "right", "absolutely", "of course", "definitely", "go ahead", "confirm",
		"sounds good", "please do", "that's right", "alright", "no problem", "no worries",
		"why not",
	},
	Negative: []string{
		"no", "nope", "nah", "cancel", "never", "wrong", "no thanks", "rather not", "stop",
		"do not", "don't want", "dont want", "not really", "don't think so", "dont think so",
	},
	Unsure: []string{
		"don't know", "dont know", "do not know", "not sure", "unsure", "no idea", "maybe",
		"perhaps", "either", "whatever", "doesn't matter", "does not matter", "don't mind",
		"dont mind", "not certain",
	},
	Ordinals: map[string]int{
		"first": 1, "1st": 1, "second": 2, "2nd": 2, "third": 3, "3rd": 3,
		"last": -1, "final": -1,
	},
	Domain: []string{
		"book", "booking", "table", "reserve", "reservation", "guests", "people", "persons",
		"party", "seat", "seats", "indoor", "outdoor", "inside", "outside", "cuisine",
		"dinner", "lunch", "vegetarian", "vegan", "birthday", "anniversary",
	},
	None: []string{
		"no", "none", "nothing", "nope", "nah", "no thanks", "no thank you", "not really",
		"nothing special", "no preference", "nothing else", "any", "anything", "no special requests",
	},
	AM:          []string{"morning"},
	PM:          []string{"pm", "evening", "night", "tonight", "afternoon"},
	HourMarkers: []string{"o'clock", "oclock", "o clock"},
	TimeFillers: []string{"at", "around", "about", "by", "say", "maybe"},
	NamePrefix:  []string{"my name is", "name is", "this is", "i am", "i'm", "it's", "its", "call me"},
}

var hindi = &Lexicon{
	Tag: "hi",
	Numbers: map[string]int{
		"शून्य": 0, "एक": 1, "दो": 2, "तीन": 3, "चार": 4, "पांच": 5, "पाँच": 5, "छह": 6, "छः": 6, "छे": 6,
		"सात": 7, "आठ": 8, "नौ": 9, "दस": 10, "ग्यारह": 11, "बारह": 12, "तेरह": 13, "चौदह": 14,
		"पंद्रह": 15, "पन्द्रह": 15, "सोलह": 16, "सत्रह": 17, "अठारह": 18, "उन्नीस": 19, "बीस": 20,
		"इक्कीस": 21, "बाईस": 22, "तेईस": 23, "चौबीस": 24, "पच्चीस": 25, "छब्बीस": 26, "सत्ताईस": 27,
		"अट्ठाईस": 28, "उनतीस": 29, "तीस": 30, "इकतीस": 31, "बत्तीस": 32, "तैंतीस": 33, "चौंतीस": 34,
		"पैंतीस": 35, "छत्तीस": 36, "सैंतीस": 37, "अड़तीस": 38, "उनतालीस": 39, "चालीस": 40,
		"इकतालीस": 41, "बयालीस": 42, "तैंतालीस": 43, "चवालीस": 44, "पैंतालीस": 45, "छियालीस": 46,
		"सैंतालीस": 47, "अड़तालीस": 48, "उनचास": 49, "पचास": 50, "इक्यावन": 51, "बावन": 52,
		"तिरेपन": 53, "चौवन": 54, "पचपन": 55, "छप्पन": 56, "सत्तावन": 57, "अट्ठावन": 58, "उनसठ": 59,
		"साठ": 60, "इकसठ": 61, "बासठ": 62, "तिरसठ": 63, "चौंसठ": 64, "पैंसठ": 65, "छियासठ": 66,
		"सड़सठ": 67, "अड़सठ": 68, "उनहत्तर": 69, "सत्तर": 70, "इकहत्तर": 71, "बहत्तर": 72,
		"तिहत्तर": 73, "चौहत्तर": 74, "पचहत्तर": 75, "छिहत्तर": 76, "सतहत्तर": 77, "अठहत्तर": 78,
		"उनासी": 79, "अस्सी": 80, "इक्यासी": 81, "बयासी": 82, "तिरासी": 83, "चौरासी": 84,
		"पचासी": 85, "छियासी": 86, "सत्तासी": 87, "अट्ठासी": 88, "नवासी": 89, "नब्बे": 90,
		"इक्यानवे": 91, "बानवे": 92, "तिरानवे": 93, "चौरानवे": 94, "पचानवे": 95, "छियानवे": 96,
		"सत्तानवे": 97, "अट्ठानवे": 98, "निन्यानवे": 99,
		// Romanized forms. "do" and "nau" are left out: they collide with English.
		"ek": 1, "teen": 3, "char": 4, "chaar": 4, "paanch": 5, "panch": 5, "chhe": 6, "chhah": 6,
		"saat": 7, "aath": 8, "das": 10, "gyarah": 11, "barah": 12, "baarah": 12, "bees": 20,
	},
	Hundred: []string{"सौ", "sau"},
	Months: map[string]time.Month{
		"जनवरी": time.January, "फ़रवरी": time.February, "फरवरी": time.February, "मार्च": time.March,
		"अप्रैल": time.April, "मई": time.May, "जून": time.June, "जुलाई": time.July, "अगस्त": time.August,
		"सितंबर": time.September, "सितम्बर": time.September, "अक्टूबर": time.October, "अक्तूबर": time.October,
		"नवंबर": time.November, "नवम्बर": time.November, "दिसंबर": time.December, "दिसम्बर": time.December,
	},
	Relative: map[string]int{
		"आज": 0, "aaj": 0, "आज रात": 0,
		"कल": 1, "kal": 1,
		"परसों": 2, "parson": 2, "parso": 2,
	},
	Affirmative: []string{
		"हाँ", "हां", "हा", "जी हाँ", "जी हां", "ठीक", "ठीक है", "बिल्कुल", "बिलकुल", "सही", "चलेगा", "हाँ जी",
		"haan", "han", "haa", "haanji", "theek", "thik", "bilkul", "sahi", "chalega",
	},
	Negative: []string{
		"नहीं", "नही", "ना", "मत", "रद्द", "बिल्कुल नहीं", "nahi", "nahin", "nai", "na", "mat",
	},
	Unsure: []string{
		"पता नहीं", "पता नही", "मालूम नहीं", "शायद", "कुछ भी", "pata nahi", "pata nahin",
		"maloom nahi", "malum nahi", "shayad", "kuch bhi",
	},
	Ordinals: map[string]int{
		"पहला": 1, "पहली": 1, "पहले": 1, "pehla": 1, "pehli": 1, "pahla": 1,
		"दूसरा": 2, "दूसरी": 2, "दूसरे": 2, "doosra": 2, "dusra": 2, "doosri": 2, "dusri": 2,
		"तीसरा": 3, "तीसरी": 3, "तीसरे": 3, "teesra": 3, "tisra": 3, "teesri": 3,
		"आखिरी": -1, "आख़िरी": -1, "akhri": -1, "aakhri": -1,
	},
	Domain: []string{
		"बुक", "बुकिंग", "टेबल", "मेज़", "मेज", "आरक्षण", "लोग", "लोगों", "मेहमान", "व्यक्ति",
		"अंदर", "बाहर", "खाना", "व्यंजन", "डिनर", "लंच", "log", "logon", "mehmaan", "andar", "bahar",
	},
	None: []string{
		"नहीं", "नही", "कुछ नहीं", "कोई नहीं", "कुछ भी नहीं", "कुछ भी", "कोई भी",
		"nahi", "kuch nahi", "koi nahi", "kuch bhi",
	},
	AM:          []string{"सुबह", "subah", "savere", "सवेरे"},
	PM:          []string{"शाम", "रात", "दोपहर", "shaam", "sham", "raat", "dopahar"},
	HourMarkers: []string{"बजे", "baje"},
	TimeFillers: []string{"लगभग", "करीब", "lagbhag", "kareeb", "tak"},
	NamePrefix:  []string{"मेरा नाम", "मैं", "mera naam", "main", "naam"},
	NameSuffix:  []string{"है", "हूँ", "हूं", "hai", "hoon", "hun"},
}

// lexicons lists every supported language; order sets precedence when two
// vocabularies claim the same token.
var lexicons = []*Lexicon{english, hindi}

// Register adds a lexicon for a further language.
func Register(l *Lexicon) {
	lexicons = append(lexicons, l)
}

// Lang maps a BCP-47 locale such as "hi-IN" to the prompt language key.
func Lang(locale string) string {
	if len(locale) >= 2 && locale[:2] == "hi" {
		return "hi"
	}
	return "en"
}
