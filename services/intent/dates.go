package intent

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var (
	isoDateRe   = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	slashDateRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`)
	dashDateRe  = regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})\b`)
	dayTokenRe  = regexp.MustCompile(`^(\d{1,2})(st|nd|rd|th)?$`)
	yearTokenRe = regexp.MustCompile(`^\d{4}$`)
)

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// makeDate builds a calendar date, rejecting values time.Date would roll over.
func makeDate(y int, m time.Month, d int, loc *time.Location) (time.Time, bool) {
	if m < time.January || m > time.December || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if t.Day() != d || t.Month() != m {
		return time.Time{}, false
	}
	return t, true
}

// nextOccurrence returns day/month in the current year, or next year when
// that date has already passed.
func nextOccurrence(m time.Month, d int, now time.Time) (time.Time, bool) {
	today := midnight(now)
	for y := today.Year(); y <= today.Year()+1; y++ {
		if t, ok := makeDate(y, m, d, now.Location()); ok && !t.Before(today) {
			return t, true
		}
	}
	// Feb 29 in a non-leap window.
	for y := today.Year() + 2; y <= today.Year()+8; y++ {
		if t, ok := makeDate(y, m, d, now.Location()); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// nextDayOfMonth resolves a bare day-of-month to this month when it has not
// passed yet, otherwise to the next month that has that day.
func nextDayOfMonth(d int, now time.Time) (time.Time, bool) {
	today := midnight(now)
	y, m := today.Year(), today.Month()
	for i := 0; i < 13; i++ {
		if t, ok := makeDate(y, m, d, now.Location()); ok && !t.Before(today) {
			return t, true
		}
		m++
		if m > time.December {
			m = time.January
			y++
		}
	}
	return time.Time{}, false
}

func expandYear(y int) int {
	if y < 100 {
		return 2000 + y
	}
	return y
}

func lookupMonth(tok string) (time.Month, bool) {
	for _, lex := range lexicons {
		if m, ok := lex.Months[tok]; ok {
			return m, true
		}
	}
	return 0, false
}

func dayFromToken(tok string) (int, bool) {
	if m := dayTokenRe.FindStringSubmatch(tok); m != nil {
		d, _ := strconv.Atoi(m[1])
		return d, d >= 1 && d <= 31
	}
	if n, ok := lookupNumber(tok); ok && n >= 1 && n <= 31 {
		return n, true
	}
	return 0, false
}

// ParseDateText interprets spoken or typed dates relative to now. ok is false
// when nothing recognizable was found.
func ParseDateText(s string, now time.Time) (time.Time, bool) {
	text := latinDigits(strings.ToLower(s))
	loc := now.Location()

	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if t, ok := makeDate(y, time.Month(mo), d, loc); ok {
			return t, true
		}
	}
	if m := slashDateRe.FindStringSubmatch(text); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		if t, ok := makeDate(expandYear(y), time.Month(mo), d, loc); ok {
			return t, true
		}
	}
	if m := dashDateRe.FindStringSubmatch(text); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		if t, ok := nextOccurrence(time.Month(mo), d, now); ok {
			return t, true
		}
	}

	toks := tokens(text)
	t, ok, sawMonth := parseMonthName(toks, now)
	if ok {
		return t, true
	}
	if sawMonth {
		// A named month with an impossible day is not a bare day-of-month.
		return time.Time{}, false
	}
	if t, ok := parseRelative(toks, now); ok {
		return t, true
	}
	for _, tok := range toks {
		if d, ok := dayFromToken(tok); ok {
			return nextDayOfMonth(d, now)
		}
	}
	return time.Time{}, false
}

// parseMonthName handles "<day> <month> [year]" and "<month> <day> [year]".
func parseMonthName(toks []string, now time.Time) (t time.Time, ok bool, sawMonth bool) {
	for i, tok := range toks {
		month, found := lookupMonth(tok)
		if !found {
			continue
		}
		day, dayOK := 0, false
		next := i + 1
		if i > 0 {
			day, dayOK = dayFromToken(toks[i-1])
		}
		if !dayOK && i+1 < len(toks) {
			day, dayOK = dayFromToken(toks[i+1])
			next = i + 2
		}
		if !dayOK {
			continue
		}
		sawMonth = true
		if next < len(toks) && yearTokenRe.MatchString(toks[next]) {
			y, _ := strconv.Atoi(toks[next])
			if d, valid := makeDate(y, month, day, now.Location()); valid {
				return d, true, true
			}
			continue
		}
		if d, valid := nextOccurrence(month, day, now); valid {
			return d, true, true
		}
	}
	return time.Time{}, false, sawMonth
}

// parseRelative matches the longest relative phrase so "day after tomorrow"
// is not read as "tomorrow".
func parseRelative(toks []string, now time.Time) (time.Time, bool) {
	best, bestLen := 0, 0
	for _, lex := range lexicons {
		for phrase, offset := range lex.Relative {
			n := len(strings.Fields(phrase))
			if !containsPhrase(toks, phrase) {
				continue
			}
			if n > bestLen || (n == bestLen && offset < best) {
				best, bestLen = offset, n
			}
		}
	}
	if bestLen == 0 {
		return time.Time{}, false
	}
	return midnight(now).AddDate(0, 0, best), true
}

// ResolveDate returns the parsed date as YYYY-MM-DD, falling back to today.
func ResolveDate(s string, now time.Time) (string, bool) {
	if t, ok := ParseDateText(s, now); ok {
		return t.Format(DateLayout), true
	}
	return now.Format(DateLayout), false
}
