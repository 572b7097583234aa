package booking

import (
	"fmt"
	"sort"
	"strings"

	"dinevoice/services/intent"
	"dinevoice/services/slots"
)

// MaxAlternatives bounds how many free slots are offered after a conflict.
const MaxAlternatives = 3

// Alternatives picks up to limit slots from available closest to requested,
// excluding requested itself, and returns them in chronological order.
func Alternatives(available []string, requested string, limit int) []string {
	want, err := slots.ParseClock(requested)
	candidates := make([]string, 0, len(available))
	for _, s := range available {
		if s != requested {
			candidates = append(candidates, s)
		}
	}
	if err == nil {
		sort.SliceStable(candidates, func(i, j int) bool {
			return distance(candidates[i], want) < distance(candidates[j], want)
		})
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	sort.Strings(candidates)
	return candidates
}

func distance(slot string, want int) int {
	m, err := slots.ParseClock(slot)
	if err != nil {
		return 1 << 30
	}
	if m > want {
		return m - want
	}
	return want - m
}

// MatchAlternative maps a spoken reply onto one of the offered slots. It tries
// a direct time reading, then an ordinal ("the second one", "दूसरा"), then a
// loose hour match ("six thirty", "the 7 one").
func MatchAlternative(reply string, offered []string) (string, bool) {
	reply = strings.TrimSpace(reply)
	if reply == "" || len(offered) == 0 {
		return "", false
	}
	if t, ok := intent.ParseTimeText(reply); ok {
		if s, ok := pickTime(t, offered); ok {
			return s, true
		}
	}
	if n, ok := intent.Ordinal(reply); ok {
		switch {
		case n == -1:
			return offered[len(offered)-1], true
		case n >= 1 && n <= len(offered):
			return offered[n-1], true
		}
	}
	return matchLoose(reply, offered)
}

// pickTime accepts an exact match or the same clock reading twelve hours
// apart, since replies rarely say am or pm.
func pickTime(t string, offered []string) (string, bool) {
	m, err := slots.ParseClock(t)
	if err != nil {
		return "", false
	}
	for _, candidate := range []int{m, (m + 12*60) % (24 * 60)} {
		for _, s := range offered {
			if sm, err := slots.ParseClock(s); err == nil && sm == candidate {
				return s, true
			}
		}
	}
	return "", false
}

func matchLoose(reply string, offered []string) (string, bool) {
	lower := strings.ToLower(reply)
	for _, s := range offered {
		if strings.Contains(lower, s) || strings.Contains(lower, twelveHour(s)) {
			return s, true
		}
	}

	words := strings.Fields(lower)
	for i, w := range words {
		h, ok := intent.ParseNumberText(w)
		if !ok || h > 23 {
			continue
		}
		minute := -1
		if i+1 < len(words) {
			if m, ok := intent.ParseNumberText(strings.Join(words[i+1:], " ")); ok && m < 60 {
				minute = m
			}
		}
		if s, ok := byHour(h, minute, offered); ok {
			return s, true
		}
	}
	return "", false
}

// byHour finds the slot whose hour matches h on a 12-hour dial. Without a
// minute the top of the hour is preferred.
func byHour(h, minute int, offered []string) (string, bool) {
	var first string
	for _, s := range offered {
		sm, err := slots.ParseClock(s)
		if err != nil || (sm/60)%12 != h%12 {
			continue
		}
		if minute >= 0 {
			if sm%60 == minute {
				return s, true
			}
			continue
		}
		if sm%60 == 0 {
			return s, true
		}
		if first == "" {
			first = s
		}
	}
	return first, first != ""
}

func twelveHour(slot string) string {
	m, err := slots.ParseClock(slot)
	if err != nil {
		return slot
	}
	h := (m / 60) % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d", h, m%60)
}
