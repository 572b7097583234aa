package intent

import (
	"strings"
	"time"

	"dinevoice/models"
	"dinevoice/services/slots"
)

// Normalizer merges raw transcripts and NLP hints into a booking draft.
type Normalizer struct {
	Now func() time.Time
}

func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{Now: now}
}

// Normalize returns a copy of draft with every unresolved field filled. A field
// already resolved in draft is never overwritten. An unresolved field takes the
// NLP value when the intent carries a valid one, otherwise it is parsed from
// the field's own transcript. Fields with neither stay unresolved.
func (n *Normalizer) Normalize(draft *models.BookingDraft, transcripts map[models.Field]string, hint *models.Intent) *models.BookingDraft {
	out := draft.Clone()
	now := n.Now()

	for _, f := range models.FieldOrder {
		if out.Resolved(f) {
			continue
		}
		if applyIntent(out, f, hint) {
			continue
		}
		if text, ok := transcripts[f]; ok {
			applyTranscript(out, f, text, now)
		}
	}
	if !out.Resolved(models.FieldSeating) {
		applyIntent(out, models.FieldSeating, hint)
	}
	return out
}

// Offer writes value into f when src outranks the field's current source.
// Explicit user choices use it to override weaker signals.
func Offer(d *models.BookingDraft, f models.Field, value string, src models.Source) bool {
	if d.Resolved(f) && d.SourceOf(f).Rank() >= src.Rank() {
		return false
	}
	d.Set(f, value, src)
	return true
}

func applyIntent(d *models.BookingDraft, f models.Field, hint *models.Intent) bool {
	if hint == nil {
		return false
	}
	switch f {
	case models.FieldCustomerName:
		if v := trimmed(hint.CustomerName); v != "" {
			d.Set(f, v, models.SourceNLP)
			return true
		}
	case models.FieldGuests:
		if hint.NumberOfGuests != nil && *hint.NumberOfGuests >= 1 {
			d.SetGuests(*hint.NumberOfGuests, models.SourceNLP)
			return true
		}
	case models.FieldDate:
		if v := trimmed(hint.BookingDate); v != "" {
			if _, err := time.Parse(DateLayout, v); err == nil {
				d.Set(f, v, models.SourceNLP)
				return true
			}
		}
	case models.FieldTime:
		if v := trimmed(hint.BookingTime); v != "" {
			if hhmm, ok := slots.Truncate(v); ok {
				d.Set(f, hhmm, models.SourceNLP)
				return true
			}
		}
	case models.FieldCuisine:
		if v := trimmed(hint.CuisinePreference); v != "" {
			d.Set(f, v, models.SourceNLP)
			return true
		}
	case models.FieldRequests:
		if v := trimmed(hint.SpecialRequests); v != "" {
			d.Set(f, v, models.SourceNLP)
			return true
		}
	case models.FieldSeating:
		if hint.SeatingPreference != nil && hint.SeatingPreference.Valid() {
			d.Set(f, string(*hint.SeatingPreference), models.SourceNLP)
			return true
		}
	}
	return false
}

// applyTranscript parses text for f. Parse failures fall back to the
// documented defaults and are recorded as SourceDefault.
func applyTranscript(d *models.BookingDraft, f models.Field, text string, now time.Time) {
	text = strings.TrimSpace(text)
	switch f {
	case models.FieldCustomerName:
		d.Set(f, ParseName(text), models.SourceSpeech)
	case models.FieldGuests:
		n, ok := ParseGuests(text)
		d.SetGuests(n, sourceFor(ok))
	case models.FieldDate:
		v, ok := ResolveDate(text, now)
		d.Set(f, v, sourceFor(ok))
	case models.FieldTime:
		v, ok := ResolveTime(text)
		d.Set(f, v, sourceFor(ok))
	case models.FieldCuisine, models.FieldRequests:
		if IsNone(text) {
			d.Set(f, "", models.SourceSpeech)
			return
		}
		d.Set(f, text, models.SourceSpeech)
	}
}

func sourceFor(parsed bool) models.Source {
	if parsed {
		return models.SourceSpeech
	}
	return models.SourceDefault
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
