package intent

import (
	"testing"
	"time"

	"dinevoice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func newTestNormalizer() *Normalizer {
	return NewNormalizer(func() time.Time { return fixedNow })
}

func TestNormalizeParsesTranscripts(t *testing.T) {
	n := newTestNormalizer()
	draft := models.NewDraft("b-1", "en-IN")

	out := n.Normalize(draft, map[models.Field]string{
		models.FieldCustomerName: "Asha",
		models.FieldGuests:       "two",
		models.FieldDate:         "tomorrow",
		models.FieldTime:         "7 pm",
		models.FieldCuisine:      "no",
		models.FieldRequests:     "window seat if possible",
	}, nil)

	assert.Equal(t, "Asha", out.CustomerName)
	assert.Equal(t, 2, out.NumberOfGuests)
	assert.Equal(t, "2024-05-11", out.BookingDate)
	assert.Equal(t, "19:00", out.BookingTime)
	assert.Equal(t, "", out.CuisinePreference)
	assert.True(t, out.Resolved(models.FieldCuisine))
	assert.Equal(t, "window seat if possible", out.SpecialRequests)
	assert.Equal(t, models.SourceSpeech, out.SourceOf(models.FieldTime))

	// input draft is untouched
	assert.False(t, draft.Resolved(models.FieldCustomerName))
}

func TestNormalizeDefaultsOnParseFailure(t *testing.T) {
	n := newTestNormalizer()

	out := n.Normalize(models.NewDraft("b-1", "en-IN"), map[models.Field]string{
		models.FieldGuests: "",
		models.FieldDate:   "whenever",
		models.FieldTime:   "",
	}, nil)

	assert.Equal(t, 1, out.NumberOfGuests)
	assert.Equal(t, "2024-05-10", out.BookingDate)
	assert.Equal(t, DefaultTime, out.BookingTime)
	for _, f := range []models.Field{models.FieldGuests, models.FieldDate, models.FieldTime} {
		assert.Equal(t, models.SourceDefault, out.SourceOf(f), f)
	}
	assert.False(t, out.Resolved(models.FieldCustomerName))
}

func TestNormalizeNLPFillsEmptyFields(t *testing.T) {
	n := newTestNormalizer()
	seating := models.SeatingOutdoor
	hint := &models.Intent{
		NumberOfGuests:    intPtr(4),
		BookingDate:       strPtr("2024-05-12"),
		BookingTime:       strPtr("20:30"),
		CuisinePreference: strPtr("Italian"),
		SeatingPreference: &seating,
	}

	out := n.Normalize(models.NewDraft("b-1", "en-IN"), map[models.Field]string{
		models.FieldGuests: "a table for four on sunday at half past eight, italian outside",
	}, hint)

	assert.Equal(t, 4, out.NumberOfGuests)
	assert.Equal(t, "2024-05-12", out.BookingDate)
	assert.Equal(t, "20:30", out.BookingTime)
	assert.Equal(t, "Italian", out.CuisinePreference)
	assert.Equal(t, models.SeatingOutdoor, out.SeatingPreference)
	assert.Equal(t, models.SourceNLP, out.SourceOf(models.FieldDate))
	assert.False(t, out.Resolved(models.FieldCustomerName))
}

func TestNormalizeNeverOverwritesResolvedFields(t *testing.T) {
	n := newTestNormalizer()
	draft := models.NewDraft("b-1", "en-IN")
	draft.Set(models.FieldCustomerName, "Asha", models.SourceSpeech)
	draft.SetGuests(2, models.SourceSpeech)

	out := n.Normalize(draft, map[models.Field]string{
		models.FieldCustomerName: "Meera",
		models.FieldGuests:       "five",
	}, &models.Intent{CustomerName: strPtr("Meera"), NumberOfGuests: intPtr(5)})

	assert.Equal(t, "Asha", out.CustomerName)
	assert.Equal(t, 2, out.NumberOfGuests)
}

func TestNormalizeIgnoresInvalidNLPValues(t *testing.T) {
	n := newTestNormalizer()
	hint := &models.Intent{
		NumberOfGuests: intPtr(0),
		BookingDate:    strPtr("next friday"),
		BookingTime:    strPtr("evening"),
	}

	out := n.Normalize(models.NewDraft("b-1", "en-IN"), map[models.Field]string{
		models.FieldGuests: "three",
		models.FieldDate:   "कल",
		models.FieldTime:   "शाम 8 बजे",
	}, hint)

	assert.Equal(t, 3, out.NumberOfGuests)
	assert.Equal(t, "2024-05-11", out.BookingDate)
	assert.Equal(t, "20:00", out.BookingTime)
}

func TestOfferRespectsRank(t *testing.T) {
	d := models.NewDraft("b-1", "en-IN")
	require.True(t, Offer(d, models.FieldSeating, "indoor", models.SourceNLP))
	assert.False(t, Offer(d, models.FieldSeating, "outdoor", models.SourceWeather))
	assert.Equal(t, models.SeatingIndoor, d.SeatingPreference)

	assert.True(t, Offer(d, models.FieldSeating, "outdoor", models.SourceSpeech))
	assert.Equal(t, models.SeatingOutdoor, d.SeatingPreference)

	require.True(t, Offer(d, models.FieldTime, "19:00", models.SourceSpeech))
	assert.True(t, Offer(d, models.FieldTime, "18:30", models.SourceSlotPick))
	assert.Equal(t, "18:30", d.BookingTime)
}
