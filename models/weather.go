package models

// ForecastRecord is one provider reading for a date.
type ForecastRecord struct {
	Date                     string   `json:"date"`                               // "YYYY-MM-DD"
	PrecipitationProbability *float64 `json:"precipitationProbability,omitempty"` // 0..1, nil when the provider omits it
	Condition                string   `json:"condition"`                          // e.g. "Rain", "Clear"
	Description              string   `json:"description,omitempty"`
	TempC                    *float64 `json:"tempC,omitempty"`
}

// WeatherSuggestion is the advisor's verdict for a requested date.
type WeatherSuggestion struct {
	Recommendation    Seating `json:"recommendation"`    // indoor | outdoor | unknown
	SummaryText       string  `json:"summaryText"`
	ConfidencePresent bool    `json:"confidencePresent"` // false when approximated or unavailable
	IsApproximate     bool    `json:"isApproximate"`
	ForecastDate      string  `json:"forecastDate,omitempty"` // date actually used
}

// UnknownWeather is returned when no forecast covers the requested date.
func UnknownWeather() *WeatherSuggestion {
	return &WeatherSuggestion{Recommendation: SeatingUnknown}
}
