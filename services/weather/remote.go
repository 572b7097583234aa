package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dinevoice/models"
)

// RemoteAdvisor asks a running server for a seating suggestion.
type RemoteAdvisor struct {
	baseURL    string
	httpClient *http.Client
}

func NewRemoteAdvisor(baseURL string) *RemoteAdvisor {
	return &RemoteAdvisor{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetForecast ignores lat/lon; the server uses the restaurant location.
func (a *RemoteAdvisor) GetForecast(ctx context.Context, date string, _, _ float64) (*models.WeatherSuggestion, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		a.baseURL+"/api/weather/seating?date="+url.QueryEscape(date), nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather: remote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather: remote returned status %d", resp.StatusCode)
	}
	var out models.WeatherSuggestion
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("weather: decode remote response: %w", err)
	}
	if out.Recommendation == models.SeatingUnknown {
		return nil, ErrNoForecast
	}
	return &out, nil
}
