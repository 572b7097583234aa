package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"dinevoice/models"
)

// Provider returns daily forecast records for a location, ascending by date.
type Provider interface {
	Forecast(ctx context.Context, lat, lon float64) ([]models.ForecastRecord, error)
}

// OpenWeatherClient reads the 5 day / 3 hour forecast endpoint.
type OpenWeatherClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewOpenWeatherClient(baseURL, apiKey string) *OpenWeatherClient {
	return &OpenWeatherClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
}

type owmResponse struct {
	List []struct {
		Dt    int64   `json:"dt"`
		DtTxt string  `json:"dt_txt"`
		Pop   float64 `json:"pop"`
		Main  struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
	City struct {
		Timezone int `json:"timezone"` // seconds east of UTC
	} `json:"city"`
}

func (c *OpenWeatherClient) Forecast(ctx context.Context, lat, lon float64) ([]models.ForecastRecord, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("weather: api key not configured")
	}
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/data/2.5/forecast?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("weather: create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather: provider returned status %d", resp.StatusCode)
	}

	var body owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("weather: decode response: %w", err)
	}

	zone := time.FixedZone("local", body.City.Timezone)
	var entries []entry
	for _, item := range body.List {
		e := entry{date: time.Unix(item.Dt, 0).In(zone).Format("2006-01-02"), pop: item.Pop, temp: item.Main.Temp}
		if len(item.Weather) > 0 {
			e.condition = item.Weather[0].Main
			e.description = item.Weather[0].Description
		}
		entries = append(entries, e)
	}
	return aggregate(entries), nil
}

type entry struct {
	date        string
	pop         float64
	temp        float64
	condition   string
	description string
}

// aggregate folds 3-hourly entries into one record per date: the highest
// precipitation probability, and the first wet condition seen or else the
// most frequent one.
func aggregate(entries []entry) []models.ForecastRecord {
	type acc struct {
		pop        float64
		tempMax    float64
		wet        *entry
		counts     map[string]int
		descByCond map[string]string
	}
	days := map[string]*acc{}
	for i := range entries {
		e := entries[i]
		a, ok := days[e.date]
		if !ok {
			a = &acc{tempMax: e.temp, counts: map[string]int{}, descByCond: map[string]string{}}
			days[e.date] = a
		}
		if e.pop > a.pop {
			a.pop = e.pop
		}
		if e.temp > a.tempMax {
			a.tempMax = e.temp
		}
		if a.wet == nil && isWet(e.condition) {
			a.wet = &entries[i]
		}
		a.counts[e.condition]++
		if _, ok := a.descByCond[e.condition]; !ok {
			a.descByCond[e.condition] = e.description
		}
	}

	out := make([]models.ForecastRecord, 0, len(days))
	for date, a := range days {
		p, t := a.pop, a.tempMax
		rec := models.ForecastRecord{Date: date, PrecipitationProbability: &p, TempC: &t}
		if a.wet != nil {
			rec.Condition, rec.Description = a.wet.condition, a.wet.description
		} else {
			best := ""
			for cond, n := range a.counts {
				if n > a.counts[best] || (n == a.counts[best] && cond < best) {
					best = cond
				}
			}
			rec.Condition, rec.Description = best, a.descByCond[best]
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
