package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"dinevoice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// forecastServer serves a 3-hourly list covering 2024-05-10..2024-05-14 UTC.
func forecastServer(t *testing.T, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		assert.Equal(t, "/data/2.5/forecast", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))

		start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"city":{"timezone":0},"list":[`)
		for i := 0; i < 40; i++ {
			ts := start.Add(time.Duration(i*3) * time.Hour)
			cond, pop := "Clear", 0.05
			if ts.Day() == 12 && ts.Hour() == 18 {
				cond, pop = "Rain", 0.8
			}
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"dt":%d,"pop":%.2f,"main":{"temp":28},"weather":[{"main":%q,"description":%q}]}`,
				ts.Unix(), pop, cond, "sky "+cond)
		}
		fmt.Fprint(w, `]}`)
	}))
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]models.ForecastRecord
}

func (c *memoryCache) Get(_ context.Context, key string) ([]models.ForecastRecord, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.data[key]
	return r, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, records []models.ForecastRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = records
	return nil
}

func newTestService(t *testing.T, calls *int) *Service {
	srv := forecastServer(t, calls)
	t.Cleanup(srv.Close)
	clock := func() time.Time { return time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC) }
	return NewService(NewOpenWeatherClient(srv.URL, "test-key"), zap.NewNop(),
		WithCache(&memoryCache{data: map[string][]models.ForecastRecord{}}), WithClock(clock))
}

func TestGetForecastExactDate(t *testing.T) {
	calls := 0
	svc := newTestService(t, &calls)

	got, err := svc.GetForecast(context.Background(), "2024-05-11", 19.07, 72.87)
	require.NoError(t, err)
	assert.Equal(t, models.SeatingOutdoor, got.Recommendation)
	assert.True(t, got.ConfidencePresent)
	assert.False(t, got.IsApproximate)
	assert.Equal(t, "2024-05-11", got.ForecastDate)

	rainy, err := svc.GetForecast(context.Background(), "2024-05-12", 19.07, 72.87)
	require.NoError(t, err)
	assert.Equal(t, models.SeatingIndoor, rainy.Recommendation)
	assert.Contains(t, rainy.SummaryText, "80%")

	assert.Equal(t, 1, calls, "second lookup is served from cache")
}

func TestGetForecastNearestDateIsApproximate(t *testing.T) {
	calls := 0
	svc := newTestService(t, &calls)

	got, err := svc.GetForecast(context.Background(), "2024-05-16", 19.07, 72.87)
	require.NoError(t, err)
	assert.True(t, got.IsApproximate)
	assert.False(t, got.ConfidencePresent)
	assert.Equal(t, "2024-05-14", got.ForecastDate)
	assert.NotEqual(t, models.SeatingUnknown, got.Recommendation)
}

func TestGetForecastOutOfRange(t *testing.T) {
	calls := 0
	svc := newTestService(t, &calls)

	_, err := svc.GetForecast(context.Background(), "2024-05-30", 19.07, 72.87)
	assert.True(t, errors.Is(err, ErrNoForecast))
}

func TestGetForecastProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewService(NewOpenWeatherClient(srv.URL, "test-key"), zap.NewNop())
	_, err := svc.GetForecast(context.Background(), "2024-05-11", 0, 0)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoForecast))
}

func TestAggregatePrefersWetCondition(t *testing.T) {
	records := aggregate([]entry{
		{date: "2024-05-10", pop: 0.1, condition: "Clear"},
		{date: "2024-05-10", pop: 0.2, condition: "Clear"},
		{date: "2024-05-10", pop: 0.25, condition: "Drizzle", description: "light drizzle"},
		{date: "2024-05-11", pop: 0.0, condition: "Clouds"},
	})
	require.Len(t, records, 2)
	assert.Equal(t, "Drizzle", records[0].Condition)
	assert.InDelta(t, 0.25, *records[0].PrecipitationProbability, 1e-9)
	assert.Equal(t, "Clouds", records[1].Condition)
}

func TestGetForecastInHindi(t *testing.T) {
	calls := 0
	svc := newTestService(t, &calls)

	got, err := svc.GetForecastIn(context.Background(), "2024-05-12", 19.07, 72.87, "hi")
	require.NoError(t, err)
	assert.Contains(t, got.SummaryText, "बारिश की संभावना 80%")
}
