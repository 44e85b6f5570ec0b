package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"trip-planner-service/internal/adapters/distance"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryPlaces []domain.Place

func (m memoryPlaces) FindPlaces(_ context.Context, cityIDs, cityNames, _ []string) ([]domain.Place, error) {
	out := make([]domain.Place, 0, len(m))
	for _, p := range m {
		for _, id := range cityIDs {
			if p.CityID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func testRouter(t *testing.T, opts RouterOptions) http.Handler {
	t.Helper()
	return testRouterWithProvider(t, distance.NewUniformMockProvider(900), opts)
}

func testRouterWithProvider(t *testing.T, provider *distance.MockTravelTimeProvider, opts RouterOptions) http.Handler {
	t.Helper()

	places := memoryPlaces{
		{ID: "a", Name: "Castle", CityID: "lis", Ratings: domain.Ratings{AverageRating: 4.8}, Location: domain.Location{Latitude: "38.7139", Longitude: "-9.1335"}},
		{ID: "b", Name: "Cathedral", CityID: "lis", Ratings: domain.Ratings{AverageRating: 4.5}, Location: domain.Location{Latitude: "38.7098", Longitude: "-9.1364"}},
		{ID: "c", Name: "Oceanarium", CityID: "lis", Category: "Aquarium", Ratings: domain.Ratings{AverageRating: 4.7}, Location: domain.Location{Latitude: "38.7635", Longitude: "-9.0937"}},
	}

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	gen := services.NewGenerator(places, nil, logger,
		services.WithTravelTimes(provider, "mapbox/driving", 10),
	)

	return NewRouter(gen, places, logger, opts)
}

func TestRouterGeneratesItinerary(t *testing.T) {
	h := testRouter(t, RouterOptions{})

	body := `{"startDate":"2026-05-01","endDate":"2026-05-02","cities":[{"cityId":"lis","name":"Lisbon"}],"pace":"normal"}`
	req := httptest.NewRequest(http.MethodPost, "/itineraries", bytes.NewBufferString(body))
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))

	var res dto.ItineraryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Days, 2)
	assert.Equal(t, "2026-05-02", res.Days[1].Date)
	assert.Equal(t, 6, res.Stats.TotalActivities)

	travel := 0
	for _, b := range res.Days[0].Blocks {
		if b.Type == "travel" {
			require.NotNil(t, b.TravelMinutes)
			assert.Equal(t, 15, *b.TravelMinutes)
			travel++
		}
	}
	assert.Equal(t, 2, travel)
}

func TestRouterGeneratesItineraryWhenProviderFails(t *testing.T) {
	provider := distance.NewUniformMockProvider(900)
	provider.Err = errors.New("matrix unavailable")
	h := testRouterWithProvider(t, provider, RouterOptions{})

	body := `{"startDate":"2026-05-01","endDate":"2026-05-01","cities":[{"cityId":"lis","name":"Lisbon"}]}`
	req := httptest.NewRequest(http.MethodPost, "/itineraries", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.ItineraryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Days, 1)
	assert.Equal(t, 3, res.Stats.TotalActivities)

	travel := 0
	for _, b := range res.Days[0].Blocks {
		if b.Type == "travel" {
			require.NotNil(t, b.TravelMinutes)
			assert.NotEqual(t, 15, *b.TravelMinutes, "provider minutes must not be used")
			assert.GreaterOrEqual(t, *b.TravelMinutes, 10)
			assert.LessOrEqual(t, *b.TravelMinutes, 60)
			travel++
		}
	}
	assert.Equal(t, 2, travel)
}

func TestRouterHealthAndRequestID(t *testing.T) {
	h := testRouter(t, RouterOptions{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouterMetrics(t *testing.T) {
	h := testRouter(t, RouterOptions{MetricsEnabled: true})
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "trip_planner_http_requests_total")

	rec = httptest.NewRecorder()
	testRouter(t, RouterOptions{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterRateLimit(t *testing.T) {
	h := testRouter(t, RouterOptions{RateLimitPerSecond: 0.001, RateLimitBurst: 1})

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
}

func TestRouterCORSPreflight(t *testing.T) {
	h := testRouter(t, RouterOptions{AllowedOrigins: []string{"https://app.example.com"}})

	req := httptest.NewRequest(http.MethodOptions, "/itineraries", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
