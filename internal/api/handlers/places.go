package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/ports"
)

// PlaceHandler exposes read-only place retrieval for one or more cities.
type PlaceHandler struct {
	Repo   ports.PlaceRepository
	Logger *slog.Logger
}

// List serves GET /places?cityId=a,b&city=Name. At least one filter is required.
func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	cityIDs := splitList(q["cityId"])
	cityNames := splitList(q["city"])
	if len(cityIDs) == 0 && len(cityNames) == 0 {
		writeError(w, r, http.StatusBadRequest, "cityId or city is required")
		return
	}

	places, err := h.Repo.FindPlaces(r.Context(), cityIDs, cityNames, splitList(q["placeId"]))
	if err != nil {
		logger(h.Logger).ErrorContext(r.Context(), "list places failed", slog.Any("error", err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPlacesResponse{
		Places: make([]dto.PlaceResponse, 0, len(places)),
	}
	for _, p := range places {
		hours := make([]dto.OpeningHoursResponse, 0, len(p.OpeningHoursWeekly))
		for _, oh := range p.OpeningHoursWeekly {
			hours = append(hours, dto.OpeningHoursResponse{Day: oh.Day, Open: oh.Open, Close: oh.Close})
		}

		res.Places = append(res.Places, dto.PlaceResponse{
			ID:                 p.ID,
			Name:               p.Name,
			Category:           p.Category,
			CityID:             p.CityID,
			City:               p.City,
			AverageRating:      p.Ratings.AverageRating,
			NumberOfRatings:    p.Ratings.NumberOfRatings,
			Latitude:           p.Location.Latitude,
			Longitude:          p.Location.Longitude,
			OpeningHoursWeekly: hours,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// splitList flattens repeated and comma-separated query values.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
