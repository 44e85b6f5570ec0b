package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
)

const maxCities = 20

type ItineraryGenerator interface {
	Generate(ctx context.Context, input domain.TripInput) (*domain.Result, error)
}

type ItineraryHandler struct {
	Generator ItineraryGenerator
	Logger    *slog.Logger
}

// Create validates the request, runs the generator and renders the itinerary.
func (h *ItineraryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodPost) {
		return
	}

	var req dto.ItineraryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	input, err := toTripInput(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Generator.Generate(r.Context(), input)
	if errors.Is(err, domain.ErrInvalidDateRange) {
		writeError(w, r, http.StatusBadRequest, "invalid date range")
		return
	}
	if err != nil {
		logger(h.Logger).ErrorContext(r.Context(), "generate itinerary failed", slog.Any("error", err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toItineraryResponse(result))
}

func toTripInput(req dto.ItineraryRequest) (domain.TripInput, error) {
	start, err := time.Parse(time.DateOnly, strings.TrimSpace(req.StartDate))
	if err != nil {
		return domain.TripInput{}, errors.New("startDate must be YYYY-MM-DD")
	}
	end, err := time.Parse(time.DateOnly, strings.TrimSpace(req.EndDate))
	if err != nil {
		return domain.TripInput{}, errors.New("endDate must be YYYY-MM-DD")
	}

	if days := domain.TripDays(start, end); days <= 0 {
		return domain.TripInput{}, errors.New("endDate must not be before startDate")
	} else if days > domain.MaxTripDays {
		return domain.TripInput{}, fmt.Errorf("trips are limited to %d days", domain.MaxTripDays)
	}

	if len(req.Cities) > maxCities {
		return domain.TripInput{}, fmt.Errorf("at most %d cities are supported", maxCities)
	}

	pace := domain.Pace(strings.ToLower(strings.TrimSpace(req.Pace)))
	switch pace {
	case "", domain.PaceRelaxed, domain.PaceNormal, domain.PacePacked:
	default:
		return domain.TripInput{}, errors.New("pace must be one of relaxed, normal, packed")
	}

	cities := make([]domain.City, 0, len(req.Cities))
	for i, c := range req.Cities {
		city := domain.City{ID: strings.TrimSpace(c.CityID), Name: strings.TrimSpace(c.Name)}
		if city.ID == "" && city.Name == "" {
			return domain.TripInput{}, fmt.Errorf("cities[%d] needs cityId or name", i)
		}
		cities = append(cities, city)
	}

	return domain.TripInput{
		StartDate:              start,
		EndDate:                end,
		Cities:                 cities,
		Pace:                   pace,
		Interests:              req.Interests,
		AllowSameDayCityTravel: req.AllowSameDayCityTravel,
		PreferredStartHour:     req.PreferredStartHour,
		PreferredEndHour:       req.PreferredEndHour,
		SelectedPlaceIDs:       req.SelectedPlaceIDs,
	}, nil
}

func toItineraryResponse(res *domain.Result) dto.ItineraryResponse {
	out := dto.ItineraryResponse{
		Days: make([]dto.DayResponse, 0, len(res.Days)),
		Stats: dto.StatsResponse{
			TotalDays:       res.Stats.TotalDays,
			TotalActivities: res.Stats.TotalActivities,
		},
		Warnings: res.Warnings,
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}

	for _, d := range res.Days {
		blocks := make([]dto.BlockResponse, 0, len(d.Blocks))
		for _, b := range d.Blocks {
			blocks = append(blocks, dto.BlockResponse{
				Type:          string(b.Type),
				Title:         b.Title,
				PlaceID:       b.PlaceID,
				StartTime:     b.StartTime,
				EndTime:       b.EndTime,
				CityID:        b.CityID,
				TravelMinutes: b.TravelMinutes,
				Notes:         b.Notes,
			})
		}

		out.Days = append(out.Days, dto.DayResponse{
			DayNumber: d.DayNumber,
			Date:      d.Date.Format(time.DateOnly),
			CityID:    d.CityID,
			CityName:  d.CityName,
			Blocks:    blocks,
			Summary: dto.DaySummaryResponse{
				TotalActivities: d.Summary.TotalActivities,
				TotalHours:      d.Summary.TotalHours,
			},
		})
	}

	return out
}
