package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

const defaultMatrixConcurrency = 4

// Generator builds day-by-day itineraries from stored places.
// It holds no per-call state and is safe for concurrent use.
type Generator struct {
	places      ports.PlaceRepository
	cities      ports.CityRepository
	matrix      *MatrixBuilder
	policy      Policy
	logger      *slog.Logger
	concurrency int
}

type GeneratorOption func(*Generator)

// WithTravelTimes enables provider travel matrices for cities with at most ceiling places.
func WithTravelTimes(provider ports.TravelTimeProvider, profile string, ceiling int) GeneratorOption {
	return func(g *Generator) {
		g.matrix = NewMatrixBuilder(provider, profile, ceiling, g.logger)
	}
}

func WithPolicy(p Policy) GeneratorOption {
	return func(g *Generator) { g.policy = p }
}

// WithMatrixConcurrency bounds how many cities request matrices at once.
func WithMatrixConcurrency(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.concurrency = n
		}
	}
}

// NewGenerator wires the generator. cities may be nil, in which case city names
// are taken from the request only.
func NewGenerator(places ports.PlaceRepository, cities ports.CityRepository, logger *slog.Logger, opts ...GeneratorOption) *Generator {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Generator{
		places:      places,
		cities:      cities,
		policy:      DefaultPolicy(),
		logger:      logger,
		concurrency: defaultMatrixConcurrency,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate produces the itinerary for input.
//
// Only an invalid date range (domain.ErrInvalidDateRange) or a repository failure
// returns an error. Missing places, skipped cities, omitted travel days and
// travel-time provider failures are reported as warnings or recovered locally.
func (g *Generator) Generate(ctx context.Context, input domain.TripInput) (_ *domain.Result, err error) {
	ctx, span := otel.Tracer("ItineraryGenerator").Start(ctx, "Generate")
	defer span.End()

	started := time.Now()
	defer func() {
		obs.ItineraryGenerationDuration.Observe(time.Since(started).Seconds())
		switch {
		case err == nil:
			obs.ItineraryGenerations.WithLabelValues("ok").Inc()
		case errors.Is(err, domain.ErrInvalidDateRange):
			obs.ItineraryGenerations.WithLabelValues("invalid_input").Inc()
		default:
			obs.ItineraryGenerations.WithLabelValues("error").Inc()
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "itinerary generation failed")
		}
	}()

	l := g.logger.With(slog.String("method", "Generate"), slog.String("req_id", obs.RequestID(ctx)))

	totalDays, err := tripDays(input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("generate itinerary: %w", err)
	}

	warnings := []string{}

	cities, storedNames, err := g.resolveCities(ctx, input.Cities)
	if err != nil {
		return nil, fmt.Errorf("generate itinerary: %w", err)
	}

	places, err := g.findPlaces(ctx, cities, storedNames, input.SelectedPlaceIDs)
	if err != nil {
		return nil, fmt.Errorf("generate itinerary: %w", err)
	}
	if len(places) == 0 {
		warnings = append(warnings, WarnNoPlacesFound)
	}

	groups := GroupByCity(RankPlaces(places))

	alloc := AllocateCityDays(totalDays, cities, groups, input.AllowSameDayCityTravel)
	warnings = append(warnings, alloc.Warnings...)

	startHour, endHour, ok := g.workingHours(input)
	if !ok {
		warnings = append(warnings, WarnInvalidWorkingHours)
	}

	span.SetAttributes(
		attribute.Int("trip.total_days", totalDays),
		attribute.Int("trip.cities", len(cities)),
		attribute.Int("trip.places", len(places)),
		attribute.String("trip.pace", string(input.Pace)),
	)

	start := domain.CivilDate(input.StartDate)

	if len(alloc.Assignments) == 0 {
		warnings = append(warnings, WarnNoCities)
		return g.freeDays(start, totalDays, startHour, endHour, warnings), nil
	}

	routes := g.orderCities(ctx, alloc.Assignments, groups)

	result := &domain.Result{
		Days:     make([]domain.Day, 0, totalDays+alloc.TravelDays),
		Warnings: warnings,
	}

	currentDate := start
	totalActivities := 0
	remainingTravelDays := alloc.TravelDays

	for i, assignment := range alloc.Assignments {
		city := assignment.City
		scheduler := NewDayScheduler(g.policy, input.Pace, startHour, endHour, city.ID, routes[i].matrix)

		for d := 0; d < assignment.DayCount; d++ {
			plan := scheduler.Schedule(currentDate, routes[i].ordered)
			totalActivities += plan.Activities

			result.Days = append(result.Days, domain.Day{
				DayNumber: len(result.Days) + 1,
				Date:      currentDate,
				CityID:    city.ID,
				CityName:  city.Name,
				Blocks:    plan.Blocks,
				Summary: domain.DaySummary{
					TotalActivities: plan.Activities,
					TotalHours:      plan.Hours,
				},
			})
			currentDate = currentDate.AddDate(0, 0, 1)
		}

		if remainingTravelDays > 0 && i < len(alloc.Assignments)-1 {
			next := alloc.Assignments[i+1].City
			result.Days = append(result.Days, domain.Day{
				DayNumber: len(result.Days) + 1,
				Date:      currentDate,
				CityID:    next.ID,
				CityName:  next.Name,
				Blocks:    TravelDayBlocks(g.policy, city, next, startHour, endHour),
			})
			currentDate = currentDate.AddDate(0, 0, 1)
			remainingTravelDays--
		}
	}

	if extra := alloc.TravelDays - remainingTravelDays; extra > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Travel days extend the itinerary %d day(s) past the end date", extra))
	}

	// TotalDays stays the requested date-range length even when travel days were added.
	result.Stats = domain.Stats{
		TotalDays:       totalDays,
		TotalActivities: totalActivities,
	}

	l.InfoContext(ctx, "itinerary generated",
		slog.Int("days", len(result.Days)),
		slog.Int("activities", totalActivities),
		slog.Int("warnings", len(result.Warnings)),
	)
	span.SetAttributes(attribute.Int("itinerary.activities", totalActivities))
	span.SetStatus(codes.Ok, "itinerary generated")

	return result, nil
}

type cityRoute struct {
	matrix  *TravelMatrix
	ordered []domain.Place
}

// orderCities builds each city's matrix and visiting order. Cities share no state,
// so matrices are requested concurrently with a bounded fan-out.
func (g *Generator) orderCities(ctx context.Context, assignments []CityAssignment, groups map[string][]domain.Place) []cityRoute {
	routes := make([]cityRoute, len(assignments))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)

	for i, a := range assignments {
		cityPlaces := groups[a.City.Key()]
		eg.Go(func() error {
			matrix := g.matrix.Build(egCtx, cityPlaces)
			routes[i] = cityRoute{
				matrix:  matrix,
				ordered: OrderByNearestNeighbor(cityPlaces, matrix),
			}
			return nil
		})
	}
	// Goroutines never fail; provider errors are absorbed by the matrix builder.
	_ = eg.Wait()

	return routes
}

// resolveCities fills missing city names from the city repository. storedNames maps
// city id to the repository name, which may differ from the name in the request.
func (g *Generator) resolveCities(ctx context.Context, requested []domain.City) (_ []domain.City, storedNames map[string]string, err error) {
	cities := append([]domain.City(nil), requested...)
	if g.cities == nil || len(cities) == 0 {
		return cities, nil, nil
	}

	ids := make([]string, 0, len(cities))
	for _, c := range cities {
		if c.ID != "" {
			ids = append(ids, c.ID)
		}
	}
	if len(ids) == 0 {
		return cities, nil, nil
	}

	found, err := g.cities.FindCitiesByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve cities: %w", err)
	}

	storedNames = make(map[string]string, len(found))
	for _, c := range found {
		storedNames[c.ID] = c.Name
	}
	for i := range cities {
		if cities[i].Name == "" {
			cities[i].Name = storedNames[cities[i].ID]
		}
	}

	return cities, storedNames, nil
}

// findPlaces matches places by city id, by the requested city name and by the
// stored city name.
func (g *Generator) findPlaces(ctx context.Context, cities []domain.City, storedNames map[string]string, selected []string) ([]domain.Place, error) {
	if g.places == nil || len(cities) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(cities))
	names := make([]string, 0, len(cities))
	seen := make(map[string]bool, len(cities))
	addName := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, c := range cities {
		if c.ID != "" {
			ids = append(ids, c.ID)
		}
		addName(c.Name)
		addName(storedNames[c.ID])
	}

	places, err := g.places.FindPlaces(ctx, ids, names, selected)
	if err != nil {
		return nil, fmt.Errorf("find places: %w", err)
	}
	return places, nil
}

// workingHours resolves the preferred window; ok is false when the request's
// window was unusable and the defaults were applied.
func (g *Generator) workingHours(input domain.TripInput) (startHour, endHour int, ok bool) {
	startHour, endHour = g.policy.DefaultStartHour, g.policy.DefaultEndHour
	if input.PreferredStartHour != nil {
		startHour = *input.PreferredStartHour
	}
	if input.PreferredEndHour != nil {
		endHour = *input.PreferredEndHour
	}

	if startHour < 0 || startHour > 23 || endHour < 1 || endHour > 24 || startHour >= endHour {
		return g.policy.DefaultStartHour, g.policy.DefaultEndHour, false
	}
	return startHour, endHour, true
}

// freeDays covers the date range with unplanned days when no city can be scheduled.
func (g *Generator) freeDays(start time.Time, totalDays, startHour, endHour int, warnings []string) *domain.Result {
	result := &domain.Result{
		Days:     make([]domain.Day, 0, totalDays),
		Stats:    domain.Stats{TotalDays: totalDays},
		Warnings: warnings,
	}

	scheduler := NewDayScheduler(g.policy, g.policy.DefaultPace, startHour, endHour, "", nil)
	for d := 0; d < totalDays; d++ {
		date := start.AddDate(0, 0, d)
		plan := scheduler.Schedule(date, nil)
		result.Days = append(result.Days, domain.Day{
			DayNumber: d + 1,
			Date:      date,
			Blocks:    plan.Blocks,
		})
	}

	return result
}

// tripDays returns the inclusive number of calendar days between start and end.
func tripDays(start, end time.Time) (int, error) {
	if start.IsZero() || end.IsZero() {
		return 0, fmt.Errorf("%w: start and end dates are required", domain.ErrInvalidDateRange)
	}

	days := domain.TripDays(start, end)
	if days <= 0 {
		return 0, fmt.Errorf("%w: end %s is before start %s",
			domain.ErrInvalidDateRange, end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	if days > domain.MaxTripDays {
		return 0, fmt.Errorf("%w: %d days exceeds the %d day maximum",
			domain.ErrInvalidDateRange, days, domain.MaxTripDays)
	}

	return days, nil
}
