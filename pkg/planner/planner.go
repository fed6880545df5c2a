package planner

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/travigo/planner/pkg/ctdf"
	"github.com/travigo/planner/pkg/timetable"
)

const NotFoundMessage = "No itinerary found"

type Planner struct {
	Repository *timetable.Repository
	Streams    *StreamCache
}

func NewPlanner(repository *timetable.Repository, streams *StreamCache) *Planner {
	return &Planner{
		Repository: repository,
		Streams:    streams,
	}
}

// Plan validates the query and finds a single itinerary. Not finding one is not an error.
func (p *Planner) Plan(ctx context.Context, query Query) (*ctdf.Itinerary, error) {
	request, err := query.validate()
	if err != nil {
		return nil, err
	}

	dataset, err := p.Repository.Current()
	if err != nil {
		return nil, err
	}

	return p.planOn(ctx, dataset, request)
}

// PlanDataset answers the query against the given dataset instead of the repository's current one
func (p *Planner) PlanDataset(ctx context.Context, dataset *timetable.Dataset, query Query) (*ctdf.Itinerary, error) {
	request, err := query.validate()
	if err != nil {
		return nil, err
	}

	return p.planOn(ctx, dataset, request)
}

func (p *Planner) planOn(ctx context.Context, dataset *timetable.Dataset, request request) (*ctdf.Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return solve(dataset, p.stream(dataset, request.Date), request), nil
}

// PlanAlternatives answers the query with every criterion at once, sharing a single dataset and stream
func (p *Planner) PlanAlternatives(ctx context.Context, query Query) (map[Criterion]*ctdf.Itinerary, error) {
	request, err := query.validate()
	if err != nil {
		return nil, err
	}

	dataset, err := p.Repository.Current()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stream := p.stream(dataset, request.Date)

	criteria := []Criterion{CriterionEarliestArrival, CriterionFewestTransfers}
	itineraries := make([]*ctdf.Itinerary, len(criteria))

	var wg conc.WaitGroup
	for i, criterion := range criteria {
		i := i
		criterionRequest := request
		criterionRequest.Criterion = criterion

		wg.Go(func() {
			itineraries[i] = solve(dataset, stream, criterionRequest)
		})
	}
	wg.Wait()

	results := map[Criterion]*ctdf.Itinerary{}
	for i, criterion := range criteria {
		results[criterion] = itineraries[i]
	}

	return results, nil
}

func (p *Planner) stream(dataset *timetable.Dataset, date string) ConnectionStream {
	if p.Streams == nil {
		return BuildConnections(dataset, date)
	}

	return p.Streams.Get(dataset, date)
}

func solve(dataset *timetable.Dataset, stream ConnectionStream, request request) *ctdf.Itinerary {
	var result *Result
	if request.Criterion == CriterionFewestTransfers {
		result = FewestTransfers(stream, request.Origin, request.Bound)
	} else {
		result = EarliestArrival(stream, request.Origin, request.Bound)
	}

	log.Debug().
		Str("solver", result.Solver).
		Str("origin", request.Origin).
		Str("destination", request.Destination).
		Str("date", request.Date).
		Int("connections", len(stream)).
		Int("labels", len(result.Labels)).
		Msg("Connection scan complete")

	label, found := result.Best(request.Destination)

	return formatItinerary(dataset, result, request, label, found)
}

func formatItinerary(dataset *timetable.Dataset, result *Result, request request, label Label, found bool) *ctdf.Itinerary {
	itinerary := &ctdf.Itinerary{
		Found:       found,
		Origin:      request.Origin,
		Destination: request.Destination,
		Date:        request.Date,
		Optimize:    string(request.Criterion),
		Solver:      result.Solver,
	}

	if !found {
		itinerary.Message = NotFoundMessage
		return itinerary
	}

	path := Reconstruct(result, label)
	legs := BuildLegs(dataset, path)

	segments := make([]ctdf.Segment, 0, len(path))
	for _, leg := range legs {
		segments = append(segments, leg.Segments...)
	}

	uniqueTrips := make([]string, 0, len(legs))
	for _, leg := range legs {
		uniqueTrips = append(uniqueTrips, leg.TripID)
	}

	// Arrivals before the bound only happen past midnight, which isn't modelled, so the raw
	// arrival is reported instead of a negative duration
	totalMinutes := label.Arrival - request.Bound
	if label.Arrival < request.Bound {
		totalMinutes = label.Arrival
	}

	itinerary.TotalMinutes = totalMinutes
	itinerary.Transfers = max(0, len(legs)-1)
	itinerary.SegmentsCount = len(segments)
	itinerary.UniqueTrips = uniqueTrips
	itinerary.Segments = segments
	itinerary.Legs = legs

	return itinerary
}
