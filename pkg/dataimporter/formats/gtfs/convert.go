package gtfs

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/ctdf"
	"github.com/travigo/planner/pkg/timetable"
	"github.com/travigo/planner/pkg/util"
	"golang.org/x/exp/slices"
)

var DefaultRouteTypes = []int{2, 3}

var DefaultStopNamePrefixes = []string{"Stazione di "}

type ConvertOptions struct {
	// IncludeRouteTypes keeps only routes of these GTFS route types, all when empty
	IncludeRouteTypes []int

	// StopNamePrefixes are removed from the start of display names
	StopNamePrefixes []string

	GeneratedAt time.Time
}

// Convert builds a timetable dataset from the parsed feed
func (g *Schedule) Convert(options ConvertOptions) *timetable.Dataset {
	if options.GeneratedAt.IsZero() {
		options.GeneratedAt = time.Now()
	}

	// Routes
	routes := map[string]*ctdf.Route{}
	for _, gtfsRoute := range g.Routes {
		if len(options.IncludeRouteTypes) > 0 && !slices.Contains(options.IncludeRouteTypes, gtfsRoute.Type) {
			continue
		}

		routes[gtfsRoute.ID] = &ctdf.Route{
			ID:        gtfsRoute.ID,
			ShortName: gtfsRoute.ShortName,
			LongName:  gtfsRoute.LongName,
			Colour:    routeColour(gtfsRoute.Colour),
			Type:      strconv.Itoa(gtfsRoute.Type),
			Mode:      ctdf.ModeFromRouteType(gtfsRoute.Type),
		}
	}
	log.Info().Int("selected", len(routes)).Int("length", len(g.Routes)).Msg("Converted routes")

	// Trips
	trips := map[string]*Trip{}
	for i := range g.Trips {
		if _, exists := routes[g.Trips[i].RouteID]; exists {
			trips[g.Trips[i].ID] = &g.Trips[i]
		}
	}

	// Stops
	stops := map[string]*ctdf.Stop{}
	for _, gtfsStop := range g.Stops {
		stops[gtfsStop.ID] = &ctdf.Stop{
			ID:        gtfsStop.ID,
			Name:      stopDisplayName(gtfsStop.Name, options.StopNamePrefixes),
			FullName:  gtfsStop.Name,
			Latitude:  gtfsStop.Latitude,
			Longitude: gtfsStop.Longitude,
		}
	}

	// Shapes
	shapes := g.buildShapes(trips)

	// Calendar
	calendar := ctdf.ServiceCalendar{}
	for _, calendarDate := range g.CalendarDates {
		if _, exists := calendar[calendarDate.ServiceID]; !exists {
			calendar[calendarDate.ServiceID] = map[string]int{}
		}
		calendar[calendarDate.ServiceID][calendarDate.Date] = calendarDate.ExceptionType
	}

	// Stop times
	tripStopTimes := map[string][]StopTime{}
	for _, stopTime := range g.StopTimes {
		if _, exists := trips[stopTime.TripID]; exists {
			tripStopTimes[stopTime.TripID] = append(tripStopTimes[stopTime.TripID], stopTime)
		}
	}

	timetableTrips := map[string]*ctdf.Trip{}
	for tripID, stopTimes := range tripStopTimes {
		slices.SortStableFunc(stopTimes, func(a, b StopTime) int {
			return a.StopSequence - b.StopSequence
		})

		gtfsTrip := trips[tripID]

		visits := make([]ctdf.StopVisit, 0, len(stopTimes))
		for _, stopTime := range stopTimes {
			visits = append(visits, ctdf.StopVisit{
				StopID:        stopTime.StopID,
				DepartureTime: stopTime.DepartureTime,
				ArrivalTime:   stopTime.ArrivalTime,
				Sequence:      stopTime.StopSequence,
			})
		}

		shapeID := gtfsTrip.ShapeID
		if _, exists := shapes[shapeID]; !exists {
			generated := shapeFromStops(visits, stops)

			if len(generated) > 0 {
				shapeID = ctdf.GeneratedShapeID(tripID)
				shapes[shapeID] = generated
			} else {
				shapeID = ctdf.DefaultShapeID
			}
		}

		first := visits[0]
		last := visits[len(visits)-1]

		durationMinutes := 0
		departure, departureOK := util.ParseClockSeconds(first.DepartureTime)
		arrival, arrivalOK := util.ParseClockSeconds(last.ArrivalTime)
		if departureOK && arrivalOK {
			durationMinutes = (arrival - departure) / 60
		}

		serviceDates := map[string]int{}
		for date, exceptionType := range calendar[gtfsTrip.ServiceID] {
			serviceDates[date] = exceptionType
		}

		timetableTrips[tripID] = &ctdf.Trip{
			ID:              tripID,
			RouteID:         gtfsTrip.RouteID,
			ServiceID:       gtfsTrip.ServiceID,
			ShapeID:         shapeID,
			Headsign:        gtfsTrip.Headsign,
			Departure:       first.DepartureTime,
			Arrival:         last.ArrivalTime,
			DurationMinutes: durationMinutes,
			Stops:           visits,
			StopCount:       len(visits),
			ServiceDates:    serviceDates,
		}
	}
	log.Info().Int("length", len(timetableTrips)).Msg("Converted trips")

	stats := ctdf.DatasetStats{
		TotalRoutes: len(routes),
		TotalTrips:  len(timetableTrips),
		TotalStops:  len(stops),
		TotalShapes: len(shapes),
		GeneratedAt: options.GeneratedAt.Format(time.RFC3339),
		Version:     timetable.BuildVersion(options.GeneratedAt, routes, stops, timetableTrips, shapes, calendar),
	}

	return timetable.NewDataset(stats.Version, routes, stops, timetableTrips, shapes, calendar, stats)
}

// Only shapes used by a selected trip are kept
func (g *Schedule) buildShapes(trips map[string]*Trip) map[string]ctdf.Shape {
	usedShapes := map[string]bool{}
	for _, trip := range trips {
		if trip.ShapeID != "" {
			usedShapes[trip.ShapeID] = true
		}
	}

	points := map[string][]Shape{}
	for _, point := range g.Shapes {
		if usedShapes[point.ID] {
			points[point.ID] = append(points[point.ID], point)
		}
	}

	shapes := map[string]ctdf.Shape{}
	for shapeID, shapePoints := range points {
		slices.SortStableFunc(shapePoints, func(a, b Shape) int {
			return a.PointSequence - b.PointSequence
		})

		shape := make(ctdf.Shape, 0, len(shapePoints))
		for _, point := range shapePoints {
			shape = append(shape, [2]float64{point.PointLatitude, point.PointLongitude})
		}
		shapes[shapeID] = shape
	}

	return shapes
}

func shapeFromStops(visits []ctdf.StopVisit, stops map[string]*ctdf.Stop) ctdf.Shape {
	shape := ctdf.Shape{}

	for _, visit := range visits {
		if stop, exists := stops[visit.StopID]; exists {
			shape = append(shape, [2]float64{stop.Latitude, stop.Longitude})
		}
	}

	return shape
}

func routeColour(colour string) string {
	colour = strings.TrimSpace(colour)

	if colour == "" {
		return ctdf.DefaultRouteColour
	}
	if !strings.HasPrefix(colour, "#") {
		return "#" + colour
	}

	return colour
}

func stopDisplayName(name string, prefixes []string) string {
	for _, prefix := range prefixes {
		if strings.HasPrefix(name, prefix) {
			return strings.TrimPrefix(name, prefix)
		}
	}

	return name
}
