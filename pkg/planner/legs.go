package planner

import (
	"github.com/travigo/planner/pkg/ctdf"
	"github.com/travigo/planner/pkg/timetable"
	"github.com/travigo/planner/pkg/util"
)

func stopRef(dataset *timetable.Dataset, stopID string) ctdf.StopRef {
	return ctdf.StopRef{
		ID:   stopID,
		Name: dataset.StopName(stopID),
	}
}

func buildSegment(dataset *timetable.Dataset, connection Connection) ctdf.Segment {
	segment := ctdf.Segment{
		Mode:      connection.Mode,
		RouteID:   connection.RouteID,
		TripID:    connection.TripID,
		FromStop:  stopRef(dataset, connection.FromStop),
		ToStop:    stopRef(dataset, connection.ToStop),
		Departure: util.FormatClockMinutes(connection.Departure),
		Arrival:   util.FormatClockMinutes(connection.Arrival),
		Duration:  connection.Duration(),
	}

	if route := dataset.Route(connection.RouteID); route != nil {
		segment.RouteShort = route.ShortName
		segment.RouteLong = route.LongName
		segment.RouteColour = route.Colour
	}

	return segment
}

// BuildLegs groups consecutive connections on the same trip into one leg each
func BuildLegs(dataset *timetable.Dataset, connections []Connection) []ctdf.Leg {
	legs := []ctdf.Leg{}

	for _, connection := range connections {
		segment := buildSegment(dataset, connection)

		if len(legs) > 0 && legs[len(legs)-1].TripID == connection.TripID {
			leg := &legs[len(legs)-1]

			leg.ToStop = segment.ToStop
			leg.Arrival = segment.Arrival
			leg.Duration += segment.Duration
			leg.Segments = append(leg.Segments, segment)

			continue
		}

		leg := ctdf.Leg{
			TripID:      connection.TripID,
			RouteID:     connection.RouteID,
			RouteShort:  segment.RouteShort,
			RouteLong:   segment.RouteLong,
			RouteColour: segment.RouteColour,
			Mode:        connection.Mode,
			FromStop:    segment.FromStop,
			ToStop:      segment.ToStop,
			Departure:   segment.Departure,
			Arrival:     segment.Arrival,
			Duration:    segment.Duration,
			Segments:    []ctdf.Segment{segment},
		}

		if trip := dataset.Trip(connection.TripID); trip != nil {
			leg.Headsign = trip.Headsign
		}

		legs = append(legs, leg)
	}

	return legs
}
