package timetable

import (
	"github.com/travigo/planner/pkg/ctdf"
	"github.com/travigo/planner/pkg/util"
	"golang.org/x/exp/slices"
)

// Dataset is one fully loaded timetable. It must not be modified once handed to a Repository.
type Dataset struct {
	Version string

	Routes    map[string]*ctdf.Route
	Stops     map[string]*ctdf.Stop
	Timetable map[string]*ctdf.Trip
	Shapes    map[string]ctdf.Shape
	Calendar  ctdf.ServiceCalendar
	Stats     ctdf.DatasetStats

	tripOrder []*ctdf.Trip
	stopOrder []*ctdf.Stop
}

// NewDataset indexes the given records. Identifiers are taken from the map keys and every
// calendar date is normalised to YYYY-MM-DD.
func NewDataset(version string, routes map[string]*ctdf.Route, stops map[string]*ctdf.Stop, trips map[string]*ctdf.Trip, shapes map[string]ctdf.Shape, calendar ctdf.ServiceCalendar, stats ctdf.DatasetStats) *Dataset {
	if routes == nil {
		routes = map[string]*ctdf.Route{}
	}
	if stops == nil {
		stops = map[string]*ctdf.Stop{}
	}
	if trips == nil {
		trips = map[string]*ctdf.Trip{}
	}
	if shapes == nil {
		shapes = map[string]ctdf.Shape{}
	}

	for id, route := range routes {
		route.ID = id
	}
	for id, stop := range stops {
		stop.ID = id
	}
	for id, trip := range trips {
		trip.ID = id
		trip.ServiceDates = normaliseDates(trip.ServiceDates)
	}

	normalisedCalendar := ctdf.ServiceCalendar{}
	for serviceID, dates := range calendar {
		normalisedCalendar[serviceID] = normaliseDates(dates)
	}

	tripIDs := make([]string, 0, len(trips))
	for id := range trips {
		tripIDs = append(tripIDs, id)
	}
	slices.Sort(tripIDs)
	tripOrder := make([]*ctdf.Trip, 0, len(tripIDs))
	for _, id := range tripIDs {
		tripOrder = append(tripOrder, trips[id])
	}

	stopIDs := make([]string, 0, len(stops))
	for id := range stops {
		stopIDs = append(stopIDs, id)
	}
	slices.Sort(stopIDs)
	stopOrder := make([]*ctdf.Stop, 0, len(stopIDs))
	for _, id := range stopIDs {
		stopOrder = append(stopOrder, stops[id])
	}

	return &Dataset{
		Version:   version,
		Routes:    routes,
		Stops:     stops,
		Timetable: trips,
		Shapes:    shapes,
		Calendar:  normalisedCalendar,
		Stats:     stats,
		tripOrder: tripOrder,
		stopOrder: stopOrder,
	}
}

// Dates that can't be parsed are kept as they are so they simply never match a query.
// When two spellings of the same date disagree the date is added.
func normaliseDates(dates map[string]int) map[string]int {
	normalised := make(map[string]int, len(dates))

	for date, exceptionType := range dates {
		if parsed, err := util.NormaliseServiceDate(date); err == nil {
			date = parsed
		}

		if existing, exists := normalised[date]; exists && existing == ctdf.ExceptionTypeAdded {
			continue
		}
		normalised[date] = exceptionType
	}

	return normalised
}

// Trips returns every trip ordered by trip identifier
func (d *Dataset) Trips() []*ctdf.Trip {
	return d.tripOrder
}

// AllStops returns every stop ordered by stop identifier
func (d *Dataset) AllStops() []*ctdf.Stop {
	return d.stopOrder
}

func (d *Dataset) Trip(id string) *ctdf.Trip {
	return d.Timetable[id]
}

func (d *Dataset) Route(id string) *ctdf.Route {
	return d.Routes[id]
}

func (d *Dataset) Stop(id string) *ctdf.Stop {
	return d.Stops[id]
}

// StopName returns the display name of a stop or the identifier itself when it's unknown
func (d *Dataset) StopName(id string) string {
	if stop := d.Stops[id]; stop != nil {
		return stop.Name
	}

	return id
}

// ServiceActive reports whether the trip runs on the date (YYYY-MM-DD). Either the trip's own
// service dates or the shared calendar marking the date as added is enough.
func (d *Dataset) ServiceActive(trip *ctdf.Trip, date string) bool {
	if trip.ServiceDates[date] == ctdf.ExceptionTypeAdded {
		return true
	}

	return d.Calendar.RunsOn(trip.ServiceID, date)
}

// Document returns the named raw collection as it's written to disk
func (d *Dataset) Document(name string) (interface{}, bool) {
	switch name {
	case "routes":
		return d.Routes, true
	case "stops":
		return d.Stops, true
	case "shapes":
		return d.Shapes, true
	case "timetable":
		return d.Timetable, true
	case "calendar":
		return d.Calendar, true
	case "stats":
		return d.Stats, true
	}

	return nil, false
}
