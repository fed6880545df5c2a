package planner

import (
	"github.com/travigo/planner/pkg/ctdf"
	"github.com/travigo/planner/pkg/timetable"
)

const testDate = "2024-05-01"
const testService = "DAILY"

func visit(stop string, arrival string, departure string) ctdf.StopVisit {
	return ctdf.StopVisit{
		StopID:        stop,
		ArrivalTime:   arrival,
		DepartureTime: departure,
	}
}

func trip(route string, visits ...ctdf.StopVisit) *ctdf.Trip {
	for i := range visits {
		visits[i].Sequence = i + 1
	}

	return &ctdf.Trip{
		RouteID:   route,
		ServiceID: testService,
		Headsign:  "To " + visits[len(visits)-1].StopID,
		Stops:     visits,
	}
}

func newTestDataset(trips map[string]*ctdf.Trip) *timetable.Dataset {
	return timetable.NewDataset("v1",
		map[string]*ctdf.Route{
			"RAIL": {ShortName: "R", LongName: "Regional", Colour: "#3388ff", Type: "2", Mode: ctdf.TransportModeTrain},
			"BUS":  {ShortName: "42", LongName: "Town loop", Colour: "#00ff00", Type: "3", Mode: ctdf.TransportModeBus},
		},
		map[string]*ctdf.Stop{
			"A": {Name: "Alpha"},
			"B": {Name: "Bravo"},
			"C": {Name: "Charlie"},
			"D": {Name: "Delta"},
			"E": {Name: "Echo"},
			"F": {Name: "Foxtrot"},
		},
		trips,
		nil,
		ctdf.ServiceCalendar{
			testService: {"20240501": ctdf.ExceptionTypeAdded},
		},
		ctdf.DatasetStats{TotalTrips: len(trips)},
	)
}

func newTestPlanner(dataset *timetable.Dataset) *Planner {
	repository := timetable.NewRepository()
	repository.Swap(dataset)

	return NewPlanner(repository, nil)
}

// networkDataset is a small network with several interchanges and no zero length hops
func networkDataset() *timetable.Dataset {
	return newTestDataset(map[string]*ctdf.Trip{
		"T1": trip("RAIL", visit("A", "08:00", "08:00"), visit("B", "08:10", "08:10"), visit("C", "08:20", "08:20"), visit("D", "08:30", "08:30")),
		"T2": trip("BUS", visit("B", "08:12", "08:12"), visit("E", "08:25", "08:25"), visit("D", "08:40", "08:40")),
		"T3": trip("BUS", visit("A", "08:05", "08:05"), visit("E", "08:15", "08:15"), visit("F", "08:35", "08:35")),
		"T4": trip("RAIL", visit("E", "08:20", "08:20"), visit("D", "08:28", "08:28"), visit("F", "08:33", "08:33")),
		"T5": trip("BUS", visit("C", "08:22", "08:22"), visit("F", "08:50", "08:50")),
		"T6": trip("RAIL", visit("A", "07:00", "07:00"), visit("F", "09:10", "09:10")),
	})
}
