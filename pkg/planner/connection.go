package planner

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/planner/pkg/ctdf"
	"github.com/travigo/planner/pkg/timetable"
	"github.com/travigo/planner/pkg/util"
	"golang.org/x/exp/slices"
)

// Connection is a single vehicle movement between two adjacent stop visits of a trip.
// Times are minutes since midnight of the service date.
type Connection struct {
	FromStop  string
	ToStop    string
	Departure int
	Arrival   int

	TripID  string
	RouteID string
	Mode    ctdf.TransportMode
}

func (c Connection) Duration() int {
	return c.Arrival - c.Departure
}

// ConnectionStream is every connection of one service date ordered by departure
type ConnectionStream []Connection

// BuildConnections expands every trip running on date into connections. Trips are visited in
// identifier order and the final sort is stable so equal departures keep that order.
func BuildConnections(dataset *timetable.Dataset, date string) ConnectionStream {
	stream, dropped := buildConnections(dataset, date)

	if dropped > 0 {
		log.Debug().Str("date", date).Int("dropped", dropped).Msg("Dropped connections with unparseable times")
	}

	return stream
}

func buildConnections(dataset *timetable.Dataset, date string) (ConnectionStream, int) {
	stream := ConnectionStream{}
	dropped := 0

	for _, trip := range dataset.Trips() {
		if !dataset.ServiceActive(trip, date) {
			continue
		}

		mode := ctdf.TransportModeTrain
		if route := dataset.Route(trip.RouteID); route != nil && route.Mode != "" {
			mode = route.Mode
		}

		for i := 0; i+1 < len(trip.Stops); i++ {
			from := trip.Stops[i]
			to := trip.Stops[i+1]

			departure, departureOK := util.ParseClockMinutes(from.DepartureTime)
			arrival, arrivalOK := util.ParseClockMinutes(to.ArrivalTime)
			if !departureOK || !arrivalOK {
				dropped++
				continue
			}

			stream = append(stream, Connection{
				FromStop:  from.StopID,
				ToStop:    to.StopID,
				Departure: departure,
				Arrival:   arrival,
				TripID:    trip.ID,
				RouteID:   trip.RouteID,
				Mode:      mode,
			})
		}
	}

	slices.SortStableFunc(stream, func(a, b Connection) int {
		return a.Departure - b.Departure
	})

	return stream, dropped
}
