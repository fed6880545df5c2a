package ctdf

// Itinerary is the result of a single planning request
type Itinerary struct {
	Found   bool   `json:"found" groups:"basic,detailed"`
	Message string `json:"message,omitempty" groups:"basic,detailed"`

	Origin      string `json:"origin,omitempty" groups:"basic,detailed"`
	Destination string `json:"destination,omitempty" groups:"basic,detailed"`
	Date        string `json:"date,omitempty" groups:"basic,detailed"`
	Optimize    string `json:"optimize,omitempty" groups:"basic,detailed"`
	Solver      string `json:"solver,omitempty" groups:"basic,detailed"`

	TotalMinutes  int      `json:"total_minutes" groups:"basic,detailed"`
	Transfers     int      `json:"transfers" groups:"basic,detailed"`
	SegmentsCount int      `json:"segments_count" groups:"basic,detailed"`
	UniqueTrips   []string `json:"unique_trips" groups:"basic,detailed"`

	Segments []Segment `json:"segments" groups:"detailed"`
	Legs     []Leg     `json:"legs" groups:"basic,detailed"`
}

// Segment is a single elementary hop between two adjacent stops of a trip
type Segment struct {
	Mode        TransportMode `json:"mode" groups:"basic,detailed"`
	RouteID     string        `json:"route_id" groups:"basic,detailed"`
	RouteShort  string        `json:"route_short" groups:"basic,detailed"`
	RouteLong   string        `json:"route_long,omitempty" groups:"detailed"`
	RouteColour string        `json:"route_color,omitempty" groups:"detailed"`
	TripID      string        `json:"trip_id" groups:"basic,detailed"`

	FromStop StopRef `json:"from_stop" groups:"basic,detailed"`
	ToStop   StopRef `json:"to_stop" groups:"basic,detailed"`

	Departure string `json:"departure" groups:"basic,detailed"`
	Arrival   string `json:"arrival" groups:"basic,detailed"`
	Duration  int    `json:"duration" groups:"basic,detailed"`
}

// Leg is one uninterrupted ride on a single trip
type Leg struct {
	TripID      string        `json:"trip_id" groups:"basic,detailed"`
	RouteID     string        `json:"route_id" groups:"basic,detailed"`
	RouteShort  string        `json:"route_short" groups:"basic,detailed"`
	RouteLong   string        `json:"route_long,omitempty" groups:"basic,detailed"`
	RouteColour string        `json:"route_color,omitempty" groups:"basic,detailed"`
	Mode        TransportMode `json:"mode" groups:"basic,detailed"`
	Headsign    string        `json:"headsign,omitempty" groups:"basic,detailed"`

	FromStop StopRef `json:"from_stop" groups:"basic,detailed"`
	ToStop   StopRef `json:"to_stop" groups:"basic,detailed"`

	Departure string `json:"departure" groups:"basic,detailed"`
	Arrival   string `json:"arrival" groups:"basic,detailed"`
	Duration  int    `json:"duration" groups:"basic,detailed"`

	Segments []Segment `json:"segments" groups:"detailed"`
}
