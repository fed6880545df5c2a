package gtfs

type Agency struct {
	ID       string `csv:"agency_id"`
	Name     string `csv:"agency_name"`
	URL      string `csv:"agency_url"`
	Timezone string `csv:"agency_timezone"`
}

type Stop struct {
	ID        string  `csv:"stop_id"`
	Code      string  `csv:"stop_code"`
	Name      string  `csv:"stop_name"`
	Latitude  float64 `csv:"stop_lat"`
	Longitude float64 `csv:"stop_lon"`
	Type      string  `csv:"location_type"`
	Parent    string  `csv:"parent_station"`
}

type Route struct {
	ID         string `csv:"route_id"`
	AgencyID   string `csv:"agency_id"`
	ShortName  string `csv:"route_short_name"`
	LongName   string `csv:"route_long_name"`
	Colour     string `csv:"route_color"`
	TextColour string `csv:"route_text_color"`
	Type       int    `csv:"route_type"`
}

type Trip struct {
	RouteID   string `csv:"route_id"`
	ServiceID string `csv:"service_id"`
	ID        string `csv:"trip_id"`
	Headsign  string `csv:"trip_headsign"`
	ShapeID   string `csv:"shape_id"`
}

type StopTime struct {
	TripID        string `csv:"trip_id"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
	StopID        string `csv:"stop_id"`
	StopSequence  int    `csv:"stop_sequence"`
}

type CalendarDate struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType int    `csv:"exception_type"`
}

type Shape struct {
	ID             string  `csv:"shape_id"`
	PointLatitude  float64 `csv:"shape_pt_lat"`
	PointLongitude float64 `csv:"shape_pt_lon"`
	PointSequence  int     `csv:"shape_pt_sequence"`
}
