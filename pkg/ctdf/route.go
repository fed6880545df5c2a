package ctdf

const DefaultRouteColour = "#3388ff"

type Route struct {
	ID string `json:"-" bson:"primaryidentifier"`

	ShortName string `json:"short"`
	LongName  string `json:"long"`
	Colour    string `json:"color"`

	// Type is the GTFS route_type as found in the source file
	Type string        `json:"type"`
	Mode TransportMode `json:"mode"`
}
