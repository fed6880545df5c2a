package ctdf

type Stop struct {
	ID string `json:"-" bson:"primaryidentifier"`

	Name     string `json:"name"`
	FullName string `json:"full_name"`

	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// StopRef is the stop as it's shown inside an itinerary
type StopRef struct {
	ID   string `json:"id" groups:"basic,detailed"`
	Name string `json:"name" groups:"basic,detailed"`
}
