package ctdf

import (
	"encoding/json"
	"fmt"
)

type Trip struct {
	ID string `json:"-" bson:"primaryidentifier"`

	RouteID   string `json:"route_id"`
	ServiceID string `json:"service_id"`
	ShapeID   string `json:"shape_id"`

	Headsign string `json:"headsign"`

	Departure       string `json:"departure"`
	Arrival         string `json:"arrival"`
	DurationMinutes int    `json:"duration_minutes"`

	Stops     []StopVisit `json:"stops"`
	StopCount int         `json:"stop_count"`

	// ServiceDates is a copy of the calendar exceptions of the trip's service
	ServiceDates map[string]int `json:"service_dates"`
}

// StopVisit is serialised as [stop_id, departure_time, arrival_time, stop_sequence]
type StopVisit struct {
	StopID        string
	DepartureTime string
	ArrivalTime   string
	Sequence      int
}

func (v StopVisit) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{v.StopID, v.DepartureTime, v.ArrivalTime, v.Sequence})
}

func (v *StopVisit) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 3 {
		return fmt.Errorf("stop visit needs at least 3 fields, got %d", len(raw))
	}

	if err := json.Unmarshal(raw[0], &v.StopID); err != nil {
		return err
	}
	// null clock values stay empty so the connection gets dropped later
	if err := json.Unmarshal(raw[1], &v.DepartureTime); err != nil {
		return fmt.Errorf("stop visit %s departure time: %w", v.StopID, err)
	}
	if err := json.Unmarshal(raw[2], &v.ArrivalTime); err != nil {
		return fmt.Errorf("stop visit %s arrival time: %w", v.StopID, err)
	}

	if len(raw) > 3 {
		if err := json.Unmarshal(raw[3], &v.Sequence); err != nil {
			return fmt.Errorf("stop visit %s sequence: %w", v.StopID, err)
		}
	}

	return nil
}
