package ctdf

type DatasetStats struct {
	TotalRoutes int    `json:"total_routes"`
	TotalTrips  int    `json:"total_trips"`
	TotalStops  int    `json:"total_stops"`
	TotalShapes int    `json:"total_shapes"`
	GeneratedAt string `json:"generated_at"`
	Version     string `json:"version,omitempty"`
}
