package ctdf

const DefaultShapeID = "default"

// Shape is an ordered polyline of [latitude, longitude] points
type Shape [][2]float64

func GeneratedShapeID(tripID string) string {
	return "generated_" + tripID
}
