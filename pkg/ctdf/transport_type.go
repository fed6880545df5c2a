package ctdf

type TransportMode string

const (
	TransportModeTrain    TransportMode = "train"
	TransportModeBus      TransportMode = "bus"
	TransportModeTram     TransportMode = "tram"
	TransportModeMetro    TransportMode = "metro"
	TransportModeFerry    TransportMode = "ferry"
	TransportModeCableCar TransportMode = "cablecar"
	TransportModeCoach    TransportMode = "coach"
	TransportModeUnknown  TransportMode = "unknown"
)

var routeTypeModes = map[int]TransportMode{
	0:   TransportModeTram,
	1:   TransportModeMetro,
	2:   TransportModeTrain,
	3:   TransportModeBus,
	4:   TransportModeFerry,
	5:   TransportModeTram,
	6:   TransportModeCableCar,
	7:   TransportModeUnknown, // Funicular
	11:  TransportModeBus,     // Trolleybus
	12:  TransportModeTrain,   // Monorail
	200: TransportModeCoach,
}

// ModeFromRouteType maps a GTFS route_type onto a TransportMode
func ModeFromRouteType(routeType int) TransportMode {
	if mode, exists := routeTypeModes[routeType]; exists {
		return mode
	}

	// Extended route types are grouped by hundreds
	switch {
	case routeType >= 100 && routeType < 200:
		return TransportModeTrain
	case routeType >= 200 && routeType < 300:
		return TransportModeCoach
	case routeType >= 700 && routeType < 800:
		return TransportModeBus
	case routeType >= 900 && routeType < 1000:
		return TransportModeTram
	}

	return TransportModeUnknown
}
