package planner

// EarliestArrival runs a single connection scan keeping one label per stop. A label is only
// replaced by a strictly earlier arrival so the first one written wins ties.
func EarliestArrival(stream ConnectionStream, origin string, bound int) *Result {
	result := newResult(SolverEarliestArrival, stream)
	result.best = map[string]int{
		origin: result.origin(origin, bound),
	}

	for i, connection := range stream {
		if connection.Departure < bound {
			continue
		}

		current, reached := result.best[connection.FromStop]
		if !reached || result.Labels[current].Arrival > connection.Departure {
			continue
		}

		if existing, exists := result.best[connection.ToStop]; exists && result.Labels[existing].Arrival <= connection.Arrival {
			continue
		}

		result.best[connection.ToStop] = result.add(result.extend(current, i))
	}

	return result
}
