package planner

func dominates(a Label, b Label) bool {
	return a.Transfers <= b.Transfers && a.Arrival <= b.Arrival
}

// FewestTransfers runs a connection scan keeping a frontier of (transfers, arrival) labels per
// stop. Every catchable label at the departure stop is extended, not only the best one.
func FewestTransfers(stream ConnectionStream, origin string, bound int) *Result {
	result := newResult(SolverFewestTransfers, stream)
	result.frontiers = map[string][]int{
		origin: {result.origin(origin, bound)},
	}

	for i, connection := range stream {
		if connection.Departure < bound {
			continue
		}

		departureFrontier := result.frontiers[connection.FromStop]
		if len(departureFrontier) == 0 {
			continue
		}

		// The departure frontier can change underneath us when the connection loops back to
		// its own stop
		snapshot := append([]int(nil), departureFrontier...)

		for _, current := range snapshot {
			if result.Labels[current].Arrival > connection.Departure {
				continue
			}

			result.insert(connection.ToStop, result.extend(current, i))
		}
	}

	return result
}

// insert rejects a candidate dominated by any label already at the stop. Otherwise every label
// the candidate dominates is removed and the candidate is appended.
func (r *Result) insert(stop string, candidate Label) {
	frontier := r.frontiers[stop]

	for _, index := range frontier {
		if dominates(r.Labels[index], candidate) {
			return
		}
	}

	kept := frontier[:0:0]
	for _, index := range frontier {
		if !dominates(candidate, r.Labels[index]) {
			kept = append(kept, index)
		}
	}

	r.frontiers[stop] = append(kept, r.add(candidate))
}
