package planner

// Label is a reachable state at a stop. Labels live in the arena of a Result and point at
// each other and at the stream by index, -1 meaning none.
type Label struct {
	Stop      string
	Arrival   int
	Transfers int

	Connection  int
	Predecessor int
}

func (l Label) IsOrigin() bool {
	return l.Connection < 0
}

const (
	SolverEarliestArrival = "csa-time"
	SolverFewestTransfers = "csa-transfers"
)

// Result holds everything a scan produced for one origin and departure bound
type Result struct {
	Solver string
	Stream ConnectionStream
	Labels []Label

	best      map[string]int
	frontiers map[string][]int
}

func newResult(solver string, stream ConnectionStream) *Result {
	return &Result{
		Solver: solver,
		Stream: stream,
	}
}

func (r *Result) add(label Label) int {
	r.Labels = append(r.Labels, label)
	return len(r.Labels) - 1
}

func (r *Result) origin(stop string, bound int) int {
	return r.add(Label{
		Stop:        stop,
		Arrival:     bound,
		Connection:  -1,
		Predecessor: -1,
	})
}

// LastTrip is the trip ridden to reach the label, empty at the origin
func (r *Result) LastTrip(label Label) string {
	if label.IsOrigin() {
		return ""
	}

	return r.Stream[label.Connection].TripID
}

// extend builds the label reached by riding connection from the label at predecessor
func (r *Result) extend(predecessor int, connection int) Label {
	previous := r.Labels[predecessor]
	c := r.Stream[connection]

	transfers := previous.Transfers
	if lastTrip := r.LastTrip(previous); lastTrip != "" && lastTrip != c.TripID {
		transfers++
	}

	return Label{
		Stop:        c.ToStop,
		Arrival:     c.Arrival,
		Transfers:   transfers,
		Connection:  connection,
		Predecessor: predecessor,
	}
}

// Best returns the chosen label at the destination. For the fewest transfers scan that's the
// frontier label with the fewest transfers and then the earliest arrival.
func (r *Result) Best(destination string) (Label, bool) {
	if r.frontiers != nil {
		frontier := r.frontiers[destination]
		if len(frontier) == 0 {
			return Label{}, false
		}

		chosen := r.Labels[frontier[0]]
		for _, index := range frontier[1:] {
			candidate := r.Labels[index]
			if candidate.Transfers < chosen.Transfers || (candidate.Transfers == chosen.Transfers && candidate.Arrival < chosen.Arrival) {
				chosen = candidate
			}
		}

		return chosen, true
	}

	index, exists := r.best[destination]
	if !exists {
		return Label{}, false
	}

	return r.Labels[index], true
}

// Frontier returns the labels currently kept at a stop. The earliest arrival scan keeps at most one.
func (r *Result) Frontier(stop string) []Label {
	var indexes []int

	if r.frontiers != nil {
		indexes = r.frontiers[stop]
	} else if index, exists := r.best[stop]; exists {
		indexes = []int{index}
	}

	labels := make([]Label, 0, len(indexes))
	for _, index := range indexes {
		labels = append(labels, r.Labels[index])
	}

	return labels
}
