package planner

// Reconstruct walks the predecessor chain of label back to the origin and returns the
// connections ridden in travel order
func Reconstruct(result *Result, label Label) []Connection {
	path := []Connection{}

	for current := label; !current.IsOrigin(); current = result.Labels[current.Predecessor] {
		path = append(path, result.Stream[current.Connection])
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
