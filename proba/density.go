package proba

// collisionEdge is a flat (fromIndex, toIndex) view of one collision-graph
// edge, grounded on matrix.EdgeListItem's flattening of a core.Graph for
// diagnostic consumption without pulling in the full matrix package.
type collisionEdge struct {
	From, To int
}

// collisionDensity builds an index over every current candidate and
// flattens the collision graph's edges against it, returning the edge
// list alongside the fraction of all possible pairs that actually
// collide. Used only for the debug-level telemetry logged once per
// iteration; not consulted by posterior updates or commit logic.
func (m *Model) collisionDensity() (edges []collisionEdge, density float64) {
	index := make(map[string]int)
	var all []*ProbaTrace
	for _, ct := range m.traces {
		for _, cand := range ct.candidates {
			index[vertexID(cand.ID)] = len(all)
			all = append(all, cand)
		}
	}
	if len(all) < 2 {
		return nil, 0
	}

	seen := make(map[[2]int]bool)
	for i, t := range all {
		neighborIDs, err := m.collide.NeighborIDs(vertexID(t.ID))
		if err != nil {
			continue
		}
		for _, nid := range neighborIDs {
			j, ok := index[nid]
			if !ok {
				continue
			}
			key := [2]int{i, j}
			if i > j {
				key = [2]int{j, i}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, collisionEdge{From: key[0], To: key[1]})
		}
	}

	possiblePairs := float64(len(all)*(len(all)-1)) / 2
	if possiblePairs == 0 {
		return edges, 0
	}
	return edges, float64(len(edges)) / possiblePairs
}
