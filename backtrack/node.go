package backtrack

import "github.com/LuoZheng2002/bayesian-router/pcbmodel"

// Node is one frame of the backtracking DFS: the connection currently
// being decided, the FIFO of connections still to route, and every trace
// fixed so far on the path from the root (naive_backtrack_algo.rs's
// NaiveBacktrackNode).
type Node struct {
	CurrentConnection *pcbmodel.ConnectionID
	Alternatives      []pcbmodel.ConnectionID
	Fixed             map[pcbmodel.ConnectionID]pcbmodel.FixedTrace
}

// newRootNode seeds the stack's bottom frame: every connection is still
// alternative, nothing is fixed yet.
func newRootNode(ordered []pcbmodel.ConnectionID) *Node {
	return &Node{
		Alternatives: append([]pcbmodel.ConnectionID(nil), ordered...),
		Fixed:        make(map[pcbmodel.ConnectionID]pcbmodel.FixedTrace),
	}
}

// popFront removes and returns the first alternative, reporting false when
// none remain.
func (n *Node) popFront() (pcbmodel.ConnectionID, bool) {
	if len(n.Alternatives) == 0 {
		return 0, false
	}
	id := n.Alternatives[0]
	n.Alternatives = n.Alternatives[1:]
	return id, true
}

// child builds the node pushed after successfully routing connection:
// alternatives carry forward unchanged, fixed gains one entry.
func (n *Node) child(connection pcbmodel.ConnectionID, trace pcbmodel.FixedTrace) *Node {
	fixed := make(map[pcbmodel.ConnectionID]pcbmodel.FixedTrace, len(n.Fixed)+1)
	for id, t := range n.Fixed {
		fixed[id] = t
	}
	fixed[connection] = trace
	return &Node{
		Alternatives: append([]pcbmodel.ConnectionID(nil), n.Alternatives...),
		Fixed:        fixed,
	}
}
