package astar

// pqItem is one entry in the A* open set. Stale entries (superseded by a
// cheaper path to the same stateKey found later) are left in place and
// discarded lazily when popped, the standard container/heap idiom for a
// priority queue that needs decrease-key.
type pqItem struct {
	key   stateKey
	g, f  float64
	index int
}

// priorityQueue orders pqItems by f-score, ascending.
type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool { return pq[i].f < pq[j].f }

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}
