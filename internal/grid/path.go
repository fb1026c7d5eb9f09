package grid

import (
	"container/heap"

	"github.com/Faultbox/hexterrain/pkg/hex"
)

// Movement costs per edge type. Cliffs cannot be crossed.
const (
	flatCost  = 1
	slopeCost = 2
)

// pathNode is a node of the A* search.
type pathNode struct {
	cell   *Cell
	g      int // cost from start
	f      int // g plus heuristic
	parent *pathNode
	index  int // index in heap
}

// pathHeap implements a priority queue for A* search.
type pathHeap []*pathNode

func (h pathHeap) Len() int           { return len(h) }
func (h pathHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h pathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *pathHeap) Push(x any) {
	node := x.(*pathNode)
	node.index = len(*h)
	*h = append(*h, node)
}

func (h *pathHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[:n-1]
	return node
}

// StepCost returns the cost of moving from a to its neighbor b and false
// when the edge between them is a cliff.
func StepCost(a, b *Cell) (int, bool) {
	switch hex.Classify(a, b) {
	case hex.Flat:
		return flatCost, true
	case hex.Slope:
		return slopeCost, true
	default:
		return 0, false
	}
}

// FindPath returns the cheapest walk from start to goal over flat and
// terraced edges, both ends included, and its total cost. It returns nil
// when goal is unreachable.
func (g *Grid) FindPath(start, goal *Cell) ([]*Cell, int) {
	if start == nil || goal == nil {
		return nil, 0
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	open := &pathHeap{}
	closed := make(map[*Cell]bool)
	nodes := make(map[*Cell]*pathNode)

	first := &pathNode{cell: start, f: start.coords.DistanceTo(goal.coords)}
	heap.Push(open, first)
	nodes[start] = first

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if current.cell == goal {
			return reconstructPath(current), current.g
		}
		closed[current.cell] = true

		for _, d := range hex.Directions {
			next := current.cell.neighbors[d]
			if next == nil || closed[next] {
				continue
			}
			cost, ok := StepCost(current.cell, next)
			if !ok {
				continue
			}

			cost += current.g
			node, seen := nodes[next]
			if !seen {
				node = &pathNode{
					cell:   next,
					g:      cost,
					f:      cost + next.coords.DistanceTo(goal.coords),
					parent: current,
				}
				nodes[next] = node
				heap.Push(open, node)
			} else if cost < node.g {
				node.f += cost - node.g
				node.g = cost
				node.parent = current
				heap.Fix(open, node.index)
			}
		}
	}
	return nil, 0
}

func reconstructPath(node *pathNode) []*Cell {
	var path []*Cell
	for ; node != nil; node = node.parent {
		path = append(path, node.cell)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
