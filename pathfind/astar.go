package pathfind

import (
	"container/heap"

	"github.com/bevatsal1122/agentverse-sub000/station"
)

// north, east, south, west
var directions = [4]station.Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

type node struct {
	pos    station.Point
	g      int
	f      int
	seq    int
	parent *node
	index  int
}

// openSet orders nodes by f, then by when they first entered the set. An
// improved node keeps its original seq, so the pop order matches a linear
// scan that takes the first minimum.
type openSet []*node

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].seq < o[j].seq
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	n := x.(*node)
	n.index = len(*o)
	*o = append(*o, n)
}
func (o *openSet) Pop() any {
	old := *o
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	n.index = -1
	*o = old[:last]
	return n
}

// search runs A* between two walkable tiles and returns the route
// inclusive of both, or nil.
func (pf *Pathfinder) search(start, goal station.Point) []station.Point {
	open := &openSet{}
	inOpen := make(map[station.Point]*node)
	closed := make(map[station.Point]struct{})
	seq := 0

	first := &node{pos: start, f: start.Manhattan(goal), seq: seq}
	heap.Push(open, first)
	inOpen[start] = first

	expanded := 0
	for open.Len() > 0 {
		if pf.maxExpansions > 0 && expanded >= pf.maxExpansions {
			return nil
		}
		current := heap.Pop(open).(*node)
		delete(inOpen, current.pos)
		closed[current.pos] = struct{}{}
		expanded++

		if current.pos == goal {
			return reconstruct(current)
		}

		for _, d := range directions {
			next := current.pos.Add(d)
			if !pf.Walkable(next.X, next.Y) {
				continue
			}
			if _, done := closed[next]; done {
				continue
			}
			g := current.g + 1
			if existing, ok := inOpen[next]; ok {
				if g < existing.g {
					existing.g = g
					existing.f = g + next.Manhattan(goal)
					existing.parent = current
					heap.Fix(open, existing.index)
				}
				continue
			}
			seq++
			n := &node{pos: next, g: g, f: g + next.Manhattan(goal), seq: seq, parent: current}
			heap.Push(open, n)
			inOpen[next] = n
		}
	}
	return nil
}

func reconstruct(n *node) []station.Point {
	var out []station.Point
	for cur := n; cur != nil; cur = cur.parent {
		out = append(out, cur.pos)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
