package ai

import (
	"snake-autopilot/game/types"

	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"
)

// DefaultMaxIterations bounds the number of nodes popped by one search. The open set
// grows with the square of the grid size, so an unbounded search cannot fit a tick.
const DefaultMaxIterations = 500

type searchNode struct {
	pos  types.Point
	g    int
	f    int
	seq  int // insertion order, breaks f ties first-in-first-out
	path []types.Point
}

func lessNode(a, b searchNode) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

// extend returns a copy of path with p appended; siblings must not share a backing array.
func extend(path []types.Point, p types.Point) []types.Point {
	out := make([]types.Point, len(path)+1)
	copy(out, path)
	out[len(path)] = p
	return out
}

// FindPath runs A* from start to goal over cells not blocked by obstacles.
// The returned path includes both ends. It returns nil when the goal is unreachable or
// the search pops maxIterations nodes without reaching it.
func FindPath(geo Geometry, start, goal types.Point, obstacles *Occupancy, maxIterations int) []types.Point {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	open := heap.New[searchNode](lessNode)
	closed := mapset.New[int]()
	seq := 0

	open.Push(searchNode{
		pos:  start,
		g:    0,
		f:    geo.Distance(start, goal),
		seq:  seq,
		path: []types.Point{start},
	})
	seq++

	for iterations := 0; open.Size() > 0 && iterations < maxIterations; iterations++ {
		current, _ := open.Pop()
		key := geo.Key(current.pos)
		if closed.Has(key) {
			continue
		}
		closed.Put(key)

		if current.pos == goal {
			return current.path
		}

		for _, next := range geo.Neighbors(current.pos) {
			if !geo.InBounds(next) || obstacles.Has(next) || closed.Has(geo.Key(next)) {
				continue
			}
			g := current.g + 1
			open.Push(searchNode{
				pos:  next,
				g:    g,
				f:    g + geo.Distance(next, goal),
				seq:  seq,
				path: extend(current.path, next),
			})
			seq++
		}
	}

	return nil
}
