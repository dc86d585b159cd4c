package ai

import (
	"snake-autopilot/game/types"
)

// expansionOrder is the neighbour order used by the search: down, up, right, left.
var expansionOrder = [4]types.Direction{types.Down, types.Up, types.Right, types.Left}

// Geometry holds the coordinate rules of a grid. Every strategist shares one instance,
// the Wrap flag is the only thing separating bounded from toroidal play.
type Geometry struct {
	Size int
	Wrap bool
}

// NewGeometry returns the geometry of grid.
func NewGeometry(grid types.Grid) Geometry {
	return Geometry{Size: grid.Size, Wrap: grid.Wrap}
}

// Grid returns the grid described by g.
func (g Geometry) Grid() types.Grid {
	return types.Grid{Size: g.Size, Wrap: g.Wrap}
}

// mod is the Euclidean modulo, always non-negative.
func mod(a, n int) int {
	return ((a % n) + n) % n
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Normalize reduces p onto the torus in wrap mode and returns it unchanged otherwise.
func (g Geometry) Normalize(p types.Point) types.Point {
	if !g.Wrap {
		return p
	}
	return types.Point{X: mod(p.X, g.Size), Y: mod(p.Y, g.Size)}
}

// InBounds reports whether p lies on the grid. Every point is on a torus.
func (g Geometry) InBounds(p types.Point) bool {
	if g.Wrap {
		return true
	}
	return p.X >= 0 && p.X < g.Size && p.Y >= 0 && p.Y < g.Size
}

// Step returns the cell reached from p moving one cell along d.
func (g Geometry) Step(p types.Point, d types.Direction) types.Point {
	return g.Normalize(p.Add(d))
}

// Neighbors returns the four cells around p in expansion order. In bounded mode
// cells off the grid are included, callers filter them with InBounds.
func (g Geometry) Neighbors(p types.Point) [4]types.Point {
	var out [4]types.Point
	for i, d := range expansionOrder {
		out[i] = g.Step(p, d)
	}
	return out
}

// Key packs p into a single integer, x*size + y.
func (g Geometry) Key(p types.Point) int {
	return p.X*g.Size + p.Y
}

// axisDistance is the per-axis distance, the shortest of the direct and the two
// wrap-around distances on a torus.
func (g Geometry) axisDistance(delta int) int {
	d := abs(delta)
	if !g.Wrap {
		return d
	}
	if w := abs(delta + g.Size); w < d {
		d = w
	}
	if w := abs(delta - g.Size); w < d {
		d = w
	}
	return d
}

// Distance is the Manhattan distance between a and b, wrap-aware on a torus.
// It never overestimates the number of moves between two free cells.
func (g Geometry) Distance(a, b types.Point) int {
	return g.axisDistance(a.X-b.X) + g.axisDistance(a.Y-b.Y)
}

// axisDelta picks the shorter of the direct and the wrapped displacement.
// The direct one wins ties.
func (g Geometry) axisDelta(direct int) int {
	if !g.Wrap {
		return direct
	}
	wrapped := direct + g.Size
	if direct > 0 {
		wrapped = direct - g.Size
	}
	if abs(direct) <= abs(wrapped) {
		return direct
	}
	return wrapped
}

// Delta returns the displacement from `from` to `to`, taking the short way round each
// axis in wrap mode.
func (g Geometry) Delta(from, to types.Point) (dx, dy int) {
	return g.axisDelta(to.X - from.X), g.axisDelta(to.Y - from.Y)
}

// DirectionBetween returns the heading that moves from `from` towards `to`.
//
// In bounded mode only a unit displacement yields a heading. In wrap mode the axis with
// the larger shortest-way displacement is reported; the vertical axis is only consulted
// when it is at least as long and non-zero.
func (g Geometry) DirectionBetween(from, to types.Point) types.Direction {
	dx, dy := g.Delta(from, to)
	if !g.Wrap {
		switch {
		case dx == 1 && dy == 0:
			return types.Right
		case dx == -1 && dy == 0:
			return types.Left
		case dx == 0 && dy == 1:
			return types.Down
		case dx == 0 && dy == -1:
			return types.Up
		}
		return types.None
	}

	if abs(dx) > abs(dy) {
		if dx > 0 {
			return types.Right
		}
		return types.Left
	} else if dy != 0 {
		if dy > 0 {
			return types.Down
		}
		return types.Up
	}
	return types.None
}
