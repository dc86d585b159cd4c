package ai

import (
	"snake-autopilot/game/types"

	"github.com/zyedidia/generic/mapset"
)

// IsReversal reports whether candidate is the exact opposite of current.
func IsReversal(current, candidate types.Direction) bool {
	return current != types.None && candidate == current.Opposite()
}

// Occupancy is the set of cells the snake blocks for one decision: every segment except
// the head. The tail stays blocked even though it usually vacates on the same tick.
type Occupancy struct {
	geo   Geometry
	cells mapset.Set[int]
}

// NewOccupancy builds the blocked set for snake (head first).
func NewOccupancy(geo Geometry, snake []types.Point) *Occupancy {
	o := &Occupancy{geo: geo, cells: mapset.New[int]()}
	for i := 1; i < len(snake); i++ {
		o.cells.Put(geo.Key(geo.Normalize(snake[i])))
	}
	return o
}

// Has reports whether p is blocked by the body.
func (o *Occupancy) Has(p types.Point) bool {
	return o.cells.Has(o.geo.Key(p))
}

// Size is the number of blocked cells.
func (o *Occupancy) Size() int {
	return o.cells.Size()
}

// Free reports whether p is on the grid and not blocked.
func (o *Occupancy) Free(p types.Point) bool {
	return o.geo.InBounds(p) && !o.Has(p)
}

// IsSafe reports whether moving the head one cell along d lands on a free cell.
func (o *Occupancy) IsSafe(head types.Point, d types.Direction) bool {
	if d == types.None {
		return false
	}
	return o.Free(o.geo.Step(head, d))
}

// Legal is IsSafe plus the no-reversal rule.
func (o *Occupancy) Legal(head types.Point, current, d types.Direction) bool {
	return !IsReversal(current, d) && o.IsSafe(head, d)
}
