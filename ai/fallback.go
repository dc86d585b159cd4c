package ai

import (
	"snake-autopilot/game/types"

	"github.com/zyedidia/generic/mapset"
)

const (
	// DefaultFloodFillCap limits the cells counted by one reachable-space probe.
	DefaultFloodFillCap = 50

	// Food proximity bonus added to the survival score, max(0, bonus - distance).
	DefaultFoodBonusBounded = 50
	DefaultFoodBonusWrap    = 30
)

// GreedyChase steps straight towards the food, one axis at a time. The axis with the
// longer (shortest-way) displacement is tried first, horizontal on a tie. It returns
// None when neither axis move is legal.
func GreedyChase(geo Geometry, occ *Occupancy, head, food types.Point, current types.Direction) types.Direction {
	dx, dy := geo.Delta(head, food)

	var horizontal, vertical types.Direction
	if dx > 0 {
		horizontal = types.Right
	} else if dx < 0 {
		horizontal = types.Left
	}
	if dy > 0 {
		vertical = types.Down
	} else if dy < 0 {
		vertical = types.Up
	}

	preferred := [2]types.Direction{horizontal, vertical}
	if abs(dy) > abs(dx) {
		preferred = [2]types.Direction{vertical, horizontal}
	}

	for _, d := range preferred {
		if d != types.None && occ.Legal(head, current, d) {
			return d
		}
	}
	return types.None
}

// FloodFill counts the free cells reachable from start, breadth first, stopping once
// limit cells have been counted.
func FloodFill(geo Geometry, occ *Occupancy, start types.Point, limit int) int {
	return floodFill(geo, occ, start, limit)
}

// floodFill is FloodFill with extra cells treated as walls.
func floodFill(geo Geometry, occ *Occupancy, start types.Point, limit int, walls ...types.Point) int {
	if limit <= 0 {
		limit = DefaultFloodFillCap
	}

	visited := mapset.New[int]()
	for _, w := range walls {
		visited.Put(geo.Key(w))
	}
	queue := []types.Point{start}
	count := 0

	for len(queue) > 0 && count < limit {
		current := queue[0]
		queue = queue[1:]

		key := geo.Key(current)
		if visited.Has(key) {
			continue
		}
		visited.Put(key)
		count++

		for _, next := range geo.Neighbors(current) {
			if occ.Free(next) && !visited.Has(geo.Key(next)) {
				queue = append(queue, next)
			}
		}
	}

	return count
}

// SurvivalMove scores every legal heading by the space reachable after taking it plus a
// small bonus for ending up closer to the food, and returns the best one. Headings are
// evaluated in Up, Down, Left, Right order and only a strictly better score replaces the
// current choice. It returns None when no heading is legal.
func SurvivalMove(geo Geometry, occ *Occupancy, head, food types.Point, current types.Direction, floodCap, foodBonus int) types.Direction {
	best := types.None
	bestScore := -1

	for _, d := range types.EvaluationOrder {
		if !occ.Legal(head, current, d) {
			continue
		}
		next := geo.Step(head, d)

		// The head becomes the neck once the move is made.
		score := floodFill(geo, occ, next, floodCap, head)
		if bonus := foodBonus - geo.Distance(next, food); bonus > 0 {
			score += bonus
		}

		if score > bestScore {
			bestScore = score
			best = d
		}
	}

	return best
}

// ImmediateSafe is the last resort: keep going if that is safe, otherwise take the first
// legal heading. None means every non-reversing move collides.
func ImmediateSafe(occ *Occupancy, head types.Point, current types.Direction) types.Direction {
	if current != types.None && occ.IsSafe(head, current) {
		return current
	}
	for _, d := range types.EvaluationOrder {
		if occ.Legal(head, current, d) {
			return d
		}
	}
	return types.None
}
