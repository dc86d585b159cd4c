package ai

import (
	"snake-autopilot/game/types"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Chaser heads for the food: A* first, then the fallback chain whenever the search
// comes back empty or its first step is not legal.
type Chaser struct {
	geo       Geometry
	maxIter   int
	floodCap  int
	foodBonus int
	logger    log.Logger
}

// NewChaser builds a chaser from already defaulted options.
func NewChaser(geo Geometry, opts Options) *Chaser {
	opts = opts.withDefaults()
	return &Chaser{
		geo:       geo,
		maxIter:   opts.MaxIterations,
		floodCap:  opts.FloodFillCap,
		foodBonus: opts.FoodBonus,
		logger:    opts.Logger,
	}
}

// Reset is a no-op: the chaser keeps nothing between ticks.
func (c *Chaser) Reset() {}

// NextDirection walks the chain: path step, greedy step, survival move, any safe move.
func (c *Chaser) NextDirection(snake []types.Point, food types.Point, current types.Direction) types.Direction {
	if len(snake) == 0 {
		return types.None
	}
	geo := c.geo
	head := geo.Normalize(snake[0])
	food = geo.Normalize(food)
	occ := NewOccupancy(geo, snake)

	if path := FindPath(geo, head, food, occ, c.maxIter); len(path) > 1 {
		d := geo.DirectionBetween(head, path[1])
		if d != types.None && occ.Legal(head, current, d) {
			return d
		}
	}

	if d := GreedyChase(geo, occ, head, food, current); d != types.None {
		_ = level.Debug(c.logger).Log("msg", "no usable path, greedy step", "head", head, "food", food, "dir", d)
		return d
	}

	if d := SurvivalMove(geo, occ, head, food, current, c.floodCap, c.foodBonus); d != types.None {
		_ = level.Debug(c.logger).Log("msg", "greedy blocked, survival move", "head", head, "dir", d)
		return d
	}

	d := ImmediateSafe(occ, head, current)
	_ = level.Debug(c.logger).Log("msg", "trapped", "head", head, "dir", d)
	return d
}
