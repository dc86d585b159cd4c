package ai

import (
	"snake-autopilot/game/types"
)

// Cursor is the sweep position of the coverage strategist.
type Cursor struct {
	Row, Col int             // cell the last step targeted
	Heading  types.Direction // heading of the last step
	Index    int             // position of that cell on the route
	Lap      int             // completed passes over the route
	Escapes  int             // ticks spent off the sweep to dodge the body
	Started  bool
}

// Coverage drives the snake along a fixed lawnmower route that passes every cell once
// per lap, so food is eventually eaten wherever it lands. Food only matters for the
// single corner an odd bounded grid cannot fit on the route.
type Coverage struct {
	geo       Geometry
	floodCap  int
	foodBonus int

	route  []types.Point
	index  []int // packed key -> route position, -1 if off route
	corner *cornerDetour
	cursor Cursor
}

// cornerDetour describes the one cell left out of an odd bounded route: it is reachable
// from entry and leaves towards exit, two route steps further on.
type cornerDetour struct {
	cell, entry, exit types.Point
}

// NewCoverage returns a coverage strategist for geo.
func NewCoverage(geo Geometry, floodCap, foodBonus int) *Coverage {
	return &Coverage{geo: geo, floodCap: floodCap, foodBonus: foodBonus}
}

// Cursor returns the current sweep position.
func (c *Coverage) Cursor() Cursor {
	return c.cursor
}

// Route returns the cycle the strategist follows, building it on first use.
func (c *Coverage) Route() []types.Point {
	c.ensureRoute()
	return c.route
}

// Reset forgets the sweep position. The route only depends on the grid and is kept.
func (c *Coverage) Reset() {
	c.cursor = Cursor{}
}

func (c *Coverage) ensureRoute() {
	if c.index != nil {
		return
	}
	n := c.geo.Size
	c.route = sweepRoute(n, c.geo.Wrap)
	c.index = make([]int, n*n)
	for i := range c.index {
		c.index[i] = -1
	}
	for i, p := range c.route {
		c.index[c.geo.Key(p)] = i
	}
	if !c.geo.Wrap && n >= 3 && n%2 == 1 {
		c.corner = &cornerDetour{
			cell:  types.Point{X: n - 1, Y: n - 1},
			entry: types.Point{X: n - 1, Y: n - 2},
			exit:  types.Point{X: n - 2, Y: n - 1},
		}
	}
}

// target returns the next cell of the sweep from head.
func (c *Coverage) target(head, food types.Point) (types.Point, bool) {
	if cd := c.corner; cd != nil {
		switch {
		case head == cd.cell:
			return cd.exit, true
		case head == cd.entry && food == cd.cell:
			return cd.cell, true
		}
	}
	if !c.geo.InBounds(head) {
		return types.Point{}, false
	}
	i := c.index[c.geo.Key(head)]
	if i < 0 {
		return types.Point{}, false
	}
	return c.route[(i+1)%len(c.route)], true
}

// NextDirection returns the sweep heading, or a one-tick escape when the sweep cell is
// blocked by the body or would reverse the snake.
func (c *Coverage) NextDirection(snake []types.Point, food types.Point, current types.Direction) types.Direction {
	c.ensureRoute()
	if len(c.route) == 0 || len(snake) == 0 {
		return types.None
	}

	head := c.geo.Normalize(snake[0])
	occ := NewOccupancy(c.geo, snake)

	if next, ok := c.target(head, food); ok {
		d := c.geo.DirectionBetween(head, next)
		if occ.Legal(head, current, d) {
			c.advance(next, d)
			return d
		}
	}

	c.cursor.Escapes++
	if d := SurvivalMove(c.geo, occ, head, food, current, c.floodCap, c.foodBonus); d != types.None {
		return d
	}
	return ImmediateSafe(occ, head, current)
}

func (c *Coverage) advance(next types.Point, d types.Direction) {
	i := -1
	if c.geo.InBounds(next) {
		i = c.index[c.geo.Key(next)]
	}
	if i == 0 && c.cursor.Started {
		c.cursor.Lap++
	}
	c.cursor.Row, c.cursor.Col = next.Y, next.X
	c.cursor.Heading = d
	c.cursor.Index = i
	c.cursor.Started = true
}

// sweepRoute lays out the lawnmower cycle for an n x n grid.
func sweepRoute(n int, wrap bool) []types.Point {
	switch {
	case n < 2:
		return nil
	case wrap:
		return torusRoute(n)
	default:
		return boundedRoute(n)
	}
}

// torusRoute sweeps each row rightwards and drops one row, wrapping. Row r starts at
// column -r, so the last row ends right above the start.
func torusRoute(n int) []types.Point {
	route := make([]types.Point, 0, n*n)
	for r := 0; r < n; r++ {
		for i := 0; i < n; i++ {
			route = append(route, types.Point{X: mod(i-r, n), Y: r})
		}
	}
	return route
}

// boundedRoute runs row 0 left to right, sweeps the remaining rows over columns 1..n-1
// reversing at every row boundary, and climbs back up column 0. With n odd the row count
// would end the sweep on the wrong side, so the sweep stops one row short and the last
// row is stitched in two cells at a time, leaving out the bottom-right corner.
func boundedRoute(n int) []types.Point {
	rows := n
	odd := n%2 == 1
	if odd {
		rows = n - 1
	}

	route := make([]types.Point, 0, n*n)
	for x := 0; x < n; x++ {
		route = append(route, types.Point{X: x, Y: 0})
	}
	for r := 1; r < rows; r++ {
		if r%2 == 1 {
			for x := n - 1; x >= 1; x-- {
				route = append(route, types.Point{X: x, Y: r})
				if odd && r == rows-1 && x%2 == 1 {
					route = append(route, types.Point{X: x, Y: n - 1}, types.Point{X: x - 1, Y: n - 1})
				}
			}
		} else {
			for x := 1; x < n; x++ {
				route = append(route, types.Point{X: x, Y: r})
			}
		}
	}
	for y := rows - 1; y >= 1; y-- {
		route = append(route, types.Point{X: 0, Y: y})
	}
	return route
}
