package ai

import (
	"testing"

	"snake-autopilot/game/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// move advances the snake one cell along d without growing.
func move(geo Geometry, snake []types.Point, d types.Direction) []types.Point {
	next := make([]types.Point, 0, len(snake))
	next = append(next, geo.Step(snake[0], d))
	return append(next, snake[:len(snake)-1]...)
}

func assertCycle(t *testing.T, geo Geometry, route []types.Point) {
	t.Helper()
	assertContiguous(t, geo, route)
	require.NotEmpty(t, route)
	assert.Equal(t, 1, geo.Distance(route[len(route)-1], route[0]), "route does not close")

	seen := map[types.Point]bool{}
	for _, p := range route {
		assert.True(t, geo.InBounds(p), "%v off grid", p)
		assert.False(t, seen[p], "%v visited twice", p)
		seen[p] = true
	}
}

func TestBoundedRouteEven(t *testing.T) {
	for _, n := range []int{2, 4, 6, 10} {
		geo := Geometry{Size: n}
		route := sweepRoute(n, false)
		assert.Len(t, route, n*n)
		assertCycle(t, geo, route)
	}
}

func TestBoundedRouteOdd(t *testing.T) {
	for _, n := range []int{3, 5, 9} {
		geo := Geometry{Size: n}
		route := sweepRoute(n, false)
		assert.Len(t, route, n*n-1)
		assertCycle(t, geo, route)
		assert.NotContains(t, route, pt(n-1, n-1))
	}
}

func TestTorusRoute(t *testing.T) {
	for _, n := range []int{3, 4, 5, 10} {
		geo := Geometry{Size: n, Wrap: true}
		route := sweepRoute(n, true)
		assert.Len(t, route, n*n)
		assertCycle(t, geo, route)
	}
}

func TestSweepRouteDegenerate(t *testing.T) {
	assert.Nil(t, sweepRoute(1, false))
	assert.Nil(t, sweepRoute(1, true))

	c := NewCoverage(Geometry{Size: 1}, DefaultFloodFillCap, DefaultFoodBonusBounded)
	assert.Equal(t, types.None, c.NextDirection([]types.Point{pt(0, 0)}, pt(0, 0), types.Right))
}

func TestCoverageVisitsEveryCell(t *testing.T) {
	geo := Geometry{Size: 4}
	c := NewCoverage(geo, DefaultFloodFillCap, DefaultFoodBonusBounded)

	snake := []types.Point{pt(2, 0), pt(1, 0), pt(0, 0)}
	heading := types.Right
	visited := map[types.Point]bool{}

	for tick := 0; tick < 16; tick++ {
		d := c.NextDirection(snake, pt(3, 3), heading)
		require.NotEqual(t, types.None, d, "tick %d", tick)
		require.False(t, IsReversal(heading, d), "tick %d reversed", tick)

		snake = move(geo, snake, d)
		heading = d
		require.True(t, geo.InBounds(snake[0]), "tick %d left the grid", tick)
		visited[snake[0]] = true
	}

	assert.Len(t, visited, 16)
	assert.Equal(t, pt(2, 0), snake[0], "back where it started")
	assert.Equal(t, 1, c.Cursor().Lap)
	assert.Zero(t, c.Cursor().Escapes)
}

func TestCoverageTorusKeepsSweeping(t *testing.T) {
	geo := Geometry{Size: 5, Wrap: true}
	c := NewCoverage(geo, DefaultFloodFillCap, DefaultFoodBonusWrap)

	snake := []types.Point{pt(0, 0)}
	heading := types.Right
	visited := map[types.Point]bool{}
	for tick := 0; tick < 25; tick++ {
		d := c.NextDirection(snake, pt(2, 2), heading)
		require.False(t, IsReversal(heading, d))
		snake = move(geo, snake, d)
		heading = d
		visited[snake[0]] = true
	}
	assert.Len(t, visited, 25)
	assert.Equal(t, pt(0, 0), snake[0])
}

func TestCoverageCornerDetour(t *testing.T) {
	geo := Geometry{Size: 5}
	corner := pt(4, 4)

	t.Run("food on the corner", func(t *testing.T) {
		c := NewCoverage(geo, DefaultFloodFillCap, DefaultFoodBonusBounded)
		snake := []types.Point{pt(4, 3), pt(4, 2), pt(3, 2)}

		d := c.NextDirection(snake, corner, types.Down)
		require.Equal(t, types.Down, d)

		snake = move(geo, snake, d)
		require.Equal(t, corner, snake[0])

		d = c.NextDirection(snake, pt(0, 0), types.Down)
		assert.Equal(t, types.Left, d)
		assert.Equal(t, pt(3, 4), geo.Step(snake[0], d))
	})

	t.Run("food elsewhere", func(t *testing.T) {
		c := NewCoverage(geo, DefaultFloodFillCap, DefaultFoodBonusBounded)
		snake := []types.Point{pt(4, 3), pt(4, 2), pt(3, 2)}

		d := c.NextDirection(snake, pt(0, 0), types.Down)
		assert.Equal(t, types.Left, d)
	})
}

func TestCoverageEscapesWhenSweepBlocked(t *testing.T) {
	geo := Geometry{Size: 4}
	c := NewCoverage(geo, DefaultFloodFillCap, DefaultFoodBonusBounded)

	// The route continues from (1,1) to (1,2), which is body here.
	snake := []types.Point{pt(1, 1), pt(1, 2), pt(2, 2), pt(2, 1)}
	d := c.NextDirection(snake, pt(0, 3), types.Left)

	assert.NotEqual(t, types.None, d)
	assert.NotEqual(t, types.Down, d)
	assert.False(t, IsReversal(types.Left, d))
	assert.Equal(t, 1, c.Cursor().Escapes)
}

func TestCoverageReset(t *testing.T) {
	geo := Geometry{Size: 4}
	c := NewCoverage(geo, DefaultFloodFillCap, DefaultFoodBonusBounded)

	c.NextDirection([]types.Point{pt(2, 0)}, pt(3, 3), types.Right)
	require.True(t, c.Cursor().Started)

	c.Reset()
	assert.Equal(t, Cursor{}, c.Cursor())
	assert.Len(t, c.Route(), 16, "route survives a reset")
}
