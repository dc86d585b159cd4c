package ai

import (
	"testing"

	"snake-autopilot/game/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertContiguous(t *testing.T, geo Geometry, path []types.Point) {
	t.Helper()
	for i := 1; i < len(path); i++ {
		assert.Equal(t, 1, geo.Distance(path[i-1], path[i]), "gap between %v and %v", path[i-1], path[i])
	}
}

func TestFindPathOptimalOnEmptyGrid(t *testing.T) {
	geo := Geometry{Size: 10}
	occ := NewOccupancy(geo, []types.Point{pt(0, 0)})

	path := FindPath(geo, pt(0, 0), pt(3, 4), occ, DefaultMaxIterations)
	require.NotNil(t, path)
	assert.Len(t, path, geo.Distance(pt(0, 0), pt(3, 4))+1)
	assert.Equal(t, pt(0, 0), path[0])
	assert.Equal(t, pt(3, 4), path[len(path)-1])
	assertContiguous(t, geo, path)
}

func TestFindPathWrapShortcut(t *testing.T) {
	geo := Geometry{Size: 10, Wrap: true}
	occ := NewOccupancy(geo, []types.Point{pt(0, 5)})

	path := FindPath(geo, pt(0, 5), pt(9, 5), occ, DefaultMaxIterations)
	require.Len(t, path, 2)
	assert.Equal(t, types.Left, geo.DirectionBetween(path[0], path[1]))
}

func TestFindPathAroundBody(t *testing.T) {
	geo := Geometry{Size: 10}
	snake := []types.Point{pt(5, 5), pt(4, 5), pt(3, 5)}
	occ := NewOccupancy(geo, snake)

	path := FindPath(geo, snake[0], pt(5, 2), occ, DefaultMaxIterations)
	assert.Equal(t, []types.Point{pt(5, 5), pt(5, 4), pt(5, 3), pt(5, 2)}, path)

	// Food behind the body forces a detour.
	path = FindPath(geo, snake[0], pt(2, 5), occ, DefaultMaxIterations)
	require.NotNil(t, path)
	assertContiguous(t, geo, path)
	for _, p := range path[1:] {
		assert.False(t, occ.Has(p), "path crosses body at %v", p)
	}
	assert.Len(t, path, 6)
}

// ring returns a snake whose body (head excluded) closes around center.
func ring(center types.Point) []types.Point {
	x, y := center.X, center.Y
	return []types.Point{
		pt(x-2, y),
		pt(x-1, y), pt(x-1, y-1), pt(x, y-1), pt(x+1, y-1),
		pt(x+1, y), pt(x+1, y+1), pt(x, y+1), pt(x-1, y+1),
	}
}

func TestFindPathEnclosedGoal(t *testing.T) {
	geo := Geometry{Size: 10}
	snake := ring(pt(5, 5))
	occ := NewOccupancy(geo, snake)

	assert.Nil(t, FindPath(geo, snake[0], pt(5, 5), occ, DefaultMaxIterations))
	assert.Nil(t, FindPath(geo, snake[0], pt(5, 5), occ, 3), "tiny budget")
}

func TestFindPathBudgetExhausted(t *testing.T) {
	geo := Geometry{Size: 40}
	occ := NewOccupancy(geo, []types.Point{pt(0, 0)})

	assert.Nil(t, FindPath(geo, pt(0, 0), pt(39, 39), occ, 10))
	assert.NotNil(t, FindPath(geo, pt(0, 0), pt(39, 39), occ, 10_000))
}

func TestFindPathDeterministic(t *testing.T) {
	geo := Geometry{Size: 12, Wrap: true}
	snake := []types.Point{pt(6, 6), pt(6, 7), pt(6, 8), pt(7, 8), pt(8, 8)}
	occ := NewOccupancy(geo, snake)

	first := FindPath(geo, snake[0], pt(1, 10), occ, DefaultMaxIterations)
	require.NotNil(t, first)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, FindPath(geo, snake[0], pt(1, 10), occ, DefaultMaxIterations))
	}
}
