package manager

import (
	"os"
	"path/filepath"
	"testing"

	"snake-autopilot/game/entity"
	"snake-autopilot/game/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snakeOf(dir types.Direction, body ...types.Point) *entity.Snake {
	s := entity.NewSnake(body[0], dir, entity.Color{})
	s.Body = append([]types.Point(nil), body...)
	return s
}

func TestCheckCollision(t *testing.T) {
	bounded := NewCollisionManager(types.Grid{Size: 10})
	wrap := NewCollisionManager(types.Grid{Size: 10, Wrap: true})

	testCases := []struct {
		name  string
		cm    *CollisionManager
		snake *entity.Snake
		want  Collision
	}{
		{"free", bounded, snakeOf(types.Right, types.Point{X: 5, Y: 5}), NoCollision},
		{"left wall", bounded, snakeOf(types.Left, types.Point{X: -1, Y: 5}), WallCollision},
		{"bottom wall", bounded, snakeOf(types.Down, types.Point{X: 3, Y: 10}), WallCollision},
		{"no walls on a torus", wrap, snakeOf(types.Down, types.Point{X: 3, Y: 0}), NoCollision},
		{"bitten body", bounded, snakeOf(types.Up,
			types.Point{X: 4, Y: 4}, types.Point{X: 4, Y: 5}, types.Point{X: 5, Y: 5},
			types.Point{X: 5, Y: 4}, types.Point{X: 4, Y: 4}), SelfCollision},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.cm.CheckCollision(tc.snake))
		})
	}
}

func TestNextHeadWraps(t *testing.T) {
	wrap := NewCollisionManager(types.Grid{Size: 10, Wrap: true})
	assert.Equal(t, types.Point{X: 9, Y: 5}, wrap.NextHead(types.Point{X: 0, Y: 5}, types.Left))
	assert.Equal(t, types.Point{X: 3, Y: 0}, wrap.NextHead(types.Point{X: 3, Y: 9}, types.Down))

	bounded := NewCollisionManager(types.Grid{Size: 10})
	assert.Equal(t, types.Point{X: -1, Y: 5}, bounded.NextHead(types.Point{X: 0, Y: 5}, types.Left))
}

func TestGenerateFoodAvoidsSnake(t *testing.T) {
	grid := types.Grid{Size: 4}
	cm := NewCollisionManager(grid)
	fm := NewFoodManager(grid, cm, 42)

	// Leave only two cells free so the fallback enumeration is exercised too.
	var body []types.Point
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if !(x == 3 && y >= 2) {
				body = append(body, types.Point{X: x, Y: y})
			}
		}
	}
	s := snakeOf(types.Right, body...)

	for i := 0; i < 50; i++ {
		food, ok := fm.GenerateFood(s)
		require.True(t, ok)
		assert.False(t, s.Occupies(food), "food %v on the snake", food)
		assert.Equal(t, food, fm.GetFood())
	}
}

func TestGenerateFoodIsSeeded(t *testing.T) {
	grid := types.Grid{Size: 10}
	s := snakeOf(types.Right, types.Point{X: 5, Y: 5})
	a := NewFoodManager(grid, NewCollisionManager(grid), 7)
	b := NewFoodManager(grid, NewCollisionManager(grid), 7)

	for i := 0; i < 20; i++ {
		fa, _ := a.GenerateFood(s)
		fb, _ := b.GenerateFood(s)
		assert.Equal(t, fa, fb)
	}
}

func TestGenerateFoodFullBoard(t *testing.T) {
	grid := types.Grid{Size: 2}
	fm := NewFoodManager(grid, NewCollisionManager(grid), 1)
	s := snakeOf(types.Right,
		types.Point{X: 0, Y: 0}, types.Point{X: 1, Y: 0}, types.Point{X: 1, Y: 1}, types.Point{X: 0, Y: 1})

	_, ok := fm.GenerateFood(s)
	assert.False(t, ok)
	_, ok = fm.PlaceOnLastEmptyCell(s)
	assert.False(t, ok)
}

func TestPlaceOnLastEmptyCell(t *testing.T) {
	grid := types.Grid{Size: 2}
	fm := NewFoodManager(grid, NewCollisionManager(grid), 1)
	s := snakeOf(types.Right, types.Point{X: 0, Y: 0}, types.Point{X: 1, Y: 0}, types.Point{X: 1, Y: 1})

	food, ok := fm.PlaceOnLastEmptyCell(s)
	require.True(t, ok)
	assert.Equal(t, types.Point{X: 0, Y: 1}, food)
}

func TestStateManagerPersists(t *testing.T) {
	dir := t.TempDir()

	sm := NewStateManager(dir, nil)
	require.NoError(t, sm.RecordGame(30, false))
	require.NoError(t, sm.RecordGame(990, true))
	require.NoError(t, sm.RecordGame(10, false))
	assert.Equal(t, 990, sm.GetHighScore())

	reloaded := NewStateManager(dir, nil)
	assert.Equal(t, 990, reloaded.GetHighScore())
	assert.Equal(t, []int{30, 990, 10}, reloaded.GetScoreHistory())
	assert.Equal(t, 1, reloaded.GetWins())
}

func TestStateManagerCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, GameStatsFile), []byte("{not json"), 0644))

	sm := NewStateManager(dir, nil)
	assert.Zero(t, sm.GetHighScore())
	assert.Error(t, sm.LoadStats())
}

func TestStateManagerInMemory(t *testing.T) {
	sm := NewStateManager("", nil)
	require.NoError(t, sm.RecordGame(20, false))
	assert.Equal(t, 20, sm.GetHighScore())
}
