package manager

import (
	"snake-autopilot/game/entity"
	"snake-autopilot/game/types"

	"golang.org/x/exp/rand"
)

// maxSpawnAttempts bounds random probing before the free cells are enumerated.
const maxSpawnAttempts = 64

type FoodManager struct {
	grid         types.Grid
	food         types.Point
	rng          *rand.Rand
	collisionMgr *CollisionManager
}

func NewFoodManager(grid types.Grid, collisionMgr *CollisionManager, seed uint64) *FoodManager {
	return &FoodManager{
		grid:         grid,
		rng:          rand.New(rand.NewSource(seed)),
		collisionMgr: collisionMgr,
	}
}

// GetFood returns the current food cell.
func (fm *FoodManager) GetFood() types.Point {
	return fm.food
}

// SetFood places the food on pos.
func (fm *FoodManager) SetFood(pos types.Point) {
	fm.food = pos
}

// GenerateFood places the food on a random cell the snake does not cover. It returns
// false when there is no such cell.
func (fm *FoodManager) GenerateFood(snake *entity.Snake) (types.Point, bool) {
	if snake != nil && snake.Len() >= fm.grid.Cells() {
		return types.Point{}, false
	}

	for attempt := 0; attempt < maxSpawnAttempts; attempt++ {
		food := types.Point{
			X: fm.rng.Intn(fm.grid.Size),
			Y: fm.rng.Intn(fm.grid.Size),
		}
		if fm.collisionMgr.ValidateSpawnPosition(food, snake) {
			fm.food = food
			return food, true
		}
	}

	// Crowded board: pick among the free cells directly.
	free := fm.freeCells(snake)
	if len(free) == 0 {
		return types.Point{}, false
	}
	fm.food = free[fm.rng.Intn(len(free))]
	return fm.food, true
}

// PlaceOnLastEmptyCell puts the food on the first free cell scanning rows top to
// bottom. Used when the snake is one cell short of filling the board.
func (fm *FoodManager) PlaceOnLastEmptyCell(snake *entity.Snake) (types.Point, bool) {
	free := fm.freeCells(snake)
	if len(free) == 0 {
		return types.Point{}, false
	}
	fm.food = free[0]
	return fm.food, true
}

func (fm *FoodManager) freeCells(snake *entity.Snake) []types.Point {
	var free []types.Point
	for y := 0; y < fm.grid.Size; y++ {
		for x := 0; x < fm.grid.Size; x++ {
			p := types.Point{X: x, Y: y}
			if fm.collisionMgr.ValidateSpawnPosition(p, snake) {
				free = append(free, p)
			}
		}
	}
	return free
}
