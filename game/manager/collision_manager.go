package manager

import (
	"snake-autopilot/game/entity"
	"snake-autopilot/game/types"
)

// Collision tells how a move ended.
type Collision int

const (
	NoCollision Collision = iota
	WallCollision
	SelfCollision
)

func (c Collision) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	default:
		return "none"
	}
}

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// NextHead returns the cell the head moves into, wrapped around on a toroidal grid.
func (cm *CollisionManager) NextHead(head types.Point, dir types.Direction) types.Point {
	return cm.Normalize(head.Add(dir))
}

// Normalize reduces pos onto the grid when it wraps.
func (cm *CollisionManager) Normalize(pos types.Point) types.Point {
	if !cm.grid.Wrap {
		return pos
	}
	n := cm.grid.Size
	return types.Point{X: ((pos.X % n) + n) % n, Y: ((pos.Y % n) + n) % n}
}

// isWallCollision checks if a position is off a bounded grid
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	if cm.grid.Wrap {
		return false
	}
	return pos.X < 0 || pos.X >= cm.grid.Size || pos.Y < 0 || pos.Y >= cm.grid.Size
}

// isSelfCollision checks the head against every other segment
func (cm *CollisionManager) isSelfCollision(snake *entity.Snake) bool {
	head := snake.GetHead()
	for i := 1; i < len(snake.Body); i++ {
		if snake.Body[i] == head {
			return true
		}
	}
	return false
}

// CheckCollision inspects the snake after it has moved and its tail has been handled.
func (cm *CollisionManager) CheckCollision(snake *entity.Snake) Collision {
	if cm.isWallCollision(snake.GetHead()) {
		return WallCollision
	}
	if cm.isSelfCollision(snake) {
		return SelfCollision
	}
	return NoCollision
}

// ValidateSpawnPosition checks if a position is on the grid and clear of the snake
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Point, snake *entity.Snake) bool {
	if pos.X < 0 || pos.X >= cm.grid.Size || pos.Y < 0 || pos.Y >= cm.grid.Size {
		return false
	}
	return snake == nil || !snake.Occupies(pos)
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Point, food types.Point) bool {
	return pos == food
}
