package types

import (
	"fmt"

	"github.com/pkg/errors"
)

// Point is a grid cell. Coordinates grow right (X) and down (Y).
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns p translated by the delta of d.
func (p Point) Add(d Direction) Point {
	delta := d.ToPoint()
	return Point{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// Grid represents the game grid: a Size x Size square, toroidal when Wrap is set.
type Grid struct {
	Size int
	Wrap bool
}

// Cells returns the number of cells of the grid.
func (g Grid) Cells() int {
	return g.Size * g.Size
}

// Game constants
const (
	DefaultGridSize   = 10
	FoodScore         = 10 // Points per food eaten
	DefaultSpeedIndex = 2  // 150ms
)

// StartPosition is where a new snake is placed.
var StartPosition = Point{X: 5, Y: 5}

// SpeedLevels are tick intervals in milliseconds, slowest first.
var SpeedLevels = []int{300, 200, 150, 100, 50, 25, 10, 5, 1}

// Direction is a cardinal heading. None means "no change".
type Direction int

const (
	None  Direction = iota // 0
	Up                     // 1
	Right                  // 2
	Down                   // 3
	Left                   // 4
)

// EvaluationOrder is the fixed order used whenever headings are tried in turn.
var EvaluationOrder = [4]Direction{Up, Down, Left, Right}

// ToPoint converts a Direction into a unit displacement.
func (d Direction) ToPoint() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{X: 0, Y: 0}
	}
}

// Opposite returns the 180° reversal of d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "none"
	}
}

// ParseDirection is the inverse of Direction.String.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "right":
		return Right, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "none", "":
		return None, nil
	}
	return None, errors.Errorf("unknown direction %q", s)
}

// Mode selects which strategist drives the snake.
type Mode int

const (
	Off Mode = iota
	Chase
	Coverage
)

func (m Mode) String() string {
	switch m {
	case Chase:
		return "chase"
	case Coverage:
		return "coverage"
	default:
		return "off"
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "off", "":
		return Off, nil
	case "chase":
		return Chase, nil
	case "coverage", "lawnmower":
		return Coverage, nil
	}
	return Off, errors.Errorf("unknown autopilot mode %q", s)
}
