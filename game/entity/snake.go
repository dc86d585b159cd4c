package entity

import (
	"snake-autopilot/game/types"
)

type Color struct {
	R, G, B uint8
}

// Snake is the player's body, head first.
type Snake struct {
	Body      []types.Point
	Direction types.Direction
	Score     int
	Dead      bool
	Won       bool
	Color     Color
}

func NewSnake(startPos types.Point, dir types.Direction, color Color) *Snake {
	return &Snake{
		Body:      []types.Point{startPos},
		Direction: dir,
		Color:     color,
	}
}

// Move pushes newHead in front of the body.
func (s *Snake) Move(newHead types.Point) {
	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead
}

// RemoveTail drops the last segment. A single-cell snake keeps its head.
func (s *Snake) RemoveTail() {
	if len(s.Body) > 1 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

func (s *Snake) GetHead() types.Point {
	return s.Body[0]
}

func (s *Snake) GetTail() types.Point {
	return s.Body[len(s.Body)-1]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Occupies reports whether any segment sits on p.
func (s *Snake) Occupies(p types.Point) bool {
	for _, b := range s.Body {
		if b == p {
			return true
		}
	}
	return false
}

// SetDirection turns the snake unless dir would reverse it. None keeps the heading.
func (s *Snake) SetDirection(dir types.Direction) bool {
	if dir == types.None || dir == s.Direction.Opposite() {
		return false
	}
	s.Direction = dir
	return true
}

// BodyCopy returns a snapshot of the body that callers may keep.
func (s *Snake) BodyCopy() []types.Point {
	out := make([]types.Point, len(s.Body))
	copy(out, s.Body)
	return out
}
