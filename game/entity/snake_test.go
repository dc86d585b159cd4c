package entity

import (
	"testing"

	"snake-autopilot/game/types"

	"github.com/stretchr/testify/assert"
)

func TestSnakeMoveKeepsHeadFirst(t *testing.T) {
	s := NewSnake(types.Point{X: 5, Y: 5}, types.Right, Color{})

	s.Move(types.Point{X: 6, Y: 5})
	assert.Equal(t, []types.Point{{X: 6, Y: 5}, {X: 5, Y: 5}}, s.Body)
	assert.Equal(t, types.Point{X: 6, Y: 5}, s.GetHead())
	assert.Equal(t, types.Point{X: 5, Y: 5}, s.GetTail())

	s.RemoveTail()
	assert.Equal(t, []types.Point{{X: 6, Y: 5}}, s.Body)

	s.RemoveTail()
	assert.Equal(t, 1, s.Len(), "head is never removed")
}

func TestSnakeSetDirection(t *testing.T) {
	s := NewSnake(types.Point{X: 5, Y: 5}, types.Right, Color{})

	assert.False(t, s.SetDirection(types.Left), "reversal")
	assert.Equal(t, types.Right, s.Direction)

	assert.False(t, s.SetDirection(types.None))
	assert.Equal(t, types.Right, s.Direction)

	assert.True(t, s.SetDirection(types.Up))
	assert.Equal(t, types.Up, s.Direction)
}

func TestSnakeBodyCopyIsDetached(t *testing.T) {
	s := NewSnake(types.Point{X: 1, Y: 1}, types.Right, Color{})
	s.Move(types.Point{X: 2, Y: 1})

	body := s.BodyCopy()
	body[0] = types.Point{X: 9, Y: 9}

	assert.True(t, s.Occupies(types.Point{X: 2, Y: 1}))
	assert.False(t, s.Occupies(types.Point{X: 9, Y: 9}))
}
