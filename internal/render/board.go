// Package render keeps the presentation state the frontends draw each frame:
// the boundary diameter and one sprite per live ball.
package render

import (
	"math"

	"github.com/iburimskiy/circle-bounce/internal/sim"
)

// Sprite is a ball's on-screen rectangle, top-left anchored, in boundary
// units.
type Sprite struct {
	ID        int
	Left, Top float64
	Size      float64

	board *Board
	slot  int
}

func (s *Sprite) MoveTo(left, top float64) {
	s.Left, s.Top = left, top
}

func (s *Sprite) Resize(size float64) { s.Size = size }

// Release removes the sprite from its board. Releasing twice is a no-op.
func (s *Sprite) Release() {
	if s.board == nil {
		return
	}
	s.board.remove(s)
	s.board = nil
}

// Centre returns the sprite's centre point.
func (s *Sprite) Centre() (float64, float64) {
	return s.Left + s.Size/2, s.Top + s.Size/2
}

// Visible reports whether the sprite has drawable geometry.
func (s *Sprite) Visible() bool {
	return !math.IsNaN(s.Left) && !math.IsNaN(s.Top) && !math.IsNaN(s.Size) && s.Size > 0
}

// Board implements sim.Renderer.
type Board struct {
	boundary float64
	sprites  []*Sprite
	nextID   int
}

var _ sim.Renderer = (*Board)(nil)

func NewBoard() *Board {
	return &Board{sprites: make([]*Sprite, 0, 64)}
}

func (b *Board) NewSprite(size float64) sim.Sprite {
	s := &Sprite{
		ID:    b.nextID,
		Size:  size,
		board: b,
		slot:  len(b.sprites),
	}
	b.nextID++
	b.sprites = append(b.sprites, s)
	return s
}

func (b *Board) ResizeBoundary(diameter float64) { b.boundary = diameter }

// Boundary is the diameter last set by the simulation.
func (b *Board) Boundary() float64 { return b.boundary }

func (b *Board) Len() int { return len(b.sprites) }

// Each visits live sprites. The order is stable between releases.
func (b *Board) Each(fn func(s *Sprite)) {
	for _, s := range b.sprites {
		fn(s)
	}
}

// remove swaps the last sprite into the freed slot.
func (b *Board) remove(s *Sprite) {
	last := len(b.sprites) - 1
	if s.slot != last {
		moved := b.sprites[last]
		b.sprites[s.slot] = moved
		moved.slot = s.slot
	}
	b.sprites[last] = nil
	b.sprites = b.sprites[:last]
}
