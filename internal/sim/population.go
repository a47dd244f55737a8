package sim

import (
	"math"

	"github.com/iburimskiy/circle-bounce/internal/config"
)

// Rand is the random source used for headings and duplicate velocities.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Population owns the live balls. Only the loop goroutine touches it.
type Population struct {
	balls    []*Ball
	renderer Renderer
	rng      Rand
}

func NewPopulation(r Renderer, rng Rand) *Population {
	return &Population{
		balls:    make([]*Ball, 0, 64),
		renderer: r,
		rng:      rng,
	}
}

func (p *Population) Len() int { return len(p.balls) }

func (p *Population) Ball(i int) *Ball { return p.balls[i] }

// Each calls fn for every ball in creation order.
func (p *Population) Each(fn func(i int, b *Ball)) {
	for i, b := range p.balls {
		fn(i, b)
	}
}

// Create adds a ball without validating its inputs.
func (p *Population) Create(x, y, dx, dy, size float64) *Ball {
	b := &Ball{
		X: x, Y: y,
		DX: dx, DY: dy,
		Size:   size,
		sprite: p.renderer.NewSprite(size),
	}
	p.balls = append(p.balls, b)
	return b
}

// DuplicateOnBounce spawns a ball at the boundary centre with a random
// velocity and the bouncing ball's size. It returns nil once the population
// is at the cap.
func (p *Population) DuplicateOnBounce(b *Ball, radius float64) *Ball {
	if len(p.balls) >= config.PopulationCap {
		return nil
	}
	dx := p.rng.Float64()*2*config.DuplicateSpeed - config.DuplicateSpeed
	dy := p.rng.Float64()*2*config.DuplicateSpeed - config.DuplicateSpeed
	return p.Create(radius, radius, dx, dy, b.Size)
}

// Reset releases every sprite and empties the population.
func (p *Population) Reset() {
	for _, b := range p.balls {
		b.sprite.Release()
		b.sprite = nil
	}
	clear(p.balls)
	p.balls = p.balls[:0]
}

// RetargetAll keeps each ball's heading while rescaling its speed, and
// resizes every ball.
func (p *Population) RetargetAll(newSize, newSpeed float64) {
	for _, b := range p.balls {
		b.Size = newSize
		b.sprite.Resize(newSize)

		angle := math.Atan2(b.DY, b.DX)
		b.DX = math.Cos(angle) * newSpeed
		b.DY = math.Sin(angle) * newSpeed
	}
}
