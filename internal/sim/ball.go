package sim

// Sprite is the on-screen representation of one ball. It is positioned by
// its top-left corner.
type Sprite interface {
	MoveTo(left, top float64)
	Resize(size float64)
	Release()
}

// Renderer hands out sprites and draws the boundary.
type Renderer interface {
	NewSprite(size float64) Sprite
	ResizeBoundary(diameter float64)
}

// Sound is a loaded bounce sound. Replay rewinds and plays it without
// waiting for a previous playback to finish.
type Sound interface {
	Replay()
}

// SoundLoader resolves a selection name to a playable sound.
type SoundLoader interface {
	Load(name string) (Sound, error)
}

// Ball is centred at (X, Y) in the boundary's local frame and moves by
// (DX, DY) every tick.
type Ball struct {
	X, Y   float64
	DX, DY float64
	Size   float64

	sprite Sprite
}

// Move advances the ball by its velocity.
func (b *Ball) Move() {
	b.X += b.DX
	b.Y += b.DY
}

// Reflect reverses both velocity components.
func (b *Ball) Reflect() {
	b.DX = -b.DX
	b.DY = -b.DY
}

func (b *Ball) syncSprite() {
	b.sprite.MoveTo(b.X-b.Size/2, b.Y-b.Size/2)
}
