package sim

import (
	"errors"
	"os"

	"github.com/iburimskiy/circle-bounce/internal/config"
	game_log "github.com/iburimskiy/circle-bounce/internal/log"
)

var testLogger = game_log.New(os.Stdout, game_log.LevelError)

type fakeSprite struct {
	left, top float64
	size      float64
	moves     int
	released  bool
}

func (f *fakeSprite) MoveTo(left, top float64) {
	f.left, f.top = left, top
	f.moves++
}

func (f *fakeSprite) Resize(size float64) { f.size = size }

func (f *fakeSprite) Release() { f.released = true }

type fakeRenderer struct {
	sprites  []*fakeSprite
	boundary []float64
}

func (r *fakeRenderer) NewSprite(size float64) Sprite {
	s := &fakeSprite{size: size}
	r.sprites = append(r.sprites, s)
	return s
}

func (r *fakeRenderer) ResizeBoundary(d float64) { r.boundary = append(r.boundary, d) }

func (r *fakeRenderer) live() int {
	n := 0
	for _, s := range r.sprites {
		if !s.released {
			n++
		}
	}
	return n
}

// seqRand replays values, repeating the last one when exhausted.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[min(r.i, len(r.vals)-1)]
	r.i++
	return v
}

type fakeSound struct {
	name    string
	replays int
}

func (f *fakeSound) Replay() { f.replays++ }

type fakeLoader struct {
	loaded []*fakeSound
	fail   map[string]bool
}

var errMissing = errors.New("missing sound")

func (l *fakeLoader) Load(name string) (Sound, error) {
	if l.fail[name] {
		return nil, errMissing
	}
	s := &fakeSound{name: name}
	l.loaded = append(l.loaded, s)
	return s, nil
}

func newTestSim(mode string, circle, ball, speed float64, rng Rand) (*Simulation, *fakeRenderer, *fakeLoader) {
	r := &fakeRenderer{}
	l := &fakeLoader{fail: map[string]bool{}}
	if rng == nil {
		rng = &seqRand{}
	}
	s := New(Options{
		Renderer:   r,
		Sounds:     l,
		Rand:       rng,
		Logger:     testLogger,
		Mode:       mode,
		CircleSize: circle,
		BallSize:   ball,
		BallSpeed:  speed,
		Sound:      config.SoundNone,
	})
	return s, r, l
}

type velocity struct{ dx, dy float64 }

func velocities(p *Population) []velocity {
	out := make([]velocity, p.Len())
	p.Each(func(i int, b *Ball) { out[i] = velocity{b.DX, b.DY} })
	return out
}
