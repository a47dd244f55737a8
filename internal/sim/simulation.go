package sim

import (
	"math"

	"github.com/iburimskiy/circle-bounce/internal/config"
	"github.com/iburimskiy/circle-bounce/internal/log"
)

// Options wires a Simulation to its collaborators and initial values.
type Options struct {
	Renderer Renderer
	Sounds   SoundLoader
	Rand     Rand
	Logger   *log.Logger

	Mode         string // config.ApplyRetarget or config.ApplyReset
	CircleSize   float64
	BallSize     float64
	BallSpeed    float64
	Sound        string
	SoundEnabled bool
}

// TickReport summarises one tick.
type TickReport struct {
	Collisions int
	Spawned    int
}

// Simulation is the whole mutable state of the toy: the population, the
// boundary and the control flags. It is driven from a single goroutine by
// Tick and Dispatch.
type Simulation struct {
	pop      *Population
	renderer Renderer
	sounds   SoundLoader
	rng      Rand
	log      *log.Logger

	mode      string
	diameter  float64
	ballSize  float64
	ballSpeed float64

	running      bool
	soundEnabled bool
	selected     string
	active       Sound

	ticks uint64
}

// New builds a running simulation with one seed ball at the centre.
func New(o Options) *Simulation {
	if o.Logger == nil {
		o.Logger = log.Discard()
	}
	if o.Mode == "" {
		o.Mode = config.ApplyRetarget
	}
	if o.Sound == "" {
		o.Sound = config.SoundNone
	}
	s := &Simulation{
		pop:       NewPopulation(o.Renderer, o.Rand),
		renderer:  o.Renderer,
		sounds:    o.Sounds,
		rng:       o.Rand,
		log:       o.Logger,
		mode:      o.Mode,
		diameter:  o.CircleSize,
		ballSize:  o.BallSize,
		ballSpeed: o.BallSpeed,
		selected:  o.Sound,
		running:   true,
	}
	if o.SoundEnabled {
		s.soundEnabled = true
		s.loadSelected()
	}
	s.Setup()
	return s
}

// Setup clears the population, draws the boundary and seeds one ball.
func (s *Simulation) Setup() {
	s.pop.Reset()
	s.renderer.ResizeBoundary(s.diameter)
	s.seed()
}

func (s *Simulation) seed() {
	radius := s.diameter / 2
	angle := s.rng.Float64() * 2 * math.Pi
	b := s.pop.Create(radius, radius, math.Cos(angle)*s.ballSpeed, math.Sin(angle)*s.ballSpeed, s.ballSize)
	b.syncSprite()
	s.log.Debugf("seeded ball at (%.1f, %.1f) heading %.2f rad", radius, radius, angle)
}

// Tick advances every ball once. Balls duplicated during the tick are not
// moved until the next one.
func (s *Simulation) Tick() TickReport {
	var rep TickReport
	if !s.running {
		return rep
	}
	s.ticks++

	radius := s.diameter / 2
	n := s.pop.Len()
	for i := 0; i < n; i++ {
		b := s.pop.balls[i]
		b.Move()

		if Evaluate(b.X, b.Y, radius, b.Size).Hit {
			b.Reflect()
			rep.Collisions++

			if s.soundEnabled && s.active != nil {
				s.active.Replay()
			}

			if s.pop.DuplicateOnBounce(b, radius) != nil {
				rep.Spawned++
				if s.pop.Len() == config.PopulationCap {
					s.log.Infof("population reached cap of %d at tick %d", config.PopulationCap, s.ticks)
				}
			}
		}

		b.syncSprite()
	}
	return rep
}

// resizeBoundary sets a new diameter. Balls keep their offset from the
// centre and are pulled back onto the wall limit, at their current size,
// when they would end up outside it. An invalid diameter leaves the boundary
// unchanged but still pulls balls inside. A zero diameter collapses the
// boundary onto its centre.
func (s *Simulation) resizeBoundary(d float64) {
	old := s.diameter
	if math.IsNaN(d) || d < 0 {
		s.log.Warnf("ignoring circle size %v", d)
	} else {
		s.diameter = d
		s.renderer.ResizeBoundary(d)
	}

	radius := s.diameter / 2
	shift := (s.diameter - old) / 2
	for _, b := range s.pop.balls {
		b.X += shift
		b.Y += shift

		c := Evaluate(b.X, b.Y, radius, b.Size)
		if c.Distance > c.WallLimit {
			if c.WallLimit <= 0 || c.Distance == 0 {
				b.X, b.Y = radius, radius
			} else {
				k := c.WallLimit / c.Distance
				b.X = radius + (b.X-radius)*k
				b.Y = radius + (b.Y-radius)*k
			}
		}
		b.syncSprite()
	}
	if old != s.diameter {
		s.log.Debugf("boundary resized %.0f -> %.0f", old, s.diameter)
	}
}

func (s *Simulation) loadSelected() {
	s.active = nil
	if s.selected == config.SoundNone {
		return
	}
	if s.sounds == nil {
		s.log.Warnf("no sound loader, %q not loaded", s.selected)
		return
	}
	snd, err := s.sounds.Load(s.selected)
	if err != nil {
		s.log.Errorf("load sound %q: %v", s.selected, err)
		return
	}
	s.active = snd
	s.log.Infof("bounce sound set to %q", s.selected)
}

func (s *Simulation) Population() *Population { return s.pop }

func (s *Simulation) Running() bool { return s.running }

func (s *Simulation) SoundEnabled() bool { return s.soundEnabled }

func (s *Simulation) SelectedSound() string { return s.selected }

// ActiveSound is the loaded handle, nil when sound is off or "none" is selected.
func (s *Simulation) ActiveSound() Sound { return s.active }

func (s *Simulation) Diameter() float64 { return s.diameter }

func (s *Simulation) Mode() string { return s.mode }

func (s *Simulation) Ticks() uint64 { return s.ticks }
