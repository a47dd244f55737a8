package sim

import "github.com/iburimskiy/circle-bounce/internal/config"

// Command is a Control Surface action dispatched into the simulation.
type Command interface {
	apply(s *Simulation)
}

// Apply pushes new settings. Values are used as given; NaN flows through.
type Apply struct {
	CircleSize float64
	BallSize   float64
	BallSpeed  float64
}

// ToggleRunning switches between Running and Stopped.
type ToggleRunning struct{}

// Clear stops the simulation and empties the population (reset mode only).
type Clear struct{}

// ToggleSound enables or disables the bounce sound.
type ToggleSound struct{}

// SelectSound changes the selected sound, "none" included.
type SelectSound struct {
	Name string
}

func (s *Simulation) Dispatch(c Command) {
	c.apply(s)
}

func (c Apply) apply(s *Simulation) {
	s.ballSize = c.BallSize
	s.ballSpeed = c.BallSpeed

	if s.mode == config.ApplyReset {
		s.running = false
		s.pop.Reset()
		s.resizeBoundary(c.CircleSize)
		s.log.Infof("applied circle=%v ball=%v speed=%v, population cleared", c.CircleSize, c.BallSize, c.BallSpeed)
		return
	}

	s.pop.RetargetAll(c.BallSize, c.BallSpeed)
	s.resizeBoundary(c.CircleSize)
	s.log.Infof("applied circle=%v ball=%v speed=%v to %d balls", c.CircleSize, c.BallSize, c.BallSpeed, s.pop.Len())
}

func (ToggleRunning) apply(s *Simulation) {
	if !s.running && s.pop.Len() == 0 {
		s.seed()
	}
	s.running = !s.running
	s.log.Debugf("running=%t", s.running)
}

func (Clear) apply(s *Simulation) {
	if s.mode != config.ApplyReset {
		s.log.Debugf("clear ignored in %s mode", s.mode)
		return
	}
	s.running = false
	s.pop.Reset()
	s.log.Infof("population cleared")
}

func (ToggleSound) apply(s *Simulation) {
	s.soundEnabled = !s.soundEnabled
	if !s.soundEnabled {
		s.active = nil
		s.log.Debugf("sound disabled")
		return
	}
	s.loadSelected()
}

func (c SelectSound) apply(s *Simulation) {
	s.selected = c.Name
	if s.soundEnabled {
		s.loadSelected()
	}
}
