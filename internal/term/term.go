// Package term runs the simulation in a terminal with tcell. One cell covers
// config.CellWidth x config.CellHeight boundary units.
package term

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/circle-bounce/internal/config"
	"github.com/iburimskiy/circle-bounce/internal/control"
	"github.com/iburimskiy/circle-bounce/internal/log"
	"github.com/iburimskiy/circle-bounce/internal/render"
	"github.com/iburimskiy/circle-bounce/internal/sim"
	"github.com/iburimskiy/circle-bounce/internal/sound"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	headerRows    = 2
	ballRune      = '●'
	ringRune      = '·'
)

type Terminal struct {
	screen tcell.Screen
	sim    *sim.Simulation
	board  *render.Board
	panel  *control.Panel
	meter  *sound.Meter
	log    *log.Logger

	width, height int
	level         float64
	colorPhase    float64
}

// New initialises the screen. Call Close when done.
func New(screen tcell.Screen, s *sim.Simulation, b *render.Board, p *control.Panel, m *sound.Meter, l *log.Logger) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	t := &Terminal{
		screen: screen,
		sim:    s,
		board:  b,
		panel:  p,
		meter:  m,
		log:    l,
	}
	t.syncSize()
	return t, nil
}

func (t *Terminal) Close() {
	t.screen.Fini()
}

// Run ticks once per frame until the user quits or ctx is cancelled. Input
// is read on a separate goroutine and handled here, between ticks.
func (t *Terminal) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !t.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			t.step()
		}
	}
}

func (t *Terminal) step() {
	t.syncSize()
	t.sim.Tick()
	if t.meter != nil {
		t.level = t.meter.Update()
	}
	t.colorPhase += config.ColorShiftSpeed
	t.draw()
}

func (t *Terminal) syncSize() {
	w, h := t.screen.Size()
	if w == t.width && h == t.height {
		return
	}
	t.width, t.height = w, h
	t.panel.SetViewport(w*config.CellWidth, h*config.CellHeight)
	t.log.Debugf("terminal %dx%d cells", w, h)
}

func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		t.syncSize()
		t.screen.Sync()
	}
	return true
}

// handleKey returns false when the user asked to quit.
func (t *Terminal) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		t.sim.Dispatch(t.panel.ApplyCommand())
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch r {
	case 'q':
		return false
	case ' ':
		t.sim.Dispatch(sim.ToggleRunning{})
	case 'c':
		t.sim.Dispatch(sim.Clear{})
	case 's':
		t.sim.Dispatch(sim.ToggleSound{})
	case 'n':
		t.sim.Dispatch(t.panel.CycleSound())
	case '+', '=':
		t.panel.Nudge(control.FieldCircle, 10)
	case '-':
		t.panel.Nudge(control.FieldCircle, -10)
	case ']':
		t.panel.Nudge(control.FieldBall, 2)
	case '[':
		t.panel.Nudge(control.FieldBall, -2)
	case '.':
		t.panel.Nudge(control.FieldSpeed, 1)
	case ',':
		t.panel.Nudge(control.FieldSpeed, -1)
	}
	return true
}

// origin is the cell holding the boundary's top-left corner.
func (t *Terminal) origin() (int, int) {
	d := t.board.Boundary()
	ox := (t.width - int(d/config.CellWidth)) / 2
	oy := headerRows
	if free := t.height - headerRows - 1 - int(d/config.CellHeight); free > 0 {
		oy += free / 2
	}
	return ox, oy
}

// cellOf maps a point in boundary units to a screen cell.
func (t *Terminal) cellOf(x, y float64) (int, int) {
	ox, oy := t.origin()
	return ox + int(math.Floor(x/config.CellWidth)), oy + int(math.Floor(y/config.CellHeight))
}

func (t *Terminal) put(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return
	}
	t.screen.SetContent(x, y, r, nil, style)
}

func (t *Terminal) print(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.put(x, y, r, style)
		x++
	}
}

func (t *Terminal) draw() {
	t.screen.Clear()

	t.drawBoundary()
	t.drawBalls()
	t.drawStatus()

	t.screen.Show()
}

func (t *Terminal) drawBoundary() {
	d := t.board.Boundary()
	r := d / 2
	c := render.BoundaryColor(t.level)
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))

	steps := max(int(math.Pi*d/config.CellWidth), 16)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x, y := t.cellOf(r+r*math.Cos(a), r+r*math.Sin(a))
		t.put(x, y, ringRune, style)
	}
}

func (t *Terminal) drawBalls() {
	t.board.Each(func(s *render.Sprite) {
		if !s.Visible() {
			return
		}
		c := render.BallColor(s.ID, t.colorPhase)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		x, y := t.cellOf(s.Centre())
		t.put(x, y, ballRune, style)
	})
}

func (t *Terminal) drawStatus() {
	state := "Stopped"
	if t.sim.Running() {
		state = "Running"
	}
	snd := "off"
	if t.sim.SoundEnabled() {
		snd = "on"
	}
	head := fmt.Sprintf("%s | balls %d/%d | sound %s [%s] | circle %s ball %s speed %s",
		state, t.sim.Population().Len(), config.PopulationCap, snd, t.panel.Sound(),
		t.panel.Value(control.FieldCircle), t.panel.Value(control.FieldBall), t.panel.Value(control.FieldSpeed))
	t.print(0, 0, head, tcell.StyleDefault.Bold(true))

	keys := "space start/stop  enter apply  s sound  n next sound  +/- circle  [/] ball  ,/. speed  q quit"
	if t.sim.Mode() == config.ApplyReset {
		keys += "  c clear"
	}
	t.print(0, 1, keys, tcell.StyleDefault.Dim(true))
}
