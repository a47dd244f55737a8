package term

import (
	"math/rand"
	"os"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/circle-bounce/internal/config"
	"github.com/iburimskiy/circle-bounce/internal/control"
	game_log "github.com/iburimskiy/circle-bounce/internal/log"
	"github.com/iburimskiy/circle-bounce/internal/render"
	"github.com/iburimskiy/circle-bounce/internal/sim"
)

var testLogger = game_log.New(os.Stdout, game_log.LevelError)

func newTestTerminal(t *testing.T, mode string) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	settings := config.Default()
	settings.ApplyMode = mode
	settings.CircleSize = 320
	settings.BallSize = 16
	settings.BallSpeed = 4

	board := render.NewBoard()
	s := sim.New(sim.Options{
		Renderer:   board,
		Rand:       rand.New(rand.NewSource(1)),
		Logger:     testLogger,
		Mode:       mode,
		CircleSize: float64(settings.CircleSize),
		BallSize:   float64(settings.BallSize),
		BallSpeed:  float64(settings.BallSpeed),
	})

	screen := tcell.NewSimulationScreen("UTF-8")
	term, err := New(screen, s, board, control.NewPanel(settings), nil, testLogger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(term.Close)
	screen.SetSize(100, 40)
	term.syncSize()
	return term, screen
}

func TestViewportFollowsScreen(t *testing.T) {
	term, _ := newTestTerminal(t, config.ApplyRetarget)
	w, h := term.panel.Viewport()
	if w != 100*config.CellWidth || h != 40*config.CellHeight {
		t.Fatalf("viewport = %dx%d", w, h)
	}
}

func TestKeysDriveSimulation(t *testing.T) {
	term, _ := newTestTerminal(t, config.ApplyReset)

	term.handleKey(tcell.KeyRune, ' ')
	if term.sim.Running() {
		t.Fatal("space did not stop the simulation")
	}
	term.handleKey(tcell.KeyRune, ' ')
	if !term.sim.Running() {
		t.Fatal("space did not restart the simulation")
	}

	term.handleKey(tcell.KeyRune, 's')
	if !term.sim.SoundEnabled() {
		t.Fatal("s did not enable sound")
	}

	term.handleKey(tcell.KeyRune, '+')
	if term.panel.Value(control.FieldCircle) != "330" {
		t.Fatalf("circle field = %q", term.panel.Value(control.FieldCircle))
	}
	term.handleKey(tcell.KeyEnter, 0)
	if term.sim.Diameter() != 330 || term.board.Boundary() != 330 {
		t.Fatalf("apply did not resize: sim %v board %v", term.sim.Diameter(), term.board.Boundary())
	}
	if term.sim.Population().Len() != 0 || term.sim.Running() {
		t.Fatal("apply in reset mode should clear and stop")
	}

	term.handleKey(tcell.KeyRune, 'n')
	if term.panel.Sound() == config.SoundNone {
		t.Fatal("n did not advance the sound selection")
	}

	if term.handleKey(tcell.KeyRune, 'q') {
		t.Fatal("q should quit")
	}
	if term.handleKey(tcell.KeyEscape, 0) {
		t.Fatal("escape should quit")
	}
}

func TestStepDrawsBall(t *testing.T) {
	term, screen := newTestTerminal(t, config.ApplyRetarget)
	term.handleKey(tcell.KeyRune, ' ') // stop so the ball stays put

	term.step()

	b := term.sim.Population().Ball(0)
	x, y := term.cellOf(b.X, b.Y)
	mainc, _, _, _ := screen.GetContent(x, y)
	if mainc != ballRune {
		t.Fatalf("cell (%d, %d) = %q, want ball", x, y, mainc)
	}

	ox, oy := term.origin()
	if ox != (100-40)/2 || oy != headerRows+(40-headerRows-1-20)/2 {
		t.Fatalf("origin = (%d, %d)", ox, oy)
	}
}

func TestPutClipsToScreen(t *testing.T) {
	term, _ := newTestTerminal(t, config.ApplyRetarget)
	term.put(-1, 0, 'x', tcell.StyleDefault)
	term.put(0, 1000, 'x', tcell.StyleDefault)
}
