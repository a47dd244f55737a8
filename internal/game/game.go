package game

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/circle-bounce/internal/config"
	"github.com/iburimskiy/circle-bounce/internal/control"
	"github.com/iburimskiy/circle-bounce/internal/log"
	"github.com/iburimskiy/circle-bounce/internal/render"
	"github.com/iburimskiy/circle-bounce/internal/sim"
	"github.com/iburimskiy/circle-bounce/internal/sound"
)

const dialogTitle = "Circle Bounce"

// message is work handed back to the loop goroutine, typically a dialog
// result.
type message func(g *Game)

type button struct {
	label   func(g *Game) string
	action  func(g *Game)
	visible func(g *Game) bool
}

// Game is the ebiten frontend. All simulation access happens inside
// Update, on ebiten's game goroutine.
type Game struct {
	sim   *sim.Simulation
	board *render.Board
	panel *control.Panel
	meter *sound.Meter
	log   *log.Logger

	messages   chan message
	dialogOpen bool
	showError  func(msg string) error

	buttons []button
	hovered int
	pressed int

	width, height int
	level         float64
	colorPhase    float64
	lastErr       error
}

func NewGame(s *sim.Simulation, b *render.Board, p *control.Panel, m *sound.Meter, l *log.Logger) *Game {
	g := &Game{
		sim:      s,
		board:    b,
		panel:    p,
		meter:    m,
		log:      l,
		messages: make(chan message, 8),
		showError: func(msg string) error {
			return zenity.Error(msg, zenity.Title(dialogTitle), zenity.ErrorIcon)
		},
		hovered: -1,
		pressed: -1,
		width:   config.WindowWidth,
		height:  config.WindowHeight,
	}
	g.buttons = []button{
		{label: fieldLabel(control.FieldCircle), action: func(g *Game) { g.editField(control.FieldCircle) }},
		{label: fieldLabel(control.FieldBall), action: func(g *Game) { g.editField(control.FieldBall) }},
		{label: fieldLabel(control.FieldSpeed), action: func(g *Game) { g.editField(control.FieldSpeed) }},
		{label: func(g *Game) string { return "Sound..." }, action: (*Game).chooseSound},
		{label: func(g *Game) string { return "Apply" }, action: (*Game).apply},
		{label: func(g *Game) string {
			if g.sim.Running() {
				return "Stop"
			}
			return "Start"
		}, action: func(g *Game) { g.dispatch(sim.ToggleRunning{}) }},
		{label: func(g *Game) string {
			if g.sim.SoundEnabled() {
				return "Disable Sound"
			}
			return "Enable Sound"
		}, action: func(g *Game) { g.dispatch(sim.ToggleSound{}) }},
		{
			label:   func(g *Game) string { return "Clear" },
			action:  func(g *Game) { g.dispatch(sim.Clear{}) },
			visible: func(g *Game) bool { return g.sim.Mode() == config.ApplyReset },
		},
	}
	return g
}

func fieldLabel(f control.Field) func(g *Game) string {
	short := [...]string{"Circle", "Ball", "Speed"}[f]
	return func(g *Game) string { return short + ": " + g.panel.Value(f) }
}

func (g *Game) Update() error {
	g.drainMessages()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.handleButtons()
	g.handleKeys()

	g.sim.Tick()

	if g.meter != nil {
		g.level = g.meter.Update()
	}
	g.colorPhase += config.ColorShiftSpeed
	return nil
}

func (g *Game) drainMessages() {
	for {
		select {
		case m := <-g.messages:
			m(g)
		default:
			return
		}
	}
}

func (g *Game) handleButtons() {
	mouseX, mouseY := ebiten.CursorPosition()
	g.hovered = -1
	for i, b := range g.buttons {
		if b.visible != nil && !b.visible(g) {
			continue
		}
		if buttonRect(i).contains(mouseX, mouseY) {
			g.hovered = i
			break
		}
	}

	if g.hovered >= 0 && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pressed = g.hovered
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.pressed >= 0 && g.pressed == g.hovered {
			g.buttons[g.pressed].action(g)
		}
		g.pressed = -1
	}
}

func (g *Game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.dispatch(sim.ToggleRunning{})
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.apply()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.dispatch(sim.Clear{})
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.dispatch(sim.ToggleSound{})
	}
}

func (g *Game) apply() {
	g.dispatch(g.panel.ApplyCommand())
}

func (g *Game) dispatch(c sim.Command) {
	g.sim.Dispatch(c)

	switch c.(type) {
	case sim.ToggleSound, sim.SelectSound:
		name := g.sim.SelectedSound()
		if g.sim.SoundEnabled() && name != config.SoundNone && g.sim.ActiveSound() == nil {
			g.reportError(fmt.Errorf("could not load sound %q", name))
			return
		}
	}
	g.lastErr = nil
}

// reportError shows err in a dialog unless one is already open. The status
// line keeps the latest error either way.
func (g *Game) reportError(err error) {
	g.lastErr = err
	if g.dialogOpen {
		return
	}
	g.dialogOpen = true
	show, msg := g.showError, err.Error()
	go func() {
		_ = show(msg)
		g.messages <- func(g *Game) { g.dialogOpen = false }
	}()
}

// editField opens an entry dialog off the game goroutine; the answer comes
// back as a message.
func (g *Game) editField(f control.Field) {
	if g.dialogOpen {
		return
	}
	g.dialogOpen = true
	current := g.panel.Value(f)
	go func() {
		text, err := zenity.Entry(f.String()+":", zenity.Title(dialogTitle), zenity.EntryText(current))
		g.messages <- func(g *Game) {
			g.dialogOpen = false
			if err != nil {
				if !errors.Is(err, zenity.ErrCanceled) {
					g.lastErr = err
				}
				return
			}
			g.panel.Set(f, text)
		}
	}()
}

func (g *Game) chooseSound() {
	if g.dialogOpen {
		return
	}
	g.dialogOpen = true
	choices := g.panel.SoundChoices()
	current := g.panel.Sound()
	go func() {
		name, err := zenity.List("Bounce sound:", choices,
			zenity.Title(dialogTitle),
			zenity.DefaultItems(current),
			zenity.DisallowEmpty(),
		)
		g.messages <- func(g *Game) {
			g.dialogOpen = false
			if err != nil {
				if !errors.Is(err, zenity.ErrCanceled) {
					g.lastErr = err
				}
				return
			}
			if cmd, ok := g.panel.SelectSound(name); ok {
				g.dispatch(cmd)
			}
		}
	}()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 14, G: 16, B: 24, A: 255})

	g.drawBoundary(screen)
	g.drawBalls(screen)
	g.drawButtons(screen)
	g.drawStatus(screen)
}

func (g *Game) drawBoundary(screen *ebiten.Image) {
	d := g.board.Boundary()
	ox, oy := boundaryOrigin(g.width, g.height, d)
	r := d / 2
	stroke := 2 + 4*g.level
	vector.DrawFilledCircle(screen, float32(ox+r), float32(oy+r), float32(r), color.RGBA{R: 24, G: 28, B: 40, A: 255}, true)
	vector.StrokeCircle(screen, float32(ox+r), float32(oy+r), float32(r), float32(stroke), render.BoundaryColor(g.level), true)
}

func (g *Game) drawBalls(screen *ebiten.Image) {
	ox, oy := boundaryOrigin(g.width, g.height, g.board.Boundary())
	g.board.Each(func(s *render.Sprite) {
		if !s.Visible() {
			return
		}
		cx, cy := s.Centre()
		vector.DrawFilledCircle(screen, float32(ox+cx), float32(oy+cy), float32(s.Size/2), render.BallColor(s.ID, g.colorPhase), true)
	})
}

func (g *Game) drawButtons(screen *ebiten.Image) {
	for i, b := range g.buttons {
		if b.visible != nil && !b.visible(g) {
			continue
		}
		r := buttonRect(i)

		var bgColor color.Color
		switch {
		case g.pressed == i:
			bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255}
		case g.hovered == i:
			bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255}
		default:
			bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255}
		}
		vector.DrawFilledRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), bgColor, false)
		vector.StrokeRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), 2, color.RGBA{R: 150, G: 170, B: 200, A: 255}, false)

		text := b.label(g)
		textWidth := len(text) * 6 // debug font glyph width
		ebitenutil.DebugPrintAt(screen, text, r.x+(r.w-textWidth)/2, r.y+(r.h-16)/2)
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	state := "Stopped"
	if g.sim.Running() {
		state = "Running"
	}
	snd := "off"
	if g.sim.SoundEnabled() {
		snd = g.sim.SelectedSound()
	}
	status := fmt.Sprintf("%s | balls %d/%d | sound %s | Space start/stop, Enter apply, S sound, Esc quit",
		state, g.sim.Population().Len(), config.PopulationCap, snd)
	if g.sim.Mode() == config.ApplyReset {
		status += ", C clear"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 8)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.panel.SetViewport(outsideWidth, outsideHeight)
		g.log.Debugf("viewport %dx%d", outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Circle Bounce - Space: Start/Stop, Enter: Apply, Esc/Q: Quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
