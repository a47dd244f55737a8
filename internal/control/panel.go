// Package control holds the settings form shared by the frontends and turns
// user actions into simulation commands.
package control

import (
	"math"
	"strconv"
	"strings"

	"github.com/iburimskiy/circle-bounce/internal/config"
	"github.com/iburimskiy/circle-bounce/internal/sim"
)

type Field int

const (
	FieldCircle Field = iota
	FieldBall
	FieldSpeed
)

func (f Field) String() string {
	switch f {
	case FieldCircle:
		return "Circle size"
	case FieldBall:
		return "Ball size"
	case FieldSpeed:
		return "Ball speed"
	default:
		return "Unknown"
	}
}

// Panel is the form state: the three numeric fields as typed, the sound
// selection and the viewport used to clamp the circle.
type Panel struct {
	fields    [3]string
	sound     string
	choices   []string
	viewportW int
	viewportH int
}

func NewPanel(s config.Settings) *Panel {
	return &Panel{
		fields: [3]string{
			strconv.Itoa(s.CircleSize),
			strconv.Itoa(s.BallSize),
			strconv.Itoa(s.BallSpeed),
		},
		sound:     s.Sound,
		choices:   s.SoundChoices(),
		viewportW: config.WindowWidth,
		viewportH: config.WindowHeight,
	}
}

func (p *Panel) Value(f Field) string { return p.fields[f] }

func (p *Panel) Set(f Field, text string) { p.fields[f] = text }

// Nudge adds delta to a field's numeric value. A field holding no number
// is left alone.
func (p *Panel) Nudge(f Field, delta int) {
	v := ParseInt(p.fields[f])
	if math.IsNaN(v) {
		return
	}
	n := int(v) + delta
	if n < 1 {
		n = 1
	}
	p.fields[f] = strconv.Itoa(n)
}

func (p *Panel) SetViewport(w, h int) {
	p.viewportW, p.viewportH = w, h
}

func (p *Panel) Viewport() (int, int) { return p.viewportW, p.viewportH }

// ApplyCommand parses the form. The circle is clamped to the viewport and
// the clamped value is written back into its field.
func (p *Panel) ApplyCommand() sim.Apply {
	circle := ParseInt(p.fields[FieldCircle])
	if maxAllowed := float64(config.MaxCircle(p.viewportW, p.viewportH)); circle > maxAllowed {
		circle = maxAllowed
		p.fields[FieldCircle] = strconv.Itoa(int(maxAllowed))
	}
	return sim.Apply{
		CircleSize: circle,
		BallSize:   ParseInt(p.fields[FieldBall]),
		BallSpeed:  ParseInt(p.fields[FieldSpeed]),
	}
}

func (p *Panel) Sound() string { return p.sound }

func (p *Panel) SoundChoices() []string { return p.choices }

// SelectSound accepts only names from the enumerated choices.
func (p *Panel) SelectSound(name string) (sim.SelectSound, bool) {
	for _, c := range p.choices {
		if c == name {
			p.sound = name
			return sim.SelectSound{Name: name}, true
		}
	}
	return sim.SelectSound{}, false
}

// CycleSound moves the selection to the next choice.
func (p *Panel) CycleSound() sim.SelectSound {
	next := 0
	for i, c := range p.choices {
		if c == p.sound {
			next = (i + 1) % len(p.choices)
			break
		}
	}
	p.sound = p.choices[next]
	return sim.SelectSound{Name: p.sound}
}

// ParseInt reads a leading base-10 integer the way a lenient form field
// does: surrounding spaces and trailing garbage are ignored, and input with
// no leading digits yields NaN.
func ParseInt(s string) float64 {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
