package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768

	// Space reserved around the boundary when clamping its diameter to the viewport.
	ViewportMarginX = 60
	ViewportMarginY = 160

	// Button dimensions
	ButtonWidth  = 110
	ButtonHeight = 32
	ButtonX      = 12
	ButtonY      = 30
	ButtonGap    = 8

	// Simulation
	PopulationCap   = 500
	DuplicateSpeed  = 2.0 // duplicates draw dx, dy from [-DuplicateSpeed, DuplicateSpeed)
	SoundNone       = "none"
	LevelRingSize   = 4096
	SmoothingFactor = 0.6

	// Terminal frontend: boundary units covered by one cell.
	CellWidth  = 8
	CellHeight = 16

	ColorShiftSpeed = 0.01
)

// Apply modes.
const (
	ApplyRetarget = "retarget"
	ApplyReset    = "reset"
)

// Frontends.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
)

var ErrInvalid = errors.New("invalid configuration")

// Settings are the user-tunable values. They come from Default, an optional
// TOML file and command-line flags, in that order.
type Settings struct {
	CircleSize   int      `toml:"circle_size"`
	BallSize     int      `toml:"ball_size"`
	BallSpeed    int      `toml:"ball_speed"`
	ApplyMode    string   `toml:"apply_mode"`
	SoundDir     string   `toml:"sound_dir"`
	Sounds       []string `toml:"sounds"`
	Sound        string   `toml:"sound"`
	SoundEnabled bool     `toml:"sound_enabled"`
	Volume       float64  `toml:"volume"`
	Frontend     string   `toml:"frontend"`
	LogLevel     string   `toml:"log_level"`
	LogFile      string   `toml:"log_file"`
	Seed         int64    `toml:"seed"`
}

func Default() Settings {
	return Settings{
		CircleSize: 400,
		BallSize:   20,
		BallSpeed:  3,
		ApplyMode:  ApplyRetarget,
		SoundDir:   "sounds",
		Sounds:     []string{"bounce.wav", "pop.mp3", "click.flac"},
		Sound:      SoundNone,
		Volume:     0.5,
		Frontend:   FrontendWindow,
		LogLevel:   "info",
	}
}

// Load reads a TOML file on top of Default. An empty path returns the
// defaults unchanged.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read config %s: %w", path, err)
	}
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return s, fmt.Errorf("%w: unknown key %q in %s", ErrInvalid, undecoded[0].String(), path)
	}
	return s, nil
}

func (s Settings) Validate() error {
	switch {
	case s.CircleSize <= 0:
		return fmt.Errorf("%w: circle_size must be positive, got %d", ErrInvalid, s.CircleSize)
	case s.BallSize <= 0:
		return fmt.Errorf("%w: ball_size must be positive, got %d", ErrInvalid, s.BallSize)
	case s.BallSpeed <= 0:
		return fmt.Errorf("%w: ball_speed must be positive, got %d", ErrInvalid, s.BallSpeed)
	case s.ApplyMode != ApplyRetarget && s.ApplyMode != ApplyReset:
		return fmt.Errorf("%w: apply_mode must be %q or %q, got %q", ErrInvalid, ApplyRetarget, ApplyReset, s.ApplyMode)
	case s.Frontend != FrontendWindow && s.Frontend != FrontendTerminal:
		return fmt.Errorf("%w: frontend must be %q or %q, got %q", ErrInvalid, FrontendWindow, FrontendTerminal, s.Frontend)
	case s.Volume < 0 || s.Volume > 1:
		return fmt.Errorf("%w: volume must be within [0, 1], got %g", ErrInvalid, s.Volume)
	}
	if s.Sound != SoundNone && !s.HasSound(s.Sound) {
		return fmt.Errorf("%w: sound %q is not one of %v", ErrInvalid, s.Sound, s.Sounds)
	}
	return nil
}

// SoundChoices is the enumerated selection offered to the user, "none" first.
func (s Settings) SoundChoices() []string {
	out := make([]string, 0, len(s.Sounds)+1)
	out = append(out, SoundNone)
	return append(out, s.Sounds...)
}

func (s Settings) HasSound(name string) bool {
	for _, n := range s.Sounds {
		if n == name {
			return true
		}
	}
	return false
}

// MaxCircle is the largest boundary diameter that fits a viewport.
func MaxCircle(viewportW, viewportH int) int {
	return min(viewportW-ViewportMarginX, viewportH-ViewportMarginY)
}
