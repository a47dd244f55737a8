package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/circle-bounce/internal/config"
	"github.com/iburimskiy/circle-bounce/internal/control"
	"github.com/iburimskiy/circle-bounce/internal/game"
	"github.com/iburimskiy/circle-bounce/internal/log"
	"github.com/iburimskiy/circle-bounce/internal/render"
	"github.com/iburimskiy/circle-bounce/internal/sim"
	"github.com/iburimskiy/circle-bounce/internal/sound"
	"github.com/iburimskiy/circle-bounce/internal/term"
)

var (
	configPath = flag.String("config", "", "path to a TOML settings file")
	frontend   = flag.String("frontend", "", `"window" or "terminal"`)
	applyMode  = flag.String("mode", "", `apply behaviour: "retarget" keeps the balls, "reset" clears them`)
	circleSize = flag.Int("circle", 0, "circle diameter")
	ballSize   = flag.Int("ball", 0, "ball diameter")
	ballSpeed  = flag.Int("speed", 0, "ball speed per frame")
	soundName  = flag.String("sound", "", `initial bounce sound, or "none"`)
	soundDir   = flag.String("sound-dir", "", "directory holding the bounce sounds")
	soundOn    = flag.Bool("sound-on", false, "start with sound enabled")
	logLevel   = flag.String("log-level", "", "debug, info, error or none")
	logFile    = flag.String("log-file", "", "write logs to this file")
	seed       = flag.Int64("seed", 0, "random seed, 0 picks one from the clock")
)

func loadSettings() (config.Settings, error) {
	s, err := config.Load(*configPath)
	if err != nil {
		return s, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "frontend":
			s.Frontend = *frontend
		case "mode":
			s.ApplyMode = *applyMode
		case "circle":
			s.CircleSize = *circleSize
		case "ball":
			s.BallSize = *ballSize
		case "speed":
			s.BallSpeed = *ballSpeed
		case "sound":
			s.Sound = *soundName
		case "sound-dir":
			s.SoundDir = *soundDir
		case "sound-on":
			s.SoundEnabled = *soundOn
		case "log-level":
			s.LogLevel = *logLevel
		case "log-file":
			s.LogFile = *logFile
		case "seed":
			s.Seed = *seed
		}
	})
	return s, s.Validate()
}

// openLog picks the log destination. The terminal frontend owns the tty, so
// without a log file its output is dropped.
func openLog(s config.Settings) (io.Writer, func(), error) {
	if s.LogFile != "" {
		f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}
	if s.Frontend == config.FrontendTerminal {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}

func run() error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	out, closeLog, err := openLog(settings)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := log.New(out, log.LevelFromString(settings.LogLevel))

	if settings.Seed == 0 {
		settings.Seed = time.Now().UnixNano()
	}
	logger.Debugf("seed %d", settings.Seed)

	meter := sound.NewMeter(config.LevelRingSize)
	var player sound.Player = sound.Mute{}
	spk := sound.NewSpeaker(sound.SampleRate)
	if err := spk.Init(); err != nil {
		// Non-fatal, the toy runs silently.
		logger.Errorf("audio unavailable: %v", err)
	} else {
		defer spk.Close()
		player = spk
	}
	library := sound.NewLibrary(settings.SoundDir, sound.SampleRate, settings.Volume, player, meter)

	board := render.NewBoard()
	simulation := sim.New(sim.Options{
		Renderer:     board,
		Sounds:       library,
		Rand:         rand.New(rand.NewSource(settings.Seed)),
		Logger:       logger.Named("sim"),
		Mode:         settings.ApplyMode,
		CircleSize:   float64(settings.CircleSize),
		BallSize:     float64(settings.BallSize),
		BallSpeed:    float64(settings.BallSpeed),
		Sound:        settings.Sound,
		SoundEnabled: settings.SoundEnabled,
	})
	panel := control.NewPanel(settings)

	logger.Infof("starting %s frontend, circle %d ball %d speed %d, %s mode",
		settings.Frontend, settings.CircleSize, settings.BallSize, settings.BallSpeed, settings.ApplyMode)

	if settings.Frontend == config.FrontendTerminal {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		t, err := term.New(screen, simulation, board, panel, meter, logger.Named("term"))
		if err != nil {
			return err
		}
		defer t.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return t.Run(ctx)
	}

	return game.Run(game.NewGame(simulation, board, panel, meter, logger.Named("game")))
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "circle-bounce: %v\n", err)
		os.Exit(1)
	}
}
