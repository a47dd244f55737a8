package sound

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/circle-bounce/internal/sim"
)

const SampleRate = beep.SampleRate(44100)

var ErrUnsupportedFormat = errors.New("unsupported sound format")

// Player is the playback backend. Speaker drives the real audio device.
type Player interface {
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

// Speaker plays through the beep speaker.
type Speaker struct {
	rate beep.SampleRate
}

func NewSpeaker(rate beep.SampleRate) *Speaker {
	return &Speaker{rate: rate}
}

func (s *Speaker) Init() error {
	if err := speaker.Init(s.rate, s.rate.N(time.Second/20)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	return nil
}

func (s *Speaker) Play(st beep.Streamer) { speaker.Play(st) }
func (s *Speaker) Lock()                 { speaker.Lock() }
func (s *Speaker) Unlock()               { speaker.Unlock() }

func (s *Speaker) Close() {
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	speaker.Close()
}

// Mute swallows playback, used when no audio device is available.
type Mute struct{}

func (Mute) Play(beep.Streamer) {}
func (Mute) Lock()              {}
func (Mute) Unlock()            {}

// Library decodes sound files from a directory, resampled to one rate and
// cached by name.
type Library struct {
	dir    string
	rate   beep.SampleRate
	volume float64
	player Player
	meter  *Meter
	cache  map[string]*beep.Buffer
}

func NewLibrary(dir string, rate beep.SampleRate, volume float64, p Player, m *Meter) *Library {
	return &Library{
		dir:    dir,
		rate:   rate,
		volume: volume,
		player: p,
		meter:  m,
		cache:  make(map[string]*beep.Buffer),
	}
}

// Load satisfies sim.SoundLoader.
func (l *Library) Load(name string) (sim.Sound, error) {
	c, err := l.LoadClip(name)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// LoadClip returns a fresh clip for name. Decoded audio is shared between
// clips of the same name.
func (l *Library) LoadClip(name string) (*Clip, error) {
	buf, ok := l.cache[name]
	if !ok {
		var err error
		buf, err = l.decode(name)
		if err != nil {
			return nil, err
		}
		l.cache[name] = buf
	}
	return &Clip{buffer: buf, volume: l.volume, player: l.player, meter: l.meter}, nil
}

func (l *Library) decode(name string) (*beep.Buffer, error) {
	path := filepath.Join(l.dir, filepath.Base(name))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != l.rate {
		src = beep.Resample(4, format.SampleRate, l.rate, streamer)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: l.rate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buf, nil
}

// Clip is one loaded bounce sound.
type Clip struct {
	buffer  *beep.Buffer
	volume  float64
	player  Player
	meter   *Meter
	current *beep.Ctrl
}

// Replay cuts off the previous playback, if any, and starts the clip from
// the beginning.
func (c *Clip) Replay() {
	var s beep.Streamer = &effects.Volume{
		Streamer: c.buffer.Streamer(0, c.buffer.Len()),
		Base:     2,
		Volume:   math.Log2(c.volume),
		Silent:   c.volume == 0,
	}
	if c.meter != nil {
		s = c.meter.Tap(s)
	}
	next := &beep.Ctrl{Streamer: s}

	c.player.Lock()
	if c.current != nil {
		c.current.Streamer = nil
	}
	c.current = next
	c.player.Unlock()

	c.player.Play(next)
}

// Len is the clip length in samples.
func (c *Clip) Len() int { return c.buffer.Len() }
