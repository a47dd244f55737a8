package sound

import (
	"math"
	"sync"

	"github.com/faiface/beep"

	"github.com/iburimskiy/circle-bounce/internal/config"
)

// Meter records the most recently played samples into a ring buffer so the
// frontends can pulse the boundary with the bounce sound.
type Meter struct {
	mu        sync.RWMutex
	buffer    [][2]float64
	nextIndex int
	written   int // samples written since the last Update

	level float64 // smoothed, only touched by the loop goroutine
}

func NewMeter(ringSize int) *Meter {
	return &Meter{buffer: make([][2]float64, ringSize)}
}

// Tap wraps src so everything it streams is recorded.
func (m *Meter) Tap(src beep.Streamer) beep.Streamer {
	return &tap{source: src, meter: m}
}

type tap struct {
	source beep.Streamer
	meter  *Meter
}

func (t *tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.source.Stream(samples)
	if n > 0 {
		t.meter.record(samples[:n])
	}
	return n, ok
}

func (t *tap) Err() error { return t.source.Err() }

func (m *Meter) record(samples [][2]float64) {
	m.mu.Lock()
	for _, s := range samples {
		m.buffer[m.nextIndex] = s
		m.nextIndex++
		if m.nextIndex >= len(m.buffer) {
			m.nextIndex = 0
		}
	}
	m.written += len(samples)
	m.mu.Unlock()
}

// snapshot returns up to the last n samples, oldest first, and the number of
// samples written since the previous snapshot.
func (m *Meter) snapshot(n int) ([][2]float64, int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fresh := m.written
	m.written = 0
	n = min(n, fresh, len(m.buffer))

	out := make([][2]float64, n)
	idx := m.nextIndex - n
	if idx < 0 {
		idx += len(m.buffer)
	}
	for i := range out {
		out[i] = m.buffer[idx]
		idx++
		if idx >= len(m.buffer) {
			idx = 0
		}
	}
	return out, fresh
}

// Update folds the samples played since the last call into the smoothed
// level and returns it, in [0, 1]. Call once per frame.
func (m *Meter) Update() float64 {
	samples, _ := m.snapshot(len(m.buffer))

	var mag float64
	if len(samples) > 0 {
		var sumSquares float64
		for _, s := range samples {
			mono := (s[0] + s[1]) * 0.5
			sumSquares += mono * mono
		}
		rms := math.Sqrt(sumSquares / float64(len(samples)))
		mag = math.Pow(rms, 0.3)
	}

	m.level = config.SmoothingFactor*m.level + (1-config.SmoothingFactor)*mag
	if m.level > 1 {
		m.level = 1
	}
	return m.level
}

// Level is the value computed by the last Update.
func (m *Meter) Level() float64 { return m.level }
