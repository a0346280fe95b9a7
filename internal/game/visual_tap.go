package game

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// pulseTap wraps a beep.Streamer and keeps the most recent samples in a ring
// so the render side can read how loud the ambient track currently is.
// Stream runs on the speaker goroutine, level on the game loop.
type pulseTap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	filled    int
	mu        sync.RWMutex
}

func newPulseTap(src beep.Streamer, ringSize int) *pulseTap {
	return &pulseTap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *pulseTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	t.record(samples[:n])
	return n, ok
}

// record copies the tail of played into the ring, wrapping at most once.
func (t *pulseTap) record(played [][2]float64) {
	if len(played) == 0 {
		return
	}
	size := len(t.buffer)
	if len(played) > size {
		played = played[len(played)-size:]
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	head := copy(t.buffer[t.nextIndex:], played)
	tail := copy(t.buffer, played[head:])
	if tail > 0 {
		t.nextIndex = tail
	} else {
		t.nextIndex = (t.nextIndex + head) % size
	}
	t.filled = min(t.filled+len(played), size)
}

func (t *pulseTap) Err() error { return t.Source.Err() }

// level returns the compressed RMS of the last n mono-mixed samples, in [0, 1].
func (t *pulseTap) level(n int) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = min(n, t.filled)
	if n == 0 {
		return 0
	}

	var sumSquares float64
	idx := t.nextIndex
	for i := 0; i < n; i++ {
		idx--
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
		mono := (t.buffer[idx][0] + t.buffer[idx][1]) * 0.5
		sumSquares += mono * mono
	}
	rms := math.Sqrt(sumSquares / float64(n))
	return clamp01(math.Pow(rms, 0.3))
}
