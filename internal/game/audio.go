package game

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/particle-field/internal/config"
)

var errUnsupported = errors.New("unsupported file type")

// ambient plays an optional looping track whose loudness pulses the links.
type ambient struct {
	currentFile *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	tap         *pulseTap

	level  float64
	muted  bool
	hidden bool

	speakerReady bool
	lastErr      error

	// initSpeaker is speaker.Init unless replaced in tests.
	initSpeaker func(beep.SampleRate, int) error
}

func newAmbient() *ambient {
	return &ambient{initSpeaker: speaker.Init}
}

func (a *ambient) playing() bool { return a.ctrl != nil && !a.muted && !a.hidden }

// pick asks for a track with a native dialog. Cancelling is not an error.
func (a *ambient) pick() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Ambient Track"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return a.open(filename)
}

func decode(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(f.Name())); ext {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", errUnsupported, ext)
	}
}

// open replaces the current track with the one at path and starts looping it.
func (a *ambient) open(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open track: %w", err)
	}
	streamer, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !a.speakerReady:
		if err := a.initSpeaker(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		a.speakerReady = true
	case a.format.SampleRate != format.SampleRate:
		// the old track is gone from the mixer either way
		speaker.Clear()
		if err := a.initSpeaker(format.SampleRate, bufferSize); err != nil {
			a.closeCurrent()
			a.speakerReady = false
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("reinit speaker: %w", err)
		}
	default:
		speaker.Clear()
	}
	a.closeCurrent()

	t := newPulseTap(beep.Loop(-1, streamer), config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: t, Paused: a.muted || a.hidden}

	a.currentFile = f
	a.streamer = streamer
	a.format = format
	a.tap = t
	a.ctrl = ctrl
	a.lastErr = nil

	speaker.Play(ctrl)
	log.Printf("ambient track %s at %d Hz", filepath.Base(path), format.SampleRate)
	return nil
}

func (a *ambient) closeCurrent() {
	if a.streamer != nil {
		_ = a.streamer.Close()
		a.streamer = nil
	}
	if a.currentFile != nil {
		_ = a.currentFile.Close()
		a.currentFile = nil
	}
	a.ctrl = nil
	a.tap = nil
	a.level = 0
}

func (a *ambient) toggleMute() {
	a.muted = !a.muted
	a.applyPause()
}

// setHidden follows window visibility so nothing plays in the background.
func (a *ambient) setHidden(hidden bool) {
	a.hidden = hidden
	a.applyPause()
}

func (a *ambient) applyPause() {
	if a.ctrl == nil {
		return
	}
	speaker.Lock()
	a.ctrl.Paused = a.muted || a.hidden
	speaker.Unlock()
}

// update smooths the tap level toward the current loudness, or toward zero
// while paused.
func (a *ambient) update() {
	target := 0.0
	if a.playing() && a.tap != nil {
		target = a.tap.level(2048)
	}
	a.level = config.SmoothingFactor*a.level + (1-config.SmoothingFactor)*target
}

// gain is the link opacity multiplier for the current loudness.
func (a *ambient) gain() float64 {
	return 1 + a.level*config.PulseStrength
}

func (a *ambient) close() {
	if a.speakerReady {
		speaker.Clear()
	}
	a.closeCurrent()
}
