package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

func writeTone(t *testing.T, rate beep.SampleRate) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Take(256, constant(0.25)), format); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("la la"), 0o644); err != nil {
		t.Fatal(err)
	}
	a := newAmbient()
	if err := a.open(path); !errors.Is(err, errUnsupported) {
		t.Fatalf("open = %v, want errUnsupported", err)
	}
	if a.ctrl != nil || a.speakerReady {
		t.Error("failed open touched the speaker state")
	}
}

func TestOpenFailedReinitDropsTrack(t *testing.T) {
	errNoDevice := errors.New("no audio device")
	calls := 0
	a := &ambient{
		speakerReady: true,
		format:       beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2},
		ctrl:         &beep.Ctrl{Streamer: constant(0)},
		tap:          newPulseTap(constant(0.5), 8),
		level:        0.75,
		initSpeaker: func(beep.SampleRate, int) error {
			calls++
			return errNoDevice
		},
	}

	err := a.open(writeTone(t, 22050))
	if !errors.Is(err, errNoDevice) {
		t.Fatalf("open = %v, want %v", err, errNoDevice)
	}
	if calls != 1 {
		t.Errorf("initSpeaker called %d times, want 1", calls)
	}
	if a.ctrl != nil || a.tap != nil {
		t.Errorf("stale track kept after failed reinit: ctrl=%v tap=%v", a.ctrl, a.tap)
	}
	if a.level != 0 || a.gain() != 1 {
		t.Errorf("level = %v gain = %v, want silence", a.level, a.gain())
	}
	if a.speakerReady {
		t.Error("speaker still marked ready after failed reinit")
	}

	// toggling afterwards must not reach for the dropped ctrl
	a.toggleMute()
	a.update()
}
