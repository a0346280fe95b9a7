package config

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/iburimskiy/particle-field/internal/field"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "Mechovate 1.0 - Esc/Q: Quit, O: ambient track, Space: mute"

	VisualRingSize  = 8192
	SmoothingFactor = 0.6
	PulseStrength   = 1.5

	// Frame step at 60 TPS, in the units particle velocities are expressed in
	FrameDelta = 1.0

	CountdownRefresh = time.Second

	RegistrationURL = "https://forms.gle/Y1KyWAG7v9MdwnLq6"
	EventLayout     = "2006-01-02T15:04:05"
	DefaultEvent    = "2026-02-26T09:00:00"
)

var ErrUnknownPreset = errors.New("unknown preset")

var (
	Cyan    = color.RGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff}
	Magenta = color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}
	Teal    = color.RGBA{R: 6, G: 182, B: 212, A: 0xff}
)

// Script is the plain page backdrop: a dense cyan/magenta field bouncing off
// the edges, shimmering, and drawn toward the cursor.
func Script() field.Params {
	return field.Params{
		Count:           100,
		LinkThreshold:   100,
		LinkAlphaScale:  0.2,
		LinkWidth:       1,
		Palette:         []color.RGBA{Cyan, Magenta},
		Boundary:        field.Reflect,
		RadiusMin:       1,
		RadiusSpread:    2,
		SpeedSpread:     0.5,
		AlphaInitMin:    0.2,
		AlphaInitSpread: 0.5,
		AlphaMin:        0.1,
		AlphaMax:        0.8,
		AlphaJitter:     0.02,
		PointerRadius:   100,
		PointerForce:    0.01,
	}
}

// Component is the single colour variant with wider links where particles
// respawn instead of bouncing.
func Component() field.Params {
	return field.Params{
		Count:           80,
		LinkThreshold:   120,
		LinkAlphaScale:  0.15,
		LinkWidth:       0.5,
		Palette:         []color.RGBA{Teal},
		Boundary:        field.Reset,
		RadiusMin:       0.5,
		RadiusSpread:    2,
		SpeedSpread:     0.5,
		AlphaInitMin:    0.2,
		AlphaInitSpread: 0.5,
		AlphaMin:        0.1,
		AlphaMax:        0.8,
		PointerRadius:   100,
	}
}

func Preset(name string) (field.Params, error) {
	switch name {
	case "script", "":
		return Script(), nil
	case "component":
		return Component(), nil
	}
	return field.Params{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// App is everything main collects from the command line.
type App struct {
	Preset         string
	Count          int
	Width, Height  int
	Seed           int64
	AudioPath      string
	PauseUnfocused bool
	MaxSpeed       float64
	Event          string
}

func Default() App {
	return App{
		Preset:         "script",
		Width:          WindowWidth,
		Height:         WindowHeight,
		PauseUnfocused: true,
		Event:          DefaultEvent,
	}
}

// Params resolves the preset and applies overrides.
func (a App) Params() (field.Params, error) {
	p, err := Preset(a.Preset)
	if err != nil {
		return p, err
	}
	if a.Count > 0 {
		p.Count = a.Count
	}
	if a.MaxSpeed > 0 {
		p.MaxSpeed = a.MaxSpeed
	}
	return p, nil
}

// EventStart parses Event in the local zone.
func (a App) EventStart() (time.Time, error) {
	t, err := time.ParseInLocation(EventLayout, a.Event, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("event start %q: %w", a.Event, err)
	}
	return t, nil
}

func (a App) Validate() error {
	if _, err := a.Params(); err != nil {
		return err
	}
	if a.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", a.Count)
	}
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", a.Width, a.Height)
	}
	if a.MaxSpeed < 0 {
		return fmt.Errorf("max speed must not be negative, got %v", a.MaxSpeed)
	}
	if _, err := a.EventStart(); err != nil {
		return err
	}
	return nil
}
