package game

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
)

// drawCounter is a field.Surface that only counts calls.
type drawCounter struct {
	clears, circles, lines int
}

func (d *drawCounter) Clear() { d.clears++ }

func (d *drawCounter) FillCircle(x, y, r float64, c color.RGBA, alpha float64) { d.circles++ }

func (d *drawCounter) StrokeLine(x0, y0, x1, y1, w float64, c color.RGBA, alpha float64) {
	d.lines++
}

var eventStart = time.Date(2026, 2, 26, 9, 0, 0, 0, time.Local)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	app := config.Default()
	app.Seed = 99
	app.Count = 20
	g, err := NewGame(app, fixedClock(eventStart.Add(-time.Hour)))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func TestNewGameRejectsBadConfig(t *testing.T) {
	app := config.Default()
	app.Preset = "nope"
	if _, err := NewGame(app, nil); !errors.Is(err, config.ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestFieldWaitsForSurface(t *testing.T) {
	g := newTestGame(t)

	if !g.field.Disabled {
		t.Fatal("field should be disabled before the first layout")
	}
	if !g.loop.Running() {
		t.Fatal("loop should start on load")
	}

	g.Layout(0, 0)
	d := &drawCounter{}
	g.drawField(d)
	if d.clears+d.circles+d.lines != 0 {
		t.Errorf("drew without a surface: %+v", d)
	}

	g.Layout(640, 480)
	if g.field.Disabled || g.field.Len() != 20 {
		t.Fatalf("field not created on first layout: disabled=%v len=%d", g.field.Disabled, g.field.Len())
	}

	g.drawField(d)
	if d.clears != 1 || d.circles != 20 {
		t.Errorf("one tick should clear once and draw 20 bodies, got %+v", d)
	}
}

func TestLayoutResizeKeepsParticles(t *testing.T) {
	g := newTestGame(t)
	g.Layout(640, 480)
	before := append([]field.Particle(nil), g.field.Particles...)

	w, h := g.Layout(320, 200)
	if w != 320 || h != 200 {
		t.Errorf("Layout returned %dx%d", w, h)
	}
	if g.field.Width != 320 || g.field.Height != 200 {
		t.Errorf("bounds = %vx%v, want 320x200", g.field.Width, g.field.Height)
	}
	for i := range before {
		if g.field.Particles[i] != before[i] {
			t.Fatalf("particle %d moved on resize", i)
		}
	}

	if w, h := g.Layout(0, 0); w != 1 || h != 1 {
		t.Errorf("empty layout should still report a drawable size, got %dx%d", w, h)
	}
	if g.field.Width != 320 {
		t.Errorf("zero layout changed bounds to %v", g.field.Width)
	}
}

func TestHiddenStopsTicks(t *testing.T) {
	g := newTestGame(t)
	g.Layout(640, 480)
	d := &drawCounter{}

	if err := g.handle(signals{hidden: true}); err != nil {
		t.Fatal(err)
	}
	if g.loop.Running() {
		t.Fatal("loop still running while hidden")
	}
	ticks := g.loop.Ticks()
	g.drawField(d)
	if g.loop.Ticks() != ticks {
		t.Fatalf("ticked while hidden")
	}

	_ = g.handle(signals{hidden: false})
	_ = g.handle(signals{hidden: false})
	g.drawField(d)
	g.drawField(d)
	if got := g.loop.Ticks() - ticks; got != 2 {
		t.Errorf("ticks after show = %d, want 2", got)
	}
}

func TestHiddenKeepsLastFrame(t *testing.T) {
	g := newTestGame(t)
	g.Layout(640, 480)
	g.drawField(&drawCounter{})

	_ = g.handle(signals{hidden: true})
	before := append([]field.Particle(nil), g.field.Particles...)

	for i := 0; i < 3; i++ {
		d := &drawCounter{}
		g.drawField(d)
		if d.clears != 1 || d.circles != 20 {
			t.Fatalf("hidden frame %d drew %+v, want 1 clear and 20 bodies", i, d)
		}
	}
	for i := range before {
		if g.field.Particles[i] != before[i] {
			t.Fatalf("particle %d moved while hidden", i)
		}
	}
}

func TestCursorMoveAttracts(t *testing.T) {
	g := newTestGame(t)
	g.Layout(640, 480)
	g.field.Particles = []field.Particle{{X: 150, Y: 100, Alpha: 0.5}}

	_ = g.handle(signals{cursor: image.Pt(100, 100)})
	if v := g.field.Particles[0].VX; v != 0 {
		t.Fatalf("first cursor sample should not attract, vx=%v", v)
	}

	_ = g.handle(signals{cursor: image.Pt(100, 100)})
	if v := g.field.Particles[0].VX; v != 0 {
		t.Fatalf("stationary cursor attracted, vx=%v", v)
	}

	_ = g.handle(signals{cursor: image.Pt(101, 100)})
	if v := g.field.Particles[0].VX; v >= 0 {
		t.Errorf("particle should be pulled toward the cursor, vx=%v", v)
	}
}

func TestQuit(t *testing.T) {
	g := newTestGame(t)
	if err := g.handle(signals{quit: true}); !errors.Is(err, ebiten.Termination) {
		t.Errorf("quit returned %v", err)
	}
}

func TestStatusWithoutTrack(t *testing.T) {
	g := newTestGame(t)
	if s := g.status(); s != "" {
		t.Errorf("status without track = %q", s)
	}

	g.LoadAmbient("/definitely/missing.wav")
	if g.audio.lastErr == nil {
		t.Fatal("expected load error")
	}
	if s := g.status(); s == "" {
		t.Error("status should report the load error")
	}
	if !g.loop.Running() {
		t.Error("audio failure stopped the field")
	}
}
