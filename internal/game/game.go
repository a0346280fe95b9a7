package game

import (
	"fmt"
	"image"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/frame"
)

// signals is what one Update observed from the window.
type signals struct {
	hidden      bool
	cursor      image.Point
	quit        bool
	openTrack   bool
	toggleAudio bool
}

// Game hosts the particle field inside an ebiten window. Update, Draw and
// Layout all run on the ebiten game loop, so the field needs no locking.
type Game struct {
	app  config.App
	fp   field.Params
	seed int64

	field  field.Field
	sized  bool
	width  int
	height int

	frames *frame.Queue
	loop   *frame.Loop
	target field.Surface

	hidden     bool
	cursor     image.Point
	cursorSeen bool

	countdown *countdown
	audio     *ambient
}

// NewGame builds the host. now is injectable for the countdown; nil means
// time.Now.
func NewGame(app config.App, now func() time.Time) (*Game, error) {
	if err := app.Validate(); err != nil {
		return nil, err
	}
	fp, err := app.Params()
	if err != nil {
		return nil, err
	}
	start, err := app.EventStart()
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	seed := app.Seed
	if seed == 0 {
		seed = now().UnixNano()
	}

	g := &Game{
		app:       app,
		fp:        fp,
		seed:      seed,
		frames:    frame.NewQueue(),
		countdown: newCountdown(start, config.CountdownRefresh, now),
		audio:     newAmbient(),
	}
	// no surface until the first layout
	g.field = field.Initialize(0, 0, fp, seed)
	g.loop = frame.NewLoop(g.frames, g.tick)
	g.loop.Start()
	return g, nil
}

// LoadAmbient starts the optional ambient track. Failures are kept for the
// status line; the field keeps running.
func (g *Game) LoadAmbient(path string) {
	if path == "" {
		return
	}
	if err := g.audio.open(path); err != nil {
		log.Printf("ambient track: %v", err)
		g.audio.lastErr = err
	}
}

// Close releases audio resources.
func (g *Game) Close() {
	g.audio.close()
	log.Printf("particle field: %d ticks", g.loop.Ticks())
}

func (g *Game) tick() {
	g.field = field.Step(g.field, config.FrameDelta)
	g.render(g.target)
}

func (g *Game) render(s field.Surface) {
	f := g.field
	if gain := g.audio.gain(); gain != 1 {
		f = f.WithLinkGain(gain)
	}
	field.Render(f, s)
}

func (g *Game) Update() error {
	hidden := ebiten.IsWindowMinimized() || (g.app.PauseUnfocused && !ebiten.IsFocused())
	x, y := ebiten.CursorPosition()

	return g.handle(signals{
		hidden:      hidden,
		cursor:      image.Pt(x, y),
		quit:        inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ),
		openTrack:   inpututil.IsKeyJustPressed(ebiten.KeyO),
		toggleAudio: inpututil.IsKeyJustPressed(ebiten.KeySpace),
	})
}

func (g *Game) handle(s signals) error {
	if s.quit {
		return ebiten.Termination
	}

	if s.hidden != g.hidden {
		g.hidden = s.hidden
		g.loop.SetHidden(s.hidden)
		g.audio.setHidden(s.hidden)
	}

	if !g.cursorSeen || s.cursor != g.cursor {
		if g.cursorSeen {
			g.field = field.Attract(g.field, float64(s.cursor.X), float64(s.cursor.Y))
		}
		g.cursor = s.cursor
		g.cursorSeen = true
	}

	if s.openTrack {
		if err := g.audio.pick(); err != nil {
			g.audio.lastErr = err
		}
	}
	if s.toggleAudio {
		g.audio.toggleMute()
	}

	g.audio.update()
	g.countdown.update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if screen != nil {
		g.drawField(&screenSurface{dst: screen})
	}
	g.drawOverlay(screen)
}

// drawField runs the pending tick against s. Without one, as while hidden,
// the last state is drawn again unchanged because ebiten clears the screen
// every frame.
func (g *Game) drawField(s field.Surface) {
	g.target = s
	ran := g.frames.Flush()
	g.target = nil
	if ran == 0 {
		g.render(s)
	}
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	ebitenutil.DebugPrintAt(screen, "MECHOVATE 1.0  "+g.countdown.String(), 12, 12)
	ebitenutil.DebugPrintAt(screen, "Register: "+config.RegistrationURL, 12, 28)
	if status := g.status(); status != "" {
		ebitenutil.DebugPrintAt(screen, status, 12, g.height-24)
	}
}

func (g *Game) status() string {
	switch {
	case g.audio.lastErr != nil:
		return "Ambient track error: " + g.audio.lastErr.Error()
	case g.audio.ctrl == nil:
		return ""
	case g.audio.muted:
		return "Ambient muted - Space to resume"
	default:
		return fmt.Sprintf("Ambient pulse %.2f - Space to mute", g.audio.level)
	}
}

// Layout tracks the window size. The first positive size creates the
// field; later ones only move its bounds.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, 1), max(outsideHeight, 1)
	if outsideWidth == g.width && outsideHeight == g.height {
		return w, h
	}
	g.width, g.height = outsideWidth, outsideHeight
	// minimized windows may report nothing to draw on
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return w, h
	}

	if !g.sized {
		g.field = field.Initialize(float64(outsideWidth), float64(outsideHeight), g.fp, g.seed)
		g.sized = true
		log.Printf("particle field: %d particles on %dx%d", g.field.Len(), outsideWidth, outsideHeight)
	} else {
		g.field = field.Resize(g.field, float64(outsideWidth), float64(outsideHeight))
	}
	return w, h
}
