package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/game"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("particlefield: ")

	app := config.Default()
	flag.StringVar(&app.Preset, "preset", app.Preset, "field flavour: script or component")
	flag.IntVar(&app.Count, "count", 0, "particle count (0 keeps the preset's)")
	flag.IntVar(&app.Width, "width", app.Width, "initial window width")
	flag.IntVar(&app.Height, "height", app.Height, "initial window height")
	flag.Int64Var(&app.Seed, "seed", 0, "random seed (0 picks one from the clock)")
	flag.StringVar(&app.AudioPath, "audio", "", "ambient track to loop (wav, mp3 or flac)")
	flag.BoolVar(&app.PauseUnfocused, "pause-unfocused", app.PauseUnfocused, "stop animating while the window is unfocused")
	flag.Float64Var(&app.MaxSpeed, "max-speed", 0, "cap particle speed after cursor attraction (0 leaves it unbounded)")
	flag.StringVar(&app.Event, "event", app.Event, "countdown target, local time "+config.EventLayout)
	flag.Parse()

	g, err := game.NewGame(app, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()
	g.LoadAmbient(app.AudioPath)

	ebiten.SetWindowSize(app.Width, app.Height)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// visibility is handled by the frame loop, keep Update running
	ebiten.SetRunnableOnUnfocused(true)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
