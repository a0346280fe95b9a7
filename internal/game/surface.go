package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Page background behind the field.
var background = color.RGBA{R: 2, G: 6, B: 23, A: 255}

// screenSurface draws the field onto an ebiten image with the vector package.
type screenSurface struct {
	dst *ebiten.Image
}

func (s *screenSurface) Clear() {
	s.dst.Fill(background)
}

func (s *screenSurface) FillCircle(x, y, r float64, c color.RGBA, alpha float64) {
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), withAlpha(c, alpha), true)
}

func (s *screenSurface) StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA, alpha float64) {
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), withAlpha(c, alpha), true)
}
