package field

import (
	"image/color"
	"math"
)

// Surface is a 2D raster the field draws on. alpha is the global opacity
// applied on top of c, in [0, 1].
type Surface interface {
	Clear()
	FillCircle(x, y, r float64, c color.RGBA, alpha float64)
	StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA, alpha float64)
}

// Link is a line between particles I and J, I < J.
type Link struct {
	I, J     int
	Distance float64
	Opacity  float64
}

// Links returns every pair of particles closer than LinkThreshold, in the
// order they are drawn.
func Links(f Field) []Link {
	t := f.Params.LinkThreshold
	if f.Disabled || t <= 0 {
		return nil
	}

	var links []Link
	ps := f.Particles
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			d := math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)
			if d >= t {
				continue
			}
			links = append(links, Link{
				I:        i,
				J:        j,
				Distance: d,
				Opacity:  (t - d) / t * f.Params.LinkAlphaScale,
			})
		}
	}
	return links
}

// Render clears s and draws the field: links first so they sit under the
// particle bodies, then bodies in slice order.
func Render(f Field, s Surface) {
	if f.Disabled || s == nil {
		return
	}
	s.Clear()

	ps := f.Particles
	for _, l := range Links(f) {
		a, b := ps[l.I], ps[l.J]
		s.StrokeLine(a.X, a.Y, b.X, b.Y, f.Params.LinkWidth, a.Color, l.Opacity)
	}
	for _, p := range ps {
		s.FillCircle(p.X, p.Y, p.Radius, p.Color, p.Alpha)
	}
}
