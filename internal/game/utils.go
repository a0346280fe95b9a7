package game

import (
	"fmt"
	"image/color"
	"time"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// withAlpha applies a global opacity on top of c, the way a canvas
// globalAlpha would.
func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(clamp01(alpha) * float64(c.A))}
}

// formatCountdown formats the time left as DDd HHh MMm SSs. Anything already
// past reads as all zeros.
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d / (24 * time.Hour))
	hours := int(d/time.Hour) % 24
	minutes := int(d/time.Minute) % 60
	seconds := int(d/time.Second) % 60
	return fmt.Sprintf("%02dd %02dh %02dm %02ds", days, hours, minutes, seconds)
}
