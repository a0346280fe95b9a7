package field

import (
	"image/color"
	"math"
	"math/rand"
)

// Boundary selects what happens to a particle that leaves the surface.
type Boundary int

const (
	// Reflect points the offending velocity component back inward.
	Reflect Boundary = iota
	// Reset respawns the particle at a fresh random position.
	Reset
)

// Params holds everything that differs between field flavours.
type Params struct {
	Count int

	LinkThreshold  float64
	LinkAlphaScale float64
	LinkWidth      float64

	Palette  []color.RGBA
	Boundary Boundary

	RadiusMin    float64
	RadiusSpread float64
	SpeedSpread  float64 // velocity components are drawn from [-SpeedSpread/2, SpeedSpread/2)

	AlphaInitMin    float64
	AlphaInitSpread float64
	AlphaMin        float64
	AlphaMax        float64
	AlphaJitter     float64

	PointerRadius float64
	PointerForce  float64

	// MaxSpeed caps velocity magnitude after pointer attraction. Zero leaves
	// velocity unbounded.
	MaxSpeed float64
}

// Particle is a single point light.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Alpha  float64
	Color  color.RGBA
}

// Field is the whole animator state. It is passed by value; operations return
// an updated copy.
type Field struct {
	Width, Height float64
	Particles     []Particle
	Params        Params

	// Disabled marks a field created without a drawable surface. Every
	// operation on it is a no-op.
	Disabled bool

	// Random draws are derived from seed and frame, so equal fields step
	// to equal results.
	seed  int64
	frame uint64
}

// source returns the random stream for the current frame.
func (f Field) source() *rand.Rand {
	mix := uint64(f.seed) ^ (f.frame+1)*0x9E3779B97F4A7C15
	return rand.New(rand.NewSource(int64(mix)))
}

// Initialize creates params.Count particles inside a width x height surface.
// A non-positive dimension means there is nothing to draw on and yields a
// disabled, empty field.
func Initialize(width, height float64, params Params, seed int64) Field {
	if width <= 0 || height <= 0 || params.Count <= 0 {
		return Field{Params: params, Disabled: true}
	}

	f := Field{
		Width:     width,
		Height:    height,
		Particles: make([]Particle, params.Count),
		Params:    params,
		seed:      seed,
	}
	rng := f.source()
	for i := range f.Particles {
		f.Particles[i] = f.spawn(rng)
	}
	f.frame++
	return f
}

func (f Field) spawn(rng *rand.Rand) Particle {
	p := f.Params
	c := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if len(p.Palette) > 0 {
		c = p.Palette[rng.Intn(len(p.Palette))]
	}
	return Particle{
		X:      rng.Float64() * f.Width,
		Y:      rng.Float64() * f.Height,
		VX:     (rng.Float64() - 0.5) * p.SpeedSpread,
		VY:     (rng.Float64() - 0.5) * p.SpeedSpread,
		Radius: rng.Float64()*p.RadiusSpread + p.RadiusMin,
		Alpha:  rng.Float64()*p.AlphaInitSpread + p.AlphaInitMin,
		Color:  c,
	}
}

// fromParticles builds a field around an existing particle set.
func fromParticles(width, height float64, params Params, particles []Particle, seed int64) Field {
	if width <= 0 || height <= 0 {
		return Field{Params: params, Disabled: true}
	}
	params.Count = len(particles)
	return Field{
		Width:     width,
		Height:    height,
		Particles: append([]Particle(nil), particles...),
		Params:    params,
		seed:      seed,
	}
}

// Len reports the number of particles.
func (f Field) Len() int { return len(f.Particles) }

// Step advances every particle by one frame. dt scales velocity, 1 being one
// 60Hz frame. Step is pure: f is left untouched and stepping the same field
// twice gives the same result.
func Step(f Field, dt float64) Field {
	if f.Disabled {
		return f
	}

	next := f
	next.Particles = make([]Particle, len(f.Particles))
	copy(next.Particles, f.Particles)
	next.frame++
	rng := f.source()

	for i := range next.Particles {
		p := &next.Particles[i]
		p.X += p.VX * dt
		p.Y += p.VY * dt

		switch f.Params.Boundary {
		case Reset:
			if p.X < 0 || p.X > f.Width || p.Y < 0 || p.Y > f.Height {
				*p = next.spawn(rng)
				continue
			}
		default:
			p.VX = reflect(p.X, f.Width, p.VX)
			p.VY = reflect(p.Y, f.Height, p.VY)
		}

		if f.Params.AlphaJitter != 0 {
			p.Alpha += (rng.Float64() - 0.5) * f.Params.AlphaJitter
		}
		p.Alpha = clamp(p.Alpha, f.Params.AlphaMin, f.Params.AlphaMax)
	}
	return next
}

// reflect returns v pointing back into [0, limit] when pos is outside it.
func reflect(pos, limit, v float64) float64 {
	if pos < 0 && v < 0 {
		return -v
	}
	if pos > limit && v > 0 {
		return -v
	}
	return v
}

// Resize changes the surface bounds. Particles keep their positions; those
// left outside come back through the boundary rule.
func Resize(f Field, width, height float64) Field {
	if f.Disabled || width <= 0 || height <= 0 {
		return f
	}
	f.Width = width
	f.Height = height
	return f
}

// Attract pulls every particle within PointerRadius of (x, y) toward it.
func Attract(f Field, x, y float64) Field {
	if f.Disabled || f.Params.PointerForce == 0 || f.Params.PointerRadius <= 0 {
		return f
	}

	next := f
	next.Particles = make([]Particle, len(f.Particles))
	copy(next.Particles, f.Particles)

	r := f.Params.PointerRadius
	for i := range next.Particles {
		p := &next.Particles[i]
		dx := x - p.X
		dy := y - p.Y
		d := math.Hypot(dx, dy)
		if d >= r || d == 0 {
			continue
		}
		force := (r - d) / r
		p.VX += dx / d * force * f.Params.PointerForce
		p.VY += dy / d * force * f.Params.PointerForce

		if limit := f.Params.MaxSpeed; limit > 0 {
			if s := math.Hypot(p.VX, p.VY); s > limit {
				p.VX *= limit / s
				p.VY *= limit / s
			}
		}
	}
	return next
}

// WithLinkGain returns f with its link opacity scaled by gain.
func (f Field) WithLinkGain(gain float64) Field {
	f.Params.LinkAlphaScale *= gain
	return f
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
