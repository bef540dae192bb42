package gen

// Two-octave gradient noise over a unit square with caller-supplied corner gradients.
// The combined value lies in [-NoiseBound, NoiseBound].

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Octave compositing constants. combined = (FineWeight*fine + coarse) / Normalization.
const (
	FineWeight    = 0.5
	Normalization = 1.5
)

// NoiseBound is the largest magnitude one octave can reach with unit gradients
// (√2/2, at the square's center) carried through the octave compositing.
var NoiseBound = float32((FineWeight + 1) / Normalization * math.Sqrt2 / 2)

// GradientArc selects the range gradient angles are drawn from.
type GradientArc int

const (
	FullCircle GradientArc = iota // θ ∈ [0, 2π)
	HalfCircle                    // θ ∈ [0, π)
)

func (a GradientArc) String() string {
	if a == HalfCircle {
		return "half"
	}
	return "full"
}

// Fade is the quintic smoothstep 6t⁵ − 15t⁴ + 10t³.
func Fade(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}

// NoiseSquare returns gradient noise at p in [0,1]×[0,1].
// g holds the corner gradients in the order (0,0), (1,0), (0,1), (1,1).
func NoiseSquare(p mgl32.Vec2, g [4]mgl32.Vec2) float32 {
	inf0 := g[0].Dot(p)
	inf1 := g[1].Dot(p.Sub(mgl32.Vec2{1, 0}))
	inf2 := g[2].Dot(p.Sub(mgl32.Vec2{0, 1}))
	inf3 := g[3].Dot(p.Sub(mgl32.Vec2{1, 1}))

	u, v := Fade(p[0]), Fade(p[1])
	bot := lerp(inf0, inf1, u)
	top := lerp(inf2, inf3, u)
	return lerp(bot, top, v)
}

// CircleSample returns the unit vector at angle theta.
func CircleSample(theta float32) mgl32.Vec2 {
	s, c := math.Sincos(float64(theta))
	return mgl32.Vec2{float32(c), float32(s)}
}

// SampleGradient draws a uniformly distributed angle from r over arc and
// projects it onto the unit circle.
func SampleGradient(r *rand.Rand, arc GradientArc) mgl32.Vec2 {
	span := 2 * math.Pi
	if arc == HalfCircle {
		span = math.Pi
	}
	return CircleSample(float32(r.Float64() * span))
}

// lerp is exact at both ends, which keeps shared chunk edges bit-identical.
func lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}
