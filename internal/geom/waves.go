package geom

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"
)

// Waves animates ocean vertex heights with 3D simplex noise, using time as
// the third axis.
type Waves struct {
	noise     opensimplex.Noise
	Amplitude float64
	Scale     float64 // spatial frequency
	Speed     float64 // noise units per second
}

// NewWaves returns a wave field. An amplitude of 0 keeps the surface flat.
func NewWaves(seed int64, amplitude float64) *Waves {
	return &Waves{
		noise:     opensimplex.New(seed),
		Amplitude: amplitude,
		Scale:     0.15,
		Speed:     0.4,
	}
}

// Height returns the displacement at (x, z) after t seconds.
func (w *Waves) Height(x, z float32, t float64) float32 {
	if w.Amplitude == 0 {
		return 0
	}
	v := w.noise.Eval3(float64(x)*w.Scale, float64(z)*w.Scale, t*w.Speed)
	return float32(v * w.Amplitude)
}

// Displace writes base plus the wave height into the Y of every vertex in
// dst, taking X and Z from src. dst and src must have the same length.
func (w *Waves) Displace(dst, src []mgl32.Vec3, t float64) {
	for i, v := range src {
		dst[i] = mgl32.Vec3{v.X(), v.Y() + w.Height(v.X(), v.Z(), t), v.Z()}
	}
}
