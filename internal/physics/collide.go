// Package physics tests a standing viewer, modeled as a vertical cylinder
// hanging below the eye, against unit terrain cubes.
package physics

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Collision is a bitmask of the cube faces the cylinder crosses.
type Collision int

const (
	None Collision = 0
	Ceil Collision = 1 << (iota - 1)
	Floor
	MinX
	MaxX
	MinZ
	MaxZ
)

func (c Collision) String() string {
	if c == None {
		return "none"
	}
	var parts []string
	for _, f := range []struct {
		bit  Collision
		name string
	}{
		{Ceil, "ceil"}, {Floor, "floor"},
		{MinX, "minx"}, {MaxX, "maxx"},
		{MinZ, "minz"}, {MaxZ, "maxz"},
	} {
		if c&f.bit != 0 {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// Viewer cylinder dimensions.
const (
	Epsilon = 0.10
	Height  = 1.75
	Radius  = 0.49
)

// CoarseRadius bounds the distance from the eye to any cube min-corner that
// can still touch the cylinder.
var CoarseRadius = float32(1.5 + math.Sqrt(Radius*Radius+Height*Height))

// Candidates returns the cubes within radius of eye.
func Candidates(eye mgl32.Vec3, cubes []mgl32.Vec3, radius float32) []mgl32.Vec3 {
	var out []mgl32.Vec3
	for _, c := range cubes {
		if c.Sub(eye).Len() < radius {
			out = append(out, c)
		}
	}
	return out
}

// Collide tests the cylinder under eye against the unit cube whose minimum
// corner is cubeMin.
func Collide(eye, cubeMin mgl32.Vec3) Collision {
	minX, maxX := cubeMin.X(), cubeMin.X()+1
	minY, maxY := cubeMin.Y(), cubeMin.Y()+1
	minZ, maxZ := cubeMin.Z(), cubeMin.Z()+1

	bot, top := eye.Y()-Height, eye.Y()
	camMinX, camMaxX := eye.X()-Radius, eye.X()+Radius
	camMinZ, camMaxZ := eye.Z()-Radius, eye.Z()+Radius

	crossMaxY := bot < maxY+Epsilon && top > maxY
	crossMinY := top > minY-Epsilon && bot < minY
	crossMaxX := camMinX < maxX && camMaxX > maxX
	crossMinX := camMaxX > minX && camMinX < minX
	crossMaxZ := camMinZ < maxZ && camMaxZ > maxZ
	crossMinZ := camMaxZ > minZ && camMinZ < minZ

	inY := overlaps(bot, top, minY, maxY)
	inX := overlaps(camMinX, camMaxX, minX, maxX)
	inZ := overlaps(camMinZ, camMaxZ, minZ, maxZ)

	ct := None
	if crossMaxY && inX && inZ {
		ct |= Floor
	}
	if crossMinY && inX && inZ {
		ct |= Ceil
	}
	if crossMaxX && inY && inZ {
		ct |= MinX
	}
	if crossMinX && inY && inZ {
		ct |= MaxX
	}
	if crossMaxZ && inY && inX {
		ct |= MinZ
	}
	if crossMinZ && inY && inX {
		ct |= MaxZ
	}
	return ct
}

// overlaps reports whether the open intervals (lo, hi) and (min, max) intersect.
// The cylinder is taller than a cube, so containment of the cube counts too.
func overlaps(lo, hi, min, max float32) bool {
	return lo < max && hi > min
}
