package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-terrain/internal/physics"
)

const (
	panSpeed      = 0.1
	rollSpeed     = 0.1
	rotationSpeed = 0.05
	zoomSpeed     = 0.1
	walkImpulse   = 2.0
	jumpImpulse   = 20.0

	// Gravity is applied per second of simulated time.
	Gravity = 30.0
	// Friction is the fraction of velocity left after one second.
	Friction = 0.1
	// minSpeed snaps slower velocities to rest.
	minSpeed = 0.05
	// fallClamp is the downward speed past which a floor hit repositions the eye.
	fallClamp = 10.0
	// maxPitch bounds |look·up| so the view never flips over the pole.
	maxPitch = 0.99
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Camera is a first-person camera with an optional physics mode.
type Camera struct {
	eye      mgl32.Vec3
	look     mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3
	distance float32
	velocity mgl32.Vec3
	physics  bool
}

// New returns a camera at eye looking down -Z.
func New(eye mgl32.Vec3) *Camera {
	c := &Camera{
		eye:      eye,
		look:     mgl32.Vec3{0, 0, -1},
		up:       worldUp,
		distance: 3,
	}
	c.update()
	return c
}

// Eye returns the camera position.
func (c *Camera) Eye() mgl32.Vec3 { return c.eye }

// Look returns the unit view direction.
func (c *Camera) Look() mgl32.Vec3 { return c.look }

// Up returns the camera's up vector.
func (c *Camera) Up() mgl32.Vec3 { return c.up }

// Right returns the camera's right vector.
func (c *Camera) Right() mgl32.Vec3 { return c.right }

// Center returns the orbit point in front of the eye.
func (c *Camera) Center() mgl32.Vec3 { return c.eye.Add(c.look.Mul(c.distance)) }

// Velocity returns the current physics velocity.
func (c *Camera) Velocity() mgl32.Vec3 { return c.velocity }

// Physics reports whether physics mode is on.
func (c *Camera) Physics() bool { return c.physics }

// SetPhysics toggles physics mode and clears any velocity.
func (c *Camera) SetPhysics(on bool) {
	c.physics = on
	c.velocity = mgl32.Vec3{}
}

// SetPose restores eye and look; look is normalized and up re-derived.
func (c *Camera) SetPose(eye, look mgl32.Vec3) {
	if l := look.Len(); l == 0 || isNaN(l) {
		return
	}
	c.eye = eye
	c.look = look.Normalize()
	c.up = orthoUp(c.look)
	c.update()
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.eye, c.eye.Add(c.look), c.up)
}

// Rotate turns the view by a screen-space mouse delta. A zero delta has no
// direction and is ignored, as is any rotation ending too close to vertical.
func (c *Camera) Rotate(dx, dy float64) {
	amt, ok := direction(dx, dy)
	if !ok {
		return
	}

	camAxis := c.right.Mul(amt[0]).Sub(c.up.Mul(amt[1]))
	rotAxis := camAxis.Mul(-1).Cross(c.look)
	if rotAxis.Len() == 0 {
		return
	}
	rot := mgl32.HomogRotate3D(rotationSpeed, rotAxis.Normalize())
	next := rot.Mul4x1(c.look.Vec4(0)).Vec3().Normalize()

	if abs32(next.Dot(worldUp)) > maxPitch {
		return
	}
	c.look = next
	c.up = orthoUp(c.look)
	c.update()
}

// Pan slides the eye in the view plane.
func (c *Camera) Pan(dx, dy float64) {
	amt, ok := direction(dx, dy)
	if !ok {
		return
	}
	dir := c.right.Mul(amt[0]).Sub(c.up.Mul(amt[1]))
	c.eye = c.eye.Add(dir.Mul(panSpeed))
	c.update()
}

// Zoom moves the eye along the view direction; negative dy zooms in.
func (c *Camera) Zoom(dy float64) {
	if dy < 0 {
		c.eye = c.eye.Add(c.look.Mul(zoomSpeed))
	} else {
		c.eye = c.eye.Sub(c.look.Mul(zoomSpeed))
	}
	c.distance -= zoomSpeed
	c.update()
}

// Walk moves forward (dir > 0) or backward. In physics mode it adds velocity.
func (c *Camera) Walk(dir int) {
	c.move(c.look, dir)
}

// Strafe moves right (dir > 0) or left.
func (c *Camera) Strafe(dir int) {
	c.move(c.right, dir)
}

func (c *Camera) move(axis mgl32.Vec3, dir int) {
	if dir == 0 {
		return
	}
	s := float32(sign(dir))
	if c.physics {
		c.velocity = c.velocity.Add(axis.Mul(walkImpulse * s))
	} else {
		c.eye = c.eye.Add(axis.Mul(zoomSpeed * s))
	}
	c.update()
}

// Roll spins the up vector about the view direction. Ignored in physics mode.
func (c *Camera) Roll(dir int) {
	if c.physics || dir == 0 {
		return
	}
	angle := float32(rollSpeed)
	if dir > 0 {
		angle = -angle
	}
	c.up = mgl32.HomogRotate3D(angle, c.look).Mul4x1(c.up.Vec4(0)).Vec3().Normalize()
	c.update()
}

// Lift moves the eye along up. Ignored in physics mode.
func (c *Camera) Lift(dir int) {
	if c.physics || dir == 0 {
		return
	}
	c.eye = c.eye.Add(c.up.Mul(panSpeed * float32(sign(dir))))
	c.update()
}

// Jump adds an upward impulse.
func (c *Camera) Jump() {
	if !c.physics {
		return
	}
	c.velocity = c.velocity.Add(mgl32.Vec3{0, jumpImpulse, 0})
}

// Step advances physics by dt seconds against the solid cubes and returns
// the faces hit. It is a no-op outside physics mode.
func (c *Camera) Step(dt float64, cubes []mgl32.Vec3) physics.Collision {
	if !c.physics || dt <= 0 {
		return physics.None
	}

	c.velocity = c.velocity.Add(mgl32.Vec3{0, float32(-Gravity * dt), 0})
	c.velocity = c.velocity.Mul(float32(math.Pow(Friction, dt)))
	if c.velocity.Len() < minSpeed {
		c.velocity = mgl32.Vec3{}
	}

	var all physics.Collision
	for _, cube := range physics.Candidates(c.eye, cubes, physics.CoarseRadius) {
		hit := physics.Collide(c.eye, cube)
		if hit&physics.Floor != 0 {
			if c.velocity.Y() < -fallClamp {
				c.eye[1] = cube.Y() + 1 + physics.Height + physics.Epsilon/2
			}
			c.velocity[1] = max(0, c.velocity.Y())
		}
		if hit&physics.Ceil != 0 {
			c.velocity[1] = min(0, c.velocity.Y())
		}
		if hit&physics.MinX != 0 {
			c.velocity[0] = max(0, c.velocity.X())
		}
		if hit&physics.MaxX != 0 {
			c.velocity[0] = min(0, c.velocity.X())
		}
		if hit&physics.MinZ != 0 {
			c.velocity[2] = max(0, c.velocity.Z())
		}
		if hit&physics.MaxZ != 0 {
			c.velocity[2] = min(0, c.velocity.Z())
		}
		all |= hit
	}

	c.eye = c.eye.Add(c.velocity.Mul(float32(dt)))
	c.update()
	return all
}

// update re-derives right from look and up.
func (c *Camera) update() {
	c.right = c.look.Cross(c.up).Normalize()
}

// orthoUp returns world up with its component along look removed.
func orthoUp(look mgl32.Vec3) mgl32.Vec3 {
	return worldUp.Sub(look.Mul(look.Dot(worldUp))).Normalize()
}

// direction normalizes a screen delta; ok is false when it has no direction.
func direction(dx, dy float64) (mgl32.Vec2, bool) {
	l := math.Hypot(dx, dy)
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{float32(dx / l), float32(dy / l)}, true
}

func sign(d int) int {
	if d > 0 {
		return 1
	}
	return -1
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

func isNaN(v float32) bool {
	return math.IsNaN(float64(v))
}
