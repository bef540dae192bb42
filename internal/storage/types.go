package storage

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-terrain/internal/camera"
)

// CameraData is the serializable representation of the viewer's camera.
type CameraData struct {
	Eye     [3]float32 `json:"eye"`
	Look    [3]float32 `json:"look"`
	Physics bool       `json:"physics"`
}

// CameraDataFrom captures the pose of c.
func CameraDataFrom(c *camera.Camera) *CameraData {
	return &CameraData{
		Eye:     c.Eye(),
		Look:    c.Look(),
		Physics: c.Physics(),
	}
}

// Apply restores the pose onto c.
func (cd *CameraData) Apply(c *camera.Camera) {
	c.SetPose(mgl32.Vec3(cd.Eye), mgl32.Vec3(cd.Look))
	c.SetPhysics(cd.Physics)
}
