package main

import (
	"context"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-terrain/internal/camera"
	"github.com/OCharnyshevich/voxel-terrain/internal/config"
	"github.com/OCharnyshevich/voxel-terrain/internal/geom"
	"github.com/OCharnyshevich/voxel-terrain/internal/world"
	"github.com/OCharnyshevich/voxel-terrain/internal/world/gen"
)

const (
	oceanHalf  = 20
	oceanCells = 16
	floorSize  = 200
	// Fraction of the height range below which the ocean sits.
	waterLine = 0.3
)

var (
	skyColor   = rl.NewColor(135, 206, 235, 255)
	floorColor = rl.NewColor(70, 60, 50, 255)
	oceanColor = rl.NewColor(30, 90, 160, 180)
)

// scene holds everything drawn each frame.
type scene struct {
	cfg     *config.Config
	terrain *world.Terrain
	cam     *camera.Camera
	log     *slog.Logger

	heights [2]float64
	center  gen.ChunkPos
	offsets []mgl32.Vec3
	seeds   []float32
	used    int // offsets before the sentinel padding

	floor     geom.Mesh
	ocean     geom.Grid
	oceanVert []mgl32.Vec3
	waves     *geom.Waves
	waterY    float32
}

func newScene(cfg *config.Config, terrain *world.Terrain, cam *camera.Camera, log *slog.Logger) *scene {
	lo, hi := float32(cfg.HeightMin), float32(cfg.HeightMax)
	s := &scene{
		cfg:     cfg,
		terrain: terrain,
		cam:     cam,
		log:     log,
		heights: cfg.Heights(),
		floor:   geom.Floor(floorSize, lo-1),
		waves:   geom.NewWaves(cfg.Seed, cfg.OceanWaves),
		waterY:  lo + waterLine*(hi-lo),
	}
	s.ocean = geom.Ocean(oceanHalf, s.waterY, oceanCells)
	s.oceanVert = make([]mgl32.Vec3, len(s.ocean.Vertices))
	s.rebuild()
	return s
}

// rebuild refreshes the instance buffers for the chunk under the camera.
func (s *scene) rebuild() {
	eye := s.cam.Eye()
	s.center = s.terrain.GetChunkCoords(eye)
	s.offsets = s.terrain.GetOffsetsForRender(eye, s.heights)
	s.seeds = s.terrain.GetSeedsForRender(eye)

	sentinelY := float32(s.cfg.SentinelY)
	s.used = len(s.offsets)
	for s.used > 0 && s.offsets[s.used-1].Y() == sentinelY {
		s.used--
	}
	s.log.Debug("window rebuilt", "center", s.center, "instances", s.used, "chunks", s.terrain.Len())
}

func (s *scene) update(dt float32) {
	handleInput(s.cam)
	if s.cam.Physics() {
		s.cam.Step(float64(dt), s.offsets[:s.used])
	}
	if c := s.terrain.GetChunkCoords(s.cam.Eye()); c != s.center {
		s.rebuild()
	}

	// Keep the ocean under the camera.
	eye := s.cam.Eye()
	shift := mgl32.Vec3{eye.X(), 0, eye.Z()}
	s.waves.Displace(s.oceanVert, s.ocean.Translate(shift).Vertices, rl.GetTime())
}

func (s *scene) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(skyColor)

	rl.BeginMode3D(rl.Camera3D{
		Position:   vec(s.cam.Eye()),
		Target:     vec(s.cam.Eye().Add(s.cam.Look())),
		Up:         vec(s.cam.Up()),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	})

	for _, t := range s.floor.Triangles {
		v := s.floor.Vertices
		rl.DrawTriangle3D(vec(v[t[0]]), vec(v[t[1]]), vec(v[t[2]]), floorColor)
	}

	half := mgl32.Vec3{0.5, 0.5, 0.5}
	for i := 0; i < s.used; i++ {
		rl.DrawCube(vec(s.offsets[i].Add(half)), 1, 1, 1, cubeColor(s.offsets[i].Y(), s.seeds[i], s.heights))
	}

	for _, t := range s.ocean.Triangles() {
		v := s.oceanVert
		rl.DrawTriangle3D(vec(v[t[0]]), vec(v[t[1]]), vec(v[t[2]]), oceanColor)
	}

	rl.EndMode3D()

	mode := "free-fly"
	if s.cam.Physics() {
		mode = "physics"
	}
	eye := s.cam.Eye()
	rl.DrawText(fmt.Sprintf("Position: (%.1f, %.1f, %.1f)  Chunk: %v", eye.X(), eye.Y(), eye.Z(), s.center), 10, 10, 20, rl.DarkGray)
	rl.DrawText(fmt.Sprintf("Mode: %s  Instances: %d  Chunks: %d", mode, s.used, s.terrain.Len()), 10, 40, 20, rl.DarkGray)
	rl.DrawFPS(10, int32(s.cfg.Height)-30)

	rl.EndDrawing()
}

func run(ctx context.Context, cfg *config.Config, terrain *world.Terrain, cam *camera.Camera, log *slog.Logger) {
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "voxel terrain")
	defer rl.CloseWindow()

	rl.DisableCursor()
	rl.SetTargetFPS(60)

	s := newScene(cfg, terrain, cam, log)
	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return
		}
		s.update(rl.GetFrameTime())
		s.draw()
	}
}

// handleInput maps keys and mouse motion onto camera moves.
func handleInput(cam *camera.Camera) {
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		cam.Rotate(float64(d.X), float64(d.Y))
	}

	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	if ctrl && rl.IsKeyPressed(rl.KeyF) {
		cam.SetPhysics(!cam.Physics())
	}

	// In physics mode movement keys give one impulse per press.
	held := rl.IsKeyDown
	if cam.Physics() {
		held = rl.IsKeyPressed
	}
	switch {
	case held(rl.KeyW):
		cam.Walk(1)
	case held(rl.KeyS):
		cam.Walk(-1)
	}
	switch {
	case held(rl.KeyA):
		cam.Strafe(-1)
	case held(rl.KeyD):
		cam.Strafe(1)
	}

	switch {
	case rl.IsKeyDown(rl.KeyLeft):
		cam.Roll(-1)
	case rl.IsKeyDown(rl.KeyRight):
		cam.Roll(1)
	}
	switch {
	case rl.IsKeyDown(rl.KeyUp):
		cam.Lift(1)
	case rl.IsKeyDown(rl.KeyDown):
		cam.Lift(-1)
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		cam.Jump()
	}
}

// cubeColor shades a cube by height, with the per-cell seed picking a
// slight variation.
func cubeColor(y, seed float32, heights [2]float64) rl.Color {
	t := (y - float32(heights[0])) / float32(heights[1]-heights[0])
	t = max(0, min(1, t))
	jitter := uint8(seed * 30)
	switch {
	case t < 0.35:
		return rl.NewColor(194+jitter/2, 178, 128, 255) // sand
	case t < 0.8:
		return rl.NewColor(40+jitter, uint8(110+60*t), 40, 255)
	default:
		return rl.NewColor(120+jitter, 120+jitter, 120+jitter, 255)
	}
}

func vec(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}
