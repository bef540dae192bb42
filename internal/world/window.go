package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-terrain/internal/world/gen"
)

// Window is the rendered block of chunks around the camera, flattened into
// fixed-capacity instance buffers.
type Window struct {
	Center  gen.ChunkPos
	Heights [2]float64

	// Offsets and Seeds share indexing and both have exactly the configured
	// instance capacity. Surface samples come first in window-grid order,
	// then fillers, then sentinels.
	Offsets []mgl32.Vec3
	Seeds   []float32

	Stride    int // surface cells per window row
	Surface   int
	Fillers   int
	Truncated int
}

// Surfaces returns the surface samples, Stride per row.
func (w *Window) Surfaces() []mgl32.Vec3 {
	return w.Offsets[:min(w.Surface, len(w.Offsets))]
}

// BuildWindow composes the (2r+1)² chunks around the chunk containing cam.
// Adjacent chunks share their seam column; the window keeps the copy from
// the chunk on the +x / +z side, so every world column appears once.
func (t *Terrain) BuildWindow(cam mgl32.Vec3, heights [2]float64) *Window {
	center := t.GetChunkCoords(cam)
	r := t.cfg.ViewRadius
	n := t.cfg.ChunkExtent
	side := 2*r + 1
	step := n - 1
	stride := side*step + 1

	grid := make([]mgl32.Vec3, stride*stride)
	seeds := make([]float32, stride*stride)

	for cz := 0; cz < side; cz++ {
		for cx := 0; cx < side; cx++ {
			pos := center.Add(cx-r, cz-r)
			surface := t.ChunkSurface(pos, heights)
			tex := t.GetChunk(pos).TexSeedMap()

			// The last row and column belong to the next chunk unless this
			// chunk is on the far edge of the window.
			rows, cols := step, step
			if cz == side-1 {
				rows = n
			}
			if cx == side-1 {
				cols = n
			}
			for j := 0; j < rows; j++ {
				row := (cz*step + j) * stride
				for i := 0; i < cols; i++ {
					idx := row + cx*step + i
					grid[idx] = surface[j*n+i]
					seeds[idx] = tex[j*n+i]
				}
			}
		}
	}

	fillers, owners := fixGaps(grid, stride)

	capacity := t.cfg.InstanceCapacity
	w := &Window{
		Center:  center,
		Heights: heights,
		Offsets: make([]mgl32.Vec3, 0, capacity),
		Seeds:   make([]float32, 0, capacity),
		Stride:  stride,
		Surface: len(grid),
		Fillers: len(fillers),
	}

	w.Offsets = append(w.Offsets, grid...)
	w.Seeds = append(w.Seeds, seeds...)
	w.Offsets = append(w.Offsets, fillers...)
	for _, o := range owners {
		w.Seeds = append(w.Seeds, seeds[o])
	}

	if total := len(w.Offsets); total > capacity {
		w.Truncated = total - capacity
		w.Offsets = w.Offsets[:capacity]
		w.Seeds = w.Seeds[:capacity]
		t.log.Warn("render window exceeds instance capacity",
			"center", center, "instances", total, "capacity", capacity, "dropped", w.Truncated)
	}

	sentinel := mgl32.Vec3{0, float32(t.cfg.SentinelY), 0}
	for len(w.Offsets) < capacity {
		w.Offsets = append(w.Offsets, sentinel)
		w.Seeds = append(w.Seeds, 0)
	}

	t.log.Debug("render window built",
		"center", center, "surface", w.Surface, "fillers", w.Fillers, "chunks", t.Len())
	return w
}

// cachedWindow returns the last window if it was built for the same center
// chunk and height range, building a new one otherwise.
func (t *Terrain) cachedWindow(cam mgl32.Vec3, heights [2]float64) *Window {
	center := t.GetChunkCoords(cam)

	t.winMu.Lock()
	defer t.winMu.Unlock()

	t.lastHeights = heights
	if w := t.window; w != nil && w.Center == center && w.Heights == heights {
		return w
	}
	t.window = t.BuildWindow(cam, heights)
	return t.window
}

// GetOffsetsForRender returns the instance positions for the window around
// cam. The slice is shared with later calls and must not be modified.
func (t *Terrain) GetOffsetsForRender(cam mgl32.Vec3, heights [2]float64) []mgl32.Vec3 {
	return t.cachedWindow(cam, heights).Offsets
}

// GetSeedsForRender returns per-instance texture seeds indexed like
// GetOffsetsForRender, using the height range of the last offsets request.
func (t *Terrain) GetSeedsForRender(cam mgl32.Vec3) []float32 {
	t.winMu.Lock()
	heights := t.lastHeights
	t.winMu.Unlock()
	return t.cachedWindow(cam, heights).Seeds
}
