package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-terrain/internal/world/gen"
)

var edges = [4]gen.Edge{gen.EdgeLeft, gen.EdgeRight, gen.EdgeBottom, gen.EdgeTop}

// lineCells returns the flat indices of the row or column depth cells in
// from edge e of an n×n chunk, ordered along the edge.
func lineCells(e gen.Edge, n, depth int) []int {
	out := make([]int, n)
	for k := range out {
		switch e {
		case gen.EdgeLeft:
			out[k] = k*n + depth
		case gen.EdgeRight:
			out[k] = k*n + n - 1 - depth
		case gen.EdgeBottom:
			out[k] = depth*n + k
		case gen.EdgeTop:
			out[k] = (n-1-depth)*n + k
		}
	}
	return out
}

// blendedNoise returns the chunk's noise with every edge row and column
// pulled by weight w toward the neighbor's first interior line, the samples
// one step across the shared seam. Corner cells are pulled along both axes.
func (t *Terrain) blendedNoise(pos gen.ChunkPos, w float32) []float32 {
	c := t.GetChunk(pos)
	n := c.Extent
	noise := c.Noise()

	for _, e := range edges {
		dx, dz := e.Step()
		other := t.GetChunk(pos.Add(dx, dz)).Noise()
		mine := lineCells(e, n, 0)
		theirs := lineCells(e.Opposite(), n, 1)
		for k := range mine {
			a, b := noise[mine[k]], other[theirs[k]]
			noise[mine[k]] = a*(1-w) + b*w
		}
	}
	return noise
}

// ChunkSurface returns one world-space sample per cell of the chunk at pos,
// row-major with x fastest. The chunk's first column lands on the same world
// column as its -x neighbor's last, and likewise on z. Heights are scaled
// into heights[0]..heights[1] and rounded to whole units.
func (t *Terrain) ChunkSurface(pos gen.ChunkPos, heights [2]float64) []mgl32.Vec3 {
	noise := t.blendedNoise(pos, float32(t.cfg.EdgeBlend))
	n := t.cfg.ChunkExtent
	ox, oz := t.GetChunk(pos).Origin()
	lo, hi := float32(heights[0]), float32(heights[1])

	out := make([]mgl32.Vec3, len(noise))
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			h := gen.ScaleHeight(noise[j*n+i], lo, hi)
			out[j*n+i] = mgl32.Vec3{
				float32(ox + i),
				float32(math.Round(float64(h))),
				float32(oz + j),
			}
		}
	}
	return out
}

// FixNeighborGaps returns filler cubes for every cliff in grid, a flat array
// of surface samples stride cells wide. Under each cell it stacks one cube
// per level from just below the cell down to just above its lowest
// grid-adjacent neighbor.
func FixNeighborGaps(grid []mgl32.Vec3, stride int) []mgl32.Vec3 {
	fillers, _ := fixGaps(grid, stride)
	return fillers
}

// fixGaps is FixNeighborGaps that also reports, per filler, the grid index
// of the cell it sits under.
func fixGaps(grid []mgl32.Vec3, stride int) ([]mgl32.Vec3, []int) {
	const eps = 1e-3
	if stride <= 0 {
		return nil, nil
	}

	var (
		fillers []mgl32.Vec3
		owners  []int
	)
	for idx, cell := range grid {
		low := cell.Y()
		x := idx % stride
		for _, k := range [4]int{idx - 1, idx + 1, idx - stride, idx + stride} {
			if k < 0 || k >= len(grid) {
				continue
			}
			// No wrapping across rows.
			if (k == idx-1 && x == 0) || (k == idx+1 && x == stride-1) {
				continue
			}
			low = min(low, grid[k].Y())
		}

		gap := math.Floor(float64(cell.Y()-low) - eps)
		for level := 1; level <= int(gap); level++ {
			fillers = append(fillers, mgl32.Vec3{cell.X(), cell.Y() - float32(level), cell.Z()})
			owners = append(owners, idx)
		}
	}
	return fillers, owners
}
