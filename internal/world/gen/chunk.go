package gen

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrDegenerateExtent is returned for chunks with fewer than two samples per edge.
var ErrDegenerateExtent = errors.New("chunk extent must be at least 2")

// ChunkPos identifies a chunk by its X and Z coordinates.
type ChunkPos struct{ X, Z int }

func (p ChunkPos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Z)
}

// Add returns p offset by (dx, dz).
func (p ChunkPos) Add(dx, dz int) ChunkPos {
	return ChunkPos{X: p.X + dx, Z: p.Z + dz}
}

// Edge names one side of a chunk.
type Edge int

const (
	EdgeLeft   Edge = iota // x = 0
	EdgeRight              // x = extent-1
	EdgeBottom             // z = 0
	EdgeTop                // z = extent-1
)

// Opposite returns the edge a neighbor shares with e.
func (e Edge) Opposite() Edge {
	return e ^ 1
}

// Step returns the offset from a chunk to its neighbor across e.
func (e Edge) Step() (dx, dz int) {
	switch e {
	case EdgeLeft:
		return -1, 0
	case EdgeRight:
		return 1, 0
	case EdgeBottom:
		return 0, -1
	}
	return 0, 1
}

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	case EdgeTop:
		return "top"
	}
	return fmt.Sprintf("Edge(%d)", int(e))
}

// Lattice indices lying on each edge, ordered along the edge.
//
//	6 7 8      2 3
//	3 4 5      0 1
//	0 1 2    corners
//	 grid
var (
	gridEdge   = [4][3]int{{0, 3, 6}, {2, 5, 8}, {0, 1, 2}, {6, 7, 8}}
	cornerEdge = [4][2]int{{0, 2}, {1, 3}, {0, 1}, {2, 3}}
)

// Boundary holds the gradients lying on one chunk edge.
type Boundary struct {
	Grid    [3]mgl32.Vec2
	Corners [2]mgl32.Vec2
}

// BoundaryLookup returns the gradients on edge e of the chunk at pos, or false
// when that chunk does not exist yet.
type BoundaryLookup func(pos ChunkPos, e Edge) (Boundary, bool)

// Chunk is one extent×extent tile of terrain. Neighbors overlap by one
// sample: the last column of a chunk is the first column of the chunk to its
// +x side, and likewise on z. It is immutable after NewChunk.
type Chunk struct {
	Pos    ChunkPos
	Extent int

	texSeed uint32
	grid    [9]mgl32.Vec2 // fine octave, one lattice cell per quadrant
	corners [4]mgl32.Vec2 // coarse octave, one lattice cell per chunk
}

// NewChunk derives the gradients of the chunk at pos from the global
// lattice, so neighbors agree on every shared edge without consulting each
// other. Edges of neighbors already known to lookup are copied over the
// derived ones. lookup may be nil.
func NewChunk(pos ChunkPos, extent int, rootSeed int64, arc GradientArc, lookup BoundaryLookup) (*Chunk, error) {
	if extent < 2 {
		return nil, fmt.Errorf("chunk %v: %w", pos, ErrDegenerateExtent)
	}

	c := &Chunk{
		Pos:     pos,
		Extent:  extent,
		texSeed: textureSeed(rootSeed, pos),
	}

	// The fine lattice has two cells per chunk on each axis.
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			r := latticeStream(rootSeed, saltFine, 2*pos.X+i, 2*pos.Z+j)
			c.grid[j*3+i] = SampleGradient(r, arc)
		}
	}
	for k := range c.corners {
		r := latticeStream(rootSeed, saltCoarse, pos.X+k%2, pos.Z+k/2)
		c.corners[k] = SampleGradient(r, arc)
	}

	if lookup != nil {
		for _, e := range []Edge{EdgeLeft, EdgeRight, EdgeBottom, EdgeTop} {
			dx, dz := e.Step()
			if b, found := lookup(pos.Add(dx, dz), e.Opposite()); found {
				c.setBoundary(e, b)
			}
		}
	}
	return c, nil
}

// Boundary returns the gradients on edge e.
func (c *Chunk) Boundary(e Edge) Boundary {
	var b Boundary
	for i, idx := range gridEdge[e] {
		b.Grid[i] = c.grid[idx]
	}
	for i, idx := range cornerEdge[e] {
		b.Corners[i] = c.corners[idx]
	}
	return b
}

func (c *Chunk) setBoundary(e Edge, b Boundary) {
	for i, idx := range gridEdge[e] {
		c.grid[idx] = b.Grid[i]
	}
	for i, idx := range cornerEdge[e] {
		c.corners[idx] = b.Corners[i]
	}
}

// Gradients returns copies of the fine lattice and coarse corner gradients.
func (c *Chunk) Gradients() ([9]mgl32.Vec2, [4]mgl32.Vec2) {
	return c.grid, c.corners
}

// TexSeed returns the seed of the chunk's texture stream.
func (c *Chunk) TexSeed() uint32 {
	return c.texSeed
}

// Origin returns the world coordinates of the chunk's (0,0) cell.
func (c *Chunk) Origin() (x, z int) {
	return c.Pos.X * (c.Extent - 1), c.Pos.Z * (c.Extent - 1)
}

// Noise returns the combined two-octave noise for every cell, row-major with
// x varying fastest. Values lie in [-NoiseBound, NoiseBound].
func (c *Chunk) Noise() []float32 {
	n := c.Extent
	last := float32(n - 1)
	out := make([]float32, n*n)

	for j := 0; j < n; j++ {
		v := float32(j) / last
		for i := 0; i < n; i++ {
			u := float32(i) / last
			p := mgl32.Vec2{u, v}

			coarse := NoiseSquare(p, c.corners)
			fine := NoiseSquare(c.quadrant(p))

			out[j*n+i] = (FineWeight*fine + coarse) / Normalization
		}
	}
	return out
}

// quadrant maps p onto the fine lattice cell containing it and returns the
// local coordinate with that cell's four gradients.
func (c *Chunk) quadrant(p mgl32.Vec2) (mgl32.Vec2, [4]mgl32.Vec2) {
	qx, qz := 0, 0
	if p[0] >= 0.5 {
		qx = 1
	}
	if p[1] >= 0.5 {
		qz = 1
	}
	local := mgl32.Vec2{2*p[0] - float32(qx), 2*p[1] - float32(qz)}

	base := qz*3 + qx
	return local, [4]mgl32.Vec2{
		c.grid[base],
		c.grid[base+1],
		c.grid[base+3],
		c.grid[base+4],
	}
}

// TexSeedMap returns one value in [0,1) per cell from a stream seeded only by
// the texture seed, so it is unaffected by noise queries.
func (c *Chunk) TexSeedMap() []float32 {
	r := textureStream(c.texSeed)
	out := make([]float32, c.Extent*c.Extent)
	for i := range out {
		out[i] = r.Float32()
	}
	return out
}

// HeightMap scales Noise into [lo, hi].
func (c *Chunk) HeightMap(lo, hi float32) []float32 {
	noise := c.Noise()
	for i, v := range noise {
		noise[i] = ScaleHeight(v, lo, hi)
	}
	return noise
}

// ScaleHeight maps a combined noise value onto [lo, hi].
func ScaleHeight(v, lo, hi float32) float32 {
	t := (v/NoiseBound + 1) / 2
	t = float32(math.Max(0, math.Min(1, float64(t))))
	return lo + t*(hi-lo)
}
