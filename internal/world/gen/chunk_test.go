package gen

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grow creates chunks in the given order, handing each one the edges of
// neighbors that already exist.
func grow(t *testing.T, seed int64, extent int, positions ...ChunkPos) map[ChunkPos]*Chunk {
	t.Helper()
	chunks := make(map[ChunkPos]*Chunk)
	lookup := func(pos ChunkPos, e Edge) (Boundary, bool) {
		c, ok := chunks[pos]
		if !ok {
			return Boundary{}, false
		}
		return c.Boundary(e), true
	}
	for _, p := range positions {
		if _, ok := chunks[p]; ok {
			continue
		}
		c, err := NewChunk(p, extent, seed, FullCircle, lookup)
		require.NoError(t, err)
		chunks[p] = c
	}
	return chunks
}

func TestNewChunkRejectsDegenerateExtent(t *testing.T) {
	for _, extent := range []int{-1, 0, 1} {
		_, err := NewChunk(ChunkPos{}, extent, 1, FullCircle, nil)
		if !errors.Is(err, ErrDegenerateExtent) {
			t.Errorf("NewChunk(extent=%d) err = %v, want ErrDegenerateExtent", extent, err)
		}
	}
}

func TestChunkDeterministic(t *testing.T) {
	a, err := NewChunk(ChunkPos{X: 3, Z: -2}, 16, 12345, FullCircle, nil)
	require.NoError(t, err)
	b, err := NewChunk(ChunkPos{X: 3, Z: -2}, 16, 12345, FullCircle, nil)
	require.NoError(t, err)

	assert.Equal(t, a.TexSeed(), b.TexSeed())
	assert.Equal(t, a.Noise(), b.Noise())
	assert.Equal(t, a.TexSeedMap(), b.TexSeedMap())
	assert.Equal(t, a.HeightMap(-15, 0), b.HeightMap(-15, 0))
}

func TestChunkIndependentOfCreationOrder(t *testing.T) {
	target := ChunkPos{X: 2, Z: 1}
	first := grow(t, 99, 16, target)
	second := grow(t, 99, 16, ChunkPos{X: -3, Z: 4}, ChunkPos{X: 0, Z: 0}, ChunkPos{X: 5, Z: 5}, target)

	assert.Equal(t, first[target].Noise(), second[target].Noise())
	assert.Equal(t, first[target].TexSeed(), second[target].TexSeed())
}

func TestDifferentSeedsDifferentChunks(t *testing.T) {
	a, _ := NewChunk(ChunkPos{}, 16, 1, FullCircle, nil)
	b, _ := NewChunk(ChunkPos{}, 16, 2, FullCircle, nil)
	assert.NotEqual(t, a.Noise(), b.Noise())
}

func TestChunkNoiseLayout(t *testing.T) {
	c, err := NewChunk(ChunkPos{X: 1, Z: 1}, 16, 7, FullCircle, nil)
	require.NoError(t, err)

	noise := c.Noise()
	require.Len(t, noise, 16*16)
	for i, v := range noise {
		if v < -NoiseBound || v > NoiseBound {
			t.Fatalf("noise[%d] = %f, out of ±%f", i, v, NoiseBound)
		}
	}
	// Lattice points sit on the chunk corners, so the corner cells are zero.
	for _, idx := range []int{0, 15, 15 * 16, 16*16 - 1} {
		assert.InDelta(t, 0, noise[idx], 1e-6, "corner cell %d", idx)
	}
}

func TestTexSeedMapIndependentOfNoise(t *testing.T) {
	c, err := NewChunk(ChunkPos{X: -4, Z: 9}, 16, 5, FullCircle, nil)
	require.NoError(t, err)

	before := c.TexSeedMap()
	_ = c.Noise()
	_ = c.HeightMap(0, 10)
	after := c.TexSeedMap()

	assert.Equal(t, before, after)
	for _, v := range after {
		if v < 0 || v >= 1 {
			t.Fatalf("texture seed %f out of [0,1)", v)
		}
	}
}

func TestHeightMapRange(t *testing.T) {
	c, err := NewChunk(ChunkPos{X: 8, Z: -8}, 32, 11, HalfCircle, nil)
	require.NoError(t, err)

	for i, h := range c.HeightMap(-15, 0) {
		if h < -15 || h > 0 {
			t.Fatalf("height[%d] = %f, out of [-15, 0]", i, h)
		}
	}
}

func TestScaleHeight(t *testing.T) {
	if got := ScaleHeight(0, -10, 10); got != 0 {
		t.Errorf("ScaleHeight(0) = %f, want 0", got)
	}
	if got := ScaleHeight(NoiseBound, -10, 10); got != 10 {
		t.Errorf("ScaleHeight(bound) = %f, want 10", got)
	}
	if got := ScaleHeight(-NoiseBound, -10, 10); got != -10 {
		t.Errorf("ScaleHeight(-bound) = %f, want -10", got)
	}
}

func TestEdgeStep(t *testing.T) {
	for _, e := range []Edge{EdgeLeft, EdgeRight, EdgeBottom, EdgeTop} {
		dx, dz := e.Step()
		ox, oz := e.Opposite().Step()
		if dx+ox != 0 || dz+oz != 0 {
			t.Errorf("%v.Step() = (%d,%d), opposite (%d,%d); want them to cancel", e, dx, dz, ox, oz)
		}
	}
}

func TestLatticeSharedWithoutNeighbors(t *testing.T) {
	for _, base := range []ChunkPos{{X: 5, Z: 7}, {X: -3, Z: 0}, {X: 100000, Z: -100000}} {
		c, err := NewChunk(base, 16, 31, FullCircle, nil)
		require.NoError(t, err)
		right, err := NewChunk(base.Add(1, 0), 16, 31, FullCircle, nil)
		require.NoError(t, err)
		top, err := NewChunk(base.Add(0, 1), 16, 31, FullCircle, nil)
		require.NoError(t, err)

		assert.Equal(t, c.Boundary(EdgeRight), right.Boundary(EdgeLeft), "seam %v|%v", base, right.Pos)
		assert.Equal(t, c.Boundary(EdgeTop), top.Boundary(EdgeBottom), "seam %v/%v", base, top.Pos)
	}
}

func TestStitchedEdgesMatch(t *testing.T) {
	var all []ChunkPos
	for x := -4; x <= 4; x++ {
		for z := -4; z <= 4; z++ {
			all = append(all, ChunkPos{X: x, Z: z})
		}
	}
	chunks := grow(t, 2024, 16, all...)

	for pos, c := range chunks {
		if right, ok := chunks[pos.Add(1, 0)]; ok {
			assert.Equal(t, c.Boundary(EdgeRight), right.Boundary(EdgeLeft), "seam %v|%v", pos, right.Pos)
		}
		if top, ok := chunks[pos.Add(0, 1)]; ok {
			assert.Equal(t, c.Boundary(EdgeTop), top.Boundary(EdgeBottom), "seam %v/%v", pos, top.Pos)
		}
	}
}

func TestStitchedNoiseContinuous(t *testing.T) {
	chunks := grow(t, 77, 16,
		ChunkPos{X: 1, Z: 1}, ChunkPos{X: 0, Z: 1}, ChunkPos{X: -1, Z: -1}, ChunkPos{X: -1, Z: 0})

	a := chunks[ChunkPos{X: 0, Z: 1}].Noise()
	b := chunks[ChunkPos{X: 1, Z: 1}].Noise()
	for j := 0; j < 16; j++ {
		assert.Equal(t, a[j*16+15], b[j*16], "row %d", j)
	}

	lo := chunks[ChunkPos{X: -1, Z: -1}].Noise()
	hi := chunks[ChunkPos{X: -1, Z: 0}].Noise()
	for i := 0; i < 16; i++ {
		assert.Equal(t, lo[15*16+i], hi[i], "column %d", i)
	}
}

func TestNewChunkCopiesExistingNeighborEdge(t *testing.T) {
	up := mgl32.Vec2{0, 1}
	want := Boundary{Grid: [3]mgl32.Vec2{up, up, up}, Corners: [2]mgl32.Vec2{up, up}}
	lookup := func(pos ChunkPos, e Edge) (Boundary, bool) {
		if pos == (ChunkPos{X: 1, Z: 2}) && e == EdgeRight {
			return want, true
		}
		return Boundary{}, false
	}

	c, err := NewChunk(ChunkPos{X: 2, Z: 2}, 16, 3, FullCircle, lookup)
	require.NoError(t, err)
	plain, err := NewChunk(ChunkPos{X: 2, Z: 2}, 16, 3, FullCircle, nil)
	require.NoError(t, err)

	assert.Equal(t, want, c.Boundary(EdgeLeft))
	assert.Equal(t, plain.Boundary(EdgeRight), c.Boundary(EdgeRight))
}

func TestChunkOrigin(t *testing.T) {
	c, err := NewChunk(ChunkPos{X: 2, Z: -3}, 16, 1, FullCircle, nil)
	require.NoError(t, err)
	x, z := c.Origin()
	if x != 30 || z != -45 {
		t.Errorf("Origin() = (%d,%d), want (30,-45)", x, z)
	}
}

func TestEdgeOpposite(t *testing.T) {
	pairs := map[Edge]Edge{EdgeLeft: EdgeRight, EdgeRight: EdgeLeft, EdgeBottom: EdgeTop, EdgeTop: EdgeBottom}
	for e, want := range pairs {
		if got := e.Opposite(); got != want {
			t.Errorf("%v.Opposite() = %v, want %v", e, got, want)
		}
	}
}
