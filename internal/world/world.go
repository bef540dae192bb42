package world

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-terrain/internal/config"
	"github.com/OCharnyshevich/voxel-terrain/internal/world/gen"
)

// Terrain is the chunk cache: each coordinate maps to exactly one Chunk for
// the life of the Terrain. Chunks are never evicted.
type Terrain struct {
	cfg *config.Config
	log *slog.Logger

	mu     sync.Mutex
	chunks map[gen.ChunkPos]*gen.Chunk

	// Last window built, reused while the camera stays in the same chunk.
	winMu       sync.Mutex
	window      *Window
	lastHeights [2]float64
}

// NewTerrain validates cfg and creates an empty Terrain.
func NewTerrain(cfg *config.Config, log *slog.Logger) (*Terrain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("terrain config: %w", err)
	}
	return &Terrain{
		cfg:         cfg,
		log:         log,
		chunks:      make(map[gen.ChunkPos]*gen.Chunk),
		lastHeights: cfg.Heights(),
	}, nil
}

// Extent returns the number of samples per chunk edge.
func (t *Terrain) Extent() int { return t.cfg.ChunkExtent }

// Seed returns the root seed.
func (t *Terrain) Seed() int64 { return t.cfg.Seed }

// Len returns the number of chunks generated so far.
func (t *Terrain) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.chunks)
}

// GetChunk returns the Chunk at pos, generating it on first access. Only the
// requested chunk is created; neighbors that already exist lend it their
// shared edges.
func (t *Terrain) GetChunk(pos gen.ChunkPos) *gen.Chunk {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.chunkLocked(pos)
}

func (t *Terrain) chunkLocked(pos gen.ChunkPos) *gen.Chunk {
	if c, ok := t.chunks[pos]; ok {
		return c
	}

	c, err := gen.NewChunk(pos, t.cfg.ChunkExtent, t.cfg.Seed, t.cfg.Arc(), t.boundaryLocked)
	if err != nil {
		// Extent was validated in NewTerrain.
		panic(fmt.Sprintf("world: generate chunk %v: %v", pos, err))
	}

	if _, dup := t.chunks[pos]; dup {
		panic(fmt.Sprintf("world: duplicate chunk %v", pos))
	}
	t.chunks[pos] = c
	t.log.Debug("chunk generated", "chunk", pos, "total", len(t.chunks))
	return c
}

// boundaryLocked is the lookup handed to gen.NewChunk. It never generates.
func (t *Terrain) boundaryLocked(pos gen.ChunkPos, e gen.Edge) (gen.Boundary, bool) {
	c, ok := t.chunks[pos]
	if !ok {
		return gen.Boundary{}, false
	}
	return c.Boundary(e), true
}

// GetChunkCoords returns the coordinate of the chunk owning the world
// column under p. Chunks are laid out extent-1 apart, and a seam column
// belongs to the chunk on its +x / +z side.
func (t *Terrain) GetChunkCoords(p mgl32.Vec3) gen.ChunkPos {
	e := t.cfg.ChunkExtent - 1
	x := int(math.Floor(float64(p.X())))
	z := int(math.Floor(float64(p.Z())))
	return gen.ChunkPos{X: floorDiv(x, e), Z: floorDiv(z, e)}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
