package gen

import "math/rand/v2"

// Stream salts keep the two gradient lattices and the texture streams independent.
const (
	saltFine    uint64 = 0x6a09e667f3bcc908
	saltCoarse  uint64 = 0x3c6ef372fe94f82b
	saltTexture uint64 = 0xbb67ae8584caa73b
)

// Mix64 is the murmur3 64-bit finalizer.
func Mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// Hash2 returns a stable hash of a 2D integer coordinate under seed.
func Hash2(seed uint64, x, z int) uint64 {
	h := seed
	h ^= uint64(int64(x)) * 0x9e3779b97f4a7c15
	h = Mix64(h)
	h ^= uint64(int64(z)) * 0xc2b2ae3d27d4eb4f
	return Mix64(h)
}

// latticeStream returns the stream for the global lattice point (gx, gz).
// Every chunk touching that point derives the same gradient from it.
func latticeStream(rootSeed int64, salt uint64, gx, gz int) *rand.Rand {
	h := Hash2(uint64(rootSeed)^salt, gx, gz)
	return rand.New(rand.NewPCG(h, Mix64(h^salt)))
}

// textureSeed derives the 32-bit texture seed of the chunk at pos.
func textureSeed(rootSeed int64, pos ChunkPos) uint32 {
	return uint32(Mix64(Hash2(uint64(rootSeed), pos.X, pos.Z) ^ saltTexture))
}

// textureStream returns a fresh stream for per-cell texture seeds.
func textureStream(seed uint32) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, Mix64(s^saltTexture)))
}
