// Package geom builds the static meshes drawn around the terrain.
package geom

import "github.com/go-gl/mathgl/mgl32"

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Vertices  []mgl32.Vec3
	Triangles [][3]uint32
}

// Grid is an indexed quad mesh laid out on a regular XZ lattice.
type Grid struct {
	Vertices []mgl32.Vec3
	Quads    [][4]uint32
	Cells    int
}

// Floor returns a square of half-width size at height y, as two triangles.
func Floor(size, y float32) Mesh {
	return Mesh{
		Vertices: []mgl32.Vec3{
			{size, y, size},
			{-size, y, size},
			{-size, y, -size},
			{size, y, -size},
		},
		Triangles: [][3]uint32{{0, 2, 1}, {3, 2, 0}},
	}
}

// Ocean returns a cells×cells grid spanning [-half, half] on X and Z at
// height y. Vertex (i, j) is at index i*(cells+1)+j, with i along X.
func Ocean(half, y float32, cells int) Grid {
	if cells < 1 {
		cells = 1
	}
	side := cells + 1
	delta := 2 * half / float32(cells)

	g := Grid{
		Vertices: make([]mgl32.Vec3, 0, side*side),
		Quads:    make([][4]uint32, 0, cells*cells),
		Cells:    cells,
	}
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			g.Vertices = append(g.Vertices, mgl32.Vec3{-half + float32(i)*delta, y, -half + float32(j)*delta})
		}
	}
	for i := 0; i < cells; i++ {
		for j := 0; j < cells; j++ {
			a := uint32(i*side + j)
			b := uint32((i+1)*side + j)
			g.Quads = append(g.Quads, [4]uint32{a, b, b + 1, a + 1})
		}
	}
	return g
}

// Triangles splits every quad into two triangles with the same winding.
func (g Grid) Triangles() [][3]uint32 {
	out := make([][3]uint32, 0, 2*len(g.Quads))
	for _, q := range g.Quads {
		out = append(out, [3]uint32{q[0], q[1], q[2]}, [3]uint32{q[0], q[2], q[3]})
	}
	return out
}

// Translate returns a copy of the grid moved by d.
func (g Grid) Translate(d mgl32.Vec3) Grid {
	verts := make([]mgl32.Vec3, len(g.Vertices))
	for i, v := range g.Vertices {
		verts[i] = v.Add(d)
	}
	g.Vertices = verts
	return g
}
