package mesh

import "github.com/philipparndt/arcademia/pkg/geometry"

// Welder builds an indexed mesh from a triangle soup, merging corners
// with exactly equal coordinates. Vertices keep first-seen order.
type Welder struct {
	mesh  *Mesh
	index map[geometry.Vector3]int
}

// NewWelder creates a welder producing a mesh with the given name and format
func NewWelder(name string, format Format) *Welder {
	return &Welder{
		mesh:  New(name, format),
		index: make(map[geometry.Vector3]int),
	}
}

// AddTriangle adds the three corners of a triangle
func (w *Welder) AddTriangle(a, b, c geometry.Vector3) {
	w.mesh.AddFace(w.vertex(a), w.vertex(b), w.vertex(c))
}

func (w *Welder) vertex(v geometry.Vector3) int {
	// -0 and +0 compare equal but are distinct map keys
	v = geometry.Vector3{X: v.X + 0, Y: v.Y + 0, Z: v.Z + 0}
	if idx, ok := w.index[v]; ok {
		return idx
	}
	idx := w.mesh.AddVertex(v)
	w.index[v] = idx
	return idx
}

// Mesh returns the welded mesh
func (w *Welder) Mesh() *Mesh {
	return w.mesh
}
