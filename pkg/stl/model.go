package stl

import (
	"github.com/philipparndt/arcademia/pkg/geometry"
	"github.com/philipparndt/arcademia/pkg/mesh"
)

// Model represents a decoded STL file as an unindexed list of facets
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// ToMesh welds the facets into an indexed mesh so that neighbouring
// facets share vertices and edges.
func (m *Model) ToMesh() *mesh.Mesh {
	w := mesh.NewWelder(m.Name, mesh.FormatSTL)
	for _, t := range m.Triangles {
		w.AddTriangle(t.V1, t.V2, t.V3)
	}
	return w.Mesh()
}

// FromMesh expands an indexed mesh into facets. Faces with out-of-range
// indices are dropped.
func FromMesh(m *mesh.Mesh) *Model {
	model := NewModel(m.Name)
	for i := range m.Faces {
		if t, ok := m.Triangle(i); ok {
			model.AddTriangle(t)
		}
	}
	return model
}
