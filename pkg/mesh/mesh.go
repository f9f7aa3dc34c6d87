// Package mesh holds the indexed triangle mesh shared by the loaders,
// the analysis code, the scene and the streamer.
package mesh

import (
	"strings"

	"github.com/philipparndt/arcademia/pkg/geometry"
)

// Format identifies the file format a mesh was decoded from
type Format int

const (
	FormatUnknown Format = iota
	FormatSTL
	FormatOBJ
)

// String returns the upper-case format name used in descriptions
func (f Format) String() string {
	switch f {
	case FormatSTL:
		return "STL"
	case FormatOBJ:
		return "OBJ"
	default:
		return "unknown"
	}
}

// FormatFromExt maps a file extension (with or without the dot) to a Format
func FormatFromExt(ext string) Format {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "stl", "scad":
		return FormatSTL
	case "obj":
		return FormatOBJ
	default:
		return FormatUnknown
	}
}

// Face is a triangle given as three indices into Mesh.Vertices
type Face [3]int

// Mesh is an indexed triangle mesh
type Mesh struct {
	Name     string
	Format   Format
	Vertices []geometry.Vector3
	Faces    []Face
}

// New creates an empty mesh
func New(name string, format Format) *Mesh {
	return &Mesh{
		Name:     name,
		Format:   format,
		Vertices: make([]geometry.Vector3, 0),
		Faces:    make([]Face, 0),
	}
}

// AddVertex appends a vertex and returns its index
func (m *Mesh) AddVertex(v geometry.Vector3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddFace appends a triangle
func (m *Mesh) AddFace(a, b, c int) {
	m.Faces = append(m.Faces, Face{a, b, c})
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices)
}

// TriangleCount returns the number of faces
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Faces)
}

// IsEmpty reports whether the mesh has no vertices
func (m *Mesh) IsEmpty() bool {
	return m.VertexCount() == 0
}

// Triangle resolves a face into its corner positions. ok is false when an
// index is out of range.
func (m *Mesh) Triangle(i int) (geometry.Triangle, bool) {
	f := m.Faces[i]
	n := len(m.Vertices)
	for _, idx := range f {
		if idx < 0 || idx >= n {
			return geometry.Triangle{}, false
		}
	}
	t := geometry.Triangle{V1: m.Vertices[f[0]], V2: m.Vertices[f[1]], V3: m.Vertices[f[2]]}
	t.Normal = t.CalculateNormal()
	return t, true
}

// BoundingBox returns the box enclosing all finite vertices
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	if m == nil {
		return bbox
	}
	for _, v := range m.Vertices {
		if v.IsFinite() {
			bbox.Extend(v)
		}
	}
	return bbox
}

// Merge combines several meshes into one, offsetting face indices. The
// result keeps the common format, or FormatUnknown when formats differ.
func Merge(name string, meshes ...*Mesh) *Mesh {
	out := New(name, FormatUnknown)
	first := true
	for _, m := range meshes {
		if m == nil {
			continue
		}
		if first {
			out.Format = m.Format
			first = false
		} else if out.Format != m.Format {
			out.Format = FormatUnknown
		}
		offset := len(out.Vertices)
		out.Vertices = append(out.Vertices, m.Vertices...)
		for _, f := range m.Faces {
			out.Faces = append(out.Faces, Face{f[0] + offset, f[1] + offset, f[2] + offset})
		}
	}
	return out
}
