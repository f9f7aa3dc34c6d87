package mesh

import (
	"math"
	"testing"

	"github.com/philipparndt/arcademia/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromExt(t *testing.T) {
	tests := map[string]Format{
		".stl":  FormatSTL,
		"STL":   FormatSTL,
		".Obj":  FormatOBJ,
		".scad": FormatSTL,
		".ply":  FormatUnknown,
		"":      FormatUnknown,
	}
	for ext, want := range tests {
		assert.Equal(t, want, FormatFromExt(ext), "ext %q", ext)
	}
	assert.Equal(t, "STL", FormatSTL.String())
	assert.Equal(t, "OBJ", FormatOBJ.String())
}

func TestTriangleRejectsOutOfRangeIndices(t *testing.T) {
	m := New("bad", FormatOBJ)
	m.AddVertex(geometry.NewVector3(0, 0, 0))
	m.AddVertex(geometry.NewVector3(1, 0, 0))
	m.AddVertex(geometry.NewVector3(0, 1, 0))
	m.AddFace(0, 1, 2)
	m.AddFace(0, 1, 7)
	m.AddFace(-1, 1, 2)

	tri, ok := m.Triangle(0)
	require.True(t, ok)
	assert.InDelta(t, 0.5, tri.Area(), 1e-12)
	assert.Equal(t, geometry.NewVector3(0, 0, 1), tri.Normal)

	_, ok = m.Triangle(1)
	assert.False(t, ok)
	_, ok = m.Triangle(2)
	assert.False(t, ok)
}

func TestBoundingBoxIgnoresNonFinite(t *testing.T) {
	m := New("nan", FormatSTL)
	m.AddVertex(geometry.NewVector3(0, 0, 0))
	m.AddVertex(geometry.NewVector3(math.NaN(), 5, 5))
	m.AddVertex(geometry.NewVector3(1, 2, 3))

	size := m.BoundingBox().Size()
	assert.Equal(t, geometry.NewVector3(1, 2, 3), size)
}

func TestNilMeshCounts(t *testing.T) {
	var m *Mesh
	assert.Equal(t, 0, m.VertexCount())
	assert.Equal(t, 0, m.TriangleCount())
	assert.True(t, m.IsEmpty())
	assert.True(t, m.BoundingBox().IsEmpty())
}

func TestWelderSharesEqualCorners(t *testing.T) {
	w := NewWelder("quad", FormatSTL)
	a := geometry.NewVector3(0, 0, 0)
	b := geometry.NewVector3(1, 0, 0)
	c := geometry.NewVector3(1, 1, 0)
	d := geometry.NewVector3(0, 1, 0)
	w.AddTriangle(a, b, c)
	w.AddTriangle(a, c, d)

	m := w.Mesh()
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, []Face{{0, 1, 2}, {0, 2, 3}}, m.Faces)
	assert.Equal(t, "quad", m.Name)
	assert.Equal(t, FormatSTL, m.Format)
}

func TestWelderTreatsNegativeZeroAsZero(t *testing.T) {
	w := NewWelder("zero", FormatSTL)
	negZero := math.Copysign(0, -1)
	w.AddTriangle(geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 1, 0))
	w.AddTriangle(geometry.NewVector3(negZero, 0, negZero), geometry.NewVector3(0, 1, 0), geometry.NewVector3(0, 0, 1))

	assert.Equal(t, 4, w.Mesh().VertexCount())
}

func TestMerge(t *testing.T) {
	a := New("a", FormatSTL)
	a.AddVertex(geometry.NewVector3(0, 0, 0))
	a.AddVertex(geometry.NewVector3(1, 0, 0))
	a.AddVertex(geometry.NewVector3(0, 1, 0))
	a.AddFace(0, 1, 2)

	b := New("b", FormatSTL)
	b.AddVertex(geometry.NewVector3(5, 5, 5))
	b.AddVertex(geometry.NewVector3(6, 5, 5))
	b.AddVertex(geometry.NewVector3(5, 6, 5))
	b.AddFace(2, 1, 0)

	merged := Merge("scene", a, nil, b)
	assert.Equal(t, 6, merged.VertexCount())
	assert.Equal(t, []Face{{0, 1, 2}, {5, 4, 3}}, merged.Faces)
	assert.Equal(t, FormatSTL, merged.Format)

	b.Format = FormatOBJ
	assert.Equal(t, FormatUnknown, Merge("mixed", a, b).Format)
}

func TestBox(t *testing.T) {
	m := Box("ground", geometry.NewVector3(-2.5, -0.02, -2.5), geometry.NewVector3(5, 0.02, 5))

	assert.Equal(t, 8, m.VertexCount())
	assert.Equal(t, 12, m.TriangleCount())
	bbox := m.BoundingBox()
	assert.Equal(t, geometry.NewVector3(-2.5, -0.02, -2.5), bbox.Min)
	assert.InDelta(t, 0, bbox.Max.Y, 1e-12)
	assert.InDelta(t, 2.5, bbox.Max.X, 1e-12)

	for i := range m.Faces {
		tri, ok := m.Triangle(i)
		require.True(t, ok)
		outward := tri.Center().Sub(bbox.Center())
		assert.Positive(t, tri.Normal.Dot(outward), "face %d points inward", i)
	}
}
