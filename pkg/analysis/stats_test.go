package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/arcademia/internal/meshtest"
	"github.com/philipparndt/arcademia/pkg/geometry"
	"github.com/philipparndt/arcademia/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestAnalyzeUnitCube(t *testing.T) {
	stats := Analyze(meshtest.UnitCube())

	assert.Equal(t, 8, stats.VertexCount)
	assert.Equal(t, 12, stats.TriangleCount)
	assert.InDelta(t, 1.0, stats.Width, 1e-12)
	assert.InDelta(t, 1.0, stats.Height, 1e-12)
	assert.InDelta(t, 1.0, stats.Depth, 1e-12)
	assert.InDelta(t, 6.0, stats.SurfaceArea, 1e-12)
	assert.True(t, stats.Watertight)
	require.True(t, stats.VolumeAvailable)
	assert.Equal(t, 1.0, stats.Volume)
	assert.Equal(t, geometry.NewVector3(0.5, 0.5, 0.5), stats.Center)
	assert.Equal(t, mesh.FormatSTL, stats.Format)
	assert.False(t, stats.Empty)
	assert.Zero(t, stats.DegenerateCount)
}

func TestAnalyzeVolumeIsExactForIntegerCoordinates(t *testing.T) {
	stats := Analyze(meshtest.Cube("offset", geometry.NewVector3(1, 2, 3), 3))

	require.True(t, stats.VolumeAvailable)
	assert.Equal(t, 27.0, stats.Volume)
}

func TestAnalyzeOpenTriangle(t *testing.T) {
	stats := Analyze(meshtest.Triangle(3, 4))

	assert.Equal(t, 3, stats.VertexCount)
	assert.Equal(t, 1, stats.TriangleCount)
	assert.False(t, stats.Watertight)
	assert.False(t, stats.VolumeAvailable)
	assert.Zero(t, stats.Volume)
	assert.InDelta(t, 6.0, stats.SurfaceArea, 1e-12)
	assert.InDelta(t, 0.0, stats.Depth, 1e-12)
}

func TestAnalyzeEmpty(t *testing.T) {
	for name, m := range map[string]*mesh.Mesh{
		"nil":   nil,
		"empty": mesh.New("empty", mesh.FormatOBJ),
	} {
		t.Run(name, func(t *testing.T) {
			stats := Analyze(m)
			assert.True(t, stats.Empty)
			assert.Zero(t, stats.VertexCount)
			assert.Zero(t, stats.TriangleCount)
			assert.Zero(t, stats.SurfaceArea)
			assert.Zero(t, stats.Width+stats.Height+stats.Depth)
			assert.False(t, stats.Watertight)
			assert.False(t, stats.VolumeAvailable)
		})
	}
}

func TestAnalyzeSkipsDegenerateTriangles(t *testing.T) {
	m := meshtest.UnitCube()
	collinear := m.AddVertex(geometry.NewVector3(2, 2, 2))
	m.AddFace(0, 6, collinear) // (0,0,0) (1,1,1) (2,2,2) is a line
	m.AddFace(1, 1, 2)         // repeated index
	m.AddFace(0, 1, 99)        // out of range

	stats := Analyze(m)

	assert.Equal(t, 15, stats.TriangleCount)
	assert.Equal(t, 3, stats.DegenerateCount)
	assert.InDelta(t, 6.0, stats.SurfaceArea, 1e-12)
	// the extra vertex still widens the bounding box
	assert.InDelta(t, 2.0, stats.Width, 1e-12)
	// degenerate faces are ignored by the watertightness check
	assert.True(t, stats.Watertight)
	assert.InDelta(t, 1.0, stats.Volume, 1e-12)
}

func TestAnalyzeOnlyDegenerateIsNotWatertight(t *testing.T) {
	m := mesh.New("line", mesh.FormatSTL)
	m.AddVertex(geometry.NewVector3(0, 0, 0))
	m.AddVertex(geometry.NewVector3(1, 0, 0))
	m.AddVertex(geometry.NewVector3(2, 0, 0))
	m.AddFace(0, 1, 2)

	stats := Analyze(m)
	assert.False(t, stats.Watertight)
	assert.Zero(t, stats.SurfaceArea)
	assert.Equal(t, 1, stats.DegenerateCount)
}

func TestAnalyzeInconsistentWinding(t *testing.T) {
	m := meshtest.UnitCube()
	f := m.Faces[0]
	m.Faces[0] = mesh.Face{f[0], f[2], f[1]}

	stats := Analyze(m)
	assert.False(t, stats.Watertight)
	assert.False(t, stats.VolumeAvailable)
	assert.InDelta(t, 6.0, stats.SurfaceArea, 1e-12)
}

func TestAnalyzeInwardFacingCube(t *testing.T) {
	m := meshtest.Cube("inside-out", geometry.NewVector3(-1, -1, -1), 2)
	for i, f := range m.Faces {
		m.Faces[i] = mesh.Face{f[0], f[2], f[1]}
	}

	stats := Analyze(m)
	require.True(t, stats.Watertight)
	assert.InDelta(t, 8.0, stats.Volume, 1e-12)
	assert.InDelta(t, 24.0, stats.SurfaceArea, 1e-12)
}

func TestAnalyzeMissingFaceIsOpen(t *testing.T) {
	m := meshtest.UnitCube()
	m.Faces = m.Faces[:11]

	stats := Analyze(m)
	assert.False(t, stats.Watertight)
	assert.InDelta(t, 5.5, stats.SurfaceArea, 1e-12)
}

func TestAnalyzeDuplicatedFaceIsNotWatertight(t *testing.T) {
	m := meshtest.UnitCube()
	m.Faces = append(m.Faces, m.Faces[0])

	assert.False(t, Analyze(m).Watertight)
}

func TestAnalyzeTwoDisjointCubes(t *testing.T) {
	a := meshtest.Cube("a", geometry.Vector3{}, 1)
	b := meshtest.Cube("b", geometry.NewVector3(3, 0, 0), 2)
	stats := Analyze(mesh.Merge("pair", a, b))

	require.True(t, stats.Watertight)
	assert.InDelta(t, 9.0, stats.Volume, 1e-12)
	assert.InDelta(t, 5.0, stats.Width, 1e-12)
	assert.InDelta(t, 30.0, stats.SurfaceArea, 1e-12)
}

func TestAnalyzeTranslatedCubeVolume(t *testing.T) {
	stats := Analyze(meshtest.Cube("far", geometry.NewVector3(100, -50, 25), 3))

	require.True(t, stats.Watertight)
	assert.InDelta(t, 27.0, stats.Volume, 1e-9)
	assert.InDelta(t, 54.0, stats.SurfaceArea, 1e-9)
}

func randomMesh(t *rapid.T) *mesh.Mesh {
	nv := rapid.IntRange(0, 20).Draw(t, "vertices")
	m := mesh.New("random", mesh.FormatOBJ)
	for i := 0; i < nv; i++ {
		m.AddVertex(geometry.NewVector3(
			rapid.Float64Range(-100, 100).Draw(t, "x"),
			rapid.Float64Range(-100, 100).Draw(t, "y"),
			rapid.Float64Range(-100, 100).Draw(t, "z"),
		))
	}
	nf := rapid.IntRange(0, 30).Draw(t, "faces")
	for i := 0; i < nf; i++ {
		// allow out-of-range indices to exercise the lenient path
		m.AddFace(
			rapid.IntRange(-1, nv).Draw(t, "a"),
			rapid.IntRange(-1, nv).Draw(t, "b"),
			rapid.IntRange(-1, nv).Draw(t, "c"),
		)
	}
	return m
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := randomMesh(rt)
		first := Analyze(m)
		second := Analyze(m)
		if first != second {
			rt.Fatalf("analysis differs between runs: %+v vs %+v", first, second)
		}
	})
}

func TestAnalyzeInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := randomMesh(rt)
		stats := Analyze(m)

		if stats.Width < 0 || stats.Height < 0 || stats.Depth < 0 {
			rt.Fatalf("negative extent: %+v", stats)
		}
		if stats.SurfaceArea < 0 || stats.Volume < 0 {
			rt.Fatalf("negative area or volume: %+v", stats)
		}
		if stats.VolumeAvailable != stats.Watertight {
			rt.Fatalf("volume reported without watertight surface: %+v", stats)
		}
		if stats.DegenerateCount > stats.TriangleCount {
			rt.Fatalf("more degenerate than total triangles: %+v", stats)
		}
		if stats.Empty != (stats.VertexCount == 0) {
			rt.Fatalf("empty flag mismatch: %+v", stats)
		}
	})
}

func TestSurfaceAreaSumsOnlyValidTriangles(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := randomMesh(rt)
		expected := 0.0
		for i, f := range m.Faces {
			tri, ok := m.Triangle(i)
			if !ok || f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
				continue
			}
			if a := tri.Area(); a > DegenerateArea {
				expected += a
			}
		}
		stats := Analyze(m)
		if math.Abs(stats.SurfaceArea-expected) > 1e-9*math.Max(1, expected) {
			rt.Fatalf("surface area %v, expected %v", stats.SurfaceArea, expected)
		}
	})
}
