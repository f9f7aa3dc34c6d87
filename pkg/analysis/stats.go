package analysis

import (
	"math"

	"github.com/philipparndt/arcademia/pkg/geometry"
	"github.com/philipparndt/arcademia/pkg/mesh"
)

// DegenerateArea is the area at or below which a triangle is treated as
// degenerate and left out of area, volume and watertightness.
const DegenerateArea = 1e-12

// MeshStats contains the descriptive statistics of a single mesh
type MeshStats struct {
	Format          mesh.Format
	VertexCount     int
	TriangleCount   int
	Width           float64 // X extent
	Height          float64 // Y extent
	Depth           float64 // Z extent
	Center          geometry.Vector3
	SurfaceArea     float64
	Volume          float64
	VolumeAvailable bool
	Watertight      bool
	Empty           bool
	DegenerateCount int
}

// Dimensions returns the bounding box extents as a vector
func (s MeshStats) Dimensions() geometry.Vector3 {
	return geometry.NewVector3(s.Width, s.Height, s.Depth)
}

// Analyze computes the statistics of m. It never fails: an empty or nil
// mesh yields zero stats flagged Empty, and degenerate triangles are
// skipped rather than reported.
func Analyze(m *mesh.Mesh) MeshStats {
	if m.IsEmpty() {
		stats := MeshStats{Empty: true}
		if m != nil {
			stats.Format = m.Format
		}
		return stats
	}

	bbox := m.BoundingBox()
	size := bbox.Size()
	stats := MeshStats{
		Format:        m.Format,
		VertexCount:   m.VertexCount(),
		TriangleCount: m.TriangleCount(),
		Width:         size.X,
		Height:        size.Y,
		Depth:         size.Z,
		Center:        bbox.Center(),
	}

	edges := newEdgeSet()
	tripleSum := 0.0 // six times the signed volume
	valid := 0

	for i, f := range m.Faces {
		tri, ok := m.Triangle(i)
		if !ok || f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			stats.DegenerateCount++
			continue
		}
		area := tri.Area()
		if math.IsNaN(area) || math.IsInf(area, 0) || area <= DegenerateArea {
			stats.DegenerateCount++
			continue
		}

		valid++
		stats.SurfaceArea += area
		tripleSum += tri.TripleProduct()
		edges.add(f)
	}

	stats.Watertight = valid > 0 && edges.closed()
	if stats.Watertight {
		stats.Volume = math.Abs(tripleSum) / 6
		stats.VolumeAvailable = true
	}

	return stats
}

type edge struct {
	from, to int
}

// edgeSet counts directed edges of the non-degenerate faces
type edgeSet map[edge]int

func newEdgeSet() edgeSet {
	return make(edgeSet)
}

func (s edgeSet) add(f mesh.Face) {
	s[edge{f[0], f[1]}]++
	s[edge{f[1], f[2]}]++
	s[edge{f[2], f[0]}]++
}

// closed reports whether every edge is shared by exactly two faces that
// traverse it in opposite directions.
func (s edgeSet) closed() bool {
	for e, n := range s {
		if n != 1 || s[edge{e.to, e.from}] != 1 {
			return false
		}
	}
	return true
}
