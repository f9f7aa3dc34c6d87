package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/arcademia/pkg/geometry"
	"github.com/philipparndt/arcademia/pkg/mesh"
)

// EdgeStats summarises the triangle edge lengths of a mesh
type EdgeStats struct {
	EdgeCount     int
	BoundaryEdges int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
}

// AnalyzeEdges measures every undirected edge once. Boundary edges are
// edges used by a single triangle; a watertight mesh has none.
func AnalyzeEdges(m *mesh.Mesh) EdgeStats {
	var result EdgeStats
	if m == nil {
		return result
	}

	usage := make(map[edge]int)
	order := make([]edge, 0)
	n := len(m.Vertices)

	for _, f := range m.Faces {
		if f[0] < 0 || f[0] >= n || f[1] < 0 || f[1] >= n || f[2] < 0 || f[2] >= n {
			continue
		}
		for i := 0; i < 3; i++ {
			a, b := f[i], f[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			e := edge{a, b}
			if usage[e] == 0 {
				order = append(order, e)
			}
			usage[e]++
		}
	}

	if len(order) == 0 {
		return result
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, e := range order {
		length := m.Vertices[e.from].Distance(m.Vertices[e.to])
		totalLength += length
		minLength = math.Min(minLength, length)
		maxLength = math.Max(maxLength, length)
		if usage[e] == 1 {
			result.BoundaryEdges++
		}
	}

	result.EdgeCount = len(order)
	result.MinEdgeLength = minLength
	result.MaxEdgeLength = maxLength
	result.AvgEdgeLength = totalLength / float64(len(order))
	return result
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
