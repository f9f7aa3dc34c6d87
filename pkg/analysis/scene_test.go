package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSceneSummaryTotals(t *testing.T) {
	summary := SceneSummary{Models: []SceneModel{
		{Name: "a", Stats: MeshStats{VertexCount: 8, TriangleCount: 12}},
		{Name: "b", Stats: MeshStats{VertexCount: 3, TriangleCount: 1}},
	}}

	assert.Equal(t, 2, summary.ModelCount())
	assert.Equal(t, 11, summary.TotalVertices())
	assert.Equal(t, 13, summary.TotalTriangles())

	assert.Zero(t, SceneSummary{}.TotalVertices())
	assert.Zero(t, SceneSummary{}.ModelCount())
}

func TestSceneSummaryTotalsMatchModels(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 10).Draw(rt, "models")
		summary := SceneSummary{}
		verts, tris := 0, 0
		for i := 0; i < n; i++ {
			v := rapid.IntRange(0, 100000).Draw(rt, "v")
			tr := rapid.IntRange(0, 100000).Draw(rt, "t")
			verts += v
			tris += tr
			summary.Models = append(summary.Models, SceneModel{Name: "m", Stats: MeshStats{VertexCount: v, TriangleCount: tr}})
		}
		if summary.TotalVertices() != verts || summary.TotalTriangles() != tris {
			rt.Fatalf("totals mismatch")
		}
		if summary.TotalVertices() != summary.TotalVertices() {
			rt.Fatalf("totals not stable")
		}
	})
}
