package analysis

// SceneModel pairs a model name with its statistics
type SceneModel struct {
	Name  string
	Stats MeshStats
}

// SceneSummary lists the models of a scene in display order
type SceneSummary struct {
	Models []SceneModel
}

// ModelCount returns the number of models in the scene
func (s SceneSummary) ModelCount() int {
	return len(s.Models)
}

// TotalVertices sums the vertex counts of all models
func (s SceneSummary) TotalVertices() int {
	total := 0
	for _, m := range s.Models {
		total += m.Stats.VertexCount
	}
	return total
}

// TotalTriangles sums the triangle counts of all models
func (s SceneSummary) TotalTriangles() int {
	total := 0
	for _, m := range s.Models {
		total += m.Stats.TriangleCount
	}
	return total
}
