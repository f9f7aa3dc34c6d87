// Package scene keeps the ordered set of models currently on display.
package scene

import (
	"sync"

	"github.com/philipparndt/arcademia/pkg/analysis"
	"github.com/philipparndt/arcademia/pkg/geometry"
	"github.com/philipparndt/arcademia/pkg/mesh"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type item struct {
	name string
	mesh *mesh.Mesh
}

// Scene is safe for concurrent use
type Scene struct {
	mu    sync.RWMutex
	items []item
}

// New creates an empty scene
func New() *Scene {
	return &Scene{}
}

// Display replaces the whole scene with a single model
func (s *Scene) Display(name string, m *mesh.Mesh) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []item{{name: name, mesh: m}}
}

// Add puts a model into the scene. A model with the same name is replaced
// in place, keeping its position.
func (s *Scene) Add(name string, m *mesh.Mesh) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].name == name {
			s.items[i].mesh = m
			return
		}
	}
	s.items = append(s.items, item{name: name, mesh: m})
}

// Remove takes a model out of the scene and reports whether it was present
func (s *Scene) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].name == name {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every model
func (s *Scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Get returns the mesh of a model in the scene
func (s *Scene) Get(name string) (*mesh.Mesh, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.name == name {
			return it.mesh, true
		}
	}
	return nil, false
}

// Names returns the model names in display order
func (s *Scene) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.items))
	for i, it := range s.items {
		names[i] = it.name
	}
	return names
}

// Meshes returns the meshes in display order
func (s *Scene) Meshes() []*mesh.Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meshes := make([]*mesh.Mesh, len(s.items))
	for i, it := range s.items {
		meshes[i] = it.mesh
	}
	return meshes
}

// Len returns the number of models
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Summary analyzes every model; stats are recomputed on each call
func (s *Scene) Summary() analysis.SceneSummary {
	s.mu.RLock()
	items := make([]item, len(s.items))
	copy(items, s.items)
	s.mu.RUnlock()

	summary := analysis.SceneSummary{Models: make([]analysis.SceneModel, 0, len(items))}
	for _, it := range items {
		summary.Models = append(summary.Models, analysis.SceneModel{
			Name:  it.name,
			Stats: analysis.Analyze(it.mesh),
		})
	}
	return summary
}

// Totals returns the vertex and triangle counts summed over all models
func (s *Scene) Totals() (vertices, triangles int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		vertices += it.mesh.VertexCount()
		triangles += it.mesh.TriangleCount()
	}
	return vertices, triangles
}

// StatsLine renders the totals for the status label
func (s *Scene) StatsLine() string {
	if s.Len() == 0 {
		return "Stats: —"
	}
	v, t := s.Totals()
	return message.NewPrinter(language.English).Sprintf("Stats: Verts=%d  Tris=%d", v, t)
}

// Merge combines all models into one mesh for preview and streaming.
// It returns nil for an empty scene.
func (s *Scene) Merge() *mesh.Mesh {
	meshes := s.Meshes()
	if len(meshes) == 0 {
		return nil
	}
	return mesh.Merge("scene", meshes...)
}

// BoundingBox encloses every model of the scene
func (s *Scene) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, m := range s.Meshes() {
		bbox = bbox.Union(m.BoundingBox())
	}
	return bbox
}
