package app

import (
	"sync"

	"github.com/philipparndt/arcademia/pkg/catalog"
	"github.com/philipparndt/arcademia/pkg/mesh"
)

// SelectionState tracks the list selection and the meshes loaded so far
type SelectionState struct {
	mu       sync.Mutex
	selected string
	loaded   map[string]*mesh.Mesh // by catalog name, kept until removed
}

func (s *SelectionState) get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *SelectionState) set(name string) {
	s.mu.Lock()
	s.selected = name
	s.mu.Unlock()
}

func (s *SelectionState) mesh(name string) (*mesh.Mesh, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.loaded[name]
	return m, ok
}

func (s *SelectionState) store(name string, m *mesh.Mesh) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded == nil {
		s.loaded = make(map[string]*mesh.Mesh)
	}
	s.loaded[name] = m
}

// reset forgets every loaded mesh except name
func (s *SelectionState) reset(name string, m *mesh.Mesh) {
	s.mu.Lock()
	s.loaded = map[string]*mesh.Mesh{name: m}
	s.mu.Unlock()
}

func (s *SelectionState) drop(name string) {
	s.mu.Lock()
	delete(s.loaded, name)
	s.mu.Unlock()
}

// FolderState holds the models folder and its watcher callback
type FolderState struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	onChange func([]catalog.Entry)
}
