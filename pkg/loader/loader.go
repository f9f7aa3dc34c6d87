// Package loader reads model files from disk into indexed meshes.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/arcademia/pkg/mesh"
	"github.com/philipparndt/arcademia/pkg/obj"
	"github.com/philipparndt/arcademia/pkg/openscad"
	"github.com/philipparndt/arcademia/pkg/stl"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrUnsupportedFormat is returned for extensions other than .stl, .obj and .scad
	ErrUnsupportedFormat = errors.New("unsupported file type")
	// ErrEmptyMesh is returned when a file decodes to a mesh without triangles
	ErrEmptyMesh = errors.New("empty or invalid mesh")
)

// SupportedExtensions lists the file extensions Load understands
var SupportedExtensions = []string{".stl", ".obj", ".scad"}

// IsSupported reports whether path has a loadable extension
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// Load reads a model file. The mesh is named after the file.
func Load(ctx context.Context, path string) (*mesh.Mesh, error) {
	var (
		m   *mesh.Mesh
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		m, err = loadSTL(path)
	case ".obj":
		m, err = obj.Parse(path)
	case ".scad":
		m, err = loadSCAD(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %s (expected .stl, .obj or .scad)", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)
	}

	if m.TriangleCount() == 0 {
		return nil, fmt.Errorf("failed to load %s: %w", filepath.Base(path), ErrEmptyMesh)
	}

	m.Name = filepath.Base(path)
	return m, nil
}

func loadSTL(path string) (*mesh.Mesh, error) {
	model, err := stl.Parse(path)
	if err != nil {
		return nil, err
	}
	return model.ToMesh(), nil
}

// loadSCAD renders the file to a temporary STL and loads that
func loadSCAD(ctx context.Context, path string) (*mesh.Mesh, error) {
	tmp, err := os.CreateTemp("", "arcademia-*.stl")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	renderer := openscad.NewRenderer(filepath.Dir(path))
	if err := renderer.RenderToSTL(ctx, path, tmpPath); err != nil {
		return nil, err
	}

	return loadSTL(tmpPath)
}

// LoadAll loads several files concurrently, at most limit at a time
// (limit <= 0 means no limit). Results keep the order of paths; the first
// error cancels the remaining loads.
func LoadAll(ctx context.Context, paths []string, limit int) ([]*mesh.Mesh, error) {
	meshes := make([]*mesh.Mesh, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := Load(gctx, path)
			if err != nil {
				return err
			}
			meshes[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return meshes, nil
}
