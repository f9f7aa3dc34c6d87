// Package meshtest provides small meshes with known geometry for tests.
package meshtest

import (
	"github.com/philipparndt/arcademia/pkg/geometry"
	"github.com/philipparndt/arcademia/pkg/mesh"
)

// Cube returns an axis-aligned cube with its minimum corner at origin
func Cube(name string, origin geometry.Vector3, side float64) *mesh.Mesh {
	m := mesh.Box(name, origin, geometry.NewVector3(side, side, side))
	m.Format = mesh.FormatSTL
	return m
}

// UnitCube returns the cube [0,1]^3
func UnitCube() *mesh.Mesh {
	return Cube("cube", geometry.Vector3{}, 1)
}

// Triangle returns a single open right triangle with legs a and b in the XY plane
func Triangle(a, b float64) *mesh.Mesh {
	m := mesh.New("triangle", mesh.FormatOBJ)
	m.AddVertex(geometry.NewVector3(0, 0, 0))
	m.AddVertex(geometry.NewVector3(a, 0, 0))
	m.AddVertex(geometry.NewVector3(0, b, 0))
	m.AddFace(0, 1, 2)
	return m
}
