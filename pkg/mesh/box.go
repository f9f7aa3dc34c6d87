package mesh

import "github.com/philipparndt/arcademia/pkg/geometry"

var boxCorners = []geometry.Vector3{
	{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
}

// boxFaces winds every face counter-clockwise when seen from outside
var boxFaces = []Face{
	{0, 2, 1}, {0, 3, 2}, // bottom
	{4, 5, 6}, {4, 6, 7}, // top
	{0, 1, 5}, {0, 5, 4}, // front
	{3, 7, 6}, {3, 6, 2}, // back
	{0, 4, 7}, {0, 7, 3}, // left
	{1, 2, 6}, {1, 6, 5}, // right
}

// Box returns a closed axis-aligned box with its minimum corner at origin
func Box(name string, origin, size geometry.Vector3) *Mesh {
	m := New(name, FormatUnknown)
	for _, c := range boxCorners {
		m.AddVertex(geometry.NewVector3(origin.X+c.X*size.X, origin.Y+c.Y*size.Y, origin.Z+c.Z*size.Z))
	}
	m.Faces = append(m.Faces, boxFaces...)
	return m
}
