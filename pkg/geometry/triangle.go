package geometry

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{Normal: normal, V1: v1, V2: v2, V3: v3}
}

// CalculateNormal computes the unit normal from the winding order (V1, V2, V3)
func (t Triangle) CalculateNormal() Vector3 {
	return t.crossProduct().Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.crossProduct().Length() / 2.0
}

// TripleProduct returns V1·(V2×V3), six times the signed volume of the
// tetrahedron spanned by the origin and the triangle. Summed over a closed,
// consistently wound surface and divided by six it yields the enclosed volume.
func (t Triangle) TripleProduct() float64 {
	return t.V1.Dot(t.V2.Cross(t.V3))
}

// SignedVolume returns the signed volume of the tetrahedron spanned by the
// origin and the triangle
func (t Triangle) SignedVolume() float64 {
	return t.TripleProduct() / 6.0
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float64 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return t.V1.Add(t.V2).Add(t.V3).Mul(1.0 / 3.0)
}

func (t Triangle) crossProduct() Vector3 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1))
}
