package geometry

import (
	"math"
	"testing"
)

func rightTriangle() Triangle {
	// Right triangle with sides 3, 4, 5
	return NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)
}

func TestTriangleArea(t *testing.T) {
	area := rightTriangle().Area()
	expected := 6.0 // (3 * 4) / 2

	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleAreaDegenerate(t *testing.T) {
	tri := NewTriangle(
		Vector3{},
		NewVector3(0, 0, 0),
		NewVector3(1, 1, 1),
		NewVector3(2, 2, 2),
	)

	if area := tri.Area(); area != 0 {
		t.Errorf("Collinear triangle should have zero area, got %v", area)
	}
}

func TestTriangleCalculateNormal(t *testing.T) {
	normal := rightTriangle().CalculateNormal()
	expected := NewVector3(0, 0, 1)

	if normal.Distance(expected) > 1e-10 {
		t.Errorf("Normal failed: expected %v, got %v", expected, normal)
	}
}

func TestTriangleSignedVolume(t *testing.T) {
	// Tetrahedron (0,0,0) (1,0,0) (0,1,0) (0,0,1) has volume 1/6
	tri := NewTriangle(
		Vector3{},
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
		NewVector3(0, 0, 1),
	)

	if v := tri.SignedVolume(); math.Abs(v-1.0/6.0) > 1e-12 {
		t.Errorf("SignedVolume failed: expected %v, got %v", 1.0/6.0, v)
	}

	if v := tri.TripleProduct(); v != 1 {
		t.Errorf("TripleProduct failed: expected 1, got %v", v)
	}

	flipped := NewTriangle(Vector3{}, tri.V1, tri.V3, tri.V2)
	if v := flipped.SignedVolume(); math.Abs(v+1.0/6.0) > 1e-12 {
		t.Errorf("SignedVolume of flipped winding failed: expected %v, got %v", -1.0/6.0, v)
	}
}

func TestTriangleEdgeLengthsAndPerimeter(t *testing.T) {
	tri := rightTriangle()
	lengths := tri.EdgeLengths()

	expected := [3]float64{3, 5, 4}
	for i := range expected {
		if math.Abs(lengths[i]-expected[i]) > 1e-10 {
			t.Errorf("Edge %d length failed: expected %v, got %v", i, expected[i], lengths[i])
		}
	}

	if p := tri.Perimeter(); math.Abs(p-12.0) > 1e-10 {
		t.Errorf("Perimeter failed: expected 12, got %v", p)
	}
}

func TestTriangleCenter(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 3, 0),
	)

	center := tri.Center()
	expected := NewVector3(1, 1, 0)

	if center.Distance(expected) > 1e-12 {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}
