package viewer

import (
	"math"

	"github.com/philipparndt/arcademia/pkg/geometry"
)

// maxPitch keeps the orbit away from the poles where Up becomes parallel to the view
const maxPitch = math.Pi/2 - 0.1

// Camera orbits a target point at a fixed distance
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FOV      float64 // radians
	Distance float64
	Pitch    float64 // rotation around the horizontal axis
	Yaw      float64 // rotation around the vertical axis
}

// NewCamera creates a camera framing bbox
func NewCamera(bbox geometry.BoundingBox) *Camera {
	c := &Camera{
		Up:  geometry.NewVector3(0, 1, 0),
		FOV: math.Pi / 4,
	}
	c.Frame(bbox)
	return c
}

// DefaultBounds is the box framed when nothing is displayed
func DefaultBounds() geometry.BoundingBox {
	return geometry.NewBoundingBoxFrom(geometry.NewVector3(-1, -1, -1), geometry.NewVector3(1, 1, 1))
}

// Frame points the camera at the centre of bbox from a distance that shows
// all of it, keeping the current orientation. An empty box frames the default bounds.
func (c *Camera) Frame(bbox geometry.BoundingBox) {
	if bbox.IsEmpty() {
		bbox = DefaultBounds()
	}
	size := bbox.Size()
	c.Target = bbox.Center()
	c.Distance = max(max(size.X, size.Y, size.Z)*2, 0.1)
	c.UpdatePosition()
}

// FrameDefault frames the default bounds
func (c *Camera) FrameDefault() {
	c.Frame(DefaultBounds())
}

// UpdatePosition places the camera on its orbit sphere
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.Pitch) * math.Sin(c.Yaw)
	y := c.Distance * math.Sin(c.Pitch)
	z := c.Distance * math.Cos(c.Pitch) * math.Cos(c.Yaw)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate orbits the camera by the given angles
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+deltaPitch))
	c.Yaw += deltaYaw
	c.UpdatePosition()
}

// Zoom scales the orbit distance by 1+delta
func (c *Camera) Zoom(delta float64) {
	c.Distance = math.Max(0.1, c.Distance*(1.0+delta))
	c.UpdatePosition()
}

// basis returns the camera's forward, right and up vectors
func (c *Camera) basis() (forward, right, up geometry.Vector3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

// Project maps a point to screen coordinates plus its depth along the view
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	forward, right, up := c.basis()

	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	if z <= 0.01 {
		z = 0.01
	}

	aspect := 1.0
	if height > 0 {
		aspect = width / height
	}
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + width/2
	screenY := (-y/(z*fovScale))*(height/2) + height/2
	return screenX, screenY, z
}

// Facing reports whether a triangle with normal n centred at p faces the camera
func (c *Camera) Facing(p, n geometry.Vector3) bool {
	return n.Dot(c.Position.Sub(p)) > 0
}
