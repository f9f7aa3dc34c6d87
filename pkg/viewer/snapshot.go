package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/philipparndt/arcademia/pkg/geometry"
	"github.com/philipparndt/arcademia/pkg/mesh"
)

// Options controls how the scene is drawn
type Options struct {
	ShowAxes    bool
	DoubleSided bool
}

var (
	backgroundColor = color.RGBA{30, 30, 36, 255}
	surfaceColor    = color.RGBA{178, 190, 230, 255}
	axisColors      = [3]color.RGBA{{230, 60, 60, 255}, {60, 200, 80, 255}, {70, 110, 240, 255}}
)

// Rasterize renders m as filled, flat-shaded, depth-tested triangles
func Rasterize(m *mesh.Mesh, cam *Camera, opts Options, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: backgroundColor}, image.Point{}, draw.Src)

	zbuffer := make([]float64, width*height)
	for i := range zbuffer {
		zbuffer[i] = math.Inf(1)
	}

	w, h := float64(width), float64(height)
	for i := 0; i < m.TriangleCount(); i++ {
		tri, ok := m.Triangle(i)
		if !ok || tri.Area() <= 0 {
			continue
		}
		center := tri.Center()
		facing := cam.Facing(center, tri.Normal)
		if !facing && !opts.DoubleSided {
			continue
		}

		light := math.Abs(tri.Normal.Dot(cam.Position.Sub(center).Normalize()))
		col := shade(surfaceColor, 0.25+0.75*light)

		var pts [3]screenPoint
		for k, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			x, y, z := cam.Project(v, w, h)
			pts[k] = screenPoint{x, y, z}
		}
		fillTriangleWithDepth(img, zbuffer, pts[0], pts[1], pts[2], col)
	}

	if opts.ShowAxes {
		drawAxes(img, cam, axisLength(m))
	}
	return img
}

// axisLength sizes the axes to the model, falling back to one unit
func axisLength(m *mesh.Mesh) float64 {
	bbox := m.BoundingBox()
	if bbox.IsEmpty() {
		return 1
	}
	return max(bbox.Diagonal()/2, 1)
}

func drawAxes(img *image.RGBA, cam *Camera, length float64) {
	w, h := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	ox, oy, _ := cam.Project(geometry.Vector3{}, w, h)
	dirs := [3]geometry.Vector3{{X: length}, {Y: length}, {Z: length}}
	for i, d := range dirs {
		x, y, _ := cam.Project(d, w, h)
		drawLine(img, int(ox), int(oy), int(x), int(y), axisColors[i])
	}
}

func shade(c color.RGBA, f float64) color.RGBA {
	f = math.Max(0, math.Min(1, f))
	return color.RGBA{uint8(float64(c.R) * f), uint8(float64(c.G) * f), uint8(float64(c.B) * f), c.A}
}

// ScreenshotPath returns dir/shot_<unix seconds>.png
func ScreenshotPath(dir string, at time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("shot_%d.png", at.Unix()))
}

// SavePNG writes img to path, creating parent directories
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode screenshot: %w", err)
	}
	return f.Close()
}
