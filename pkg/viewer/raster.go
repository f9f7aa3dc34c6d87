package viewer

import (
	"image"
	"image/color"
	"math"
)

// screenPoint is a projected vertex: pixel position plus view depth
type screenPoint struct {
	X, Y, Z float64
}

// fillTriangleWithDepth fills a triangle using barycentric coverage over its
// bounding rectangle, writing only pixels closer than the z-buffer entry.
func fillTriangleWithDepth(img *image.RGBA, zbuffer []float64, a, b, c screenPoint, col color.RGBA) {
	bounds := img.Bounds()
	width := bounds.Dx()

	area := edge(a, b, c.X, c.Y)
	if area == 0 {
		return
	}

	minX := max(bounds.Min.X, int(math.Floor(min(a.X, b.X, c.X))))
	maxX := min(bounds.Max.X-1, int(math.Ceil(max(a.X, b.X, c.X))))
	minY := max(bounds.Min.Y, int(math.Floor(min(a.Y, b.Y, c.Y))))
	maxY := min(bounds.Max.Y-1, int(math.Ceil(max(a.Y, b.Y, c.Y))))

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5

			w0 := edge(b, c, px, py) / area
			w1 := edge(c, a, px, py) / area
			w2 := edge(a, b, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*a.Z + w1*b.Z + w2*c.Z
			idx := (y-bounds.Min.Y)*width + (x - bounds.Min.X)
			if z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// edge is twice the signed area of (a, b, p)
func edge(a, b screenPoint, px, py float64) float64 {
	return (b.X-a.X)*(py-a.Y) - (b.Y-a.Y)*(px-a.X)
}

// drawLine draws a line on an image using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()
	p := image.Point{}

	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	// lines far off screen would take forever to walk
	if dx-dy > 4*(bounds.Dx()+bounds.Dy()) {
		return
	}

	err := dx + dy
	for {
		p.X, p.Y = x1, y1
		if p.In(bounds) {
			img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
