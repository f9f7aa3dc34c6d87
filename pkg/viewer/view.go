package viewer

import (
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/arcademia/pkg/geometry"
	"github.com/philipparndt/arcademia/pkg/mesh"
)

// maxWireEdges bounds the number of canvas lines for very dense meshes
const maxWireEdges = 30000

var wireColor = color.RGBA{200, 210, 240, 255}

// SceneView draws the displayed meshes as a wireframe. Drag orbits, scroll zooms.
type SceneView struct {
	widget.BaseWidget

	mu        sync.Mutex
	mesh      *mesh.Mesh
	camera    *Camera
	opts      Options
	lines     []fyne.CanvasObject
	dragStart *fyne.Position
	width     float64
	height    float64
}

// NewSceneView creates an empty view framing the default bounds, with axes
// shown and back faces drawn
func NewSceneView() *SceneView {
	v := &SceneView{
		camera: NewCamera(DefaultBounds()),
		opts:   Options{ShowAxes: true, DoubleSided: true},
	}
	v.ExtendBaseWidget(v)
	return v
}

// SetMesh replaces the displayed geometry and frames it. nil clears the view.
func (v *SceneView) SetMesh(m *mesh.Mesh) {
	v.mu.Lock()
	v.mesh = m
	v.camera.Frame(m.BoundingBox())
	v.mu.Unlock()
	v.redraw()
}

// Reframe points the camera at the displayed geometry again
func (v *SceneView) Reframe() {
	v.mu.Lock()
	v.camera.Frame(v.mesh.BoundingBox())
	v.mu.Unlock()
	v.redraw()
}

// FrameOn points the camera at bbox, which may cover only part of the geometry
func (v *SceneView) FrameOn(bbox geometry.BoundingBox) {
	v.mu.Lock()
	v.camera.Frame(bbox)
	v.mu.Unlock()
	v.redraw()
}

// SetShowAxes toggles the coordinate axes
func (v *SceneView) SetShowAxes(show bool) {
	v.mu.Lock()
	v.opts.ShowAxes = show
	v.mu.Unlock()
	v.redraw()
}

// SetDoubleSided toggles drawing of back faces
func (v *SceneView) SetDoubleSided(on bool) {
	v.mu.Lock()
	v.opts.DoubleSided = on
	v.mu.Unlock()
	v.redraw()
}

// Options returns the current drawing options
func (v *SceneView) Options() Options {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.opts
}

// Snapshot renders the current view into an image of the given size
func (v *SceneView) Snapshot(width, height int) *image.RGBA {
	v.mu.Lock()
	defer v.mu.Unlock()
	cam := *v.camera
	return Rasterize(v.mesh, &cam, v.opts, width, height)
}

// Dragged orbits the camera
func (v *SceneView) Dragged(event *fyne.DragEvent) {
	v.mu.Lock()
	if v.dragStart != nil {
		dx := event.Position.X - v.dragStart.X
		dy := event.Position.Y - v.dragStart.Y
		v.camera.Rotate(float64(-dy)*0.01, float64(dx)*0.01)
	}
	pos := event.Position
	v.dragStart = &pos
	v.mu.Unlock()
	v.redraw()
}

// DragEnd finishes an orbit
func (v *SceneView) DragEnd() {
	v.mu.Lock()
	v.dragStart = nil
	v.mu.Unlock()
}

// Scrolled zooms the camera
func (v *SceneView) Scrolled(event *fyne.ScrollEvent) {
	v.mu.Lock()
	v.camera.Zoom(-float64(event.Scrolled.DY) * 0.001)
	v.mu.Unlock()
	v.redraw()
}

// CreateRenderer creates the renderer for the widget
func (v *SceneView) CreateRenderer() fyne.WidgetRenderer {
	return &sceneViewRenderer{view: v, bg: canvas.NewRectangle(backgroundColor)}
}

func (v *SceneView) redraw() {
	v.mu.Lock()
	v.lines = v.buildLines()
	v.mu.Unlock()
	v.Refresh()
}

// buildLines projects the visible edges. Caller holds mu.
func (v *SceneView) buildLines() []fyne.CanvasObject {
	w, h := v.width, v.height
	if w <= 0 || h <= 0 {
		return nil
	}

	var objs []fyne.CanvasObject
	seen := make(map[[2]int]struct{})
	for i := 0; i < v.mesh.TriangleCount() && len(seen) < maxWireEdges; i++ {
		tri, ok := v.mesh.Triangle(i)
		if !ok {
			continue
		}
		if !v.opts.DoubleSided && !v.camera.Facing(tri.Center(), tri.Normal) {
			continue
		}
		f := v.mesh.Faces[i]
		for k := range 3 {
			a, b := f[k], f[(k+1)%3]
			key := [2]int{min(a, b), max(a, b)}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			objs = append(objs, v.line(v.mesh.Vertices[a], v.mesh.Vertices[b], wireColor, 1))
		}
	}

	if v.opts.ShowAxes {
		length := axisLength(v.mesh)
		origin := geometry.Vector3{}
		dirs := [3]geometry.Vector3{{X: length}, {Y: length}, {Z: length}}
		for i, d := range dirs {
			objs = append(objs, v.line(origin, d, axisColors[i], 2))
		}
	}
	return objs
}

func (v *SceneView) line(a, b geometry.Vector3, col color.Color, width float32) *canvas.Line {
	x1, y1, _ := v.camera.Project(a, v.width, v.height)
	x2, y2, _ := v.camera.Project(b, v.width, v.height)
	l := canvas.NewLine(col)
	l.StrokeWidth = width
	l.Position1 = fyne.NewPos(float32(x1), float32(y1))
	l.Position2 = fyne.NewPos(float32(x2), float32(y2))
	return l
}

type sceneViewRenderer struct {
	view *SceneView
	bg   *canvas.Rectangle
}

func (r *sceneViewRenderer) Layout(size fyne.Size) {
	r.view.mu.Lock()
	r.view.width = float64(size.Width)
	r.view.height = float64(size.Height)
	r.view.lines = r.view.buildLines()
	r.view.mu.Unlock()
	r.bg.Resize(size)
}

func (r *sceneViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(480, 400)
}

func (r *sceneViewRenderer) Refresh() {
	canvas.Refresh(r.view)
}

func (r *sceneViewRenderer) Objects() []fyne.CanvasObject {
	r.view.mu.Lock()
	defer r.view.mu.Unlock()
	return append([]fyne.CanvasObject{r.bg}, r.view.lines...)
}

func (r *sceneViewRenderer) Destroy() {}
