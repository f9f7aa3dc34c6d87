package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/arcademia/internal/app"
	"github.com/philipparndt/arcademia/internal/config"
	"github.com/philipparndt/arcademia/internal/logging"
	"github.com/philipparndt/arcademia/pkg/catalog"
	"github.com/philipparndt/arcademia/pkg/speech"
	"github.com/philipparndt/arcademia/pkg/viewer"
)

// GUI binds the application state to fyne widgets
type GUI struct {
	app     *app.App
	window  fyne.Window
	view    *viewer.SceneView
	entries []catalog.Entry

	folderLabel *widget.Label
	list        *widget.List
	ipEntry     *widget.Entry
	portEntry   *widget.Entry
	axesCheck   *widget.Check
	doubleCheck *widget.Check
	stats       *widget.Label
	status      *widget.Label
	description *widget.Label
}

func main() {
	cfg, err := config.Load(config.DefaultFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(os.Args) > 1 {
		cfg.ModelsDir = os.Args[1]
	}
	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		logging.Warn("ignoring log level %q: %v", cfg.Log.Level, err)
	}

	fa := fyneapp.New()
	w := fa.NewWindow("ARcademia Viewer")

	g := &GUI{window: w, view: viewer.NewSceneView()}
	g.app = app.New(cfg, app.Options{
		Synth: speech.NewCommandSynthesizer(speech.Options{
			Rate:    cfg.Speech.Rate,
			Volume:  cfg.Speech.Volume,
			Command: cfg.Speech.Command,
		}),
		Logger: logging.Logger(),
		Notify: g.notify,
	})
	defer g.app.Close()

	g.setupUI()
	g.refreshList()
	if err := g.app.WatchFolder(func(entries []catalog.Entry) {
		fyne.Do(func() { g.setEntries(entries) })
	}); err != nil {
		logging.Warn("folder auto-refresh disabled: %v", err)
	}

	w.Resize(fyne.NewSize(1400, 900))
	w.ShowAndRun()
}

func (g *GUI) setupUI() {
	cfg := g.app.Config()

	g.folderLabel = widget.NewLabel(g.app.FolderLabel())
	g.folderLabel.Wrapping = fyne.TextWrapBreak

	g.list = widget.NewList(
		func() int { return len(g.entries) },
		func() fyne.CanvasObject { return widget.NewLabel("model.stl") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(g.entries[id].Name)
		},
	)
	g.list.OnSelected = func(id widget.ListItemID) {
		if id < len(g.entries) {
			g.app.Select(g.entries[id].Name)
		}
	}

	g.ipEntry = widget.NewEntry()
	g.ipEntry.SetText(cfg.AR.IP)
	g.portEntry = widget.NewEntry()
	g.portEntry.SetText(strconv.Itoa(cfg.AR.Port))

	g.axesCheck = widget.NewCheck("Show Axes", g.view.SetShowAxes)
	g.doubleCheck = widget.NewCheck("Double-sided", g.view.SetDoubleSided)
	g.axesCheck.SetChecked(g.view.Options().ShowAxes)
	g.doubleCheck.SetChecked(g.view.Options().DoubleSided)

	g.stats = widget.NewLabel(g.app.Scene.StatsLine())
	g.status = widget.NewLabel("")
	g.status.Wrapping = fyne.TextWrapWord
	g.description = widget.NewLabel("")
	g.description.Wrapping = fyne.TextWrapWord

	controls := container.NewVBox(
		g.folderLabel,
		container.NewGridWithColumns(2,
			widget.NewButton("Choose Folder", g.chooseFolder),
			widget.NewButton("Refresh List", g.refreshList),
		),
		widget.NewSeparator(),
		container.NewGridWithColumns(3,
			widget.NewButton("Display Model", g.displaySelected),
			widget.NewButton("Add To Scene", g.addSelected),
			widget.NewButton("Remove Selected", g.removeSelected),
		),
		widget.NewSeparator(),
		widget.NewLabel("AR IP"),
		g.ipEntry,
		widget.NewLabel("AR Port"),
		g.portEntry,
		widget.NewButton("Stream To AR", g.streamScene),
		widget.NewButton("Virtual AR Preview", g.openPreview),
		widget.NewSeparator(),
		container.NewGridWithColumns(2,
			widget.NewButton("Describe Model", g.describeModel),
			widget.NewButton("Describe Scene", g.describeScene),
		),
		widget.NewSeparator(),
		g.axesCheck,
		g.doubleCheck,
		widget.NewButton("Screenshot", g.screenshot),
		widget.NewSeparator(),
		g.stats,
		g.status,
		g.description,
	)

	panel := container.NewBorder(controls, nil, nil, nil, g.list)
	split := container.NewHSplit(panel, g.view)
	split.SetOffset(0.25)
	g.window.SetContent(split)
	g.window.Canvas().SetOnTypedKey(g.onKey)
}

// notify shows a status message; safe from any goroutine
func (g *GUI) notify(msg string) {
	fyne.Do(func() {
		if g.status != nil {
			g.status.SetText(msg)
		}
	})
}

func (g *GUI) showError(err error) {
	logging.Debug("action failed: %v", err)
	g.notify(capitalize(err.Error()))
}

func (g *GUI) setEntries(entries []catalog.Entry) {
	g.entries = entries
	g.list.UnselectAll()
	g.list.Refresh()
	g.folderLabel.SetText(g.app.FolderLabel())
}

func (g *GUI) refreshList() {
	entries, err := g.app.Refresh()
	if err != nil {
		g.showError(err)
		return
	}
	g.setEntries(entries)
}

func (g *GUI) chooseFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, g.window)
			return
		}
		if uri == nil {
			return
		}
		entries, err := g.app.SetFolder(uri.Path())
		if err != nil {
			g.showError(err)
			return
		}
		g.setEntries(entries)
	}, g.window)
}

// sceneChanged redraws the view and the stats after the scene was edited
func (g *GUI) sceneChanged() {
	g.view.SetMesh(g.app.Scene.Merge())
	g.stats.SetText(g.app.Scene.StatsLine())
}

// runLoad performs a loading action off the UI goroutine
func (g *GUI) runLoad(action func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		err := action(ctx)
		fyne.Do(func() {
			if err != nil {
				g.showError(err)
				return
			}
			g.sceneChanged()
		})
	}()
}

func (g *GUI) displaySelected() {
	g.runLoad(g.app.DisplaySelected)
}

func (g *GUI) addSelected() {
	g.runLoad(g.app.AddSelected)
}

func (g *GUI) removeSelected() {
	if err := g.app.RemoveSelected(); err != nil {
		g.showError(err)
		return
	}
	g.sceneChanged()
}

func (g *GUI) streamScene() {
	port, err := strconv.Atoi(strings.TrimSpace(g.portEntry.Text))
	if err != nil || port < 1 || port > 65535 {
		g.notify("Invalid AR port")
		return
	}
	addr := net.JoinHostPort(strings.TrimSpace(g.ipEntry.Text), strconv.Itoa(port))

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := g.app.Stream(ctx, addr); err != nil {
			g.showError(err)
		}
	}()
}

// openPreview shows the scene on a ground slab in a separate window
func (g *GUI) openPreview() {
	preview, err := g.app.Preview()
	if err != nil {
		return
	}

	view := viewer.NewSceneView()
	view.SetShowAxes(false)
	view.SetDoubleSided(true)
	view.SetMesh(preview)
	view.FrameOn(g.app.Scene.BoundingBox())

	help := widget.NewLabel("Virtual AR Preview\nDrag: orbit  |  Scroll: zoom")
	w := fyne.CurrentApp().NewWindow("AR Virtual Preview")
	w.SetContent(container.NewBorder(help, nil, nil, nil, view))
	w.Resize(fyne.NewSize(1000, 700))
	w.Show()
}

func (g *GUI) describeModel() {
	g.showDescription(g.app.DescribeModel())
}

func (g *GUI) describeScene() {
	g.showDescription(g.app.DescribeScene())
}

func (g *GUI) showDescription(sentences []string, err error) {
	if err != nil {
		g.showError(err)
		return
	}
	g.description.SetText(strings.Join(sentences, "\n"))
}

func (g *GUI) screenshot() {
	size := g.view.Size()
	w, h := int(size.Width), int(size.Height)
	if w <= 0 || h <= 0 {
		w, h = 800, 600
	}
	img := g.view.Snapshot(w, h)
	if _, err := g.app.Screenshot(app.ScreenshotDir, img, time.Now()); err != nil {
		logging.Error("screenshot failed: %v", err)
	}
}

func (g *GUI) onKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyB:
		g.doubleCheck.SetChecked(!g.doubleCheck.Checked)
	case fyne.KeyL:
		g.axesCheck.SetChecked(!g.axesCheck.Checked)
	case fyne.KeyR:
		g.view.Reframe()
	case fyne.KeyS:
		g.screenshot()
	case fyne.KeyDelete:
		g.removeSelected()
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
