// Package app holds the viewer's state and actions independently of the
// widget toolkit: selection, scene editing, voice-over, AR streaming and
// screenshots. The GUI binds buttons and keys to these methods.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/philipparndt/arcademia/internal/config"
	"github.com/philipparndt/arcademia/pkg/analysis"
	"github.com/philipparndt/arcademia/pkg/catalog"
	"github.com/philipparndt/arcademia/pkg/describe"
	"github.com/philipparndt/arcademia/pkg/geometry"
	"github.com/philipparndt/arcademia/pkg/loader"
	"github.com/philipparndt/arcademia/pkg/mesh"
	"github.com/philipparndt/arcademia/pkg/scene"
	"github.com/philipparndt/arcademia/pkg/speech"
	"github.com/philipparndt/arcademia/pkg/stream"
	"github.com/philipparndt/arcademia/pkg/viewer"
)

var (
	// ErrNoSelection is returned by actions that need a selected model
	ErrNoSelection = errors.New("select a model first")
	// ErrNotLoaded is returned when describing a model that was never displayed
	ErrNotLoaded = errors.New("model not loaded yet")
	// ErrEmptyScene is returned by actions that need displayed models
	ErrEmptyScene = errors.New("no models in scene")
	// ErrUnknownModel is returned when the selection is missing from the folder
	ErrUnknownModel = errors.New("model not found in folder")
)

// ScreenshotDir is where screenshots are written, relative to the working directory
const ScreenshotDir = "screenshots"

// Options carries the collaborators of an App
type Options struct {
	Synth  speech.Synthesizer
	Logger *log.Logger
	// Notify shows a short status message to the user
	Notify func(msg string)
}

// App is the state behind the viewer window
type App struct {
	Selection SelectionState
	Folder    FolderState
	Scene     *scene.Scene

	cfg       config.Config
	describer *describe.Describer
	speaker   *speech.Speaker
	logger    *log.Logger
	notify    func(string)
}

// New creates an App for the configured models folder
func New(cfg config.Config, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	notify := opts.Notify
	if notify == nil {
		notify = func(msg string) { logger.Info(msg) }
	}

	a := &App{
		Scene:     scene.New(),
		cfg:       cfg,
		describer: describe.New(cfg.Describe.Precision),
		speaker:   speech.NewSpeaker(opts.Synth, logger),
		logger:    logger,
		notify:    notify,
	}
	a.Folder.catalog = catalog.New(cfg.ModelsDir, logger)
	return a
}

// Config returns the settings the App was created with
func (a *App) Config() config.Config {
	return a.cfg
}

// FolderLabel is the text shown above the model list
func (a *App) FolderLabel() string {
	return "Folder: " + a.catalog().Dir()
}

func (a *App) catalog() *catalog.Catalog {
	a.Folder.mu.Lock()
	defer a.Folder.mu.Unlock()
	return a.Folder.catalog
}

// Refresh rescans the models folder
func (a *App) Refresh() ([]catalog.Entry, error) {
	entries, err := a.catalog().Scan()
	if err != nil {
		return nil, err
	}
	a.logger.Debug("models folder scanned", "dir", a.catalog().Dir(), "files", len(entries))
	return entries, nil
}

// SetFolder switches to another models folder, clearing the selection.
// An active folder watch moves to the new folder.
func (a *App) SetFolder(dir string) ([]catalog.Entry, error) {
	a.Folder.mu.Lock()
	previous := a.Folder.catalog
	a.Folder.catalog = catalog.New(dir, a.logger)
	onChange := a.Folder.onChange
	a.Folder.mu.Unlock()

	previous.Close()
	a.Selection.set("")

	if onChange != nil {
		if err := a.WatchFolder(onChange); err != nil {
			a.logger.Warn("folder watch failed", "dir", dir, "err", err)
		}
	}
	return a.Refresh()
}

// WatchFolder calls onChange with the new listing whenever the folder changes
func (a *App) WatchFolder(onChange func([]catalog.Entry)) error {
	a.Folder.mu.Lock()
	a.Folder.onChange = onChange
	c := a.Folder.catalog
	a.Folder.mu.Unlock()

	return c.Watch(a.cfg.Watch.Debounce.Duration, onChange)
}

// Select marks a catalog entry as the target of Display, Add, Remove and Describe Model
func (a *App) Select(name string) {
	a.Selection.set(name)
}

// Selected returns the selected entry name, or ""
func (a *App) Selected() string {
	return a.Selection.get()
}

// load returns the cached mesh for name or loads it from the folder
func (a *App) load(ctx context.Context, name string) (*mesh.Mesh, error) {
	if m, ok := a.Selection.mesh(name); ok {
		return m, nil
	}
	entry, ok := a.catalog().Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	m, err := loader.Load(ctx, entry.Path)
	if err != nil {
		return nil, err
	}
	a.Selection.store(name, m)
	return m, nil
}

// DisplaySelected replaces the scene with the selected model. Models that
// are no longer shown are forgotten.
func (a *App) DisplaySelected(ctx context.Context) error {
	name := a.Selected()
	if name == "" {
		return ErrNoSelection
	}
	m, err := a.load(ctx, name)
	if err != nil {
		return err
	}
	a.Scene.Display(name, m)
	a.Selection.reset(name, m)
	a.notify("Displayed " + name)
	return nil
}

// AddSelected adds the selected model to the scene
func (a *App) AddSelected(ctx context.Context) error {
	name := a.Selected()
	if name == "" {
		return ErrNoSelection
	}
	m, err := a.load(ctx, name)
	if err != nil {
		return err
	}
	a.Scene.Add(name, m)
	a.notify("Added " + name)
	return nil
}

// RemoveSelected takes the selected model out of the scene and forgets it
func (a *App) RemoveSelected() error {
	name := a.Selected()
	if name == "" {
		return ErrNoSelection
	}
	a.Scene.Remove(name)
	a.Selection.drop(name)
	a.notify("Removed " + name)
	return nil
}

// DescribeModel describes the selected model and starts reading it aloud
func (a *App) DescribeModel() ([]string, error) {
	name := a.Selected()
	if name == "" {
		return nil, ErrNoSelection
	}
	m, ok := a.Selection.mesh(name)
	if !ok {
		return nil, ErrNotLoaded
	}

	sentences := a.describer.DescribeModel(name, analysis.Analyze(m))
	a.notify(fmt.Sprintf("Describing %s...", name))
	a.say(sentences)
	return sentences, nil
}

// DescribeScene describes every displayed model. With a single model it
// describes that model in full instead.
func (a *App) DescribeScene() ([]string, error) {
	summary := a.Scene.Summary()
	switch summary.ModelCount() {
	case 0:
		return nil, ErrEmptyScene
	case 1:
		only := summary.Models[0]
		sentences := a.describer.DescribeModel(only.Name, only.Stats)
		a.notify(fmt.Sprintf("Describing %s...", only.Name))
		a.say(sentences)
		return sentences, nil
	}

	sentences := a.describer.DescribeScene(summary)
	a.notify(fmt.Sprintf("Describing %d models...", summary.ModelCount()))
	a.say(sentences)
	return sentences, nil
}

// say queues text on the speaker and reports problems as notifications
func (a *App) say(sentences []string) {
	done, err := a.speaker.Say(describe.Join(sentences))
	switch {
	case errors.Is(err, speech.ErrBusy):
		a.notify("Voice-over already playing...")
		return
	case errors.Is(err, speech.ErrUnavailable):
		a.notify("Text-to-speech not available")
		return
	case err != nil:
		a.logger.Error("voice-over failed", "err", err)
		return
	}
	go func() {
		if err := <-done; err != nil {
			a.logger.Warn("voice-over ended with error", "err", err)
		}
	}()
}

// SpeechBusy reports whether a voice-over is playing
func (a *App) SpeechBusy() bool {
	return a.speaker.Busy()
}

// Stream sends the merged scene to the AR client at addr
func (a *App) Stream(ctx context.Context, addr string) (int, error) {
	merged := a.Scene.Merge()
	if merged == nil {
		return 0, ErrEmptyScene
	}
	n, err := stream.NewSender(addr, a.cfg.AR.Chunk).Send(ctx, merged)
	if err != nil {
		return 0, fmt.Errorf("failed to stream to %s: %w", addr, err)
	}
	a.logger.Info("mesh streamed", "addr", addr, "bytes", n)
	a.notify(fmt.Sprintf("Sent %d bytes to %s", n, addr))
	return n, nil
}

// Preview returns the merged scene standing on a thin ground slab, for the
// virtual AR preview window
func (a *App) Preview() (*mesh.Mesh, error) {
	merged := a.Scene.Merge()
	if merged == nil {
		a.notify("No models to preview")
		return nil, ErrEmptyScene
	}
	ground := mesh.Box("ground", geometry.NewVector3(-2.5, -0.02, -2.5), geometry.NewVector3(5, 0.02, 5))
	a.notify("Virtual AR Preview opened")
	return mesh.Merge("preview", merged, ground), nil
}

// Screenshot writes img below dir as shot_<unix>.png and returns the path
func (a *App) Screenshot(dir string, img image.Image, at time.Time) (string, error) {
	path := viewer.ScreenshotPath(dir, at)
	if err := viewer.SavePNG(path, img); err != nil {
		a.notify("Screenshot failed")
		return "", err
	}
	a.notify("Saved " + filepath.ToSlash(path))
	return path, nil
}

// Close stops the voice-over and the folder watch
func (a *App) Close() error {
	err := a.speaker.Close()
	if cerr := a.catalog().Close(); err == nil {
		err = cerr
	}
	return err
}
