// Package catalog lists the model files of a models folder and keeps the
// listing fresh while files are added or removed.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/philipparndt/arcademia/pkg/loader"
	"github.com/philipparndt/arcademia/pkg/mesh"
	"github.com/philipparndt/arcademia/pkg/openscad"
	"github.com/philipparndt/arcademia/pkg/watcher"
)

// Entry is one model file in the folder
type Entry struct {
	Name   string
	Path   string
	Format mesh.Format
}

// Catalog tracks the supported model files of a single folder
type Catalog struct {
	dir    string
	logger *log.Logger

	mu      sync.RWMutex
	entries []Entry
	watch   *watcher.FileWatcher
}

// New creates a catalog for dir. Call Scan to populate it.
func New(dir string, logger *log.Logger) *Catalog {
	return &Catalog{dir: dir, logger: logger}
}

// Dir returns the folder of the catalog
func (c *Catalog) Dir() string {
	return c.dir
}

// Scan re-reads the folder and returns the supported files sorted by name.
// A missing folder yields an empty listing.
func (c *Catalog) Scan() ([]Entry, error) {
	dirEntries, err := os.ReadDir(c.dir)
	if errors.Is(err, os.ErrNotExist) {
		c.setEntries(nil)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read models folder %s: %w", c.dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || !loader.IsSupported(de.Name()) {
			continue
		}
		entries = append(entries, Entry{
			Name:   de.Name(),
			Path:   filepath.Join(c.dir, de.Name()),
			Format: mesh.FormatFromExt(filepath.Ext(de.Name())),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	c.setEntries(entries)
	return entries, nil
}

func (c *Catalog) setEntries(entries []Entry) {
	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
}

// Entries returns the listing of the last scan
func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Names returns the file names of the last scan
func (c *Catalog) Names() []string {
	entries := c.Entries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Lookup finds an entry of the last scan by file name
func (c *Catalog) Lookup(name string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Watch rescans the folder whenever its content or an OpenSCAD
// dependency changes, then calls onChange with the new listing.
func (c *Catalog) Watch(debounce time.Duration, onChange func([]Entry)) error {
	fw, err := watcher.NewFileWatcher(debounce, c.logger)
	if err != nil {
		return err
	}

	rescan := func(string) {
		entries, err := c.Scan()
		if err != nil {
			c.logger.Error("rescan failed", "dir", c.dir, "err", err)
			return
		}
		c.logger.Debug("models folder changed", "dir", c.dir, "files", len(entries))
		onChange(entries)
	}

	if err := fw.Watch(c.watchPaths(), rescan); err != nil {
		fw.Close()
		return err
	}
	fw.Start()

	c.mu.Lock()
	previous := c.watch
	c.watch = fw
	c.mu.Unlock()
	if previous != nil {
		previous.Close()
	}
	return nil
}

// watchPaths returns the folder plus any OpenSCAD dependencies that live
// outside of it
func (c *Catalog) watchPaths() []string {
	paths := []string{c.dir}
	absDir, err := filepath.Abs(c.dir)
	if err != nil {
		return paths
	}

	seen := make(map[string]bool)
	renderer := openscad.NewRenderer(c.dir)
	for _, e := range c.Entries() {
		if !strings.EqualFold(filepath.Ext(e.Name), ".scad") {
			continue
		}
		deps, err := renderer.ResolveDependencies(e.Path)
		if err != nil {
			c.logger.Warn("cannot resolve OpenSCAD dependencies", "file", e.Name, "err", err)
			continue
		}
		for _, dep := range deps {
			if filepath.Dir(dep) == absDir || seen[dep] {
				continue
			}
			if _, err := os.Stat(dep); err != nil {
				continue
			}
			seen[dep] = true
			paths = append(paths, dep)
		}
	}
	return paths
}

// Close stops watching
func (c *Catalog) Close() error {
	c.mu.Lock()
	fw := c.watch
	c.watch = nil
	c.mu.Unlock()
	if fw == nil {
		return nil
	}
	return fw.Close()
}
