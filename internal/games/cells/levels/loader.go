// Package levels provides the level catalog for cells.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-cells/internal/games/cells/core"
	"github.com/vovakirdan/tui-cells/internal/games/cells/levels/formats"
)

//go:embed collections/*.yaml
var builtin embed.FS

// Collection is an ordered set of levels.
type Collection struct {
	ID       string
	Name     string
	Order    int
	Levels   []Level
	FilePath string
}

// Level is a single puzzle. Number is 1-based within its collection.
type Level struct {
	Collection string
	Number     int
	Name       string
	Board      string
	Help       string
}

// Title returns the level name, or "Level N" when it has none.
func (l Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return fmt.Sprintf("Level %d", l.Number)
}

// NewBoard decodes a fresh board for the level.
func (l Level) NewBoard() (*core.Board, error) {
	return core.Decode(l.Board)
}

// Loader handles loading collection files from a directory tree.
type Loader struct {
	Root string
	FS   fs.FS
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, FS: os.DirFS(root)}
}

// LoadAll recursively scans and loads all collection files.
// Invalid files are skipped. The result is sorted by order, then ID.
func (l *Loader) LoadAll() ([]Collection, error) {
	var out []Collection

	err := fs.WalkDir(l.FS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		c, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sortCollections(out)
	return out, nil
}

// LoadFile loads a single collection file relative to the loader root.
func (l *Loader) LoadFile(path string) (Collection, error) {
	data, err := fs.ReadFile(l.FS, path)
	if err != nil {
		return Collection{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return Collection{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	c := Collection{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Order:    parsed.Order,
		FilePath: filepath.Join(l.Root, path),
	}
	for i, lvl := range parsed.Levels {
		c.Levels = append(c.Levels, Level{
			Collection: parsed.ID,
			Number:     i + 1,
			Name:       lvl.Name,
			Board:      lvl.Board,
			Help:       lvl.Help,
		})
	}
	return c, nil
}

// Catalog is a read-only index of collections.
type Catalog struct {
	collections []Collection
	byID        map[string]int
}

// Builtin returns a catalog of the embedded collections.
func Builtin() (*Catalog, error) {
	return Load("")
}

// Load returns the embedded collections merged with those found under dir.
// A collection in dir replaces an embedded one with the same ID. An empty
// or missing dir yields only the embedded collections.
func Load(dir string) (*Catalog, error) {
	sub, err := fs.Sub(builtin, "collections")
	if err != nil {
		return nil, err
	}
	embedded, err := (&Loader{Root: "builtin", FS: sub}).LoadAll()
	if err != nil {
		return nil, err
	}

	all := embedded
	if dir != "" {
		if _, statErr := os.Stat(dir); statErr == nil {
			extra, err := NewLoader(dir).LoadAll()
			if err != nil {
				return nil, err
			}
			all = append(all, extra...)
		} else if !errors.Is(statErr, fs.ErrNotExist) {
			return nil, fmt.Errorf("levels dir %s: %w", dir, statErr)
		}
	}
	return NewCatalog(all), nil
}

// NewCatalog indexes collections. Later entries win on duplicate IDs.
func NewCatalog(collections []Collection) *Catalog {
	cat := &Catalog{byID: make(map[string]int)}
	for _, c := range collections {
		if i, ok := cat.byID[c.ID]; ok {
			cat.collections[i] = c
			continue
		}
		cat.byID[c.ID] = len(cat.collections)
		cat.collections = append(cat.collections, c)
	}
	sortCollections(cat.collections)
	for i, c := range cat.collections {
		cat.byID[c.ID] = i
	}
	return cat
}

// Collections returns all collections in display order.
func (c *Catalog) Collections() []Collection {
	return c.collections
}

// Collection looks up a collection by ID.
func (c *Catalog) Collection(id string) (Collection, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Collection{}, false
	}
	return c.collections[i], true
}

// LevelCount returns the number of levels in a collection, or 0 if unknown.
func (c *Catalog) LevelCount(id string) int {
	col, _ := c.Collection(id)
	return len(col.Levels)
}

// LevelExists reports whether level n (1-based) exists in collection id.
func (c *Catalog) LevelExists(id string, n int) bool {
	return 0 < n && n <= c.LevelCount(id)
}

// Level returns level n (1-based) of collection id.
func (c *Catalog) Level(id string, n int) (Level, error) {
	col, ok := c.Collection(id)
	if !ok {
		return Level{}, fmt.Errorf("collection not found: %s", id)
	}
	if n < 1 || n > len(col.Levels) {
		return Level{}, fmt.Errorf("cannot get level %d from collection %s", n, id)
	}
	return col.Levels[n-1], nil
}

// Next returns the level after n in the same collection.
func (c *Catalog) Next(id string, n int) (Level, bool) {
	lvl, err := c.Level(id, n+1)
	return lvl, err == nil
}

// Find resolves "collection/level" or "collection" (first level).
func (c *Catalog) Find(ref string) (Level, error) {
	id, num, found := strings.Cut(ref, "/")
	n := 1
	if found {
		v, err := strconv.Atoi(num)
		if err != nil {
			return Level{}, fmt.Errorf("invalid level number %q", num)
		}
		n = v
	}
	return c.Level(id, n)
}

func sortCollections(cs []Collection) {
	slices.SortStableFunc(cs, func(a, b Collection) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.FormatExtensions(), ext)
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Collection, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Collection{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
