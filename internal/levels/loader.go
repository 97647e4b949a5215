// Package levels loads custom level packs for the shadow and story games.
// A pack is one YAML file listing the levels of a single game in play order.
package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/playroom/internal/levels/formats"
	"github.com/vovakirdan/playroom/internal/puzzle/matching"
	"github.com/vovakirdan/playroom/internal/puzzle/ordering"
)

// Pack is a loaded level pack together with the file it came from.
type Pack struct {
	formats.Pack
	FilePath string
}

// ShadowCatalog returns the pack as a matching catalog.
func (p Pack) ShadowCatalog() (*matching.Catalog, error) {
	if p.Game != formats.GameShadow {
		return nil, fmt.Errorf("levels: pack %q is a %s pack", p.ID, p.Game)
	}
	return matching.NewCatalog(p.Shadow), nil
}

// StoryCatalog returns the pack as an ordering catalog.
func (p Pack) StoryCatalog() (*ordering.Catalog, error) {
	if p.Game != formats.GameStory {
		return nil, fmt.Errorf("levels: pack %q is a %s pack", p.ID, p.Game)
	}
	return ordering.NewCatalog(p.Story), nil
}

// Validate checks every level of the pack and returns the first error.
func (p Pack) Validate() error {
	if p.Game == formats.GameShadow {
		return matching.NewCatalog(p.Shadow).Validate()
	}
	return ordering.NewCatalog(p.Story).Validate()
}

// Loader handles loading packs from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new pack loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all pack files.
// Unreadable or malformed files are skipped. Packs are sorted by ID.
func (l *Loader) LoadAll() ([]Pack, error) {
	var packs []Pack

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		pack, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		packs = append(packs, pack)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].ID < packs[j].ID
	})

	return packs, nil
}

// LoadFile loads a single pack file. A pack without an id takes the file name.
func (l *Loader) LoadFile(path string) (Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Pack{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	if parsed.ID == "" {
		parsed.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return Pack{Pack: parsed, FilePath: path}, nil
}

// LoadByID loads a specific pack by ID.
func (l *Loader) LoadByID(id string) (Pack, error) {
	packs, err := l.LoadAll()
	if err != nil {
		return Pack{}, err
	}

	for _, p := range packs {
		if p.ID == id {
			return p, nil
		}
	}

	return Pack{}, fmt.Errorf("pack not found: %s", id)
}

// Resolve loads ref as a file path if such a file exists, otherwise as a pack ID.
func (l *Loader) Resolve(ref string) (Pack, error) {
	if _, err := os.Stat(ref); err == nil {
		return l.LoadFile(ref)
	} else if !errors.Is(err, os.ErrNotExist) {
		return Pack{}, err
	}
	return l.LoadByID(ref)
}

// ListIDs returns all pack IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	packs, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(packs))
	for i, p := range packs {
		ids[i] = p.ID
	}
	return ids, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Pack, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Pack{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
