// Package gallery resolves the photos attached to each city and hands them to
// the desktop's default viewer.
//
// Files live under <cwd>/<assets dir>; a missing file is reported, never
// fatal. A Browser keeps one cursor per city so "next" and "previous" walk
// the list with wrap-around.
package gallery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/citymap/atlas"
)

// Sentinel errors.
var (
	// ErrNoImages indicates the city has no images configured.
	ErrNoImages = errors.New("gallery: no images configured")

	// ErrInvalidIndex indicates an image index outside the city's list.
	ErrInvalidIndex = errors.New("gallery: invalid image index")

	// ErrOpenFailed wraps a failure of the Opener.
	ErrOpenFailed = errors.New("gallery: failed to open image")
)

// DefaultDir is the asset directory, relative to the working directory.
const DefaultDir = "assets"

// Catalog maps a city name to its image file names, in display order.
type Catalog map[string][]string

// CatalogFromMap collects the image lists of every city in m.
func CatalogFromMap(m *atlas.Map) Catalog {
	c := make(Catalog, m.Len())
	for _, city := range m.Cities() {
		c[city.Name] = append([]string(nil), city.Images...)
	}

	return c
}

// Entry describes one image of a city.
type Entry struct {
	Index   int    `json:"index"` // 0-based
	File    string `json:"file"`
	Path    string `json:"path"`
	URI     string `json:"uri"`
	Missing bool   `json:"missing"`
}

// Library binds a Catalog to an absolute asset directory.
type Library struct {
	root    string
	catalog Catalog
}

// NewLibrary resolves dir against the working directory. An empty dir means DefaultDir.
func NewLibrary(dir string, c Catalog) (*Library, error) {
	if dir == "" {
		dir = DefaultDir
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("gallery: resolve %q: %w", dir, err)
	}
	if c == nil {
		c = Catalog{}
	}

	return &Library{root: abs, catalog: c}, nil
}

// Root returns the absolute asset directory.
func (l *Library) Root() string { return l.root }

// Images returns the file names configured for city, or ErrNoImages.
func (l *Library) Images(city string) ([]string, error) {
	files := l.catalog[city]
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoImages, city)
	}

	return files, nil
}

// Resolve returns the cleaned absolute path of file inside the asset directory.
func (l *Library) Resolve(file string) string {
	return filepath.Join(l.root, file)
}

// Path returns the absolute path of image i of city.
func (l *Library) Path(city string, i int) (string, error) {
	files, err := l.Images(city)
	if err != nil {
		return "", err
	}
	if i < 0 || i >= len(files) {
		return "", fmt.Errorf("%w: %d of %d for %q", ErrInvalidIndex, i, len(files), city)
	}

	return l.Resolve(files[i]), nil
}

// List returns every image of city with its URI and whether the file exists.
func (l *Library) List(city string) ([]Entry, error) {
	files, err := l.Images(city)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(files))
	for i, f := range files {
		p := l.Resolve(f)
		_, statErr := os.Stat(p)
		out[i] = Entry{
			Index:   i,
			File:    f,
			Path:    p,
			URI:     FileURI(p),
			Missing: statErr != nil,
		}
	}

	return out, nil
}

// FileURI turns an absolute path into a file:/// URI. Backslashes become
// forward slashes; no percent-encoding is applied.
func FileURI(abs string) string {
	p := strings.ReplaceAll(abs, `\`, "/")

	return "file:///" + strings.TrimLeft(p, "/")
}

// WrapIndex reduces i into [0, n). n <= 0 yields 0.
func WrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	r := i % n
	if r < 0 {
		r += n
	}

	return r
}
