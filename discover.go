package slideshow

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/text/cases"
)

// DefaultExtensions is the allow-list of image file extensions, without dots.
var DefaultExtensions = []string{"png", "jpg", "jpeg", "bmp", "gif"}

// RasterImage is one image ready to be placed on a slide.
type RasterImage struct {
	Index  int    // 1-based position in the deck
	Width  int    // pixels
	Height int    // pixels
	Path   string // file on disk
	Format string // decoder name: png, jpeg, gif or bmp
}

// ExtensionFilter matches file names against an extension allow-list,
// ignoring case.
type ExtensionFilter struct {
	fold cases.Caser
	exts map[string]struct{}
}

// NewExtensionFilter builds a filter from extensions given with or without
// a leading dot. An empty list selects DefaultExtensions.
func NewExtensionFilter(exts ...string) *ExtensionFilter {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	f := &ExtensionFilter{
		fold: cases.Fold(),
		exts: make(map[string]struct{}, len(exts)),
	}
	for _, e := range exts {
		e = strings.TrimPrefix(strings.TrimSpace(e), ".")
		if e == "" {
			continue
		}
		f.exts[f.fold.String(e)] = struct{}{}
	}
	return f
}

// Match reports whether name carries an allowed extension.
func (f *ExtensionFilter) Match(name string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return false
	}
	_, ok := f.exts[f.fold.String(ext)]
	return ok
}

// ListImages returns the paths of the regular files in dir whose extension
// passes the filter, sorted lexicographically by file name. Other entries
// are ignored. An empty result is not an error.
func ListImages(dir string, filter *ExtensionFilter) ([]string, error) {
	if filter == nil {
		filter = NewExtensionFilter()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !filter.Match(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

// ReadRasterImage decodes the header of the image at path to learn its pixel
// size. Failures are returned as *ImageReadError.
func ReadRasterImage(path string, index int) (RasterImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return RasterImage{}, &ImageReadError{Path: path, Err: err}
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return RasterImage{}, &ImageReadError{Path: path, Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return RasterImage{}, &ImageReadError{
			Path: path,
			Err:  fmt.Errorf("empty image %dx%d", cfg.Width, cfg.Height),
		}
	}
	return RasterImage{
		Index:  index,
		Width:  cfg.Width,
		Height: cfg.Height,
		Path:   path,
		Format: format,
	}, nil
}

// LoadImages reads the header of every path in order. Unreadable files are
// skipped and reported in errs; indices of the returned images are
// contiguous starting at 1.
func LoadImages(paths []string) (images []RasterImage, errs []error) {
	for _, p := range paths {
		img, err := ReadRasterImage(p, len(images)+1)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		images = append(images, img)
	}
	return images, errs
}
