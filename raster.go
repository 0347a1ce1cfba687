package slideshow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

// DefaultDPI is the rasterization resolution used when none is configured.
const DefaultDPI = 200

// RasterBackend turns document pages into image files. The poppler package
// provides the production implementation.
type RasterBackend interface {
	// PageCount returns the number of pages in the document.
	PageCount(ctx context.Context, docPath string) (int, error)
	// RenderPage renders page (1-based) at dpi into a PNG file at dst.
	RenderPage(ctx context.Context, docPath string, page, dpi int, dst string) error
}

// PageDigits returns the number of decimal digits needed for the largest
// page number of a document with total pages.
func PageDigits(total int) int {
	if total < 1 {
		return 1
	}
	return len(strconv.Itoa(total))
}

// PageFileName returns the file name for page index of a total-page
// document, zero-padded so that names sort in page order:
// page 5 of 132 is "page_005.png".
func PageFileName(index, total int) string {
	return fmt.Sprintf("page_%0*d.png", PageDigits(total), index)
}

// Rasterizer converts documents into one numbered PNG per page.
type Rasterizer struct {
	backend RasterBackend
	dpi     int
	logger  *zap.SugaredLogger
}

// RasterizerOption configures a Rasterizer.
type RasterizerOption func(*Rasterizer)

// WithDPI sets the rendering resolution.
func WithDPI(dpi int) RasterizerOption {
	return func(r *Rasterizer) {
		if dpi > 0 {
			r.dpi = dpi
		}
	}
}

// WithRasterizerLogger sets the logger used for progress messages.
func WithRasterizerLogger(l *zap.SugaredLogger) RasterizerOption {
	return func(r *Rasterizer) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRasterizer creates a Rasterizer on top of backend.
func NewRasterizer(backend RasterBackend, opts ...RasterizerOption) *Rasterizer {
	r := &Rasterizer{
		backend: backend,
		dpi:     DefaultDPI,
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DPI returns the configured resolution.
func (r *Rasterizer) DPI() int { return r.dpi }

// Rasterize renders every page of docPath into outDir as
// page_<n>.png and returns the images in page order.
//
// The page count is determined first so every file name carries the same
// number of digits. Files already written are left in place when a later
// page fails; outDir should be a scratch directory owned by the caller.
func (r *Rasterizer) Rasterize(ctx context.Context, docPath, outDir string) ([]RasterImage, error) {
	if r.backend == nil {
		return nil, &RasterizationError{Path: docPath, Err: errors.New("no rasterization backend configured")}
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return nil, &RasterizationError{Path: docPath, Err: err}
	}

	total, err := r.backend.PageCount(ctx, docPath)
	if err != nil {
		return nil, &RasterizationError{Path: docPath, Err: err}
	}
	if total < 1 {
		return nil, &RasterizationError{Path: docPath, Err: errors.New("document has no pages")}
	}
	r.logger.Infow("rasterizing document", "path", docPath, "pages", total, "dpi", r.dpi)

	images := make([]RasterImage, 0, total)
	for page := 1; page <= total; page++ {
		if err := ctx.Err(); err != nil {
			return images, &RasterizationError{Path: docPath, Page: page, Err: err}
		}
		dst := filepath.Join(outDir, PageFileName(page, total))
		if err := r.backend.RenderPage(ctx, docPath, page, r.dpi, dst); err != nil {
			return images, &RasterizationError{Path: docPath, Page: page, Err: err}
		}
		img, err := ReadRasterImage(dst, page)
		if err != nil {
			return images, &RasterizationError{Path: docPath, Page: page, Err: err}
		}
		images = append(images, img)
		r.logger.Debugw("page rendered", "page", page, "file", dst, "width", img.Width, "height", img.Height)
	}
	return images, nil
}
