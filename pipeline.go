package slideshow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DefaultOutputName is the file name used when the caller gives none.
const DefaultOutputName = "output.pptx"

// Options is the explicit configuration shared by the rasterizer and the
// compositor.
type Options struct {
	Canvas     Canvas
	Fit        FitMode
	DPI        int
	Extensions []string
	// ThumbnailWidth is the docProps thumbnail width in pixels; 0 disables it.
	ThumbnailWidth int
	// Title overrides the document title. Empty means the input base name.
	Title string
}

// DefaultOptions returns the 20in x 11.25in black canvas, aspect-preserving
// fit at DefaultDPI with the default extension allow-list.
func DefaultOptions() Options {
	return Options{
		Canvas:         DefaultCanvas(),
		Fit:            FitPreserveAspect,
		DPI:            DefaultDPI,
		Extensions:     append([]string(nil), DefaultExtensions...),
		ThumbnailWidth: 256,
	}
}

// Result describes a saved presentation.
type Result struct {
	OutputPath string
	Slides     int
	Report     *ComposeReport
}

// Converter turns a PDF or an image directory into a saved presentation.
type Converter struct {
	opts    Options
	backend RasterBackend
	logger  *zap.SugaredLogger
	tempDir string
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithLogger sets the logger passed down to the rasterizer and compositor.
func WithLogger(l *zap.SugaredLogger) ConverterOption {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTempDir sets the parent of the scratch directory used for page images.
// The default is os.TempDir.
func WithTempDir(dir string) ConverterOption {
	return func(c *Converter) { c.tempDir = dir }
}

// NewConverter validates opts and returns a Converter. backend may be nil
// when only image directories will be converted.
func NewConverter(opts Options, backend RasterBackend, options ...ConverterOption) (*Converter, error) {
	if err := opts.Canvas.Validate(); err != nil {
		return nil, err
	}
	fit, err := ParseFitMode(string(opts.Fit))
	if err != nil {
		return nil, err
	}
	opts.Fit = fit
	if opts.DPI <= 0 {
		opts.DPI = DefaultDPI
	}
	c := &Converter{
		opts:    opts,
		backend: backend,
		logger:  zap.NewNop().Sugar(),
	}
	for _, o := range options {
		o(c)
	}
	return c, nil
}

// IsDocument reports whether path names a PDF document, by extension.
func IsDocument(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// Convert builds a presentation from inputPath and saves it at outputPath.
//
// A directory is composed from its images directly. A PDF is rasterized
// into a scratch directory that is removed before Convert returns. Errors
// match ErrInvalidInputPath, ErrNoImagesFound or ErrRasterization; in the
// first two cases nothing is written.
func (c *Converter) Convert(ctx context.Context, inputPath, outputPath string) (*Result, error) {
	if inputPath == "" {
		return nil, invalidInput(inputPath, "no input given")
	}
	info, err := os.Stat(inputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, invalidInput(inputPath, "does not exist")
		}
		return nil, invalidInput(inputPath, err.Error())
	}
	if outputPath == "" {
		outputPath = DefaultOutputName
	}

	var (
		pres   *Presentation
		report *ComposeReport
	)
	switch {
	case info.IsDir():
		pres, report, err = c.composeDir(inputPath)
		if err == nil {
			err = save(pres, outputPath)
		}
	case info.Mode().IsRegular() && IsDocument(inputPath):
		pres, report, err = c.convertDocument(ctx, inputPath, outputPath)
	default:
		return nil, invalidInput(inputPath, "not a PDF file or a directory")
	}
	if err != nil {
		return &Result{Report: report}, err
	}

	c.logger.Infow("presentation saved", "path", outputPath, "slides", pres.GetSlideCount())
	return &Result{
		OutputPath: outputPath,
		Slides:     pres.GetSlideCount(),
		Report:     report,
	}, nil
}

func (c *Converter) compositor(inputPath string) (*Compositor, error) {
	title := c.opts.Title
	if title == "" {
		base := filepath.Base(filepath.Clean(inputPath))
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return NewCompositor(c.opts.Canvas,
		WithFitMode(c.opts.Fit),
		WithThumbnail(c.opts.ThumbnailWidth),
		WithTitle(title),
		WithCompositorLogger(c.logger),
	)
}

func (c *Converter) composeDir(dir string) (*Presentation, *ComposeReport, error) {
	comp, err := c.compositor(dir)
	if err != nil {
		return nil, nil, err
	}
	return comp.ComposeDir(dir, NewExtensionFilter(c.opts.Extensions...))
}

// convertDocument rasterizes docPath into a scratch directory and saves the
// presentation before the scratch directory is removed, since pictures are
// streamed from the page files.
func (c *Converter) convertDocument(ctx context.Context, docPath, outputPath string) (*Presentation, *ComposeReport, error) {
	comp, err := c.compositor(docPath)
	if err != nil {
		return nil, nil, err
	}

	scratch, err := os.MkdirTemp(c.tempDir, "slideshow-pages-*")
	if err != nil {
		return nil, nil, &RasterizationError{Path: docPath, Err: err}
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			c.logger.Warnw("failed to remove scratch directory", "dir", scratch, "error", err)
		}
	}()

	r := NewRasterizer(c.backend, WithDPI(c.opts.DPI), WithRasterizerLogger(c.logger))
	images, err := r.Rasterize(ctx, docPath, scratch)
	if err != nil {
		return nil, nil, err
	}
	pres, report, err := comp.Compose(images)
	if err != nil {
		return nil, report, err
	}
	if err := save(pres, outputPath); err != nil {
		return nil, report, err
	}
	return pres, report, nil
}

func save(p *Presentation, path string) error {
	if err := p.Save(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
