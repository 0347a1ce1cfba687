package slideshow

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// ComposeReport describes what the Compositor did with its input.
type ComposeReport struct {
	// Images holds the placed images, in slide order.
	Images []RasterImage
	// Placements holds the rectangle of Images[i] on slide i+1.
	Placements []Placement
	// Skipped lists the paths that were not placed.
	Skipped []string
	// Warnings collects the per-image errors behind Skipped, and any
	// non-fatal thumbnail failure.
	Warnings *multierror.Error
}

// Slides returns the number of slides produced.
func (r *ComposeReport) Slides() int {
	return len(r.Images)
}

func (r *ComposeReport) warn(path string, err error) {
	if path != "" {
		r.Skipped = append(r.Skipped, path)
	}
	r.Warnings = multierror.Append(r.Warnings, err)
}

// Compositor places images on a fixed canvas, one image per slide.
type Compositor struct {
	canvas     Canvas
	fit        FitMode
	thumbnail  bool
	thumbWidth int
	title      string
	logger     *zap.SugaredLogger
}

// CompositorOption configures a Compositor.
type CompositorOption func(*Compositor)

// WithFitMode selects aspect-preserving placement or stretch-to-fill.
func WithFitMode(mode FitMode) CompositorOption {
	return func(c *Compositor) { c.fit = mode }
}

// WithThumbnail enables rendering slide 1 into docProps/thumbnail.jpeg,
// width pixels wide. A non-positive width disables the thumbnail.
func WithThumbnail(width int) CompositorOption {
	return func(c *Compositor) {
		c.thumbnail = width > 0
		c.thumbWidth = width
	}
}

// WithTitle sets the document title written to the core properties.
func WithTitle(title string) CompositorOption {
	return func(c *Compositor) { c.title = title }
}

// WithCompositorLogger sets the logger used for per-image diagnostics.
func WithCompositorLogger(l *zap.SugaredLogger) CompositorOption {
	return func(c *Compositor) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCompositor returns a Compositor drawing on canvas.
func NewCompositor(canvas Canvas, opts ...CompositorOption) (*Compositor, error) {
	if err := canvas.Validate(); err != nil {
		return nil, err
	}
	c := &Compositor{
		canvas: canvas,
		fit:    FitPreserveAspect,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if _, err := ParseFitMode(string(c.fit)); err != nil {
		return nil, err
	}
	return c, nil
}

// Canvas returns the canvas the Compositor draws on.
func (c *Compositor) Canvas() Canvas { return c.canvas }

// ComposeDir builds a presentation from the images in dir that pass filter,
// in file name order. It returns ErrNoImagesFound when dir has no usable
// image.
func (c *Compositor) ComposeDir(dir string, filter *ExtensionFilter) (*Presentation, *ComposeReport, error) {
	report := &ComposeReport{}
	paths, err := ListImages(dir, filter)
	if err != nil {
		return nil, report, err
	}
	if len(paths) == 0 {
		return nil, report, fmt.Errorf("%w in %s", ErrNoImagesFound, dir)
	}

	images, errs := LoadImages(paths)
	for _, e := range errs {
		var ire *ImageReadError
		path := ""
		if errors.As(e, &ire) {
			path = ire.Path
		}
		c.logger.Warnw("skipping unreadable image", "error", e)
		report.warn(path, e)
	}
	return c.compose(images, report)
}

// Compose builds a presentation with one slide per image, in the given
// order. Images whose file cannot be used are skipped and reported. It
// returns ErrNoImagesFound when no slide could be produced.
func (c *Compositor) Compose(images []RasterImage) (*Presentation, *ComposeReport, error) {
	return c.compose(images, &ComposeReport{})
}

func (c *Compositor) compose(images []RasterImage, report *ComposeReport) (*Presentation, *ComposeReport, error) {
	pres := New()
	pres.SetLayout(c.canvas.layout())
	if c.title != "" {
		pres.GetDocumentProperties().Title = c.title
	}

	for _, img := range images {
		placement, err := c.canvas.Place(c.fit, img.Width, img.Height)
		if err != nil {
			e := &ImageReadError{Path: img.Path, Err: err}
			c.logger.Warnw("skipping image", "error", e)
			report.warn(img.Path, e)
			continue
		}
		pic := NewPicture()
		if err := pic.SetImageFromFile(img.Path); err != nil {
			e := &ImageReadError{Path: img.Path, Err: err}
			c.logger.Warnw("skipping image", "error", e)
			report.warn(img.Path, e)
			continue
		}
		pic.SetFormat(img.Format)

		slideNum := pres.GetSlideCount() + 1
		slide := pres.CreateSlide()
		slide.SetBackground(NewFill().SetSolid(c.canvas.Background))
		pic.SetName(fmt.Sprintf("Picture %d", slideNum)).
			SetDescription(filepath.Base(img.Path)).
			SetPlacement(placement)
		slide.pictures = append(slide.pictures, pic)

		placed := img
		placed.Index = slideNum
		report.Images = append(report.Images, placed)
		report.Placements = append(report.Placements, placement)
		c.logger.Debugw("slide composed", "slide", slideNum, "image", img.Path, "placement", placement.String())
	}

	if pres.GetSlideCount() == 0 {
		return nil, report, ErrNoImagesFound
	}

	if c.thumbnail {
		data, err := pres.Thumbnail(c.thumbWidth)
		if err != nil {
			c.logger.Warnw("thumbnail not generated", "error", err)
			report.warn("", fmt.Errorf("thumbnail: %w", err))
		} else {
			pres.SetThumbnailData(data)
		}
	}
	return pres, report, nil
}
