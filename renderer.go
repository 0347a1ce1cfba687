package slideshow

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

// RenderOptions configures slide-to-image rendering.
type RenderOptions struct {
	// Width is the output image width in pixels. Height follows the slide
	// aspect ratio. Default: 960.
	Width int
	// Format is the output image format (PNG or JPEG).
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 85.
	JPEGQuality int
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Width:       960,
		Format:      ImageFormatPNG,
		JPEGQuality: 85,
	}
}

// SlideToImage renders a single slide: the background fill, then every
// picture scaled into its rectangle.
func (p *Presentation) SlideToImage(slideIndex int, opts *RenderOptions) (image.Image, error) {
	if slideIndex < 0 || slideIndex >= len(p.slides) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", slideIndex, len(p.slides)-1)
	}
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	width := opts.Width
	if width <= 0 {
		width = 960
	}

	slide := p.slides[slideIndex]
	slideW := float64(p.layout.CX)
	slideH := float64(p.layout.CY)
	height := int(float64(width) * slideH / slideW)
	if height < 1 {
		height = 1
	}

	r := &renderer{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		scaleX: float64(width) / slideW,
		scaleY: float64(height) / slideH,
	}

	bg := ColorWhite
	if slide.background != nil && slide.background.Type == FillSolid {
		bg = slide.background.Color
	}
	draw.Draw(r.img, r.img.Bounds(), &image.Uniform{C: bg.RGBA()}, image.Point{}, draw.Src)

	for i, pic := range slide.pictures {
		if err := r.renderPicture(pic); err != nil {
			return nil, fmt.Errorf("slide %d picture %d: %w", slideIndex+1, i+1, err)
		}
	}
	return r.img, nil
}

// SaveSlideAsImage renders a slide and saves it to a file.
func (p *Presentation) SaveSlideAsImage(slideIndex int, path string, opts *RenderOptions) error {
	img, err := p.SlideToImage(slideIndex, opts)
	if err != nil {
		return err
	}
	return saveImage(img, path, opts)
}

// SaveSlidesAsImages renders all slides. The pattern must contain one
// integer verb for the 1-based slide number, e.g. "slide_%03d.png".
func (p *Presentation) SaveSlidesAsImages(pattern string, opts *RenderOptions) error {
	for i := range p.slides {
		path := fmt.Sprintf(pattern, i+1)
		if err := p.SaveSlideAsImage(i, path, opts); err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
	}
	return nil
}

// Thumbnail renders the first slide as a JPEG width pixels wide, suitable
// for docProps/thumbnail.jpeg.
func (p *Presentation) Thumbnail(width int) ([]byte, error) {
	opts := &RenderOptions{Width: width, Format: ImageFormatJPEG, JPEGQuality: 80}
	img, err := p.SlideToImage(0, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: opts.JPEGQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func saveImage(img image.Image, path string, opts *RenderOptions) error {
	if opts == nil {
		opts = DefaultRenderOptions()
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	switch opts.Format {
	case ImageFormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 85
		}
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	default:
		err = png.Encode(f, img)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

// --- renderer ---

type renderer struct {
	img    *image.RGBA
	scaleX float64
	scaleY float64
}

func (r *renderer) emuToPixelX(emu int64) int {
	return int(float64(emu)*r.scaleX + 0.5)
}

func (r *renderer) emuToPixelY(emu int64) int {
	return int(float64(emu)*r.scaleY + 0.5)
}

func (r *renderer) renderPicture(pic *Picture) error {
	src, err := decodePicture(pic)
	if err != nil {
		return err
	}
	x := r.emuToPixelX(pic.offsetX)
	y := r.emuToPixelY(pic.offsetY)
	w := r.emuToPixelX(pic.width)
	h := r.emuToPixelY(pic.height)
	if w <= 0 || h <= 0 {
		return nil
	}
	dst := image.Rect(x, y, x+w, y+h)
	draw.ApproxBiLinear.Scale(r.img, dst, src, src.Bounds(), draw.Over, nil)
	return nil
}

// decodePicture decodes the picture from its in-memory data or its file.
func decodePicture(pic *Picture) (image.Image, error) {
	if pic.data != nil {
		img, _, err := image.Decode(bytes.NewReader(pic.data))
		return img, err
	}
	if pic.path == "" {
		return nil, fmt.Errorf("picture %q has no image", pic.name)
	}
	f, err := os.Open(pic.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", pic.path, err)
	}
	return img, nil
}
