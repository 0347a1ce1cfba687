package slideshow

import (
	"fmt"
	"os"
	"strings"
)

// Picture is an image placed on a slide. Geometry is in EMU.
type Picture struct {
	name        string
	description string
	offsetX     int64
	offsetY     int64
	width       int64
	height      int64
	path        string // file path, streamed into the package on save
	data        []byte // raw image data, used instead of path when set
	mimeType    string
}

// NewPicture creates an empty picture.
func NewPicture() *Picture {
	return &Picture{}
}

func (p *Picture) GetName() string        { return p.name }
func (p *Picture) GetDescription() string { return p.description }
func (p *Picture) GetPath() string        { return p.path }
func (p *Picture) GetImageData() []byte   { return p.data }
func (p *Picture) GetMimeType() string    { return p.mimeType }

// SetName sets the shape name shown in the selection pane.
func (p *Picture) SetName(n string) *Picture { p.name = n; return p }

// SetDescription sets the alt text.
func (p *Picture) SetDescription(d string) *Picture { p.description = d; return p }

// SetPlacement positions the picture at the given rectangle.
func (p *Picture) SetPlacement(r Placement) *Picture {
	p.offsetX, p.offsetY = r.Left, r.Top
	p.width, p.height = r.Width, r.Height
	return p
}

// Placement returns the picture rectangle.
func (p *Picture) Placement() Placement {
	return Placement{Left: p.offsetX, Top: p.offsetY, Width: p.width, Height: p.height}
}

// SetImageData sets the raw image data.
func (p *Picture) SetImageData(data []byte, mimeType string) *Picture {
	p.data = data
	p.mimeType = mimeType
	return p
}

// maxImageFileSize is the maximum allowed size for an image file loaded from disk.
const maxImageFileSize = 200 << 20 // 200 MB

// SetImageFromFile checks that path is a readable regular file within
// maxImageFileSize and references it from the picture.
func (p *Picture) SetImageFromFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat image file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("image %s is not a regular file", path)
	}
	if info.Size() > maxImageFileSize {
		return fmt.Errorf("image file too large: %d bytes (max %d)", info.Size(), maxImageFileSize)
	}
	p.path = path
	p.data = nil
	p.mimeType = guessMimeFromPath(path)
	return nil
}

// SetFormat sets the MIME type from a decoder format name such as "jpeg".
// Unknown names leave the type unchanged.
func (p *Picture) SetFormat(format string) *Picture {
	if m := mimeFromFormat(format); m != "" {
		p.mimeType = m
	}
	return p
}

func mimeFromFormat(format string) string {
	switch strings.ToLower(format) {
	case "png":
		return "image/png"
	case "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	}
	return ""
}

// guessMimeFromPath guesses the MIME type from a file extension.
func guessMimeFromPath(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	case strings.HasSuffix(lower, ".bmp"):
		return "image/bmp"
	default:
		return "image/png"
	}
}

// mediaExtension returns the part name extension used under ppt/media.
func (p *Picture) mediaExtension() string {
	switch p.mimeType {
	case "image/jpeg":
		return "jpeg"
	case "image/gif":
		return "gif"
	case "image/bmp":
		return "bmp"
	default:
		return "png"
	}
}

// hasImage reports whether the picture references any image bytes.
func (p *Picture) hasImage() bool {
	return p.data != nil || p.path != ""
}
