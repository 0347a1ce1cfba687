package slideshow

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInputPath reports an input that does not exist or is neither
	// a supported document nor a directory.
	ErrInvalidInputPath = errors.New("invalid input path")

	// ErrNoImagesFound reports that no usable image was found. It is a benign
	// outcome: nothing is written.
	ErrNoImagesFound = errors.New("no images found")

	// ErrRasterization matches every *RasterizationError.
	ErrRasterization = errors.New("rasterization failed")

	// ErrImageRead matches every *ImageReadError.
	ErrImageRead = errors.New("cannot read image")
)

// RasterizationError is returned when a document cannot be converted to
// page images: the backend is missing, the document is corrupt or a page
// fails to render. Page is 0 when the failure is not tied to one page.
type RasterizationError struct {
	Path string
	Page int
	Err  error
}

func (e *RasterizationError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("rasterize %s page %d: %v", e.Path, e.Page, e.Err)
	}
	return fmt.Sprintf("rasterize %s: %v", e.Path, e.Err)
}

func (e *RasterizationError) Unwrap() []error {
	return []error{ErrRasterization, e.Err}
}

// ImageReadError is reported for a single image that could not be opened
// or decoded.
type ImageReadError struct {
	Path string
	Err  error
}

func (e *ImageReadError) Error() string {
	return fmt.Sprintf("read image %s: %v", e.Path, e.Err)
}

func (e *ImageReadError) Unwrap() []error {
	return []error{ErrImageRead, e.Err}
}

// invalidInput wraps ErrInvalidInputPath with the offending path.
func invalidInput(path, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidInputPath, path, reason)
}
