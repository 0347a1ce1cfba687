package slideshow

import (
	"fmt"
	"math"
	"strings"
)

// FitMode selects how an image is scaled onto the canvas.
type FitMode string

const (
	// FitPreserveAspect scales the image to touch the canvas on one axis and
	// centers it on the other, leaving background bars.
	FitPreserveAspect FitMode = "preserve-aspect"
	// FitStretchFill stretches the image over the whole canvas.
	FitStretchFill FitMode = "stretch-fill"
)

// ParseFitMode parses a fit mode name. The empty string selects
// FitPreserveAspect.
func ParseFitMode(s string) (FitMode, error) {
	switch FitMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", FitPreserveAspect:
		return FitPreserveAspect, nil
	case FitStretchFill:
		return FitStretchFill, nil
	}
	return "", fmt.Errorf("unknown fit mode %q (want %q or %q)", s, FitPreserveAspect, FitStretchFill)
}

// Rect is a rectangle in canvas units.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Fit computes where a w x h pixel image lands on a canvasW x canvasH
// surface.
//
// With FitPreserveAspect an image relatively wider than the canvas spans the
// full width and is centered vertically (letterbox). Otherwise it spans the
// full height and is centered horizontally (pillarbox); equal aspect ratios
// take this branch and fill the canvas with zero offsets.
func Fit(mode FitMode, w, h int, canvasW, canvasH float64) (Rect, error) {
	if w <= 0 || h <= 0 {
		return Rect{}, fmt.Errorf("image size %dx%d must be positive", w, h)
	}
	if canvasW <= 0 || canvasH <= 0 {
		return Rect{}, fmt.Errorf("canvas size %gx%g must be positive", canvasW, canvasH)
	}
	iw, ih := float64(w), float64(h)

	switch mode {
	case FitStretchFill:
		return Rect{Width: canvasW, Height: canvasH}, nil
	case FitPreserveAspect, "":
	default:
		return Rect{}, fmt.Errorf("unknown fit mode %q", mode)
	}

	// iw/ih > canvasW/canvasH, compared without dividing so equal ratios
	// stay equal.
	if iw*canvasH > ih*canvasW {
		newHeight := canvasW * ih / iw
		return Rect{
			Left:   0,
			Top:    (canvasH - newHeight) / 2,
			Width:  canvasW,
			Height: newHeight,
		}, nil
	}
	newWidth := canvasH * iw / ih
	return Rect{
		Left:   (canvasW - newWidth) / 2,
		Top:    0,
		Width:  newWidth,
		Height: canvasH,
	}, nil
}

// Place computes the EMU placement of a w x h pixel image on the canvas.
// Sizes are rounded to whole EMU and offsets recomputed from them, so the
// result is always contained in the canvas and centered on the free axis.
func (c Canvas) Place(mode FitMode, w, h int) (Placement, error) {
	r, err := Fit(mode, w, h, float64(c.Width), float64(c.Height))
	if err != nil {
		return Placement{}, err
	}
	width := clampLength(r.Width, c.Width)
	height := clampLength(r.Height, c.Height)
	return Placement{
		Left:   (c.Width - width) / 2,
		Top:    (c.Height - height) / 2,
		Width:  width,
		Height: height,
	}, nil
}

// clampLength rounds v to an EMU length in [1, limit].
func clampLength(v float64, limit int64) int64 {
	n := int64(math.Round(v))
	if n > limit {
		n = limit
	}
	if n < 1 {
		n = 1
	}
	return n
}
