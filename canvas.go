package slideshow

import "fmt"

// Canvas is the fixed output surface every slide shares. Width and Height
// are in EMU.
type Canvas struct {
	Width      int64
	Height     int64
	Background Color
}

// DefaultCanvas returns a 20in x 11.25in (16:9) black canvas.
func DefaultCanvas() Canvas {
	return Canvas{
		Width:      Inch(20),
		Height:     Inch(11.25),
		Background: ColorBlack,
	}
}

// CanvasInches returns a canvas of the given size in inches.
func CanvasInches(width, height float64, background Color) Canvas {
	return Canvas{Width: Inch(width), Height: Inch(height), Background: background}
}

func slideSizeInRange(emu int64) bool {
	return emu >= MinSlideEMU && emu <= MaxSlideEMU
}

// Validate checks that the canvas has a usable size and color.
func (c Canvas) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d EMU must be positive", c.Width, c.Height)
	}
	if !slideSizeInRange(c.Width) || !slideSizeInRange(c.Height) {
		return fmt.Errorf("canvas size %gx%g in must be between 1in and 56in per side",
			EMUToInch(c.Width), EMUToInch(c.Height))
	}
	if !isValidARGB(c.Background.ARGB) {
		return fmt.Errorf("canvas background %q is not a valid ARGB color", c.Background.ARGB)
	}
	return nil
}

// layout returns the document layout matching the canvas size, using a
// named PowerPoint size when one fits exactly.
func (c Canvas) layout() *DocumentLayout {
	dl := NewDocumentLayout()
	if c.Width == dl.CX && c.Height == dl.CY {
		return dl
	}
	for _, name := range []string{LayoutScreen4x3, LayoutScreen16x9, LayoutScreen16x10} {
		dl.SetLayout(name)
		if dl.CX == c.Width && dl.CY == c.Height {
			return dl
		}
	}
	dl.SetCustomLayout(c.Width, c.Height)
	return dl
}

// Placement is the rectangle an image occupies on the canvas, in EMU.
type Placement struct {
	Left   int64
	Top    int64
	Width  int64
	Height int64
}

// Within reports whether the rectangle lies entirely inside the canvas.
func (p Placement) Within(c Canvas) bool {
	return p.Left >= 0 && p.Top >= 0 &&
		p.Width >= 0 && p.Height >= 0 &&
		p.Left+p.Width <= c.Width &&
		p.Top+p.Height <= c.Height
}

// Area returns Width*Height as a float to avoid overflow on large slides.
func (p Placement) Area() float64 {
	return float64(p.Width) * float64(p.Height)
}

func (p Placement) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", p.Left, p.Top, p.Width, p.Height)
}
