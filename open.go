package slideshow

import (
	"io"
)

// Open reads a PPTX file from disk and returns a Presentation.
// This is a convenience wrapper around NewReader + Read.
func Open(path string) (*Presentation, error) {
	reader, err := NewReader(ReaderPowerPoint2007)
	if err != nil {
		return nil, err
	}
	return reader.Read(path)
}

// ReadFrom reads a PPTX from an io.ReaderAt with the given size.
func ReadFrom(r io.ReaderAt, size int64) (*Presentation, error) {
	reader, err := NewReader(ReaderPowerPoint2007)
	if err != nil {
		return nil, err
	}
	return reader.ReadFromReader(r, size)
}

// Save writes the presentation to a PPTX file.
// This is a convenience wrapper around NewWriter + Save.
func (p *Presentation) Save(path string) error {
	writer, err := NewWriter(p, WriterPowerPoint2007)
	if err != nil {
		return err
	}
	return writer.Save(path)
}

// WriteTo writes the presentation to a writer in PPTX format.
func (p *Presentation) WriteTo(w io.Writer) error {
	writer, err := NewWriter(p, WriterPowerPoint2007)
	if err != nil {
		return err
	}
	return writer.WriteTo(w)
}

// Placements returns the picture rectangles of every slide, in slide order.
// Slides without a picture yield a zero Placement.
func (p *Presentation) Placements() []Placement {
	out := make([]Placement, len(p.slides))
	for i, slide := range p.slides {
		if len(slide.pictures) > 0 {
			out[i] = slide.pictures[0].Placement()
		}
	}
	return out
}

// Canvas returns the slide size and the background of the first slide.
func (p *Presentation) Canvas() Canvas {
	c := Canvas{Width: p.layout.CX, Height: p.layout.CY, Background: ColorBlack}
	if len(p.slides) > 0 {
		if bg := p.slides[0].background; bg != nil && bg.Type == FillSolid {
			c.Background = bg.Color
		}
	}
	return c
}
