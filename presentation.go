// Package slideshow turns a PDF or a folder of images into a PowerPoint
// presentation (.pptx) with one full-canvas picture per slide.
//
// The package has three layers. Rasterizer converts document pages into
// zero-padded, lexicographically ordered image files. Compositor computes an
// aspect-preserving placement for each image on a fixed canvas and builds a
// Presentation. Presentation and PPTXWriter serialize the result following
// the Office Open XML standard.
//
// Converter wires the layers together for a single input path.
package slideshow

// Presentation represents an in-memory picture deck.
type Presentation struct {
	properties    *DocumentProperties
	slides        []*Slide
	layout        *DocumentLayout
	thumbnailData []byte
}

// New creates an empty Presentation with the default 20in x 11.25in layout.
// Unlike an editor template it has no slides: every slide of the artifact
// comes from an image.
func New() *Presentation {
	return &Presentation{
		properties: NewDocumentProperties(),
		slides:     make([]*Slide, 0),
		layout:     NewDocumentLayout(),
	}
}

// GetDocumentProperties returns the document properties.
func (p *Presentation) GetDocumentProperties() *DocumentProperties {
	return p.properties
}

// GetLayout returns the document layout.
func (p *Presentation) GetLayout() *DocumentLayout {
	return p.layout
}

// SetLayout sets the document layout.
func (p *Presentation) SetLayout(layout *DocumentLayout) {
	p.layout = layout
}

// CreateSlide creates a new slide and appends it to the presentation.
func (p *Presentation) CreateSlide() *Slide {
	slide := newSlide()
	p.slides = append(p.slides, slide)
	return slide
}

// Slides returns all slides in order.
func (p *Presentation) Slides() []*Slide {
	return p.slides
}

// GetSlideCount returns the number of slides.
func (p *Presentation) GetSlideCount() int {
	return len(p.slides)
}

// SetThumbnailData sets the JPEG bytes stored as docProps/thumbnail.jpeg.
func (p *Presentation) SetThumbnailData(data []byte) {
	p.thumbnailData = data
}

// GetThumbnailData returns the thumbnail JPEG bytes, if any.
func (p *Presentation) GetThumbnailData() []byte {
	return p.thumbnailData
}
