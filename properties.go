package slideshow

import "time"

// DocumentProperties holds the core document properties written to
// docProps/core.xml.
type DocumentProperties struct {
	Creator        string
	LastModifiedBy string
	Created        time.Time
	Modified       time.Time
	Title          string
	Description    string
	Subject        string
	Keywords       string
	Category       string
	Company        string
	Revision       string
}

// NewDocumentProperties creates new document properties with defaults.
func NewDocumentProperties() *DocumentProperties {
	now := time.Now()
	return &DocumentProperties{
		Creator:        "slideshow",
		LastModifiedBy: "slideshow",
		Created:        now,
		Modified:       now,
		Revision:       "1",
	}
}

// DocumentLayout represents the slide dimensions.
type DocumentLayout struct {
	CX   int64 // width in EMU (English Metric Units)
	CY   int64 // height in EMU
	Name string
}

// Standard layout names.
const (
	LayoutScreen4x3   = "screen4x3"
	LayoutScreen16x9  = "screen16x9"
	LayoutScreen16x10 = "screen16x10"
	LayoutWide20      = "wide20x11.25"
	LayoutCustom      = "custom"
)

// NewDocumentLayout creates the default 20in x 11.25in (16:9) layout.
func NewDocumentLayout() *DocumentLayout {
	return &DocumentLayout{
		CX:   Inch(20),
		CY:   Inch(11.25),
		Name: LayoutWide20,
	}
}

// SetLayout sets a predefined layout. Unknown names leave the size untouched.
func (dl *DocumentLayout) SetLayout(name string) {
	switch name {
	case LayoutScreen4x3:
		dl.CX, dl.CY = 9144000, 6858000
	case LayoutScreen16x9:
		dl.CX, dl.CY = 12192000, 6858000
	case LayoutScreen16x10:
		dl.CX, dl.CY = 10972800, 6858000
	case LayoutWide20:
		dl.CX, dl.CY = Inch(20), Inch(11.25)
	default:
		return
	}
	dl.Name = name
}

// SetCustomLayout sets custom dimensions in EMU. Non-positive values fall
// back to the default canvas dimension.
func (dl *DocumentLayout) SetCustomLayout(cx, cy int64) {
	if cx <= 0 {
		cx = Inch(20)
	}
	if cy <= 0 {
		cy = Inch(11.25)
	}
	dl.CX = cx
	dl.CY = cy
	dl.Name = LayoutCustom
}

// pptxSlideSizeType maps the layout to the sldSz type attribute.
func (dl *DocumentLayout) pptxSlideSizeType() string {
	switch dl.Name {
	case LayoutScreen4x3:
		return "screen4x3"
	case LayoutScreen16x9:
		return "screen16x9"
	case LayoutScreen16x10:
		return "screen16x10"
	default:
		return "custom"
	}
}
