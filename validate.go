package slideshow

import (
	"fmt"
	"strings"
)

// Validate checks the presentation for structural issues and returns an error
// describing all problems found, or nil if the presentation can be written.
func (p *Presentation) Validate() error {
	var errs []string

	if p.properties == nil {
		errs = append(errs, "document properties are nil")
	}
	canvas := Canvas{}
	if p.layout == nil {
		errs = append(errs, "document layout is nil")
	} else {
		if !slideSizeInRange(p.layout.CX) {
			errs = append(errs, fmt.Sprintf("layout width %d EMU is outside %d..%d", p.layout.CX, MinSlideEMU, MaxSlideEMU))
		}
		if !slideSizeInRange(p.layout.CY) {
			errs = append(errs, fmt.Sprintf("layout height %d EMU is outside %d..%d", p.layout.CY, MinSlideEMU, MaxSlideEMU))
		}
		canvas.Width, canvas.Height = p.layout.CX, p.layout.CY
	}
	if len(p.slides) == 0 {
		errs = append(errs, "presentation must have at least one slide")
	}

	for i, slide := range p.slides {
		prefix := fmt.Sprintf("slide %d", i+1)
		if slide == nil {
			errs = append(errs, prefix+": slide is nil")
			continue
		}
		for _, e := range validateSlide(slide, canvas) {
			errs = append(errs, prefix+": "+e)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func validateSlide(s *Slide, canvas Canvas) []string {
	var errs []string
	if s.background != nil && s.background.Type == FillSolid && !isValidARGB(s.background.Color.ARGB) {
		errs = append(errs, "background color is invalid ARGB")
	}
	for j, pic := range s.pictures {
		prefix := fmt.Sprintf("picture %d", j+1)
		if pic == nil {
			errs = append(errs, prefix+": picture is nil")
			continue
		}
		if pic.width < 0 {
			errs = append(errs, prefix+": width is negative")
		}
		if pic.height < 0 {
			errs = append(errs, prefix+": height is negative")
		}
		if !pic.hasImage() {
			errs = append(errs, prefix+": picture has no image data or path")
		}
		if pic.mimeType != "" && !isValidImageMime(pic.mimeType) {
			errs = append(errs, prefix+": unsupported image MIME type: "+pic.mimeType)
		}
		if canvas.Width > 0 && canvas.Height > 0 && !pic.Placement().Within(canvas) {
			errs = append(errs, fmt.Sprintf("%s: placement %s extends beyond the slide", prefix, pic.Placement()))
		}
	}
	return errs
}

// isValidImageMime checks if a MIME type is a supported image format.
func isValidImageMime(mime string) bool {
	switch mime {
	case "image/png", "image/jpeg", "image/gif", "image/bmp":
		return true
	}
	return false
}
