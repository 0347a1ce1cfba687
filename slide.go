package slideshow

// Slide is a single slide holding an optional background fill and the
// pictures placed on it, drawn in order.
type Slide struct {
	name       string
	background *Fill
	pictures   []*Picture
}

func newSlide() *Slide {
	return &Slide{pictures: make([]*Picture, 0, 1)}
}

// GetName returns the slide name.
func (s *Slide) GetName() string { return s.name }

// SetName sets the slide name.
func (s *Slide) SetName(name string) *Slide {
	s.name = name
	return s
}

// GetBackground returns the slide background, or nil when none is set.
func (s *Slide) GetBackground() *Fill { return s.background }

// SetBackground sets the slide background fill.
func (s *Slide) SetBackground(f *Fill) *Slide {
	s.background = f
	return s
}

// CreatePicture creates a picture and adds it to the slide.
func (s *Slide) CreatePicture() *Picture {
	pic := NewPicture()
	s.pictures = append(s.pictures, pic)
	return pic
}

// Pictures returns the pictures on the slide.
func (s *Slide) Pictures() []*Picture { return s.pictures }
