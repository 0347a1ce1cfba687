package slideshow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFitScenarios(t *testing.T) {
	tests := []struct {
		name string
		mode FitMode
		w, h int
		cw   float64
		ch   float64
		want Rect
	}{
		{"pillarbox 4:3 on 16:9", FitPreserveAspect, 800, 600, 1920, 1080, Rect{240, 0, 1440, 1080}},
		{"letterbox 4:1 on 16:9", FitPreserveAspect, 2000, 500, 1920, 1080, Rect{0, 300, 1920, 480}},
		{"equal aspect fills", FitPreserveAspect, 3840, 2160, 1920, 1080, Rect{0, 0, 1920, 1080}},
		{"portrait", FitPreserveAspect, 1080, 1920, 1920, 1080, Rect{656.25, 0, 607.5, 1080}},
		{"empty mode preserves aspect", "", 800, 600, 1920, 1080, Rect{240, 0, 1440, 1080}},
		{"stretch ignores aspect", FitStretchFill, 2000, 500, 1920, 1080, Rect{0, 0, 1920, 1080}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fit(tt.mode, tt.w, tt.h, tt.cw, tt.ch)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Fit mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFitErrors(t *testing.T) {
	for _, tc := range []struct {
		mode   FitMode
		w, h   int
		cw, ch float64
	}{
		{FitPreserveAspect, 0, 10, 100, 100},
		{FitPreserveAspect, 10, -1, 100, 100},
		{FitPreserveAspect, 10, 10, 0, 100},
		{"zoom", 10, 10, 100, 100},
	} {
		if _, err := Fit(tc.mode, tc.w, tc.h, tc.cw, tc.ch); err == nil {
			t.Errorf("Fit(%q, %d, %d, %g, %g): expected error", tc.mode, tc.w, tc.h, tc.cw, tc.ch)
		}
	}
}

func TestParseFitMode(t *testing.T) {
	for in, want := range map[string]FitMode{
		"":                FitPreserveAspect,
		"preserve-aspect": FitPreserveAspect,
		" Stretch-Fill ":  FitStretchFill,
	} {
		got, err := ParseFitMode(in)
		if err != nil || got != want {
			t.Errorf("ParseFitMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFitMode("cover"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestPlaceDefaultCanvas(t *testing.T) {
	c := DefaultCanvas()
	got, err := c.Place(FitPreserveAspect, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	// 4:3 on 16:9: full height, width 3/4 of the height.
	want := Placement{Left: 2286000, Top: 0, Width: 13716000, Height: 10287000}
	if got != want {
		t.Errorf("Place = %v, want %v", got, want)
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// imageSizes covers wide, tall, square, tiny and extreme images.
var imageSizes = [][2]int{
	{1, 1}, {2, 1}, {1, 2}, {16, 9}, {9, 16}, {4, 3}, {3, 4},
	{800, 600}, {2000, 500}, {1920, 1080}, {1080, 1920}, {1921, 1080},
	{1, 10000}, {10000, 1}, {3, 7}, {4961, 7016}, {7016, 4961}, {1234, 567},
}

func TestPlaceProperties(t *testing.T) {
	canvases := []Canvas{
		DefaultCanvas(),
		CanvasInches(10, 7.5, ColorBlack),
		CanvasInches(7.5, 10, ColorWhite),
		{Width: 1001, Height: 777, Background: ColorBlack},
	}
	for _, c := range canvases {
		for _, s := range imageSizes {
			w, h := s[0], s[1]
			p, err := c.Place(FitPreserveAspect, w, h)
			if err != nil {
				t.Fatal(err)
			}

			if !p.Within(c) {
				t.Errorf("%dx%d on %dx%d: %v not contained", w, h, c.Width, c.Height, p)
			}
			if p.Area() > float64(c.Width)*float64(c.Height) {
				t.Errorf("%dx%d: area exceeds canvas", w, h)
			}

			fullWidth := p.Left == 0 && p.Width == c.Width
			fullHeight := p.Top == 0 && p.Height == c.Height
			if !fullWidth && !fullHeight {
				t.Errorf("%dx%d on %dx%d: %v touches neither pair of edges", w, h, c.Width, c.Height, p)
			}
			if fullWidth && fullHeight && int64(w)*c.Height != int64(h)*c.Width {
				// Only equal aspects fill the canvas, unless rounding
				// collapses a one-EMU bar.
				bar := abs64(int64(w)*c.Height - int64(h)*c.Width)
				if bar > int64(max(w, h)) {
					t.Errorf("%dx%d on %dx%d: full bleed for unequal aspect", w, h, c.Width, c.Height)
				}
			}

			// Centered on the free axis, up to the odd EMU.
			if d := c.Width - p.Width - 2*p.Left; d != 0 && d != 1 {
				t.Errorf("%dx%d: not centered horizontally: %v", w, h, p)
			}
			if d := c.Height - p.Height - 2*p.Top; d != 0 && d != 1 {
				t.Errorf("%dx%d: not centered vertically: %v", w, h, p)
			}

			// Aspect preserved to within the rounding of one side.
			skew := abs64(p.Width*int64(h) - p.Height*int64(w))
			if skew > int64(max(w, h)) {
				t.Errorf("%dx%d on %dx%d: aspect skew %d for %v", w, h, c.Width, c.Height, skew, p)
			}

			again, err := c.Place(FitPreserveAspect, w, h)
			if err != nil || again != p {
				t.Errorf("%dx%d: placement not idempotent: %v then %v", w, h, p, again)
			}
		}
	}
}

func TestPlaceEqualAspectFullBleed(t *testing.T) {
	c := DefaultCanvas()
	for _, s := range [][2]int{{16, 9}, {1920, 1080}, {3840, 2160}, {160, 90}} {
		p, err := c.Place(FitPreserveAspect, s[0], s[1])
		if err != nil {
			t.Fatal(err)
		}
		want := Placement{Width: c.Width, Height: c.Height}
		if p != want {
			t.Errorf("%dx%d: got %v, want full bleed %v", s[0], s[1], p, want)
		}
	}
}

func TestPlaceStretchFill(t *testing.T) {
	c := DefaultCanvas()
	for _, s := range imageSizes {
		p, err := c.Place(FitStretchFill, s[0], s[1])
		if err != nil {
			t.Fatal(err)
		}
		if p != (Placement{Width: c.Width, Height: c.Height}) {
			t.Errorf("%dx%d: stretch-fill placement %v", s[0], s[1], p)
		}
	}
}

func TestCanvasValidate(t *testing.T) {
	tests := []struct {
		name   string
		canvas Canvas
		ok     bool
	}{
		{"default", DefaultCanvas(), true},
		{"smallest slide", CanvasInches(1, 1, ColorBlack), true},
		{"largest slide", CanvasInches(56, 56, ColorWhite), true},
		{"zero width", Canvas{Width: 0, Height: Inch(10), Background: ColorBlack}, false},
		{"negative height", Canvas{Width: Inch(10), Height: -1, Background: ColorBlack}, false},
		{"pixel sizes", Canvas{Width: 1920, Height: 1080, Background: ColorBlack}, false},
		{"under an inch", CanvasInches(0.5, 0.25, ColorBlack), false},
		{"wider than 56in", CanvasInches(100, 60, ColorBlack), false},
		{"one EMU too tall", Canvas{Width: Inch(10), Height: MaxSlideEMU + 1, Background: ColorBlack}, false},
		{"one EMU too narrow", Canvas{Width: MinSlideEMU - 1, Height: Inch(10), Background: ColorBlack}, false},
		{"bad color", Canvas{Width: Inch(10), Height: Inch(10), Background: Color{ARGB: "black"}}, false},
	}
	for _, tt := range tests {
		err := tt.canvas.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("%s: %+v accepted", tt.name, tt.canvas)
		}
	}
}

func TestCompositorRejectsOutOfRangeCanvas(t *testing.T) {
	if _, err := NewCompositor(CanvasInches(100, 60, ColorBlack)); err == nil {
		t.Error("expected error for a canvas PowerPoint cannot open")
	}
}
