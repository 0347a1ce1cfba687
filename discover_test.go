package slideshow

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtensionFilter(t *testing.T) {
	f := NewExtensionFilter()
	for name, want := range map[string]bool{
		"a.png":           true,
		"B.PNG":           true,
		"c.JpEg":          true,
		"d.jpg":           true,
		"e.bmp":           true,
		"f.GIF":           true,
		"g.tiff":          false,
		"notes.txt":       false,
		"png":             false,
		".hidden":         false,
		"archive.png.zip": false,
	} {
		if got := f.Match(name); got != want {
			t.Errorf("Match(%q) = %v, want %v", name, got, want)
		}
	}

	custom := NewExtensionFilter(".TIFF", " webp ", "")
	if !custom.Match("scan.tiff") || !custom.Match("x.WEBP") || custom.Match("a.png") {
		t.Error("custom filter does not honour its list")
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "A.JPG", "c.gif", "notes.txt", "z.pdf"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := ListImages(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "A.JPG"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "c.gif"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListImages mismatch (-want +got):\n%s", diff)
	}
}

func TestListImagesEmptyAndMissing(t *testing.T) {
	got, err := ListImages(t.TempDir(), nil)
	if err != nil || len(got) != 0 {
		t.Errorf("empty dir: %v, %v", got, err)
	}
	if _, err := ListImages(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("expected error for a missing directory")
	}
}

func TestReadRasterImageFormats(t *testing.T) {
	dir := t.TempDir()
	for _, tc := range []struct {
		name   string
		format string
	}{
		{"a.png", "png"},
		{"b.jpg", "jpeg"},
		{"c.gif", "gif"},
		{"d.bmp", "bmp"},
	} {
		path := filepath.Join(dir, tc.name)
		writeImage(t, path, 40, 25)
		img, err := ReadRasterImage(path, 7)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		want := RasterImage{Index: 7, Width: 40, Height: 25, Path: path, Format: tc.format}
		if img != want {
			t.Errorf("%s: got %+v, want %+v", tc.name, img, want)
		}
	}
}

func TestReadRasterImageCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadRasterImage(path, 1)
	var ire *ImageReadError
	if !errors.As(err, &ire) || ire.Path != path {
		t.Fatalf("got %v, want *ImageReadError for %s", err, path)
	}
	if !errors.Is(err, ErrImageRead) {
		t.Error("error does not match ErrImageRead")
	}

	_, err = ReadRasterImage(filepath.Join(t.TempDir(), "gone.png"), 1)
	if !errors.Is(err, ErrImageRead) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v", err)
	}
}

func TestLoadImagesSkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	good1 := filepath.Join(dir, "1.png")
	bad := filepath.Join(dir, "2.png")
	good2 := filepath.Join(dir, "3.png")
	writeImage(t, good1, 10, 10)
	if err := os.WriteFile(bad, []byte{0x89, 'P', 'N', 'G'}, 0o644); err != nil {
		t.Fatal(err)
	}
	writeImage(t, good2, 30, 10)

	images, errs := LoadImages([]string{good1, bad, good2})
	if len(errs) != 1 || !errors.Is(errs[0], ErrImageRead) {
		t.Fatalf("errs = %v", errs)
	}
	if len(images) != 2 {
		t.Fatalf("got %d images", len(images))
	}
	if images[0].Index != 1 || images[1].Index != 2 || images[1].Path != good2 {
		t.Errorf("indices not contiguous: %+v", images)
	}
}
