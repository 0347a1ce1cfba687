package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/slideshow"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"slideshow"}, args...))
	return out.String(), err
}

func TestConvertFolder(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "b.png"), 40, 30)
	writePNG(t, filepath.Join(in, "a.png"), 20, 50)
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("skip me"), 0o644))
	dst := filepath.Join(t.TempDir(), "deck.pptx")

	out, err := run(t, "--fit", "stretch-fill", "--background", "#112233", in, dst)
	require.NoError(t, err)
	assert.Contains(t, out, "Presentation saved as: ")
	assert.Contains(t, out, "2 slides")

	pres, err := slideshow.Open(dst)
	require.NoError(t, err)
	require.Equal(t, 2, pres.GetSlideCount())
	assert.Equal(t, "a.png", pres.Slides()[0].Pictures()[0].GetDescription())
	full := slideshow.Placement{Width: slideshow.Inch(20), Height: slideshow.Inch(11.25)}
	for _, p := range pres.Placements() {
		assert.Equal(t, full, p)
	}
	assert.Equal(t, slideshow.NewColor("112233"), pres.Canvas().Background)

	out, err = run(t, "inspect", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "2 slides")
	assert.Contains(t, out, "b.png")
	assert.Contains(t, out, "20.00in")
}

func TestConvertRelativeNameUsesOutputDir(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "only.png"), 16, 9)
	outDir := t.TempDir()

	_, err := run(t, "--output-dir", outDir, in, "named.pptx")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "named.pptx"))
}

func TestConvertEmptyFolder(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "deck.pptx")
	out, err := run(t, t.TempDir(), dst)
	require.NoError(t, err)
	assert.Contains(t, out, "No image files found")
	assert.NoFileExists(t, dst)
}

func TestConvertMissingInput(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "deck.pptx")
	out, err := run(t, filepath.Join(t.TempDir(), "nope"), dst)
	require.NoError(t, err)
	assert.Contains(t, out, "Error: ")
	assert.NoFileExists(t, dst)
}

func TestConvertRejectsBadFlags(t *testing.T) {
	in := t.TempDir()
	_, err := run(t, "--fit", "zoom", in, filepath.Join(t.TempDir(), "x.pptx"))
	require.Error(t, err)
}

func TestInspectRenders(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "p.png"), 32, 32)
	dst := filepath.Join(t.TempDir(), "deck.pptx")
	_, err := run(t, in, dst)
	require.NoError(t, err)

	renderDir := t.TempDir()
	out, err := run(t, "inspect", "--render-dir", renderDir, "--render-width", "160", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "Rendered 1 slides")

	f, err := os.Open(filepath.Join(renderDir, "slide_001.png"))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 160, cfg.Width)
	assert.Equal(t, 90, cfg.Height)
}

func TestInspectNeedsOneFile(t *testing.T) {
	_, err := run(t, "inspect")
	require.Error(t, err)
}

func TestVersionAndHelp(t *testing.T) {
	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, slideshow.Version)

	out, err = run(t, "-v")
	require.NoError(t, err)
	assert.Contains(t, out, slideshow.Version)

	out, err = run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--verbose")
	assert.Contains(t, out, "inspect")
}

func TestVerboseConvert(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "p.png"), 8, 8)
	dst := filepath.Join(t.TempDir(), "deck.pptx")
	_, err := run(t, "--verbose", in, dst)
	require.NoError(t, err)
	assert.FileExists(t, dst)
}
