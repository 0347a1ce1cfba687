package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/slideshow"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, slideshow.DefaultCanvas(), opts.Canvas)
	assert.Equal(t, slideshow.FitPreserveAspect, opts.Fit)
	assert.Equal(t, 200, opts.DPI)
	assert.Equal(t, []string{"png", "jpg", "jpeg", "bmp", "gif"}, opts.Extensions)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slideshow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dpi: 300
canvas_width_in: 13.333
canvas_height_in: 7.5
background: "#202020"
fit: stretch-fill
extensions: [png, tif]
poppler_path: /opt/poppler/bin
s3:
  endpoint: s3.example.com
  bucket: decks
  access_key: ak
  secret_key: sk
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 300, cfg.DPI)
	assert.Equal(t, "stretch-fill", cfg.Fit)
	assert.Equal(t, []string{"png", "tif"}, cfg.Extensions)
	assert.Equal(t, "/opt/poppler/bin", cfg.PopplerPath)
	assert.True(t, cfg.S3.Enabled())
	// Unset keys keep their defaults.
	assert.Equal(t, 256, cfg.ThumbnailWidth)
	assert.Equal(t, "output.pptx", cfg.OutputName)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, slideshow.NewColor("202020"), opts.Canvas.Background)
	assert.Equal(t, slideshow.Inch(7.5), opts.Canvas.Height)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slideshow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dpi: 300\nfit: stretch-fill\n"), 0o644))

	t.Setenv(EnvDPI, "150")
	t.Setenv(EnvFit, "preserve-aspect")
	t.Setenv(EnvExtensions, "PNG, jpg,,")
	t.Setenv(EnvBackground, "white")
	t.Setenv(EnvS3Insecure, "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 150, cfg.DPI)
	assert.Equal(t, "preserve-aspect", cfg.Fit)
	assert.Equal(t, []string{"PNG", "jpg"}, cfg.Extensions)
	assert.Equal(t, "white", cfg.Background)
	assert.True(t, cfg.S3.Insecure)
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv(EnvDPI, "lots")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvDPI)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.DPI = 0
	cfg.CanvasWidthIn = -1
	cfg.Background = "mauve-ish"
	cfg.Fit = "zoom"
	cfg.Extensions = nil
	cfg.S3 = S3{Endpoint: "s3.example.com", Bucket: "decks"}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"dpi", "canvas size", "mauve-ish", "zoom", "extension list", "secret key"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a ,, b "))
	assert.Nil(t, SplitList(""))
}

func TestValidateCanvasRange(t *testing.T) {
	tests := []struct {
		w, h float64
		ok   bool
	}{
		{20, 11.25, true},
		{1, 1, true},
		{56, 56, true},
		{100, 60, false},
		{0.5, 0.25, false},
		{20, 57, false},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.CanvasWidthIn, cfg.CanvasHeightIn = tt.w, tt.h
		err := cfg.Validate()
		if tt.ok {
			assert.NoError(t, err, "%gx%g", tt.w, tt.h)
		} else {
			assert.ErrorContains(t, err, "between 1in and 56in", "%gx%g", tt.w, tt.h)
		}
	}
}

func TestLoadMalformedDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SLIDESHOW-DPI=300\n"), 0o644))
	chdir(t, dir)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".env")
}

func TestLoadWithoutDotEnv(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().DPI, cfg.DPI)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
