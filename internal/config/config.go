// Package config loads conversion settings from an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/VantageDataChat/slideshow"
)

// Environment variables, applied over the file values.
const (
	EnvDPI            = "SLIDESHOW_DPI"
	EnvFit            = "SLIDESHOW_FIT"
	EnvBackground     = "SLIDESHOW_BACKGROUND"
	EnvCanvasWidth    = "SLIDESHOW_CANVAS_WIDTH"
	EnvCanvasHeight   = "SLIDESHOW_CANVAS_HEIGHT"
	EnvExtensions     = "SLIDESHOW_EXTENSIONS"
	EnvPopplerPath    = "SLIDESHOW_POPPLER_PATH"
	EnvOutputName     = "SLIDESHOW_OUTPUT_NAME"
	EnvThumbnailWidth = "SLIDESHOW_THUMBNAIL_WIDTH"

	EnvS3Endpoint  = "SLIDESHOW_S3_ENDPOINT"
	EnvS3AccessKey = "SLIDESHOW_S3_ACCESS_KEY"
	EnvS3SecretKey = "SLIDESHOW_S3_SECRET_KEY"
	EnvS3Bucket    = "SLIDESHOW_S3_BUCKET"
	EnvS3Region    = "SLIDESHOW_S3_REGION"
	EnvS3Prefix    = "SLIDESHOW_S3_PREFIX"
	EnvS3Insecure  = "SLIDESHOW_S3_INSECURE"
)

// Config holds every setting of a conversion run.
type Config struct {
	DPI            int      `yaml:"dpi"`
	CanvasWidthIn  float64  `yaml:"canvas_width_in"`
	CanvasHeightIn float64  `yaml:"canvas_height_in"`
	Background     string   `yaml:"background"`
	Fit            string   `yaml:"fit"`
	Extensions     []string `yaml:"extensions"`
	// PopplerPath is the directory holding pdftoppm. Empty means PATH.
	PopplerPath    string `yaml:"poppler_path"`
	OutputName     string `yaml:"output_name"`
	ThumbnailWidth int    `yaml:"thumbnail_width"`
	S3             S3     `yaml:"s3"`
}

// S3 configures the optional upload of the saved presentation.
type S3 struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
	Insecure  bool   `yaml:"insecure"`
}

// Enabled reports whether enough is configured to attempt an upload.
func (s S3) Enabled() bool {
	return s.Endpoint != "" && s.Bucket != ""
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DPI:            slideshow.DefaultDPI,
		CanvasWidthIn:  20,
		CanvasHeightIn: 11.25,
		Background:     "black",
		Fit:            string(slideshow.FitPreserveAspect),
		Extensions:     append([]string(nil), slideshow.DefaultExtensions...),
		OutputName:     slideshow.DefaultOutputName,
		ThumbnailWidth: 256,
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped
// when path is empty), then with a .env file in the working directory if
// one exists, then with the process environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var err error
	setInt := func(key string, dst *int) {
		v, ok := os.LookupEnv(key)
		if !ok || err != nil {
			return
		}
		n, perr := strconv.Atoi(strings.TrimSpace(v))
		if perr != nil {
			err = fmt.Errorf("%s: %w", key, perr)
			return
		}
		*dst = n
	}
	setFloat := func(key string, dst *float64) {
		v, ok := os.LookupEnv(key)
		if !ok || err != nil {
			return
		}
		f, perr := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if perr != nil {
			err = fmt.Errorf("%s: %w", key, perr)
			return
		}
		*dst = f
	}
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	setInt(EnvDPI, &c.DPI)
	setInt(EnvThumbnailWidth, &c.ThumbnailWidth)
	setFloat(EnvCanvasWidth, &c.CanvasWidthIn)
	setFloat(EnvCanvasHeight, &c.CanvasHeightIn)
	setString(EnvFit, &c.Fit)
	setString(EnvBackground, &c.Background)
	setString(EnvPopplerPath, &c.PopplerPath)
	setString(EnvOutputName, &c.OutputName)
	if v, ok := os.LookupEnv(EnvExtensions); ok {
		c.Extensions = SplitList(v)
	}

	setString(EnvS3Endpoint, &c.S3.Endpoint)
	setString(EnvS3AccessKey, &c.S3.AccessKey)
	setString(EnvS3SecretKey, &c.S3.SecretKey)
	setString(EnvS3Bucket, &c.S3.Bucket)
	setString(EnvS3Region, &c.S3.Region)
	setString(EnvS3Prefix, &c.S3.Prefix)
	if v, ok := os.LookupEnv(EnvS3Insecure); ok && err == nil {
		b, perr := strconv.ParseBool(strings.TrimSpace(v))
		if perr != nil {
			err = fmt.Errorf("%s: %w", EnvS3Insecure, perr)
		} else {
			c.S3.Insecure = b
		}
	}
	return err
}

// SplitList splits a comma separated list, dropping empty items.
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs *multierror.Error
	if c.DPI <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("dpi must be positive, got %d", c.DPI))
	}
	if c.CanvasWidthIn <= 0 || c.CanvasHeightIn <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("canvas size %gx%g in must be positive", c.CanvasWidthIn, c.CanvasHeightIn))
	} else if err := slideshow.CanvasInches(c.CanvasWidthIn, c.CanvasHeightIn, slideshow.ColorBlack).Validate(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if _, err := slideshow.ParseColor(c.Background); err != nil {
		errs = multierror.Append(errs, err)
	}
	if _, err := slideshow.ParseFitMode(c.Fit); err != nil {
		errs = multierror.Append(errs, err)
	}
	if len(c.Extensions) == 0 {
		errs = multierror.Append(errs, errors.New("extension list is empty"))
	}
	if c.ThumbnailWidth < 0 {
		errs = multierror.Append(errs, fmt.Errorf("thumbnail width must not be negative, got %d", c.ThumbnailWidth))
	}
	if c.S3.Enabled() && (c.S3.AccessKey == "" || c.S3.SecretKey == "") {
		errs = multierror.Append(errs, errors.New("s3 upload needs an access key and a secret key"))
	}
	return errs.ErrorOrNil()
}

// Options converts the configuration into conversion options. Call
// Validate first.
func (c *Config) Options() (slideshow.Options, error) {
	bg, err := slideshow.ParseColor(c.Background)
	if err != nil {
		return slideshow.Options{}, err
	}
	fit, err := slideshow.ParseFitMode(c.Fit)
	if err != nil {
		return slideshow.Options{}, err
	}
	return slideshow.Options{
		Canvas:         slideshow.CanvasInches(c.CanvasWidthIn, c.CanvasHeightIn, bg),
		Fit:            fit,
		DPI:            c.DPI,
		Extensions:     c.Extensions,
		ThumbnailWidth: c.ThumbnailWidth,
	}, nil
}
