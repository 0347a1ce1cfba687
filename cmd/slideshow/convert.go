package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/VantageDataChat/slideshow"
	"github.com/VantageDataChat/slideshow/internal/config"
	"github.com/VantageDataChat/slideshow/internal/poppler"
	"github.com/VantageDataChat/slideshow/internal/prompt"
	"github.com/VantageDataChat/slideshow/internal/publish"
)

var (
	okStyle   = color.New(color.FgGreen, color.Bold)
	warnStyle = color.New(color.FgYellow)
	errStyle  = color.New(color.FgRed)
)

// convertFlags are the command line flags of the default action. Flags
// override the config file and the environment only when set.
type convertFlags struct {
	ConfigFile     string
	DPI            int
	Fit            string
	Background     string
	CanvasWidth    float64
	CanvasHeight   float64
	Extensions     string
	PopplerPath    string
	OutputDir      string
	ThumbnailWidth int
	Title          string
	Interactive    bool
	Upload         bool
	Verbose        bool
}

func (flags *convertFlags) AsCliFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "YAML configuration file.",
			Destination: &flags.ConfigFile,
		},
		&cli.IntFlag{
			Name:        "dpi",
			Value:       slideshow.DefaultDPI,
			Usage:       "Resolution used to rasterize PDF pages.",
			Destination: &flags.DPI,
		},
		&cli.StringFlag{
			Name:        "fit",
			Value:       string(slideshow.FitPreserveAspect),
			Usage:       "Image fit: preserve-aspect (letterbox/pillarbox) or stretch-fill.",
			Destination: &flags.Fit,
		},
		&cli.StringFlag{
			Name:        "background",
			Value:       "black",
			Usage:       "Slide background color, a name or #RRGGBB.",
			Destination: &flags.Background,
		},
		&cli.Float64Flag{
			Name:        "canvas-width",
			Value:       20,
			Usage:       "Slide width in inches.",
			Destination: &flags.CanvasWidth,
		},
		&cli.Float64Flag{
			Name:        "canvas-height",
			Value:       11.25,
			Usage:       "Slide height in inches.",
			Destination: &flags.CanvasHeight,
		},
		&cli.StringFlag{
			Name:        "extensions",
			Usage:       "Comma separated image extensions to pick up from a folder.",
			Destination: &flags.Extensions,
		},
		&cli.StringFlag{
			Name:        "poppler-path",
			Usage:       "Directory containing pdftoppm. Defaults to PATH.",
			Destination: &flags.PopplerPath,
		},
		&cli.StringFlag{
			Name:        "output-dir",
			Usage:       "Directory for relative output names. Defaults to ~/Desktop.",
			Destination: &flags.OutputDir,
		},
		&cli.IntFlag{
			Name:        "thumbnail-width",
			Value:       256,
			Usage:       "Width of the embedded preview thumbnail; 0 disables it.",
			Destination: &flags.ThumbnailWidth,
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Document title. Defaults to the input name.",
			Destination: &flags.Title,
		},
		&cli.BoolFlag{
			Name:        "interactive",
			Aliases:     []string{"i"},
			Usage:       "Ask for the input and the save path on the terminal.",
			Destination: &flags.Interactive,
		},
		&cli.BoolFlag{
			Name:        "upload",
			Usage:       "Upload the saved presentation to the configured S3 bucket.",
			Destination: &flags.Upload,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Usage:       "Log progress to stderr.",
			Destination: &flags.Verbose,
		},
	}
}

// apply copies the flags the user set onto cfg.
func (flags *convertFlags) apply(c *cli.Context, cfg *config.Config) {
	if c.IsSet("dpi") {
		cfg.DPI = flags.DPI
	}
	if c.IsSet("fit") {
		cfg.Fit = flags.Fit
	}
	if c.IsSet("background") {
		cfg.Background = flags.Background
	}
	if c.IsSet("canvas-width") {
		cfg.CanvasWidthIn = flags.CanvasWidth
	}
	if c.IsSet("canvas-height") {
		cfg.CanvasHeightIn = flags.CanvasHeight
	}
	if c.IsSet("extensions") {
		cfg.Extensions = config.SplitList(flags.Extensions)
	}
	if c.IsSet("poppler-path") {
		cfg.PopplerPath = flags.PopplerPath
	}
	if c.IsSet("thumbnail-width") {
		cfg.ThumbnailWidth = flags.ThumbnailWidth
	}
}

func runConvert(c *cli.Context, flags *convertFlags) error {
	out := c.App.Writer
	logger, err := newLogger(flags.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		return err
	}
	flags.apply(c, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if flags.Upload && !cfg.S3.Enabled() {
		return errors.New("--upload needs an S3 endpoint and bucket")
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts.Title = flags.Title

	resolver, err := pickResolver(c, flags, cfg)
	if err != nil {
		return err
	}
	req, err := resolver.Resolve()
	if errors.Is(err, prompt.ErrCancelled) {
		fmt.Fprintln(out, "No file or folder selected. Exiting.")
		return nil
	}
	if err != nil {
		return err
	}

	backend := poppler.New(cfg.PopplerPath, poppler.WithLogger(logger))
	conv, err := slideshow.NewConverter(opts, backend, slideshow.WithLogger(logger))
	if err != nil {
		return err
	}
	if slideshow.IsDocument(req.InputPath) {
		fmt.Fprintln(out, "Converting PDF to images...")
	}

	res, err := conv.Convert(c.Context, req.InputPath, req.OutputPath)
	if res != nil && res.Report != nil {
		printWarnings(out, res.Report.Warnings)
	}
	switch {
	case errors.Is(err, slideshow.ErrNoImagesFound):
		fmt.Fprintln(out, "No image files found in the folder.")
		return nil
	case errors.Is(err, slideshow.ErrInvalidInputPath):
		errStyle.Fprintf(out, "Error: %s\n", err)
		fmt.Fprintln(out, "Please give an existing PDF file or a folder of images.")
		return nil
	case err != nil:
		return err
	}

	size := ""
	if info, err := os.Stat(res.OutputPath); err == nil {
		size = ", " + humanize.Bytes(uint64(info.Size()))
	}
	okStyle.Fprint(out, "Presentation saved as: ")
	fmt.Fprintf(out, "%s (%d slides%s)\n", res.OutputPath, res.Slides, size)

	if flags.Upload {
		return upload(c, cfg, res.OutputPath, logger)
	}
	return nil
}

func pickResolver(c *cli.Context, flags *convertFlags, cfg *config.Config) (prompt.Resolver, error) {
	if flags.Interactive || (c.NArg() == 0 && prompt.IsInteractive(os.Stdin)) {
		return prompt.TerminalResolver{In: os.Stdin, Out: c.App.Writer, DefaultName: cfg.OutputName}, nil
	}
	if c.NArg() == 0 {
		return nil, errors.New("missing input path (run with --interactive to be prompted)")
	}
	return prompt.ArgsResolver{
		Args:        c.Args().Slice(),
		OutputDir:   flags.OutputDir,
		DefaultName: cfg.OutputName,
	}, nil
}

func printWarnings(out io.Writer, warnings *multierror.Error) {
	if warnings == nil {
		return
	}
	for _, w := range warnings.Errors {
		warnStyle.Fprintf(out, "Warning: %s\n", w)
	}
}

func upload(c *cli.Context, cfg *config.Config, path string, logger *zap.SugaredLogger) error {
	up, err := publish.NewUploader(c.Context, cfg.S3, logger)
	if err != nil {
		return err
	}
	url, err := up.Upload(c.Context, path)
	if err != nil {
		return err
	}
	okStyle.Fprint(c.App.Writer, "Uploaded to: ")
	fmt.Fprintln(c.App.Writer, url)
	return nil
}
