// slideshow converts a PDF or a folder of images into a .pptx deck with one
// full-canvas picture per slide.
//
//	slideshow [flags] <input.pdf|image-dir> [output-name]
//	slideshow inspect [--render-dir dir] <deck.pptx>
package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/VantageDataChat/slideshow"
)

func newApp(out io.Writer) *cli.App {
	var flags convertFlags
	var inspect inspectFlags
	return &cli.App{
		Name:      "slideshow",
		Usage:     "Turn a PDF or a folder of images into a PowerPoint slideshow.",
		Version:   slideshow.Version,
		ArgsUsage: "<input.pdf|image-dir> [output-name]",
		Writer:    out,
		ErrWriter: out,
		Flags:     (&flags).AsCliFlags(),
		Action: func(c *cli.Context) error {
			return runConvert(c, &flags)
		},
		Commands: []*cli.Command{
			{
				Name:      "inspect",
				Usage:     "Print the slide geometry of a .pptx file",
				ArgsUsage: "<deck.pptx>",
				Flags:     (&inspect).AsCliFlags(),
				Action: func(c *cli.Context) error {
					return runInspect(c, &inspect)
				},
			},
		},
	}
}

// newLogger returns a console logger at debug level when verbose, and a
// production logger that only reports warnings otherwise.
func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		return l.Sugar(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(os.Stdout).RunContext(ctx, os.Args); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "\nError: %s\n", err)
		stop()
		os.Exit(1)
	}
}
