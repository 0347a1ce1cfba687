package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/VantageDataChat/slideshow"
)

type inspectFlags struct {
	RenderDir   string
	RenderWidth int
}

func (flags *inspectFlags) AsCliFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "render-dir",
			Usage:       "Also render every slide as slide_NNN.png into this directory.",
			Destination: &flags.RenderDir,
		},
		&cli.IntFlag{
			Name:        "render-width",
			Value:       960,
			Usage:       "Width in pixels of rendered slides.",
			Destination: &flags.RenderWidth,
		},
	}
}

func runInspect(c *cli.Context, flags *inspectFlags) error {
	if c.NArg() != 1 {
		return errors.New("inspect takes exactly one .pptx file")
	}
	path := c.Args().First()
	pres, err := slideshow.Open(path)
	if err != nil {
		return err
	}

	out := c.App.Writer
	canvas := pres.Canvas()
	fmt.Fprintf(out, "%s: %q, %d slides, %s x %s, background %s\n",
		filepath.Base(path), pres.GetDocumentProperties().Title, pres.GetSlideCount(),
		inches(canvas.Width), inches(canvas.Height), canvas.Background)

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Slide", "Image", "Left", "Top", "Width", "Height", "Size"})
	for i, slide := range pres.Slides() {
		for _, pic := range slide.Pictures() {
			p := pic.Placement()
			table.Append([]string{
				strconv.Itoa(i + 1),
				pic.GetDescription(),
				inches(p.Left),
				inches(p.Top),
				inches(p.Width),
				inches(p.Height),
				humanize.Bytes(uint64(len(pic.GetImageData()))),
			})
		}
	}
	table.Render()

	if flags.RenderDir == "" {
		return nil
	}
	opts := &slideshow.RenderOptions{Width: flags.RenderWidth, Format: slideshow.ImageFormatPNG}
	if err := pres.SaveSlidesAsImages(filepath.Join(flags.RenderDir, "slide_%03d.png"), opts); err != nil {
		return err
	}
	fmt.Fprintf(out, "Rendered %d slides into %s\n", pres.GetSlideCount(), flags.RenderDir)
	return nil
}

func inches(emu int64) string {
	return strconv.FormatFloat(slideshow.EMUToInch(emu), 'f', 2, 64) + "in"
}
