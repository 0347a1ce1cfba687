// Package poppler renders PDF pages with poppler's pdftoppm and counts
// pages with a pure-Go PDF reader.
package poppler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
)

// Tool is the poppler binary used for rendering.
const Tool = "pdftoppm"

// ErrToolNotFound is returned when pdftoppm cannot be located.
var ErrToolNotFound = errors.New("pdftoppm not found: install poppler-utils or configure the poppler path")

// Backend rasterizes PDF pages. It implements slideshow.RasterBackend.
type Backend struct {
	binDir string
	logger *zap.SugaredLogger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for command diagnostics.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// New returns a Backend looking for pdftoppm in binDir, or on PATH when
// binDir is empty.
func New(binDir string, opts ...Option) *Backend {
	b := &Backend{binDir: binDir, logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ToolPath returns the pdftoppm executable to run.
func (b *Backend) ToolPath() (string, error) {
	if b.binDir == "" {
		p, err := exec.LookPath(Tool)
		if err != nil {
			return "", ErrToolNotFound
		}
		return p, nil
	}
	name := Tool
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	p := filepath.Join(b.binDir, name)
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w (looked in %s)", ErrToolNotFound, b.binDir)
	}
	return p, nil
}

// Available reports whether pdftoppm can be run.
func (b *Backend) Available() error {
	_, err := b.ToolPath()
	return err
}

// PageCount opens the document and walks its page tree.
func (b *Backend) PageCount(ctx context.Context, docPath string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r, err := pdf.Open(docPath, nil)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	defer r.Close()

	n, err := pagetree.NumPages(r)
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return n, nil
}

// RenderPage renders one page (1-based) at dpi into the PNG file dst.
func (b *Backend) RenderPage(ctx context.Context, docPath string, page, dpi int, dst string) error {
	if page < 1 {
		return fmt.Errorf("invalid page %d", page)
	}
	if !strings.EqualFold(filepath.Ext(dst), ".png") {
		return fmt.Errorf("destination %s must have a .png extension", dst)
	}
	tool, err := b.ToolPath()
	if err != nil {
		return err
	}

	// pdftoppm appends the extension to the output root itself.
	root := strings.TrimSuffix(dst, filepath.Ext(dst))
	args := renderArgs(docPath, root, page, dpi)
	b.logger.Debugw("running pdftoppm", "tool", tool, "args", args)

	cmd := exec.CommandContext(ctx, tool, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		msg := strings.TrimSpace(out.String())
		if msg == "" {
			return fmt.Errorf("pdftoppm: %w", err)
		}
		return fmt.Errorf("pdftoppm: %w: %s", err, msg)
	}

	produced := root + ".png"
	if produced != dst {
		if err := os.Rename(produced, dst); err != nil {
			return fmt.Errorf("pdftoppm output: %w", err)
		}
	}
	if _, err := os.Stat(dst); err != nil {
		return fmt.Errorf("pdftoppm produced no output for page %d: %w", page, err)
	}
	return nil
}

func renderArgs(docPath, root string, page, dpi int) []string {
	p := strconv.Itoa(page)
	return []string{
		"-png",
		"-r", strconv.Itoa(dpi),
		"-f", p,
		"-l", p,
		"-singlefile",
		docPath,
		root,
	}
}
