// Package prompt resolves the input and output paths of a conversion, from
// command line arguments or by asking on a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/VantageDataChat/slideshow"
)

// ErrCancelled is returned when the user gives no answer to a prompt.
var ErrCancelled = errors.New("cancelled")

// Request is a resolved conversion: what to read and where to save.
type Request struct {
	InputPath  string
	OutputPath string
}

// Resolver produces a Request.
type Resolver interface {
	Resolve() (Request, error)
}

// DesktopDir returns ~/Desktop, the default save location.
func DesktopDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Desktop"), nil
}

// ArgsResolver resolves positional arguments: the input path, then an
// optional output name. A relative output name is placed in OutputDir.
type ArgsResolver struct {
	Args []string
	// OutputDir receives relative output names. Empty means DesktopDir.
	OutputDir string
	// DefaultName is used when no output name is given.
	DefaultName string
}

func (r ArgsResolver) Resolve() (Request, error) {
	if len(r.Args) == 0 || strings.TrimSpace(r.Args[0]) == "" {
		return Request{}, errors.New("missing input path")
	}
	if len(r.Args) > 2 {
		return Request{}, fmt.Errorf("expected at most 2 arguments, got %d", len(r.Args))
	}

	name := r.DefaultName
	if name == "" {
		name = slideshow.DefaultOutputName
	}
	if len(r.Args) == 2 && strings.TrimSpace(r.Args[1]) != "" {
		name = strings.TrimSpace(r.Args[1])
	}
	if filepath.IsAbs(name) {
		return Request{InputPath: r.Args[0], OutputPath: name}, nil
	}

	dir := r.OutputDir
	if dir == "" {
		d, err := DesktopDir()
		if err != nil {
			return Request{}, fmt.Errorf("locate desktop: %w", err)
		}
		dir = d
	}
	return Request{InputPath: r.Args[0], OutputPath: filepath.Join(dir, name)}, nil
}

// TerminalResolver asks for the input kind, the input path and the save
// path, one line each. End of input cancels, and so does an empty answer
// to a question without a default.
type TerminalResolver struct {
	In  io.Reader
	Out io.Writer
	// DefaultName is suggested for the save path.
	DefaultName string
}

var (
	questionStyle = color.New(color.FgCyan, color.Bold)
	hintStyle     = color.New(color.Faint)
)

func (r TerminalResolver) Resolve() (Request, error) {
	in := bufio.NewReader(r.In)
	defaultName := r.DefaultName
	if defaultName == "" {
		defaultName = slideshow.DefaultOutputName
	}

	kind, err := r.ask(in, "Convert a [p]df file or a [f]older of images?", "p/f", "")
	if err != nil {
		return Request{}, err
	}
	var what string
	switch strings.ToLower(kind) {
	case "p", "pdf":
		what = "PDF file"
	case "f", "folder", "d", "dir":
		what = "folder of images"
	default:
		return Request{}, fmt.Errorf("unknown choice %q", kind)
	}

	input, err := r.ask(in, "Path to the "+what+":", "", "")
	if err != nil {
		return Request{}, err
	}
	output, err := r.ask(in, "Save presentation as:", defaultName, defaultName)
	if err != nil {
		return Request{}, err
	}
	if !strings.EqualFold(filepath.Ext(output), ".pptx") {
		output += ".pptx"
	}
	return Request{InputPath: input, OutputPath: output}, nil
}

func (r TerminalResolver) ask(in *bufio.Reader, question, hint, def string) (string, error) {
	questionStyle.Fprint(r.Out, question)
	if hint != "" {
		hintStyle.Fprintf(r.Out, " [%s]", hint)
	}
	fmt.Fprint(r.Out, " ")

	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	answer := strings.TrimSpace(line)
	switch {
	case answer != "":
		return answer, nil
	case err == nil && def != "":
		return def, nil
	default:
		return "", ErrCancelled
	}
}

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
