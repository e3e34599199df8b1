// Package output provides the CLI rendering layer: a Renderer that picks
// between plain text, markdown and JSON, with styled text on a terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects the rendering style.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Renderer writes command output in the resolved mode. Auto resolves to
// text on a terminal and markdown when piped.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styled bool
}

// NewRenderer builds a renderer. Unknown modes fall back to auto.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeText, ModeMarkdown, ModeJSON:
	default:
		if isTerminal(out) {
			mode = ModeText
		} else {
			mode = ModeMarkdown
		}
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styled: mode == ModeText && isTerminal(out) && supportsColor(out),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

func supportsColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return termenv.NewOutput(f).EnvColorProfile() != termenv.Ascii
}

// Mode returns the resolved rendering mode.
func (r *Renderer) Mode() Mode { return r.mode }

// Out returns the primary output writer.
func (r *Renderer) Out() io.Writer { return r.out }

// Err returns the error/progress writer.
func (r *Renderer) Err() io.Writer { return r.errOut }

// Heading writes a section heading.
func (r *Renderer) Heading(text string) {
	switch r.mode {
	case ModeMarkdown:
		fmt.Fprintf(r.out, "## %s\n\n", text)
	case ModeJSON:
		// JSON output carries no headings.
	default:
		if r.styled {
			fmt.Fprintln(r.out, headingStyle.Render(text))
		} else {
			fmt.Fprintln(r.out, text)
		}
	}
}

// Successf reports a completed step.
func (r *Renderer) Successf(format string, args ...any) {
	r.linef(successStyle, "✓ ", format, args...)
}

// Warnf reports a non-fatal problem.
func (r *Renderer) Warnf(format string, args ...any) {
	r.linef(warnStyle, "! ", format, args...)
}

// Errorf reports an error on the error writer.
func (r *Renderer) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if r.styled {
		msg = errorStyle.Render(msg)
	}
	fmt.Fprintln(r.errOut, msg)
}

// Infof writes plain progress output.
func (r *Renderer) Infof(format string, args ...any) {
	if r.mode == ModeJSON {
		return
	}
	fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *Renderer) linef(style lipgloss.Style, prefix, format string, args ...any) {
	if r.mode == ModeJSON {
		return
	}
	msg := prefix + fmt.Sprintf(format, args...)
	if r.styled {
		msg = style.Render(msg)
	}
	fmt.Fprintln(r.out, msg)
}

// JSON encodes v onto the output writer, indented.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
