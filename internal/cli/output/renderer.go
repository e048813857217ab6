// Package output renders lint reports and rule documentation for the CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects how results are rendered.
type Mode string

// Output modes.
const (
	ModePretty  Mode = "pretty"
	ModeCompact Mode = "compact"
	ModeJSON    Mode = "json"
)

// Renderer writes styled output. Colors are only used when the output is
// a terminal and NO_COLOR is not set.
type Renderer struct {
	w      io.Writer
	errW   io.Writer
	mode   Mode
	color  bool
	styles *Styles
}

// NewRenderer creates a renderer for w. Diagnostics about the run itself
// go to errW.
func NewRenderer(w, errW io.Writer, mode Mode) *Renderer {
	color := isTerminal(w) && !termenv.EnvNoColor()

	lr := lipgloss.NewRenderer(w)
	if !color {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		w:      w,
		errW:   errW,
		mode:   mode,
		color:  color,
		styles: NewStyles(lr),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in int
}

// Mode returns the configured mode, ModePretty when unset.
func (r *Renderer) Mode() Mode {
	if r.mode == "" {
		return ModePretty
	}
	return r.mode
}

// Color reports whether styles emit ANSI colors.
func (r *Renderer) Color() bool { return r.color }

// Styles returns the styles of the renderer.
func (r *Renderer) Styles() *Styles { return r.styles }

// Writer returns the main output writer.
func (r *Renderer) Writer() io.Writer { return r.w }

// Println writes a line.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.w, s)
}

// Printf writes formatted text.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

// Success writes a success line.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success.Render(msg))
}

// Warn writes a warning line to the error writer.
func (r *Renderer) Warn(msg string) {
	_, _ = fmt.Fprintln(r.errW, r.styles.Warning.Render(msg))
}

// Error writes an error line to the error writer.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errW, r.styles.Error.Render(msg))
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
