// Package output renders command results for terminals, pipes and
// machines.
//
// A Renderer has a Mode. ModeAuto resolves to styled text on a terminal
// and to plain markdown otherwise, so piped output stays readable in
// reports and pull requests.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes formatted output. Result data goes to the output writer,
// diagnostics about the run (warnings, errors) go to the error writer.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	r := &Renderer{out: out, errOut: errOut, mode: mode, isTTY: isTTY}

	lr := lipgloss.NewRenderer(out)
	switch {
	case !isTTY || r.EffectiveMode() != ModeText:
		lr.SetColorProfile(termenv.Ascii)
	case os.Getenv("NO_COLOR") != "":
		lr.SetColorProfile(termenv.Ascii)
	default:
		lr.SetColorProfile(termenv.NewOutput(out).EnvColorProfile())
	}
	r.styles = NewStyles(lr)
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

// EffectiveMode resolves ModeAuto. Unknown modes render as text.
func (r *Renderer) EffectiveMode() Mode {
	switch r.mode {
	case ModeText, ModeMarkdown, ModeJSON:
		return r.mode
	case ModeAuto:
		if r.isTTY {
			return ModeText
		}
		return ModeMarkdown
	default:
		return ModeText
	}
}

// IsTTY reports whether the output is a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Styles returns the renderer's styles. They render plain text when
// colors are off.
func (r *Renderer) Styles() *Styles { return r.styles }

// Writer returns the output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the error writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Println writes a line to the output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a heading. Level 1 is the largest.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatHeader(text, level))
		r.Println("")
		return
	}
	style := r.styles.Header2
	if level <= 1 {
		style = r.styles.Header1
	}
	r.Println(style.Render(text))
}

// Success writes a success line to the output.
func (r *Renderer) Success(msg string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println("**OK** " + msg)
		return
	}
	r.Println(r.styles.Success.Render("✓ " + msg))
}

// Warning writes a warning to the error writer.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("warning: ")+msg)
}

// Error writes an error to the error writer.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("error: ")+msg)
}

// Muted renders s in the muted style.
func (r *Renderer) Muted(s string) string {
	return r.styles.Muted.Render(s)
}

// StatusLine writes a status line to the error writer, e.g. progress in
// watch mode. It is silent in JSON mode so the output stays parseable.
func (r *Renderer) StatusLine(label, msg string) {
	if r.EffectiveMode() == ModeJSON {
		return
	}
	_, _ = fmt.Fprintf(r.errOut, "%s %s\n", r.styles.Info.Render(label), msg)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatHeader returns a markdown heading.
func FormatHeader(text string, level int) string {
	level = max(1, min(level, 6))
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a markdown "key: value" line with a bold key.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("**%s:** %s", key, value)
}

// FormatCodeBlock returns a fenced markdown code block.
func FormatCodeBlock(lang, code string) string {
	return "```" + lang + "\n" + strings.TrimRight(code, "\n") + "\n```"
}
