package main

import (
	"bytes"
	"fmt"
	"strings"
)

// generatedHeader marks pages that are overwritten on every run.
const generatedHeader = "<!-- Code generated by scripts/gendocs. DO NOT EDIT. -->"

// MarkdownWriter accumulates a markdown page.
type MarkdownWriter struct {
	buf bytes.Buffer
}

// NewMarkdownWriter returns an empty writer.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// Frontmatter writes the YAML block read by the docs site.
func (w *MarkdownWriter) Frontmatter(title, description string) {
	fmt.Fprintf(&w.buf, "---\ntitle: %q\ndescription: %q\n---\n\n", title, cleanDescription(description))
}

// GeneratedMarker writes generatedHeader.
func (w *MarkdownWriter) GeneratedMarker() {
	w.Line(generatedHeader)
	w.Newline()
}

// Header writes a heading of the given level.
func (w *MarkdownWriter) Header(level int, text string) {
	w.Line(strings.Repeat("#", level) + " " + text)
	w.Newline()
}

// Paragraph writes text followed by a blank line.
func (w *MarkdownWriter) Paragraph(text string) {
	w.Line(strings.TrimSpace(text))
	w.Newline()
}

// Line writes text and a newline.
func (w *MarkdownWriter) Line(text string) {
	w.buf.WriteString(text)
	w.buf.WriteByte('\n')
}

// Newline writes an empty line.
func (w *MarkdownWriter) Newline() {
	w.buf.WriteByte('\n')
}

// CodeBlock writes a fenced block.
func (w *MarkdownWriter) CodeBlock(lang, code string) {
	w.Line("```" + lang)
	w.Line(strings.TrimRight(code, "\n"))
	w.Line("```")
	w.Newline()
}

// BulletList writes one bullet per item.
func (w *MarkdownWriter) BulletList(items []string) {
	for _, item := range items {
		w.Line("- " + item)
	}
	w.Newline()
}

// Table writes a GitHub table. Pipes in cells are escaped.
func (w *MarkdownWriter) Table(headers []string, rows [][]string) {
	w.Line("| " + strings.Join(escapeCells(headers), " | ") + " |")
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	w.Line("| " + strings.Join(sep, " | ") + " |")
	for _, row := range rows {
		w.Line("| " + strings.Join(escapeCells(row), " | ") + " |")
	}
	w.Newline()
}

// Bytes returns the page.
func (w *MarkdownWriter) Bytes() []byte {
	return w.buf.Bytes()
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return out
}

// Bold wraps s in strong emphasis.
func Bold(s string) string {
	return "**" + s + "**"
}

// InlineCode wraps s in backticks.
func InlineCode(s string) string {
	return "`" + s + "`"
}

// cleanDescription collapses whitespace and drops a trailing period so
// descriptions fit in table cells.
func cleanDescription(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSuffix(s, ".")
}
