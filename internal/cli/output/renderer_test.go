package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{"auto on terminal", ModeAuto, true, ModeText},
		{"auto piped", ModeAuto, false, ModeMarkdown},
		{"empty is auto", "", false, ModeMarkdown},
		{"explicit text piped", ModeText, false, ModeText},
		{"explicit markdown on terminal", ModeMarkdown, true, ModeMarkdown},
		{"json", ModeJSON, true, ModeJSON},
		{"unknown", Mode("yaml"), false, ModeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, tt.isTTY, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
			assert.Equal(t, tt.isTTY, r.IsTTY())
		})
	}
}

func TestNewRenderer_BufferIsNotTerminal(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestRenderer_Markdown(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	r := NewRendererWithTTY(out, errOut, false, ModeMarkdown)

	r.Header(1, "Lint Rules")
	r.Success("No problems found")
	r.Warning("careful")
	r.Error("broken")

	assert.Equal(t, "# Lint Rules\n\n**OK** No problems found\n", out.String())
	assert.Equal(t, "warning: careful\nerror: broken\n", errOut.String())
}

func TestRenderer_TextWithoutTerminalHasNoColors(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModeText)

	r.Header(2, "Rules")
	r.Println(r.Styles().Error.Render("error"))
	r.Success("done")

	assert.NotContains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "Rules\nerror\n✓ done\n")
}

func TestRenderer_JSON(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModeJSON)

	require.NoError(t, r.JSON(LintOutput{Summary: LintSummary{FilesLinted: 1}}))
	assert.Contains(t, out.String(), `"files_linted": 1`)
}

func TestRenderer_StatusLine(t *testing.T) {
	errOut := &bytes.Buffer{}
	r := NewRendererWithTTY(&bytes.Buffer{}, errOut, false, ModeText)
	r.StatusLine("watch", "3 files")
	assert.Equal(t, "watch 3 files\n", errOut.String())

	errOut.Reset()
	r = NewRendererWithTTY(&bytes.Buffer{}, errOut, false, ModeJSON)
	r.StatusLine("watch", "3 files")
	assert.Empty(t, errOut.String())
}

func TestRenderer_Table(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		out := &bytes.Buffer{}
		r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModeMarkdown)
		r.Table([]string{"Rule", "Severity"}, [][]string{{"id-duplication", "error"}})

		assert.Contains(t, out.String(), "| Rule | Severity |")
		assert.Contains(t, out.String(), "| id-duplication | error |")
	})

	t.Run("text", func(t *testing.T) {
		out := &bytes.Buffer{}
		r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModeText)
		r.Table([]string{"Rule", "Severity"}, [][]string{{"id-duplication", "error"}})

		assert.Contains(t, out.String(), "Rule")
		assert.Contains(t, out.String(), "id-duplication")
		assert.Contains(t, out.String(), "┌")
	})
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "## Options", FormatHeader("Options", 2))
	assert.Equal(t, "# Title", FormatHeader("Title", 0))
	assert.Equal(t, "###### Deep", FormatHeader("Deep", 9))
	assert.Equal(t, "**Severity:** error", FormatKeyValue("Severity", "error"))
	assert.Equal(t, "```html\n<div></div>\n```", FormatCodeBlock("html", "<div></div>\n"))
}
