package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmark/internal/cli/config"
	"github.com/leapstack-labs/leapmark/internal/cli/output"
	"github.com/leapstack-labs/leapmark/internal/cli/testutil"
	"github.com/leapstack-labs/leapmark/internal/runner"
	"github.com/leapstack-labs/leapmark/pkg/core"
	"github.com/leapstack-labs/leapmark/pkg/lint"

	_ "github.com/leapstack-labs/leapmark/pkg/dialects/svelte"
	_ "github.com/leapstack-labs/leapmark/pkg/dialects/vue"
	_ "github.com/leapstack-labs/leapmark/pkg/lint/rules/a11y"
	_ "github.com/leapstack-labs/leapmark/pkg/lint/rules/style"
	_ "github.com/leapstack-labs/leapmark/pkg/lint/rules/validation"
)

func enabled(c *lint.Config, name string) bool {
	s, ok := c.Rules[name]
	return ok && !s.Disabled
}

func TestBuildLintConfig(t *testing.T) {
	registry := lint.Default()

	t.Run("no rules configured enables built-ins", func(t *testing.T) {
		cfg, err := buildLintConfig(&config.Config{}, registry, nil, ruleOverrides{})
		require.NoError(t, err)
		assert.True(t, enabled(cfg, "wai-aria"))
		assert.True(t, enabled(cfg, "id-duplication"))
		assert.True(t, enabled(cfg, "attr-value-quotes"))
	})

	t.Run("configured rules are kept as is", func(t *testing.T) {
		c := &config.Config{Rules: map[string]any{"id-duplication": true, "wai-aria": false}}
		cfg, err := buildLintConfig(c, registry, nil, ruleOverrides{})
		require.NoError(t, err)
		assert.True(t, enabled(cfg, "id-duplication"))
		assert.False(t, enabled(cfg, "wai-aria"))
		_, mentioned := cfg.Rules["attr-value-quotes"]
		assert.False(t, mentioned)
	})

	t.Run("disable rules", func(t *testing.T) {
		cfg, err := buildLintConfig(&config.Config{}, registry, nil, ruleOverrides{Disable: []string{"wai-aria", "id-duplication"}})
		require.NoError(t, err)
		assert.False(t, enabled(cfg, "wai-aria"))
		assert.False(t, enabled(cfg, "id-duplication"))
		assert.True(t, enabled(cfg, "attr-duplication"))
	})

	t.Run("enable only specific rules", func(t *testing.T) {
		c := &config.Config{Rules: map[string]any{"wai-aria": false}}
		cfg, err := buildLintConfig(c, registry, nil, ruleOverrides{Only: []string{"wai-aria", "id-duplication"}})
		require.NoError(t, err)
		assert.True(t, enabled(cfg, "wai-aria"))
		assert.True(t, enabled(cfg, "id-duplication"))
		assert.False(t, enabled(cfg, "attr-value-quotes"))
		assert.False(t, enabled(cfg, "invalid-attr"))
	})

	t.Run("disabled rules are removed from node rules", func(t *testing.T) {
		c := &config.Config{
			Rules:     map[string]any{"wai-aria": true},
			NodeRules: []config.NodeRuleConfig{{Selector: "img", Rules: map[string]any{"attr-value-quotes": true}}},
		}
		cfg, err := buildLintConfig(c, registry, nil, ruleOverrides{Disable: []string{"attr-value-quotes"}})
		require.NoError(t, err)
		require.Len(t, cfg.NodeRules, 1)
		assert.NotContains(t, cfg.NodeRules[0].Rules, "attr-value-quotes")
	})

	t.Run("unknown rule", func(t *testing.T) {
		_, err := buildLintConfig(&config.Config{}, registry, nil, ruleOverrides{Only: []string{"no-such-rule"}})
		assert.ErrorIs(t, err, lint.ErrUnknownRule)

		_, err = buildLintConfig(&config.Config{}, registry, nil, ruleOverrides{Disable: []string{"no-such-rule"}})
		assert.ErrorIs(t, err, lint.ErrUnknownRule)
	})
}

func TestSummarize(t *testing.T) {
	files := []runner.FileResult{
		{
			Path: "a.html",
			Results: []lint.Result{
				{Rule: "id-duplication", Severity: core.SeverityError},
				{Rule: "attr-value-quotes", Severity: core.SeverityWarning},
				{Rule: "wai-aria", Severity: core.SeverityInfo},
			},
			Fixed: true,
		},
		{Path: "b.html", Err: errors.New("read failed")},
	}

	s := summarize(files, core.SeverityInfo)
	assert.Equal(t, output.LintSummary{
		FilesLinted: 2, FilesFixed: 1, FilesFailed: 1,
		TotalIssues: 3, Errors: 1, Warnings: 1, Info: 1,
	}, s)

	s = summarize(files, core.SeverityError)
	assert.Equal(t, 1, s.TotalIssues)
	assert.Equal(t, 0, s.Warnings)
}

func TestCheckSummary(t *testing.T) {
	tests := []struct {
		name        string
		summary     output.LintSummary
		maxWarnings int
		wantErr     bool
	}{
		{name: "clean", summary: output.LintSummary{FilesLinted: 3}, maxWarnings: -1},
		{name: "errors fail", summary: output.LintSummary{Errors: 1}, maxWarnings: -1, wantErr: true},
		{name: "failed files fail", summary: output.LintSummary{FilesFailed: 1}, maxWarnings: -1, wantErr: true},
		{name: "warnings pass by default", summary: output.LintSummary{Warnings: 10}, maxWarnings: -1},
		{name: "warnings under limit", summary: output.LintSummary{Warnings: 2}, maxWarnings: 2},
		{name: "warnings over limit", summary: output.LintSummary{Warnings: 3}, maxWarnings: 2, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkSummary(tt.summary, tt.maxWarnings)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrLintFailed)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func runLintCommand(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	t.Chdir(dir)

	// Mirror the root command: failures must not append usage to the output.
	cmd := NewLintCommand()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestLintCommand_JSON(t *testing.T) {
	dir := testutil.SetupTestProject(t, map[string]string{
		"index.html":   `<div id="a"></div><p id="a"></p>`,
		"clean.html":   `<p class="x">ok</p>`,
		"notes.txt":    `<div id="a"></div><div id="a"></div>`,
		"comp/app.vue": `<template><div id="v"></div></template>`,
	})

	out, err := runLintCommand(t, dir, "--format", "json", "--no-cache", "--rule", "id-duplication")
	require.ErrorIs(t, err, ErrLintFailed)

	var got output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	assert.Equal(t, 3, got.Summary.FilesLinted)
	assert.Equal(t, 1, got.Summary.Errors)

	byPath := map[string]output.LintFileResult{}
	for _, f := range got.Files {
		byPath[filepath.ToSlash(f.Path)] = f
	}
	require.Contains(t, byPath, "index.html")
	require.Len(t, byPath["index.html"].Diagnostics, 1)
	d := byPath["index.html"].Diagnostics[0]
	assert.Equal(t, "id-duplication", d.Rule)
	assert.Equal(t, "error", d.Severity)
	assert.Equal(t, 1, d.Line)
	assert.Equal(t, "vue", byPath["comp/app.vue"].Dialect)
	assert.Empty(t, byPath["clean.html"].Diagnostics)
}

func TestLintCommand_SeverityThreshold(t *testing.T) {
	dir := testutil.SetupTestProject(t, map[string]string{
		"index.html": `<div class=x></div>`,
	})

	out, err := runLintCommand(t, dir, "--format", "json", "--no-cache", "--rule", "attr-value-quotes", "--severity", "error")
	require.NoError(t, err)

	var got output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 0, got.Summary.TotalIssues)

	_, err = runLintCommand(t, dir, "--format", "json", "--no-cache", "--rule", "attr-value-quotes", "--max-warnings", "0")
	assert.ErrorIs(t, err, ErrLintFailed)
}

func TestLintCommand_Fix(t *testing.T) {
	dir := testutil.SetupTestProject(t, map[string]string{
		"index.html": `<div class=box></div>`,
	})

	out, err := runLintCommand(t, dir, "--format", "json", "--rule", "attr-value-quotes", "--fix")
	require.NoError(t, err)

	var got output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Summary.FilesFixed)
	assert.Equal(t, 0, got.Summary.TotalIssues)

	content, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, `<div class="box"></div>`, string(content))
}

func TestLintCommand_Markdown(t *testing.T) {
	dir := testutil.SetupTestProject(t, map[string]string{
		"index.html": `<div id="a"></div><p id="a"></p>`,
	})

	out, err := runLintCommand(t, dir, "--format", "markdown", "--no-cache", "--rule", "id-duplication")
	require.ErrorIs(t, err, ErrLintFailed)
	assert.Contains(t, out, "## index.html")
	assert.Contains(t, out, "`id-duplication`")
	assert.Contains(t, out, "Summary: 1 problems, 1 errors in 1 files")
	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
}

func TestLintCommand_InvalidFlags(t *testing.T) {
	dir := testutil.SetupTestProject(t, map[string]string{"index.html": `<p></p>`})

	_, err := runLintCommand(t, dir, "--severity", "loud")
	assert.ErrorContains(t, err, "invalid severity")

	_, err = runLintCommand(t, dir, "--watch", "--fix")
	assert.ErrorContains(t, err, "cannot be combined")

	_, err = runLintCommand(t, dir, "--rule", "no-such-rule")
	assert.ErrorIs(t, err, lint.ErrUnknownRule)
}
