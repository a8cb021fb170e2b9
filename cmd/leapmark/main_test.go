// Package main provides tests for the leapmark CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmark/internal/cli"
	"github.com/leapstack-labs/leapmark/internal/cli/config"
	"github.com/leapstack-labs/leapmark/internal/cli/output"
)

func testdataDir(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	return filepath.Join(wd, "..", "..", "testdata")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "leapmark v")
}

func TestHelpCommand(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	for _, expected := range []string{"lint", "rules", "init", "lsp", "completion", "version"} {
		assert.Contains(t, out, expected)
	}
}

func TestLintCommand(t *testing.T) {
	site := filepath.Join(testdataDir(t), "site")

	out, err := execute(t,
		"lint", site,
		"--config", filepath.Join(site, ".leapmarkrc.yaml"),
		"--output", "json",
		"--no-cache",
	)
	require.Error(t, err, "duplicate ids are errors")

	var got output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	assert.Equal(t, 3, got.Summary.FilesLinted, "vendor/ is excluded")

	var index, nav *output.LintFileResult
	for i := range got.Files {
		f := &got.Files[i]
		switch {
		case strings.HasSuffix(filepath.ToSlash(f.Path), "site/index.html"):
			index = f
		case strings.HasSuffix(filepath.ToSlash(f.Path), "components/Nav.svelte"):
			nav = f
			assert.Equal(t, "svelte", f.Dialect)
		case strings.HasSuffix(filepath.ToSlash(f.Path), "components/Card.vue"):
			assert.Equal(t, "vue", f.Dialect)
			assert.Empty(t, f.Diagnostics)
		}
	}

	require.NotNil(t, index)
	rules := map[string]int{}
	for _, d := range index.Diagnostics {
		rules[d.Rule]++
	}
	assert.Equal(t, 1, rules["id-duplication"])
	assert.Zero(t, rules["attr-value-quotes"], "disabled for #legacy")

	require.NotNil(t, nav)
	require.Len(t, nav.Diagnostics, 1)
	assert.Equal(t, "attr-value-quotes", nav.Diagnostics[0].Rule)
}

func TestRulesCommand(t *testing.T) {
	out, err := execute(t, "rules", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"wai-aria"`)
	assert.Contains(t, out, `"case-sensitive-attr-name"`)
}

func TestCompletionCommand(t *testing.T) {
	shells := []string{"bash", "zsh", "fish", "powershell"}

	for _, shell := range shells {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, "completion", shell)
			require.NoError(t, err)
			assert.NotEmpty(t, out)
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := execute(t, "unknown-command")
	assert.Error(t, err, "unknown command should return an error")
}

func TestInvalidOutputFlag(t *testing.T) {
	_, err := execute(t, "rules", "--output", "yaml")
	assert.ErrorContains(t, err, "invalid format")
}
