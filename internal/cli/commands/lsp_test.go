package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmark/internal/cli/config"
	"github.com/leapstack-labs/leapmark/internal/cli/testutil"
	"github.com/leapstack-labs/leapmark/internal/lsp"
	logtest "github.com/leapstack-labs/leapmark/internal/testutil"
)

const lspProjectConfig = `rules:
  id-duplication: true
excludeFiles:
  - vendor/**
specs:
  ariaVersion: "1.1"
cache:
  enabled: false
`

func TestWorkspaceLoader(t *testing.T) {
	dir := testutil.SetupTestProject(t, map[string]string{
		".leapmarkrc.yaml":  lspProjectConfig,
		"pages/index.html": "",
	})
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	// Discovery walks up from a nested folder.
	ws, err := workspaceLoader(logtest.NewTestLogger(t))(filepath.Join(dir, "pages"))
	require.NoError(t, err)

	assert.Equal(t, dir, ws.Root)
	assert.Equal(t, filepath.Join(dir, ".leapmarkrc.yaml"), ws.ConfigFile)
	assert.Equal(t, "1.1", ws.AriaVersion)
	assert.True(t, ws.Linter.Excluded(filepath.Join(dir, "vendor", "x.html")))

	res := ws.Linter.LintSource(t.Context(), filepath.Join(dir, "pages", "index.html"), `<p id="a"></p><p id="a" class=x></p>`)
	require.NoError(t, res.Err)
	require.Len(t, res.Results, 1, "only configured rules run")
	assert.Equal(t, "id-duplication", res.Results[0].Rule)

	fixed := ws.Fixer.LintSource(t.Context(), filepath.Join(dir, "pages", "index.html"), `<p id="a"></p>`)
	require.NoError(t, fixed.Err)
	assert.Equal(t, `<p id="a"></p>`, fixed.Output)
}

func TestWorkspaceLoader_InvalidConfig(t *testing.T) {
	dir := testutil.SetupTestProject(t, map[string]string{
		".leapmarkrc.yaml": "rules:\n  no-such-rule: true\n",
	})
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	_, err := workspaceLoader(logtest.NewTestLogger(t))(dir)
	assert.Error(t, err)
}

func lspFrame(t *testing.T, buf *bytes.Buffer, msg map[string]any) {
	t.Helper()
	msg["jsonrpc"] = "2.0"
	body, err := json.Marshal(msg)
	require.NoError(t, err)
	fmt.Fprintf(buf, "Content-Length: %d\r\n\r\n%s", len(body), body)
}

func TestLSPCommand(t *testing.T) {
	dir := testutil.SetupTestProject(t, map[string]string{
		".leapmarkrc.yaml": lspProjectConfig,
	})
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	uri := lsp.PathToURI(filepath.Join(dir, "index.html"))
	in := new(bytes.Buffer)
	lspFrame(t, in, map[string]any{"id": 1, "method": "initialize", "params": map[string]any{"rootUri": lsp.PathToURI(dir)}})
	lspFrame(t, in, map[string]any{"method": "initialized", "params": map[string]any{}})
	lspFrame(t, in, map[string]any{"method": "textDocument/didOpen", "params": map[string]any{
		"textDocument": map[string]any{"uri": uri, "languageId": "html", "version": 1, "text": `<i id="x"></i><b id="x"></b>`},
	}})
	lspFrame(t, in, map[string]any{"id": 2, "method": "shutdown"})
	lspFrame(t, in, map[string]any{"method": "exit"})

	cmd := NewLSPCommand()
	out := new(bytes.Buffer)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), `"textDocument/publishDiagnostics"`)
	assert.Contains(t, out.String(), `"code":"id-duplication"`)
	assert.Contains(t, out.String(), `"source":"leapmark"`)
}
