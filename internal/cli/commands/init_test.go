package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmark/internal/cli/config"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		setupDir  func(t *testing.T, dir string) // setup before running
		args      []string
		wantErr   bool
		wantFiles []string
	}{
		{
			name:      "init empty directory",
			args:      []string{},
			wantFiles: []string{".leapmarkrc.yaml"},
		},
		{
			name:      "init with example",
			args:      []string{"--example"},
			wantFiles: []string{".leapmarkrc.yaml", "index.html"},
		},
		{
			name:      "init in new directory",
			args:      []string{"site"},
			wantFiles: []string{"site/.leapmarkrc.yaml"},
		},
		{
			name: "init existing config without force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, ".leapmarkrc.yaml"), []byte("existing"), 0o600)
			},
			args:    []string{},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, ".leapmarkrc.yaml"), []byte("existing"), 0o600)
			},
			args:      []string{"--force"},
			wantFiles: []string{".leapmarkrc.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.ResetConfig()
			tmpDir := t.TempDir()
			t.Chdir(tmpDir)

			if tt.setupDir != nil {
				tt.setupDir(t, tmpDir)
			}

			cmd := NewInitCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			for _, f := range tt.wantFiles {
				_, err := os.Stat(filepath.Join(tmpDir, filepath.FromSlash(f)))
				assert.False(t, os.IsNotExist(err), "expected file %q to exist", f)
			}
		})
	}
}

func TestInitCreatesLoadableConfig(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	require.NoError(t, cmd.Execute())

	content, err := os.ReadFile(".leapmarkrc.yaml")
	require.NoError(t, err)
	for _, want := range []string{"wai-aria: true", "svelte", "node_modules/**", "nodeRules:"} {
		assert.Contains(t, string(content), want)
	}

	cfg, err := config.LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "vue", cfg.Parser[`\.vue$`])
	assert.Equal(t, true, cfg.Rules["id-duplication"])
	require.Len(t, cfg.NodeRules, 1)
	assert.Equal(t, "svg", cfg.NodeRules[0].Selector)

	lintCfg, err := cfg.LintConfig()
	require.NoError(t, err)
	assert.Len(t, lintCfg.Rules, 9)
}
