package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapmark/internal/cli/config"
	"github.com/leapstack-labs/leapmark/internal/cli/output"
	"github.com/leapstack-labs/leapmark/pkg/lint"
)

// starterConfig is the document written by init.
type starterConfig struct {
	Parser       map[string]string `yaml:"parser"`
	Rules        map[string]any    `yaml:"rules"`
	NodeRules    []map[string]any  `yaml:"nodeRules,omitempty"`
	ExcludeFiles []string          `yaml:"excludeFiles"`
}

const exampleHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>leapmark example</title>
</head>
<body>
  <DIV id="main" class=box>
    <img src="logo.png" alt="logo" alt="duplicate">
    <button role="link" aria-pressed="maybe">Go</button>
    <p id="main">Fish &chips</p>
  </DIV>
</body>
</html>
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a leapmark configuration file",
		Long: `Create a .leapmarkrc.yaml with every built-in rule enabled and
parser mappings for Vue and Svelte files.

Use --example to also write an index.html that violates several rules,
so that 'leapmark lint' has something to report.`,
		Example: `  # Initialize in current directory
  leapmark init

  # Initialize with an example document
  leapmark init --example

  # Initialize in a new directory
  leapmark init site --example

  # Force overwrite existing config
  leapmark init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := NewCommandContext(cmd, "").Renderer
			return runInit(r, dir, force, example)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Also create an example HTML document")

	return cmd
}

func runInit(r *output.Renderer, dir string, force, example bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	name := config.ConfigFileNames[0]
	configPath := filepath.Join(dir, name)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", name)
	}

	data, err := yaml.Marshal(newStarterConfig())
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	r.StatusLine(name, "created")

	if example {
		examplePath := filepath.Join(dir, "index.html")
		if _, err := os.Stat(examplePath); err == nil && !force {
			return fmt.Errorf("index.html already exists. Use --force to overwrite")
		}
		if err := os.WriteFile(examplePath, []byte(exampleHTML), 0o600); err != nil {
			return fmt.Errorf("failed to write index.html: %w", err)
		}
		r.StatusLine("index.html", "created")
	}

	r.Println("")
	r.Success("leapmark configuration initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  leapmark lint       Lint HTML, Vue and Svelte files")
	r.Println("  leapmark rules      List the available rules")
	r.Println("  leapmark lint --fix Apply automatic fixes")

	return nil
}

func newStarterConfig() starterConfig {
	rules := make(map[string]any)
	for _, rule := range lint.All() {
		if rule.Info().Source == "builtin" {
			rules[rule.Name()] = true
		}
	}
	return starterConfig{
		Parser: map[string]string{
			`\.vue$`:    "vue",
			`\.svelte$`: "svelte",
		},
		Rules: rules,
		NodeRules: []map[string]any{
			{
				"selector": "svg",
				"rules":    map[string]any{"case-sensitive-attr-name": false, "case-sensitive-tag-name": false},
			},
		},
		ExcludeFiles: []string{"node_modules/**", "dist/**"},
	}
}
