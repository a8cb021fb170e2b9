package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/leapmark/internal/cli"
	"github.com/leapstack-labs/leapmark/internal/cli/config"
)

// generateCLIDocs generates CLI documentation from Cobra commands.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()

	if err := os.WriteFile(filepath.Join(outDir, "index.md"), cliIndex(rootCmd), 0600); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, cmd := range visibleCommands(rootCmd) {
		if err := os.WriteFile(filepath.Join(outDir, cmd.Name()+".md"), commandPage(cmd), 0600); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		log.Printf("  Generated %s.md", cmd.Name())
	}

	return nil
}

func visibleCommands(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

// cliIndex renders the CLI overview page.
func cliIndex(rootCmd *cobra.Command) []byte {
	w := NewMarkdownWriter()

	w.Frontmatter("CLI Reference", "Command-line interface reference for leapmark")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("leapmark lints HTML, Vue and Svelte templates from the command line and from editors.")

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/leapmark/cmd/leapmark@latest")

	w.Header(2, "Basic Usage")
	w.CodeBlock("bash", "leapmark <command> [options]")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range visibleCommands(rootCmd) {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Paragraph("These flags are available for all commands:")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Configuration Files")
	files := make([]string, len(config.ConfigFileNames))
	for i, name := range config.ConfigFileNames {
		files[i] = InlineCode(name)
	}
	w.Paragraph("The first of these files found in the working directory or one of its parents configures the project:")
	w.BulletList(files)

	w.Header(2, "Environment Variables")
	w.Paragraph("Every configuration key can be set with a `LEAPMARK_` variable:")
	w.Table(
		[]string{"Variable", "Description"},
		[][]string{
			{InlineCode("LEAPMARK_OUTPUT"), "Output format"},
			{InlineCode("LEAPMARK_LOCALE"), "Message locale"},
			{InlineCode("LEAPMARK_ARIA_VERSION"), "WAI-ARIA version used by the accessibility rules"},
			{InlineCode("LEAPMARK_EXCLUDE_FILES"), "Glob patterns of files to skip"},
			{InlineCode("LEAPMARK_CACHE_ENABLED"), "Reuse results of unchanged files"},
			{InlineCode("LEAPMARK_CACHE_DIR"), "Result cache directory"},
		},
	)
	w.Paragraph("Command-line flags take precedence over environment variables, which take precedence over the configuration file.")

	w.Header(2, "Exit Codes")
	w.Table(
		[]string{"Code", "Meaning"},
		[][]string{
			{InlineCode("0"), "No problems at or above the failure threshold"},
			{InlineCode("1"), "Problems found, or an error (check stderr for details)"},
		},
	)

	w.Header(2, "Getting Help")
	w.CodeBlock("bash", `# General help
leapmark help
leapmark --help

# Command-specific help
leapmark lint --help`)

	return w.Bytes()
}

// commandPage renders the page of a single command.
func commandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()

	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	useLine := cmd.UseLine()
	if cmd.HasSubCommands() {
		useLine = fmt.Sprintf("leapmark %s <subcommand> [options]", cmd.Name())
	} else if !strings.HasPrefix(useLine, "leapmark") {
		useLine = "leapmark " + useLine
	}
	w.CodeBlock("bash", useLine)

	if len(cmd.Aliases) > 0 {
		w.Header(2, "Aliases")
		var aliases []string
		for _, alias := range cmd.Aliases {
			aliases = append(aliases, InlineCode(alias))
		}
		w.BulletList(aliases)
	}

	if cmd.HasSubCommands() {
		w.Header(2, "Subcommands")
		var rows [][]string
		for _, sub := range cmd.Commands() {
			if sub.Hidden {
				continue
			}
			rows = append(rows, []string{InlineCode(sub.Name()), cleanDescription(sub.Short)})
		}
		w.Table([]string{"Subcommand", "Description"}, rows)
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	return w.Bytes()
}

// writeFlagsTable writes a table of flags.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}

		defVal := f.DefValue
		switch {
		case defVal == "", defVal == "false", defVal == "true", defVal == "[]":
		case f.Value.Type() == "string":
			defVal = InlineCode(defVal)
		}

		rows = append(rows, []string{
			InlineCode("--" + f.Name),
			short,
			defVal,
			cleanDescription(f.Usage),
		})
	})

	w.Table([]string{"Option", "Short", "Default", "Description"}, rows)
}

// cleanExample removes common leading whitespace from example text.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")

	// Find minimum indentation (ignoring empty lines)
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}

	if minIndent <= 0 {
		return strings.TrimSpace(example)
	}

	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if len(line) >= minIndent {
			result = append(result, line[minIndent:])
		} else {
			result = append(result, strings.TrimLeft(line, " \t"))
		}
	}

	return strings.TrimSpace(strings.Join(result, "\n"))
}
