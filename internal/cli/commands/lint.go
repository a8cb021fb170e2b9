package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapmark/internal/cli/output"
	"github.com/leapstack-labs/leapmark/internal/runner"
	"github.com/leapstack-labs/leapmark/pkg/core"
	"github.com/leapstack-labs/leapmark/pkg/lint"
)

// ErrLintFailed is returned when a lint run finds errors or too many
// warnings.
var ErrLintFailed = errors.New("lint failed")

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format      string   // Output format: text, markdown, json
	Disable     []string // Rule names to disable
	Severity    string   // Minimum severity: error, warning, info
	Rules       []string // Run only specific rules
	Locale      string   // Message locale, e.g. ja
	Fix         bool     // Apply fixes and write files back
	Watch       bool     // Re-lint on change
	Jobs        int      // Concurrent documents
	MaxWarnings int      // Fail above this many warnings; -1 disables
	NoCache     bool     // Skip the result cache
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint markup files",
		Long: `Check HTML, Vue and Svelte files against the HTML and WAI-ARIA specifications.

Directories are walked recursively. Each file is parsed with the dialect
picked by the parser setting or by its extension. Rules are configured in
.leapmarkrc.yaml; without a rules section every built-in rule runs.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint the current directory
  leapmark lint

  # Lint specific files and directories
  leapmark lint index.html src/components

  # Fix what can be fixed
  leapmark lint --fix src

  # Output as JSON
  leapmark lint --format json

  # Run only one rule, report errors only
  leapmark lint --rule wai-aria --severity error

  # Re-lint on every change
  leapmark lint --watch src`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule names to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "info", "Minimum severity to report: error, warning, info")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().StringVar(&opts.Locale, "locale", "", "Message locale (en, ja)")
	cmd.Flags().BoolVar(&opts.Fix, "fix", false, "Fix problems and write the files back")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch the paths and lint changed files")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "Files linted concurrently (default: number of CPUs)")
	cmd.Flags().IntVar(&opts.MaxWarnings, "max-warnings", -1, "Fail when there are more warnings than this")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Do not read or write the result cache")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("severity", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"error", "warning", "info"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	cmdCtx := NewCommandContext(cmd, opts.Format)
	cfg, r, logger := cmdCtx.Cfg, cmdCtx.Renderer, cmdCtx.Logger

	if opts.Locale != "" && opts.Locale != cfg.Locale {
		c := *cfg
		c.Locale = opts.Locale
		cfg = &c
	}
	threshold, ok := core.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid severity %q: expected error, warning or info", opts.Severity)
	}
	if opts.Watch && opts.Fix {
		return errors.New("--watch and --fix cannot be combined")
	}

	setup, err := createEngine(cfg, ruleOverrides{Only: opts.Rules, Disable: opts.Disable}, logger)
	if err != nil {
		return err
	}

	runOpts := runner.Options{
		Engine:    setup.Engine,
		Spec:      setup.Store,
		Mappings:  cfg.Mappings(),
		Exclude:   cfg.ExcludeFiles,
		Root:      cfg.ProjectRoot,
		Jobs:      opts.Jobs,
		Fix:       opts.Fix,
		ConfigKey: setup.ConfigKey,
		Logger:    logger,
	}
	if !opts.NoCache {
		runOpts.Cache = newResultCache(cfg, logger)
	}
	run, err := runner.New(runOpts)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	files, err := run.Resolve(paths)
	if err != nil {
		return err
	}
	logger.Debug("linting", "files", len(files), "rules", len(setup.Engine.Rules()))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, err := run.Run(ctx, files)
	if err != nil {
		return err
	}
	summary := renderLintResults(r, results, threshold)

	if opts.Watch {
		return watchLint(ctx, r, run, paths, threshold)
	}
	return checkSummary(summary, opts.MaxWarnings)
}

// watchLint re-renders results for every batch of changed files until ctx
// is done. Interrupting the watch is not an error.
func watchLint(ctx context.Context, r *output.Renderer, run *runner.Runner, paths []string, threshold core.Severity) error {
	r.StatusLine("watch", "waiting for changes in "+strings.Join(paths, ", "))
	err := run.Watch(ctx, paths, func(results []runner.FileResult) {
		r.StatusLine("watch", fmt.Sprintf("%d changed", len(results)))
		renderLintResults(r, results, threshold)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// checkSummary turns a summary into the command's exit status.
func checkSummary(s output.LintSummary, maxWarnings int) error {
	if s.Errors > 0 || s.FilesFailed > 0 {
		return fmt.Errorf("%w: %d errors in %d files", ErrLintFailed, s.Errors+s.FilesFailed, s.FilesLinted)
	}
	if maxWarnings >= 0 && s.Warnings > maxWarnings {
		return fmt.Errorf("%w: %d warnings (max %d)", ErrLintFailed, s.Warnings, maxWarnings)
	}
	return nil
}

// filterBySeverity keeps results at or above the threshold.
func filterBySeverity(results []lint.Result, threshold core.Severity) []lint.Result {
	var out []lint.Result
	for _, res := range results {
		if res.Severity.AtLeast(threshold) {
			out = append(out, res)
		}
	}
	return out
}

// summarize counts results after filtering.
func summarize(files []runner.FileResult, threshold core.Severity) output.LintSummary {
	s := output.LintSummary{FilesLinted: len(files)}
	for _, f := range files {
		if f.Fixed {
			s.FilesFixed++
		}
		if f.Err != nil {
			s.FilesFailed++
		}
		for _, res := range filterBySeverity(f.Results, threshold) {
			s.TotalIssues++
			switch res.Severity {
			case core.SeverityError:
				s.Errors++
			case core.SeverityWarning:
				s.Warnings++
			case core.SeverityInfo:
				s.Info++
			}
		}
	}
	return s
}

func renderLintResults(r *output.Renderer, files []runner.FileResult, threshold core.Severity) output.LintSummary {
	summary := summarize(files, threshold)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		renderLintJSON(r, files, threshold, summary)
		return summary
	case output.ModeMarkdown:
		renderLintMarkdown(r, files, threshold)
	default:
		renderLintText(r, files, threshold)
	}

	if summary.TotalIssues == 0 && summary.FilesFailed == 0 {
		r.Success(fmt.Sprintf("No problems found in %d files", summary.FilesLinted))
		return summary
	}
	summaryParts := []string{fmt.Sprintf("%d problems", summary.TotalIssues)}
	if summary.Errors > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Info > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d info", summary.Info))
	}
	if summary.FilesFailed > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d files failed", summary.FilesFailed))
	}
	r.Printf("Summary: %s in %d files\n", strings.Join(summaryParts, ", "), summary.FilesLinted)
	return summary
}

func renderLintText(r *output.Renderer, files []runner.FileResult, threshold core.Severity) {
	styles := r.Styles()
	for _, f := range files {
		path := displayPath(f.Path)
		if f.Fixed {
			r.Println(styles.Success.Render(fmt.Sprintf("Fix %q", path)))
		}
		if f.Err != nil {
			r.Error(fmt.Sprintf("%s: %v", path, f.Err))
		}
		results := filterBySeverity(f.Results, threshold)
		if len(results) == 0 {
			continue
		}
		r.Println(styles.FilePath.Render(path))
		for _, res := range results {
			r.Printf("  %s  %s  %s  %s\n",
				styles.Muted.Render(fmt.Sprintf("%-7s", fmt.Sprintf("%d:%d", res.Line, res.Col))),
				styles.Severity(res.Severity).Render(fmt.Sprintf("%-7s", res.Severity)),
				res.Message,
				styles.Muted.Render(res.Rule),
			)
		}
		r.Println("")
	}
}

func renderLintMarkdown(r *output.Renderer, files []runner.FileResult, threshold core.Severity) {
	for _, f := range files {
		path := displayPath(f.Path)
		if f.Fixed {
			r.Printf("Fix %q\n\n", path)
		}
		if f.Err != nil {
			r.Error(fmt.Sprintf("%s: %v", path, f.Err))
		}
		results := filterBySeverity(f.Results, threshold)
		if len(results) == 0 {
			continue
		}
		r.Println(output.FormatHeader(path, 2))
		r.Println("")
		for _, res := range results {
			r.Printf("- `%d:%d` **%s** %s (`%s`)\n", res.Line, res.Col, res.Severity, res.Message, res.Rule)
		}
		r.Println("")
	}
}

func renderLintJSON(r *output.Renderer, files []runner.FileResult, threshold core.Severity, summary output.LintSummary) {
	jsonOutput := output.LintOutput{
		Summary: summary,
		Files:   make([]output.LintFileResult, 0, len(files)),
	}
	for _, f := range files {
		fileResult := output.LintFileResult{
			Path:        displayPath(f.Path),
			Dialect:     f.Dialect,
			Fixed:       f.Fixed,
			Diagnostics: []output.LintDiagnostic{},
		}
		if f.Err != nil {
			fileResult.Error = f.Err.Error()
		}
		for _, res := range filterBySeverity(f.Results, threshold) {
			fileResult.Diagnostics = append(fileResult.Diagnostics, output.LintDiagnostic{
				Rule:     res.Rule,
				Severity: res.Severity.String(),
				Message:  res.Message,
				Line:     res.Line,
				Col:      res.Col,
				Raw:      res.Raw,
			})
		}
		jsonOutput.Files = append(jsonOutput.Files, fileResult)
	}
	_ = r.JSON(jsonOutput)
}

// displayPath shortens path relative to the working directory.
func displayPath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
