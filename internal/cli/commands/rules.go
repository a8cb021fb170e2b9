package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapmark/internal/cli/output"
	"github.com/leapstack-labs/leapmark/internal/starlark"
	"github.com/leapstack-labs/leapmark/pkg/core"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Category string // Filter by category
	Verbose  bool   // Show full documentation
	Format   string // Output format
}

var titleCase = cases.Title(language.English)

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-name]",
		Short: "List available lint rules",
		Long: `List all available lint rules with their documentation.

Rules are organized by category (validation, a11y, style, custom).
Rules loaded from the customRules setting are listed too.
Use --verbose to see rationale, examples and options.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  leapmark rules

  # Show details for a specific rule
  leapmark rules wai-aria

  # List accessibility rules only
  leapmark rules --category a11y

  # Output as JSON
  leapmark rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd, opts.Format)
			loader := starlark.NewLoader(starlark.NewThreadPool(0, cmdCtx.Logger))
			registry, _, err := loadRegistry(cmdCtx.Cfg, loader, cmdCtx.Logger)
			if err != nil {
				return err
			}

			infos := make([]core.RuleInfo, 0, registry.Len())
			for _, r := range registry.All() {
				infos = append(infos, r.Info())
			}

			if len(args) > 0 {
				for i := range infos {
					if infos[i].Name == args[0] {
						return showRule(cmdCtx.Renderer, &infos[i])
					}
				}
				return fmt.Errorf("rule %q not found", args[0])
			}
			return listRules(cmdCtx.Renderer, infos, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Filter by category")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func listRules(r *output.Renderer, rules []core.RuleInfo, opts *RulesOptions) error {
	rules = filterRulesByCategory(rules, opts.Category)

	// Sort by category, then name
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Category != rules[j].Category {
			return rules[i].Category < rules[j].Category
		}
		return rules[i].Name < rules[j].Name
	})

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listRulesJSON(r, rules)
	case output.ModeMarkdown:
		r.Header(1, "Lint Rules")
	default:
		r.Println("")
		r.Header(1, fmt.Sprintf("Lint Rules (%d)", len(rules)))
		r.Println("")
	}

	header := []string{"Rule", "Category", "Severity", "Fixable", "Description"}
	rows := make([][]string, 0, len(rules))
	for _, rule := range rules {
		fixable := ""
		if rule.Fixable {
			fixable = "yes"
		}
		rows = append(rows, []string{rule.Name, titleCase.String(rule.Category), rule.DefaultSeverity.String(), fixable, rule.Description})
	}
	r.Table(header, rows)

	if opts.Verbose {
		for _, rule := range rules {
			r.Println("")
			if err := showRule(r, &rule); err != nil {
				return err
			}
		}
	}

	r.Println("")
	r.Println(r.Muted("Use 'leapmark rules <rule-name>' for detailed documentation"))
	return nil
}

func filterRulesByCategory(rules []core.RuleInfo, category string) []core.RuleInfo {
	if category == "" {
		return rules
	}
	var filtered []core.RuleInfo
	for _, r := range rules {
		if strings.EqualFold(r.Category, category) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Rules      []core.RuleInfo `json:"rules"`
	Total      int             `json:"total"`
	ByCategory map[string]int  `json:"by_category"`
}

func listRulesJSON(r *output.Renderer, rules []core.RuleInfo) error {
	out := RulesJSONOutput{
		Rules:      rules,
		Total:      len(rules),
		ByCategory: map[string]int{},
	}
	if out.Rules == nil {
		out.Rules = []core.RuleInfo{}
	}
	for _, rule := range rules {
		out.ByCategory[rule.Category]++
	}
	return r.JSON(out)
}

func showRule(r *output.Renderer, rule *core.RuleInfo) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rule)
	case output.ModeMarkdown:
		showRuleMarkdown(r, rule)
	default:
		showRuleText(r, rule)
	}
	return nil
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, rule *core.RuleInfo) {
	styles := r.Styles()

	r.Println(styles.Header1.Render(rule.Name))
	r.Println("")
	r.Printf("  %s: %s\n", styles.Bold.Render("Category"), titleCase.String(rule.Category))
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), styles.Severity(rule.DefaultSeverity).Render(rule.DefaultSeverity.String()))
	if rule.DefaultValue != nil {
		r.Printf("  %s: %v\n", styles.Bold.Render("Value"), rule.DefaultValue)
	}
	if rule.Fixable {
		r.Printf("  %s: yes\n", styles.Bold.Render("Fixable"))
	}
	if rule.Source != "builtin" {
		r.Printf("  %s: %s\n", styles.Bold.Render("Source"), rule.Source)
	}
	r.Println("")

	if rule.Description != "" {
		r.Println(styles.Bold.Render("Description"))
		r.Println("  " + rule.Description)
		r.Println("")
	}

	if rule.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println(styles.Bold.Render("Bad Example"))
		for _, line := range strings.Split(rule.BadExample, "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println(styles.Bold.Render("Good Example"))
		for _, line := range strings.Split(rule.GoodExample, "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println(styles.Bold.Render("How to Fix"))
		r.Println("  " + rule.Fix)
		r.Println("")
	}

	if len(rule.ConfigKeys) > 0 {
		r.Println(styles.Bold.Render("Configuration"))
		r.Printf("  Options: %s\n", strings.Join(rule.ConfigKeys, ", "))
		r.Println("")
	}
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, rule *core.RuleInfo) {
	r.Println(output.FormatHeader(rule.Name, 1))
	r.Println("")
	r.Println(output.FormatKeyValue("Category", titleCase.String(rule.Category)))
	r.Println("")
	r.Println(output.FormatKeyValue("Severity", "`"+rule.DefaultSeverity.String()+"`"))
	r.Println("")
	if rule.Fixable {
		r.Println(output.FormatKeyValue("Fixable", "yes"))
		r.Println("")
	}
	if rule.Description != "" {
		r.Println(rule.Description)
		r.Println("")
	}

	if rule.Rationale != "" {
		r.Println(output.FormatHeader("Why This Matters", 2))
		r.Println("")
		r.Println(rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println(output.FormatHeader("Bad Example", 2))
		r.Println("")
		r.Println(output.FormatCodeBlock("html", rule.BadExample))
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println(output.FormatHeader("Good Example", 2))
		r.Println("")
		r.Println(output.FormatCodeBlock("html", rule.GoodExample))
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println(output.FormatHeader("How to Fix", 2))
		r.Println("")
		r.Println(rule.Fix)
		r.Println("")
	}

	if len(rule.ConfigKeys) > 0 {
		r.Println(output.FormatHeader("Configuration", 2))
		r.Println("")
		r.Printf("Options: `%s`\n", strings.Join(rule.ConfigKeys, "`, `"))
		r.Println("")
	}
}
