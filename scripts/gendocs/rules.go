package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapmark/pkg/core"
	"github.com/leapstack-labs/leapmark/pkg/lint"
	_ "github.com/leapstack-labs/leapmark/pkg/lint/rules"
)

// categoryOrder fixes the section order; unknown categories follow sorted.
var categoryOrder = []string{"validation", "a11y", "style"}

var categoryDescriptions = map[string]string{
	"validation": "Rules that check documents against the HTML, SVG and MathML element and attribute specifications.",
	"a11y":       "Rules that check WAI-ARIA roles, states and properties.",
	"style":      "Rules about consistent markup formatting. Most of them can fix what they report.",
}

var titleCase = cases.Title(language.English)

// generateRuleDocs writes an overview page and one page per category.
func generateRuleDocs(outDir string) error {
	log.Printf("Generating rule docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	grouped := groupByCategory(lint.All())
	categories := orderedCategories(grouped)

	if err := os.WriteFile(filepath.Join(outDir, "index.md"), rulesIndex(grouped, categories), 0600); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for _, cat := range categories {
		if err := os.WriteFile(filepath.Join(outDir, cat+".md"), categoryPage(cat, grouped[cat]), 0600); err != nil {
			return err
		}
		log.Printf("  Generated %s.md", cat)
	}
	return nil
}

func groupByCategory(rules []lint.Rule) map[string][]core.RuleInfo {
	grouped := make(map[string][]core.RuleInfo)
	for _, r := range rules {
		info := r.Info()
		grouped[info.Category] = append(grouped[info.Category], info)
	}
	for cat := range grouped {
		slices.SortFunc(grouped[cat], func(a, b core.RuleInfo) int {
			return strings.Compare(a.Name, b.Name)
		})
	}
	return grouped
}

func orderedCategories(grouped map[string][]core.RuleInfo) []string {
	var out, rest []string
	for _, cat := range categoryOrder {
		if len(grouped[cat]) > 0 {
			out = append(out, cat)
		}
	}
	for cat := range grouped {
		if !slices.Contains(categoryOrder, cat) {
			rest = append(rest, cat)
		}
	}
	slices.Sort(rest)
	return append(out, rest...)
}

func rulesIndex(grouped map[string][]core.RuleInfo, categories []string) []byte {
	w := NewMarkdownWriter()

	total := 0
	for _, rules := range grouped {
		total += len(rules)
	}

	w.Frontmatter("Rules", "Built-in lint rules of leapmark")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	w.Paragraph(fmt.Sprintf("leapmark ships **%d rules** in %d categories.", total, len(categories)))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode(core.SeverityError.String()), "Invalid markup that should be fixed"},
			{InlineCode(core.SeverityWarning.String()), "Likely mistake that should be reviewed"},
			{InlineCode(core.SeverityInfo.String()), "Informational feedback"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Rules are switched on and tuned in `.leapmarkrc.yaml`:")
	w.CodeBlock("yaml", `rules:
  id-duplication: true       # enable with defaults
  attr-value-quotes: single  # rule value
  character-reference: false # disable
  invalid-attr:
    severity: warning        # override severity
nodeRules:
  - selector: "svg *"
    rules:
      attr-value-quotes: false`)

	w.Header(2, "Categories")
	rows := make([][]string, 0, len(categories))
	for _, cat := range categories {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/rules/%s)", titleCase.String(cat), cat),
			fmt.Sprint(len(grouped[cat])),
			categoryDescriptions[cat],
		})
	}
	w.Table([]string{"Category", "Rules", "Description"}, rows)

	return w.Bytes()
}

func categoryPage(cat string, rules []core.RuleInfo) []byte {
	w := NewMarkdownWriter()
	title := titleCase.String(cat) + " Rules"

	w.Frontmatter(title, categoryDescriptions[cat])
	w.GeneratedMarker()

	w.Header(1, title)
	if desc := categoryDescriptions[cat]; desc != "" {
		w.Paragraph(desc)
	}

	for i := range rules {
		writeRuleDoc(w, &rules[i])
	}
	return w.Bytes()
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule *core.RuleInfo) {
	w.Line(fmt.Sprintf("## %s {#%s}", rule.Name, rule.Name))
	w.Newline()

	meta := "**Severity:** " + InlineCode(rule.DefaultSeverity.String())
	if rule.DefaultValue != nil {
		meta += " · **Default value:** " + InlineCode(fmt.Sprint(rule.DefaultValue))
	}
	if rule.Fixable {
		meta += " · fixable"
	}
	w.Line(meta)
	w.Newline()

	w.Paragraph(rule.Description)

	if rule.Rationale != "" {
		w.Header(3, "Why This Matters")
		w.Paragraph(rule.Rationale)
	}
	if rule.BadExample != "" {
		w.Header(3, "Bad")
		w.CodeBlock("html", rule.BadExample)
	}
	if rule.GoodExample != "" {
		w.Header(3, "Good")
		w.CodeBlock("html", rule.GoodExample)
	}
	if rule.Fix != "" {
		w.Header(3, "How to Fix")
		w.Paragraph(rule.Fix)
	}
	if len(rule.ConfigKeys) > 0 {
		keys := make([]string, len(rule.ConfigKeys))
		for i, k := range rule.ConfigKeys {
			keys[i] = InlineCode(k)
		}
		w.Header(3, "Options")
		w.BulletList(keys)
	}

	w.Line("---")
	w.Newline()
}
