package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmark/internal/cli"
	"github.com/leapstack-labs/leapmark/pkg/lint"
)

func TestMarkdownWriter_Table(t *testing.T) {
	w := NewMarkdownWriter()
	w.Table([]string{"Option", "Description"}, [][]string{{"`--output`", "text | json"}})

	assert.Equal(t, "| Option | Description |\n| --- | --- |\n| `--output` | text \\| json |\n\n", string(w.Bytes()))
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "Lint markup files", cleanDescription("  Lint markup\n\tfiles. "))
}

func TestCleanExample(t *testing.T) {
	got := cleanExample("  # List all rules\n  leapmark rules\n\n    leapmark rules --verbose")
	assert.Equal(t, "# List all rules\nleapmark rules\n\n  leapmark rules --verbose", got)
}

func TestRuleDocs(t *testing.T) {
	grouped := groupByCategory(lint.All())
	categories := orderedCategories(grouped)
	require.NotEmpty(t, categories)
	assert.Equal(t, "validation", categories[0])

	page := string(categoryPage("style", grouped["style"]))
	assert.True(t, strings.HasPrefix(page, "---\ntitle: \"Style Rules\""))
	assert.Contains(t, page, generatedHeader)
	assert.Contains(t, page, "## attr-value-quotes {#attr-value-quotes}")
	assert.Contains(t, page, "fixable")

	index := string(rulesIndex(grouped, categories))
	assert.Contains(t, index, "[A11y](/rules/a11y)")
}

func TestCommandPages(t *testing.T) {
	root := cli.NewRootCmd()
	assert.Contains(t, string(cliIndex(root)), "[`lint`](/cli/lint)")

	for _, cmd := range visibleCommands(root) {
		if cmd.Name() != "lint" {
			continue
		}
		page := string(commandPage(cmd))
		assert.Contains(t, page, "leapmark lint [paths...]")
		assert.Contains(t, page, "## Examples")
		return
	}
	t.Fatal("lint command not found")
}
