package starlark

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmark/internal/testutil"
	"github.com/leapstack-labs/leapmark/pkg/core"
	"github.com/leapstack-labs/leapmark/pkg/lint"
)

const noMarquee = `
name = "no-marquee"
severity = ERROR
description = "marquee is obsolete"

def verify(node, report):
    if node.name.lower() == "marquee":
        report("Do not use <%s>" % node.name)
`

const maxClasses = `
name = "max-classes"
options = {"max": 2}

def verify(node, report, options):
    classes = node.attrs.get("class", "").split()
    if len(classes) > options["max"]:
        report("Too many classes", attr = "class")
`

func loadRule(t *testing.T, src string) lint.Rule {
	t.Helper()
	rule, err := NewLoader(NewThreadPool(4, testutil.NewTestLogger(t))).Load("test.star", []byte(src))
	require.NoError(t, err)
	return rule
}

func verifyWith(t *testing.T, rule lint.Rule, src string, raw any) []lint.Result {
	t.Helper()
	reg := lint.NewRegistry()
	reg.Add(rule)
	setting, err := lint.ParseRuleSetting(raw)
	require.NoError(t, err)
	cfg := lint.NewConfig().Set(rule.Name(), setting)
	return testutil.Verify(t, src, "", lint.Options{Registry: reg, Config: cfg, Logger: testutil.NewTestLogger(t)})
}

func TestLoad_Metadata(t *testing.T) {
	rule := loadRule(t, noMarquee)

	info := rule.Info()
	assert.Equal(t, "no-marquee", info.Name)
	assert.Equal(t, "custom", info.Category)
	assert.Equal(t, "starlark", info.Source)
	assert.Equal(t, "marquee is obsolete", info.Description)
	assert.Equal(t, core.SeverityError, rule.DefaultSeverity())

	rule = loadRule(t, maxClasses)
	assert.Equal(t, core.SeverityWarning, rule.DefaultSeverity())
	assert.Equal(t, map[string]any{"max": int64(2)}, rule.DefaultOptions())
	assert.Equal(t, []string{"max"}, rule.Info().ConfigKeys)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"syntax", "name = ", "Starlark execution error"},
		{"no name", "def verify(node, report):\n    pass\n", "name must be a non-empty string"},
		{"no verify", `name = "x"`, "verify must be a function"},
		{"bad arity", "name = \"x\"\ndef verify(node):\n    pass\n", "verify must take"},
		{"bad severity", "name = \"x\"\nseverity = \"fatal\"\ndef verify(node, report):\n    pass\n", `invalid severity "fatal"`},
		{"bad node type", "name = \"x\"\nnode_type = \"attr\"\ndef verify(node, report):\n    pass\n", `unknown node_type "attr"`},
		{"bad options", "name = \"x\"\noptions = [1]\ndef verify(node, report):\n    pass\n", "options must be a dict"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(nil).Load("bad.star", []byte(tt.src))
			require.Error(t, err)
			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, "bad.star", loadErr.File)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestScriptRule_Verify(t *testing.T) {
	rule := loadRule(t, noMarquee)

	results := verifyWith(t, rule, "<div>\n  <MARQUEE>hi</MARQUEE>\n</div>", true)
	require.Len(t, results, 1)
	assert.Equal(t, "no-marquee", results[0].Rule)
	assert.Equal(t, "Do not use <MARQUEE>", results[0].Message)
	assert.Equal(t, core.SeverityError, results[0].Severity)
	assert.Equal(t, 2, results[0].Line)
	assert.Equal(t, 3, results[0].Col)

	// configured severity wins
	results = verifyWith(t, rule, "<marquee></marquee>", "info")
	require.Len(t, results, 1)
	assert.Equal(t, core.SeverityInfo, results[0].Severity)
}

func TestScriptRule_Options(t *testing.T) {
	rule := loadRule(t, maxClasses)
	src := `<p class="a b c">x</p><p class="a b">y</p>`

	results := verifyWith(t, rule, src, true)
	require.Len(t, results, 1)
	assert.Equal(t, `class="a b c"`, results[0].Raw)
	assert.Equal(t, 4, results[0].Col)

	results = verifyWith(t, rule, src, map[string]any{"options": map[string]any{"max": 1}})
	assert.Len(t, results, 2)
}

func TestScriptRule_TextNodes(t *testing.T) {
	rule := loadRule(t, `
name = "no-todo"
node_type = "text"

def verify(node, report):
    if "TODO" in node.text:
        report("Remove TODO markers")
`)
	results := verifyWith(t, rule, "<p>TODO later</p><p>done</p>", true)
	require.Len(t, results, 1)
	assert.Equal(t, "TODO later", results[0].Raw)
}

func TestScriptRule_RuntimeError(t *testing.T) {
	rule := loadRule(t, `
name = "broken"

def verify(node, report):
    report("x", attr = "missing")
`)
	reg := lint.NewRegistry()
	reg.Add(rule)
	engine, err := lint.NewEngine(lint.Options{Registry: reg, Config: lint.NewConfig().Enable("broken")})
	require.NoError(t, err)

	results, err := engine.Verify(context.Background(), testutil.Parse(t, "<p></p>", ""))
	assert.Empty(t, results)
	var cfgErr *lint.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "broken", cfgErr.Rule)
	var scriptErr *ScriptError
	require.ErrorAs(t, err, &scriptErr)
	assert.Contains(t, err.Error(), `no attribute "missing"`)
}

func TestLoader_LoadFiles(t *testing.T) {
	dir := t.TempDir()
	rulesDir := filepath.Join(dir, "rules")
	require.NoError(t, os.MkdirAll(rulesDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(rulesDir, "marquee.star"), []byte(noMarquee), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "classes.star"), []byte(maxClasses), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(rulesDir, "notes.txt"), []byte("ignored"), 0o600))

	rules, err := NewLoader(nil).LoadFiles(dir, []string{"rules", "classes.star"})
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "no-marquee", rules[0].Name())
	assert.Equal(t, "max-classes", rules[1].Name())

	_, err = NewLoader(nil).LoadFiles(dir, []string{"classes.star", "classes.star"})
	assert.ErrorContains(t, err, `rule "max-classes" is already defined`)

	_, err = NewLoader(nil).LoadFiles(dir, []string{"missing.star"})
	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestLoader_Digest(t *testing.T) {
	a := NewLoader(nil)
	empty := a.Digest()
	_, err := a.Load("a.star", []byte(noMarquee))
	require.NoError(t, err)
	assert.NotEqual(t, empty, a.Digest())

	b := NewLoader(nil)
	_, err = b.Load("a.star", []byte(noMarquee))
	require.NoError(t, err)
	assert.Equal(t, a.Digest(), b.Digest(), "same scripts give the same digest")

	c := NewLoader(nil)
	_, err = c.Load("a.star", []byte(noMarquee+"\n# edited\n"))
	require.NoError(t, err)
	assert.NotEqual(t, a.Digest(), c.Digest())
}
