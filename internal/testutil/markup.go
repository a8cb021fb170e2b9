package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmark/pkg/dialect"
	_ "github.com/leapstack-labs/leapmark/pkg/dialects/svelte" // register dialects
	_ "github.com/leapstack-labs/leapmark/pkg/dialects/vue"
	"github.com/leapstack-labs/leapmark/pkg/dom"
	"github.com/leapstack-labs/leapmark/pkg/lint"
	"github.com/leapstack-labs/leapmark/pkg/parser"
	"github.com/leapstack-labs/leapmark/pkg/spec"
)

// Parse parses src with the named dialect ("" for HTML). Parse errors are
// kept on the document, not returned.
func Parse(t testing.TB, src, dialectName string) *dom.Document {
	t.Helper()
	d := dialect.HTML
	if dialectName != "" {
		var ok bool
		d, ok = dialect.Get(dialectName)
		require.True(t, ok, "dialect %q not registered", dialectName)
	}
	store, err := spec.Default()
	require.NoError(t, err)
	doc, _ := parser.Parse(src, parser.Options{Dialect: d, Classifier: store, Logger: NewTestLogger(t)})
	require.NotNil(t, doc)
	return doc
}

// Verify parses src and runs the engine over it. opts.Config defaults to
// an empty config and opts.Logger to a test logger.
func Verify(t testing.TB, src, dialectName string, opts lint.Options) []lint.Result {
	t.Helper()
	doc := Parse(t, src, dialectName)
	if opts.Logger == nil {
		opts.Logger = NewTestLogger(t)
	}
	engine, err := lint.NewEngine(opts)
	require.NoError(t, err)
	results, err := engine.Verify(context.Background(), doc)
	require.NoError(t, err)
	return results
}

// VerifyRule runs one rule, enabled with raw as its configuration value,
// over src.
func VerifyRule(t testing.TB, rule, src, dialectName string, raw any) []lint.Result {
	t.Helper()
	setting, err := lint.ParseRuleSetting(raw)
	require.NoError(t, err)
	cfg := lint.NewConfig().Set(rule, setting)
	return Verify(t, src, dialectName, lint.Options{Config: cfg})
}

// Fix parses src, runs the fixers of the configured rules and returns the
// rewritten source.
func Fix(t testing.TB, src, dialectName string, opts lint.Options) string {
	t.Helper()
	doc := Parse(t, src, dialectName)
	if opts.Logger == nil {
		opts.Logger = NewTestLogger(t)
	}
	engine, err := lint.NewEngine(opts)
	require.NoError(t, err)
	out, err := engine.Fix(context.Background(), doc)
	require.NoError(t, err)
	return out
}
