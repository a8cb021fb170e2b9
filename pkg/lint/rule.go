package lint

import (
	"maps"

	"github.com/leapstack-labs/leapmark/pkg/core"
)

// Rule is the interface the engine runs. Implemented by wrapped RuleDefs
// and by scripted rules.
type Rule interface {
	// Name returns the unique identifier, e.g., "attr-duplication"
	Name() string

	// Description returns a human-readable description
	Description() string

	// DefaultSeverity returns the severity used when the configuration
	// does not set one
	DefaultSeverity() core.Severity

	// DefaultValue returns the rule value used when the configuration
	// does not set one
	DefaultValue() any

	// DefaultOptions returns the options merged under configured options
	DefaultOptions() map[string]any

	// Info returns metadata for documentation and tooling
	Info() core.RuleInfo

	// Verify walks the document and reports results through ctx
	Verify(ctx *Context) error
}

// Fixer is implemented by rules that can rewrite the document.
type Fixer interface {
	Rule

	// Fix mutates ctx.Document() to remove the rule's violations
	Fix(ctx *Context) error
}

// VerifyFunc is the body of a RuleDef.
type VerifyFunc func(ctx *Context) error

// FixFunc is the autofix of a RuleDef.
type FixFunc func(ctx *Context) error

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the Context parameter.
type RuleDef struct {
	Name           string        // Unique identifier, e.g., "attr-duplication"
	Category       string        // e.g., "validation", "a11y", "style"
	Description    string        // Human-readable description
	Severity       core.Severity // Default severity
	DefaultValue   any           // Default rule value, e.g., "double"
	DefaultOptions map[string]any
	ConfigKeys     []string // Option keys this rule accepts
	Verify         VerifyFunc
	Autofix        FixFunc // Optional

	// Source is "builtin" unless set, e.g., "starlark"
	Source string

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Markup showing the anti-pattern
	GoodExample string // Markup showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// Wrap turns a RuleDef into a Rule. Definitions with an Autofix also
// implement Fixer.
func Wrap(def RuleDef) Rule {
	w := &wrappedRuleDef{def: def}
	if def.Autofix != nil {
		return &fixableRuleDef{wrappedRuleDef: w}
	}
	return w
}

// wrappedRuleDef wraps a RuleDef to implement Rule.
type wrappedRuleDef struct {
	def RuleDef
}

func (w *wrappedRuleDef) Name() string                   { return w.def.Name }
func (w *wrappedRuleDef) Description() string            { return w.def.Description }
func (w *wrappedRuleDef) DefaultSeverity() core.Severity { return w.def.Severity }
func (w *wrappedRuleDef) DefaultValue() any              { return w.def.DefaultValue }
func (w *wrappedRuleDef) DefaultOptions() map[string]any { return maps.Clone(w.def.DefaultOptions) }

func (w *wrappedRuleDef) Info() core.RuleInfo {
	source := w.def.Source
	if source == "" {
		source = "builtin"
	}
	return core.RuleInfo{
		Name:            w.def.Name,
		Category:        w.def.Category,
		Description:     w.def.Description,
		DefaultSeverity: w.def.Severity,
		DefaultValue:    w.def.DefaultValue,
		DefaultOptions:  maps.Clone(w.def.DefaultOptions),
		ConfigKeys:      w.def.ConfigKeys,
		Fixable:         w.def.Autofix != nil,
		Source:          source,
		Rationale:       w.def.Rationale,
		BadExample:      w.def.BadExample,
		GoodExample:     w.def.GoodExample,
		Fix:             w.def.Fix,
	}
}

func (w *wrappedRuleDef) Verify(ctx *Context) error {
	if w.def.Verify == nil {
		return nil
	}
	return w.def.Verify(ctx)
}

// Unwrap returns the underlying RuleDef.
func (w *wrappedRuleDef) Unwrap() RuleDef {
	return w.def
}

type fixableRuleDef struct {
	*wrappedRuleDef
}

func (f *fixableRuleDef) Fix(ctx *Context) error {
	return f.def.Autofix(ctx)
}
