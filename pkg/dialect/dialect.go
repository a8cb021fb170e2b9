// Package dialect provides markup dialect definitions.
//
// A dialect tells the shared front end how a template language bends HTML:
// whether attribute names are case-sensitive, which attributes are
// framework directives or dynamic bindings, which tags are components and
// where the markup lives inside the file.
//
// Dialects are registered by name and built with a fluent Builder:
//
//	var Vue = dialect.New(Config).Extends(dialect.HTML).Build()
package dialect

import (
	"path/filepath"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/leapmark/pkg/core"
)

// AttrKind classifies one attribute of a start tag.
type AttrKind struct {
	// Potential is the HTML attribute the attribute stands for, e.g. "foo"
	// for v-bind:foo. Empty means the attribute's own name.
	Potential string
	// Directive marks framework attributes that are not HTML attributes.
	Directive bool
	// Dynamic marks values computed at runtime.
	Dynamic bool
}

// AttrClassifier classifies an attribute from its raw name, value and
// quote.
type AttrClassifier func(name, value, quote string) AttrKind

// Dialect represents a markup dialect with its configuration and hooks.
type Dialect struct {
	core.DialectConfig

	classify  AttrClassifier
	component func(name string) bool
}

// Config returns the dialect's static configuration.
func (d *Dialect) Config() *core.DialectConfig {
	return &d.DialectConfig
}

// ClassifyAttr classifies an attribute.
func (d *Dialect) ClassifyAttr(name, value, quote string) AttrKind {
	if d.classify != nil {
		return d.classify(name, value, quote)
	}
	return d.defaultClassify(name, value, quote)
}

// defaultClassify applies the configured binding and directive prefixes
// and marks values holding template expressions as dynamic.
func (d *Dialect) defaultClassify(name, value, _ string) AttrKind {
	var k AttrKind
	for _, p := range d.Bindings {
		if rest, ok := strings.CutPrefix(name, p); ok && rest != "" {
			// modifiers: :foo.camel
			rest, _, _ = strings.Cut(rest, ".")
			k.Potential = rest
			k.Dynamic = true
			return k
		}
	}
	for _, p := range d.Directives {
		if strings.HasPrefix(name, p) {
			k.Directive = true
			return k
		}
	}
	k.Dynamic = d.HasExpression(value)
	return k
}

// HasExpression reports whether s contains a template expression.
func (d *Dialect) HasExpression(s string) bool {
	for _, e := range d.Expressions {
		if i := strings.Index(s, e.Open); i >= 0 && strings.Contains(s[i+len(e.Open):], e.Close) {
			return true
		}
	}
	return false
}

// ExpressionSpans returns the byte ranges [start, end) of the template
// expressions in s, delimiters included. An unclosed expression runs to
// the end of s.
func (d *Dialect) ExpressionSpans(s string) [][2]int {
	var spans [][2]int
	for i := 0; i < len(s); {
		e, ok := d.expressionAt(s, i)
		if !ok {
			i++
			continue
		}
		end := len(s)
		if j := closeExpression(s, i+len(e.Open), e); j >= 0 {
			end = j + len(e.Close)
		}
		spans = append(spans, [2]int{i, end})
		i = end
	}
	return spans
}

func (d *Dialect) expressionAt(s string, i int) (core.Delimiters, bool) {
	for _, e := range d.Expressions {
		if strings.HasPrefix(s[i:], e.Open) {
			return e, true
		}
	}
	return core.Delimiters{}, false
}

// closeExpression finds the close delimiter for an expression whose body
// starts at from. Single brace delimiters nest.
func closeExpression(s string, from int, e core.Delimiters) int {
	if len(e.Open) != 1 || len(e.Close) != 1 {
		if j := strings.Index(s[from:], e.Close); j >= 0 {
			return from + j
		}
		return -1
	}
	depth := 0
	for k := from; k < len(s); k++ {
		switch s[k] {
		case e.Open[0]:
			depth++
		case e.Close[0]:
			if depth == 0 {
				return k
			}
			depth--
		}
	}
	return -1
}

// IsComponent reports whether a tag name is a framework component.
func (d *Dialect) IsComponent(name string) bool {
	if d.component != nil {
		return d.component(name)
	}
	switch d.Components {
	case core.ComponentsPascalCase:
		return isPascal(name)
	case core.ComponentsPascalOrDotted:
		return isPascal(name) || strings.Contains(name, ".") || strings.Contains(name, ":")
	default:
		return false
	}
}

// HandlesFile reports whether the file extension belongs to the dialect.
func (d *Dialect) HandlesFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext != "" && slices.Contains(d.Extensions, ext)
}

func isPascal(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// ---------------------------------------------------------------------------
// Builder
// ---------------------------------------------------------------------------

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			DialectConfig: core.DialectConfig{Name: name},
		},
	}
}

// New creates a dialect builder from a DialectConfig.
func New(cfg *core.DialectConfig) *Builder {
	d := &Dialect{DialectConfig: *cfg}
	d.Extensions = slices.Clone(cfg.Extensions)
	d.Expressions = slices.Clone(cfg.Expressions)
	d.Directives = slices.Clone(cfg.Directives)
	d.Bindings = slices.Clone(cfg.Bindings)
	return &Builder{dialect: d}
}

// Extends copies the hooks of a base dialect that the builder has not set.
// Config values set on the builder win.
func (b *Builder) Extends(base *Dialect) *Builder {
	if base == nil {
		return b
	}
	d := b.dialect
	if d.classify == nil {
		d.classify = base.classify
	}
	if d.component == nil {
		d.component = base.component
	}
	if len(d.Extensions) == 0 {
		d.Extensions = slices.Clone(base.Extensions)
	}
	return b
}

// Extensions adds file extensions handled by the dialect.
func (b *Builder) Extensions(exts ...string) *Builder {
	for _, e := range exts {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if !slices.Contains(b.dialect.Extensions, e) {
			b.dialect.Extensions = append(b.dialect.Extensions, e)
		}
	}
	return b
}

// CaseSensitiveAttrs makes attribute names compare as written.
func (b *Builder) CaseSensitiveAttrs() *Builder {
	b.dialect.CaseSensitiveAttrs = true
	return b
}

// SelfClosingTags makes "/>" close non-void elements.
func (b *Builder) SelfClosingTags() *Builder {
	b.dialect.SelfClosingTags = true
	return b
}

// Components sets the component naming convention.
func (b *Builder) Components(naming core.ComponentNaming) *Builder {
	b.dialect.Components = naming
	return b
}

// ComponentFunc installs a custom component detector.
func (b *Builder) ComponentFunc(fn func(name string) bool) *Builder {
	b.dialect.component = fn
	return b
}

// Expression registers template expression delimiters.
func (b *Builder) Expression(open, close string) *Builder {
	b.dialect.Expressions = append(b.dialect.Expressions, core.Delimiters{Open: open, Close: close})
	return b
}

// Root sets the top-level element that holds the markup.
func (b *Builder) Root(name string) *Builder {
	b.dialect.Root = strings.ToLower(name)
	return b
}

// Directives adds directive attribute prefixes.
func (b *Builder) Directives(prefixes ...string) *Builder {
	b.dialect.Directives = append(b.dialect.Directives, prefixes...)
	return b
}

// Bindings adds dynamic binding prefixes.
func (b *Builder) Bindings(prefixes ...string) *Builder {
	b.dialect.Bindings = append(b.dialect.Bindings, prefixes...)
	return b
}

// ClassifyAttrs installs a custom attribute classifier. It replaces the
// prefix-based default.
func (b *Builder) ClassifyAttrs(fn AttrClassifier) *Builder {
	b.dialect.classify = fn
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
