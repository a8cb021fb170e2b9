// Package typecheck validates attribute values against the value types of
// the specification store.
//
// Check is a pure function over an attribute and its candidate specs:
// it never mutates the document and holds no state between calls.
package typecheck

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/dom"
	"github.com/leapstack-labs/leapmark/pkg/i18n"
	"github.com/leapstack-labs/leapmark/pkg/spec"
	"github.com/leapstack-labs/leapmark/pkg/token"
)

// InvalidType classifies a failed check.
type InvalidType string

// Failure kinds.
const (
	InvalidValue InvalidType = "invalid-value"
	NonExistent  InvalidType = "non-existent"
)

// Failure describes an attribute that did not pass.
type Failure struct {
	Type InvalidType
	Attr dom.Attr
	// Name is the attribute name as written.
	Name string
	// Expected describes the required type, enum or pattern. Empty for
	// NonExistent.
	Expected string
	// Pattern is set when a user pattern rejected the value.
	Pattern string
	// Location is where the failure is reported: the value for
	// InvalidValue, the name for NonExistent.
	Location token.Location
}

// Message formats the failure for a reader.
func (f *Failure) Message(t i18n.Translator) string {
	switch {
	case f.Type == NonExistent:
		return t.T("The %q attribute is not allowed", f.Name)
	case f.Pattern != "":
		return t.T("The %q attribute must match the pattern %s", f.Name, f.Pattern)
	default:
		return t.T("The %q attribute expects %s", f.Name, f.Expected)
	}
}

// Override replaces the spec lookup for one attribute.
type Override struct {
	Enum    []string `mapstructure:"enum" json:"enum,omitempty" yaml:"enum,omitempty"`
	Pattern string   `mapstructure:"pattern" json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Type    string   `mapstructure:"type" json:"type,omitempty" yaml:"type,omitempty"`
}

// Compiled is an Override ready for use.
type Compiled struct {
	spec    spec.AttrSpec
	pattern *regexp.Regexp
	source  string
}

// Compile validates the override. Exactly one of Enum, Pattern or Type
// must be set. Patterns are either "/re/flags" (flag i only) or a plain
// regular expression that must match the whole value.
func (o Override) Compile(name string) (*Compiled, error) {
	set := 0
	for _, b := range []bool{len(o.Enum) > 0, o.Pattern != "", o.Type != ""} {
		if b {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("attribute %q: exactly one of enum, pattern or type is required", name)
	}

	c := &Compiled{spec: spec.AttrSpec{Name: name}}
	switch {
	case len(o.Enum) > 0:
		c.spec.Type = spec.TypeEnum
		c.spec.Enum = o.Enum
	case o.Type != "":
		t, ok := spec.ParseAttributeType(o.Type)
		if !ok || t == spec.TypeEnum {
			return nil, fmt.Errorf("attribute %q: unknown type %q", name, o.Type)
		}
		c.spec.Type = t
	default:
		re, err := compilePattern(o.Pattern)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		c.pattern = re
		c.source = o.Pattern
	}
	return c, nil
}

func compilePattern(p string) (*regexp.Regexp, error) {
	if len(p) >= 2 && p[0] == '/' {
		end := strings.LastIndexByte(p, '/')
		if end > 0 {
			expr, flags := p[1:end], p[end+1:]
			switch flags {
			case "":
			case "i":
				expr = "(?i)" + expr
			default:
				return nil, fmt.Errorf("pattern %s: unsupported flags %q", p, flags)
			}
			return regexp.Compile(expr)
		}
	}
	return regexp.Compile(`^(?:` + p + `)$`)
}

// Check validates attr against the candidate specs of its element.
//
// With an override the specs are not consulted. Without one, a name that
// no spec covers is NonExistent unless the element is a custom element,
// and a covered name has its value checked against the spec's type.
// Dynamic values (template expressions) are never type checked. It returns
// nil when the attribute passes.
func Check(attr dom.Attr, specs []spec.AttrSpec, override *Compiled) *Failure {
	name := attr.PotentialName()
	if override != nil {
		if attr.IsDynamic() {
			return nil
		}
		return checkOverride(attr, name, override)
	}

	s, ok := spec.FindAttr(specs, name)
	if !ok {
		if attr.Owner().IsCustomElement() {
			return nil
		}
		return &Failure{Type: NonExistent, Attr: attr, Name: attr.NameRaw(), Location: attr.Name()}
	}
	if attr.IsDynamic() {
		return nil
	}
	if CheckValue(s, attr.ValueRaw()) {
		return nil
	}
	return invalid(attr, Expected(s))
}

func checkOverride(attr dom.Attr, name string, c *Compiled) *Failure {
	if c.pattern != nil {
		if c.pattern.MatchString(attr.ValueRaw()) {
			return nil
		}
		f := invalid(attr, c.source)
		f.Pattern = c.source
		return f
	}
	s := c.spec
	s.Name = name
	if CheckValue(s, attr.ValueRaw()) {
		return nil
	}
	return invalid(attr, Expected(s))
}

func invalid(attr dom.Attr, expected string) *Failure {
	loc := attr.Value()
	if !attr.HasValue() {
		// boolean-style attribute: there is no value token
		loc = attr.Name()
	}
	return &Failure{Type: InvalidValue, Attr: attr, Name: attr.NameRaw(), Expected: expected, Location: loc}
}

// Expected describes what a spec accepts, for messages.
func Expected(s spec.AttrSpec) string {
	if s.Type == spec.TypeEnum {
		quoted := make([]string, len(s.Enum))
		for i, v := range s.Enum {
			quoted[i] = fmt.Sprintf("%q", v)
		}
		return strings.Join(quoted, ", ")
	}
	return string(s.Type)
}
