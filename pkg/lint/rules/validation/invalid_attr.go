package validation

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/core"
	"github.com/leapstack-labs/leapmark/pkg/dom"
	"github.com/leapstack-labs/leapmark/pkg/lint"
	"github.com/leapstack-labs/leapmark/pkg/spec"
	"github.com/leapstack-labs/leapmark/pkg/typecheck"
)

func init() {
	lint.Register(InvalidAttr)
}

// InvalidAttr checks attribute names and values against the spec data.
var InvalidAttr = lint.RuleDef{
	Name:         "invalid-attr",
	Category:     "validation",
	Description:  "Attributes must exist on the element and have a valid value.",
	Severity:     core.SeverityError,
	DefaultValue: true,
	ConfigKeys:   []string{"ignoreAttrNamePrefix", "attrs", "allowAttrs", "disallowAttrs"},
	Verify:       checkInvalidAttr,

	Rationale: "Misspelled attributes are ignored by browsers, and malformed values " +
		"fall back to defaults without any warning.",
	BadExample:  `<a href="/" referrerpolicy="always" hreflang="english">`,
	GoodExample: `<a href="/" referrerpolicy="no-referrer" hreflang="en">`,
	Fix:         "Use an attribute the element supports and a value of the expected type, or configure an override under attrs.",
}

type invalidAttrOptions struct {
	IgnoreAttrNamePrefix []string                      `mapstructure:"ignoreAttrNamePrefix"`
	Attrs                map[string]typecheck.Override `mapstructure:"attrs"`
	AllowAttrs           []string                      `mapstructure:"allowAttrs"`
	DisallowAttrs        []string                      `mapstructure:"disallowAttrs"`
}

type invalidAttrConfig struct {
	invalidAttrOptions
	overrides map[string]*typecheck.Compiled
}

func compileInvalidAttr(opts map[string]any) (*invalidAttrConfig, error) {
	var c invalidAttrConfig
	if err := lint.DecodeOptions(opts, &c.invalidAttrOptions); err != nil {
		return nil, err
	}
	c.overrides = make(map[string]*typecheck.Compiled, len(c.Attrs))
	for name, o := range c.Attrs {
		compiled, err := o.Compile(name)
		if err != nil {
			return nil, err
		}
		c.overrides[strings.ToLower(name)] = compiled
	}
	for i, p := range c.IgnoreAttrNamePrefix {
		c.IgnoreAttrNamePrefix[i] = strings.ToLower(p)
	}
	return &c, nil
}

func checkInvalidAttr(ctx *lint.Context) error {
	store := ctx.Spec()
	caseSensitive := ctx.Document().CaseSensitiveAttrs()

	// options only differ under selector overrides, so most elements share
	// one compiled config
	configs := make(map[string]*invalidAttrConfig)
	configFor := func(s lint.Setting) (*invalidAttrConfig, error) {
		key := optionsKey(s.Options)
		if c, ok := configs[key]; ok {
			return c, nil
		}
		c, err := compileInvalidAttr(s.Options)
		if err != nil {
			return nil, err
		}
		configs[key] = c
		return c, nil
	}

	return ctx.Each(dom.ElementNode, func(el dom.Node, s lint.Setting) error {
		cfg, err := configFor(s)
		if err != nil {
			return err
		}
		specs := store.AttrSpecsOf(el)
		for _, attr := range el.Attributes() {
			if attr.IsDirective() {
				continue
			}
			name := strings.ToLower(attr.PotentialName())
			if slices.ContainsFunc(cfg.IgnoreAttrNamePrefix, func(p string) bool { return strings.HasPrefix(name, p) }) {
				continue
			}
			if containsFold(cfg.DisallowAttrs, name) {
				ctx.Report(el, attr.Name(), ctx.T("The %q attribute is disallowed", attr.NameRaw()))
				continue
			}
			if containsFold(cfg.AllowAttrs, name) {
				continue
			}

			f := typecheck.Check(attr, specs, cfg.overrides[name])
			if f != nil && f.Type == typecheck.NonExistent && caseSensitive {
				// tabIndex in a template compiles to tabindex
				if content, ok := spec.ContentAttrName(attr.PotentialName()); ok {
					if _, found := spec.FindAttr(specs, content); found {
						f = nil
					}
				}
			}
			if f != nil {
				ctx.Report(el, f.Location, f.Message(ctx.Translator()))
			}
		}
		return nil
	})
}

func containsFold(list []string, s string) bool {
	return slices.ContainsFunc(list, func(v string) bool { return strings.EqualFold(v, s) })
}
