package a11y

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/core"
	"github.com/leapstack-labs/leapmark/pkg/dom"
	"github.com/leapstack-labs/leapmark/pkg/lint"
	"github.com/leapstack-labs/leapmark/pkg/spec"
)

func init() {
	lint.Register(WaiAria)
}

// WaiAria checks role attributes and aria-* attributes against the
// WAI-ARIA version configured on the engine.
var WaiAria = lint.RuleDef{
	Name:         "wai-aria",
	Category:     "a11y",
	Description:  "Roles and ARIA states and properties must exist and be permitted on the element.",
	Severity:     core.SeverityError,
	DefaultValue: true,
	DefaultOptions: map[string]any{
		"checkingValue":            true,
		"checkingDeprecatedProps":  true,
		"permittedAriaProps":       true,
		"disallowSetImplicitRole":  true,
		"disallowSetImplicitProps": true,
	},
	ConfigKeys: []string{
		"checkingValue", "checkingDeprecatedProps", "permittedAriaProps",
		"disallowSetImplicitRole", "disallowSetImplicitProps",
	},
	Verify: checkWaiAria,

	Rationale: "Assistive technology trusts roles and states over native semantics. " +
		"A wrong role or property hides or misrepresents the element.",
	BadExample:  `<button role="button" aria-checked="yes">`,
	GoodExample: `<button aria-pressed="true">`,
}

type waiAriaOptions struct {
	CheckingValue            bool `mapstructure:"checkingValue"`
	CheckingDeprecatedProps  bool `mapstructure:"checkingDeprecatedProps"`
	PermittedAriaProps       bool `mapstructure:"permittedAriaProps"`
	DisallowSetImplicitRole  bool `mapstructure:"disallowSetImplicitRole"`
	DisallowSetImplicitProps bool `mapstructure:"disallowSetImplicitProps"`
}

type ariaCheck struct {
	ctx     *lint.Context
	opts    waiAriaOptions
	el      dom.Node
	name    string
	entry   spec.AriaEntry
	role    spec.Role // explicit role, zero when absent or unknown
	hasRole bool
}

func checkWaiAria(ctx *lint.Context) error {
	store := ctx.Spec()
	version := ctx.AriaVersion()
	return ctx.Each(dom.ElementNode, func(el dom.Node, s lint.Setting) error {
		var opts waiAriaOptions
		if err := lint.DecodeOptions(s.Options, &opts); err != nil {
			return err
		}
		entry, err := store.Aria(el.TagNameNormalized(), el.Namespace(), version, ctx.MatchFunc(el))
		if err != nil {
			return err
		}
		c := &ariaCheck{ctx: ctx, opts: opts, el: el, name: el.TagNameNormalized(), entry: entry}
		c.checkRole()
		c.checkProps()
		c.checkRequired()
		c.checkNaming()
		return nil
	})
}

func (c *ariaCheck) report(loc dom.Attr, useValue bool, format string, args ...any) {
	l := loc.Name()
	if useValue && loc.HasValue() {
		l = loc.Value()
	}
	c.ctx.Report(c.el, l, c.ctx.T(format, args...))
}

func (c *ariaCheck) checkRole() {
	attr, ok := c.el.GetAttribute("role")
	if !ok || attr.IsDynamic() || attr.IsDirective() {
		return
	}
	// the first token wins; the rest are fallbacks
	fields := strings.Fields(strings.ToLower(attr.ValueRaw()))
	if len(fields) == 0 {
		return
	}
	name := fields[0]
	store, version := c.ctx.Spec(), c.ctx.AriaVersion()

	if c.entry.Properties.Forbidden && c.entry.PermittedRoles.None() {
		c.report(attr, false, "The <%s> element does not accept ARIA roles or properties", c.name)
		return
	}
	role, exists := store.Role(name, version)
	if !exists {
		c.report(attr, true, "The %q role does not exist", name)
		return
	}
	c.role, c.hasRole = role, true
	switch {
	case role.Abstract:
		c.report(attr, true, "The %q role is abstract and must not be used", name)
	case name == c.entry.ImplicitRole:
		if c.opts.DisallowSetImplicitRole {
			c.report(attr, true, "The %q role is the implicit role of the <%s> element", name, c.name)
		}
	case !c.entry.PermittedRoles.Allows(name):
		c.report(attr, true, "The %q role is not permitted on the <%s> element", name, c.name)
	case role.Deprecated:
		c.report(attr, true, "The %q role is deprecated", name)
	}
}

// effectiveRole is the explicit role when valid, else the implicit role.
func (c *ariaCheck) effectiveRole() string {
	if c.hasRole {
		return c.role.Name
	}
	return c.entry.ImplicitRole
}

func (c *ariaCheck) effectiveRoleSpec() (spec.Role, bool) {
	if c.hasRole {
		return c.role, true
	}
	if c.entry.ImplicitRole == "" {
		return spec.Role{}, false
	}
	return c.ctx.Spec().Role(c.entry.ImplicitRole, c.ctx.AriaVersion())
}

func (c *ariaCheck) checkProps() {
	store, version := c.ctx.Spec(), c.ctx.AriaVersion()
	var permitted []string
	if c.opts.PermittedAriaProps {
		permitted = store.PermittedAriaProps(c.entry.Properties, c.effectiveRole(), version)
	}
	for _, attr := range c.el.Attributes() {
		if attr.IsDirective() {
			continue
		}
		name := strings.ToLower(attr.PotentialName())
		if !strings.HasPrefix(name, "aria-") {
			continue
		}
		if c.entry.Properties.Forbidden {
			c.report(attr, false, "The <%s> element does not accept ARIA roles or properties", c.name)
			continue
		}
		prop, ok := store.AriaProp(name, version)
		if !ok {
			c.report(attr, false, "The %q ARIA state/property does not exist", name)
			continue
		}
		value := strings.TrimSpace(attr.ValueRaw())

		if c.opts.CheckingDeprecatedProps && prop.Deprecated {
			c.report(attr, false, "The %q ARIA state/property is deprecated", name)
		}
		if c.opts.PermittedAriaProps {
			c.checkPermitted(attr, name, value, permitted)
		}
		if attr.IsDynamic() {
			continue
		}
		if c.opts.CheckingValue && !checkAriaValue(prop, value) {
			c.report(attr, true, "The %q ARIA state/property expects %s", name, expectedAriaValue(prop))
			continue
		}
		if c.opts.DisallowSetImplicitProps && !c.hasRole {
			if implicit, ok := c.entry.ImplicitProperties[name]; ok && implicit == value {
				c.report(attr, true, "The %q ARIA state/property duplicates the implicit value", name)
			}
		}
	}
}

func (c *ariaCheck) checkPermitted(attr dom.Attr, name, value string, permitted []string) {
	if r, ok := c.entry.Properties.Restriction(name, value); ok {
		switch {
		case r.Alt != nil && r.Alt.Method == "set-attr":
			c.report(attr, false, "Use the %q attribute instead of the %q ARIA state/property", r.Alt.Target, name)
		case r.Type == spec.Deprecated:
			if c.opts.CheckingDeprecatedProps {
				c.report(attr, false, "The %q ARIA state/property is deprecated", name)
			}
		default:
			c.report(attr, false, "The %q ARIA state/property is not permitted on the <%s> element", name, c.name)
		}
		return
	}
	if role, ok := c.effectiveRoleSpec(); ok && slices.Contains(role.Prohibited, name) {
		if c.entry.NamingProhibited && !c.hasRole {
			// reported by checkNaming
			return
		}
		c.report(attr, false, "The %q ARIA state/property is not permitted on the %q role", name, role.Name)
		return
	}
	if slices.Contains(permitted, name) {
		return
	}
	if role := c.effectiveRole(); role != "" {
		c.report(attr, false, "The %q ARIA state/property is not permitted on the %q role", name, role)
		return
	}
	c.report(attr, false, "The %q ARIA state/property is not permitted on the <%s> element", name, c.name)
}

// checkRequired reports required states missing for an explicit role.
func (c *ariaCheck) checkRequired() {
	if !c.hasRole || c.role.Abstract {
		return
	}
	attr, _ := c.el.GetAttribute("role")
	for _, req := range c.role.Required {
		if c.el.HasAttribute(req) {
			continue
		}
		if _, ok := c.entry.ImplicitProperties[req]; ok {
			continue
		}
		c.report(attr, true, "The %q ARIA state/property is required on the %q role", req, c.role.Name)
	}
}

// checkNaming reports accessible names on elements that must stay
// unnamed, such as img with an empty alt.
func (c *ariaCheck) checkNaming() {
	if !c.entry.NamingProhibited || c.hasRole || c.entry.Properties.Forbidden {
		return
	}
	for _, name := range []string{"aria-label", "aria-labelledby"} {
		if attr, ok := c.el.GetAttribute(name); ok {
			c.report(attr, false, "The <%s> element must not be named", c.name)
		}
	}
}
