package lint

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/leapmark/pkg/dom"
	"github.com/leapstack-labs/leapmark/pkg/i18n"
	"github.com/leapstack-labs/leapmark/pkg/selector"
	"github.com/leapstack-labs/leapmark/pkg/spec"
	"github.com/leapstack-labs/leapmark/pkg/token"
)

// VisitFunc is called for each visited node with the rule setting
// resolved for it.
type VisitFunc func(n dom.Node, s Setting) error

// Context is what a rule body sees of one verification: the document,
// the spec data, the translator and the per-node settings. A Context
// serves one rule on one document and is not safe for concurrent use.
type Context struct {
	ctx         context.Context
	rule        Rule
	doc         *dom.Document
	t           i18n.Translator
	store       *spec.Store
	index       *selector.Index
	logger      *slog.Logger
	ariaVersion string

	base       Setting
	enabled    bool
	nodeRules  []nodeOverride
	childRules []childOverride

	states  map[dom.NodeID]nodeState
	results []Result
}

type nodeOverride struct {
	sel     *selector.Selector
	setting RuleSetting
}

type childOverride struct {
	sel         *selector.Selector
	inheritance bool
	setting     RuleSetting
}

type nodeState struct {
	setting Setting
	enabled bool
	pruned  bool // disabled by an override, subtree skipped
}

func (st *nodeState) apply(o RuleSetting) {
	st.enabled = !o.Disabled
	st.pruned = o.Disabled
	if !o.Disabled {
		st.setting = st.setting.apply(o)
	}
}

// Context returns the context.Context of the run.
func (c *Context) Context() context.Context { return c.ctx }

// Rule returns the running rule.
func (c *Context) Rule() Rule { return c.rule }

// Document returns the document under verification.
func (c *Context) Document() *dom.Document { return c.doc }

// Spec returns the specification store.
func (c *Context) Spec() *spec.Store { return c.store }

// AriaVersion returns the configured WAI-ARIA version.
func (c *Context) AriaVersion() string { return c.ariaVersion }

// Logger returns a logger tagged with the rule name.
func (c *Context) Logger() *slog.Logger { return c.logger }

// Translator returns the message translator.
func (c *Context) Translator() i18n.Translator { return c.t }

// T translates a message.
func (c *Context) T(format string, args ...any) string {
	return c.t.T(format, args...)
}

// Setting returns the global setting of the rule.
func (c *Context) Setting() Setting { return c.base }

// Match reports whether n matches a CSS selector.
func (c *Context) Match(n dom.Node, sel string) (bool, error) {
	return c.index.Match(n, sel)
}

// MatchFunc returns a selector matcher bound to n, for spec lookups.
func (c *Context) MatchFunc(n dom.Node) spec.MatchFunc {
	return c.index.MatchFunc(n)
}

// Each walks the document in pre-order and calls fn for every node of the
// given type (0 for all types) on which the rule is enabled. Subtrees
// disabled by an override are skipped. Visits run one at a time in
// document order; an error from fn stops the walk and is returned.
func (c *Context) Each(typ dom.NodeType, fn VisitFunc) error {
	c.plan()
	return c.doc.Walk(func(n dom.Node) error {
		if err := c.ctx.Err(); err != nil {
			return err
		}
		st, ok := c.states[n.ID()]
		if !ok || st.pruned {
			return dom.SkipChildren
		}
		if !st.enabled || (typ != 0 && n.Type() != typ) {
			return nil
		}
		return fn(n, st.setting)
	})
}

// Report records a result for node n at loc. The severity is the one
// resolved for n; reports on nodes where the rule is off are dropped.
func (c *Context) Report(n dom.Node, loc token.Location, message string) {
	c.plan()
	st, ok := c.states[n.ID()]
	if !ok || !st.enabled {
		return
	}
	c.results = append(c.results, Result{
		Rule:     c.rule.Name(),
		Severity: st.setting.Severity,
		Message:  message,
		Line:     loc.Line,
		Col:      loc.Column,
		Raw:      loc.Raw,
	})
}

// Results returns the results reported so far.
func (c *Context) Results() []Result { return c.results }

// plan resolves the setting of every node once.
func (c *Context) plan() {
	if c.states != nil {
		return
	}
	c.states = make(map[dom.NodeID]nodeState, c.doc.Len())
	root := c.doc.Root()
	c.states[root.ID()] = nodeState{setting: c.base, enabled: c.enabled}
	c.planChildren(root, nil, nil)
}

// planChildren resolves the children of parent. inherited holds the
// childNodeRules of ancestors that apply to all descendants, direct those
// of parent that apply to its children only.
func (c *Context) planChildren(parent dom.Node, inherited, direct []RuleSetting) {
	for _, n := range parent.ChildNodes() {
		st := nodeState{setting: c.base, enabled: c.enabled}
		for _, o := range inherited {
			st.apply(o)
		}
		for _, o := range direct {
			st.apply(o)
		}
		if n.IsElement() {
			for _, nr := range c.nodeRules {
				if nr.sel.Match(c.index, n) {
					st.apply(nr.setting)
				}
			}
		}
		c.states[n.ID()] = st
		if st.pruned || !n.IsElement() {
			continue
		}

		nextInherited := inherited
		var nextDirect []RuleSetting
		for _, cr := range c.childRules {
			if !cr.sel.Match(c.index, n) {
				continue
			}
			if cr.inheritance {
				nextInherited = append(nextInherited[:len(nextInherited):len(nextInherited)], cr.setting)
			} else {
				nextDirect = append(nextDirect, cr.setting)
			}
		}
		c.planChildren(n, nextInherited, nextDirect)
	}
}
