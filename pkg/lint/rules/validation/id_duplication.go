package validation

import (
	"github.com/leapstack-labs/leapmark/pkg/core"
	"github.com/leapstack-labs/leapmark/pkg/dom"
	"github.com/leapstack-labs/leapmark/pkg/lint"
)

func init() {
	lint.Register(IDDuplication)
}

// IDDuplication reports id values used by more than one element.
var IDDuplication = lint.RuleDef{
	Name:         "id-duplication",
	Category:     "validation",
	Description:  "Element ids must be unique within a document.",
	Severity:     core.SeverityError,
	DefaultValue: true,
	Verify:       checkIDDuplication,

	Rationale:   "Fragment links, label associations and ARIA references resolve to the first element with an id.",
	BadExample:  `<div id="main"></div><div id="main"></div>`,
	GoodExample: `<div id="main"></div><div id="aside"></div>`,
}

func checkIDDuplication(ctx *lint.Context) error {
	seen := make(map[string]bool)
	return ctx.Each(dom.ElementNode, func(el dom.Node, _ lint.Setting) error {
		attr, ok := el.GetAttribute("id")
		if !ok || attr.IsDynamic() || attr.IsDirective() {
			return nil
		}
		id := attr.ValueRaw()
		if id == "" {
			return nil
		}
		if seen[id] {
			ctx.Report(el, attr.Value(), ctx.T("Duplicate attribute id value"))
			return nil
		}
		seen[id] = true
		return nil
	})
}
