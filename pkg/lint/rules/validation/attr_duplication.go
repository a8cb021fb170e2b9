package validation

import (
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/core"
	"github.com/leapstack-labs/leapmark/pkg/dom"
	"github.com/leapstack-labs/leapmark/pkg/lint"
)

func init() {
	lint.Register(AttrDuplication)
}

// AttrDuplication reports attributes written more than once on an element.
var AttrDuplication = lint.RuleDef{
	Name:         "attr-duplication",
	Category:     "validation",
	Description:  "Attribute names must be unique within an element.",
	Severity:     core.SeverityError,
	DefaultValue: true,
	Verify:       checkAttrDuplication,

	Rationale: "Browsers keep the first occurrence and silently drop the rest, " +
		"so a duplicated attribute never has the value its author expected.",
	BadExample:  `<img src="/a.png" SRC="/b.png">`,
	GoodExample: `<img src="/a.png">`,
	Fix:         "Remove all but one of the duplicated attributes.",
}

func checkAttrDuplication(ctx *lint.Context) error {
	caseSensitive := ctx.Document().CaseSensitiveAttrs()
	return ctx.Each(dom.ElementNode, func(el dom.Node, _ lint.Setting) error {
		seen := make(map[string]bool)
		for _, attr := range el.Attributes() {
			// v-bind:foo and foo name the same attribute
			name := attr.PotentialName()
			if !caseSensitive {
				name = strings.ToLower(name)
			}
			if seen[name] {
				ctx.Report(el, attr.Name(), ctx.T("The attribute name is duplicated"))
				continue
			}
			seen[name] = true
		}
		return nil
	})
}
