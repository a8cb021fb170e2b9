package style

import (
	"github.com/leapstack-labs/leapmark/pkg/core"
	"github.com/leapstack-labs/leapmark/pkg/dom"
	"github.com/leapstack-labs/leapmark/pkg/lint"
)

func init() {
	lint.Register(CaseSensitiveAttrName)
}

// CaseSensitiveAttrName enforces the case of attribute names on HTML
// elements. Foreign elements and case-sensitive dialects are skipped.
var CaseSensitiveAttrName = lint.RuleDef{
	Name:         "case-sensitive-attr-name",
	Category:     "style",
	Description:  `Attribute names of HTML elements must be written in one case ("lower" or "upper").`,
	Severity:     core.SeverityWarning,
	DefaultValue: string(lowerCase),
	Verify:       checkCaseSensitiveAttrName,
	Autofix:      fixCaseSensitiveAttrName,

	BadExample:  `<div DATA-ID="1" Class="x">`,
	GoodExample: `<div data-id="1" class="x">`,
}

func attrNameTargets(ctx *lint.Context, fn func(el dom.Node, attr dom.Attr, c letterCase)) error {
	if ctx.Document().CaseSensitiveAttrs() {
		return nil
	}
	return ctx.Each(dom.ElementNode, func(el dom.Node, s lint.Setting) error {
		if el.Namespace() != dom.NamespaceHTML {
			return nil
		}
		c, err := caseFor(s)
		if err != nil {
			return err
		}
		for _, attr := range el.Attributes() {
			if attr.IsDirective() || c.matches(attr.NameRaw()) {
				continue
			}
			fn(el, attr, c)
		}
		return nil
	})
}

func checkCaseSensitiveAttrName(ctx *lint.Context) error {
	return attrNameTargets(ctx, func(el dom.Node, attr dom.Attr, c letterCase) {
		msg := ctx.T("The attribute name of HTML elements must be in lowercase")
		if c == upperCase {
			msg = ctx.T("The attribute name of HTML elements must be in uppercase")
		}
		ctx.Report(el, attr.Name(), msg)
	})
}

func fixCaseSensitiveAttrName(ctx *lint.Context) error {
	type rename struct {
		id   dom.AttrID
		name string
	}
	var renames []rename
	err := attrNameTargets(ctx, func(_ dom.Node, attr dom.Attr, c letterCase) {
		renames = append(renames, rename{attr.ID(), c.apply(attr.NameRaw())})
	})
	if err != nil {
		return err
	}
	for _, r := range renames {
		if err := ctx.Document().SetAttrName(r.id, r.name); err != nil {
			return err
		}
	}
	return nil
}
