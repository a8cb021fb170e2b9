package style

import (
	"github.com/leapstack-labs/leapmark/pkg/core"
	"github.com/leapstack-labs/leapmark/pkg/dialect"
	"github.com/leapstack-labs/leapmark/pkg/dom"
	"github.com/leapstack-labs/leapmark/pkg/lint"
)

func init() {
	lint.Register(CaseSensitiveTagName)
}

// CaseSensitiveTagName enforces the case of HTML element names. Foreign
// elements and framework components keep the case they are written in.
var CaseSensitiveTagName = lint.RuleDef{
	Name:         "case-sensitive-tag-name",
	Category:     "style",
	Description:  `Element names of HTML elements must be written in one case ("lower" or "upper").`,
	Severity:     core.SeverityWarning,
	DefaultValue: string(lowerCase),
	Verify:       checkCaseSensitiveTagName,
	Autofix:      fixCaseSensitiveTagName,

	BadExample:  `<DIV><Span>text</Span></DIV>`,
	GoodExample: `<div><span>text</span></div>`,
	Fix:         "Rename the start tag and the end tag.",
}

func tagNameTargets(ctx *lint.Context, fn func(el dom.Node, c letterCase)) error {
	d, _ := dialect.Get(ctx.Document().Dialect())
	return ctx.Each(dom.ElementNode, func(el dom.Node, s lint.Setting) error {
		if el.Namespace() != dom.NamespaceHTML {
			return nil
		}
		if d != nil && d.IsComponent(el.NodeName()) {
			return nil
		}
		c, err := caseFor(s)
		if err != nil {
			return err
		}
		if !c.matches(el.NodeName()) {
			fn(el, c)
		}
		return nil
	})
}

func checkCaseSensitiveTagName(ctx *lint.Context) error {
	return tagNameTargets(ctx, func(el dom.Node, c letterCase) {
		msg := ctx.T("The element name of HTML elements must be in lowercase")
		if c == upperCase {
			msg = ctx.T("The element name of HTML elements must be in uppercase")
		}
		loc := el.Location()
		// point at the name, after "<"
		loc = ctx.Document().Lines().Locate(loc.Offset+1, len(el.NodeName()))
		ctx.Report(el, loc, msg)
	})
}

func fixCaseSensitiveTagName(ctx *lint.Context) error {
	var els []dom.Node
	var cases []letterCase
	err := tagNameTargets(ctx, func(el dom.Node, c letterCase) {
		els = append(els, el)
		cases = append(cases, c)
	})
	if err != nil {
		return err
	}
	for i, el := range els {
		if err := ctx.Document().RenameElement(el.ID(), cases[i].apply(el.NodeName())); err != nil {
			return err
		}
	}
	return nil
}
