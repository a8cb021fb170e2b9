package validation

import (
	"errors"

	"github.com/leapstack-labs/leapmark/pkg/core"
	"github.com/leapstack-labs/leapmark/pkg/dom"
	"github.com/leapstack-labs/leapmark/pkg/i18n"
	"github.com/leapstack-labs/leapmark/pkg/lint"
	"github.com/leapstack-labs/leapmark/pkg/parser"
)

func init() {
	lint.Register(ParseError)
}

// ParseError surfaces the tokens the parser kept as invalid nodes.
var ParseError = lint.RuleDef{
	Name:         "parse-error",
	Category:     "validation",
	Description:  "Markup must be well-formed enough to build a tree.",
	Severity:     core.SeverityError,
	DefaultValue: true,
	Verify:       checkParseError,

	Rationale:   "Stray end tags and broken tags are recovered differently by every parser.",
	BadExample:  `<div></span></div>`,
	GoodExample: `<div><span></span></div>`,
}

type position struct{ line, col int }

func checkParseError(ctx *lint.Context) error {
	byPos := make(map[position]*parser.MLParseError)
	for _, err := range ctx.Document().ParseErrors() {
		var pe *parser.MLParseError
		if errors.As(err, &pe) {
			byPos[position{pe.Line, pe.Col}] = pe
		}
	}
	return ctx.Each(dom.InvalidNode, func(n dom.Node, _ lint.Setting) error {
		loc := n.Location()
		if pe, ok := byPos[position{loc.Line, loc.Column}]; ok {
			ctx.Report(n, loc, pe.Message(ctx.Translator()))
			return nil
		}
		ctx.Report(n, loc, ctx.T(i18n.MsgInvalidElement, loc.Raw, loc.Line, loc.Column))
		return nil
	})
}
