package style

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/core"
	"github.com/leapstack-labs/leapmark/pkg/dom"
	"github.com/leapstack-labs/leapmark/pkg/lint"
)

func init() {
	lint.Register(AttrValueQuotes)
}

// AttrValueQuotes enforces one quote character around attribute values.
var AttrValueQuotes = lint.RuleDef{
	Name:         "attr-value-quotes",
	Category:     "style",
	Description:  `Attribute values must be quoted with the configured quote ("double" or "single").`,
	Severity:     core.SeverityWarning,
	DefaultValue: "double",
	Verify:       checkAttrValueQuotes,
	Autofix:      fixAttrValueQuotes,

	Rationale:   "Unquoted values end at the first space, and mixed quote styles make markup harder to scan.",
	BadExample:  `<div data-attr='db' data-other=tr>`,
	GoodExample: `<div data-attr="db" data-other="tr">`,
}

var quoteChars = map[string]string{"double": `"`, "single": `'`}

func quoteFor(s lint.Setting) (string, string, error) {
	style, _ := s.Value.(string)
	if style == "" {
		style = "double"
	}
	q, ok := quoteChars[style]
	if !ok {
		return "", "", fmt.Errorf(`value must be "double" or "single", got %v`, s.Value)
	}
	return style, q, nil
}

// misquoted reports whether attr has a value written with another quote.
// Unquoted template expressions and directives such as Svelte's
// on:click={fn} are left alone.
func misquoted(attr dom.Attr, quote string) bool {
	if !attr.HasValue() || attr.Quote() == quote {
		return false
	}
	return attr.Quote() != "" || !(attr.IsDynamic() || attr.IsDirective())
}

func checkAttrValueQuotes(ctx *lint.Context) error {
	return ctx.Each(dom.ElementNode, func(el dom.Node, s lint.Setting) error {
		style, q, err := quoteFor(s)
		if err != nil {
			return err
		}
		for _, attr := range el.Attributes() {
			if misquoted(attr, q) {
				msg := ctx.T("Attribute value is must quote on double")
				if style == "single" {
					msg = ctx.T("Attribute value is must quote on single")
				}
				ctx.Report(el, attr.Location(), msg)
			}
		}
		return nil
	})
}

func fixAttrValueQuotes(ctx *lint.Context) error {
	type change struct {
		id    dom.AttrID
		quote string
	}
	var changes []change
	err := ctx.Each(dom.ElementNode, func(el dom.Node, s lint.Setting) error {
		_, q, err := quoteFor(s)
		if err != nil {
			return err
		}
		for _, attr := range el.Attributes() {
			if misquoted(attr, q) && !strings.Contains(attr.ValueRaw(), q) {
				changes = append(changes, change{attr.ID(), q})
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	doc := ctx.Document()
	for _, c := range changes {
		if err := doc.SetAttrQuote(c.id, c.quote); err != nil {
			return err
		}
	}
	return nil
}
