package validation

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/core"
	"github.com/leapstack-labs/leapmark/pkg/dialect"
	"github.com/leapstack-labs/leapmark/pkg/dom"
	"github.com/leapstack-labs/leapmark/pkg/lint"
)

func init() {
	lint.Register(CharacterReference)
}

// CharacterReference reports "<", ">" and bare "&" in text content.
var CharacterReference = lint.RuleDef{
	Name:         "character-reference",
	Category:     "validation",
	Description:  "Illegal characters in text must be written as character references.",
	Severity:     core.SeverityError,
	DefaultValue: true,
	Verify:       checkCharacterReference,
	Autofix:      fixCharacterReference,

	Rationale:   "A literal \"<\" or \"&\" may start a tag or a reference and change how the rest of the text parses.",
	BadExample:  `<p>Tom & Jerry</p>`,
	GoodExample: `<p>Tom &amp; Jerry</p>`,
	Fix:         `Replace "<" with "&lt;", ">" with "&gt;" and "&" with "&amp;".`,
}

var reCharRef = regexp.MustCompile(`^&(?:#[0-9]+|#[xX][0-9a-fA-F]+|[a-zA-Z][a-zA-Z0-9]*);`)

var escapes = map[byte]string{'<': "&lt;", '>': "&gt;", '&': "&amp;"}

// illegalChars returns the offsets in text of characters that need
// escaping, skipping template expressions.
func illegalChars(text string, spans [][2]int) []int {
	var out []int
	for i := 0; i < len(text); i++ {
		if len(spans) > 0 && i >= spans[0][0] {
			i = spans[0][1] - 1
			spans = spans[1:]
			continue
		}
		switch text[i] {
		case '<', '>':
			out = append(out, i)
		case '&':
			if !reCharRef.MatchString(text[i:]) {
				out = append(out, i)
			}
		}
	}
	return out
}

func expressionSpans(ctx *lint.Context, text string) [][2]int {
	d, ok := dialect.Get(ctx.Document().Dialect())
	if !ok {
		return nil
	}
	return d.ExpressionSpans(text)
}

func checkCharacterReference(ctx *lint.Context) error {
	lines := ctx.Document().Lines()
	return ctx.Each(dom.TextNode, func(n dom.Node, _ lint.Setting) error {
		loc := n.Location()
		for _, off := range illegalChars(loc.Raw, expressionSpans(ctx, loc.Raw)) {
			ctx.Report(n, lines.Locate(loc.Offset+off, 1),
				ctx.T("Illegal characters must be escaped with character references"))
		}
		return nil
	})
}

func fixCharacterReference(ctx *lint.Context) error {
	var nodes []dom.Node
	err := ctx.Each(dom.TextNode, func(n dom.Node, _ lint.Setting) error {
		nodes = append(nodes, n)
		return nil
	})
	if err != nil {
		return err
	}
	// rewrite after the walk: SetText shifts the offsets of later nodes
	doc := ctx.Document()
	for _, n := range nodes {
		raw := n.Raw()
		offsets := illegalChars(raw, expressionSpans(ctx, raw))
		if len(offsets) == 0 {
			continue
		}
		var sb strings.Builder
		prev := 0
		for _, off := range offsets {
			sb.WriteString(raw[prev:off])
			sb.WriteString(escapes[raw[off]])
			prev = off + 1
		}
		sb.WriteString(raw[prev:])
		if err := doc.SetText(n.ID(), sb.String()); err != nil {
			return err
		}
	}
	return nil
}
