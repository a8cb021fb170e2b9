// Package parser is the markup front end shared by every dialect. It turns
// source text into a dom.Document whose nodes carry exact source
// locations.
//
// # Usage
//
//	doc, err := parser.Parse(src, parser.Options{Dialect: vue.Vue})
//	if err != nil {
//	    // err is an ErrorList; doc is still usable
//	}
//
// Parse always returns a document. Tokens that cannot be assembled become
// Invalid nodes carrying their raw text, so serializing the document gives
// back the input byte for byte, and each is reported as an MLParseError.
//
// Tokenizing is done by golang.org/x/net/html over a copy of the source in
// which template expressions are blanked, so "<" inside {{ a < b }} is not
// read as a tag. Start tags are split by a scanner of their own to keep
// every byte of whitespace and quoting.
package parser

import (
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"github.com/leapstack-labs/leapmark/pkg/dialect"
	"github.com/leapstack-labs/leapmark/pkg/dom"
)

// Options configure a Parser.
type Options struct {
	// Dialect defaults to dialect.HTML.
	Dialect *dialect.Dialect
	// Classifier decides which elements are known to the spec data.
	// Without it, names containing "-" are custom elements.
	Classifier dom.Classifier
	Logger     *slog.Logger
}

// Parser builds one document.
type Parser struct {
	src     string
	masked  string
	dialect *dialect.Dialect
	z       *html.Tokenizer
	b       *dom.Builder
	logger  *slog.Logger

	offset int    // bytes consumed
	rawTag string // open raw-text element, the tokenizer is in raw mode
	errs   ErrorList
}

// NewParser creates a parser for src.
func NewParser(src string, opts Options) *Parser {
	d := opts.Dialect
	if d == nil {
		d = dialect.HTML
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	masked := maskExpressions(src, d.Expressions)
	return &Parser{
		src:     src,
		masked:  masked,
		dialect: d,
		z:       html.NewTokenizer(strings.NewReader(masked)),
		b: dom.NewBuilder(src, dom.BuilderOptions{
			Dialect:            d.Name,
			CaseSensitiveAttrs: d.CaseSensitiveAttrs,
			Classifier:         opts.Classifier,
			IsComponent:        d.IsComponent,
		}),
		logger: logger,
	}
}

// Parse parses src. The returned error, if any, is an ErrorList.
func Parse(src string, opts Options) (*dom.Document, error) {
	return NewParser(src, opts).Parse()
}

// Parse runs the parser to the end of input.
func (p *Parser) Parse() (*dom.Document, error) {
	for p.next() {
	}
	if p.offset < len(p.src) {
		// unterminated tag or comment at end of input
		rest := p.src[p.offset:]
		p.invalid(p.offset, len(rest), leadingName(rest))
		p.offset = len(p.src)
	}
	doc := p.b.Finish()
	p.logger.Debug("parsed document",
		slog.String("dialect", p.dialect.Name),
		slog.Int("nodes", doc.Len()),
		slog.Int("errors", len(p.errs)))
	if len(p.errs) > 0 {
		return doc, p.errs
	}
	return doc, nil
}

// next consumes one token. It returns false at the end of input.
func (p *Parser) next() bool {
	p.z.AllowCDATA(p.inForeign())
	tt := p.z.Next()
	if tt == html.ErrorToken {
		return false
	}
	start := p.offset
	n := len(p.z.Raw())
	p.offset += n

	switch tt {
	case html.TextToken:
		typ := dom.TextNode
		if p.rawTag != "" {
			typ = dom.RawTextNode
		}
		p.b.AddNode(typ, start, n)
	case html.CommentToken:
		p.b.AddNode(dom.CommentNode, start, n)
	case html.DoctypeToken:
		p.b.AddNode(dom.DoctypeNode, start, n)
	case html.StartTagToken, html.SelfClosingTagToken:
		p.startTag(start, n)
	case html.EndTagToken:
		p.endTag(start, n)
	}
	return true
}

func (p *Parser) inForeign() bool {
	cur := p.b.Current()
	return cur.IsElement() && cur.Namespace() != dom.NamespaceHTML
}

func (p *Parser) startTag(start, n int) {
	raw := p.src[start : start+n]
	tag, ok := scanStartTag(p.masked[start:start+n], raw)
	if !ok {
		p.invalid(start, n, leadingName(raw))
		return
	}
	lower := strings.ToLower(tag.name)

	atRoot := !p.b.Current().IsElement()
	if atRoot && p.dialect.Root != "" && lower != p.dialect.Root {
		p.skipBlock(start, lower, tag.selfClosing())
		return
	}

	ns := p.namespaceFor(lower)
	if ns == dom.NamespaceHTML {
		p.closeImplied(lower)
	}
	void := ns == dom.NamespaceHTML && voidElements[lower] && !p.dialect.IsComponent(tag.name)
	selfClosing := !void && tag.selfClosing() &&
		(ns != dom.NamespaceHTML || p.dialect.SelfClosingTags)

	// The tokenizer switches to raw text after <style>, <script> and the
	// like. Foreign content and closed elements have no raw body.
	if rawTextElements[lower] {
		if ns != dom.NamespaceHTML || selfClosing {
			p.z.NextIsNotRawText()
		} else {
			p.rawTag = lower
		}
	}

	// attributes of the root wrapper (<template lang="pug">) belong to
	// the framework
	wrapper := atRoot && p.dialect.Root != ""
	for i := range tag.attrs {
		a := &tag.attrs[i]
		if wrapper {
			a.Directive = true
			continue
		}
		k := p.dialect.ClassifyAttr(a.Name, a.Value, a.Quote)
		a.Potential, a.Directive, a.Dynamic = k.Potential, k.Directive, k.Dynamic
	}

	p.b.OpenElement(dom.StartTag{
		Offset:      start,
		Name:        tag.name,
		Attrs:       tag.attrs,
		Close:       tag.close,
		SelfClosing: selfClosing,
		Void:        void,
		Namespace:   ns,
	})
}

func (p *Parser) endTag(start, n int) {
	name := endTagName(p.src[start : start+n])
	lower := strings.ToLower(name)
	p.rawTag = ""

	open := p.b.OpenElements()
	for i := len(open) - 1; i >= 0; i-- {
		if open[i].TagNameNormalized() == lower {
			p.b.CloseElement(open[i], start, n)
			return
		}
	}
	p.invalid(start, n, name)
}

// namespaceFor returns the namespace of a new element under the current
// node.
func (p *Parser) namespaceFor(lower string) dom.Namespace {
	switch lower {
	case "svg":
		return dom.NamespaceSVG
	case "math":
		return dom.NamespaceMathML
	}
	cur := p.b.Current()
	if !cur.IsElement() {
		return dom.NamespaceHTML
	}
	ns := cur.Namespace()
	switch {
	case ns == dom.NamespaceSVG && cur.TagNameNormalized() == "foreignobject":
		return dom.NamespaceHTML
	case ns == dom.NamespaceMathML && cur.TagNameNormalized() == "annotation-xml":
		return dom.NamespaceHTML
	}
	return ns
}

// closeImplied pops the open elements whose end tag is implied by a start
// tag named next.
func (p *Parser) closeImplied(next string) {
	for {
		cur := p.b.Current()
		if !cur.IsElement() || cur.Namespace() != dom.NamespaceHTML ||
			!impliesEnd(cur.TagNameNormalized(), next) {
			return
		}
		p.b.PopCurrent()
	}
}

// skipBlock consumes a top-level block outside the dialect's root
// element, up to its matching end tag, as a single RawText node.
func (p *Parser) skipBlock(start int, name string, selfClosing bool) {
	if !selfClosing || rawTextElements[name] {
		depth := 0
	loop:
		for {
			tt := p.z.Next()
			if tt == html.ErrorToken {
				break
			}
			s := p.offset
			p.offset += len(p.z.Raw())
			switch tt {
			case html.StartTagToken:
				if strings.EqualFold(leadingName(p.src[s:p.offset]), name) {
					depth++
				}
			case html.EndTagToken:
				if strings.EqualFold(endTagName(p.src[s:p.offset]), name) {
					if depth == 0 {
						break loop
					}
					depth--
				}
			}
		}
	}
	p.rawTag = ""
	p.b.AddNode(dom.RawTextNode, start, p.offset-start)
}

// invalid records an unassemblable token.
func (p *Parser) invalid(start, n int, name string) {
	node := p.b.AddNode(dom.InvalidNode, start, n)
	loc := node.Location()
	if name == "" {
		name = loc.Raw
	}
	err := &MLParseError{Line: loc.Line, Col: loc.Column, Raw: loc.Raw, NodeName: name}
	p.errs = append(p.errs, err)
	p.b.AddError(err)
}

// leadingName returns the tag name after "<" in raw, or "".
func leadingName(raw string) string {
	if !strings.HasPrefix(raw, "<") {
		return ""
	}
	i := 1
	for i < len(raw) && !isTagSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' {
		i++
	}
	return raw[1:i]
}
