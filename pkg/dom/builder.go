package dom

import (
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/token"
)

// Classifier tells the builder which element names the specification data
// knows about.
type Classifier interface {
	IsKnownElement(name string, ns Namespace) bool
}

// BuilderOptions configure a Builder.
type BuilderOptions struct {
	Dialect            string
	CaseSensitiveAttrs bool
	Classifier         Classifier
	// IsComponent marks framework component names (e.g. PascalCase) as
	// custom elements regardless of the Classifier.
	IsComponent func(name string) bool
}

// StartTag describes a start tag split into its pieces. Concatenating
// "<" + Name, each attribute's Before and raw text, and Close must give back
// the exact source slice at Offset.
type StartTag struct {
	Offset      int
	Name        string
	Attrs       []AttrToken
	Close       string
	SelfClosing bool // closes the element; children are not expected
	Void        bool
	Namespace   Namespace
}

// AttrToken describes one attribute of a StartTag.
type AttrToken struct {
	Before    string
	Name      string
	Equal     string
	Quote     string
	Value     string
	HasValue  bool
	Potential string
	Directive bool
	Dynamic   bool
}

// Raw returns the attribute text as it appears in the tag.
func (t AttrToken) Raw() string {
	if !t.HasValue {
		return t.Name
	}
	return t.Name + t.Equal + t.Quote + t.Value + t.Quote
}

// Builder assembles a Document. Front ends feed it tokens in source order;
// the builder keeps the stack of open elements.
type Builder struct {
	doc   *Document
	opts  BuilderOptions
	stack []NodeID
}

// NewBuilder starts a document over src.
func NewBuilder(src string, opts BuilderOptions) *Builder {
	d := &Document{
		nodes:              newArena[node](64),
		attrs:              newArena[attr](64),
		lines:              token.NewLineIndex(src),
		dialect:            opts.Dialect,
		caseSensitiveAttrs: opts.CaseSensitiveAttrs,
	}
	d.root = NodeID(d.nodes.allocate(node{
		typ: DocumentNode,
		loc: token.Location{Position: token.Position{Line: 1, Column: 1}},
	}))
	return &Builder{doc: d, opts: opts, stack: []NodeID{d.root}}
}

// Current returns the innermost open element, or the document node.
func (b *Builder) Current() Node {
	return Node{doc: b.doc, id: b.stack[len(b.stack)-1]}
}

// OpenElements returns the open elements, outermost first. The document
// node is not included.
func (b *Builder) OpenElements() []Node {
	out := make([]Node, 0, len(b.stack)-1)
	for _, id := range b.stack[1:] {
		out = append(out, Node{doc: b.doc, id: id})
	}
	return out
}

func (b *Builder) appendChild(parent NodeID, n node) NodeID {
	n.parent = parent
	id := NodeID(b.doc.nodes.allocate(n))
	p := b.doc.nodes.get(uint32(parent))
	p.children = append(p.children, id)
	return id
}

// OpenElement adds an element under the current node. Unless the tag is
// void or self-closing the element becomes the current node.
func (b *Builder) OpenElement(tag StartTag) Node {
	var sb strings.Builder
	sb.WriteString("<" + tag.Name)
	for _, a := range tag.Attrs {
		sb.WriteString(a.Before)
		sb.WriteString(a.Raw())
	}
	sb.WriteString(tag.Close)
	raw := sb.String()

	normalized := strings.ToLower(tag.Name)
	n := node{
		typ:         ElementNode,
		loc:         b.doc.lines.Locate(tag.Offset, len(raw)),
		name:        tag.Name,
		normalized:  normalized,
		namespace:   tag.Namespace,
		tagOpen:     "<" + tag.Name,
		tagClose:    tag.Close,
		selfClosing: tag.SelfClosing,
		void:        tag.Void,
		custom:      b.isCustom(tag.Name, normalized, tag.Namespace),
	}
	id := b.appendChild(b.stack[len(b.stack)-1], n)

	el := b.doc.nodes.get(uint32(id))
	for _, t := range tag.Attrs {
		aid := AttrID(b.doc.attrs.allocate(attr{
			owner:      id,
			before:     t.Before,
			nameRaw:    t.Name,
			equal:      t.Equal,
			quote:      t.Quote,
			valueRaw:   t.Value,
			hasValue:   t.HasValue,
			normalized: strings.ToLower(t.Name),
			potential:  t.Potential,
			directive:  t.Directive,
			dynamic:    t.Dynamic,
		}))
		el.attrs = append(el.attrs, aid)
	}
	b.doc.layoutAttrs(el)

	if !tag.Void && !tag.SelfClosing {
		b.stack = append(b.stack, id)
	}
	return Node{doc: b.doc, id: id}
}

func (b *Builder) isCustom(name, normalized string, ns Namespace) bool {
	if b.opts.IsComponent != nil && b.opts.IsComponent(name) {
		return true
	}
	if b.opts.Classifier != nil {
		return !b.opts.Classifier.IsKnownElement(normalized, ns)
	}
	return strings.Contains(normalized, "-")
}

// CloseElement closes the open element el with the end tag at
// [offset, offset+length). Elements opened after el are closed implicitly.
// It reports false if el is not open.
func (b *Builder) CloseElement(el Node, offset, length int) bool {
	for i := len(b.stack) - 1; i > 0; i-- {
		if b.stack[i] != el.id {
			continue
		}
		n := b.doc.nodes.get(uint32(el.id))
		n.endLoc = b.doc.lines.Locate(offset, length)
		b.stack = b.stack[:i]
		return true
	}
	return false
}

// PopCurrent closes the current element without an end tag.
func (b *Builder) PopCurrent() {
	if len(b.stack) > 1 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

// AddNode appends a leaf node of the given type covering
// [offset, offset+length).
func (b *Builder) AddNode(typ NodeType, offset, length int) Node {
	id := b.appendChild(b.stack[len(b.stack)-1], node{
		typ: typ,
		loc: b.doc.lines.Locate(offset, length),
	})
	return Node{doc: b.doc, id: id}
}

// AddError records a front-end error against the document.
func (b *Builder) AddError(err error) {
	b.doc.errs = append(b.doc.errs, err)
}

// Finish closes every element still open and returns the document.
func (b *Builder) Finish() *Document {
	b.stack = b.stack[:1]
	return b.doc
}
