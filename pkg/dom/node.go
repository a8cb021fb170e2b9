package dom

import (
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/token"
)

// NodeType discriminates the node variants.
type NodeType uint8

// Node types.
const (
	DocumentNode NodeType = iota + 1
	ElementNode
	TextNode
	RawTextNode // content of script, style and other raw-text elements
	CommentNode
	DoctypeNode
	InvalidNode // tokens that could not be assembled, e.g. stray end tags
)

func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "Document"
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case RawTextNode:
		return "RawText"
	case CommentNode:
		return "Comment"
	case DoctypeNode:
		return "Doctype"
	case InvalidNode:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// Namespace of an element.
type Namespace uint8

// Element namespaces.
const (
	NamespaceHTML Namespace = iota
	NamespaceSVG
	NamespaceMathML
)

func (n Namespace) String() string {
	switch n {
	case NamespaceSVG:
		return "svg"
	case NamespaceMathML:
		return "math"
	default:
		return "html"
	}
}

// NodeID addresses a node inside its Document.
type NodeID uint32

// NoNodeID is the zero handle.
const NoNodeID NodeID = 0

type node struct {
	typ      NodeType
	loc      token.Location // start tag for elements, whole token otherwise
	endLoc   token.Location // end tag; zero when omitted or not applicable
	parent   NodeID
	children []NodeID

	// element only
	name        string
	normalized  string
	namespace   Namespace
	attrs       []AttrID
	tagOpen     string // "<" + name
	tagClose    string // whitespace + ">" or "/>"
	selfClosing bool
	void        bool
	custom      bool
}

// Node is a handle to a node stored in a Document. The zero Node means
// "no node" and every accessor on it returns a zero value.
type Node struct {
	doc *Document
	id  NodeID
}

// IsZero reports whether n refers to no node.
func (n Node) IsZero() bool {
	return n.doc == nil || n.id == NoNodeID
}

// ID returns the node handle.
func (n Node) ID() NodeID { return n.id }

// Document returns the owning document.
func (n Node) Document() *Document { return n.doc }

func (n Node) data() *node {
	if n.doc == nil {
		return nil
	}
	n.doc.Layout()
	return n.doc.nodes.get(uint32(n.id))
}

// Type returns the node variant.
func (n Node) Type() NodeType {
	if d := n.data(); d != nil {
		return d.typ
	}
	return 0
}

// IsElement reports whether n is an element.
func (n Node) IsElement() bool { return n.Type() == ElementNode }

// Location returns the node's start location. For elements this is the
// start tag.
func (n Node) Location() token.Location {
	if d := n.data(); d != nil {
		return d.loc
	}
	return token.Location{}
}

// EndTag returns the element's end tag location, zero when the end tag was
// omitted or the element is void or self-closing.
func (n Node) EndTag() token.Location {
	if d := n.data(); d != nil {
		return d.endLoc
	}
	return token.Location{}
}

// Raw returns the node's own raw text (the start tag for elements).
func (n Node) Raw() string { return n.Location().Raw }

// Line returns the 1-based start line.
func (n Node) Line() int { return n.Location().Line }

// Column returns the 1-based start column.
func (n Node) Column() int { return n.Location().Column }

// Parent returns the containing node; zero for the document root.
func (n Node) Parent() Node {
	if d := n.data(); d != nil && d.parent != NoNodeID {
		return Node{doc: n.doc, id: d.parent}
	}
	return Node{}
}

// ChildNodes returns all children in document order.
func (n Node) ChildNodes() []Node {
	d := n.data()
	if d == nil || len(d.children) == 0 {
		return nil
	}
	out := make([]Node, len(d.children))
	for i, c := range d.children {
		out[i] = Node{doc: n.doc, id: c}
	}
	return out
}

// Children returns only the element children.
func (n Node) Children() []Node {
	d := n.data()
	if d == nil {
		return nil
	}
	var out []Node
	for _, c := range d.children {
		if n.doc.nodes.get(uint32(c)).typ == ElementNode {
			out = append(out, Node{doc: n.doc, id: c})
		}
	}
	return out
}

func (n Node) siblingIndex() (int, []NodeID) {
	p := n.Parent().data()
	if p == nil {
		return -1, nil
	}
	for i, c := range p.children {
		if c == n.id {
			return i, p.children
		}
	}
	return -1, nil
}

// PrevSibling returns the previous node under the same parent.
func (n Node) PrevSibling() Node {
	i, sibs := n.siblingIndex()
	if i <= 0 {
		return Node{}
	}
	return Node{doc: n.doc, id: sibs[i-1]}
}

// NextSibling returns the next node under the same parent.
func (n Node) NextSibling() Node {
	i, sibs := n.siblingIndex()
	if i < 0 || i+1 >= len(sibs) {
		return Node{}
	}
	return Node{doc: n.doc, id: sibs[i+1]}
}

// Ancestors returns the chain of containing elements, nearest first.
// The document root is not included.
func (n Node) Ancestors() []Node {
	var out []Node
	for p := n.Parent(); !p.IsZero(); p = p.Parent() {
		if p.Type() == DocumentNode {
			break
		}
		out = append(out, p)
	}
	return out
}

// Closest returns the nearest node, starting with n itself, that satisfies
// pred.
func (n Node) Closest(pred func(Node) bool) Node {
	for c := n; !c.IsZero(); c = c.Parent() {
		if pred(c) {
			return c
		}
	}
	return Node{}
}

// NodeName returns the element name exactly as written.
func (n Node) NodeName() string {
	if d := n.data(); d != nil {
		switch d.typ {
		case ElementNode:
			return d.name
		case DocumentNode:
			return "#document"
		case TextNode, RawTextNode:
			return "#text"
		case CommentNode:
			return "#comment"
		case DoctypeNode:
			return "#doctype"
		case InvalidNode:
			return "#invalid"
		}
	}
	return ""
}

// TagNameNormalized returns the lower-cased element name.
func (n Node) TagNameNormalized() string {
	if d := n.data(); d != nil {
		return d.normalized
	}
	return ""
}

// Namespace returns the element namespace.
func (n Node) Namespace() Namespace {
	if d := n.data(); d != nil {
		return d.namespace
	}
	return NamespaceHTML
}

// IsCustomElement reports whether the element is unknown to the
// specification data (custom elements, framework components).
func (n Node) IsCustomElement() bool {
	if d := n.data(); d != nil {
		return d.custom
	}
	return false
}

// IsVoid reports whether the element is a void element.
func (n Node) IsVoid() bool {
	if d := n.data(); d != nil {
		return d.void
	}
	return false
}

// IsSelfClosing reports whether the start tag ended with "/>" and closed
// the element.
func (n Node) IsSelfClosing() bool {
	if d := n.data(); d != nil {
		return d.selfClosing
	}
	return false
}

// HasOmittedEnd reports whether a non-void element was closed implicitly.
func (n Node) HasOmittedEnd() bool {
	d := n.data()
	return d != nil && d.typ == ElementNode && !d.void && !d.selfClosing && d.endLoc.Raw == ""
}

// Attributes returns the element's attributes in source order. Duplicates
// are kept.
func (n Node) Attributes() []Attr {
	d := n.data()
	if d == nil || len(d.attrs) == 0 {
		return nil
	}
	out := make([]Attr, len(d.attrs))
	for i, a := range d.attrs {
		out[i] = Attr{doc: n.doc, id: a}
	}
	return out
}

// GetAttribute returns the first attribute with the given name. Matching
// follows the document's case sensitivity.
func (n Node) GetAttribute(name string) (Attr, bool) {
	for _, a := range n.Attributes() {
		if a.MatchName(name) {
			return a, true
		}
	}
	return Attr{}, false
}

// HasAttribute reports whether an attribute with the given name exists.
func (n Node) HasAttribute(name string) bool {
	_, ok := n.GetAttribute(name)
	return ok
}

// AttrValue returns the raw value of the named attribute.
func (n Node) AttrValue(name string) (string, bool) {
	a, ok := n.GetAttribute(name)
	if !ok {
		return "", false
	}
	return a.ValueRaw(), true
}

// TextContent concatenates the raw text of all descendant text nodes.
func (n Node) TextContent() string {
	switch n.Type() {
	case TextNode, RawTextNode:
		return n.Raw()
	case ElementNode, DocumentNode:
		var sb strings.Builder
		for _, c := range n.ChildNodes() {
			sb.WriteString(c.TextContent())
		}
		return sb.String()
	default:
		return ""
	}
}
