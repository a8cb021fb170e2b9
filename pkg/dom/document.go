package dom

import (
	"errors"
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/token"
)

// SkipChildren is returned by a Walk callback to skip the current node's
// subtree without aborting the walk.
var SkipChildren = errors.New("skip children")

// Document owns every node and attribute of one parsed source text.
// It is safe for concurrent reads; mutation requires a single writer.
type Document struct {
	nodes *arena[node]
	attrs *arena[attr]
	root  NodeID
	lines *token.LineIndex

	// positions from staleFrom on lag behind pending mutations
	stale     bool
	staleFrom int

	dialect            string
	caseSensitiveAttrs bool
	errs               []error
}

// Root returns the document node.
func (d *Document) Root() Node {
	return Node{doc: d, id: d.root}
}

// Node resolves a handle. It returns the zero Node for unknown handles.
func (d *Document) Node(id NodeID) Node {
	if d.nodes.get(uint32(id)) == nil {
		return Node{}
	}
	return Node{doc: d, id: id}
}

// Attr resolves an attribute handle.
func (d *Document) Attr(id AttrID) Attr {
	if d.attrs.get(uint32(id)) == nil {
		return Attr{}
	}
	return Attr{doc: d, id: id}
}

// Len returns the number of nodes, the document node included.
func (d *Document) Len() int {
	return d.nodes.len()
}

// Dialect returns the name of the dialect that produced the document.
func (d *Document) Dialect() string {
	return d.dialect
}

// CaseSensitiveAttrs reports whether attribute names compare exactly.
func (d *Document) CaseSensitiveAttrs() bool {
	return d.caseSensitiveAttrs
}

// ParseErrors returns the errors the front end recorded while building the
// document. The tree is still complete for every other node.
func (d *Document) ParseErrors() []error {
	return d.errs
}

// Lines returns the line index of the current source text.
func (d *Document) Lines() *token.LineIndex {
	d.Layout()
	return d.lines
}

// Walk visits every node in pre-order. Returning SkipChildren skips the
// node's subtree; any other error stops the walk and is returned.
func (d *Document) Walk(fn func(Node) error) error {
	err := d.walk(d.root, fn)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

func (d *Document) walk(id NodeID, fn func(Node) error) error {
	if err := fn(Node{doc: d, id: id}); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for _, c := range d.nodes.get(uint32(id)).children {
		if err := d.walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Elements returns all elements in document order.
func (d *Document) Elements() []Node {
	var out []Node
	_ = d.Walk(func(n Node) error {
		if n.Type() == ElementNode {
			out = append(out, n)
		}
		return nil
	})
	return out
}

// Serialize regenerates the source text from the tree.
func (d *Document) Serialize() string {
	var sb strings.Builder
	sb.Grow(len(d.lines.Source()))
	d.serialize(&sb, d.root)
	return sb.String()
}

func (d *Document) serialize(sb *strings.Builder, id NodeID) {
	n := d.nodes.get(uint32(id))
	sb.WriteString(n.loc.Raw)
	for _, c := range n.children {
		d.serialize(sb, c)
	}
	sb.WriteString(n.endLoc.Raw)
}

// String implements fmt.Stringer.
func (d *Document) String() string {
	return d.Serialize()
}
