package dom

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/token"
)

func (d *Document) attrData(id AttrID) (*attr, *node, error) {
	a := d.attrs.get(uint32(id))
	if a == nil {
		return nil, nil, fmt.Errorf("dom: unknown attribute %d", id)
	}
	return a, d.nodes.get(uint32(a.owner)), nil
}

// SetAttrQuote changes the quote character around an attribute value.
// An attribute without a value gets an empty quoted value.
func (d *Document) SetAttrQuote(id AttrID, quote string) error {
	a, owner, err := d.attrData(id)
	if err != nil {
		return err
	}
	if quote != "" && quote != `"` && quote != `'` {
		return fmt.Errorf("dom: invalid quote %q", quote)
	}
	if !a.hasValue {
		a.hasValue = true
		a.equal = "="
	}
	a.quote = quote
	d.commitStartTag(owner)
	return nil
}

// SetAttrName renames an attribute.
func (d *Document) SetAttrName(id AttrID, name string) error {
	a, owner, err := d.attrData(id)
	if err != nil {
		return err
	}
	a.nameRaw = name
	a.normalized = strings.ToLower(name)
	if a.potential != "" && !a.directive {
		a.potential = ""
	}
	d.commitStartTag(owner)
	return nil
}

// SetAttrValue replaces an attribute value, keeping its quote style.
func (d *Document) SetAttrValue(id AttrID, value string) error {
	a, owner, err := d.attrData(id)
	if err != nil {
		return err
	}
	if !a.hasValue {
		a.hasValue = true
		a.equal = "="
		a.quote = `"`
	}
	a.valueRaw = value
	d.commitStartTag(owner)
	return nil
}

// RemoveAttr deletes an attribute together with its leading whitespace.
func (d *Document) RemoveAttr(id AttrID) error {
	_, owner, err := d.attrData(id)
	if err != nil {
		return err
	}
	kept := owner.attrs[:0]
	for _, aid := range owner.attrs {
		if aid != id {
			kept = append(kept, aid)
		}
	}
	owner.attrs = kept
	d.commitStartTag(owner)
	return nil
}

// RenameElement rewrites the element name in its start and end tags.
func (d *Document) RenameElement(id NodeID, name string) error {
	n := d.nodes.get(uint32(id))
	if n == nil || n.typ != ElementNode {
		return fmt.Errorf("dom: node %d is not an element", id)
	}
	if end := n.endLoc.Raw; len(end) >= 2+len(n.name) && strings.EqualFold(end[2:2+len(n.name)], n.name) {
		n.endLoc.Raw = "</" + name + end[2+len(n.name):]
	}
	n.name = name
	n.normalized = strings.ToLower(name)
	n.tagOpen = "<" + name
	d.commitStartTag(n)
	return nil
}

// SetText replaces the raw text of a text, raw-text or comment node.
func (d *Document) SetText(id NodeID, raw string) error {
	n := d.nodes.get(uint32(id))
	if n == nil {
		return fmt.Errorf("dom: unknown node %d", id)
	}
	switch n.typ {
	case TextNode, RawTextNode, CommentNode:
	default:
		return fmt.Errorf("dom: cannot set text of %s node", n.typ)
	}
	n.loc.Raw = raw
	d.invalidate(n.loc.Offset)
	return nil
}

func (d *Document) commitStartTag(n *node) {
	var sb strings.Builder
	sb.WriteString(n.tagOpen)
	for _, aid := range n.attrs {
		a := d.attrs.get(uint32(aid))
		sb.WriteString(a.before)
		sb.WriteString(a.raw())
	}
	sb.WriteString(n.tagClose)
	n.loc.Raw = sb.String()
	d.invalidate(n.loc.Offset)
}

// invalidate marks tokens from offset on as out of place. Only the lowest
// pending offset is kept.
func (d *Document) invalidate(from int) {
	if !d.stale || from < d.staleFrom {
		d.staleFrom = from
	}
	d.stale = true
}

// Layout recomputes the positions left stale by mutations. Reads through
// Node and Attr do this on demand; callers that hand the document to
// concurrent readers call it once after their last mutation.
func (d *Document) Layout() {
	if !d.stale {
		return
	}
	d.stale = false
	d.relayout(d.staleFrom)
}

// relayout re-indexes the serialized text and recomputes every token that
// starts at or after from. Tokens before from keep their positions.
func (d *Document) relayout(from int) {
	d.lines = token.NewLineIndex(d.Serialize())
	off := 0
	var visit func(id NodeID)
	visit = func(id NodeID) {
		n := d.nodes.get(uint32(id))
		if off >= from && n.typ != DocumentNode {
			n.loc = d.lines.Locate(off, len(n.loc.Raw))
			if n.typ == ElementNode {
				d.layoutAttrs(n)
			}
		}
		off += len(n.loc.Raw)
		for _, c := range n.children {
			visit(c)
		}
		if n.endLoc.Raw != "" {
			if off >= from {
				n.endLoc = d.lines.Locate(off, len(n.endLoc.Raw))
			}
			off += len(n.endLoc.Raw)
		}
	}
	visit(d.root)
}

// layoutAttrs positions an element's attributes relative to its start tag.
func (d *Document) layoutAttrs(n *node) {
	off := n.loc.Offset + len(n.tagOpen)
	for _, aid := range n.attrs {
		a := d.attrs.get(uint32(aid))
		off += len(a.before)
		raw := a.raw()
		a.loc = d.lines.Locate(off, len(raw))
		a.name = d.lines.Locate(off, len(a.nameRaw))
		valueOff := off + len(a.nameRaw)
		if a.hasValue {
			valueOff += len(a.equal) + len(a.quote)
		}
		a.value = d.lines.Locate(valueOff, len(a.valueRaw))
		off += len(raw)
	}
}
