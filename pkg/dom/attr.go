package dom

import (
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/token"
)

// AttrID addresses an attribute inside its Document.
type AttrID uint32

// NoAttrID is the zero handle.
const NoAttrID AttrID = 0

type attr struct {
	owner NodeID

	before   string // whitespace (and stray slashes) preceding the attribute
	nameRaw  string
	equal    string // "=" with any surrounding whitespace; empty without a value
	quote    string // `"`, `'` or empty
	valueRaw string
	hasValue bool

	normalized string
	potential  string
	directive  bool
	dynamic    bool

	loc   token.Location // whole attribute
	name  token.Location
	value token.Location // excludes quotes
}

func (a *attr) raw() string {
	if !a.hasValue {
		return a.nameRaw
	}
	return a.nameRaw + a.equal + a.quote + a.valueRaw + a.quote
}

// Attr is a handle to an attribute stored in a Document.
type Attr struct {
	doc *Document
	id  AttrID
}

// IsZero reports whether a refers to no attribute.
func (a Attr) IsZero() bool { return a.doc == nil || a.id == NoAttrID }

// ID returns the attribute handle.
func (a Attr) ID() AttrID { return a.id }

func (a Attr) data() *attr {
	if a.doc == nil {
		return nil
	}
	a.doc.Layout()
	return a.doc.attrs.get(uint32(a.id))
}

// Owner returns the element carrying the attribute.
func (a Attr) Owner() Node {
	if d := a.data(); d != nil {
		return Node{doc: a.doc, id: d.owner}
	}
	return Node{}
}

// Location returns the whole attribute, name through closing quote.
func (a Attr) Location() token.Location {
	if d := a.data(); d != nil {
		return d.loc
	}
	return token.Location{}
}

// Name returns the location of the attribute name.
func (a Attr) Name() token.Location {
	if d := a.data(); d != nil {
		return d.name
	}
	return token.Location{}
}

// Value returns the location of the value token without its quotes.
func (a Attr) Value() token.Location {
	if d := a.data(); d != nil {
		return d.value
	}
	return token.Location{}
}

// NameRaw returns the name as written.
func (a Attr) NameRaw() string { return a.Name().Raw }

// ValueRaw returns the value as written, without quotes.
func (a Attr) ValueRaw() string { return a.Value().Raw }

// NormalizedName returns the lower-cased name.
func (a Attr) NormalizedName() string {
	if d := a.data(); d != nil {
		return d.normalized
	}
	return ""
}

// PotentialName returns the name the attribute stands for once a template
// dialect's binding syntax is removed, e.g. "href" for ":href".
func (a Attr) PotentialName() string {
	d := a.data()
	if d == nil {
		return ""
	}
	if d.potential != "" {
		return d.potential
	}
	return d.nameRaw
}

// Quote returns the quote character around the value, empty if unquoted.
func (a Attr) Quote() string {
	if d := a.data(); d != nil {
		return d.quote
	}
	return ""
}

// HasValue reports whether the attribute was written with "=".
func (a Attr) HasValue() bool {
	d := a.data()
	return d != nil && d.hasValue
}

// IsDirective reports whether a dialect classified the attribute as
// template syntax rather than markup, e.g. v-if or on:click.
func (a Attr) IsDirective() bool {
	d := a.data()
	return d != nil && d.directive
}

// IsDynamic reports whether the value is a template expression.
func (a Attr) IsDynamic() bool {
	d := a.data()
	return d != nil && d.dynamic
}

// MatchName compares name against the attribute's potential name using the
// document's case sensitivity.
func (a Attr) MatchName(name string) bool {
	if a.doc != nil && a.doc.caseSensitiveAttrs {
		return a.PotentialName() == name
	}
	return strings.EqualFold(a.PotentialName(), name)
}
