package spec

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AttributeType names the value grammar an attribute must satisfy.
type AttributeType string

// Attribute value types known to the type checker.
const (
	TypeString         AttributeType = "String"
	TypeNonEmptyString AttributeType = "NonEmptyString"
	TypeBoolean        AttributeType = "Boolean"
	TypeInt            AttributeType = "Int"
	TypeUint           AttributeType = "Uint"
	TypeFloat          AttributeType = "Float"
	TypeNonZeroUint    AttributeType = "NonZeroUint"
	TypeURL            AttributeType = "URL"
	TypeURLHash        AttributeType = "URLHash"
	TypeURLList        AttributeType = "URLList"
	TypeDateTime       AttributeType = "DateTime"
	TypeDate           AttributeType = "Date"
	TypeColor          AttributeType = "Color"
	TypeMIMEType       AttributeType = "MIMEType"
	TypeBCP47          AttributeType = "BCP47"
	TypeCrossorigin    AttributeType = "Crossorigin"
	TypeReferrerPolicy AttributeType = "ReferrerPolicy"
	TypeTabIndex       AttributeType = "TabIndex"
	TypeColSpan        AttributeType = "ColSpan"
	TypeRowSpan        AttributeType = "RowSpan"
	TypeCoords         AttributeType = "Coords"
	TypeAcceptList     AttributeType = "AcceptList"
	TypeAutoComplete   AttributeType = "AutoComplete"
	TypeDOMID          AttributeType = "DOMID"
	TypeDOMIDList      AttributeType = "DOMIDList"
	TypeItemType       AttributeType = "ItemType"
	TypeLinkType       AttributeType = "LinkType"
	TypeLinkTypeList   AttributeType = "LinkTypeList"
	TypeLinkSizes      AttributeType = "LinkSizes"
	TypeMediaQuery     AttributeType = "MediaQuery"
	TypeMediaQueryList AttributeType = "MediaQueryList"
	TypeSourceSizeList AttributeType = "SourceSizeList"
	TypeSrcSet         AttributeType = "SrcSet"
	TypeTarget         AttributeType = "Target"
	TypeDestination    AttributeType = "Destination"
	TypeFunction       AttributeType = "Function"

	// TypeEnum marks a closed token list carried in AttrSpec.Enum.
	TypeEnum AttributeType = "enum"
)

var knownTypes = map[AttributeType]bool{
	TypeString: true, TypeNonEmptyString: true, TypeBoolean: true, TypeInt: true,
	TypeUint: true, TypeFloat: true, TypeNonZeroUint: true, TypeURL: true,
	TypeURLHash: true, TypeURLList: true, TypeDateTime: true, TypeDate: true,
	TypeColor: true, TypeMIMEType: true, TypeBCP47: true, TypeCrossorigin: true,
	TypeReferrerPolicy: true, TypeTabIndex: true, TypeColSpan: true, TypeRowSpan: true,
	TypeCoords: true, TypeAcceptList: true, TypeAutoComplete: true, TypeDOMID: true,
	TypeDOMIDList: true, TypeItemType: true, TypeLinkType: true, TypeLinkTypeList: true,
	TypeLinkSizes: true, TypeMediaQuery: true, TypeMediaQueryList: true,
	TypeSourceSizeList: true, TypeSrcSet: true, TypeTarget: true, TypeDestination: true,
	TypeFunction: true, TypeEnum: true,
}

// Valid reports whether t is one of the known attribute types.
func (t AttributeType) Valid() bool { return knownTypes[t] }

// ParseAttributeType looks a type up by name, ignoring case.
func ParseAttributeType(name string) (AttributeType, bool) {
	for t := range knownTypes {
		if strings.EqualFold(string(t), name) {
			return t, true
		}
	}
	return "", false
}

// AttrCondition restricts an attribute spec to elements carrying another
// attribute, optionally with one of a set of values.
type AttrCondition struct {
	Attr   string   `json:"attr"`
	Values []string `json:"values,omitempty"`
	// Default is the value assumed when Attr is absent.
	Default string `json:"default,omitempty"`
}

// Holds evaluates the condition. lookup returns the value of an attribute
// on the element under test.
func (c *AttrCondition) Holds(lookup func(name string) (string, bool)) bool {
	if c == nil {
		return true
	}
	v, ok := lookup(c.Attr)
	if !ok {
		if c.Default == "" {
			return false
		}
		v = c.Default
	}
	if len(c.Values) == 0 {
		return true
	}
	v = strings.TrimSpace(v)
	for _, want := range c.Values {
		if strings.EqualFold(want, v) {
			return true
		}
	}
	return false
}

// AttrSpec is one permitted attribute of an element.
type AttrSpec struct {
	Name          string
	Type          AttributeType
	Enum          []string
	Description   string
	Required      bool
	Deprecated    bool
	CaseSensitive bool
	Condition     *AttrCondition
}

type attrSpecJSON struct {
	Name          string          `json:"name"`
	Type          json.RawMessage `json:"type"`
	Description   string          `json:"description"`
	Required      bool            `json:"required"`
	Deprecated    bool            `json:"deprecated"`
	CaseSensitive bool            `json:"caseSensitive"`
	Condition     *AttrCondition  `json:"condition"`
}

// UnmarshalJSON accepts a type given either as a name or as {"enum": [...]}.
func (s *AttrSpec) UnmarshalJSON(b []byte) error {
	var raw attrSpecJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = AttrSpec{
		Name:          raw.Name,
		Description:   raw.Description,
		Required:      raw.Required,
		Deprecated:    raw.Deprecated,
		CaseSensitive: raw.CaseSensitive,
		Condition:     raw.Condition,
	}

	var name string
	if err := json.Unmarshal(raw.Type, &name); err == nil {
		t, ok := ParseAttributeType(name)
		if !ok {
			return fmt.Errorf("attribute %q: unknown type %q", raw.Name, name)
		}
		s.Type = t
		return nil
	}
	var enum struct {
		Enum []string `json:"enum"`
	}
	if err := json.Unmarshal(raw.Type, &enum); err != nil {
		return fmt.Errorf("attribute %q: type must be a name or an enum object: %w", raw.Name, err)
	}
	s.Type = TypeEnum
	s.Enum = enum.Enum
	return nil
}

// IsPattern reports whether the spec covers a family of names such as
// "data-*".
func (s AttrSpec) IsPattern() bool { return strings.HasSuffix(s.Name, "*") }

// Matches reports whether the spec covers the attribute name. Comparison
// ignores case.
func (s AttrSpec) Matches(name string) bool {
	if s.IsPattern() {
		prefix := strings.TrimSuffix(s.Name, "*")
		return len(name) > len(prefix) && strings.EqualFold(name[:len(prefix)], prefix)
	}
	return strings.EqualFold(s.Name, name)
}

// TypeName is the type as shown to users.
func (s AttrSpec) TypeName() string {
	if s.Type == TypeEnum {
		return "enum(" + strings.Join(s.Enum, "|") + ")"
	}
	return string(s.Type)
}

// ElementSpec is the specification record of one element.
type ElementSpec struct {
	Name       string     `json:"name"`
	Namespace  string     `json:"namespace"`
	Void       bool       `json:"void"`
	Attributes []AttrSpec `json:"attributes"`
	Aria       ariaRecord `json:"aria"`
}

// FindAttr returns the first spec in specs covering name. Exact names are
// preferred over patterns.
func FindAttr(specs []AttrSpec, name string) (AttrSpec, bool) {
	var pattern *AttrSpec
	for i := range specs {
		if !specs[i].Matches(name) {
			continue
		}
		if !specs[i].IsPattern() {
			return specs[i], true
		}
		if pattern == nil {
			pattern = &specs[i]
		}
	}
	if pattern != nil {
		return *pattern, true
	}
	return AttrSpec{}, false
}
