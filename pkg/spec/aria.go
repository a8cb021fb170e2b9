package spec

import (
	"encoding/json"
	"fmt"
	"maps"
	"regexp"
	"slices"
)

// PermittedRoles lists the explicit roles an element may take.
type PermittedRoles struct {
	Any   bool
	Roles []string
}

// Allows reports whether role may be set explicitly.
func (p PermittedRoles) Allows(role string) bool {
	return p.Any || slices.Contains(p.Roles, role)
}

// None reports whether no explicit role is allowed at all.
func (p PermittedRoles) None() bool { return !p.Any && len(p.Roles) == 0 }

// UnmarshalJSON accepts true, false or a role list.
func (p *PermittedRoles) UnmarshalJSON(b []byte) error {
	var flag bool
	if err := json.Unmarshal(b, &flag); err == nil {
		*p = PermittedRoles{Any: flag}
		return nil
	}
	var roles []string
	if err := json.Unmarshal(b, &roles); err != nil {
		return fmt.Errorf("permittedRoles: %w", err)
	}
	*p = PermittedRoles{Roles: roles}
	return nil
}

// RestrictionKind says how strongly a property is discouraged.
type RestrictionKind string

// Restriction kinds.
const (
	MustNot    RestrictionKind = "must-not"
	ShouldNot  RestrictionKind = "should-not"
	Deprecated RestrictionKind = "deprecated"
)

// PropertyRestriction forbids an aria-* property (optionally only with a
// given value) and may suggest a native alternative.
type PropertyRestriction struct {
	Type  RestrictionKind `json:"type"`
	Name  string          `json:"name"`
	Value string          `json:"value,omitempty"`
	Alt   *struct {
		Method string `json:"method"`
		Target string `json:"target"`
	} `json:"alt,omitempty"`
}

// PropertyPolicy describes which aria-* attributes an element accepts.
type PropertyPolicy struct {
	// Forbidden is set when the element accepts neither a role nor any
	// aria-* attribute.
	Forbidden bool
	Global    bool
	Role      bool
	Only      []string
	Without   []PropertyRestriction
}

// UnmarshalJSON accepts false or a policy object.
func (p *PropertyPolicy) UnmarshalJSON(b []byte) error {
	var flag bool
	if err := json.Unmarshal(b, &flag); err == nil {
		if flag {
			*p = defaultPolicy()
		} else {
			*p = PropertyPolicy{Forbidden: true}
		}
		return nil
	}
	var raw struct {
		Global  *bool                 `json:"global"`
		Role    *bool                 `json:"role"`
		Only    []string              `json:"only"`
		Without []PropertyRestriction `json:"without"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("properties: %w", err)
	}
	*p = PropertyPolicy{Only: raw.Only, Without: raw.Without}
	// "only" narrows the set; without it global and role props are in.
	if raw.Only == nil {
		p.Global, p.Role = true, true
	}
	if raw.Global != nil {
		p.Global = *raw.Global
	}
	if raw.Role != nil {
		p.Role = *raw.Role
	}
	return nil
}

func defaultPolicy() PropertyPolicy { return PropertyPolicy{Global: true, Role: true} }

// Restriction returns the restriction for a property/value pair.
func (p PropertyPolicy) Restriction(name, value string) (PropertyRestriction, bool) {
	for _, r := range p.Without {
		if r.Name != name {
			continue
		}
		if r.Value == "" || r.Value == value {
			return r, true
		}
	}
	return PropertyRestriction{}, false
}

// AriaEntry is the ARIA constraint record of an element after version
// overlays and attribute conditions have been applied.
type AriaEntry struct {
	ImplicitRole       string // empty when the element has no corresponding role
	PermittedRoles     PermittedRoles
	NamingProhibited   bool
	ImplicitProperties map[string]string
	Properties         PropertyPolicy
}

// roleRef decodes an implicit role that may be false.
type roleRef string

func (r *roleRef) UnmarshalJSON(b []byte) error {
	var flag bool
	if err := json.Unmarshal(b, &flag); err == nil {
		if flag {
			return fmt.Errorf("implicitRole: true is not a role")
		}
		*r = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("implicitRole: %w", err)
	}
	*r = roleRef(s)
	return nil
}

// ariaFields holds the overridable fields. A nil pointer means the field is
// not set at this layer.
type ariaFields struct {
	ImplicitRole       *roleRef          `json:"implicitRole"`
	PermittedRoles     *PermittedRoles   `json:"permittedRoles"`
	NamingProhibited   *bool             `json:"namingProhibited"`
	ImplicitProperties map[string]string `json:"implicitProperties"`
	Properties         *PropertyPolicy   `json:"properties"`
}

// overlay copies every field set in o onto f.
func (f ariaFields) overlay(o ariaFields) ariaFields {
	if o.ImplicitRole != nil {
		f.ImplicitRole = o.ImplicitRole
	}
	if o.PermittedRoles != nil {
		f.PermittedRoles = o.PermittedRoles
	}
	if o.NamingProhibited != nil {
		f.NamingProhibited = o.NamingProhibited
	}
	if o.ImplicitProperties != nil {
		merged := maps.Clone(f.ImplicitProperties)
		if merged == nil {
			merged = make(map[string]string, len(o.ImplicitProperties))
		}
		maps.Copy(merged, o.ImplicitProperties)
		f.ImplicitProperties = merged
	}
	if o.Properties != nil {
		f.Properties = o.Properties
	}
	return f
}

type ariaCondition struct {
	Selector string `json:"selector"`
	ariaFields
}

type ariaLayer struct {
	ariaFields
	Conditions []ariaCondition `json:"conditions"`
}

// ariaRecord is the stored form: a base layer plus per-version overlays.
type ariaRecord struct {
	ariaLayer
	versions map[string]ariaLayer
}

var versionKey = regexp.MustCompile(`^[0-9]+\.[0-9]+$`)

func (r *ariaRecord) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	base := make(map[string]json.RawMessage, len(fields))
	r.versions = nil
	for k, v := range fields {
		if !versionKey.MatchString(k) {
			base[k] = v
			continue
		}
		var layer ariaLayer
		if err := json.Unmarshal(v, &layer); err != nil {
			return fmt.Errorf("aria %s: %w", k, err)
		}
		if r.versions == nil {
			r.versions = make(map[string]ariaLayer)
		}
		r.versions[k] = layer
	}
	b, err := json.Marshal(base)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, &r.ariaLayer)
}

// layer returns the record as seen by one ARIA version: the base layer with
// the exact-version overlay applied field by field. Conditions with the same
// selector are merged, overlay fields winning; new selectors are appended.
func (r *ariaRecord) layer(version string) ariaLayer {
	out := ariaLayer{
		ariaFields: r.ariaFields,
		Conditions: slices.Clone(r.Conditions),
	}
	o, ok := r.versions[version]
	if !ok {
		return out
	}
	out.ariaFields = out.ariaFields.overlay(o.ariaFields)
	for _, oc := range o.Conditions {
		i := slices.IndexFunc(out.Conditions, func(c ariaCondition) bool { return c.Selector == oc.Selector })
		if i < 0 {
			out.Conditions = append(out.Conditions, oc)
			continue
		}
		out.Conditions[i].ariaFields = out.Conditions[i].ariaFields.overlay(oc.ariaFields)
	}
	return out
}

// MatchFunc reports whether the element under test matches a selector.
type MatchFunc func(selector string) (bool, error)

func (r *ariaRecord) resolve(version string, match MatchFunc) (AriaEntry, error) {
	l := r.layer(version)
	fields := l.ariaFields
	for _, c := range l.Conditions {
		ok, err := match(c.Selector)
		if err != nil {
			return AriaEntry{}, fmt.Errorf("aria condition %q: %w", c.Selector, err)
		}
		if ok {
			fields = fields.overlay(c.ariaFields)
		}
	}

	entry := AriaEntry{
		PermittedRoles:     PermittedRoles{Any: true},
		Properties:         defaultPolicy(),
		ImplicitProperties: fields.ImplicitProperties,
	}
	if fields.ImplicitRole != nil {
		entry.ImplicitRole = string(*fields.ImplicitRole)
	}
	if fields.PermittedRoles != nil {
		entry.PermittedRoles = *fields.PermittedRoles
	}
	if fields.NamingProhibited != nil {
		entry.NamingProhibited = *fields.NamingProhibited
	}
	if fields.Properties != nil {
		entry.Properties = *fields.Properties
	}
	return entry, nil
}

// PropType is the value grammar of an aria-* property.
type PropType string

// ARIA property value types.
const (
	PropTrueFalse          PropType = "true/false"
	PropTristate           PropType = "tristate"
	PropTrueFalseUndefined PropType = "true/false/undefined"
	PropIDRef              PropType = "ID reference"
	PropIDRefList          PropType = "ID reference list"
	PropInteger            PropType = "integer"
	PropNumber             PropType = "number"
	PropString             PropType = "string"
	PropToken              PropType = "token"
	PropTokenList          PropType = "token list"
)

// AriaProp is an aria-* property definition for one ARIA version.
type AriaProp struct {
	Name       string
	Type       PropType
	Enum       []string
	Global     bool
	Deprecated bool
}

// Role is a WAI-ARIA role definition for one ARIA version.
type Role struct {
	Name       string
	Props      []string
	Required   []string
	Prohibited []string
	Abstract   bool
	Deprecated bool
}

// Permits reports whether the role supports the property, either as its own
// or as a required one.
func (r Role) Permits(prop string) bool {
	return slices.Contains(r.Props, prop) || slices.Contains(r.Required, prop)
}

// versionPatch is a per-version change to a role or property.
type versionPatch struct {
	Exists     *bool    `json:"exists"`
	Global     *bool    `json:"global"`
	Deprecated *bool    `json:"deprecated"`
	Required   []string `json:"required"`
	Props      []string `json:"props"`
}

func splitVersions(b []byte) (map[string]json.RawMessage, map[string]versionPatch, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, nil, err
	}
	patches := map[string]versionPatch{}
	for k, v := range fields {
		if !versionKey.MatchString(k) {
			continue
		}
		var p versionPatch
		if err := json.Unmarshal(v, &p); err != nil {
			return nil, nil, fmt.Errorf("version %s: %w", k, err)
		}
		patches[k] = p
		delete(fields, k)
	}
	return fields, patches, nil
}

type roleRecord struct {
	Role
	patches map[string]versionPatch
}

func (r *roleRecord) UnmarshalJSON(b []byte) error {
	fields, patches, err := splitVersions(b)
	if err != nil {
		return err
	}
	var raw struct {
		Name       string   `json:"name"`
		Props      []string `json:"props"`
		Required   []string `json:"required"`
		Prohibited []string `json:"prohibited"`
		Abstract   bool     `json:"abstract"`
		Deprecated bool     `json:"deprecated"`
	}
	if err := remarshal(fields, &raw); err != nil {
		return err
	}
	r.Role = Role(raw)
	r.patches = patches
	return nil
}

func (r *roleRecord) at(version string) (Role, bool) {
	role := r.Role
	p, ok := r.patches[version]
	if !ok {
		return role, true
	}
	if p.Exists != nil && !*p.Exists {
		return Role{}, false
	}
	if p.Deprecated != nil {
		role.Deprecated = *p.Deprecated
	}
	if p.Required != nil {
		role.Required = p.Required
	}
	if p.Props != nil {
		role.Props = p.Props
	}
	return role, true
}

type propRecord struct {
	AriaProp
	patches map[string]versionPatch
}

func (r *propRecord) UnmarshalJSON(b []byte) error {
	fields, patches, err := splitVersions(b)
	if err != nil {
		return err
	}
	var raw struct {
		Name       string   `json:"name"`
		Type       PropType `json:"type"`
		Enum       []string `json:"enum"`
		Global     bool     `json:"global"`
		Deprecated bool     `json:"deprecated"`
	}
	if err := remarshal(fields, &raw); err != nil {
		return err
	}
	r.AriaProp = AriaProp(raw)
	r.patches = patches
	return nil
}

func (r *propRecord) at(version string) (AriaProp, bool) {
	prop := r.AriaProp
	p, ok := r.patches[version]
	if !ok {
		return prop, true
	}
	if p.Exists != nil && !*p.Exists {
		return AriaProp{}, false
	}
	if p.Global != nil {
		prop.Global = *p.Global
	}
	if p.Deprecated != nil {
		prop.Deprecated = *p.Deprecated
	}
	return prop, true
}

func remarshal(fields map[string]json.RawMessage, v any) error {
	b, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
