// Package spec holds the read-only specification data the linter checks
// documents against: permitted attributes per element with their value
// types, WAI-ARIA roles and properties per ARIA version, and the IDL to
// content attribute name table.
//
// A Store is built once and shared. It is safe for concurrent use.
package spec

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/leapstack-labs/leapmark/pkg/dom"
)

//go:embed data/*.json
var dataFS embed.FS

const schemaBase = "https://leapmark.dev/schema/"

// LoadError reports specification data that failed to decode or validate.
type LoadError struct {
	File   string
	Causes []string
	Err    error
}

func (e *LoadError) Error() string {
	if len(e.Causes) == 0 {
		return fmt.Sprintf("spec %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("spec %s: %v: %s", e.File, e.Err, strings.Join(e.Causes, "; "))
}

func (e *LoadError) Unwrap() error { return e.Err }

// ErrUnknownVersion is returned for an ARIA version the data does not cover.
var ErrUnknownVersion = errors.New("unknown ARIA version")

type elementKey struct {
	name string
	ns   dom.Namespace
}

// Store is the immutable specification store.
type Store struct {
	globals  []AttrSpec
	elements map[elementKey]*ElementSpec
	names    []string

	defaultVersion string
	versions       []string
	roles          map[string]*roleRecord
	props          map[string]*propRecord
	propOrder      []string
}

type htmlData struct {
	GlobalAttributes []AttrSpec    `json:"globalAttributes"`
	Elements         []ElementSpec `json:"elements"`
}

type ariaData struct {
	DefaultVersion string       `json:"defaultVersion"`
	Versions       []string     `json:"versions"`
	Roles          []roleRecord `json:"roles"`
	Props          []propRecord `json:"props"`
}

var defaultStore = sync.OnceValues(Load)

// Default returns the store built from the embedded data, loading it on
// first use.
func Default() (*Store, error) { return defaultStore() }

// Load builds a Store from the embedded data files, validating each one
// against its schema first.
func Load() (*Store, error) {
	htmlJSON, err := dataFS.ReadFile("data/html.json")
	if err != nil {
		return nil, err
	}
	ariaJSON, err := dataFS.ReadFile("data/aria.json")
	if err != nil {
		return nil, err
	}
	return LoadFrom(htmlJSON, ariaJSON)
}

// LoadFrom builds a Store from raw html and aria documents.
func LoadFrom(htmlJSON, ariaJSON []byte) (*Store, error) {
	if err := validate("html.json", "html.schema.json", htmlJSON); err != nil {
		return nil, err
	}
	if err := validate("aria.json", "aria.schema.json", ariaJSON); err != nil {
		return nil, err
	}

	var h htmlData
	if err := json.Unmarshal(htmlJSON, &h); err != nil {
		return nil, &LoadError{File: "html.json", Err: err}
	}
	var a ariaData
	if err := json.Unmarshal(ariaJSON, &a); err != nil {
		return nil, &LoadError{File: "aria.json", Err: err}
	}

	s := &Store{
		globals:        h.GlobalAttributes,
		elements:       make(map[elementKey]*ElementSpec, len(h.Elements)),
		defaultVersion: a.DefaultVersion,
		versions:       a.Versions,
		roles:          make(map[string]*roleRecord, len(a.Roles)),
		props:          make(map[string]*propRecord, len(a.Props)),
	}
	if !slices.Contains(s.versions, s.defaultVersion) {
		return nil, &LoadError{File: "aria.json", Err: fmt.Errorf("%w: default %q", ErrUnknownVersion, s.defaultVersion)}
	}
	for i := range h.Elements {
		el := &h.Elements[i]
		key := elementKey{name: strings.ToLower(el.Name), ns: namespaceOf(el.Namespace)}
		if _, dup := s.elements[key]; dup {
			return nil, &LoadError{File: "html.json", Err: fmt.Errorf("duplicate element %s:%s", key.ns, key.name)}
		}
		s.elements[key] = el
		s.names = append(s.names, key.name)
	}
	slices.Sort(s.names)
	s.names = slices.Compact(s.names)
	for i := range a.Roles {
		s.roles[a.Roles[i].Name] = &a.Roles[i]
	}
	for i := range a.Props {
		s.props[a.Props[i].Name] = &a.Props[i]
		s.propOrder = append(s.propOrder, a.Props[i].Name)
	}
	return s, nil
}

func validate(file, schemaFile string, data []byte) error {
	schemaJSON, err := dataFS.ReadFile("data/" + schemaFile)
	if err != nil {
		return &LoadError{File: file, Err: err}
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaBase+schemaFile, bytes.NewReader(schemaJSON)); err != nil {
		return &LoadError{File: schemaFile, Err: err}
	}
	schema, err := compiler.Compile(schemaBase + schemaFile)
	if err != nil {
		return &LoadError{File: schemaFile, Err: fmt.Errorf("compile schema: %w", err)}
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &LoadError{File: file, Err: err}
	}
	if err := schema.Validate(doc); err != nil {
		le := &LoadError{File: file, Err: errors.New("schema validation failed")}
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			collectCauses(ve, &le.Causes)
		} else {
			le.Err = err
		}
		return le
	}
	return nil
}

func collectCauses(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		*out = append(*out, ve.InstanceLocation+": "+ve.Message)
		return
	}
	for _, c := range ve.Causes {
		collectCauses(c, out)
	}
}

func namespaceOf(s string) dom.Namespace {
	switch s {
	case "svg":
		return dom.NamespaceSVG
	case "math":
		return dom.NamespaceMathML
	default:
		return dom.NamespaceHTML
	}
}

// Element returns the spec of an element by name, ignoring case.
func (s *Store) Element(name string, ns dom.Namespace) (*ElementSpec, bool) {
	el, ok := s.elements[elementKey{name: strings.ToLower(name), ns: ns}]
	return el, ok
}

// IsKnownElement implements dom.Classifier.
func (s *Store) IsKnownElement(name string, ns dom.Namespace) bool {
	_, ok := s.Element(name, ns)
	return ok
}

// ElementNames returns every known element name, sorted.
func (s *Store) ElementNames() []string { return slices.Clone(s.names) }

// GlobalAttributes returns the attributes every HTML element accepts.
func (s *Store) GlobalAttributes() []AttrSpec { return slices.Clone(s.globals) }

// AttrSpecs returns the attribute specs that apply to an element given its
// other attributes. The element's own entries come first, followed by the
// global attributes it does not override. It returns nil for unknown
// elements.
func (s *Store) AttrSpecs(name string, ns dom.Namespace, lookup func(attr string) (string, bool)) []AttrSpec {
	el, ok := s.Element(name, ns)
	if !ok {
		return nil
	}
	specs := make([]AttrSpec, 0, len(el.Attributes)+len(s.globals))
	for _, a := range el.Attributes {
		if a.Condition.Holds(lookup) {
			specs = append(specs, a)
		}
	}
	for _, g := range s.globals {
		if slices.ContainsFunc(el.Attributes, func(a AttrSpec) bool { return strings.EqualFold(a.Name, g.Name) }) {
			continue
		}
		specs = append(specs, g)
	}
	return specs
}

// AttrSpecsOf is AttrSpecs for an element node.
func (s *Store) AttrSpecsOf(el dom.Node) []AttrSpec {
	return s.AttrSpecs(el.TagNameNormalized(), el.Namespace(), func(attr string) (string, bool) {
		for _, a := range el.Attributes() {
			if strings.EqualFold(a.PotentialName(), attr) {
				return a.ValueRaw(), true
			}
		}
		return "", false
	})
}

// AriaVersions lists the supported ARIA versions.
func (s *Store) AriaVersions() []string { return slices.Clone(s.versions) }

// DefaultAriaVersion is the version used when none is configured.
func (s *Store) DefaultAriaVersion() string { return s.defaultVersion }

func (s *Store) version(v string) (string, error) {
	if v == "" {
		return s.defaultVersion, nil
	}
	if !slices.Contains(s.versions, v) {
		return "", fmt.Errorf("%w: %q", ErrUnknownVersion, v)
	}
	return v, nil
}

// Aria resolves the ARIA entry of an element for an ARIA version. The base
// record is layered with the exact-version overlay, and then every
// condition whose selector matches is applied in declaration order.
// Unknown elements get the permissive default. The ImplicitProperties map
// of the result must not be modified.
func (s *Store) Aria(name string, ns dom.Namespace, version string, match MatchFunc) (AriaEntry, error) {
	v, err := s.version(version)
	if err != nil {
		return AriaEntry{}, err
	}
	el, ok := s.Element(name, ns)
	if !ok {
		return AriaEntry{PermittedRoles: PermittedRoles{Any: true}, Properties: defaultPolicy()}, nil
	}
	return el.Aria.resolve(v, match)
}

// Role returns a role definition for an ARIA version.
func (s *Store) Role(name, version string) (Role, bool) {
	v, err := s.version(version)
	if err != nil {
		return Role{}, false
	}
	r, ok := s.roles[name]
	if !ok {
		return Role{}, false
	}
	return r.at(v)
}

// RoleNames lists the concrete roles of an ARIA version, sorted.
func (s *Store) RoleNames(version string) []string {
	v, err := s.version(version)
	if err != nil {
		return nil
	}
	var out []string
	for name, r := range s.roles {
		if role, ok := r.at(v); ok && !role.Abstract {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// AriaProp returns a property definition for an ARIA version.
func (s *Store) AriaProp(name, version string) (AriaProp, bool) {
	v, err := s.version(version)
	if err != nil {
		return AriaProp{}, false
	}
	p, ok := s.props[strings.ToLower(name)]
	if !ok {
		return AriaProp{}, false
	}
	return p.at(v)
}

// GlobalAriaProps lists the global properties of an ARIA version.
func (s *Store) GlobalAriaProps(version string) []string {
	v, err := s.version(version)
	if err != nil {
		return nil
	}
	var out []string
	for _, name := range s.propOrder {
		if p, ok := s.props[name].at(v); ok && p.Global {
			out = append(out, name)
		}
	}
	return out
}

// PermittedAriaProps lists the properties an element with role accepts
// under policy. An empty role means the element's implicit semantics only.
func (s *Store) PermittedAriaProps(policy PropertyPolicy, role, version string) []string {
	if policy.Forbidden {
		return nil
	}
	var out []string
	if policy.Only != nil {
		out = append(out, policy.Only...)
	}
	if policy.Global {
		out = append(out, s.GlobalAriaProps(version)...)
	}
	if policy.Role && role != "" {
		if r, ok := s.Role(role, version); ok {
			out = append(out, r.Props...)
			out = append(out, r.Required...)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
