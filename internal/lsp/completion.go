package lsp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/dom"
	"github.com/leapstack-labs/leapmark/pkg/spec"
)

// CompletionContextType describes where in the markup the cursor is.
type CompletionContextType int

// Completion context type constants.
const (
	ContextText      CompletionContextType = iota
	ContextTagName                         // After "<" or "</"
	ContextAttrName                        // Inside a start tag, between attributes
	ContextAttrValue                       // Inside a quoted attribute value
)

// completionContext is the result of looking at the text before the cursor.
type completionContext struct {
	Kind   CompletionContextType
	Tag    string
	Attr   string
	Prefix string
	// Attrs holds the attributes already written in the tag.
	Attrs map[string]string
}

var (
	tagNamePattern  = regexp.MustCompile(`^/?([A-Za-z][\w:-]*)?$`)
	tagStartPattern = regexp.MustCompile(`^([A-Za-z][\w:-]*)`)
	openValue       = regexp.MustCompile(`([^\s"'<>/=]+)\s*=\s*(["'])([^"']*)$`)
	writtenAttr     = regexp.MustCompile(`([^\s"'<>/=]+)(?:\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+)))?`)
)

// detectContext classifies the cursor position from the text before it.
func detectContext(before string) completionContext {
	open := strings.LastIndexByte(before, '<')
	if open < 0 || strings.LastIndexByte(before, '>') > open {
		return completionContext{Kind: ContextText}
	}
	inTag := before[open+1:]

	if m := tagNamePattern.FindStringSubmatch(inTag); m != nil {
		return completionContext{Kind: ContextTagName, Prefix: m[1]}
	}
	if strings.HasPrefix(inTag, "/") || strings.HasPrefix(inTag, "!") {
		return completionContext{Kind: ContextText}
	}

	tag := tagStartPattern.FindString(inTag)
	if tag == "" {
		return completionContext{Kind: ContextText}
	}
	rest := inTag[len(tag):]

	if m := openValue.FindStringSubmatchIndex(rest); m != nil {
		return completionContext{
			Kind:   ContextAttrValue,
			Tag:    tag,
			Attr:   rest[m[2]:m[3]],
			Prefix: rest[m[6]:m[7]],
			Attrs:  parseWrittenAttrs(rest[:m[0]]),
		}
	}

	prefix := rest[len(strings.TrimRightFunc(rest, func(r rune) bool {
		return r < 0x80 && isWordChar(byte(r))
	})):]
	return completionContext{
		Kind:   ContextAttrName,
		Tag:    tag,
		Prefix: prefix,
		Attrs:  parseWrittenAttrs(rest[:len(rest)-len(prefix)]),
	}
}

func parseWrittenAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range writtenAttr.FindAllStringSubmatch(s, -1) {
		attrs[strings.ToLower(m[1])] = m[2] + m[3] + m[4]
	}
	return attrs
}

// getCompletions returns completion items for the given position.
func (s *Server) getCompletions(params CompletionParams) []CompletionItem {
	items := []CompletionItem{}

	doc := s.documents.Get(params.TextDocument.URI)
	ws := s.currentWorkspace()
	if doc == nil || ws == nil || ws.Spec == nil {
		return items
	}

	cc := detectContext(doc.GetTextBefore(params.Position))
	switch cc.Kind {
	case ContextTagName:
		items = elementCompletions(ws.Spec, cc.Prefix)
	case ContextAttrName:
		items = attributeCompletions(ws.Spec, ws.ariaVersion(), cc)
	case ContextAttrValue:
		items = valueCompletions(ws.Spec, ws.ariaVersion(), cc)
	case ContextText:
	}
	return items
}

func elementCompletions(store *spec.Store, prefix string) []CompletionItem {
	var items []CompletionItem
	for _, name := range store.ElementNames() {
		if !hasPrefixFold(name, prefix) {
			continue
		}
		item := CompletionItem{Label: name, Kind: CompletionItemKindClass}
		if el, _, ok := lookupElement(store, name); ok {
			item.Detail = "<" + el.Name + ">"
			if el.Void {
				item.Detail += " (void)"
			}
		}
		items = append(items, item)
	}
	return items
}

func attributeCompletions(store *spec.Store, version string, cc completionContext) []CompletionItem {
	var items []CompletionItem
	seen := make(map[string]bool)
	add := func(item CompletionItem) {
		key := strings.ToLower(item.Label)
		if seen[key] || !hasPrefixFold(item.Label, cc.Prefix) {
			return
		}
		if _, written := cc.Attrs[key]; written {
			return
		}
		seen[key] = true
		item.SortText = fmt.Sprintf("%04d", len(items))
		items = append(items, item)
	}

	specs := attrSpecs(store, cc.Tag, cc.Attrs)
	if specs == nil {
		// Custom elements accept the global attributes.
		specs = store.GlobalAttributes()
	}
	for _, a := range specs {
		if a.IsPattern() {
			continue
		}
		add(CompletionItem{
			Label:         a.Name,
			Kind:          CompletionItemKindProperty,
			Detail:        a.TypeName(),
			Documentation: a.Description,
			Deprecated:    a.Deprecated,
		})
	}
	for _, name := range ariaPropsFor(store, version, cc.Attrs["role"]) {
		p, _ := store.AriaProp(name, version)
		add(CompletionItem{
			Label:      name,
			Kind:       CompletionItemKindProperty,
			Detail:     string(p.Type),
			Deprecated: p.Deprecated,
		})
	}
	return items
}

// ariaPropsFor lists the global ARIA properties followed by those of the
// first valid role in roleAttr.
func ariaPropsFor(store *spec.Store, version, roleAttr string) []string {
	props := store.GlobalAriaProps(version)
	for _, name := range strings.Fields(roleAttr) {
		if r, ok := store.Role(name, version); ok {
			props = append(props, r.Required...)
			props = append(props, r.Props...)
			break
		}
	}
	return props
}

func valueCompletions(store *spec.Store, version string, cc completionContext) []CompletionItem {
	attr := strings.ToLower(cc.Attr)

	var (
		values []string
		kind   = CompletionItemKindEnumMember
		prefix = cc.Prefix
	)
	switch {
	case attr == "role":
		// role is a token list; complete the last token.
		if i := strings.LastIndexAny(prefix, " \t\n"); i >= 0 {
			prefix = prefix[i+1:]
		}
		values = store.RoleNames(version)
		kind = CompletionItemKindValue
	case strings.HasPrefix(attr, "aria-"):
		if p, ok := store.AriaProp(attr, version); ok {
			values = ariaValues(p)
		}
	default:
		if a, ok := spec.FindAttr(attrSpecs(store, cc.Tag, cc.Attrs), attr); ok {
			values = a.Enum
		}
	}

	var items []CompletionItem
	for _, v := range values {
		if v == "" || !hasPrefixFold(v, prefix) {
			continue
		}
		items = append(items, CompletionItem{Label: v, Kind: kind})
	}
	return items
}

// ariaValues returns the values a property accepts when they form a
// closed set.
func ariaValues(p spec.AriaProp) []string {
	switch p.Type {
	case spec.PropTrueFalse:
		return []string{"true", "false"}
	case spec.PropTristate:
		return []string{"true", "false", "mixed"}
	case spec.PropTrueFalseUndefined:
		return []string{"true", "false", "undefined"}
	case spec.PropToken, spec.PropTokenList:
		return p.Enum
	default:
		return nil
	}
}

// attrSpecs returns the attribute specs of tag given the attributes
// already written, or nil when the element is unknown.
func attrSpecs(store *spec.Store, tag string, attrs map[string]string) []spec.AttrSpec {
	el, ns, ok := lookupElement(store, tag)
	if !ok {
		return nil
	}
	return store.AttrSpecs(el.Name, ns, func(name string) (string, bool) {
		v, ok := attrs[strings.ToLower(name)]
		return v, ok
	})
}

// lookupElement finds an element in the HTML namespace first, then SVG
// and MathML.
func lookupElement(store *spec.Store, name string) (*spec.ElementSpec, dom.Namespace, bool) {
	for _, ns := range []dom.Namespace{dom.NamespaceHTML, dom.NamespaceSVG, dom.NamespaceMathML} {
		if el, ok := store.Element(name, ns); ok {
			return el, ns, true
		}
	}
	return nil, dom.NamespaceHTML, false
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// getHover returns hover information for the position.
func (s *Server) getHover(params HoverParams) *Hover {
	doc := s.documents.Get(params.TextDocument.URI)
	ws := s.currentWorkspace()
	if doc == nil || ws == nil || ws.Spec == nil {
		return nil
	}

	word, rng := doc.GetWordAtPosition(params.Position)
	if word == "" {
		return nil
	}

	// Classify the word by the text up to its start.
	cc := detectContext(doc.GetTextBefore(rng.Start))
	var content string
	switch cc.Kind {
	case ContextTagName:
		content = elementHover(ws.Spec, word)
	case ContextAttrName:
		content = attributeHover(ws.Spec, ws.ariaVersion(), cc.Tag, word, cc.Attrs)
	case ContextAttrValue:
		if strings.EqualFold(cc.Attr, "role") {
			content = roleHover(ws.Spec, ws.ariaVersion(), word)
		}
	case ContextText:
	}
	if content == "" {
		return nil
	}
	return &Hover{
		Contents: MarkupContent{
			Kind:  MarkupKindMarkdown,
			Value: content,
		},
		Range: &rng,
	}
}

func elementHover(store *spec.Store, name string) string {
	el, ns, ok := lookupElement(store, name)
	if !ok {
		if strings.Contains(name, "-") {
			return fmt.Sprintf("**<%s>**\n\nCustom element", name)
		}
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**<%s>** (%s)", el.Name, ns)
	if el.Void {
		b.WriteString("\n\nVoid element: it has no end tag and no content.")
	}
	if len(el.Attributes) > 0 {
		names := make([]string, 0, len(el.Attributes))
		for _, a := range el.Attributes {
			names = append(names, "`"+a.Name+"`")
		}
		b.WriteString("\n\nAttributes: " + strings.Join(names, ", "))
	}
	return b.String()
}

func attributeHover(store *spec.Store, version, tag, name string, attrs map[string]string) string {
	if strings.HasPrefix(strings.ToLower(name), "aria-") {
		p, ok := store.AriaProp(name, version)
		if !ok {
			return ""
		}
		var b strings.Builder
		fmt.Fprintf(&b, "**%s** (%s)\n\nWAI-ARIA %s", p.Name, p.Type, version)
		if p.Global {
			b.WriteString(", global")
		}
		if values := ariaValues(p); len(values) > 0 {
			b.WriteString("\n\nValues: " + strings.Join(values, " | "))
		}
		if p.Deprecated {
			b.WriteString("\n\n*Deprecated*")
		}
		return b.String()
	}

	specs := attrSpecs(store, tag, attrs)
	if specs == nil {
		specs = store.GlobalAttributes()
	}
	a, ok := spec.FindAttr(specs, name)
	if !ok {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** on `<%s>`\n\nType: `%s`", name, tag, a.TypeName())
	if a.Description != "" {
		b.WriteString("\n\n" + a.Description)
	}
	if a.Required {
		b.WriteString("\n\n*Required*")
	}
	if a.Deprecated {
		b.WriteString("\n\n*Deprecated*")
	}
	return b.String()
}

func roleHover(store *spec.Store, version, name string) string {
	r, ok := store.Role(name, version)
	if !ok {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** role (WAI-ARIA %s)", r.Name, version)
	if len(r.Required) > 0 {
		b.WriteString("\n\nRequired: " + strings.Join(r.Required, ", "))
	}
	if r.Deprecated {
		b.WriteString("\n\n*Deprecated*")
	}
	return b.String()
}
