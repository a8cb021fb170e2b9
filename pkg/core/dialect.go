package core

// DialectConfig holds the static configuration for a markup dialect.
// This is pure data, no hook functions.
//
// The runtime behavior (attribute classification, component detection)
// lives in pkg/dialect.Dialect, which embeds this config.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "html", "vue")
	Name string

	// Extensions are the file extensions handled by the dialect, with the
	// leading dot.
	Extensions []string

	// CaseSensitiveAttrs keeps attribute names as written when comparing
	// them (duplication, lookup).
	CaseSensitiveAttrs bool

	// SelfClosingTags makes "<div />" close a non-void element.
	SelfClosingTags bool

	// Components selects how component names are told apart from elements.
	Components ComponentNaming

	// Expressions are the delimiters of template expressions. Their content
	// is opaque to the tokenizer.
	Expressions []Delimiters

	// Root names the top-level element that holds the markup (Vue's
	// <template>). Other top-level blocks become raw text. Empty means the
	// whole document is markup.
	Root string

	// Directives are attribute name prefixes that are framework directives
	// rather than HTML attributes.
	Directives []string

	// Bindings map attribute name prefixes to a dynamic binding of the
	// attribute named by the remainder (":" for "v-bind:").
	Bindings []string
}

// Delimiters open and close a template expression.
type Delimiters struct {
	Open  string
	Close string
}

// ComponentNaming defines how a dialect recognizes component tags.
type ComponentNaming int

const (
	// ComponentsNone treats every tag as an element.
	ComponentsNone ComponentNaming = iota
	// ComponentsPascalCase treats tags starting with an upper-case letter as components.
	ComponentsPascalCase
	// ComponentsPascalOrDotted also accepts "ns.Comp" member tags (Svelte).
	ComponentsPascalOrDotted
)
