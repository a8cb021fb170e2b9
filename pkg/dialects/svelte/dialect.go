package svelte

import (
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/dialect"
)

// Svelte is the Svelte dialect.
var Svelte = dialect.New(Config).
	Extends(dialect.HTML).
	ClassifyAttrs(classify).
	Build()

func init() {
	dialect.Register(Svelte)
}

// classify handles the {name} shorthand and {...spread} attributes on top
// of the prefix directives.
func classify(name, value, _ string) dialect.AttrKind {
	if strings.HasPrefix(name, "{") {
		return dialect.AttrKind{Directive: true, Dynamic: true}
	}
	for _, p := range Config.Directives {
		if strings.HasPrefix(name, p) {
			return dialect.AttrKind{Directive: true}
		}
	}
	return dialect.AttrKind{Dynamic: strings.Contains(value, "{") && strings.Contains(value, "}")}
}
