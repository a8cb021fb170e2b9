// Package svelte provides the Svelte component dialect.
package svelte

import "github.com/leapstack-labs/leapmark/pkg/core"

// Config is the Svelte dialect configuration.
var Config = &core.DialectConfig{
	Name:            "svelte",
	Extensions:      []string{".svelte"},
	SelfClosingTags: true,
	Components:      core.ComponentsPascalOrDotted,
	Expressions:     []core.Delimiters{{Open: "{", Close: "}"}},
	Directives: []string{
		"on:", "bind:", "class:", "style:", "use:", "transition:",
		"in:", "out:", "animate:", "let:",
	},
}
