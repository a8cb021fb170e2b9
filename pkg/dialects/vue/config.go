// Package vue provides the Vue single-file component dialect.
package vue

import "github.com/leapstack-labs/leapmark/pkg/core"

// Config is the Vue dialect configuration.
var Config = &core.DialectConfig{
	Name:               "vue",
	Extensions:         []string{".vue"},
	CaseSensitiveAttrs: true,
	SelfClosingTags:    true,
	Components:         core.ComponentsPascalCase,
	Expressions:        []core.Delimiters{{Open: "{{", Close: "}}"}},
	Root:               "template",
	// v-bind:foo and :foo bind foo
	Bindings:   []string{"v-bind:", ":"},
	Directives: []string{"v-", "@", "#"},
}
