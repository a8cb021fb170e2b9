// Package rules provides the built-in lint rules for leapmark.
//
// Rules are organized by category:
//   - validation: Rules checking markup against the HTML spec data
//   - style: Rules about how markup is written, all fixable
//   - a11y: Rules about WAI-ARIA usage
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/leapmark/pkg/lint/rules"
//
// Individual rule categories can also be imported:
//
//	import _ "github.com/leapstack-labs/leapmark/pkg/lint/rules/a11y"
package rules
