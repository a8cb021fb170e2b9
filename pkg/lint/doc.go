// Package lint provides the rule engine: rule registration, per-node rule
// configuration and the traversal that turns rule bodies into Results.
//
// # Rule Registration
//
// Rules are automatically registered via init() functions when their
// packages are imported:
//
//	import _ "github.com/leapstack-labs/leapmark/pkg/lint/rules"
//
// A rule is usually a data-driven RuleDef:
//
//	var NoMarquee = lint.RuleDef{
//		Name:        "no-marquee",
//		Description: "Disallow the marquee element",
//		Severity:    core.SeverityWarning,
//		Verify:      verifyNoMarquee,
//	}
//
//	func init() {
//		lint.Register(NoMarquee)
//	}
//
// # Configuration
//
// A Config holds the global setting of each rule plus selector-scoped
// overrides. nodeRules apply to the matched element, childNodeRules to
// its children (or all descendants with Inheritance). The last matching
// override wins; an override that disables a rule skips the whole subtree
// for that rule.
//
// # Verification
//
// The Engine runs every active rule over a document. Each rule body walks
// the document through its Context in document order and reports Results;
// the engine forces each Result's severity to the one resolved for the
// reported node. Results of one rule are in document order; callers that
// need a merged order sort with SortResults.
package lint
