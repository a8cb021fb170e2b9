// Package validation provides rules that check markup against the HTML
// specification data: attribute names and values, ids, character
// references and parse errors.
//
// Rules in this package:
//   - attr-duplication: An attribute appears twice on one element
//   - invalid-attr: Unknown attribute or value of the wrong type
//   - id-duplication: Two elements share an id
//   - character-reference: Unescaped "<", ">" or "&" in text
//   - parse-error: Markup the parser could not assemble
package validation
