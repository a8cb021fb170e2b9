// Package style provides rules about how markup is written rather than
// what it means. All of them can fix what they report.
//
// Rules in this package:
//   - attr-value-quotes: Attribute values use one quote style
//   - case-sensitive-attr-name: HTML attribute names use one case
//   - case-sensitive-tag-name: HTML element names use one case
package style
