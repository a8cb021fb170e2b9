// Package a11y provides accessibility rules.
//
// Rules in this package:
//   - wai-aria: Roles and aria-* attributes follow WAI-ARIA and ARIA in HTML
package a11y
