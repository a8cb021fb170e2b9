// Package core holds the small shared vocabulary of leapmark: result
// severities and rule metadata. It has no dependencies on the rest of the
// module so that every layer can import it.
package core
