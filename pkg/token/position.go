// Package token holds the source location model shared by every other
// package: positions, spans and raw source slices.
package token

// Position represents a location in the source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number, counted in runes
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Span represents a range in source text.
type Span struct {
	Start Position
	End   Position
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// Location is a position plus the exact source slice that starts there.
// Raw is always src[Offset : Offset+len(Raw)] of the text it was taken from.
type Location struct {
	Position
	Raw string
}

// End returns the byte offset just past the raw slice.
func (l Location) End() int {
	return l.Offset + len(l.Raw)
}

// Span returns the location as a start/end span. The end position carries
// only an offset; callers that need its line resolve it through a LineIndex.
func (l Location) Span() Span {
	return Span{Start: l.Position, End: Position{Offset: l.End()}}
}

// IsZero reports whether the location was never set.
func (l Location) IsZero() bool {
	return !l.IsValid() && l.Raw == ""
}
