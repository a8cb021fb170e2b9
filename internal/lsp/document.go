package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"
)

// Document represents an open text document in the editor.
type Document struct {
	URI     string // Document URI (file:///path/to/index.html)
	Content string // Full document content
	Version int    // Version number, incremented on each change
	Lines   []int  // Byte offsets of line starts for fast position lookups
}

// DocumentStore manages open documents in memory.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

// NewDocumentStore creates a new document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*Document),
	}
}

// Open adds or updates a document in the store.
func (s *DocumentStore) Open(uri string, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[uri] = &Document{
		URI:     uri,
		Content: content,
		Version: version,
		Lines:   computeLineOffsets(content),
	}
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.documents, uri)
}

// Get retrieves a document by URI.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.documents[uri]
}

// Update modifies an existing document's content.
func (s *DocumentStore) Update(uri string, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, ok := s.documents[uri]; ok {
		doc.Content = content
		doc.Version = version
		doc.Lines = computeLineOffsets(content)
	}
}

// List returns all open document URIs.
func (s *DocumentStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]string, 0, len(s.documents))
	for uri := range s.documents {
		uris = append(uris, uri)
	}
	return uris
}

// computeLineOffsets calculates byte offsets for each line start.
func computeLineOffsets(content string) []int {
	offsets := []int{0} // First line starts at offset 0

	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return offsets
}

// PositionToOffset converts a Position to a byte offset in the document.
// Characters are counted in UTF-16 code units, as the protocol requires.
func (d *Document) PositionToOffset(pos Position) int {
	if d == nil || len(d.Lines) == 0 {
		return 0
	}

	line := int(pos.Line)
	if line >= len(d.Lines) {
		return len(d.Content)
	}

	offset := d.Lines[line]
	units := int(pos.Character)
	for units > 0 && offset < len(d.Content) && d.Content[offset] != '\n' {
		r, size := utf8.DecodeRuneInString(d.Content[offset:])
		units -= utf16.RuneLen(r)
		offset += size
	}
	return offset
}

// OffsetToPosition converts a byte offset to a Position.
func (d *Document) OffsetToPosition(offset int) Position {
	if d == nil || len(d.Lines) == 0 {
		return Position{}
	}

	if offset < 0 {
		offset = 0
	}
	if offset > len(d.Content) {
		offset = len(d.Content)
	}

	line := 0
	for i, lineOffset := range d.Lines {
		if lineOffset > offset {
			break
		}
		line = i
	}

	character := 0
	for _, r := range d.Content[d.Lines[line]:offset] {
		character += utf16.RuneLen(r)
	}
	return Position{
		Line:      uint32(line),      //nolint:gosec // G115: line is always non-negative
		Character: uint32(character), //nolint:gosec // G115: character is always non-negative
	}
}

// LineColumnToOffset converts a 1-based line and rune column, as lint
// results carry them, to a byte offset.
func (d *Document) LineColumnToOffset(line, col int) int {
	if d == nil || len(d.Lines) == 0 || line < 1 {
		return 0
	}
	if line > len(d.Lines) {
		return len(d.Content)
	}

	offset := d.Lines[line-1]
	for n := 1; n < col && offset < len(d.Content) && d.Content[offset] != '\n'; n++ {
		_, size := utf8.DecodeRuneInString(d.Content[offset:])
		offset += size
	}
	return offset
}

// GetTextBefore returns the text before the given position.
func (d *Document) GetTextBefore(pos Position) string {
	offset := d.PositionToOffset(pos)
	if offset <= 0 {
		return ""
	}
	return d.Content[:offset]
}

// GetTextAfter returns the text after the given position.
func (d *Document) GetTextAfter(pos Position) string {
	offset := d.PositionToOffset(pos)
	if offset >= len(d.Content) {
		return ""
	}
	return d.Content[offset:]
}

// GetLine returns the content of a specific line.
func (d *Document) GetLine(line int) string {
	if d == nil || line < 0 || line >= len(d.Lines) {
		return ""
	}

	start := d.Lines[line]
	end := len(d.Content)

	if line+1 < len(d.Lines) {
		end = d.Lines[line+1] - 1 // Exclude newline
		if end < start {
			end = start
		}
	}

	return d.Content[start:end]
}

// GetWordAtPosition returns the word at the given position and its range.
func (d *Document) GetWordAtPosition(pos Position) (string, Range) {
	offset := d.PositionToOffset(pos)
	if offset >= len(d.Content) {
		return "", Range{Start: pos, End: pos}
	}

	// Find word boundaries
	start := offset
	for start > 0 && isWordChar(d.Content[start-1]) {
		start--
	}

	end := offset
	for end < len(d.Content) && isWordChar(d.Content[end]) {
		end++
	}

	if start == end {
		return "", Range{Start: pos, End: pos}
	}

	return d.Content[start:end], Range{
		Start: d.OffsetToPosition(start),
		End:   d.OffsetToPosition(end),
	}
}

// isWordChar reports whether c can be part of a tag or attribute name.
func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_' || c == '-' || c == ':'
}

// GetTextInRange returns the text within a range.
func (d *Document) GetTextInRange(r Range) string {
	start := d.PositionToOffset(r.Start)
	end := d.PositionToOffset(r.End)
	if start >= end || start >= len(d.Content) {
		return ""
	}
	return d.Content[start:end]
}

// URIToPath converts a file:// URI to a file system path.
func URIToPath(uri string) string {
	const prefix = "file://"
	if !strings.HasPrefix(uri, prefix) {
		return uri
	}
	u, err := url.Parse(uri)
	if err != nil {
		return uri[len(prefix):]
	}
	return filepath.FromSlash(u.Path)
}

// PathToURI converts a file system path to a file:// URI.
func PathToURI(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
