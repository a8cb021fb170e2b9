package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineIndex_Position(t *testing.T) {
	src := "ab\n\tcd\r\nやef"
	li := NewLineIndex(src)

	tests := []struct {
		name   string
		offset int
		want   Position
	}{
		{"start", 0, Position{Line: 1, Column: 1, Offset: 0}},
		{"end of first line", 2, Position{Line: 1, Column: 3, Offset: 2}},
		{"after tab", 4, Position{Line: 2, Column: 2, Offset: 4}},
		{"carriage return stays on line", 6, Position{Line: 2, Column: 4, Offset: 6}},
		{"multibyte counts as one column", 11, Position{Line: 3, Column: 2, Offset: 11}},
		{"clamped past end", 100, Position{Line: 3, Column: 4, Offset: len(src)}},
		{"clamped negative", -5, Position{Line: 1, Column: 1, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, li.Position(tt.offset))
		})
	}
	assert.Equal(t, 3, li.LineCount())
}

func TestLineIndex_Locate(t *testing.T) {
	li := NewLineIndex("<div\n  id=\"a\">")
	loc := li.Locate(7, 2)
	assert.Equal(t, "id", loc.Raw)
	assert.Equal(t, 2, loc.Line)
	assert.Equal(t, 3, loc.Column)
	assert.Equal(t, 9, loc.End())
	assert.False(t, loc.IsZero())
	assert.True(t, Location{}.IsZero())
}
