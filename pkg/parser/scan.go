package parser

import (
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/dom"
)

// startTag is a start tag split into pieces before classification.
type startTag struct {
	name  string
	attrs []dom.AttrToken
	close string
}

func (t startTag) selfClosing() bool {
	return strings.HasSuffix(t.close, "/>")
}

func isTagSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// scanStartTag splits the raw text of a start tag. masked is the same
// text with template expressions blanked; decisions are made on masked and
// pieces are cut from raw. It reports false when the tag does not end
// with ">".
func scanStartTag(masked, raw string) (startTag, bool) {
	var t startTag
	i := 1
	for i < len(masked) && !isTagSpace(masked[i]) && masked[i] != '/' && masked[i] != '>' {
		i++
	}
	if i == 1 {
		return t, false
	}
	t.name = raw[1:i]

	for {
		start := i
		// a "/" not followed by ">" counts as whitespace
		for i < len(masked) && (isTagSpace(masked[i]) || masked[i] == '/') {
			i++
		}
		if i >= len(masked) || masked[i] == '>' {
			t.close = raw[start:]
			return t, strings.HasSuffix(t.close, ">")
		}

		nameStart := i
		i++ // the first character may be "="
		for i < len(masked) && !isTagSpace(masked[i]) && masked[i] != '/' && masked[i] != '>' && masked[i] != '=' {
			i++
		}
		a := dom.AttrToken{Before: raw[start:nameStart], Name: raw[nameStart:i]}

		j := i
		for j < len(masked) && isTagSpace(masked[j]) {
			j++
		}
		if j < len(masked) && masked[j] == '=' {
			j++
			for j < len(masked) && isTagSpace(masked[j]) {
				j++
			}
			a.Equal = raw[i:j]
			a.HasValue = true
			if j < len(masked) && (masked[j] == '"' || masked[j] == '\'') {
				q := masked[j]
				end := strings.IndexByte(masked[j+1:], q)
				if end < 0 {
					return t, false
				}
				a.Quote = string(q)
				a.Value = raw[j+1 : j+1+end]
				i = j + 1 + end + 1
			} else {
				k := j
				for k < len(masked) && !isTagSpace(masked[k]) && masked[k] != '>' {
					k++
				}
				a.Value = raw[j:k]
				i = k
			}
		}
		t.attrs = append(t.attrs, a)
	}
}

// endTagName returns the name of an end tag as written.
func endTagName(raw string) string {
	s := strings.TrimPrefix(raw, "</")
	i := 0
	for i < len(s) && !isTagSpace(s[i]) && s[i] != '/' && s[i] != '>' {
		i++
	}
	return s[:i]
}
