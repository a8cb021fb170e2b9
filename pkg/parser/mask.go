package parser

import (
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/core"
)

// maskExpressions blanks the content of template expressions so the HTML
// tokenizer does not read "<" or quotes inside them as markup. The result
// has the same length as src, so offsets carry over. Comments and the
// content of script and style elements are left alone.
func maskExpressions(src string, delims []core.Delimiters) string {
	if len(delims) == 0 {
		return src
	}
	var (
		buf  []byte
		i    int
		lsrc = strings.ToLower(src)
	)
	for i < len(src) {
		if src[i] == '<' {
			if skip := skipOpaque(lsrc, i); skip > i {
				i = skip
				continue
			}
		}
		d, ok := delimAt(src, i, delims)
		if !ok {
			i++
			continue
		}
		end := closeOf(src, i+len(d.Open), d)
		if end < 0 {
			break
		}
		if buf == nil {
			buf = []byte(src)
		}
		for k := i + len(d.Open); k < end; k++ {
			buf[k] = 'x'
		}
		i = end + len(d.Close)
	}
	if buf == nil {
		return src
	}
	return string(buf)
}

func delimAt(src string, i int, delims []core.Delimiters) (core.Delimiters, bool) {
	for _, d := range delims {
		if strings.HasPrefix(src[i:], d.Open) {
			return d, true
		}
	}
	return core.Delimiters{}, false
}

// closeOf finds the close delimiter matching an open one at from. Single
// character delimiters nest.
func closeOf(src string, from int, d core.Delimiters) int {
	if len(d.Open) != 1 || len(d.Close) != 1 {
		if j := strings.Index(src[from:], d.Close); j >= 0 {
			return from + j
		}
		return -1
	}
	depth := 0
	for k := from; k < len(src); k++ {
		switch src[k] {
		case d.Open[0]:
			depth++
		case d.Close[0]:
			if depth == 0 {
				return k
			}
			depth--
		}
	}
	return -1
}

// skipOpaque returns the end of a comment or of a script/style element
// starting at i, or i when there is none.
func skipOpaque(lsrc string, i int) int {
	rest := lsrc[i:]
	if strings.HasPrefix(rest, "<!--") {
		if j := strings.Index(rest[4:], "-->"); j >= 0 {
			return i + 4 + j + 3
		}
		return len(lsrc)
	}
	for _, name := range []string{"script", "style"} {
		if !strings.HasPrefix(rest, "<"+name) || len(rest) <= len(name)+1 {
			continue
		}
		if c := rest[len(name)+1]; c != '>' && c != '/' && !isTagSpace(c) {
			continue
		}
		if j := strings.Index(rest, "</"+name); j >= 0 {
			return i + j
		}
		return len(lsrc)
	}
	return i
}
