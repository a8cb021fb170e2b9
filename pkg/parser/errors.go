package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/i18n"
)

// MLParseError reports a token the front end could not assemble into the
// tree, such as a stray end tag or an unterminated start tag.
type MLParseError struct {
	Line     int
	Col      int
	Raw      string
	NodeName string
}

func (e *MLParseError) Error() string {
	return fmt.Sprintf(i18n.MsgInvalidElement, e.NodeName, e.Line, e.Col)
}

// Message returns the error message in the translator's locale.
func (e *MLParseError) Message(t i18n.Translator) string {
	return t.T(i18n.MsgInvalidElement, e.NodeName, e.Line, e.Col)
}

// ErrorList collects the parse errors of one document.
type ErrorList []*MLParseError

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no parse errors"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d parse errors: %s", len(l), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (l ErrorList) Unwrap() []error {
	out := make([]error, len(l))
	for i, e := range l {
		out[i] = e
	}
	return out
}
