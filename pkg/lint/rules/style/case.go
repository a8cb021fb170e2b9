package style

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/lint"
)

// letterCase is the value of the case-sensitive-* rules.
type letterCase string

const (
	lowerCase letterCase = "lower"
	upperCase letterCase = "upper"
)

func caseFor(s lint.Setting) (letterCase, error) {
	switch v := s.Value.(type) {
	case nil, bool:
		return lowerCase, nil
	case string:
		switch letterCase(v) {
		case lowerCase, upperCase:
			return letterCase(v), nil
		}
	}
	return "", fmt.Errorf(`value must be "lower" or "upper", got %v`, s.Value)
}

func (c letterCase) apply(s string) string {
	if c == upperCase {
		return strings.ToUpper(s)
	}
	return strings.ToLower(s)
}

func (c letterCase) matches(s string) bool {
	return c.apply(s) == s
}
