package a11y

import (
	"regexp"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/spec"
)

var (
	reAriaInteger = regexp.MustCompile(`^-?[0-9]+$`)
	reAriaNumber  = regexp.MustCompile(`^-?(?:[0-9]+(?:\.[0-9]+)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)
)

// checkAriaValue reports whether v is a valid value of prop.
func checkAriaValue(prop spec.AriaProp, v string) bool {
	v = strings.TrimSpace(v)
	switch prop.Type {
	case spec.PropTrueFalse:
		return v == "true" || v == "false"
	case spec.PropTristate:
		return v == "true" || v == "false" || v == "mixed" || v == "undefined"
	case spec.PropTrueFalseUndefined:
		return v == "true" || v == "false" || v == "undefined"
	case spec.PropIDRef:
		return v != "" && !strings.ContainsAny(v, " \t\n\r\f")
	case spec.PropIDRefList:
		return len(strings.Fields(v)) > 0
	case spec.PropInteger:
		return reAriaInteger.MatchString(v)
	case spec.PropNumber:
		return reAriaNumber.MatchString(v)
	case spec.PropToken:
		return slices.Contains(prop.Enum, strings.ToLower(v))
	case spec.PropTokenList:
		tokens := strings.Fields(strings.ToLower(v))
		if len(tokens) == 0 {
			return false
		}
		for _, t := range tokens {
			if !slices.Contains(prop.Enum, t) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// expectedAriaValue describes the accepted values, for messages.
func expectedAriaValue(prop spec.AriaProp) string {
	switch prop.Type {
	case spec.PropToken, spec.PropTokenList:
		quoted := make([]string, len(prop.Enum))
		for i, e := range prop.Enum {
			quoted[i] = `"` + e + `"`
		}
		return strings.Join(quoted, ", ")
	case spec.PropTristate:
		return `"true", "false" or "mixed"`
	case spec.PropTrueFalse:
		return `"true" or "false"`
	case spec.PropTrueFalseUndefined:
		return `"true", "false" or "undefined"`
	default:
		return string(prop.Type)
	}
}
