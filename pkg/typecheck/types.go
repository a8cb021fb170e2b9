package typecheck

import (
	"mime"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapmark/pkg/spec"
)

type checkFunc func(string) bool

var checkers map[spec.AttributeType]checkFunc

func init() {
	checkers = map[spec.AttributeType]checkFunc{
		spec.TypeString:         func(string) bool { return true },
		spec.TypeFunction:       func(string) bool { return true },
		spec.TypeNonEmptyString: func(v string) bool { return v != "" },
		spec.TypeInt:            isInt,
		spec.TypeUint:           isUint,
		spec.TypeNonZeroUint:    isNonZeroUint,
		spec.TypeFloat:          isFloat,
		spec.TypeTabIndex:       isInt,
		spec.TypeColSpan:        func(v string) bool { return isNonZeroUint(v) && atMost(v, 1000) },
		spec.TypeRowSpan:        func(v string) bool { return isUint(v) && atMost(v, 65534) },
		spec.TypeURL:            isURL,
		spec.TypeURLHash:        func(v string) bool { return len(v) > 1 && v[0] == '#' && isURL(v) },
		spec.TypeURLList:        func(v string) bool { return eachField(v, isURL) },
		spec.TypeItemType:       func(v string) bool { return nonEmptyFields(v, isAbsoluteURL) },
		spec.TypeDateTime:       isDateTime,
		spec.TypeDate:           isDate,
		spec.TypeColor:          isColor,
		spec.TypeMIMEType:       isMIMEType,
		spec.TypeBCP47:          isBCP47,
		spec.TypeCrossorigin:    oneOf("", "anonymous", "use-credentials"),
		spec.TypeReferrerPolicy: oneOf(referrerPolicies...),
		spec.TypeCoords:         isCoords,
		spec.TypeAcceptList:     isAcceptList,
		spec.TypeAutoComplete:   isAutoComplete,
		spec.TypeDOMID:          isDOMID,
		spec.TypeDOMIDList:      func(v string) bool { return nonEmptyFields(v, isDOMID) },
		spec.TypeLinkType:       oneOf(linkTypes...),
		spec.TypeLinkTypeList:   func(v string) bool { return nonEmptyFields(v, oneOf(linkTypes...)) },
		spec.TypeLinkSizes:      isLinkSizes,
		spec.TypeMediaQuery:     IsMediaQuery,
		spec.TypeMediaQueryList: IsMediaQueryList,
		spec.TypeSourceSizeList: IsSourceSizeList,
		spec.TypeSrcSet:         IsSrcSet,
		spec.TypeTarget:         isTarget,
		spec.TypeDestination:    oneOf(destinations...),
	}
}

// CheckValue reports whether value satisfies the spec's type.
func CheckValue(s spec.AttrSpec, value string) bool {
	switch s.Type {
	case spec.TypeEnum:
		return oneOf(s.Enum...)(value)
	case spec.TypeBoolean:
		return value == "" || strings.EqualFold(value, s.Name)
	}
	fn, ok := checkers[s.Type]
	if !ok {
		return true
	}
	return fn(value)
}

// CheckType reports whether value satisfies a named type. Enum and
// Boolean need a spec and are rejected here.
func CheckType(t spec.AttributeType, value string) bool {
	fn, ok := checkers[t]
	return ok && fn(value)
}

var (
	reInt   = regexp.MustCompile(`^-?[0-9]+$`)
	reUint  = regexp.MustCompile(`^[0-9]+$`)
	reFloat = regexp.MustCompile(`^-?(?:[0-9]+(?:\.[0-9]+)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)
)

func isInt(v string) bool  { return reInt.MatchString(v) }
func isUint(v string) bool { return reUint.MatchString(v) }

func isNonZeroUint(v string) bool {
	return isUint(v) && strings.TrimLeft(v, "0") != ""
}

func isFloat(v string) bool { return reFloat.MatchString(v) }

func atMost(v string, limit uint64) bool {
	n, err := strconv.ParseUint(v, 10, 64)
	return err == nil && n <= limit
}

// oneOf matches ASCII case-insensitively.
func oneOf(values ...string) checkFunc {
	return func(v string) bool {
		v = strings.TrimSpace(v)
		for _, want := range values {
			if strings.EqualFold(want, v) {
				return true
			}
		}
		return false
	}
}

func eachField(v string, fn checkFunc) bool {
	for _, f := range strings.Fields(v) {
		if !fn(f) {
			return false
		}
	}
	return true
}

func nonEmptyFields(v string, fn checkFunc) bool {
	return len(strings.Fields(v)) > 0 && eachField(v, fn)
}

// isURL accepts a valid URL potentially surrounded by spaces.
func isURL(v string) bool {
	v = strings.TrimSpace(v)
	if strings.ContainsAny(v, " \t\n\r\f") {
		return false
	}
	_, err := url.Parse(v)
	return err == nil
}

func isAbsoluteURL(v string) bool {
	u, err := url.Parse(v)
	return err == nil && u.IsAbs()
}

func isColor(v string) bool {
	if len(v) != 7 {
		return false
	}
	_, err := colorful.Hex(v)
	return err == nil
}

func isMIMEType(v string) bool {
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return false
	}
	typ, sub, ok := strings.Cut(mt, "/")
	return ok && typ != "" && sub != ""
}

func isBCP47(v string) bool {
	if v == "" {
		// lang="" means unknown language
		return true
	}
	_, err := language.Parse(v)
	return err == nil
}

func isCoords(v string) bool {
	if v == "" {
		return false
	}
	for _, part := range strings.Split(v, ",") {
		if !isFloat(strings.TrimSpace(part)) {
			return false
		}
	}
	return true
}

var reFileExt = regexp.MustCompile(`^\.[^\s./,]+$`)

func isAcceptList(v string) bool {
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "audio/*", "video/*", "image/*":
			continue
		}
		if reFileExt.MatchString(part) {
			continue
		}
		if !isMIMEType(part) || strings.Contains(part, ";") {
			return false
		}
	}
	return true
}

func isDOMID(v string) bool {
	return v != "" && !strings.ContainsAny(v, " \t\n\r\f")
}

var reSize = regexp.MustCompile(`^[1-9][0-9]*[xX][1-9][0-9]*$`)

func isLinkSizes(v string) bool {
	if strings.EqualFold(strings.TrimSpace(v), "any") {
		return true
	}
	seen := map[string]bool{}
	fields := strings.Fields(v)
	for _, f := range fields {
		key := strings.ToLower(f)
		if !reSize.MatchString(f) || seen[key] {
			return false
		}
		seen[key] = true
	}
	return len(fields) > 0
}

func isTarget(v string) bool {
	if v == "" {
		return false
	}
	if v[0] != '_' {
		return true
	}
	return oneOf("_blank", "_self", "_parent", "_top")(v)
}

var referrerPolicies = []string{
	"", "no-referrer", "no-referrer-when-downgrade", "same-origin", "origin",
	"strict-origin", "origin-when-cross-origin", "strict-origin-when-cross-origin",
	"unsafe-url",
}

var linkTypes = []string{
	"alternate", "apple-touch-icon", "apple-touch-icon-precomposed", "apple-touch-startup-image",
	"author", "bookmark", "canonical", "compression-dictionary", "dns-prefetch", "expect",
	"external", "help", "icon", "license", "manifest", "me", "modulepreload", "next",
	"nofollow", "noopener", "noreferrer", "opener", "pingback", "preconnect", "prefetch",
	"preload", "prev", "privacy-policy", "search", "shortcut", "stylesheet", "tag",
	"terms-of-service",
}

var destinations = []string{
	"audio", "audioworklet", "document", "embed", "fetch", "font", "frame", "iframe",
	"image", "json", "manifest", "object", "paintworklet", "report", "script",
	"serviceworker", "sharedworker", "style", "track", "video", "webidentity",
	"worker", "xslt",
}
