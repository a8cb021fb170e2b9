package typecheck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/leapmark/pkg/spec"
)

func TestCheckType(t *testing.T) {
	tests := []struct {
		typ     spec.AttributeType
		valid   []string
		invalid []string
	}{
		{spec.TypeUint, []string{"0", "42", "007"}, []string{"-1", "3.5", "+1", "", " 1", "1e3"}},
		{spec.TypeNonZeroUint, []string{"1", "42", "010"}, []string{"0", "00", "-1", "3.5", "+1", ""}},
		{spec.TypeInt, []string{"0", "-1", "42"}, []string{"+1", "1.0", "", "--1"}},
		{spec.TypeFloat, []string{"1", "-1.5", ".5", "1e10", "2.5E-3"}, []string{"1.", "+1", "abc", "", "1e"}},
		{spec.TypeTabIndex, []string{"0", "-1", "3"}, []string{"", "a", "1.5"}},
		{spec.TypeColSpan, []string{"1", "1000"}, []string{"0", "1001"}},
		{spec.TypeRowSpan, []string{"0", "65534"}, []string{"65535", "-1"}},
		{spec.TypeNonEmptyString, []string{"x", " "}, []string{""}},
		{spec.TypeURL, []string{"/", "https://example.com/a?b=c#d", " ./rel ", "", "mailto:a@b.c"}, []string{"http://a b", "%zz", "http://[::1"}},
		{spec.TypeURLHash, []string{"#map"}, []string{"map", "#"}},
		{spec.TypeURLList, []string{"/a /b", "https://x.test"}, []string{"/a %zz"}},
		{spec.TypeItemType, []string{"https://schema.org/Person", "https://a.test/x https://b.test/y"}, []string{"", "/relative"}},
		{spec.TypeDate, []string{"2024-02-29"}, []string{"2023-02-29", "2024-13-01", "24-01-01"}},
		{spec.TypeDateTime, []string{
			"2024-01-02", "2024-01", "2024", "--12-25", "12-25", "--02-29", "2024-W05", "13:45", "13:45:30.5",
			"2024-01-02T13:45", "2024-01-02 13:45:30", "2024-01-02T13:45Z", "2024-01-02T13:45+09:00",
			"Z", "+05:30", "PT4H18M3S", "P2D", "4h 18m 3s",
		}, []string{"", "2024-02-30", "--02-30", "13-01", "2024-W54", "25:00", "yesterday", "P", "2024-01-02T", "4x"}},
		{spec.TypeColor, []string{"#ff0000", "#00FF7f"}, []string{"red", "#fff", "#gggggg", "ff0000"}},
		{spec.TypeMIMEType, []string{"text/html", "image/svg+xml", "text/plain; charset=utf-8"}, []string{"text", "text/", "/html", ""}},
		{spec.TypeBCP47, []string{"en", "en-US", "ja-JP", "zh-Hant-TW", ""}, []string{"e", "en_US-", "12"}},
		{spec.TypeCrossorigin, []string{"", "anonymous", "USE-CREDENTIALS"}, []string{"yes"}},
		{spec.TypeReferrerPolicy, []string{"no-referrer", "strict-origin-when-cross-origin"}, []string{"never"}},
		{spec.TypeCoords, []string{"0,0,10,10", "1.5, 2"}, []string{"", "a,b", "1,,2"}},
		{spec.TypeAcceptList, []string{"image/*", ".png,.jpg", "application/pdf, .pdf"}, []string{"png", "text/html;charset=utf-8", ""}},
		{spec.TypeAutoComplete, []string{"on", "off", "email", "shipping street-address", "section-a billing work tel", "username webauthn"}, []string{"", "on off", "work name", "foo", "webauthn"}},
		{spec.TypeDOMID, []string{"a", "a-b_c:1"}, []string{"", "a b"}},
		{spec.TypeDOMIDList, []string{"a b", "a"}, []string{"", "  "}},
		{spec.TypeLinkType, []string{"stylesheet", "ICON"}, []string{"style sheet", "unknown"}},
		{spec.TypeLinkTypeList, []string{"noopener noreferrer", "preload"}, []string{"", "noopener nope"}},
		{spec.TypeLinkSizes, []string{"any", "16x16 32X32"}, []string{"", "16x16 16x16", "0x16", "16"}},
		{spec.TypeTarget, []string{"_blank", "_TOP", "frame1"}, []string{"", "_new"}},
		{spec.TypeDestination, []string{"script", "font"}, []string{"js"}},
		{spec.TypeMediaQuery, []string{"screen", "(min-width: 600px)"}, []string{"", "screen, print"}},
		{spec.TypeMediaQueryList, []string{"", "screen, print"}, []string{"screen,"}},
		{spec.TypeSourceSizeList, []string{"100vw", "(max-width: 600px) 480px, 800px", "auto", "calc(100vw - 2em)"}, []string{"", "(max-width: 600px)", "480px, 800px", "50%"}},
		{spec.TypeSrcSet, []string{"a.png", "a.png 1x, b.png 2x", "a.png 100w, b.png 200w"}, []string{"", "a.png 1x, b.png", "a.png 100w, b.png", "a.png 2q"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			for _, v := range tt.valid {
				assert.True(t, CheckType(tt.typ, v), "%s should accept %q", tt.typ, v)
			}
			for _, v := range tt.invalid {
				assert.False(t, CheckType(tt.typ, v), "%s should reject %q", tt.typ, v)
			}
		})
	}
}

func TestCheckValue_EnumAndBoolean(t *testing.T) {
	enum := spec.AttrSpec{Name: "dir", Type: spec.TypeEnum, Enum: []string{"ltr", "rtl", "auto"}}
	assert.True(t, CheckValue(enum, "ltr"))
	assert.True(t, CheckValue(enum, "RTL"))
	assert.False(t, CheckValue(enum, "up"))

	boolean := spec.AttrSpec{Name: "disabled", Type: spec.TypeBoolean}
	assert.True(t, CheckValue(boolean, ""))
	assert.True(t, CheckValue(boolean, "Disabled"))
	assert.False(t, CheckValue(boolean, "true"))

	assert.False(t, CheckType(spec.TypeEnum, "x"))
}

func TestMediaQueries(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"screen", true},
		{"only screen and (min-width: 600px)", true},
		{"not all and (monochrome)", true},
		{"screen and (min-width: 600px) and (orientation: landscape)", true},
		{"(min-width: 600px) or (max-width: 300px)", true},
		{"not (color)", true},
		{"((hover: hover) and (pointer: fine))", true},
		{"(400px <= width <= 700px)", true},
		{"(width >= 600px)", true},
		{"(aspect-ratio: 16/9)", true},
		{"(-webkit-min-device-pixel-ratio: 2)", true},
		{"(400px <= width >= 700px)", false},
		{"screen and (a) or (b)", false},
		{"(a) and (b) or (c)", false},
		{"min-width: 100px", false},
		{"screen and", false},
		{"and", false},
		{"(min-width: )", false},
		{"(min-width: 600px", false},
		{"screen @", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsMediaQuery(tt.input))
		})
	}
}

func TestParseSrcSet(t *testing.T) {
	got, err := ParseSrcSet(" a.png 1x, b.png 1.5x,c.png 2x ")
	assert.NoError(t, err)
	assert.Equal(t, []ImageCandidate{
		{URL: "a.png", Density: 1},
		{URL: "b.png", Density: 1.5},
		{URL: "c.png", Density: 2},
	}, got)

	got, err = ParseSrcSet("a.png, b.png 100w")
	assert.Error(t, err, "mixing a bare candidate with a width candidate")
	assert.Nil(t, got)

	got, err = ParseSrcSet("a.png 100w 50h, b.png 200w")
	assert.NoError(t, err)
	assert.Equal(t, 50, got[0].Height)

	tests := []string{
		"a.png,, b.png",
		", a.png",
		"a.png 1x 2x",
		"a.png 2x, b.png 2x",
		"a.png 100w, b.png 100w",
		"a.png 50h",
		"a.png 0w",
		"a.png 0x",
	}
	for _, v := range tests {
		t.Run(v, func(t *testing.T) {
			_, err := ParseSrcSet(v)
			assert.Error(t, err)
		})
	}
}
