package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapmark/pkg/i18n"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		locales []string
		want    language.Tag
	}{
		{"empty", nil, language.English},
		{"blank", []string{""}, language.English},
		{"posix", []string{"C"}, language.English},
		{"japanese", []string{"ja"}, language.Japanese},
		{"posix japanese", []string{"ja_JP.UTF-8"}, language.Japanese},
		{"region", []string{"en-GB"}, language.English},
		{"unsupported", []string{"fr"}, language.English},
		{"first non empty", []string{"", "ja_JP"}, language.Japanese},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, i18n.Match(tt.locales...))
		})
	}
}

func TestPrinter_T(t *testing.T) {
	en := i18n.New("en")
	ja := i18n.New("ja")

	assert.Equal(t, "The attribute name is duplicated", en.T("The attribute name is duplicated"))
	assert.Equal(t, "その属性名が重複しています", ja.T("The attribute name is duplicated"))

	assert.Equal(t, `The "foo" role does not exist`, en.T("The %q role does not exist", "foo"))
	assert.Equal(t, `"foo" ロールは存在しません`, ja.T("The %q role does not exist", "foo"))

	// reordered arguments
	assert.Equal(t,
		`"aria-checked" ARIAステート/プロパティの代わりに "checked" 属性を使用してください`,
		ja.T("Use the %q attribute instead of the %q ARIA state/property", "checked", "aria-checked"))
}

func TestPrinter_UnknownKeyFallsBack(t *testing.T) {
	ja := i18n.New("ja")
	assert.Equal(t, "no translation 3", ja.T("no translation %d", 3))
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "ja_JP.UTF-8")
	assert.Equal(t, language.Japanese, i18n.FromEnv().Locale())

	t.Setenv("LANG", "")
	assert.Equal(t, language.English, i18n.FromEnv().Locale())
}
