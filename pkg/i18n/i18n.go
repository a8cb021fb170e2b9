// Package i18n formats user-facing lint messages. Message keys are the
// English format strings; other locales map them to translations.
package i18n

import (
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Translator formats a message in the reader's language. Rules receive one
// and must use it for every message they report.
type Translator interface {
	T(format string, args ...any) string
}

// Supported lists the locales with a catalog. The first is the fallback.
var Supported = []language.Tag{language.English, language.Japanese}

var (
	matcher = language.NewMatcher(Supported)
	cat     = buildCatalog()
)

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range japanese {
		// keys are static; an error here means a malformed literal
		if err := b.SetString(language.Japanese, key, msg); err != nil {
			panic(err)
		}
	}
	return b
}

// Printer is a Translator backed by the built-in catalogs.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a Printer for the best supported match of the given locale
// strings ("ja", "ja_JP.UTF-8", "en-US"). Empty or unknown input falls back
// to English.
func New(locales ...string) *Printer {
	tag := Match(locales...)
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}
}

// Match picks the supported locale closest to the given locale strings.
func Match(locales ...string) language.Tag {
	cleaned := make([]string, 0, len(locales))
	for _, l := range locales {
		// POSIX locales look like ja_JP.UTF-8
		if i := strings.IndexByte(l, '.'); i >= 0 {
			l = l[:i]
		}
		l = strings.ReplaceAll(l, "_", "-")
		if l != "" && l != "C" && l != "POSIX" {
			cleaned = append(cleaned, l)
		}
	}
	if len(cleaned) == 0 {
		return language.English
	}
	tag, _ := language.MatchStrings(matcher, cleaned...)
	base, _ := tag.Base()
	for _, s := range Supported {
		if b, _ := s.Base(); b == base {
			return s
		}
	}
	return language.English
}

// FromEnv picks a locale from the usual environment variables.
func FromEnv() *Printer {
	return New(os.Getenv("LC_ALL"), os.Getenv("LC_MESSAGES"), os.Getenv("LANG"))
}

// T implements Translator.
func (p *Printer) T(format string, args ...any) string {
	return p.p.Sprintf(format, args...)
}

// Locale returns the selected locale.
func (p *Printer) Locale() language.Tag { return p.tag }

// English is the default translator.
var English Translator = New("en")
