package typecheck

import (
	"slices"
	"strings"
)

var autofillFields = []string{
	"name", "honorific-prefix", "given-name", "additional-name", "family-name",
	"honorific-suffix", "nickname", "username", "new-password", "current-password",
	"one-time-code", "organization-title", "organization", "street-address",
	"address-line1", "address-line2", "address-line3", "address-level4",
	"address-level3", "address-level2", "address-level1", "country", "country-name",
	"postal-code", "cc-name", "cc-given-name", "cc-additional-name", "cc-family-name",
	"cc-number", "cc-exp", "cc-exp-month", "cc-exp-year", "cc-csc", "cc-type",
	"transaction-currency", "transaction-amount", "language", "bday", "bday-day",
	"bday-month", "bday-year", "sex", "url", "photo",
}

// contact fields may follow home, work, mobile, fax or pager
var contactFields = []string{
	"tel", "tel-country-code", "tel-national", "tel-area-code", "tel-local",
	"tel-local-prefix", "tel-local-suffix", "tel-extension", "email", "impp",
}

// isAutoComplete accepts "on", "off" or an autofill detail token list:
// [section-*] [shipping|billing] [contact kind] field [webauthn].
func isAutoComplete(v string) bool {
	tokens := strings.Fields(strings.ToLower(v))
	if len(tokens) == 0 {
		return false
	}
	if len(tokens) == 1 && (tokens[0] == "on" || tokens[0] == "off") {
		return true
	}
	if tokens[len(tokens)-1] == "webauthn" {
		tokens = tokens[:len(tokens)-1]
		if len(tokens) == 0 {
			return false
		}
	}
	if strings.HasPrefix(tokens[0], "section-") {
		tokens = tokens[1:]
	}
	if len(tokens) > 0 && (tokens[0] == "shipping" || tokens[0] == "billing") {
		tokens = tokens[1:]
	}
	switch len(tokens) {
	case 1:
		return slices.Contains(autofillFields, tokens[0]) || slices.Contains(contactFields, tokens[0])
	case 2:
		switch tokens[0] {
		case "home", "work", "mobile", "fax", "pager":
			return slices.Contains(contactFields, tokens[1])
		}
	}
	return false
}
