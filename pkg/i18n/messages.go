package i18n

// Message keys shared by more than one package.
const (
	MsgInvalidElement = "The %s is invalid element (%d:%d)"
)

var japanese = map[string]string{
	// attr-duplication
	"The attribute name is duplicated": "その属性名が重複しています",

	// attr-value-quotes
	"Attribute value is must quote on double": "属性値はダブルクオーテーションで囲む必要があります",
	"Attribute value is must quote on single": "属性値はシングルクオーテーションで囲む必要があります",

	// invalid-attr
	"The %q attribute is not allowed":            "%q 属性は許可されていません",
	"The %q attribute is disallowed":             "%q 属性は禁止されています",
	"The %q attribute expects %s":                "%q 属性には%sが必要です",
	"The %q attribute must match the pattern %s": "%q 属性はパターン %s に一致する必要があります",
	"one of %s":                                  "%sのいずれか",
	"a value of type %s":                         "%s型の値",

	// case-sensitive-*
	"The attribute name of HTML elements must be in lowercase": "HTML要素の属性名は小文字にする必要があります",
	"The element name of HTML elements must be in lowercase":   "HTML要素の要素名は小文字にする必要があります",
	"The attribute name of HTML elements must be in uppercase": "HTML要素の属性名は大文字にする必要があります",
	"The element name of HTML elements must be in uppercase":   "HTML要素の要素名は大文字にする必要があります",

	// wai-aria
	"The %q role does not exist":                                      "%q ロールは存在しません",
	"The %q role is abstract and must not be used":                    "%q ロールは抽象ロールのため使用できません",
	"The %q role is deprecated":                                       "%q ロールは非推奨です",
	"The %q role is not permitted on the <%s> element":                "%q ロールは <%s> 要素に許可されていません",
	"The %q role is the implicit role of the <%s> element":            "%q ロールは <%s> 要素の暗黙のロールです",
	"The %q ARIA state/property does not exist":                       "%q ARIAステート/プロパティは存在しません",
	"The %q ARIA state/property is not permitted on the %q role":      "%q ARIAステート/プロパティは %q ロールに許可されていません",
	"The %q ARIA state/property is not permitted on the <%s> element": "%q ARIAステート/プロパティは <%s> 要素に許可されていません",
	"The %q ARIA state/property is deprecated":                        "%q ARIAステート/プロパティは非推奨です",
	"The %q ARIA state/property expects %s":                           "%q ARIAステート/プロパティには%sが必要です",
	"The %q ARIA state/property is required on the %q role":           "%q ARIAステート/プロパティは %q ロールに必須です",
	"The %q ARIA state/property duplicates the implicit value":        "%q ARIAステート/プロパティは暗黙の値と重複しています",
	"Use the %q attribute instead of the %q ARIA state/property":      "%[2]q ARIAステート/プロパティの代わりに %[1]q 属性を使用してください",
	"The <%s> element does not accept ARIA roles or properties":       "<%s> 要素はARIAのロールやプロパティを受け付けません",
	"The <%s> element must not be named":                              "<%s> 要素に名前を付けてはいけません",

	// character-reference
	"Illegal characters must be escaped with character references": "不正な文字は文字参照でエスケープする必要があります",

	// id-duplication
	"Duplicate attribute id value": "id属性の値が重複しています",

	// parse errors
	MsgInvalidElement: "%s は不正な要素です (%d:%d)",
}
