package parser

var voidElements = set(
	"area", "base", "br", "col", "embed", "hr", "img", "input",
	"link", "meta", "param", "source", "track", "wbr",
)

// rawTextElements hold unparsed text; the tokenizer switches to raw mode
// after their start tag.
var rawTextElements = set(
	"iframe", "noembed", "noframes", "noscript", "plaintext",
	"script", "style", "textarea", "title", "xmp",
)

// closesP are the start tags that end an open p element.
var closesP = set(
	"address", "article", "aside", "blockquote", "details", "dialog", "div",
	"dl", "fieldset", "figcaption", "figure", "footer", "form",
	"h1", "h2", "h3", "h4", "h5", "h6", "header", "hgroup", "hr", "main",
	"menu", "nav", "ol", "p", "pre", "search", "section", "table", "ul",
)

var (
	tableSections = set("thead", "tbody", "tfoot")
	tableRows     = set("tr", "thead", "tbody", "tfoot")
	tableCells    = set("td", "th", "tr", "thead", "tbody", "tfoot")
)

// impliesEnd reports whether a start tag named next ends the open element
// named current, per the optional end tag rules of HTML.
func impliesEnd(current, next string) bool {
	switch current {
	case "p":
		return closesP[next]
	case "li":
		return next == "li"
	case "dt", "dd":
		return next == "dt" || next == "dd"
	case "option":
		return next == "option" || next == "optgroup" || next == "hr"
	case "optgroup":
		return next == "optgroup" || next == "hr"
	case "rt", "rp":
		return next == "rt" || next == "rp"
	case "tr":
		return tableRows[next]
	case "td", "th":
		return tableCells[next]
	case "thead", "tbody", "tfoot":
		return tableSections[next]
	case "colgroup":
		return next != "col" && next != "template"
	case "head":
		return next == "body"
	}
	return false
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
