package dialect

// HTML is the plain HTML dialect. It is registered automatically when the
// package is loaded and is the fallback for unknown file types.
var HTML = NewDialect("html").
	Extensions(".html", ".htm", ".xhtml").
	Build()

func init() {
	Register(HTML)
}
