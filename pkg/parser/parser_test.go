package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmark/pkg/dialect"
	"github.com/leapstack-labs/leapmark/pkg/dialects/svelte"
	"github.com/leapstack-labs/leapmark/pkg/dialects/vue"
	"github.com/leapstack-labs/leapmark/pkg/dom"
	"github.com/leapstack-labs/leapmark/pkg/parser"
	"github.com/leapstack-labs/leapmark/pkg/spec"
)

func parse(t *testing.T, src string, d *dialect.Dialect) *dom.Document {
	t.Helper()
	store, err := spec.Default()
	require.NoError(t, err)
	doc, err := parser.Parse(src, parser.Options{Dialect: d, Classifier: store})
	require.NoError(t, err)
	return doc
}

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		dialect *dialect.Dialect
	}{
		{"empty", "", nil},
		{"text only", "hello\nworld", nil},
		{"document", "<!DOCTYPE html>\n<html lang=en>\n<head><title>a < b</title></head>\n<body class='x'>\n<!-- c -->\n</body>\n</html>\n", nil},
		{"attribute spacing", "<div  a = \"1\"\tb='2'\n c=3 d\n/>", nil},
		{"implied ends", "<ul><li>a<li>b</ul><p>x<div>y</div>", nil},
		{"stray end tag", "<div></span></div>", nil},
		{"unterminated", "<p>text<div class=\"a", nil},
		{"crlf", "<div\r\n  id=\"a\">\r\n</div>\r\n", nil},
		{"multibyte", "<p title=\"日本語\">テキスト</p>", nil},
		{"raw text", "<script>if (a < b) { x = '</div>' }</script><style>a > b {}</style>", nil},
		{"svg", `<svg viewBox="0 0 1 1"><circle r="1"/><foreignObject><div></div></foreignObject></svg>`, nil},
		{"vue", "<template>\n  <div :a=\"x < y\" @click=\"go\">{{ a < b }}</div>\n</template>\n<script setup>\nconst a = '<p>'\n</script>\n", vue.Vue},
		{"svelte", "<div class:on={a > b} on:click={() => go()}>{#if a < b}x{/if}</div>", svelte.Svelte},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _ := parser.Parse(tt.src, parser.Options{Dialect: tt.dialect})
			require.NotNil(t, doc)
			assert.Equal(t, tt.src, doc.Serialize())
		})
	}
}

func TestParse_ImpliedEndTags(t *testing.T) {
	doc := parse(t, "<ul><li>a<li>b</ul><p>x<div>y</div>", nil)

	top := doc.Root().Children()
	require.Len(t, top, 3)
	assert.Equal(t, "ul", top[0].NodeName())
	assert.Equal(t, "p", top[1].NodeName())
	assert.Equal(t, "div", top[2].NodeName())

	items := top[0].Children()
	require.Len(t, items, 2)
	assert.True(t, items[0].HasOmittedEnd())
	assert.Equal(t, "a", items[0].TextContent())
	assert.Equal(t, "b", items[1].TextContent())
	assert.True(t, top[1].HasOmittedEnd())
	assert.False(t, top[2].HasOmittedEnd())
}

func TestParse_TableCells(t *testing.T) {
	doc := parse(t, "<table><tr><td>1<td>2<tr><td>3</table>", nil)

	table := doc.Root().Children()[0]
	rows := table.Children()
	require.Len(t, rows, 2)
	assert.Len(t, rows[0].Children(), 2)
	assert.Len(t, rows[1].Children(), 1)
}

func TestParse_AttributeLocations(t *testing.T) {
	src := "\n\t\t<div data-attr=\"value\" data-Attr='db' data-attR=tr>\n\t\t\tlorem\n\t\t</div>\n"
	doc := parse(t, src, nil)

	div := doc.Elements()[0]
	attrs := div.Attributes()
	require.Len(t, attrs, 3)

	tests := []struct {
		name  string
		col   int
		quote string
		value string
	}{
		{"data-attr", 8, `"`, "value"},
		{"data-Attr", 26, `'`, "db"},
		{"data-attR", 41, "", "tr"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := attrs[i]
			assert.Equal(t, tt.name, a.NameRaw())
			assert.Equal(t, 2, a.Name().Line)
			assert.Equal(t, tt.col, a.Name().Column)
			assert.Equal(t, tt.quote, a.Quote())
			assert.Equal(t, tt.value, a.ValueRaw())
		})
	}
	assert.Equal(t, 2, div.Line())
	assert.Equal(t, 3, div.Column())
}

func TestParse_StrayEndTag(t *testing.T) {
	doc, err := parser.Parse("<div></span></div>", parser.Options{})
	require.Error(t, err)

	var list parser.ErrorList
	require.ErrorAs(t, err, &list)
	require.Len(t, list, 1)

	var pe *parser.MLParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Line)
	assert.Equal(t, 6, pe.Col)
	assert.Equal(t, "</span>", pe.Raw)
	assert.Equal(t, "span", pe.NodeName)
	assert.Equal(t, "The span is invalid element (1:6)", pe.Error())

	div := doc.Root().Children()[0]
	children := div.ChildNodes()
	require.Len(t, children, 1)
	assert.Equal(t, dom.InvalidNode, children[0].Type())
	assert.False(t, div.HasOmittedEnd())
	assert.Len(t, doc.ParseErrors(), 1)
}

func TestParse_UnterminatedTag(t *testing.T) {
	doc, err := parser.Parse("<p>text<div class=\"a", parser.Options{})

	var pe *parser.MLParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 8, pe.Col)
	assert.Equal(t, "div", pe.NodeName)
	assert.Equal(t, "<p>text<div class=\"a", doc.Serialize())
}

func TestParse_RawText(t *testing.T) {
	doc := parse(t, "<script>if (a < b) {}</script><textarea><b></textarea>", nil)

	els := doc.Root().Children()
	require.Len(t, els, 2)
	for _, el := range els {
		children := el.ChildNodes()
		require.Len(t, children, 1)
		assert.Equal(t, dom.RawTextNode, children[0].Type())
	}
	assert.Equal(t, "<b>", els[1].TextContent())
	assert.Empty(t, els[1].Children())
}

func TestParse_ForeignRawTextNames(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"self-closing style", `<svg><style/><g></g></svg><p>after</p>`},
		{"style with body", `<svg><style>.a{}</style><g></g></svg><p>after</p>`},
		{"title", `<svg><title>t</title><g></g></svg><p>after</p>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, tt.src, nil)
			assert.Equal(t, tt.src, doc.Serialize())

			top := doc.Root().Children()
			require.Len(t, top, 2)
			svg := top[0].Children()
			require.Len(t, svg, 2)
			assert.Equal(t, "g", svg[1].NodeName())
			for _, n := range svg[0].ChildNodes() {
				assert.Equal(t, dom.TextNode, n.Type())
			}
			require.Len(t, top[1].ChildNodes(), 1)
			assert.Equal(t, dom.TextNode, top[1].ChildNodes()[0].Type())
		})
	}
}

func TestParse_Namespaces(t *testing.T) {
	doc := parse(t, `<svg viewBox="0 0 1 1"><circle r="1"/><foreignObject><div></div></foreignObject></svg><math><mi>x</mi></math>`, nil)

	els := doc.Elements()
	require.Len(t, els, 6)

	tests := []struct {
		name string
		ns   dom.Namespace
	}{
		{"svg", dom.NamespaceSVG},
		{"circle", dom.NamespaceSVG},
		{"foreignObject", dom.NamespaceSVG},
		{"div", dom.NamespaceHTML},
		{"math", dom.NamespaceMathML},
		{"mi", dom.NamespaceMathML},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, els[i].NodeName())
			assert.Equal(t, tt.ns, els[i].Namespace())
		})
	}
	assert.True(t, els[1].IsSelfClosing())
	assert.Equal(t, "foreignobject", els[2].TagNameNormalized())
}

func TestParse_VoidAndSelfClosing(t *testing.T) {
	doc := parse(t, "<br><img src=x><div/><p></p>", nil)

	top := doc.Root().Children()
	require.Len(t, top, 3)
	assert.True(t, top[0].IsVoid())
	assert.True(t, top[1].IsVoid())
	// "/>" does not close a non-void HTML element
	assert.False(t, top[2].IsSelfClosing())
	require.Len(t, top[2].Children(), 1)
	assert.Equal(t, "p", top[2].Children()[0].NodeName())
}

func TestParse_CustomElements(t *testing.T) {
	doc := parse(t, "<div><my-el></my-el><foo></foo></div>", nil)

	els := doc.Elements()
	require.Len(t, els, 3)
	assert.False(t, els[0].IsCustomElement())
	assert.True(t, els[1].IsCustomElement())
	assert.True(t, els[2].IsCustomElement())
}

func TestParse_Vue(t *testing.T) {
	src := "<template><div attr v-bind:attr /><p>{{ a < b }}</p><MyComp foo=\"1\"></MyComp></template>\n<script setup>\nconst a = '<div>'\n</script>\n<style scoped>.a > .b {}</style>"
	doc := parse(t, src, vue.Vue)

	top := doc.Root().ChildNodes()
	require.Len(t, top, 5)
	tmpl := top[0]
	assert.Equal(t, "template", tmpl.NodeName())
	assert.Equal(t, dom.RawTextNode, top[2].Type())
	assert.Equal(t, "<script setup>\nconst a = '<div>'\n</script>", top[2].Raw())
	assert.Equal(t, dom.RawTextNode, top[4].Type())

	wrapped := parse(t, `<template lang="html"><p></p></template>`, vue.Vue)
	lang, ok := wrapped.Elements()[0].GetAttribute("lang")
	require.True(t, ok)
	assert.True(t, lang.IsDirective())

	els := tmpl.Children()
	require.Len(t, els, 3)
	div := els[0]
	assert.True(t, div.IsSelfClosing())
	attrs := div.Attributes()
	require.Len(t, attrs, 2)
	assert.Equal(t, "attr", attrs[1].PotentialName())
	assert.True(t, attrs[1].IsDynamic())
	assert.Equal(t, 21, attrs[1].Name().Column)

	assert.Equal(t, "{{ a < b }}", els[1].TextContent())
	assert.True(t, els[2].IsCustomElement())
	assert.True(t, doc.CaseSensitiveAttrs())
}

func TestParse_Svelte(t *testing.T) {
	src := `<div class:selected="{isSelected}" on:click={() => a > b}><img src={url} alt="a {b}"></div><Button {disabled} {...rest}/>`
	doc := parse(t, src, svelte.Svelte)

	els := doc.Root().Children()
	require.Len(t, els, 2)

	div := els[0]
	for _, a := range div.Attributes() {
		assert.True(t, a.IsDirective(), a.NameRaw())
	}
	assert.Equal(t, "{() => a > b}", div.Attributes()[1].ValueRaw())

	img := div.Children()[0]
	for _, a := range img.Attributes() {
		assert.True(t, a.IsDynamic(), a.NameRaw())
	}

	button := els[1]
	assert.True(t, button.IsCustomElement())
	assert.True(t, button.IsSelfClosing())
	require.Len(t, button.Attributes(), 2)
	assert.True(t, button.Attributes()[0].IsDirective())
}

func TestErrorList(t *testing.T) {
	list := parser.ErrorList{
		{Line: 1, Col: 2, Raw: "</a>", NodeName: "a"},
		{Line: 3, Col: 4, Raw: "</b>", NodeName: "b"},
	}
	assert.Equal(t, "2 parse errors: The a is invalid element (1:2); The b is invalid element (3:4)", list.Error())
	assert.Len(t, list.Unwrap(), 2)
}
