package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmark/internal/testutil"
	"github.com/leapstack-labs/leapmark/pkg/core"
	"github.com/leapstack-labs/leapmark/pkg/i18n"
	"github.com/leapstack-labs/leapmark/pkg/lint"
	_ "github.com/leapstack-labs/leapmark/pkg/lint/rules" // register rules
)

func messages(results []lint.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Message
	}
	return out
}

func TestAttrDuplication(t *testing.T) {
	src := "\n\t\t<div data-attr=\"value\" data-Attr='db' data-attR=tr>\n\t\t\tlorem\n\t\t\t<p>ipsam</p>\n\t\t</div>\n\t\t"
	results := testutil.VerifyRule(t, "attr-duplication", src, "", true)

	assert.Equal(t, []lint.Result{
		{Rule: "attr-duplication", Severity: core.SeverityError, Message: "The attribute name is duplicated", Line: 2, Col: 26, Raw: "data-Attr"},
		{Rule: "attr-duplication", Severity: core.SeverityError, Message: "The attribute name is duplicated", Line: 2, Col: 41, Raw: "data-attR"},
	}, results)
}

func TestAttrDuplication_Multiline(t *testing.T) {
	src := "\n\t\t<div\n\t\t\tdata-attr=\"value\"\n\t\t\tdata-Attr='db'\n\t\t\tdata-attR=tr>\n\t\t\tlorem\n\t\t</div>\n"
	results := testutil.VerifyRule(t, "attr-duplication", src, "", true)

	require.Len(t, results, 2)
	assert.Equal(t, [2]int{4, 4}, [2]int{results[0].Line, results[0].Col})
	assert.Equal(t, [2]int{5, 4}, [2]int{results[1].Line, results[1].Col})
}

func TestAttrDuplication_Japanese(t *testing.T) {
	results := testutil.Verify(t, `<img src="/" SRC="/" >`, "", lint.Options{
		Config:     lint.NewConfig().Enable("attr-duplication"),
		Translator: i18n.New("ja"),
	})
	assert.Equal(t, []string{"その属性名が重複しています"}, messages(results))
}

func TestAttrDuplication_NodeRulesDisable(t *testing.T) {
	cfg := lint.NewConfig().Enable("attr-duplication")
	cfg.NodeRules = []lint.NodeRule{{Selector: "span", Rules: map[string]lint.RuleSetting{"attr-duplication": {Disabled: true}}}}
	results := testutil.Verify(t, "<div><span attr attr></span></div>", "", lint.Options{Config: cfg})
	assert.Empty(t, results)
}

func TestAttrDuplication_Dialects(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
		src     string
		want    []lint.Result
	}{
		{
			name:    "vue binding duplicates plain attribute",
			dialect: "vue",
			src:     `<template><div attr v-bind:attr /></template>`,
			want: []lint.Result{
				{Rule: "attr-duplication", Severity: core.SeverityError, Message: "The attribute name is duplicated", Line: 1, Col: 21, Raw: "v-bind:attr"},
			},
		},
		{
			name:    "vue shorthand binding duplicates static class",
			dialect: "vue",
			src:     `<template><div class="card" :class="{ active }"></div></template>`,
			want: []lint.Result{
				{Rule: "attr-duplication", Severity: core.SeverityError, Message: "The attribute name is duplicated", Line: 1, Col: 29, Raw: ":class"},
			},
		},
		{
			name:    "vue bound class alone",
			dialect: "vue",
			src:     `<template><div :class="{ card: true, active }"></div></template>`,
		},
		{
			name:    "vue names are case-sensitive",
			dialect: "vue",
			src:     `<div tabindex tabIndex />`,
		},
		{
			name:    "svelte class directives",
			dialect: "svelte",
			src:     `<div class:selected="{isSelected}" class:focused="{isFocused}"></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := testutil.VerifyRule(t, "attr-duplication", tt.src, tt.dialect, true)
			if tt.want == nil {
				assert.Empty(t, results)
				return
			}
			assert.Equal(t, tt.want, results)
		})
	}
}

func TestInvalidAttr(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string // raw of reported locations
	}{
		{"valid", `<a href="/" target="_blank" referrerpolicy="no-referrer">x</a>`, nil},
		{"unknown attribute", `<div foo="1"></div>`, []string{"foo"}},
		{"bad enum", `<a referrerpolicy="always">x</a>`, []string{"always"}},
		{"bad int", `<td colspan="0"></td>`, []string{"0"}},
		{"boolean attribute", `<input disabled required>`, nil},
		{"data and aria attributes", `<div data-x="1" aria-hidden="true"></div>`, nil},
		{"custom element", `<my-element foo="bar"></my-element>`, nil},
		{"conditional attribute", `<input type="checkbox" checked>`, nil},
		{"yearless date", `<time datetime="12-25"></time><time datetime="--02-29"></time>`, nil},
		{"bad yearless date", `<time datetime="--02-30"></time>`, []string{"--02-30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := testutil.VerifyRule(t, "invalid-attr", tt.src, "", true)
			var raws []string
			for _, r := range results {
				raws = append(raws, r.Raw)
			}
			assert.Equal(t, tt.want, raws)
		})
	}
}

func TestInvalidAttr_Messages(t *testing.T) {
	results := testutil.VerifyRule(t, "invalid-attr", `<div foo></div><a referrerpolicy="x"></a>`, "", true)
	require.Len(t, results, 2)
	assert.Equal(t, `The "foo" attribute is not allowed`, results[0].Message)
	assert.Contains(t, results[1].Message, `The "referrerpolicy" attribute expects`)
	assert.Equal(t, 1, results[0].Line)
	assert.Equal(t, 6, results[0].Col)
}

func TestInvalidAttr_Options(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		options map[string]any
		want    []string
	}{
		{
			name:    "ignore prefix",
			src:     `<div x-data="{}" x-show="a"></div>`,
			options: map[string]any{"ignoreAttrNamePrefix": "x-"},
		},
		{
			name:    "ignore prefixes list",
			src:     `<div x-data="{}" ng-if="a"></div>`,
			options: map[string]any{"ignoreAttrNamePrefix": []any{"x-", "ng-"}},
		},
		{
			name:    "allow attrs",
			src:     `<div foo="1"></div>`,
			options: map[string]any{"allowAttrs": []any{"foo"}},
		},
		{
			name:    "disallow attrs",
			src:     `<div style="color: red"></div>`,
			options: map[string]any{"disallowAttrs": []any{"style"}},
			want:    []string{`The "style" attribute is disallowed`},
		},
		{
			name:    "enum override",
			src:     `<div data-state="open"></div><div data-state="shut"></div>`,
			options: map[string]any{"attrs": map[string]any{"data-state": map[string]any{"enum": []any{"open", "closed"}}}},
			want:    []string{`The "data-state" attribute expects "open", "closed"`},
		},
		{
			name:    "pattern override",
			src:     `<div data-id="a1"></div><div data-id="1a"></div>`,
			options: map[string]any{"attrs": map[string]any{"data-id": map[string]any{"pattern": "/^[a-z][0-9]$/"}}},
			want:    []string{`The "data-id" attribute must match the pattern /^[a-z][0-9]$/`},
		},
		{
			name:    "type override",
			src:     `<div data-n="3"></div><div data-n="x"></div>`,
			options: map[string]any{"attrs": map[string]any{"data-n": map[string]any{"type": "Uint"}}},
			want:    []string{`The "data-n" attribute expects Uint`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := testutil.VerifyRule(t, "invalid-attr", tt.src, "", map[string]any{"options": tt.options})
			if tt.want == nil {
				assert.Empty(t, results)
				return
			}
			assert.Equal(t, tt.want, messages(results))
		})
	}
}

func TestInvalidAttr_BadOverride(t *testing.T) {
	setting, err := lint.ParseRuleSetting(map[string]any{"options": map[string]any{
		"attrs": map[string]any{"data-x": map[string]any{"enum": []any{"a"}, "type": "Int"}},
	}})
	require.NoError(t, err)
	doc := testutil.Parse(t, `<div data-x="a"></div>`, "")
	engine, err := lint.NewEngine(lint.Options{Config: lint.NewConfig().Set("invalid-attr", setting)})
	require.NoError(t, err)

	_, err = engine.Verify(t.Context(), doc)
	var ce *lint.ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "invalid-attr", ce.Rule)
}

func TestInvalidAttr_Dialects(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
		src     string
		want    []string
	}{
		{"vue bound value is not checked", "vue", `<template><a :referrerpolicy="policy" @click="go" v-if="ok">x</a></template>`, nil},
		{"vue bound unknown name", "vue", `<template><div :foo="x"></div></template>`, []string{":foo"}},
		{"vue IDL name", "vue", `<template><div tabIndex="0"></div></template>`, nil},
		{"vue component", "vue", `<template><MyButton size="xl" /></template>`, nil},
		{"svelte directives", "svelte", `<input bind:value={name} on:input={go} class:x={y}>`, nil},
		{"svelte expression value", "svelte", `<td colspan={n}></td>`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := testutil.VerifyRule(t, "invalid-attr", tt.src, tt.dialect, true)
			var raws []string
			for _, r := range results {
				raws = append(raws, r.Raw)
			}
			assert.Equal(t, tt.want, raws)
		})
	}
}

func TestIDDuplication(t *testing.T) {
	results := testutil.VerifyRule(t, "id-duplication", `<div id="a"></div><p id="b"></p><span id="a"></span><i id="a"></i>`, "", true)
	require.Len(t, results, 2)
	assert.Equal(t, "Duplicate attribute id value", results[0].Message)
	assert.Equal(t, "a", results[0].Raw)
	assert.Equal(t, 43, results[0].Col)
}

func TestCharacterReference(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
		src     string
		want    []int // columns
	}{
		{"escaped", "", `<p>a &amp; b &lt; c &#169; &#x3C;</p>`, nil},
		{"bare ampersand", "", `<p>Tom & Jerry</p>`, []int{8}},
		{"angle brackets", "", `<p>a > b</p>`, []int{6}},
		{"unterminated reference", "", `<p>&amp</p>`, []int{4}},
		{"script is raw text", "", `<script>if (a < b && c) {}</script>`, nil},
		{"attribute values are not text", "", `<a title="a & b">x</a>`, nil},
		{"vue expression", "vue", "<template><p>{{ a > b && c }} & x</p></template>", []int{31}},
		{"svelte block", "svelte", `<p>{#if a < b}x{/if}</p>`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := testutil.VerifyRule(t, "character-reference", tt.src, tt.dialect, true)
			var cols []int
			for _, r := range results {
				cols = append(cols, r.Col)
			}
			assert.Equal(t, tt.want, cols)
		})
	}
}

func TestCharacterReference_Fix(t *testing.T) {
	cfg := lint.NewConfig().Enable("character-reference")
	out := testutil.Fix(t, "<p>a & b</p>\n<p>x > y &amp; z</p>", "", lint.Options{Config: cfg})
	assert.Equal(t, "<p>a &amp; b</p>\n<p>x &gt; y &amp; z</p>", out)
}

func TestParseError(t *testing.T) {
	results := testutil.VerifyRule(t, "parse-error", "<div></span></div>", "", true)
	require.Len(t, results, 1)
	assert.Equal(t, "The span is invalid element (1:6)", results[0].Message)
	assert.Equal(t, "</span>", results[0].Raw)
	assert.Equal(t, 6, results[0].Col)

	results = testutil.Verify(t, "<div></span></div>", "", lint.Options{
		Config:     lint.NewConfig().Enable("parse-error"),
		Translator: i18n.New("ja"),
	})
	assert.Equal(t, []string{"span は不正な要素です (1:6)"}, messages(results))
}
