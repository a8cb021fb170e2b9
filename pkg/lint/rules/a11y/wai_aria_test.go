package a11y_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmark/internal/testutil"
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

func TestWaiAria(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"valid", `<button aria-pressed="mixed" aria-label="Bold">B</button>`, []string{}},
		{"unknown role", `<div role="foo"></div>`, []string{`The "foo" role does not exist`}},
		{"abstract role", `<div role="command"></div>`, []string{`The "command" role is abstract and must not be used`}},
		{"implicit role", `<button role="button"></button>`, []string{`The "button" role is the implicit role of the <button> element`}},
		{"role not permitted", `<ul role="button"></ul>`, []string{`The "button" role is not permitted on the <ul> element`}},
		{"role fallback list", `<ul role="menu foo"></ul>`, []string{}},
		{"unknown property", `<div aria-foo="x"></div>`, []string{`The "aria-foo" ARIA state/property does not exist`}},
		{"bad value", `<div aria-hidden="yes"></div>`, []string{`The "aria-hidden" ARIA state/property expects "true", "false" or "undefined"`}},
		{"bad token", `<div aria-live="loud"></div>`, []string{`The "aria-live" ARIA state/property expects "assertive", "off", "polite"`}},
		{"property not permitted on implicit role", `<div aria-pressed="true"></div>`, []string{`The "aria-pressed" ARIA state/property is not permitted on the "generic" role`}},
		{"prohibited naming on generic", `<span aria-label="x"></span>`, []string{`The "aria-label" ARIA state/property is not permitted on the "generic" role`}},
		{"required property missing", `<div role="checkbox"></div>`, []string{`The "aria-checked" ARIA state/property is required on the "checkbox" role`}},
		{"required property present", `<div role="checkbox" aria-checked="false" tabindex="0"></div>`, []string{}},
		{"implicit property", `<h1 aria-level="1">x</h1>`, []string{`The "aria-level" ARIA state/property duplicates the implicit value`}},
		{"other level", `<h1 aria-level="2">x</h1>`, []string{}},
		{"no aria allowed", `<meta aria-hidden="true">`, []string{`The <meta> element does not accept ARIA roles or properties`}},
		{"role on meta", `<meta role="none">`, []string{`The <meta> element does not accept ARIA roles or properties`}},
		{"naming prohibited", `<img src="a.png" alt="" aria-label="x">`, []string{`The <img> element must not be named`}},
		{"deprecated property", `<div aria-grabbed="true"></div>`, []string{`The "aria-grabbed" ARIA state/property is deprecated`}},
		{"only aria-hidden", `<br aria-hidden="true"><br aria-label="x">`, []string{`The "aria-label" ARIA state/property is not permitted on the <br> element`}},
		{"conditional implicit role", `<a href="/" role="link">x</a><a role="link">y</a>`, []string{`The "link" role is the implicit role of the <a> element`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := testutil.VerifyRule(t, "wai-aria", tt.src, "", true)
			assert.Equal(t, tt.want, append([]string{}, messages(results)...))
		})
	}
}

func TestWaiAria_Locations(t *testing.T) {
	results := testutil.VerifyRule(t, "wai-aria", `<div role="foo" aria-bar="1"></div>`, "", true)
	require.Len(t, results, 2)
	assert.Equal(t, "foo", results[0].Raw)
	assert.Equal(t, 12, results[0].Col)
	assert.Equal(t, "aria-bar", results[1].Raw)
	assert.Equal(t, 17, results[1].Col)
}

func TestWaiAria_Options(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		options map[string]any
		want    []string
	}{
		{"checkingValue off", `<div aria-hidden="yes"></div>`, map[string]any{"checkingValue": false}, []string{}},
		{"deprecated off", `<div aria-grabbed="true"></div>`, map[string]any{"checkingDeprecatedProps": false}, []string{}},
		{"permitted off", `<div aria-pressed="true"></div>`, map[string]any{"permittedAriaProps": false}, []string{}},
		{"implicit role allowed", `<button role="button"></button>`, map[string]any{"disallowSetImplicitRole": false}, []string{}},
		{"implicit props allowed", `<h1 aria-level="1">x</h1>`, map[string]any{"disallowSetImplicitProps": false}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := testutil.VerifyRule(t, "wai-aria", tt.src, "", map[string]any{"options": tt.options})
			assert.Equal(t, tt.want, append([]string{}, messages(results)...))
		})
	}
}

func TestWaiAria_Versions(t *testing.T) {
	cfg := lint.NewConfig().Enable("wai-aria")

	results := testutil.Verify(t, `<div role="generic"></div>`, "", lint.Options{Config: cfg, AriaVersion: "1.1"})
	assert.Equal(t, []string{`The "generic" role does not exist`}, messages(results))

	results = testutil.Verify(t, `<div role="generic"></div>`, "", lint.Options{Config: cfg, AriaVersion: "1.2"})
	assert.Equal(t, []string{`The "generic" role is the implicit role of the <div> element`}, messages(results))

	// aria-description only exists from 1.3
	results = testutil.Verify(t, `<div aria-description="x"></div>`, "", lint.Options{Config: cfg, AriaVersion: "1.2"})
	assert.Equal(t, []string{`The "aria-description" ARIA state/property does not exist`}, messages(results))
}

func TestWaiAria_Dialects(t *testing.T) {
	results := testutil.VerifyRule(t, "wai-aria", `<template><div :aria-hidden="hidden" :role="r"></div></template>`, "vue", true)
	assert.Empty(t, results)
}

func TestWaiAria_Japanese(t *testing.T) {
	results := testutil.Verify(t, `<div role="foo"></div>`, "", lint.Options{
		Config:     lint.NewConfig().Enable("wai-aria"),
		Translator: i18n.New("ja"),
	})
	assert.Equal(t, []string{`"foo" ロールは存在しません`}, messages(results))
}
