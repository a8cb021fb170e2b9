package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmark/pkg/core"
	"github.com/leapstack-labs/leapmark/pkg/lint"
)

func TestParseRuleSetting(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    lint.RuleSetting
		wantErr bool
	}{
		{name: "true", raw: true, want: lint.RuleSetting{}},
		{name: "false", raw: false, want: lint.RuleSetting{Disabled: true}},
		{name: "off", raw: "off", want: lint.RuleSetting{Disabled: true}},
		{name: "severity", raw: "warn", want: lint.RuleSetting{Severity: core.SeverityWarning, HasSeverity: true}},
		{name: "value", raw: "single", want: lint.RuleSetting{Value: "single"}},
		{name: "number value", raw: 3, want: lint.RuleSetting{Value: 3}},
		{
			name: "map",
			raw: map[string]any{
				"severity": "info",
				"value":    "upper",
				"options":  map[string]any{"a": 1},
			},
			want: lint.RuleSetting{Severity: core.SeverityInfo, HasSeverity: true, Value: "upper", Options: map[string]any{"a": 1}},
		},
		{name: "legacy option key", raw: map[string]any{"option": map[string]any{"a": 1}}, want: lint.RuleSetting{Options: map[string]any{"a": 1}}},
		{name: "bad severity", raw: map[string]any{"severity": "fatal"}, wantErr: true},
		{name: "unknown key", raw: map[string]any{"level": "error"}, wantErr: true},
		{name: "options not a map", raw: map[string]any{"options": []any{1}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lint.ParseRuleSetting(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRules(t *testing.T) {
	rules, err := lint.ParseRules(map[string]any{"a": true, "b": "error"})
	require.NoError(t, err)
	assert.Len(t, rules, 2)

	_, err = lint.ParseRules(map[string]any{"c": map[string]any{"nope": 1}})
	assert.ErrorContains(t, err, "rule c")
}

func TestConfig_Unknown(t *testing.T) {
	cfg := lint.NewConfig().Enable("every-element").Enable("zzz")
	cfg.NodeRules = []lint.NodeRule{{Selector: "a", Rules: map[string]lint.RuleSetting{"aaa": {}}}}
	assert.Equal(t, []string{"aaa", "zzz"}, cfg.Unknown(testRegistry()))
}

func TestDecodeOptions(t *testing.T) {
	var opts struct {
		Names []string `mapstructure:"names"`
		Limit int      `mapstructure:"limit"`
		On    bool     `mapstructure:"on"`
	}
	err := lint.DecodeOptions(map[string]any{"names": "x", "limit": "3", "on": true}, &opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, opts.Names)
	assert.Equal(t, 3, opts.Limit)
	assert.True(t, opts.On)
}

func TestSortResults(t *testing.T) {
	rs := []lint.Result{
		{Rule: "b", Line: 2, Col: 1},
		{Rule: "a", Line: 1, Col: 5},
		{Rule: "c", Line: 1, Col: 5},
		{Rule: "d", Line: 1, Col: 1},
	}
	lint.SortResults(rs)
	got := make([]string, len(rs))
	for i, r := range rs {
		got[i] = r.Rule
	}
	assert.Equal(t, []string{"d", "a", "c", "b"}, got)
}
