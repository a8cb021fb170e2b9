package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in     string
		want   Severity
		wantOK bool
	}{
		{"error", SeverityError, true},
		{"ERROR", SeverityError, true},
		{" warning ", SeverityWarning, true},
		{"warn", SeverityWarning, true},
		{"info", SeverityInfo, true},
		{"fatal", SeverityWarning, false},
		{"", SeverityWarning, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSeverity(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestSeverity_AtLeast(t *testing.T) {
	assert.True(t, SeverityError.AtLeast(SeverityWarning))
	assert.True(t, SeverityWarning.AtLeast(SeverityWarning))
	assert.False(t, SeverityInfo.AtLeast(SeverityWarning))
}

func TestSeverity_JSON(t *testing.T) {
	data, err := json.Marshal(map[string]Severity{"s": SeverityWarning})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"warning"}`, string(data))

	var out struct{ S Severity }
	require.NoError(t, json.Unmarshal([]byte(`{"S":"error"}`), &out))
	assert.Equal(t, SeverityError, out.S)
	assert.Error(t, json.Unmarshal([]byte(`{"S":"loud"}`), &out))
}
