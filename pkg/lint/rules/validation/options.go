package validation

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// optionsKey returns a stable key for an options map, for caching work
// derived from it.
func optionsKey(opts map[string]any) string {
	if len(opts) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, k := range slices.Sorted(maps.Keys(opts)) {
		fmt.Fprintf(&sb, "%s=%#v;", k, opts[k])
	}
	return sb.String()
}
