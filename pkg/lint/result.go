package lint

import (
	"sort"

	"github.com/leapstack-labs/leapmark/pkg/core"
)

// Result is one violation. It always points at a location captured in the
// document.
type Result struct {
	Rule     string        `json:"rule" msgpack:"rule"`
	Severity core.Severity `json:"severity" msgpack:"severity"`
	Message  string        `json:"message" msgpack:"message"`
	Line     int           `json:"line" msgpack:"line"`
	Col      int           `json:"col" msgpack:"col"`
	Raw      string        `json:"raw" msgpack:"raw"`
}

// SortResults orders results by line and column. Results at the same
// position keep their relative order.
func SortResults(rs []Result) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].Line != rs[j].Line {
			return rs[i].Line < rs[j].Line
		}
		return rs[i].Col < rs[j].Col
	})
}

// Count returns the number of results at each severity.
func Count(rs []Result) map[core.Severity]int {
	out := make(map[core.Severity]int, 3)
	for _, r := range rs {
		out[r.Severity]++
	}
	return out
}
