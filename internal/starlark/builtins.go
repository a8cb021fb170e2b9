package starlark

import (
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/leapstack-labs/leapmark/pkg/core"
)

// Predeclared returns the globals every rule script sees: the struct
// constructor and the severity names.
func Predeclared() starlark.StringDict {
	return starlark.StringDict{
		"struct":  starlark.NewBuiltin("struct", starlarkstruct.Make),
		"ERROR":   starlark.String(core.SeverityError.String()),
		"WARNING": starlark.String(core.SeverityWarning.String()),
		"INFO":    starlark.String(core.SeverityInfo.String()),
	}
}

// reportBuiltin returns the report(message, attr=None) function handed to
// verify for one node. With attr the result points at that attribute.
func reportBuiltin(report func(message, attr string) error) *starlark.Builtin {
	return starlark.NewBuiltin("report", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var message, attr string
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "message", &message, "attr?", &attr); err != nil {
			return nil, err
		}
		if err := report(message, attr); err != nil {
			return nil, err
		}
		return starlark.None, nil
	})
}
