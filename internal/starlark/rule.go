package starlark

import (
	"context"
	"fmt"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/leapmark/pkg/dom"
	"github.com/leapstack-labs/leapmark/pkg/lint"
)

// script is a loaded rule script. The module globals are frozen after
// loading, so fn may run on several threads at once.
type script struct {
	path        string
	name        string
	nodeType    dom.NodeType
	fn          *starlark.Function
	withOptions bool
	pool        *ThreadPool
}

// ScriptError is returned when verify fails at runtime.
type ScriptError struct {
	File string
	Rule string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s: rule %s: %v", e.File, e.Rule, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

func (s *script) verify(ctx *lint.Context) error {
	return ctx.Each(s.nodeType, func(n dom.Node, set lint.Setting) error {
		return s.call(ctx, n, set)
	})
}

func (s *script) call(ctx *lint.Context, n dom.Node, set lint.Setting) error {
	thread := s.pool.Get(s.name)
	// a canceled thread stays canceled, so it is not returned to the pool
	stop := context.AfterFunc(ctx.Context(), func() {
		thread.Cancel(context.Cause(ctx.Context()).Error())
	})
	defer func() {
		if stop() {
			s.pool.Put(thread)
		}
	}()

	report := reportBuiltin(func(message, attr string) error {
		loc := n.Location()
		if attr != "" {
			a, ok := n.GetAttribute(attr)
			if !ok {
				return fmt.Errorf("report: node has no attribute %q", attr)
			}
			loc = a.Location()
		}
		ctx.Report(n, loc, message)
		return nil
	})

	args := starlark.Tuple{NodeToStarlark(n), report}
	if s.withOptions {
		opts, err := GoToStarlark(set.Options)
		if err != nil {
			return &ScriptError{File: s.path, Rule: s.name, Err: fmt.Errorf("options: %w", err)}
		}
		args = append(args, opts)
	}

	if _, err := starlark.Call(thread, s.fn, args, nil); err != nil {
		if ctxErr := ctx.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		return &ScriptError{File: s.path, Rule: s.name, Err: err}
	}
	return nil
}
