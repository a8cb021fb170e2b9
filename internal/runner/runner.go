// Package runner lints files: it resolves paths, picks a dialect per file,
// runs the engine over documents concurrently and applies fixes.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapmark/internal/cache"
	"github.com/leapstack-labs/leapmark/pkg/dialect"
	"github.com/leapstack-labs/leapmark/pkg/dom"
	"github.com/leapstack-labs/leapmark/pkg/lint"
	"github.com/leapstack-labs/leapmark/pkg/parser"
	"github.com/leapstack-labs/leapmark/pkg/spec"
)

// Options configure a Runner.
type Options struct {
	Engine *lint.Engine
	Spec   *spec.Store

	// Mappings pick dialects by file name before the extension fallback.
	Mappings []dialect.Mapping
	// Exclude holds glob patterns relative to Root.
	Exclude []string
	Root    string

	// Jobs bounds concurrent documents; zero means GOMAXPROCS.
	Jobs int
	// Fix rewrites documents with the fixable rules and writes them back
	// through WriteFile.
	Fix       bool
	WriteFile func(path string, data []byte) error

	// Cache, when set, holds results keyed by source, dialect and
	// ConfigKey. It is bypassed in fix mode.
	Cache     *cache.ResultCache
	ConfigKey string

	Logger *slog.Logger
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path    string        `json:"path"`
	Dialect string        `json:"dialect"`
	Results []lint.Result `json:"results"`
	// Fixed is set in fix mode when the source changed and was written.
	Fixed  bool   `json:"fixed,omitempty"`
	Output string `json:"-"`
	Cached bool   `json:"-"`
	// Err holds read, write and rule configuration errors. Results are
	// still valid for the rules that ran.
	Err error `json:"-"`
}

// Runner lints files with one engine.
type Runner struct {
	opts    Options
	root    string
	exclude []*regexp.Regexp
	logger  *slog.Logger
}

// New creates a runner.
func New(opts Options) (*Runner, error) {
	if opts.Engine == nil {
		return nil, errors.New("runner: engine is required")
	}
	if opts.Spec == nil {
		store, err := spec.Default()
		if err != nil {
			return nil, err
		}
		opts.Spec = store
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.GOMAXPROCS(0)
	}
	if opts.WriteFile == nil {
		opts.WriteFile = writeFile
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := &Runner{opts: opts, logger: logger}
	if opts.Root != "" {
		root, err := filepath.Abs(opts.Root)
		if err != nil {
			return nil, fmt.Errorf("runner root: %w", err)
		}
		r.root = root
	}
	for _, p := range opts.Exclude {
		re, err := compileGlob(p)
		if err != nil {
			return nil, err
		}
		r.exclude = append(r.exclude, re)
	}
	return r, nil
}

// Run lints files concurrently. The returned slice follows the order of
// files. Per-file problems land in FileResult.Err; the error return is
// only set when ctx ends the run.
func (r *Runner) Run(ctx context.Context, files []string) ([]FileResult, error) {
	out := make([]FileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Jobs)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = r.LintFile(ctx, f)
			if errors.Is(out[i].Err, context.Canceled) || errors.Is(out[i].Err, context.DeadlineExceeded) {
				return out[i].Err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}

// LintFile reads and lints one file.
func (r *Runner) LintFile(ctx context.Context, path string) FileResult {
	src, err := os.ReadFile(path) //nolint:gosec // G304: paths are the files the user asked to lint
	if err != nil {
		return FileResult{Path: path, Err: fmt.Errorf("read %s: %w", path, err)}
	}
	return r.LintSource(ctx, path, string(src))
}

// LintSource lints src as the content of path. In fix mode the fixed
// source is written back when it differs, and Results describe what is
// left after fixing.
func (r *Runner) LintSource(ctx context.Context, path, src string) FileResult {
	res := FileResult{Path: path}
	d, err := dialect.ForFile(path, r.opts.Mappings)
	if err != nil {
		res.Err = err
		return res
	}
	res.Dialect = d.Name

	key := cache.Key(src, d.Name, r.opts.ConfigKey)
	if !r.opts.Fix {
		if results, ok := r.opts.Cache.Get(key); ok {
			res.Results, res.Cached = results, true
			r.logger.Debug("cache hit", "path", path)
			return res
		}
	}

	doc := r.parse(path, src, d)
	if r.opts.Fix {
		fixed, err := r.opts.Engine.Fix(ctx, doc)
		if err != nil {
			res.Err = err
			return res
		}
		res.Output = fixed
		if fixed != src {
			if err := r.opts.WriteFile(path, []byte(fixed)); err != nil {
				res.Err = fmt.Errorf("write %s: %w", path, err)
				return res
			}
			res.Fixed = true
			r.logger.Info("fixed", "path", path)
		}
		doc = r.parse(path, fixed, d)
	}

	results, err := r.opts.Engine.Verify(ctx, doc)
	res.Results, res.Err = results, err
	if err == nil && !r.opts.Fix {
		r.opts.Cache.Put(key, results)
	}
	return res
}

func (r *Runner) parse(path, src string, d *dialect.Dialect) *dom.Document {
	doc, err := parser.Parse(src, parser.Options{Dialect: d, Classifier: r.opts.Spec, Logger: r.logger})
	if err != nil {
		r.logger.Debug("parse errors", "path", path, "err", err)
	}
	return doc
}

// writeFile replaces path, keeping its permissions.
func writeFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, data, mode)
}
