package starlark

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/leapmark/pkg/core"
	"github.com/leapstack-labs/leapmark/pkg/dom"
	"github.com/leapstack-labs/leapmark/pkg/lint"
)

// LoadError is returned when a rule script cannot be loaded.
type LoadError struct {
	File    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// Loader turns .star files into lint rules. Rules from one Loader share its
// thread pool. A Loader is not safe for concurrent loading.
type Loader struct {
	pool    *ThreadPool
	sources map[string][]byte
}

// NewLoader creates a loader whose rules run on pool.
func NewLoader(pool *ThreadPool) *Loader {
	if pool == nil {
		pool = NewThreadPool(0, nil)
	}
	return &Loader{pool: pool, sources: make(map[string][]byte)}
}

// Digest identifies the scripts loaded so far by path and content.
func (l *Loader) Digest() string {
	h := sha256.New()
	for _, path := range slices.Sorted(maps.Keys(l.sources)) {
		_, _ = fmt.Fprintf(h, "%d:%s%d:", len(path), path, len(l.sources[path]))
		_, _ = h.Write(l.sources[path])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// LoadFiles loads every script in paths. Relative paths resolve against
// baseDir. A directory loads all its *.star files.
func (l *Loader) LoadFiles(baseDir string, paths []string) ([]lint.Rule, error) {
	var rules []lint.Rule
	seen := map[string]string{}
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		files, err := scriptFiles(p)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			rule, err := l.LoadFile(f)
			if err != nil {
				return nil, err
			}
			if prev, ok := seen[rule.Name()]; ok {
				return nil, &LoadError{File: f, Message: fmt.Sprintf("rule %q is already defined in %s", rule.Name(), prev)}
			}
			seen[rule.Name()] = f
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

func scriptFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	files, err := filepath.Glob(filepath.Join(path, "*.star"))
	if err != nil {
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	return files, nil
}

// LoadFile loads a single rule script.
func (l *Loader) LoadFile(path string) (lint.Rule, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: paths come from the user's configuration
	if err != nil {
		return nil, &LoadError{File: path, Message: fmt.Sprintf("failed to read file: %v", err)}
	}
	return l.Load(path, content)
}

// Load executes a rule script and builds the rule it defines. The script
// must set name and verify; severity, description, node_type and options
// are optional.
func (l *Loader) Load(path string, src []byte) (lint.Rule, error) {
	l.sources[path] = src
	thread := l.pool.Get("load:" + filepath.Base(path))
	defer l.pool.Put(thread)

	globals, err := starlark.ExecFile(thread, path, src, Predeclared()) //nolint:staticcheck // SA1019: will migrate to ExecFileOptions later
	if err != nil {
		return nil, &LoadError{File: path, Message: fmt.Sprintf("Starlark execution error: %v", err)}
	}

	s := &script{path: path, pool: l.pool}
	def := lint.RuleDef{
		Category: "custom",
		Severity: core.SeverityWarning,
		Source:   "starlark",
		Verify:   s.verify,
	}
	fail := func(format string, args ...any) (lint.Rule, error) {
		return nil, &LoadError{File: path, Message: fmt.Sprintf(format, args...)}
	}

	name, ok := stringGlobal(globals, "name")
	if !ok || name == "" {
		return fail("name must be a non-empty string")
	}
	def.Name, s.name = name, name
	def.DefaultValue = true

	if v, ok := stringGlobal(globals, "severity"); ok {
		sev, valid := core.ParseSeverity(v)
		if !valid {
			return fail("invalid severity %q", v)
		}
		def.Severity = sev
	}
	if v, ok := stringGlobal(globals, "description"); ok {
		def.Description = v
	}

	s.nodeType = dom.ElementNode
	if v, ok := stringGlobal(globals, "node_type"); ok {
		switch strings.ToLower(v) {
		case "element":
		case "text":
			s.nodeType = dom.TextNode
		case "comment":
			s.nodeType = dom.CommentNode
		case "all", "":
			s.nodeType = 0
		default:
			return fail("unknown node_type %q", v)
		}
	}

	if v, ok := globals["options"]; ok {
		goValue, err := ToGo(v)
		if err != nil {
			return fail("options: %v", err)
		}
		opts, ok := goValue.(map[string]any)
		if !ok {
			return fail("options must be a dict, got %s", v.Type())
		}
		def.DefaultOptions = opts
		def.ConfigKeys = slices.Sorted(maps.Keys(opts))
	}

	fn, ok := globals["verify"].(*starlark.Function)
	if !ok {
		return fail("verify must be a function")
	}
	switch fn.NumParams() {
	case 2:
	case 3:
		s.withOptions = true
	default:
		return fail("verify must take (node, report) or (node, report, options)")
	}
	s.fn = fn

	return lint.Wrap(def), nil
}

func stringGlobal(globals starlark.StringDict, name string) (string, bool) {
	v, ok := globals[name]
	if !ok {
		return "", false
	}
	s, ok := starlark.AsString(v)
	return s, ok
}
