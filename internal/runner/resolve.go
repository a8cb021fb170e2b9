package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapmark/pkg/dialect"
)

// Resolve expands paths into the files to lint, in input order. Files
// named explicitly are kept whatever their extension; directories are
// walked for files some dialect handles. Hidden directories and
// node_modules are skipped, and excluded paths are dropped either way.
func (r *Runner) Resolve(paths []string) ([]string, error) {
	var files []string
	seen := map[string]bool{}
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		if !info.IsDir() {
			if !r.excluded(p) {
				add(filepath.Clean(p))
			}
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				if r.excluded(path) {
					return filepath.SkipDir
				}
				return nil
			}
			if r.wanted(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
		slices.Sort(found)
		for _, f := range found {
			add(f)
		}
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return files, nil
}

// ErrNoFiles is returned when the given paths hold nothing to lint.
var ErrNoFiles = errors.New("no files to lint")

func skipDir(name string) bool {
	return name == "node_modules" || (len(name) > 1 && name[0] == '.')
}

// wanted reports whether a file found by walking should be linted.
func (r *Runner) wanted(path string) bool {
	if r.excluded(path) {
		return false
	}
	for _, name := range dialect.List() {
		if d, ok := dialect.Get(name); ok && d.HandlesFile(path) {
			return true
		}
	}
	return false
}

// Excluded reports whether path matches an exclude pattern.
func (r *Runner) Excluded(path string) bool { return r.excluded(path) }

// Wants reports whether path would be linted when found by Resolve.
func (r *Runner) Wants(path string) bool { return r.wanted(path) }

func (r *Runner) excluded(path string) bool {
	rel := filepath.ToSlash(path)
	if r.root != "" {
		if abs, err := filepath.Abs(path); err == nil {
			if p, err := filepath.Rel(r.root, abs); err == nil && !strings.HasPrefix(p, "..") {
				rel = filepath.ToSlash(p)
			}
		}
	}
	rel = strings.TrimPrefix(rel, "./")
	for _, re := range r.exclude {
		if re.MatchString(rel) {
			return true
		}
	}
	return false
}

// compileGlob turns an exclude pattern into a regexp. "**" crosses
// directories, "*" and "?" do not. A pattern matches the path itself or
// anything below it.
func compileGlob(pattern string) (*regexp.Regexp, error) {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	var sb strings.Builder
	sb.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				i++
				if i+1 < len(pattern) && pattern[i+1] == '/' {
					// "**/" may match zero directories
					i++
					sb.WriteString("(?:.*/)?")
					continue
				}
				sb.WriteString(".*")
				continue
			}
			sb.WriteString("[^/]*")
		case '?':
			sb.WriteString("[^/]")
		default:
			sb.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
		}
	}
	sb.WriteString("(?:/.*)?$")
	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, fmt.Errorf("exclude pattern %q: %w", pattern, err)
	}
	return re, nil
}
