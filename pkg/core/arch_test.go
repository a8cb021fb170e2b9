package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePath = "github.com/leapstack-labs/leapmark"

// packageImports returns the imports of the non-test files in dir, keyed
// by file name.
func packageImports(t *testing.T, dir string) map[string][]string {
	t.Helper()
	fset := token.NewFileSet()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}

	out := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		// Skip test files
		if strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}
		for _, imp := range f.Imports {
			out[path] = append(out[path], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return out
}

// TestCoreImportsOnlyStdlib verifies pkg/core has no dependencies.
// Every layer imports core, so core imports nothing but the standard library.
func TestCoreImportsOnlyStdlib(t *testing.T) {
	for file, imports := range packageImports(t, ".") {
		for _, importPath := range imports {
			// Allow stdlib (no dots in the first path element)
			if !strings.Contains(strings.SplitN(importPath, "/", 2)[0], ".") {
				continue
			}
			t.Errorf("%s imports forbidden package: %s", file, importPath)
		}
	}
}

// TestPublicPackagesDoNotImportInternal verifies no package under pkg/
// imports an internal package. pkg/ is usable without the CLI.
func TestPublicPackagesDoNotImportInternal(t *testing.T) {
	var dirs []string
	err := filepath.WalkDir("..", func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() != "data" {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk pkg/: %v", err)
	}

	for _, dir := range dirs {
		for file, imports := range packageImports(t, dir) {
			for _, importPath := range imports {
				if strings.HasPrefix(importPath, modulePath+"/internal/") {
					t.Errorf("%s imports internal package: %s (pkg/ must not import internal packages)", file, importPath)
				}
			}
		}
	}
}

// TestNodeModelDoesNotImportRules verifies the document model stays below
// the rule engine: pkg/dom, pkg/token and pkg/spec never import pkg/lint.
func TestNodeModelDoesNotImportRules(t *testing.T) {
	for _, dir := range []string{"../dom", "../token", "../spec", "../selector"} {
		for file, imports := range packageImports(t, dir) {
			for _, importPath := range imports {
				if strings.HasPrefix(importPath, modulePath+"/pkg/lint") {
					t.Errorf("%s imports %s (the node model must not depend on rules)", file, importPath)
				}
			}
		}
	}
}
