package lsp

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmark/internal/runner"
	"github.com/leapstack-labs/leapmark/internal/testutil"
	"github.com/leapstack-labs/leapmark/pkg/lint"
	_ "github.com/leapstack-labs/leapmark/pkg/lint/rules" // register rules
	"github.com/leapstack-labs/leapmark/pkg/spec"
)

// testLoader builds workspaces that run the given rules and exclude
// vendor/.
func testLoader(t *testing.T, rules ...string) Loader {
	t.Helper()
	return func(root string) (*Workspace, error) {
		store, err := spec.Default()
		if err != nil {
			return nil, err
		}
		cfg := lint.NewConfig()
		for _, r := range rules {
			cfg.Enable(r)
		}
		engine, err := lint.NewEngine(lint.Options{Config: cfg, Spec: store, Logger: testutil.NewTestLogger(t)})
		if err != nil {
			return nil, err
		}
		base := runner.Options{
			Engine:  engine,
			Spec:    store,
			Root:    root,
			Exclude: []string{"vendor/**"},
			Jobs:    1,
		}
		linter, err := runner.New(base)
		if err != nil {
			return nil, err
		}
		fix := base
		fix.Fix = true
		fix.WriteFile = func(string, []byte) error { return nil }
		fixer, err := runner.New(fix)
		if err != nil {
			return nil, err
		}
		return &Workspace{Root: root, Linter: linter, Fixer: fixer, Spec: store}, nil
	}
}

// newTestServer returns a server with a loaded workspace rooted at a
// temporary directory.
func newTestServer(t *testing.T, rules ...string) (*Server, string) {
	t.Helper()
	root := t.TempDir()
	s := NewServer(strings.NewReader(""), io.Discard, Options{
		Load:   testLoader(t, rules...),
		Logger: testutil.NewTestLogger(t),
	})
	s.projectRoot = root
	s.loadWorkspace()
	require.NoError(t, s.workspaceError())
	return s, root
}

// openAtEnd opens a document and returns the position at its end.
func openAtEnd(s *Server, uri, content string) Position {
	s.documents.Open(uri, content, 1)
	doc := s.documents.Get(uri)
	return doc.OffsetToPosition(len(content))
}
