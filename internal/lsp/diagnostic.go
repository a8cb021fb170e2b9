package lsp

import (
	"context"
	"unicode/utf8"

	"github.com/leapstack-labs/leapmark/pkg/core"
	"github.com/leapstack-labs/leapmark/pkg/lint"
)

const diagnosticSource = "leapmark"

// publishDiagnostics lints the document and publishes the results.
// Documents outside the linted file set get an empty list so stale
// diagnostics are cleared.
func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: s.diagnose(ctx, doc),
	})
}

// diagnose runs the workspace linter over the document's current content.
func (s *Server) diagnose(ctx context.Context, doc *Document) []Diagnostic {
	diagnostics := []Diagnostic{}

	ws := s.currentWorkspace()
	if ws == nil {
		return diagnostics
	}
	path := URIToPath(doc.URI)
	if !ws.Linter.Wants(path) {
		s.logger.Debug("not linted", "path", path)
		return diagnostics
	}

	res := ws.Linter.LintSource(ctx, path, doc.Content)
	if res.Err != nil {
		s.logger.Warn("lint failed", "path", path, "error", res.Err)
	}
	for _, r := range res.Results {
		diagnostics = append(diagnostics, toDiagnostic(doc, r))
	}
	return diagnostics
}

// toDiagnostic converts a lint result. The range covers the raw source
// the rule reported, or a single character when it reported none.
func toDiagnostic(doc *Document, r lint.Result) Diagnostic {
	start := doc.LineColumnToOffset(r.Line, r.Col)
	end := start + len(r.Raw)
	if r.Raw == "" && end < len(doc.Content) {
		_, size := utf8.DecodeRuneInString(doc.Content[end:])
		end += size
	}
	return Diagnostic{
		Range: Range{
			Start: doc.OffsetToPosition(start),
			End:   doc.OffsetToPosition(end),
		},
		Severity: toLSPSeverity(r.Severity),
		Code:     r.Rule,
		Source:   diagnosticSource,
		Message:  r.Message,
	}
}

// toLSPSeverity converts core.Severity to LSP DiagnosticSeverity.
func toLSPSeverity(s core.Severity) DiagnosticSeverity {
	switch s {
	case core.SeverityError:
		return DiagnosticSeverityError
	case core.SeverityWarning:
		return DiagnosticSeverityWarning
	case core.SeverityInfo:
		return DiagnosticSeverityInformation
	default:
		return DiagnosticSeverityWarning
	}
}
