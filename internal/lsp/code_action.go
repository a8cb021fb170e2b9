package lsp

import (
	"context"
	"encoding/json"
	"slices"
)

// handleCodeAction handles the textDocument/codeAction request.
func (s *Server) handleCodeAction(ctx context.Context, msg *JSONRPCMessage) error {
	var params CodeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	actions := s.getCodeActions(ctx, params)
	s.sendResponse(msg.ID, actions, nil)
	return nil
}

// getCodeActions offers the fixed document as one edit. Fixable rules
// rewrite the whole document at once, so a quick fix for one diagnostic
// applies every fix.
func (s *Server) getCodeActions(ctx context.Context, params CodeActionParams) []CodeAction {
	actions := []CodeAction{}

	ws := s.currentWorkspace()
	doc := s.documents.Get(params.TextDocument.URI)
	if ws == nil || ws.Fixer == nil || doc == nil {
		return actions
	}
	if len(params.Context.Only) > 0 &&
		!slices.Contains(params.Context.Only, CodeActionKindQuickFix) &&
		!slices.Contains(params.Context.Only, CodeActionKindSourceFixAll) {
		return actions
	}

	path := URIToPath(doc.URI)
	if !ws.Fixer.Wants(path) {
		return actions
	}
	res := ws.Fixer.LintSource(ctx, path, doc.Content)
	if res.Err != nil {
		s.logger.Warn("fix failed", "path", path, "error", res.Err)
		return actions
	}
	if !res.Fixed || res.Output == doc.Content {
		return actions
	}

	// Diagnostics that the fixed document no longer has.
	left := make(map[string]int)
	for _, r := range res.Results {
		left[r.Rule]++
	}
	var resolved []Diagnostic
	for _, d := range params.Context.Diagnostics {
		if d.Source == diagnosticSource && left[d.Code] == 0 {
			resolved = append(resolved, d)
		}
	}

	edit := &WorkspaceEdit{
		Changes: map[string][]TextEdit{
			doc.URI: {fullDocumentEdit(doc, res.Output)},
		},
	}

	if len(resolved) > 0 && wantsKind(params.Context.Only, CodeActionKindQuickFix) {
		actions = append(actions, CodeAction{
			Title:       "Fix all auto-fixable problems",
			Kind:        CodeActionKindQuickFix,
			Diagnostics: resolved,
			IsPreferred: true,
			Edit:        edit,
		})
	}
	if wantsKind(params.Context.Only, CodeActionKindSourceFixAll) {
		actions = append(actions, CodeAction{
			Title: "leapmark: fix all",
			Kind:  CodeActionKindSourceFixAll,
			Edit:  edit,
		})
	}
	return actions
}

func wantsKind(only []CodeActionKind, kind CodeActionKind) bool {
	return len(only) == 0 || slices.Contains(only, kind)
}

// fullDocumentEdit replaces the whole content of doc with text.
func fullDocumentEdit(doc *Document, text string) TextEdit {
	return TextEdit{
		Range: Range{
			Start: Position{},
			End:   doc.OffsetToPosition(len(doc.Content)),
		},
		NewText: text,
	}
}
