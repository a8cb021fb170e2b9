package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/leapstack-labs/leapmark/internal/runner"
	"github.com/leapstack-labs/leapmark/pkg/spec"
)

// ErrExitWithoutShutdown is returned by Run when the client sends exit
// before shutdown.
var ErrExitWithoutShutdown = errors.New("lsp: exit before shutdown")

// Workspace is what the server needs to lint the documents of one project.
type Workspace struct {
	Root string
	// Linter verifies documents. Fixer runs in fix mode and must not
	// write to disk; its Output is offered as a code action.
	Linter *runner.Runner
	Fixer  *runner.Runner
	Spec   *spec.Store
	// AriaVersion selects the roles and states offered for completion.
	AriaVersion string
	// ConfigFile is reloaded when saved. Empty when the project has none.
	ConfigFile string
}

func (w *Workspace) ariaVersion() string {
	if w.AriaVersion != "" {
		return w.AriaVersion
	}
	return w.Spec.DefaultAriaVersion()
}

// Loader builds the workspace for a project root.
type Loader func(root string) (*Workspace, error)

// Options configure a Server.
type Options struct {
	Load   Loader
	Logger *slog.Logger
}

// Server implements the Language Server Protocol for markup documents.
type Server struct {
	documents *DocumentStore

	load        Loader
	projectRoot string
	initialized bool

	wsMu      sync.RWMutex
	workspace *Workspace
	loadErr   error

	// I/O
	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex

	logger *slog.Logger

	shutdown   bool
	exited     bool
	shutdownMu sync.RWMutex
}

// NewServer creates a new LSP server instance.
func NewServer(reader io.Reader, writer io.Writer, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		documents: NewDocumentStore(),
		load:      opts.Load,
		reader:    bufio.NewReader(reader),
		writer:    writer,
		logger:    logger,
	}
}

// Run processes JSON-RPC messages until the client sends exit, the input
// ends or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("leapmark language server starting")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Info("client disconnected")
				return nil
			}
			s.logger.Error("error reading message", "error", err)
			continue
		}

		if err := s.handleMessage(ctx, msg); err != nil {
			s.logger.Error("error handling message", "method", msg.Method, "error", err)
		}

		s.shutdownMu.RLock()
		exited, shutdown := s.exited, s.shutdown
		s.shutdownMu.RUnlock()
		if exited {
			if !shutdown {
				return ErrExitWithoutShutdown
			}
			return nil
		}
	}
}

// JSONRPCMessage represents a JSON-RPC 2.0 message.
type JSONRPCMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *JSONRPCError    `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC error.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
	codeInvalidRequest = -32600
)

// readMessage reads a JSON-RPC message from the input stream.
func (s *Server) readMessage() (*JSONRPCMessage, error) {
	var contentLength int
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			break // End of headers
		}

		if lengthStr, ok := strings.CutPrefix(line, "Content-Length: "); ok {
			contentLength, err = strconv.Atoi(lengthStr)
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
		}
	}

	if contentLength == 0 {
		return nil, errors.New("missing Content-Length header")
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, body); err != nil {
		return nil, fmt.Errorf("error reading body: %w", err)
	}

	var msg JSONRPCMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		s.sendResponse(nil, nil, &JSONRPCError{Code: codeParseError, Message: err.Error()})
		return nil, fmt.Errorf("error parsing message: %w", err)
	}

	return &msg, nil
}

// sendResponse sends a JSON-RPC response.
func (s *Server) sendResponse(id *json.RawMessage, result any, err *JSONRPCError) {
	msg := JSONRPCMessage{
		JSONRPC: "2.0",
		ID:      id,
	}

	if err != nil {
		msg.Error = err
	} else {
		resultBytes, _ := json.Marshal(result)
		msg.Result = resultBytes
	}

	s.writeMessage(&msg)
}

// sendNotification sends a JSON-RPC notification (no ID).
func (s *Server) sendNotification(method string, params any) {
	msg := JSONRPCMessage{
		JSONRPC: "2.0",
		Method:  method,
	}

	if params != nil {
		paramsBytes, _ := json.Marshal(params)
		msg.Params = paramsBytes
	}

	s.writeMessage(&msg)
}

// writeMessage writes a JSON-RPC message to the output stream.
func (s *Server) writeMessage(msg *JSONRPCMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("error marshaling message", "error", err)
		return
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(body))
	_, _ = s.writer.Write([]byte(header))
	_, _ = s.writer.Write(body)
}

// handleMessage dispatches a message to the appropriate handler.
func (s *Server) handleMessage(ctx context.Context, msg *JSONRPCMessage) error {
	s.logger.Debug("received", "method", msg.Method)

	s.shutdownMu.RLock()
	shutdown := s.shutdown
	s.shutdownMu.RUnlock()
	if shutdown && msg.Method != "exit" {
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidRequest, Message: "server is shutting down"})
		}
		return nil
	}

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return s.handleInitialized(msg)
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		return s.handleExit(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(ctx, msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/didChange":
		return s.handleDidChange(ctx, msg)
	case "textDocument/didSave":
		return s.handleDidSave(ctx, msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/codeAction":
		return s.handleCodeAction(ctx, msg)
	default:
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{
				Code:    codeMethodNotFound,
				Message: "Method not found: " + msg.Method,
			})
		}
		return nil
	}
}

// --- Lifecycle handlers ---

func (s *Server) handleInitialize(msg *JSONRPCMessage) error {
	var params InitializeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	root := params.RootURI
	if root == "" && len(params.WorkspaceFolders) > 0 {
		root = params.WorkspaceFolders[0].URI
	}
	s.projectRoot = URIToPath(root)
	s.logger.Info("project root", "path", s.projectRoot)
	s.loadWorkspace()

	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
				Save: &SaveOptions{
					IncludeText: true,
				},
			},
			CompletionProvider: &CompletionOptions{
				TriggerCharacters: []string{"<", " ", "\"", "'"},
			},
			HoverProvider: true,
			CodeActionProvider: &CodeActionOptions{
				CodeActionKinds: []CodeActionKind{CodeActionKindQuickFix, CodeActionKindSourceFixAll},
			},
		},
	}

	s.sendResponse(msg.ID, result, nil)
	return nil
}

func (s *Server) handleInitialized(_ *JSONRPCMessage) error {
	s.initialized = true
	s.logger.Info("server initialized")

	if err := s.workspaceError(); err != nil {
		s.sendNotification("window/showMessage", &ShowMessageParams{
			Type:    MessageTypeError,
			Message: "leapmark: " + err.Error(),
		})
	}
	return nil
}

func (s *Server) handleShutdown(msg *JSONRPCMessage) error {
	s.shutdownMu.Lock()
	s.shutdown = true
	s.shutdownMu.Unlock()

	s.sendResponse(msg.ID, nil, nil)
	s.logger.Info("server shutdown")
	return nil
}

func (s *Server) handleExit(_ *JSONRPCMessage) error {
	s.shutdownMu.Lock()
	s.exited = true
	s.shutdownMu.Unlock()
	s.logger.Info("server exit")
	return nil
}

// --- Document handlers ---

func (s *Server) handleDidOpen(ctx context.Context, msg *JSONRPCMessage) error {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.documents.Open(params.TextDocument.URI, params.TextDocument.Text, params.TextDocument.Version)
	s.logger.Debug("opened", "uri", params.TextDocument.URI)

	s.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil
}

func (s *Server) handleDidClose(msg *JSONRPCMessage) error {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.documents.Close(params.TextDocument.URI)
	s.logger.Debug("closed", "uri", params.TextDocument.URI)

	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []Diagnostic{},
	})
	return nil
}

func (s *Server) handleDidChange(ctx context.Context, msg *JSONRPCMessage) error {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	// Full sync: the last change holds the whole document.
	if len(params.ContentChanges) > 0 {
		lastChange := params.ContentChanges[len(params.ContentChanges)-1]
		s.documents.Update(params.TextDocument.URI, lastChange.Text, params.TextDocument.Version)
	}

	s.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil
}

func (s *Server) handleDidSave(ctx context.Context, msg *JSONRPCMessage) error {
	var params DidSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	path := URIToPath(params.TextDocument.URI)
	s.logger.Debug("saved", "path", path)

	if !s.isConfigFile(path) {
		return nil
	}

	// Rules or exclusions may have changed; relint everything open.
	s.loadWorkspace()
	if err := s.workspaceError(); err != nil {
		s.sendNotification("window/showMessage", &ShowMessageParams{
			Type:    MessageTypeError,
			Message: "leapmark: " + err.Error(),
		})
	}
	for _, uri := range s.documents.List() {
		s.publishDiagnostics(ctx, uri)
	}
	return nil
}

// --- Feature handlers ---

func (s *Server) handleCompletion(msg *JSONRPCMessage) error {
	var params CompletionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	items := s.getCompletions(params)
	s.sendResponse(msg.ID, &CompletionList{Items: items}, nil)
	return nil
}

func (s *Server) handleHover(msg *JSONRPCMessage) error {
	var params HoverParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	hover := s.getHover(params)
	s.sendResponse(msg.ID, hover, nil)
	return nil
}

// --- Workspace ---

// loadWorkspace (re)builds the workspace for the project root. A failed
// load keeps no workspace, so documents get no diagnostics until the
// configuration is fixed.
func (s *Server) loadWorkspace() {
	var (
		ws  *Workspace
		err = errors.New("no workspace loader configured")
	)
	if s.load != nil {
		ws, err = s.load(s.projectRoot)
	}

	s.wsMu.Lock()
	defer s.wsMu.Unlock()
	if err != nil {
		s.logger.Warn("workspace not loaded", "root", s.projectRoot, "error", err)
		s.workspace, s.loadErr = nil, err
		return
	}
	s.workspace, s.loadErr = ws, nil
	s.logger.Info("workspace loaded", "root", ws.Root, "config", ws.ConfigFile)
}

func (s *Server) currentWorkspace() *Workspace {
	s.wsMu.RLock()
	defer s.wsMu.RUnlock()
	return s.workspace
}

func (s *Server) workspaceError() error {
	s.wsMu.RLock()
	defer s.wsMu.RUnlock()
	return s.loadErr
}

// isConfigFile reports whether path is the loaded configuration file or,
// without one, a file that would be discovered as one.
func (s *Server) isConfigFile(path string) bool {
	if ws := s.currentWorkspace(); ws != nil && ws.ConfigFile != "" {
		return filepath.Clean(path) == filepath.Clean(ws.ConfigFile)
	}
	return strings.HasPrefix(filepath.Base(path), ".leapmarkrc")
}
