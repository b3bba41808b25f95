// Package lspapi implements a minimal Language Server Protocol surface
// over pyjs: it republishes parse and semantic diagnostics on every
// document open/change, with no completion or hover support.
package lspapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/corvidlang/pyjs/internal/compiler"
)

// Server implements the jsonrpc2.Handler interface for the subset of the
// LSP lifecycle this surface needs: initialize, didOpen, didChange,
// didClose.
type Server struct {
	conn      *jsonrpc2.Conn
	reader    io.Reader
	writer    io.Writer
	documents *documentStore
	mu        sync.RWMutex
}

// NewServer returns an LSP server speaking over reader/writer.
func NewServer(reader io.Reader, writer io.Writer) *Server {
	return &Server{
		reader:    reader,
		writer:    writer,
		documents: newDocumentStore(),
	}
}

// Run starts the server and blocks until the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	stream := jsonrpc2.NewBufferedStream(
		&readWriteCloser{s.reader, s.writer},
		jsonrpc2.VSCodeObjectCodec{},
	)
	s.conn = jsonrpc2.NewConn(ctx, stream, s)
	<-s.conn.DisconnectNotify()
	return nil
}

// Handle implements jsonrpc2.Handler.
func (s *Server) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	result, err := s.handleRequest(ctx, req)
	if err != nil {
		if !req.Notif {
			if respErr := conn.ReplyWithError(ctx, req.ID, toJSONRPCError(err)); respErr != nil {
				log.Printf("error sending error response: %v", respErr)
			}
		}
		return
	}
	if !req.Notif {
		if err := conn.Reply(ctx, req.ID, result); err != nil {
			log.Printf("error sending response: %v", err)
		}
	}
}

func (s *Server) handleRequest(ctx context.Context, req *jsonrpc2.Request) (any, error) {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "initialized", "shutdown", "exit", "textDocument/didSave":
		return nil, nil
	case "textDocument/didOpen":
		return s.handleDidOpen(ctx, req)
	case "textDocument/didChange":
		return s.handleDidChange(ctx, req)
	case "textDocument/didClose":
		return s.handleDidClose(ctx, req)
	default:
		return nil, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: fmt.Sprintf("method not found: %s", req.Method),
		}
	}
}

func toJSONRPCError(err error) *jsonrpc2.Error {
	return &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
}

func (s *Server) handleInitialize(req *jsonrpc2.Request) (*lsp.InitializeResult, error) {
	openClose := true
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: openClose,
					Change:    lsp.TDSKFull,
				},
			},
		},
	}, nil
}

func (s *Server) handleDidOpen(ctx context.Context, req *jsonrpc2.Request) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if err := json.Unmarshal(*req.Params, &params); err != nil {
		return nil, err
	}
	s.documents.open(params.TextDocument.URI, params.TextDocument.Text)
	s.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil, nil
}

func (s *Server) handleDidChange(ctx context.Context, req *jsonrpc2.Request) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if err := json.Unmarshal(*req.Params, &params); err != nil {
		return nil, err
	}
	if len(params.ContentChanges) > 0 {
		s.documents.update(params.TextDocument.URI, params.ContentChanges[0].Text)
	}
	s.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil, nil
}

func (s *Server) handleDidClose(ctx context.Context, req *jsonrpc2.Request) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if err := json.Unmarshal(*req.Params, &params); err != nil {
		return nil, err
	}
	s.documents.close(params.TextDocument.URI)
	s.conn.Notify(ctx, "textDocument/publishDiagnostics", &lsp.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []lsp.Diagnostic{},
	})
	return nil, nil
}

// publishDiagnostics runs the full compile pipeline on the stored text
// and republishes whatever the pipeline surfaced as a diagnostic list —
// a single parse error, one entry per semantic diagnostic, or none.
func (s *Server) publishDiagnostics(ctx context.Context, uri lsp.DocumentURI) {
	content := s.documents.get(uri)
	diagnostics := diagnosticsFor(content)

	s.conn.Notify(ctx, "textDocument/publishDiagnostics", &lsp.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func diagnosticsFor(content string) []lsp.Diagnostic {
	_, err := compiler.Compile(content)
	if err == nil {
		return []lsp.Diagnostic{}
	}

	message := err.Error()
	var lines []string
	switch {
	case strings.HasPrefix(message, "Errores semánticos encontrados:\n"):
		lines = strings.Split(strings.TrimPrefix(message, "Errores semánticos encontrados:\n"), "\n")
	default:
		lines = []string{message}
	}

	diagnostics := make([]lsp.Diagnostic, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		diagnostics = append(diagnostics, lsp.Diagnostic{
			Range: lsp.Range{
				Start: lsp.Position{Line: 0, Character: 0},
				End:   lsp.Position{Line: 0, Character: 1},
			},
			Severity: lsp.Error,
			Source:   "pyjs",
			Message:  line,
		})
	}
	return diagnostics
}

type readWriteCloser struct {
	io.Reader
	io.Writer
}

func (rwc *readWriteCloser) Close() error { return nil }

type documentStore struct {
	mu      sync.RWMutex
	content map[lsp.DocumentURI]string
}

func newDocumentStore() *documentStore {
	return &documentStore{content: make(map[lsp.DocumentURI]string)}
}

func (ds *documentStore) open(uri lsp.DocumentURI, text string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.content[uri] = text
}

func (ds *documentStore) update(uri lsp.DocumentURI, text string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.content[uri] = text
}

func (ds *documentStore) close(uri lsp.DocumentURI) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.content, uri)
}

func (ds *documentStore) get(uri lsp.DocumentURI) string {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.content[uri]
}
