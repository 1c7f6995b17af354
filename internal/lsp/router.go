package lsp

import (
	"context"
	"encoding/json"
)

// route dispatches a request to its handler.
func (s *Server) route(ctx context.Context, req Request) (any, *Error) {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req.Params)
	case "exit":
		s.exited = true
		return nil, nil
	}

	if !s.initialized {
		return nil, &Error{Code: CodeServerNotInitialized, Message: "server not initialized"}
	}
	if s.shutdown {
		return nil, &Error{Code: CodeInvalidRequest, Message: "server is shutting down"}
	}

	switch req.Method {
	// Lifecycle
	case "initialized":
		return nil, nil
	case "shutdown":
		s.shutdown = true
		return nil, nil

	// Document synchronization
	case "textDocument/didOpen":
		return s.handleDidOpen(req.Params)
	case "textDocument/didChange":
		return s.handleDidChange(req.Params)
	case "textDocument/didClose":
		return s.handleDidClose(req.Params)
	case "textDocument/didSave":
		return s.handleDidSave(req.Params)

	// Language features
	case "textDocument/formatting":
		return s.handleFormatting(ctx, req.Params)

	default:
		if req.ID == nil {
			// $/cancelRequest, $/setTrace and other optional notifications
			return nil, nil
		}
		s.logger.Debug("unknown method", "method", req.Method)
		return nil, &Error{Code: CodeMethodNotFound, Message: "Method not found: " + req.Method}
	}
}

func (s *Server) handleInitialize(params json.RawMessage) (any, *Error) {
	if s.initialized {
		return nil, &Error{Code: CodeInvalidRequest, Message: "server already initialized"}
	}

	var p struct {
		ClientInfo *struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"clientInfo"`
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
		}
	}
	if p.ClientInfo != nil {
		s.logger.Info("client connected", "client", p.ClientInfo.Name, "version", p.ClientInfo.Version)
	}

	s.initialized = true
	return InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: TextDocumentSyncOptions{
				OpenClose: true,
				Change:    SyncFull,
				Save:      true,
			},
			DocumentFormattingProvider: true,
		},
		ServerInfo: ServerInfo{Name: s.name, Version: s.version},
	}, nil
}

func (s *Server) handleDidOpen(params json.RawMessage) (any, *Error) {
	var p DidOpenTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}
	doc := s.docs.Open(p.TextDocument.URI, p.TextDocument.Text, p.TextDocument.Version)
	s.logger.Debug("document opened", "path", doc.Path, "version", doc.Version)
	return nil, nil
}

func (s *Server) handleDidChange(params json.RawMessage) (any, *Error) {
	var p DidChangeTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}
	if len(p.ContentChanges) == 0 {
		return nil, nil
	}
	// Full sync: the last change holds the whole buffer.
	text := p.ContentChanges[len(p.ContentChanges)-1].Text
	s.docs.Update(p.TextDocument.URI, text, p.TextDocument.Version)
	return nil, nil
}

func (s *Server) handleDidClose(params json.RawMessage) (any, *Error) {
	var p DidCloseTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}
	s.docs.Close(p.TextDocument.URI)
	return nil, nil
}

func (s *Server) handleDidSave(params json.RawMessage) (any, *Error) {
	var p DidSaveTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}
	if p.Text != nil {
		if doc, ok := s.docs.Get(p.TextDocument.URI); ok {
			s.docs.Update(p.TextDocument.URI, *p.Text, doc.Version)
		}
	}
	return nil, nil
}
