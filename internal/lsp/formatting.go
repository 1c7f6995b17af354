package lsp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/thoreinstein/latexfmt/internal/formatter"
	"github.com/thoreinstein/latexfmt/pkg/fileutil"
)

// User-visible messages.
const (
	msgSaveFailed = "Could not save %s before formatting."
	msgNotOnDisk  = "Save %s to a file before formatting."
)

// handleFormatting handles textDocument/formatting. Failures are reported to
// the user and answered with an empty edit list.
func (s *Server) handleFormatting(ctx context.Context, params json.RawMessage) (any, *Error) {
	var p DocumentFormattingParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	none := []formatter.TextEdit{}
	if s.formatter == nil {
		return nil, &Error{Code: CodeInternalError, Message: "no formatter configured"}
	}

	uri := p.TextDocument.URI
	if !IsFileURI(uri) {
		// latexindent only reads files.
		s.logger.Info("skipping formatting of non-file document", "uri", uri)
		s.showMessage(MessageWarning, fmt.Sprintf(msgNotOnDisk, uri))
		return none, nil
	}
	path := URIToPath(uri)
	s.logger.Debug("formatting request", "path", path)

	doc, open := s.docs.Get(uri)
	var text string
	if open {
		text = doc.Content
		if s.saveBeforeFormat {
			if err := s.syncToDisk(path, text); err != nil {
				s.logger.Error("saving before format", "path", path, "error", err)
				s.ShowError(fmt.Sprintf(msgSaveFailed, path))
				return none, nil
			}
		}
	} else {
		data, err := s.readFile(path)
		if err != nil {
			s.logger.Error("reading document", "path", path, "error", err)
			return none, nil
		}
		text = string(data)
	}

	edits, err := s.formatter.FormatDocument(ctx, formatter.Document{Path: path, Text: text}, s.options(p.Options))
	if err != nil {
		// The formatter has already notified the user.
		s.logger.Debug("formatting failed", "path", path, "error", err)
		return none, nil
	}
	if edits == nil {
		return none, nil
	}
	return edits, nil
}

// options maps client formatting options, falling back to the configured
// tab size when the client sends none.
func (s *Server) options(o FormattingOptions) formatter.Options {
	opts := formatter.Options{InsertSpaces: o.InsertSpaces, TabSize: o.TabSize}
	if opts.TabSize <= 0 {
		opts.TabSize = s.defaults.TabSize
	}
	return opts
}

// syncToDisk writes text to path when the file on disk differs.
func (s *Server) syncToDisk(path, text string) error {
	current, err := s.readFile(path)
	if err == nil && bytes.Equal(current, []byte(text)) {
		return nil
	}
	s.logger.Debug("writing buffer before format", "path", path)
	return s.writeFile(path, []byte(text))
}

func saveFile(path string, data []byte) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fileutil.AtomicWriteFile(path, data, 0o644)
	}
	return fileutil.ReplaceFile(path, data)
}

func readFile(path string) ([]byte, error) {
	return fileutil.ReadFileWithLimit(path)
}
