package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/thoreinstein/latexfmt/internal/errors"
	"github.com/thoreinstein/latexfmt/internal/formatter"
	"github.com/thoreinstein/latexfmt/internal/logging"
)

// ErrExitWithoutShutdown is returned by Run when the client sends exit
// before shutdown.
var ErrExitWithoutShutdown = errors.New("exit received before shutdown")

// errBadFrame marks a header block that was read to its end but carried no
// usable Content-Length. The reader is positioned at the next frame.
var errBadFrame = errors.New("bad frame")

// Formatter formats a document that exists on disk.
type Formatter interface {
	FormatDocument(ctx context.Context, doc formatter.Document, opts formatter.Options) ([]formatter.TextEdit, error)
}

// Server is the LaTeX formatting language server.
type Server struct {
	reader *bufio.Reader
	writer io.Writer
	mu     sync.Mutex // protects writer

	docs      *DocumentManager
	formatter Formatter
	logger    *slog.Logger

	name             string
	version          string
	saveBeforeFormat bool
	defaults         formatter.Options
	writeFile        func(path string, data []byte) error
	readFile         func(path string) ([]byte, error)

	initialized bool
	shutdown    bool
	exited      bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithServerInfo sets the name and version reported by initialize.
func WithServerInfo(name, version string) Option {
	return func(s *Server) {
		s.name = name
		s.version = version
	}
}

// WithSaveBeforeFormat controls whether a modified buffer is written to disk
// before latexindent reads it. Enabled by default.
func WithSaveBeforeFormat(enabled bool) Option {
	return func(s *Server) { s.saveBeforeFormat = enabled }
}

// WithDefaultOptions sets the indentation used when a request omits tabSize.
func WithDefaultOptions(opts formatter.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// NewServer creates a server that reads requests from r and writes responses
// and notifications to w.
func NewServer(r io.Reader, w io.Writer, opts ...Option) *Server {
	s := &Server{
		reader:           bufio.NewReader(r),
		writer:           w,
		docs:             NewDocumentManager(),
		logger:           slog.New(slog.DiscardHandler),
		name:             "latexfmt",
		saveBeforeFormat: true,
		defaults:         formatter.Options{InsertSpaces: true, TabSize: formatter.DefaultTabSize},
		writeFile:        saveFile,
		readFile:         readFile,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetFormatter installs the formatter used for textDocument/formatting.
// It is separate from NewServer because the formatter usually reports
// through the server's ShowError.
func (s *Server) SetFormatter(f Formatter) {
	s.formatter = f
}

// Documents exposes the open document set.
func (s *Server) Documents() *DocumentManager {
	return s.docs
}

// Run reads and dispatches messages until the client exits, the input is
// closed or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("LSP server starting")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, errBadFrame) {
				s.logger.Warn("skipping malformed message", "error", err)
				continue
			}
			if errors.Is(err, io.EOF) {
				s.logger.Info("connection closed")
				return nil
			}
			return errors.Wrap(err, "reading message")
		}

		s.logger.Log(ctx, logging.LevelTrace, "received", "message", string(msg))

		response, err := s.handleMessage(ctx, msg)
		if err != nil {
			s.logger.Error("handling message", "error", err)
			continue
		}

		if response != nil {
			if err := s.writeMessage(response); err != nil {
				return errors.Wrap(err, "writing response")
			}
		}

		if s.exited {
			if !s.shutdown {
				return ErrExitWithoutShutdown
			}
			s.logger.Info("LSP server exiting")
			return nil
		}
	}
}

// readMessage reads one message body:
//
//	Content-Length: <length>\r\n
//	\r\n
//	<content>
//
// A header name is matched by suffix, so the unread body of a frame without
// Content-Length does not hide the header that follows it.
func (s *Server) readMessage() ([]byte, error) {
	contentLength := -1
	var headerErr error
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && line != "" {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok || !strings.HasSuffix(strings.ToLower(strings.TrimSpace(name)), "content-length") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			headerErr = errors.Mark(errors.Newf("invalid Content-Length %q", strings.TrimSpace(value)), errBadFrame)
			continue
		}
		contentLength = n
	}

	if headerErr != nil {
		return nil, headerErr
	}
	if contentLength <= 0 {
		return nil, errors.Mark(errors.New("missing Content-Length header"), errBadFrame)
	}

	content := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, content); err != nil {
		return nil, errors.Wrap(err, "reading content")
	}
	return content, nil
}

// writeMessage frames and writes one message.
func (s *Server) writeMessage(msg []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(msg))
	if _, err := io.WriteString(s.writer, header); err != nil {
		return err
	}
	if _, err := s.writer.Write(msg); err != nil {
		return err
	}

	s.logger.Log(context.Background(), logging.LevelTrace, "sent", "message", string(msg))
	return nil
}

// sendNotification sends a notification (no response expected).
func (s *Server) sendNotification(method string, params any) error {
	data, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return err
	}
	return s.writeMessage(data)
}

// ShowError sends window/showMessage with type Error. It satisfies
// formatter.Notifier.
func (s *Server) ShowError(msg string) {
	s.showMessage(MessageError, msg)
}

func (s *Server) showMessage(typ int, msg string) {
	if err := s.sendNotification("window/showMessage", ShowMessageParams{Type: typ, Message: msg}); err != nil {
		s.logger.Warn("sending showMessage", "error", err)
	}
}

// handleMessage decodes and routes one message, returning the encoded
// response or nil for notifications.
func (s *Server) handleMessage(ctx context.Context, msg []byte) ([]byte, error) {
	var req Request
	if err := json.Unmarshal(msg, &req); err != nil {
		return errorResponse(nil, CodeParseError, "Parse error")
	}

	s.logger.Debug("handling method", "method", req.Method)

	result, rpcErr := s.route(ctx, req)

	if req.ID == nil {
		if rpcErr != nil {
			s.logger.Debug("notification failed", "method", req.Method, "error", rpcErr.Message)
		}
		return nil, nil
	}

	if rpcErr != nil {
		return errorResponse(req.ID, rpcErr.Code, rpcErr.Message)
	}

	return json.Marshal(Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	})
}

// errorResponse encodes an error reply. Result is left out entirely, as
// JSON-RPC forbids both members in one response.
func errorResponse(id any, code int, message string) ([]byte, error) {
	return json.Marshal(struct {
		JSONRPC string `json:"jsonrpc"`
		ID      any    `json:"id"`
		Error   *Error `json:"error"`
	}{"2.0", id, &Error{Code: code, Message: message}})
}
