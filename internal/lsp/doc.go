// Package lsp implements a minimal Language Server Protocol server that
// offers whole-document formatting for LaTeX files through latexindent.
//
// Messages are JSON-RPC 2.0 framed with Content-Length headers. Requests are
// handled one at a time in the order they arrive.
package lsp
