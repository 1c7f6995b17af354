package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"
)

// Document is an open buffer as last reported by the client.
type Document struct {
	URI     string
	Path    string
	Content string
	Version int
}

// DocumentManager tracks all open documents.
type DocumentManager struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewDocumentManager creates a new document manager.
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{
		docs: make(map[string]*Document),
	}
}

// Open records a newly opened document.
func (dm *DocumentManager) Open(uri, content string, version int) *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc := &Document{
		URI:     uri,
		Path:    URIToPath(uri),
		Content: content,
		Version: version,
	}
	dm.docs[uri] = doc
	return doc
}

// Update replaces a document's content, opening it if needed.
func (dm *DocumentManager) Update(uri, content string, version int) *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, ok := dm.docs[uri]
	if !ok {
		doc = &Document{URI: uri, Path: URIToPath(uri)}
		dm.docs[uri] = doc
	}
	doc.Content = content
	doc.Version = version
	return doc
}

// Close forgets a document.
func (dm *DocumentManager) Close(uri string) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	delete(dm.docs, uri)
}

// Get returns a copy of the document, or false if it is not open.
func (dm *DocumentManager) Get(uri string) (Document, bool) {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	doc, ok := dm.docs[uri]
	if !ok {
		return Document{}, false
	}
	return *doc, true
}

// Len returns the number of open documents.
func (dm *DocumentManager) Len() int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return len(dm.docs)
}

// IsFileURI reports whether uri names a document on the local disk.
func IsFileURI(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && u.Scheme == "file"
}

// URIToPath converts a file URI to a local path. Non-file URIs are returned
// unchanged.
func URIToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return uri
	}

	p := u.Path
	// file:///C:/dir/main.tex
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	if u.Host != "" && u.Host != "localhost" {
		p = "//" + u.Host + p
	}
	return filepath.FromSlash(p)
}

// PathToURI converts an absolute local path to a file URI.
func PathToURI(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
