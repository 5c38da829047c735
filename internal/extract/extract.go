// Package extract turns source files into raw text for chunking.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat indicates a file whose format no extractor handles.
// Callers skip such files rather than aborting a batch.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// FileKind identifies a supported document format.
type FileKind int

const (
	KindUnknown FileKind = iota
	KindText
	KindMarkdown
	KindJSON
	KindPDF
	KindDOCX
)

// String returns a short name for the kind.
func (k FileKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindMarkdown:
		return "markdown"
	case KindJSON:
		return "json"
	case KindPDF:
		return "pdf"
	case KindDOCX:
		return "docx"
	default:
		return "unknown"
	}
}

// KindForPath resolves the file kind from the path's extension.
func KindForPath(path string) FileKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return KindText
	case ".md", ".markdown":
		return KindMarkdown
	case ".json":
		return KindJSON
	case ".pdf":
		return KindPDF
	case ".docx", ".doc":
		return KindDOCX
	default:
		return KindUnknown
	}
}

// Extractor yields the raw text of a single file.
type Extractor interface {
	Extract(path string) (string, error)
}

// ByteExtractor extracts from content already in memory, so callers that
// read the file for other reasons do not trigger a second read.
type ByteExtractor interface {
	ExtractBytes(data []byte) (string, error)
}

// Registry dispatches extraction by file kind.
type Registry struct {
	extractors map[FileKind]Extractor
}

// NewRegistry creates a registry with the default extraction strategies bound.
func NewRegistry() *Registry {
	text := &TextExtractor{}
	return &Registry{
		extractors: map[FileKind]Extractor{
			KindText:     text,
			KindMarkdown: text,
			KindJSON:     &JSONExtractor{},
			KindPDF:      NewPDFExtractor(),
			KindDOCX:     &DOCXExtractor{},
		},
	}
}

// Register binds an extraction strategy to a kind, replacing any existing one.
func (r *Registry) Register(kind FileKind, ex Extractor) {
	r.extractors[kind] = ex
}

// Supports reports whether the path resolves to a registered kind.
func (r *Registry) Supports(path string) bool {
	_, ok := r.extractors[KindForPath(path)]
	return ok
}

// Extract resolves the file kind and runs the bound strategy.
func (r *Registry) Extract(path string) (string, error) {
	kind := KindForPath(path)
	ex, ok := r.extractors[kind]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	text, err := ex.Extract(path)
	if err != nil {
		return "", fmt.Errorf("extracting %s file: %w", kind, err)
	}
	return text, nil
}

// ExtractBytes runs the bound strategy against content already read from
// path. Strategies that need the file on disk, such as the PDF tool
// runner, fall back to reading it themselves.
func (r *Registry) ExtractBytes(path string, data []byte) (string, error) {
	kind := KindForPath(path)
	ex, ok := r.extractors[kind]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	var (
		text string
		err  error
	)
	if bex, ok := ex.(ByteExtractor); ok {
		text, err = bex.ExtractBytes(data)
	} else {
		text, err = ex.Extract(path)
	}
	if err != nil {
		return "", fmt.Errorf("extracting %s file: %w", kind, err)
	}
	return text, nil
}
