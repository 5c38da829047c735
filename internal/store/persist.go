package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/rishabhhandoo/Ragify/internal/chunker"
)

// ErrCorruptIndex indicates unreadable or malformed persisted state. The
// store falls back to empty when this is returned.
var ErrCorruptIndex = errors.New("corrupt document index")

// indexData is the on-disk shape of the index file. The chunks file carries
// the chunk content; this file carries registry metadata and configuration.
type indexData struct {
	DocumentsInfo map[string]DocumentRecord `json:"documents_info"`
	ChunkSize     int                       `json:"chunk_size"`
	ChunkOverlap  int                       `json:"chunk_overlap"`
	DocumentCount int                       `json:"document_count"`
	ChunkCount    int                       `json:"chunk_count"`
}

// Persist writes the index file and the chunks file together. An I/O failure
// leaves in-memory state untouched; the caller may retry.
func (s *Store) Persist() error {
	s.mu.RLock()
	index := indexData{
		DocumentsInfo: make(map[string]DocumentRecord, len(s.documents)),
		ChunkSize:     s.chunkSize,
		ChunkOverlap:  s.chunkOverlap,
		DocumentCount: len(s.documents),
		ChunkCount:    len(s.chunks),
	}
	for path, rec := range s.documents {
		index.DocumentsInfo[path] = rec
	}
	chunks := make([]chunker.Chunk, len(s.chunks))
	copy(chunks, s.chunks)
	s.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(s.chunksFile), 0o755); err != nil {
		return fmt.Errorf("creating chunks directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.indexFile), 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	chunksJSON, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding chunks: %w", err)
	}
	if err := os.WriteFile(s.chunksFile, chunksJSON, 0o644); err != nil {
		return fmt.Errorf("writing chunks file: %w", err)
	}

	indexJSON, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := os.WriteFile(s.indexFile, indexJSON, 0o644); err != nil {
		return fmt.Errorf("writing index file: %w", err)
	}

	log.Debug("Persisted store", "documents", index.DocumentCount, "chunks", index.ChunkCount)
	return nil
}

// Load hydrates the store from persisted state and rebuilds embeddings. It is
// a no-op when no prior state exists. Malformed state resets the store to
// empty and reports ErrCorruptIndex.
func (s *Store) Load(ctx context.Context) error {
	indexJSON, err := os.ReadFile(s.indexFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading index file: %w", err)
	}

	var index indexData
	if err := json.Unmarshal(indexJSON, &index); err != nil {
		s.reset()
		return fmt.Errorf("%w: %v", ErrCorruptIndex, err)
	}

	var chunks []chunker.Chunk
	chunksJSON, err := os.ReadFile(s.chunksFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Index without chunks: registry metadata survives, content is gone.
	case err != nil:
		return fmt.Errorf("reading chunks file: %w", err)
	default:
		if err := json.Unmarshal(chunksJSON, &chunks); err != nil {
			s.reset()
			return fmt.Errorf("%w: %v", ErrCorruptIndex, err)
		}
	}

	s.mu.Lock()
	s.documents = index.DocumentsInfo
	if s.documents == nil {
		s.documents = make(map[string]DocumentRecord)
	}
	if index.ChunkSize > 0 && index.ChunkOverlap >= 0 && index.ChunkOverlap < index.ChunkSize {
		s.chunkSize = index.ChunkSize
		s.chunkOverlap = index.ChunkOverlap
	}
	s.chunks = chunks
	s.embeddings = nil
	s.mu.Unlock()

	log.Debug("Loaded store", "documents", len(index.DocumentsInfo), "chunks", len(chunks))

	// The chunks file is the source of truth; embeddings are recomputed
	// rather than persisted.
	if len(chunks) > 0 {
		if err := s.Reindex(ctx); err != nil {
			log.Warn("Failed to rebuild embeddings after load", "error", err)
		}
	}
	return nil
}

// Clear empties all in-memory state and deletes persisted artifacts. The
// in-memory state is cleared even when file deletion fails; the failure is
// reported to the caller.
func (s *Store) Clear() error {
	s.reset()

	var errs []error
	for _, path := range []string{s.indexFile, s.chunksFile} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("removing %s: %w", path, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("clearing persisted state: %w", errors.Join(errs...))
	}

	log.Debug("Cleared store")
	return nil
}

func (s *Store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = nil
	s.embeddings = nil
	s.documents = make(map[string]DocumentRecord)
}
