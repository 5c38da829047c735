package store

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/rishabhhandoo/Ragify/internal/chunker"
	"github.com/rishabhhandoo/Ragify/internal/embedder"
)

// Options configures a store.
type Options struct {
	// ChunkSize and ChunkOverlap are the chunking parameters in characters.
	ChunkSize    int
	ChunkOverlap int

	// IndexFile holds registry metadata and configuration; ChunksFile holds
	// the ordered chunk sequence and is the source of truth for content.
	IndexFile  string
	ChunksFile string
}

// Store is the aggregate owning chunks, embeddings, and document records.
// A single writer mutates it (Append, Reindex, Clear, Load); readers (Query,
// Stats) may run concurrently with each other.
type Store struct {
	mu       sync.RWMutex
	embedder embedder.Service
	status   Status

	chunkSize    int
	chunkOverlap int
	indexFile    string
	chunksFile   string

	chunks     []chunker.Chunk
	embeddings [][]float32
	documents  map[string]DocumentRecord
}

// New creates an empty store. A nil embedder puts the store into degraded
// mode: ingestion still records chunks and documents, but reindexing and
// queries are no-ops that yield empty results.
func New(emb embedder.Service, opts Options) (*Store, error) {
	if opts.ChunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", chunker.ErrInvalidConfig, opts.ChunkSize)
	}
	if opts.ChunkOverlap < 0 || opts.ChunkOverlap >= opts.ChunkSize {
		return nil, fmt.Errorf("%w: overlap must be in [0, chunk size), got %d", chunker.ErrInvalidConfig, opts.ChunkOverlap)
	}

	s := &Store{
		embedder:     emb,
		chunkSize:    opts.ChunkSize,
		chunkOverlap: opts.ChunkOverlap,
		indexFile:    opts.IndexFile,
		chunksFile:   opts.ChunksFile,
		documents:    make(map[string]DocumentRecord),
	}
	if emb == nil {
		s.status = Status{State: StateDegraded, Reason: "embedding backend unavailable"}
		log.Warn("Store running degraded: retrieval will return no results", "reason", s.status.Reason)
	} else {
		s.status = Status{State: StateReady}
	}
	return s, nil
}

// Status returns the capability status recorded at construction.
func (s *Store) Status() Status {
	return s.status
}

// ChunkSize returns the configured chunk size.
func (s *Store) ChunkSize() int { return s.chunkSize }

// ChunkOverlap returns the configured chunk overlap.
func (s *Store) ChunkOverlap() int { return s.chunkOverlap }

// IndexFile returns the path of the persisted document index.
func (s *Store) IndexFile() string { return s.indexFile }

// ChunksFile returns the path of the persisted chunk sequence.
func (s *Store) ChunksFile() string { return s.chunksFile }

// Append adds chunks to the end of the chunk sequence. Embeddings are not
// computed here; callers batch one Reindex after a series of appends.
func (s *Store) Append(chunks []chunker.Chunk) {
	if len(chunks) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunks...)
}

// HasDocument reports whether path is registered with at least one chunk.
func (s *Store) HasDocument(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.documents[path]
	return ok && rec.ChunkCount > 0
}

// Document returns the registry record for path, if any.
func (s *Store) Document(path string) (DocumentRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.documents[path]
	return rec, ok
}

// RecordDocument registers a processed source file.
func (s *Store) RecordDocument(path string, rec DocumentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[path] = rec
}

// Reindex recomputes the embedding for every chunk and replaces the whole
// embedding sequence. On failure the prior embeddings remain valid. In
// degraded mode this is a no-op.
func (s *Store) Reindex(ctx context.Context) error {
	if !s.status.Ready() {
		log.Debug("Skipping reindex", "reason", s.status.Reason)
		return nil
	}

	s.mu.RLock()
	texts := make([]string, len(s.chunks))
	for i, c := range s.chunks {
		texts[i] = c.Text
	}
	s.mu.RUnlock()

	if len(texts) == 0 {
		s.mu.Lock()
		s.embeddings = nil
		s.mu.Unlock()
		return nil
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("reindexing %d chunks: %w", len(texts), err)
	}

	s.mu.Lock()
	s.embeddings = vectors
	s.mu.Unlock()

	log.Debug("Reindexed chunks", "count", len(texts), "dimensions", s.embedder.Dimensions())
	return nil
}

// Query embeds the text and returns the top-k chunks by cosine similarity,
// in descending order with ties broken by insertion order. An empty or
// degraded store yields an empty result, never an error.
func (s *Store) Query(ctx context.Context, text string, k int) ([]Match, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: top-k must be positive, got %d", chunker.ErrInvalidConfig, k)
	}

	if !s.status.Ready() {
		log.Warn("Query on degraded store, returning no results", "reason", s.status.Reason)
		return nil, nil
	}

	s.mu.RLock()
	chunkCount := len(s.chunks)
	embeddingCount := len(s.embeddings)
	s.mu.RUnlock()

	if chunkCount == 0 || embeddingCount == 0 {
		log.Debug("Query on empty store, returning no results")
		return nil, nil
	}

	queryVec, err := s.embedder.EmbedQuery(ctx, text)
	if err != nil {
		log.Warn("Failed to embed query, returning no results", "error", err)
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.embeddings)
	if len(s.chunks) < n {
		n = len(s.chunks)
	}

	matches := make([]Match, n)
	for i := 0; i < n; i++ {
		matches[i] = Match{
			Chunk:      s.chunks[i],
			Similarity: cosineSimilarity(queryVec, s.embeddings[i]),
		}
	}

	// Stable sort keeps insertion order among equal similarities.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if k < len(matches) {
		matches = matches[:k]
	}
	return matches, nil
}

// Stats returns counts and configuration for the store.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, rec := range s.documents {
		seen[rec.FileType] = struct{}{}
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)

	return Stats{
		DocumentCount:  len(s.documents),
		ChunkCount:     len(s.chunks),
		EmbeddingCount: len(s.embeddings),
		FileTypes:      types,
		ChunkSize:      s.chunkSize,
		ChunkOverlap:   s.chunkOverlap,
	}
}

// cosineSimilarity is dot(a,b) / (||a||*||b||), or 0 when either norm is zero.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
