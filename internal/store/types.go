// Package store owns the ordered chunk sequence, the parallel embedding
// sequence, and the document registry, persisted as human-readable JSON.
package store

import (
	"time"

	"github.com/rishabhhandoo/Ragify/internal/chunker"
)

// DocumentRecord tracks a source file that has been ingested. Records are
// keyed by normalized absolute path in the registry.
type DocumentRecord struct {
	IngestedAt time.Time `json:"ingested_at"`
	FileType   string    `json:"file_type"`
	Hash       string    `json:"hash,omitempty"`
	ChunkCount int       `json:"chunk_count"`
}

// Match is a retrieved chunk with its cosine similarity to the query.
type Match struct {
	Chunk      chunker.Chunk `json:"chunk"`
	Similarity float64       `json:"similarity"`
}

// Stats describes the current contents and configuration of a store.
type Stats struct {
	DocumentCount  int      `json:"document_count"`
	ChunkCount     int      `json:"chunk_count"`
	EmbeddingCount int      `json:"embedding_count"`
	FileTypes      []string `json:"file_types"`
	ChunkSize      int      `json:"chunk_size"`
	ChunkOverlap   int      `json:"chunk_overlap"`
}

// State describes whether embedding operations are available.
type State int

const (
	// StateReady means the embedding backend initialized and retrieval works.
	StateReady State = iota

	// StateDegraded means the backend is unavailable; embedding operations
	// are no-ops and queries return empty results.
	StateDegraded
)

// Status is the capability-check result recorded at construction.
type Status struct {
	State  State
	Reason string
}

// Ready reports whether embedding operations are available.
func (s Status) Ready() bool {
	return s.State == StateReady
}
