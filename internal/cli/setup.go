package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/rishabhhandoo/Ragify/internal/config"
	"github.com/rishabhhandoo/Ragify/internal/embedder"
	"github.com/rishabhhandoo/Ragify/internal/store"
)

// openStore builds the document store from configuration and loads any
// persisted state. An unreachable embedding backend opens the store in
// degraded mode rather than failing; a corrupt index is discarded with a
// warning.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	emb, err := embedder.NewService(cfg)
	if err != nil {
		log.Warn("Embedding backend unavailable, store will be degraded", "error", err)
		emb = nil
	}

	st, err := store.New(emb, store.Options{
		ChunkSize:    cfg.Ingest.ChunkSize,
		ChunkOverlap: cfg.Ingest.ChunkOverlap,
		IndexFile:    cfg.Storage.IndexFile,
		ChunksFile:   cfg.Storage.ChunksFile,
	})
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if err := st.Load(ctx); err != nil {
		if errors.Is(err, store.ErrCorruptIndex) {
			log.Warn("Discarded corrupt document index, starting empty", "error", err)
		} else {
			return nil, err
		}
	}

	return st, nil
}
