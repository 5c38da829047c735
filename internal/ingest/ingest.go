// Package ingest feeds documents from the file system into the store:
// walk, extract, chunk, append, then a single reindex and persist for
// the whole batch.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rishabhhandoo/Ragify/internal/chunker"
	"github.com/rishabhhandoo/Ragify/internal/extract"
	"github.com/rishabhhandoo/Ragify/internal/store"
)

// Progress reports the state of an in-flight ingestion batch.
type Progress struct {
	TotalFiles     int
	ProcessedFiles int
	SkippedFiles   int
	Errors         int
	TotalChunks    int
	CurrentFile    string
	StartTime      time.Time
}

// ProgressFunc is called after each file during ingestion.
type ProgressFunc func(Progress)

// Options configures a directory ingestion.
type Options struct {
	// Recursive descends into subdirectories when true.
	Recursive bool

	// IgnorePatterns are gitignore-syntax patterns to skip during the walk.
	IgnorePatterns []string

	// MaxFileSize skips files larger than this many bytes. Zero means
	// no limit.
	MaxFileSize int64

	// OnProgress is called to report progress.
	OnProgress ProgressFunc
}

// Ingester drives documents through extraction and chunking into a store.
type Ingester struct {
	store      *store.Store
	extractors *extract.Registry
}

// New creates an Ingester writing into st, using reg to turn files
// into plain text.
func New(st *store.Store, reg *extract.Registry) *Ingester {
	return &Ingester{store: st, extractors: reg}
}

// IngestDirectory ingests every supported document under path and returns
// the number of newly processed documents. Files already present in the
// registry are skipped, as are unsupported formats and files that fail
// extraction; none of these abort the batch. The store is reindexed and
// persisted once at the end.
func (ing *Ingester) IngestDirectory(ctx context.Context, path string, opts Options) (int, error) {
	walker, err := NewWalker(WalkOptions{
		Root:           path,
		Recursive:      opts.Recursive,
		IgnorePatterns: opts.IgnorePatterns,
		MaxFileSize:    opts.MaxFileSize,
	})
	if err != nil {
		return 0, err
	}

	var files []string
	err = walker.Walk(func(p string) error {
		files = append(files, p)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking %s: %w", path, err)
	}

	progress := Progress{
		TotalFiles: len(files),
		StartTime:  time.Now(),
	}
	log.Info("Found files to ingest", "path", path, "count", len(files))

	added := 0
	for _, file := range files {
		select {
		case <-ctx.Done():
			return added, ctx.Err()
		default:
		}

		progress.CurrentFile = file
		chunkCount, err := ing.ingestFile(file)
		switch {
		case err != nil:
			log.Warn("Failed to ingest file", "path", file, "error", err)
			progress.Errors++
		case chunkCount < 0:
			progress.SkippedFiles++
		default:
			added++
			progress.ProcessedFiles++
			progress.TotalChunks += chunkCount
		}
		if opts.OnProgress != nil {
			opts.OnProgress(progress)
		}
	}

	if err := ing.finish(ctx, added); err != nil {
		return added, err
	}

	log.Info("Ingestion complete",
		"added", added,
		"skipped", progress.SkippedFiles,
		"errors", progress.Errors,
		"chunks", progress.TotalChunks,
		"duration", time.Since(progress.StartTime).Round(time.Millisecond),
	)
	return added, nil
}

// IngestFile ingests a single document, then reindexes and persists the
// store. Returns true when the document was newly added.
func (ing *Ingester) IngestFile(ctx context.Context, path string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("resolving path: %w", err)
	}

	chunkCount, err := ing.ingestFile(absPath)
	if err != nil {
		return false, err
	}
	if chunkCount < 0 {
		return false, nil
	}
	return true, ing.finish(ctx, 1)
}

// ingestFile processes one document. It returns the number of chunks
// appended, or -1 when the file was skipped because it is already
// present or yielded no extractable content.
func (ing *Ingester) ingestFile(path string) (int, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("resolving path: %w", err)
	}

	if ing.store.HasDocument(absPath) {
		log.Debug("Document already ingested, skipping", "path", absPath)
		return -1, nil
	}

	if !ing.extractors.Supports(absPath) {
		return 0, fmt.Errorf("%w: %s", extract.ErrUnsupportedFormat, filepath.Ext(absPath))
	}

	raw, err := os.ReadFile(absPath)
	if err != nil {
		return 0, fmt.Errorf("reading file: %w", err)
	}

	text, err := ing.extractors.ExtractBytes(absPath, raw)
	if err != nil {
		return 0, err
	}

	chunks, err := chunker.Split(text, absPath, ing.store.ChunkSize(), ing.store.ChunkOverlap())
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		log.Debug("No content extracted", "path", absPath)
		return -1, nil
	}

	ing.store.Append(chunks)
	ing.store.RecordDocument(absPath, store.DocumentRecord{
		IngestedAt: time.Now().UTC(),
		FileType:   extract.KindForPath(absPath).String(),
		Hash:       HashContent(raw),
		ChunkCount: len(chunks),
	})

	log.Debug("Ingested document", "path", absPath, "chunks", len(chunks))
	return len(chunks), nil
}

// finish reindexes and persists the store after a batch. Nothing to do
// when no documents were added.
func (ing *Ingester) finish(ctx context.Context, added int) error {
	if added == 0 {
		return nil
	}

	var errs []error
	if err := ing.store.Reindex(ctx); err != nil {
		errs = append(errs, fmt.Errorf("rebuilding embeddings: %w", err))
	}
	if err := ing.store.Persist(); err != nil {
		errs = append(errs, fmt.Errorf("persisting store: %w", err))
	}
	return errors.Join(errs...)
}
