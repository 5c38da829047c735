package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishabhhandoo/Ragify/internal/embedder"
	"github.com/rishabhhandoo/Ragify/internal/extract"
	"github.com/rishabhhandoo/Ragify/internal/store"
)

// mockEmbedder derives a deterministic vector from the text length.
type mockEmbedder struct{}

func (m *mockEmbedder) vector(text string) []float32 {
	return []float32{float32(len(text)), 1}
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return m.vector(text), nil
}

func (m *mockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return m.vector(text), nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i, t := range texts {
		result[i] = m.vector(t)
	}
	return result, nil
}

func (m *mockEmbedder) Dimensions() int             { return 2 }
func (m *mockEmbedder) Provider() embedder.Provider { return embedder.ProviderOllama }
func (m *mockEmbedder) ModelName() string           { return "mock" }

func newTestIngester(t *testing.T) (*Ingester, *store.Store) {
	t.Helper()
	dataDir := t.TempDir()
	st, err := store.New(&mockEmbedder{}, store.Options{
		ChunkSize:    1500,
		ChunkOverlap: 200,
		IndexFile:    filepath.Join(dataDir, "document_index.json"),
		ChunksFile:   filepath.Join(dataDir, "document_chunks.json"),
	})
	require.NoError(t, err)
	return New(st, extract.NewRegistry()), st
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIngestDirectory(t *testing.T) {
	ing, st := newTestIngester(t)
	docs := t.TempDir()
	writeFile(t, docs, "a.txt", "The first document talks about apples.")
	writeFile(t, docs, "b.md", "# Bananas\n\nThe second document talks about bananas.")

	added, err := ing.IngestDirectory(context.Background(), docs, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	stats := st.Stats()
	assert.Equal(t, 2, stats.DocumentCount)
	assert.Equal(t, 2, stats.ChunkCount)
	assert.Equal(t, stats.ChunkCount, stats.EmbeddingCount)
	assert.ElementsMatch(t, []string{"text", "markdown"}, stats.FileTypes)
}

func TestIngestDirectoryIdempotent(t *testing.T) {
	ing, st := newTestIngester(t)
	docs := t.TempDir()
	writeFile(t, docs, "a.txt", "Same document both times.")

	added, err := ing.IngestDirectory(context.Background(), docs, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, added)

	added, err = ing.IngestDirectory(context.Background(), docs, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, added, "re-ingesting the same directory adds nothing")
	assert.Equal(t, 1, st.Stats().ChunkCount)
}

func TestIngestDirectoryEmptyFileNotCounted(t *testing.T) {
	ing, st := newTestIngester(t)
	docs := t.TempDir()
	writeFile(t, docs, "empty.txt", "   \n\t  ")
	writeFile(t, docs, "real.txt", "A document with content.")

	var last Progress
	opts := Options{OnProgress: func(p Progress) { last = p }}

	added, err := ing.IngestDirectory(context.Background(), docs, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, added, "empty file is not a processed document")
	assert.Equal(t, 1, last.SkippedFiles)

	added, err = ing.IngestDirectory(context.Background(), docs, opts)
	require.NoError(t, err)
	assert.Equal(t, 0, added, "empty file stays skipped on re-ingest")
	assert.Equal(t, 2, last.SkippedFiles)

	stats := st.Stats()
	assert.Equal(t, 1, stats.DocumentCount)
	assert.Equal(t, 1, stats.ChunkCount)
}

func TestIngestDirectoryRecursive(t *testing.T) {
	docs := t.TempDir()
	writeFile(t, docs, "top.txt", "Top level document.")
	writeFile(t, docs, "nested/deep.txt", "Nested document.")

	t.Run("non-recursive skips subdirectories", func(t *testing.T) {
		ing, _ := newTestIngester(t)
		added, err := ing.IngestDirectory(context.Background(), docs, Options{})
		require.NoError(t, err)
		assert.Equal(t, 1, added)
	})

	t.Run("recursive descends", func(t *testing.T) {
		ing, _ := newTestIngester(t)
		added, err := ing.IngestDirectory(context.Background(), docs, Options{Recursive: true})
		require.NoError(t, err)
		assert.Equal(t, 2, added)
	})
}

func TestIngestDirectoryIgnorePatterns(t *testing.T) {
	ing, _ := newTestIngester(t)
	docs := t.TempDir()
	writeFile(t, docs, "keep.txt", "Kept document.")
	writeFile(t, docs, "draft.txt", "Ignored document.")

	added, err := ing.IngestDirectory(context.Background(), docs, Options{
		IgnorePatterns: []string{"draft.*"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
}

func TestIngestDirectoryUnsupportedFormat(t *testing.T) {
	ing, st := newTestIngester(t)
	docs := t.TempDir()
	writeFile(t, docs, "a.txt", "Supported document.")
	writeFile(t, docs, "binary.xyz", "Unsupported document.")

	// Unsupported files are logged and skipped, not fatal.
	added, err := ing.IngestDirectory(context.Background(), docs, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, st.Stats().DocumentCount)
}

func TestIngestDirectoryMissingRoot(t *testing.T) {
	ing, _ := newTestIngester(t)
	_, err := ing.IngestDirectory(context.Background(), "/nonexistent/path", Options{})
	assert.Error(t, err)
}

func TestIngestFile(t *testing.T) {
	ing, st := newTestIngester(t)
	docs := t.TempDir()
	path := writeFile(t, docs, "a.txt", "A single document.")

	added, err := ing.IngestFile(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, st.HasDocument(path))

	rec, ok := st.Document(path)
	require.True(t, ok)
	assert.Equal(t, "text", rec.FileType)
	assert.NotEmpty(t, rec.Hash)
	assert.Equal(t, 1, rec.ChunkCount)
	assert.False(t, rec.IngestedAt.IsZero())

	// Second ingest of the same file is a no-op.
	added, err = ing.IngestFile(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, added)
}

func TestIngestFileEmptyDocument(t *testing.T) {
	ing, st := newTestIngester(t)
	docs := t.TempDir()
	path := writeFile(t, docs, "empty.txt", "   \n\t  ")

	added, err := ing.IngestFile(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 0, st.Stats().ChunkCount)
}

func TestIngestPersistsAfterBatch(t *testing.T) {
	ing, st := newTestIngester(t)
	docs := t.TempDir()
	writeFile(t, docs, "a.txt", "Persisted document.")

	_, err := ing.IngestDirectory(context.Background(), docs, Options{})
	require.NoError(t, err)

	stats := st.Stats()
	assert.Equal(t, 1, stats.EmbeddingCount, "batch ends with a reindex")

	// Persisted state round-trips through a fresh store.
	restored, err := store.New(&mockEmbedder{}, store.Options{
		ChunkSize:    1500,
		ChunkOverlap: 200,
		IndexFile:    st.IndexFile(),
		ChunksFile:   st.ChunksFile(),
	})
	require.NoError(t, err)
	require.NoError(t, restored.Load(context.Background()))
	assert.Equal(t, 1, restored.Stats().DocumentCount)
}

func TestHashContent(t *testing.T) {
	a := HashContent([]byte("same"))
	b := HashContent([]byte("same"))
	c := HashContent([]byte("different"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}

func TestWalkerSkipsHiddenFiles(t *testing.T) {
	docs := t.TempDir()
	writeFile(t, docs, "visible.txt", "visible")
	writeFile(t, docs, ".hidden.txt", "hidden")

	w, err := NewWalker(WalkOptions{Root: docs})
	require.NoError(t, err)

	var seen []string
	require.NoError(t, w.Walk(func(p string) error {
		seen = append(seen, filepath.Base(p))
		return nil
	}))
	assert.Equal(t, []string{"visible.txt"}, seen)
}

func TestWalkerMaxFileSize(t *testing.T) {
	docs := t.TempDir()
	writeFile(t, docs, "small.txt", "ok")
	writeFile(t, docs, "large.txt", "this one is too large for the limit")

	w, err := NewWalker(WalkOptions{Root: docs, MaxFileSize: 10})
	require.NoError(t, err)

	var seen []string
	require.NoError(t, w.Walk(func(p string) error {
		seen = append(seen, filepath.Base(p))
		return nil
	}))
	assert.Equal(t, []string{"small.txt"}, seen)
}
