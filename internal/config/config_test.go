package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)

	// Embeddings defaults
	assert.Equal(t, DefaultEmbeddingProvider, cfg.Embeddings.Provider)
	assert.Equal(t, DefaultOllamaURL, cfg.Embeddings.Ollama.URL)
	assert.Equal(t, DefaultOllamaEmbedModel, cfg.Embeddings.Ollama.Model)
	assert.Equal(t, DefaultOpenAIEmbedModel, cfg.Embeddings.OpenAI.Model)

	// Ingestion defaults
	assert.Equal(t, DefaultChunkSize, cfg.Ingest.ChunkSize)
	assert.Equal(t, DefaultChunkOverlap, cfg.Ingest.ChunkOverlap)
	assert.Equal(t, DefaultMaxFileSize, cfg.Ingest.MaxFileSize)

	// Chat defaults
	assert.Equal(t, DefaultChatModel, cfg.Chat.Model)
	assert.Equal(t, DefaultTopK, cfg.Chat.TopK)
	assert.Equal(t, DefaultMaxHistory, cfg.Chat.MaxHistory)

	// Ignore patterns
	assert.NotEmpty(t, cfg.Ignore)
	assert.Contains(t, cfg.Ignore, "node_modules/")
	assert.Contains(t, cfg.Ignore, ".git/")
	assert.NotContains(t, cfg.Ignore, "*.pdf", "ingestable formats must not be ignored")
	assert.NotContains(t, cfg.Ignore, "*.docx", "ingestable formats must not be ignored")
}

func TestDefaultPaths(t *testing.T) {
	assert.Contains(t, DefaultConfigDir(), "ragify")
	assert.Contains(t, DefaultDataDir(), "ragify")
	assert.Contains(t, DefaultIndexPath(), "document_index.json")
	assert.Contains(t, DefaultChunksPath(), "document_chunks.json")
	assert.Contains(t, DefaultHistoryPath(), "chat_history.json")
}

func TestLoadWithConfigFile(t *testing.T) {
	viper.Reset()
	cfg = nil

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
embeddings:
  provider: openai
  ollama:
    url: http://custom:11434
    model: custom-model
  openai:
    model: text-embedding-3-large
    base_url: https://custom-api.example.com
storage:
  data_dir: /custom/data
  index_file: /custom/data/index.json
ingest:
  chunk_size: 1000
  chunk_overlap: 100
chat:
  model: llama3
  top_k: 5
ignore:
  - "custom-ignore/"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	err = Load(configPath)
	require.NoError(t, err)

	loadedCfg := Get()

	assert.Equal(t, "openai", loadedCfg.Embeddings.Provider)
	assert.Equal(t, "http://custom:11434", loadedCfg.Embeddings.Ollama.URL)
	assert.Equal(t, "custom-model", loadedCfg.Embeddings.Ollama.Model)
	assert.Equal(t, "text-embedding-3-large", loadedCfg.Embeddings.OpenAI.Model)
	assert.Equal(t, "https://custom-api.example.com", loadedCfg.Embeddings.OpenAI.BaseURL)
	assert.Equal(t, "/custom/data", loadedCfg.Storage.DataDir)
	assert.Equal(t, "/custom/data/index.json", loadedCfg.Storage.IndexFile)
	assert.Equal(t, 1000, loadedCfg.Ingest.ChunkSize)
	assert.Equal(t, 100, loadedCfg.Ingest.ChunkOverlap)
	assert.Equal(t, "llama3", loadedCfg.Chat.Model)
	assert.Equal(t, 5, loadedCfg.Chat.TopK)
	assert.Contains(t, loadedCfg.Ignore, "custom-ignore/")

	// Unset keys keep their defaults.
	assert.Equal(t, DefaultMaxHistory, loadedCfg.Chat.MaxHistory)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	viper.Reset()
	cfg = nil

	t.Setenv("RAGIFY_EMBEDDINGS_PROVIDER", "openai")
	t.Setenv("RAGIFY_CHAT_MODEL", "llama3")
	t.Setenv("OPENAI_API_KEY", "test-api-key")

	err := Load("")
	require.NoError(t, err)

	loadedCfg := Get()

	assert.Equal(t, "openai", loadedCfg.Embeddings.Provider)
	assert.Equal(t, "llama3", loadedCfg.Chat.Model)
	assert.Equal(t, "test-api-key", loadedCfg.Embeddings.OpenAI.APIKey)
}

func TestLoadMissingConfigFile(t *testing.T) {
	viper.Reset()
	cfg = nil

	// No config file anywhere - should not error, just use defaults
	err := Load("")
	require.NoError(t, err)

	loadedCfg := Get()
	assert.Equal(t, DefaultEmbeddingProvider, loadedCfg.Embeddings.Provider)
	assert.Equal(t, DefaultChunkSize, loadedCfg.Ingest.ChunkSize)
}

func TestGet(t *testing.T) {
	cfg = nil

	c1 := Get()
	assert.NotNil(t, c1)

	c2 := Get()
	assert.Same(t, c1, c2)
}

func TestGlobalConfigPath(t *testing.T) {
	path := GlobalConfigPath()
	assert.Contains(t, path, "ragify")
	assert.Contains(t, path, "config.yaml")
}
