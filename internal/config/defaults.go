package config

import (
	"os"
	"path/filepath"
)

// Default configuration values
const (
	// Embedding defaults
	DefaultEmbeddingProvider = "ollama"
	DefaultOllamaURL         = "http://localhost:11434"
	DefaultOllamaEmbedModel  = "nomic-embed-text"
	DefaultOpenAIEmbedModel  = "text-embedding-3-small"

	// Chat defaults
	DefaultChatModel  = "deepseek-r1"
	DefaultTopK       = 3
	DefaultMaxHistory = 20

	// Ingestion defaults
	DefaultChunkSize    = 1500
	DefaultChunkOverlap = 200
	DefaultMaxFileSize  = 10 << 20 // 10MB

	// Storage file names
	DefaultIndexFileName   = "document_index.json"
	DefaultChunksFileName  = "document_chunks.json"
	DefaultHistoryFileName = "chat_history.json"
)

// DefaultIgnorePatterns returns the default list of file patterns to ignore.
// Document formats the extractor handles (pdf, docx) are deliberately absent.
func DefaultIgnorePatterns() []string {
	return []string{
		// Lock files
		"*.lock",
		"package-lock.json",
		"yarn.lock",
		"go.sum",

		// Dependencies and build outputs
		"node_modules/",
		"vendor/",
		"dist/",
		"build/",
		"__pycache__/",
		"*.pyc",

		// Version control
		".git/",
		".svn/",
		".hg/",

		// Binary/compiled
		"*.exe",
		"*.dll",
		"*.so",
		"*.dylib",
		"*.o",
		"*.a",
		"*.class",

		// Media
		"*.jpg",
		"*.jpeg",
		"*.png",
		"*.gif",
		"*.ico",
		"*.svg",
		"*.webp",
		"*.mp3",
		"*.mp4",
		"*.wav",

		// Archives
		"*.zip",
		"*.tar",
		"*.tar.gz",
		"*.tgz",
		"*.rar",
		"*.7z",

		// Misc
		".DS_Store",
		"Thumbs.db",
		".env",
		".env.*",
		"*.log",
	}
}

// DefaultConfigDir returns the default configuration directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/ragify"
	}
	return filepath.Join(home, ".config", "ragify")
}

// DefaultDataDir returns the default data directory path.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".local/share/ragify"
	}
	return filepath.Join(home, ".local", "share", "ragify")
}

// DefaultIndexPath returns the default document index file path.
func DefaultIndexPath() string {
	return filepath.Join(DefaultDataDir(), DefaultIndexFileName)
}

// DefaultChunksPath returns the default chunk sequence file path.
func DefaultChunksPath() string {
	return filepath.Join(DefaultDataDir(), DefaultChunksFileName)
}

// DefaultHistoryPath returns the default chat history file path.
func DefaultHistoryPath() string {
	return filepath.Join(DefaultDataDir(), DefaultHistoryFileName)
}
