package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// loadHistory reads the chat history file. A missing file yields an empty
// history; a malformed one is discarded with a warning so a broken history
// never blocks a new conversation.
func loadHistory(path string) []Message {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		log.Warn("Failed to read chat history", "path", path, "error", err)
		return nil
	}

	var messages []Message
	if err := json.Unmarshal(data, &messages); err != nil {
		log.Warn("Discarding malformed chat history", "path", path, "error", err)
		return nil
	}
	return messages
}

// saveHistory writes the full chat history file.
func saveHistory(path string, messages []Message) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding chat history: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing chat history: %w", err)
	}
	return nil
}
