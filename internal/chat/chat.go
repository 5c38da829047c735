// Package chat runs retrieval-augmented conversations over the document
// store: each user turn is answered with the most relevant chunks injected
// as a system message, and the conversation is persisted between runs.
package chat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/rishabhhandoo/Ragify/internal/store"
)

const contextPreamble = "Use the following information to help answer the user's question:\n\n"

// Retriever finds the chunks most relevant to a query.
type Retriever interface {
	Query(ctx context.Context, text string, k int) ([]store.Match, error)
}

// SessionOptions configures a chat session.
type SessionOptions struct {
	// HistoryFile persists the conversation between runs.
	HistoryFile string

	// TopK is the number of chunks retrieved per turn.
	TopK int

	// MaxHistory bounds how many past messages are sent to the model.
	MaxHistory int
}

// Session is a persistent retrieval-augmented conversation.
type Session struct {
	completer Completer
	retriever Retriever
	opts      SessionOptions
	messages  []Message
}

// NewSession opens a session, resuming any persisted history.
func NewSession(completer Completer, retriever Retriever, opts SessionOptions) *Session {
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = 20
	}

	var messages []Message
	if opts.HistoryFile != "" {
		messages = loadHistory(opts.HistoryFile)
	}

	return &Session{
		completer: completer,
		retriever: retriever,
		opts:      opts,
		messages:  messages,
	}
}

// History returns the full conversation so far.
func (s *Session) History() []Message {
	return s.messages
}

// Reset discards the conversation, in memory and on disk.
func (s *Session) Reset() error {
	s.messages = nil
	if s.opts.HistoryFile == "" {
		return nil
	}
	if err := os.Remove(s.opts.HistoryFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing chat history: %w", err)
	}
	return nil
}

// Send runs one conversation turn: retrieve context for the user message,
// call the model, and append both turns to the persisted history. Retrieval
// failure degrades to a plain chat turn; a model failure is returned and
// leaves the history unchanged.
func (s *Session) Send(ctx context.Context, userMessage string) (string, error) {
	var contextMsg string
	matches, err := s.retriever.Query(ctx, userMessage, s.opts.TopK)
	if err != nil {
		log.Warn("Retrieval failed, answering without document context", "error", err)
	} else if len(matches) > 0 {
		contextMsg = contextPreamble + formatMatches(matches)
	}

	var prompt []Message
	if contextMsg != "" {
		prompt = append(prompt, Message{Role: "system", Content: contextMsg})
	}
	prompt = append(prompt, s.contextWindow()...)
	prompt = append(prompt, Message{Role: "user", Content: userMessage})

	answer, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	s.messages = append(s.messages,
		Message{Role: "user", Content: userMessage},
		Message{Role: "assistant", Content: answer},
	)
	if s.opts.HistoryFile != "" {
		if err := saveHistory(s.opts.HistoryFile, s.messages); err != nil {
			log.Warn("Failed to persist chat history", "error", err)
		}
	}

	return answer, nil
}

// contextWindow returns the most recent messages, bounded by MaxHistory.
func (s *Session) contextWindow() []Message {
	if len(s.messages) <= s.opts.MaxHistory {
		return s.messages
	}
	return s.messages[len(s.messages)-s.opts.MaxHistory:]
}

// formatMatches renders retrieved chunks as numbered, attributed blocks.
func formatMatches(matches []store.Match) string {
	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = fmt.Sprintf("[Document %d] (Source: %s, Relevance: %.2f)\n%s",
			i+1, filepath.Base(m.Chunk.Source), m.Similarity, m.Chunk.Text)
	}
	return strings.Join(parts, "\n\n")
}
