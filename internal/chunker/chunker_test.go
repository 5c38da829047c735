package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already clean", "hello world", "hello world"},
		{"collapses spaces", "hello    world", "hello world"},
		{"collapses newlines and tabs", "hello\n\tworld\r\n", "hello world"},
		{"trims ends", "  hello world  ", "hello world"},
		{"empty", "", ""},
		{"only whitespace", " \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestSplitInvalidConfig(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
	}{
		{"zero chunk size", 0, 0},
		{"negative chunk size", -1, 0},
		{"negative overlap", 100, -1},
		{"overlap equals chunk size", 100, 100},
		{"overlap exceeds chunk size", 100, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split("some text", "a.txt", tt.chunkSize, tt.overlap)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestSplitEmptyText(t *testing.T) {
	chunks, err := Split("", "a.txt", 1500, 200)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	chunks, err = Split("   \n\t  ", "a.txt", 1500, 200)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSplitShortText(t *testing.T) {
	t.Run("five characters", func(t *testing.T) {
		chunks, err := Split("hello", "hello.txt", 1500, 200)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "hello", chunks[0].Text)
		assert.Equal(t, "hello.txt", chunks[0].Source)
		assert.Equal(t, 0, chunks[0].SequenceIndex)
	})

	t.Run("exactly chunk size", func(t *testing.T) {
		text := strings.Repeat("a", 100)
		chunks, err := Split(text, "a.txt", 100, 20)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, text, chunks[0].Text)
	})

	t.Run("normalized before comparison", func(t *testing.T) {
		// Raw text exceeds chunk size but normalizes below it.
		text := "hello" + strings.Repeat(" ", 200) + "world"
		chunks, err := Split(text, "a.txt", 100, 20)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "hello world", chunks[0].Text)
	})
}

func TestSplitSlidingWindow(t *testing.T) {
	// 50 sentences of 20 characters each, 1000 characters normalized.
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("this is sentence xx. ")
	}
	text := b.String()

	chunks, err := Split(text, "doc.txt", 200, 40)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	normalized := Normalize(text)
	for i, c := range chunks {
		assert.Equal(t, i, c.SequenceIndex)
		assert.Equal(t, "doc.txt", c.Source)
		assert.LessOrEqual(t, len(c.Text), 200)
		assert.NotEmpty(t, c.Text)
		assert.Contains(t, normalized, c.Text)
	}

	// Windows end just after a sentence terminator when one is in reach.
	for _, c := range chunks[:len(chunks)-1] {
		assert.True(t, strings.HasSuffix(c.Text, "."), "chunk should end at a sentence boundary: %q", c.Text)
	}
}

func TestSplitCoverage(t *testing.T) {
	// Without sentence terminators the window advances by exactly
	// chunkSize-overlap, so consecutive chunks share the overlap region
	// and their union covers the whole text.
	text := strings.Repeat("abcdefghij", 100) // 1000 chars, no terminators
	chunkSize, overlap := 300, 50

	chunks, err := Split(text, "doc.txt", chunkSize, overlap)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	covered := 0
	for i, c := range chunks {
		start := i * (chunkSize - overlap)
		assert.Equal(t, text[start:start+len(c.Text)], c.Text)
		if start > covered {
			t.Fatalf("gap in coverage before chunk %d", i)
		}
		if end := start + len(c.Text); end > covered {
			covered = end
		}
	}
	assert.Equal(t, len(text), covered, "chunks should cover the full text")
}

func TestSplitDeterminism(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("a somewhat longer sentence to fill the window. ")
	}
	text := b.String()

	first, err := Split(text, "doc.txt", 250, 50)
	require.NoError(t, err)
	second, err := Split(text, "doc.txt", 250, 50)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSplitTerminatesOnSmallWindows(t *testing.T) {
	// Aggressive overlap with a snap that pulls the cut back: the window
	// must still advance on every step.
	text := strings.Repeat("ab. ", 500)
	chunks, err := Split(text, "doc.txt", 10, 8)
	require.NoError(t, err)
	assert.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.NotEmpty(t, c.Text)
	}
}
