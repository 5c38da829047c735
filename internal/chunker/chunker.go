// Package chunker splits normalized document text into bounded, overlapping chunks.
package chunker

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidConfig is returned for a non-positive chunk size or an overlap
// that is negative or not smaller than the chunk size.
var ErrInvalidConfig = errors.New("invalid chunking configuration")

// Chunk is a contiguous excerpt of a source document's normalized text.
// A chunk is immutable once created and is uniquely identified by
// (Source, SequenceIndex) within a store.
type Chunk struct {
	Text          string `json:"text"`
	Source        string `json:"source"`
	SequenceIndex int    `json:"sequence_index"`
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	sentenceEnd   = regexp.MustCompile(`[.!?]\s`)
)

// Normalize collapses all whitespace runs to a single space and trims the ends.
func Normalize(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// Split divides text into overlapping chunks of at most chunkSize characters.
//
// The text is normalized first. Text that fits in a single chunk is emitted
// as-is; empty text yields no chunks. Longer text is segmented with a sliding
// window that prefers to break just after a sentence terminator found in the
// tail of the window, and consecutive windows overlap by the configured amount.
// The output is fully determined by the inputs.
func Split(text, source string, chunkSize, overlap int) ([]Chunk, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfig, chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap must be in [0, chunk size), got %d", ErrInvalidConfig, overlap)
	}

	text = Normalize(text)
	if text == "" {
		return nil, nil
	}
	if len(text) <= chunkSize {
		return []Chunk{{Text: text, Source: source, SequenceIndex: 0}}, nil
	}

	var chunks []Chunk
	start := 0
	for start < len(text) {
		end := start + chunkSize

		// Snap the cut to the last sentence ending in the tail of the
		// window. The search region is bounded to keep the scan cheap.
		if end < len(text) {
			window := chunkSize / 5
			if window > 100 {
				window = 100
			}
			regionStart := end - window
			if locs := sentenceEnd.FindAllStringIndex(text[regionStart:end], -1); len(locs) > 0 {
				end = regionStart + locs[len(locs)-1][1]
			}
		}

		sliceEnd := end
		if sliceEnd > len(text) {
			sliceEnd = len(text)
		}
		if seg := strings.TrimSpace(text[start:sliceEnd]); seg != "" {
			chunks = append(chunks, Chunk{Text: seg, Source: source, SequenceIndex: len(chunks)})
		}

		next := end - overlap
		if next <= start {
			// Snapping pulled the window back far enough that the
			// overlap would stall; give up the overlap for this step.
			next = end
		}
		start = next
	}

	return chunks, nil
}
