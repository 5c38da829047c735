package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"
)

// TextExtractor reads plain-text files. Files that are not valid UTF-8 are
// decoded as Latin-1, matching the secondary-encoding fallback of the
// surrounding system.
type TextExtractor struct{}

// Extract returns the file contents as text.
func (e *TextExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return e.ExtractBytes(data)
}

// ExtractBytes decodes in-memory file content.
func (e *TextExtractor) ExtractBytes(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	return decodeLatin1(data), nil
}

// decodeLatin1 maps each byte to the code point of the same value.
func decodeLatin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

// JSONExtractor renders JSON documents as indented text so that structure
// survives chunking.
type JSONExtractor struct{}

// Extract parses and re-indents the JSON file.
func (e *JSONExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return e.ExtractBytes(data)
}

// ExtractBytes re-indents in-memory JSON content.
func (e *JSONExtractor) ExtractBytes(data []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}
	return buf.String(), nil
}
