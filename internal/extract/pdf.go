package extract

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrPDFToolNotFound indicates the pdftotext binary is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found (install poppler: 'brew install poppler' or 'apt install poppler-utils')")

// CommandRunner executes an external command and returns its stdout.
// It exists so tests can substitute a fake pdftotext.
type CommandRunner interface {
	Run(name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// PDFExtractor extracts page text from PDF files by shelling out to
// pdftotext, which keeps the core free of cgo PDF bindings.
type PDFExtractor struct {
	runner CommandRunner
}

// NewPDFExtractor creates a PDF extractor using the system pdftotext.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{runner: execRunner{}}
}

// NewPDFExtractorWithRunner creates a PDF extractor with a custom runner.
func NewPDFExtractorWithRunner(runner CommandRunner) *PDFExtractor {
	return &PDFExtractor{runner: runner}
}

// Extract returns the concatenated page text of the PDF.
func (e *PDFExtractor) Extract(path string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		if _, isExec := e.runner.(execRunner); isExec {
			return "", ErrPDFToolNotFound
		}
	}

	out, err := e.runner.Run("pdftotext", "-layout", "-enc", "UTF-8", path, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return string(out), nil
}
