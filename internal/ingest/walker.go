package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
	gitignore "github.com/sabhiram/go-gitignore"
)

// WalkOptions configures a directory walk.
type WalkOptions struct {
	// Root is the directory to walk.
	Root string

	// Recursive descends into subdirectories when true; otherwise only
	// direct children of Root are visited.
	Recursive bool

	// IgnorePatterns are gitignore-syntax patterns to skip.
	IgnorePatterns []string

	// MaxFileSize skips files larger than this many bytes. Zero means
	// no limit.
	MaxFileSize int64
}

// Walker enumerates candidate files under a root directory.
type Walker struct {
	opts    WalkOptions
	ignorer *gitignore.GitIgnore
}

// NewWalker creates a walker rooted at opts.Root. The root must exist and
// be a directory.
func NewWalker(opts WalkOptions) (*Walker, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root path: %w", err)
	}
	opts.Root = root

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("root path does not exist: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path is not a directory: %s", root)
	}

	return &Walker{
		opts:    opts,
		ignorer: gitignore.CompileIgnoreLines(opts.IgnorePatterns...),
	}, nil
}

// Walk visits every candidate file under the root in lexical order and
// calls fn with its absolute path. Unreadable entries are logged and
// skipped.
func (w *Walker) Walk(fn func(path string) error) error {
	return filepath.WalkDir(w.opts.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Debug("Error accessing path", "path", path, "error", err)
			return nil
		}

		relPath, err := filepath.Rel(w.opts.Root, path)
		if err != nil {
			relPath = path
		}

		if d.IsDir() {
			if path == w.opts.Root {
				return nil
			}
			if !w.opts.Recursive {
				return filepath.SkipDir
			}
			if w.shouldSkipDir(d.Name(), relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if w.shouldSkipFile(d.Name(), relPath) {
			return nil
		}

		if w.opts.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil {
				log.Debug("Failed to stat file", "path", path, "error", err)
				return nil
			}
			if info.Size() > w.opts.MaxFileSize {
				log.Debug("Skipping oversized file", "path", relPath, "size", info.Size())
				return nil
			}
		}

		return fn(path)
	})
}

func (w *Walker) shouldSkipDir(name, relPath string) bool {
	if name == ".git" || strings.HasPrefix(name, ".") {
		return true
	}
	return w.ignorer.MatchesPath(relPath + "/")
}

func (w *Walker) shouldSkipFile(name, relPath string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return w.ignorer.MatchesPath(relPath)
}

// HashContent computes the xxhash-64 fingerprint of content bytes.
func HashContent(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}
