// Package artifact reads card artifacts from disk.
package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/cardver/internal/domain/entity"
	"github.com/bnema/cardver/internal/logging"
)

// FileSource implements port.ArtifactSource for files on disk.
type FileSource struct{}

// NewFileSource creates a new FileSource.
func NewFileSource() *FileSource {
	return &FileSource{}
}

// ReadSource returns the artifact text.
func (s *FileSource) ReadSource(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &entity.CheckError{
			Kind:   entity.KindArtifactRead,
			Source: entity.VersionSourceEmbedded,
			Path:   path,
			Err:    err,
		}
	}
	logging.FromContext(ctx).Debug().Str("path", path).Int("bytes", len(data)).Msg("artifact read")
	return string(data), nil
}

// Resolve expands pattern to exactly one existing file. Plain paths are
// returned unchanged so a missing artifact is reported by the reader.
func Resolve(pattern string) (string, error) {
	if !hasMeta(pattern) {
		return pattern, nil
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid artifact pattern %q: %w", pattern, err)
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("artifact pattern %q matched no files", pattern)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("artifact pattern %q matched %d files, want exactly one: %v", pattern, len(matches), matches)
	}
}

// ExpandAll expands every pattern, keeping order and dropping duplicates.
// Patterns matching nothing are an error.
func ExpandAll(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, p := range patterns {
		matches := []string{p}
		if hasMeta(p) {
			var err error
			matches, err = filepath.Glob(p)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("pattern %q matched no files", p)
			}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func hasMeta(path string) bool {
	for _, c := range path {
		switch c {
		case '*', '?', '[':
			return true
		}
	}
	return false
}
