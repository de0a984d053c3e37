// Package compendium loads compendium records from dataset files.
package compendium

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ersonp/legendlore/internal/domain/entities"
	"github.com/ersonp/legendlore/internal/infrastructure/parsers"
)

// ErrNoSources is returned when no file matches the source patterns.
var ErrNoSources = errors.New("no compendium sources found")

// FileSource reads records from files selected by doublestar glob patterns.
type FileSource struct {
	patterns []string
	encoding string
	log      *slog.Logger
}

// NewFileSource creates a FileSource. encoding, when set, overrides the
// encoding declared by XML files. A nil logger uses slog.Default.
func NewFileSource(patterns []string, encoding string, log *slog.Logger) *FileSource {
	if log == nil {
		log = slog.Default()
	}
	return &FileSource{
		patterns: patterns,
		encoding: encoding,
		log:      log,
	}
}

// Files returns the files matched by the patterns in pattern order,
// each file once.
func (s *FileSource) Files() ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, pattern := range s.patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("matching %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoSources, s.patterns)
	}
	return files, nil
}

// Load parses every matched file and returns its records in document order.
func (s *FileSource) Load(ctx context.Context) (*entities.Compendium, error) {
	files, err := s.Files()
	if err != nil {
		return nil, err
	}

	b := newBuilder(s.log)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := s.parseFile(path)
		if err != nil {
			return nil, err
		}
		s.log.Debug("parsed compendium file", "path", path, "entries", len(entries))
		if err := b.addAll(path, entries); err != nil {
			return nil, err
		}
	}
	return b.compendium(), nil
}

func (s *FileSource) parseFile(path string) (entries []parsers.RawEntry, err error) {
	parser := parsers.ForFile(path, s.encoding)
	if parser == nil {
		return nil, fmt.Errorf("unsupported compendium file %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing file: %w", cerr)
		}
	}()

	entries, err = parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}
