package intake

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"matlist/internal/decoder"
)

var (
	ErrMissingInputDir = errors.New("missing input folder")
	ErrNoDocuments     = errors.New("no documents found")
)

// DiscoverDocuments lists the supported documents directly under dir, in
// lexicographic name order. A missing directory and a directory with no
// supported documents are distinct fatal errors.
func DiscoverDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			abs, absErr := filepath.Abs(dir)
			if absErr != nil {
				abs = dir
			}
			return nil, fmt.Errorf("%w: %s", ErrMissingInputDir, abs)
		}
		return nil, err
	}

	// os.ReadDir returns entries sorted by name.
	paths := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if decoder.Supported(path) {
			paths = append(paths, path)
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, dir)
	}
	return paths, nil
}
