// Package fsquery answers read-only questions about the host filesystem.
package fsquery

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"file-aggregator/apierror"
	"file-aggregator/metrics"
	"file-aggregator/models"
)

// ListDirectory returns the immediate children of path in the order the OS
// reports them. Symlinks are classified by their target; entries whose
// target cannot be resolved are reported as files.
func ListDirectory(path string) ([]models.DirectoryEntry, error) {
	items, err := listDirectory(path)
	metrics.FSOperationsTotal.WithLabelValues("list", metrics.Result(err)).Inc()
	return items, err
}

func listDirectory(path string) ([]models.DirectoryEntry, error) {
	dir, err := os.Open(path)
	if err != nil {
		return nil, apierror.IO(err)
	}
	defer dir.Close()

	// ReadDir(-1) on an open file keeps directory order; os.ReadDir sorts.
	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, apierror.IO(err)
	}

	items := make([]models.DirectoryEntry, 0, len(entries))
	for _, entry := range entries {
		fullPath := filepath.Join(path, entry.Name())
		items = append(items, models.DirectoryEntry{
			Name: entry.Name(),
			Path: fullPath,
			Type: classify(fullPath, entry),
		})
	}
	return items, nil
}

func classify(fullPath string, entry os.DirEntry) models.EntryType {
	if entry.Type()&os.ModeSymlink != 0 {
		if info, err := os.Stat(fullPath); err == nil && info.IsDir() {
			return models.EntryTypeDirectory
		}
		return models.EntryTypeFile
	}
	if entry.IsDir() {
		return models.EntryTypeDirectory
	}
	return models.EntryTypeFile
}

// ReadFile returns the whole content of path, which must be valid UTF-8.
func ReadFile(path string) (string, error) {
	content, err := readFile(path)
	metrics.FSOperationsTotal.WithLabelValues("read", metrics.Result(err)).Inc()
	return content, err
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", apierror.IO(err)
	}
	if !utf8.Valid(data) {
		return "", apierror.IO(&DecodeError{Path: path})
	}
	return string(data), nil
}

// DecodeError reports a file that is not valid UTF-8.
type DecodeError struct {
	Path string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: content is not valid UTF-8", e.Path)
}
