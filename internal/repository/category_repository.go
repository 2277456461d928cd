package repository

import (
	"context"
	"fmt"
	"os"
)

// FileCategoryRepository serves the category document from a file on disk.
// The file is read on every call so edits show up without a restart.
type FileCategoryRepository struct {
	path string
}

// NewFileCategoryRepository creates a category repository backed by path
func NewFileCategoryRepository(path string) *FileCategoryRepository {
	return &FileCategoryRepository{path: path}
}

// Categories returns the file contents verbatim. The content is not parsed.
func (r *FileCategoryRepository) Categories(ctx context.Context) (string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return "", fmt.Errorf("failed to read categories: %w", err)
	}
	return string(data), nil
}
