package storage

import (
	"context"
	"io"
)

// Storage abstracts where uploaded files (field photos) are kept.
type Storage interface {
	// Save writes content under the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the file at the given relative path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file at the given relative path.
	// Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error
}
