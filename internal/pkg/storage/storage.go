package storage

import (
	"context"
	"errors"
	"io"
)

var ErrObjectNotFound = errors.New("stored object not found")

// FileStorage persists generated artifacts such as archived reports.
type FileStorage interface {
	// Upload stores the content under path and returns the cleaned key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a file, ErrObjectNotFound when absent
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)

	// URL returns the public location of a stored key
	URL(path string) string
}
