package domain

import (
	"context"
	"errors"
	"io"
)

var ErrKeyNotFound = errors.New("url does not belong to this storage")

// FileStorage stores publicly readable blobs such as profile pictures.
type FileStorage interface {
	// UploadFile stores file under key and returns its public URL.
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error)

	DeleteFile(ctx context.Context, key string) error

	// GetKeyFromURL maps a public URL produced by UploadFile back to its key.
	GetKeyFromURL(url string) (string, error)
}
