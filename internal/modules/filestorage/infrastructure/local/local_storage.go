package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/saransh1220/linkhub/internal/modules/filestorage/domain"
)

// LocalStorage implements domain.FileStorage on the local filesystem.
// Files are expected to be served under baseURL by the gateway.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// BasePath is the directory files are written under.
func (l *LocalStorage) BasePath() string { return l.basePath }

// UploadFile implements domain.FileStorage
func (l *LocalStorage) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	fullPath, err := l.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return l.baseURL + "/" + filepath.ToSlash(key), nil
}

// DeleteFile implements domain.FileStorage
func (l *LocalStorage) DeleteFile(ctx context.Context, key string) error {
	fullPath, err := l.resolve(key)
	if err != nil {
		return err
	}
	return os.Remove(fullPath)
}

// GetKeyFromURL implements domain.FileStorage
func (l *LocalStorage) GetKeyFromURL(url string) (string, error) {
	if key, ok := strings.CutPrefix(url, l.baseURL+"/"); ok && key != "" {
		return key, nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrKeyNotFound, url)
}

// resolve maps key to a path inside basePath, rejecting keys that escape it.
func (l *LocalStorage) resolve(key string) (string, error) {
	fullPath := filepath.Join(l.basePath, filepath.FromSlash(key))
	rel, err := filepath.Rel(l.basePath, fullPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return fullPath, nil
}
