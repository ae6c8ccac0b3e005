package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/saransh1220/linkhub/internal/modules/filestorage/domain"
)

const (
	AvatarSize        = 400
	AvatarJPEGQuality = 85
	MaxAvatarBytes    = 5 << 20
)

var (
	ErrImageTooLarge = errors.New("image exceeds 5MB")
	ErrInvalidImage  = errors.New("file is not a supported image")
)

// FileService provides high-level file operations
type FileService struct {
	storage domain.FileStorage
}

func NewFileService(storage domain.FileStorage) *FileService {
	return &FileService{storage: storage}
}

// UploadAvatar decodes src, crops it to a centred AvatarSize square and
// stores it as JPEG under folder. It returns the public URL and storage key.
func (s *FileService) UploadAvatar(ctx context.Context, src io.Reader, folder string) (string, string, error) {
	limited := io.LimitReader(src, MaxAvatarBytes+1)
	raw, err := io.ReadAll(limited)
	if err != nil {
		return "", "", fmt.Errorf("read image: %w", err)
	}
	if len(raw) > MaxAvatarBytes {
		return "", "", ErrImageTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	thumb := imaging.Fill(img, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(AvatarJPEGQuality)); err != nil {
		return "", "", fmt.Errorf("encode avatar: %w", err)
	}

	key := fmt.Sprintf("%s/%s.jpg", folder, uuid.New().String())
	url, err := s.UploadWithKey(ctx, &buf, key, "image/jpeg")
	if err != nil {
		return "", "", err
	}
	return url, key, nil
}

// UploadWithKey uploads a file with a specific key
func (s *FileService) UploadWithKey(ctx context.Context, file io.Reader, key string, contentType string) (string, error) {
	return s.storage.UploadFile(ctx, key, file, contentType)
}

func (s *FileService) Delete(ctx context.Context, key string) error {
	return s.storage.DeleteFile(ctx, key)
}

// DeleteByURL removes the object behind a URL previously returned by this
// service. URLs that belong to another host are ignored.
func (s *FileService) DeleteByURL(ctx context.Context, fileURL string) error {
	if fileURL == "" {
		return nil
	}
	key, err := s.storage.GetKeyFromURL(fileURL)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.storage.DeleteFile(ctx, key)
}
