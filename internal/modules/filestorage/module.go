package filestorage

import (
	"context"
	"fmt"

	"github.com/saransh1220/linkhub/internal/modules/filestorage/application"
	"github.com/saransh1220/linkhub/internal/modules/filestorage/domain"
	"github.com/saransh1220/linkhub/internal/modules/filestorage/infrastructure/local"
	"github.com/saransh1220/linkhub/internal/modules/filestorage/infrastructure/s3"
	"github.com/saransh1220/linkhub/internal/shared/infrastructure/config"
)

// Module represents the FileStorage module
type Module struct {
	service   *application.FileService
	storage   domain.FileStorage
	localRoot string
}

// NewModule picks S3 or the local filesystem depending on cfg.UseS3.
func NewModule(ctx context.Context, cfg config.FileStorageConfig) (*Module, error) {
	m := &Module{}

	if cfg.UseS3 {
		st, err := s3.NewS3Storage(ctx, s3.S3Config{
			BucketName:     cfg.S3BucketName,
			Region:         cfg.S3Region,
			Endpoint:       cfg.S3Endpoint,
			PublicEndpoint: cfg.S3PublicEndpoint,
			AccessKey:      cfg.S3AccessKey,
			SecretKey:      cfg.S3SecretKey,
			UseSSL:         cfg.S3UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		m.storage = st
	} else {
		st, err := local.NewLocalStorage(cfg.LocalPath, cfg.LocalBaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		m.storage = st
		m.localRoot = st.BasePath()
	}

	m.service = application.NewFileService(m.storage)
	return m, nil
}

func (m *Module) Service() *application.FileService {
	return m.service
}

// LocalRoot is the directory the gateway should serve under /uploads/,
// or "" when objects live in S3.
func (m *Module) LocalRoot() string {
	return m.localRoot
}
