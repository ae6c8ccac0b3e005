package filestorage

import (
	"context"
	"testing"

	"github.com/saransh1220/linkhub/internal/shared/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModule_Local(t *testing.T) {
	dir := t.TempDir()
	m, err := NewModule(context.Background(), config.FileStorageConfig{
		UseS3: false, LocalPath: dir, LocalBaseURL: "http://localhost:8080/uploads",
	})
	require.NoError(t, err)
	require.NotNil(t, m.Service())
	assert.Equal(t, dir, m.LocalRoot())
}

func TestNewModule_S3(t *testing.T) {
	m, err := NewModule(context.Background(), config.FileStorageConfig{
		UseS3: true, S3BucketName: "avatars", S3Region: "us-east-1", S3AccessKey: "x", S3SecretKey: "y",
	})
	require.NoError(t, err)
	assert.Empty(t, m.LocalRoot())

	_, err = NewModule(context.Background(), config.FileStorageConfig{UseS3: true, S3BucketName: ""})
	require.Error(t, err)
}
