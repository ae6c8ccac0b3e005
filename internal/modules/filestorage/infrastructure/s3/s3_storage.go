package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/saransh1220/linkhub/internal/modules/filestorage/domain"
)

// S3Config holds configuration for S3 or an S3-compatible store such as MinIO.
type S3Config struct {
	BucketName     string
	Region         string
	Endpoint       string // API endpoint, empty for AWS
	PublicEndpoint string // host browsers use to fetch objects
	AccessKey      string
	SecretKey      string
	UseSSL         bool
}

// S3Storage implements domain.FileStorage.
type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string // public URL prefix, ending in "/"
	aliases []string
}

func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := withScheme(cfg.Endpoint, cfg.UseSSL)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	st := &S3Storage{client: client, bucket: cfg.BucketName}

	public := withScheme(cfg.PublicEndpoint, cfg.UseSSL)
	switch {
	case public != "":
		st.baseURL = fmt.Sprintf("%s/%s/", strings.TrimRight(public, "/"), cfg.BucketName)
	case endpoint != "":
		st.baseURL = fmt.Sprintf("%s/%s/", strings.TrimRight(endpoint, "/"), cfg.BucketName)
	default:
		st.baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", cfg.BucketName, cfg.Region)
	}
	if endpoint != "" {
		st.aliases = append(st.aliases, fmt.Sprintf("%s/%s/", strings.TrimRight(endpoint, "/"), cfg.BucketName))
	}

	return st, nil
}

// UploadFile implements domain.FileStorage
func (s *S3Storage) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         file,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to s3: %w", err)
	}
	return s.baseURL + key, nil
}

// DeleteFile implements domain.FileStorage
func (s *S3Storage) DeleteFile(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from s3: %w", err)
	}
	return nil
}

// GetKeyFromURL implements domain.FileStorage
func (s *S3Storage) GetKeyFromURL(fileURL string) (string, error) {
	for _, prefix := range append([]string{s.baseURL}, s.aliases...) {
		if key, ok := strings.CutPrefix(fileURL, prefix); ok && key != "" {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrKeyNotFound, fileURL)
}

func withScheme(endpoint string, useSSL bool) string {
	if endpoint == "" || strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}
