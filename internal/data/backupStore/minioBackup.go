package backupStore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/akolanti/ClaimAPI/pkg/logger_i"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type MinioStore struct {
	client *minio.Client
	bucket string
	logger *logger_i.Logger
}

// NewMinioStore connects and creates the bucket when it does not exist yet.
func NewMinioStore(ctx context.Context, opts MinioOptions) (*MinioStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket %s: %w", opts.Bucket, err)
		}
	}

	return &MinioStore{
		client: client,
		bucket: opts.Bucket,
		logger: logger_i.NewLogger("MinIO Backup"),
	}, nil
}

func (m *MinioStore) Store(ctx context.Context, key string, data []byte, contentType string) error {
	info, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("minio put %s: %w", key, err)
	}
	m.logger.FromContext(ctx).Debug("backup stored", "bucket", m.bucket, "key", key, "size", info.Size)
	return nil
}
