package backupStore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/akolanti/ClaimAPI/pkg/logger_i"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Store struct {
	client objectPutter
	bucket string
	logger *logger_i.Logger
}

// NewS3Store loads the default AWS config. A non-empty endpoint points the client at
// localstack or any other S3 compatible service.
func NewS3Store(ctx context.Context, region, endpoint, bucket string) (*S3Store, error) {
	cfg, err := awsCfg.LoadDefaultConfig(ctx, awsCfg.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Store(client, bucket), nil
}

func newS3Store(client objectPutter, bucket string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		logger: logger_i.NewLogger("S3 Backup"),
	}
}

func (s *S3Store) Store(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(data),
		ContentLength:        aws.Int64(int64(len(data))),
		ContentType:          aws.String(contentType),
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	s.logger.FromContext(ctx).Debug("backup stored", "bucket", s.bucket, "key", key)
	return nil
}
