// Package backupStore keeps a best effort copy of every uploaded document.
package backupStore

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
)

// BuildKey returns surecheck/uploads/{claimId}_{filename}_{unix}.
func BuildKey(claimID, filename string, at time.Time) string {
	return fmt.Sprintf("%s/%s_%s_%d", config.BackupKeyPrefix, claimID, sanitizeFilename(filename), at.Unix())
}

func sanitizeFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "document"
	}
	return strings.ReplaceAll(base, " ", "_")
}

// New picks the backend named in settings. "none" or an unknown backend disables backups.
func New(ctx context.Context, settings config.Settings) (claimModel.BackupStore, error) {
	switch settings.BackupBackend {
	case config.BackupBackendS3:
		return NewS3Store(ctx, settings.AWSRegion, settings.AWSEndpointURL, settings.BackupBucket)
	case config.BackupBackendMinio:
		return NewMinioStore(ctx, MinioOptions{
			Endpoint:  settings.MinioEndpoint,
			AccessKey: settings.MinioAccessKey,
			SecretKey: settings.MinioSecretKey,
			UseSSL:    settings.MinioUseSSL,
			Bucket:    settings.BackupBucket,
		})
	default:
		return Discard{}, nil
	}
}

// Discard drops every backup.
type Discard struct{}

func (Discard) Store(context.Context, string, []byte, string) error { return nil }
