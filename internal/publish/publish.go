// Package publish uploads saved presentations to S3-compatible storage.
package publish

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/VantageDataChat/slideshow/internal/config"
)

// ContentType is the MIME type of a .pptx package.
const ContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// Uploader puts files into one bucket and returns their public URL.
type Uploader struct {
	client *minio.Client
	bucket string
	prefix string
	host   string
	logger *zap.SugaredLogger
}

// NewUploader connects to the configured endpoint and checks that the
// bucket exists.
func NewUploader(ctx context.Context, cfg config.S3, logger *zap.SugaredLogger) (*Uploader, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: !cfg.Insecure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init S3 client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", cfg.Bucket)
	}

	scheme := "https"
	if cfg.Insecure {
		scheme = "http"
	}
	return &Uploader{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		host:   fmt.Sprintf("%s://%s", scheme, cfg.Endpoint),
		logger: logger,
	}, nil
}

// Upload stores the file at localPath under the configured prefix and
// returns its public URL.
func (u *Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	key := ObjectKey(u.prefix, localPath)
	info, err := u.client.FPutObject(ctx, u.bucket, key, localPath, minio.PutObjectOptions{
		ContentType:  ContentType,
		UserMetadata: map[string]string{"uploaded-at": time.Now().UTC().Format(time.RFC3339)},
	})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	u.logger.Infow("presentation uploaded", "bucket", u.bucket, "key", key, "size", info.Size)
	return PublicURL(u.host, u.bucket, key), nil
}

// ObjectKey joins prefix and the base name of localPath with slashes.
func ObjectKey(prefix, localPath string) string {
	name := filepath.Base(localPath)
	prefix = strings.Trim(filepath.ToSlash(prefix), "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// PublicURL builds the path-style URL of key, escaping each segment.
func PublicURL(host, bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(host, "/"), bucket, strings.Join(segments, "/"))
}
