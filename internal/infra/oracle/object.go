package oracle

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const maxArtifactBytes = 1 << 20

// ObjectConfig locates an artifact in an S3-compatible bucket.
type ObjectConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Key       string
}

// ObjectFetcher downloads the artifact from S3-compatible object storage (S3, R2, MinIO).
type ObjectFetcher struct {
	client *minio.Client
	bucket string
	key    string
	logger *slog.Logger
}

// NewObjectFetcher constructs the object storage fetcher.
func NewObjectFetcher(cfg ObjectConfig, logger *slog.Logger) (*ObjectFetcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(cfg.Bucket) == "" || strings.TrimSpace(cfg.Key) == "" {
		return nil, fmt.Errorf("oracle object bucket and key are required")
	}
	client, err := minio.New(sanitizeEndpoint(cfg.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       strings.HasPrefix(strings.ToLower(strings.TrimSpace(cfg.Endpoint)), "https"),
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object storage client: %w", err)
	}
	return &ObjectFetcher{
		client: client,
		bucket: cfg.Bucket,
		key:    strings.TrimPrefix(cfg.Key, "/"),
		logger: logger.With("component", "oracle.object"),
	}, nil
}

// Fetch implements Fetcher.
func (f *ObjectFetcher) Fetch(ctx context.Context) ([]byte, error) {
	obj, err := f.client.GetObject(ctx, f.bucket, f.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s/%s: %w", f.bucket, f.key, err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat object %s/%s: %w", f.bucket, f.key, err)
	}
	if info.Size > maxArtifactBytes {
		return nil, fmt.Errorf("object %s/%s is %d bytes, limit is %d", f.bucket, f.key, info.Size, maxArtifactBytes)
	}
	data, err := io.ReadAll(io.LimitReader(obj, maxArtifactBytes))
	if err != nil {
		return nil, fmt.Errorf("read object %s/%s: %w", f.bucket, f.key, err)
	}
	f.logger.Debug("oracle artifact downloaded", "bucket", f.bucket, "key", f.key, "etag", info.ETag, "bytes", len(data))
	return data, nil
}

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	host, _, _ := strings.Cut(raw, "/")
	return host
}

var _ Fetcher = (*ObjectFetcher)(nil)
