// Package s3 provides a storage backend for S3-compatible object stores
// such as Cloudflare R2 or MinIO.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/voicerunner/voicerunner/storage"
)

// Config holds the connection settings for the object store.
type Config struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Backend implements storage.Backend against a single bucket. Locators use
// the r2://{bucket}/{key} scheme.
type Backend struct {
	client *minio.Client
	bucket string
}

var _ storage.Backend = (*Backend)(nil)

// New builds a client for the configured endpoint. TLS is used unless the
// endpoint explicitly carries an http:// scheme.
func New(cfg Config) (*Backend, error) {
	secure := !strings.HasPrefix(cfg.Endpoint, "http://")
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: building object store client: %v", storage.ErrUnavailable, err)
	}
	return &Backend{client: client, bucket: cfg.Bucket}, nil
}

func (b *Backend) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := b.client.PutObject(ctx, b.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("%w: putting %s: %v", storage.ErrUnavailable, key, err)
	}
	return fmt.Sprintf("r2://%s/%s", b.bucket, key), nil
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: getting %s: %v", storage.ErrUnavailable, key, err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%s: %w", key, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", storage.ErrUnavailable, key, err)
	}
	return data, nil
}

func (b *Backend) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true}
	for obj := range b.client.ListObjects(ctx, b.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("%w: listing %s: %v", storage.ErrUnavailable, prefix, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}
