package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Gouterman/stencil/cache"
	"github.com/Gouterman/stencil/data"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Cache stores entries as objects of an existing bucket, usable as a remote
// build cache.
type Cache struct {
	client *minio.Client
	config *Config
}

type Config struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool

	// Prefix for all object names (default: "stencil/cache")
	Prefix string
}

var _ cache.Cache = (*Cache)(nil)

func New(config *Config) (*Cache, error) {
	if config == nil || config.Endpoint == "" || config.Bucket == "" {
		return nil, fmt.Errorf("%w: endpoint and bucket are required", data.ErrInvalid)
	}
	if config.Prefix == "" {
		config.Prefix = "stencil/cache"
	}

	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &Cache{
		client: client,
		config: config,
	}, nil
}

// Returns the identifier name defined for this cache
func (*Cache) Name() string {
	return "s3"
}

func (c *Cache) Open(ctx context.Context) error {
	exists, err := c.client.BucketExists(ctx, c.config.Bucket)
	if err != nil {
		return fmt.Errorf("%w: %w", data.ErrCacheUnavailable, err)
	}

	if !exists {
		return fmt.Errorf("%w: bucket '%s' does not exist", data.ErrCacheUnavailable, c.config.Bucket)
	}

	return nil
}

func (c *Cache) Close(ctx context.Context) error {
	return nil
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	object, err := c.client.GetObject(ctx, c.config.Bucket, c.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return c.notFound(err)
	}
	defer object.Close()

	// GetObject is lazy, a missing object only surfaces on the first read
	buffer, err := io.ReadAll(object)
	if err != nil {
		return c.notFound(err)
	}

	return string(buffer), true, nil
}

func (c *Cache) Put(ctx context.Context, key, value string) error {
	_, err := c.client.PutObject(ctx, c.config.Bucket, c.objectName(key),
		strings.NewReader(value), int64(len(value)),
		minio.PutObjectOptions{ContentType: "text/plain; charset=utf-8"})

	return err
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.RemoveObject(ctx, c.config.Bucket, c.objectName(key), minio.RemoveObjectOptions{})
}

func (c *Cache) objectName(key string) string {
	return strings.TrimSuffix(c.config.Prefix, "/") + "/" + strings.TrimPrefix(key, "/")
}

func (*Cache) notFound(err error) (string, bool, error) {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return "", false, nil
	}

	return "", false, err
}
