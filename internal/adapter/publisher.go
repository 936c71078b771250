package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	m "github.com/mouse-blink/vislog/internal/model"
)

// ErrPublisherDisabled is returned when uploading without storage configured.
var ErrPublisherDisabled = errors.New("artifact storage is not configured")

// Publisher uploads finished artifacts (archives, figures) to shared storage.
type Publisher interface {
	Publish(ctx context.Context, local m.Path, key string) error
}

// S3Config configures an S3-compatible artifact bucket.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// S3Publisher uploads artifacts with minio-go.
type S3Publisher struct {
	client   *minio.Client
	bucket   string
	region   string
	prefix   string
	initOnce sync.Once
	initErr  error
}

// NewS3Publisher validates cfg and builds the client. No request is made
// until the first Publish.
func NewS3Publisher(cfg S3Config) (*S3Publisher, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}

	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)

	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}

	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &S3Publisher{
		client: client,
		bucket: bucket,
		region: region,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

// Publish uploads the local file under key (joined with the configured prefix).
func (p *S3Publisher) Publish(ctx context.Context, local m.Path, key string) error {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return fmt.Errorf("object key is required")
	}

	if err := p.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}

	_, err := p.client.FPutObject(ctx, p.bucket, p.ObjectKey(key), string(local), minio.PutObjectOptions{
		ContentType: contentType(string(local)),
	})

	return err
}

// ObjectKey returns the full object key for key.
func (p *S3Publisher) ObjectKey(key string) string {
	if p.prefix == "" {
		return key
	}

	return p.prefix + "/" + key
}

func (p *S3Publisher) ensureBucket(ctx context.Context) error {
	p.initOnce.Do(func() {
		exists, err := p.client.BucketExists(ctx, p.bucket)
		if err != nil {
			p.initErr = err
			return
		}

		if exists {
			return
		}

		p.initErr = p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{Region: p.region})
	})

	return p.initErr
}

// NopPublisher rejects every upload; it stands in when storage is not configured.
type NopPublisher struct{}

// Publish always returns ErrPublisherDisabled.
func (NopPublisher) Publish(_ context.Context, _ m.Path, _ string) error {
	return ErrPublisherDisabled
}

func contentType(path string) string {
	switch formatOf(path) {
	case ".zip":
		return "application/zip"
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}
