package storage

import (
	"context"
	"errors"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOOptions configures the MinIO driver.
type MinIOOptions struct {
	Bucket       string
	PublicURL    string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	SessionToken string
	Region       string
	UseSSL       bool
}

// MinIO stores objects in a MinIO bucket.
type MinIO struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinIO creates the client. The bucket must already exist.
func NewMinIO(opts MinIOOptions) (*MinIO, error) {
	if opts.Bucket == "" {
		return nil, errors.New("storage: minio bucket is required")
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, opts.SessionToken),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, err
	}

	public := opts.PublicURL
	if public == "" {
		public = client.EndpointURL().String() + "/" + opts.Bucket
	}

	return &MinIO{client: client, bucket: opts.Bucket, publicURL: public}, nil
}

// Put implements Storage.
func (m *MinIO) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Object, error) {
	size := opts.Size
	if size == 0 {
		size = -1
	}

	info, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		UserMetadata: opts.Metadata,
	})
	if err != nil {
		return Object{}, err
	}

	return Object{Key: key, URL: m.URL(key), Size: info.Size, ContentType: opts.ContentType}, nil
}

// Delete implements Storage.
func (m *MinIO) Delete(ctx context.Context, key string) error {
	err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrNotFound
	}
	return err
}

// URL implements Storage.
func (m *MinIO) URL(key string) string { return publicURL(m.publicURL, key) }

// Close implements io.Closer.
func (*MinIO) Close() error { return nil }
