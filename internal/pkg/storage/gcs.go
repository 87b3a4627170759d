package storage

import (
	"context"
	"errors"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSOptions configures the Google Cloud Storage driver.
type GCSOptions struct {
	Bucket        string
	PublicURL     string
	ClientOptions []option.ClientOption
}

// GCS stores objects in a Cloud Storage bucket.
type GCS struct {
	client    *gcs.Client
	bucket    string
	publicURL string
}

// NewGCS creates the client.
func NewGCS(ctx context.Context, opts GCSOptions) (*GCS, error) {
	if opts.Bucket == "" {
		return nil, errors.New("storage: gcs bucket is required")
	}

	client, err := gcs.NewClient(ctx, opts.ClientOptions...)
	if err != nil {
		return nil, err
	}

	public := opts.PublicURL
	if public == "" {
		public = "https://storage.googleapis.com/" + opts.Bucket
	}

	return &GCS{client: client, bucket: opts.Bucket, publicURL: public}, nil
}

// Put implements Storage.
func (g *GCS) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Object, error) {
	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = opts.ContentType
	w.Metadata = opts.Metadata

	n, err := io.Copy(w, r)
	if err != nil {
		return Object{}, errors.Join(err, w.Close())
	}
	if err := w.Close(); err != nil {
		return Object{}, err
	}

	return Object{Key: key, URL: g.URL(key), Size: n, ContentType: opts.ContentType}, nil
}

// Delete implements Storage.
func (g *GCS) Delete(ctx context.Context, key string) error {
	err := g.client.Bucket(g.bucket).Object(key).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return ErrNotFound
	}
	return err
}

// URL implements Storage.
func (g *GCS) URL(key string) string { return publicURL(g.publicURL, key) }

// Close implements io.Closer.
func (g *GCS) Close() error { return g.client.Close() }
