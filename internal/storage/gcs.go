package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	gcs "cloud.google.com/go/storage"
)

// GCSClient uploads artifacts to a Google Cloud Storage bucket using
// application-default credentials.
type GCSClient struct {
	client *gcs.Client
	bucket string
}

// NewGCSClient creates a client bound to one bucket.
func NewGCSClient(ctx context.Context, bucket string) (*GCSClient, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSClient{client: client, bucket: bucket}, nil
}

// BucketExists reports whether the bucket is reachable with the current
// credentials.
func (c *GCSClient) BucketExists(ctx context.Context) (bool, error) {
	_, err := c.client.Bucket(c.bucket).Attrs(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrBucketNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check bucket %s: %w", c.bucket, err)
	}
	return true, nil
}

// Upload copies a local file to key in the bucket.
func (c *GCSClient) Upload(ctx context.Context, localPath, key string) error {
	f, err := os.Open(localPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	w := c.client.Bucket(c.bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return fmt.Errorf("failed to upload %s to gs://%s/%s: %w", localPath, c.bucket, key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize upload of gs://%s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// Close releases the GCS connection.
func (c *GCSClient) Close() error {
	return c.client.Close()
}
