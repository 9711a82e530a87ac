package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Client uploads job artifacts to an object-storage bucket. Upload
// failures are fatal to the launch pipeline; there is no retry here.
type Client interface {
	// BucketExists reports whether the destination bucket is reachable.
	BucketExists(ctx context.Context) (bool, error)
	// Upload copies a local file to key inside the destination bucket.
	Upload(ctx context.Context, localPath, key string) error
	// Close releases the underlying connection, if any.
	Close() error
}

// Destination identifies a bucket and key prefix parsed from an
// operator-supplied URL such as gs://bucket/path or s3://bucket/path.
type Destination struct {
	Scheme string
	Bucket string
	Prefix string
}

// Recognized destination schemes.
const (
	SchemeGCS = "gs"
	SchemeS3  = "s3"
)

// ParseBucketURL parses a bucket URL into a Destination. A trailing
// slash on the path is ignored.
func ParseBucketURL(raw string) (Destination, error) {
	u, err := url.Parse(strings.TrimSuffix(raw, "/"))
	if err != nil {
		return Destination{}, fmt.Errorf("invalid bucket url %q: %w", raw, err)
	}

	if u.Scheme != SchemeGCS && u.Scheme != SchemeS3 {
		return Destination{}, fmt.Errorf("unsupported bucket scheme %q (expected %s:// or %s://)", u.Scheme, SchemeGCS, SchemeS3)
	}
	if u.Host == "" {
		return Destination{}, fmt.Errorf("bucket url %q has no bucket name", raw)
	}

	return Destination{
		Scheme: u.Scheme,
		Bucket: u.Host,
		Prefix: strings.Trim(u.Path, "/"),
	}, nil
}

// Key joins the destination prefix with an object key.
func (d Destination) Key(key string) string {
	if d.Prefix == "" {
		return key
	}
	return path.Join(d.Prefix, key)
}

// URL renders the full remote URL of an object key, for operator output.
func (d Destination) URL(key string) string {
	return fmt.Sprintf("%s://%s/%s", d.Scheme, d.Bucket, d.Key(key))
}

// NewClient returns the storage client for the destination scheme.
func NewClient(ctx context.Context, dest Destination) (Client, error) {
	switch dest.Scheme {
	case SchemeGCS:
		return NewGCSClient(ctx, dest.Bucket)
	case SchemeS3:
		return NewS3Client(ctx, dest.Bucket)
	default:
		return nil, fmt.Errorf("unsupported bucket scheme %q", dest.Scheme)
	}
}
