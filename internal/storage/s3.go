package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Environment variables for S3-compatible destinations. When the
// endpoint is set, static credentials from the access/secret variables
// are used; otherwise the default AWS credential chain applies.
const (
	envS3Endpoint  = "RLLM_S3_ENDPOINT"
	envS3AccessKey = "RLLM_S3_ACCESS_KEY"
	envS3SecretKey = "RLLM_S3_SECRET_KEY"
	envS3Region    = "RLLM_S3_REGION"
)

// S3Client uploads artifacts to an S3 or S3-compatible bucket.
type S3Client struct {
	s3     *s3.Client
	bucket string
}

// NewS3Client creates a client bound to one bucket.
func NewS3Client(ctx context.Context, bucket string) (*S3Client, error) {
	region := os.Getenv(envS3Region)
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if access, secret := os.Getenv(envS3AccessKey), os.Getenv(envS3SecretKey); access != "" && secret != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(access, secret, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := os.Getenv(envS3Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Client{s3: client, bucket: bucket}, nil
}

// BucketExists reports whether the bucket exists and is accessible.
func (c *S3Client) BucketExists(ctx context.Context) (bool, error) {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucket),
	})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check bucket %s: %w", c.bucket, err)
	}
	return true, nil
}

// Upload copies a local file to key in the bucket.
func (c *S3Client) Upload(ctx context.Context, localPath, key string) error {
	f, err := os.Open(localPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", localPath, err)
	}

	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to s3://%s/%s: %w", localPath, c.bucket, key, err)
	}
	return nil
}

// Close is a no-op; the S3 client holds no persistent connection.
func (c *S3Client) Close() error {
	return nil
}

// isNotFoundError checks if the error is a not found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	// Check for typed S3 errors first
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	// Fall back to API error code checking for S3-compatible services
	// that may not return the exact SDK error types
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchBucket" || code == "404"
	}

	return false
}
