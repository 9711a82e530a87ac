package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBucketURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Destination
	}{
		{
			"gcs bucket root",
			"gs://tii-aiccu-falcon-mamba-us-central1",
			Destination{Scheme: "gs", Bucket: "tii-aiccu-falcon-mamba-us-central1"},
		},
		{
			"gcs trailing slash",
			"gs://bucket/",
			Destination{Scheme: "gs", Bucket: "bucket"},
		},
		{
			"gcs with prefix",
			"gs://bucket/team/jobs",
			Destination{Scheme: "gs", Bucket: "bucket", Prefix: "team/jobs"},
		},
		{
			"s3 with prefix",
			"s3://artifacts/rllm/",
			Destination{Scheme: "s3", Bucket: "artifacts", Prefix: "rllm"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseBucketURL(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBucketURLErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"unknown scheme", "ftp://bucket/path"},
		{"no scheme", "bucket/path"},
		{"missing bucket", "gs:///path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseBucketURL(tt.raw)
			require.Error(t, err)
		})
	}
}

func TestDestinationKeyAndURL(t *testing.T) {
	t.Parallel()

	root := Destination{Scheme: "gs", Bucket: "bucket"}
	assert.Equal(t, "job-folders/job-1234/rllm.tar.gz", root.Key("job-folders/job-1234/rllm.tar.gz"))
	assert.Equal(t, "gs://bucket/job-folders/job-1234/rllm.tar.gz", root.URL("job-folders/job-1234/rllm.tar.gz"))

	prefixed := Destination{Scheme: "s3", Bucket: "bucket", Prefix: "team"}
	assert.Equal(t, "team/config.yaml", prefixed.Key("config.yaml"))
	assert.Equal(t, "s3://bucket/team/config.yaml", prefixed.URL("config.yaml"))
}
