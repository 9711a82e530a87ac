// Package storage uploads job artifacts to object storage.
//
// The destination bucket comes from an operator-supplied URL; gs://
// selects Google Cloud Storage and s3:// selects S3 or an S3-compatible
// endpoint. Both clients implement the same Client interface so the
// launch pipeline never cares which cloud it talks to.
package storage
