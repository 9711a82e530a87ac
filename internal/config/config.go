package config

import (
	"fmt"
	"os"
)

// Defaults reflect the training platform's conventions. All of them are
// overridable per launch, through flags or a profile file.
const (
	DefaultNodes                  = 1
	DefaultSecretName             = "wandb-credentials"
	DefaultSecretKey              = "WANDB_API_KEY"
	DefaultRegion                 = "us-central1"
	DefaultNamespace              = "falcon-mamba"
	DefaultCheckpointBucketPrefix = "tii-aiccu-checkpoints"
	DefaultExpectedArchiveDir     = "R2E-Gym"
	DefaultDebugMarker            = "rllm"
)

// Launch holds everything one launch invocation needs.
type Launch struct {
	// CodePath is the local source tree to package and upload.
	CodePath string
	// ConfigPath is the training config uploaded next to the bundle.
	ConfigPath string
	// ValuesPath is the Helm values template to rewrite.
	ValuesPath string
	// ChartPath is the local Helm chart directory.
	ChartPath string
	// BucketURL is the artifact destination, gs://... or s3://...
	BucketURL string
	// JobName is the operator-chosen job name; the generated job id is
	// appended to form the release name.
	JobName string

	Nodes      int
	SecretName string
	SecretKey  string
	Region     string
	Namespace  string

	// CleanupStale sweeps old debug releases before deploying.
	CleanupStale bool
	// StrictVerify makes a failed archive-content check fatal instead
	// of a warning.
	StrictVerify bool

	// CheckpointBucketPrefix selects which mounted buckets get the
	// region suffix appended.
	CheckpointBucketPrefix string
	// ExpectedArchiveDir is the subdirectory whose presence in the
	// bundle is sanity-checked after packaging.
	ExpectedArchiveDir string
	// DebugMarker is the substring identifying stale debug releases.
	DebugMarker string
}

// ApplyDefaults fills zero-valued optional fields.
func (l *Launch) ApplyDefaults() {
	if l.Nodes == 0 {
		l.Nodes = DefaultNodes
	}
	if l.SecretName == "" {
		l.SecretName = DefaultSecretName
	}
	if l.SecretKey == "" {
		l.SecretKey = DefaultSecretKey
	}
	if l.Region == "" {
		l.Region = DefaultRegion
	}
	if l.Namespace == "" {
		l.Namespace = DefaultNamespace
	}
	if l.CheckpointBucketPrefix == "" {
		l.CheckpointBucketPrefix = DefaultCheckpointBucketPrefix
	}
	if l.ExpectedArchiveDir == "" {
		l.ExpectedArchiveDir = DefaultExpectedArchiveDir
	}
	if l.DebugMarker == "" {
		l.DebugMarker = DefaultDebugMarker
	}
}

// Validate checks required fields and local paths before any remote
// side effect happens.
func (l *Launch) Validate() error {
	required := []struct {
		value, name string
	}{
		{l.CodePath, "code path"},
		{l.ConfigPath, "config path"},
		{l.ValuesPath, "values template path"},
		{l.ChartPath, "chart path"},
		{l.BucketURL, "bucket url"},
		{l.JobName, "job name"},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}

	if l.Nodes < 1 {
		return fmt.Errorf("node count must be at least 1, got %d", l.Nodes)
	}

	for _, p := range []struct {
		path, name string
		dir        bool
	}{
		{l.CodePath, "code path", true},
		{l.ConfigPath, "config path", false},
		{l.ValuesPath, "values template path", false},
		{l.ChartPath, "chart path", true},
	} {
		info, err := os.Stat(p.path)
		if err != nil {
			return fmt.Errorf("%s %s: %w", p.name, p.path, err)
		}
		if p.dir != info.IsDir() {
			kind := "a file"
			if p.dir {
				kind = "a directory"
			}
			return fmt.Errorf("%s %s must be %s", p.name, p.path, kind)
		}
	}

	return nil
}
