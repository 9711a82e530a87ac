package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Profile carries per-team launch defaults loaded from a YAML file.
// Flags set explicitly by the operator win over profile values.
type Profile struct {
	Bucket                 string `mapstructure:"bucket"`
	Namespace              string `mapstructure:"namespace"`
	Region                 string `mapstructure:"region"`
	SecretName             string `mapstructure:"secret_name"`
	ChartPath              string `mapstructure:"chart_path"`
	CheckpointBucketPrefix string `mapstructure:"checkpoint_bucket_prefix"`
	ExpectedArchiveDir     string `mapstructure:"expected_archive_dir"`
	DebugMarker            string `mapstructure:"debug_marker"`
}

// LoadProfile reads and decodes a profile file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile yaml: %w", err)
	}

	var p Profile
	if err := mapstructure.Decode(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	return &p, nil
}

// MergeProfile fills fields the operator left empty from the profile.
func (l *Launch) MergeProfile(p *Profile) {
	if p == nil {
		return
	}
	if l.BucketURL == "" {
		l.BucketURL = p.Bucket
	}
	if l.Namespace == "" {
		l.Namespace = p.Namespace
	}
	if l.Region == "" {
		l.Region = p.Region
	}
	if l.SecretName == "" {
		l.SecretName = p.SecretName
	}
	if l.ChartPath == "" {
		l.ChartPath = p.ChartPath
	}
	if l.CheckpointBucketPrefix == "" {
		l.CheckpointBucketPrefix = p.CheckpointBucketPrefix
	}
	if l.ExpectedArchiveDir == "" {
		l.ExpectedArchiveDir = p.ExpectedArchiveDir
	}
	if l.DebugMarker == "" {
		l.DebugMarker = p.DebugMarker
	}
}
