package values

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MasterAddrToken is the placeholder in the workload launch script that
// the chart resolves to the rank-0 pod address. Multi-node runs need it
// intact; single-node runs rendezvous on localhost.
const MasterAddrToken = "$MASTER_ADDR"

// Document is a Helm values document. It is held as a generic mapping
// so that keys outside the overridden fields round-trip untouched.
type Document struct {
	root map[string]any
}

// Override describes the per-launch rewrites applied to a template.
type Override struct {
	// Nodes is the node count written to the top-level nodes field.
	Nodes int
	// SecretKey is the entry under secrets to rewrite, e.g. WANDB_API_KEY.
	SecretKey string
	// SecretName is the Kubernetes secret name written into that entry.
	SecretName string
	// Region is appended to checkpoint bucket names that lack it.
	Region string
	// CheckpointBucketPrefix selects which gcsMounts buckets are
	// region-qualified.
	CheckpointBucketPrefix string
}

// Load reads a values template from a YAML file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read values template: %w", err)
	}
	return Parse(data)
}

// Parse builds a Document from raw YAML.
func Parse(data []byte) (*Document, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal values yaml: %w", err)
	}
	if root == nil {
		root = map[string]any{}
	}
	return &Document{root: root}, nil
}

// Apply rewrites the document in place per the override. Only the
// fields named here are touched; the rest of the template passes
// through unchanged.
func (d *Document) Apply(o Override) error {
	d.root["nodes"] = o.Nodes

	if err := d.setSecretName(o.SecretKey, o.SecretName); err != nil {
		return err
	}

	workload, err := mapAt(d.root, "workload")
	if err != nil {
		return err
	}

	if o.Nodes == 1 {
		script, ok := workload["script"].(string)
		if !ok {
			return fmt.Errorf("values template has no workload.script string")
		}
		workload["script"] = strings.ReplaceAll(script, MasterAddrToken, "localhost")
	}

	return regionalizeMounts(workload, o.CheckpointBucketPrefix, o.Region)
}

func (d *Document) setSecretName(key, name string) error {
	secrets, err := mapAt(d.root, "secrets")
	if err != nil {
		return err
	}

	entry, err := mapAt(secrets, key)
	if err != nil {
		return fmt.Errorf("values template has no secrets.%s mapping", key)
	}
	entry["secret_name"] = name
	return nil
}

// regionalizeMounts appends -{region} to every mounted checkpoint
// bucket that matches the prefix and does not already carry the region.
func regionalizeMounts(workload map[string]any, prefix, region string) error {
	volumes, err := mapAt(workload, "volumes")
	if err != nil {
		return err
	}

	mounts, ok := volumes["gcsMounts"].([]any)
	if !ok {
		return fmt.Errorf("values template has no workload.volumes.gcsMounts list")
	}

	for i, raw := range mounts {
		mount, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("gcsMounts[%d] is not a mapping", i)
		}

		bucket, ok := mount["bucket"].(string)
		if !ok {
			return fmt.Errorf("gcsMounts[%d] has no bucket string", i)
		}

		if strings.HasPrefix(bucket, prefix) && !strings.Contains(bucket, region) {
			mount["bucket"] = fmt.Sprintf("%s-%s", bucket, region)
		}
	}
	return nil
}

// Marshal serializes the document back to YAML.
func (d *Document) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(d.root)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal values yaml: %w", err)
	}
	return data, nil
}

// WriteTemp serializes the document to a temp file for consumption by
// the release install. The caller owns the file and must remove it.
func (d *Document) WriteTemp() (string, error) {
	data, err := d.Marshal()
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "rllm-values-*.yaml")
	if err != nil {
		return "", fmt.Errorf("failed to create temp values file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write temp values file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close temp values file: %w", err)
	}

	return f.Name(), nil
}

// Root exposes the underlying mapping for assertions in tests.
func (d *Document) Root() map[string]any {
	return d.root
}

func mapAt(m map[string]any, key string) (map[string]any, error) {
	child, ok := m[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("values template has no %s mapping", key)
	}
	return child, nil
}
