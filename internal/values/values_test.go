package values

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const templateYAML = `
nodes: 4
secrets:
  WANDB_API_KEY:
    secret_name: old
workload:
  script: "run $MASTER_ADDR"
  volumes:
    gcsMounts:
      - bucket: tii-aiccu-checkpoints
`

func defaultOverride(nodes int) Override {
	return Override{
		Nodes:                  nodes,
		SecretKey:              "WANDB_API_KEY",
		SecretName:             "wandb-credentials",
		Region:                 "us-central1",
		CheckpointBucketPrefix: "tii-aiccu-checkpoints",
	}
}

func TestApplySingleNode(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(templateYAML))
	require.NoError(t, err)

	require.NoError(t, doc.Apply(defaultOverride(1)))

	root := doc.Root()
	assert.Equal(t, 1, root["nodes"])

	workload := root["workload"].(map[string]any)
	assert.Equal(t, "run localhost", workload["script"])
	assert.NotContains(t, workload["script"], MasterAddrToken)

	secrets := root["secrets"].(map[string]any)
	entry := secrets["WANDB_API_KEY"].(map[string]any)
	assert.Equal(t, "wandb-credentials", entry["secret_name"])

	mounts := workload["volumes"].(map[string]any)["gcsMounts"].([]any)
	mount := mounts[0].(map[string]any)
	assert.Equal(t, "tii-aiccu-checkpoints-us-central1", mount["bucket"])
}

func TestApplyMultiNodeKeepsPlaceholder(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(templateYAML))
	require.NoError(t, err)

	require.NoError(t, doc.Apply(defaultOverride(4)))

	workload := doc.Root()["workload"].(map[string]any)
	assert.Equal(t, "run $MASTER_ADDR", workload["script"])
	assert.Equal(t, 4, doc.Root()["nodes"])
}

func TestRegionalizeMounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		bucket string
		want   string
	}{
		{"prefix without region", "tii-aiccu-checkpoints", "tii-aiccu-checkpoints-us-central1"},
		{"prefix with suffix without region", "tii-aiccu-checkpoints-eu", "tii-aiccu-checkpoints-eu-us-central1"},
		{"already regionalized", "tii-aiccu-checkpoints-us-central1", "tii-aiccu-checkpoints-us-central1"},
		{"unrelated bucket", "some-other-bucket", "some-other-bucket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			workload := map[string]any{
				"volumes": map[string]any{
					"gcsMounts": []any{
						map[string]any{"bucket": tt.bucket},
					},
				},
			}

			err := regionalizeMounts(workload, "tii-aiccu-checkpoints", "us-central1")
			require.NoError(t, err)

			mount := workload["volumes"].(map[string]any)["gcsMounts"].([]any)[0].(map[string]any)
			assert.Equal(t, tt.want, mount["bucket"])
		})
	}
}

func TestApplyPreservesUnrelatedKeys(t *testing.T) {
	t.Parallel()

	template := `
nodes: 4
queue: batch
secrets:
  WANDB_API_KEY:
    secret_name: old
    mount_path: /secrets
workload:
  image: ghcr.io/example/trainer:latest
  script: "run $MASTER_ADDR"
  volumes:
    shmSize: 16Gi
    gcsMounts:
      - bucket: tii-aiccu-checkpoints
        mountPath: /ckpt
`
	doc, err := Parse([]byte(template))
	require.NoError(t, err)

	require.NoError(t, doc.Apply(defaultOverride(2)))

	out, err := doc.Marshal()
	require.NoError(t, err)

	var round map[string]any
	require.NoError(t, yaml.Unmarshal(out, &round))

	assert.Equal(t, "batch", round["queue"])

	secrets := round["secrets"].(map[string]any)["WANDB_API_KEY"].(map[string]any)
	assert.Equal(t, "/secrets", secrets["mount_path"])

	workload := round["workload"].(map[string]any)
	assert.Equal(t, "ghcr.io/example/trainer:latest", workload["image"])

	volumes := workload["volumes"].(map[string]any)
	assert.Equal(t, "16Gi", volumes["shmSize"])

	mount := volumes["gcsMounts"].([]any)[0].(map[string]any)
	assert.Equal(t, "/ckpt", mount["mountPath"])
}

func TestApplyMissingKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		wantErr  string
	}{
		{"no secrets", "nodes: 1\nworkload: {script: run}\n", "secrets"},
		{"no secret entry", "secrets: {OTHER: {secret_name: x}}\nworkload: {script: run}\n", "WANDB_API_KEY"},
		{"no workload", "secrets: {WANDB_API_KEY: {secret_name: x}}\n", "workload"},
		{
			"no gcsMounts",
			"secrets: {WANDB_API_KEY: {secret_name: x}}\nworkload: {script: run, volumes: {}}\n",
			"gcsMounts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := Parse([]byte(tt.template))
			require.NoError(t, err)

			err = doc.Apply(defaultOverride(1))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteTempRoundTrip(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(templateYAML))
	require.NoError(t, err)
	require.NoError(t, doc.Apply(defaultOverride(1)))

	path, err := doc.WriteTemp()
	require.NoError(t, err)
	defer os.Remove(path)

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Root(), reloaded.Root())
}
