package commands

import (
	"github.com/spf13/cobra"

	"github.com/dhiaEddineRhaiem/rllm-launcher/cmd/rllm-launch/handlers"
	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/config"
)

// Launch returns the launch command.
//
// The launch command runs the full deployment pipeline: it packages the
// code tree, uploads the bundle and training config to the artifact
// bucket, rewrites the values template, and installs the job as a Helm
// release. An existing release with the same full job name is
// uninstalled first.
func Launch() *cobra.Command {
	var (
		cfg         config.Launch
		profilePath string
	)

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Deploy a training job",
		Long: `Launch deploys an RLLM training job onto the cluster.

Pipeline:
  1. Compress the code tree (excluding .git and Python caches)
  2. Upload the bundle to the artifact bucket
  3. Upload the training config next to it
  4. Rewrite the Helm values template with runtime parameters
  5. Uninstall any release with the same full job name
  6. Install the chart under the full job name

Example:
  rllm-launch launch \
    --code ~/rllm \
    --config ~/rllm/gcp/configs/qwen3-1b.yaml \
    --values ~/rllm/gcp/values/rllm-values-main.yaml \
    --chart ~/charts/mambatron \
    --bucket gs://tii-aiccu-falcon-mamba-us-central1 \
    --name rllm-debug-qwen1b \
    --nodes 1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Launch(cmd.Context(), &cfg, profilePath)
		},
	}

	cmd.Flags().StringVar(&cfg.CodePath, "code", "", "Local path to the code tree (required)")
	cmd.Flags().StringVar(&cfg.ConfigPath, "config", "", "Path to the training config (required)")
	cmd.Flags().StringVar(&cfg.ValuesPath, "values", "", "Path to the Helm values template (required)")
	cmd.Flags().StringVar(&cfg.ChartPath, "chart", "", "Path to the Helm chart directory")
	cmd.Flags().StringVar(&cfg.BucketURL, "bucket", "", "Artifact bucket URL (gs://... or s3://...)")
	cmd.Flags().StringVar(&cfg.JobName, "name", "", "Job name; the generated job id is appended (required)")
	cmd.Flags().IntVar(&cfg.Nodes, "nodes", config.DefaultNodes, "Number of nodes")
	cmd.Flags().StringVar(&cfg.SecretName, "secret", "", "Kubernetes secret holding the wandb key")
	cmd.Flags().StringVar(&cfg.Region, "region", "", "Region suffix for checkpoint buckets")
	cmd.Flags().StringVar(&cfg.Namespace, "namespace", "", "Target namespace")
	cmd.Flags().BoolVar(&cfg.CleanupStale, "cleanup", true, "Uninstall stale debug releases before deploying")
	cmd.Flags().BoolVar(&cfg.StrictVerify, "strict-verify", false, "Fail when the expected directory is missing from the bundle")
	cmd.Flags().StringVar(&profilePath, "profile", "", "Optional YAML profile supplying defaults")

	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("values")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
