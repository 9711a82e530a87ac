package commands

import (
	"github.com/spf13/cobra"

	"github.com/dhiaEddineRhaiem/rllm-launcher/cmd/rllm-launch/handlers"
	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/config"
)

// Cleanup returns the cleanup command.
//
// The cleanup command uninstalls every release in a namespace whose
// name contains the marker substring. Individual uninstall failures
// are reported and skipped; the sweep itself never fails part-way.
func Cleanup() *cobra.Command {
	var (
		namespace string
		marker    string
	)

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Uninstall stale debug releases",
		Long: `Cleanup sweeps stale debug releases from a namespace.

Every release whose name contains the marker substring is uninstalled.
Failures on individual releases are logged and skipped so one stuck
release never blocks the rest of the sweep.

Example:
  rllm-launch cleanup --namespace falcon-mamba --marker rllm-debug`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Cleanup(cmd.Context(), namespace, marker)
		},
	}

	cmd.Flags().StringVar(&namespace, "namespace", config.DefaultNamespace, "Namespace to sweep")
	cmd.Flags().StringVar(&marker, "marker", config.DefaultDebugMarker, "Substring identifying stale releases")

	return cmd
}
