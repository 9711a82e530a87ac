// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated
// to handler functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/logger"
)

// Root returns the root command for the rllm-launch CLI.
func Root() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "rllm-launch",
		Short: "Deploy RLLM training jobs to Kubernetes",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if level, ok := logger.ParseLevel(logLevel); ok {
				logger.SetLevel(level)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(Launch())
	cmd.AddCommand(Cleanup())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
