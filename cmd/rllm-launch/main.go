// Package main is the entry point for the rllm-launch CLI.
//
// rllm-launch deploys an RLLM distributed training job onto a
// Kubernetes cluster: it packages the code tree, uploads it and the
// training config to object storage, rewrites the Helm values template
// with runtime parameters, and installs the job as a Helm release.
//
// Commands: launch, cleanup, version, completion.
//
// For detailed usage information, run:
//
//	rllm-launch --help
package main

import (
	"fmt"
	"os"

	"github.com/dhiaEddineRhaiem/rllm-launcher/cmd/rllm-launch/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
