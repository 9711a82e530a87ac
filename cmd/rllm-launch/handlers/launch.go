package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/config"
	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/k8s"
	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/launch"
	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/logger"
	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/release"
	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/storage"
	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/ui"
)

// Factory function variables - can be replaced in tests.
var (
	// newStorageClient creates the object-storage client for the
	// destination bucket.
	newStorageClient = storage.NewClient

	// newReleaseManager creates the Helm release manager for a namespace.
	newReleaseManager = func(namespace string) (release.Manager, error) {
		return release.NewHelmManager(namespace)
	}

	// newNamespaceChecker creates the pre-deploy namespace probe.
	newNamespaceChecker = func() (launch.NamespaceChecker, error) {
		return k8s.NewFromKubeconfig()
	}

	// loadProfile reads the optional defaults file.
	loadProfile = config.LoadProfile
)

// Launch handles the launch command.
//
// It resolves configuration (flags, then profile, then defaults), wires
// the storage and release clients, and runs the deployment pipeline.
func Launch(ctx context.Context, cfg *config.Launch, profilePath string) error {
	if profilePath != "" {
		profile, err := loadProfile(profilePath)
		if err != nil {
			return err
		}
		cfg.MergeProfile(profile)
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid launch configuration: %w", err)
	}

	dest, err := storage.ParseBucketURL(cfg.BucketURL)
	if err != nil {
		return err
	}

	store, err := newStorageClient(ctx, dest)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warnf("failed to close storage client: %v", err)
		}
	}()

	releases, err := newReleaseManager(cfg.Namespace)
	if err != nil {
		return err
	}

	namespaces, err := newNamespaceChecker()
	if err != nil {
		return err
	}

	out := ui.NewPrinter(os.Stdout)
	pipeline := launch.New(cfg, dest, store, releases, namespaces, out)

	res, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	out.Success(
		[][2]string{
			{"Job Name", res.FullJobName},
			{"Job ID", res.JobID},
			{"Code", res.CodeURL},
			{"Config", res.ConfigURL},
		},
		monitorGuidance(cfg, res),
	)
	return nil
}

// monitorGuidance renders the follow-up kubectl commands printed after
// a successful deploy. They are guidance only; the launcher never runs
// kubectl itself.
func monitorGuidance(cfg *config.Launch, res *launch.Result) []string {
	lines := []string{
		"",
		"Monitor logs with:",
		fmt.Sprintf("  kubectl logs -f -n %s -l job-name=%s", res.Namespace, res.FullJobName),
	}
	if cfg.ExpectedArchiveDir != "" {
		lines = append(lines,
			"",
			fmt.Sprintf("Verify %s in pod:", cfg.ExpectedArchiveDir),
			fmt.Sprintf("  kubectl exec -it -n %s <pod-name> -- ls -la /workspace/rllm/%s", res.Namespace, cfg.ExpectedArchiveDir),
		)
	}
	return lines
}
