package handlers

import (
	"context"

	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/logger"
	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/release"
)

// Cleanup handles the cleanup command.
//
// It sweeps releases whose name contains the marker. Individual
// uninstall failures are logged and skipped; only a failure to list
// releases at all aborts.
func Cleanup(_ context.Context, namespace, marker string) error {
	m, err := newReleaseManager(namespace)
	if err != nil {
		return err
	}

	logger.Infof("sweeping releases matching %q in namespace %s", marker, namespace)

	outcomes, err := release.CleanupMatching(m, marker)
	if err != nil {
		return err
	}

	if len(outcomes) == 0 {
		logger.Infof("no matching releases found")
		return nil
	}

	removed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			logger.Warnf("failed to uninstall %s: %v", o.Name, o.Err)
			continue
		}
		logger.Infof("uninstalled %s", o.Name)
		removed++
	}
	logger.Infof("cleanup complete: %d of %d releases removed", removed, len(outcomes))
	return nil
}
