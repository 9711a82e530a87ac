package release

import (
	"context"
	"fmt"
	"strings"
)

// Outcome records the result of one best-effort uninstall during stale
// release cleanup.
type Outcome struct {
	Name string
	Err  error
}

// Deploy replaces any existing release of the same name and installs
// the chart. It returns whether a prior release was uninstalled first.
//
// If the install fails after a successful uninstall the release is left
// absent; there is no transactional guarantee to restore the old one.
func Deploy(ctx context.Context, m Manager, name, chartPath, valuesFile string, set []string) (bool, error) {
	exists, err := m.Exists(name)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing release %s: %w", name, err)
	}

	if exists {
		if err := m.Uninstall(name); err != nil {
			return false, fmt.Errorf("failed to uninstall existing release %s: %w", name, err)
		}
	}

	if err := m.Install(ctx, name, chartPath, valuesFile, set); err != nil {
		return exists, err
	}
	return exists, nil
}

// CleanupMatching uninstalls every release whose name contains marker.
// Individual failures never abort the sweep; each release yields an
// Outcome for the caller to report.
func CleanupMatching(m Manager, marker string) ([]Outcome, error) {
	releases, err := m.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}

	var outcomes []Outcome
	for _, r := range releases {
		if !strings.Contains(r.Name, marker) {
			continue
		}
		outcomes = append(outcomes, Outcome{Name: r.Name, Err: m.Uninstall(r.Name)})
	}
	return outcomes, nil
}
