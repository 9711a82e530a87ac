package release

import (
	"context"
	"fmt"
	"os"
	"time"

	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/cli/values"
	"helm.sh/helm/v3/pkg/getter"
	"helm.sh/helm/v3/pkg/kube"

	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/logger"
)

// Release is the subset of Helm release state the launcher cares about.
type Release struct {
	Name   string
	Status string
}

// Manager abstracts the release-management tool so the pipeline and its
// tests never talk to a live cluster directly.
type Manager interface {
	// List returns the releases in the manager's namespace.
	List() ([]Release, error)
	// Exists reports whether a release with the given name is present.
	Exists(name string) (bool, error)
	// Install installs a chart from a local directory under the given
	// release name, layering the values file and --set style overrides.
	Install(ctx context.Context, name, chartPath, valuesFile string, set []string) error
	// Uninstall removes a release.
	Uninstall(name string) error
}

// HelmManager implements Manager against a cluster through the Helm SDK,
// using the ambient kubeconfig.
type HelmManager struct {
	settings  *cli.EnvSettings
	cfg       *action.Configuration
	namespace string
}

var _ Manager = (*HelmManager)(nil)

// NewHelmManager creates a manager scoped to one namespace.
func NewHelmManager(namespace string) (*HelmManager, error) {
	settings := cli.New()

	cfg := new(action.Configuration)
	restGetter := kube.GetConfig(settings.KubeConfig, settings.KubeContext, namespace)
	if err := cfg.Init(restGetter, namespace, os.Getenv("HELM_DRIVER"), logger.Debugf); err != nil {
		return nil, fmt.Errorf("failed to initialize helm action config: %w", err)
	}

	return &HelmManager{
		settings:  settings,
		cfg:       cfg,
		namespace: namespace,
	}, nil
}

// List returns the releases in the namespace, in any state.
func (m *HelmManager) List() ([]Release, error) {
	list := action.NewList(m.cfg)
	list.All = true
	list.SetStateMask()

	found, err := list.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to list releases in namespace %s: %w", m.namespace, err)
	}

	releases := make([]Release, 0, len(found))
	for _, r := range found {
		releases = append(releases, Release{
			Name:   r.Name,
			Status: r.Info.Status.String(),
		})
	}
	return releases, nil
}

// Exists reports whether a release has any history under the name.
func (m *HelmManager) Exists(name string) (bool, error) {
	hist := action.NewHistory(m.cfg)
	hist.Max = 1
	if _, err := hist.Run(name); err != nil {
		return false, nil
	}
	return true, nil
}

// Install installs a chart from a local directory.
func (m *HelmManager) Install(ctx context.Context, name, chartPath, valuesFile string, set []string) error {
	chart, err := loader.Load(chartPath)
	if err != nil {
		return fmt.Errorf("failed to load chart %s: %w", chartPath, err)
	}

	valOpts := &values.Options{
		ValueFiles: []string{valuesFile},
		Values:     set,
	}
	vals, err := valOpts.MergeValues(getter.All(m.settings))
	if err != nil {
		return fmt.Errorf("failed to merge values: %w", err)
	}

	install := action.NewInstall(m.cfg)
	install.ReleaseName = name
	install.Namespace = m.namespace
	install.Timeout = 10 * time.Minute

	if _, err := install.RunWithContext(ctx, chart, vals); err != nil {
		return fmt.Errorf("helm install of %s failed: %w", name, err)
	}
	return nil
}

// Uninstall removes a release.
func (m *HelmManager) Uninstall(name string) error {
	uninstall := action.NewUninstall(m.cfg)
	uninstall.Timeout = 5 * time.Minute

	if _, err := uninstall.Run(name); err != nil {
		return fmt.Errorf("helm uninstall of %s failed: %w", name, err)
	}
	return nil
}
