package launch

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/archive"
	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/config"
	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/jobid"
	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/logger"
	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/release"
	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/storage"
	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/ui"
	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/util/naming"
	"github.com/dhiaEddineRhaiem/rllm-launcher/internal/values"
)

const totalSteps = 6

// NamespaceChecker is the pre-deploy namespace probe.
type NamespaceChecker interface {
	NamespaceExists(ctx context.Context, name string) (bool, error)
}

// Pipeline runs one launch end to end: package, upload, render values,
// deploy. Every external call blocks; there is no retry and no
// parallelism. Failures in uploads, packaging, and install are fatal;
// stale-release cleanup and the archive sanity check only warn.
type Pipeline struct {
	cfg        *config.Launch
	dest       storage.Destination
	store      storage.Client
	releases   release.Manager
	namespaces NamespaceChecker
	out        *ui.Printer
}

// Result summarizes a completed launch for the operator.
type Result struct {
	JobID       string
	FullJobName string
	Namespace   string
	CodeURL     string
	ConfigURL   string
	Replaced    bool
	Cleanup     []release.Outcome
}

// New assembles a pipeline. The namespace checker may be nil, in which
// case the preflight probe is skipped.
func New(cfg *config.Launch, dest storage.Destination, store storage.Client, releases release.Manager, namespaces NamespaceChecker, out *ui.Printer) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		dest:       dest,
		store:      store,
		releases:   releases,
		namespaces: namespaces,
		out:        out,
	}
}

// Run executes the launch and returns its result.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	id, err := jobid.New()
	if err != nil {
		return nil, err
	}

	res := &Result{
		JobID:       id,
		FullJobName: naming.FullJobName(p.cfg.JobName, id),
		Namespace:   p.cfg.Namespace,
		CodeURL:     p.dest.URL(naming.CodeBundleKey(id)),
		ConfigURL:   p.dest.URL(naming.ConfigKey(id)),
	}

	p.out.Banner("Launching RLLM Job", [][2]string{
		{"Job ID", res.JobID},
		{"Job Name", res.FullJobName},
		{"Nodes", strconv.Itoa(p.cfg.Nodes)},
		{"Region", p.cfg.Region},
		{"Namespace", p.cfg.Namespace},
		{"Config", p.cfg.ConfigPath},
	})

	if err := p.preflight(ctx); err != nil {
		return nil, err
	}

	if p.cfg.CleanupStale && strings.Contains(p.cfg.JobName, p.cfg.DebugMarker) {
		res.Cleanup = p.cleanupStale()
	}

	bundle, err := p.packageCode(ctx)
	if err != nil {
		return nil, err
	}
	defer os.Remove(bundle)

	p.out.Step(2, totalSteps, fmt.Sprintf("Uploading code to %s", res.CodeURL))
	if err := p.store.Upload(ctx, bundle, p.dest.Key(naming.CodeBundleKey(id))); err != nil {
		return nil, err
	}

	p.out.Step(3, totalSteps, fmt.Sprintf("Uploading config to %s", res.ConfigURL))
	if err := p.store.Upload(ctx, p.cfg.ConfigPath, p.dest.Key(naming.ConfigKey(id))); err != nil {
		return nil, err
	}

	valuesFile, err := p.renderValues()
	if err != nil {
		return nil, err
	}
	defer os.Remove(valuesFile)

	p.out.Step(5, totalSteps, fmt.Sprintf("Checking for existing release %s...", res.FullJobName))
	p.out.Step(6, totalSteps, "Deploying job with Helm...")

	set := []string{
		fmt.Sprintf("workload.extra_env.TII_GCP_JOB_ID=%s", res.JobID),
		fmt.Sprintf("workload.extra_env.TII_RLLM_JOB_NAME=%s", res.FullJobName),
	}
	replaced, err := release.Deploy(ctx, p.releases, res.FullJobName, p.cfg.ChartPath, valuesFile, set)
	if err != nil {
		return nil, err
	}
	res.Replaced = replaced
	if replaced {
		p.out.OK("replaced existing release of the same name")
	}

	return res, nil
}

// preflight fails the launch before any artifact is pushed when the
// namespace or the bucket is unreachable.
func (p *Pipeline) preflight(ctx context.Context) error {
	if p.namespaces != nil {
		exists, err := p.namespaces.NamespaceExists(ctx, p.cfg.Namespace)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("namespace %s does not exist", p.cfg.Namespace)
		}
	}

	exists, err := p.store.BucketExists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", p.dest.Bucket)
	}
	return nil
}

// cleanupStale sweeps old debug releases. Best effort only.
func (p *Pipeline) cleanupStale() []release.Outcome {
	logger.Infof("checking for stale %s* releases in namespace %s", p.cfg.DebugMarker, p.cfg.Namespace)

	outcomes, err := release.CleanupMatching(p.releases, p.cfg.DebugMarker)
	if err != nil {
		p.out.Warn(fmt.Sprintf("could not list releases for cleanup: %v", err))
		return nil
	}

	for _, o := range outcomes {
		if o.Err != nil {
			p.out.Warn(fmt.Sprintf("failed to uninstall stale release %s: %v", o.Name, o.Err))
			continue
		}
		p.out.OK(fmt.Sprintf("uninstalled stale release %s", o.Name))
	}
	return outcomes
}

// packageCode archives the source tree and sanity-checks its contents.
func (p *Pipeline) packageCode(ctx context.Context) (string, error) {
	p.out.Step(1, totalSteps, "Compressing codebase...")

	bundle, err := archive.Create(ctx, p.cfg.CodePath)
	if err != nil {
		return "", err
	}

	if p.cfg.ExpectedArchiveDir != "" {
		n, err := archive.CountEntries(bundle, p.cfg.ExpectedArchiveDir)
		if err == nil && n > 0 {
			p.out.OK(fmt.Sprintf("%s included in bundle (%d entries)", p.cfg.ExpectedArchiveDir, n))
		} else {
			if p.cfg.StrictVerify {
				os.Remove(bundle)
				return "", fmt.Errorf("expected directory %s missing from code bundle", p.cfg.ExpectedArchiveDir)
			}
			p.out.Warn(fmt.Sprintf("%s not found in bundle; the workload may fail at startup", p.cfg.ExpectedArchiveDir))
		}
	}

	return bundle, nil
}

// renderValues rewrites the values template for this launch and writes
// it to a temp file for the install.
func (p *Pipeline) renderValues() (string, error) {
	p.out.Step(4, totalSteps, "Generating values.yaml...")

	doc, err := values.Load(p.cfg.ValuesPath)
	if err != nil {
		return "", err
	}

	err = doc.Apply(values.Override{
		Nodes:                  p.cfg.Nodes,
		SecretKey:              p.cfg.SecretKey,
		SecretName:             p.cfg.SecretName,
		Region:                 p.cfg.Region,
		CheckpointBucketPrefix: p.cfg.CheckpointBucketPrefix,
	})
	if err != nil {
		return "", err
	}

	return doc.WriteTemp()
}
