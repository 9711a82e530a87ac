package release

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeManager records calls and serves canned responses.
type fakeManager struct {
	releases     []Release
	listErr      error
	existing     map[string]bool
	uninstallErr map[string]error
	installErr   error

	installs   []string
	uninstalls []string
	calls      []string
}

func newFakeManager() *fakeManager {
	return &fakeManager{
		existing:     map[string]bool{},
		uninstallErr: map[string]error{},
	}
}

func (f *fakeManager) List() ([]Release, error) {
	return f.releases, f.listErr
}

func (f *fakeManager) Exists(name string) (bool, error) {
	return f.existing[name], nil
}

func (f *fakeManager) Install(_ context.Context, name, _, _ string, _ []string) error {
	f.installs = append(f.installs, name)
	f.calls = append(f.calls, "install:"+name)
	return f.installErr
}

func (f *fakeManager) Uninstall(name string) error {
	f.uninstalls = append(f.uninstalls, name)
	f.calls = append(f.calls, "uninstall:"+name)
	return f.uninstallErr[name]
}

func TestDeployFreshName(t *testing.T) {
	t.Parallel()

	m := newFakeManager()

	replaced, err := Deploy(context.Background(), m, "job-abc", "./chart", "values.yaml", nil)
	require.NoError(t, err)
	assert.False(t, replaced)
	assert.Empty(t, m.uninstalls)
	assert.Equal(t, []string{"job-abc"}, m.installs)
}

func TestDeployReplacesExisting(t *testing.T) {
	t.Parallel()

	m := newFakeManager()
	m.existing["job-abc"] = true

	replaced, err := Deploy(context.Background(), m, "job-abc", "./chart", "values.yaml", nil)
	require.NoError(t, err)
	assert.True(t, replaced)
	assert.Equal(t, []string{"uninstall:job-abc", "install:job-abc"}, m.calls)
}

func TestDeployUninstallFailureAbortsInstall(t *testing.T) {
	t.Parallel()

	m := newFakeManager()
	m.existing["job-abc"] = true
	m.uninstallErr["job-abc"] = errors.New("release stuck")

	_, err := Deploy(context.Background(), m, "job-abc", "./chart", "values.yaml", nil)
	require.Error(t, err)
	assert.Empty(t, m.installs)
}

func TestDeployInstallFailureLeavesReleaseAbsent(t *testing.T) {
	t.Parallel()

	m := newFakeManager()
	m.existing["job-abc"] = true
	m.installErr = errors.New("chart invalid")

	replaced, err := Deploy(context.Background(), m, "job-abc", "./chart", "values.yaml", nil)
	require.Error(t, err)
	assert.True(t, replaced, "prior release was removed before the failed install")
	assert.Equal(t, []string{"uninstall:job-abc", "install:job-abc"}, m.calls)
}

func TestCleanupMatching(t *testing.T) {
	t.Parallel()

	m := newFakeManager()
	m.releases = []Release{
		{Name: "rllm-debug-a1b2c3d4", Status: "deployed"},
		{Name: "prod-inference", Status: "deployed"},
		{Name: "rllm-debug-ffffffff", Status: "failed"},
	}
	m.uninstallErr["rllm-debug-ffffffff"] = errors.New("hook timed out")

	outcomes, err := CleanupMatching(m, "rllm")
	require.NoError(t, err)

	require.Len(t, outcomes, 2)
	assert.Equal(t, "rllm-debug-a1b2c3d4", outcomes[0].Name)
	assert.NoError(t, outcomes[0].Err)
	assert.Equal(t, "rllm-debug-ffffffff", outcomes[1].Name)
	assert.Error(t, outcomes[1].Err)

	assert.NotContains(t, m.uninstalls, "prod-inference")
}

func TestCleanupMatchingListFailure(t *testing.T) {
	t.Parallel()

	m := newFakeManager()
	m.listErr = errors.New("cluster unreachable")

	_, err := CleanupMatching(m, "rllm")
	require.Error(t, err)
	assert.Empty(t, m.uninstalls)
}

func TestCleanupMatchingNoMatches(t *testing.T) {
	t.Parallel()

	m := newFakeManager()
	m.releases = []Release{{Name: "prod-inference", Status: "deployed"}}

	outcomes, err := CleanupMatching(m, "rllm")
	require.NoError(t, err)
	assert.Empty(t, outcomes)
	assert.Empty(t, m.uninstalls)
}
