package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandStructure(t *testing.T) {
	t.Parallel()

	root := Root()
	assert.Equal(t, "rllm-launch", root.Use)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "launch")
	assert.Contains(t, names, "cleanup")
	assert.Contains(t, names, "version")
	assert.Contains(t, names, "completion")
}

func TestLaunchFlags(t *testing.T) {
	t.Parallel()

	cmd := Launch()
	for _, flag := range []string{
		"code", "config", "values", "chart", "bucket", "name",
		"nodes", "secret", "region", "namespace", "cleanup",
		"strict-verify", "profile",
	} {
		require.NotNil(t, cmd.Flags().Lookup(flag), "missing flag %s", flag)
	}

	nodes, err := cmd.Flags().GetInt("nodes")
	require.NoError(t, err)
	assert.Equal(t, 1, nodes)

	cleanup, err := cmd.Flags().GetBool("cleanup")
	require.NoError(t, err)
	assert.True(t, cleanup)
}

func TestCleanupFlags(t *testing.T) {
	t.Parallel()

	cmd := Cleanup()
	ns, err := cmd.Flags().GetString("namespace")
	require.NoError(t, err)
	assert.Equal(t, "falcon-mamba", ns)

	marker, err := cmd.Flags().GetString("marker")
	require.NoError(t, err)
	assert.Equal(t, "rllm", marker)
}
