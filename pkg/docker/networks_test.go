package docker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateNetwork(t *testing.T) {
	t.Run("creates with driver", func(t *testing.T) {
		runner := &fakeRunner{}
		runner.on([]string{"inspect", "--type", "network", "backend"}, "", noSuchObject())
		runner.on([]string{"network", "create"}, "9f3c1a", nil)
		cli := NewWithRunner(runner)

		name, err := cli.CreateNetwork(context.Background(), "backend", "bridge")
		assert.NoError(t, err)
		assert.Equal(t, "9f3c1a", name)
		assert.Equal(t, []string{"network", "create", "--driver", "bridge", "backend"}, runner.calls[1])
	})

	t.Run("existing network is success", func(t *testing.T) {
		runner := &fakeRunner{}
		runner.on([]string{"inspect", "--type", "network", "backend"}, "[{}]", nil)
		cli := NewWithRunner(runner)

		name, err := cli.CreateNetwork(context.Background(), "backend", "")
		assert.NoError(t, err)
		assert.Equal(t, "backend", name)
		assert.Len(t, runner.calls, 1)
	})

	t.Run("omits driver when empty", func(t *testing.T) {
		runner := &fakeRunner{}
		runner.on([]string{"inspect", "--type", "network", "backend"}, "", noSuchObject())
		runner.on([]string{"network", "create"}, "9f3c1a", nil)
		cli := NewWithRunner(runner)

		_, err := cli.CreateNetwork(context.Background(), "backend", "")
		assert.NoError(t, err)
		assert.Equal(t, []string{"network", "create", "backend"}, runner.calls[1])
	})
}

func TestRemoveNetwork(t *testing.T) {
	t.Run("missing is success", func(t *testing.T) {
		runner := &fakeRunner{}
		runner.on([]string{"inspect", "--type", "network", "backend"}, "", noSuchObject())
		cli := NewWithRunner(runner)

		assert.NoError(t, cli.RemoveNetwork(context.Background(), "backend"))
		assert.Len(t, runner.calls, 1)
	})

	t.Run("existing is removed", func(t *testing.T) {
		runner := &fakeRunner{}
		runner.on([]string{"inspect", "--type", "network", "backend"}, "[{}]", nil)
		runner.on([]string{"network", "rm", "backend"}, "backend", nil)
		cli := NewWithRunner(runner)

		assert.NoError(t, cli.RemoveNetwork(context.Background(), "backend"))
		assert.Len(t, runner.calls, 2)
	})
}

func TestPruneNetworks(t *testing.T) {
	runner := &fakeRunner{}
	runner.on([]string{"network", "prune"}, "", nil)
	cli := NewWithRunner(runner)

	assert.NoError(t, cli.PruneNetworks(context.Background()))
	assert.Equal(t, []string{"network", "prune", "-f"}, runner.calls[0])
}
