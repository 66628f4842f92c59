package docker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunContainerArgumentOrder(t *testing.T) {
	runner := &fakeRunner{}
	runner.on([]string{"run"}, "abc123", nil)
	cli := NewWithRunner(runner)

	id, err := cli.RunContainer(context.Background(), "web", ContainerConfig{
		Image: "nginx:alpine",
		Cmd:   []string{"nginx", "-g", "daemon off;"},
		Env:   map[string]string{"B": "2", "A": "1"},
		Ports: []PortMapping{
			{HostPort: 8080, ContainerPort: 80},
			{HostPort: 5353, ContainerPort: 53, Protocol: "udp"},
		},
		Mounts: []MountSpec{
			{Source: "data", Target: "/var/lib/data"},
			{Source: "/etc/conf", Target: "/etc/conf", ReadOnly: true},
		},
		Network: "backend",
	})
	assert.NoError(t, err)
	assert.Equal(t, "abc123", id)

	want := []string{
		"run", "-d", "--name", "web",
		"-e", "A=1", "-e", "B=2",
		"-p", "8080:80/tcp", "-p", "5353:53/udp",
		"-v", "data:/var/lib/data:rw", "-v", "/etc/conf:/etc/conf:ro",
		"--network", "backend",
		"nginx:alpine",
		"nginx", "-g", "daemon off;",
	}
	if assert.Len(t, runner.calls, 1) {
		assert.Equal(t, want, runner.calls[0])
	}
}

func TestRunContainerConflictRecoversRunning(t *testing.T) {
	runner := &fakeRunner{}
	runner.on([]string{"run"}, "", errors.New(`docker command failed (exit status 125)
stderr: docker: Error response from daemon: Conflict. The container name "/web" is already in use by container "abc123"
stdout:`))
	runner.on([]string{"inspect", "web"}, `[{"Id":"abc123","State":{"Status":"running"}}]`, nil)
	cli := NewWithRunner(runner)

	id, err := cli.RunContainer(context.Background(), "web", ContainerConfig{Image: "nginx:alpine"})
	assert.NoError(t, err)
	assert.Equal(t, "abc123", id)
}

func TestRunContainerConflictStoppedIsError(t *testing.T) {
	runner := &fakeRunner{}
	runner.on([]string{"run"}, "", errors.New("Conflict. The container name is already in use"))
	runner.on([]string{"inspect", "web"}, `[{"Id":"abc123","State":{"Status":"exited"}}]`, nil)
	cli := NewWithRunner(runner)

	_, err := cli.RunContainer(context.Background(), "web", ContainerConfig{Image: "nginx:alpine"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exited")
}

func TestRunContainerOtherFailurePropagates(t *testing.T) {
	runner := &fakeRunner{}
	runner.on([]string{"run"}, "", errors.New("no space left on device"))
	cli := NewWithRunner(runner)

	_, err := cli.RunContainer(context.Background(), "web", ContainerConfig{Image: "nginx:alpine"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no space left on device")
}

func TestStartContainer(t *testing.T) {
	t.Run("already running is a no-op", func(t *testing.T) {
		runner := &fakeRunner{}
		runner.on([]string{"inspect", "web"}, `[{"Id":"abc","State":{"Status":"running"}}]`, nil)
		cli := NewWithRunner(runner)

		assert.NoError(t, cli.StartContainer(context.Background(), "web"))
		assert.Len(t, runner.calls, 1)
	})

	t.Run("stopped container is started", func(t *testing.T) {
		runner := &fakeRunner{}
		runner.on([]string{"inspect", "web"}, `[{"Id":"abc","State":{"Status":"exited"}}]`, nil)
		runner.on([]string{"start", "web"}, "web", nil)
		cli := NewWithRunner(runner)

		assert.NoError(t, cli.StartContainer(context.Background(), "web"))
		assert.Len(t, runner.calls, 2)
	})

	t.Run("missing container is an error", func(t *testing.T) {
		runner := &fakeRunner{}
		runner.on([]string{"inspect", "web"}, "", noSuchObject())
		cli := NewWithRunner(runner)

		err := cli.StartContainer(context.Background(), "web")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestStopContainerMissingIsSuccess(t *testing.T) {
	runner := &fakeRunner{}
	runner.on([]string{"inspect", "--type", "container", "web"}, "", noSuchObject())
	cli := NewWithRunner(runner)

	assert.NoError(t, cli.StopContainer(context.Background(), "web"))
}

func TestRemoveContainerForce(t *testing.T) {
	runner := &fakeRunner{}
	runner.on([]string{"inspect", "--type", "container", "web"}, "[{}]", nil)
	runner.on([]string{"rm", "-f", "web"}, "web", nil)
	cli := NewWithRunner(runner)

	assert.NoError(t, cli.RemoveContainer(context.Background(), "web", true))
	assert.Equal(t, []string{"rm", "-f", "web"}, runner.calls[1])
}

func TestRemoveContainerMissingIsSuccess(t *testing.T) {
	runner := &fakeRunner{}
	runner.on([]string{"inspect", "--type", "container", "web"}, "", noSuchObject())
	cli := NewWithRunner(runner)

	assert.NoError(t, cli.RemoveContainer(context.Background(), "web", false))
	assert.Len(t, runner.calls, 1)
}

func TestListContainersParsesLineDelimitedJSON(t *testing.T) {
	runner := &fakeRunner{}
	runner.on([]string{"ps"}, `{"ID":"abc","Names":"web","Image":"nginx:alpine","State":"running","Status":"Up 2 hours"}
{"ID":"def","Names":"db","Image":"postgres:16","State":"exited","Status":"Exited (0) 5 minutes ago"}`, nil)
	cli := NewWithRunner(runner)

	containers, err := cli.ListContainers(context.Background(), true)
	assert.NoError(t, err)
	if assert.Len(t, containers, 2) {
		assert.Equal(t, ContainerSummary{
			ID: "abc", Name: "web", Image: "nginx:alpine", State: "running", Status: "Up 2 hours",
		}, containers[0])
	}
	assert.Equal(t, []string{"ps", "--format", "{{json .}}", "-a"}, runner.calls[0])
}

func TestListContainersEmptyOutput(t *testing.T) {
	runner := &fakeRunner{}
	runner.on([]string{"ps"}, "", nil)
	cli := NewWithRunner(runner)

	containers, err := cli.ListContainers(context.Background(), false)
	assert.NoError(t, err)
	assert.Empty(t, containers)
}
