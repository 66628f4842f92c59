package docker

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/obeli-sk/components-flyio/pkg/log"
	"github.com/obeli-sk/components-flyio/pkg/metrics"
)

// Runner executes one docker CLI invocation and returns trimmed stdout.
// A non-zero exit is an error carrying stderr and stdout for diagnosis.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// execRunner shells out to the configured docker binary.
type execRunner struct {
	binary string
}

func (r *execRunner) Run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := strings.TrimSpace(stdout.String())
	if err != nil {
		return out, fmt.Errorf("docker command failed (%v)\nstderr: %s\nstdout: %s",
			err, strings.TrimSpace(stderr.String()), out)
	}
	return out, nil
}

// CLI provides typed bindings over the local container runtime's command
// line interface.
type CLI struct {
	runner Runner
	logger zerolog.Logger
}

// New creates a CLI shelling out to the given binary ("docker" when empty).
// The runner environment must have the binary available in PATH.
func New(binary string) *CLI {
	if binary == "" {
		binary = "docker"
	}
	return NewWithRunner(&execRunner{binary: binary})
}

// NewWithRunner creates a CLI over an explicit runner. Tests use this to
// substitute fakes.
func NewWithRunner(runner Runner) *CLI {
	return &CLI{
		runner: runner,
		logger: log.WithComponent("docker"),
	}
}

// run executes one CLI invocation, recording metrics per subcommand.
func (c *CLI) run(ctx context.Context, args ...string) (string, error) {
	out, err := c.runner.Run(ctx, args...)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.DockerCommandsTotal.WithLabelValues(args[0], outcome).Inc()

	c.logger.Debug().
		Strs("args", args).
		Str("outcome", outcome).
		Msg("docker cli invocation")

	return out, err
}

// checkExists reports whether a resource of the given type exists, by
// inspecting it. A "No such object" failure means false; any other failure
// propagates.
func (c *CLI) checkExists(ctx context.Context, resourceType, name string) (bool, error) {
	_, err := c.run(ctx, "inspect", "--type", resourceType, name)
	if err == nil {
		return true, nil
	}
	if strings.Contains(err.Error(), "No such") {
		return false, nil
	}
	return false, err
}
