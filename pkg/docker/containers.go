package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ContainerConfig describes a container to run.
type ContainerConfig struct {
	Image   string
	Cmd     []string
	Env     map[string]string
	Ports   []PortMapping
	Mounts  []MountSpec
	Network string
}

// PortMapping publishes a container port on the host.
type PortMapping struct {
	HostPort      uint16
	ContainerPort uint16
	Protocol      string
}

// MountSpec bind-mounts a host path or named volume into the container.
type MountSpec struct {
	Source   string
	Target   string
	ReadOnly bool
}

// ContainerInfo is the subset of `docker inspect` output callers act on.
type ContainerInfo struct {
	ID    string
	State string
}

// ContainerSummary is one `docker ps` entry.
type ContainerSummary struct {
	ID     string
	Name   string
	Image  string
	State  string
	Status string
}

// inspectEntry is the wire shape of `docker inspect` output.
type inspectEntry struct {
	ID    string `json:"Id"`
	State struct {
		Status string `json:"Status"`
	} `json:"State"`
}

// psEntry is the wire shape of one `docker ps --format '{{json .}}'` line.
type psEntry struct {
	ID     string `json:"ID"`
	Names  string `json:"Names"`
	Image  string `json:"Image"`
	State  string `json:"State"`
	Status string `json:"Status"`
}

// RunContainer starts a detached container with the given name. When the
// name is already taken, the existing container is inspected: if it is
// running it is assumed to be a previous attempt's result and its id is
// returned; any other state is an error telling the caller how to proceed.
func (c *CLI) RunContainer(ctx context.Context, name string, cfg ContainerConfig) (string, error) {
	args := []string{"run", "-d", "--name", name}

	// Sorted for deterministic argument order.
	envKeys := make([]string, 0, len(cfg.Env))
	for key := range cfg.Env {
		envKeys = append(envKeys, key)
	}
	sort.Strings(envKeys)
	for _, key := range envKeys {
		args = append(args, "-e", fmt.Sprintf("%s=%s", key, cfg.Env[key]))
	}

	for _, port := range cfg.Ports {
		protocol := port.Protocol
		if protocol == "" {
			protocol = "tcp"
		}
		args = append(args, "-p", fmt.Sprintf("%d:%d/%s", port.HostPort, port.ContainerPort, protocol))
	}

	for _, mount := range cfg.Mounts {
		mode := "rw"
		if mount.ReadOnly {
			mode = "ro"
		}
		args = append(args, "-v", fmt.Sprintf("%s:%s:%s", mount.Source, mount.Target, mode))
	}

	if cfg.Network != "" {
		args = append(args, "--network", cfg.Network)
	}

	args = append(args, cfg.Image)
	args = append(args, cfg.Cmd...)

	id, err := c.run(ctx, args...)
	if err == nil {
		return id, nil
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, "Conflict") || strings.Contains(errMsg, "is already in use") {
		info, inspectErr := c.InspectContainer(ctx, name)
		if inspectErr != nil {
			return "", inspectErr
		}
		if info != nil {
			if info.State == "running" {
				return info.ID, nil
			}
			return "", fmt.Errorf("container '%s' exists but is in state '%s'; use 'start' to resume or 'rm' to replace",
				name, info.State)
		}
	}
	return "", err
}

// StartContainer starts an existing container. Already running is success;
// a missing container is an error.
func (c *CLI) StartContainer(ctx context.Context, name string) error {
	info, err := c.InspectContainer(ctx, name)
	if err != nil {
		return err
	}
	if info == nil {
		return fmt.Errorf("container '%s' not found", name)
	}
	if info.State == "running" {
		return nil
	}

	_, err = c.run(ctx, "start", name)
	return err
}

// StopContainer stops a container. A missing container is success.
func (c *CLI) StopContainer(ctx context.Context, name string) error {
	exists, err := c.checkExists(ctx, "container", name)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	// Stop races with the container exiting on its own; the end state is
	// the same either way.
	_, _ = c.run(ctx, "stop", name)
	return nil
}

// RemoveContainer removes a container. A missing container is success.
func (c *CLI) RemoveContainer(ctx context.Context, name string, force bool) error {
	exists, err := c.checkExists(ctx, "container", name)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	args := []string{"rm"}
	if force {
		args = append(args, "-f")
	}
	args = append(args, name)

	_, err = c.run(ctx, args...)
	return err
}

// InspectContainer returns id and state for a named container, or nil when
// it does not exist.
func (c *CLI) InspectContainer(ctx context.Context, name string) (*ContainerInfo, error) {
	out, err := c.run(ctx, "inspect", name)
	if err != nil {
		return nil, nil
	}

	var entries []inspectEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		return nil, fmt.Errorf("failed to parse inspect output: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &ContainerInfo{
		ID:    entries[0].ID,
		State: entries[0].State.Status,
	}, nil
}

// ListContainers lists containers, optionally including stopped ones.
// `docker ps --format json` emits one JSON object per line, not an array.
func (c *CLI) ListContainers(ctx context.Context, all bool) ([]ContainerSummary, error) {
	args := []string{"ps", "--format", "{{json .}}"}
	if all {
		args = append(args, "-a")
	}

	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}

	var containers []ContainerSummary
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry psEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, fmt.Errorf("failed to parse ps entry %q: %w", line, err)
		}
		containers = append(containers, ContainerSummary{
			ID:     entry.ID,
			Name:   entry.Names,
			Image:  entry.Image,
			State:  entry.State,
			Status: entry.Status,
		})
	}
	return containers, nil
}
