package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/obeli-sk/components-flyio/pkg/docker"
)

var dockerCmd = &cobra.Command{
	Use:   "docker",
	Short: "Manage local containers through the docker CLI",
}

var dockerRunCmd = &cobra.Command{
	Use:   "run NAME IMAGE [-- COMMAND...]",
	Short: "Run a detached container, reusing one that already runs under the name",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		envFlags, _ := cmd.Flags().GetStringSlice("env")
		portFlags, _ := cmd.Flags().GetStringSlice("publish")
		mountFlags, _ := cmd.Flags().GetStringSlice("volume")
		network, _ := cmd.Flags().GetString("network")

		env, err := parseEnvFlags(envFlags)
		if err != nil {
			return err
		}
		ports, err := parsePortFlags(portFlags)
		if err != nil {
			return err
		}
		mounts, err := parseMountFlags(mountFlags)
		if err != nil {
			return err
		}

		id, err := newDockerCLI().RunContainer(cmd.Context(), args[0], docker.ContainerConfig{
			Image:   args[1],
			Cmd:     args[2:],
			Env:     env,
			Ports:   ports,
			Mounts:  mounts,
			Network: network,
		})
		if err != nil {
			return err
		}
		return printJSON(map[string]string{"container_id": id})
	},
}

var dockerStartCmd = &cobra.Command{
	Use:   "start NAME",
	Short: "Start a stopped container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newDockerCLI().StartContainer(cmd.Context(), args[0])
	},
}

var dockerStopCmd = &cobra.Command{
	Use:   "stop NAME",
	Short: "Stop a container; a missing container is success",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newDockerCLI().StopContainer(cmd.Context(), args[0])
	},
}

var dockerRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Remove a container; a missing container is success",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return newDockerCLI().RemoveContainer(cmd.Context(), args[0], force)
	},
}

var dockerInspectCmd = &cobra.Command{
	Use:   "inspect NAME",
	Short: "Show id and state of a container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := newDockerCLI().InspectContainer(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if info == nil {
			return fmt.Errorf("container '%s' not found", args[0])
		}
		return printJSON(info)
	},
}

var dockerPsCmd = &cobra.Command{
	Use:   "ps",
	Short: "List containers",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		containers, err := newDockerCLI().ListContainers(cmd.Context(), all)
		if err != nil {
			return err
		}
		return printJSON(containers)
	},
}

var dockerNetworkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage container networks",
}

var dockerNetworkCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a network; an existing one is success",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		driver, _ := cmd.Flags().GetString("driver")
		id, err := newDockerCLI().CreateNetwork(cmd.Context(), args[0], driver)
		if err != nil {
			return err
		}
		return printJSON(map[string]string{"network": id})
	},
}

var dockerNetworkRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Remove a network; a missing network is success",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newDockerCLI().RemoveNetwork(cmd.Context(), args[0])
	},
}

var dockerNetworkPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove unused networks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return newDockerCLI().PruneNetworks(cmd.Context())
	},
}

var dockerVolumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Manage container volumes",
}

var dockerVolumeCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a volume; an existing one is success",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := newDockerCLI().CreateVolume(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(map[string]string{"volume": name})
	},
}

var dockerVolumeRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Remove a volume; a missing volume is success",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newDockerCLI().RemoveVolume(cmd.Context(), args[0])
	},
}

func parseEnvFlags(flags []string) (map[string]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(flags))
	for _, flag := range flags {
		key, value, ok := strings.Cut(flag, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid env '%s': expected KEY=VALUE", flag)
		}
		env[key] = value
	}
	return env, nil
}

// parsePortFlags accepts HOST:CONTAINER with an optional /protocol suffix.
func parsePortFlags(flags []string) ([]docker.PortMapping, error) {
	var ports []docker.PortMapping
	for _, flag := range flags {
		spec, protocol, _ := strings.Cut(flag, "/")
		hostPart, containerPart, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("invalid port mapping '%s': expected HOST:CONTAINER", flag)
		}
		host, err := strconv.ParseUint(hostPart, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid host port in '%s': %w", flag, err)
		}
		container, err := strconv.ParseUint(containerPart, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid container port in '%s': %w", flag, err)
		}
		ports = append(ports, docker.PortMapping{
			HostPort:      uint16(host),
			ContainerPort: uint16(container),
			Protocol:      protocol,
		})
	}
	return ports, nil
}

// parseMountFlags accepts SOURCE:TARGET with an optional :ro suffix.
func parseMountFlags(flags []string) ([]docker.MountSpec, error) {
	var mounts []docker.MountSpec
	for _, flag := range flags {
		parts := strings.Split(flag, ":")
		switch len(parts) {
		case 2:
			mounts = append(mounts, docker.MountSpec{Source: parts[0], Target: parts[1]})
		case 3:
			if parts[2] != "ro" && parts[2] != "rw" {
				return nil, fmt.Errorf("invalid mount mode in '%s': expected ro or rw", flag)
			}
			mounts = append(mounts, docker.MountSpec{
				Source:   parts[0],
				Target:   parts[1],
				ReadOnly: parts[2] == "ro",
			})
		default:
			return nil, fmt.Errorf("invalid mount '%s': expected SOURCE:TARGET[:ro|rw]", flag)
		}
	}
	return mounts, nil
}

func init() {
	dockerCmd.AddCommand(dockerRunCmd)
	dockerCmd.AddCommand(dockerStartCmd)
	dockerCmd.AddCommand(dockerStopCmd)
	dockerCmd.AddCommand(dockerRmCmd)
	dockerCmd.AddCommand(dockerInspectCmd)
	dockerCmd.AddCommand(dockerPsCmd)
	dockerCmd.AddCommand(dockerNetworkCmd)
	dockerCmd.AddCommand(dockerVolumeCmd)

	dockerNetworkCmd.AddCommand(dockerNetworkCreateCmd)
	dockerNetworkCmd.AddCommand(dockerNetworkRmCmd)
	dockerNetworkCmd.AddCommand(dockerNetworkPruneCmd)

	dockerVolumeCmd.AddCommand(dockerVolumeCreateCmd)
	dockerVolumeCmd.AddCommand(dockerVolumeRmCmd)

	dockerRunCmd.Flags().StringSlice("env", nil, "Environment variable KEY=VALUE (repeatable)")
	dockerRunCmd.Flags().StringSlice("publish", nil, "Port mapping HOST:CONTAINER[/protocol] (repeatable)")
	dockerRunCmd.Flags().StringSlice("volume", nil, "Mount SOURCE:TARGET[:ro|rw] (repeatable)")
	dockerRunCmd.Flags().String("network", "", "Network to attach the container to")

	dockerRmCmd.Flags().Bool("force", false, "Remove even if running")
	dockerPsCmd.Flags().Bool("all", false, "Include stopped containers")
	dockerNetworkCreateCmd.Flags().String("driver", "", "Network driver")
}
