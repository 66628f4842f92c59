package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/obeli-sk/components-flyio/pkg/state"
	"github.com/obeli-sk/components-flyio/pkg/types"
)

var machinesCmd = &cobra.Command{
	Use:   "machines",
	Short: "Manage Fly machines",
}

var machinesListCmd = &cobra.Command{
	Use:   "list APP",
	Short: "List machines of an app",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, err := types.NewAppName(args[0])
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}

		machines, err := client.ListMachines(cmd.Context(), appName)
		if err != nil {
			return err
		}
		return printJSON(machines)
	},
}

var machinesGetCmd = &cobra.Command{
	Use:   "get APP MACHINE_ID",
	Short: "Get one machine",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, machineID, err := machineArgs(args)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}

		machine, err := client.GetMachine(cmd.Context(), appName, machineID)
		if err != nil {
			return err
		}
		return printJSON(machine)
	},
}

var machinesCreateCmd = &cobra.Command{
	Use:   "create APP",
	Short: "Create a machine, converging on an existing one with the same name",
	Long: `Create a machine from a JSON config file. When a machine with the
requested name already exists, its id is returned instead of an error, so
a retried create lands on the machine the first attempt made.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, err := types.NewAppName(args[0])
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")
		configPath, _ := cmd.Flags().GetString("machine-config")
		regionFlag, _ := cmd.Flags().GetString("region")

		machineConfig, err := readMachineConfig(configPath)
		if err != nil {
			return err
		}

		var region *types.Region
		if regionFlag != "" {
			r, err := types.ParseRegion(regionFlag)
			if err != nil {
				return err
			}
			region = &r
		}

		rec, err := newReconciler()
		if err != nil {
			return err
		}

		id, err := rec.CreateMachine(cmd.Context(), appName, name, machineConfig, region)
		if err != nil {
			return err
		}

		if store, storeErr := openStore(); storeErr == nil {
			defer store.Close()
			_ = store.RecordMachine(appName, state.MachineRecord{
				ID:         types.MachineID(id),
				Name:       name,
				RecordedAt: time.Now().UTC(),
			})
		}

		return printJSON(map[string]string{"machine_id": id})
	},
}

var machinesUpdateCmd = &cobra.Command{
	Use:   "update APP MACHINE_ID",
	Short: "Update a machine's config",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, machineID, err := machineArgs(args)
		if err != nil {
			return err
		}
		configPath, _ := cmd.Flags().GetString("machine-config")
		regionFlag, _ := cmd.Flags().GetString("region")

		machineConfig, err := readMachineConfig(configPath)
		if err != nil {
			return err
		}

		var region *types.Region
		if regionFlag != "" {
			r, err := types.ParseRegion(regionFlag)
			if err != nil {
				return err
			}
			region = &r
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		return client.UpdateMachine(cmd.Context(), appName, machineID, machineConfig, region)
	},
}

var machinesStartCmd = &cobra.Command{
	Use:   "start APP MACHINE_ID",
	Short: "Start a machine",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, machineID, err := machineArgs(args)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		return client.StartMachine(cmd.Context(), appName, machineID)
	},
}

var machinesStopCmd = &cobra.Command{
	Use:   "stop APP MACHINE_ID",
	Short: "Stop a machine",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, machineID, err := machineArgs(args)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		return client.StopMachine(cmd.Context(), appName, machineID)
	},
}

var machinesSuspendCmd = &cobra.Command{
	Use:   "suspend APP MACHINE_ID",
	Short: "Suspend a machine",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, machineID, err := machineArgs(args)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		return client.SuspendMachine(cmd.Context(), appName, machineID)
	},
}

var machinesRestartCmd = &cobra.Command{
	Use:   "restart APP MACHINE_ID",
	Short: "Restart a machine",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, machineID, err := machineArgs(args)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		return client.RestartMachine(cmd.Context(), appName, machineID)
	},
}

var machinesDeleteCmd = &cobra.Command{
	Use:   "delete APP MACHINE_ID",
	Short: "Delete a machine",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, machineID, err := machineArgs(args)
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		client, err := newClient()
		if err != nil {
			return err
		}

		if err := client.DeleteMachine(cmd.Context(), appName, machineID, force); err != nil {
			return err
		}

		if store, storeErr := openStore(); storeErr == nil {
			defer store.Close()
			_ = store.ForgetMachine(appName, machineID)
		}
		return nil
	},
}

var machinesExecCmd = &cobra.Command{
	Use:   "exec APP MACHINE_ID -- COMMAND...",
	Short: "Run a command inside a machine",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, machineID, err := machineArgs(args[:2])
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}

		result, err := client.ExecMachine(cmd.Context(), appName, machineID, args[2:])
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func machineArgs(args []string) (types.AppName, types.MachineID, error) {
	appName, err := types.NewAppName(args[0])
	if err != nil {
		return "", "", err
	}
	machineID, err := types.NewMachineID(args[1])
	if err != nil {
		return "", "", err
	}
	return appName, machineID, nil
}

func readMachineConfig(path string) (*types.MachineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine config %s: %w", path, err)
	}
	var machineConfig types.MachineConfig
	if err := json.Unmarshal(data, &machineConfig); err != nil {
		return nil, fmt.Errorf("failed to parse machine config %s: %w", path, err)
	}
	return &machineConfig, nil
}

func init() {
	machinesCmd.AddCommand(machinesListCmd)
	machinesCmd.AddCommand(machinesGetCmd)
	machinesCmd.AddCommand(machinesCreateCmd)
	machinesCmd.AddCommand(machinesUpdateCmd)
	machinesCmd.AddCommand(machinesStartCmd)
	machinesCmd.AddCommand(machinesStopCmd)
	machinesCmd.AddCommand(machinesSuspendCmd)
	machinesCmd.AddCommand(machinesRestartCmd)
	machinesCmd.AddCommand(machinesDeleteCmd)
	machinesCmd.AddCommand(machinesExecCmd)

	machinesCreateCmd.Flags().String("name", "", "Machine name (server-generated when empty)")
	machinesCreateCmd.Flags().String("machine-config", "", "Path to machine config JSON")
	machinesCreateCmd.MarkFlagRequired("machine-config")
	machinesCreateCmd.Flags().String("region", "", "Placement region code")

	machinesUpdateCmd.Flags().String("machine-config", "", "Path to machine config JSON")
	machinesUpdateCmd.MarkFlagRequired("machine-config")
	machinesUpdateCmd.Flags().String("region", "", "Placement region code")

	machinesDeleteCmd.Flags().Bool("force", false, "Delete even if the machine is running")
}
