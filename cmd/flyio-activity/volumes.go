package main

import (
	"github.com/spf13/cobra"

	"github.com/obeli-sk/components-flyio/pkg/types"
)

var volumesCmd = &cobra.Command{
	Use:   "volumes",
	Short: "Manage Fly volumes",
}

var volumesListCmd = &cobra.Command{
	Use:   "list APP",
	Short: "List volumes of an app",
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

		volumes, err := client.ListVolumes(cmd.Context(), appName)
		if err != nil {
			return err
		}
		return printJSON(volumes)
	},
}

var volumesCreateCmd = &cobra.Command{
	Use:   "create APP NAME",
	Short: "Create a volume",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, err := types.NewAppName(args[0])
		if err != nil {
			return err
		}
		sizeGB, _ := cmd.Flags().GetUint32("size-gb")
		regionFlag, _ := cmd.Flags().GetString("region")

		req := types.VolumeCreateRequest{
			Name:   args[1],
			SizeGB: sizeGB,
		}
		if regionFlag != "" {
			region, err := types.ParseRegion(regionFlag)
			if err != nil {
				return err
			}
			req.Region = &region
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		volume, err := client.CreateVolume(cmd.Context(), appName, req)
		if err != nil {
			return err
		}
		return printJSON(volume)
	},
}

var volumesGetCmd = &cobra.Command{
	Use:   "get APP VOLUME_ID",
	Short: "Get one volume",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, volumeID, err := volumeArgs(args)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}

		volume, err := client.GetVolume(cmd.Context(), appName, volumeID)
		if err != nil {
			return err
		}
		return printJSON(volume)
	},
}

var volumesDeleteCmd = &cobra.Command{
	Use:   "delete APP VOLUME_ID",
	Short: "Delete a volume",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, volumeID, err := volumeArgs(args)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		return client.DeleteVolume(cmd.Context(), appName, volumeID)
	},
}

var volumesExtendCmd = &cobra.Command{
	Use:   "extend APP VOLUME_ID",
	Short: "Grow a volume to a new size",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, volumeID, err := volumeArgs(args)
		if err != nil {
			return err
		}
		sizeGB, _ := cmd.Flags().GetUint32("size-gb")
		client, err := newClient()
		if err != nil {
			return err
		}
		return client.ExtendVolume(cmd.Context(), appName, volumeID, sizeGB)
	},
}

func volumeArgs(args []string) (types.AppName, types.VolumeID, error) {
	appName, err := types.NewAppName(args[0])
	if err != nil {
		return "", "", err
	}
	volumeID, err := types.NewVolumeID(args[1])
	if err != nil {
		return "", "", err
	}
	return appName, volumeID, nil
}

func init() {
	volumesCmd.AddCommand(volumesListCmd)
	volumesCmd.AddCommand(volumesCreateCmd)
	volumesCmd.AddCommand(volumesGetCmd)
	volumesCmd.AddCommand(volumesDeleteCmd)
	volumesCmd.AddCommand(volumesExtendCmd)

	volumesCreateCmd.Flags().Uint32("size-gb", 1, "Volume size in GB")
	volumesCreateCmd.Flags().String("region", "", "Region to place the volume in")

	volumesExtendCmd.Flags().Uint32("size-gb", 0, "New volume size in GB")
	volumesExtendCmd.MarkFlagRequired("size-gb")
}
