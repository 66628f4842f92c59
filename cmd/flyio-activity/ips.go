package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/obeli-sk/components-flyio/pkg/state"
	"github.com/obeli-sk/components-flyio/pkg/types"
)

var ipsCmd = &cobra.Command{
	Use:   "ips",
	Short: "Manage IP assignments of an app",
}

// ipVariantFromFlags maps --type/--region to an allocation request.
func ipVariantFromFlags(cmd *cobra.Command) (types.IPVariant, error) {
	ipType, _ := cmd.Flags().GetString("type")
	regionFlag, _ := cmd.Flags().GetString("region")

	var region *types.Region
	if regionFlag != "" {
		r, err := types.ParseRegion(regionFlag)
		if err != nil {
			return types.IPVariant{}, err
		}
		region = &r
	}

	switch ipType {
	case "v4":
		return types.IPVariant{Kind: types.IPKindV4, Region: region}, nil
	case "shared-v4":
		return types.IPVariant{Kind: types.IPKindV4, Shared: true, Region: region}, nil
	case "v6":
		return types.IPVariant{Kind: types.IPKindV6, Region: region}, nil
	case "private-v6":
		return types.IPVariant{Kind: types.IPKindV6Private}, nil
	}
	return types.IPVariant{}, fmt.Errorf("unknown ip type '%s': expected v4, shared-v4, v6 or private-v6", ipType)
}

var ipsEnsureCmd = &cobra.Command{
	Use:   "ensure APP",
	Short: "Allocate an IP, releasing any duplicate the retry produced",
	Long: `Allocate an IP assignment for an app. The local ledger supplies the
set of addresses earlier invocations already produced; any assignment on
the app that is neither in that set nor the fresh allocation is released.
Running ensure repeatedly therefore converges on exactly one new address
per logical request instead of leaking one per retry.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, err := types.NewAppName(args[0])
		if err != nil {
			return err
		}
		variant, err := ipVariantFromFlags(cmd)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		preExisting, err := store.KnownIPAddresses(appName)
		if err != nil {
			return err
		}

		rec, err := newReconciler()
		if err != nil {
			return err
		}

		ip, err := rec.EnsureIP(cmd.Context(), appName, types.IPRequest{Variant: variant}, preExisting)
		if err != nil {
			return err
		}

		if err := store.RecordIP(appName, state.IPRecord{
			IP:         ip,
			Kind:       variant.Kind,
			Region:     variant.Region,
			RecordedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}

		return printJSON(map[string]string{"ip": ip})
	},
}

var ipsAllocateCmd = &cobra.Command{
	Use:   "allocate APP",
	Short: "Allocate an IP without reconciliation",
	Long: `Allocate an IP assignment directly. Unlike ensure, a retry of this
command allocates a second address; use it only when the caller does its
own cleanup.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, err := types.NewAppName(args[0])
		if err != nil {
			return err
		}
		variant, err := ipVariantFromFlags(cmd)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}

		ip, err := client.AllocateIP(cmd.Context(), appName, types.IPRequest{Variant: variant})
		if err != nil {
			return err
		}
		return printJSON(map[string]string{"ip": ip})
	},
}

var ipsListCmd = &cobra.Command{
	Use:   "list APP",
	Short: "List IP assignments of an app",
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

		ips, err := client.ListIPs(cmd.Context(), appName)
		if err != nil {
			return err
		}
		return printJSON(ips)
	},
}

var ipsReleaseCmd = &cobra.Command{
	Use:   "release APP IP",
	Short: "Release an IP assignment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, err := types.NewAppName(args[0])
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}

		if err := client.ReleaseIP(cmd.Context(), appName, args[1]); err != nil {
			return err
		}

		if store, storeErr := openStore(); storeErr == nil {
			defer store.Close()
			_ = store.ForgetIP(appName, args[1])
		}
		return nil
	},
}

func init() {
	ipsCmd.AddCommand(ipsEnsureCmd)
	ipsCmd.AddCommand(ipsAllocateCmd)
	ipsCmd.AddCommand(ipsListCmd)
	ipsCmd.AddCommand(ipsReleaseCmd)

	for _, c := range []*cobra.Command{ipsEnsureCmd, ipsAllocateCmd} {
		c.Flags().String("type", "v4", "IP type: v4, shared-v4, v6, private-v6")
		c.Flags().String("region", "", "Pin the address to a region")
	}
}
