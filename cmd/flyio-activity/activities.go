package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/obeli-sk/components-flyio/pkg/activity"
	"github.com/obeli-sk/components-flyio/pkg/reconcile"
	"github.com/obeli-sk/components-flyio/pkg/state"
	"github.com/obeli-sk/components-flyio/pkg/types"
)

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "Dispatch provisioning activities by name",
	Long: `The activities interface is how a workflow host drives this binary:
each activity takes a JSON payload on --input (or stdin) and writes a JSON
result envelope to stdout. Handler failures are reported inside the
envelope, not as a non-zero exit, so the host can tell an activity error
from a dispatch error.`,
}

var activitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered activity names",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry()
		if err != nil {
			return err
		}
		return printJSON(reg.Names())
	},
}

var activitiesInvokeCmd = &cobra.Command{
	Use:   "invoke NAME",
	Short: "Invoke one activity with a JSON payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		payload := json.RawMessage(input)
		if input == "" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read payload from stdin: %w", err)
			}
			payload = data
		}

		reg, err := buildRegistry()
		if err != nil {
			return err
		}

		result, err := reg.Invoke(cmd.Context(), args[0], payload)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

// Activity payloads. Field names are the contract with the workflow host.
type appPutInput struct {
	OrgSlug string `json:"org_slug"`
	AppName string `json:"app_name"`
}

type machineCreateInput struct {
	AppName string               `json:"app_name"`
	Name    string               `json:"name,omitempty"`
	Config  *types.MachineConfig `json:"config"`
	Region  *types.Region        `json:"region,omitempty"`
}

type ipEnsureInput struct {
	AppName string          `json:"app_name"`
	Variant types.IPVariant `json:"variant"`
}

type secretSetInput struct {
	AppName string `json:"app_name"`
	Name    string `json:"name"`
	Value   string `json:"value"`
}

// buildRegistry wires the provisioning activities over one reconciler and
// the local ledger.
func buildRegistry() (*activity.Registry, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	rec := reconcile.New(client)

	reg := activity.NewRegistry()

	reg.MustRegister("app.put", func(ctx context.Context, input json.RawMessage) (any, error) {
		var in appPutInput
		if err := json.Unmarshal(input, &in); err != nil {
			return nil, err
		}
		orgSlug, err := types.NewOrgSlug(in.OrgSlug)
		if err != nil {
			return nil, err
		}
		appName, err := types.NewAppName(in.AppName)
		if err != nil {
			return nil, err
		}
		return rec.EnsureApp(ctx, orgSlug, appName)
	})

	reg.MustRegister("machine.create", func(ctx context.Context, input json.RawMessage) (any, error) {
		var in machineCreateInput
		if err := json.Unmarshal(input, &in); err != nil {
			return nil, err
		}
		appName, err := types.NewAppName(in.AppName)
		if err != nil {
			return nil, err
		}
		id, err := rec.CreateMachine(ctx, appName, in.Name, in.Config, in.Region)
		if err != nil {
			return nil, err
		}
		return map[string]string{"machine_id": id}, nil
	})

	reg.MustRegister("ip.ensure", func(ctx context.Context, input json.RawMessage) (any, error) {
		var in ipEnsureInput
		if err := json.Unmarshal(input, &in); err != nil {
			return nil, err
		}
		appName, err := types.NewAppName(in.AppName)
		if err != nil {
			return nil, err
		}

		store, err := openStore()
		if err != nil {
			return nil, err
		}
		defer store.Close()

		preExisting, err := store.KnownIPAddresses(appName)
		if err != nil {
			return nil, err
		}

		ip, err := rec.EnsureIP(ctx, appName, types.IPRequest{Variant: in.Variant}, preExisting)
		if err != nil {
			return nil, err
		}

		if err := store.RecordIP(appName, state.IPRecord{
			IP:         ip,
			Kind:       in.Variant.Kind,
			Region:     in.Variant.Region,
			RecordedAt: time.Now().UTC(),
		}); err != nil {
			return nil, err
		}
		return map[string]string{"ip": ip}, nil
	})

	reg.MustRegister("secret.set", func(ctx context.Context, input json.RawMessage) (any, error) {
		var in secretSetInput
		if err := json.Unmarshal(input, &in); err != nil {
			return nil, err
		}
		appName, err := types.NewAppName(in.AppName)
		if err != nil {
			return nil, err
		}
		key, err := types.NewSecretKey(in.Name)
		if err != nil {
			return nil, err
		}
		return nil, client.SetSecret(ctx, appName, key, in.Value)
	})

	return reg, nil
}

func init() {
	activitiesCmd.AddCommand(activitiesListCmd)
	activitiesCmd.AddCommand(activitiesInvokeCmd)

	activitiesInvokeCmd.Flags().String("input", "", "JSON payload (stdin when omitted)")
}
