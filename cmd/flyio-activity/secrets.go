package main

import (
	"github.com/spf13/cobra"

	"github.com/obeli-sk/components-flyio/pkg/types"
)

var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Manage app secrets",
}

var secretsListCmd = &cobra.Command{
	Use:   "list APP",
	Short: "List secret names of an app",
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

		secrets, err := client.ListSecrets(cmd.Context(), appName)
		if err != nil {
			return err
		}
		return printJSON(secrets)
	},
}

var secretsSetCmd = &cobra.Command{
	Use:   "set APP NAME VALUE",
	Short: "Stage a secret value on an app",
	Long: `Stage a secret on an app. The value takes effect on machines created
or updated afterwards; running machines keep the old value until restarted.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, key, err := secretArgs(args)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		return client.SetSecret(cmd.Context(), appName, key, args[2])
	},
}

var secretsDeleteCmd = &cobra.Command{
	Use:   "delete APP NAME",
	Short: "Remove a secret from an app",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, key, err := secretArgs(args)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		return client.DeleteSecret(cmd.Context(), appName, key)
	},
}

func secretArgs(args []string) (types.AppName, types.SecretKey, error) {
	appName, err := types.NewAppName(args[0])
	if err != nil {
		return "", "", err
	}
	key, err := types.NewSecretKey(args[1])
	if err != nil {
		return "", "", err
	}
	return appName, key, nil
}

func init() {
	secretsCmd.AddCommand(secretsListCmd)
	secretsCmd.AddCommand(secretsSetCmd)
	secretsCmd.AddCommand(secretsDeleteCmd)
}
