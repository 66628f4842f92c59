package main

import (
	"github.com/spf13/cobra"

	"github.com/obeli-sk/components-flyio/pkg/types"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "Manage Fly apps",
}

var appsGetCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Get an app by name",
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

		app, err := client.GetApp(cmd.Context(), appName)
		if err != nil {
			return err
		}
		return printJSON(app)
	},
}

var appsPutCmd = &cobra.Command{
	Use:   "put NAME",
	Short: "Create an app if it does not exist",
	Long: `Create an app in the given organization. If the app already exists
in that organization the existing app is returned; if it exists in a
different organization the command fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, err := types.NewAppName(args[0])
		if err != nil {
			return err
		}
		org, _ := cmd.Flags().GetString("org")
		orgSlug, err := types.NewOrgSlug(org)
		if err != nil {
			return err
		}
		rec, err := newReconciler()
		if err != nil {
			return err
		}

		app, err := rec.EnsureApp(cmd.Context(), orgSlug, appName)
		if err != nil {
			return err
		}
		return printJSON(app)
	},
}

var appsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List apps in an organization",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, _ := cmd.Flags().GetString("org")
		orgSlug, err := types.NewOrgSlug(org)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}

		apps, err := client.ListApps(cmd.Context(), orgSlug)
		if err != nil {
			return err
		}
		return printJSON(apps)
	},
}

var appsDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete an app",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appName, err := types.NewAppName(args[0])
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		client, err := newClient()
		if err != nil {
			return err
		}

		return client.DeleteApp(cmd.Context(), appName, force)
	},
}

func init() {
	appsCmd.AddCommand(appsGetCmd)
	appsCmd.AddCommand(appsPutCmd)
	appsCmd.AddCommand(appsListCmd)
	appsCmd.AddCommand(appsDeleteCmd)

	appsPutCmd.Flags().String("org", "", "Organization slug")
	appsPutCmd.MarkFlagRequired("org")
	appsListCmd.Flags().String("org", "", "Organization slug")
	appsListCmd.MarkFlagRequired("org")
	appsDeleteCmd.Flags().Bool("force", false, "Destroy running machines along with the app")
}
